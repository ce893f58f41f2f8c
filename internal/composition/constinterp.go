package composition

import (
	"strconv"

	"rc/internal/ast"
	"rc/internal/source"
)

// constEnv binds for-range loop variables to their current compile-time
// value while walking a bind block; per spec's design notes, this is the
// dedicated small constant interpreter replacing original_source's
// general bytecode executor, scoped to exactly what a bind block needs:
// arithmetic, comparisons, conditionals, and for-range.
type constEnv map[source.StringID]int64

func (e constEnv) with(name source.StringID, v int64) constEnv {
	next := make(constEnv, len(e)+1)
	for k, val := range e {
		next[k] = val
	}
	next[name] = v
	return next
}

func (cp *Composer) evalConstInt(env constEnv, expr ast.NodeID) (int64, bool) {
	if expr == ast.NoNodeID {
		return 0, false
	}
	n := cp.ast.At(expr)
	switch n.Kind {
	case ast.KindIntLit:
		v, err := strconv.ParseInt(cp.ast.IntLit(expr).Text, 0, 64)
		return v, err == nil
	case ast.KindIdentExpr:
		v, ok := env[cp.ast.IdentExpr(expr).Name]
		return v, ok
	case ast.KindUnaryExpr:
		u := cp.ast.UnaryExpr(expr)
		v, ok := cp.evalConstInt(env, u.Expr)
		if !ok || u.Op != ast.UnaryNeg {
			return 0, false
		}
		return -v, true
	case ast.KindBinaryExpr:
		b := cp.ast.BinaryExpr(expr)
		lhs, ok1 := cp.evalConstInt(env, b.Lhs)
		rhs, ok2 := cp.evalConstInt(env, b.Rhs)
		if !ok1 || !ok2 {
			return 0, false
		}
		switch b.Op {
		case ast.BinAdd:
			return lhs + rhs, true
		case ast.BinSub:
			return lhs - rhs, true
		case ast.BinMul:
			return lhs * rhs, true
		case ast.BinDiv:
			if rhs == 0 {
				return 0, false
			}
			return lhs / rhs, true
		case ast.BinMod:
			if rhs == 0 {
				return 0, false
			}
			return lhs % rhs, true
		default:
			return 0, false
		}
	default:
		return 0, false
	}
}

func (cp *Composer) evalConstBool(env constEnv, expr ast.NodeID) (bool, bool) {
	if expr == ast.NoNodeID {
		return false, false
	}
	n := cp.ast.At(expr)
	switch n.Kind {
	case ast.KindBoolLit:
		return cp.ast.BoolLit(expr).Value, true
	case ast.KindUnaryExpr:
		u := cp.ast.UnaryExpr(expr)
		if u.Op != ast.UnaryNot {
			return false, false
		}
		v, ok := cp.evalConstBool(env, u.Expr)
		return !v, ok
	case ast.KindBinaryExpr:
		b := cp.ast.BinaryExpr(expr)
		switch b.Op {
		case ast.BinAnd:
			lhs, ok1 := cp.evalConstBool(env, b.Lhs)
			rhs, ok2 := cp.evalConstBool(env, b.Rhs)
			return lhs && rhs, ok1 && ok2
		case ast.BinOr:
			lhs, ok1 := cp.evalConstBool(env, b.Lhs)
			rhs, ok2 := cp.evalConstBool(env, b.Rhs)
			return lhs || rhs, ok1 && ok2
		case ast.BinEq, ast.BinNe, ast.BinLt, ast.BinLe, ast.BinGt, ast.BinGe:
			lhs, ok1 := cp.evalConstInt(env, b.Lhs)
			rhs, ok2 := cp.evalConstInt(env, b.Rhs)
			if !ok1 || !ok2 {
				return false, false
			}
			switch b.Op {
			case ast.BinEq:
				return lhs == rhs, true
			case ast.BinNe:
				return lhs != rhs, true
			case ast.BinLt:
				return lhs < rhs, true
			case ast.BinLe:
				return lhs <= rhs, true
			case ast.BinGt:
				return lhs > rhs, true
			default:
				return lhs >= rhs, true
			}
		default:
			return false, false
		}
	default:
		return false, false
	}
}
