package value

import (
	"fmt"
	"math/big"
	"strings"

	"fortio.org/safecast"
	"rc/internal/types"
)

// ConstKind orders RC's untyped constant lattice: boolean < rune <
// integer < float < complex < string. An untyped constant's default type
// is the first concrete type at or above its own kind that the context
// demands; binary operators between two untyped constants of different
// kinds promote to the higher kind (runs through the same total order
// original_source's Untyped hierarchy enforces).
type ConstKind uint8

const (
	ConstBool ConstKind = iota
	ConstRune
	ConstInt
	ConstFloat
	ConstComplex
	ConstString
)

// Constant is an untyped or typed compile-time value. Exactly one of the
// payload fields is meaningful, selected by Kind.
type Constant struct {
	Kind    ConstKind
	Bool    bool
	Int     *big.Int
	Float   *big.Float
	Complex complex128
	Str     string
	// Typed is false for untyped constants (literal before context forces
	// a concrete type) and true once DefaultType or an explicit conversion
	// has pinned it to a concrete types.TypeID (carried by the owning
	// ExpressionValue.Type, not duplicated here).
	Typed bool
}

// NewBool constructs an untyped boolean constant.
func NewBool(b bool) *Constant { return &Constant{Kind: ConstBool, Bool: b} }

// NewInt constructs an untyped integer constant.
func NewInt(i int64) *Constant { return &Constant{Kind: ConstInt, Int: big.NewInt(i)} }

// NewFloat constructs an untyped floating-point constant.
func NewFloat(f float64) *Constant {
	return &Constant{Kind: ConstFloat, Float: big.NewFloat(f)}
}

// NewString constructs an untyped string constant.
func NewString(s string) *Constant { return &Constant{Kind: ConstString, Str: s} }

// Promote returns the common ConstKind two operands must be converted to
// before a binary operator can apply, per the total order documented on
// ConstKind. String only combines with string (concatenation); mixing it
// with anything else is a type error the caller must report separately.
func Promote(a, b ConstKind) ConstKind {
	if a > b {
		return a
	}
	return b
}

// Add folds c + other for two untyped numeric constants already promoted
// to the same kind.
func Add(kind ConstKind, c, other *Constant) (*Constant, error) {
	switch kind {
	case ConstInt:
		return &Constant{Kind: ConstInt, Int: new(big.Int).Add(asInt(c), asInt(other))}, nil
	case ConstFloat:
		return &Constant{Kind: ConstFloat, Float: new(big.Float).Add(asFloat(c), asFloat(other))}, nil
	case ConstString:
		return &Constant{Kind: ConstString, Str: c.Str + other.Str}, nil
	default:
		return nil, fmt.Errorf("value: add not defined for kind %d", kind)
	}
}

// Sub folds c - other for two untyped numeric constants already promoted
// to the same kind.
func Sub(kind ConstKind, c, other *Constant) (*Constant, error) {
	switch kind {
	case ConstInt:
		return &Constant{Kind: ConstInt, Int: new(big.Int).Sub(asInt(c), asInt(other))}, nil
	case ConstFloat:
		return &Constant{Kind: ConstFloat, Float: new(big.Float).Sub(asFloat(c), asFloat(other))}, nil
	default:
		return nil, fmt.Errorf("value: sub not defined for kind %d", kind)
	}
}

// Mul folds c * other for two untyped numeric constants already promoted
// to the same kind.
func Mul(kind ConstKind, c, other *Constant) (*Constant, error) {
	switch kind {
	case ConstInt:
		return &Constant{Kind: ConstInt, Int: new(big.Int).Mul(asInt(c), asInt(other))}, nil
	case ConstFloat:
		return &Constant{Kind: ConstFloat, Float: new(big.Float).Mul(asFloat(c), asFloat(other))}, nil
	default:
		return nil, fmt.Errorf("value: mul not defined for kind %d", kind)
	}
}

// Div folds c / other for two untyped numeric constants already promoted
// to the same kind.
func Div(kind ConstKind, c, other *Constant) (*Constant, error) {
	switch kind {
	case ConstInt:
		o := asInt(other)
		if o.Sign() == 0 {
			return nil, fmt.Errorf("value: division by zero")
		}
		return &Constant{Kind: ConstInt, Int: new(big.Int).Quo(asInt(c), o)}, nil
	case ConstFloat:
		o := asFloat(other)
		if o.Sign() == 0 {
			return nil, fmt.Errorf("value: division by zero")
		}
		return &Constant{Kind: ConstFloat, Float: new(big.Float).Quo(asFloat(c), o)}, nil
	default:
		return nil, fmt.Errorf("value: div not defined for kind %d", kind)
	}
}

// Mod folds c % other for two untyped integer constants.
func Mod(kind ConstKind, c, other *Constant) (*Constant, error) {
	if kind != ConstInt {
		return nil, fmt.Errorf("value: mod not defined for kind %d", kind)
	}
	o := asInt(other)
	if o.Sign() == 0 {
		return nil, fmt.Errorf("value: modulo by zero")
	}
	return &Constant{Kind: ConstInt, Int: new(big.Int).Rem(asInt(c), o)}, nil
}

// BitAnd folds c & other for two untyped integer constants.
func BitAnd(kind ConstKind, c, other *Constant) (*Constant, error) {
	if kind != ConstInt && kind != ConstRune {
		return nil, fmt.Errorf("value: bitand not defined for kind %d", kind)
	}
	return &Constant{Kind: kind, Int: new(big.Int).And(asInt(c), asInt(other))}, nil
}

// BitOr folds c | other for two untyped integer constants.
func BitOr(kind ConstKind, c, other *Constant) (*Constant, error) {
	if kind != ConstInt && kind != ConstRune {
		return nil, fmt.Errorf("value: bitor not defined for kind %d", kind)
	}
	return &Constant{Kind: kind, Int: new(big.Int).Or(asInt(c), asInt(other))}, nil
}

// BitXor folds c ^ other for two untyped integer constants.
func BitXor(kind ConstKind, c, other *Constant) (*Constant, error) {
	if kind != ConstInt && kind != ConstRune {
		return nil, fmt.Errorf("value: bitxor not defined for kind %d", kind)
	}
	return &Constant{Kind: kind, Int: new(big.Int).Xor(asInt(c), asInt(other))}, nil
}

// AndNot folds c &^ other (bit clear) for two untyped integer constants.
func AndNot(kind ConstKind, c, other *Constant) (*Constant, error) {
	if kind != ConstInt && kind != ConstRune {
		return nil, fmt.Errorf("value: andnot not defined for kind %d", kind)
	}
	return &Constant{Kind: kind, Int: new(big.Int).AndNot(asInt(c), asInt(other))}, nil
}

// Shl folds c << other. The shift count must be non-negative, matching
// original_source's rejection of a negative shift as not representable.
func Shl(kind ConstKind, c, other *Constant) (*Constant, error) {
	if kind != ConstInt && kind != ConstRune {
		return nil, fmt.Errorf("value: shl not defined for kind %d", kind)
	}
	n := asInt(other)
	if n.Sign() < 0 {
		return nil, fmt.Errorf("value: negative shift count")
	}
	return &Constant{Kind: kind, Int: new(big.Int).Lsh(asInt(c), uint(n.Uint64()))}, nil
}

// Shr folds c >> other. The shift count must be non-negative.
func Shr(kind ConstKind, c, other *Constant) (*Constant, error) {
	if kind != ConstInt && kind != ConstRune {
		return nil, fmt.Errorf("value: shr not defined for kind %d", kind)
	}
	n := asInt(other)
	if n.Sign() < 0 {
		return nil, fmt.Errorf("value: negative shift count")
	}
	return &Constant{Kind: kind, Int: new(big.Int).Rsh(asInt(c), uint(n.Uint64()))}, nil
}

// Neg folds -c for an untyped numeric constant.
func Neg(c *Constant) (*Constant, error) {
	switch c.Kind {
	case ConstInt, ConstRune:
		return &Constant{Kind: c.Kind, Int: new(big.Int).Neg(asInt(c))}, nil
	case ConstFloat:
		return &Constant{Kind: ConstFloat, Float: new(big.Float).Neg(asFloat(c))}, nil
	default:
		return nil, fmt.Errorf("value: neg not defined for kind %d", c.Kind)
	}
}

// Not folds !c for an untyped boolean constant.
func Not(c *Constant) (*Constant, error) {
	if c.Kind != ConstBool {
		return nil, fmt.Errorf("value: ! not defined for non-bool operand")
	}
	return &Constant{Kind: ConstBool, Bool: !c.Bool}, nil
}

// And folds c && other for two untyped boolean constants.
func And(c, other *Constant) (*Constant, error) {
	if c.Kind != ConstBool || other.Kind != ConstBool {
		return nil, fmt.Errorf("value: && not defined for non-bool operands")
	}
	return &Constant{Kind: ConstBool, Bool: c.Bool && other.Bool}, nil
}

// Or folds c || other for two untyped boolean constants.
func Or(c, other *Constant) (*Constant, error) {
	if c.Kind != ConstBool || other.Kind != ConstBool {
		return nil, fmt.Errorf("value: || not defined for non-bool operands")
	}
	return &Constant{Kind: ConstBool, Bool: c.Bool || other.Bool}, nil
}

// Compare orders c against other for two constants already promoted to
// the same kind, returning -1/0/1 the way big.Int.Cmp does, so callers can
// fold any of ==, !=, <, <=, >, >= at the same call site.
func Compare(kind ConstKind, c, other *Constant) (int, error) {
	switch kind {
	case ConstInt, ConstRune:
		return asInt(c).Cmp(asInt(other)), nil
	case ConstFloat:
		return asFloat(c).Cmp(asFloat(other)), nil
	case ConstString:
		return strings.Compare(c.Str, other.Str), nil
	case ConstBool:
		if c.Bool == other.Bool {
			return 0, nil
		}
		if !c.Bool && other.Bool {
			return -1, nil
		}
		return 1, nil
	default:
		return 0, fmt.Errorf("value: compare not defined for kind %d", kind)
	}
}

// Convert performs an explicit T(x) conversion of c into the primitive
// shape (k, width) names, distinct from Representable's fit-only check: it
// actually produces the converted value, truncating a float source toward
// zero the way a numeric conversion does.
func Convert(c *Constant, k types.Kind, width types.Width) (*Constant, bool) {
	switch k {
	case types.KindBool:
		if c.Kind != ConstBool {
			return nil, false
		}
		return &Constant{Kind: ConstBool, Bool: c.Bool, Typed: true}, true
	case types.KindString:
		if c.Kind != ConstString {
			return nil, false
		}
		return &Constant{Kind: ConstString, Str: c.Str, Typed: true}, true
	case types.KindInt, types.KindUint, types.KindRune:
		i, ok := asIntConvertible(c)
		if !ok {
			return nil, false
		}
		kind := ConstInt
		if k == types.KindRune {
			kind = ConstRune
		}
		return &Constant{Kind: kind, Int: i, Typed: true}, true
	case types.KindFloat:
		f, ok := asFloatConvertible(c)
		if !ok {
			return nil, false
		}
		return &Constant{Kind: ConstFloat, Float: f, Typed: true}, true
	default:
		return nil, false
	}
}

func asIntConvertible(c *Constant) (*big.Int, bool) {
	switch c.Kind {
	case ConstInt, ConstRune:
		return new(big.Int).Set(asInt(c)), true
	case ConstFloat:
		i, _ := asFloat(c).Int(nil)
		return i, true
	default:
		return nil, false
	}
}

func asFloatConvertible(c *Constant) (*big.Float, bool) {
	switch c.Kind {
	case ConstInt, ConstRune:
		return new(big.Float).SetInt(asInt(c)), true
	case ConstFloat:
		return new(big.Float).Set(asFloat(c)), true
	default:
		return nil, false
	}
}

func asInt(c *Constant) *big.Int {
	if c.Int != nil {
		return c.Int
	}
	if c.Bool {
		return big.NewInt(1)
	}
	return big.NewInt(0)
}

func asFloat(c *Constant) *big.Float {
	if c.Float != nil {
		return c.Float
	}
	if c.Int != nil {
		return new(big.Float).SetInt(c.Int)
	}
	return big.NewFloat(0)
}

// Representable reports whether an untyped constant's value can be
// represented exactly by the given concrete primitive type without loss,
// the rule the expression checker applies before silently converting an
// untyped literal at an assignment or call site (spec's "conversion /
// representability checks").
func Representable(c *Constant, k types.Kind, width types.Width) bool {
	switch k {
	case types.KindBool:
		return c.Kind == ConstBool
	case types.KindString:
		return c.Kind == ConstString
	case types.KindInt:
		if c.Kind != ConstInt && c.Kind != ConstRune {
			return false
		}
		return fitsSignedWidth(asInt(c), width)
	case types.KindUint:
		if c.Kind != ConstInt && c.Kind != ConstRune {
			return false
		}
		v := asInt(c)
		if v.Sign() < 0 {
			return false
		}
		return fitsUnsignedWidth(v, width)
	case types.KindFloat:
		return c.Kind == ConstInt || c.Kind == ConstFloat
	case types.KindRune:
		return c.Kind == ConstRune || c.Kind == ConstInt
	default:
		return false
	}
}

func fitsSignedWidth(v *big.Int, width types.Width) bool {
	if width == types.Width64 || width == types.WidthAny {
		return v.IsInt64()
	}
	bits, err := widthBits(width)
	if err != nil {
		return false
	}
	return fitsBits(v, bits, true)
}

func fitsUnsignedWidth(v *big.Int, width types.Width) bool {
	if width == types.Width64 || width == types.WidthAny {
		return v.BitLen() <= 64
	}
	bits, err := widthBits(width)
	if err != nil {
		return false
	}
	return fitsBits(v, bits, false)
}

func fitsBits(v *big.Int, bits int, signed bool) bool {
	if signed {
		min := new(big.Int).Lsh(big.NewInt(-1), uint(bits-1))
		max := new(big.Int).Sub(new(big.Int).Lsh(big.NewInt(1), uint(bits-1)), big.NewInt(1))
		return v.Cmp(min) >= 0 && v.Cmp(max) <= 0
	}
	max := new(big.Int).Sub(new(big.Int).Lsh(big.NewInt(1), uint(bits)), big.NewInt(1))
	return v.Sign() >= 0 && v.Cmp(max) <= 0
}

// widthBits converts a safecast-checked bit count used by fitsBits; kept
// as a thin wrapper so the 8/16/32-bit paths above share the same
// overflow-checked conversion convention as the rest of this package.
func widthBits(w types.Width) (int, error) {
	return safecast.Conv[int](uint8(w))
}
