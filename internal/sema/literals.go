package sema

import (
	"math/big"
	"strconv"

	"rc/internal/value"
)

// parseIntConst parses decimal/hex/octal/binary integer literal text
// (Go-style prefixes) into an untyped integer constant. An unparsable
// literal yields a zero constant; the lexer/parser this codebase treats
// as an external collaborator is responsible for rejecting malformed
// numerals before the AST ever reaches this package.
func parseIntConst(text string) *value.Constant {
	v := new(big.Int)
	if _, ok := v.SetString(text, 0); !ok {
		return value.NewInt(0)
	}
	return &value.Constant{Kind: value.ConstInt, Int: v}
}

func parseFloatConst(text string) float64 {
	f, err := strconv.ParseFloat(text, 64)
	if err != nil {
		return 0
	}
	return f
}

func bigFromRune(r rune) *big.Int {
	return big.NewInt(int64(r))
}
