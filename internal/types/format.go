package types

import (
	"fmt"
	"strconv"

	"rc/internal/source"
)

// Format renders a human-readable name for a type, used by diagnostics.
// Named kinds look up their declared name from the interner's string
// source; unnamed kinds are built recursively.
func (in *Interner) Format(id TypeID, strings *source.Interner) string {
	tt, ok := in.Lookup(id)
	if !ok {
		return "<invalid>"
	}
	switch tt.Kind {
	case KindInvalid:
		return "<invalid>"
	case KindUnit:
		return "unit"
	case KindBool:
		return "bool"
	case KindRune:
		return "rune"
	case KindString:
		return "string"
	case KindInt:
		return widthName("int", tt.Width)
	case KindUint:
		return widthName("uint", tt.Width)
	case KindFloat:
		return widthName("float", tt.Width)
	case KindComplex:
		return widthName("complex", tt.Width)
	case KindPointer:
		return "*" + in.Format(tt.Elem, strings)
	case KindHeap:
		return "heap " + in.Format(tt.Elem, strings)
	case KindSlice:
		return "[]" + in.Format(tt.Elem, strings)
	case KindArray:
		return "[" + strconv.FormatUint(uint64(tt.Count), 10) + "]" + in.Format(tt.Elem, strings)
	case KindStruct:
		return strings.MustLookup(in.structs[tt.Payload].Name)
	case KindComponent:
		return strings.MustLookup(in.components[tt.Payload].Name)
	case KindFunction:
		fn := in.funcs[tt.Payload]
		s := "func("
		for i, p := range fn.Params {
			if i > 0 {
				s += ", "
			}
			s += in.Format(p, strings)
		}
		s += ")"
		if fn.Result != NoTypeID {
			s += " " + in.Format(fn.Result, strings)
		}
		return s
	case KindMethod:
		m := in.methods[tt.Payload]
		return in.Format(m.Receiver, strings) + "." + in.Format(m.Func, strings)
	case KindTemplate:
		return "<builtin template>"
	default:
		return fmt.Sprintf("<kind %d>", tt.Kind)
	}
}

func widthName(base string, w Width) string {
	if w == WidthAny {
		return base
	}
	return base + strconv.Itoa(int(w))
}
