package lisp

import "sort"

var primitives = map[Symbol]BuiltinProc{
	"EQ":   eq,
	"ATOM": atom,
	"CONS": cons,
	"CAR":  car,
	"CDR":  cdr,
	"ADD":  arithmetic("ADD", func(x, y Number) Number { return x + y }),
	"SUB":  arithmetic("SUB", func(x, y Number) Number { return x - y }),
	"MUL":  arithmetic("MUL", func(x, y Number) Number { return x * y }),
	"DIV":  arithmetic("DIV", func(x, y Number) Number { return x / y }),
}

// T is the canonical true value returned by predicates.
var T = NewSymbol("T")

// GlobalEnv returns a fresh root environment holding the primitives,
// T and NIL.
func GlobalEnv() *Env {
	env := NewEnv()
	names := make([]Symbol, 0, len(primitives))
	for name := range primitives {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		env.Bind(name, NewPrimitive(primitives[name]))
	}
	env.Bind("T", T)
	env.Bind("NIL", NIL)
	return env
}

func truth(b bool) SExpression {
	if b {
		return T
	}
	return NIL
}

// fixedArgs checks that args is a proper list of exactly n elements.
func fixedArgs(name string, args SExpression, n int) ([]SExpression, SExpression) {
	list, tail := Slice(args)
	if len(list) != n || !IsNil(tail) {
		return nil, NewError(args, "%s: incorrect parameter list", name)
	}
	return list, nil
}

// (EQ a b ...) is T when all arguments are the same number or symbol.
func eq(args SExpression) SExpression {
	if IsNil(args) {
		return T
	}
	if !args.IsPair() {
		return NewError(args, "EQ: Improper parameter.")
	}
	prev := args.AsPair().Car()
	it := args.AsPair().Cdr()
	for ; it.IsPair(); it = it.AsPair().Cdr() {
		cur := it.AsPair().Car()
		if prev.Type() != cur.Type() {
			return NIL
		}
		switch cur.Type() {
		case TypeNumber:
			if prev.AsNumber() != cur.AsNumber() {
				return NIL
			}
		case TypeSymbol:
			if !SymbolEqual(cur, prev.AsSymbol()) {
				return NIL
			}
		default:
			return NIL
		}
		prev = cur
	}
	if !IsNil(it) {
		return NewError(args, "EQ: Improper parameter.")
	}
	return T
}

func atom(args SExpression) SExpression {
	if !args.IsPair() {
		return NIL
	}
	t := args.AsPair().Car().Type()
	return truth(t == TypeSymbol || t == TypeNumber)
}

func cons(args SExpression) SExpression {
	list, err := fixedArgs("CONS", args, 2)
	if err != nil {
		return err
	}
	return NewPair(list[0], list[1])
}

func car(args SExpression) SExpression {
	list, err := fixedArgs("CAR", args, 1)
	if err != nil {
		return err
	}
	if !list[0].IsPair() {
		return NewError(args, "CAR: not a pair")
	}
	return list[0].AsPair().Car()
}

func cdr(args SExpression) SExpression {
	list, err := fixedArgs("CDR", args, 1)
	if err != nil {
		return err
	}
	if !list[0].IsPair() {
		return NewError(args, "CDR: not a pair")
	}
	return list[0].AsPair().Cdr()
}

func arithmetic(name string, op func(x, y Number) Number) BuiltinProc {
	return func(args SExpression) SExpression {
		list, err := fixedArgs(name, args, 2)
		if err != nil {
			return err
		}
		if !list[0].IsNumber() || !list[1].IsNumber() {
			return NewError(args, "%s: type error", name)
		}
		return NewNumber(op(list[0].AsNumber(), list[1].AsNumber()))
	}
}
