package lisp

import (
	"fmt"
	"strconv"
	"strings"
)

type DataType uint8

const (
	TypePair DataType = iota
	TypeNumber
	TypeSymbol
	TypePrimitive
	TypeClosure
	TypeError
)

func (t DataType) String() string {
	switch t {
	case TypePair:
		return "pair"
	case TypeNumber:
		return "number"
	case TypeSymbol:
		return "symbol"
	case TypePrimitive:
		return "primitive"
	case TypeClosure:
		return "closure"
	case TypeError:
		return "error"
	}
	return fmt.Sprintf("DataType(%d)", uint8(t))
}

// SExpression is the only runtime value: a datum.
type SExpression interface {
	Type() DataType
	IsNil() bool
	IsSymbol() bool
	IsNumber() bool
	IsPair() bool
	IsError() bool
	IsCallable() bool
	AsSymbol() Symbol
	AsNumber() Number
	AsPair() Pair
	AsError() Error
	AsProcedure() Proc
	String() string
}

type sexpression struct{}

// NOTE: the below panics should never occur;
// callers check the type before using an accessor

func (sexpression) IsNil() bool      { return false }
func (sexpression) IsSymbol() bool   { return false }
func (sexpression) IsNumber() bool   { return false }
func (sexpression) IsPair() bool     { return false }
func (sexpression) IsError() bool    { return false }
func (sexpression) IsCallable() bool { return false }

func (sexpression) AsSymbol() Symbol  { panic("not a symbol") }
func (sexpression) AsNumber() Number  { panic("not a number") }
func (sexpression) AsPair() Pair      { panic("not a pair") }
func (sexpression) AsError() Error    { panic("not an error") }
func (sexpression) AsProcedure() Proc { panic("not a procedure") }

type Symbol = string
type Number = float64

// Nil is the empty list. NIL is its only value; a symbol read as "nil"
// in any case collapses into it.
type Nil struct {
	sexpression
}

var NIL SExpression = Nil{}

func (Nil) Type() DataType   { return TypeSymbol }
func (Nil) IsNil() bool      { return true }
func (Nil) IsSymbol() bool   { return true }
func (Nil) AsSymbol() Symbol { return "NIL" }
func (Nil) String() string   { return "NIL" }

// IsNil also treats a Go nil as the empty list.
func IsNil(e SExpression) bool {
	return e == nil || e.IsNil()
}

type Atom struct {
	sexpression
	isSymbol bool // number if false
	value    any
}

func NewSymbol(s string) SExpression {
	if strings.EqualFold(s, "NIL") {
		return NIL
	}
	return Atom{isSymbol: true, value: s}
}

func NewNumber(n Number) SExpression {
	return Atom{value: n}
}

func (a Atom) Type() DataType {
	if a.isSymbol {
		return TypeSymbol
	}
	return TypeNumber
}

func (a Atom) IsSymbol() bool { return a.isSymbol }
func (a Atom) IsNumber() bool { return !a.isSymbol }

func (a Atom) AsSymbol() Symbol {
	if !a.isSymbol {
		panic("not a symbol")
	}
	return a.value.(Symbol)
}

func (a Atom) AsNumber() Number {
	if a.isSymbol {
		panic("not a number")
	}
	return a.value.(Number)
}

func (a Atom) String() string {
	if a.isSymbol {
		return a.AsSymbol()
	}
	return strconv.FormatFloat(a.AsNumber(), 'f', -1, 64)
}

// SymbolEqual compares symbol names case-insensitively,
// with NIL acting as the symbol named NIL.
func SymbolEqual(e SExpression, name string) bool {
	if IsNil(e) {
		return strings.EqualFold(name, "NIL")
	}
	if !e.IsSymbol() {
		return false
	}
	return strings.EqualFold(e.AsSymbol(), name)
}

type Pair struct {
	sexpression
	pcar SExpression
	pcdr SExpression
}

func NewPair(car, cdr SExpression) SExpression {
	return Pair{pcar: orNil(car), pcdr: orNil(cdr)}
}

func orNil(e SExpression) SExpression {
	if e == nil {
		return NIL
	}
	return e
}

func (p Pair) Type() DataType { return TypePair }
func (p Pair) IsPair() bool   { return true }
func (p Pair) AsPair() Pair   { return p }

func (p Pair) Car() SExpression { return p.pcar }
func (p Pair) Cdr() SExpression { return p.pcdr }

func (p Pair) String() string {
	var sb strings.Builder
	sb.WriteByte('(')
	sb.WriteString(p.pcar.String())
	var e SExpression = p.pcdr
	for e.IsPair() {
		ep := e.AsPair()
		sb.WriteByte(' ')
		sb.WriteString(ep.pcar.String())
		e = ep.pcdr
	}
	if !IsNil(e) {
		sb.WriteString(" . ")
		sb.WriteString(e.String())
	}
	sb.WriteByte(')')
	return sb.String()
}

// List builds a proper list.
func List(list ...SExpression) SExpression {
	return ListWithTail(NIL, list...)
}

// ListWithTail builds a list terminated by tail instead of NIL.
func ListWithTail(tail SExpression, list ...SExpression) SExpression {
	cons := orNil(tail)
	for i := len(list) - 1; i >= 0; i-- {
		cons = NewPair(list[i], cons)
	}
	return cons
}

// Slice walks a chain of pairs, returning its elements and whatever
// non-pair value terminates it (NIL for a proper list).
func Slice(e SExpression) ([]SExpression, SExpression) {
	list := []SExpression{}
	e = orNil(e)
	for e.IsPair() {
		p := e.AsPair()
		list = append(list, p.pcar)
		e = p.pcdr
	}
	return list, e
}

// BuiltinProc receives the list of already evaluated arguments
// and returns a result or an Error.
type BuiltinProc = func(args SExpression) SExpression

type Proc struct {
	sexpression
	isBuiltin bool // closure if false
	value     any
}

type closure struct {
	lambda SExpression
	env    *Env
}

func NewPrimitive(f BuiltinProc) SExpression {
	return Proc{isBuiltin: true, value: f}
}

// NewClosure pairs an unclassified lambda form with the environment it was
// evaluated in. The environment is shared, not copied.
func NewClosure(lambda SExpression, env *Env) SExpression {
	return Proc{value: closure{lambda: lambda, env: env}}
}

func (p Proc) Type() DataType {
	if p.isBuiltin {
		return TypePrimitive
	}
	return TypeClosure
}

func (p Proc) IsCallable() bool  { return true }
func (p Proc) AsProcedure() Proc { return p }
func (p Proc) IsBuiltin() bool   { return p.isBuiltin }

func (p Proc) builtin() BuiltinProc {
	return p.value.(BuiltinProc)
}

func (p Proc) defined() closure {
	return p.value.(closure)
}

// Lambda returns the lambda form of a closure.
func (p Proc) Lambda() SExpression {
	return p.defined().lambda
}

// Env returns the environment captured by a closure.
func (p Proc) Env() *Env {
	return p.defined().env
}

func (p Proc) String() string {
	if p.isBuiltin {
		return "#<primitive>"
	}
	return "#<closure>"
}

type Error struct {
	sexpression
	msg     SExpression
	context SExpression
}

// NewError builds an Error whose message is a symbol and whose context is
// the offending sub-expression.
func NewError(context SExpression, format string, args ...any) SExpression {
	return Error{
		msg:     Atom{isSymbol: true, value: fmt.Sprintf(format, args...)},
		context: orNil(context),
	}
}

func (e Error) Type() DataType { return TypeError }
func (e Error) IsError() bool  { return true }
func (e Error) AsError() Error { return e }

func (e Error) Message() string {
	return e.msg.AsSymbol()
}

func (e Error) Context() SExpression {
	return e.context
}

func (e Error) String() string {
	return fmt.Sprintf("#<error>(%s %s)", e.msg, e.context)
}
