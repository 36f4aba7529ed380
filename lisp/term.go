package lisp

// Term is the syntactic role of a datum during evaluation. Terms are built
// fresh by Classify on every evaluation step and never cached.
type Term interface {
	// Original is the datum the term was classified from.
	Original() SExpression
}

type term struct {
	orig SExpression
}

func (t term) Original() SExpression {
	return t.orig
}

// OtherTerm is a well-formed S-expression that is not a recognised term,
// such as a LAMBDA with a malformed parameter list.
type OtherTerm struct {
	term
	Reason string
}

// DataTerm evaluates to Datum without further reduction.
type DataTerm struct {
	term
	Datum SExpression
}

type VarTerm struct {
	term
	Name Symbol
}

// AppTerm applies Left to the unevaluated, possibly improper, argument list Right.
type AppTerm struct {
	term
	Left  SExpression
	Right SExpression
}

// AbsTerm is a lambda abstraction. If HasRest is set, Rest is bound to the
// remainder of the argument list after the fixed Params.
type AbsTerm struct {
	term
	Params  []Symbol
	Rest    Symbol
	HasRest bool
	Body    SExpression
}

// MuTerm is a recursive binding (LABEL Var Body).
type MuTerm struct {
	term
	Var  Symbol
	Body SExpression
}

// GuardedTerm is a COND; Clauses is nil when there are none.
type GuardedTerm struct {
	term
	Clauses *GuardedClause
}

type GuardedClause struct {
	Guard      SExpression
	Consequent SExpression
	Next       *GuardedClause
}

// Classify maps any datum onto exactly one term variant.
func Classify(e SExpression) Term {
	e = orNil(e)
	switch e.Type() {
	case TypeNumber, TypePrimitive, TypeClosure, TypeError:
		return DataTerm{term: term{e}, Datum: e}
	case TypeSymbol:
		return VarTerm{term: term{e}, Name: e.AsSymbol()}
	case TypePair:
		return classifyList(e.AsPair())
	}
	panic("unreachable: unknown datum type " + e.Type().String())
}

func classifyList(p Pair) Term {
	head, rest := p.Car(), p.Cdr()
	t := term{p}
	switch {
	case SymbolEqual(head, "QUOTE"):
		args, tail := Slice(rest)
		if len(args) != 1 || !IsNil(tail) {
			return OtherTerm{term: t, Reason: "QUOTE takes exactly one argument"}
		}
		return DataTerm{term: t, Datum: args[0]}
	case SymbolEqual(head, "LABEL"):
		args, tail := Slice(rest)
		if len(args) != 2 || !IsNil(tail) {
			return OtherTerm{term: t, Reason: "LABEL expects a name and a body"}
		}
		if !args[0].IsSymbol() {
			return OtherTerm{term: t, Reason: "LABEL name is not a symbol"}
		}
		return MuTerm{term: t, Var: args[0].AsSymbol(), Body: args[1]}
	case SymbolEqual(head, "LAMBDA"):
		return classifyLambda(t, rest)
	case SymbolEqual(head, "COND"):
		return classifyCond(t, rest)
	}
	return AppTerm{term: t, Left: head, Right: rest}
}

// (LAMBDA x ...)         no fixed params, x takes all arguments
// (LAMBDA (x y) ...)     two fixed params
// (LAMBDA (x y . z) ...) two fixed params, z takes the rest
func classifyLambda(t term, rest SExpression) Term {
	args, tail := Slice(rest)
	if len(args) != 2 || !IsNil(tail) {
		return OtherTerm{term: t, Reason: "LAMBDA expects a parameter list and a body"}
	}
	abs := AbsTerm{term: t, Params: []Symbol{}, Body: args[1]}
	params, restParam := Slice(args[0])
	for _, param := range params {
		if !param.IsSymbol() {
			return OtherTerm{term: t, Reason: "LAMBDA parameter " + param.String() + " is not a symbol"}
		}
		abs.Params = append(abs.Params, param.AsSymbol())
	}
	switch {
	case IsNil(restParam):
	case restParam.IsSymbol():
		abs.Rest = restParam.AsSymbol()
		abs.HasRest = true
	default:
		return OtherTerm{term: t, Reason: "LAMBDA rest parameter " + restParam.String() + " is not a symbol"}
	}
	return abs
}

func classifyCond(t term, rest SExpression) Term {
	var first, last *GuardedClause
	it := rest
	for ; it.IsPair(); it = it.AsPair().Cdr() {
		clause := it.AsPair().Car()
		parts, tail := Slice(clause)
		if len(parts) != 2 || !IsNil(tail) {
			return OtherTerm{term: t, Reason: "COND clause " + clause.String() + " is not (guard consequent)"}
		}
		gc := &GuardedClause{Guard: parts[0], Consequent: parts[1]}
		if first == nil {
			first = gc
		} else {
			last.Next = gc
		}
		last = gc
	}
	if !IsNil(it) {
		return OtherTerm{term: t, Reason: "COND clauses form an improper list"}
	}
	return GuardedTerm{term: t, Clauses: first}
}
