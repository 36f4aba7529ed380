package lisp

// Eval reduces e to a value under env. The result is either a value or an
// Error; user mistakes never panic. There is no tail call elimination, so
// deep non-tail recursion in user programs grows the Go stack.
func Eval(env *Env, e SExpression) SExpression {
	return evalTerm(env, Classify(e))
}

func evalTerm(env *Env, t Term) SExpression {
	switch t := t.(type) {
	case OtherTerm:
		return NewError(t.Original(), "ERROR: Cannot evaluate: %s", t.Reason)
	case DataTerm:
		return t.Datum
	case VarTerm:
		v, ok := env.Lookup(t.Name)
		if !ok {
			return NewError(t.Original(), "ERROR: Undefined variable")
		}
		return v
	case AppTerm:
		fun := Eval(env, t.Left)
		if fun.IsError() {
			return fun
		}
		args := []SExpression{}
		it := t.Right
		for ; it.IsPair(); it = it.AsPair().Cdr() {
			evalled := Eval(env, it.AsPair().Car())
			if evalled.IsError() {
				return evalled
			}
			args = append(args, evalled)
		}
		// an improper argument list keeps its (evaluated) terminator
		tail := NIL
		if !IsNil(it) {
			tail = Eval(env, it)
			if tail.IsError() {
				return tail
			}
		}
		return Apply(fun, ListWithTail(tail, args...))
	case AbsTerm:
		return NewClosure(t.Original(), env)
	case MuTerm:
		// Bind the name to a blackhole, evaluate, then rebind the same handle
		// to the result. Closures built by the body captured this handle, so
		// they see the final value; forcing the name before that is an
		// infinite recursion.
		nenv := env.Clone()
		nenv.Bind(t.Var, NewError(t.Original(), "Infinite recursion."))
		v := Eval(nenv, t.Body)
		nenv.Bind(t.Var, v)
		return v
	case GuardedTerm:
		for c := t.Clauses; c != nil; c = c.Next {
			tested := Eval(env, c.Guard)
			if tested.IsError() {
				return tested
			}
			if !IsNil(tested) {
				return Eval(env, c.Consequent)
			}
		}
		return NIL
	}
	panic("unreachable: unknown term")
}

// Apply calls fun on a list of already evaluated arguments.
func Apply(fun, args SExpression) SExpression {
	args = orNil(args)
	switch fun.Type() {
	case TypeError:
		return fun
	case TypePair, TypeNumber, TypeSymbol:
		return NewError(NewPair(fun, args), "ERROR: Cannot apply")
	case TypePrimitive:
		return orNil(fun.AsProcedure().builtin()(args))
	case TypeClosure:
		return applyClosure(fun.AsProcedure(), args)
	}
	panic("unreachable: unknown datum type " + fun.Type().String())
}

func applyClosure(proc Proc, args SExpression) SExpression {
	defproc := proc.defined()
	abs, ok := Classify(defproc.lambda).(AbsTerm)
	if !ok {
		panic("unreachable: closure over a non-lambda " + defproc.lambda.String())
	}
	env := defproc.env.Clone()
	it := args
	for _, param := range abs.Params {
		if !it.IsPair() {
			return NewError(NewPair(proc, args), "Missing a parameter for %s", param)
		}
		env.Bind(param, it.AsPair().Car())
		it = it.AsPair().Cdr()
	}
	if abs.HasRest {
		env.Bind(abs.Rest, it)
	} else if !IsNil(it) {
		return NewError(NewPair(proc, args), "Too many parameters")
	}
	return Eval(env, abs.Body)
}
