package lisp

import "fmt"

// Lisp is an interpreter context: one root environment with the
// primitives bound, created once and passed to every evaluation.
type Lisp struct {
	Env *Env
}

func New() Lisp {
	return Lisp{Env: GlobalEnv()}
}

// Eval reads one expression from input and evaluates it in the root
// environment. Only read failures are returned as errors; an evaluation
// that fails yields an Error value.
func (l Lisp) Eval(input string) (SExpression, error) {
	sexp, err := Parse(input)
	if err != nil {
		return nil, err
	}
	return l.EvalExpr(sexp), nil
}

func (l Lisp) EvalExpr(e SExpression) SExpression {
	return Eval(l.Env, e)
}

// Define binds name in the root environment. Closures that captured the
// root environment see the new binding.
func (l Lisp) Define(name Symbol, value SExpression) {
	l.Env.Bind(name, value)
}

func (l Lisp) AddBuiltin(name Symbol, f BuiltinProc) {
	l.Env.Bind(name, NewPrimitive(f))
}

// EvalError carries an Error value out through a Go error return.
type EvalError struct {
	Datum Error
}

func (e *EvalError) Error() string {
	return fmt.Sprintf("%s: %s", e.Datum.Message(), e.Datum.Context())
}

// AsGoError returns nil for values and an *EvalError for Error values.
func AsGoError(e SExpression) error {
	if e == nil || !e.IsError() {
		return nil
	}
	return &EvalError{Datum: e.AsError()}
}
