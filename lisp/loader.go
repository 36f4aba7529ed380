package lisp

import (
	"fmt"
	"os"
)

// Load evaluates a string of (LABEL name body) definitions, binding each
// result to its name in the root environment. Later definitions can use
// earlier ones.
func (l Lisp) Load(data string) error {
	sexprs, err := Multiparse(data)
	if err != nil {
		return err
	}
	for _, def := range sexprs {
		mu, ok := Classify(def).(MuTerm)
		if !ok {
			return fmt.Errorf("not a LABEL definition: %s", def)
		}
		v := l.EvalExpr(def)
		if err := AsGoError(v); err != nil {
			return fmt.Errorf("loading %s: %w", mu.Var, err)
		}
		l.Define(mu.Var, v)
	}
	return nil
}

func (l Lisp) LoadFile(filename string) error {
	b, err := os.ReadFile(filename)
	if err != nil {
		return err
	}
	if err := l.Load(string(b)); err != nil {
		return fmt.Errorf("%s: %w", filename, err)
	}
	return nil
}
