package prelude

import (
	_ "embed"

	"github.com/deosjr/mulisp/lisp"
)

//go:embed prelude.lisp
var prelude string

// Load binds the standard definitions into the root environment of l.
func Load(l lisp.Lisp) error {
	return l.Load(prelude)
}
