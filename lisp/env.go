package lisp

import "strings"

// Env maps symbol names, case-insensitively, to values. It is a handle onto
// a persistent binary search tree: nodes are never modified after creation,
// so Bind copies the path from the root and shares every untouched subtree.
// A Clone shares the tree but not the handle, so binding into one never
// affects the other.
// TODO: unbalanced; a red-black tree would bound lookup depth.
type Env struct {
	root *node
}

type node struct {
	name  Symbol
	value SExpression
	left  *node
	right *node
}

func NewEnv() *Env {
	return &Env{}
}

func compareNames(a, b Symbol) int {
	return strings.Compare(strings.ToLower(a), strings.ToLower(b))
}

func (e *Env) Lookup(s Symbol) (SExpression, bool) {
	n := e.root
	for n != nil {
		switch c := compareNames(s, n.name); {
		case c < 0:
			n = n.left
		case c > 0:
			n = n.right
		default:
			return n.value, true
		}
	}
	return nil, false
}

// Bind installs a new root in which s maps to value.
// Any earlier binding of s in this handle is replaced.
func (e *Env) Bind(s Symbol, value SExpression) {
	e.root = insert(e.root, s, orNil(value))
}

func insert(n *node, s Symbol, value SExpression) *node {
	if n == nil {
		return &node{name: s, value: value}
	}
	cp := *n
	switch c := compareNames(s, n.name); {
	case c < 0:
		cp.left = insert(n.left, s, value)
	case c > 0:
		cp.right = insert(n.right, s, value)
	default:
		cp.value = value
	}
	return &cp
}

func (e *Env) Clone() *Env {
	return &Env{root: e.root}
}

// Names lists bound names in sorted order.
func (e *Env) Names() []Symbol {
	names := []Symbol{}
	var walk func(*node)
	walk = func(n *node) {
		if n == nil {
			return
		}
		walk(n.left)
		names = append(names, n.name)
		walk(n.right)
	}
	walk(e.root)
	return names
}
