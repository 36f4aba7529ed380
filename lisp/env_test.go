package lisp

import (
	"reflect"
	"testing"
)

func TestEnvLookup(t *testing.T) {
	env := NewEnv()
	if _, ok := env.Lookup("x"); ok {
		t.Fatal("empty env has x")
	}
	for i, name := range []Symbol{"m", "c", "x", "a", "e", "z"} {
		env.Bind(name, NewNumber(Number(i)))
	}
	for i, tt := range []struct {
		name string
		want string
	}{
		{name: "m", want: "0"},
		{name: "C", want: "1"},
		{name: "X", want: "2"},
		{name: "a", want: "3"},
		{name: "e", want: "4"},
		{name: "Z", want: "5"},
	} {
		v, ok := env.Lookup(tt.name)
		if !ok {
			t.Errorf("%d) %s not found", i, tt.name)
			continue
		}
		if got := v.String(); got != tt.want {
			t.Errorf("%d) got %s want %s", i, got, tt.want)
		}
	}
	if _, ok := env.Lookup("b"); ok {
		t.Error("found unbound b")
	}
	want := []Symbol{"a", "c", "e", "m", "x", "z"}
	if got := env.Names(); !reflect.DeepEqual(got, want) {
		t.Errorf("got %v want %v", got, want)
	}
}

func TestEnvRebind(t *testing.T) {
	env := NewEnv()
	env.Bind("x", NewNumber(1))
	env.Bind("X", NewNumber(2))
	v, _ := env.Lookup("x")
	if got := v.String(); got != "2" {
		t.Errorf("got %s want 2", got)
	}
	if n := len(env.Names()); n != 1 {
		t.Errorf("got %d bindings want 1", n)
	}
}

func TestEnvCloneIndependence(t *testing.T) {
	e0 := NewEnv()
	e0.Bind("y", NewNumber(1))
	e1 := e0.Clone()
	e1.Bind("x", NewNumber(5))
	if _, ok := e0.Lookup("x"); ok {
		t.Error("bind in clone leaked into original")
	}
	e0.Bind("y", NewNumber(2))
	v, _ := e1.Lookup("y")
	if got := v.String(); got != "1" {
		t.Errorf("rebind in original leaked into clone: got %s", got)
	}
	v, _ = e1.Lookup("x")
	if got := v.String(); got != "5" {
		t.Errorf("got %s want 5", got)
	}
}

func TestEnvStructuralSharing(t *testing.T) {
	env := NewEnv()
	for _, name := range []Symbol{"m", "c", "x", "a", "e"} {
		env.Bind(name, NewNumber(0))
	}
	clone := env.Clone()
	if clone.root != env.root {
		t.Fatal("clone copied the tree")
	}
	clone.Bind("z", NewNumber(1))
	if clone.root == env.root {
		t.Fatal("bind modified the shared root")
	}
	// z goes right of m; the whole left subtree is untouched
	if clone.root.left != env.root.left {
		t.Error("left subtree not shared after inserting on the right")
	}
	if clone.root.right == env.root.right {
		t.Error("path to the new node was not copied")
	}
	right := clone.root.right
	clone.Bind("a", NewNumber(2))
	if clone.root.right != right {
		t.Error("rebinding on the left copied the right subtree")
	}
	// a sits below c, so c's other child e is still shared
	if clone.root.left.right != env.root.left.right {
		t.Error("sibling of rebound node not shared")
	}
	v, _ := env.Lookup("a")
	if got := v.String(); got != "0" {
		t.Errorf("rebind through clone changed original: got %s", got)
	}
}
