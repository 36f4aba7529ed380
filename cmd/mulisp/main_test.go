package main

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/deosjr/mulisp/config"
	"github.com/deosjr/mulisp/lisp"
)

func TestRunFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "prog.lisp")
	src := `(ADD 1 2)
(CAR 1)
((LABEL FACT (LAMBDA (n) (COND ((EQ n 0) 1) (T (MUL n (FACT (SUB n 1))))))) 5)
(LENGTH '(1 2 3))`
	if err := os.WriteFile(path, []byte(src), 0o644); err != nil {
		t.Fatal(err)
	}
	cfg := config.Default()
	cfg.HistoryFile = ""
	l, err := newLisp(cfg)
	if err != nil {
		t.Fatal(err)
	}
	for i, tt := range []struct {
		echo bool
		want string
	}{
		{
			echo: true,
			want: "3\n#<error>(CAR: not a pair (1))\n120\n3\n",
		},
		{
			echo: false,
			want: "#<error>(CAR: not a pair (1))\n",
		},
	} {
		var buf bytes.Buffer
		if err := runFile(l, path, &buf, tt.echo); err != nil {
			t.Fatalf("%d) %v", i, err)
		}
		if got := buf.String(); got != tt.want {
			t.Errorf("%d) got %q want %q", i, got, tt.want)
		}
	}
	if err := runFile(l, filepath.Join(t.TempDir(), "missing.lisp"), io.Discard, true); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestNewLispWithoutPrelude(t *testing.T) {
	cfg := config.Default()
	cfg.Prelude = false
	l, err := newLisp(cfg)
	if err != nil {
		t.Fatal(err)
	}
	if _, ok := l.Env.Lookup("MAP"); ok {
		t.Error("prelude loaded")
	}
}

func TestNewLispLoadsFiles(t *testing.T) {
	path := filepath.Join(t.TempDir(), "defs.lisp")
	if err := os.WriteFile(path, []byte("(LABEL SQUARE (LAMBDA (x) (MUL x x)))"), 0o644); err != nil {
		t.Fatal(err)
	}
	cfg := config.Default()
	cfg.Load = []string{path}
	l, err := newLisp(cfg)
	if err != nil {
		t.Fatal(err)
	}
	e, _ := l.Eval("(MAP SQUARE '(1 2 3))")
	if got := e.String(); got != "(1 4 9)" {
		t.Errorf("got %s want (1 4 9)", got)
	}

	cfg.Load = []string{filepath.Join(t.TempDir(), "missing.lisp")}
	if _, err := newLisp(cfg); err == nil {
		t.Error("expected error for missing load file")
	}
}

type fakePrompter struct {
	lines   []string
	prompts []string
}

func (f *fakePrompter) Prompt(p string) (string, error) {
	f.prompts = append(f.prompts, p)
	if len(f.lines) == 0 {
		return "", io.EOF
	}
	line := f.lines[0]
	f.lines = f.lines[1:]
	return line, nil
}

func TestReadInput(t *testing.T) {
	for i, tt := range []struct {
		lines   []string
		want    string
		prompts []string
	}{
		{
			lines:   []string{"(ADD 1 2)"},
			want:    "(ADD 1 2)",
			prompts: []string{"> "},
		},
		{
			lines:   []string{"(ADD 1", "2)"},
			want:    "(ADD 1\n2)",
			prompts: []string{"> ", ": "},
		},
		{
			lines:   []string{"((LAMBDA (x)", "x)", "5)"},
			want:    "((LAMBDA (x)\nx)\n5)",
			prompts: []string{"> ", ": ", ": "},
		},
		{
			lines:   []string{")"},
			want:    ")",
			prompts: []string{"> "},
		},
		{
			lines:   []string{":env"},
			want:    ":env",
			prompts: []string{"> "},
		},
	} {
		p := &fakePrompter{lines: tt.lines}
		got, err := readInput(p, "> ", ": ")
		if err != nil {
			t.Errorf("%d) %v", i, err)
			continue
		}
		if got != tt.want {
			t.Errorf("%d) got %q want %q", i, got, tt.want)
		}
		if strings.Join(p.prompts, "|") != strings.Join(tt.prompts, "|") {
			t.Errorf("%d) got prompts %q want %q", i, p.prompts, tt.prompts)
		}
	}
	if _, err := readInput(&fakePrompter{lines: []string{"(ADD"}}, "> ", ": "); err != io.EOF {
		t.Errorf("got %v want EOF", err)
	}
}

func TestEvalInput(t *testing.T) {
	l := lisp.New()
	for i, tt := range []struct {
		input string
		want  string
		quit  bool
	}{
		{input: "(ADD 1 2)", want: "3\n"},
		{input: "1 2", want: "1\n2\n"},
		{input: "(CDR 'a)", want: "#<error>(CDR: not a pair (a))\n"},
		{input: "(a . )", want: "read error: unexpected '.'\n"},
		{input: ":env", want: "ADD ATOM CAR CDR CONS DIV EQ MUL NIL SUB T\n"},
		{input: ":nope", want: "unknown command :nope\n" + helpText + "\n"},
		{input: " :quit ", quit: true},
	} {
		var buf bytes.Buffer
		quit := evalInput(l, tt.input, &buf)
		if quit != tt.quit {
			t.Errorf("%d) got quit %v want %v", i, quit, tt.quit)
		}
		if got := buf.String(); got != tt.want {
			t.Errorf("%d) got %q want %q", i, got, tt.want)
		}
	}
}
