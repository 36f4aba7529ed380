package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/peterh/liner"

	"github.com/deosjr/mulisp/config"
	"github.com/deosjr/mulisp/lisp"
)

const helpText = `:quit  exit
:env   list bound names
:help  show this text`

// prompter is the part of *liner.State the REPL reads through.
type prompter interface {
	Prompt(string) (string, error)
}

func startREPL(l lisp.Lisp, cfg config.Config) error {
	ln := liner.NewLiner()
	defer ln.Close()
	ln.SetCtrlCAborts(true)

	if cfg.HistoryFile != "" {
		if f, err := os.Open(cfg.HistoryFile); err == nil {
			_, _ = ln.ReadHistory(f)
			f.Close()
		}
		defer func() {
			if f, err := os.Create(cfg.HistoryFile); err == nil {
				_, _ = ln.WriteHistory(f)
				f.Close()
			}
		}()
	}

	for {
		input, err := readInput(ln, cfg.Prompt, cfg.ContinuationPrompt)
		if errors.Is(err, io.EOF) {
			fmt.Println()
			return nil
		}
		if errors.Is(err, liner.ErrPromptAborted) {
			continue
		}
		if err != nil {
			return err
		}
		if strings.TrimSpace(input) == "" {
			continue
		}
		ln.AppendHistory(input)
		if quit := evalInput(l, input, os.Stdout); quit {
			return nil
		}
	}
}

// readInput keeps prompting while the input read so far is an unfinished
// expression.
func readInput(p prompter, prompt, cont string) (string, error) {
	var sb strings.Builder
	for {
		pr := prompt
		if sb.Len() > 0 {
			pr = cont
		}
		line, err := p.Prompt(pr)
		if err != nil {
			return "", err
		}
		if sb.Len() > 0 {
			sb.WriteByte('\n')
		}
		sb.WriteString(line)
		src := sb.String()
		if strings.HasPrefix(strings.TrimSpace(src), ":") {
			return src, nil
		}
		_, perr := lisp.Multiparse(src)
		if perr == nil || !errors.Is(perr, lisp.ErrIncomplete) {
			return src, nil
		}
	}
}

// evalInput handles one complete REPL input and reports whether to quit.
func evalInput(l lisp.Lisp, input string, w io.Writer) bool {
	switch cmd := strings.TrimSpace(input); {
	case cmd == ":quit":
		return true
	case cmd == ":env":
		fmt.Fprintln(w, strings.Join(l.Env.Names(), " "))
		return false
	case cmd == ":help":
		fmt.Fprintln(w, helpText)
		return false
	case strings.HasPrefix(cmd, ":"):
		fmt.Fprintf(w, "unknown command %s\n%s\n", cmd, helpText)
		return false
	}
	sexpressions, err := lisp.Multiparse(input)
	if err != nil {
		fmt.Fprintln(w, "read error:", err)
		return false
	}
	for _, e := range sexpressions {
		fmt.Fprintln(w, l.EvalExpr(e))
	}
	return false
}
