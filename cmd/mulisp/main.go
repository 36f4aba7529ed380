package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/deosjr/mulisp/config"
	"github.com/deosjr/mulisp/lisp"
	"github.com/deosjr/mulisp/prelude"
)

func main() {
	log.SetFlags(0)
	configPath := flag.String("config", "", "YAML config file (default ~/"+config.DefaultFile+")")
	noPrelude := flag.Bool("no-prelude", false, "do not load the standard definitions")
	quiet := flag.Bool("q", false, "only print errors when running files")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatal(err)
	}
	if *noPrelude {
		cfg.Prelude = false
	}
	if *quiet {
		cfg.Echo = false
	}
	l, err := newLisp(cfg)
	if err != nil {
		log.Fatal(err)
	}
	if flag.NArg() == 0 {
		if err := startREPL(l, cfg); err != nil {
			log.Fatal(err)
		}
		return
	}
	for _, filename := range flag.Args() {
		if err := runFile(l, filename, os.Stdout, cfg.Echo); err != nil {
			log.Fatal(err)
		}
	}
}

func newLisp(cfg config.Config) (lisp.Lisp, error) {
	l := lisp.New()
	if cfg.Prelude {
		if err := prelude.Load(l); err != nil {
			return l, fmt.Errorf("prelude: %w", err)
		}
	}
	for _, filename := range cfg.Load {
		if err := l.LoadFile(filename); err != nil {
			return l, err
		}
	}
	return l, nil
}

// runFile evaluates every expression in filename in order. Error values are
// always printed and do not stop the run; other results only when echo is set.
func runFile(l lisp.Lisp, filename string, w io.Writer, echo bool) error {
	sexpressions, err := lisp.ParseFile(filename)
	if err != nil {
		return fmt.Errorf("%s: %w", filename, err)
	}
	for _, e := range sexpressions {
		v := l.EvalExpr(e)
		if echo || v.IsError() {
			fmt.Fprintln(w, v)
		}
	}
	return nil
}
