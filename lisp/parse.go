package lisp

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"
)

// ErrIncomplete is returned when input ends inside an unfinished expression.
var ErrIncomplete = errors.New("incomplete expression")

// ParseFile slurps in the entire file and returns its list of expressions.
func ParseFile(filename string) ([]SExpression, error) {
	b, err := os.ReadFile(filename)
	if err != nil {
		return nil, err
	}
	return Multiparse(string(b))
}

// Parse reads the first expression in program.
func Parse(program string) (SExpression, error) {
	list, err := Multiparse(program)
	if err != nil {
		return nil, err
	}
	if len(list) == 0 {
		return nil, fmt.Errorf("%w: no expression", ErrIncomplete)
	}
	return list[0], nil
}

func mustParse(program string) SExpression {
	p, err := Parse(program)
	if err != nil {
		panic(err)
	}
	return p
}

type parsed struct {
	sexp    SExpression
	special parseConst
}

type parseConst uint8

const (
	none parseConst = iota
	bracket
	quote
	dot
)

func Multiparse(program string) ([]SExpression, error) {
	stack := []parsed{}
	for {
		token, p, err := nextToken(program)
		if err != nil {
			return nil, err
		}
		if token == "" {
			break
		}
		program = p
		switch token {
		case "(":
			stack = append(stack, parsed{special: bracket})
		case ")":
			s, err := simplifyStack(stack)
			if err != nil {
				return nil, err
			}
			stack = s
		case "'":
			stack = append(stack, parsed{special: quote})
		case ".":
			if !insideList(stack) {
				return nil, fmt.Errorf("unexpected '.'")
			}
			stack = append(stack, parsed{special: dot})
		default:
			stack = pushQuoted(stack, readAtom(token))
		}
	}

	list := []SExpression{}
	for _, p := range stack {
		switch p.special {
		case bracket:
			return nil, fmt.Errorf("%w: missing ')'", ErrIncomplete)
		case quote:
			return nil, fmt.Errorf("%w: nothing to quote", ErrIncomplete)
		}
		list = append(list, p.sexp)
	}
	return list, nil
}

// insideList reports whether a '.' would land directly inside a list
// after at least one element.
func insideList(stack []parsed) bool {
	if len(stack) == 0 || stack[len(stack)-1].special != none {
		return false
	}
	for i := len(stack) - 1; i >= 0; i-- {
		switch stack[i].special {
		case bracket:
			return true
		case none:
			continue
		}
		return false
	}
	return false
}

// pushQuoted pushes e, first wrapping it in (QUOTE e) once for every
// quote mark directly preceding it.
func pushQuoted(stack []parsed, e SExpression) []parsed {
	for len(stack) > 0 && stack[len(stack)-1].special == quote {
		e = List(NewSymbol("QUOTE"), e)
		stack = stack[:len(stack)-1]
	}
	return append(stack, parsed{sexp: e})
}

// we just consumed a closing bracket, find matching opening bracket from top of stack
// and push the resulting list back on the stack
func simplifyStack(stack []parsed) ([]parsed, error) {
	list := []parsed{}
	for len(stack) > 0 {
		p := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		switch p.special {
		case quote:
			return nil, fmt.Errorf("nothing to quote before ')'")
		case bracket:
			rev := make([]parsed, len(list))
			for i, v := range list {
				rev[len(list)-1-i] = v
			}
			e, err := buildList(rev)
			if err != nil {
				return nil, err
			}
			return pushQuoted(stack, e), nil
		}
		list = append(list, p)
	}
	return nil, fmt.Errorf("unexpected ')'")
}

// buildList turns (a b . c) into an improper list; a dot is only allowed
// before the last element.
func buildList(items []parsed) (SExpression, error) {
	elems := []SExpression{}
	for i, p := range items {
		if p.special != dot {
			elems = append(elems, p.sexp)
			continue
		}
		if i != len(items)-2 || i == 0 {
			return nil, fmt.Errorf("unexpected '.'")
		}
		return ListWithTail(items[i+1].sexp, elems...), nil
	}
	return List(elems...), nil
}

func nextToken(program string) (string, string, error) {
	for {
		program = strings.TrimLeftFunc(program, unicode.IsSpace)
		switch {
		case strings.HasPrefix(program, "#|"):
			// multiline comment: read until |# and ignore
			_, rest, found := strings.Cut(program, "|#")
			if !found {
				return "", "", fmt.Errorf("missing matching comment end |#")
			}
			program = rest
			continue
		case strings.HasPrefix(program, ";"):
			_, rest, _ := strings.Cut(program, "\n")
			program = rest
			continue
		}
		break
	}
	if len(program) == 0 {
		return "", "", nil
	}

	r, size := utf8.DecodeRuneInString(program)
	if strings.ContainsRune("().'", r) {
		return string(r), program[size:], nil
	}
	// a number is a run of decimal digits, whatever follows it
	if r >= '0' && r <= '9' {
		end := strings.IndexFunc(program, func(r rune) bool { return r < '0' || r > '9' })
		if end < 0 {
			end = len(program)
		}
		return program[:end], program[end:], nil
	}
	end := strings.IndexFunc(program, func(r rune) bool {
		return unicode.IsSpace(r) || r == '(' || r == ')'
	})
	if end < 0 {
		end = len(program)
	}
	return program[:end], program[end:], nil
}

func readAtom(token string) SExpression {
	if token[0] >= '0' && token[0] <= '9' {
		if n, err := strconv.ParseFloat(token, 64); err == nil {
			return NewNumber(n)
		}
	}
	return NewSymbol(token)
}
