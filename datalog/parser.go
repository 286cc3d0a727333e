package datalog

import (
	"fmt"
	"strings"
	"unicode"

	"golang.org/x/xerrors"
)

// ErrSyntax is wrapped by every parse error Parse returns.
var ErrSyntax = xerrors.New("datalog: syntax error")

// Parse reads a single rule of the form
//
//	head(t1, ..., tn) :- body1(...), body2(...), ... .
//
// where each ti is a capitalized variable, a lowercase atom, or "_" for
// an unbound placeholder. Whitespace is insignificant
// between tokens.
func Parse(src string) (Query, error) {
	p := &parser{src: src}
	p.skipSpace()
	head, err := p.predicate()
	if err != nil {
		return Query{}, err
	}
	if err := p.expect(":-"); err != nil {
		return Query{}, err
	}
	var body []Predicate
	for {
		pred, err := p.predicate()
		if err != nil {
			return Query{}, err
		}
		body = append(body, pred)
		p.skipSpace()
		if p.consume(",") {
			continue
		}
		break
	}
	if err := p.expect("."); err != nil {
		return Query{}, err
	}
	p.skipSpace()
	if p.pos != len(p.src) {
		return Query{}, p.errorf("unexpected trailing input %q", p.src[p.pos:])
	}
	return Query{Head: head, Body: body}, nil
}

type parser struct {
	src string
	pos int
}

func (p *parser) errorf(format string, args ...interface{}) error {
	return fmt.Errorf("%w: at offset %d: %s", ErrSyntax, p.pos, fmt.Sprintf(format, args...))
}

func (p *parser) skipSpace() {
	for p.pos < len(p.src) && unicode.IsSpace(rune(p.src[p.pos])) {
		p.pos++
	}
}

func (p *parser) consume(tok string) bool {
	p.skipSpace()
	if strings.HasPrefix(p.src[p.pos:], tok) {
		p.pos += len(tok)
		return true
	}
	return false
}

func (p *parser) expect(tok string) error {
	if !p.consume(tok) {
		return p.errorf("expected %q", tok)
	}
	return nil
}

func (p *parser) ident() (string, error) {
	p.skipSpace()
	start := p.pos
	if p.pos >= len(p.src) || !unicode.IsLetter(rune(p.src[p.pos])) {
		return "", p.errorf("expected identifier")
	}
	p.pos++
	for p.pos < len(p.src) {
		c := rune(p.src[p.pos])
		if !unicode.IsLetter(c) && !unicode.IsDigit(c) && c != '_' {
			break
		}
		p.pos++
	}
	return p.src[start:p.pos], nil
}

func (p *parser) term() (Term, error) {
	p.skipSpace()
	if p.pos < len(p.src) && p.src[p.pos] == '_' {
		boundary := p.pos+1 >= len(p.src) || !isIdentRune(rune(p.src[p.pos+1]))
		if boundary {
			p.pos++
			return Term{Kind: Placeholder}, nil
		}
	}
	name, err := p.ident()
	if err != nil {
		return Term{}, err
	}
	if unicode.IsUpper(rune(name[0])) {
		return Term{Kind: Var, Name: name}, nil
	}
	return Term{Kind: Atom, Name: name}, nil
}

func isIdentRune(c rune) bool {
	return unicode.IsLetter(c) || unicode.IsDigit(c) || c == '_'
}

func (p *parser) predicate() (Predicate, error) {
	name, err := p.ident()
	if err != nil {
		return Predicate{}, err
	}
	if err := p.expect("("); err != nil {
		return Predicate{}, err
	}
	var terms []Term
	for {
		t, err := p.term()
		if err != nil {
			return Predicate{}, err
		}
		terms = append(terms, t)
		if p.consume(",") {
			continue
		}
		break
	}
	if err := p.expect(")"); err != nil {
		return Predicate{}, err
	}
	return Predicate{Name: name, Terms: terms}, nil
}
