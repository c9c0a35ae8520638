// Package parser builds expression trees from infix strings.
//
// The grammar is deliberately small: numbers, single letter variables and the
// binary operators + - * / ^. There are no parentheses and no unary operators.
package parser

import (
	"fmt"
	"unicode/utf8"

	"github.com/cockroachdb/errors"

	"go.creack.net/exprtree/ast"
	"go.creack.net/exprtree/lexer"
)

// Error reports where parsing failed.
type Error struct {
	Pos   int    // Byte offset in the input.
	Token string // Offending token, "EOF" at end of input.
	Err   error
}

func (e *Error) Error() string {
	return fmt.Sprintf("parse error at offset %d near %q: %s", e.Pos, e.Token, e.Err)
}

func (e *Error) Unwrap() error { return e.Err }

type parser struct {
	input  string
	tokens []lexer.Token // Ends with TokEOF, or TokError on a lexing failure.

	bindingPowerLookupTable lookupTable[bindingPower]
}

func newParser(input string) *parser {
	p := &parser{
		input:                   input,
		tokens:                  lexer.Tokenize(input),
		bindingPowerLookupTable: lookupTable[bindingPower]{},
	}
	p.createTokenLookups()
	return p
}

// Parse builds the tree for input.
// Failures are *Error values wrapping one of ast.ErrUnsupportedInput or
// ast.ErrMalformedNumber.
func Parse(input string) (node ast.Node, err error) {
	p := newParser(input)
	defer p.recover(&err)

	p.checkTokens()
	// Exclude the trailing EOF from the top level span.
	return parseExpr(p, 0, len(p.tokens)-1), nil
}

// MustParse is like Parse but panics on error.
func MustParse(input string) ast.Node {
	n, err := Parse(input)
	if err != nil {
		panic(err)
	}
	return n
}

// checkTokens rejects tokens the grammar can never accept before any split
// happens, so the error points at the real culprit.
func (p *parser) checkTokens() {
	for _, tok := range p.tokens {
		switch tok.Type {
		case lexer.TokError:
			p.errorf(tok, ast.ErrUnsupportedInput, "%s", tok.Value)
		case lexer.TokParenLeft, lexer.TokParenRight:
			p.errorf(tok, ast.ErrUnsupportedInput, "parentheses are not supported")
		}
	}
}

// errorf aborts the parse. It is recovered in Parse.
func (p *parser) errorf(tok lexer.Token, kind error, format string, args ...any) {
	value := tok.Value
	if tok.Type == lexer.TokEOF {
		value = "EOF"
	}
	if tok.Type == lexer.TokError && tok.Pos() < len(p.input) {
		_, n := utf8.DecodeRuneInString(p.input[tok.Pos():])
		value = p.input[tok.Pos() : tok.Pos()+n]
	}
	panic(&Error{
		Pos:   tok.Pos(),
		Token: value,
		Err:   errors.Wrapf(kind, format, args...),
	})
}

func (p *parser) recover(errp *error) {
	e := recover()
	if e == nil {
		return
	}
	perr, ok := e.(*Error)
	if !ok {
		panic(e)
	}
	*errp = perr
}
