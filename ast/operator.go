package ast

import (
	"github.com/cockroachdb/errors"
)

// Operator is the symbol of a BinaryOp.
type Operator byte

const (
	Add Operator = '+'
	Sub Operator = '-'
	Mul Operator = '*'
	Div Operator = '/'
	Pow Operator = '^'
)

var operators = [...]Operator{Add, Sub, Mul, Div, Pow}

// Operators returns every legal operator, in order of the constants.
// The slice is a fresh copy.
func Operators() []Operator { return append([]Operator(nil), operators[:]...) }

// ParseOperator converts a symbol to an Operator.
func ParseOperator(c byte) (Operator, error) {
	o := Operator(c)
	if !o.Valid() {
		return 0, errors.WithHint(
			errors.Wrapf(ErrMalformedOperator, "operator %q", c),
			"valid operators are + - * / ^",
		)
	}
	return o, nil
}

// Valid reports whether o is one of the five legal operators.
func (o Operator) Valid() bool {
	switch o {
	case Add, Sub, Mul, Div, Pow:
		return true
	}
	return false
}

func (o Operator) String() string { return string(rune(o)) }
