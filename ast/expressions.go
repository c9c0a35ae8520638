package ast

import (
	"strconv"

	"github.com/cockroachdb/errors"
)

// Constant is a numeric leaf.
type Constant struct {
	value float64
}

// NewConstant returns a Constant leaf holding v.
func NewConstant(v float64) *Constant { return &Constant{value: v} }

func (*Constant) node() {}

// Value returns the stored number.
func (c *Constant) Value() float64 { return c.value }

// Variable is a single letter leaf.
type Variable struct {
	name byte
}

// NewVariable returns a Variable leaf. The name must be an ASCII letter.
func NewVariable(name byte) (*Variable, error) {
	if !IsLetter(name) {
		return nil, errors.Wrapf(ErrUnsupportedInput, "variable name %q", name)
	}
	return &Variable{name: name}, nil
}

func (*Variable) node() {}

// Name returns the variable letter.
func (v *Variable) Name() byte { return v.name }

// BinaryOp is an internal node. It exclusively owns both children.
type BinaryOp struct {
	op    Operator
	left  Node
	right Node
}

// NewBinaryOp validates op and builds the node.
func NewBinaryOp(op byte, left, right Node) (*BinaryOp, error) {
	o, err := ParseOperator(op)
	if err != nil {
		return nil, err
	}
	if left == nil || right == nil {
		return nil, errors.Newf("binary op %q: missing operand", op)
	}
	return &BinaryOp{op: o, left: left, right: right}, nil
}

func (*BinaryOp) node() {}

// Op returns the operator.
func (b *BinaryOp) Op() Operator { return b.op }

// Left returns the left operand.
func (b *BinaryOp) Left() Node { return b.left }

// Right returns the right operand.
func (b *BinaryOp) Right() Node { return b.right }

// IsLetter reports whether c is an ASCII letter.
func IsLetter(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

// FormatNumber renders v the way every textual form of the tree does:
// the shortest representation that parses back to the same float64,
// so 3 is written "3" and not "3.0".
func FormatNumber(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}
