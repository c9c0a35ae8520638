// Package codec converts expression trees to and from a tagged text form.
//
// The form is a sequence of whitespace separated tokens, written in
// pre-order:
//
//	Constant <number>
//	Variable <letter>
//	Op <operator> <left> <right>
//
// so 3+4 becomes "Op + Constant 3 Constant 4". Numbers are written with the
// shortest text that parses back to the same float64.
package codec

import (
	"io"

	"go.creack.net/exprtree/ast"
)

// Marshal returns the tagged form of n.
func Marshal(n ast.Node) string {
	return ast.Walk[string](serializer{}, n)
}

// An Encoder writes trees to a stream, one per line.
type Encoder struct {
	w io.Writer
}

// NewEncoder returns an encoder writing to w.
func NewEncoder(w io.Writer) *Encoder {
	return &Encoder{w: w}
}

// Encode writes the tagged form of n followed by a newline.
func (e *Encoder) Encode(n ast.Node) error {
	_, err := io.WriteString(e.w, Marshal(n)+"\n")
	return err
}

type serializer struct{}

func (serializer) VisitConstant(c *ast.Constant) string {
	return TagConstant + " " + ast.FormatNumber(c.Value())
}

func (serializer) VisitVariable(v *ast.Variable) string {
	return TagVariable + " " + string(v.Name())
}

func (serializer) VisitBinaryOp(b *ast.BinaryOp, left, right string) string {
	return TagOp + " " + b.Op().String() + " " + left + " " + right
}
