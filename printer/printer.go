// Package printer renders expression trees for humans.
package printer

import (
	"io"

	"go.creack.net/exprtree/ast"
)

// Print returns the fully parenthesized form of the tree.
// Every node is wrapped: 1+2 prints as "((1)+(2))".
func Print(n ast.Node) string {
	return ast.Walk[string](prettyPrinter{}, n)
}

// Fprint writes Print(n) to w.
func Fprint(w io.Writer, n ast.Node) error {
	_, err := io.WriteString(w, Print(n))
	return err
}

type prettyPrinter struct{}

func (prettyPrinter) VisitConstant(c *ast.Constant) string {
	return "(" + ast.FormatNumber(c.Value()) + ")"
}

func (prettyPrinter) VisitVariable(v *ast.Variable) string {
	return "(" + string(v.Name()) + ")"
}

func (prettyPrinter) VisitBinaryOp(b *ast.BinaryOp, left, right string) string {
	return "(" + left + b.Op().String() + right + ")"
}
