// Package eval computes the numeric value of an expression tree.
package eval

import (
	"context"
	"log/slog"
	"math"

	"go.creack.net/exprtree/ast"
)

// Evaluate returns the value of the tree.
//
// A Variable evaluates to the code point of its letter: there is no binding
// environment. Division by zero follows IEEE 754 and yields ±Inf or NaN.
func Evaluate(n ast.Node) float64 {
	return ast.Walk[float64](evaluator{}, n)
}

// Evaluator evaluates trees and traces every step to Logger at debug level.
// A nil Logger disables tracing.
type Evaluator struct {
	Logger *slog.Logger
}

// Evaluate returns the value of the tree, see the package level Evaluate.
func (e *Evaluator) Evaluate(n ast.Node) float64 {
	return ast.Walk[float64](evaluator{logger: e.Logger}, n)
}

type evaluator struct {
	logger *slog.Logger
}

func (e evaluator) VisitConstant(c *ast.Constant) float64 {
	e.trace("constant", slog.Float64("value", c.Value()))
	return c.Value()
}

func (e evaluator) VisitVariable(v *ast.Variable) float64 {
	value := float64(v.Name())
	e.trace("variable", slog.String("name", string(v.Name())), slog.Float64("value", value))
	return value
}

func (e evaluator) VisitBinaryOp(b *ast.BinaryOp, left, right float64) float64 {
	result := Apply(b.Op(), left, right)
	e.trace("binary op",
		slog.String("op", b.Op().String()),
		slog.Float64("left", left),
		slog.Float64("right", right),
		slog.Float64("result", result),
	)
	return result
}

func (e evaluator) trace(msg string, attrs ...slog.Attr) {
	if e.logger == nil {
		return
	}
	e.logger.LogAttrs(context.Background(), slog.LevelDebug, msg, attrs...)
}

// Apply combines two operands with op.
func Apply(op ast.Operator, left, right float64) float64 {
	switch op {
	case ast.Add:
		return left + right
	case ast.Sub:
		return left - right
	case ast.Mul:
		return left * right
	case ast.Div:
		return left / right
	case ast.Pow:
		return math.Pow(left, right)
	default:
		// Operators are validated when the node is built.
		panic("unsupported operator " + op.String())
	}
}
