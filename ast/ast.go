// Package ast defines the expression tree and the visitor used to run
// whole-tree operations over it.
package ast

import (
	"fmt"
	"math"
)

// Node is one (sub)expression of the tree.
// The set of implementations is closed: *Constant, *Variable and *BinaryOp.
type Node interface {
	node()
}

// Visitor implements one whole-tree operation producing a T.
// BinaryOp handlers receive the already computed results of both children.
type Visitor[T any] interface {
	VisitConstant(*Constant) T
	VisitVariable(*Variable) T
	VisitBinaryOp(n *BinaryOp, left, right T) T
}

// Walk dispatches n to v and returns the operation's result for the whole subtree.
// The left subtree is walked to completion before the right one is started.
func Walk[T any](v Visitor[T], n Node) T {
	switch n := n.(type) {
	case *Constant:
		return v.VisitConstant(n)
	case *Variable:
		return v.VisitVariable(n)
	case *BinaryOp:
		left := Walk(v, n.left)
		right := Walk(v, n.right)
		return v.VisitBinaryOp(n, left, right)
	default:
		// Unreachable: Node is sealed.
		panic(fmt.Errorf("unsupported node type %T", n))
	}
}

// Inspect calls fn for every node of the tree in pre-order.
// If fn returns false, the children of that node are skipped.
func Inspect(n Node, fn func(Node) bool) {
	if !fn(n) {
		return
	}
	if b, ok := n.(*BinaryOp); ok {
		Inspect(b.left, fn)
		Inspect(b.right, fn)
	}
}

// Equal reports whether a and b are structurally identical trees.
// Two NaN constants are equal.
func Equal(a, b Node) bool {
	switch a := a.(type) {
	case *Constant:
		b, ok := b.(*Constant)
		return ok && (a.value == b.value || math.IsNaN(a.value) && math.IsNaN(b.value))
	case *Variable:
		b, ok := b.(*Variable)
		return ok && a.name == b.name
	case *BinaryOp:
		b, ok := b.(*BinaryOp)
		return ok && a.op == b.op && Equal(a.left, b.left) && Equal(a.right, b.right)
	}
	return false
}
