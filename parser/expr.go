package parser

import (
	"strconv"

	"go.creack.net/exprtree/ast"
	"go.creack.net/exprtree/lexer"
)

// parseExpr parses tokens[lo:hi].
//
// The span is scanned right to left once per binding power, loosest first.
// Splitting at the last occurrence of the loosest operator makes it the root
// and leaves everything before it as the left operand, which yields left
// associativity for chains such as 1+2-3 or 8/4*2.
func parseExpr(p *parser, lo, hi int) ast.Node {
	if lo >= hi {
		// tokens[hi] is the operator right after the empty operand, or EOF.
		p.errorf(p.tokens[hi], ast.ErrUnsupportedInput, "missing operand")
	}

	for _, bp := range splitOrder {
		for i := hi - 1; i >= lo; i-- {
			if p.bindingPowerLookupTable[p.tokens[i].Type] == bp {
				return parseBinaryExpr(p, lo, i, hi)
			}
		}
	}

	if hi-lo > 1 {
		p.errorf(p.tokens[lo+1], ast.ErrUnsupportedInput, "missing operator between operands")
	}
	return parsePrimaryExpr(p, p.tokens[lo])
}

func parseBinaryExpr(p *parser, lo, split, hi int) ast.Node {
	operator := p.tokens[split]
	left := parseExpr(p, lo, split)
	right := parseExpr(p, split+1, hi)

	node, err := ast.NewBinaryOp(operator.Value[0], left, right)
	if err != nil {
		p.errorf(operator, ast.ErrMalformedOperator, "%v", err)
	}
	return node
}

func parsePrimaryExpr(p *parser, tok lexer.Token) ast.Node {
	switch tok.Type {
	case lexer.TokNumber:
		number, err := strconv.ParseFloat(tok.Value, 64)
		if err != nil {
			p.errorf(tok, ast.ErrMalformedNumber, "invalid number %q", tok.Value)
		}
		return ast.NewConstant(number)
	case lexer.TokIdent:
		if len(tok.Value) != 1 {
			p.errorf(tok, ast.ErrUnsupportedInput, "variable names are a single letter, got %q", tok.Value)
		}
		v, err := ast.NewVariable(tok.Value[0])
		if err != nil {
			p.errorf(tok, ast.ErrUnsupportedInput, "%v", err)
		}
		return v
	default:
		p.errorf(tok, ast.ErrUnsupportedInput, "unexpected token %s", tok.Type)
		return nil
	}
}
