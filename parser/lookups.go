package parser

import (
	"go.creack.net/exprtree/lexer"
)

type bindingPower int

const (
	bpDefault bindingPower = iota
	bpAdditive
	bpMultiplicative
	bpPower
)

// splitOrder lists the binding powers in the order the parser looks for a
// split point: the loosest operators end up closest to the root.
var splitOrder = []bindingPower{bpAdditive, bpMultiplicative, bpPower}

type lookupTable[T any] map[lexer.TokenType]T

func (p *parser) binary(kind lexer.TokenType, bp bindingPower) {
	if _, ok := p.bindingPowerLookupTable[kind]; ok {
		panic("duplicate binary handler")
	}
	p.bindingPowerLookupTable[kind] = bp
}

func (p *parser) createTokenLookups() {
	// Additive.
	p.binary(lexer.TokPlus, bpAdditive)
	p.binary(lexer.TokMinus, bpAdditive)

	// Multiplicative.
	p.binary(lexer.TokStar, bpMultiplicative)
	p.binary(lexer.TokSlash, bpMultiplicative)

	// Exponent.
	p.binary(lexer.TokCaret, bpPower)
}
