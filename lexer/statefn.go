package lexer

import "strings"

type stateFn func(*Lexer) stateFn

// List of runes that just advance one and emit a token.
var singles = map[rune]TokenType{
	'+': TokPlus,
	'-': TokMinus,
	'*': TokStar,
	'/': TokSlash,
	'^': TokCaret,
	'(': TokParenLeft,
	')': TokParenRight,
}

func lexText(l *Lexer) stateFn {
	if l.atEOF {
		return l.emit(TokEOF)
	}

	switch r := l.peek(); {
	case l.atEOF:
		// peek hit the end of input.
		return l.emit(TokEOF)
	case r == ' ' || r == '\t' || r == '\n' || r == '\r':
		l.acceptRun(" \t\n\r")
		return l.emit(TokWhitespace)
	case r == '.' || strings.ContainsRune(digits, r):
		return lexNumber
	case strings.ContainsRune(letters, r):
		return lexIdent
	default:
		if tok, ok := singles[r]; ok {
			l.next()
			return l.emit(tok)
		}
		return l.errorf("unexpected character: %q", r)
	}
}

// lexNumber scans digits with an optional fraction. Any further dots are
// swallowed into the same token so "1.2.3" is reported as one bad number
// rather than two operands.
func lexNumber(l *Lexer) stateFn {
	l.acceptRun(digits)
	if l.accept(".") {
		l.acceptRun(digits)
	}
	l.acceptRun(digits + ".")
	return l.emit(TokNumber)
}

func lexIdent(l *Lexer) stateFn {
	l.acceptRun(letters)
	return l.emit(TokIdent)
}
