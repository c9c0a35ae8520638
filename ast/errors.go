package ast

import "github.com/cockroachdb/errors"

// Error kinds shared by the parser and the codec.
// Match them with errors.Is.
var (
	ErrMalformedOperator = errors.New("malformed operator")
	ErrUnknownTag        = errors.New("unknown tag")
	ErrMalformedNumber   = errors.New("malformed number")
	ErrUnsupportedInput  = errors.New("unsupported input")
)
