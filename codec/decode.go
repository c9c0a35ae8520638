package codec

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"strings"

	"github.com/cockroachdb/errors"

	"go.creack.net/exprtree/ast"
)

// ErrTrailingData is returned by Unmarshal when tokens follow the tree.
var ErrTrailingData = errors.New("trailing data after tree")

// Error reports which token made decoding fail.
type Error struct {
	Index int    // Zero based index of the token in the stream.
	Token string // Offending token, "EOF" at end of stream, empty if it could not be read.
	Err   error
}

func (e *Error) Error() string {
	return fmt.Sprintf("decode error at token %d %q: %s", e.Index, e.Token, e.Err)
}

func (e *Error) Unwrap() error { return e.Err }

// A Decoder reads trees from a token stream.
// Several trees may follow each other in the same stream.
type Decoder struct {
	scanner  *bufio.Scanner
	registry *Registry
	logger   *slog.Logger

	count int // Tokens consumed so far.
	depth int
}

// Option configures a Decoder.
type Option func(*Decoder)

// WithRegistry makes the decoder resolve tags in r instead of DefaultRegistry.
func WithRegistry(r *Registry) Option {
	return func(d *Decoder) { d.registry = r }
}

// WithLogger traces every decoded node at debug level.
func WithLogger(l *slog.Logger) Option {
	return func(d *Decoder) { d.logger = l }
}

// NewDecoder returns a decoder reading from r.
func NewDecoder(r io.Reader, opts ...Option) *Decoder {
	scanner := bufio.NewScanner(r)
	scanner.Split(bufio.ScanWords)
	d := &Decoder{
		scanner:  scanner,
		registry: DefaultRegistry,
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Unmarshal decodes exactly one tree from s.
func Unmarshal(s string, opts ...Option) (ast.Node, error) {
	d := NewDecoder(strings.NewReader(s), opts...)
	n, err := d.Decode()
	if errors.Is(err, io.EOF) {
		return nil, &Error{Index: 0, Token: "EOF", Err: errors.Wrap(io.ErrUnexpectedEOF, "empty input")}
	}
	if err != nil {
		return nil, err
	}
	tok, err := d.Next()
	if err == nil {
		return nil, d.errorf(tok, ErrTrailingData, "unexpected token after tree")
	}
	if !errors.Is(err, io.EOF) {
		return nil, err
	}
	return n, nil
}

// Decode reads the next tree.
// It returns io.EOF when the stream ends cleanly before a new tree starts.
func (d *Decoder) Decode() (ast.Node, error) {
	tag, err := d.Next()
	if err != nil {
		return nil, err
	}

	loader, ok := d.registry.Lookup(tag)
	if !ok {
		return nil, d.errorf(tag, errors.WithHint(ast.ErrUnknownTag, "known tags: "+strings.Join(d.registry.Tags(), ", ")), "tag %q", tag)
	}

	d.depth++
	n, err := loader(d)
	d.depth--
	if errors.Is(err, io.EOF) {
		// The tag was read, so the stream ended inside the node.
		return nil, d.eof()
	}
	if err != nil {
		return nil, err
	}
	if d.logger != nil {
		d.logger.LogAttrs(context.Background(), slog.LevelDebug, "decoded node",
			slog.String("tag", tag),
			slog.Int("depth", d.depth),
			slog.Int("token", d.count),
		)
	}
	return n, nil
}

// Child decodes a nested tree. Running out of tokens is an error here.
func (d *Decoder) Child() (ast.Node, error) {
	n, err := d.Decode()
	if errors.Is(err, io.EOF) {
		return nil, d.eof()
	}
	return n, err
}

// Next returns the next raw token.
func (d *Decoder) Next() (string, error) {
	if !d.scanner.Scan() {
		if err := d.scanner.Err(); err != nil {
			return "", &Error{Index: d.count, Err: errors.Wrap(err, "read token")}
		}
		return "", io.EOF
	}
	d.count++
	return d.scanner.Text(), nil
}

// Operand returns the next token of the current node.
// Running out of tokens is an error here.
func (d *Decoder) Operand() (string, error) {
	tok, err := d.Next()
	if errors.Is(err, io.EOF) {
		return "", d.eof()
	}
	return tok, err
}

func (d *Decoder) eof() error {
	return &Error{Index: d.count, Token: "EOF", Err: io.ErrUnexpectedEOF}
}

// errorf reports a failure on the token last returned by Next.
func (d *Decoder) errorf(tok string, kind error, format string, args ...any) error {
	return &Error{
		Index: d.count - 1,
		Token: tok,
		Err:   errors.Wrapf(kind, format, args...),
	}
}

func loadConstant(d *Decoder) (ast.Node, error) {
	tok, err := d.Operand()
	if err != nil {
		return nil, err
	}
	v, err := strconv.ParseFloat(tok, 64)
	if err != nil {
		return nil, d.errorf(tok, ast.ErrMalformedNumber, "constant %q", tok)
	}
	return ast.NewConstant(v), nil
}

func loadVariable(d *Decoder) (ast.Node, error) {
	tok, err := d.Operand()
	if err != nil {
		return nil, err
	}
	if len(tok) != 1 || !ast.IsLetter(tok[0]) {
		return nil, d.errorf(tok, ast.ErrUnsupportedInput, "variable name %q", tok)
	}
	v, err := ast.NewVariable(tok[0])
	if err != nil {
		return nil, d.errorf(tok, err, "variable")
	}
	return v, nil
}

func loadOp(d *Decoder) (ast.Node, error) {
	tok, err := d.Operand()
	if err != nil {
		return nil, err
	}
	if len(tok) != 1 || !ast.Operator(tok[0]).Valid() {
		return nil, d.errorf(tok, ast.ErrMalformedOperator, "operator %q", tok)
	}
	left, err := d.Child()
	if err != nil {
		return nil, err
	}
	right, err := d.Child()
	if err != nil {
		return nil, err
	}
	return ast.NewBinaryOp(tok[0], left, right)
}
