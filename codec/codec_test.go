package codec_test

import (
	"bufio"
	"bytes"
	"io"
	"math"
	"strings"
	"sync"
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/kr/pretty"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go.creack.net/exprtree/ast"
	"go.creack.net/exprtree/codec"
	"go.creack.net/exprtree/eval"
	"go.creack.net/exprtree/parser"
	"go.creack.net/exprtree/printer"
)

func TestMarshal(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"3+4", "Op + Constant 3 Constant 4"},
		{"x", "Variable x"},
		{"2.5", "Constant 2.5"},
		{"1+2*3-4", "Op - Op + Constant 1 Op * Constant 2 Constant 3 Constant 4"},
		{"a^2", "Op ^ Variable a Constant 2"},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.want, codec.Marshal(parser.MustParse(tt.input)))
		})
	}
}

func TestUnmarshalEvaluate(t *testing.T) {
	n, err := codec.Unmarshal("Op + Constant 3 Constant 4")
	require.NoError(t, err)
	assert.Equal(t, 7.0, eval.Evaluate(n))
	assert.Equal(t, "((3)+(4))", printer.Print(n))
}

func TestUnmarshalWhitespace(t *testing.T) {
	n, err := codec.Unmarshal("  Op\t*\n Constant 6\n\nVariable  y ")
	require.NoError(t, err)
	assert.Equal(t, "((6)*(y))", printer.Print(n))
}

func TestRoundTrip(t *testing.T) {
	for _, input := range []string{
		"1", "x", "1+2-3", "1+2*3-4", "2*3^2", "0.1+0.2", "1/3", "a*b-c/d^e", "123456789.125*2",
	} {
		t.Run(input, func(t *testing.T) {
			want := parser.MustParse(input)
			got, err := codec.Unmarshal(codec.Marshal(want))
			require.NoError(t, err)
			if !ast.Equal(want, got) {
				t.Fatalf("tree mismatch: %v", pretty.Diff(want, got))
			}
			assert.Equal(t, printer.Print(want), printer.Print(got))
			assert.InDelta(t, eval.Evaluate(want), eval.Evaluate(got), 1e-12)
		})
	}
}

func TestRoundTripSpecialValues(t *testing.T) {
	for _, v := range []float64{math.Inf(1), math.Inf(-1), math.MaxFloat64, math.SmallestNonzeroFloat64, -0.0} {
		got, err := codec.Unmarshal(codec.Marshal(ast.NewConstant(v)))
		require.NoError(t, err)
		assert.Equal(t, v, got.(*ast.Constant).Value())
	}

	want := ast.NewConstant(math.NaN())
	assert.Equal(t, "Constant NaN", codec.Marshal(want))
	got, err := codec.Unmarshal(codec.Marshal(want))
	require.NoError(t, err)
	assert.True(t, ast.Equal(want, got))
}

func TestEncoderDecoderStream(t *testing.T) {
	buf := bytes.NewBuffer(nil)
	enc := codec.NewEncoder(buf)
	inputs := []string{"1+2", "x", "2^10"}
	for _, input := range inputs {
		require.NoError(t, enc.Encode(parser.MustParse(input)))
	}
	assert.Equal(t, "Op + Constant 1 Constant 2\nVariable x\nOp ^ Constant 2 Constant 10\n", buf.String())

	dec := codec.NewDecoder(buf)
	var values []float64
	for {
		n, err := dec.Decode()
		if errors.Is(err, io.EOF) {
			break
		}
		require.NoError(t, err)
		values = append(values, eval.Evaluate(n))
	}
	assert.Equal(t, []float64{3, 'x', 1024}, values)
}

func TestDecodeErrors(t *testing.T) {
	tests := []struct {
		name  string
		input string
		kind  error
		index int
		token string
	}{
		{name: "unknown tag", input: "Frobnicate 1 2", kind: ast.ErrUnknownTag, index: 0, token: "Frobnicate"},
		{name: "nested unknown tag", input: "Op + Constant 1 Frobnicate 2", kind: ast.ErrUnknownTag, index: 4, token: "Frobnicate"},
		{name: "malformed number", input: "Constant three", kind: ast.ErrMalformedNumber, index: 1, token: "three"},
		{name: "malformed operator", input: "Op % Constant 1 Constant 2", kind: ast.ErrMalformedOperator, index: 1, token: "%"},
		{name: "long operator", input: "Op ++ Constant 1 Constant 2", kind: ast.ErrMalformedOperator, index: 1, token: "++"},
		{name: "bad variable", input: "Variable xy", kind: ast.ErrUnsupportedInput, index: 1, token: "xy"},
		{name: "digit variable", input: "Variable 7", kind: ast.ErrUnsupportedInput, index: 1, token: "7"},
		{name: "trailing data", input: "Constant 1 Constant 2", kind: codec.ErrTrailingData, index: 2, token: "Constant"},
		{name: "empty", input: "  ", kind: io.ErrUnexpectedEOF, index: 0, token: "EOF"},
		{name: "missing value", input: "Constant", kind: io.ErrUnexpectedEOF, index: 1, token: "EOF"},
		{name: "missing right", input: "Op + Constant 1", kind: io.ErrUnexpectedEOF, index: 4, token: "EOF"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			n, err := codec.Unmarshal(tt.input)
			require.Error(t, err)
			assert.Nil(t, n)
			assert.True(t, errors.Is(err, tt.kind), "unexpected error kind: %v", err)

			var cerr *codec.Error
			require.True(t, errors.As(err, &cerr), "not a *codec.Error: %T", err)
			assert.Equal(t, tt.index, cerr.Index)
			assert.Equal(t, tt.token, cerr.Token)
		})
	}
}

func TestUnknownTagHint(t *testing.T) {
	_, err := codec.Unmarshal("Frobnicate 1 2")
	require.Error(t, err)
	assert.Equal(t, []string{"known tags: Constant, Op, Variable"}, errors.GetAllHints(err))
}

func TestCustomRegistry(t *testing.T) {
	reg := codec.NewRegistry()
	// "Zero" is shorthand for "Constant 0" and takes no operand.
	reg.Register("Zero", func(*codec.Decoder) (ast.Node, error) {
		return ast.NewConstant(0), nil
	})
	assert.Equal(t, []string{"Constant", "Op", "Variable", "Zero"}, reg.Tags())

	n, err := codec.Unmarshal("Op - Constant 5 Zero", codec.WithRegistry(reg))
	require.NoError(t, err)
	assert.Equal(t, 5.0, eval.Evaluate(n))

	// The default registry is untouched.
	_, err = codec.Unmarshal("Zero")
	assert.True(t, errors.Is(err, ast.ErrUnknownTag))
}

func TestRegisterIdempotent(t *testing.T) {
	reg := codec.NewRegistry()
	loader, ok := reg.Lookup(codec.TagConstant)
	require.True(t, ok)

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			reg.Register(codec.TagConstant, loader)
			_, _ = reg.Lookup(codec.TagOp)
		}()
	}
	wg.Wait()

	assert.Equal(t, []string{"Constant", "Op", "Variable"}, reg.Tags())
	n, err := codec.Unmarshal("Constant 4", codec.WithRegistry(reg))
	require.NoError(t, err)
	assert.Equal(t, 4.0, eval.Evaluate(n))
}

func TestLoaderEOFIsUnexpected(t *testing.T) {
	reg := codec.NewRegistry()
	// "Pair" reads two raw tokens with Next and sums their lengths.
	reg.Register("Pair", func(d *codec.Decoder) (ast.Node, error) {
		a, err := d.Next()
		if err != nil {
			return nil, err
		}
		b, err := d.Next()
		if err != nil {
			return nil, err
		}
		return ast.NewConstant(float64(len(a) + len(b))), nil
	})

	dec := codec.NewDecoder(strings.NewReader("Pair ab c Pair ab"), codec.WithRegistry(reg))
	n, err := dec.Decode()
	require.NoError(t, err)
	assert.Equal(t, 3.0, eval.Evaluate(n))

	_, err = dec.Decode()
	require.Error(t, err)
	assert.False(t, errors.Is(err, io.EOF), "partial node reported as end of stream")
	assert.True(t, errors.Is(err, io.ErrUnexpectedEOF), "unexpected error kind: %v", err)
	var cerr *codec.Error
	require.True(t, errors.As(err, &cerr), "not a *codec.Error: %T", err)
	assert.Equal(t, 5, cerr.Index)
	assert.Equal(t, "EOF", cerr.Token)
}

func TestDecodeTokenTooLong(t *testing.T) {
	_, err := codec.Unmarshal("Constant " + strings.Repeat("9", bufio.MaxScanTokenSize+1))
	require.Error(t, err)
	assert.True(t, errors.Is(err, bufio.ErrTooLong), "unexpected error kind: %v", err)
	var cerr *codec.Error
	require.True(t, errors.As(err, &cerr), "not a *codec.Error: %T", err)
	assert.Equal(t, 1, cerr.Index)
	assert.Empty(t, cerr.Token)
}

func TestDecoderOperandAPI(t *testing.T) {
	dec := codec.NewDecoder(strings.NewReader("a b"))
	tok, err := dec.Operand()
	require.NoError(t, err)
	assert.Equal(t, "a", tok)
	tok, err = dec.Next()
	require.NoError(t, err)
	assert.Equal(t, "b", tok)
	_, err = dec.Next()
	assert.Equal(t, io.EOF, err)
	_, err = dec.Operand()
	assert.True(t, errors.Is(err, io.ErrUnexpectedEOF))
}
