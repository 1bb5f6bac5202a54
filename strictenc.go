// Package strictenc encodes integers through small instruction programs
// describing byte transforms.
//
// An instruction program is a semicolon-separated list of textual expressions
// over a single variable n, drawn from a closed grammar (see the opcode
// package). Streaming sites emit such programs to obfuscate URLs; this
// package applies them to single values, strings, and byte buffers.
package strictenc

import (
	"strings"

	"github.com/strictenc/strictenc/internal/coerce"
	"github.com/strictenc/strictenc/opcode"
)

// Version is the library version reported by the status endpoint and CLI.
const Version = "1.0.0"

// Encoder applies instruction programs to integer inputs. It owns a
// classification cache so repeated programs parse once. The zero value is not
// usable; construct with New.
type Encoder struct {
	cache *opcode.Cache
}

// New creates an Encoder with its own classification cache.
func New() *Encoder {
	return &Encoder{cache: opcode.NewCache()}
}

// WithCache replaces the classification cache. Useful for sharing one cache
// across encoders, or for exercising cold-cache paths in tests.
func (e *Encoder) WithCache(c *opcode.Cache) *Encoder {
	if c != nil {
		e.cache = c
	}
	return e
}

// Cache returns the encoder's classification cache.
func (e *Encoder) Cache() *opcode.Cache {
	return e.cache
}

// Encode splits instructions on ';' and evaluates each non-empty piece
// against n, in order: result[i] corresponds to instruction i. The first
// instruction that matches no known shape aborts the whole call with an error
// naming it; no partial results are returned.
func (e *Encoder) Encode(n int64, instructions string) ([]int, error) {
	ops, err := e.compile(instructions)
	if err != nil {
		return nil, err
	}
	results := make([]int, len(ops))
	for i, op := range ops {
		v, err := op.Eval(n)
		if err != nil {
			return nil, err
		}
		results[i] = v
	}
	return results, nil
}

// EncodeValue is Encode for values arriving from loosely typed boundaries
// (JSON numbers, query strings). Values that cannot be read as integers fail
// with INVALID_INPUT.
func (e *Encoder) EncodeValue(v any, instructions string) ([]int, error) {
	n, err := coerce.Int64(v)
	if err != nil {
		return nil, opcode.NewError(opcode.ErrCodeInvalidInput, "input must be an integer", err.Error())
	}
	return e.Encode(n, instructions)
}

// EncodeMany applies one instruction program to every value. The program is
// classified once and reused across all inputs; output order mirrors input
// order index-for-index.
func (e *Encoder) EncodeMany(values []int64, instructions string) ([][]int, error) {
	ops, err := e.compile(instructions)
	if err != nil {
		return nil, err
	}
	out := make([][]int, len(values))
	for i, n := range values {
		row := make([]int, len(ops))
		for j, op := range ops {
			v, err := op.Eval(n)
			if err != nil {
				return nil, err
			}
			row[j] = v
		}
		out[i] = row
	}
	return out, nil
}

// EncodeText encodes each character's code point.
func (e *Encoder) EncodeText(text, instructions string) ([][]int, error) {
	runes := []rune(text)
	values := make([]int64, len(runes))
	for i, r := range runes {
		values[i] = int64(r)
	}
	return e.EncodeMany(values, instructions)
}

// EncodeBytes encodes each byte value.
func (e *Encoder) EncodeBytes(data []byte, instructions string) ([][]int, error) {
	values := make([]int64, len(data))
	for i, b := range data {
		values[i] = int64(b)
	}
	return e.EncodeMany(values, instructions)
}

// ClearCache drops all cached classifications.
func (e *Encoder) ClearCache() {
	e.cache.Clear()
}

// compile classifies the instruction program once, consulting the cache, and
// rejects it whole if any piece is unknown. Empty pieces (stray semicolons,
// trailing separators) are skipped.
func (e *Encoder) compile(instructions string) ([]opcode.Op, error) {
	var ops []opcode.Op
	for _, piece := range strings.Split(instructions, ";") {
		piece = strings.TrimSpace(piece)
		if piece == "" {
			continue
		}
		op := e.cache.GetOrClassify(piece)
		if op.Kind == opcode.KindUnknown {
			return nil, opcode.NewError(opcode.ErrCodeUnsupportedOperation, "instruction matches no known shape", op.Raw)
		}
		ops = append(ops, op)
	}
	return ops, nil
}

var defaultEncoder = New()

// Encode applies an instruction program to n using the package-level encoder.
func Encode(n int64, instructions string) ([]int, error) {
	return defaultEncoder.Encode(n, instructions)
}

// EncodeValue is the package-level EncodeValue.
func EncodeValue(v any, instructions string) ([]int, error) {
	return defaultEncoder.EncodeValue(v, instructions)
}

// EncodeMany is the package-level EncodeMany.
func EncodeMany(values []int64, instructions string) ([][]int, error) {
	return defaultEncoder.EncodeMany(values, instructions)
}

// EncodeText is the package-level EncodeText.
func EncodeText(text, instructions string) ([][]int, error) {
	return defaultEncoder.EncodeText(text, instructions)
}

// EncodeBytes is the package-level EncodeBytes.
func EncodeBytes(data []byte, instructions string) ([][]int, error) {
	return defaultEncoder.EncodeBytes(data, instructions)
}

// ClearCache drops the package-level encoder's cached classifications.
func ClearCache() {
	defaultEncoder.ClearCache()
}
