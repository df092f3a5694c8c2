// Package tree holds a parsed JSON document as mapping, sequence and scalar nodes.
//
// Mappings are ordered so a rewritten document keeps the member order of its producer.
// Numbers are kept as json.Number and round-trip without precision loss.
package tree

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	orderedmap "github.com/wk8/go-ordered-map/v2"
)

// MaxDepth is the deepest nesting of mappings and sequences Decode accepts, the same limit encoding/json applies.
const MaxDepth = 10000

// Object is a JSON mapping node.
type Object = orderedmap.OrderedMap[string, any]

// NewObject returns an empty mapping node.
func NewObject() *Object {
	return orderedmap.New[string, any]()
}

// DecodeError reports malformed JSON together with the input offset where decoding stopped.
type DecodeError struct {
	Offset int64
	Err    error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("offset %d: %v", e.Offset, e.Err)
}

func (e *DecodeError) Unwrap() error { return e.Err }

// Decode parses exactly one JSON value from data.
func Decode(data []byte) (any, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	v, err := decodeValue(dec, 0)
	if err != nil {
		return nil, newDecodeError(dec, err)
	}

	if _, err := dec.Token(); err != io.EOF {
		if err == nil {
			err = errors.New("unexpected data after top-level value")
		}
		return nil, newDecodeError(dec, err)
	}
	return v, nil
}

func newDecodeError(dec *json.Decoder, err error) error {
	if errors.Is(err, io.EOF) {
		err = io.ErrUnexpectedEOF
	}
	offset := dec.InputOffset()
	var syntaxErr *json.SyntaxError
	if errors.As(err, &syntaxErr) {
		offset = syntaxErr.Offset
	}
	return &DecodeError{Offset: offset, Err: err}
}

func decodeValue(dec *json.Decoder, depth int) (any, error) {
	tok, err := dec.Token()
	if err != nil {
		return nil, err
	}

	delim, ok := tok.(json.Delim)
	if !ok {
		// string, json.Number, bool or nil
		return tok, nil
	}

	if depth >= MaxDepth {
		return nil, fmt.Errorf("exceeded max depth of %d nested values", MaxDepth)
	}
	switch delim {
	case '{':
		return decodeObject(dec, depth+1)
	case '[':
		return decodeArray(dec, depth+1)
	default:
		return nil, fmt.Errorf("unexpected delimiter %q", delim)
	}
}

func decodeObject(dec *json.Decoder, depth int) (any, error) {
	obj := NewObject()
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return nil, err
		}
		key, ok := tok.(string)
		if !ok {
			return nil, fmt.Errorf("unexpected object key %v", tok)
		}

		val, err := decodeValue(dec, depth)
		if err != nil {
			return nil, err
		}
		obj.Set(key, val)
	}

	if _, err := dec.Token(); err != nil {
		return nil, err
	}
	return obj, nil
}

func decodeArray(dec *json.Decoder, depth int) (any, error) {
	arr := []any{}
	for dec.More() {
		val, err := decodeValue(dec, depth)
		if err != nil {
			return nil, err
		}
		arr = append(arr, val)
	}

	if _, err := dec.Token(); err != nil {
		return nil, err
	}
	return arr, nil
}

// Encode serializes v. A positive indent pretty-prints with that many spaces per level.
// The result always ends with a newline and HTML characters are not escaped.
func Encode(v any, indent int) ([]byte, error) {
	e := &encoder{}
	if indent > 0 {
		e.indent = strings.Repeat(" ", indent)
	}
	if err := e.value(v, 0); err != nil {
		return nil, err
	}
	e.buf.WriteByte('\n')
	return e.buf.Bytes(), nil
}

type encoder struct {
	buf    bytes.Buffer
	indent string
}

func (e *encoder) value(v any, depth int) error {
	switch node := v.(type) {
	case *Object:
		if node == nil {
			e.buf.WriteString("null")
			return nil
		}
		return e.object(node, depth)
	case []any:
		return e.array(node, depth)
	default:
		return e.scalar(node)
	}
}

func (e *encoder) object(obj *Object, depth int) error {
	if obj.Len() == 0 {
		e.buf.WriteString("{}")
		return nil
	}

	e.buf.WriteByte('{')
	for pair, first := obj.Oldest(), true; pair != nil; pair, first = pair.Next(), false {
		if !first {
			e.buf.WriteByte(',')
		}
		e.newline(depth + 1)
		if err := e.scalar(pair.Key); err != nil {
			return err
		}
		e.buf.WriteByte(':')
		if e.indent != "" {
			e.buf.WriteByte(' ')
		}
		if err := e.value(pair.Value, depth+1); err != nil {
			return fmt.Errorf("%s: %w", pair.Key, err)
		}
	}
	e.newline(depth)
	e.buf.WriteByte('}')
	return nil
}

func (e *encoder) array(arr []any, depth int) error {
	if len(arr) == 0 {
		e.buf.WriteString("[]")
		return nil
	}

	e.buf.WriteByte('[')
	for i, item := range arr {
		if i > 0 {
			e.buf.WriteByte(',')
		}
		e.newline(depth + 1)
		if err := e.value(item, depth+1); err != nil {
			return fmt.Errorf("[%d]: %w", i, err)
		}
	}
	e.newline(depth)
	e.buf.WriteByte(']')
	return nil
}

func (e *encoder) newline(depth int) {
	if e.indent == "" {
		return
	}
	e.buf.WriteByte('\n')
	for i := 0; i < depth; i++ {
		e.buf.WriteString(e.indent)
	}
}

func (e *encoder) scalar(v any) error {
	var tmp bytes.Buffer
	enc := json.NewEncoder(&tmp)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return err
	}
	e.buf.Write(bytes.TrimSuffix(tmp.Bytes(), []byte{'\n'}))
	return nil
}

// Keys returns the member names of obj in document order.
func Keys(obj *Object) []string {
	keys := make([]string, 0, obj.Len())
	for pair := obj.Oldest(); pair != nil; pair = pair.Next() {
		keys = append(keys, pair.Key)
	}
	return keys
}

// AsObject reports whether v is a mapping node.
func AsObject(v any) (*Object, bool) {
	obj, ok := v.(*Object)
	return obj, ok && obj != nil
}

// AsArray reports whether v is a sequence node.
func AsArray(v any) ([]any, bool) {
	arr, ok := v.([]any)
	return arr, ok
}
