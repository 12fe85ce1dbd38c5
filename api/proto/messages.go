// Package proto holds the wire messages and gRPC service descriptors described
// by kv.proto. Messages are encoded with protowire so they stay byte-compatible
// with protoc-generated code in other languages.
package proto

import (
	"errors"
	"fmt"
	"unicode/utf8"

	"google.golang.org/protobuf/encoding/protowire"
)

// ErrInvalidUTF8 is returned when a string field holds bytes that are not
// valid UTF-8. Generated proto3 code rejects such fields in both directions.
var ErrInvalidUTF8 = errors.New("string field contains invalid UTF-8")

// Message is implemented by every request and response in this package.
type Message interface {
	appendWire(e *encoder)
	consumeWire(b []byte) error
}

type PutRequest struct {
	Key   string
	Value string
}

type PutResponse struct {
	Success bool
}

type GetRequest struct {
	Key string
}

// GetResponse carries the value for a key. Found is false when the key is
// absent, which keeps "not found" distinct from a stored empty string.
type GetResponse struct {
	Value string
	Found bool
}

type DeleteRequest struct {
	Key string
}

type DeleteResponse struct {
	Removed bool
}

type LookupRequest struct {
	Name string
}

type LookupResponse struct {
	Endpoint string
	Found    bool
}

type ListRequest struct{}

type ListResponse struct {
	Names []string
}

func (m *PutRequest) appendWire(e *encoder) {
	e.string(1, m.Key)
	e.string(2, m.Value)
}

func (m *PutRequest) consumeWire(b []byte) error {
	*m = PutRequest{}
	return walk(b, func(f field) (err error) {
		switch {
		case f.is(1, protowire.BytesType):
			m.Key, err = f.string()
		case f.is(2, protowire.BytesType):
			m.Value, err = f.string()
		}
		return err
	})
}

func (m *PutResponse) appendWire(e *encoder) {
	e.bool(1, m.Success)
}

func (m *PutResponse) consumeWire(b []byte) error {
	*m = PutResponse{}
	return walk(b, func(f field) error {
		if f.is(1, protowire.VarintType) {
			m.Success = protowire.DecodeBool(f.varint)
		}
		return nil
	})
}

func (m *GetRequest) appendWire(e *encoder) {
	e.string(1, m.Key)
}

func (m *GetRequest) consumeWire(b []byte) error {
	*m = GetRequest{}
	return walk(b, func(f field) (err error) {
		if f.is(1, protowire.BytesType) {
			m.Key, err = f.string()
		}
		return err
	})
}

func (m *GetResponse) appendWire(e *encoder) {
	e.string(1, m.Value)
	e.bool(2, m.Found)
}

func (m *GetResponse) consumeWire(b []byte) error {
	*m = GetResponse{}
	return walk(b, func(f field) (err error) {
		switch {
		case f.is(1, protowire.BytesType):
			m.Value, err = f.string()
		case f.is(2, protowire.VarintType):
			m.Found = protowire.DecodeBool(f.varint)
		}
		return err
	})
}

func (m *DeleteRequest) appendWire(e *encoder) {
	e.string(1, m.Key)
}

func (m *DeleteRequest) consumeWire(b []byte) error {
	*m = DeleteRequest{}
	return walk(b, func(f field) (err error) {
		if f.is(1, protowire.BytesType) {
			m.Key, err = f.string()
		}
		return err
	})
}

func (m *DeleteResponse) appendWire(e *encoder) {
	e.bool(1, m.Removed)
}

func (m *DeleteResponse) consumeWire(b []byte) error {
	*m = DeleteResponse{}
	return walk(b, func(f field) error {
		if f.is(1, protowire.VarintType) {
			m.Removed = protowire.DecodeBool(f.varint)
		}
		return nil
	})
}

func (m *LookupRequest) appendWire(e *encoder) {
	e.string(1, m.Name)
}

func (m *LookupRequest) consumeWire(b []byte) error {
	*m = LookupRequest{}
	return walk(b, func(f field) (err error) {
		if f.is(1, protowire.BytesType) {
			m.Name, err = f.string()
		}
		return err
	})
}

func (m *LookupResponse) appendWire(e *encoder) {
	e.string(1, m.Endpoint)
	e.bool(2, m.Found)
}

func (m *LookupResponse) consumeWire(b []byte) error {
	*m = LookupResponse{}
	return walk(b, func(f field) (err error) {
		switch {
		case f.is(1, protowire.BytesType):
			m.Endpoint, err = f.string()
		case f.is(2, protowire.VarintType):
			m.Found = protowire.DecodeBool(f.varint)
		}
		return err
	})
}

func (m *ListRequest) appendWire(*encoder) {}

func (m *ListRequest) consumeWire(b []byte) error {
	*m = ListRequest{}
	return walk(b, func(field) error { return nil })
}

func (m *ListResponse) appendWire(e *encoder) {
	for _, name := range m.Names {
		e.repeatedString(1, name)
	}
}

func (m *ListResponse) consumeWire(b []byte) error {
	*m = ListResponse{}
	return walk(b, func(f field) error {
		if !f.is(1, protowire.BytesType) {
			return nil
		}
		name, err := f.string()
		if err != nil {
			return err
		}
		m.Names = append(m.Names, name)
		return nil
	})
}

// encoder appends fields to b and keeps the first error it hits.
type encoder struct {
	b   []byte
	err error
}

// string writes a singular proto3 string, which is omitted when empty.
func (e *encoder) string(num protowire.Number, v string) {
	if v == "" {
		return
	}
	e.repeatedString(num, v)
}

func (e *encoder) repeatedString(num protowire.Number, v string) {
	if e.err != nil {
		return
	}
	if !utf8.ValidString(v) {
		e.err = fmt.Errorf("field %d: %w", num, ErrInvalidUTF8)
		return
	}
	e.b = protowire.AppendTag(e.b, num, protowire.BytesType)
	e.b = protowire.AppendString(e.b, v)
}

func (e *encoder) bool(num protowire.Number, v bool) {
	if e.err != nil || !v {
		return
	}
	e.b = protowire.AppendTag(e.b, num, protowire.VarintType)
	e.b = protowire.AppendVarint(e.b, protowire.EncodeBool(v))
}

func marshalWire(m Message) ([]byte, error) {
	e := &encoder{}
	m.appendWire(e)
	if e.err != nil {
		return nil, e.err
	}
	return e.b, nil
}

type field struct {
	num    protowire.Number
	typ    protowire.Type
	bytes  []byte
	varint uint64
}

func (f field) is(num protowire.Number, typ protowire.Type) bool {
	return f.num == num && f.typ == typ
}

func (f field) string() (string, error) {
	if !utf8.Valid(f.bytes) {
		return "", fmt.Errorf("field %d: %w", f.num, ErrInvalidUTF8)
	}
	return string(f.bytes), nil
}

// walk decodes b field by field. Length-delimited and varint fields are handed
// to visit; fields of any other type are skipped. The first error from visit
// stops the walk.
func walk(b []byte, visit func(field) error) error {
	for len(b) > 0 {
		num, typ, n := protowire.ConsumeTag(b)
		if n < 0 {
			return protowire.ParseError(n)
		}
		b = b[n:]

		f := field{num: num, typ: typ}
		switch typ {
		case protowire.BytesType:
			f.bytes, n = protowire.ConsumeBytes(b)
		case protowire.VarintType:
			f.varint, n = protowire.ConsumeVarint(b)
		default:
			n = protowire.ConsumeFieldValue(num, typ, b)
		}
		if n < 0 {
			return protowire.ParseError(n)
		}
		b = b[n:]

		if typ == protowire.BytesType || typ == protowire.VarintType {
			if err := visit(f); err != nil {
				return err
			}
		}
	}
	return nil
}
