package template

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"strings"
)

// Wire format.
//
// The expression tree is a stable, canonical byte encoding:
//
//	header      1 byte: 0x10 (constant segregation) | version (0-7)
//	constants   uvarint count, then one type code per constant slot
//	body        token stream until end of buffer
//
// Constant values are not part of the tree; they live in the
// template's side table so instantiation can rewrite them without
// touching the tree.
//
// Body tokens are either a constant placeholder (tagPlaceholder +
// uvarint constant index) or a verbatim script token (tagToken +
// uvarint length + UTF-8 bytes). Tokenization elides whitespace and
// comments, so semantically identical sources serialize identically.
//
// Values use zigzag VLQ for integers and length-prefixed bytes for
// collections. Trivial sigma propositions are a single 0x00/0x01 byte.
const (
	headerSegregated byte = 0x10

	tagToken       byte = 0x00
	tagPlaceholder byte = 0x01
)

// Type codes. Primitive collections encode as collCode + element code.
const (
	codeBoolean      byte = 0x01
	codeByte         byte = 0x02
	codeShort        byte = 0x03
	codeInt          byte = 0x04
	codeLong         byte = 0x05
	codeBigInt       byte = 0x06
	codeGroupElement byte = 0x07
	codeSigmaProp    byte = 0x08

	collCode byte = 0x0C
)

var primitiveCodes = map[string]byte{
	"Boolean":      codeBoolean,
	"Byte":         codeByte,
	"Short":        codeShort,
	"Int":          codeInt,
	"Long":         codeLong,
	"BigInt":       codeBigInt,
	"GroupElement": codeGroupElement,
	"SigmaProp":    codeSigmaProp,
}

// TypeCode returns the wire code for a type tag.
func TypeCode(tag string) (byte, error) {
	if c, ok := primitiveCodes[tag]; ok {
		return c, nil
	}

	if elem, ok := strings.CutPrefix(tag, "Coll["); ok && strings.HasSuffix(elem, "]") {
		c, ok := primitiveCodes[strings.TrimSuffix(elem, "]")]
		if !ok {
			return 0, fmt.Errorf("unsupported collection element type in %q", tag)
		}

		return collCode + c, nil
	}

	return 0, fmt.Errorf("unsupported type tag %q", tag)
}

// writer accumulates wire bytes.
type writer struct {
	buf bytes.Buffer
}

func (w *writer) byte(b byte) {
	w.buf.WriteByte(b)
}

func (w *writer) bytes(b []byte) {
	w.buf.Write(b)
}

// varint writes a zigzag VLQ integer.
func (w *writer) varint(v int64) {
	w.buf.Write(binary.AppendVarint(nil, v))
}

// uvarint writes an unsigned VLQ integer.
func (w *writer) uvarint(v uint64) {
	w.buf.Write(binary.AppendUvarint(nil, v))
}

// SerializeValue encodes a constant value in the wire format.
func SerializeValue(v Value) ([]byte, error) {
	if err := validateRange(v); err != nil {
		return nil, err
	}

	var w writer

	switch v.Type {
	case "Boolean":
		w.byte(boolByte(v.Flag))

	case "Int", "Long":
		w.varint(v.Num)

	case "Coll[Byte]", "GroupElement":
		w.uvarint(uint64(len(v.Bytes)))
		w.bytes(v.Bytes)

	case "SigmaProp":
		w.byte(boolByte(v.Flag))

	case "Coll[SigmaProp]":
		w.uvarint(uint64(len(v.Props)))

		for _, p := range v.Props {
			w.byte(boolByte(p))
		}

	case "Coll[Int]", "Coll[Long]":
		w.uvarint(uint64(len(v.Nums)))

		for _, n := range v.Nums {
			w.varint(n)
		}

	default:
		return nil, fmt.Errorf("cannot serialize value of type %q", v.Type)
	}

	return w.buf.Bytes(), nil
}

func boolByte(b bool) byte {
	if b {
		return 0x01
	}

	return 0x00
}
