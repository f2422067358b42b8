// Package strictencoding implements the canonical binary serialization format
// used for all commitment-relevant structures.
//
// The format is deliberately rigid so that a value has exactly one encoding:
// fixed-width little-endian integers, collections prefixed by a 16-bit item
// count (encoding fails beyond 65535 items), Option values as a single tag
// byte (0 absent, 1 present followed by the value), and decoding fails unless
// the input is consumed entirely.
package strictencoding

import (
	"bytes"
	"encoding/binary"
	"io"
	"unicode/utf8"

	"github.com/pkg/errors"
)

// MaxCollectionItems is the largest number of items a collection may carry,
// bound by the 16-bit length prefix.
const MaxCollectionItems = 1<<16 - 1

var (
	// ErrExceedMaxItems is returned when encoding a collection with more
	// items than the 16-bit length prefix can represent.
	ErrExceedMaxItems = errors.New("collection exceeds maximum of 65535 items")

	// ErrWrongOptionalEncoding is returned when the tag byte of an encoded
	// Option is neither 0 nor 1.
	ErrWrongOptionalEncoding = errors.New("optional value tag byte must be 0 or 1")

	// ErrEnumValueNotKnown is returned when a decoded enum discriminant does
	// not correspond to any known variant.
	ErrEnumValueNotKnown = errors.New("unknown enum value")

	// ErrNotEntirelyConsumed is returned by Deserialize when decoding
	// finishes before the end of the input.
	ErrNotEntirelyConsumed = errors.New("data was not entirely consumed during decoding")

	// ErrInvalidUTF8 is returned when decoded string data is not valid UTF-8.
	ErrInvalidUTF8 = errors.New("string data is not valid UTF-8")
)

// Encoder is implemented by types that serialize themselves with the strict
// encoding rules.
type Encoder interface {
	StrictEncode(w io.Writer) error
}

// Decoder is implemented by types that deserialize themselves with the strict
// encoding rules.
type Decoder interface {
	StrictDecode(r io.Reader) error
}

// Serialize encodes v into a fresh byte slice.
func Serialize(v Encoder) ([]byte, error) {
	var buf bytes.Buffer
	if err := v.StrictEncode(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Deserialize decodes v from data. Decoding fails with ErrNotEntirelyConsumed
// if any trailing bytes remain, so two different inputs can never decode to
// the same value.
func Deserialize(data []byte, v Decoder) error {
	r := bytes.NewReader(data)
	if err := v.StrictDecode(r); err != nil {
		return err
	}
	if r.Len() != 0 {
		return errors.Wrapf(ErrNotEntirelyConsumed, "%d trailing bytes", r.Len())
	}
	return nil
}

// PutUint8 writes a single byte.
func PutUint8(w io.Writer, val uint8) error {
	_, err := w.Write([]byte{val})
	return errors.WithStack(err)
}

// Uint8 reads a single byte.
func Uint8(r io.Reader) (uint8, error) {
	var buf [1]byte
	if _, err := io.ReadFull(r, buf[:]); err != nil {
		return 0, errors.WithStack(err)
	}
	return buf[0], nil
}

// PutUint16 writes val as two little-endian bytes.
func PutUint16(w io.Writer, val uint16) error {
	var buf [2]byte
	binary.LittleEndian.PutUint16(buf[:], val)
	_, err := w.Write(buf[:])
	return errors.WithStack(err)
}

// Uint16 reads two little-endian bytes.
func Uint16(r io.Reader) (uint16, error) {
	var buf [2]byte
	if _, err := io.ReadFull(r, buf[:]); err != nil {
		return 0, errors.WithStack(err)
	}
	return binary.LittleEndian.Uint16(buf[:]), nil
}

// PutUint32 writes val as four little-endian bytes.
func PutUint32(w io.Writer, val uint32) error {
	var buf [4]byte
	binary.LittleEndian.PutUint32(buf[:], val)
	_, err := w.Write(buf[:])
	return errors.WithStack(err)
}

// Uint32 reads four little-endian bytes.
func Uint32(r io.Reader) (uint32, error) {
	var buf [4]byte
	if _, err := io.ReadFull(r, buf[:]); err != nil {
		return 0, errors.WithStack(err)
	}
	return binary.LittleEndian.Uint32(buf[:]), nil
}

// PutUint64 writes val as eight little-endian bytes.
func PutUint64(w io.Writer, val uint64) error {
	var buf [8]byte
	binary.LittleEndian.PutUint64(buf[:], val)
	_, err := w.Write(buf[:])
	return errors.WithStack(err)
}

// Uint64 reads eight little-endian bytes.
func Uint64(r io.Reader) (uint64, error) {
	var buf [8]byte
	if _, err := io.ReadFull(r, buf[:]); err != nil {
		return 0, errors.WithStack(err)
	}
	return binary.LittleEndian.Uint64(buf[:]), nil
}

// PutCollectionLength writes the 16-bit item-count prefix of a collection,
// failing if the collection is too large to represent.
func PutCollectionLength(w io.Writer, length int) error {
	if length > MaxCollectionItems {
		return errors.Wrapf(ErrExceedMaxItems, "%d items", length)
	}
	return PutUint16(w, uint16(length))
}

// CollectionLength reads the 16-bit item-count prefix of a collection.
func CollectionLength(r io.Reader) (int, error) {
	length, err := Uint16(r)
	return int(length), err
}

// PutByteSlice writes data prefixed by its 16-bit length.
func PutByteSlice(w io.Writer, data []byte) error {
	if err := PutCollectionLength(w, len(data)); err != nil {
		return err
	}
	_, err := w.Write(data)
	return errors.WithStack(err)
}

// ByteSlice reads a 16-bit length prefix followed by that many bytes.
func ByteSlice(r io.Reader) ([]byte, error) {
	length, err := CollectionLength(r)
	if err != nil {
		return nil, err
	}
	data := make([]byte, length)
	if _, err := io.ReadFull(r, data); err != nil {
		return nil, errors.WithStack(err)
	}
	return data, nil
}

// PutString writes s as a length-prefixed byte slice.
func PutString(w io.Writer, s string) error {
	return PutByteSlice(w, []byte(s))
}

// String reads a length-prefixed byte slice and validates it as UTF-8.
func String(r io.Reader) (string, error) {
	data, err := ByteSlice(r)
	if err != nil {
		return "", err
	}
	if !utf8.Valid(data) {
		return "", errors.WithStack(ErrInvalidUTF8)
	}
	return string(data), nil
}

// PutOption writes the 1-byte Option tag. When present is true the caller is
// expected to encode the wrapped value immediately after.
func PutOption(w io.Writer, present bool) error {
	if present {
		return PutUint8(w, 1)
	}
	return PutUint8(w, 0)
}

// Option reads the 1-byte Option tag, failing on any value other than 0 or 1.
// When it returns true the caller must decode the wrapped value next.
func Option(r io.Reader) (bool, error) {
	tag, err := Uint8(r)
	if err != nil {
		return false, err
	}
	switch tag {
	case 0:
		return false, nil
	case 1:
		return true, nil
	default:
		return false, errors.Wrapf(ErrWrongOptionalEncoding, "tag byte %d", tag)
	}
}

// PutEnum writes a u8-backed enum discriminant.
func PutEnum(w io.Writer, val uint8) error {
	return PutUint8(w, val)
}

// Enum reads a u8-backed enum discriminant and checks it against the largest
// known variant value.
func Enum(r io.Reader, maxKnown uint8, enumName string) (uint8, error) {
	val, err := Uint8(r)
	if err != nil {
		return 0, err
	}
	if val > maxKnown {
		return 0, errors.Wrapf(ErrEnumValueNotKnown, "%s value %d", enumName, val)
	}
	return val, nil
}
