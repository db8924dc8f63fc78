package jsonmap

import (
	"maps"
	"math"
	"slices"
	"strconv"

	"github.com/cockroachdb/errors"
)

// Codec reads and writes values of one Go type. Read expects the reader to be
// positioned on the value and leaves it on the value's last token.
type Codec[T any] struct {
	Read   func(r *Reader) (T, error)
	Write  func(v T, w *Writer) error
	IsNull func(v T) bool
}

// Scalar codecs. Reads are lenient: numbers may arrive as strings and the
// other way around, null reads as the zero value.
var (
	String  = Codec[string]{Read: readString, Write: writeString, IsNull: never[string]}
	Bool    = Codec[bool]{Read: readBool, Write: writeBool, IsNull: never[bool]}
	Int     = signed[int](strconv.IntSize)
	Int8    = signed[int8](8)
	Int16   = signed[int16](16)
	Int32   = signed[int32](32)
	Int64   = signed[int64](64)
	Uint    = unsigned[uint](strconv.IntSize)
	Uint8   = unsigned[uint8](8)
	Uint16  = unsigned[uint16](16)
	Uint32  = unsigned[uint32](32)
	Uint64  = unsigned[uint64](64)
	Float32 = Codec[float32]{
		Read: func(r *Reader) (float32, error) {
			v, err := readFloat(r, 32)
			return float32(v), err
		},
		Write: func(v float32, w *Writer) error {
			w.WriteFloat32(v)
			return w.Err()
		},
		IsNull: never[float32],
	}
	Float64 = Codec[float64]{
		Read: func(r *Reader) (float64, error) {
			return readFloat(r, 64)
		},
		Write: func(v float64, w *Writer) error {
			w.WriteFloat64(v)
			return w.Err()
		},
		IsNull: never[float64],
	}
)

// PtrOf makes a nullable codec out of elem. JSON null reads as nil.
func PtrOf[T any](elem Codec[T]) Codec[*T] {
	return Codec[*T]{
		Read: func(r *Reader) (*T, error) {
			if r.Current() == TokenNull {
				return nil, nil
			}

			v, err := elem.Read(r)
			if err != nil {
				return nil, err
			}

			return &v, nil
		},
		Write: func(v *T, w *Writer) error {
			if v == nil {
				w.WriteNull()
				return w.Err()
			}

			return elem.Write(*v, w)
		},
		IsNull: func(v *T) bool { return v == nil },
	}
}

// SliceOf encodes a slice as a JSON array. Null elements are dropped on write
// unless keepNull is set.
func SliceOf[E any](elem Codec[E], keepNull bool) Codec[[]E] {
	return Codec[[]E]{
		Read: func(r *Reader) ([]E, error) {
			if r.Current() != TokenStartArray {
				return nil, r.SkipChildren()
			}

			out := make([]E, 0)

			for {
				tok, err := r.Next()
				if err != nil {
					return nil, err
				}

				if tok == TokenEndArray {
					return out, nil
				}

				v, err := elem.Read(r)
				if err != nil {
					return nil, err
				}

				out = append(out, v)
			}
		},
		Write: func(v []E, w *Writer) error {
			if v == nil {
				w.WriteNull()
				return w.Err()
			}

			w.WriteStartArray()

			for _, e := range v {
				if elem.IsNull(e) {
					if keepNull {
						w.WriteNull()
					}

					continue
				}

				if err := elem.Write(e, w); err != nil {
					return err
				}
			}

			w.WriteEndArray()

			return w.Err()
		},
		IsNull: func(v []E) bool { return v == nil },
	}
}

// MapOf encodes a string-keyed map as a JSON object with keys in sorted order.
// Null values are dropped on write unless keepNull is set.
func MapOf[E any](elem Codec[E], keepNull bool) Codec[map[string]E] {
	return Codec[map[string]E]{
		Read: func(r *Reader) (map[string]E, error) {
			if r.Current() != TokenStartObject {
				return nil, r.SkipChildren()
			}

			out := make(map[string]E)

			for {
				name, more, err := r.NextField()
				if err != nil {
					return nil, err
				}

				if !more {
					return out, nil
				}

				v, err := elem.Read(r)
				if err != nil {
					return nil, err
				}

				out[name] = v
			}
		},
		Write: func(v map[string]E, w *Writer) error {
			if v == nil {
				w.WriteNull()
				return w.Err()
			}

			w.WriteStartObject()

			for _, k := range slices.Sorted(maps.Keys(v)) {
				if err := WriteField(w, k, elem, v[k], keepNull); err != nil {
					return err
				}
			}

			w.WriteEndObject()

			return w.Err()
		},
		IsNull: func(v map[string]E) bool { return v == nil },
	}
}

// MapperCodec adapts a mapper to a codec. Values are written as complete objects.
func MapperCodec[T any](m Mapper[T]) Codec[T] {
	return Codec[T]{
		Read: m.Parse,
		Write: func(v T, w *Writer) error {
			return m.Serialize(v, w, true)
		},
		IsNull: m.IsNull,
	}
}

// WriteField writes one object member. A null value is omitted unless keepNull
// is set, in which case an explicit null is written.
func WriteField[T any](w *Writer, name string, c Codec[T], v T, keepNull bool) error {
	if c.IsNull(v) {
		if keepNull {
			w.WriteFieldName(name)
			w.WriteNull()
		}

		return w.Err()
	}

	w.WriteFieldName(name)

	return c.Write(v, w)
}

func never[T any](T) bool { return false }

func signed[T ~int | ~int8 | ~int16 | ~int32 | ~int64](bits int) Codec[T] {
	return Codec[T]{
		Read: func(r *Reader) (T, error) {
			v, err := readSigned(r, bits)
			return T(v), err
		},
		Write: func(v T, w *Writer) error {
			w.WriteInt64(int64(v))
			return w.Err()
		},
		IsNull: never[T],
	}
}

func unsigned[T ~uint | ~uint8 | ~uint16 | ~uint32 | ~uint64](bits int) Codec[T] {
	return Codec[T]{
		Read: func(r *Reader) (T, error) {
			v, err := readUnsigned(r, bits)
			return T(v), err
		},
		Write: func(v T, w *Writer) error {
			w.WriteUint64(uint64(v))
			return w.Err()
		},
		IsNull: never[T],
	}
}

func writeString(v string, w *Writer) error {
	w.WriteString(v)
	return w.Err()
}

func writeBool(v bool, w *Writer) error {
	w.WriteBool(v)
	return w.Err()
}

func readString(r *Reader) (string, error) {
	switch r.Current() {
	case TokenString, TokenNumber:
		return r.Text(), nil
	case TokenTrue:
		return "true", nil
	case TokenFalse:
		return "false", nil
	default:
		return "", r.SkipChildren()
	}
}

func readBool(r *Reader) (bool, error) {
	switch r.Current() {
	case TokenTrue:
		return true, nil
	case TokenNumber:
		f, err := strconv.ParseFloat(r.Text(), 64)
		return err == nil && f != 0, nil
	case TokenString:
		v, err := strconv.ParseBool(r.Text())
		return err == nil && v, nil
	default:
		return false, r.SkipChildren()
	}
}

// numericText returns the text to convert, or false when the token reads as zero.
func numericText(r *Reader) (string, bool, error) {
	switch r.Current() {
	case TokenNumber:
		return r.Text(), true, nil
	case TokenString:
		return r.Text(), true, nil
	case TokenTrue:
		return "1", true, nil
	default:
		return "", false, r.SkipChildren()
	}
}

func readSigned(r *Reader, bits int) (int64, error) {
	text, ok, err := numericText(r)
	if !ok || err != nil {
		return 0, err
	}

	v, err := strconv.ParseInt(text, 10, bits)
	if err == nil {
		return v, nil
	}

	if errors.Is(err, strconv.ErrRange) {
		return 0, errors.Wrapf(err, "jsonmap: number %q overflows int%d", text, bits)
	}

	f, ok, err := readIntegral(r, text)
	if !ok || err != nil {
		return 0, err
	}

	limit := math.Ldexp(1, bits-1)
	if f < -limit || f >= limit {
		return 0, errors.Wrapf(strconv.ErrRange, "jsonmap: number %q overflows int%d", text, bits)
	}

	return int64(f), nil
}

func readUnsigned(r *Reader, bits int) (uint64, error) {
	text, ok, err := numericText(r)
	if !ok || err != nil {
		return 0, err
	}

	v, err := strconv.ParseUint(text, 10, bits)
	if err == nil {
		return v, nil
	}

	if errors.Is(err, strconv.ErrRange) {
		return 0, errors.Wrapf(err, "jsonmap: number %q overflows uint%d", text, bits)
	}

	f, ok, err := readIntegral(r, text)
	if !ok || err != nil {
		return 0, err
	}

	if f < 0 || f >= math.Ldexp(1, bits) {
		return 0, errors.Wrapf(strconv.ErrRange, "jsonmap: number %q overflows uint%d", text, bits)
	}

	return uint64(f), nil
}

// readIntegral parses text that is not a plain integer, such as 1e3 or 2.5,
// and drops the fraction. Strings that are not numbers read as zero; an
// infinite value is returned as is so that the caller reports the overflow.
func readIntegral(r *Reader, text string) (float64, bool, error) {
	f, err := strconv.ParseFloat(text, 64)

	switch {
	case err == nil && !math.IsNaN(f):
		return math.Trunc(f), true, nil
	case errors.Is(err, strconv.ErrRange):
		return f, true, nil
	case r.Current() == TokenString && err != nil:
		return 0, false, nil
	default:
		return 0, false, errors.Newf("jsonmap: invalid number %q", text)
	}
}

func readFloat(r *Reader, bits int) (float64, error) {
	text, ok, err := numericText(r)
	if !ok || err != nil {
		return 0, err
	}

	v, err := strconv.ParseFloat(text, bits)
	if err != nil {
		if r.Current() == TokenString {
			return 0, nil
		}

		return 0, errors.Wrapf(err, "jsonmap: invalid number %q", text)
	}

	return v, nil
}
