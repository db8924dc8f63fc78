package jsonmap

import (
	"io"
)

// Unmarshal decodes data with m.
func Unmarshal[T any](m Mapper[T], data []byte) (T, error) {
	return m.Parse(NewBytesReader(data))
}

// Decode decodes one value from in with m.
func Decode[T any](m Mapper[T], in io.Reader) (T, error) {
	return m.Parse(NewReader(in))
}

// Marshal encodes v with m.
func Marshal[T any](m Mapper[T], v T) ([]byte, error) {
	w := NewWriter(nil)
	if err := m.Serialize(v, w, true); err != nil {
		return nil, err
	}

	if err := w.Err(); err != nil {
		return nil, err
	}

	return w.Bytes(), nil
}

// Encode encodes v with m and flushes the result to out.
func Encode[T any](m Mapper[T], v T, out io.Writer) error {
	w := NewWriter(out)
	if err := m.Serialize(v, w, true); err != nil {
		return err
	}

	return w.Flush()
}
