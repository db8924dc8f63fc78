package jsonmap

import "sync"

// Converter is a user supplied codec for one value type. Parse is called with
// the reader positioned on the value.
type Converter[V any] interface {
	Parse(r *Reader) (V, error)
	Serialize(v V, w *Writer) error
}

// NullChecker may be implemented by a converter to mark values that encode as
// null. Values of converters without it are never null.
type NullChecker[V any] interface {
	IsNull(v V) bool
}

// ConverterCache holds one lazily constructed converter. Every field of a
// mapper that uses the same converter type shares one cache.
type ConverterCache[V any] struct {
	once sync.Once
	make func() Converter[V]
	conv Converter[V]
}

// NewConverterCache returns a cache that constructs its converter with newFn on first use.
func NewConverterCache[V any](newFn func() Converter[V]) *ConverterCache[V] {
	return &ConverterCache[V]{make: newFn}
}

// Get returns the converter, constructing it on the first call.
func (c *ConverterCache[V]) Get() Converter[V] {
	c.once.Do(func() {
		c.conv = c.make()
	})

	return c.conv
}

// ConverterCodec adapts a cached converter to a codec.
func ConverterCodec[V any](c *ConverterCache[V]) Codec[V] {
	return Codec[V]{
		Read: func(r *Reader) (V, error) {
			return c.Get().Parse(r)
		},
		Write: func(v V, w *Writer) error {
			if err := c.Get().Serialize(v, w); err != nil {
				return err
			}

			return w.Err()
		},
		IsNull: func(v V) bool {
			if nc, ok := c.Get().(NullChecker[V]); ok {
				return nc.IsNull(v)
			}

			return false
		},
	}
}
