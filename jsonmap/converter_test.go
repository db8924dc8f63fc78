package jsonmap

import (
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/atomic"
)

// upperConverter stores strings upper-cased and treats "" as null.
type upperConverter struct{}

func (upperConverter) Parse(r *Reader) (string, error) {
	return strings.ToLower(r.Text()), nil
}

func (upperConverter) Serialize(v string, w *Writer) error {
	w.WriteString(strings.ToUpper(v))
	return w.Err()
}

func (upperConverter) IsNull(v string) bool { return v == "" }

func TestConverterCacheConstructsOnce(t *testing.T) {
	var builds atomic.Int32

	cache := NewConverterCache(func() Converter[string] {
		builds.Inc()
		return upperConverter{}
	})
	assert.Equal(t, int32(0), builds.Load())

	var wg sync.WaitGroup
	for range 8 {
		wg.Add(1)

		go func() {
			defer wg.Done()
			cache.Get()
		}()
	}

	wg.Wait()
	assert.Equal(t, int32(1), builds.Load())
}

func TestConverterCodec(t *testing.T) {
	c := ConverterCodec(NewConverterCache(func() Converter[string] { return upperConverter{} }))

	v, err := readWith(t, c, `"ABC"`)
	require.NoError(t, err)
	assert.Equal(t, "abc", v)
	assert.Equal(t, `"ABC"`, writeWith(t, c, "abc"))
	assert.True(t, c.IsNull(""))

	plain := ConverterCodec(NewConverterCache(func() Converter[int] { return intAsString{} }))
	assert.False(t, plain.IsNull(0))
}

type intAsString struct{}

func (intAsString) Parse(r *Reader) (int, error) { return Int.Read(r) }

func (intAsString) Serialize(v int, w *Writer) error {
	w.WriteString(strings.Repeat("i", v))
	return w.Err()
}
