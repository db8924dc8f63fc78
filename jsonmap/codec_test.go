package jsonmap

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func readWith[T any](t *testing.T, c Codec[T], input string) (T, error) {
	t.Helper()

	r := NewBytesReader([]byte(input))
	_, err := r.Next()
	require.NoError(t, err)

	return c.Read(r)
}

func writeWith[T any](t *testing.T, c Codec[T], v T) string {
	t.Helper()

	w := NewWriter(nil)
	require.NoError(t, c.Write(v, w))

	return string(w.Bytes())
}

func TestScalarReadsAreLenient(t *testing.T) {
	tests := []struct {
		input string
		want  int64
	}{
		{`42`, 42},
		{`-7`, -7},
		{`"17"`, 17},
		{`1.9`, 1},
		{`1e3`, 1000},
		{`true`, 1},
		{`false`, 0},
		{`null`, 0},
		{`"abc"`, 0},
		{`{"a":1}`, 0},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := readWith(t, Int64, tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

// readErr adapts a codec to a table of decoders over different types.
func readErr[T any](c Codec[T]) func(*Reader) error {
	return func(r *Reader) error {
		_, err := c.Read(r)
		return err
	}
}

func TestScalarOverflow(t *testing.T) {
	tests := []struct {
		name  string
		input string
		read  func(*Reader) error
	}{
		{"int8", `300`, readErr(Int8)},
		{"int8", `1e3`, readErr(Int8)},
		{"int8", `-129.5`, readErr(Int8)},
		{"int64", `1e30`, readErr(Int64)},
		{"int64", `-1e19`, readErr(Int64)},
		{"int32", `1e400`, readErr(Int32)},
		{"int", `"Inf"`, readErr(Int)},
		{"int", `"NaN"`, readErr(Int)},
		{"uint8", `-1`, readErr(Uint8)},
		{"uint8", `2.56e2`, readErr(Uint8)},
		{"uint64", `1e20`, readErr(Uint64)},
		{"uint16", `"-1e1"`, readErr(Uint16)},
	}

	for _, tt := range tests {
		t.Run(tt.name+" "+tt.input, func(t *testing.T) {
			r := NewBytesReader([]byte(tt.input))
			_, err := r.Next()
			require.NoError(t, err)

			assert.Error(t, tt.read(r))
		})
	}

	v, err := readWith(t, Uint16, `65535`)
	require.NoError(t, err)
	assert.Equal(t, uint16(65535), v)

	i8, err := readWith(t, Int8, `-1.28e2`)
	require.NoError(t, err)
	assert.Equal(t, int8(-128), i8)

	i8, err = readWith(t, Int8, `127.9`)
	require.NoError(t, err)
	assert.Equal(t, int8(127), i8)

	u8, err := readWith(t, Uint8, `2.55e2`)
	require.NoError(t, err)
	assert.Equal(t, uint8(255), u8)
}

func TestStringBoolFloatReads(t *testing.T) {
	s, err := readWith(t, String, `"héllo"`)
	require.NoError(t, err)
	assert.Equal(t, "héllo", s)

	s, err = readWith(t, String, `12`)
	require.NoError(t, err)
	assert.Equal(t, "12", s)

	b, err := readWith(t, Bool, `"true"`)
	require.NoError(t, err)
	assert.True(t, b)

	b, err = readWith(t, Bool, `0`)
	require.NoError(t, err)
	assert.False(t, b)

	f, err := readWith(t, Float64, `"2.5"`)
	require.NoError(t, err)
	assert.InDelta(t, 2.5, f, 0)

	f32, err := readWith(t, Float32, `0.25`)
	require.NoError(t, err)
	assert.InDelta(t, float32(0.25), f32, 0)
}

func TestPtrOf(t *testing.T) {
	c := PtrOf(String)

	v, err := readWith(t, c, `null`)
	require.NoError(t, err)
	assert.Nil(t, v)

	v, err = readWith(t, c, `"x"`)
	require.NoError(t, err)
	require.NotNil(t, v)
	assert.Equal(t, "x", *v)

	assert.True(t, c.IsNull(nil))
	assert.Equal(t, `null`, writeWith(t, c, nil))
}

func TestSliceOf(t *testing.T) {
	c := SliceOf(Int, false)

	v, err := readWith(t, c, `[1,2,3]`)
	require.NoError(t, err)
	assert.Equal(t, []int{1, 2, 3}, v)

	v, err = readWith(t, c, `[]`)
	require.NoError(t, err)
	assert.NotNil(t, v)
	assert.Empty(t, v)

	v, err = readWith(t, c, `null`)
	require.NoError(t, err)
	assert.Nil(t, v)

	nested, err := readWith(t, SliceOf(SliceOf(String, false), false), `[["a"],[],["b","c"]]`)
	require.NoError(t, err)
	assert.Equal(t, [][]string{{"a"}, {}, {"b", "c"}}, nested)
}

func TestSliceOfNullElements(t *testing.T) {
	one := 1
	values := []*int{&one, nil}

	assert.Equal(t, `[1]`, writeWith(t, SliceOf(PtrOf(Int), false), values))
	assert.Equal(t, `[1,null]`, writeWith(t, SliceOf(PtrOf(Int), true), values))

	got, err := readWith(t, SliceOf(PtrOf(Int), false), `[1,null]`)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Nil(t, got[1])
}

func TestMapOf(t *testing.T) {
	c := MapOf(Int, false)

	v, err := readWith(t, c, `{"b":2,"a":1,"skip":{"x":1}}`)
	require.NoError(t, err)
	assert.Equal(t, map[string]int{"a": 1, "b": 2, "skip": 0}, v)

	assert.Equal(t, `{"a":1,"b":2}`, writeWith(t, c, map[string]int{"b": 2, "a": 1}))

	p := MapOf(PtrOf(String), false)
	x := "x"
	assert.Equal(t, `{"a":"x"}`, writeWith(t, p, map[string]*string{"a": &x, "b": nil}))

	p = MapOf(PtrOf(String), true)
	assert.Equal(t, `{"a":"x","b":null}`, writeWith(t, p, map[string]*string{"a": &x, "b": nil}))
}

func TestWriteFieldNullPolicy(t *testing.T) {
	write := func(keepNull bool) string {
		w := NewWriter(nil)
		w.WriteStartObject()
		require.NoError(t, WriteField(w, "a", PtrOf(Int), nil, keepNull))
		require.NoError(t, WriteField(w, "b", Int, 3, keepNull))
		w.WriteEndObject()
		require.NoError(t, w.Err())

		return string(w.Bytes())
	}

	assert.Equal(t, `{"b":3}`, write(false))
	assert.Equal(t, `{"a":null,"b":3}`, write(true))
}
