package mapping

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mapper-generator/primitive"
)

func TestParseTypeExpr(t *testing.T) {
	tests := []struct {
		expr      string
		converter string
		kind      TypeKind
		normal    string
		leaf      TypeKind
	}{
		{expr: "int64", kind: TypeScalar, normal: "int64", leaf: TypeScalar},
		{expr: "*string", kind: TypeNullable, normal: "*string", leaf: TypeNullable},
		{expr: "*Author", kind: TypeObject, normal: "*Author", leaf: TypeObject},
		{expr: "*other.Author", kind: TypeObject, normal: "*other.Author", leaf: TypeObject},
		{expr: "[]  *Book", kind: TypeSlice, normal: "[]*Book", leaf: TypeObject},
		{expr: "map[string][]int", kind: TypeMap, normal: "map[string][]int", leaf: TypeScalar},
		{expr: "T", kind: TypeParam, normal: "T", leaf: TypeParam},
		{expr: "*Page[T]", kind: TypeObject, normal: "*Page[T]", leaf: TypeObject},
		{expr: "*Pair[string, *Book]", kind: TypeObject, normal: "*Pair[string, *Book]", leaf: TypeObject},
		{expr: "time.Time", converter: "EpochConverter", kind: TypeConverter, normal: "time.Time", leaf: TypeConverter},
		{expr: "[]time.Time", converter: "EpochConverter", kind: TypeSlice, normal: "[]time.Time", leaf: TypeConverter},
	}

	for _, tt := range tests {
		t.Run(tt.expr, func(t *testing.T) {
			d, err := ParseTypeExpr(tt.expr, []string{"T"}, tt.converter)
			require.NoError(t, err)
			assert.Equal(t, tt.kind, d.Kind)
			assert.Equal(t, tt.normal, d.Expr)
			assert.Equal(t, tt.leaf, d.Leaf().Kind)
		})
	}
}

func TestParseTypeExpr_Details(t *testing.T) {
	d, err := ParseTypeExpr("*Page[map[string]T]", []string{"T", "U"}, "")
	require.NoError(t, err)

	assert.Equal(t, "Page", d.Name)
	assert.Empty(t, d.Qualifier)
	assert.Equal(t, []string{"T"}, d.Params)
	assert.False(t, d.IsConcrete())
	require.Len(t, d.Args, 1)
	assert.Equal(t, TypeMap, d.Args[0].Kind)
	assert.Equal(t, TypeParam, d.Args[0].Elem.Kind)

	d, err = ParseTypeExpr("*other.Author", nil, "")
	require.NoError(t, err)
	assert.Equal(t, "other", d.Qualifier)
	assert.Equal(t, "Author", d.Name)
	assert.True(t, d.IsConcrete())

	d, err = ParseTypeExpr("[]*uint8", nil, "")
	require.NoError(t, err)
	assert.Equal(t, primitive.KindUint8, d.Elem.Scalar)

	var kinds []TypeKind
	d.Walk(func(sub *TypeDescriptor) { kinds = append(kinds, sub.Kind) })
	assert.Equal(t, []TypeKind{TypeSlice, TypeNullable}, kinds)
}

func TestParseTypeExpr_Errors(t *testing.T) {
	for _, expr := range []string{
		"",
		"[3]int",
		"map[int]string",
		"Author",
		"time.Time",
		"*T",
		"chan int",
		"func()",
		"*Page[chan int]",
		"[]int{",
	} {
		_, err := ParseTypeExpr(expr, []string{"T"}, "")
		assert.Error(t, err, expr)
	}
}

func TestTypeKind_String(t *testing.T) {
	assert.Equal(t, "Object", TypeObject.String())
	assert.Equal(t, "Converter", TypeConverter.String())
	assert.Equal(t, "TypeKind(42)", TypeKind(42).String())
}
