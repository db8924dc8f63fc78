package primitive_test

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"mapper-generator/primitive"
)

func Example() {
	fmt.Println(primitive.FromGoName("int"))
	fmt.Println(primitive.FromGoName("string"))
	fmt.Println(primitive.FromGoName("byte"))
	fmt.Println(primitive.FromGoName("Book"))
	fmt.Println(primitive.KindFloat64.WitnessName())
	// Output:
	// KindInt
	// KindString
	// KindUint8
	// KindEnum(0)
	// Float64Type
}

func TestKindNames(t *testing.T) {
	for k := primitive.KindEnum(1); int(k) < primitive.KindTotal; k++ {
		assert.True(t, k.IsValid())
		assert.Equal(t, k, primitive.FromGoName(k.TypeName()), k.String())
		assert.NotEmpty(t, k.CodecName())
	}

	assert.Equal(t, "Int64", primitive.KindInt64.CodecName())
	assert.Equal(t, "", primitive.KindEnum(0).GoName())
}

func TestKindClassification(t *testing.T) {
	tests := []struct {
		kind                         primitive.KindEnum
		number, integer, float, sign bool
		bits                         int
	}{
		{primitive.KindInt8, true, true, false, true, 8},
		{primitive.KindUint32, true, true, false, false, 32},
		{primitive.KindFloat32, true, false, true, false, 32},
		{primitive.KindFloat64, true, false, true, false, 64},
	}

	for _, tt := range tests {
		t.Run(tt.kind.String(), func(t *testing.T) {
			assert.Equal(t, tt.number, tt.kind.IsNumber())
			assert.Equal(t, tt.integer, tt.kind.IsInteger())
			assert.Equal(t, tt.float, tt.kind.IsFloat())
			assert.Equal(t, tt.sign, tt.kind.IsSigned())
			assert.Equal(t, tt.bits, tt.kind.Bits())
		})
	}

	assert.False(t, primitive.KindString.IsNumber())
	assert.Panics(t, func() { primitive.KindBool.Bits() })
}
