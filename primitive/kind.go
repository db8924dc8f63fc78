// Package primitive describes the Go scalar types that map onto JSON scalars.
package primitive

import (
	"math"
	"strings"
)

//go:generate go tool stringer -type=KindEnum -output=kind_string.go

type KindEnum int

const (
	_ KindEnum = iota // skip zero value, use it as a default (invalid) value for KindEnum

	KindInt
	KindInt8
	KindInt16
	KindInt32
	KindInt64
	KindUint
	KindUint8
	KindUint16
	KindUint32
	KindUint64
	KindFloat32
	KindFloat64
	KindBool
	KindString

	// KindTotal is a constant that represents the total number of kinds defined
	KindTotal = int(iota)
)

var goNames = map[string]KindEnum{
	"int":     KindInt,
	"int8":    KindInt8,
	"int16":   KindInt16,
	"int32":   KindInt32,
	"int64":   KindInt64,
	"uint":    KindUint,
	"uint8":   KindUint8,
	"uint16":  KindUint16,
	"uint32":  KindUint32,
	"uint64":  KindUint64,
	"float32": KindFloat32,
	"float64": KindFloat64,
	"bool":    KindBool,
	"string":  KindString,
	// predeclared aliases
	"byte": KindUint8,
	"rune": KindInt32,
}

// FromGoName returns the kind of a predeclared Go type name, or the zero kind
// when the name is not a supported scalar.
func FromGoName(name string) KindEnum {
	return goNames[name]
}

func (k KindEnum) IsValid() bool {
	return k > 0 && int(k) < KindTotal
}

func (k KindEnum) IsNumber() bool {
	switch k {
	default:
		return false
	case KindInt, KindInt8, KindInt16, KindInt32, KindInt64,
		KindUint, KindUint8, KindUint16, KindUint32, KindUint64,
		KindFloat32, KindFloat64:
		return true
	}
}

func (k KindEnum) IsInteger() bool {
	return k.IsNumber() && !k.IsFloat()
}

func (k KindEnum) IsFloat() bool {
	return k == KindFloat32 || k == KindFloat64
}

func (k KindEnum) IsSigned() bool {
	switch k {
	default:
		return false
	case KindInt, KindInt8, KindInt16, KindInt32, KindInt64:
		return true
	}
}

func (k KindEnum) Bits() int {
	switch k {
	default:
		panic("only numeric kinds have a meaningful bit size, but requested for: " + k.String())
	case KindInt, KindUint:
		power := 0
		for n := uint(math.MaxUint); n > 0; n >>= 1 {
			power++
		}
		return power
	case KindInt8, KindUint8:
		return 8
	case KindInt16, KindUint16:
		return 16
	case KindInt32, KindUint32, KindFloat32:
		return 32
	case KindInt64, KindUint64, KindFloat64:
		return 64
	}
}

// GoName returns the canonical Go spelling of the kind.
func (k KindEnum) GoName() string {
	if !k.IsValid() {
		return ""
	}

	return k.String()[len("Kind"):]
}

// TypeName returns the Go type name, e.g. "int64".
func (k KindEnum) TypeName() string {
	return strings.ToLower(k.GoName())
}

// CodecName returns the name of the runtime codec variable for the kind,
// e.g. "Int64".
func (k KindEnum) CodecName() string {
	return k.GoName()
}

// WitnessName returns the name of the runtime witness constructor for the
// kind, e.g. "Int64Type".
func (k KindEnum) WitnessName() string {
	if !k.IsValid() {
		return ""
	}

	return k.GoName() + "Type"
}
