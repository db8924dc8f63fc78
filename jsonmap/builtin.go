package jsonmap

// codecMapper exposes a codec as a Mapper so that scalars and collections can
// be used as actual type arguments of generic mapped types.
type codecMapper[T any] struct {
	codec Codec[T]
}

func (m *codecMapper[T]) Parse(r *Reader) (T, error) {
	if r.Current() == TokenNone {
		if _, err := r.Next(); err != nil {
			var zero T
			return zero, err
		}
	}

	return m.codec.Read(r)
}

func (m *codecMapper[T]) ParseWithContext(r *Reader, _ *MergeContext) (T, error) {
	return m.Parse(r)
}

func (m *codecMapper[T]) ParseField(T, string, *Reader, *MergeContext) error {
	return nil
}

func (m *codecMapper[T]) EndParse(any, T, *MergeContext) error {
	return nil
}

func (m *codecMapper[T]) Serialize(v T, w *Writer, _ bool) error {
	return m.codec.Write(v, w)
}

func (m *codecMapper[T]) NewMergeContext() *MergeContext {
	return NewMergeContext()
}

func (m *codecMapper[T]) IsNull(v T) bool {
	return m.codec.IsNull(v)
}

// CodecType returns a witness whose mapper is backed by codec.
func CodecType[T any](id string, codec Codec[T]) TypeWitness[T] {
	return NewTypeWitness(id, func(*Resolution) (Mapper[T], error) {
		return &codecMapper[T]{codec: codec}, nil
	})
}

func StringType() TypeWitness[string]   { return CodecType("string", String) }
func BoolType() TypeWitness[bool]       { return CodecType("bool", Bool) }
func IntType() TypeWitness[int]         { return CodecType("int", Int) }
func Int8Type() TypeWitness[int8]       { return CodecType("int8", Int8) }
func Int16Type() TypeWitness[int16]     { return CodecType("int16", Int16) }
func Int32Type() TypeWitness[int32]     { return CodecType("int32", Int32) }
func Int64Type() TypeWitness[int64]     { return CodecType("int64", Int64) }
func UintType() TypeWitness[uint]       { return CodecType("uint", Uint) }
func Uint8Type() TypeWitness[uint8]     { return CodecType("uint8", Uint8) }
func Uint16Type() TypeWitness[uint16]   { return CodecType("uint16", Uint16) }
func Uint32Type() TypeWitness[uint32]   { return CodecType("uint32", Uint32) }
func Uint64Type() TypeWitness[uint64]   { return CodecType("uint64", Uint64) }
func Float32Type() TypeWitness[float32] { return CodecType("float32", Float32) }
func Float64Type() TypeWitness[float64] { return CodecType("float64", Float64) }

// PtrType is the witness of *T for a scalar witness elem.
func PtrType[T any](elem TypeWitness[T]) TypeWitness[*T] {
	return NewTypeWitness("*"+elem.ID(), func(res *Resolution) (Mapper[*T], error) {
		m, err := Resolve(res, elem)
		if err != nil {
			return nil, err
		}

		return &codecMapper[*T]{codec: PtrOf(MapperCodec(m))}, nil
	})
}

// SliceType is the witness of []E.
func SliceType[E any](elem TypeWitness[E]) TypeWitness[[]E] {
	return NewTypeWitness("[]"+elem.ID(), func(res *Resolution) (Mapper[[]E], error) {
		m, err := Resolve(res, elem)
		if err != nil {
			return nil, err
		}

		return &codecMapper[[]E]{codec: SliceOf(MapperCodec(m), false)}, nil
	})
}

// MapType is the witness of map[string]E.
func MapType[E any](elem TypeWitness[E]) TypeWitness[map[string]E] {
	return NewTypeWitness("map[string]"+elem.ID(), func(res *Resolution) (Mapper[map[string]E], error) {
		m, err := Resolve(res, elem)
		if err != nil {
			return nil, err
		}

		return &codecMapper[map[string]E]{codec: MapOf(MapperCodec(m), false)}, nil
	})
}
