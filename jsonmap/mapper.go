package jsonmap

// Mapper translates values of T to and from JSON.
//
// Mappers are stateless after construction and safe for concurrent use.
type Mapper[T any] interface {
	// Parse decodes one value. For object mappers a current value that is not
	// an object is skipped and the zero value is returned without error.
	Parse(r *Reader) (T, error)
	// ParseWithContext is Parse that records the fields seen in mc.
	ParseWithContext(r *Reader, mc *MergeContext) (T, error)
	// ParseField decodes the value of the member name into instance. Unknown
	// members are left unread for the caller to skip.
	ParseField(instance T, name string, r *Reader, mc *MergeContext) error
	// EndParse completes a decoded instance: parent notification, merge with a
	// stored instance and the completion hook. parent is the enclosing object
	// when completion is driven from outside, nil otherwise.
	EndParse(parent any, instance T, mc *MergeContext) error
	// Serialize encodes v. When writeStartAndEnd is false only the members are
	// written, which lets a subtype inline the members of its parent.
	Serialize(v T, w *Writer, writeStartAndEnd bool) error
	// NewMergeContext returns an empty context suitable for ParseWithContext.
	NewMergeContext() *MergeContext
	// IsNull reports whether v encodes as JSON null.
	IsNull(v T) bool
}

// ObjectMapper is implemented by generated mappers of object types. The extra
// methods let a subtype's mapper drive the merge of inherited members.
type ObjectMapper[T any] interface {
	Mapper[T]
	// MergeFrom copies every parsed member not recorded in mc from stored.
	MergeFrom(instance, stored T, mc *MergeContext)
	// EndNested completes the nested members that take part in merging.
	EndNested(instance T, mc *MergeContext) error
}
