package jsonmap

import (
	"maps"
	"slices"
)

// ParentKey names the child context that holds the members of a parent type.
const ParentKey = "^parent"

// MergeContext records which members were present in a decoded payload, plus
// the contexts of nested objects that take part in merging.
//
// A context belongs to a single decode call. All methods accept a nil receiver,
// which records nothing and reports nothing as set.
type MergeContext struct {
	set    map[string]bool
	nested map[string]*MergeContext
}

// NewMergeContext returns an empty context.
func NewMergeContext() *MergeContext {
	return &MergeContext{}
}

// MarkSet records that field was present.
func (mc *MergeContext) MarkSet(field string) {
	if mc == nil {
		return
	}

	if mc.set == nil {
		mc.set = make(map[string]bool)
	}

	mc.set[field] = true
}

// IsSet reports whether field was present.
func (mc *MergeContext) IsSet(field string) bool {
	if mc == nil {
		return false
	}

	return mc.set[field]
}

// SetNested stores the context used while decoding the nested object in field.
func (mc *MergeContext) SetNested(field string, child *MergeContext) {
	if mc == nil {
		return
	}

	if mc.nested == nil {
		mc.nested = make(map[string]*MergeContext)
	}

	mc.nested[field] = child
}

// Nested returns the context stored for field, or nil.
func (mc *MergeContext) Nested(field string) *MergeContext {
	if mc == nil {
		return nil
	}

	return mc.nested[field]
}

// Child returns the context stored for field, creating it when absent.
func (mc *MergeContext) Child(field string) *MergeContext {
	if mc == nil {
		return nil
	}

	if child := mc.nested[field]; child != nil {
		return child
	}

	child := NewMergeContext()
	mc.SetNested(field, child)

	return child
}

// Fields returns the recorded member names in sorted order.
func (mc *MergeContext) Fields() []string {
	if mc == nil {
		return nil
	}

	return slices.Sorted(maps.Keys(mc.set))
}
