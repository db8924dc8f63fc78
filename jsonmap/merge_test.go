package jsonmap

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMergeContextNilReceiver(t *testing.T) {
	var mc *MergeContext

	mc.MarkSet("a")
	mc.SetNested("b", NewMergeContext())

	assert.False(t, mc.IsSet("a"))
	assert.Nil(t, mc.Nested("b"))
	assert.Nil(t, mc.Child("b"))
	assert.Nil(t, mc.Fields())
}

func TestMergeContextRecordsFields(t *testing.T) {
	mc := NewMergeContext()
	mc.MarkSet("Title")
	mc.MarkSet("ID")

	assert.True(t, mc.IsSet("ID"))
	assert.False(t, mc.IsSet("Rating"))
	assert.Equal(t, []string{"ID", "Title"}, mc.Fields())
}

func TestMergeContextChildren(t *testing.T) {
	mc := NewMergeContext()
	assert.Nil(t, mc.Nested(ParentKey))

	parent := mc.Child(ParentKey)
	require.NotNil(t, parent)
	assert.Same(t, parent, mc.Child(ParentKey))
	assert.Same(t, parent, mc.Nested(ParentKey))

	author := NewMergeContext()
	author.MarkSet("Name")
	mc.SetNested("Author", author)
	assert.True(t, mc.Nested("Author").IsSet("Name"))
}
