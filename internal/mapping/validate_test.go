package mapping

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustParse(t *testing.T, src string) *File {
	t.Helper()

	f, err := Parse([]byte(src))
	require.NoError(t, err)

	return f
}

func TestValidate_Valid(t *testing.T) {
	f := mustParse(t, `
package: library
mappers:
  - type: Entity
    abstract: true
    fields:
      - {name: CreatedAt, type: time.Time, converter: EpochConverter}
      - {name: UpdatedAt, type: time.Time, converter: EpochConverter}
  - type: Author
    updatable: true
    find_by_key: FindAuthor
    defer_end_parse: true
    fields:
      - {name: ID, type: int64, key: true}
  - type: Book
    parent: Entity
    fields:
      - {name: Author, type: "*Author", merge_nested: true}
      - {name: Related, type: "[]*Book"}
  - type: Node
    type_params: [T]
    fields:
      - {name: Value, type: T}
      - {name: Children, type: "[]*Node[T]"}
`)

	res := Validate(f)
	assert.False(t, res.HasErrors(), "%v", res.All())
	assert.Empty(t, res.Warnings)
}

func TestValidate_Errors(t *testing.T) {
	tests := []struct {
		name string
		src  string
		code string
	}{
		{
			name: "key missing",
			src:  "package: p\nmappers:\n  - type: A\n    updatable: true\n    find_by_key: FindA\n    fields:\n      - {name: X, type: int}\n",
			code: "key_field_missing",
		},
		{
			name: "multiple keys",
			src:  "package: p\nmappers:\n  - type: A\n    fields:\n      - {name: X, type: int, key: true}\n      - {name: Y, type: int, key: true}\n",
			code: "key_field_multiple",
		},
		{
			name: "find by key missing",
			src:  "package: p\nmappers:\n  - type: A\n    updatable: true\n    fields:\n      - {name: X, type: int, key: true}\n",
			code: "find_by_key_missing",
		},
		{
			name: "type missing",
			src:  "package: p\nmappers:\n  - type: A\n    fields:\n      - {name: X}\n",
			code: "field_type_missing",
		},
		{
			name: "type invalid",
			src:  "package: p\nmappers:\n  - type: A\n    fields:\n      - {name: X, type: \"chan int\"}\n",
			code: "field_type_invalid",
		},
		{
			name: "duplicate field",
			src:  "package: p\nmappers:\n  - type: A\n    fields:\n      - {name: X, type: int}\n      - {name: X, type: string}\n",
			code: "duplicate_field",
		},
		{
			name: "duplicate mapper",
			src:  "package: p\nmappers:\n  - {type: A, fields: []}\n  - {type: A, fields: []}\n",
			code: "duplicate_mapper",
		},
		{
			name: "package missing",
			src:  "mappers: []\n",
			code: "package_missing",
		},
		{
			name: "version invalid",
			src:  "version: banana\npackage: p\nmappers: []\n",
			code: "version_invalid",
		},
		{
			name: "version unsupported",
			src:  "version: \"2.1.0\"\npackage: p\nmappers: []\n",
			code: "version_unsupported",
		},
		{
			name: "parent invalid",
			src:  "package: p\nmappers:\n  - {type: A, parent: \"[]B\", fields: []}\n",
			code: "parent_type_invalid",
		},
		{
			name: "parent mapper missing",
			src:  "package: p\nmappers:\n  - {type: A, parent: B, fields: []}\n",
			code: "parent_mapper_missing",
		},
		{
			name: "merge nested scalar",
			src:  "package: p\nmappers:\n  - type: A\n    fields:\n      - {name: X, type: int, merge_nested: true}\n",
			code: "merge_nested_not_object",
		},
		{
			name: "converter conflict",
			src: "package: p\nmappers:\n  - type: A\n    fields:\n" +
				"      - {name: X, type: time.Time, converter: C}\n      - {name: Y, type: time.Duration, converter: C}\n",
			code: "converter_type_conflict",
		},
		{
			name: "object mapper missing",
			src:  "package: p\nmappers:\n  - type: A\n    fields:\n      - {name: X, type: \"*B\"}\n",
			code: "object_mapper_missing",
		},
		{
			name: "empty alias",
			src:  "package: p\nmappers:\n  - type: A\n    fields:\n      - {name: X, type: int, json: [\"\", x]}\n",
			code: "alias_empty",
		},
		{
			name: "mapper type invalid",
			src:  "package: p\nmappers:\n  - {type: \"A-B\", fields: []}\n",
			code: "mapper_type_invalid",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := Validate(mustParse(t, tt.src))
			assert.True(t, res.HasErrors())
			assert.True(t, res.HasCode(tt.code), "%v", res.All())
		})
	}
}

func TestValidate_Warnings(t *testing.T) {
	f := mustParse(t, `
package: p
mappers:
  - type: Author
    fields:
      - {name: Name, json: [name, title], type: string}
      - {name: Title, type: string}
  - type: Book
    fields:
      - {name: Author, type: "*Author", merge_nested: true}
`)

	res := Validate(f)
	assert.False(t, res.HasErrors(), "%v", res.All())
	assert.True(t, res.HasCode("duplicate_alias"))
	assert.True(t, res.HasCode("merge_nested_not_deferred"))
}

func TestValidate_MergeNestedCompletesOnce(t *testing.T) {
	tests := []struct {
		name   string
		author string
	}{
		{name: "updatable", author: "updatable: true\n    find_by_key: FindAuthor\n    fields:\n      - {name: ID, type: int64, key: true}"},
		{name: "completion hook", author: "hooks: {on_parse_complete: AfterParse}\n    fields:\n      - {name: ID, type: int64}"},
		{name: "inherit hook", author: "hooks: {on_inherit: AdoptParent}\n    fields:\n      - {name: ID, type: int64}"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := mustParse(t, "package: p\nmappers:\n  - type: Author\n    "+tt.author+
				"\n  - type: Book\n    fields:\n      - {name: Author, type: \"*Author\", merge_nested: true}\n")

			res := Validate(f)
			require.Len(t, res.Errors, 1, "%v", res.All())
			assert.Equal(t, "merge_nested_not_deferred", res.Errors[0].Code)

			f.Mapper("Author").DeferEndParse = true
			assert.True(t, Validate(f).IsValid())
		})
	}
}

func TestValidate_Suggestions(t *testing.T) {
	f := mustParse(t, `
package: p
mappers:
  - type: Author
    fields: []
  - type: Book
    fields:
      - {name: Writer, type: "*Autor"}
`)

	res := Validate(f)
	require.Len(t, res.Errors, 1)
	assert.Equal(t, "object_mapper_missing", res.Errors[0].Code)
	assert.Equal(t, []string{"Author"}, res.Errors[0].Suggestions)
	assert.Equal(t, "Book", res.Errors[0].Mapper)
	assert.Equal(t, "Writer", res.Errors[0].Field)
}

func TestValidate_Nil(t *testing.T) {
	res := Validate(nil)
	assert.True(t, res.HasCode("definition_is_nil"))
}
