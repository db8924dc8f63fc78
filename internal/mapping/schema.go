package mapping

import (
	"path"
	"strings"

	"github.com/samber/lo"
)

// File represents the root of a YAML mapper definition file.
type File struct {
	// Version of the definition schema, a semantic version.
	Version string `yaml:"version,omitempty"`

	// Package is the name of the Go package the mappers are generated into.
	Package string `yaml:"package"`

	// ImportPath of Package. It qualifies type identities and is the package
	// pattern used when checking definitions against the Go source.
	ImportPath string `yaml:"import_path,omitempty"`

	// Imports maps the package qualifiers used in type expressions to their
	// import paths.
	Imports map[string]string `yaml:"imports,omitempty"`

	// NullPolicy is the default policy for every mapper in the file.
	NullPolicy NullPolicy `yaml:"null_policy,omitempty"`

	// Mappers lists the mapped types.
	Mappers []MapperDef `yaml:"mappers"`
}

// NullPolicy controls how null values are encoded.
type NullPolicy struct {
	// SerializeNullScalars writes an explicit null for null members instead
	// of omitting them.
	SerializeNullScalars *bool `yaml:"serialize_null_scalars,omitempty"`
	// SerializeNullCollectionElements keeps null elements of slices and maps.
	SerializeNullCollectionElements *bool `yaml:"serialize_null_collection_elements,omitempty"`
}

// Scalars returns the effective scalar policy.
func (p NullPolicy) Scalars() bool {
	return lo.FromPtr(p.SerializeNullScalars)
}

// CollectionElements returns the effective element policy.
func (p NullPolicy) CollectionElements() bool {
	return lo.FromPtr(p.SerializeNullCollectionElements)
}

// inherit fills unset entries from def.
func (p NullPolicy) inherit(def NullPolicy) NullPolicy {
	return NullPolicy{
		SerializeNullScalars:            lo.CoalesceOrEmpty(p.SerializeNullScalars, def.SerializeNullScalars),
		SerializeNullCollectionElements: lo.CoalesceOrEmpty(p.SerializeNullCollectionElements, def.SerializeNullCollectionElements),
	}
}

// Hooks names methods of the mapped type called during the mapper lifecycle.
type Hooks struct {
	// PreSerialize is called as func (*T) Name() before the first member is written.
	PreSerialize string `yaml:"pre_serialize,omitempty"`
	// OnParseComplete is called as func (*T) Name() once decoding and merging are done.
	OnParseComplete string `yaml:"on_parse_complete,omitempty"`
	// OnInherit is called as func (*T) Name(parent any) with the enclosing
	// object, or nil for a top-level decode.
	OnInherit string `yaml:"on_inherit,omitempty"`
}

// MapperDef describes the mapper of one type.
type MapperDef struct {
	// Type is the name of the mapped struct type, without type parameters.
	Type string `yaml:"type"`

	// TypeParams lists the type parameter names of a generic type, in order.
	TypeParams []string `yaml:"type_params,omitempty"`

	// Parent is the type expression of the embedded parent type whose members
	// are read and written inline, e.g. "Entity" or "Base[T]".
	Parent string `yaml:"parent,omitempty"`

	// ParentField is the name of the embedded field holding the parent.
	// Defaults to the parent's type name.
	ParentField string `yaml:"parent_field,omitempty"`

	// Abstract types cannot be decoded on their own; they only contribute
	// members to their subtypes.
	Abstract bool `yaml:"abstract,omitempty"`

	// Updatable mappers merge decoded payloads into a stored instance located
	// by key.
	Updatable bool `yaml:"updatable,omitempty"`

	// FindByKey names the package function func(K) *T used to locate the
	// stored instance. For generic types the function must return the same
	// instantiation; mappers do not check it.
	FindByKey string `yaml:"find_by_key,omitempty"`

	// DeferEndParse leaves completion to the enclosing mapper. Use it for
	// types decoded through merge_nested members.
	DeferEndParse bool `yaml:"defer_end_parse,omitempty"`

	Hooks Hooks `yaml:"hooks,omitempty"`

	// NullPolicy overrides the file policy. After loading it holds the
	// effective policy.
	NullPolicy NullPolicy `yaml:"null_policy,omitempty"`

	// Fields in declaration order, which is also the order they are written in.
	Fields []FieldDef `yaml:"fields"`
}

// IsGeneric returns true if the mapped type has type parameters.
func (m *MapperDef) IsGeneric() bool {
	return len(m.TypeParams) > 0
}

// KeyFields returns the fields marked as key.
func (m *MapperDef) KeyFields() []*FieldDef {
	var keys []*FieldDef

	for i := range m.Fields {
		if m.Fields[i].Key {
			keys = append(keys, &m.Fields[i])
		}
	}

	return keys
}

// TypeExpr returns the Go expression of the mapped type, e.g. "Page[T]".
func (m *MapperDef) TypeExpr() string {
	if !m.IsGeneric() {
		return m.Type
	}

	return m.Type + "[" + strings.Join(m.TypeParams, ", ") + "]"
}

// FieldDef describes one member of a mapped type.
type FieldDef struct {
	// Name is the canonical field name. Without accessors it is the Go field name.
	Name string `yaml:"name"`

	// JSON lists the member names accepted when decoding. The first one is
	// used when encoding. Defaults to the lowerCamel form of Name.
	JSON StringOrArray `yaml:"json,omitempty"`

	// Type is the Go type expression of the field.
	Type string `yaml:"type"`

	// Key marks the field identifying stored instances of updatable types.
	Key bool `yaml:"key,omitempty"`

	// Getter and Setter name accessor methods used instead of the field.
	Getter string `yaml:"getter,omitempty"`
	Setter string `yaml:"setter,omitempty"`

	// Parse and Serialize switch decoding and encoding of the field. Both
	// default to true.
	Parse     *bool `yaml:"parse,omitempty"`
	Serialize *bool `yaml:"serialize,omitempty"`

	// MergeNested merges the nested object with its own stored instance and
	// drives its completion from the enclosing mapper.
	MergeNested bool `yaml:"merge_nested,omitempty"`

	// Converter names a type implementing jsonmap.Converter for the leaf type.
	Converter string `yaml:"converter,omitempty"`

	// ConverterNew names the converter constructor. Defaults to "New" + Converter.
	ConverterNew string `yaml:"converter_new,omitempty"`
}

// ShouldParse returns true if the field is decoded.
func (f *FieldDef) ShouldParse() bool {
	return f.Parse == nil || *f.Parse
}

// ShouldSerialize returns true if the field is encoded.
func (f *FieldDef) ShouldSerialize() bool {
	return f.Serialize == nil || *f.Serialize
}

// Aliases returns the accepted member names.
func (f *FieldDef) Aliases() []string {
	return []string(f.JSON)
}

// defaultConverterNew returns the constructor name for a converter type
// expression: "EpochConverter" gives "NewEpochConverter" and
// "conv.Epoch" gives "conv.NewEpoch".
func defaultConverterNew(converter string) string {
	dir, name := path.Split(strings.ReplaceAll(converter, ".", "/"))
	return strings.ReplaceAll(dir, "/", ".") + "New" + name
}
