package analyze

import (
	"reflect"
	"slices"
)

// TypeID uniquely identifies a type by its package path and name.
type TypeID struct {
	PkgPath string // e.g., "mapper-generator/examples/library"
	Name    string // e.g., "Book"
}

// String returns a human-readable representation of the TypeID.
func (t TypeID) String() string {
	if t.PkgPath == "" {
		return t.Name
	}

	return t.PkgPath + "." + t.Name
}

// TypeInfo describes a named type.
type TypeInfo struct {
	ID         TypeID
	IsStruct   bool
	TypeParams []string          // Type parameter names, in order
	Fields     []FieldInfo       // Struct fields, including unexported ones
	Methods    map[string]string // Method name -> signature, pointer receiver method set
}

// Field returns the named field, or nil.
func (t *TypeInfo) Field(name string) *FieldInfo {
	i := slices.IndexFunc(t.Fields, func(f FieldInfo) bool { return f.Name == name })
	if i < 0 {
		return nil
	}

	return &t.Fields[i]
}

// FieldNames returns the names of all fields, in declaration order.
func (t *TypeInfo) FieldNames() []string {
	names := make([]string, len(t.Fields))
	for i := range t.Fields {
		names[i] = t.Fields[i].Name
	}

	return names
}

// MethodNames returns the sorted method names.
func (t *TypeInfo) MethodNames() []string {
	names := make([]string, 0, len(t.Methods))
	for name := range t.Methods {
		names = append(names, name)
	}

	slices.Sort(names)

	return names
}

// FieldInfo describes a struct field.
type FieldInfo struct {
	Name     string            // Go field name
	Type     string            // Type expression relative to the declaring package
	Tag      reflect.StructTag // Raw struct tag
	Embedded bool              // Whether the field is embedded (anonymous)
	Exported bool
}

// TypeGraph holds all analyzed types from loaded packages.
type TypeGraph struct {
	// Types maps TypeID to TypeInfo for all named types.
	Types map[TypeID]*TypeInfo
	// Packages maps package paths to their package info.
	Packages map[string]*PackageInfo
}

// NewTypeGraph creates a new empty TypeGraph.
func NewTypeGraph() *TypeGraph {
	return &TypeGraph{
		Types:    make(map[TypeID]*TypeInfo),
		Packages: make(map[string]*PackageInfo),
	}
}

// GetType returns the TypeInfo for a given TypeID, or nil if not found.
func (g *TypeGraph) GetType(id TypeID) *TypeInfo {
	return g.Types[id]
}

// PackageInfo holds information about a loaded package.
type PackageInfo struct {
	Path  string            // Import path
	Name  string            // Package name
	Types []TypeID          // Named types defined in this package
	Funcs map[string]string // Package level function name -> signature
}

// TypeNames returns the names of the package's types, in scope order.
func (p *PackageInfo) TypeNames() []string {
	names := make([]string, len(p.Types))
	for i, id := range p.Types {
		names[i] = id.Name
	}

	return names
}
