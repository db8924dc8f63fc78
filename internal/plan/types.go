package plan

import (
	"strconv"
	"strings"

	"github.com/samber/lo"

	"mapper-generator/internal/diagnostic"
	"mapper-generator/internal/mapping"
)

// RuntimeImport is the import path of the runtime package used by generated code.
const RuntimeImport = "mapper-generator/jsonmap"

// Plan is the output of planning. It contains everything needed for code
// generation.
type Plan struct {
	// Package is the name of the generated package.
	Package string
	// ImportPath of the generated package, the prefix of type identities.
	ImportPath string
	// Mappers in generation order: parents before their subtypes.
	Mappers []*MapperPlan
	// Diagnostics contains all warnings and errors from planning.
	Diagnostics diagnostic.Diagnostics
}

// MapperPlan is the resolved form of one mapper definition.
type MapperPlan struct {
	Def *mapping.MapperDef

	// Name of the mapped type, e.g. "Book".
	Name string
	// TypeID is the runtime identity of the type without type arguments.
	TypeID string
	// Filename of the generated file.
	Filename string
	// Imports lists the import paths needed besides the runtime.
	Imports []string

	TypeParams []TypeParamRef

	Abstract      bool
	Updatable     bool
	DeferEndParse bool
	FindByKey     string
	Hooks         mapping.Hooks

	// Key is the key field of updatable types.
	Key *FieldPlan
	// ObjectMappers lists the mapper variables of object types, param
	// dependent ones first.
	ObjectMappers []*ObjectMapperRef
	Converters    []*ConverterRef
	Fields        []*FieldPlan
	Parent        *ParentRef
}

// TypeParamRef names the generated identifiers of one type parameter.
type TypeParamRef struct {
	// Name is the type parameter, e.g. "T".
	Name string
	// Witness is the constructor parameter carrying its witness, e.g. "tType".
	Witness string
	// Mapper is the struct field holding its mapper, e.g. "tMapper".
	Mapper string
}

// ObjectMapperRef is one object mapper used by the fields of a type.
type ObjectMapperRef struct {
	// Var is the struct field holding the mapper. Empty for the type itself.
	Var string
	// TypeExpr is the pointer type handled by the mapper, e.g. "*Author".
	TypeExpr string
	// Witness is the expression producing its witness, e.g. "AuthorType()".
	Witness string
	// Self is set when the type is the mapped type itself.
	Self bool
	// ParamDependent is set when the type mentions type parameters.
	ParamDependent bool
}

// Ref returns the expression referring to the mapper inside generated methods.
func (o *ObjectMapperRef) Ref() string {
	if o.Self {
		return "m"
	}

	return "m." + o.Var
}

// ConverterRef is one converter cache shared by the fields of a type.
type ConverterRef struct {
	Var       string
	Type      string
	New       string
	ValueType string
}

// ParentRef describes the parent whose members are inlined.
type ParentRef struct {
	// TypeExpr is the pointer type of the parent, e.g. "*Entity".
	TypeExpr string
	Witness  string
	// Field is the embedded field holding the parent value.
	Field string
}

// FieldPlan is the resolved form of one field.
type FieldPlan struct {
	Def *mapping.FieldDef

	Name string
	// Aliases are the member names dispatched to this field, without names
	// claimed by earlier fields.
	Aliases []string
	// EncodeName is the member name written.
	EncodeName string
	// GoType is the normalized Go type of the field.
	GoType string
	// CodecVar is the struct field holding the codec, CodecExpr builds it.
	CodecVar  string
	CodecExpr string

	Parse     bool
	Serialize bool
	// KeepNull writes explicit nulls for null values.
	KeepNull bool
	// Nested is the mapper used for merge_nested fields.
	Nested *ObjectMapperRef
}

// Get returns the expression reading the field from recv.
func (f *FieldPlan) Get(recv string) string {
	if f.Def.Getter != "" {
		return recv + "." + f.Def.Getter + "()"
	}

	return recv + "." + f.Name
}

// Set returns the statement writing val to the field of recv.
func (f *FieldPlan) Set(recv, val string) string {
	if f.Def.Setter != "" {
		return recv + "." + f.Def.Setter + "(" + val + ")"
	}

	return recv + "." + f.Name + " = " + val
}

// Cases returns the quoted aliases for a switch case.
func (f *FieldPlan) Cases() string {
	quoted := make([]string, len(f.Aliases))
	for i, a := range f.Aliases {
		quoted[i] = strconv.Quote(a)
	}

	return strings.Join(quoted, ", ")
}

// MapperType returns the name of the generated mapper type, e.g. "BookMapper".
func (p *MapperPlan) MapperType() string {
	return p.Name + "Mapper"
}

// IsGeneric returns true if the mapped type has type parameters.
func (p *MapperPlan) IsGeneric() bool {
	return len(p.TypeParams) > 0
}

// TypeParamsDecl returns the type parameter list of declarations, e.g. "[T any]".
func (p *MapperPlan) TypeParamsDecl() string {
	if !p.IsGeneric() {
		return ""
	}

	decl := make([]string, len(p.TypeParams))
	for i, tp := range p.TypeParams {
		decl[i] = tp.Name + " any"
	}

	return "[" + strings.Join(decl, ", ") + "]"
}

// TypeArgs returns the type parameters as arguments, e.g. "[T]".
func (p *MapperPlan) TypeArgs() string {
	if !p.IsGeneric() {
		return ""
	}

	args := make([]string, len(p.TypeParams))
	for i, tp := range p.TypeParams {
		args[i] = tp.Name
	}

	return "[" + strings.Join(args, ", ") + "]"
}

// ObjectType returns the handled pointer type, e.g. "*Node[T]".
func (p *MapperPlan) ObjectType() string {
	return "*" + p.Name + p.TypeArgs()
}

// WitnessParams returns the parameters of the witness constructor.
func (p *MapperPlan) WitnessParams() string {
	params := make([]string, len(p.TypeParams))
	for i, tp := range p.TypeParams {
		params[i] = tp.Witness + " jsonmap.TypeWitness[" + tp.Name + "]"
	}

	return strings.Join(params, ", ")
}

// WitnessArgs returns the witness parameters as call arguments.
func (p *MapperPlan) WitnessArgs() string {
	args := make([]string, len(p.TypeParams))
	for i, tp := range p.TypeParams {
		args[i] = tp.Witness
	}

	return strings.Join(args, ", ")
}

// IDExpr returns the expression computing the runtime identity.
func (p *MapperPlan) IDExpr() string {
	if !p.IsGeneric() {
		return strconv.Quote(p.TypeID)
	}

	ids := make([]string, len(p.TypeParams))
	for i, tp := range p.TypeParams {
		ids[i] = tp.Witness + ".ID()"
	}

	return "jsonmap.GenericID(" + strconv.Quote(p.TypeID) + ", " + strings.Join(ids, ", ") + ")"
}

// ParseFields returns the fields that are decoded.
func (p *MapperPlan) ParseFields() []*FieldPlan {
	return lo.Filter(p.Fields, func(f *FieldPlan, _ int) bool { return f.Parse })
}

// DispatchFields returns the decoded fields that still own at least one alias.
func (p *MapperPlan) DispatchFields() []*FieldPlan {
	return lo.Filter(p.Fields, func(f *FieldPlan, _ int) bool { return f.Parse && len(f.Aliases) > 0 })
}

// SerializeFields returns the fields that are encoded.
func (p *MapperPlan) SerializeFields() []*FieldPlan {
	return lo.Filter(p.Fields, func(f *FieldPlan, _ int) bool { return f.Serialize })
}

// NestedFields returns the merge_nested fields.
func (p *MapperPlan) NestedFields() []*FieldPlan {
	return lo.Filter(p.Fields, func(f *FieldPlan, _ int) bool { return f.Nested != nil })
}

// CodecFields returns the fields that need a codec.
func (p *MapperPlan) CodecFields() []*FieldPlan {
	return lo.Filter(p.Fields, func(f *FieldPlan, _ int) bool { return f.CodecVar != "" })
}

// ParamDependentMappers returns the object mappers whose type mentions type
// parameters. They are resolved right after the type parameter mappers.
func (p *MapperPlan) ParamDependentMappers() []*ObjectMapperRef {
	return lo.Filter(p.ObjectMappers, func(r *ObjectMapperRef, _ int) bool { return !r.Self && r.ParamDependent })
}

// ConcreteMappers returns the object mappers of fully concrete types.
func (p *MapperPlan) ConcreteMappers() []*ObjectMapperRef {
	return lo.Filter(p.ObjectMappers, func(r *ObjectMapperRef, _ int) bool { return !r.Self && !r.ParamDependent })
}

// NeedsResolve returns true if the constructor resolves other mappers.
func (p *MapperPlan) NeedsResolve() bool {
	return p.IsGeneric() || p.Parent != nil || len(p.ParamDependentMappers())+len(p.ConcreteMappers()) > 0
}
