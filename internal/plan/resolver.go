package plan

import (
	"fmt"
	"go/ast"
	"go/parser"
	"slices"
	"strconv"
	"strings"
	"unicode"

	"github.com/cockroachdb/errors"
	"github.com/samber/lo"

	"mapper-generator/internal/common"
	"mapper-generator/internal/diagnostic"
	"mapper-generator/internal/mapping"
)

// Build plans every mapper of f. Planning goes on after errors so that all
// problems are reported at once; a plan whose Diagnostics has errors must
// not be generated.
func Build(f *mapping.File) *Plan {
	p := &Plan{}
	if f == nil {
		p.Diagnostics.AddError("definition_is_nil", "definition file is nil", "", "")
		return p
	}

	p.Package, p.ImportPath = f.Package, f.ImportPath
	p.Diagnostics.Merge(*mapping.Validate(f))

	if p.Diagnostics.HasErrors() {
		return p
	}

	order, err := parentOrder(f)
	if err != nil {
		p.Diagnostics.AddError("inheritance_cycle", err.Error(), "", "")
		return p
	}

	for _, i := range order {
		b := newMapperBuilder(f, &f.Mappers[i], &p.Diagnostics)
		p.Mappers = append(p.Mappers, b.build())
	}

	return p
}

// Mapper returns the plan of the named type, or nil.
func (p *Plan) Mapper(name string) *MapperPlan {
	mp, _ := lo.Find(p.Mappers, func(mp *MapperPlan) bool { return mp.Name == name })
	return mp
}

// parentOrder orders the mappers of f so that local parents come first.
func parentOrder(f *mapping.File) ([]int, error) {
	index := make(map[string]int, len(f.Mappers))
	for i := range f.Mappers {
		index[f.Mappers[i].Type] = i
	}

	order, err := topoSort(len(f.Mappers), func(i int) []int {
		m := &f.Mappers[i]
		if m.Parent == "" {
			return nil
		}

		d, err := mapping.ParseTypeExpr("*"+m.Parent, m.TypeParams, "")
		if err != nil || d.Qualifier != "" {
			return nil
		}

		if j, ok := index[d.Name]; ok {
			return []int{j}
		}

		return nil
	})
	if err != nil {
		cyclic := lo.Filter(f.Mappers, func(m mapping.MapperDef, _ int) bool { return m.Parent != "" })
		names := lo.Map(cyclic, func(m mapping.MapperDef, _ int) string { return m.Type })

		return nil, errors.Newf("parent chain is cyclic among %s", strings.Join(names, ", "))
	}

	return order, nil
}

type mapperBuilder struct {
	file *mapping.File
	def  *mapping.MapperDef
	diag *diagnostic.Diagnostics
	plan *MapperPlan

	ns         common.Namespace
	selfExpr   string
	objects    map[string]*ObjectMapperRef
	converters map[string]*ConverterRef
	imports    map[string]struct{}
}

func newMapperBuilder(f *mapping.File, def *mapping.MapperDef, diag *diagnostic.Diagnostics) *mapperBuilder {
	return &mapperBuilder{
		file:       f,
		def:        def,
		diag:       diag,
		ns:         common.Namespace{"parentMapper": {}},
		objects:    make(map[string]*ObjectMapperRef),
		converters: make(map[string]*ConverterRef),
		imports:    make(map[string]struct{}),
	}
}

func (b *mapperBuilder) build() *MapperPlan {
	def := b.def

	b.plan = &MapperPlan{
		Def:           def,
		Name:          def.Type,
		TypeID:        typeID(b.file.ImportPath, def.Type),
		Filename:      common.SnakeCase(def.Type) + "_mapper.go",
		Abstract:      def.Abstract,
		Updatable:     def.Updatable,
		DeferEndParse: def.DeferEndParse,
		FindByKey:     def.FindByKey,
		Hooks:         def.Hooks,
	}

	for _, tp := range def.TypeParams {
		base := common.LowerCamel(tp)
		b.plan.TypeParams = append(b.plan.TypeParams, TypeParamRef{
			Name:    tp,
			Witness: b.ns.Claim(base + "Type"),
			Mapper:  b.ns.Claim(base + "Mapper"),
		})
	}

	if self, err := mapping.ParseTypeExpr("*"+def.TypeExpr(), def.TypeParams, ""); err == nil {
		b.selfExpr = self.Expr
	}

	claimed := map[string]struct{}{}

	for i := range def.Fields {
		fp := b.field(&def.Fields[i], claimed)
		if fp == nil {
			continue
		}

		b.plan.Fields = append(b.plan.Fields, fp)

		if fp.Def.Key {
			b.plan.Key = fp
		}
	}

	if def.Parent != "" {
		b.parent()
	}

	// param dependent mappers resolve before concrete ones
	slices.SortStableFunc(b.plan.ObjectMappers, func(x, y *ObjectMapperRef) int {
		switch {
		case x.ParamDependent == y.ParamDependent:
			return 0
		case x.ParamDependent:
			return -1
		default:
			return 1
		}
	})

	b.plan.Imports = b.importPaths()

	return b.plan
}

func (b *mapperBuilder) field(fd *mapping.FieldDef, claimed map[string]struct{}) *FieldPlan {
	d, err := mapping.ParseTypeExpr(fd.Type, b.def.TypeParams, fd.Converter)
	if err != nil {
		b.diag.AddError("field_type_invalid", err.Error(), b.def.Type, fd.Name)
		return nil
	}

	fp := &FieldPlan{
		Def:        fd,
		Name:       fd.Name,
		EncodeName: fd.JSON.First(),
		GoType:     d.Expr,
		Parse:      fd.ShouldParse(),
		Serialize:  fd.ShouldSerialize(),
		KeepNull:   b.def.NullPolicy.Scalars(),
	}

	if fp.Parse {
		for _, alias := range fd.Aliases() {
			if _, ok := claimed[alias]; ok {
				continue
			}

			claimed[alias] = struct{}{}
			fp.Aliases = append(fp.Aliases, alias)
		}
	}

	if !fp.Parse && !fp.Serialize {
		b.diag.AddInfo("field_ignored", "field is neither parsed nor serialized", b.def.Type, fd.Name)
		return fp
	}

	b.useQualifiers(fd.Type)

	if fd.Converter != "" {
		b.useQualifiers(fd.Converter)
		b.useQualifiers(fd.ConverterNew)
	}

	fp.CodecVar = b.ns.Claim(common.LowerCamel(fd.Name) + "Codec")
	fp.CodecExpr = b.codec(d, fd)

	if fd.MergeNested && d.Kind == mapping.TypeObject {
		fp.Nested = b.object(d)
	}

	return fp
}

func (b *mapperBuilder) parent() {
	d, err := mapping.ParseTypeExpr("*"+b.def.Parent, b.def.TypeParams, "")
	if err != nil {
		b.diag.AddError("parent_type_invalid", err.Error(), b.def.Type, "")
		return
	}

	b.useQualifiers(b.def.Parent)

	b.plan.Parent = &ParentRef{
		TypeExpr: d.Expr,
		Witness:  b.witness(d),
		Field:    b.def.ParentField,
	}
}

// codec returns the expression building the codec of d.
func (b *mapperBuilder) codec(d *mapping.TypeDescriptor, fd *mapping.FieldDef) string {
	keepNull := strconv.FormatBool(b.def.NullPolicy.CollectionElements())

	switch d.Kind {
	case mapping.TypeScalar:
		return "jsonmap." + d.Scalar.CodecName()
	case mapping.TypeNullable:
		return "jsonmap.PtrOf(jsonmap." + d.Scalar.CodecName() + ")"
	case mapping.TypeObject:
		ref := b.object(d)
		if ref.Self {
			return "jsonmap.MapperCodec[" + d.Expr + "](m)"
		}

		return "jsonmap.MapperCodec(" + ref.Ref() + ")"
	case mapping.TypeSlice:
		return "jsonmap.SliceOf(" + b.codec(d.Elem, fd) + ", " + keepNull + ")"
	case mapping.TypeMap:
		return "jsonmap.MapOf(" + b.codec(d.Elem, fd) + ", " + keepNull + ")"
	case mapping.TypeParam:
		return "jsonmap.MapperCodec(m." + b.typeParam(d.Name).Mapper + ")"
	case mapping.TypeConverter:
		return "jsonmap.ConverterCodec(m." + b.converter(d, fd).Var + ")"
	}

	return ""
}

// witness returns the expression producing the type witness of d.
func (b *mapperBuilder) witness(d *mapping.TypeDescriptor) string {
	switch d.Kind {
	case mapping.TypeScalar:
		return "jsonmap." + d.Scalar.WitnessName() + "()"
	case mapping.TypeNullable:
		return "jsonmap.PtrType(jsonmap." + d.Scalar.WitnessName() + "())"
	case mapping.TypeObject:
		args := lo.Map(d.Args, func(a *mapping.TypeDescriptor, _ int) string { return b.witness(a) })

		name := d.Name + "Type"
		if d.Qualifier != "" {
			name = d.Qualifier + "." + name
		}

		return name + "(" + strings.Join(args, ", ") + ")"
	case mapping.TypeSlice:
		return "jsonmap.SliceType(" + b.witness(d.Elem) + ")"
	case mapping.TypeMap:
		return "jsonmap.MapType(" + b.witness(d.Elem) + ")"
	case mapping.TypeParam:
		return b.typeParam(d.Name).Witness
	}

	return ""
}

// object returns the mapper variable of the object type d, allocating it on
// first use.
func (b *mapperBuilder) object(d *mapping.TypeDescriptor) *ObjectMapperRef {
	if ref, ok := b.objects[d.Expr]; ok {
		return ref
	}

	ref := &ObjectMapperRef{
		TypeExpr:       d.Expr,
		Self:           d.Expr == b.selfExpr,
		ParamDependent: !d.IsConcrete(),
	}

	if !ref.Self {
		if d.Qualifier == "" && d.Name == b.def.Type && ref.ParamDependent {
			b.diag.AddError("expanding_generic",
				fmt.Sprintf("%s refers to itself as %s, which never terminates", b.def.TypeExpr(), d.Expr), b.def.Type, "")
		}

		ref.Var = b.ns.Claim(identFrom(d.Expr) + "Mapper")
		ref.Witness = b.witness(d)
	}

	b.objects[d.Expr] = ref
	b.plan.ObjectMappers = append(b.plan.ObjectMappers, ref)

	return ref
}

// converter returns the cache shared by every field using fd.Converter.
func (b *mapperBuilder) converter(d *mapping.TypeDescriptor, fd *mapping.FieldDef) *ConverterRef {
	if ref, ok := b.converters[fd.Converter]; ok {
		return ref
	}

	base := identFrom(fd.Converter)
	if !strings.HasSuffix(base, "Converter") {
		base += "Converter"
	}

	ref := &ConverterRef{
		Var:       b.ns.Claim(base),
		Type:      fd.Converter,
		New:       fd.ConverterNew,
		ValueType: d.Expr,
	}

	b.converters[fd.Converter] = ref
	b.plan.Converters = append(b.plan.Converters, ref)

	return ref
}

func (b *mapperBuilder) typeParam(name string) TypeParamRef {
	tp, _ := lo.Find(b.plan.TypeParams, func(tp TypeParamRef) bool { return tp.Name == name })
	return tp
}

// useQualifiers records the imports needed by the package qualifiers in expr.
func (b *mapperBuilder) useQualifiers(expr string) {
	for _, q := range qualifiers(expr) {
		if q == "jsonmap" {
			continue
		}

		path, ok := b.file.Imports[q]
		if !ok {
			b.diag.AddError("import_missing", fmt.Sprintf("package qualifier %q is not listed in imports", q), b.def.Type, "")
			continue
		}

		b.imports[path] = struct{}{}
	}
}

func (b *mapperBuilder) importPaths() []string {
	paths := lo.Keys(b.imports)
	slices.Sort(paths)

	return paths
}

// qualifiers returns the package names used in a Go expression.
func qualifiers(expr string) []string {
	node, err := parser.ParseExpr(expr)
	if err != nil {
		return nil
	}

	var out []string

	ast.Inspect(node, func(n ast.Node) bool {
		if sel, ok := n.(*ast.SelectorExpr); ok {
			if id, ok := sel.X.(*ast.Ident); ok {
				out = append(out, id.Name)
			}
		}

		return true
	})

	return lo.Uniq(out)
}

// identFrom builds a lowerCamel identifier from the names in a type
// expression: "*Page[*Book]" gives "pageBook".
func identFrom(expr string) string {
	words := strings.FieldsFunc(expr, func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r) && r != '_'
	})

	for i, w := range words {
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}

	return common.LowerCamel(strings.Join(words, ""))
}

func typeID(importPath, name string) string {
	if importPath == "" {
		return name
	}

	return importPath + "." + name
}
