package mapping

import (
	"fmt"
	"maps"
	"slices"
	"strings"

	"mapper-generator/internal/analyze"
	"mapper-generator/internal/diagnostic"
	"mapper-generator/internal/match"
)

// CheckSource verifies that the declarations a definition file refers to
// exist in the loaded package: mapped structs, fields, accessors, hooks,
// find-by-key functions and converters.
func CheckSource(f *File, graph *analyze.TypeGraph) *diagnostic.Diagnostics {
	res := &diagnostic.Diagnostics{}
	if f == nil || graph == nil {
		res.AddError("source_unavailable", "definition file or type graph is nil", "", "")
		return res
	}

	pkg := graph.Packages[f.ImportPath]
	if pkg == nil {
		res.AddError("package_not_loaded", fmt.Sprintf("package %q is not loaded", f.ImportPath), "", "")
		return res
	}

	c := sourceChecker{res: res, graph: graph, pkg: pkg}

	for i := range f.Mappers {
		c.checkMapper(&f.Mappers[i])
	}

	return res
}

type sourceChecker struct {
	res   *diagnostic.Diagnostics
	graph *analyze.TypeGraph
	pkg   *analyze.PackageInfo
}

func (c *sourceChecker) lookup(name string) *analyze.TypeInfo {
	return c.graph.GetType(analyze.TypeID{PkgPath: c.pkg.Path, Name: name})
}

func (c *sourceChecker) checkMapper(m *MapperDef) {
	info := c.lookup(m.Type)
	if info == nil {
		c.res.AddError("type_not_found", fmt.Sprintf("type %s not found in %s", m.Type, c.pkg.Path), m.Type, "",
			match.Suggest(m.Type, c.pkg.TypeNames(), 1)...)

		return
	}

	if !info.IsStruct {
		c.res.AddError("not_a_struct", fmt.Sprintf("type %s is not a struct", m.Type), m.Type, "")
		return
	}

	if len(info.TypeParams) != len(m.TypeParams) {
		c.res.AddError("type_params_mismatch",
			fmt.Sprintf("declared %d type parameters, source has %d", len(m.TypeParams), len(info.TypeParams)), m.Type, "")
	}

	if m.Parent != "" {
		c.checkParent(m, info)
	}

	c.checkMethod(m, info, m.Hooks.PreSerialize, "")
	c.checkMethod(m, info, m.Hooks.OnParseComplete, "")
	c.checkMethod(m, info, m.Hooks.OnInherit, "")

	if m.FindByKey != "" {
		if _, ok := c.pkg.Funcs[m.FindByKey]; !ok {
			c.res.AddError("find_by_key_not_found", fmt.Sprintf("function %s not found", m.FindByKey), m.Type, "",
				match.Suggest(m.FindByKey, funcNames(c.pkg), 1)...)
		}
	}

	for i := range m.Fields {
		c.checkField(m, info, &m.Fields[i])
	}
}

func (c *sourceChecker) checkParent(m *MapperDef, info *analyze.TypeInfo) {
	field := info.Field(m.ParentField)
	switch {
	case field == nil:
		c.res.AddError("field_not_found", fmt.Sprintf("parent field %s not found", m.ParentField), m.Type, m.ParentField,
			match.Suggest(m.ParentField, info.FieldNames(), 1)...)
	case !field.Embedded:
		c.res.AddError("parent_field_not_embedded", fmt.Sprintf("parent field %s is not embedded", m.ParentField),
			m.Type, m.ParentField)
	case strings.HasPrefix(field.Type, "*"):
		c.res.AddError("parent_field_pointer", "parent must be embedded by value", m.Type, m.ParentField)
	}
}

func (c *sourceChecker) checkField(m *MapperDef, info *analyze.TypeInfo, fd *FieldDef) {
	// Merging reads the stored value back, so parsed members need a getter too.
	needField := (fd.ShouldParse() && (fd.Setter == "" || fd.Getter == "")) ||
		(fd.ShouldSerialize() && fd.Getter == "")
	if needField && info.Field(fd.Name) == nil {
		c.res.AddError("field_not_found", fmt.Sprintf("field %s not found in %s", fd.Name, m.Type), m.Type, fd.Name,
			match.Suggest(fd.Name, info.FieldNames(), 1)...)
	}

	if fd.ShouldSerialize() {
		c.checkMethod(m, info, fd.Getter, fd.Name)
	}

	if fd.ShouldParse() {
		c.checkMethod(m, info, fd.Setter, fd.Name)
	}

	if fd.Converter != "" && !strings.Contains(fd.Converter, ".") {
		if c.lookup(fd.Converter) == nil {
			c.res.AddError("converter_not_found", fmt.Sprintf("converter type %s not found", fd.Converter), m.Type, fd.Name,
				match.Suggest(fd.Converter, c.pkg.TypeNames(), 1)...)
		}

		if _, ok := c.pkg.Funcs[fd.ConverterNew]; !ok {
			c.res.AddError("converter_new_not_found", fmt.Sprintf("function %s not found", fd.ConverterNew), m.Type, fd.Name)
		}
	}
}

func (c *sourceChecker) checkMethod(m *MapperDef, info *analyze.TypeInfo, name, field string) {
	if name == "" {
		return
	}

	if _, ok := info.Methods[name]; !ok {
		c.res.AddError("method_not_found", fmt.Sprintf("method %s not found on *%s", name, m.Type), m.Type, field,
			match.Suggest(name, info.MethodNames(), 1)...)
	}
}

func funcNames(pkg *analyze.PackageInfo) []string {
	return slices.Sorted(maps.Keys(pkg.Funcs))
}
