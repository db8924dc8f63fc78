package mapping

import (
	"fmt"
	"go/token"

	"github.com/blang/semver/v4"
	"github.com/samber/lo"

	"mapper-generator/internal/diagnostic"
	"mapper-generator/internal/match"
)

// SupportedVersions is the range of definition schema versions this build reads.
const SupportedVersions = ">=1.0.0 <2.0.0"

var supportedRange = semver.MustParseRange(SupportedVersions)

// Validate checks a definition file for structural problems that do not
// need the Go source: versions, names, keys, types and references between
// mappers.
func Validate(f *File) *diagnostic.Diagnostics {
	res := &diagnostic.Diagnostics{}
	if f == nil {
		res.AddError("definition_is_nil", "definition file is nil", "", "")
		return res
	}

	validateHeader(res, f)

	names := lo.Map(f.Mappers, func(m MapperDef, _ int) string { return m.Type })
	seen := map[string]struct{}{}

	for i := range f.Mappers {
		m := &f.Mappers[i]

		if !token.IsIdentifier(m.Type) {
			res.AddError("mapper_type_invalid", fmt.Sprintf("mapper type %q is not an identifier", m.Type), m.Type, "")
			continue
		}

		if _, ok := seen[m.Type]; ok {
			res.AddError("duplicate_mapper", fmt.Sprintf("duplicate mapper for type %q", m.Type), m.Type, "")
			continue
		}

		seen[m.Type] = struct{}{}

		validateMapper(res, f, m, names)
	}

	return res
}

func validateHeader(res *diagnostic.Diagnostics, f *File) {
	if f.Package == "" {
		res.AddError("package_missing", "package is required", "", "")
	} else if !token.IsIdentifier(f.Package) {
		res.AddError("package_invalid", fmt.Sprintf("package %q is not an identifier", f.Package), "", "")
	}

	v, err := semver.ParseTolerant(f.Version)
	if err != nil {
		res.AddError("version_invalid", fmt.Sprintf("version %q: %v", f.Version, err), "", "")
	} else if !supportedRange(v) {
		res.AddError("version_unsupported", fmt.Sprintf("version %s is not supported", v), "", "")
	}
}

func validateMapper(res *diagnostic.Diagnostics, f *File, m *MapperDef, names []string) {
	for _, tp := range m.TypeParams {
		if !token.IsIdentifier(tp) {
			res.AddError("type_param_invalid", fmt.Sprintf("type parameter %q is not an identifier", tp), m.Type, "")
		}
	}

	keys := m.KeyFields()

	switch {
	case m.Updatable && len(keys) == 0:
		res.AddError("key_field_missing", "updatable mapper has no key field", m.Type, "")
	case len(keys) > 1:
		res.AddError("key_field_multiple", fmt.Sprintf("%d fields are marked as key", len(keys)), m.Type, keys[1].Name)
	}

	if m.Updatable && m.FindByKey == "" {
		res.AddError("find_by_key_missing", "updatable mapper needs find_by_key", m.Type, "")
	}

	if m.Parent != "" {
		validateParent(res, f, m, names)
	}

	validateFields(res, f, m, names)
}

func validateParent(res *diagnostic.Diagnostics, f *File, m *MapperDef, names []string) {
	d, err := ParseTypeExpr("*"+m.Parent, m.TypeParams, "")
	if err != nil || d.Kind != TypeObject {
		res.AddError("parent_type_invalid", fmt.Sprintf("parent %q is not a named type", m.Parent), m.Type, "")
		return
	}

	if d.Qualifier == "" && f.Mapper(d.Name) == nil {
		res.AddError("parent_mapper_missing", fmt.Sprintf("parent %q has no mapper", d.Name), m.Type, "",
			match.Suggest(d.Name, names, 1)...)
	}
}

func validateFields(res *diagnostic.Diagnostics, f *File, m *MapperDef, names []string) {
	fieldNames := map[string]struct{}{}
	aliases := map[string]string{}
	converters := map[string]string{}

	for i := range m.Fields {
		fd := &m.Fields[i]

		if fd.Name == "" {
			res.AddError("field_name_missing", fmt.Sprintf("field #%d has no name", i+1), m.Type, "")
			continue
		}

		if _, ok := fieldNames[fd.Name]; ok {
			res.AddError("duplicate_field", fmt.Sprintf("duplicate field %q", fd.Name), m.Type, fd.Name)
			continue
		}

		fieldNames[fd.Name] = struct{}{}

		for _, alias := range fd.Aliases() {
			if alias == "" {
				res.AddError("alias_empty", "empty JSON name", m.Type, fd.Name)
				continue
			}

			if owner, ok := aliases[alias]; ok {
				res.AddWarning("duplicate_alias",
					fmt.Sprintf("alias %q is already used by %q and is ignored", alias, owner), m.Type, fd.Name)
				continue
			}

			aliases[alias] = fd.Name
		}

		if fd.Type == "" {
			res.AddError("field_type_missing", "field has no type", m.Type, fd.Name)
			continue
		}

		d, err := ParseTypeExpr(fd.Type, m.TypeParams, fd.Converter)
		if err != nil {
			res.AddError("field_type_invalid", err.Error(), m.Type, fd.Name)
			continue
		}

		if fd.Converter != "" {
			leaf := d.Leaf().Expr
			if prev, ok := converters[fd.Converter]; ok && prev != leaf {
				res.AddError("converter_type_conflict",
					fmt.Sprintf("converter %s is used for both %s and %s", fd.Converter, prev, leaf), m.Type, fd.Name)
			}

			converters[fd.Converter] = leaf
		}

		if fd.MergeNested {
			validateMergeNested(res, f, m, fd, d)
		}

		d.Walk(func(sub *TypeDescriptor) {
			if sub.Kind == TypeObject && sub.Qualifier == "" && f.Mapper(sub.Name) == nil {
				res.AddError("object_mapper_missing", fmt.Sprintf("type %q has no mapper", sub.Name), m.Type, fd.Name,
					match.Suggest(sub.Name, names, 1)...)
			}
		})
	}
}

func validateMergeNested(res *diagnostic.Diagnostics, f *File, m *MapperDef, fd *FieldDef, d *TypeDescriptor) {
	if d.Kind != TypeObject {
		res.AddError("merge_nested_not_object", "merge_nested requires a mapped object type", m.Type, fd.Name)
		return
	}

	nested := f.Mapper(d.Name)
	if d.Qualifier != "" || nested == nil || nested.DeferEndParse {
		return
	}

	msg := fmt.Sprintf("%s completes on its own and is completed again by %s", nested.Type, m.Type)

	// A second completion merges and runs the completion hooks again.
	if nested.Updatable || nested.Hooks.OnParseComplete != "" || nested.Hooks.OnInherit != "" {
		res.AddError("merge_nested_not_deferred", msg+"; set defer_end_parse on "+nested.Type, m.Type, fd.Name)
		return
	}

	res.AddWarning("merge_nested_not_deferred", msg, m.Type, fd.Name)
}
