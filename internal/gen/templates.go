package gen

// mapperTemplate renders one MapperPlan. It is executed with a fileData value.
const mapperTemplate = `// Code generated by mapper-generator. DO NOT EDIT.

package {{.Package}}

import (
{{- range .M.Imports}}
	"{{.}}"
{{- end}}
{{- if .M.Imports}}
{{end}}
	"{{.Runtime}}"
)
{{with .M}}
{{doc "%sType returns the type witness of %s." .Name .ObjectType -}}
func {{.Name}}Type{{.TypeParamsDecl}}({{.WitnessParams}}) jsonmap.TypeWitness[{{.ObjectType}}] {
	return jsonmap.NewTypeWitness({{.IDExpr}}, func(res *jsonmap.Resolution) (jsonmap.Mapper[{{.ObjectType}}], error) {
		m, err := new{{.MapperType}}(res{{range .TypeParams}}, {{.Witness}}{{end}})
		if err != nil {
			return nil, err
		}

		return m, nil
	})
}
{{if not .IsGeneric}}
var _ jsonmap.ObjectMapper[{{.ObjectType}}] = (*{{.MapperType}})(nil)
{{end}}
{{doc "%s reads and writes %s values." .MapperType .Name -}}
type {{.MapperType}}{{.TypeParamsDecl}} struct {
{{- range .TypeParams}}
	{{.Mapper}} jsonmap.Mapper[{{.Name}}]
{{- end}}
{{- range .ObjectMappers}}{{if not .Self}}
	{{.Var}} jsonmap.Mapper[{{.TypeExpr}}]
{{- end}}{{end}}
{{- range .Converters}}
	{{.Var}} *jsonmap.ConverterCache[{{.ValueType}}]
{{- end}}
{{- range .CodecFields}}
	{{.CodecVar}} jsonmap.Codec[{{.GoType}}]
{{- end}}
{{- with .Parent}}
	parentMapper jsonmap.ObjectMapper[{{.TypeExpr}}]
{{- end}}
}

func new{{.MapperType}}{{.TypeParamsDecl}}(res *jsonmap.Resolution{{range .TypeParams}}, {{.Witness}} jsonmap.TypeWitness[{{.Name}}]{{end}}) (*{{.MapperType}}{{.TypeArgs}}, error) {
	m := &{{.MapperType}}{{.TypeArgs}}{}
	res.Register({{.Name}}Type({{.WitnessArgs}}).ID(), m)
{{if .NeedsResolve}}
	var err error
{{end}}
{{- range .TypeParams}}
	if m.{{.Mapper}}, err = jsonmap.Resolve(res, {{.Witness}}); err != nil {
		return nil, err
	}
{{end}}
{{- range .ParamDependentMappers}}
	if m.{{.Var}}, err = jsonmap.Resolve(res, {{.Witness}}); err != nil {
		return nil, err
	}
{{end}}
{{- range .ConcreteMappers}}
	if m.{{.Var}}, err = jsonmap.Resolve(res, {{.Witness}}); err != nil {
		return nil, err
	}
{{end}}
{{- range .Converters}}
	m.{{.Var}} = jsonmap.NewConverterCache(func() jsonmap.Converter[{{.ValueType}}] {
		return {{.New}}()
	})
{{end}}
{{- if .CodecFields}}
{{range .CodecFields}}
	m.{{.CodecVar}} = {{.CodecExpr}}
{{- end}}
{{end}}
{{- with .Parent}}
	if m.parentMapper, err = jsonmap.ResolveObject(res, {{.Witness}}); err != nil {
		return nil, err
	}
{{end}}
	return m, nil
}

{{doc "Parse decodes a %s from r." .Name -}}
func (m *{{.MapperType}}{{.TypeArgs}}) Parse(r *jsonmap.Reader) ({{.ObjectType}}, error) {
	return m.ParseWithContext(r, nil)
}

{{doc "ParseWithContext decodes a %s from r, recording the members seen in mc." .Name -}}
func (m *{{.MapperType}}{{.TypeArgs}}) ParseWithContext(r *jsonmap.Reader, mc *jsonmap.MergeContext) ({{.ObjectType}}, error) {
{{- if .Abstract}}
	if r.Current() == jsonmap.TokenNone {
		if _, err := r.Next(); err != nil {
			return nil, err
		}
	}

	return nil, r.SkipChildren()
{{- else}}
	ok, err := r.ExpectObject()
	if err != nil || !ok {
		return nil, err
	}

	if mc == nil {
		mc = m.NewMergeContext()
	}

	instance := &{{.Name}}{{.TypeArgs}}{}

	for {
		name, more, err := r.NextField()
		if err != nil {
			return nil, err
		}

		if !more {
			break
		}

		if err := m.ParseField(instance, name, r, mc); err != nil {
			return nil, err
		}

		if err := r.SkipChildren(); err != nil {
			return nil, err
		}
	}
{{if not .DeferEndParse}}
	if err := m.EndParse(nil, instance, mc); err != nil {
		return nil, err
	}
{{end}}
	return instance, nil
{{- end}}
}

{{doc "ParseField decodes the member name into instance." -}}
func (m *{{.MapperType}}{{.TypeArgs}}) ParseField(instance {{.ObjectType}}, name string, r *jsonmap.Reader, mc *jsonmap.MergeContext) error {
{{- if or .DispatchFields .Parent}}
	switch name {
{{- range .DispatchFields}}
	case {{.Cases}}:
{{- if .Nested}}
		child := {{.Nested.Ref}}.NewMergeContext()

		v, err := {{.Nested.Ref}}.ParseWithContext(r, child)
		if err != nil {
			return err
		}

		{{.Set "instance" "v"}}
		mc.MarkSet({{quote .Name}})
		mc.SetNested({{quote .Name}}, child)
{{- else}}
		v, err := m.{{.CodecVar}}.Read(r)
		if err != nil {
			return err
		}

		{{.Set "instance" "v"}}
		mc.MarkSet({{quote .Name}})
{{- end}}
{{- end}}
{{- with .Parent}}
	default:
		return m.parentMapper.ParseField(&instance.{{.Field}}, name, r, mc.Child(jsonmap.ParentKey))
{{- end}}
	}
{{end}}
	return nil
}

{{doc "EndParse completes a decoded %s." .Name -}}
func (m *{{.MapperType}}{{.TypeArgs}}) EndParse(parent any, instance {{.ObjectType}}, mc *jsonmap.MergeContext) error {
	if instance == nil {
		return nil
	}

	if mc == nil {
		mc = m.NewMergeContext()
	}
{{with .Hooks.OnInherit}}
	instance.{{.}}(parent)
{{end}}
{{- if .Updatable}}
	if stored := {{.FindByKey}}{{.TypeArgs}}({{.Key.Get "instance"}}); stored != nil {
		m.MergeFrom(instance, stored, mc)
	}
{{end}}
	if err := m.EndNested(instance, mc); err != nil {
		return err
	}
{{with .Hooks.OnParseComplete}}
	instance.{{.}}()
{{end}}
	return nil
}

{{doc "MergeFrom copies the members missing from the payload from stored." -}}
func (m *{{.MapperType}}{{.TypeArgs}}) MergeFrom(instance, stored {{.ObjectType}}, mc *jsonmap.MergeContext) {
{{- range .ParseFields}}
	if !mc.IsSet({{quote .Name}}) {
		{{.Set "instance" (.Get "stored")}}
	}
{{- end}}
{{- with .Parent}}
	m.parentMapper.MergeFrom(&instance.{{.Field}}, &stored.{{.Field}}, mc.Child(jsonmap.ParentKey))
{{- end}}
}

{{doc "EndNested completes the nested members that take part in merging." -}}
func (m *{{.MapperType}}{{.TypeArgs}}) EndNested(instance {{.ObjectType}}, mc *jsonmap.MergeContext) error {
{{- range .NestedFields}}
	if v := {{.Get "instance"}}; !{{.Nested.Ref}}.IsNull(v) {
		if err := {{.Nested.Ref}}.EndParse(instance, v, mc.Nested({{quote .Name}})); err != nil {
			return err
		}
	}
{{end}}
{{- with .Parent}}
	return m.parentMapper.EndNested(&instance.{{.Field}}, mc.Child(jsonmap.ParentKey))
{{- else}}
	return nil
{{- end}}
}

{{doc "Serialize encodes object to w. Braces are written only when writeStartAndEnd is set." -}}
func (m *{{.MapperType}}{{.TypeArgs}}) Serialize(object {{.ObjectType}}, w *jsonmap.Writer, writeStartAndEnd bool) error {
	if object == nil {
		w.WriteNull()
		return w.Err()
	}
{{with .Hooks.PreSerialize}}
	object.{{.}}()
{{end}}
	if writeStartAndEnd {
		w.WriteStartObject()
	}
{{range .SerializeFields}}
	if err := jsonmap.WriteField(w, {{quote .EncodeName}}, m.{{.CodecVar}}, {{.Get "object"}}, {{.KeepNull}}); err != nil {
		return err
	}
{{end}}
{{- with .Parent}}
	if err := m.parentMapper.Serialize(&object.{{.Field}}, w, false); err != nil {
		return err
	}
{{end}}
	if writeStartAndEnd {
		w.WriteEndObject()
	}

	return w.Err()
}

{{doc "NewMergeContext returns an empty merge context." -}}
func (m *{{.MapperType}}{{.TypeArgs}}) NewMergeContext() *jsonmap.MergeContext {
	return jsonmap.NewMergeContext()
}

{{doc "IsNull reports whether v is nil." -}}
func (m *{{.MapperType}}{{.TypeArgs}}) IsNull(v {{.ObjectType}}) bool {
	return v == nil
}
{{end -}}
`
