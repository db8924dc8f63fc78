package mapping

import (
	"os"
	"strings"

	"github.com/cockroachdb/errors"
	"gopkg.in/yaml.v3"

	"mapper-generator/internal/common"
)

// DefaultVersion is assumed for files that do not declare a version.
const DefaultVersion = "1.0.0"

// LoadFile loads and parses a YAML definition file from the given path.
func LoadFile(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to read definition file %s", path)
	}

	return Parse(data)
}

// Parse parses YAML data into a File.
func Parse(data []byte) (*File, error) {
	var f File

	err := yaml.Unmarshal(data, &f)
	if err != nil {
		return nil, errors.Wrap(err, "failed to parse definition YAML")
	}

	// Apply defaults and normalize
	applyDefaults(&f)

	return &f, nil
}

// applyDefaults fills in default values for optional fields.
func applyDefaults(f *File) {
	if f.Version == "" {
		f.Version = DefaultVersion
	}

	for i := range f.Mappers {
		m := &f.Mappers[i]
		m.NullPolicy = m.NullPolicy.inherit(f.NullPolicy)

		if m.Parent != "" && m.ParentField == "" {
			m.ParentField = parentBaseName(m.Parent)
		}

		for j := range m.Fields {
			fd := &m.Fields[j]
			if fd.JSON.IsEmpty() && fd.Name != "" {
				fd.JSON = StringOrArray{common.LowerCamel(fd.Name)}
			}

			if fd.Converter != "" && fd.ConverterNew == "" {
				fd.ConverterNew = defaultConverterNew(fd.Converter)
			}
		}
	}
}

// parentBaseName strips qualifier, pointer and type arguments:
// "*base.Entity[T]" gives "Entity".
func parentBaseName(expr string) string {
	name := strings.TrimPrefix(strings.TrimSpace(expr), "*")
	if i := strings.IndexByte(name, '['); i >= 0 {
		name = name[:i]
	}

	if i := strings.LastIndexByte(name, '.'); i >= 0 {
		name = name[i+1:]
	}

	return name
}

// Marshal serializes a File to YAML.
func Marshal(f *File) ([]byte, error) {
	return yaml.Marshal(f)
}

// WriteFile writes a File to the given path.
func WriteFile(f *File, path string) error {
	data, err := Marshal(f)
	if err != nil {
		return errors.Wrap(err, "failed to marshal definitions")
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return errors.Wrapf(err, "failed to write definition file %s", path)
	}

	return nil
}

// Mapper returns the definition of the named type, or nil.
func (f *File) Mapper(name string) *MapperDef {
	for i := range f.Mappers {
		if f.Mappers[i].Type == name {
			return &f.Mappers[i]
		}
	}

	return nil
}
