package analyze

import (
	"go/types"
	"reflect"

	"github.com/cockroachdb/errors"
	"golang.org/x/tools/go/packages"
)

// LoadMode specifies what information to load from packages.
const LoadMode = packages.NeedName |
	packages.NeedFiles |
	packages.NeedTypes |
	packages.NeedImports

// Analyzer loads Go packages and builds a type graph.
type Analyzer struct {
	graph *TypeGraph
	dir   string
}

// NewAnalyzer creates a new Analyzer. Relative patterns are resolved
// against dir, or the working directory when dir is empty.
func NewAnalyzer(dir string) *Analyzer {
	return &Analyzer{
		graph: NewTypeGraph(),
		dir:   dir,
	}
}

// LoadPackages loads the specified packages and adds them to the type graph.
// Patterns are standard Go package patterns (e.g., "./examples/library").
func (a *Analyzer) LoadPackages(patterns ...string) (*TypeGraph, error) {
	cfg := &packages.Config{
		Mode: LoadMode,
		Dir:  a.dir,
	}

	pkgs, err := packages.Load(cfg, patterns...)
	if err != nil {
		return nil, errors.Wrap(err, "failed to load packages")
	}

	if len(pkgs) == 0 {
		return nil, errors.Newf("no packages match %v", patterns)
	}

	var errs error

	for _, pkg := range pkgs {
		for _, e := range pkg.Errors {
			errs = errors.CombineErrors(errs, e)
		}

		if len(pkg.Errors) == 0 && (pkg.Types == nil || pkg.Name == "") {
			errs = errors.CombineErrors(errs, errors.Newf("package %q has no type information", pkg.PkgPath))
		}
	}

	if errs != nil {
		return nil, errors.Wrap(errs, "package errors")
	}

	for _, pkg := range pkgs {
		a.processPackage(pkg)
	}

	return a.graph, nil
}

// Graph returns the current type graph.
func (a *Analyzer) Graph() *TypeGraph {
	return a.graph
}

// processPackage extracts named types and functions from a loaded package.
func (a *Analyzer) processPackage(pkg *packages.Package) {
	pkgInfo := &PackageInfo{
		Path:  pkg.PkgPath,
		Name:  pkg.Name,
		Funcs: make(map[string]string),
	}

	qualifier := types.RelativeTo(pkg.Types)
	scope := pkg.Types.Scope()

	for _, name := range scope.Names() {
		switch obj := scope.Lookup(name).(type) {
		case *types.Func:
			pkgInfo.Funcs[name] = types.TypeString(obj.Type(), qualifier)

		case *types.TypeName:
			named, ok := obj.Type().(*types.Named)
			if !ok || obj.IsAlias() {
				continue
			}

			info := analyzeNamed(named, qualifier)
			info.ID = TypeID{PkgPath: pkg.PkgPath, Name: name}

			a.graph.Types[info.ID] = info
			pkgInfo.Types = append(pkgInfo.Types, info.ID)
		}
	}

	a.graph.Packages[pkg.PkgPath] = pkgInfo
}

func analyzeNamed(named *types.Named, qualifier types.Qualifier) *TypeInfo {
	info := &TypeInfo{Methods: make(map[string]string)}

	for i := range named.TypeParams().Len() {
		info.TypeParams = append(info.TypeParams, named.TypeParams().At(i).Obj().Name())
	}

	if st, ok := named.Underlying().(*types.Struct); ok {
		info.IsStruct = true

		for i := range st.NumFields() {
			field := st.Field(i)
			info.Fields = append(info.Fields, FieldInfo{
				Name:     field.Name(),
				Type:     types.TypeString(field.Type(), qualifier),
				Tag:      reflect.StructTag(st.Tag(i)),
				Embedded: field.Embedded(),
				Exported: field.Exported(),
			})
		}
	}

	// pointer receivers see every method, promoted ones included
	mset := types.NewMethodSet(types.NewPointer(named))
	for i := range mset.Len() {
		fn := mset.At(i).Obj()
		info.Methods[fn.Name()] = types.TypeString(fn.Type(), qualifier)
	}

	return info
}

// GetStruct returns the TypeInfo of a named struct type.
func (a *Analyzer) GetStruct(pkgPath, typeName string) (*TypeInfo, error) {
	id := TypeID{PkgPath: pkgPath, Name: typeName}

	info := a.graph.GetType(id)
	if info == nil {
		return nil, errors.Newf("type %s not found", id)
	}

	if !info.IsStruct {
		return nil, errors.Newf("type %s is not a struct", id)
	}

	return info, nil
}
