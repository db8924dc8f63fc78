package mapping

import (
	"go/ast"
	"go/parser"
	"go/types"
	"slices"

	"github.com/cockroachdb/errors"

	"mapper-generator/primitive"
)

//go:generate go tool stringer -type=TypeKind -trimprefix=Type -output=typekind_string.go

// TypeKind classifies a field type expression.
type TypeKind int

const (
	TypeInvalid TypeKind = iota
	// TypeScalar is a predeclared scalar such as int64 or string.
	TypeScalar
	// TypeNullable is a pointer to a scalar.
	TypeNullable
	// TypeObject is a pointer to a mapped type.
	TypeObject
	// TypeSlice is []E.
	TypeSlice
	// TypeMap is map[string]E.
	TypeMap
	// TypeParam is a type parameter of the enclosing mapped type.
	TypeParam
	// TypeConverter is a leaf handled by a custom converter.
	TypeConverter
)

// TypeDescriptor is the parsed form of a field type expression.
type TypeDescriptor struct {
	Kind TypeKind
	// Expr is the normalized Go expression of the type.
	Expr string
	// Scalar is set for TypeScalar and TypeNullable.
	Scalar primitive.KindEnum
	// Elem is set for TypeSlice and TypeMap.
	Elem *TypeDescriptor
	// Qualifier and Name identify the mapped type of TypeObject, or the
	// parameter name of TypeParam.
	Qualifier string
	Name      string
	// Args are the type arguments of a generic TypeObject.
	Args []*TypeDescriptor
	// Params lists the type parameters of the enclosing type referenced
	// anywhere in the expression.
	Params []string
}

// IsConcrete returns true if the expression does not depend on type parameters.
func (d *TypeDescriptor) IsConcrete() bool {
	return len(d.Params) == 0
}

// Leaf returns the innermost element type.
func (d *TypeDescriptor) Leaf() *TypeDescriptor {
	for d.Elem != nil {
		d = d.Elem
	}

	return d
}

// Walk calls fn for d and every descriptor below it, including type arguments.
func (d *TypeDescriptor) Walk(fn func(*TypeDescriptor)) {
	fn(d)

	if d.Elem != nil {
		d.Elem.Walk(fn)
	}

	for _, a := range d.Args {
		a.Walk(fn)
	}
}

// ParseTypeExpr parses a field type expression. typeParams are the type
// parameters in scope. When converter is set the leaf type is handled by the
// converter and is not classified further.
func ParseTypeExpr(expr string, typeParams []string, converter string) (*TypeDescriptor, error) {
	if expr == "" {
		return nil, errors.New("empty type expression")
	}

	node, err := parser.ParseExpr(expr)
	if err != nil {
		return nil, errors.Wrapf(err, "invalid type expression %q", expr)
	}

	p := typeParser{params: typeParams, converter: converter}

	return p.describe(node, true)
}

type typeParser struct {
	params    []string
	converter string
}

func (p *typeParser) describe(node ast.Expr, field bool) (*TypeDescriptor, error) {
	d := &TypeDescriptor{Expr: types.ExprString(node), Params: p.referenced(node)}

	switch n := node.(type) {
	case *ast.ParenExpr:
		return p.describe(n.X, field)

	case *ast.ArrayType:
		if n.Len != nil {
			return nil, errors.Newf("arrays are not supported in %q, use a slice", d.Expr)
		}

		elem, err := p.describe(n.Elt, field)
		if err != nil {
			return nil, err
		}

		d.Kind, d.Elem = TypeSlice, elem

		return d, nil

	case *ast.MapType:
		if key, ok := n.Key.(*ast.Ident); !ok || key.Name != "string" {
			return nil, errors.Newf("map keys must be string in %q", d.Expr)
		}

		elem, err := p.describe(n.Value, field)
		if err != nil {
			return nil, err
		}

		d.Kind, d.Elem = TypeMap, elem

		return d, nil
	}

	if field && p.converter != "" {
		d.Kind = TypeConverter
		d.Name = p.converter

		return d, nil
	}

	switch n := node.(type) {
	case *ast.Ident:
		if slices.Contains(p.params, n.Name) {
			d.Kind, d.Name = TypeParam, n.Name
			return d, nil
		}

		if k := primitive.FromGoName(n.Name); k.IsValid() {
			d.Kind, d.Scalar = TypeScalar, k
			return d, nil
		}

		return nil, errors.Newf("unsupported type %q, use *%s for a mapped type or set a converter", d.Expr, d.Expr)

	case *ast.StarExpr:
		if id, ok := n.X.(*ast.Ident); ok {
			if k := primitive.FromGoName(id.Name); k.IsValid() {
				d.Kind, d.Scalar = TypeNullable, k
				return d, nil
			}

			if slices.Contains(p.params, id.Name) {
				return nil, errors.Newf("pointer to type parameter %q is not supported", id.Name)
			}
		}

		if err := p.object(d, n.X); err != nil {
			return nil, err
		}

		return d, nil
	}

	return nil, errors.Newf("unsupported type %q, set a converter", d.Expr)
}

// object fills d from the named type below a pointer.
func (p *typeParser) object(d *TypeDescriptor, node ast.Expr) error {
	var args []ast.Expr

	switch n := node.(type) {
	case *ast.IndexExpr:
		node, args = n.X, []ast.Expr{n.Index}
	case *ast.IndexListExpr:
		node, args = n.X, n.Indices
	}

	switch n := node.(type) {
	case *ast.Ident:
		d.Name = n.Name
	case *ast.SelectorExpr:
		pkg, ok := n.X.(*ast.Ident)
		if !ok {
			return errors.Newf("unsupported type %q", d.Expr)
		}

		d.Qualifier, d.Name = pkg.Name, n.Sel.Name
	default:
		return errors.Newf("unsupported type %q, set a converter", d.Expr)
	}

	for _, a := range args {
		arg, err := p.describe(a, false)
		if err != nil {
			return errors.Wrapf(err, "type argument of %q", d.Expr)
		}

		d.Args = append(d.Args, arg)
	}

	d.Kind = TypeObject

	return nil
}

// referenced returns the type parameters used in node, in first-use order.
func (p *typeParser) referenced(node ast.Expr) []string {
	var used []string

	ast.Inspect(node, func(n ast.Node) bool {
		if id, ok := n.(*ast.Ident); ok && slices.Contains(p.params, id.Name) && !slices.Contains(used, id.Name) {
			used = append(used, id.Name)
		}

		return true
	})

	return used
}
