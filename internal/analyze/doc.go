// Package analyze loads Go packages and extracts the declarations a mapper
// definition refers to.
//
// It uses golang.org/x/tools/go/packages with go/types to build an in-memory
// model of named types, their fields and methods, and package functions.
//
// Key types:
//   - TypeID: package import path + type name
//   - TypeInfo: struct-ness, type parameters, fields, method signatures
//   - PackageInfo: named types and function signatures of a package
package analyze
