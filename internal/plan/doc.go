// Package plan turns a validated definition file into per-type mapper plans
// consumed by code generation.
//
// Planning pipeline:
//  1. Validate the definition file structurally
//  2. Order mappers parent-first
//  3. For each mapper:
//     - Parse field types into descriptors
//     - Allocate one mapper variable per type parameter and per distinct
//     object type, binding the type itself to the mapper under construction
//     - Allocate one converter cache per converter type
//     - Build codec expressions and alias dispatch tables
//  4. Emit diagnostics (missing keys, unknown imports, expanding generics)
package plan
