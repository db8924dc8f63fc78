// Package jsonmap is the runtime used by generated mappers.
//
// A mapper translates one Go type to and from a streaming JSON representation
// without reflection. Generated mappers are built on three pieces:
//   - Reader and Writer, pull and push token streams backed by json-iterator;
//   - Codec values for scalars, pointers, slices, maps and nested mappers;
//   - Registry and Resolution, which construct each mapper at most once per
//     type identity, including self-referential and mutually recursive types.
//
// Partial updates are tracked with a MergeContext that records which fields
// were present in a payload so that absent fields can be filled in from a
// previously stored instance.
package jsonmap
