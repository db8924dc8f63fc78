// Package diagnostic provides structured warnings and errors for the mapper
// generator.
//
// Key capabilities:
//   - Fatal definition errors (missing key field, missing field type)
//   - Warnings for definitions that generate but behave surprisingly
//     (duplicate aliases, nested merges that complete twice)
//   - "Did you mean" suggestions when a name does not match the Go source
package diagnostic
