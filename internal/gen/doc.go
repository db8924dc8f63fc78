// Package gen renders mapper plans into Go source files.
//
// Every mapped type gets one file holding its type witness constructor, its
// mapper type and the mapper constructor. The mapper implements
// jsonmap.ObjectMapper and follows the decode, merge and encode rules of the
// definition file. Output is gofmt'ed; when formatting fails the raw source is
// written next to the output for inspection.
package gen
