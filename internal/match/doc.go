// Package match ranks identifiers by similarity so that diagnostics can
// suggest the name the author probably meant.
package match
