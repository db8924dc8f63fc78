package jsonmap

//go:generate go tool stringer -type=Token -trimprefix=Token -output=token_string.go

// Token is the kind of the reader's current position in the stream.
type Token int

const (
	TokenNone Token = iota
	TokenStartObject
	TokenEndObject
	TokenStartArray
	TokenEndArray
	TokenFieldName
	TokenString
	TokenNumber
	TokenTrue
	TokenFalse
	TokenNull
)

// IsScalar reports whether the token carries a complete scalar value.
func (t Token) IsScalar() bool {
	switch t {
	case TokenString, TokenNumber, TokenTrue, TokenFalse, TokenNull:
		return true
	default:
		return false
	}
}

// IsStart reports whether the token opens a container.
func (t Token) IsStart() bool {
	return t == TokenStartObject || t == TokenStartArray
}
