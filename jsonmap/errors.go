package jsonmap

import "github.com/cockroachdb/errors"

var (
	// ErrUnexpectedEnd is returned when the input ends inside a value.
	ErrUnexpectedEnd = errors.New("jsonmap: unexpected end of input")
	// ErrUnexpectedToken is returned when the stream holds a token the caller cannot accept.
	ErrUnexpectedToken = errors.New("jsonmap: unexpected token")
	// ErrWitnessMismatch is returned when one type identity is bound to two different Go types.
	ErrWitnessMismatch = errors.New("jsonmap: type witness mismatch")
	// ErrInvalidWrite is returned when writer calls do not form a valid document.
	ErrInvalidWrite = errors.New("jsonmap: invalid write sequence")
)

func unexpected(got Token, want string) error {
	return errors.Wrapf(ErrUnexpectedToken, "got %s, want %s", got, want)
}
