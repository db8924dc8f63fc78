package jsonmap

import (
	"bytes"
	"io"

	"github.com/cockroachdb/errors"
	jsoniter "github.com/json-iterator/go"
)

const (
	readBufferSize  = 4096
	writeBufferSize = 512
)

var api = jsoniter.ConfigDefault

// Reader is a pull cursor over a JSON document.
//
// The reader keeps exactly one token of lookahead. Scalars are consumed as soon
// as they become current; a container start stays unread until Next descends
// into it or SkipChildren skips over it.
//
// Only one root value is read. Content after a root object that is not
// whitespace is reported as an error.
type Reader struct {
	iter     *jsoniter.Iterator
	src      *endTracker
	cur      Token
	name     string
	text     string
	stack    []bool // true for objects, false for arrays
	pending  bool
	fresh    bool // no member of the innermost object has been read yet
	rootRead bool
}

// NewReader returns a reader that pulls tokens from in. Telling the end of
// the root object from a trailing empty member name needs the next byte, so
// in should end after the document.
func NewReader(in io.Reader) *Reader {
	return newReader(in, readBufferSize)
}

// NewBytesReader returns a reader over an in-memory document.
func NewBytesReader(data []byte) *Reader {
	return newReader(bytes.NewReader(data), max(len(data), 1))
}

func newReader(in io.Reader, size int) *Reader {
	src := &endTracker{in: in}
	return &Reader{iter: jsoniter.Parse(api, src, size), src: src}
}

// endTracker remembers that the input ran out. The iterator replaces io.EOF
// with a syntax error when a value is cut short, so the flag is what tells
// truncated input apart from malformed input.
type endTracker struct {
	in  io.Reader
	end bool
}

func (t *endTracker) Read(p []byte) (int, error) {
	n, err := t.in.Read(p)
	if errors.Is(err, io.EOF) {
		t.end = true
	}

	return n, err
}

// Current returns the current token, or TokenNone before the first call to Next.
func (r *Reader) Current() Token {
	return r.cur
}

// FieldName returns the most recently read member name.
func (r *Reader) FieldName() string {
	return r.name
}

// Text returns the text of the current string or number token.
func (r *Reader) Text() string {
	return r.text
}

// Bool returns the value of a boolean token.
func (r *Reader) Bool() bool {
	return r.cur == TokenTrue
}

// Depth returns the number of containers the reader is inside of.
func (r *Reader) Depth() int {
	return len(r.stack)
}

// Next advances to the next token. It returns TokenNone once the root value
// has been consumed.
func (r *Reader) Next() (Token, error) {
	if r.pending {
		r.stack = append(r.stack, r.cur == TokenStartObject)
		r.fresh = r.cur == TokenStartObject
		r.pending = false
	}

	if len(r.stack) == 0 {
		if r.rootRead {
			r.cur = TokenNone
			return TokenNone, nil
		}

		r.rootRead = true

		return r.readValue()
	}

	if r.stack[len(r.stack)-1] {
		if r.cur == TokenFieldName {
			return r.readValue()
		}

		return r.readMember()
	}

	return r.readElement()
}

// SkipChildren skips the whole container when the current token opens one and
// leaves the reader on the matching end token. It does nothing otherwise.
func (r *Reader) SkipChildren() error {
	if !r.pending {
		return nil
	}

	end := TokenEndObject
	if r.cur == TokenStartArray {
		end = TokenEndArray
	}

	r.iter.Skip()

	if err := r.fault(false); err != nil {
		return err
	}

	r.pending = false
	r.cur = end

	return nil
}

// ExpectObject moves onto the start of an object. When nothing has been read
// yet the reader advances once. If the current value is not an object it is
// skipped and false is returned.
func (r *Reader) ExpectObject() (bool, error) {
	if r.cur == TokenNone {
		if _, err := r.Next(); err != nil {
			return false, err
		}
	}

	if r.cur != TokenStartObject {
		return false, r.SkipChildren()
	}

	return true, nil
}

// NextField reads the next member name of the current object and advances to
// its value. It returns false at the end of the object.
func (r *Reader) NextField() (string, bool, error) {
	tok, err := r.Next()
	if err != nil {
		return "", false, err
	}

	switch tok {
	case TokenEndObject:
		return "", false, nil
	case TokenFieldName:
	default:
		return "", false, unexpected(tok, "field name")
	}

	if _, err := r.Next(); err != nil {
		return "", false, err
	}

	return r.name, true, nil
}

func (r *Reader) readMember() (Token, error) {
	name, member, err := r.readMemberName()
	if err != nil {
		return TokenNone, err
	}

	if !member {
		r.stack = r.stack[:len(r.stack)-1]
		r.cur = TokenEndObject

		return r.cur, nil
	}

	r.name = name
	r.cur = TokenFieldName

	return r.cur, nil
}

// readMemberName consumes the next member name and its colon, or the end of
// the innermost object. The iterator returns "" both for an empty member name
// and for the end of an object. The first member is read through the callback
// form, which only calls back for members; a later "" is a member only when a
// value comes next.
func (r *Reader) readMemberName() (string, bool, error) {
	if r.fresh {
		r.fresh = false

		var (
			name   string
			member bool
		)

		r.iter.ReadObjectCB(func(_ *jsoniter.Iterator, field string) bool {
			name, member = field, true
			return false
		})

		return name, member, r.fault(false)
	}

	name := r.iter.ReadObject()
	if err := r.fault(false); err != nil {
		return "", false, err
	}

	if name != "" {
		return name, true, nil
	}

	member := r.iter.WhatIsNext() != jsoniter.InvalidValue
	if err := r.fault(!member && len(r.stack) == 1); err != nil {
		return "", false, err
	}

	return "", member, nil
}

func (r *Reader) readElement() (Token, error) {
	more := r.iter.ReadArray()
	if err := r.fault(false); err != nil {
		return TokenNone, err
	}

	if more {
		return r.readValue()
	}

	r.stack = r.stack[:len(r.stack)-1]
	r.cur = TokenEndArray

	return r.cur, nil
}

func (r *Reader) readValue() (Token, error) {
	r.text = ""
	atRoot := len(r.stack) == 0

	switch r.iter.WhatIsNext() {
	case jsoniter.ObjectValue:
		r.cur, r.pending = TokenStartObject, true
		return r.cur, nil
	case jsoniter.ArrayValue:
		r.cur, r.pending = TokenStartArray, true
		return r.cur, nil
	case jsoniter.StringValue:
		r.text = r.iter.ReadString()
		r.cur = TokenString
	case jsoniter.NumberValue:
		r.text = string(r.iter.ReadNumber())
		r.cur = TokenNumber

		// A number is the only value that may be terminated by the end of input.
		if err := r.fault(atRoot); err != nil {
			return TokenNone, err
		}

		return r.cur, nil
	case jsoniter.BoolValue:
		r.cur = TokenFalse
		if r.iter.ReadBool() {
			r.cur = TokenTrue
		}
	case jsoniter.NilValue:
		r.iter.ReadNil()
		r.cur = TokenNull
	default:
		if atRoot && errors.Is(r.iter.Error, io.EOF) {
			r.cur = TokenNone
			return r.cur, nil
		}

		if err := r.fault(false); err != nil {
			return TokenNone, err
		}

		return TokenNone, errors.Wrap(ErrUnexpectedToken, "invalid value")
	}

	if err := r.fault(false); err != nil {
		return TokenNone, err
	}

	return r.cur, nil
}

func (r *Reader) fault(allowEOF bool) error {
	err := r.iter.Error
	if err == nil {
		return nil
	}

	if errors.Is(err, io.EOF) {
		if allowEOF {
			return nil
		}

		return ErrUnexpectedEnd
	}

	if r.src.end {
		return errors.WithSecondaryError(ErrUnexpectedEnd, err)
	}

	return errors.Wrap(err, "jsonmap: read")
}
