package jsonmap

import (
	"io"

	"github.com/cockroachdb/errors"
	jsoniter "github.com/json-iterator/go"
)

type writeFrame struct {
	object bool
	count  int
	named  bool
}

// Writer is a push writer for JSON documents.
//
// Separators are inserted automatically. The first invalid call (a value in an
// object without a member name, an unbalanced end) makes the writer fail; all
// later calls are ignored and Err reports the failure.
type Writer struct {
	stream *jsoniter.Stream
	stack  []writeFrame
	roots  int
	err    error
}

// NewWriter returns a writer flushing to out. A nil out keeps the document in
// memory, see Bytes.
func NewWriter(out io.Writer) *Writer {
	return &Writer{stream: jsoniter.NewStream(api, out, writeBufferSize)}
}

// WriteStartObject opens an object.
func (w *Writer) WriteStartObject() {
	if !w.beginValue() {
		return
	}

	w.stream.WriteObjectStart()
	w.stack = append(w.stack, writeFrame{object: true})
}

// WriteEndObject closes the innermost object.
func (w *Writer) WriteEndObject() {
	if !w.endContainer(true) {
		return
	}

	w.stream.WriteObjectEnd()
}

// WriteStartArray opens an array.
func (w *Writer) WriteStartArray() {
	if !w.beginValue() {
		return
	}

	w.stream.WriteArrayStart()
	w.stack = append(w.stack, writeFrame{})
}

// WriteEndArray closes the innermost array.
func (w *Writer) WriteEndArray() {
	if !w.endContainer(false) {
		return
	}

	w.stream.WriteArrayEnd()
}

// WriteFieldName writes an object member name. The next write is its value.
func (w *Writer) WriteFieldName(name string) {
	if w.err != nil {
		return
	}

	if len(w.stack) == 0 || !w.stack[len(w.stack)-1].object || w.stack[len(w.stack)-1].named {
		w.err = errors.Wrapf(ErrInvalidWrite, "field name %q outside of an object", name)
		return
	}

	top := &w.stack[len(w.stack)-1]
	if top.count > 0 {
		w.stream.WriteMore()
	}

	top.count++
	top.named = true
	w.stream.WriteObjectField(name)
}

func (w *Writer) WriteString(v string) {
	if w.beginValue() {
		w.stream.WriteString(v)
	}
}

func (w *Writer) WriteBool(v bool) {
	if w.beginValue() {
		w.stream.WriteBool(v)
	}
}

func (w *Writer) WriteInt64(v int64) {
	if w.beginValue() {
		w.stream.WriteInt64(v)
	}
}

func (w *Writer) WriteUint64(v uint64) {
	if w.beginValue() {
		w.stream.WriteUint64(v)
	}
}

func (w *Writer) WriteFloat32(v float32) {
	if w.beginValue() {
		w.stream.WriteFloat32(v)
	}
}

func (w *Writer) WriteFloat64(v float64) {
	if w.beginValue() {
		w.stream.WriteFloat64(v)
	}
}

func (w *Writer) WriteNull() {
	if w.beginValue() {
		w.stream.WriteNil()
	}
}

// Err returns the first failure seen by the writer.
func (w *Writer) Err() error {
	if w.err != nil {
		return w.err
	}

	if w.stream.Error != nil {
		return errors.Wrap(w.stream.Error, "jsonmap: write")
	}

	return nil
}

// Flush writes buffered output to the underlying writer.
func (w *Writer) Flush() error {
	if err := w.Err(); err != nil {
		return err
	}

	if err := w.stream.Flush(); err != nil {
		return errors.Wrap(err, "jsonmap: flush")
	}

	return nil
}

// Bytes returns a copy of the buffered document. It is only meaningful for
// writers created without an output.
func (w *Writer) Bytes() []byte {
	return append([]byte(nil), w.stream.Buffer()...)
}

func (w *Writer) beginValue() bool {
	if w.err != nil {
		return false
	}

	if len(w.stack) == 0 {
		if w.roots > 0 {
			w.stream.WriteRaw("\n")
		}

		w.roots++

		return true
	}

	top := &w.stack[len(w.stack)-1]
	if top.object {
		if !top.named {
			w.err = errors.Wrap(ErrInvalidWrite, "object value without a field name")
			return false
		}

		top.named = false

		return true
	}

	if top.count > 0 {
		w.stream.WriteMore()
	}

	top.count++

	return true
}

func (w *Writer) endContainer(object bool) bool {
	if w.err != nil {
		return false
	}

	if len(w.stack) == 0 || w.stack[len(w.stack)-1].object != object || w.stack[len(w.stack)-1].named {
		w.err = errors.Wrap(ErrInvalidWrite, "unbalanced container end")
		return false
	}

	w.stack = w.stack[:len(w.stack)-1]

	return true
}
