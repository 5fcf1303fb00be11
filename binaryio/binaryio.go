package binaryio

import (
	"bufio"
	"encoding/binary"
	"io"

	"github.com/jamesrr39/goutil/errorsx"
)

// maxStringLen guards against reading a corrupt length prefix and then
// trying to allocate gigabytes for a single string.
const maxStringLen = 1 << 20

// Reader decodes the primitives the schema file format is built from:
// varint-encoded numbers, length-prefixed strings and single-byte booleans.
type Reader struct {
	r *bufio.Reader
}

func NewReader(r io.Reader) *Reader {
	return &Reader{bufio.NewReader(r)}
}

func (r *Reader) ReadUvarint() (uint64, errorsx.Error) {
	val, err := binary.ReadUvarint(r.r)
	if err != nil {
		return 0, errorsx.Wrap(err)
	}
	return val, nil
}

func (r *Reader) ReadString() (string, errorsx.Error) {
	length, err := r.ReadUvarint()
	if err != nil {
		return "", err
	}

	if length > maxStringLen {
		return "", errorsx.Errorf("string length prefix too large: %d", length)
	}

	b := make([]byte, length)
	_, ioErr := io.ReadFull(r.r, b)
	if ioErr != nil {
		return "", errorsx.Wrap(ioErr)
	}
	return string(b), nil
}

func (r *Reader) ReadByte() (byte, errorsx.Error) {
	b, err := r.r.ReadByte()
	if err != nil {
		return 0, errorsx.Wrap(err)
	}
	return b, nil
}

func (r *Reader) ReadBool() (bool, errorsx.Error) {
	b, err := r.ReadByte()
	if err != nil {
		return false, err
	}
	return b != 0, nil
}

func (r *Reader) ReadFull(b []byte) errorsx.Error {
	_, err := io.ReadFull(r.r, b)
	if err != nil {
		return errorsx.Wrap(err)
	}
	return nil
}

// Writer is the encoding counterpart of Reader. Writes are buffered; callers
// must call Flush before treating the underlying stream as complete.
type Writer struct {
	w *bufio.Writer
}

func NewWriter(w io.Writer) *Writer {
	return &Writer{bufio.NewWriter(w)}
}

func (w *Writer) WriteUvarint(val uint64) errorsx.Error {
	b := make([]byte, binary.MaxVarintLen64)
	n := binary.PutUvarint(b, val)
	_, err := w.w.Write(b[:n])
	if err != nil {
		return errorsx.Wrap(err)
	}
	return nil
}

func (w *Writer) WriteString(s string) errorsx.Error {
	err := w.WriteUvarint(uint64(len(s)))
	if err != nil {
		return err
	}

	_, ioErr := w.w.WriteString(s)
	if ioErr != nil {
		return errorsx.Wrap(ioErr)
	}
	return nil
}

func (w *Writer) WriteByte(b byte) errorsx.Error {
	err := w.w.WriteByte(b)
	if err != nil {
		return errorsx.Wrap(err)
	}
	return nil
}

func (w *Writer) WriteBool(val bool) errorsx.Error {
	var b byte
	if val {
		b = 1
	}
	return w.WriteByte(b)
}

func (w *Writer) Write(b []byte) errorsx.Error {
	_, err := w.w.Write(b)
	if err != nil {
		return errorsx.Wrap(err)
	}
	return nil
}

func (w *Writer) Flush() errorsx.Error {
	err := w.w.Flush()
	if err != nil {
		return errorsx.Wrap(err)
	}
	return nil
}
