// Package wire implements the binary message framing exchanged between
// an exchange-server and its clients: order submission, cancellation and
// query commands, and the execution/error/query reports sent back.
//
// Framing is big-endian, fixed-header-plus-variable-tail, built on small
// encode/decode helpers instead of hand-indexed byte offsets so that
// adding a new field doesn't mean re-deriving every downstream offset
// by hand.
package wire

import (
	"bytes"
	"encoding/binary"
	"errors"
	"io"
	"math"

	"github.com/google/uuid"
)

var ErrShortMessage = errors.New("message too short")

type encoder struct {
	buf bytes.Buffer
}

func (e *encoder) byte(v byte)       { e.buf.WriteByte(v) }
func (e *encoder) uint16(v uint16)   { var b [2]byte; binary.BigEndian.PutUint16(b[:], v); e.buf.Write(b[:]) }
func (e *encoder) uint64(v uint64)   { var b [8]byte; binary.BigEndian.PutUint64(b[:], v); e.buf.Write(b[:]) }
func (e *encoder) float64(v float64) { e.uint64(math.Float64bits(v)) }
func (e *encoder) uuid(v uuid.UUID)  { e.buf.Write(v[:]) }

// str writes a uint16 length prefix followed by the raw bytes.
func (e *encoder) str(s string) {
	e.uint16(uint16(len(s)))
	e.buf.WriteString(s)
}

// fixed writes s truncated or zero-padded to exactly n bytes, for
// fixed-width fields like the 8-byte symbol.
func (e *encoder) fixed(s string, n int) {
	b := make([]byte, n)
	copy(b, s)
	e.buf.Write(b)
}

func (e *encoder) bytes() []byte { return e.buf.Bytes() }

type decoder struct {
	r *bytes.Reader
}

func newDecoder(b []byte) *decoder { return &decoder{r: bytes.NewReader(b)} }

func (d *decoder) byte() (byte, error) { return d.r.ReadByte() }

func (d *decoder) uint16() (uint16, error) {
	var b [2]byte
	if _, err := io.ReadFull(d.r, b[:]); err != nil {
		return 0, ErrShortMessage
	}
	return binary.BigEndian.Uint16(b[:]), nil
}

func (d *decoder) uint64() (uint64, error) {
	var b [8]byte
	if _, err := io.ReadFull(d.r, b[:]); err != nil {
		return 0, ErrShortMessage
	}
	return binary.BigEndian.Uint64(b[:]), nil
}

func (d *decoder) float64() (float64, error) {
	u, err := d.uint64()
	if err != nil {
		return 0, err
	}
	return math.Float64frombits(u), nil
}

func (d *decoder) uuid() (uuid.UUID, error) {
	var u uuid.UUID
	if _, err := io.ReadFull(d.r, u[:]); err != nil {
		return uuid.UUID{}, ErrShortMessage
	}
	return u, nil
}

func (d *decoder) fixed(n int) (string, error) {
	b := make([]byte, n)
	if _, err := io.ReadFull(d.r, b); err != nil {
		return "", ErrShortMessage
	}
	return string(bytes.TrimRight(b, "\x00")), nil
}

func (d *decoder) str() (string, error) {
	n, err := d.uint16()
	if err != nil {
		return "", err
	}
	b := make([]byte, n)
	if _, err := io.ReadFull(d.r, b); err != nil {
		return "", ErrShortMessage
	}
	return string(b), nil
}
