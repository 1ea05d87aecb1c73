package gbow

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"math"
)

// cursor is the single read position over a container source.
type cursor struct {
	r        io.Reader
	consumed int64
}

func newCursor(r io.Reader) *cursor {
	return &cursor{r: r}
}

// read fills exactly n bytes for a fixed-size record.
func (c *cursor) read(seg Segment, n int) ([]byte, error) {
	buf := make([]byte, n)
	got, err := io.ReadFull(c.r, buf)
	offset := c.consumed
	c.consumed += int64(got)
	if err != nil {
		return nil, c.fail(seg, offset, int64(n), int64(got), err)
	}
	return buf, nil
}

// skip discards exactly n bytes without buffering them.
func (c *cursor) skip(seg Segment, n int64) error {
	if n == 0 {
		return nil
	}
	offset := c.consumed
	got, err := io.CopyN(io.Discard, c.r, n)
	c.consumed += got
	if err != nil {
		return c.fail(seg, offset, n, got, err)
	}
	return nil
}

// rest returns every remaining byte of the source.
func (c *cursor) rest() ([]byte, error) {
	tail, err := io.ReadAll(c.r)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w: %w", SegmentPayload, ErrIO, err)
	}
	return tail, nil
}

func (c *cursor) fail(seg Segment, offset, want, got int64, err error) error {
	if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
		return &TruncatedError{Segment: seg, Offset: offset, Want: want, Got: got}
	}
	return fmt.Errorf("read %s: %w: %w", seg, ErrIO, err)
}

func le32(b []byte) uint32 {
	return binary.LittleEndian.Uint32(b)
}

func le64f(b []byte) float64 {
	return math.Float64frombits(binary.LittleEndian.Uint64(b))
}
