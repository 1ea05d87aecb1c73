package gbow

import (
	"errors"
	"fmt"
)

var (
	ErrNotFound  = errors.New("gbow: file not found")
	ErrIO        = errors.New("gbow: io error")
	ErrTruncated = errors.New("gbow: truncated file")
)

// TruncatedError reports a segment that claims more bytes than the source holds.
type TruncatedError struct {
	Segment Segment
	Offset  int64
	Want    int64
	Got     int64
}

func (e *TruncatedError) Error() string {
	return fmt.Sprintf("gbow: truncated file: %s segment at offset %d needs %d bytes, got %d",
		e.Segment, e.Offset, e.Want, e.Got)
}

func (e *TruncatedError) Is(target error) bool {
	return target == ErrTruncated
}
