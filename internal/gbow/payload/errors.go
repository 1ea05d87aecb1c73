package payload

import (
	"errors"
	"fmt"
)

var (
	ErrMarkerNotFound    = errors.New("payload: marker not found")
	ErrMalformedDocument = errors.New("payload: malformed document")
)

func malformed(err error) error {
	return fmt.Errorf("%w: %v", ErrMalformedDocument, err)
}

func malformedf(format string, args ...any) error {
	return fmt.Errorf("%w: "+format, append([]any{ErrMalformedDocument}, args...)...)
}
