package payload

import (
	"bytes"
	"fmt"

	"golang.org/x/text/encoding/charmap"
)

// Marker opens the trailing document.
const Marker = "<?xml"

// Locate returns the document text found in tail: everything from the first
// marker up to, but not including, the final byte. Bytes are mapped one to
// one onto code points (ISO-8859-1).
func Locate(tail []byte) (string, error) {
	idx := bytes.Index(tail, []byte(Marker))
	if idx < 0 {
		return "", ErrMarkerNotFound
	}
	body := tail[idx : len(tail)-1]
	text, err := charmap.ISO8859_1.NewDecoder().Bytes(body)
	if err != nil {
		return "", fmt.Errorf("payload: decode text: %w", err)
	}
	return string(text), nil
}

// Extract locates and parses the trailing document.
func Extract(tail []byte) (*Document, error) {
	text, err := Locate(tail)
	if err != nil {
		return nil, err
	}
	return Parse(text)
}
