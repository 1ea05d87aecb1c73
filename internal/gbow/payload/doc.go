// Package payload extracts the markup document stored at the tail of a gbow
// container.
//
// The document length is never declared by the container. Extraction is a
// two-step contract:
// - locate the first "<?xml" marker; bytes before it are padding
// - drop exactly one trailing filler byte, whatever its value
//
// The package knows nothing about container header fields.
package payload
