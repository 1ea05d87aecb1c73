// Package gbow reads gbow containers: a fixed little-endian header, four
// declared-length opaque segments, and a trailing markup document whose
// length is implied by the end of the file.
//
// Ownership boundary:
// - header, audio descriptor and image size records
// - segment skipping and truncation detection
// - handing the tail bytes to package payload exactly once
//
// Only major version 0 has a known layout. Other versions are reported, not parsed.
package gbow
