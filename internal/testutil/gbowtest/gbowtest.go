package gbowtest

import (
	"bytes"
	"encoding/binary"
	"math"
	"os"
	"path/filepath"
	"testing"
)

const magic uint32 = 0x776f6267

// DefaultTail is a padded document followed by the single filler byte.
const DefaultTail = "\x00\x00\x00<?xml version=\"1.0\" encoding=\"UTF-8\"?>\n" +
	"<session version=\"1\"><generators><generator id=\"0\" enable=\"1\"/></generators>" +
	"<note>ready</note></session>\x00"

// File describes a container to assemble. Segments are audio, spectrogram,
// hpcp, detected. A non-zero Declared entry replaces len(Segments[i]) in the
// header, which is how truncated files are built.
type File struct {
	Magic           uint32
	VersionMajor    uint32
	VersionMinor    uint32
	SamplerRate     float64
	NumberOfSamples uint32
	Channel         uint32
	Segments        [4][]byte
	Declared        [4]uint32
	Reserved        [32]uint32
	Tail            []byte
}

func Default() File {
	return File{
		Magic:           magic,
		VersionMajor:    0,
		VersionMinor:    1,
		SamplerRate:     44100,
		NumberOfSamples: 8,
		Channel:         2,
		Segments: [4][]byte{
			fill(32, 0xa0),
			fill(16, 0xb0),
			fill(12, 0xc0),
			fill(8, 0xd0),
		},
		Tail: []byte(DefaultTail),
	}
}

// DeclaredSize is the segment length written into the header.
func (f File) DeclaredSize(i int) uint32 {
	if f.Declared[i] != 0 {
		return f.Declared[i]
	}
	return uint32(len(f.Segments[i]))
}

// FixedEnd is the offset where the tail starts when the file is not truncated.
func (f File) FixedEnd() int64 {
	n := int64(12 + 20 + 12 + 32*4)
	for i := range f.Segments {
		n += int64(f.DeclaredSize(i))
	}
	return n
}

func (f File) Bytes() []byte {
	var buf bytes.Buffer
	put32 := func(v uint32) {
		_ = binary.Write(&buf, binary.LittleEndian, v)
	}

	put32(f.Magic)
	put32(f.VersionMajor)
	put32(f.VersionMinor)

	put32(f.DeclaredSize(0))
	_ = binary.Write(&buf, binary.LittleEndian, math.Float64bits(f.SamplerRate))
	put32(f.NumberOfSamples)
	put32(f.Channel)

	put32(f.DeclaredSize(1))
	put32(f.DeclaredSize(2))
	put32(f.DeclaredSize(3))

	for _, v := range f.Reserved {
		put32(v)
	}
	for _, seg := range f.Segments {
		buf.Write(seg)
	}
	buf.Write(f.Tail)
	return buf.Bytes()
}

// Write stores f under t.TempDir and returns its path.
func (f File) Write(t testing.TB, name string) string {
	t.Helper()
	return WriteBytes(t, name, f.Bytes())
}

func WriteBytes(t testing.TB, name string, data []byte) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("write fixture %s: %v", name, err)
	}
	return path
}

func fill(n int, b byte) []byte {
	return bytes.Repeat([]byte{b}, n)
}
