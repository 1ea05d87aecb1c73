package gbow

import (
	"github.com/danmuck/gbowinfo/internal/gbow/payload"
)

type Segment int

const (
	SegmentHeader Segment = iota
	SegmentAudioDescriptor
	SegmentImageSizes
	SegmentReserved
	SegmentAudio
	SegmentSpectrogram
	SegmentHPCP
	SegmentDetected
	SegmentPayload
)

var segmentNames = [...]string{
	SegmentHeader:          "header",
	SegmentAudioDescriptor: "audio descriptor",
	SegmentImageSizes:      "image sizes",
	SegmentReserved:        "reserved",
	SegmentAudio:           "audio buffer",
	SegmentSpectrogram:     "spectrogram",
	SegmentHPCP:            "hpcp",
	SegmentDetected:        "detected",
	SegmentPayload:         "payload",
}

func (s Segment) String() string {
	if s < 0 || int(s) >= len(segmentNames) {
		return "unknown"
	}
	return segmentNames[s]
}

type Header struct {
	Magic        uint32
	VersionMajor uint32
	VersionMinor uint32
}

type AudioBufferDescriptor struct {
	Size            uint32
	SamplerRate     float64
	NumberOfSamples uint32
	Channel         uint32
}

type ImageSizes struct {
	Spectrogram uint32
	HPCP        uint32
	Detected    uint32
}

// DecodeReport is everything learned from one decode. Fields past the first
// finding (bad magic, unsupported version) stay zero or nil.
type DecodeReport struct {
	Path     string
	FileSize int64
	Header   Header

	// MagicRead and VersionRead mark header fields actually present in the
	// source. A file ending inside the header leaves them false.
	MagicRead   bool
	VersionRead bool

	MagicValid       bool
	VersionSupported bool
	Reason           string

	Audio  *AudioBufferDescriptor
	Images *ImageSizes

	// Consumed counts bytes read before the tail, so it stops at the header
	// for bad magic or an unsupported version.
	Consumed int64
	TailSize int

	Document   *payload.Document
	PayloadErr error
}

const (
	ReasonBadMagic           = "bad magic"
	ReasonUnsupportedVersion = "unsupported version"
)
