package gbow

// Container contract for major version 0.
const (
	// Magic is "gbow" read as a little-endian uint32.
	Magic          uint32 = 0x776f6267
	SupportedMajor uint32 = 0

	HeaderSize          = 12
	AudioDescriptorSize = 20
	ImageSizesSize      = 12

	// ReservedSlots uint32 values follow the image sizes. They carry no meaning.
	ReservedSlots     = 32
	ReservedBlockSize = ReservedSlots * 4

	// FixedLayoutSize is everything before the first opaque segment.
	FixedLayoutSize = HeaderSize + AudioDescriptorSize + ImageSizesSize + ReservedBlockSize
)
