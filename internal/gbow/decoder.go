package gbow

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"

	"github.com/rs/zerolog"

	"github.com/danmuck/gbowinfo/internal/gbow/payload"
)

// Decoder reads gbow containers. It holds no per-file state, so one Decoder
// may serve concurrent Decode calls.
type Decoder struct {
	logger zerolog.Logger
}

func NewDecoder(logger zerolog.Logger) *Decoder {
	return &Decoder{logger: logger}
}

// Decode opens path and decodes it. A nil error with a report whose
// MagicValid or VersionSupported is false is a structural finding, not a
// failure. Truncation returns the partial report together with the error.
func (d *Decoder) Decode(path string) (*DecodeReport, error) {
	file, err := os.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %w", ErrNotFound, err)
		}
		return nil, fmt.Errorf("%w: %w", ErrIO, err)
	}
	defer file.Close()

	info, err := file.Stat()
	if err != nil {
		return nil, fmt.Errorf("%w: stat %s: %w", ErrIO, path, err)
	}
	if info.IsDir() {
		return nil, fmt.Errorf("%w: %s is a directory", ErrIO, path)
	}

	report, err := d.DecodeReader(file, info.Size())
	if report != nil {
		report.Path = path
	}
	return report, err
}

// DecodeReader runs the decode sequence over r. size is informational only.
func (d *Decoder) DecodeReader(r io.Reader, size int64) (*DecodeReport, error) {
	c := newCursor(r)
	report := &DecodeReport{FileSize: size}
	defer func() { report.Consumed = c.consumed }()

	d.logger.Debug().Int64("size", size).Msg("decode start")

	buf, err := c.read(SegmentHeader, 4)
	if err != nil {
		return report, err
	}
	report.Header.Magic = le32(buf)
	report.MagicRead = true
	if report.Header.Magic != Magic {
		report.Reason = ReasonBadMagic
		d.logger.Debug().Str("magic", fmt.Sprintf("%#x", report.Header.Magic)).Msg("bad magic")
		return report, nil
	}
	report.MagicValid = true

	buf, err = c.read(SegmentHeader, HeaderSize-4)
	if err != nil {
		return report, err
	}
	report.Header.VersionMajor = le32(buf[0:4])
	report.Header.VersionMinor = le32(buf[4:8])
	report.VersionRead = true
	if report.Header.VersionMajor != SupportedMajor {
		report.Reason = ReasonUnsupportedVersion
		d.logger.Debug().
			Uint32("major", report.Header.VersionMajor).
			Uint32("minor", report.Header.VersionMinor).
			Msg("unsupported version")
		return report, nil
	}
	report.VersionSupported = true

	buf, err = c.read(SegmentAudioDescriptor, AudioDescriptorSize)
	if err != nil {
		return report, err
	}
	report.Audio = &AudioBufferDescriptor{
		Size:            le32(buf[0:4]),
		SamplerRate:     le64f(buf[4:12]),
		NumberOfSamples: le32(buf[12:16]),
		Channel:         le32(buf[16:20]),
	}

	buf, err = c.read(SegmentImageSizes, ImageSizesSize)
	if err != nil {
		return report, err
	}
	report.Images = &ImageSizes{
		Spectrogram: le32(buf[0:4]),
		HPCP:        le32(buf[4:8]),
		Detected:    le32(buf[8:12]),
	}

	if err := c.skip(SegmentReserved, ReservedBlockSize); err != nil {
		return report, err
	}

	segments := []struct {
		seg  Segment
		size uint32
	}{
		{SegmentAudio, report.Audio.Size},
		{SegmentSpectrogram, report.Images.Spectrogram},
		{SegmentHPCP, report.Images.HPCP},
		{SegmentDetected, report.Images.Detected},
	}
	for _, s := range segments {
		d.logger.Debug().
			Stringer("segment", s.seg).
			Int64("offset", c.consumed).
			Uint32("size", s.size).
			Msg("skip segment")
		if err := c.skip(s.seg, int64(s.size)); err != nil {
			return report, err
		}
	}

	tail, err := c.rest()
	if err != nil {
		return report, err
	}
	report.TailSize = len(tail)

	doc, err := payload.Extract(tail)
	if err != nil {
		report.PayloadErr = err
		d.logger.Debug().Err(err).Int("tail", len(tail)).Msg("payload not extracted")
		return report, nil
	}
	report.Document = doc
	return report, nil
}
