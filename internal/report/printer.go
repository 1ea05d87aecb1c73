package report

import (
	"fmt"
	"io"
	"strconv"

	"github.com/fatih/color"

	"github.com/danmuck/gbowinfo/internal/gbow"
)

type Options struct {
	Color  bool
	Indent string
}

// Printer writes decode reports as console text.
type Printer struct {
	w      io.Writer
	indent string
	good   *color.Color
	warn   *color.Color
	bad    *color.Color
	title  *color.Color
}

func NewPrinter(w io.Writer, opts Options) *Printer {
	p := &Printer{
		w:      w,
		indent: opts.Indent,
		good:   color.New(color.FgGreen),
		warn:   color.New(color.FgYellow),
		bad:    color.New(color.FgRed, color.Bold),
		title:  color.New(color.Bold),
	}
	if p.indent == "" {
		p.indent = "\t"
	}
	for _, c := range []*color.Color{p.good, p.warn, p.bad, p.title} {
		if opts.Color {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
	}
	return p
}

// Print writes every field the report holds, stopping at the first finding
// the same way the decode did.
func (p *Printer) Print(r *gbow.DecodeReport) {
	if r.Path != "" {
		p.title.Fprintf(p.w, "File: %s\n", r.Path)
	}
	fmt.Fprintf(p.w, "File size: %d\n", r.FileSize)

	if !r.MagicRead {
		return
	}
	if !r.MagicValid {
		p.bad.Fprintf(p.w, "Magic is wrong: %#x\n", r.Header.Magic)
		return
	}
	p.good.Fprintln(p.w, "Valid magic value")
	if !r.VersionRead {
		return
	}
	fmt.Fprintf(p.w, "File version %d.%d\n", r.Header.VersionMajor, r.Header.VersionMinor)

	if !r.VersionSupported {
		p.warn.Fprintln(p.w, "File version not recognized")
		return
	}

	if a := r.Audio; a != nil {
		fmt.Fprintln(p.w, "Audio Buffer info:")
		fmt.Fprintf(p.w, "\tsize: %d\n", a.Size)
		fmt.Fprintf(p.w, "\tsampler rate: %s\n", strconv.FormatFloat(a.SamplerRate, 'f', -1, 64))
		fmt.Fprintf(p.w, "\tnumber of samples: %d\n", a.NumberOfSamples)
		fmt.Fprintf(p.w, "\tchannel: %d\n", a.Channel)
	}
	if im := r.Images; im != nil {
		fmt.Fprintln(p.w, "Spectrogram image info:")
		fmt.Fprintf(p.w, "\tSpectrogram size: %d\n", im.Spectrogram)
		fmt.Fprintf(p.w, "\tHPCP size: %d\n", im.HPCP)
		fmt.Fprintf(p.w, "\tDetected size: %d\n", im.Detected)
	}

	if r.Document == nil && r.PayloadErr == nil {
		return
	}
	fmt.Fprintf(p.w, "Segments end at byte %d, payload %d bytes\n", r.Consumed, r.TailSize)
	if r.PayloadErr != nil {
		p.warn.Fprintf(p.w, "Payload error: %v\n", r.PayloadErr)
		return
	}

	root := r.Document.Root
	fmt.Fprintf(p.w, "Document root: <%s> (%d child elements)\n", root.Name, len(root.Elements()))
	fmt.Fprint(p.w, r.Document.Pretty(p.indent))
}

// PrintError writes a hard failure for path.
func (p *Printer) PrintError(path string, err error) {
	p.bad.Fprintf(p.w, "Error: %s: %v\n", path, err)
}
