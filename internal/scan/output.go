package scan

import (
	"bytes"
	"context"
	"fmt"
	"io"

	"github.com/fatih/color"
	"github.com/viant/afs"
	"gopkg.in/yaml.v3"
)

// Format of a rendered summary.
type Format string

const (
	FormatText Format = "text"
	FormatYAML Format = "yaml"
)

// ParseFormat checks the format name.
func ParseFormat(s string) (Format, error) {
	switch f := Format(s); f {
	case FormatText, FormatYAML:
		return f, nil
	default:
		return "", fmt.Errorf("unknown output format %q", s)
	}
}

// Render writes the summary in the given format. colored only affects text.
func Render(w io.Writer, s *Summary, format Format, colored bool) error {
	switch format {
	case FormatYAML:
		return WriteYAML(w, s)
	case FormatText, "":
		return WriteText(w, s, colored)
	default:
		return fmt.Errorf("unknown output format %q", format)
	}
}

// WriteYAML writes the summary as a YAML document.
func WriteYAML(w io.Writer, s *Summary) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(s); err != nil {
		return fmt.Errorf("encode summary: %w", err)
	}

	return enc.Close()
}

type palette struct {
	header *color.Color
	ok     *color.Color
	bad    *color.Color
	code   *color.Color
	faint  *color.Color
}

func newPalette(colored bool) palette {
	p := palette{
		header: color.New(color.Bold),
		ok:     color.New(color.FgGreen, color.Bold),
		bad:    color.New(color.FgRed, color.Bold),
		code:   color.New(color.FgYellow, color.Bold),
		faint:  color.New(color.Faint),
	}
	for _, c := range []*color.Color{p.header, p.ok, p.bad, p.code, p.faint} {
		if colored {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
	}

	return p
}

// WriteText writes a human readable summary.
func WriteText(w io.Writer, s *Summary, colored bool) error {
	p := newPalette(colored)
	var buf bytes.Buffer

	if s.Module != "" {
		p.header.Fprintf(&buf, "module %s\n", s.Module)
	}
	fmt.Fprintf(&buf, "%d packages checked, fingerprint %s\n", s.Packages, p.faint.Sprint(s.Fingerprint))

	if s.Findings() == 0 {
		p.ok.Fprintln(&buf, "no problems found")
		_, err := w.Write(buf.Bytes())
		return err
	}

	if len(s.Missing) > 0 {
		buf.WriteByte('\n')
		p.bad.Fprintf(&buf, "missing event id: %d\n", len(s.Missing))
		for _, l := range s.Missing {
			fmt.Fprintf(&buf, "  %s: %s\n", l, l.Message)
		}
	}

	if len(s.Duplicates) > 0 {
		buf.WriteByte('\n')
		p.bad.Fprintf(&buf, "duplicate event ids: %d\n", len(s.Duplicates))
		for _, dup := range s.Duplicates {
			fmt.Fprintf(&buf, "  %s %s\n", p.code.Sprint(dup.Code), p.faint.Sprint(dup.Package))
			for _, l := range dup.Locations {
				fmt.Fprintf(&buf, "    %s\n", l)
			}
		}
	}

	if len(s.Directives) > 0 {
		buf.WriteByte('\n')
		p.bad.Fprintf(&buf, "malformed directives: %d\n", len(s.Directives))
		for _, l := range s.Directives {
			fmt.Fprintf(&buf, "  %s: %s\n", l, l.Message)
		}
	}

	if _, err := w.Write(buf.Bytes()); err != nil {
		return fmt.Errorf("write summary: %w", err)
	}

	return nil
}

// Save renders the summary into a local path or an afs URL.
func Save(ctx context.Context, location string, s *Summary, format Format) error {
	var buf bytes.Buffer
	if err := Render(&buf, s, format, false); err != nil {
		return err
	}

	fs := afs.New()
	if err := fs.Upload(ctx, location, 0o644, &buf); err != nil {
		return fmt.Errorf("upload summary to %s: %w", location, err)
	}

	return nil
}
