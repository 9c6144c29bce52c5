// Package output renders command results as JSON, jq-filtered JSON or
// colored text.
package output

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/fatih/color"
	"github.com/itchyny/gojq"
)

// Formats accepted by --output.
const (
	FormatText = "text"
	FormatJSON = "json"
)

// Printer writes results to Out.
type Printer struct {
	Out    io.Writer
	Format string

	// Query is a jq expression applied to the JSON form. Setting it
	// implies JSON output.
	Query string

	// NoColor disables ANSI colors in text output.
	NoColor bool
}

// Validate checks the format and compiles the query.
func (p *Printer) Validate() error {
	switch p.Format {
	case "", FormatText, FormatJSON:
	default:
		return fmt.Errorf("unknown output format %q (want %s or %s)", p.Format, FormatText, FormatJSON)
	}

	if p.Query != "" {
		if _, err := gojq.Parse(p.Query); err != nil {
			return fmt.Errorf("invalid --jq expression: %w", err)
		}
	}

	return nil
}

// Print writes v. Text output calls text when set; without it v is printed
// as JSON regardless of the format.
func (p *Printer) Print(v any, text func(*Text)) error {
	if p.Query != "" {
		return p.printQuery(v)
	}

	if p.Format == FormatJSON || text == nil {
		return p.printJSON(v)
	}

	t := newText(p.Out, p.NoColor)
	text(t)

	return t.flush()
}

func (p *Printer) printJSON(v any) error {
	enc := json.NewEncoder(p.Out)
	enc.SetIndent("", "  ")

	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("encode output: %w", err)
	}

	return nil
}

func (p *Printer) printQuery(v any) error {
	query, err := gojq.Parse(p.Query)
	if err != nil {
		return fmt.Errorf("invalid --jq expression: %w", err)
	}

	// gojq only walks plain maps and slices.
	raw, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encode output: %w", err)
	}

	var data any
	if err := json.Unmarshal(raw, &data); err != nil {
		return fmt.Errorf("decode output: %w", err)
	}

	iter := query.Run(data)
	for {
		result, ok := iter.Next()
		if !ok {
			return nil
		}

		if err, ok := result.(error); ok {
			var halt *gojq.HaltError
			if errors.As(err, &halt) && halt.Value() == nil {
				return nil
			}

			return fmt.Errorf("jq: %w", err)
		}

		if s, ok := result.(string); ok {
			if _, err := fmt.Fprintln(p.Out, s); err != nil {
				return err
			}

			continue
		}

		if err := p.printJSON(result); err != nil {
			return err
		}
	}
}

// Text is a line-oriented writer with colored labels. Consecutive rows
// are aligned into columns on flush.
type Text struct {
	w       *tabwriter.Writer
	label   *color.Color
	heading *color.Color
	good    *color.Color
	bad     *color.Color
	dim     *color.Color
	err     error
}

func newText(w io.Writer, noColor bool) *Text {
	t := &Text{
		w:       tabwriter.NewWriter(w, 0, 4, 2, ' ', 0),
		label:   color.New(color.FgCyan),
		heading: color.New(color.FgHiWhite, color.Bold),
		good:    color.New(color.FgGreen, color.Bold),
		bad:     color.New(color.FgRed, color.Bold),
		dim:     color.New(color.FgHiBlack),
	}

	// Otherwise color follows the terminal detection in color.NoColor.
	if noColor {
		for _, c := range []*color.Color{t.label, t.heading, t.good, t.bad, t.dim} {
			c.DisableColor()
		}
	}

	return t
}

func (t *Text) printf(c *color.Color, format string, args ...any) {
	if t.err != nil {
		return
	}

	_, t.err = c.Fprintf(t.w, format, args...)
}

func (t *Text) plain(format string, args ...any) {
	if t.err != nil {
		return
	}

	_, t.err = fmt.Fprintf(t.w, format, args...)
}

func (t *Text) flush() error {
	if err := t.w.Flush(); err != nil && t.err == nil {
		t.err = err
	}

	return t.err
}

// Heading writes a bold line.
func (t *Text) Heading(format string, args ...any) {
	t.printf(t.heading, format, args...)
	t.plain("\n")
}

// Field writes "label: value". Empty values are skipped.
func (t *Text) Field(label, value string) {
	if value == "" {
		return
	}

	t.printf(t.label, "%s:", label)
	t.plain(" %s\n", value)
}

// List writes "label: a, b, c". Empty lists are skipped.
func (t *Text) List(label string, values []string) {
	if len(values) == 0 {
		return
	}

	t.Field(label, strings.Join(values, ", "))
}

// Verdict writes label followed by a green yes or a red no.
func (t *Text) Verdict(label string, ok bool) {
	t.printf(t.label, "%s:", label)
	t.plain(" ")

	if ok {
		t.printf(t.good, "yes")
	} else {
		t.printf(t.bad, "no")
	}

	t.plain("\n")
}

// Row writes a key in the label color followed by text. The texts of
// consecutive rows share a column.
func (t *Text) Row(key, text string) {
	t.printf(t.label, "%s", key)
	t.plain("\t%s\n", text)
}

// Note writes a dimmed line.
func (t *Text) Note(format string, args ...any) {
	t.printf(t.dim, format, args...)
	t.plain("\n")
}

// Blank writes an empty line.
func (t *Text) Blank() {
	t.plain("\n")
}
