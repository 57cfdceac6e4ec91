package report

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"

	"golang.org/x/term"
)

// Format selects a renderer.
type Format string

// Supported formats. FormatTable is styled on a terminal and plain otherwise.
const (
	FormatTable    Format = "table"
	FormatPlain    Format = "plain"
	FormatJSON     Format = "json"
	FormatNDJSON   Format = "ndjson"
	FormatMarkdown Format = "markdown"
)

// ErrUnknownFormat is returned by ParseFormat and Render.
var ErrUnknownFormat = errors.New("unknown output format")

// Layout widths.
const (
	defaultWidth        = 72
	minWidth            = 40
	sideBySideMinWidth  = 64
	layoutWidthPercent  = 0.9
	maxWidth            = 100
	boxPaddingWidth     = 4
	progressLabelMargin = 2
)

// ParseFormat validates a format name.
func ParseFormat(s string) (Format, error) {
	switch f := Format(s); f {
	case FormatTable, FormatPlain, FormatJSON, FormatNDJSON, FormatMarkdown:
		return f, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownFormat, s)
	}
}

// RenderOptions controls Render.
type RenderOptions struct {
	Format Format
	// Width in columns. 0 detects it from the writer's terminal.
	Width int
	// ForceStyle renders styled output even when w is not a terminal.
	ForceStyle bool
}

// Render writes r to w in the requested format.
func Render(w io.Writer, r Report, opts RenderOptions) error {
	styled := opts.ForceStyle || isWriterTerminal(w)
	width := opts.Width
	if width <= 0 {
		width = calculateWidth(getTerminalWidth(w))
	}

	switch opts.Format {
	case FormatTable, "":
		if styled {
			return RenderStyled(w, r, width)
		}
		return RenderPlain(w, r)
	case FormatPlain:
		return RenderPlain(w, r)
	case FormatJSON:
		return RenderJSON(w, r)
	case FormatNDJSON:
		return RenderNDJSON(w, r)
	case FormatMarkdown:
		if styled {
			return RenderMarkdownStyled(w, r, width)
		}
		_, err := io.WriteString(w, RenderMarkdown(r))
		return err
	default:
		return fmt.Errorf("%w: %q", ErrUnknownFormat, opts.Format)
	}
}

// RenderJSON writes the whole report as indented JSON.
func RenderJSON(w io.Writer, r Report) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(r); err != nil {
		return fmt.Errorf("encoding JSON: %w", err)
	}
	return nil
}

// RenderNDJSON writes each comparison row as a separate JSON line with no
// wrapper or summary.
func RenderNDJSON(w io.Writer, r Report) error {
	for _, row := range r.Comparison.Rows {
		data, err := json.Marshal(row)
		if err != nil {
			return fmt.Errorf("marshaling row: %w", err)
		}
		if _, err = fmt.Fprintf(w, "%s\n", data); err != nil {
			return fmt.Errorf("writing NDJSON line: %w", err)
		}
	}
	return nil
}

// isWriterTerminal reports whether w is an *os.File attached to a terminal.
func isWriterTerminal(w io.Writer) bool {
	if f, ok := w.(*os.File); ok {
		return term.IsTerminal(int(f.Fd()))
	}
	return false
}

// getTerminalWidth returns the width of w's terminal, or 0 if unknown.
func getTerminalWidth(w io.Writer) int {
	if f, ok := w.(*os.File); ok {
		width, _, err := term.GetSize(int(f.Fd()))
		if err == nil && width > 0 {
			return width
		}
	}
	return 0
}

// calculateWidth uses ~90% of the terminal, clamped to [minWidth, maxWidth].
func calculateWidth(termWidth int) int {
	if termWidth <= 0 {
		return defaultWidth
	}
	width := int(float64(termWidth) * layoutWidthPercent)
	width = min(width, maxWidth)
	width = max(width, minWidth)
	return width
}
