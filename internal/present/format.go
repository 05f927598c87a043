package present

import (
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/term"
)

// Format is an output format.
type Format string

// Output formats.
const (
	FormatAuto     Format = "auto"
	FormatText     Format = "text"
	FormatMarkdown Format = "markdown"
	FormatCSV      Format = "csv"
	FormatHTML     Format = "html"
	FormatJSON     Format = "json"
	FormatYAML     Format = "yaml"
)

// Formats lists the accepted format names.
func Formats() []string {
	return []string{
		string(FormatAuto), string(FormatText), string(FormatMarkdown),
		string(FormatCSV), string(FormatHTML), string(FormatJSON), string(FormatYAML),
	}
}

// ParseFormat accepts a format name or a common alias.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "auto":
		return FormatAuto, nil
	case "text", "table":
		return FormatText, nil
	case "markdown", "md":
		return FormatMarkdown, nil
	case "csv":
		return FormatCSV, nil
	case "html":
		return FormatHTML, nil
	case "json":
		return FormatJSON, nil
	case "yaml", "yml":
		return FormatYAML, nil
	default:
		return "", fmt.Errorf("unknown output format %q (valid: %s)", s, strings.Join(Formats(), ", "))
	}
}

// Resolve picks a concrete format for auto: text on a terminal, markdown
// otherwise.
func Resolve(f Format, w io.Writer) Format {
	if f != FormatAuto && f != "" {
		return f
	}
	if file, ok := w.(*os.File); ok && term.IsTerminal(int(file.Fd())) {
		return FormatText
	}
	return FormatMarkdown
}
