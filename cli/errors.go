package cli

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/lumen-language/Lumen-Kit/errors"
)

var (
	errCaretStyle   = lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "#FF5F87", Dark: "#FF5F87"})
	errContextStyle = lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "#808080", Dark: "#808080"})
)

// ErrorRenderer renders diagnostics with terminal styling and source
// context. The layout matches errors.TextFormatter.
type ErrorRenderer struct {
	text *errors.TextFormatter
}

// NewErrorRenderer creates a renderer with source content for context.
func NewErrorRenderer(source []byte) *ErrorRenderer {
	return &ErrorRenderer{text: errors.NewTextFormatter(errors.WithSource(source))}
}

// Render formats a single error. The message line is styled as an error,
// source lines are dimmed and the caret line is highlighted.
func (r *ErrorRenderer) Render(err error) string {
	plain := r.text.Format(err)
	message, context, found := strings.Cut(plain, "\n\n")
	if !found {
		return errorStyle.Render(plain)
	}

	lines := strings.Split(strings.TrimSuffix(context, "\n"), "\n")
	var buf strings.Builder
	buf.WriteString(errorStyle.Render(message))
	buf.WriteString("\n\n")
	for i, line := range lines {
		indent, text := line[:min(3, len(line))], line[min(3, len(line)):]
		buf.WriteString(indent)
		if i == len(lines)-1 {
			pad := strings.TrimSuffix(text, "^")
			buf.WriteString(pad)
			buf.WriteString(errCaretStyle.Render("^"))
		} else {
			buf.WriteString(errContextStyle.Render(text))
		}
		buf.WriteByte('\n')
	}
	return buf.String()
}

// RenderAll formats errors separated by blank lines.
func (r *ErrorRenderer) RenderAll(errs []error) string {
	var buf strings.Builder
	for i, err := range errs {
		if i > 0 {
			buf.WriteString("\n\n")
		}
		buf.WriteString(r.Render(err))
	}
	return buf.String()
}
