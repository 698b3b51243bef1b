package errors

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/mattn/go-runewidth"
)

// positioned is implemented by errors that know where they occurred.
type positioned interface {
	error
	GetPosition() Position
}

// Formatter formats errors for output in different formats.
type Formatter interface {
	// Format formats a single error.
	Format(err error) string

	// FormatAll formats multiple errors.
	FormatAll(errs []error) string
}

// TextFormatter formats errors for terminals: the message, then the
// offending source line with a caret under the error column.
type TextFormatter struct {
	source       []byte
	contextLines int
}

// TextFormatterOption configures a TextFormatter.
type TextFormatterOption func(*TextFormatter)

// WithSource sets the source shown around positioned errors.
func WithSource(source []byte) TextFormatterOption {
	return func(tf *TextFormatter) {
		tf.source = source
	}
}

// WithContextLines sets how many lines before the error line are shown.
// The default is 1.
func WithContextLines(n int) TextFormatterOption {
	return func(tf *TextFormatter) {
		tf.contextLines = max(n, 0)
	}
}

// NewTextFormatter creates a text formatter.
func NewTextFormatter(opts ...TextFormatterOption) *TextFormatter {
	tf := &TextFormatter{contextLines: 1}
	for _, opt := range opts {
		opt(tf)
	}
	return tf
}

// Format formats a single error.
func (tf *TextFormatter) Format(err error) string {
	e, ok := err.(positioned)
	if !ok || tf.source == nil {
		return err.Error()
	}
	return tf.formatWithSourceContext(e.GetPosition(), e.Error())
}

// FormatAll formats errors separated by blank lines.
func (tf *TextFormatter) FormatAll(errs []error) string {
	var buf bytes.Buffer
	for i, err := range errs {
		if i > 0 {
			buf.WriteString("\n\n")
		}
		buf.WriteString(tf.Format(err))
	}
	return buf.String()
}

func (tf *TextFormatter) formatWithSourceContext(pos Position, message string) string {
	lines := strings.Split(string(tf.source), "\n")
	if pos.Line < 1 || pos.Line > len(lines) {
		return message
	}

	var buf bytes.Buffer
	buf.WriteString(message)
	buf.WriteString("\n\n")

	for i := max(pos.Line-1-tf.contextLines, 0); i < pos.Line; i++ {
		buf.WriteString("   ")
		buf.WriteString(strings.TrimRight(lines[i], "\r"))
		buf.WriteByte('\n')
	}
	buf.WriteString("   ")
	buf.WriteString(caretPadding(lines[pos.Line-1], pos.Column))
	buf.WriteString("^\n")

	return buf.String()
}

// caretPadding returns the indentation that places a caret under the given
// rune column of line. Tabs are kept so the caret lines up however the
// terminal expands them; wide runes take two cells.
func caretPadding(line string, column int) string {
	var pad strings.Builder
	for i, r := range []rune(line) {
		if i >= column-1 {
			break
		}
		if r == '\t' {
			pad.WriteByte('\t')
			continue
		}
		pad.WriteString(strings.Repeat(" ", runewidth.RuneWidth(r)))
	}
	return pad.String()
}

// JSONFormatter formats errors as JSON.
type JSONFormatter struct{}

// NewJSONFormatter creates a JSON formatter.
func NewJSONFormatter() *JSONFormatter {
	return &JSONFormatter{}
}

// ErrorJSON is the JSON form of an error.
type ErrorJSON struct {
	Type     string            `json:"type"`
	Message  string            `json:"message"`
	Position *PositionJSON     `json:"position,omitempty"`
	Details  map[string]string `json:"details,omitempty"`
}

// PositionJSON is the JSON form of a Position.
type PositionJSON struct {
	Filename string `json:"filename,omitempty"`
	Offset   int    `json:"offset"`
	Line     int    `json:"line"`
	Column   int    `json:"column"`
}

// Format formats a single error as a JSON object.
func (jf *JSONFormatter) Format(err error) string {
	data, _ := json.Marshal(jf.toJSON(err))
	return string(data)
}

// FormatAll formats errors as an indented JSON array.
func (jf *JSONFormatter) FormatAll(errs []error) string {
	data, _ := json.MarshalIndent(jf.FormatAllToSlice(errs), "", "  ")
	return string(data)
}

// FormatAllToSlice returns errors as ErrorJSON values.
func (jf *JSONFormatter) FormatAllToSlice(errs []error) []ErrorJSON {
	result := make([]ErrorJSON, 0, len(errs))
	for _, err := range errs {
		result = append(result, jf.toJSON(err))
	}
	return result
}

func (jf *JSONFormatter) toJSON(err error) ErrorJSON {
	errJSON := ErrorJSON{
		Type:    fmt.Sprintf("%T", err),
		Message: err.Error(),
	}

	if e, ok := err.(positioned); ok {
		pos := e.GetPosition()
		errJSON.Position = &PositionJSON{
			Filename: pos.Filename,
			Offset:   pos.Offset,
			Line:     pos.Line,
			Column:   pos.Column,
		}
	}

	if e, ok := err.(*UnrecognizedError); ok {
		errJSON.Details = map[string]string{"text": e.Text}
	}

	return errJSON
}
