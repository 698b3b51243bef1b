package output

import (
	"bufio"
	"context"
	"fmt"
	"html"
	"io"
	"strings"

	"github.com/muesli/termenv"

	"github.com/lumen-language/Lumen-Kit/lexer"
	"github.com/lumen-language/Lumen-Kit/style"
)

// Renderer writes the tokens of a stream over src.
type Renderer interface {
	Render(ctx context.Context, src []byte, s lexer.Stream) error
}

// cancelCheckInterval bounds how many tokens are rendered between context
// checks.
const cancelCheckInterval = 1024

// Terminal renders tokens with ANSI escape sequences.
type Terminal struct {
	w      *bufio.Writer
	styles *Styles
}

var _ Renderer = (*Terminal)(nil)

// NewTerminal returns a Terminal writing to w.
func NewTerminal(w io.Writer, opts ...Option) *Terminal {
	return &Terminal{
		w:      bufio.NewWriter(w),
		styles: NewStyles(w, opts...),
	}
}

// Render writes every token of s, styled by its resolved keys.
func (t *Terminal) Render(ctx context.Context, src []byte, s lexer.Stream) error {
	for i := 0; ; i++ {
		if i%cancelCheckInterval == 0 {
			if err := ctx.Err(); err != nil {
				return err
			}
		}
		tok := s.Token()
		if tok.Type == lexer.EOF {
			break
		}
		if _, err := t.w.WriteString(t.styles.Render(tok.String(src), style.Resolve(tok.Type))); err != nil {
			return fmt.Errorf("failed to write output: %w", err)
		}
		s.Advance()
	}
	if err := t.w.Flush(); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}

// HTML renders tokens as a <pre> block of spans with inline styles. Every
// span also carries its style keys as classes, so a stylesheet can override
// the theme.
type HTML struct {
	w     *bufio.Writer
	theme *style.Theme
	css   map[string]string
}

var _ Renderer = (*HTML)(nil)

// NewHTML returns an HTML renderer writing to w. WithColor is ignored.
func NewHTML(w io.Writer, opts ...Option) *HTML {
	o := newOptions(opts)
	return &HTML{
		w:     bufio.NewWriter(w),
		theme: o.theme,
		css:   make(map[string]string),
	}
}

// Render writes s as a single <pre class="lumen-kit"> element.
func (h *HTML) Render(ctx context.Context, src []byte, s lexer.Stream) error {
	_, _ = h.w.WriteString(`<pre class="lumen-kit"><code>`)
	for i := 0; ; i++ {
		if i%cancelCheckInterval == 0 {
			if err := ctx.Err(); err != nil {
				return err
			}
		}
		tok := s.Token()
		if tok.Type == lexer.EOF {
			break
		}
		h.token(tok.String(src), style.Resolve(tok.Type))
		s.Advance()
	}
	_, _ = h.w.WriteString("</code></pre>\n")
	if err := h.w.Flush(); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}

func (h *HTML) token(text string, keys []style.Key) {
	text = html.EscapeString(text)
	if len(keys) == 0 {
		_, _ = h.w.WriteString(text)
		return
	}

	classes := make([]string, len(keys))
	for i, k := range keys {
		classes[i] = string(k)
	}
	class := strings.Join(classes, " ")

	_, _ = h.w.WriteString(`<span class="`)
	_, _ = h.w.WriteString(class)
	_, _ = h.w.WriteString(`"`)
	if css := h.inlineCSS(class, keys); css != "" {
		_, _ = h.w.WriteString(` style="`)
		_, _ = h.w.WriteString(css)
		_, _ = h.w.WriteString(`"`)
	}
	_, _ = h.w.WriteString(">")
	_, _ = h.w.WriteString(text)
	_, _ = h.w.WriteString("</span>")
}

// inlineCSS returns the CSS for keys, memoized by class.
func (h *HTML) inlineCSS(class string, keys []style.Key) string {
	if css, ok := h.css[class]; ok {
		return css
	}
	css := CSS(h.theme.Attributes(keys))
	h.css[class] = css
	return css
}

// CSS converts attributes to an inline CSS declaration list.
func CSS(attrs style.Attributes) string {
	var decls []string
	if c := cssColor(attrs.Foreground); c != "" {
		decls = append(decls, "color:"+c)
	}
	if c := cssColor(attrs.Background); c != "" {
		decls = append(decls, "background-color:"+c)
	}
	if attrs.Bold {
		decls = append(decls, "font-weight:bold")
	}
	if attrs.Italic {
		decls = append(decls, "font-style:italic")
	}
	if attrs.Underline {
		decls = append(decls, "text-decoration:underline")
	}
	if attrs.Faint {
		decls = append(decls, "opacity:0.6")
	}
	return strings.Join(decls, ";")
}

// cssColor converts a theme color (hex or ANSI palette index) to a CSS hex
// color. Invalid colors yield "".
func cssColor(v string) string {
	if !style.ValidColor(v) {
		return ""
	}
	c := termenv.TrueColor.Color(v)
	if c == nil {
		return ""
	}
	if rgb, ok := c.(termenv.RGBColor); ok {
		return strings.ToUpper(string(rgb))
	}
	return strings.ToUpper(termenv.ConvertToRGB(c).Hex())
}
