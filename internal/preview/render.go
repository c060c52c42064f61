package preview

import (
	"bytes"
	"path/filepath"
	"strings"
	"sync"

	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/alecthomas/chroma/v2/quick"
	"github.com/charmbracelet/glamour"
)

// Themes understood by Renderer.
const (
	ThemeDark  = "dark"
	ThemeLight = "light"
	ThemeNoTTY = "notty"
)

// Renderer turns file contents into terminal output: markdown through glamour,
// everything else through chroma. The notty theme returns text unchanged.
type Renderer struct {
	theme string

	mu sync.Mutex
	md *glamour.TermRenderer
}

// NewRenderer creates a renderer that wraps markdown at width columns.
func NewRenderer(theme string, width int) (*Renderer, error) {
	r := &Renderer{theme: theme}
	if theme == ThemeNoTTY {
		return r, nil
	}
	if width <= 0 {
		width = 80
	}
	md, err := glamour.NewTermRenderer(
		glamour.WithStandardStyle(theme),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return nil, err
	}
	r.md = md
	return r, nil
}

// Theme returns the theme name the renderer was built with.
func (r *Renderer) Theme() string {
	return r.theme
}

// Render highlights code according to the file name in path.
func (r *Renderer) Render(path, code string) (string, error) {
	if r.md == nil {
		return code, nil
	}
	if isMarkdown(path) {
		r.mu.Lock()
		defer r.mu.Unlock()
		return r.md.Render(code)
	}

	lexer := lexers.Match(filepath.Base(path))
	if lexer == nil {
		lexer = lexers.Analyse(code)
	}
	if lexer == nil {
		return code, nil
	}

	var buf bytes.Buffer
	if err := quick.Highlight(&buf, code, lexer.Config().Name, "terminal256", r.codeStyle()); err != nil {
		return code, err
	}
	return buf.String(), nil
}

func (r *Renderer) codeStyle() string {
	if r.theme == ThemeLight {
		return "github"
	}
	return "monokai"
}

func isMarkdown(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".md", ".markdown", ".mdown", ".mkd":
		return true
	}
	return false
}
