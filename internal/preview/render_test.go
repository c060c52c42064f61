package preview

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRenderer(t *testing.T) {
	t.Run("NoTTYPassesThrough", func(t *testing.T) {
		r, err := NewRenderer(ThemeNoTTY, 0)
		require.NoError(t, err)

		out, err := r.Render("main.go", "package main\n")
		require.NoError(t, err)
		assert.Equal(t, "package main\n", out)
	})

	t.Run("HighlightsCode", func(t *testing.T) {
		r, err := NewRenderer(ThemeDark, 80)
		require.NoError(t, err)

		out, err := r.Render("/src/main.go", "package main\n\nfunc main() {}\n")
		require.NoError(t, err)
		assert.Contains(t, out, "\x1b[")
		assert.Contains(t, out, "package")
	})

	t.Run("RendersMarkdown", func(t *testing.T) {
		r, err := NewRenderer(ThemeLight, 40)
		require.NoError(t, err)

		out, err := r.Render("README.md", "# Title\n\nSome *text*.\n")
		require.NoError(t, err)
		assert.NotEmpty(t, out)
		assert.NotEqual(t, "# Title\n\nSome *text*.\n", out)
	})

	t.Run("UnknownLanguagePassesThrough", func(t *testing.T) {
		r, err := NewRenderer(ThemeDark, 80)
		require.NoError(t, err)

		out, err := r.Render("notes.unknownext", "")
		require.NoError(t, err)
		assert.Equal(t, "", out)
	})
}

func TestIsMarkdown(t *testing.T) {
	assert.True(t, isMarkdown("docs/README.md"))
	assert.True(t, isMarkdown("CHANGES.Markdown"))
	assert.False(t, isMarkdown("main.go"))
}
