package preview

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/Cyclone1070/lookout/internal/tool/search"
)

// Opener launches an editor at a match location.
type Opener struct {
	editor   string
	headless bool
}

// NewOpener uses editor, falling back to $VISUAL, $EDITOR and finally vi.
func NewOpener(editor string) *Opener {
	for _, candidate := range []string{editor, os.Getenv("VISUAL"), os.Getenv("EDITOR")} {
		if strings.TrimSpace(candidate) != "" {
			return &Opener{editor: candidate}
		}
	}
	return &Opener{editor: "vi"}
}

// Headless returns a copy that keeps the editor off stdin and stdout, which belong
// to the serve protocol. Editor output goes to stderr.
func (o *Opener) Headless() *Opener {
	return &Opener{editor: o.editor, headless: true}
}

// EditorCommand builds the argv that opens path at m's location.
// m.Line is 1-based and m.Col 0-based; editors expect a 1-based column.
func EditorCommand(editor, path string, m search.Match) ([]string, error) {
	argv := strings.Fields(editor)
	if len(argv) == 0 {
		return nil, ErrNoEditor
	}

	switch strings.TrimSuffix(filepath.Base(argv[0]), ".exe") {
	case "code", "code-insiders", "codium", "cursor":
		if m.Line == 0 {
			return append(argv, path), nil
		}
		return append(argv, "-g", fmt.Sprintf("%s:%d:%d", path, m.Line, m.Col+1)), nil
	case "hx", "helix", "subl", "zed":
		if m.Line == 0 {
			return append(argv, path), nil
		}
		return append(argv, fmt.Sprintf("%s:%d:%d", path, m.Line, m.Col+1)), nil
	default:
		if m.Line == 0 {
			return append(argv, path), nil
		}
		return append(argv, fmt.Sprintf("+%d", m.Line), path), nil
	}
}

// Command returns an unstarted editor process for path attached to the current terminal.
func (o *Opener) Command(ctx context.Context, path string, m search.Match) (*exec.Cmd, error) {
	argv, err := EditorCommand(o.editor, path, m)
	if err != nil {
		return nil, err
	}
	cmd := exec.CommandContext(ctx, argv[0], argv[1:]...)
	cmd.Stderr = os.Stderr
	if o.headless {
		cmd.Stdout = os.Stderr
		return cmd, nil
	}
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	return cmd, nil
}

// Open runs the editor and waits for it to exit.
func (o *Opener) Open(ctx context.Context, path string, m search.Match) error {
	cmd, err := o.Command(ctx, path, m)
	if err != nil {
		return &OpenError{Path: path, Cause: err}
	}
	if err := cmd.Run(); err != nil {
		return &OpenError{Path: path, Cause: err}
	}
	return nil
}
