package path

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Resolver turns match paths into absolute and display paths.
// Content matches are relative to the root; global filename matches are already absolute
// and may live anywhere, so there is no boundary check.
type Resolver struct {
	root string
}

// NewResolver creates a resolver for paths reported relative to root.
func NewResolver(root string) *Resolver {
	return &Resolver{
		root: root,
	}
}

// CanonicaliseRoot canonicalises a search root by making it absolute and resolving symlinks.
// Returns an error if the path doesn't exist or isn't a directory.
func CanonicaliseRoot(root string) (string, error) {
	absRoot, err := filepath.Abs(root)
	if err != nil {
		return "", &RootError{Root: root, Cause: err}
	}

	resolved, err := filepath.EvalSymlinks(absRoot)
	if err != nil {
		return "", &RootError{Root: absRoot, Cause: err}
	}

	info, err := os.Stat(resolved)
	if err != nil {
		return "", &RootError{Root: resolved, Cause: err}
	}
	if !info.IsDir() {
		return "", &RootError{Root: resolved, Cause: fmt.Errorf("%w: %s", ErrNotADirectory, resolved)}
	}
	return resolved, nil
}

// Abs resolves path against the root. Absolute paths are only cleaned.
func (r *Resolver) Abs(path string) (string, error) {
	if path == "" {
		return "", ErrEmptyPath
	}
	if filepath.IsAbs(path) {
		return filepath.Clean(path), nil
	}
	if r.root == "" {
		return "", ErrRootNotSet
	}
	return filepath.Clean(filepath.Join(r.root, path)), nil
}

// Display returns path relative to the root when it lies inside it, and the absolute path otherwise.
func (r *Resolver) Display(path string) (string, error) {
	abs, err := r.Abs(path)
	if err != nil {
		return "", err
	}
	if r.root == "" {
		return abs, nil
	}
	if abs == r.root {
		return ".", nil
	}
	if !strings.HasPrefix(abs, r.root+string(filepath.Separator)) {
		return abs, nil
	}

	rel, err := filepath.Rel(r.root, abs)
	if err != nil {
		return abs, nil
	}
	return filepath.ToSlash(rel), nil
}
