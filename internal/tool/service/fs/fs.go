package fs

import (
	"fmt"
	"io"
	"os"
)

// OSFileSystem implements read-only filesystem operations using the local OS filesystem primitives.
type OSFileSystem struct{}

// NewOSFileSystem creates a new OSFileSystem.
func NewOSFileSystem() *OSFileSystem {
	return &OSFileSystem{}
}

// Stat returns file info for a path (follows symlinks).
func (OSFileSystem) Stat(path string) (os.FileInfo, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, &ReadError{Path: path, Cause: err}
	}
	return info, nil
}

// ReadHead reads at most limit bytes from the start of a file.
// A limit of 0 reads the entire file.
func (OSFileSystem) ReadHead(path string, limit int64) ([]byte, error) {
	if limit < 0 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidLimit, limit)
	}

	file, err := os.Open(path)
	if err != nil {
		return nil, &ReadError{Path: path, Cause: err}
	}
	defer file.Close()

	var r io.Reader = file
	if limit > 0 {
		r = io.LimitReader(file, limit)
	}
	content, err := io.ReadAll(r)
	if err != nil {
		return nil, &ReadError{Path: path, Cause: err}
	}
	return content, nil
}
