package mocks

import (
	"os"
	"sync"
	"time"
)

// MockFileInfo implements os.FileInfo
type MockFileInfo struct {
	NameVal    string
	SizeVal    int64
	ModeVal    os.FileMode
	ModTimeVal time.Time
	IsDirVal   bool
}

func (f *MockFileInfo) Name() string       { return f.NameVal }
func (f *MockFileInfo) Size() int64        { return f.SizeVal }
func (f *MockFileInfo) Mode() os.FileMode  { return f.ModeVal }
func (f *MockFileInfo) ModTime() time.Time { return f.ModTimeVal }
func (f *MockFileInfo) IsDir() bool        { return f.IsDirVal }
func (f *MockFileInfo) Sys() any           { return nil }

// MockFileSystem is an in-memory read-only filesystem for preview tests.
type MockFileSystem struct {
	Mu        sync.RWMutex
	Files     map[string][]byte        // path -> content
	FileInfos map[string]*MockFileInfo // path -> metadata
	Errors    map[string]error         // path -> error to return
	OpErrors  map[string]error         // operation -> error to return
	Reads     int                      // successful ReadHead calls
}

// NewMockFileSystem creates a new mock filesystem
func NewMockFileSystem() *MockFileSystem {
	return &MockFileSystem{
		Files:     make(map[string][]byte),
		FileInfos: make(map[string]*MockFileInfo),
		Errors:    make(map[string]error),
		OpErrors:  make(map[string]error),
	}
}

// SetError sets an error to return for a specific path
func (f *MockFileSystem) SetError(path string, err error) {
	f.Mu.Lock()
	defer f.Mu.Unlock()
	f.Errors[path] = err
}

// SetOperationError sets an error to return for a specific operation ("Stat" or "ReadHead").
func (f *MockFileSystem) SetOperationError(operation string, err error) {
	f.Mu.Lock()
	defer f.Mu.Unlock()
	f.OpErrors[operation] = err
}

// CreateFile stores content at path with the given modification time.
func (f *MockFileSystem) CreateFile(path string, content []byte, modTime time.Time) {
	f.Mu.Lock()
	defer f.Mu.Unlock()
	f.Files[path] = content
	f.FileInfos[path] = &MockFileInfo{
		NameVal:    path,
		SizeVal:    int64(len(content)),
		ModeVal:    0o644,
		ModTimeVal: modTime,
	}
}

// CreateDir registers path as a directory.
func (f *MockFileSystem) CreateDir(path string) {
	f.Mu.Lock()
	defer f.Mu.Unlock()
	f.FileInfos[path] = &MockFileInfo{
		NameVal:  path,
		ModeVal:  os.ModeDir | 0o755,
		IsDirVal: true,
	}
}

func (f *MockFileSystem) Stat(path string) (os.FileInfo, error) {
	f.Mu.RLock()
	defer f.Mu.RUnlock()

	if err, ok := f.OpErrors["Stat"]; ok {
		return nil, err
	}
	if err, ok := f.Errors[path]; ok {
		return nil, err
	}
	if info, ok := f.FileInfos[path]; ok {
		return info, nil
	}
	return nil, &os.PathError{Op: "stat", Path: path, Err: os.ErrNotExist}
}

// ReadHead returns at most limit bytes of path; 0 means all of it.
func (f *MockFileSystem) ReadHead(path string, limit int64) ([]byte, error) {
	f.Mu.Lock()
	defer f.Mu.Unlock()

	if err, ok := f.OpErrors["ReadHead"]; ok {
		return nil, err
	}
	if err, ok := f.Errors[path]; ok {
		return nil, err
	}
	content, ok := f.Files[path]
	if !ok {
		return nil, &os.PathError{Op: "open", Path: path, Err: os.ErrNotExist}
	}
	f.Reads++
	if limit > 0 && int64(len(content)) > limit {
		content = content[:limit]
	}
	return append([]byte(nil), content...), nil
}
