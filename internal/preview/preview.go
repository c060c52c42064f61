package preview

import (
	"errors"
	"fmt"
	"log/slog"
	"os"

	pathsvc "github.com/Cyclone1070/lookout/internal/tool/service/path"
	lru "github.com/hashicorp/golang-lru/v2"
)

// Placeholder texts shown instead of file contents.
const (
	PlaceholderMissing   = "File not found"
	PlaceholderDirectory = "Directory"
	PlaceholderBinary    = "Binary file"
	PlaceholderTooLarge  = "File too large to preview"
	PlaceholderError     = "Preview unavailable"
)

// Preview is the displayable content of one file.
// When Placeholder is set, Code and Rendered are empty.
type Preview struct {
	Path        string
	Code        string
	Rendered    string
	Theme       string
	Placeholder string
}

// Options configures a Service. Zero values select defaults.
type Options struct {
	MaxFileSize      int64
	CacheEntries     int
	BinarySampleSize int
	Logger           *slog.Logger
}

type fileSystem interface {
	Stat(path string) (os.FileInfo, error)
	ReadHead(path string, limit int64) ([]byte, error)
}

type cacheKey struct {
	path    string
	modTime int64
	size    int64
}

// Service reads and renders previews. It is safe for concurrent use.
type Service struct {
	fs       fileSystem
	resolver *pathsvc.Resolver
	renderer *Renderer
	cache    *lru.Cache[cacheKey, Preview]
	opts     Options
	logger   *slog.Logger
}

// NewService creates a preview service resolving relative paths with resolver.
func NewService(fsys fileSystem, resolver *pathsvc.Resolver, renderer *Renderer, opts Options) (*Service, error) {
	if opts.MaxFileSize <= 0 {
		opts.MaxFileSize = 10 * 1024 * 1024
	}
	if opts.CacheEntries <= 0 {
		opts.CacheEntries = 64
	}
	if opts.BinarySampleSize <= 0 {
		opts.BinarySampleSize = DefaultBinarySampleSize
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	cache, err := lru.New[cacheKey, Preview](opts.CacheEntries)
	if err != nil {
		return nil, err
	}
	return &Service{
		fs:       fsys,
		resolver: resolver,
		renderer: renderer,
		cache:    cache,
		opts:     opts,
		logger:   logger,
	}, nil
}

// Resolve returns the absolute path of a match path.
func (s *Service) Resolve(file string) (string, error) {
	return s.resolver.Abs(file)
}

// Read returns the preview of file. Problems become placeholders, never errors.
func (s *Service) Read(file string) Preview {
	abs, err := s.resolver.Abs(file)
	if err != nil {
		return Preview{Path: file, Placeholder: PlaceholderError}
	}
	p := Preview{Path: abs, Theme: s.renderer.Theme()}

	info, err := s.fs.Stat(abs)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			p.Placeholder = PlaceholderMissing
		} else {
			s.logger.Debug("preview stat failed", "path", abs, "error", err)
			p.Placeholder = PlaceholderError
		}
		return p
	}
	if info.IsDir() {
		p.Placeholder = PlaceholderDirectory
		return p
	}
	if info.Size() > s.opts.MaxFileSize {
		p.Placeholder = fmt.Sprintf("%s (%d bytes)", PlaceholderTooLarge, info.Size())
		return p
	}

	key := cacheKey{path: abs, modTime: info.ModTime().UnixNano(), size: info.Size()}
	if cached, ok := s.cache.Get(key); ok {
		return cached
	}

	content, err := s.fs.ReadHead(abs, s.opts.MaxFileSize)
	if err != nil {
		s.logger.Debug("preview read failed", "path", abs, "error", err)
		p.Placeholder = PlaceholderError
		return p
	}

	if IsBinaryContent(content, s.opts.BinarySampleSize) {
		p.Placeholder = PlaceholderBinary
	} else {
		p.Code = string(content)
		p.Rendered, err = s.renderer.Render(abs, p.Code)
		if err != nil {
			s.logger.Debug("preview render failed", "path", abs, "error", err)
			p.Rendered = p.Code
		}
	}

	s.cache.Add(key, p)
	return p
}
