// Package loader reads configuration sources into generic maps.
//
// File loaders handle TOML and YAML; EnvLoader turns prefixed environment
// variables into the same nested map shape so sources can be merged with
// DeepMerge before being decoded into typed settings.
package loader

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

var ErrUnsupportedFormat = errors.New("unsupported config format")

// Loader produces one configuration layer. A source that does not exist
// yields a nil map and no error.
type Loader interface {
	Load() (map[string]any, error)
}

// FileSystem is the read access File needs; tests supply an in-memory one.
type FileSystem interface {
	ReadFile(path string) ([]byte, error)
}

type osFS struct{}

func (osFS) ReadFile(path string) ([]byte, error) { return os.ReadFile(path) }

// DefaultFS reads from the host file system.
func DefaultFS() FileSystem { return osFS{} }

// Format decodes one file syntax.
type Format struct {
	Name   string
	decode func(data []byte) (map[string]any, error)
}

var (
	TOML = Format{Name: "toml", decode: decodeTOML}
	YAML = Format{Name: "yaml", decode: decodeYAML}
)

// FormatFor picks the Format from the extension of path.
func FormatFor(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		return TOML, nil
	case ".yaml", ".yml":
		return YAML, nil
	}
	return Format{}, fmt.Errorf("%w: %s", ErrUnsupportedFormat, path)
}

// File loads a single configuration file.
type File struct {
	fsys   FileSystem
	path   string
	format Format
}

// NewFile returns a loader for path decoded as format.
func NewFile(fsys FileSystem, path string, format Format) *File {
	return &File{fsys: fsys, path: path, format: format}
}

// ForPath returns a File loader whose format follows the extension of path.
func ForPath(fsys FileSystem, path string) (Loader, error) {
	format, err := FormatFor(path)
	if err != nil {
		return nil, err
	}
	return NewFile(fsys, path, format), nil
}

func (f *File) Load() (map[string]any, error) {
	data, err := f.fsys.ReadFile(f.path)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		return nil, nil
	case err != nil:
		return nil, fmt.Errorf("reading config file %s: %w", f.path, err)
	}
	return f.parse(f.path, data)
}

// Decode parses a whole stream in the loader's format.
func (f *File) Decode(r io.Reader) (map[string]any, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}
	return f.parse("<reader>", data)
}

func (f *File) parse(source string, data []byte) (map[string]any, error) {
	m, err := f.format.decode(data)
	if err != nil {
		var perr *ParseError
		if errors.As(err, &perr) {
			perr.Path = source
			return nil, perr
		}
		return nil, &ParseError{Path: source, Message: err.Error(), Err: err}
	}
	return m, nil
}

// ParseError locates a syntax error in a configuration source. Line and
// Column are zero when the decoder does not report a position.
type ParseError struct {
	Path         string
	Line, Column int
	Message      string
	Err          error
}

func (e *ParseError) Error() string {
	where := e.Path
	if e.Line > 0 {
		where += fmt.Sprintf(":%d", e.Line)
		if e.Column > 0 {
			where += fmt.Sprintf(":%d", e.Column)
		}
	}
	return "parse error in " + where + ": " + e.Message
}

func (e *ParseError) Unwrap() error { return e.Err }

// DeepMerge overlays src onto dst and returns dst. Nested maps merge key
// by key; any other value in src replaces the one in dst.
func DeepMerge(dst, src map[string]any) map[string]any {
	if dst == nil {
		dst = make(map[string]any, len(src))
	}
	for k, v := range src {
		if sub, ok := v.(map[string]any); ok {
			if cur, ok := dst[k].(map[string]any); ok {
				dst[k] = DeepMerge(cur, sub)
				continue
			}
		}
		dst[k] = v
	}
	return dst
}
