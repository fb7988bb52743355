package loader

import (
	"errors"
	"io/fs"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

// MemFS is an in-memory file system for testing.
type MemFS struct {
	files map[string][]byte
}

func NewMemFS() *MemFS {
	return &MemFS{files: make(map[string][]byte)}
}

func (m *MemFS) AddFile(path string, content string) {
	m.files[path] = []byte(content)
}

func (m *MemFS) ReadFile(path string) ([]byte, error) {
	data, ok := m.files[path]
	if !ok {
		return nil, fs.ErrNotExist
	}
	return data, nil
}

func TestTOMLLoader_Load(t *testing.T) {
	memfs := NewMemFS()
	memfs.AddFile("/stormcad.toml", `
[display]
pickBoxSize = 6

[snap]
enabled = true
types = ["end", "middle"]
`)

	got, err := NewFile(memfs, "/stormcad.toml", TOML).Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	want := map[string]any{
		"display": map[string]any{"pickBoxSize": int64(6)},
		"snap":    map[string]any{"enabled": true, "types": []any{"end", "middle"}},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Load() mismatch (-want +got):\n%s", diff)
	}
}

func TestTOMLLoader_ParseError(t *testing.T) {
	memfs := NewMemFS()
	memfs.AddFile("/bad.toml", "[display\npickBoxSize = 6\n")

	_, err := NewFile(memfs, "/bad.toml", TOML).Load()
	var perr *ParseError
	if !errors.As(err, &perr) {
		t.Fatalf("error = %v, want *ParseError", err)
	}
	if perr.Line == 0 {
		t.Errorf("ParseError.Line not set: %v", perr)
	}
}

func TestYAMLLoader_Load(t *testing.T) {
	memfs := NewMemFS()
	memfs.AddFile("/stormcad.yaml", `
display:
  pickBoxSize: 4
theme:
  jig: "#ffaa00"
`)

	got, err := NewFile(memfs, "/stormcad.yaml", YAML).Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	want := map[string]any{
		"display": map[string]any{"pickBoxSize": 4},
		"theme":   map[string]any{"jig": "#ffaa00"},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Load() mismatch (-want +got):\n%s", diff)
	}
}

func TestLoaderMissingFile(t *testing.T) {
	for _, path := range []string{"/none.toml", "/none.yml"} {
		l, err := ForPath(NewMemFS(), path)
		if err != nil {
			t.Fatal(err)
		}
		got, err := l.Load()
		if got != nil || err != nil {
			t.Errorf("%s: Load() = %v, %v; want nil, nil", path, got, err)
		}
	}
}

func TestForPathUnsupported(t *testing.T) {
	if _, err := ForPath(NewMemFS(), "/x.ini"); !errors.Is(err, ErrUnsupportedFormat) {
		t.Errorf("error = %v, want ErrUnsupportedFormat", err)
	}
}

func TestDecode(t *testing.T) {
	got, err := NewFile(NewMemFS(), "", TOML).Decode(strings.NewReader(`a = "b"`))
	if err != nil || got["a"] != "b" {
		t.Errorf("Decode() = %v, %v", got, err)
	}
}

func TestYAMLParseErrorPath(t *testing.T) {
	memfs := NewMemFS()
	memfs.AddFile("/bad.yml", "display: [unclosed\n")

	_, err := NewFile(memfs, "/bad.yml", YAML).Load()
	var perr *ParseError
	if !errors.As(err, &perr) || perr.Path != "/bad.yml" {
		t.Errorf("error = %v, want *ParseError for /bad.yml", err)
	}
}

func TestEnvLoader_Load(t *testing.T) {
	l := NewEnvLoader("STORMCAD_")
	l.environ = func() []string {
		return []string{
			"STORMCAD_LOG_LEVEL=debug",
			"STORMCAD_SNAP=off",
			"STORMCAD_DISPLAY_SNAP_DISTANCE=12",
			"STORMCAD_FORMAT_NUMBER=%.2f",
			"STORMCAD_SNAP_TYPES=[\"end\",\"center\"]",
			"STORMCAD_BOGUS=1",
			"HOME=/root",
		}
	}

	got, err := l.Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	want := map[string]any{
		"logging": map[string]any{"level": "debug"},
		"snap":    map[string]any{"enabled": false, "types": []any{"end", "center"}},
		"display": map[string]any{"snapDistance": int64(12)},
		"format":  map[string]any{"number": "%.2f"},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Load() mismatch (-want +got):\n%s", diff)
	}
}

func TestDeepMerge(t *testing.T) {
	dst := map[string]any{
		"display": map[string]any{"pickBoxSize": 4, "snapDistance": 10},
		"logging": map[string]any{"level": "info"},
	}
	src := map[string]any{
		"display": map[string]any{"pickBoxSize": 8},
		"logging": "flat",
	}
	got := DeepMerge(dst, src)
	want := map[string]any{
		"display": map[string]any{"pickBoxSize": 8, "snapDistance": 10},
		"logging": "flat",
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("DeepMerge() mismatch (-want +got):\n%s", diff)
	}
}
