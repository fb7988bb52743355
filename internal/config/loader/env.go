package loader

import (
	"encoding/json"
	"os"
	"strconv"
	"strings"
)

// EnvLoader reads settings from environment variables sharing a prefix
// such as "STORMCAD_". Shorthand names resolve through an alias table;
// other names map SECTION_SOME_KEY to section.someKey.
type EnvLoader struct {
	prefix  string
	aliases map[string]string
	environ func() []string
}

// NewEnvLoader returns a loader for variables starting with prefix,
// which should include its trailing underscore.
func NewEnvLoader(prefix string) *EnvLoader {
	return &EnvLoader{
		prefix: prefix,
		aliases: map[string]string{
			prefix + "LOG_LEVEL": "logging.level",
			prefix + "SNAP":      "snap.enabled",
			prefix + "PICK_BOX":  "display.pickBoxSize",
		},
		environ: os.Environ,
	}
}

func (l *EnvLoader) Load() (map[string]any, error) {
	out := make(map[string]any)
	for _, kv := range l.environ() {
		name, raw, ok := strings.Cut(kv, "=")
		if !ok || !strings.HasPrefix(name, l.prefix) {
			continue
		}
		path, ok := l.aliases[name]
		if !ok {
			path = l.pathOf(name)
		}
		if path != "" {
			setPath(out, strings.Split(path, "."), convert(raw))
		}
	}
	return out, nil
}

// pathOf turns PREFIX_DISPLAY_SNAP_DISTANCE into display.snapDistance.
// Names with fewer than two words after the prefix are ignored.
func (l *EnvLoader) pathOf(name string) string {
	words := strings.Split(strings.ToLower(strings.TrimPrefix(name, l.prefix)), "_")
	if len(words) < 2 || words[0] == "" {
		return ""
	}
	var b strings.Builder
	b.WriteString(words[0])
	b.WriteByte('.')
	b.WriteString(words[1])
	for _, w := range words[2:] {
		if w != "" {
			b.WriteString(strings.ToUpper(w[:1]) + w[1:])
		}
	}
	return b.String()
}

// convert types a raw variable value. Booleans accept yes/no and on/off;
// integers stay integers so "1" is not read as true; JSON arrays and
// objects are decoded.
func convert(raw string) any {
	switch strings.ToLower(raw) {
	case "":
		return raw
	case "true", "yes", "on":
		return true
	case "false", "no", "off":
		return false
	}
	if n, err := strconv.ParseInt(raw, 10, 64); err == nil {
		return n
	}
	if strings.Contains(raw, ".") {
		if f, err := strconv.ParseFloat(raw, 64); err == nil {
			return f
		}
	}
	if raw[0] == '[' || raw[0] == '{' {
		var v any
		if json.Unmarshal([]byte(raw), &v) == nil {
			return v
		}
	}
	return raw
}

func setPath(m map[string]any, keys []string, v any) {
	last := len(keys) - 1
	for _, k := range keys[:last] {
		sub, ok := m[k].(map[string]any)
		if !ok {
			sub = make(map[string]any)
			m[k] = sub
		}
		m = sub
	}
	m[keys[last]] = v
}
