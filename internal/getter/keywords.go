package getter

import (
	"strings"
	"unicode"
)

// Keywords is an ordered list of named alternative responses to a prompt.
//
// Each keyword has an alias made of its uppercase letters ("Close" → "C",
// "ArcLength" → "AL"); a keyword without uppercase letters uses its whole
// spelling. Matching is case-insensitive against the alias or the name.
type Keywords struct {
	names   []string
	aliases []string
	def     string
}

// NewKeywords creates a keyword list with no default.
func NewKeywords(names ...string) *Keywords {
	k := &Keywords{}
	for _, n := range names {
		k.Add(n, false)
	}
	return k
}

// Add appends a keyword. If isDefault is true it becomes the default,
// resolved when the user submits empty input. Empty or duplicate names
// are ignored.
func (k *Keywords) Add(name string, isDefault bool) *Keywords {
	name = strings.TrimSpace(name)
	if name == "" || k.index(name) >= 0 {
		return k
	}
	k.names = append(k.names, name)
	k.aliases = append(k.aliases, alias(name))
	if isDefault {
		k.def = name
	}
	return k
}

func alias(name string) string {
	var b strings.Builder
	for _, r := range name {
		if unicode.IsUpper(r) {
			b.WriteRune(r)
		}
	}
	if b.Len() == 0 {
		return strings.ToUpper(name)
	}
	return b.String()
}

func (k *Keywords) index(name string) int {
	for i, n := range k.names {
		if strings.EqualFold(n, name) {
			return i
		}
	}
	return -1
}

// Len returns the number of keywords.
func (k *Keywords) Len() int {
	if k == nil {
		return 0
	}
	return len(k.names)
}

// Names returns the keywords in registration order.
func (k *Keywords) Names() []string {
	if k == nil {
		return nil
	}
	return append([]string(nil), k.names...)
}

// Aliases returns the aliases, parallel to Names.
func (k *Keywords) Aliases() []string {
	if k == nil {
		return nil
	}
	return append([]string(nil), k.aliases...)
}

// Default returns the default keyword, or "".
func (k *Keywords) Default() string {
	if k == nil {
		return ""
	}
	return k.def
}

// Match resolves typed text to a keyword. Empty text resolves to the
// default keyword when one is set.
func (k *Keywords) Match(text string) (string, bool) {
	if k == nil {
		return "", false
	}
	text = strings.TrimSpace(text)
	if text == "" {
		return k.def, k.def != ""
	}
	for i, a := range k.aliases {
		if strings.EqualFold(a, text) {
			return k.names[i], true
		}
	}
	if i := k.index(text); i >= 0 {
		return k.names[i], true
	}
	return "", false
}

// String renders "[Kw1, Kw2] <Default>", omitting the default part when
// none is set, or "" without keywords.
func (k *Keywords) String() string {
	if k.Len() == 0 {
		return ""
	}
	s := "[" + strings.Join(k.names, ", ") + "]"
	if k.def != "" {
		s += " <" + k.def + ">"
	}
	return s
}
