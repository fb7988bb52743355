package topic

import "testing"

func TestMatches(t *testing.T) {
	tests := []struct {
		topic   Topic
		pattern Topic
		want    bool
	}{
		{"view.cursor.move", "view.cursor.move", true},
		{"view.cursor.move", "view.cursor.*", true},
		{"view.cursor.move", "view.*", false},
		{"view.cursor.move", "view.**", true},
		{"view", "view.**", true},
		{"view.key.down", "**.down", true},
		{"editor.prompt", "view.**", false},
		{"view.cursor", "view.cursor.move", false},
	}
	for _, tt := range tests {
		if got := tt.topic.Matches(tt.pattern); got != tt.want {
			t.Errorf("%q.Matches(%q) = %v, want %v", tt.topic, tt.pattern, got, tt.want)
		}
	}
}

func TestIsValid(t *testing.T) {
	valid := []Topic{"a", "a.b", "view.cursor.move"}
	invalid := []Topic{"", ".a", "a.", "a..b"}
	for _, tp := range valid {
		if !tp.IsValid() {
			t.Errorf("%q should be valid", tp)
		}
	}
	for _, tp := range invalid {
		if tp.IsValid() {
			t.Errorf("%q should be invalid", tp)
		}
	}
}
