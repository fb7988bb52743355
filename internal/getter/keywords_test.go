package getter

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
)

func TestKeywordAliases(t *testing.T) {
	k := NewKeywords("Close", "Undo", "ArcLength", "fit")
	want := []string{"C", "U", "AL", "FIT"}
	if diff := cmp.Diff(want, k.Aliases()); diff != "" {
		t.Errorf("Aliases() mismatch (-want +got):\n%s", diff)
	}
	if len(k.Aliases()) != len(k.Names()) {
		t.Error("aliases and names differ in length")
	}
}

func TestKeywordMatch(t *testing.T) {
	k := NewKeywords().Add("End", true).Add("Close", false)

	tests := []struct {
		text string
		want string
		ok   bool
	}{
		{"", "End", true},
		{"  ", "End", true},
		{"c", "Close", true},
		{"C", "Close", true},
		{"close", "Close", true},
		{"E", "End", true},
		{"x", "", false},
		{"Clo", "", false},
	}
	for _, tt := range tests {
		got, ok := k.Match(tt.text)
		if got != tt.want || ok != tt.ok {
			t.Errorf("Match(%q) = %q, %v; want %q, %v", tt.text, got, ok, tt.want, tt.ok)
		}
	}

	if _, ok := NewKeywords("Close").Match(""); ok {
		t.Error("empty text matched without a default")
	}
	var nilKw *Keywords
	if _, ok := nilKw.Match("c"); ok {
		t.Error("nil keywords matched")
	}
}

func TestKeywordAddIgnoresDuplicates(t *testing.T) {
	k := NewKeywords("Close", "close", "")
	if k.Len() != 1 {
		t.Errorf("Len() = %d, want 1", k.Len())
	}
}

func TestFullPrompt(t *testing.T) {
	tests := []struct {
		opts Options[int]
		want string
	}{
		{NewOptions[int]("Count"), "Count: "},
		{NewOptions[int]("Next point", "Undo", "Close"), "Next point [Undo, Close]: "},
		{NewOptions[int]("Next point", "Close").WithDefault("End"), "Next point [Close, End] <End>: "},
	}
	for _, tt := range tests {
		if got := tt.opts.FullPrompt(); got != tt.want {
			t.Errorf("FullPrompt() = %q, want %q", got, tt.want)
		}
	}
}

func TestResultString(t *testing.T) {
	tests := []struct {
		r    Result[int]
		want string
	}{
		{OK(3), "OK(3)"},
		{KeywordResult[int]("Close"), "Keyword(Close)"},
		{Cancel[int](ReasonEscape), "Cancel(escape)"},
	}
	for _, tt := range tests {
		if got := tt.r.String(); got != tt.want {
			t.Errorf("String() = %q, want %q", got, tt.want)
		}
	}
	if !KeywordResult[int]("Close").IsKeyword("") || KeywordResult[int]("Close").IsKeyword("End") {
		t.Error("IsKeyword() mismatch")
	}
}

func TestFutureSingleResolution(t *testing.T) {
	f := NewFuture[int]()
	if _, ok := f.Result(); ok {
		t.Fatal("new future reports a result")
	}
	if !f.Resolve(OK(1)) {
		t.Fatal("first Resolve() = false")
	}
	if f.Resolve(OK(2)) {
		t.Error("second Resolve() = true")
	}
	r, err := f.Wait(context.Background())
	if err != nil || r.Value != 1 {
		t.Errorf("Wait() = %v, %v", r, err)
	}
}

func TestFutureWaitContext(t *testing.T) {
	f := NewFuture[int]()
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()
	if _, err := f.Wait(ctx); !errors.Is(err, context.DeadlineExceeded) {
		t.Errorf("Wait() error = %v, want DeadlineExceeded", err)
	}
}
