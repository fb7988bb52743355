// Package fuzzy ranks command names against a partially typed query.
//
// A candidate matches when every query rune appears in it in order,
// ignoring case. Scores favour prefix matches, consecutive runs and runs
// starting at word boundaries such as the "n" in "text-note", and prefer
// shorter names.
package fuzzy

import (
	"sort"
	"strings"
	"unicode"
)

// Match is a candidate that contains the query.
type Match struct {
	// Text is the candidate as given.
	Text string

	// Score ranks the match; higher is better.
	Score int

	// Positions are the rune indices of the matched runes.
	Positions []int
}

// Rank returns the candidates matching query, best first. Ties are broken
// by text. An empty query matches every candidate with score zero.
func Rank(query string, candidates []string) []Match {
	q := []rune(strings.ToLower(strings.TrimSpace(query)))

	matches := make([]Match, 0, len(candidates))
	for _, c := range candidates {
		if len(q) == 0 {
			matches = append(matches, Match{Text: c})
			continue
		}
		if pos, ok := positions(q, c); ok {
			matches = append(matches, Match{Text: c, Score: score(q, []rune(c), pos), Positions: pos})
		}
	}

	sort.SliceStable(matches, func(i, j int) bool {
		if matches[i].Score != matches[j].Score {
			return matches[i].Score > matches[j].Score
		}
		return matches[i].Text < matches[j].Text
	})
	return matches
}

// Best returns the highest ranked candidate.
func Best(query string, candidates []string) (string, bool) {
	m := Rank(query, candidates)
	if len(m) == 0 {
		return "", false
	}
	return m[0].Text, true
}

// positions scans text left to right for the query runes.
func positions(q []rune, text string) ([]int, bool) {
	lower := []rune(strings.ToLower(text))
	pos := make([]int, 0, len(q))
	for i := 0; i < len(lower) && len(pos) < len(q); i++ {
		if lower[i] == q[len(pos)] {
			pos = append(pos, i)
		}
	}
	return pos, len(pos) == len(q)
}

func score(q, text []rune, pos []int) int {
	s := 100

	for i := 1; i < len(pos); i++ {
		if pos[i] == pos[i-1]+1 {
			s += 20
		}
	}
	for _, p := range pos {
		if isWordBoundary(text, p) {
			s += 15
		}
	}

	if pos[0] == 0 {
		s += 25
		if len(text) >= len(q) && strings.EqualFold(string(text[:len(q)]), string(q)) {
			s += 50
		}
	} else {
		s -= pos[0]
	}

	if gap := pos[len(pos)-1] - pos[0] - len(pos) + 1; gap > 0 {
		s -= gap * 2
	}
	if len(text) < 20 {
		s += 20 - len(text)
	}
	return max(s, 1)
}

// isWordBoundary reports whether the rune at idx starts a word: the first
// rune, a rune after a separator, or an upper-case rune after a lower-case
// one.
func isWordBoundary(runes []rune, idx int) bool {
	if idx == 0 {
		return true
	}
	prev, cur := runes[idx-1], runes[idx]
	if unicode.IsSpace(prev) || unicode.IsPunct(prev) {
		return true
	}
	return unicode.IsLower(prev) && unicode.IsUpper(cur)
}
