package utils

import (
	"unicode"

	"github.com/aryann/difflib"
)

// Word-level diff operations.
const (
	WordRemoved = -1
	WordKept    = 0
	WordAdded   = 1
)

// WordDelta is one token of a word-level diff. Op is WordRemoved,
// WordKept, or WordAdded.
type WordDelta struct {
	Op   int
	Text string
}

// wordClass buckets a rune for tokenizing: whitespace, word, or
// punctuation. Hyphens, underscores, and apostrophes stay inside words so
// compound terms diff as one token.
func wordClass(r rune) int {
	switch {
	case unicode.IsSpace(r):
		return 0
	case unicode.IsLetter(r) || unicode.IsNumber(r) || r == '_' || r == '-' || r == '\'':
		return 1
	}
	return 2
}

// TokenizeWords splits s into runs of the same class. Every rune is kept,
// so joining the tokens reproduces s exactly.
func TokenizeWords(s string) []string {
	var out []string
	var cur []rune
	kind := -1
	flush := func() {
		if len(cur) == 0 {
			return
		}
		out = append(out, string(cur))
		cur = cur[:0]
	}
	for _, r := range s {
		k := wordClass(r)
		if kind == -1 {
			kind = k
		}
		if k != kind {
			flush()
			kind = k
		}
		cur = append(cur, r)
	}
	flush()
	return out
}

// DiffWords compares two strings token by token.
func DiffWords(a, b string) []WordDelta {
	recs := difflib.Diff(TokenizeWords(a), TokenizeWords(b))
	out := make([]WordDelta, 0, len(recs))
	for _, r := range recs {
		switch r.Delta {
		case difflib.LeftOnly:
			out = append(out, WordDelta{Op: WordRemoved, Text: r.Payload})
		case difflib.RightOnly:
			out = append(out, WordDelta{Op: WordAdded, Text: r.Payload})
		default:
			out = append(out, WordDelta{Op: WordKept, Text: r.Payload})
		}
	}
	return out
}
