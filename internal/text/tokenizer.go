// Package text converts raw summaries into bounded sequences of word tokens.
package text

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/blugelabs/bluge/analysis/tokenizer"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	perrors "github.com/crimson-sun/genreprep/internal/errors"
)

// Strategy names a tokenization strategy.
type Strategy string

const (
	Manual     Strategy = "manual"
	Linguistic Strategy = "linguistic"
)

// Tokenizer splits text into word tokens. Implementations must be safe for
// concurrent use.
type Tokenizer interface {
	Tokenize(text string) []string
}

// New returns the tokenizer for a strategy.
func New(s Strategy) (Tokenizer, error) {
	switch s {
	case Manual, "":
		return ManualTokenizer{}, nil
	case Linguistic:
		return NewLinguistic(), nil
	default:
		return nil, fmt.Errorf("text: %w: %q", perrors.ErrUnknownStrategy, s)
	}
}

// ManualTokenizer keeps letters (lower-cased) and collapses ASCII whitespace
// runs into single separators. Everything else is dropped without emitting a
// separator, so "can't" becomes "cant".
type ManualTokenizer struct{}

func (ManualTokenizer) Tokenize(text string) []string {
	// Casers carry state; one per call keeps the tokenizer goroutine-safe.
	lower := cases.Lower(language.Und)

	var b strings.Builder
	b.Grow(len(text))
	lastSep := true // no leading separator
	for _, r := range text {
		switch {
		case unicode.IsLetter(r):
			b.WriteString(lower.String(string(r)))
			lastSep = false
		case isASCIISpace(r) && !lastSep:
			b.WriteByte(' ')
			lastSep = true
		}
	}
	return strings.Fields(b.String())
}

// isASCIISpace matches exactly space, \t, \n, \r, \v and \f.
func isASCIISpace(r rune) bool {
	switch r {
	case ' ', '\t', '\n', '\r', '\v', '\f':
		return true
	}
	return false
}

// LinguisticTokenizer segments text on Unicode word boundaries (UAX #29).
// Case is preserved. Punctuation between words is kept as tokens, one per
// run of a repeated character, so "loss." yields "loss" and ".".
type LinguisticTokenizer struct {
	tok *tokenizer.UnicodeTokenizer
}

// NewLinguistic creates a LinguisticTokenizer.
func NewLinguistic() *LinguisticTokenizer {
	return &LinguisticTokenizer{tok: tokenizer.NewUnicodeTokenizer()}
}

func (l *LinguisticTokenizer) Tokenize(text string) []string {
	stream := l.tok.Tokenize([]byte(text))
	out := make([]string, 0, len(stream))
	prev := 0
	for _, t := range stream {
		out = appendPunct(out, text[prev:t.Start])
		out = append(out, string(t.Term))
		prev = t.End
	}
	return appendPunct(out, text[prev:])
}

// appendPunct splits the text between two words into punctuation tokens.
// Whitespace separates tokens and is dropped.
func appendPunct(out []string, gap string) []string {
	for _, field := range strings.FieldsFunc(gap, unicode.IsSpace) {
		start := 0
		var last rune
		for i, r := range field {
			if i > 0 && r != last {
				out = append(out, field[start:i])
				start = i
			}
			last = r
		}
		out = append(out, field[start:])
	}
	return out
}
