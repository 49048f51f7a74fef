package markov

import (
	"bufio"
	"io"
	"strings"
	"unicode"
)

// WordStream is an interface for a stateful source of raw word tokens,
// yielding one word at a time. This keeps the model independent of where
// the words come from (a reader, a slice, a test fixture).
type WordStream interface {
	// Next returns the next raw word from the stream. It returns io.EOF
	// as the error when the stream is fully consumed.
	Next() (string, error)
}

// scanStream splits an io.Reader into whitespace-separated words.
type scanStream struct {
	scanner *bufio.Scanner
}

// NewScanStream returns a WordStream that reads whitespace-separated words
// from r.
func NewScanStream(r io.Reader) WordStream {
	s := bufio.NewScanner(r)
	s.Split(bufio.ScanWords)
	return &scanStream{scanner: s}
}

func (s *scanStream) Next() (string, error) {
	if !s.scanner.Scan() {
		if err := s.scanner.Err(); err != nil {
			return "", err
		}
		return "", io.EOF
	}
	return s.scanner.Text(), nil
}

// sliceStream yields words from an in-memory slice.
type sliceStream struct {
	words []string
	pos   int
}

// NewSliceStream returns a WordStream over an already-tokenized word slice.
func NewSliceStream(words []string) WordStream {
	return &sliceStream{words: words}
}

func (s *sliceStream) Next() (string, error) {
	if s.pos >= len(s.words) {
		return "", io.EOF
	}
	w := s.words[s.pos]
	s.pos++
	return w, nil
}

// isWordRune reports whether r is a word-constituent character: a letter,
// a digit, or an underscore.
func isWordRune(r rune) bool {
	return r == '_' || unicode.IsLetter(r) || unicode.IsDigit(r)
}

// normalizeWord applies the configured per-token cleanup: trim surrounding
// whitespace, optionally lowercase, optionally drop every non-word rune.
// A token that is stripped down to nothing stays in the stream as an empty
// word; it participates in the chain like any other word.
func normalizeWord(word string, o trainOptions) string {
	word = strings.TrimSpace(word)
	if o.foldCase {
		word = strings.ToLower(word)
	}
	if o.stripNonWord {
		word = strings.Map(func(r rune) rune {
			if isWordRune(r) {
				return r
			}
			return -1
		}, word)
	}
	return word
}

// isTerminal reports whether the word, after dropping every rune that is
// neither word-constituent nor one of ".?!", ends with sentence-ending
// punctuation.
func isTerminal(word string) bool {
	var last rune
	kept := false
	for _, r := range word {
		if isWordRune(r) || r == '.' || r == '?' || r == '!' {
			last = r
			kept = true
		}
	}
	return kept && (last == '.' || last == '?' || last == '!')
}

// isCapitalized reports whether the word's first rune is uppercase.
func isCapitalized(word string) bool {
	for _, r := range word {
		return unicode.IsUpper(r)
	}
	return false
}
