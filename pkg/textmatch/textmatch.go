// Package textmatch finds keywords in lowercased free text on word
// boundaries, so "hi" does not match "this" and "shy" does not match "pushy".
package textmatch

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// Contains reports whether kw occurs in text as a whole word or phrase.
// Keywords that begin or end with a non-word rune (emojis) match as plain
// substrings on that side. Hyphenated compounds are one word: "loving" is
// not found in "fun-loving".
func Contains(text, kw string) bool {
	if kw == "" {
		return false
	}
	for start := 0; start < len(text); {
		i := strings.Index(text[start:], kw)
		if i < 0 {
			return false
		}
		i += start
		end := i + len(kw)
		if boundaryBefore(text, i, kw) && boundaryAfter(text, end, kw) {
			return true
		}
		start = i + 1
	}
	return false
}

// First returns the first keyword, in list order, that Contains finds.
func First(text string, keywords []string) (string, bool) {
	for _, kw := range keywords {
		if Contains(text, kw) {
			return kw, true
		}
	}
	return "", false
}

func boundaryBefore(text string, i int, kw string) bool {
	first, _ := utf8.DecodeRuneInString(kw)
	if i == 0 || !isWordRune(first) {
		return true
	}
	prev, _ := utf8.DecodeLastRuneInString(text[:i])
	return !isWordRune(prev)
}

func boundaryAfter(text string, end int, kw string) bool {
	last, _ := utf8.DecodeLastRuneInString(kw)
	if end >= len(text) || !isWordRune(last) {
		return true
	}
	next, _ := utf8.DecodeRuneInString(text[end:])
	return !isWordRune(next)
}

func isWordRune(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r) || r == '\'' || r == '-'
}
