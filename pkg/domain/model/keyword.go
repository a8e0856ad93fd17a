package model

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

var pluralSuffixes = []string{"es", "s", ""}

// MatchKeyword reports whether text contains kw as a whole word, case
// insensitively. A plural "s" or "es" after kw still matches. A trailing "*"
// turns kw into a word prefix, so "hack*" matches "hackers".
func MatchKeyword(text, kw string) bool {
	kw = strings.ToLower(strings.TrimSpace(kw))
	prefix := strings.HasSuffix(kw, "*")
	kw = strings.TrimSuffix(kw, "*")
	if kw == "" {
		return false
	}

	text = strings.ToLower(text)
	for i := 0; i < len(text); {
		j := strings.Index(text[i:], kw)
		if j < 0 {
			return false
		}
		start := i + j
		end := start + len(kw)
		if wordStart(text, start) && (prefix || wordEnd(text[end:])) {
			return true
		}
		i = start + 1
	}
	return false
}

func isWordRune(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r)
}

func wordStart(text string, i int) bool {
	if i == 0 {
		return true
	}
	r, _ := utf8.DecodeLastRuneInString(text[:i])
	return !isWordRune(r)
}

func wordEnd(rest string) bool {
	for _, suffix := range pluralSuffixes {
		if !strings.HasPrefix(rest, suffix) {
			continue
		}
		tail := rest[len(suffix):]
		if tail == "" {
			return true
		}
		if r, _ := utf8.DecodeRuneInString(tail); !isWordRune(r) {
			return true
		}
	}
	return false
}
