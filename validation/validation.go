package validation

import (
	"strings"
	"unicode"
)

// IsValidQuery checks whether query text is worth sending through intent
// resolution at all. Returns false for empty, oversized or gibberish input.
// The check is lenient: an odd but plausible query should pass.
func IsValidQuery(query string) bool {
	trimmed := strings.TrimSpace(query)

	if len(trimmed) < 3 || len(trimmed) > 10000 {
		return false
	}

	if isRepeatedCharacters(trimmed) {
		return false
	}

	// At least 30% of the non-space characters should be letters.
	letterCount := 0
	totalChars := 0
	for _, r := range trimmed {
		if unicode.IsLetter(r) {
			letterCount++
		}
		if !unicode.IsSpace(r) {
			totalChars++
		}
	}
	if totalChars == 0 {
		return false
	}
	if float64(letterCount)/float64(totalChars) < 0.3 {
		return false
	}

	// 4+ consecutive identical characters is a strong gibberish signal.
	if hasExcessiveRepetition(trimmed) {
		return false
	}

	return true
}

// isRepeatedCharacters checks if a string is just one character repeated.
func isRepeatedCharacters(s string) bool {
	if len(s) < 3 {
		return false
	}
	first := s[0]
	for i := 1; i < len(s); i++ {
		if s[i] != first {
			return false
		}
	}
	return true
}

func hasExcessiveRepetition(s string) bool {
	count := 1
	for i := 1; i < len(s); i++ {
		if s[i] == s[i-1] && !unicode.IsSpace(rune(s[i])) {
			count++
			if count >= 4 {
				return true
			}
		} else {
			count = 1
		}
	}
	return false
}
