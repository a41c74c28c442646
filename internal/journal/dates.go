package journal

import "regexp"

// DateUnknown is the sentinel date for entries with no recognizable date.
const DateUnknown = "Unknown"

// contentSearchLimit bounds how far into a file's content the date
// search looks, in characters.
const contentSearchLimit = 200

// Recognized date forms, tried in priority order. Matching is purely
// digit-group based, not calendar validation.
var datePatterns = []struct {
	re      *regexp.Regexp
	rebuild func(m []string) string
}{
	{regexp.MustCompile(`(\d{4})-(\d{2})-(\d{2})`), func(m []string) string { return m[1] + "-" + m[2] + "-" + m[3] }},
	{regexp.MustCompile(`(\d{4})(\d{2})(\d{2})`), func(m []string) string { return m[1] + "-" + m[2] + "-" + m[3] }},
	{regexp.MustCompile(`(\d{2})-(\d{2})-(\d{4})`), func(m []string) string { return m[3] + "-" + m[2] + "-" + m[1] }},
	{regexp.MustCompile(`(\d{2})/(\d{2})/(\d{4})`), func(m []string) string { return m[3] + "-" + m[2] + "-" + m[1] }},
}

// ExtractDate derives a best-effort date label for a journal entry.
// The filename is searched first, then the first 200 characters of the
// content; the first pattern that matches wins. Matches are normalized
// to YYYY-MM-DD digit order so stored dates sort consistently. When
// nothing matches the result is DateUnknown.
func ExtractDate(filename, content string) string {
	if date, ok := findDate(filename); ok {
		return date
	}

	head := content
	if runes := []rune(content); len(runes) > contentSearchLimit {
		head = string(runes[:contentSearchLimit])
	}
	if date, ok := findDate(head); ok {
		return date
	}

	return DateUnknown
}

func findDate(s string) (string, bool) {
	for _, p := range datePatterns {
		if m := p.re.FindStringSubmatch(s); m != nil {
			return p.rebuild(m), true
		}
	}
	return "", false
}
