package phrase

import (
	"regexp"
	"strings"
	"unicode"
)

// headerPatterns holds one anchored, case-insensitive header matcher per separator.
var headerPatterns = func() map[Separator]*regexp.Regexp {
	m := make(map[Separator]*regexp.Regexp, len(candidates))
	for _, sep := range candidates {
		s := `[ ]*` + regexp.QuoteMeta(string(rune(sep))) + `[ ]*`
		m[sep] = regexp.MustCompile(`(?i)^(?:categories|category)` + s + `phrase` + s + `translation$`)
	}
	return m
}()

// IsHeader reports whether line is the column header
// "categories<sep>phrase<sep>translation" (or "category...").
//
// Whitespace runs are collapsed to single spaces before matching. When the
// separator is a tab, tabs are kept so the separator survives normalisation.
func IsHeader(line string, sep Separator) bool {
	re, ok := headerPatterns[sep]
	if !ok {
		return false
	}
	return re.MatchString(normalizeHeader(line, sep))
}

// normalizeHeader collapses whitespace (other than sep) into single spaces
// and trims the ends.
func normalizeHeader(line string, sep Separator) string {
	var b strings.Builder
	b.Grow(len(line))

	inSpace := false
	for _, r := range line {
		if r != rune(sep) && unicode.IsSpace(r) {
			if !inSpace {
				b.WriteByte(' ')
				inSpace = true
			}
			continue
		}
		inSpace = false
		b.WriteRune(r)
	}
	return strings.TrimFunc(b.String(), func(r rune) bool {
		return r != rune(sep) && unicode.IsSpace(r)
	})
}
