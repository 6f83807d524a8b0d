package phrase

import "strings"

// bom is the UTF-8 byte-order mark as it appears in decoded text.
const bom = "\ufeff"

// Line is one non-blank input line together with its 1-based position in
// the original text.
type Line struct {
	Number int
	Text   string
}

// SplitLines splits raw text on LF or CRLF boundaries and discards blank and
// whitespace-only lines.
func SplitLines(raw string) []Line {
	parts := strings.Split(raw, "\n")
	lines := make([]Line, 0, len(parts))
	for i, p := range parts {
		p = strings.TrimSuffix(p, "\r")
		if strings.TrimSpace(p) == "" {
			continue
		}
		lines = append(lines, Line{Number: i + 1, Text: p})
	}
	return lines
}

// StripBOM removes a leading byte-order mark, if present.
func StripBOM(s string) string {
	return strings.TrimPrefix(s, bom)
}

// IsBlank reports whether raw holds nothing but whitespace and a leading
// byte-order mark.
func IsBlank(raw string) bool {
	return strings.TrimSpace(StripBOM(raw)) == ""
}

// dataLines splits raw into non-blank lines and strips the byte-order mark
// from the first of them. A first line holding only the mark is dropped.
func dataLines(raw string) []Line {
	lines := SplitLines(raw)
	if len(lines) == 0 {
		return lines
	}
	lines[0].Text = StripBOM(lines[0].Text)
	if strings.TrimSpace(lines[0].Text) == "" {
		lines = lines[1:]
	}
	return lines
}

func texts(lines []Line) []string {
	out := make([]string, len(lines))
	for i, l := range lines {
		out[i] = l.Text
	}
	return out
}
