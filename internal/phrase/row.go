package phrase

import "strings"

// columnCount is the number of meaningful columns per line.
const columnCount = 3

// Row is one parsed data line.
type Row struct {
	Line        int      `json:"line"`
	Categories  string   `json:"categories"`
	Phrase      string   `json:"phrase"`
	Translation string   `json:"translation"`
	Fields      []string `json:"-"`
	Valid       bool     `json:"valid"`
}

// Extra returns the raw fields past the translation column. They are kept
// but never interpreted.
func (r Row) Extra() []string {
	if len(r.Fields) <= columnCount {
		return nil
	}
	return r.Fields[columnCount:]
}

// Columns returns the three display columns.
func (r Row) Columns() [columnCount]string {
	return [columnCount]string{r.Categories, r.Phrase, r.Translation}
}

// ParseLine splits a single line on sep.
//
// The row is valid when the line yields at least three fields and none of
// the first three is empty after trimming.
func ParseLine(line string, sep Separator) Row {
	fields := splitFields(line, sep)
	row := Row{Fields: fields}

	if len(fields) < columnCount {
		if len(fields) > 0 {
			row.Categories = strings.TrimSpace(fields[0])
		}
		if len(fields) > 1 {
			row.Phrase = strings.TrimSpace(fields[1])
		}
		return row
	}

	row.Categories = strings.TrimSpace(fields[0])
	row.Phrase = strings.TrimSpace(fields[1])
	row.Translation = strings.TrimSpace(fields[2])
	row.Valid = row.Categories != "" && row.Phrase != "" && row.Translation != ""
	return row
}

func splitFields(line string, sep Separator) []string {
	return strings.Split(line, string(rune(sep)))
}
