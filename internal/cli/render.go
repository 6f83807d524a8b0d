package cli

import (
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/mattn/go-isatty"

	"github.com/bartekmp/osmosmjerka-sub000/internal/core"
	"github.com/bartekmp/osmosmjerka-sub000/internal/phrase"
)

var (
	headerStyle  = lipgloss.NewStyle().Bold(true).Padding(0, 1)
	cellStyle    = lipgloss.NewStyle().Padding(0, 1)
	invalidStyle = cellStyle.Foreground(lipgloss.Color("9"))
	borderStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
	summaryStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	okStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("10")).Bold(true)
)

// isTerminal reports whether w is an interactive terminal.
func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// renderPreview writes the preview summary and its rows as a table.
func renderPreview(w io.Writer, p phrase.Preview) {
	styled := isTerminal(w)

	sep := "none"
	if !p.Separator.IsZero() {
		sep = p.Separator.Label()
	}
	summary := fmt.Sprintf("separator: %s  header: %t  data lines: %d", sep, p.HasHeader, p.DataLines)
	if p.Truncated() {
		summary += fmt.Sprintf("  (showing first %d)", len(p.Rows))
	}
	fmt.Fprintln(w, style(styled, summaryStyle, summary))

	if len(p.Rows) == 0 {
		return
	}

	rows := make([][]string, 0, len(p.Rows))
	for _, r := range p.Rows {
		mark := "ok"
		if !r.Valid {
			mark = "invalid"
		}
		rows = append(rows, []string{strconv.Itoa(r.Line), r.Categories, r.Phrase, r.Translation, mark})
	}

	t := table.New().
		Border(lipgloss.NormalBorder()).
		Headers("LINE", "CATEGORIES", "PHRASE", "TRANSLATION", "STATUS").
		Rows(rows...)
	if styled {
		t = t.BorderStyle(borderStyle).StyleFunc(func(row, col int) lipgloss.Style {
			switch {
			case row == table.HeaderRow:
				return headerStyle
			case row >= 0 && row < len(p.Rows) && !p.Rows[row].Valid:
				return invalidStyle
			default:
				return cellStyle
			}
		})
	}
	fmt.Fprintln(w, t.Render())
}

// renderResult writes an import summary followed by the skipped lines.
func renderResult(w io.Writer, res *core.ImportResult) {
	styled := isTerminal(w)

	fmt.Fprintln(w, style(styled, okStyle, fmt.Sprintf(
		"imported %d of %d rows (skipped %d, separator %s)",
		res.Inserted, res.TotalRows, res.Skipped, res.Separator)))
	fmt.Fprintf(w, "import id: %s\n", res.ImportID)

	if len(res.Errors) == 0 {
		return
	}
	rows := make([][]string, 0, len(res.Errors))
	for _, e := range res.Errors {
		rows = append(rows, []string{strconv.Itoa(e.Line), e.Reason})
	}
	t := table.New().
		Border(lipgloss.NormalBorder()).
		Headers("LINE", "REASON").
		Rows(rows...)
	if styled {
		t = t.BorderStyle(borderStyle)
	}
	fmt.Fprintln(w, t.Render())
}

func style(styled bool, s lipgloss.Style, text string) string {
	if !styled {
		return text
	}
	return s.Render(text)
}
