// Package report renders per-language statistics as text tables.
package report

import (
	"fmt"
	"math"
	"strconv"

	"github.com/dustin/go-humanize"
	"github.com/pterm/pterm"

	"github.com/fr4nk3nst1ner/devsalary/internal/models"
	"github.com/fr4nk3nst1ner/devsalary/internal/ui"
)

// Header is the first row of every report table
var Header = []string{"Language", "Vacancies Found", "Vacancies Processed", "Average Salary"}

// Options controls number formatting only
type Options struct {
	// Humanize adds thousands separators (150,000)
	Humanize bool
	// Color colors the average salary by band
	Color bool
}

// Rows builds the table body in input order, header first
func Rows(rows []models.ReportRow, opts Options) [][]string {
	data := make([][]string, 0, len(rows)+1)
	data = append(data, append([]string(nil), Header...))

	for _, row := range rows {
		avg := formatInt(int64(math.Round(row.Stats.AverageSalary)), opts.Humanize)
		if opts.Color {
			avg = ui.ColorizeSalary(avg, row.Stats.AverageSalary)
		}
		data = append(data, []string{
			row.Language,
			formatInt(int64(row.Stats.VacanciesFound), opts.Humanize),
			formatInt(int64(row.Stats.VacanciesProcessed), opts.Humanize),
			avg,
		})
	}
	return data
}

// Render formats rows as a table boxed under title
func Render(rows []models.ReportRow, title string, opts Options) (string, error) {
	table, err := pterm.DefaultTable.
		WithHasHeader().
		WithData(pterm.TableData(Rows(rows, opts))).
		Srender()
	if err != nil {
		return "", fmt.Errorf("failed to render %q table: %w", title, err)
	}

	return pterm.DefaultBox.WithTitle(title).Sprint(table), nil
}

func formatInt(n int64, human bool) string {
	if human {
		return humanize.Comma(n)
	}
	return strconv.FormatInt(n, 10)
}
