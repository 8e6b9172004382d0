package presentation

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
)

// Output formats
const (
	FormatJSON  = "json"
	FormatTable = "table"
)

var headerStyle = lipgloss.NewStyle().Bold(true).Padding(0, 1)
var cellStyle = lipgloss.NewStyle().Padding(0, 1)

// Formatter handles output formatting
type Formatter struct {
	writer io.Writer
	format string
}

// NewFormatter creates a new formatter. An empty format means JSON.
func NewFormatter(writer io.Writer, format string) *Formatter {
	if format == "" {
		format = FormatJSON
	}
	return &Formatter{
		writer: writer,
		format: format,
	}
}

// FormatConcepts writes concept specifications
func (f *Formatter) FormatConcepts(concepts []ConceptSpecDTO) error {
	if f.format != FormatTable {
		return f.encodeJSON(concepts)
	}
	rows := make([][]string, len(concepts))
	for i, c := range concepts {
		rows[i] = []string{
			strconv.Itoa(int(c.Code)),
			c.Name,
			joinCodes(c.Path),
			strconv.FormatBool(c.HasEvaluator),
		}
	}
	return f.renderTable([]string{"CODE", "NAME", "PATH", "EVALUATOR"}, rows)
}

// FormatArticles writes article specifications
func (f *Formatter) FormatArticles(articles []ArticleSpecDTO) error {
	if f.format != FormatTable {
		return f.encodeJSON(articles)
	}
	rows := make([][]string, len(articles))
	for i, a := range articles {
		rows[i] = []string{
			strconv.Itoa(int(a.Code)),
			a.Name,
			strconv.Itoa(int(a.Seqs)),
			strconv.Itoa(int(a.Role)),
			joinCodes(a.Sums),
			a.Term,
		}
	}
	return f.renderTable([]string{"CODE", "NAME", "SEQS", "ROLE", "SUMS", "TERM"}, rows)
}

// FormatValidation writes catalog validation results
func (f *Formatter) FormatValidation(results []ValidationDTO) error {
	if f.format != FormatTable {
		return f.encodeJSON(results)
	}
	rows := make([][]string, len(results))
	for i, r := range results {
		status := "ok"
		if !r.Valid {
			status = r.Error
		}
		rows[i] = []string{r.Source, strconv.Itoa(r.Concepts), strconv.Itoa(r.Articles), status}
	}
	return f.renderTable([]string{"SOURCE", "CONCEPTS", "ARTICLES", "STATUS"}, rows)
}

// FormatDiff writes a specification diff. The table format prints the raw diff.
func (f *Formatter) FormatDiff(diff DiffDTO) error {
	if f.format != FormatTable {
		return f.encodeJSON(diff)
	}
	if !diff.Changed {
		_, err := fmt.Fprintf(f.writer, "%s %d: no changes between %s and %s\n", diff.Space, diff.Code, diff.From, diff.To)
		return err
	}
	_, err := fmt.Fprintf(f.writer, "--- %s %d @ %s\n+++ %s %d @ %s\n%s", diff.Space, diff.Code, diff.From, diff.Space, diff.Code, diff.To, diff.Diff)
	return err
}

func (f *Formatter) encodeJSON(v any) error {
	encoder := json.NewEncoder(f.writer)
	encoder.SetIndent("", "  ")
	return encoder.Encode(v)
}

func (f *Formatter) renderTable(headers []string, rows [][]string) error {
	t := table.New().
		Border(lipgloss.NormalBorder()).
		Headers(headers...).
		Rows(rows...).
		StyleFunc(func(row, _ int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			return cellStyle
		})
	_, err := fmt.Fprintln(f.writer, t.Render())
	return err
}

func joinCodes(codes []int32) string {
	parts := make([]string, len(codes))
	for i, c := range codes {
		parts[i] = strconv.Itoa(int(c))
	}
	return strings.Join(parts, ",")
}
