package formatter

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"html"
	"strings"

	"f1results/internal/extractor"

	md "github.com/JohannesKaufmann/html-to-markdown"
	"github.com/JohannesKaufmann/html-to-markdown/plugin"
)

const (
	FormatCSV      = "csv"
	FormatMarkdown = "markdown"
)

// Formats lists the supported output formats.
var Formats = []string{FormatCSV, FormatMarkdown}

// Ext returns the file extension, including the dot, for format.
func Ext(format string) (string, error) {
	switch format {
	case FormatCSV:
		return ".csv", nil
	case FormatMarkdown:
		return ".md", nil
	default:
		return "", fmt.Errorf("unsupported output format: %s", format)
	}
}

// Format encodes table: header row first, then data rows, no index column.
func Format(table *extractor.ResultTable, format string) ([]byte, error) {
	switch format {
	case FormatCSV:
		return ToCSV(table)
	case FormatMarkdown:
		return ToMarkdown(table)
	default:
		return nil, fmt.Errorf("unsupported output format: %s", format)
	}
}

// ToCSV returns table as UTF-8, comma separated text.
func ToCSV(table *extractor.ResultTable) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.Write(table.Headers); err != nil {
		return nil, fmt.Errorf("failed to write CSV header: %w", err)
	}
	if err := w.WriteAll(table.Rows); err != nil {
		return nil, fmt.Errorf("failed to write CSV rows: %w", err)
	}
	return buf.Bytes(), nil
}

// ToMarkdown returns table as a GitHub flavored Markdown table.
func ToMarkdown(table *extractor.ResultTable) ([]byte, error) {
	converter := md.NewConverter("", true, nil)
	converter.Use(plugin.Table())

	markdown, err := converter.ConvertString(toHTML(table))
	if err != nil {
		return nil, fmt.Errorf("failed to convert HTML to Markdown: %w", err)
	}
	return []byte(markdown + "\n"), nil
}

func toHTML(table *extractor.ResultTable) string {
	var b strings.Builder
	b.WriteString("<table><thead><tr>")
	for _, h := range table.Headers {
		b.WriteString("<th>" + html.EscapeString(h) + "</th>")
	}
	b.WriteString("</tr></thead><tbody>")
	for _, row := range table.Rows {
		b.WriteString("<tr>")
		for _, cell := range row {
			b.WriteString("<td>" + html.EscapeString(cell) + "</td>")
		}
		b.WriteString("</tr>")
	}
	b.WriteString("</tbody></table>")
	return b.String()
}
