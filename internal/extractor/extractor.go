package extractor

import (
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// TableMarker is the class substring carried by every results table on the site.
const TableMarker = "Table-module"

// TableSelector matches the results table; usable both by goquery and by the
// browser when waiting for the page to render.
const TableSelector = `table[class*="` + TableMarker + `"]`

// Parse builds a queryable document from rendered HTML.
func Parse(html string) (*goquery.Document, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, fmt.Errorf("failed to parse HTML: %w", err)
	}
	return doc, nil
}

// Locate returns the first results table in doc. Later matches are ignored.
func Locate(doc *goquery.Document) (*goquery.Selection, bool) {
	table := doc.Find(TableSelector).First()
	return table, table.Length() > 0
}

// LocateHTML parses html and returns its first results table.
// Unparseable input is reported as no table.
func LocateHTML(html string) (*goquery.Selection, bool) {
	doc, err := Parse(html)
	if err != nil {
		return nil, false
	}
	return Locate(doc)
}

func cellTexts(cells *goquery.Selection) []string {
	texts := make([]string, 0, cells.Length())
	cells.Each(func(_ int, cell *goquery.Selection) {
		texts = append(texts, strings.TrimSpace(cell.Text()))
	})
	return texts
}
