package extractor

import (
	"github.com/PuerkitoBio/goquery"
	"github.com/samber/lo"
)

// ResultTable is a rectangular record set decoded from a results table.
// Every row has exactly len(Headers) cells.
type ResultTable struct {
	Headers []string
	Rows    [][]string
	// Dropped counts body rows discarded because their width differed from the header.
	Dropped int
}

// Len returns the number of data rows.
func (t *ResultTable) Len() int {
	if t == nil {
		return 0
	}
	return len(t.Rows)
}

// Empty reports whether there is nothing worth persisting.
func (t *ResultTable) Empty() bool {
	return t == nil || len(t.Headers) == 0 || len(t.Rows) == 0
}

// Decode reads header labels and body rows out of table.
//
// The second return value is false when the table holds no usable data:
// no header cells, no body rows, or a first row whose width differs from the
// header. Later rows of a different width are dropped and counted in Dropped.
func Decode(table *goquery.Selection) (*ResultTable, bool) {
	headers := cellTexts(table.Find("thead").First().Find("tr").First().Find("th"))

	var rows [][]string
	table.Find("tbody").First().Find("tr").Each(func(_ int, tr *goquery.Selection) {
		if cells := cellTexts(tr.Find("td")); len(cells) > 0 {
			rows = append(rows, cells)
		}
	})

	if len(headers) == 0 || len(rows) == 0 || len(rows[0]) != len(headers) {
		return nil, false
	}

	kept := lo.Filter(rows, func(row []string, _ int) bool {
		return len(row) == len(headers)
	})

	return &ResultTable{
		Headers: headers,
		Rows:    kept,
		Dropped: len(rows) - len(kept),
	}, true
}

// Extract locates and decodes the results table of a rendered page in one step.
func Extract(html string) (*ResultTable, bool) {
	table, ok := LocateHTML(html)
	if !ok {
		return nil, false
	}
	return Decode(table)
}
