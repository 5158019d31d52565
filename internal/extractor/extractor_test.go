package extractor

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const twoTables = `<html><body>
<table class="other"><tbody><tr><td>ignored</td></tr></tbody></table>
<table class="f1-table Table-module_table__abc"><thead><tr><th>Pos</th></tr></thead>
<tbody><tr><td>first</td></tr></tbody></table>
<table class="Table-module_table__def"><thead><tr><th>Pos</th></tr></thead>
<tbody><tr><td>second</td></tr></tbody></table>
</body></html>`

func TestLocate(t *testing.T) {
	t.Run("returns first matching table", func(t *testing.T) {
		table, ok := LocateHTML(twoTables)
		require.True(t, ok)
		assert.Equal(t, "first", table.Find("td").Text())
	})

	t.Run("no marker", func(t *testing.T) {
		_, ok := LocateHTML(`<table class="plain"><tr><td>x</td></tr></table>`)
		assert.False(t, ok)
	})

	t.Run("empty document", func(t *testing.T) {
		_, ok := LocateHTML("")
		assert.False(t, ok)
	})
}

func tableHTML(head, body string) string {
	return `<table class="Table-module_table"><thead>` + head + `</thead><tbody>` + body + `</tbody></table>`
}

func TestDecode(t *testing.T) {
	tests := []struct {
		name   string
		html   string
		wantOK bool
		want   *ResultTable
	}{
		{
			name:   "trims cells and keeps order",
			html:   tableHTML(`<tr><th> Pos </th><th>Driver</th></tr>`, `<tr><td>1</td><td>
				Max <span>Verstappen</span></td></tr><tr><td>2</td><td>Lando Norris</td></tr>`),
			wantOK: true,
			want: &ResultTable{
				Headers: []string{"Pos", "Driver"},
				Rows:    [][]string{{"1", "Max Verstappen"}, {"2", "Lando Norris"}},
			},
		},
		{
			name:   "no header cells",
			html:   tableHTML(``, `<tr><td>1</td></tr>`),
			wantOK: false,
		},
		{
			name:   "first row width differs from header",
			html:   tableHTML(`<tr><th>Pos</th><th>Driver</th></tr>`, `<tr><td>1</td></tr><tr><td>2</td><td>B</td></tr>`),
			wantOK: false,
		},
		{
			name:   "no body rows",
			html:   tableHTML(`<tr><th>Pos</th></tr>`, ``),
			wantOK: false,
		},
		{
			name:   "rows without cells are skipped",
			html:   tableHTML(`<tr><th>Pos</th></tr>`, `<tr></tr><tr><td>1</td></tr>`),
			wantOK: true,
			want: &ResultTable{
				Headers: []string{"Pos"},
				Rows:    [][]string{{"1"}},
			},
		},
		{
			name:   "later rows with another width are dropped",
			html:   tableHTML(`<tr><th>Pos</th><th>Driver</th></tr>`, `<tr><td>1</td><td>A</td></tr><tr><td>NC</td></tr><tr><td>3</td><td>C</td></tr>`),
			wantOK: true,
			want: &ResultTable{
				Headers: []string{"Pos", "Driver"},
				Rows:    [][]string{{"1", "A"}, {"3", "C"}},
				Dropped: 1,
			},
		},
		{
			name:   "only first header row is used",
			html:   tableHTML(`<tr><th>Pos</th></tr><tr><th>Extra</th><th>Row</th></tr>`, `<tr><td>1</td></tr>`),
			wantOK: true,
			want: &ResultTable{
				Headers: []string{"Pos"},
				Rows:    [][]string{{"1"}},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := Extract(tt.html)
			assert.Equal(t, tt.wantOK, ok)
			if tt.wantOK {
				assert.Equal(t, tt.want, got)
			} else {
				assert.Nil(t, got)
			}
		})
	}
}

func TestResultTableEmpty(t *testing.T) {
	var nilTable *ResultTable
	assert.True(t, nilTable.Empty())
	assert.Equal(t, 0, nilTable.Len())
	assert.True(t, (&ResultTable{Headers: []string{"a"}}).Empty())
	assert.False(t, (&ResultTable{Headers: []string{"a"}, Rows: [][]string{{"1"}}}).Empty())
}
