package formatter

import (
	"bytes"
	"encoding/csv"
	"testing"

	"f1results/internal/extractor"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCSVRoundTrip(t *testing.T) {
	tables := []*extractor.ResultTable{
		{
			Headers: []string{"Pos", "Driver", "Time/Retired"},
			Rows: [][]string{
				{"1", "Oscar Piastri", "1:35:39.435"},
				{"2", "George Russell", "+15.499s"},
			},
		},
		{
			Headers: []string{"Pos", "Pos"},
			Rows: [][]string{
				{"NC", "driver, with comma"},
				{"DQ", `quoted "name"`},
				{"", "Pérez\nline"},
			},
		},
	}

	for _, table := range tables {
		out, err := Format(table, FormatCSV)
		require.NoError(t, err)

		records, err := csv.NewReader(bytes.NewReader(out)).ReadAll()
		require.NoError(t, err)
		require.NotEmpty(t, records)
		assert.Equal(t, table.Headers, records[0])
		assert.Equal(t, table.Rows, records[1:])
	}
}

func TestCSVLayout(t *testing.T) {
	out, err := ToCSV(&extractor.ResultTable{
		Headers: []string{"Pos", "Driver"},
		Rows:    [][]string{{"1", "A"}, {"2", "B"}},
	})
	require.NoError(t, err)
	assert.Equal(t, "Pos,Driver\n1,A\n2,B\n", string(out))
}

func TestMarkdown(t *testing.T) {
	out, err := Format(&extractor.ResultTable{
		Headers: []string{"Pos", "Driver"},
		Rows:    [][]string{{"1", "Lando Norris"}},
	}, FormatMarkdown)
	require.NoError(t, err)

	s := string(out)
	assert.Contains(t, s, "|")
	assert.Contains(t, s, "Driver")
	assert.Contains(t, s, "Lando Norris")
	assert.Contains(t, s, "---")
}

func TestUnknownFormat(t *testing.T) {
	_, err := Format(&extractor.ResultTable{}, "xml")
	assert.Error(t, err)
	_, err = Ext("xml")
	assert.Error(t, err)

	ext, err := Ext(FormatCSV)
	require.NoError(t, err)
	assert.Equal(t, ".csv", ext)
	ext, err = Ext(FormatMarkdown)
	require.NoError(t, err)
	assert.Equal(t, ".md", ext)
}
