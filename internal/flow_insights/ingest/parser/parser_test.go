package parser

import (
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/sarayu-labs/chat-insights/internal/flow_insights/domain"
)

const report = `ConversationID,RecipeFlow,Channel
c1,Greeting -> MenuShown -> Order,web
c2,Greeting -> MenuShown,whatsapp
c3,"Greeting -> Help, please",web
`

func TestParseCSV_Column(t *testing.T) {
	tbl, err := ParseCSV(strings.NewReader(report))
	require.NoError(t, err)

	assert.Equal(t, []string{"ConversationID", "RecipeFlow", "Channel"}, tbl.Header)
	require.Len(t, tbl.Rows, 3)

	col, err := tbl.Column("RecipeFlow")
	require.NoError(t, err)
	assert.Equal(t, []string{
		"Greeting -> MenuShown -> Order",
		"Greeting -> MenuShown",
		"Greeting -> Help, please",
	}, col)
}

func TestParseCSV_StripsBOM(t *testing.T) {
	tbl, err := ParseCSV(strings.NewReader("\ufeffRecipeFlow\nA -> B\n"))
	require.NoError(t, err)

	col, err := tbl.Column("RecipeFlow")
	require.NoError(t, err)
	assert.Equal(t, []string{"A -> B"}, col)
}

func TestParseCSV_RaggedRows(t *testing.T) {
	tbl, err := ParseCSV(strings.NewReader("id,RecipeFlow\n1\n2,A -> B\n"))
	require.NoError(t, err)

	col, err := tbl.Column("RecipeFlow")
	require.NoError(t, err)
	assert.Equal(t, []string{"", "A -> B"}, col)
}

func TestTable_MissingColumn(t *testing.T) {
	tbl, err := ParseCSV(strings.NewReader("id,recipeflow\n1,A\n"))
	require.NoError(t, err)

	_, err = tbl.Column("RecipeFlow")
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrMissingColumn))
	assert.Contains(t, err.Error(), "RecipeFlow")
}

func TestTable_EmptyUpload(t *testing.T) {
	tbl, err := ParseCSV(strings.NewReader(""))
	require.NoError(t, err)

	_, err = tbl.Column("RecipeFlow")
	assert.True(t, errors.Is(err, domain.ErrMissingColumn))
}

func TestParseXLSX(t *testing.T) {
	f := excelize.NewFile()
	defer f.Close()
	require.NoError(t, f.SetSheetRow("Sheet1", "A1", &[]interface{}{"id", "RecipeFlow"}))
	require.NoError(t, f.SetSheetRow("Sheet1", "A2", &[]interface{}{"1", "Greeting -> Order"}))
	require.NoError(t, f.SetSheetRow("Sheet1", "A3", &[]interface{}{"2", "Greeting"}))
	buf, err := f.WriteToBuffer()
	require.NoError(t, err)

	tbl, err := ParseXLSX(buf)
	require.NoError(t, err)

	col, err := tbl.Column("RecipeFlow")
	require.NoError(t, err)
	assert.Equal(t, []string{"Greeting -> Order", "Greeting"}, col)
}

func TestSniff(t *testing.T) {
	cases := []struct {
		filename string
		want     string
		wantErr  bool
	}{
		{"report.csv", "csv", false},
		{"REPORT.CSV", "csv", false},
		{"csv-export.txt", "csv", false},
		{"flows.xlsx", "xlsx", false},
		{"flows.json", "", true},
		{"", "", true},
	}
	for _, tc := range cases {
		t.Run(tc.filename, func(t *testing.T) {
			got, err := Sniff(tc.filename)
			if tc.wantErr {
				assert.True(t, errors.Is(err, domain.ErrUnsupportedFile))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestRegistry_Decode(t *testing.T) {
	r := NewRegistry()

	tbl, err := r.Decode("report.csv", []byte(report))
	require.NoError(t, err)
	assert.Len(t, tbl.Rows, 3)

	_, err = r.Decode("report.pdf", []byte(report))
	assert.True(t, errors.Is(err, domain.ErrUnsupportedFile))

	_, err = r.Decode("report.xlsx", []byte("definitely not a zip"))
	assert.True(t, errors.Is(err, domain.ErrDecodeFailed))
}

func TestRegistry_Get(t *testing.T) {
	r := NewRegistry()

	p, err := r.Get("csv")
	require.NoError(t, err)
	assert.IsType(t, &CSVParser{}, p)

	_, err = r.Get("pdf")
	assert.True(t, errors.Is(err, domain.ErrUnsupportedFile))
}

type cannedParser struct{ table *Table }

func (p cannedParser) Parse(io.Reader) (*Table, error) { return p.table, nil }
func (cannedParser) SupportedFormats() []string        { return []string{"csv"} }

func TestRegistry_Register(t *testing.T) {
	r := NewRegistry()
	canned := &Table{Header: []string{"RecipeFlow"}, Rows: [][]string{{"A -> B"}}}
	r.Register(cannedParser{table: canned})

	tbl, err := r.Decode("report.csv", []byte("ignored"))
	require.NoError(t, err)
	assert.Same(t, canned, tbl)

	p, err := r.Get("xlsx")
	require.NoError(t, err)
	assert.IsType(t, &XLSXParser{}, p)
}
