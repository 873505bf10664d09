package workbook

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"pricemark/internal/detection"
	"pricemark/internal/grid"
	"pricemark/internal/markup"
	"pricemark/internal/pipeline"
)

func writeTestWorkbook(t *testing.T) string {
	t.Helper()

	f := excelize.NewFile()
	sheet := "Prices"
	f.SetSheetName(f.GetSheetName(0), sheet)

	rows := [][]interface{}{
		{"Item", "Cost", "Qty"},
		{"A", 10.5, 5},
		{"B", "TBC", 3},
	}
	for i, row := range rows {
		addr, err := excelize.CoordinatesToCellName(1, i+1)
		require.NoError(t, err)
		require.NoError(t, f.SetSheetRow(sheet, addr, &row))
	}

	path := filepath.Join(t.TempDir(), "prices.xlsx")
	require.NoError(t, f.SaveAs(path))
	return path
}

func TestDecode(t *testing.T) {
	path := writeTestWorkbook(t)

	sheets, err := Decode(path)
	require.NoError(t, err)
	require.Len(t, sheets, 1)

	sh := sheets[0]
	assert.Equal(t, "Prices", sh.Name)
	require.Len(t, sh.Grid, 3)

	assert.Equal(t, grid.KindText, sh.Grid[0].At(0).Kind())
	assert.Equal(t, "Item", sh.Grid[0].At(0).String())

	// Numeric-looking text becomes a number cell.
	v, ok := sh.Grid[1].At(1).Number()
	require.True(t, ok)
	assert.InDelta(t, 10.5, v, 1e-9)

	// Placeholder text stays text for the numeric parser to reject later.
	assert.Equal(t, grid.KindText, sh.Grid[2].At(1).Kind())
}

func TestDecodeMissingFile(t *testing.T) {
	_, err := Decode(filepath.Join(t.TempDir(), "missing.xlsx"))
	assert.Error(t, err)
}

func testResult(sheet string) *pipeline.SheetResult {
	g := grid.Grid{
		grid.TextRow("Item", "Cost", "10% Markup"),
		{grid.Text("A"), grid.Number(10), grid.Number(11)},
		{grid.Text("B"), grid.Absent(), grid.Absent()},
	}
	return &pipeline.SheetResult{
		Sheet:         sheet,
		Grid:          g,
		Detection:     detection.Result{ColumnIndex: 1, Confidence: 0.95, Method: detection.MethodExactHeader},
		CostColumn:    1,
		MarkupColumns: []markup.Column{{Percentage: 10, ColumnIndex: 2, Header: "10% Markup"}},
		RowsProcessed: 2,
		DecimalPlaces: 2,
	}
}

func TestEncode(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.xlsx")

	err := Encode([]*pipeline.SheetResult{testResult("Prices")}, path)
	require.NoError(t, err)

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, []string{"Prices"}, f.GetSheetList())

	header, err := f.GetCellValue("Prices", "C1")
	require.NoError(t, err)
	assert.Equal(t, "10% Markup", header)

	// Markup value rendered with the configured decimal places.
	value, err := f.GetCellValue("Prices", "C2")
	require.NoError(t, err)
	assert.Equal(t, "11.00", value)

	gap, err := f.GetCellValue("Prices", "C3")
	require.NoError(t, err)
	assert.Empty(t, gap)
}

func TestEncodeConsolidatedView(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.xlsx")

	results := []*pipeline.SheetResult{testResult("July"), testResult("August")}
	require.NoError(t, Encode(results, path))

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer f.Close()

	assert.Contains(t, f.GetSheetList(), allSourcesSheet)

	source, err := f.GetCellValue(allSourcesSheet, "A1")
	require.NoError(t, err)
	assert.Equal(t, "Source", source)

	firstSource, err := f.GetCellValue(allSourcesSheet, "A2")
	require.NoError(t, err)
	assert.Equal(t, "July", firstSource)

	// Two data rows per sheet: August starts at row 4.
	thirdSource, err := f.GetCellValue(allSourcesSheet, "A4")
	require.NoError(t, err)
	assert.Equal(t, "August", thirdSource)
}
