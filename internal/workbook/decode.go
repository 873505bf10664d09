package workbook

import (
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"

	"pricemark/internal/grid"
	"pricemark/internal/pipeline"
)

// Decode reads every worksheet of an xlsx file into a grid of typed cells.
// Cells whose text parses as a plain number become number cells; everything
// else stays text and is left to the numeric parser downstream.
func Decode(filePath string) ([]pipeline.Sheet, error) {
	f, err := excelize.OpenFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	defer f.Close()

	var sheets []pipeline.Sheet
	for _, name := range f.GetSheetList() {
		rows, err := f.GetRows(name)
		if err != nil {
			return nil, fmt.Errorf("failed to read sheet %q: %w", name, err)
		}

		g := make(grid.Grid, len(rows))
		for i, row := range rows {
			g[i] = decodeRow(row)
		}

		slog.Info("Decoded worksheet",
			slog.String("sheet", name),
			slog.Int("rows", len(g)))
		sheets = append(sheets, pipeline.Sheet{Name: name, Grid: g})
	}

	if len(sheets) == 0 {
		return nil, fmt.Errorf("workbook %q contains no worksheets", filePath)
	}
	return sheets, nil
}

func decodeRow(row []string) grid.Row {
	out := make(grid.Row, len(row))
	for i, text := range row {
		out[i] = decodeCell(text)
	}
	return out
}

func decodeCell(text string) grid.Cell {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return grid.Absent()
	}
	if v, err := strconv.ParseFloat(trimmed, 64); err == nil {
		return grid.Number(v)
	}
	return grid.Text(text)
}
