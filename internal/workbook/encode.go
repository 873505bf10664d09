package workbook

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/xuri/excelize/v2"

	"pricemark/internal/grid"
	"pricemark/internal/pipeline"
)

// allSourcesSheet is the consolidated view collecting every processed sheet
// with a leading source column.
const allSourcesSheet = "All Sources"

// Encode writes the processed sheets to an xlsx workbook: one worksheet per
// result plus, when the workbook had several sheets, a consolidated view.
// Markup columns get a number format matching the configured decimal places
// so values like 13.4 render as 13.40.
func Encode(results []*pipeline.SheetResult, filePath string) error {
	f := excelize.NewFile()
	defer f.Close()

	for i, res := range results {
		name := res.Sheet
		if i == 0 {
			f.SetSheetName(f.GetSheetName(0), name)
		} else if _, err := f.NewSheet(name); err != nil {
			return fmt.Errorf("failed to create sheet %q: %w", name, err)
		}

		if err := writeGrid(f, name, res.Grid); err != nil {
			return err
		}
		if err := styleMarkupColumns(f, name, res); err != nil {
			return err
		}
	}

	if len(results) > 1 {
		if err := writeAllSources(f, results); err != nil {
			return err
		}
	}

	slog.Info("Encoded workbook",
		slog.String("file_path", filePath),
		slog.Int("sheets", len(results)))
	return f.SaveAs(filePath)
}

func writeGrid(f *excelize.File, sheet string, g grid.Grid) error {
	for i, row := range g {
		values := make([]interface{}, len(row))
		for j, cell := range row {
			values[j] = cell.Value()
		}
		addr, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(sheet, addr, &values); err != nil {
			return fmt.Errorf("failed to write row %d of sheet %q: %w", i, sheet, err)
		}
	}
	return nil
}

func styleMarkupColumns(f *excelize.File, sheet string, res *pipeline.SheetResult) error {
	if len(res.MarkupColumns) == 0 || len(res.Grid) < 2 {
		return nil
	}

	numFmt := "0"
	if res.DecimalPlaces > 0 {
		numFmt = "0." + strings.Repeat("0", res.DecimalPlaces)
	}
	styleID, err := f.NewStyle(&excelize.Style{CustomNumFmt: &numFmt})
	if err != nil {
		return fmt.Errorf("failed to create number style: %w", err)
	}

	first := res.MarkupColumns[0].ColumnIndex + 1
	last := res.MarkupColumns[len(res.MarkupColumns)-1].ColumnIndex + 1
	start, err := excelize.CoordinatesToCellName(first, 2)
	if err != nil {
		return err
	}
	end, err := excelize.CoordinatesToCellName(last, len(res.Grid))
	if err != nil {
		return err
	}
	return f.SetCellStyle(sheet, start, end, styleID)
}

// writeAllSources stacks every processed sheet under a shared header with a
// leading Source column. Supplier workbooks carry one layout per file, so
// the first sheet's headers stand for all of them.
func writeAllSources(f *excelize.File, results []*pipeline.SheetResult) error {
	if _, err := f.NewSheet(allSourcesSheet); err != nil {
		return fmt.Errorf("failed to create consolidated sheet: %w", err)
	}

	header := append([]interface{}{"Source"}, rowValues(results[0].Grid[0])...)
	if err := f.SetSheetRow(allSourcesSheet, "A1", &header); err != nil {
		return err
	}

	rowNum := 2
	for _, res := range results {
		for _, row := range res.Grid[1:] {
			values := append([]interface{}{res.Sheet}, rowValues(row)...)
			addr, err := excelize.CoordinatesToCellName(1, rowNum)
			if err != nil {
				return err
			}
			if err := f.SetSheetRow(allSourcesSheet, addr, &values); err != nil {
				return err
			}
			rowNum++
		}
	}
	return nil
}

func rowValues(row grid.Row) []interface{} {
	values := make([]interface{}, len(row))
	for i, cell := range row {
		values[i] = cell.Value()
	}
	return values
}
