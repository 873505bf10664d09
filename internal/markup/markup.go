package markup

import (
	"fmt"
	"log/slog"
	"math"
	"strconv"

	"github.com/shopspring/decimal"

	"pricemark/internal/errors"
	"pricemark/internal/grid"
	"pricemark/internal/numeric"
)

// Config controls how markup columns are computed and labelled.
type Config struct {
	// Percentages are the markup percentages to append, one column each.
	Percentages []float64

	// DecimalPlaces is the rounding precision for computed prices, 0-10.
	DecimalPlaces int

	// CurrencySymbol optionally prefixes the generated column headers.
	CurrencySymbol string
}

// Column describes one generated markup column.
type Column struct {
	Percentage  float64
	ColumnIndex int
	Header      string
}

// minValidCostRatio is the share of cost cells that must parse before the
// column is accepted. Below this the output would be almost entirely empty,
// which points at a mis-detected column rather than gappy data.
const minValidCostRatio = 0.005

// Columns lays out the markup columns that Apply will append after the
// existing headers. Column indices are unique and start at headerLength.
func Columns(cfg Config, headerLength int) []Column {
	columns := make([]Column, len(cfg.Percentages))
	for i, p := range cfg.Percentages {
		columns[i] = Column{
			Percentage:  p,
			ColumnIndex: headerLength + i,
			Header:      fmt.Sprintf("%s%s%% Markup", cfg.CurrencySymbol, formatPercentage(p)),
		}
	}
	return columns
}

// formatPercentage renders integral percentages without decimals and
// fractional ones with a single decimal place.
func formatPercentage(p float64) string {
	if p == math.Trunc(p) {
		return strconv.FormatFloat(p, 'f', 0, 64)
	}
	return strconv.FormatFloat(p, 'f', 1, 64)
}

// Apply computes the configured markup columns from the cost column and
// appends them to every row. Row 0 of the grid must be the header row.
//
// Configuration and structure are validated before any row is touched; a
// violation fails the whole batch with a coded error. Once validated, the
// computation is per-row and non-fatal: a row whose cost cell does not parse
// gets absent markup cells and its siblings compute normally.
//
// Markup prices are computed with exact decimal arithmetic and rounded
// half away from zero to DecimalPlaces, so binary floating point never
// leaks into the output. A zero cost yields zero markup.
func Apply(g grid.Grid, costColumn int, cfg Config) (grid.Grid, error) {
	if err := validate(g, costColumn, cfg); err != nil {
		return nil, err
	}

	headers := g[0]
	columns := Columns(cfg, len(headers))

	out := make(grid.Grid, len(g))

	headerRow := make(grid.Row, len(headers), len(headers)+len(columns))
	copy(headerRow, headers)
	for _, col := range columns {
		headerRow = append(headerRow, grid.Text(col.Header))
	}
	out[0] = headerRow

	for i, row := range g[1:] {
		out[i+1] = applyRow(row, costColumn, len(headers), columns, cfg.DecimalPlaces)
	}
	return out, nil
}

// applyRow pads a data row to the header width and appends one markup cell
// per configured percentage. Unexpected arithmetic failures are contained to
// the row: it falls back to absent markup cells and processing continues.
func applyRow(row grid.Row, costColumn, width int, columns []Column, places int) grid.Row {
	padded := make(grid.Row, width, width+len(columns))
	for i := 0; i < width; i++ {
		padded[i] = row.At(i)
	}

	cost, ok := numeric.FromCell(row.At(costColumn))
	if !ok {
		for range columns {
			padded = append(padded, grid.Absent())
		}
		return padded
	}

	cells, err := markupCells(cost, columns, places)
	if err != nil {
		slog.Error("Markup computation failed for row",
			slog.String("code", errors.Code(err)),
			slog.String("error", err.Error()))
		for range columns {
			padded = append(padded, grid.Absent())
		}
		return padded
	}
	return append(padded, cells...)
}

func markupCells(cost float64, columns []Column, places int) (cells grid.Row, err error) {
	defer func() {
		if rec := recover(); rec != nil {
			cells = nil
			err = errors.ComputationError(fmt.Errorf("%v", rec))
		}
	}()

	c := decimal.NewFromFloat(cost)
	hundred := decimal.NewFromInt(100)
	for _, col := range columns {
		factor := decimal.NewFromFloat(col.Percentage).Div(hundred).Add(decimal.NewFromInt(1))
		price, _ := c.Mul(factor).Round(int32(places)).Float64()
		cells = append(cells, grid.Number(price))
	}
	return cells, nil
}

// validate performs the eager whole-batch checks. Anything caught here is a
// structural or configuration error and aborts before row processing.
func validate(g grid.Grid, costColumn int, cfg Config) error {
	if len(g) == 0 || g.IsEmpty() {
		return errors.ErrEmptyGrid
	}

	headers := g[0]
	if costColumn < 0 || costColumn >= len(headers) {
		return errors.ColumnOutOfRangeError(costColumn, len(headers))
	}

	if len(cfg.Percentages) == 0 {
		return errors.InvalidConfigError("percentages", "must not be empty")
	}
	for _, p := range cfg.Percentages {
		if p < 0 || math.IsInf(p, 0) || math.IsNaN(p) {
			return errors.InvalidConfigError("percentages",
				fmt.Sprintf("must be non-negative, got %v", p))
		}
	}
	if cfg.DecimalPlaces < 0 || cfg.DecimalPlaces > 10 {
		return errors.InvalidConfigError("decimal_places",
			fmt.Sprintf("must be between 0 and 10, got %d", cfg.DecimalPlaces))
	}

	dataRows := g[1:]
	valid := 0
	for _, row := range dataRows {
		if _, ok := numeric.FromCell(row.At(costColumn)); ok {
			valid++
		}
	}
	ratio := 0.0
	if len(dataRows) > 0 {
		ratio = float64(valid) / float64(len(dataRows))
	}
	if ratio < minValidCostRatio {
		return errors.InvalidCostColumnError(costColumn, ratio)
	}
	return nil
}
