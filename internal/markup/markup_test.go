package markup

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pricemark/internal/errors"
	"pricemark/internal/grid"
)

func testGrid() grid.Grid {
	return grid.Grid{
		grid.TextRow("Item", "Cost", "Qty"),
		{grid.Text("A"), grid.Number(10), grid.Number(5)},
		{grid.Text("B"), grid.Number(20), grid.Number(3)},
	}
}

func cellNumber(t *testing.T, c grid.Cell) float64 {
	t.Helper()
	v, ok := c.Number()
	require.True(t, ok, "expected a number cell")
	return v
}

func TestApply(t *testing.T) {
	cfg := Config{Percentages: []float64{10, 20}, DecimalPlaces: 2}

	out, err := Apply(testGrid(), 1, cfg)
	require.NoError(t, err)

	require.Len(t, out, 3)
	assert.Equal(t, "10% Markup", out[0].At(3).String())
	assert.Equal(t, "20% Markup", out[0].At(4).String())

	rowA := out[1]
	assert.Equal(t, "A", rowA.At(0).String())
	assert.InDelta(t, 11.00, cellNumber(t, rowA.At(3)), 1e-9)
	assert.InDelta(t, 12.00, cellNumber(t, rowA.At(4)), 1e-9)

	rowB := out[2]
	assert.InDelta(t, 22.00, cellNumber(t, rowB.At(3)), 1e-9)
	assert.InDelta(t, 24.00, cellNumber(t, rowB.At(4)), 1e-9)
}

func TestApplyZeroCostYieldsZeroMarkup(t *testing.T) {
	g := grid.Grid{
		grid.TextRow("Item", "Cost"),
		{grid.Text("Freebie"), grid.Number(0)},
	}

	out, err := Apply(g, 1, Config{Percentages: []float64{15}, DecimalPlaces: 2})
	require.NoError(t, err)

	assert.InDelta(t, 0, cellNumber(t, out[1].At(2)), 1e-9)
}

// A malformed cost in one row produces empty markup cells for that row only;
// sibling rows still compute.
func TestApplyRowLevelGap(t *testing.T) {
	g := grid.Grid{
		grid.TextRow("Item", "Cost", "Qty"),
		{grid.Text("A"), grid.Number(10), grid.Number(5)},
		{grid.Text("B"), grid.Text("TBC"), grid.Number(2)},
		{grid.Text("C"), grid.Number(4), grid.Number(1)},
	}

	out, err := Apply(g, 1, Config{Percentages: []float64{10}, DecimalPlaces: 2})
	require.NoError(t, err)

	assert.InDelta(t, 11.00, cellNumber(t, out[1].At(3)), 1e-9)
	assert.True(t, out[2].At(3).IsEmpty())
	assert.InDelta(t, 4.40, cellNumber(t, out[3].At(3)), 1e-9)
}

func TestApplyParsesMessyCostText(t *testing.T) {
	g := grid.Grid{
		grid.TextRow("Item", "Cost"),
		{grid.Text("A"), grid.Text("$1,000.00")},
	}

	out, err := Apply(g, 1, Config{Percentages: []float64{10}, DecimalPlaces: 2})
	require.NoError(t, err)

	assert.InDelta(t, 1100.00, cellNumber(t, out[1].At(2)), 1e-9)
}

// Rounding must behave like exact decimal arithmetic, not binary floating
// point: 1.005 rounds up to 1.01 and 19.99 * 1.15 lands on 22.99 exactly.
func TestApplyDecimalExactRounding(t *testing.T) {
	g := grid.Grid{
		grid.TextRow("Item", "Cost"),
		{grid.Text("A"), grid.Number(1.005)},
		{grid.Text("B"), grid.Number(19.99)},
	}

	out, err := Apply(g, 1, Config{Percentages: []float64{0, 15}, DecimalPlaces: 2})
	require.NoError(t, err)

	assert.InDelta(t, 1.01, cellNumber(t, out[1].At(2)), 1e-9)
	assert.InDelta(t, 22.99, cellNumber(t, out[2].At(3)), 1e-9)
}

func TestApplyDeterministic(t *testing.T) {
	cfg := Config{Percentages: []float64{5, 12.5}, DecimalPlaces: 3}

	first, err := Apply(testGrid(), 1, cfg)
	require.NoError(t, err)
	second, err := Apply(testGrid(), 1, cfg)
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestColumnsHeaderFormatting(t *testing.T) {
	tests := []struct {
		name string
		cfg  Config
		want []string
	}{
		{
			name: "integral percentages",
			cfg:  Config{Percentages: []float64{5, 30}},
			want: []string{"5% Markup", "30% Markup"},
		},
		{
			name: "fractional percentage gets one decimal",
			cfg:  Config{Percentages: []float64{12.5}},
			want: []string{"12.5% Markup"},
		},
		{
			name: "currency symbol prefix",
			cfg:  Config{Percentages: []float64{10}, CurrencySymbol: "£"},
			want: []string{"£10% Markup"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			columns := Columns(tt.cfg, 3)
			require.Len(t, columns, len(tt.want))
			for i, col := range columns {
				assert.Equal(t, tt.want[i], col.Header)
				assert.Equal(t, 3+i, col.ColumnIndex)
			}
		})
	}
}

func TestApplyValidation(t *testing.T) {
	tests := []struct {
		name     string
		grid     grid.Grid
		column   int
		cfg      Config
		wantCode string
	}{
		{
			name:     "empty grid",
			grid:     grid.Grid{},
			column:   0,
			cfg:      Config{Percentages: []float64{10}, DecimalPlaces: 2},
			wantCode: "EMPTY_GRID",
		},
		{
			name:     "column out of range",
			grid:     testGrid(),
			column:   7,
			cfg:      Config{Percentages: []float64{10}, DecimalPlaces: 2},
			wantCode: "COLUMN_OUT_OF_RANGE",
		},
		{
			name:     "negative column",
			grid:     testGrid(),
			column:   -1,
			cfg:      Config{Percentages: []float64{10}, DecimalPlaces: 2},
			wantCode: "COLUMN_OUT_OF_RANGE",
		},
		{
			name:     "empty percentages",
			grid:     testGrid(),
			column:   1,
			cfg:      Config{DecimalPlaces: 2},
			wantCode: "INVALID_CONFIG",
		},
		{
			name:     "negative percentage",
			grid:     testGrid(),
			column:   1,
			cfg:      Config{Percentages: []float64{10, -5}, DecimalPlaces: 2},
			wantCode: "INVALID_CONFIG",
		},
		{
			name:     "decimal places out of range",
			grid:     testGrid(),
			column:   1,
			cfg:      Config{Percentages: []float64{10}, DecimalPlaces: 11},
			wantCode: "INVALID_CONFIG",
		},
		{
			name: "cost column without numeric values",
			grid: grid.Grid{
				grid.TextRow("Item", "Cost"),
				{grid.Text("A"), grid.Text("TBC")},
				{grid.Text("B"), grid.Text("POA")},
			},
			column:   1,
			cfg:      Config{Percentages: []float64{10}, DecimalPlaces: 2},
			wantCode: "INVALID_COST_COLUMN",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Apply(tt.grid, tt.column, tt.cfg)
			require.Error(t, err)
			assert.Equal(t, tt.wantCode, errors.Code(err))
		})
	}
}
