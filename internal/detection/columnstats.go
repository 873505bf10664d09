package detection

import (
	"strconv"
	"strings"

	"github.com/montanaflynn/stats"

	"pricemark/internal/numeric"
)

// minNumericRatio is the share of rows that must parse as numbers before a
// column is classified numeric at all.
const minNumericRatio = 0.005

// Plausible unit-cost bounds. Values outside these make a column look like
// quantities, barcodes or totals rather than prices.
const (
	minPlausiblePrice = 0.01
	maxPlausiblePrice = 1_000_000
	maxPriceSpread    = 10_000
)

// columnStats summarizes the numeric content of one column.
type columnStats struct {
	values       []float64
	numericRatio float64
}

func (d *detector) columnStats(col int) columnStats {
	var values []float64
	for _, row := range d.rows {
		if v, ok := numeric.FromCell(row.At(col)); ok {
			values = append(values, v)
		}
	}
	ratio := 0.0
	if len(d.rows) > 0 {
		ratio = float64(len(values)) / float64(len(d.rows))
	}
	return columnStats{values: values, numericRatio: ratio}
}

// compositeScore weighs numeric density, plausible price range, precision
// consistency and positivity into one [0,1] score.
func (st columnStats) compositeScore() float64 {
	if len(st.values) == 0 {
		return 0
	}
	score := 0.4 * st.numericRatio
	if st.plausiblePriceRange() {
		score += 0.3
	}
	if st.consistentPrecision() {
		score += 0.2
	}
	if st.allPositive() {
		score += 0.1
	}
	return score
}

// plausiblePriceRange checks the positive values sit in a believable
// unit-cost window without an extreme spread.
func (st columnStats) plausiblePriceRange() bool {
	var positives []float64
	for _, v := range st.values {
		if v > 0 {
			positives = append(positives, v)
		}
	}
	if len(positives) == 0 {
		return false
	}
	min, err := stats.Min(positives)
	if err != nil {
		return false
	}
	max, err := stats.Max(positives)
	if err != nil {
		return false
	}
	return min >= minPlausiblePrice && max <= maxPlausiblePrice && max/min <= maxPriceSpread
}

// consistentPrecision requires at least 80% of values to carry 0-3 decimal
// digits, the precision real prices are quoted at.
func (st columnStats) consistentPrecision() bool {
	consistent := 0
	for _, v := range st.values {
		if decimalDigits(v) <= 3 {
			consistent++
		}
	}
	return float64(consistent) >= 0.8*float64(len(st.values))
}

func (st columnStats) allPositive() bool {
	for _, v := range st.values {
		if v <= 0 {
			return false
		}
	}
	return true
}

func decimalDigits(v float64) int {
	s := strconv.FormatFloat(v, 'f', -1, 64)
	dot := strings.IndexByte(s, '.')
	if dot < 0 {
		return 0
	}
	return len(s) - dot - 1
}
