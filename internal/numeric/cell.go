package numeric

import (
	"math"

	"pricemark/internal/grid"
)

// FromCell extracts a numeric value from a cell. Number cells are used
// directly, text cells go through Parse; booleans, dates and absent cells
// carry no numeric value. The same absolute-value normalization applies to
// number cells so both cell kinds obey one policy.
func FromCell(cell grid.Cell) (float64, bool) {
	if v, ok := cell.Number(); ok {
		if math.IsInf(v, 0) || math.IsNaN(v) {
			return 0, false
		}
		return math.Abs(v), true
	}
	if cell.Kind() == grid.KindText {
		return Parse(cell.String())
	}
	return 0, false
}
