package pruner

import (
	"log/slog"
	"strings"

	"pricemark/internal/grid"
)

// importantKeywords protect genuinely-empty-but-meaningful columns from
// deletion. A supplier may ship a price list whose cost column is blank for
// this revision; dropping it would silently shift the layout.
var importantKeywords = []string{"price", "cost", "unit", "amount", "value", "carton"}

// pricePhrases is the ordered fallback list for re-finding the cost column
// after pruning, most specific phrase first.
var pricePhrases = []string{
	"unit price",
	"price for carton",
	"unit cost",
	"selling price",
	"list price",
	"price",
	"cost",
	"amount",
	"value",
}

// excludedKeywords mark headers that are definitely not cost columns.
var excludedKeywords = []string{
	"code", "description", "size", "colour", "availability", "effective", "remark",
}

// Prune removes structurally empty columns from a grid whose row 0 is the
// header row. A column survives when any cell in it holds a value, or when
// its header contains an important keyword. Returns the cleaned grid and the
// original indices of the kept columns.
func Prune(g grid.Grid) (grid.Grid, []int) {
	columns := g.ColumnCount()
	kept := make([]int, 0, columns)

	for col := 0; col < columns; col++ {
		if columnHasData(g, col) || importantHeader(g, col) {
			kept = append(kept, col)
		}
	}

	if len(kept) < columns {
		slog.Debug("Pruned empty columns",
			slog.Int("before", columns),
			slog.Int("after", len(kept)))
	}

	cleaned := make(grid.Grid, len(g))
	for i, row := range g {
		newRow := make(grid.Row, len(kept))
		for j, col := range kept {
			newRow[j] = row.At(col)
		}
		cleaned[i] = newRow
	}
	return cleaned, kept
}

func columnHasData(g grid.Grid, col int) bool {
	for _, row := range g {
		if !row.At(col).IsEmpty() {
			return true
		}
	}
	return false
}

func importantHeader(g grid.Grid, col int) bool {
	if len(g) == 0 {
		return false
	}
	header := strings.ToLower(strings.TrimSpace(g[0].At(col).String()))
	if header == "" {
		return false
	}
	for _, kw := range importantKeywords {
		if strings.Contains(header, kw) {
			return true
		}
	}
	return false
}

// Reindex maps a detected column index from the original header row to its
// position after pruning.
//
// The mapping is text-based and therefore best-effort: the original header
// text is looked up among the cleaned headers, and the hit is only trusted
// when the text itself looks price-like. Anything else falls back to a
// dedicated best-price-column search over the cleaned headers.
func Reindex(originalHeaders, cleanedHeaders grid.Row, originalIndex int) int {
	target := strings.ToLower(strings.TrimSpace(originalHeaders.At(originalIndex).String()))

	if target != "" {
		for i, cell := range cleanedHeaders {
			text := strings.ToLower(strings.TrimSpace(cell.String()))
			if text != target {
				continue
			}
			// A non-price header here means detection latched onto the
			// wrong text; trust the fallback search instead.
			if priceLikeHeader(text) {
				return i
			}
			break
		}
	}

	slog.Debug("Detected column lost in pruning, searching cleaned headers",
		slog.Int("original_index", originalIndex),
		slog.String("header", target))
	return bestPriceColumn(cleanedHeaders)
}

func priceLikeHeader(text string) bool {
	return strings.Contains(text, "price") ||
		strings.Contains(text, "cost") ||
		strings.Contains(text, "unit")
}

// bestPriceColumn picks the most plausible cost column from header text
// alone: the first header matching a price phrase, else the first header
// not carrying an exclusion keyword, else column 0.
func bestPriceColumn(headers grid.Row) int {
	lowered := make([]string, len(headers))
	for i, cell := range headers {
		lowered[i] = strings.ToLower(strings.TrimSpace(cell.String()))
	}

	for _, phrase := range pricePhrases {
		for i, h := range lowered {
			if strings.Contains(h, phrase) {
				return i
			}
		}
	}

	for i, h := range lowered {
		excluded := false
		for _, kw := range excludedKeywords {
			if strings.Contains(h, kw) {
				excluded = true
				break
			}
		}
		if !excluded {
			return i
		}
	}
	return 0
}
