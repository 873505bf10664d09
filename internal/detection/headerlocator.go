package detection

import (
	"log/slog"
	"regexp"
	"strconv"
	"strings"

	"pricemark/internal/errors"
	"pricemark/internal/grid"
)

// maxHeaderScanRows bounds the header search to the top of the sheet.
// Supplier files put logos, contact details and blank padding above the
// header, but never more than a handful of rows of it.
const maxHeaderScanRows = 10

var datePattern = regexp.MustCompile(`^\d{1,2}[/-]\d{1,2}[/-]\d{2,4}$`)

// LocateHeaderRow scans the first rows of a raw grid and returns the index
// of the row most likely to contain column labels.
//
// Each candidate row is scored: keyword-bearing cells score +10 (first
// matching keyword per cell only), price/cost cells +15 with a further +20
// when "unit" appears alongside, bare numbers and dates −5. Wide populated
// rows (3+ cells) earn +2 per populated cell and rows with two or more
// keyword cells earn +5 per keyword cell. The first strictly-best row wins;
// if no row scores above zero the sheet has no recognizable header and a
// HEADERS_NOT_FOUND error is returned.
func LocateHeaderRow(g grid.Grid) (int, error) {
	bestIndex := -1
	bestScore := 0

	limit := len(g)
	if limit > maxHeaderScanRows {
		limit = maxHeaderScanRows
	}

	for i := 0; i < limit; i++ {
		score := scoreHeaderRow(g[i])
		slog.Debug("Header row candidate scored",
			slog.Int("row", i),
			slog.Int("score", score))
		if score > bestScore {
			bestScore = score
			bestIndex = i
		}
	}

	if bestIndex < 0 {
		return -1, errors.ErrHeadersNotFound
	}
	return bestIndex, nil
}

func scoreHeaderRow(row grid.Row) int {
	score := 0
	populated := 0
	keywordCells := 0

	for _, cell := range row {
		text := strings.ToLower(strings.TrimSpace(cell.String()))
		if text == "" {
			continue
		}
		populated++

		for _, kw := range headerKeywords {
			if strings.Contains(text, kw) {
				score += 10
				keywordCells++
				break
			}
		}

		if strings.Contains(text, "price") || strings.Contains(text, "cost") {
			score += 15
			if strings.Contains(text, "unit") {
				score += 20
			}
		}

		// Headers are words, not data. Penalize cells that are pure
		// numbers or short dates.
		if looksLikeNumber(text) || datePattern.MatchString(text) {
			score -= 5
		}
	}

	if populated >= 3 {
		score += 2 * populated
	}
	if keywordCells >= 2 {
		score += 5 * keywordCells
	}
	return score
}

func looksLikeNumber(text string) bool {
	_, err := strconv.ParseFloat(strings.ReplaceAll(text, ",", ""), 64)
	return err == nil
}
