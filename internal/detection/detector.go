package detection

import (
	"log/slog"
	"sort"
	"strings"

	"pricemark/internal/grid"
)

// Method tags the strategy that produced a detection result.
type Method string

const (
	MethodExactHeader       Method = "exact-header"
	MethodPartialHeader     Method = "partial-header"
	MethodDataPattern       Method = "data-pattern"
	MethodPositionHeuristic Method = "position-heuristic"
	MethodForcedNumeric     Method = "forced-numeric"
)

// Result is the outcome of a cost-column search. ColumnIndex is -1 exactly
// when detection failed, in which case Confidence is 0.
type Result struct {
	ColumnIndex  int     `json:"column_index"`
	Confidence   float64 `json:"confidence"`
	Method       Method  `json:"method,omitempty"`
	Alternatives []int   `json:"alternatives,omitempty"`
}

// Options configures cost-column detection.
type Options struct {
	// MinConfidence is the threshold a strategy result must clear.
	MinConfidence float64

	// RequiredDataRows is the minimum number of data rows needed before
	// detection is attempted at all.
	RequiredDataRows int

	// CustomKeywords extends the built-in cost header keywords.
	CustomKeywords []string
}

// DefaultOptions returns default detection options
func DefaultOptions() Options {
	return Options{
		MinConfidence:    0.3,
		RequiredDataRows: 5,
	}
}

// relaxedConfidence is the threshold for the second pass when no strategy
// clears the configured minimum.
const relaxedConfidence = 0.1

func noResult() Result {
	return Result{ColumnIndex: -1}
}

// strategy is one independent heuristic for locating the cost column.
// Strategies are run in a fixed order and each returns a tagged result, so
// the fallback cascade stays auditable strategy by strategy.
type strategy struct {
	method Method
	run    func(d *detector) Result
}

// DetectCostColumn runs the detection strategies over the header row and the
// data rows below it and returns the best-confidence result.
//
// The cascade has three passes: all four strategies against the configured
// minimum confidence, then the non-exact strategies against a relaxed 0.1
// threshold, and finally a forced pick of the single most numeric-looking
// column. When even the forced pass finds nothing numeric the result is
// ColumnIndex -1 with confidence 0: a detection failure the caller decides
// how to handle, not an error.
func DetectCostColumn(headers grid.Row, dataRows []grid.Row, opts Options) Result {
	if len(headers) == 0 || len(dataRows) < opts.RequiredDataRows {
		return noResult()
	}

	d := newDetector(headers, dataRows, opts.CustomKeywords)
	strategies := []strategy{
		{MethodExactHeader, (*detector).exactHeaderMatch},
		{MethodPartialHeader, (*detector).partialHeaderMatch},
		{MethodDataPattern, (*detector).dataPatternMatch},
		{MethodPositionHeuristic, (*detector).positionHeuristic},
	}

	if r, ok := d.bestAbove(strategies, opts.MinConfidence); ok {
		return r
	}

	// Nothing cleared the configured threshold; retry the fuzzy
	// strategies with a relaxed one.
	if r, ok := d.bestAbove(strategies[1:], relaxedConfidence); ok {
		slog.Debug("Cost column found on relaxed pass",
			slog.Int("column", r.ColumnIndex),
			slog.String("method", string(r.Method)))
		return r
	}

	return d.forceNumericPick()
}

func (d *detector) bestAbove(strategies []strategy, threshold float64) (Result, bool) {
	best := noResult()
	for _, s := range strategies {
		r := s.run(d)
		if r.ColumnIndex < 0 || r.Confidence < threshold {
			continue
		}
		if r.Confidence > best.Confidence {
			best = r
		}
	}
	return best, best.ColumnIndex >= 0
}

type detector struct {
	headers  []string // lowercased, trimmed header texts
	rows     []grid.Row
	keywords []string // cost keywords plus custom ones
}

func newDetector(headers grid.Row, rows []grid.Row, custom []string) *detector {
	texts := make([]string, len(headers))
	for i, cell := range headers {
		texts[i] = strings.ToLower(strings.TrimSpace(cell.String()))
	}
	keywords := make([]string, 0, len(costKeywords)+len(custom))
	keywords = append(keywords, costKeywords...)
	for _, kw := range custom {
		keywords = append(keywords, strings.ToLower(strings.TrimSpace(kw)))
	}
	return &detector{headers: texts, rows: rows, keywords: keywords}
}

// exactHeaderMatch looks for a header that equals a cost keyword outright,
// scanning left to right.
func (d *detector) exactHeaderMatch() Result {
	for i, h := range d.headers {
		for _, kw := range d.keywords {
			if h != "" && h == kw {
				return Result{ColumnIndex: i, Confidence: 0.95, Method: MethodExactHeader}
			}
		}
	}
	return noResult()
}

// partialHeaderMatch scores every header by how much of it a cost keyword
// covers, with a bonus for keyword matches anchored at the start.
func (d *detector) partialHeaderMatch() Result {
	type scored struct {
		index int
		score float64
	}
	var candidates []scored

	for i, h := range d.headers {
		if h == "" {
			continue
		}
		best := 0.0
		for _, kw := range d.keywords {
			if kw == "" || !strings.Contains(h, kw) {
				continue
			}
			s := float64(len(kw)) / float64(len(h))
			if strings.HasPrefix(h, kw) {
				s += 0.2
			}
			if s > best {
				best = s
			}
		}
		if best > 0 {
			candidates = append(candidates, scored{index: i, score: best})
		}
	}

	if len(candidates) == 0 {
		return noResult()
	}

	sort.SliceStable(candidates, func(a, b int) bool {
		return candidates[a].score > candidates[b].score
	})

	confidence := candidates[0].score * 0.8
	if confidence > 0.85 {
		confidence = 0.85
	}
	// Several plausible headers make the pick ambiguous.
	if len(candidates) > 1 {
		confidence -= 0.1
	}
	if confidence < 0.1 {
		confidence = 0.1
	}

	var alternatives []int
	for _, c := range candidates[1:] {
		alternatives = append(alternatives, c.index)
		if len(alternatives) == 2 {
			break
		}
	}

	return Result{
		ColumnIndex:  candidates[0].index,
		Confidence:   confidence,
		Method:       MethodPartialHeader,
		Alternatives: alternatives,
	}
}

// dataPatternMatch classifies columns by their values: numeric density,
// plausible price range, consistent precision and positivity, plus a bonus
// when the header itself mentions price.
func (d *detector) dataPatternMatch() Result {
	bestIndex := -1
	bestScore := 0.0

	for col := range d.headers {
		st := d.columnStats(col)
		if st.numericRatio < minNumericRatio {
			continue
		}
		score := st.compositeScore()
		if containsAny(d.headers[col], priceHeaderKeywords) {
			score += 0.3
		}
		if score > bestScore {
			bestScore = score
			bestIndex = col
		}
	}

	if bestIndex < 0 {
		return noResult()
	}

	confidence := bestScore * 0.75
	if confidence > 0.8 {
		confidence = 0.8
	}
	return Result{ColumnIndex: bestIndex, Confidence: confidence, Method: MethodDataPattern}
}

// positionHeuristic falls back to layout convention: supplier sheets put the
// price shortly after the leading identifier columns.
func (d *detector) positionHeuristic() Result {
	for col := 1; col <= 5 && col < len(d.headers); col++ {
		if d.columnStats(col).numericRatio > 0.01 {
			return Result{ColumnIndex: col, Confidence: 0.4, Method: MethodPositionHeuristic}
		}
	}
	return noResult()
}

// forceNumericPick applies the data-pattern scoring to every column without
// the numeric-classification gate and takes the single best, with confidence
// capped low to reflect the desperation of the pick.
func (d *detector) forceNumericPick() Result {
	bestIndex := -1
	bestScore := 0.0

	for col := range d.headers {
		st := d.columnStats(col)
		if len(st.values) == 0 {
			continue
		}
		score := st.compositeScore()
		if score > bestScore {
			bestScore = score
			bestIndex = col
		}
	}

	if bestIndex < 0 {
		return noResult()
	}

	confidence := bestScore * 0.5
	if confidence > 0.4 {
		confidence = 0.4
	}
	slog.Debug("Forcing numeric column pick",
		slog.Int("column", bestIndex),
		slog.Float64("confidence", confidence))
	return Result{ColumnIndex: bestIndex, Confidence: confidence, Method: MethodForcedNumeric}
}

