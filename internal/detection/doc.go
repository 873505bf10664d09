// Package detection locates structure inside noisy supplier spreadsheets.
// It consolidates the two heuristic searches the pipeline depends on into a
// cohesive package.
//
// # Components
//
// 1. HeaderRowLocator: scores the first rows of a raw grid to find the row
// holding column labels rather than data.
//
// 2. CostColumnDetector: runs four independent strategies over the header
// row and data rows to pick the unit-cost column with a confidence score.
//
// # Detection cascade
//
// The detector keeps the best strategy result clearing the configured
// confidence threshold, retries the fuzzy strategies with a relaxed
// threshold, and as a last resort forces a pick of the most numeric-looking
// column:
//
//	exact-header → partial-header → data-pattern → position-heuristic
//	             → relaxed rerun → forced-numeric
//
// Detection is deterministic: identical input always yields the identical
// tagged Result. A failed detection is a zero-confidence Result with column
// index -1, never an error; callers decide whether to abort or prompt.
package detection
