// Package pipeline wires the processing stages into one synchronous
// transformation per sheet:
//
//	raw grid → header row location → cost column detection
//	         → empty-column pruning (with index re-alignment)
//	         → markup computation → final grid
//
// The pipeline is pure: it mutates nothing it is handed and holds no state
// between invocations, so a workbook's sheets run concurrently with no
// coordination beyond an errgroup. Decoding a workbook into grids and
// encoding results back out live in internal/workbook.
package pipeline
