// Package grid defines the in-memory data model for decoded spreadsheets:
// loosely-typed cells, ragged rows, and the grid the processing pipeline
// transforms. The package is pure data; decoding a workbook into a grid and
// encoding a grid back out live in internal/workbook.
package grid
