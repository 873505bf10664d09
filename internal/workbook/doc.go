// Package workbook is the boundary between xlsx files and the in-memory
// grid model: Decode turns a workbook's sheets into grids, Encode writes
// processed results back out, including the consolidated all-sources view.
// The processing pipeline itself never touches container bytes.
package workbook
