package grid

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestCellIsEmpty(t *testing.T) {
	assert.True(t, Absent().IsEmpty())
	assert.True(t, Text("").IsEmpty())
	assert.True(t, Text("   ").IsEmpty())
	assert.False(t, Text("x").IsEmpty())
	assert.False(t, Number(0).IsEmpty())
	assert.False(t, Bool(false).IsEmpty())
}

func TestCellString(t *testing.T) {
	assert.Equal(t, "hello", Text("hello").String())
	assert.Equal(t, "10.5", Number(10.5).String())
	assert.Equal(t, "10", Number(10).String())
	assert.Equal(t, "true", Bool(true).String())
	assert.Equal(t, "2024-07-01", Date(time.Date(2024, 7, 1, 0, 0, 0, 0, time.UTC)).String())
	assert.Equal(t, "", Absent().String())
}

func TestRowAt(t *testing.T) {
	row := Row{Text("a"), Number(1)}

	assert.Equal(t, "a", row.At(0).String())
	assert.True(t, row.At(2).IsEmpty(), "missing trailing cells are absent")
	assert.True(t, row.At(-1).IsEmpty())
}

func TestGridColumnCount(t *testing.T) {
	g := Grid{
		TextRow("a", "b"),
		TextRow("a", "b", "c", "d"),
		TextRow("a"),
	}
	assert.Equal(t, 4, g.ColumnCount())
	assert.Equal(t, 0, Grid{}.ColumnCount())
}

func TestGridIsEmpty(t *testing.T) {
	assert.True(t, Grid{}.IsEmpty())
	assert.True(t, Grid{{Absent(), Text("  ")}}.IsEmpty())
	assert.False(t, Grid{{Number(0)}}.IsEmpty())
}
