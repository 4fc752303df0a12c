package tabular

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// twoLevelLayout matches a grid with two hierarchy columns followed by three
// year columns, header on row 0.
func twoLevelLayout() *Layout {
	return &Layout{
		HeaderRow:      0,
		Depth:          2,
		FirstPeriodCol: 2,
		Periods: []PeriodColumn{
			{Col: 2, Label: "2018"},
			{Col: 3, Label: "2019"},
			{Col: 4, Label: "2020"},
		},
		FirstDataRow: 1,
	}
}

func TestResolveForwardFill(t *testing.T) {
	grid := Grid{
		{"Province/Territory", "Category", "2018", "2019", "2020"},
		{"Quebec", "Program A", "1", "2", "3"},
		{"", "Program B", "4", "5", "6"},
	}

	res := Resolve(grid, twoLevelLayout(), ResolveOptions{})
	require.Len(t, res.Rows, 2)
	assert.Zero(t, res.Dropped)

	// Blank level-0 cell inherits "Quebec" from the row above.
	assert.Equal(t, []string{"Quebec", "Program A"}, res.Rows[0].Labels)
	assert.Equal(t, []string{"Quebec", "Program B"}, res.Rows[1].Labels)
	assert.False(t, res.Rows[0].Subtotal)
	assert.False(t, res.Rows[1].Subtotal)
}

func TestResolveNewParentInvalidatesChildren(t *testing.T) {
	grid := Grid{
		{"Province/Territory", "Category", "Sub", "2018"},
		{"Quebec", "Program A", "Stream 1", "1"},
		{"Ontario", "", "", "2"},
	}
	layout := &Layout{
		Depth:          3,
		FirstPeriodCol: 3,
		Periods:        []PeriodColumn{{Col: 3, Label: "2018"}},
		FirstDataRow:   1,
	}

	res := Resolve(grid, layout, ResolveOptions{})
	require.Len(t, res.Rows, 2)

	// A new level-0 label must not leak Quebec's children.
	assert.Equal(t, []string{"Ontario", "", ""}, res.Rows[1].Labels)
}

func TestResolveSubtotalMarkers(t *testing.T) {
	grid := Grid{
		{"Province/Territory", "Category", "2018", "2019", "2020"},
		{"Ontario", "Program A", "1", "2", "3"},
		{"Ontario", "Total", "1", "2", "3"},
		{"Quebec Total", "", "4", "5", "6"},
		{"Total", "", "5", "7", "9"},
	}

	res := Resolve(grid, twoLevelLayout(), ResolveOptions{})
	require.Len(t, res.Rows, 4)

	assert.False(t, res.Rows[0].Subtotal)
	// Marker token at the deepest non-empty level.
	assert.True(t, res.Rows[1].Subtotal)
	// Trailing " Total" on the label itself; the label is stripped back to
	// the province name.
	assert.True(t, res.Rows[2].Subtotal)
	assert.Equal(t, "Quebec", res.Rows[2].Labels[0])
	// Grand total.
	assert.True(t, res.Rows[3].Subtotal)
	assert.Equal(t, "Total", res.Rows[3].Labels[0])
}

func TestResolveTrimsFooterRows(t *testing.T) {
	grid := Grid{
		{"Province/Territory", "Category", "2018", "2019", "2020"},
		{"Ontario", "Program A", "1", "2", "3"},
		{"Total", "", "1", "2", "3"},
		{"Notes: -- means a suppressed count."},
		{"Source: open government portal."},
	}

	res := Resolve(grid, twoLevelLayout(), ResolveOptions{})
	require.Len(t, res.Rows, 2)
	assert.True(t, res.Rows[1].Subtotal)
	assert.Equal(t, 2, res.Rows[1].SourceRow)

	// no-trim keeps the footnote rows, flagged detail.
	res = Resolve(grid, twoLevelLayout(), ResolveOptions{NoTrim: true})
	require.Len(t, res.Rows, 4)
	assert.True(t, res.Rows[1].Subtotal)
	assert.False(t, res.Rows[2].Subtotal)
	assert.False(t, res.Rows[3].Subtotal)
}

func TestResolveTrimsFootnoteWithBlankFirstCell(t *testing.T) {
	// The footnote's level-0 cell is blank, so forward-fill would hand it
	// the "Total" label; the trim boundary must stay on the row whose raw
	// cell read "Total".
	grid := Grid{
		{"Province/Territory", "Category", "2018", "2019", "2020"},
		{"Ontario", "Program A", "1", "2", "3"},
		{"Total", "", "1", "2", "3"},
		{"", "Source: open government portal."},
	}

	res := Resolve(grid, twoLevelLayout(), ResolveOptions{})
	require.Len(t, res.Rows, 2)
	assert.True(t, res.Rows[1].Subtotal)
	assert.Equal(t, 2, res.Rows[1].SourceRow)

	// no-trim keeps the footnote, flagged detail; the grand-total flag still
	// lands on the row that actually read "Total".
	res = Resolve(grid, twoLevelLayout(), ResolveOptions{NoTrim: true})
	require.Len(t, res.Rows, 3)
	assert.True(t, res.Rows[1].Subtotal)
	assert.False(t, res.Rows[2].Subtotal)
	assert.Equal(t, 2, res.Rows[1].SourceRow)
}

func TestResolveCaseInsensitiveGrandTotal(t *testing.T) {
	grid := Grid{
		{"Province/Territory", "Category", "2018", "2019", "2020"},
		{"Ontario", "Program A", "1", "2", "3"},
		{"TOTAL", "", "1", "2", "3"},
		{"footnote"},
	}

	res := Resolve(grid, twoLevelLayout(), ResolveOptions{})
	require.Len(t, res.Rows, 2)
	// Standalone grand-total labels canonicalize to exactly "Total".
	assert.Equal(t, "Total", res.Rows[1].Labels[0])
	assert.True(t, res.Rows[1].Subtotal)
}

func TestResolveNotStatedNormalization(t *testing.T) {
	grid := Grid{
		{"Province/Territory", "Category", "2018", "2019", "2020"},
		{"Not stated (sex)", "Something odd", "1", "2", "3"},
		{"Province not STATED", "", "4", "5", "6"},
	}

	res := Resolve(grid, twoLevelLayout(), ResolveOptions{})
	require.Len(t, res.Rows, 2)
	assert.Equal(t, "Not stated", res.Rows[0].Labels[1])
	assert.Equal(t, "Not stated", res.Rows[1].Labels[1])
}

func TestResolveSiblingCollision(t *testing.T) {
	grid := Grid{
		{"Province/Territory", "Category", "Sub", "2018"},
		{"Ontario", "Workers", "Workers", "1"},
	}
	layout := &Layout{
		Depth:          3,
		FirstPeriodCol: 3,
		Periods:        []PeriodColumn{{Col: 3, Label: "2018"}},
		FirstDataRow:   1,
	}

	res := Resolve(grid, layout, ResolveOptions{})
	require.Len(t, res.Rows, 1)
	assert.Equal(t, "Workers (subcategory)", res.Rows[0].Labels[2])
}

func TestResolveDropsUnresolvedHierarchy(t *testing.T) {
	grid := Grid{
		{"Province/Territory", "Category", "2018", "2019", "2020"},
		// No level-0 label has been established yet.
		{"", "Program A", "1", "2", "3"},
		{"Quebec", "Program B", "4", "5", "6"},
	}

	res := Resolve(grid, twoLevelLayout(), ResolveOptions{})
	require.Len(t, res.Rows, 1)
	assert.Equal(t, 1, res.Dropped)
	assert.Equal(t, []string{"Quebec", "Program B"}, res.Rows[0].Labels)
}

func TestResolveSkipsBlankRows(t *testing.T) {
	grid := Grid{
		{"Province/Territory", "Category", "2018", "2019", "2020"},
		{"Quebec", "Program A", "1", "2", "3"},
		{"", "", "", "", ""},
		{"", "Program B", "4", "5", "6"},
	}

	res := Resolve(grid, twoLevelLayout(), ResolveOptions{})
	require.Len(t, res.Rows, 2)
	assert.Zero(t, res.Dropped)
}

func TestResolveNoBlankGapsBelowPopulatedLevels(t *testing.T) {
	grid := Grid{
		{"Province/Territory", "Category", "Sub", "2018"},
		{"Quebec", "Program A", "Stream 1", "1"},
		{"", "", "Stream 2", "2"},
		{"", "Program B", "", "3"},
	}
	layout := &Layout{
		Depth:          3,
		FirstPeriodCol: 3,
		Periods:        []PeriodColumn{{Col: 3, Label: "2018"}},
		FirstDataRow:   1,
	}

	res := Resolve(grid, layout, ResolveOptions{})
	require.Len(t, res.Rows, 3)
	for _, row := range res.Rows {
		deepest := -1
		for i, lab := range row.Labels {
			if lab != "" {
				deepest = i
			}
		}
		for i := 0; i <= deepest; i++ {
			assert.NotEmpty(t, row.Labels[i], "row %d level %d", row.SourceRow, i)
		}
	}
}
