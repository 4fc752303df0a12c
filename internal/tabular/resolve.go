package tabular

import (
	"log/slog"
	"strings"
)

// DefaultMarkers are the subtotal marker tokens the report family uses.
var DefaultMarkers = []string{"total"}

// notStatedLabel is the canonical token all "not stated" variants collapse
// to, so those rows group together downstream.
const notStatedLabel = "Not stated"

// grandTotalLabel is the exact top-level label of the grand-total row.
const grandTotalLabel = "Total"

// ResolveOptions tunes the row resolution pass.
type ResolveOptions struct {
	// NoTrim keeps footnote rows below the grand-total row instead of
	// discarding them.
	NoTrim bool
	// Markers are the case-insensitive subtotal tokens (default "total").
	Markers []string
	// Logger receives per-row warnings; nil means slog.Default().
	Logger *slog.Logger
}

// ResolveResult is the output of Resolve: the ordered resolved rows plus the
// count of rows dropped for an unresolvable hierarchy.
type ResolveResult struct {
	Rows    []ResolvedRow
	Dropped int
}

// resolver carries the forward-fill state threaded across rows. One instance
// per run; never shared.
type resolver struct {
	layout  *Layout
	labels  []string
	markers map[string]struct{}
	logger  *slog.Logger
}

// Resolve walks the data rows top to bottom, reconstructing the full
// hierarchical context of every row (forward-filling blank parent labels),
// classifying each row as detail or subtotal, and trimming trailing footnote
// rows after the final grand-total row unless NoTrim is set.
func Resolve(grid Grid, layout *Layout, opts ResolveOptions) ResolveResult {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	markers := opts.Markers
	if len(markers) == 0 {
		markers = DefaultMarkers
	}
	markerSet := make(map[string]struct{}, len(markers))
	for _, m := range markers {
		markerSet[strings.ToLower(strings.TrimSpace(m))] = struct{}{}
	}

	res := &resolver{
		layout:  layout,
		labels:  make([]string, layout.Depth),
		markers: markerSet,
		logger:  logger,
	}

	var result ResolveResult
	// The trim boundary is located on the raw top-level cell, before any
	// forward-fill: a blank-celled footnote below the grand-total row would
	// otherwise inherit "Total" and masquerade as a second grand total.
	lastGrand := -1
	for r := layout.FirstDataRow; r < len(grid); r++ {
		if res.blankRow(grid, r) {
			continue
		}
		row, err := res.resolveRow(grid, r)
		if err != nil {
			result.Dropped++
			logger.Warn("dropping row with unresolved hierarchy",
				slog.Int("row", r),
				slog.String("error", err.Error()))
			continue
		}
		result.Rows = append(result.Rows, row)
		if isGrandTotalCell(grid.At(r, 0)) {
			lastGrand = len(result.Rows) - 1
		}
	}

	// The final grand-total row is always a subtotal, trimmed or not.
	if lastGrand >= 0 {
		result.Rows[lastGrand].Subtotal = true
		if !opts.NoTrim {
			result.Rows = result.Rows[:lastGrand+1]
		}
	}
	return result
}

// blankRow reports whether every hierarchy and period cell of the row is
// empty. Fully blank separator rows carry no observation.
func (res *resolver) blankRow(grid Grid, r int) bool {
	for c := 0; c < res.layout.Depth; c++ {
		if strings.TrimSpace(grid.At(r, c)) != "" {
			return false
		}
	}
	for _, p := range res.layout.Periods {
		if strings.TrimSpace(grid.At(r, p.Col)) != "" {
			return false
		}
	}
	return true
}

func (res *resolver) resolveRow(grid Grid, r int) (ResolvedRow, error) {
	subtotal := res.classifySubtotal(grid, r)

	// Forward-fill with child invalidation: a new parent label invalidates
	// any previously carried child labels.
	for c := 0; c < res.layout.Depth; c++ {
		cell := strings.TrimSpace(grid.At(r, c))
		if cell == "" {
			continue
		}
		if c == 0 {
			cell = cleanTopLabel(cell)
		}
		res.labels[c] = cell
		for j := c + 1; j < res.layout.Depth; j++ {
			res.labels[j] = ""
		}
	}

	if res.labels[0] == "" {
		return ResolvedRow{}, &UnresolvedHierarchyError{Row: r}
	}

	labels := make([]string, res.layout.Depth)
	copy(labels, res.labels)

	// Variants like "Not stated (sex)" at the top level all collapse to one
	// canonical sub-label.
	if res.layout.Depth >= 2 && strings.Contains(strings.ToLower(labels[0]), "not stated") {
		labels[1] = notStatedLabel
	}

	// A level-2 label identical to its level-1 parent would collide in
	// downstream grouping; disambiguate detail rows with a suffix.
	if !subtotal && res.layout.Depth >= 3 && labels[2] != "" && labels[1] == labels[2] {
		labels[2] += " (subcategory)"
	}

	values := make([]string, len(res.layout.Periods))
	for i, p := range res.layout.Periods {
		values[i] = grid.At(r, p.Col)
	}

	return ResolvedRow{
		Labels:    labels,
		Subtotal:  subtotal,
		Values:    values,
		SourceRow: r,
	}, nil
}

// classifySubtotal inspects the row's own cells, before forward-fill, since
// subtotal rows are identified by the label they actually carry: the deepest
// non-empty cell being a marker token, or a label with a trailing marker
// ("Ontario Total").
func (res *resolver) classifySubtotal(grid Grid, r int) bool {
	deepest := -1
	for c := 0; c < res.layout.Depth; c++ {
		if strings.TrimSpace(grid.At(r, c)) != "" {
			deepest = c
		}
	}
	if deepest < 0 {
		return false
	}
	label := strings.ToLower(strings.TrimSpace(grid.At(r, deepest)))
	if _, ok := res.markers[label]; ok {
		return true
	}
	for m := range res.markers {
		if strings.HasSuffix(label, " "+m) {
			return true
		}
	}
	return false
}

// cleanTopLabel trims a trailing " Total" marker from a top-level label
// ("Ontario Total" -> "Ontario") while canonicalizing the standalone
// grand-total label to exactly "Total".
func cleanTopLabel(s string) string {
	if strings.EqualFold(s, grandTotalLabel) {
		return grandTotalLabel
	}
	lower := strings.ToLower(s)
	if strings.HasSuffix(lower, " total") {
		return strings.TrimSpace(s[:len(s)-len(" total")])
	}
	return s
}

// isGrandTotalCell is the trimming-boundary predicate: the raw top-level
// cell of the row reads exactly the grand-total label, tested before any
// forward-fill. Kept separate from the subtotal classification predicate on
// purpose; one informs the other but they answer different questions.
func isGrandTotalCell(raw string) bool {
	return strings.EqualFold(strings.TrimSpace(raw), grandTotalLabel)
}
