// Package tabular turns irregularly-shaped report grids into a long-format
// record stream with a reliable subtotal signal.
//
// The government report family this targets hides real data inside a
// human-formatted worksheet: an unknown number of title rows above the
// header, one to four merged-cell hierarchy columns, embedded subtotal rows
// and footnote rows below the grand total. The pipeline composes three pure
// stages over an in-memory grid:
//
//	DetectLayout  finds the header row, hierarchy depth and period columns
//	Resolve       forward-fills hierarchy labels, classifies subtotal rows,
//	              trims trailing footnotes
//	Unpivot       emits one Record per (row, period) with normalized values
//
// DetectLayout failing is fatal for the sheet (*LayoutNotFoundError);
// individual rows with an unresolvable hierarchy are dropped and counted,
// the run continues.
package tabular
