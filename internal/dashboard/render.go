package dashboard

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/rshade/findash/internal/marketdata"
)

// NoDataText is the placeholder shown when the RowSet is empty.
const NoDataText = "No data available"

// Headers are the table column titles, matching marketdata.Columns.
//
//nolint:gochecknoglobals // Fixed header row.
var Headers = []string{"Date", "Open", "High", "Low", "Close", "Volume"}

// BodyRow is one rendered table body row.
type BodyRow struct {
	Cells []string
	// Span is the number of columns the first cell covers. It is 1 for data
	// rows and len(Headers) for the placeholder.
	Span int
}

// IsPlaceholder reports whether r is the empty-table placeholder.
func (r BodyRow) IsPlaceholder() bool {
	return r.Span > 1
}

// Body returns the table body for rows: one BodyRow per record with the
// fields verbatim, or a single spanning placeholder when rows is empty.
func Body(rows []marketdata.Row) []BodyRow {
	if len(rows) == 0 {
		return []BodyRow{{Cells: []string{NoDataText}, Span: len(Headers)}}
	}
	body := make([]BodyRow, len(rows))
	for i, row := range rows {
		body[i] = BodyRow{Cells: row.Cells(), Span: 1}
	}
	return body
}

// tabwriterPadding is the minimum padding between columns.
const tabwriterPadding = 2

// WriteTable writes rows as a plain text table.
func WriteTable(w io.Writer, rows []marketdata.Row) error {
	tw := tabwriter.NewWriter(w, 0, 0, tabwriterPadding, ' ', 0)

	if _, err := fmt.Fprintln(tw, strings.Join(Headers, "\t")); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}
	separators := make([]string, len(Headers))
	for i, h := range Headers {
		separators[i] = strings.Repeat("-", len(h))
	}
	if _, err := fmt.Fprintln(tw, strings.Join(separators, "\t")); err != nil {
		return fmt.Errorf("writing separator: %w", err)
	}

	for _, row := range Body(rows) {
		if row.IsPlaceholder() {
			// A cell without a trailing tab does not take part in column
			// alignment, so it spans the full row.
			if _, err := fmt.Fprintln(tw, row.Cells[0]); err != nil {
				return fmt.Errorf("writing placeholder: %w", err)
			}
			continue
		}
		if _, err := fmt.Fprintln(tw, strings.Join(row.Cells, "\t")); err != nil {
			return fmt.Errorf("writing row: %w", err)
		}
	}

	return tw.Flush()
}
