package marketdata

import (
	"encoding/json"
	"fmt"
)

// Field names of the columns the dashboard renders, in display order.
const (
	FieldIndex  = "index"
	FieldOpen   = "Open"
	FieldHigh   = "High"
	FieldLow    = "Low"
	FieldClose  = "Close"
	FieldVolume = "Volume"
)

// Columns lists the rendered fields in their fixed order.
//
//nolint:gochecknoglobals // Fixed column order shared by every renderer.
var Columns = []string{FieldIndex, FieldOpen, FieldHigh, FieldLow, FieldClose, FieldVolume}

// Row is one record of a price series as sent by the backend. No schema is
// enforced: unknown fields are kept and missing ones render empty. Numbers
// are held as json.Number so they render exactly as sent.
type Row map[string]any

// Cell returns the display text of field, verbatim.
func (r Row) Cell(field string) string {
	v, ok := r[field]
	if !ok || v == nil {
		return ""
	}
	switch val := v.(type) {
	case string:
		return val
	case json.Number:
		return val.String()
	case bool:
		return fmt.Sprint(val)
	default:
		data, err := json.Marshal(val)
		if err != nil {
			return fmt.Sprint(val)
		}
		return string(data)
	}
}

// Cells returns the cells of the rendered columns in order.
func (r Row) Cells() []string {
	cells := make([]string, len(Columns))
	for i, field := range Columns {
		cells[i] = r.Cell(field)
	}
	return cells
}
