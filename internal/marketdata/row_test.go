package marketdata

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRow_Cell(t *testing.T) {
	row := Row{
		"index":  "2024-01-01",
		"Open":   json.Number("100.10"),
		"High":   json.Number("1e3"),
		"Low":    nil,
		"Close":  true,
		"Nested": map[string]any{"a": json.Number("1")},
	}

	tests := []struct {
		field string
		want  string
	}{
		{"index", "2024-01-01"},
		{"Open", "100.10"},
		{"High", "1e3"},
		{"Low", ""},
		{"Close", "true"},
		{"Volume", ""},
		{"Nested", `{"a":1}`},
	}
	for _, tt := range tests {
		t.Run(tt.field, func(t *testing.T) {
			assert.Equal(t, tt.want, row.Cell(tt.field))
		})
	}
}

func TestRow_Cells(t *testing.T) {
	assert.Equal(t, []string{"", "", "", "", "", ""}, Row(nil).Cells())
	assert.Len(t, Columns, 6)
}
