package dashboard

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rshade/findash/internal/marketdata"
)

func TestNewState(t *testing.T) {
	t.Run("defaults to AAPL with no rows", func(t *testing.T) {
		s := NewState("")
		assert.Equal(t, "AAPL", s.Symbol())
		assert.Empty(t, s.Rows())
	})

	t.Run("configured symbol is upper-cased", func(t *testing.T) {
		s := NewState("tsla")
		assert.Equal(t, "TSLA", s.Symbol())
	})
}

func TestState_SetSymbol(t *testing.T) {
	tests := []struct {
		raw  string
		want string
	}{
		{"msft", "MSFT"},
		{"MsFt", "MSFT"},
		{"", ""},
		{"brk.b", "BRK.B"},
		{"brk/b", "BRK/B"},
		{" spy ", " SPY "},
		{"straße", "STRASSE"},
		{"ǆ", "Ǆ"},
		{"123", "123"},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			s := NewState("")
			s.SetSymbol(tt.raw)
			assert.Equal(t, tt.want, s.Symbol())

			// Upper-casing is idempotent.
			s.SetSymbol(s.Symbol())
			assert.Equal(t, tt.want, s.Symbol())
		})
	}
}

func TestState_SetSymbolLeavesRows(t *testing.T) {
	s := NewState("")
	rows := []marketdata.Row{{"index": "2024-01-01"}}
	s.SetRows(rows)

	s.SetSymbol("tsla")

	assert.Equal(t, rows, s.Rows())
}

func TestState_SetRowsReplaces(t *testing.T) {
	s := NewState("")
	first := []marketdata.Row{
		{"index": "2024-01-01", "Close": json.Number("1")},
		{"index": "2024-02-01", "Close": json.Number("2")},
	}
	second := []marketdata.Row{
		{"index": "2023-12-01", "Close": json.Number("9")},
	}

	s.SetRows(first)
	require.Len(t, s.Rows(), 2)

	s.SetRows(second)
	require.Len(t, s.Rows(), 1)
	assert.Equal(t, "2023-12-01", s.Rows()[0].Cell("index"))
}
