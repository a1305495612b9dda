// Package dashboard holds the state of the financial dashboard and the pure
// rules that turn it into a table.
//
// State has exactly two mutation points: SetSymbol, called for every edit of
// the ticker input, and SetRows, called when a fetch succeeds. Nothing else
// changes it, and a failed fetch never reaches it.
package dashboard

import (
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/rshade/findash/internal/marketdata"
)

// DefaultSymbol is the ticker shown when the dashboard opens.
const DefaultSymbol = "AAPL"

// NormalizeSymbol upper-cases raw using full Unicode case mapping, so
// multi-rune mappings such as "ß" -> "SS" apply. No other validation is done.
func NormalizeSymbol(raw string) string {
	// cases.Caser is stateful; use a fresh one per call.
	return cases.Upper(language.Und).String(raw)
}

// State is the dashboard's Symbol and RowSet.
type State struct {
	symbol string
	rows   []marketdata.Row
}

// NewState returns a State with the given initial symbol (upper-cased;
// DefaultSymbol when empty) and an empty RowSet.
func NewState(symbol string) State {
	if symbol == "" {
		symbol = DefaultSymbol
	}
	return State{symbol: NormalizeSymbol(symbol)}
}

// Symbol returns the current ticker.
func (s *State) Symbol() string {
	return s.symbol
}

// SetSymbol stores the upper-cased form of raw.
func (s *State) SetSymbol(raw string) {
	s.symbol = NormalizeSymbol(raw)
}

// Rows returns the current RowSet.
func (s *State) Rows() []marketdata.Row {
	return s.rows
}

// SetRows replaces the RowSet wholesale, keeping order.
func (s *State) SetRows(rows []marketdata.Row) {
	s.rows = rows
}
