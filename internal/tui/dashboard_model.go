package tui

import (
	"context"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/rshade/findash/internal/dashboard"
	"github.com/rshade/findash/internal/logging"
	"github.com/rshade/findash/internal/marketdata"
)

// Fetcher retrieves the rows for a symbol.
type Fetcher interface {
	Fetch(ctx context.Context, symbol string) ([]marketdata.Row, error)
}

// focusTarget is the control receiving key presses.
type focusTarget int

const (
	focusInput focusTarget = iota
	focusButton
)

// symbolInputWidth is the visible width of the ticker input.
const symbolInputWidth = 12

// fetchResultMsg carries the outcome of one fetch back to the update loop.
type fetchResultMsg struct {
	seq       uint64
	symbol    string
	requestID string
	rows      []marketdata.Row
	err       error
}

// DashboardOptions configures a DashboardModel.
type DashboardOptions struct {
	// InitialSymbol defaults to dashboard.DefaultSymbol.
	InitialSymbol string
	// DiscardStale drops a response when a newer fetch has been issued since.
	// By default the last response to arrive wins.
	DiscardStale bool
}

// DashboardModel is the Bubble Tea model of the financial dashboard: a
// ticker input, a Fetch Data button and the table of the last fetched rows.
//
//nolint:recvcheck // Bubble Tea requires value receivers for Init/Update/View interface methods.
type DashboardModel struct {
	ctx     context.Context
	state   dashboard.State
	fetcher Fetcher

	discardStale bool
	issued       uint64

	input textinput.Model
	focus focusTarget
	keys  keyMap
	help  help.Model

	width    int
	quitting bool
}

// NewDashboardModel creates a dashboard with the input focused and an empty
// table. Fetches use fetcher and log through the logger in ctx.
func NewDashboardModel(ctx context.Context, fetcher Fetcher, opts DashboardOptions) DashboardModel {
	state := dashboard.NewState(opts.InitialSymbol)

	ti := textinput.New()
	ti.Prompt = ""
	ti.Placeholder = "Enter Stock Symbol"
	ti.PlaceholderStyle = SubtleStyle
	ti.TextStyle = ValueStyle
	ti.Width = symbolInputWidth
	ti.SetValue(state.Symbol())
	ti.Focus()

	width := TerminalWidth()
	h := help.New()
	h.Width = width

	return DashboardModel{
		ctx:          ctx,
		state:        state,
		fetcher:      fetcher,
		discardStale: opts.DiscardStale,
		input:        ti,
		focus:        focusInput,
		keys:         defaultKeyMap(),
		help:         h,
		width:        width,
	}
}

// Symbol returns the current ticker.
func (m DashboardModel) Symbol() string {
	return m.state.Symbol()
}

// Rows returns the rows currently displayed.
func (m DashboardModel) Rows() []marketdata.Row {
	return m.state.Rows()
}

// Init implements tea.Model. No fetch is issued on start.
func (m DashboardModel) Init() tea.Cmd {
	return textinput.Blink
}

// Update implements tea.Model.
func (m DashboardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.help.Width = msg.Width
		return m, nil

	case fetchResultMsg:
		return m.handleFetchResult(msg)

	case tea.KeyMsg:
		return m.handleKeyMsg(msg)
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m DashboardModel) handleKeyMsg(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		m.quitting = true
		return m, tea.Quit
	case key.Matches(msg, m.keys.NextFocus):
		return m, m.toggleFocus()
	}

	if m.focus == focusButton {
		if key.Matches(msg, m.keys.Press) {
			return m, m.fetchData()
		}
		if msg.String() == "q" {
			m.quitting = true
			return m, tea.Quit
		}
		return m, nil
	}

	before := m.input.Value()
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	if m.input.Value() != before {
		m.onSymbolChange(m.input.Value())
	}
	return m, cmd
}

// onSymbolChange stores the upper-cased input and mirrors it back into the
// input so the field always shows Symbol. It never fetches.
func (m *DashboardModel) onSymbolChange(raw string) {
	m.state.SetSymbol(raw)
	if m.input.Value() != m.state.Symbol() {
		m.input.SetValue(m.state.Symbol())
	}
}

func (m *DashboardModel) toggleFocus() tea.Cmd {
	if m.focus == focusInput {
		m.focus = focusButton
		m.input.Blur()
		return nil
	}
	m.focus = focusInput
	return m.input.Focus()
}

// fetchData issues a fetch for the current symbol. The request runs off the
// update loop; its result comes back as a fetchResultMsg. In-flight fetches
// are neither cancelled nor de-duplicated.
func (m *DashboardModel) fetchData() tea.Cmd {
	m.issued++
	seq := m.issued
	symbol := m.state.Symbol()
	requestID := logging.NewRequestID()

	// Capture references before the command runs to avoid touching the model
	// from another goroutine.
	ctx := logging.ContextWithRequestID(m.ctx, requestID)
	fetcher := m.fetcher

	logging.FromContext(ctx).Debug().
		Ctx(ctx).
		Str("component", "tui").
		Str("symbol", symbol).
		Uint64("seq", seq).
		Msg("fetch started")

	return func() tea.Msg {
		rows, err := fetcher.Fetch(ctx, symbol)
		return fetchResultMsg{seq: seq, symbol: symbol, requestID: requestID, rows: rows, err: err}
	}
}

// handleFetchResult commits a successful response to the RowSet. Failures
// are logged only; the table keeps showing what it showed before.
func (m DashboardModel) handleFetchResult(msg fetchResultMsg) (tea.Model, tea.Cmd) {
	ctx := logging.ContextWithRequestID(m.ctx, msg.requestID)
	log := logging.FromContext(ctx)

	if msg.err != nil {
		log.Error().
			Ctx(ctx).
			Str("component", "tui").
			Str("symbol", msg.symbol).
			Err(msg.err).
			Msg("error fetching data")
		return m, nil
	}

	if m.discardStale && msg.seq < m.issued {
		log.Info().
			Ctx(ctx).
			Str("component", "tui").
			Str("symbol", msg.symbol).
			Uint64("seq", msg.seq).
			Uint64("latest_seq", m.issued).
			Msg("discarding stale response")
		return m, nil
	}

	m.state.SetRows(msg.rows)
	log.Info().
		Ctx(ctx).
		Str("component", "tui").
		Str("symbol", msg.symbol).
		Int("rows", len(msg.rows)).
		Msg("fetched data")
	return m, nil
}
