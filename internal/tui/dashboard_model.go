package tui

import (
	"context"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/scopezero/scopezero/internal/engine"
	"github.com/scopezero/scopezero/internal/logging"
)

// ViewState is the dashboard's lifecycle state.
type ViewState int

const (
	// ViewStateList shows the active tab.
	ViewStateList ViewState = iota
	// ViewStateQuitting is entered on q or ctrl+c.
	ViewStateQuitting
)

// Tab is a dashboard page.
type Tab int

// Tabs in display order.
const (
	TabOverview Tab = iota
	TabSuppliers
	TabMaterials
	TabTransport
	TabTrend
	TabRecommendations
	numTabs
)

//nolint:gochecknoglobals // Fixed tab titles.
var tabTitles = [numTabs]string{"Overview", "Suppliers", "Materials", "Transport", "Trend", "Recommendations"}

// String returns the tab title.
func (t Tab) String() string {
	if t < 0 || t >= numTabs {
		return "Unknown"
	}
	return tabTitles[t]
}

// StateStore is the part of the store the dashboard reads and resets.
type StateStore interface {
	Snapshot() engine.Snapshot
	Reset() engine.Snapshot
}

// SnapshotMsg replaces the displayed snapshot.
type SnapshotMsg struct {
	Snapshot engine.Snapshot
}

// DashboardModel is the Bubble Tea model for the emissions dashboard.
//
//nolint:recvcheck // Bubble Tea requires value receivers for Init/Update/View interface methods.
type DashboardModel struct {
	state    ViewState
	ctx      context.Context
	store    StateStore
	snapshot engine.Snapshot

	tab   Tab
	table table.Model

	width  int
	height int
}

// NewDashboardModel returns a dashboard showing the store's current snapshot.
func NewDashboardModel(ctx context.Context, store StateStore) DashboardModel {
	m := DashboardModel{
		state:    ViewStateList,
		ctx:      ctx,
		store:    store,
		snapshot: store.Snapshot(),
		tab:      TabOverview,
		width:    defaultWidth,
		height:   defaultHeight,
	}
	m.table = m.buildTable()
	return m
}

// Init implements tea.Model.
func (m DashboardModel) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m DashboardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if m.state == ViewStateQuitting {
		return m, nil
	}

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.table = m.buildTable()
		return m, nil
	case SnapshotMsg:
		m.snapshot = msg.Snapshot
		m.table = m.buildTable()
		return m, nil
	case tea.KeyMsg:
		return m.handleKeypress(msg)
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

func (m DashboardModel) handleKeypress(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch key := msg.String(); key {
	case keyQuit, keyCtrlC:
		m.state = ViewStateQuitting
		return m, tea.Quit
	case keyReset:
		return m, m.resetCmd()
	case keyTab, keyRight:
		m.setTab((m.tab + 1) % numTabs)
		return m, nil
	case keyShiftTab, keyLeft:
		m.setTab((m.tab + numTabs - 1) % numTabs)
		return m, nil
	case "1", "2", "3", "4", "5", "6":
		m.setTab(Tab(key[0] - '1'))
		return m, nil
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

// resetCmd restores the demo data and reports the new snapshot.
func (m DashboardModel) resetCmd() tea.Cmd {
	store, ctx := m.store, m.ctx
	return func() tea.Msg {
		s := store.Reset()
		log := logging.FromContext(ctx)
		log.Info().Ctx(ctx).
			Str("component", "tui").
			Str("operation", "reset").
			Int64("version", s.Version).
			Msg("store reset to demo data")
		return SnapshotMsg{Snapshot: s}
	}
}

func (m *DashboardModel) setTab(t Tab) {
	m.tab = t
	m.table = m.buildTable()
}

// Tab returns the active tab.
func (m DashboardModel) Tab() Tab {
	return m.tab
}

// Snapshot returns the displayed snapshot.
func (m DashboardModel) Snapshot() engine.Snapshot {
	return m.snapshot
}
