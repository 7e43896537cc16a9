package ui

import (
	"context"
	"net/http"
	"os"
	"path/filepath"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aristath/tradebook/internal/api"
	"github.com/aristath/tradebook/internal/config"
	"github.com/aristath/tradebook/internal/dashboard"
	"github.com/aristath/tradebook/internal/domain"
	testingpkg "github.com/aristath/tradebook/internal/testing"
	"github.com/aristath/tradebook/internal/transactions"
)

func newTestModel(t *testing.T, backend *testingpkg.Backend) Model {
	t.Helper()
	cfg := config.Config{
		APIURL:          backend.URL,
		RefreshInterval: time.Minute,
		Currency:        "INR",
		DateLayout:      "02/01/2006",
		PageSize:        25,
		SettingsFile:    filepath.Join(t.TempDir(), "settings.yaml"),
	}
	client := api.NewClient(backend.URL, 0, zerolog.Nop())
	m := NewModel(context.Background(), client, cfg, zerolog.Nop())
	next, _ := m.Update(tea.WindowSizeMsg{Width: 160, Height: 50})
	return drive(t, next.(Model), m.Init())
}

// ours reports whether msg is one of the model's own results. Timer and
// blink messages are dropped so tests never wait on them.
func ours(msg tea.Msg) bool {
	switch msg.(type) {
	case dashboardMsg, reloadMsg, editMsg, saveMsg, deleteMsg, importMsg, sampleMsg:
		return true
	}
	return false
}

// drive runs cmd and feeds every resulting message back into the model
// until nothing arrives for a while.
func drive(t *testing.T, m Model, cmd tea.Cmd) Model {
	t.Helper()
	msgs := make(chan tea.Msg, 256)
	var launch func(tea.Cmd)
	launch = func(c tea.Cmd) {
		if c == nil {
			return
		}
		go func() {
			msg := c()
			if batch, ok := msg.(tea.BatchMsg); ok {
				for _, c := range batch {
					launch(c)
				}
				return
			}
			select {
			case msgs <- msg:
			default:
			}
		}()
	}
	launch(cmd)

	for {
		select {
		case msg := <-msgs:
			if !ours(msg) {
				continue
			}
			next, c := m.Update(msg)
			m = next.(Model)
			launch(c)
		case <-time.After(300 * time.Millisecond):
			return m
		}
	}
}

func press(t *testing.T, m Model, keys ...tea.KeyMsg) Model {
	t.Helper()
	for _, k := range keys {
		next, cmd := m.Update(k)
		m = drive(t, next.(Model), cmd)
	}
	return m
}

func runes(s string) tea.KeyMsg { return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)} }

var (
	tabKey   = tea.KeyMsg{Type: tea.KeyTab}
	enterKey = tea.KeyMsg{Type: tea.KeyEnter}
	escKey   = tea.KeyMsg{Type: tea.KeyEsc}
)

func TestInit_LoadsDashboardAndTable(t *testing.T) {
	backend := testingpkg.NewBackend(testingpkg.NewTransactionFixtures()...)
	defer backend.Close()
	m := newTestModel(t, backend)

	assert.True(t, m.dashView.Loaded)
	assert.Equal(t, 4, m.tx.Table.Total())

	view := m.View()
	assert.Contains(t, view, "RELIANCE (5 shares - 16.7%)")
	assert.Contains(t, view, "TCS (25 shares - 83.3%)")
	assert.Contains(t, view, "₹120.00")
}

func TestDashboardFailure_ShowsNotice(t *testing.T) {
	backend := testingpkg.NewBackend()
	defer backend.Close()
	backend.Fail("GET /api/dashboard/stats", testingpkg.Failure{Status: http.StatusInternalServerError})
	m := newTestModel(t, backend)

	require.NotNil(t, m.dashNotice)
	assert.Equal(t, dashboard.LoadErrorText, m.dashNotice.Text)
	assert.Contains(t, m.View(), dashboard.LoadErrorText)
}

func TestRefreshMsg_RunsDashboardCycle(t *testing.T) {
	backend := testingpkg.NewBackend(testingpkg.NewTransactionFixtures()...)
	defer backend.Close()
	m := newTestModel(t, backend)

	next, cmd := m.Update(refreshMsg{})
	m = drive(t, next.(Model), cmd)

	assert.Equal(t, 2, backend.Count("GET /api/dashboard/stats"))
	assert.Equal(t, 1, m.dash.LiveCharts())
}

func TestDashboardMsg_OlderCycleDoesNotOverwrite(t *testing.T) {
	backend := testingpkg.NewBackend(testingpkg.NewTransactionFixtures()...)
	defer backend.Close()
	m := newTestModel(t, backend)
	ctx := context.Background()

	older, err := m.dash.Fetch(ctx)
	require.NoError(t, err)
	require.NoError(t, m.client.DeleteTransaction(ctx, "1"))
	newer, err := m.dash.Fetch(ctx)
	require.NoError(t, err)

	next, _ := m.Update(dashboardMsg{cycle: newer})
	next, _ = next.(Model).Update(dashboardMsg{cycle: older})
	next, _ = next.(Model).Update(dashboardMsg{cycle: older, err: assert.AnError})
	m = next.(Model)

	assert.Equal(t, "3", m.dashView.Summary.TotalTransactions)
	assert.Nil(t, m.dashNotice)
	assert.Equal(t, 1, m.dash.LiveCharts())
}

func TestCreateTransaction(t *testing.T) {
	backend := testingpkg.NewBackend()
	defer backend.Close()
	m := newTestModel(t, backend)

	m = press(t, m, tabKey, runes("n"))
	require.True(t, m.tx.State.FormOpen)

	m = press(t, m, runes("WIPRO"), tabKey, runes("10"), tabKey, runes("100"))
	assert.Equal(t, 1000.0, m.tx.State.Form.Totals().TotalCost)
	assert.Contains(t, m.View(), "₹1,000.00")

	m = press(t, m, enterKey)
	assert.False(t, m.tx.State.FormOpen)
	require.NotNil(t, m.tx.State.Notice)
	assert.Equal(t, transactions.MsgAdded, m.tx.State.Notice.Text)
	assert.Equal(t, 1, m.tx.Table.Total())
	assert.Equal(t, "WIPRO", backend.Transactions()[0].StockName)
}

func TestCreateTransaction_ValidationSendsNothing(t *testing.T) {
	backend := testingpkg.NewBackend()
	defer backend.Close()
	m := newTestModel(t, backend)
	before := len(backend.Requests())

	m = press(t, m, tabKey, runes("n"), enterKey)

	assert.True(t, m.tx.State.FormOpen)
	assert.Equal(t, domain.Danger(transactions.MsgRequiredFields), *m.tx.State.Notice)
	assert.Len(t, backend.Requests(), before)

	m = press(t, m, escKey)
	assert.False(t, m.tx.State.FormOpen)
}

func TestEditTransaction(t *testing.T) {
	backend := testingpkg.NewBackend(testingpkg.NewTransactionFixtures()...)
	defer backend.Close()
	m := newTestModel(t, backend)

	// newest buy date first: INFY
	m = press(t, m, tabKey, runes("e"))
	require.True(t, m.tx.State.FormOpen)
	assert.Equal(t, transactions.ModeEdit, m.tx.State.Mode)
	assert.Equal(t, "INFY", m.inputs[transactions.FieldStock].Value())
	assert.Contains(t, m.View(), "Edit Transaction")
}

func TestDeleteTransaction(t *testing.T) {
	backend := testingpkg.NewBackend(testingpkg.NewTransactionFixtures()...)
	defer backend.Close()
	m := newTestModel(t, backend)

	m = press(t, m, tabKey, runes("d"))
	require.NotNil(t, m.tx.State.Delete)
	assert.Contains(t, m.View(), "Quantity: 20")

	m = press(t, m, runes("n"))
	assert.Nil(t, m.tx.State.Delete)
	assert.Equal(t, 0, backend.Count("DELETE /api/transactions/4"))

	m = press(t, m, runes("d"), runes("y"))
	assert.Equal(t, 1, backend.Count("DELETE /api/transactions/4"))
	assert.Equal(t, transactions.MsgDeleted, m.tx.State.Notice.Text)
	assert.Equal(t, 3, m.tx.Table.Total())
}

func TestSearch(t *testing.T) {
	backend := testingpkg.NewBackend(testingpkg.NewTransactionFixtures()...)
	defer backend.Close()
	m := newTestModel(t, backend)

	m = press(t, m, tabKey, runes("/"), runes("tc"), enterKey)
	assert.False(t, m.searching)
	assert.Equal(t, 1, m.tx.Table.Len())
	assert.Equal(t, "TCS", m.tx.Table.Visible()[0].Stock)
}

func TestImport(t *testing.T) {
	backend := testingpkg.NewBackend()
	defer backend.Close()
	m := newTestModel(t, backend)

	path := filepath.Join(t.TempDir(), "trades.csv")
	require.NoError(t, os.WriteFile(path, []byte(testingpkg.SampleCSV), 0o644))

	m = press(t, m, tabKey, runes("i"))
	require.True(t, m.tx.State.Import.Open)
	m.tx.SelectImportFile(path)

	m = press(t, m, runes("u"))
	assert.Equal(t, transactions.PanelSuccess, m.tx.State.Import.Panel)
	assert.Equal(t, 3, m.tx.Table.Total())

	next, _ := m.Update(importCloseMsg{})
	m = next.(Model)
	assert.False(t, m.tx.State.Import.Open)
}

func TestSettings_SavesAPIURL(t *testing.T) {
	backend := testingpkg.NewBackend()
	defer backend.Close()
	other := testingpkg.NewBackend(testingpkg.NewTransactionFixtures()...)
	defer other.Close()
	m := newTestModel(t, backend)

	m = press(t, m, runes("s"))
	require.True(t, m.inSettings)

	m.apiURLInput.SetValue("not a url")
	m = press(t, m, enterKey)
	assert.True(t, m.inSettings)
	assert.NotEmpty(t, m.statusMsg)

	m.apiURLInput.SetValue(other.URL)
	m = press(t, m, enterKey)
	assert.False(t, m.inSettings)
	assert.Equal(t, other.URL, m.client.BaseURL())
	assert.Equal(t, 4, m.tx.Table.Total())

	saved, err := config.LoadSettings(m.cfg.SettingsFile)
	require.NoError(t, err)
	assert.Equal(t, other.URL, saved.APIURL)
}

func TestNoticeExpires(t *testing.T) {
	backend := testingpkg.NewBackend()
	defer backend.Close()
	m := newTestModel(t, backend)

	m = press(t, m, tabKey, runes("n"), enterKey)
	require.NotNil(t, m.tx.State.Notice)

	next, _ := m.Update(noticeExpiredMsg{seq: m.noticeSeq - 1})
	m = next.(Model)
	assert.NotNil(t, m.tx.State.Notice)

	next, _ = m.Update(noticeExpiredMsg{seq: m.noticeSeq})
	m = next.(Model)
	assert.Nil(t, m.tx.State.Notice)
}
