package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/aristath/tradebook/internal/config"
	"github.com/aristath/tradebook/internal/dashboard"
	"github.com/aristath/tradebook/internal/domain"
	"github.com/aristath/tradebook/internal/transactions"
)

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd
	notice := m.tx.State.Notice

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.ready = true

	case tea.KeyMsg:
		var cmd tea.Cmd
		m, cmd = m.handleKey(msg)
		cmds = append(cmds, cmd)

	case refreshMsg:
		cmds = append(cmds, fetchDashboard(m.ctx, m.dash))

	case dashboardMsg:
		if msg.err != nil {
			if !m.dash.Fail(msg.cycle) {
				break
			}
			n := domain.Danger(dashboard.LoadErrorText)
			m.dashNotice = &n
			m.noticeSeq++
			cmds = append(cmds, expireNotice(m.noticeSeq))
			break
		}
		if view, ok := m.dash.Apply(msg.cycle); ok {
			m.dashView = view
		}

	case reloadMsg:
		if m.tx.FinishReload(msg.seq, msg.res) {
			m.clampCursor()
		}

	case editMsg:
		m.tx.FinishEdit(msg.id, msg.res)
		if m.tx.State.FormOpen {
			m.loadInputs()
			cmds = append(cmds, m.setFocus(transactions.FieldStock))
		}

	case saveMsg:
		if m.tx.FinishSave(msg.req, msg.res) {
			m.blurInputs()
			cmds = append(cmds, m.reload(), fetchDashboard(m.ctx, m.dash))
		}

	case deleteMsg:
		if m.tx.FinishDelete(msg.id, msg.err) {
			cmds = append(cmds, m.reload(), fetchDashboard(m.ctx, m.dash))
		}

	case importMsg:
		reload, autoClose := m.tx.FinishImport(msg.res)
		if reload {
			cmds = append(cmds, m.reload(), fetchDashboard(m.ctx, m.dash))
		}
		if autoClose {
			cmds = append(cmds, scheduleImportClose())
		}

	case importCloseMsg:
		im := m.tx.State.Import
		if im.Open && im.Panel == transactions.PanelSuccess {
			m.tx.CloseImport()
		}

	case sampleMsg:
		if msg.err != nil {
			m.log.Error().Err(msg.err).Msg("Failed to download sample CSV")
			m.tx.State.Notice = ptr(domain.Danger("Failed to download sample CSV"))
		} else {
			m.tx.State.Notice = ptr(domain.Success(fmt.Sprintf("Sample CSV saved to %s", msg.path)))
		}

	case noticeExpiredMsg:
		if msg.seq == m.noticeSeq {
			m.tx.DismissNotice()
			m.dashNotice = nil
		}
		notice = m.tx.State.Notice

	case spinner.TickMsg:
		if m.tx.State.Import.Uploading {
			var cmd tea.Cmd
			m.spinner, cmd = m.spinner.Update(msg)
			cmds = append(cmds, cmd)
		}
	}

	// the picker reads directories through its own messages
	if m.tx.State.Import.Open {
		if _, isKey := msg.(tea.KeyMsg); !isKey {
			var cmd tea.Cmd
			m.picker, cmd = m.picker.Update(msg)
			cmds = append(cmds, cmd)
		}
	}

	if m.tx.State.Notice != nil && m.tx.State.Notice != notice {
		m.noticeSeq++
		cmds = append(cmds, expireNotice(m.noticeSeq))
	}

	return m, tea.Batch(cmds...)
}

func ptr[T any](v T) *T { return &v }

func (m Model) handleKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	if msg.String() == "ctrl+c" {
		return m, tea.Quit
	}

	st := &m.tx.State
	switch {
	case m.inSettings:
		return m.settingsKey(msg)
	case st.FormOpen:
		return m.formKey(msg)
	case st.Delete != nil:
		return m.deleteKey(msg)
	case st.Import.Open:
		return m.importKey(msg)
	case m.searching:
		return m.searchKey(msg)
	}

	switch {
	case key.Matches(msg, keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, keys.SwitchTab):
		if m.tab == tabDashboard {
			m.tab = tabTransactions
		} else {
			m.tab = tabDashboard
		}
		return m, nil
	case key.Matches(msg, keys.Refresh):
		return m, tea.Batch(fetchDashboard(m.ctx, m.dash), m.reload())
	case key.Matches(msg, keys.Settings):
		m.inSettings = true
		m.statusMsg = ""
		m.apiURLInput.SetValue(m.client.BaseURL())
		m.apiURLInput.CursorEnd()
		cmd := m.apiURLInput.Focus()
		return m, cmd
	case key.Matches(msg, keys.Back):
		m.tx.DismissNotice()
		m.dashNotice = nil
		return m, nil
	}

	if m.tab != tabTransactions {
		return m, nil
	}
	return m.tableKey(msg)
}

func (m Model) tableKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	tbl := m.tx.Table
	switch {
	case key.Matches(msg, keys.Up):
		if m.cursor > 0 {
			m.cursor--
		}
	case key.Matches(msg, keys.Down):
		if m.cursor < len(tbl.Visible())-1 {
			m.cursor++
		}
	case key.Matches(msg, keys.NextPage):
		tbl.NextPage()
		m.cursor = 0
	case key.Matches(msg, keys.PrevPage):
		tbl.PrevPage()
		m.cursor = 0
	case key.Matches(msg, keys.SortNext), key.Matches(msg, keys.SortPrev):
		col, _ := tbl.Sort()
		n := transactions.Column(len(transactions.Titles))
		if key.Matches(msg, keys.SortNext) {
			col = (col + 1) % n
		} else {
			col = (col + n - 1) % n
		}
		tbl.SortBy(col)
		m.cursor = 0
	case key.Matches(msg, keys.SortFlip):
		col, _ := tbl.Sort()
		tbl.SortBy(col)
	case key.Matches(msg, keys.Search):
		m.searching = true
		m.search.SetValue(tbl.Filter())
		cmd := m.search.Focus()
		return m, cmd
	case key.Matches(msg, keys.New):
		m.tx.OpenCreate()
		m.loadInputs()
		cmd := m.setFocus(transactions.FieldStock)
		return m, cmd
	case key.Matches(msg, keys.Edit):
		if row, ok := m.selected(); ok {
			return m, loadForEdit(m.ctx, m.tx, row.Transaction.ID)
		}
	case key.Matches(msg, keys.Delete):
		if row, ok := m.selected(); ok {
			m.tx.RequestDelete(row)
		}
	case key.Matches(msg, keys.Import):
		m.tx.OpenImport()
		return m, m.picker.Init()
	}
	return m, nil
}

func (m Model) formKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch {
	case key.Matches(msg, keys.Back):
		m.tx.CloseForm()
		m.blurInputs()
		return m, nil
	case key.Matches(msg, keys.NextField):
		cmd := m.setFocus((m.focus + 1) % transactions.FieldCount)
		return m, cmd
	case key.Matches(msg, keys.PrevField):
		cmd := m.setFocus((m.focus + transactions.FieldCount - 1) % transactions.FieldCount)
		return m, cmd
	case key.Matches(msg, keys.Save):
		req, ok := m.tx.PrepareSave()
		if !ok {
			return m, nil
		}
		return m, submit(m.ctx, m.tx, req)
	}

	var cmd tea.Cmd
	m.inputs[m.focus], cmd = m.inputs[m.focus].Update(msg)
	m.tx.State.Form.Set(m.focus, m.inputs[m.focus].Value())
	return m, cmd
}

func (m Model) deleteKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch {
	case key.Matches(msg, keys.Confirm):
		if id, ok := m.tx.ConfirmDelete(); ok {
			return m, remove(m.ctx, m.tx, id)
		}
	case key.Matches(msg, keys.Back), msg.String() == "n":
		m.tx.CancelDelete()
	}
	return m, nil
}

func (m Model) importKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch {
	case key.Matches(msg, keys.Back):
		m.tx.CloseImport()
		return m, nil
	case key.Matches(msg, keys.Upload):
		path, ok := m.tx.BeginImport()
		if !ok {
			return m, nil
		}
		return m, tea.Batch(upload(m.ctx, m.tx, path), m.spinner.Tick)
	case key.Matches(msg, keys.Sample):
		return m, downloadSample(m.ctx, m.tx)
	}

	var cmd tea.Cmd
	m.picker, cmd = m.picker.Update(msg)
	if ok, path := m.picker.DidSelectFile(msg); ok {
		m.tx.SelectImportFile(path)
	} else if ok, path := m.picker.DidSelectDisabledFile(msg); ok {
		m.tx.SelectImportFile(path)
	}
	return m, cmd
}

func (m Model) searchKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch msg.String() {
	case "esc", "enter":
		m.searching = false
		m.search.Blur()
		return m, nil
	}
	var cmd tea.Cmd
	m.search, cmd = m.search.Update(msg)
	m.tx.Table.SetFilter(m.search.Value())
	m.cursor = 0
	return m, cmd
}

func (m Model) settingsKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch {
	case key.Matches(msg, keys.Back):
		m.inSettings = false
		m.statusMsg = ""
		m.apiURLInput.Blur()
		return m, nil
	case msg.String() == "enter":
		input := strings.TrimSpace(m.apiURLInput.Value())
		if err := config.ValidateAPIURL(input); err != nil {
			m.statusMsg = err.Error()
			return m, nil
		}
		m.client.SetBaseURL(input)
		m.cfg.APIURL = input
		if err := config.SaveSettings(m.cfg.SettingsFile, config.Settings{APIURL: input}); err != nil {
			m.statusMsg = fmt.Sprintf("API URL updated, but failed to save %s: %v", m.cfg.SettingsFile, err)
			return m, tea.Batch(fetchDashboard(m.ctx, m.dash), m.reload())
		}
		m.log.Info().Str("api_url", input).Msg("API URL updated")
		m.inSettings = false
		m.statusMsg = ""
		m.apiURLInput.Blur()
		return m, tea.Batch(fetchDashboard(m.ctx, m.dash), m.reload())
	}
	var cmd tea.Cmd
	m.apiURLInput, cmd = m.apiURLInput.Update(msg)
	return m, cmd
}

func (m *Model) setFocus(f transactions.Field) tea.Cmd {
	m.focus = f
	var cmd tea.Cmd
	for i := range m.inputs {
		if transactions.Field(i) == f {
			cmd = m.inputs[i].Focus()
		} else {
			m.inputs[i].Blur()
		}
	}
	return cmd
}

func (m *Model) blurInputs() {
	for i := range m.inputs {
		m.inputs[i].Blur()
	}
}

// loadInputs copies the controller's form into the text inputs.
func (m *Model) loadInputs() {
	for i := range m.inputs {
		m.inputs[i].SetValue(m.tx.State.Form.Get(transactions.Field(i)))
		m.inputs[i].CursorEnd()
	}
}

func (m Model) selected() (transactions.Row, bool) {
	rows := m.tx.Table.Visible()
	if m.cursor < 0 || m.cursor >= len(rows) {
		return transactions.Row{}, false
	}
	return rows[m.cursor], true
}

func (m *Model) clampCursor() {
	n := len(m.tx.Table.Visible())
	if m.cursor >= n {
		m.cursor = n - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
}
