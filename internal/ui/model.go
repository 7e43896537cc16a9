// Package ui is the terminal front end: a dashboard tab and a transactions
// tab driven by the two controllers.
package ui

import (
	"context"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/bubbles/filepicker"
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"

	"github.com/aristath/tradebook/internal/api"
	"github.com/aristath/tradebook/internal/config"
	"github.com/aristath/tradebook/internal/dashboard"
	"github.com/aristath/tradebook/internal/domain"
	"github.com/aristath/tradebook/internal/format"
	"github.com/aristath/tradebook/internal/transactions"
)

type tab int

const (
	tabDashboard tab = iota
	tabTransactions
)

// noticeTTL is how long a notice stays before it dismisses itself.
const noticeTTL = 5 * time.Second

type Model struct {
	client *api.Client
	cfg    config.Config
	log    zerolog.Logger
	ctx    context.Context

	dash *dashboard.Controller
	tx   *transactions.Controller

	// Data
	dashView   dashboard.View
	dashNotice *domain.Notice

	// UI state
	width     int
	height    int
	ready     bool
	tab       tab
	cursor    int
	focus     transactions.Field
	inputs    [transactions.FieldCount]textinput.Model
	search    textinput.Model
	searching bool
	noticeSeq int

	inSettings  bool
	apiURLInput textinput.Model
	statusMsg   string

	// Components
	picker  filepicker.Model
	spinner spinner.Model
	help    help.Model
}

// Messages

type refreshMsg struct{}

type dashboardMsg struct {
	cycle dashboard.Cycle
	err   error
}

type reloadMsg struct {
	seq uint64
	res domain.Result[[]domain.Transaction]
}

type editMsg struct {
	id  domain.ID
	res domain.Result[domain.Transaction]
}

type saveMsg struct {
	req transactions.SaveRequest
	res domain.Result[domain.Transaction]
}

type deleteMsg struct {
	id  domain.ID
	err error
}

type importMsg struct {
	res domain.Result[domain.ImportResult]
}

type importCloseMsg struct{}

type sampleMsg struct {
	path string
	err  error
}

type noticeExpiredMsg struct{ seq int }

// NewModel wires both controllers to client.
func NewModel(ctx context.Context, client *api.Client, cfg config.Config, log zerolog.Logger) Model {
	f := format.New(cfg.Currency, cfg.DateLayout)

	m := Model{
		client: client,
		cfg:    cfg,
		log:    log.With().Str("component", "ui").Logger(),
		ctx:    ctx,
		dash:   dashboard.NewController(client, f, cfg.RefreshInterval, log),
		tx:     transactions.NewController(client, f, cfg.PageSize, log),
		help:   help.New(),
	}

	for i := range m.inputs {
		ti := textinput.New()
		ti.Prompt = ""
		ti.CharLimit = 64
		ti.Width = 24
		m.inputs[i] = ti
	}
	m.inputs[transactions.FieldBuyDate].Placeholder = "YYYY-MM-DD"
	m.inputs[transactions.FieldSellDate].Placeholder = "YYYY-MM-DD"

	m.search = textinput.New()
	m.search.Prompt = "/ "
	m.search.Placeholder = "stock name"

	m.apiURLInput = textinput.New()
	m.apiURLInput.Prompt = ""
	m.apiURLInput.CharLimit = 256
	m.apiURLInput.Width = 48

	m.picker = filepicker.New()
	m.picker.AllowedTypes = []string{".csv", ".CSV"}
	if wd, err := os.Getwd(); err == nil {
		m.picker.CurrentDirectory = wd
	}

	m.spinner = spinner.New()
	m.spinner.Spinner = spinner.Dot

	return m
}

// Run starts the TUI and the dashboard refresh schedule, returning when the
// user quits.
func Run(m Model, opts ...tea.ProgramOption) error {
	p := tea.NewProgram(m, opts...)
	if err := m.dash.Start(func() { p.Send(refreshMsg{}) }); err != nil {
		return err
	}
	defer m.dash.Stop()

	_, err := p.Run()
	return err
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(
		fetchDashboard(m.ctx, m.dash),
		m.reload(),
	)
}

// Commands

func fetchDashboard(ctx context.Context, c *dashboard.Controller) tea.Cmd {
	return func() tea.Msg {
		cycle, err := c.Fetch(ctx)
		return dashboardMsg{cycle, err}
	}
}

// reload issues a sequence number on the loop and fetches off it.
func (m Model) reload() tea.Cmd {
	seq := m.tx.BeginReload()
	ctx, tx := m.ctx, m.tx
	return func() tea.Msg {
		return reloadMsg{seq, tx.LoadAll(ctx)}
	}
}

func loadForEdit(ctx context.Context, tx *transactions.Controller, id domain.ID) tea.Cmd {
	return func() tea.Msg {
		return editMsg{id, tx.LoadForEdit(ctx, id)}
	}
}

func submit(ctx context.Context, tx *transactions.Controller, req transactions.SaveRequest) tea.Cmd {
	return func() tea.Msg {
		return saveMsg{req, tx.Submit(ctx, req)}
	}
}

func remove(ctx context.Context, tx *transactions.Controller, id domain.ID) tea.Cmd {
	return func() tea.Msg {
		return deleteMsg{id, tx.Delete(ctx, id)}
	}
}

func upload(ctx context.Context, tx *transactions.Controller, path string) tea.Cmd {
	return func() tea.Msg {
		return importMsg{tx.Import(ctx, path)}
	}
}

func downloadSample(ctx context.Context, tx *transactions.Controller) tea.Cmd {
	return func() tea.Msg {
		path := transactions.SampleFilename
		if wd, err := os.Getwd(); err == nil {
			path = filepath.Join(wd, path)
		}
		return sampleMsg{path, tx.DownloadSample(ctx, path)}
	}
}

func scheduleImportClose() tea.Cmd {
	return tea.Tick(transactions.AutoCloseDelay, func(time.Time) tea.Msg {
		return importCloseMsg{}
	})
}

func expireNotice(seq int) tea.Cmd {
	return tea.Tick(noticeTTL, func(time.Time) tea.Msg {
		return noticeExpiredMsg{seq}
	})
}
