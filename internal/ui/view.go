package ui

import (
	"fmt"
	"math"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	figure "github.com/common-nighthawk/go-figure"

	"github.com/aristath/tradebook/internal/dashboard"
	"github.com/aristath/tradebook/internal/domain"
	"github.com/aristath/tradebook/internal/theme"
	"github.com/aristath/tradebook/internal/transactions"
)

func (m Model) View() string {
	if !m.ready {
		return "\n  Loading..."
	}

	var body string
	st := m.tx.State
	switch {
	case m.inSettings:
		body = m.viewSettings()
	case st.FormOpen:
		body = m.viewForm()
	case st.Delete != nil:
		body = m.viewDelete()
	case st.Import.Open:
		body = m.viewImport()
	case m.tab == tabDashboard:
		body = m.viewDashboard()
	default:
		body = m.viewTransactions()
	}

	parts := []string{m.viewHeader()}
	if n := m.viewNotice(); n != "" {
		parts = append(parts, n)
	}
	parts = append(parts, "", body, "", m.viewHelp())

	return lipgloss.NewStyle().
		Width(m.width).
		Padding(0, 2).
		Render(strings.Join(parts, "\n"))
}

func (m Model) viewHeader() string {
	t := theme.Default
	active := lipgloss.NewStyle().Foreground(t.Primary).Bold(true).Underline(true)
	idle := lipgloss.NewStyle().Foreground(t.Muted)

	dash, txs := idle.Render("Dashboard"), idle.Render("Transactions")
	if m.tab == tabDashboard {
		dash = active.Render("Dashboard")
	} else {
		txs = active.Render("Transactions")
	}
	api := lipgloss.NewStyle().Foreground(t.Subtext).Render(m.client.BaseURL())
	return lipgloss.JoinHorizontal(lipgloss.Top, dash, "   ", txs, "   ", api)
}

func (m Model) viewNotice() string {
	n := m.tx.State.Notice
	if n == nil {
		n = m.dashNotice
	}
	if n == nil {
		return ""
	}
	return noticeStyle(n.Level).Render(n.Text)
}

func noticeStyle(l domain.Level) lipgloss.Style {
	t := theme.Default
	color := t.Info
	switch l {
	case domain.LevelSuccess:
		color = t.Success
	case domain.LevelWarning:
		color = t.Warning
	case domain.LevelDanger:
		color = t.Error
	}
	return lipgloss.NewStyle().Foreground(color).Bold(true)
}

func (m Model) viewHelp() string {
	st := m.tx.State
	var bindings []key.Binding
	switch {
	case m.inSettings:
		bindings = []key.Binding{keys.Save, keys.Back}
	case st.FormOpen:
		bindings = []key.Binding{keys.NextField, keys.PrevField, keys.Save, keys.Back}
	case st.Delete != nil:
		bindings = []key.Binding{keys.Confirm, keys.Back}
	case st.Import.Open:
		bindings = []key.Binding{keys.Upload, keys.Sample, keys.Back}
	case m.tab == tabDashboard:
		bindings = []key.Binding{keys.SwitchTab, keys.Refresh, keys.Settings, keys.Quit}
	default:
		bindings = []key.Binding{
			keys.SwitchTab, keys.New, keys.Edit, keys.Delete, keys.Import, keys.Search,
			keys.SortNext, keys.SortFlip, keys.NextPage, keys.PrevPage, keys.Refresh, keys.Quit,
		}
	}
	return m.help.ShortHelpView(bindings)
}

// renderFiglet renders text in the default figlet font.
func renderFiglet(text string) string {
	fig := figure.NewFigure(text, "", false)
	return strings.TrimRight(strings.Join(fig.Slicify(), "\n"), "\n ")
}

func (m Model) viewDashboard() string {
	t := theme.Default
	v := m.dashView

	banner := theme.GradientText(renderFiglet("tradebook"), t.Primary, t.Accent)
	if !v.Loaded {
		return lipgloss.JoinVertical(lipgloss.Left, banner, "",
			lipgloss.NewStyle().Foreground(t.Muted).Render("Loading dashboard..."))
	}

	s := v.Summary
	net := lipgloss.NewStyle().Foreground(t.Text)
	switch s.NetTrend {
	case dashboard.Up:
		net = net.Foreground(t.Success)
	case dashboard.Down:
		net = net.Foreground(t.Error)
	}
	summary := lipgloss.JoinHorizontal(lipgloss.Top,
		card("Total Transactions", s.TotalTransactions, lipgloss.NewStyle()),
		card("Total Investment", s.TotalInvestment, lipgloss.NewStyle()),
		card("Total Returns", s.TotalReturns, lipgloss.NewStyle()),
		card("Net Profit/Loss", s.NetProfitLoss, net),
		card("Active Stocks", s.ActiveStocks, lipgloss.NewStyle()),
	)

	mv := dashboard.MetricsView{AvgProfitLoss: "-", TotalShares: "-", ProfitablePositions: "-"}
	if v.Metrics != nil {
		mv = *v.Metrics
	}
	metrics := lipgloss.JoinHorizontal(lipgloss.Top,
		card("Avg P/L", mv.AvgProfitLoss, lipgloss.NewStyle()),
		card("Shares Held", mv.TotalShares, lipgloss.NewStyle()),
		card("Profitable Positions", mv.ProfitablePositions, lipgloss.NewStyle()),
	)

	title := lipgloss.NewStyle().Foreground(t.Info).Bold(true).Render("Current Holdings")
	var holdings string
	switch {
	case v.Chart != nil:
		holdings = renderHoldings(v.Chart, max(m.width-8, 10))
	case v.NoHoldings:
		holdings = lipgloss.NewStyle().Foreground(t.Muted).Render(dashboard.NoHoldingsText)
	}

	updated := lipgloss.NewStyle().Foreground(t.Muted).
		Render("Updated " + v.UpdatedAt.Format("15:04:05"))

	return lipgloss.JoinVertical(lipgloss.Left,
		banner, "", summary, metrics, "", title, holdings, "", updated)
}

func card(label, value string, valueStyle lipgloss.Style) string {
	t := theme.Default
	l := lipgloss.NewStyle().Foreground(t.Muted).Render(label)
	v := valueStyle.Bold(true).Render(value)
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(t.Border).
		Padding(0, 1).
		MarginRight(1).
		Render(l + "\n" + v)
}

// renderHoldings draws the proportion chart as one stacked bar plus a legend.
func renderHoldings(c *dashboard.Chart, width int) string {
	var bar strings.Builder
	used := 0
	for i, seg := range c.Segments {
		n := int(math.Round(c.Fraction(i) * float64(width)))
		if i == len(c.Segments)-1 {
			n = width - used
		}
		n = max(min(n, width-used), 0)
		used += n
		bar.WriteString(lipgloss.NewStyle().Foreground(lipgloss.Color(seg.Color)).Render(strings.Repeat("█", n)))
	}

	lines := []string{bar.String(), ""}
	for i, entry := range c.Legend() {
		swatch := lipgloss.NewStyle().Foreground(lipgloss.Color(c.Segments[i].Color)).Render("■")
		lines = append(lines, swatch+" "+entry)
	}
	return strings.Join(lines, "\n")
}

func toneStyle(tone transactions.Tone) lipgloss.Style {
	t := theme.Default
	s := lipgloss.NewStyle()
	switch tone {
	case transactions.Accent:
		return s.Foreground(t.Info)
	case transactions.Positive, transactions.Profit:
		return s.Foreground(t.Success)
	case transactions.Loss:
		return s.Foreground(t.Error)
	}
	return s.Foreground(t.Muted)
}

func (m Model) viewTransactions() string {
	t := theme.Default
	tbl := m.tx.Table

	col, desc := tbl.Sort()
	arrow := "↑"
	if desc {
		arrow = "↓"
	}
	info := fmt.Sprintf("%d of %d transactions   sorted by %s %s", tbl.Len(), tbl.Total(), col, arrow)
	if f := tbl.Filter(); f != "" {
		info += fmt.Sprintf("   filter %q", f)
	}
	head := lipgloss.NewStyle().Foreground(t.Subtext).Render(info)
	if m.searching {
		head = m.search.View()
	}

	rows := tbl.Visible()
	if len(rows) == 0 {
		empty := lipgloss.NewStyle().Foreground(t.Muted).Render("No transactions")
		return lipgloss.JoinVertical(lipgloss.Left, head, "", empty)
	}

	data := make([][]string, len(rows))
	for i, r := range rows {
		data[i] = []string{
			r.Stock, r.BuyQuantity, r.BuyPrice, r.TotalCost, r.BuyDate,
			r.SellQuantity, r.SellPrice, r.SellingCost, r.SellDate,
			r.DaysHeld.Text, r.Remaining.Text, r.ProfitLoss.Text,
		}
	}

	cursor := m.cursor
	grid := table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(t.Border)).
		Headers(transactions.Titles[:]...).
		Rows(data...).
		StyleFunc(func(row, c int) lipgloss.Style {
			if row == table.HeaderRow {
				return lipgloss.NewStyle().Foreground(t.Primary).Bold(true).Padding(0, 1)
			}
			s := lipgloss.NewStyle().Foreground(t.Text).Padding(0, 1)
			if row >= 0 && row < len(rows) {
				switch transactions.Column(c) {
				case transactions.ColDaysHeld:
					s = toneStyle(rows[row].DaysHeld.Tone).Padding(0, 1)
				case transactions.ColRemaining:
					s = toneStyle(rows[row].Remaining.Tone).Padding(0, 1)
				case transactions.ColProfitLoss:
					s = toneStyle(rows[row].ProfitLoss.Tone).Padding(0, 1)
				}
			}
			if row == cursor {
				s = s.Background(t.Surface).Bold(true)
			}
			return s
		})

	page := lipgloss.NewStyle().Foreground(t.Muted).
		Render(fmt.Sprintf("Page %d of %d", tbl.Page()+1, tbl.Pages()))

	return lipgloss.JoinVertical(lipgloss.Left, head, grid.String(), page)
}

func dialog(title string, lines ...string) string {
	t := theme.Default
	head := lipgloss.NewStyle().Foreground(t.Primary).Bold(true).Render(title)
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(t.Primary).
		Padding(1, 2).
		Render(strings.Join(append([]string{head, ""}, lines...), "\n"))
}

func (m Model) viewForm() string {
	t := theme.Default
	st := m.tx.State
	f := m.tx.Formatter()

	title := "Add Transaction"
	if st.Mode == transactions.ModeEdit {
		title = "Edit Transaction"
	}

	labelStyle := lipgloss.NewStyle().Width(16).Foreground(t.Subtext)
	var lines []string
	for i := range m.inputs {
		field := transactions.Field(i)
		label := labelStyle.Render(field.Label())
		if field == transactions.FieldSellQuantity && st.Form.SellInvalid() {
			label = labelStyle.Foreground(t.Error).Render(field.Label() + " !")
		}
		if field == m.focus {
			label = labelStyle.Foreground(t.Primary).Bold(true).Render(field.Label())
		}
		lines = append(lines, label+m.inputs[i].View())
	}

	totals := st.Form.Totals()
	muted := lipgloss.NewStyle().Foreground(t.Muted)
	lines = append(lines, "",
		muted.Render("Total Cost          ")+f.Currency(totals.TotalCost),
		muted.Render("Total Selling Cost  ")+f.Currency(totals.TotalSellingCost),
		muted.Render("Remaining Quantity  ")+fmt.Sprint(totals.Remaining),
	)
	if st.Form.SellInvalid() {
		lines = append(lines, "", lipgloss.NewStyle().Foreground(t.Error).Render(transactions.MsgSellExceedsBuy))
	}
	return dialog(title, lines...)
}

func (m Model) viewDelete() string {
	d := m.tx.State.Delete
	return dialog("Delete Transaction",
		"Are you sure you want to delete this transaction?",
		"",
		fmt.Sprintf("Stock:    %s", d.Stock),
		fmt.Sprintf("Quantity: %d", d.Quantity),
		"",
		"y delete   n cancel",
	)
}

func (m Model) viewImport() string {
	t := theme.Default
	im := m.tx.State.Import

	selected := lipgloss.NewStyle().Foreground(t.Muted).Render("No file selected")
	if im.File != "" {
		selected = "Selected: " + im.File
		if !transactions.IsCSV(im.File) {
			selected = lipgloss.NewStyle().Foreground(t.Error).Render(selected + " (not a .csv file)")
		}
	}

	action := lipgloss.NewStyle().Foreground(t.Muted).Render("u upload")
	switch {
	case im.Uploading:
		action = m.spinner.View() + " Uploading..."
	case im.CanUpload():
		action = lipgloss.NewStyle().Foreground(t.Success).Bold(true).Render("u upload")
	}

	lines := []string{m.picker.View(), "", selected, action}

	switch im.Panel {
	case transactions.PanelSuccess:
		lines = append(lines, "", lipgloss.NewStyle().Foreground(t.Success).Render(im.Message))
	case transactions.PanelWarning:
		lines = append(lines, "", lipgloss.NewStyle().Foreground(t.Warning).Render(im.Message))
		for _, e := range im.Errors {
			lines = append(lines, "  • "+e)
		}
	case transactions.PanelError:
		lines = append(lines, "", lipgloss.NewStyle().Foreground(t.Error).Render(im.Message))
	}
	return dialog("Bulk Import", lines...)
}

func (m Model) viewSettings() string {
	t := theme.Default

	label := lipgloss.NewStyle().Foreground(t.Muted).Render("API URL")
	lines := []string{label, m.apiURLInput.View()}
	if m.statusMsg != "" {
		lines = append(lines, "", lipgloss.NewStyle().Foreground(t.Error).Render(m.statusMsg))
	}
	return dialog("SETTINGS", lines...)
}
