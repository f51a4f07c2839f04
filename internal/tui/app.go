// Package tui provides the interactive Bubble Tea dashboard for subtrack.
package tui

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/theirongolddev/subtrack/internal/cli"
	"github.com/theirongolddev/subtrack/internal/config"
	"github.com/theirongolddev/subtrack/internal/currency"
	"github.com/theirongolddev/subtrack/internal/forecast"
	"github.com/theirongolddev/subtrack/internal/model"
	"github.com/theirongolddev/subtrack/internal/rates"
	"github.com/theirongolddev/subtrack/internal/schedule"
	"github.com/theirongolddev/subtrack/internal/store"
	"github.com/theirongolddev/subtrack/internal/tui/components"
	"github.com/theirongolddev/subtrack/internal/tui/theme"
)

// DataLoadedMsg is sent when the initial store read finishes.
type DataLoadedMsg struct {
	Subs  []model.Subscription
	Rates model.CurrencyRates
	Err   error
}

// RatesRefreshedMsg is sent when a manual rate refresh completes.
type RatesRefreshedMsg struct {
	Rates model.CurrencyRates
	Err   error
}

// App is the root Bubble Tea model.
type App struct {
	// Data
	subs   []model.Subscription
	rates  model.CurrencyRates
	loaded bool

	settings model.Settings
	cfg      config.Config
	dbPath   string

	// UI state
	width     int
	height    int
	activeTab int
	calMonth  time.Time
	cursor    int

	refreshing bool
	statusNote string

	spinner spinner.Model
}

const (
	minTerminalWidth = 60
	maxContentWidth  = 120
	minContentHeight = 5
)

// NewApp creates a new TUI app model.
func NewApp(dbPath string, cfg config.Config, currencyOverride string) App {
	settings := cfg.Settings()
	if currencyOverride != "" {
		settings.MainCurrency = strings.ToUpper(currencyOverride)
	}

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(theme.Active.Accent)

	return App{
		dbPath:   dbPath,
		cfg:      cfg,
		settings: settings,
		calMonth: schedule.StartOfMonth(today()),
		spinner:  sp,
	}
}

func today() time.Time {
	return schedule.Day(time.Now())
}

// Init implements tea.Model.
func (a App) Init() tea.Cmd {
	return tea.Batch(
		loadDataCmd(a.dbPath),
		a.spinner.Tick,
	)
}

// Update implements tea.Model.
func (a App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {

	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		return a, nil

	case tea.KeyMsg:
		key := msg.String()

		if key == "ctrl+c" || key == "q" {
			return a, tea.Quit
		}

		if !a.loaded {
			return a, nil
		}

		// Tab navigation
		switch key {
		case "o":
			a.activeTab = 0
		case "c":
			a.activeTab = 1
		case "s":
			a.activeTab = 2
		case "tab", "right":
			a.activeTab = (a.activeTab + 1) % len(components.Tabs)
		case "shift+tab", "left":
			a.activeTab = (a.activeTab - 1 + len(components.Tabs)) % len(components.Tabs)
		}

		// Calendar month navigation
		if a.activeTab == 1 {
			switch key {
			case "h", "p":
				a.calMonth = a.calMonth.AddDate(0, -1, 0)
			case "l", "n":
				a.calMonth = a.calMonth.AddDate(0, 1, 0)
			case "t":
				a.calMonth = schedule.StartOfMonth(today())
			}
		}

		// Subscriptions list navigation
		if a.activeTab == 2 {
			switch key {
			case "j", "down":
				if a.cursor < len(a.subs)-1 {
					a.cursor++
				}
			case "k", "up":
				if a.cursor > 0 {
					a.cursor--
				}
			case "g":
				a.cursor = 0
			case "G":
				a.cursor = len(a.subs) - 1
				if a.cursor < 0 {
					a.cursor = 0
				}
			}
		}

		// Manual rate refresh
		if key == "r" && !a.refreshing {
			a.refreshing = true
			a.statusNote = ""
			return a, tea.Batch(
				refreshRatesCmd(a.dbPath, a.cfg, a.settings.MainCurrency),
				a.spinner.Tick,
			)
		}

		return a, nil

	case DataLoadedMsg:
		a.loaded = true
		a.subs = msg.Subs
		a.rates = msg.Rates
		if msg.Err != nil {
			a.statusNote = msg.Err.Error()
		}
		return a, nil

	case RatesRefreshedMsg:
		a.refreshing = false
		if msg.Err != nil {
			a.statusNote = "refresh failed: " + msg.Err.Error()
			return a, nil
		}
		a.rates = msg.Rates
		a.statusNote = ""
		return a, nil

	case spinner.TickMsg:
		if !a.loaded || a.refreshing {
			var cmd tea.Cmd
			a.spinner, cmd = a.spinner.Update(msg)
			return a, cmd
		}
		return a, nil
	}

	return a, nil
}

func (a App) contentWidth() int {
	cw := a.width
	if cw > maxContentWidth {
		cw = maxContentWidth
	}
	return cw
}

// View implements tea.Model.
func (a App) View() string {
	if a.width == 0 {
		return ""
	}

	if a.width < minTerminalWidth {
		return fmt.Sprintf(
			"\n  Terminal too narrow (%d cols)\n\n  subtrack needs at least %d columns.\n",
			a.width, minTerminalWidth,
		)
	}

	if !a.loaded {
		return a.viewLoading()
	}

	return a.viewMain()
}

func (a App) viewLoading() string {
	t := theme.Active

	cardStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(t.BorderBright).
		Padding(1, 3)

	titleStyle := lipgloss.NewStyle().Foreground(t.Accent).Bold(true)
	subtitleStyle := lipgloss.NewStyle().Foreground(t.TextMuted)

	var b strings.Builder
	b.WriteString(titleStyle.Render("◈ subtrack"))
	b.WriteString("\n\n")
	b.WriteString(a.spinner.View())
	b.WriteString(subtitleStyle.Render(" Loading subscriptions..."))

	return lipgloss.Place(a.width, a.height, lipgloss.Center, lipgloss.Center,
		cardStyle.Render(b.String()))
}

func (a App) viewMain() string {
	w := a.width
	cw := a.contentWidth()
	h := a.height

	header := components.RenderTabBar(a.activeTab, w) + "\n"

	ratesAge := ""
	if a.refreshing {
		ratesAge = a.spinner.View() + " refreshing"
	} else if a.statusNote != "" {
		ratesAge = a.statusNote
	} else if !a.rates.UpdatedAt.IsZero() {
		ratesAge = cli.FormatAge(a.rates.UpdatedAt)
	}
	statusBar := components.RenderStatusBar(w, ratesAge)

	contentH := h - lipgloss.Height(header) - lipgloss.Height(statusBar)
	if contentH < minContentHeight {
		contentH = minContentHeight
	}

	var content string
	switch a.activeTab {
	case 0:
		content = a.renderOverviewTab(cw)
	case 1:
		content = a.renderCalendarTab(cw)
	case 2:
		content = a.renderSubscriptionsTab(cw, contentH)
	}

	content = padHeight(truncateHeight(content, contentH), contentH)

	return lipgloss.JoinVertical(lipgloss.Left, header, content, statusBar)
}

// ─── Tabs ───────────────────────────────────────────────────────

func (a App) renderOverviewTab(cw int) string {
	t := theme.Active
	now := today()

	labelStyle := lipgloss.NewStyle().Foreground(t.TextMuted).Width(18)
	valueStyle := lipgloss.NewStyle().Foreground(t.TextPrimary).Bold(true)
	dimStyle := lipgloss.NewStyle().Foreground(t.TextDim)

	active := 0
	for _, sub := range a.subs {
		if schedule.IsActive(sub, now) {
			active++
		}
	}

	cur := a.settings.MainCurrency
	monthly := forecast.MonthlyTotal(a.subs, now, a.settings, a.rates)
	average := forecast.AverageMonthly(a.subs, a.settings, a.rates)
	yearly := forecast.YearlyForecast(a.subs, a.settings, a.rates)
	ytd := forecast.YearToDateTotal(a.subs, a.settings, a.rates, now)

	var b strings.Builder
	fmt.Fprintf(&b, " %s %s\n\n",
		valueStyle.Render(fmt.Sprintf("%d", active)),
		dimStyle.Render(fmt.Sprintf("active of %d subscriptions", len(a.subs))))

	rows := []struct {
		label string
		value float64
	}{
		{"This month", monthly},
		{"Average monthly", average},
		{"Yearly forecast", yearly},
		{"Year to date", ytd},
	}
	for _, r := range rows {
		fmt.Fprintf(&b, " %s %s\n",
			labelStyle.Render(r.label),
			valueStyle.Render(cli.FormatMoney(r.value, cur)))
	}

	// 12-month trailing spend sparkline
	values := make([]float64, 12)
	for i := range values {
		m := now.AddDate(0, i-11, 0)
		values[i] = forecast.MonthlyTotal(a.subs, m, a.settings, a.rates)
	}
	b.WriteString("\n ")
	b.WriteString(dimStyle.Render("Last 12 months  "))
	b.WriteString(cli.RenderSparkline(values))
	b.WriteString("\n")

	// Upcoming payments
	upcoming := forecast.Upcoming(a.subs, a.settings, a.rates, now, a.cfg.General.UpcomingDays)
	if len(upcoming) > 0 {
		fmt.Fprintf(&b, "\n %s\n", labelStyle.Render(fmt.Sprintf("Next %d days", a.cfg.General.UpcomingDays)))
		limit := len(upcoming)
		if limit > 8 {
			limit = 8
		}
		for _, up := range upcoming[:limit] {
			fmt.Fprintf(&b, "   %s  %s %s\n",
				dimStyle.Render(fmt.Sprintf("%-14s", cli.FormatRelativeDays(up.Date, now))),
				valueStyle.Render(cli.FormatMoney(up.Amount, cur)),
				lipgloss.NewStyle().Foreground(t.TextMuted).Render(cli.Truncate(up.Subscription.Name, cw-36)))
		}
		if len(upcoming) > limit {
			fmt.Fprintf(&b, "   %s\n", dimStyle.Render(fmt.Sprintf("… and %d more", len(upcoming)-limit)))
		}
	}

	return b.String()
}

func (a App) renderCalendarTab(cw int) string {
	t := theme.Active
	now := today()

	dueDays := make(map[int]int)
	type charge struct {
		day  int
		name string
		amt  float64
	}
	var charges []charge
	for _, sub := range a.subs {
		if !schedule.IsActive(sub, a.calMonth) {
			continue
		}
		for d := range schedule.PaymentDatesForMonth(sub, a.calMonth) {
			dueDays[d.Day()]++
			amt := currency.Round(
				currency.Convert(sub.Amount, sub.Currency, a.settings.MainCurrency, a.rates),
				a.settings.RoundWholeNumbers)
			charges = append(charges, charge{day: d.Day(), name: sub.Name, amt: amt})
		}
	}

	sort.Slice(charges, func(i, j int) bool {
		if charges[i].day != charges[j].day {
			return charges[i].day < charges[j].day
		}
		return charges[i].name < charges[j].name
	})

	var b strings.Builder
	b.WriteString(cli.RenderCalendar(a.calMonth, dueDays, now))
	b.WriteString("\n")

	dimStyle := lipgloss.NewStyle().Foreground(t.TextDim)
	nameStyle := lipgloss.NewStyle().Foreground(t.TextMuted)
	amtStyle := lipgloss.NewStyle().Foreground(t.TextPrimary)

	if len(charges) == 0 {
		b.WriteString(dimStyle.Render(" No charges this month\n"))
		return b.String()
	}

	total := forecast.MonthlyTotal(a.subs, a.calMonth, a.settings, a.rates)
	for _, c := range charges {
		fmt.Fprintf(&b, " %s %s %s\n",
			dimStyle.Render(fmt.Sprintf("%2d", c.day)),
			amtStyle.Render(fmt.Sprintf("%12s", cli.FormatMoney(c.amt, a.settings.MainCurrency))),
			nameStyle.Render(cli.Truncate(c.name, cw-22)))
	}
	fmt.Fprintf(&b, "\n %s %s\n",
		dimStyle.Render("Total"),
		amtStyle.Render(cli.FormatMoney(total, a.settings.MainCurrency)))

	return b.String()
}

func (a App) renderSubscriptionsTab(cw, contentH int) string {
	t := theme.Active
	now := today()

	if len(a.subs) == 0 {
		return lipgloss.NewStyle().Foreground(t.TextDim).
			Render("\n No subscriptions yet. Add one with: subtrack add\n")
	}

	selStyle := lipgloss.NewStyle().Foreground(t.Accent).Bold(true)
	nameStyle := lipgloss.NewStyle().Foreground(t.TextPrimary)
	dimStyle := lipgloss.NewStyle().Foreground(t.TextDim)
	mutedStyle := lipgloss.NewStyle().Foreground(t.TextMuted)

	// Window the list around the cursor so it fits the content area.
	visible := contentH - 2
	if visible < 1 {
		visible = 1
	}
	start := 0
	if a.cursor >= visible {
		start = a.cursor - visible + 1
	}
	end := start + visible
	if end > len(a.subs) {
		end = len(a.subs)
	}

	var b strings.Builder
	b.WriteString("\n")
	for i := start; i < end; i++ {
		sub := a.subs[i]

		marker := "  "
		ns := nameStyle
		if i == a.cursor {
			marker = selStyle.Render("▸ ")
			ns = selStyle
		}

		next := "-"
		if d, err := schedule.NextPaymentDate(sub, now); err == nil {
			next = cli.FormatDay(d)
		}

		fmt.Fprintf(&b, " %s%s %s %s %s %s\n",
			marker,
			ns.Render(fmt.Sprintf("%-24s", cli.Truncate(sub.Name, 24))),
			mutedStyle.Render(fmt.Sprintf("%12s", cli.FormatMoney(sub.Amount, sub.Currency))),
			dimStyle.Render(fmt.Sprintf("%-16s", cli.FormatSchedule(sub))),
			dimStyle.Render(fmt.Sprintf("%-11s", next)),
			cli.StatusBadge(sub.Status))
	}

	return b.String()
}

// ─── Helpers ────────────────────────────────────────────────────

func truncateHeight(s string, limit int) string {
	lines := strings.Split(s, "\n")
	if len(lines) <= limit {
		return s
	}
	return strings.Join(lines[:limit], "\n")
}

func padHeight(s string, h int) string {
	lines := strings.Split(s, "\n")
	if len(lines) >= h {
		return s
	}
	return s + strings.Repeat("\n", h-len(lines))
}

// loadDataCmd reads subscriptions and cached rates from the store.
func loadDataCmd(dbPath string) tea.Cmd {
	return func() tea.Msg {
		st, err := store.Open(dbPath)
		if err != nil {
			return DataLoadedMsg{Err: err}
		}
		defer func() { _ = st.Close() }()

		subs, err := st.List()
		if err != nil {
			return DataLoadedMsg{Err: err}
		}
		cached, err := st.LoadRates()
		if err != nil {
			return DataLoadedMsg{Subs: subs, Err: err}
		}
		return DataLoadedMsg{Subs: subs, Rates: cached}
	}
}

// refreshRatesCmd fetches fresh rates from the provider and caches them.
func refreshRatesCmd(dbPath string, cfg config.Config, base string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		client := rates.NewClient(cfg.Rates.ProviderURL)
		fresh, err := client.Fetch(ctx, base)
		if err != nil {
			return RatesRefreshedMsg{Err: err}
		}

		st, err := store.Open(dbPath)
		if err != nil {
			return RatesRefreshedMsg{Rates: fresh, Err: err}
		}
		defer func() { _ = st.Close() }()

		if err := st.SaveRates(fresh); err != nil {
			return RatesRefreshedMsg{Rates: fresh, Err: err}
		}
		return RatesRefreshedMsg{Rates: fresh}
	}
}
