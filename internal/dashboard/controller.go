// Package dashboard derives the summary view and holdings chart from the
// backend's aggregate stats and transaction list.
package dashboard

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/aristath/tradebook/internal/domain"
	"github.com/aristath/tradebook/internal/format"
	"github.com/aristath/tradebook/internal/scheduler"
)

// LoadErrorText is the notice shown when a refresh cycle aborts.
const LoadErrorText = "Error loading dashboard data"

// API is the part of the backend the dashboard reads.
type API interface {
	Stats(ctx context.Context) (domain.DashboardStats, error)
	AllTransactions(ctx context.Context) ([]domain.Transaction, error)
}

// Cycle is the data gathered by one refresh. Metrics and holdings come from
// two independent list fetches; either may fail without aborting the cycle.
type Cycle struct {
	Stats       domain.DashboardStats
	Metrics     Metrics
	MetricsErr  error
	Holdings    []Holding
	HoldingsErr error
	At          time.Time
	Seq         uint64 // issue order; only the newest completed cycle is shown
}

// View is what the dashboard currently shows.
type View struct {
	Loaded     bool
	Summary    Summary
	Metrics    *MetricsView
	Chart      *Chart
	NoHoldings bool
	UpdatedAt  time.Time
}

// Controller owns the dashboard view state, its chart and its refresh schedule.
type Controller struct {
	api      API
	format   format.Formatter
	log      zerolog.Logger
	interval time.Duration
	sched    *scheduler.Scheduler

	mu      sync.Mutex
	view    View
	charts  ChartHost
	issued  uint64
	applied uint64
}

// NewController creates a controller refreshing every interval once started.
func NewController(api API, f format.Formatter, interval time.Duration, log zerolog.Logger) *Controller {
	return &Controller{
		api:      api,
		format:   f,
		interval: interval,
		log:      log.With().Str("component", "dashboard").Logger(),
	}
}

// Fetch runs the I/O half of a refresh cycle. A stats failure aborts the
// cycle and is returned; list failures are recorded on the Cycle.
func (c *Controller) Fetch(ctx context.Context) (Cycle, error) {
	c.mu.Lock()
	c.issued++
	cycle := Cycle{At: time.Now(), Seq: c.issued}
	c.mu.Unlock()

	stats, err := c.api.Stats(ctx)
	if err != nil {
		c.log.Error().Err(err).Msg("Failed to load dashboard stats")
		return cycle, fmt.Errorf("load dashboard stats: %w", err)
	}
	cycle.Stats = stats

	txs, err := c.api.AllTransactions(ctx)
	if err != nil {
		c.log.Warn().Err(err).Msg("Failed to load transactions for metrics")
		cycle.MetricsErr = err
	} else {
		cycle.Metrics = ComputeMetrics(txs)
	}

	txs, err = c.api.AllTransactions(ctx)
	if err != nil {
		c.log.Warn().Err(err).Msg("Failed to load transactions for holdings chart")
		cycle.HoldingsErr = err
	} else {
		cycle.Holdings = GroupHoldings(txs)
	}

	return cycle, nil
}

// Apply updates the view from a completed cycle and re-renders the chart.
// Parts of the cycle that failed keep their previous values. A cycle issued
// before one already applied is discarded and Apply reports false.
func (c *Controller) Apply(cycle Cycle) (View, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.settle(cycle.Seq) {
		return c.view, false
	}
	c.view.Loaded = true
	c.view.Summary = NewSummary(cycle.Stats, c.format)
	c.view.UpdatedAt = cycle.At

	if cycle.MetricsErr == nil {
		mv := cycle.Metrics.View()
		c.view.Metrics = &mv
	}

	if cycle.HoldingsErr == nil {
		c.view.Chart = c.charts.Render(cycle.Holdings)
		c.view.NoHoldings = c.view.Chart == nil
		c.log.Debug().Int("stocks", len(cycle.Holdings)).Msg("Holdings chart rendered")
	}

	return c.view, true
}

// Fail records a cycle whose stats fetch failed. It reports whether the
// failure is still current; a newer cycle may already have been shown.
func (c *Controller) Fail(cycle Cycle) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.settle(cycle.Seq)
}

func (c *Controller) settle(seq uint64) bool {
	if seq <= c.applied {
		c.log.Debug().Uint64("seq", seq).Uint64("applied", c.applied).Msg("Discarding stale dashboard cycle")
		return false
	}
	c.applied = seq
	return true
}

// Refresh runs a full cycle synchronously.
func (c *Controller) Refresh(ctx context.Context) (View, error) {
	cycle, err := c.Fetch(ctx)
	if err != nil {
		c.Fail(cycle)
		return c.View(), err
	}
	view, _ := c.Apply(cycle)
	return view, nil
}

// View returns the current view.
func (c *Controller) View() View {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.view
}

// LiveCharts reports how many chart instances are alive.
func (c *Controller) LiveCharts() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.charts.Live()
}

// Start schedules tick every interval. The first cycle is the caller's job,
// run on initialization. Ticks may overlap a slow cycle.
func (c *Controller) Start(tick func()) error {
	c.mu.Lock()
	if c.sched != nil {
		c.mu.Unlock()
		return fmt.Errorf("dashboard refresh already started")
	}
	c.sched = scheduler.New(c.log)
	sched := c.sched
	c.mu.Unlock()

	err := sched.AddJob(scheduler.Every(c.interval), scheduler.JobFunc{
		JobName: "dashboard_refresh",
		Fn: func() error {
			tick()
			return nil
		},
	})
	if err != nil {
		return err
	}
	sched.Start()
	return nil
}

// Stop cancels the refresh schedule and destroys the chart.
func (c *Controller) Stop() {
	c.mu.Lock()
	sched := c.sched
	c.sched = nil
	c.mu.Unlock()

	if sched != nil {
		sched.Stop()
	}

	c.mu.Lock()
	c.charts.Teardown()
	c.view.Chart = nil
	c.mu.Unlock()
}
