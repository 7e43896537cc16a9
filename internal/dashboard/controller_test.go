package dashboard

import (
	"context"
	"net/http"
	"sync/atomic"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aristath/tradebook/internal/api"
	"github.com/aristath/tradebook/internal/format"
	testingpkg "github.com/aristath/tradebook/internal/testing"
)

func newController(t *testing.T, backend *testingpkg.Backend) *Controller {
	t.Helper()
	client := api.NewClient(backend.URL, 0, zerolog.Nop())
	return NewController(client, format.New("INR", ""), time.Second, zerolog.Nop())
}

func TestRefresh_FullCycle(t *testing.T) {
	backend := testingpkg.NewBackend(testingpkg.NewTransactionFixtures()...)
	defer backend.Close()
	c := newController(t, backend)

	view, err := c.Refresh(context.Background())
	require.NoError(t, err)

	assert.True(t, view.Loaded)
	assert.Equal(t, "4", view.Summary.TotalTransactions)
	assert.Equal(t, Down, view.Summary.NetTrend)
	assert.Equal(t, "₹120.00", view.Summary.NetProfitLoss)

	require.NotNil(t, view.Metrics)
	assert.Equal(t, "30", view.Metrics.TotalShares)
	assert.Equal(t, "2", view.Metrics.ProfitablePositions)

	require.NotNil(t, view.Chart)
	assert.False(t, view.NoHoldings)
	assert.Equal(t, []string{
		"RELIANCE (5 shares - 16.7%)",
		"TCS (25 shares - 83.3%)",
	}, view.Chart.Legend())

	// stats, then two independent list fetches
	assert.Equal(t, []string{
		"GET /api/dashboard/stats",
		"GET /api/transactions",
		"GET /api/transactions",
	}, backend.Requests())
}

func TestRefresh_TwoCyclesLeaveOneLiveChart(t *testing.T) {
	backend := testingpkg.NewBackend(testingpkg.NewTransactionFixtures()...)
	defer backend.Close()
	c := newController(t, backend)

	first, err := c.Refresh(context.Background())
	require.NoError(t, err)
	second, err := c.Refresh(context.Background())
	require.NoError(t, err)

	assert.True(t, first.Chart.Destroyed())
	assert.False(t, second.Chart.Destroyed())
	assert.Equal(t, 1, c.LiveCharts())

	c.Stop()
	assert.Equal(t, 0, c.LiveCharts())
}

func TestRefresh_NoHoldingsShowsPlaceholder(t *testing.T) {
	fixtures := testingpkg.NewTransactionFixtures()
	backend := testingpkg.NewBackend(fixtures[2], fixtures[3]) // both fully sold
	defer backend.Close()
	c := newController(t, backend)

	view, err := c.Refresh(context.Background())
	require.NoError(t, err)

	assert.Nil(t, view.Chart)
	assert.True(t, view.NoHoldings)
	assert.Equal(t, 0, c.LiveCharts())
}

func TestRefresh_StatsFailureAbortsCycle(t *testing.T) {
	backend := testingpkg.NewBackend(testingpkg.NewTransactionFixtures()...)
	defer backend.Close()
	backend.Fail("GET /api/dashboard/stats", testingpkg.Failure{Status: http.StatusInternalServerError, Message: "db down"})
	c := newController(t, backend)

	view, err := c.Refresh(context.Background())
	require.Error(t, err)

	assert.False(t, view.Loaded)
	assert.Equal(t, 0, backend.Count("GET /api/transactions"))
}

func TestRefresh_ListFailureKeepsPreviousMetrics(t *testing.T) {
	backend := testingpkg.NewBackend(testingpkg.NewTransactionFixtures()...)
	defer backend.Close()
	c := newController(t, backend)

	_, err := c.Refresh(context.Background())
	require.NoError(t, err)

	backend.Fail("GET /api/transactions", testingpkg.Failure{Status: http.StatusInternalServerError})
	view, err := c.Refresh(context.Background())
	require.NoError(t, err)

	require.NotNil(t, view.Metrics)
	assert.Equal(t, "30", view.Metrics.TotalShares)
	require.NotNil(t, view.Chart)
	assert.Equal(t, 1, c.LiveCharts())
}

func TestApply_NewestCycleWins(t *testing.T) {
	backend := testingpkg.NewBackend(testingpkg.NewTransactionFixtures()...)
	defer backend.Close()
	c := newController(t, backend)
	ctx := context.Background()
	client := api.NewClient(backend.URL, 0, zerolog.Nop())

	older, err := c.Fetch(ctx)
	require.NoError(t, err)
	require.NoError(t, client.DeleteTransaction(ctx, "1"))
	newer, err := c.Fetch(ctx)
	require.NoError(t, err)
	assert.Greater(t, newer.Seq, older.Seq)

	view, ok := c.Apply(newer)
	require.True(t, ok)
	assert.Equal(t, "3", view.Summary.TotalTransactions)

	view, ok = c.Apply(older)
	assert.False(t, ok)
	assert.Equal(t, "3", view.Summary.TotalTransactions)
	assert.Equal(t, "3", c.View().Summary.TotalTransactions)
	assert.False(t, c.Fail(older))
	assert.Equal(t, 1, c.LiveCharts())
}

func TestFail_LatestCycleIsCurrent(t *testing.T) {
	backend := testingpkg.NewBackend()
	defer backend.Close()
	backend.Fail("GET /api/dashboard/stats", testingpkg.Failure{Status: http.StatusInternalServerError})
	c := newController(t, backend)

	cycle, err := c.Fetch(context.Background())
	require.Error(t, err)
	assert.True(t, c.Fail(cycle))
	assert.False(t, c.Fail(cycle))
}

func TestStart_TicksUntilStopped(t *testing.T) {
	backend := testingpkg.NewBackend()
	defer backend.Close()
	c := newController(t, backend)

	var ticks atomic.Int32
	require.NoError(t, c.Start(func() { ticks.Add(1) }))
	assert.Error(t, c.Start(func() {}), "second start is rejected")

	require.Eventually(t, func() bool { return ticks.Load() >= 1 }, 3*time.Second, 50*time.Millisecond)
	c.Stop()

	stopped := ticks.Load()
	time.Sleep(1500 * time.Millisecond)
	assert.Equal(t, stopped, ticks.Load())
}
