package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/gco-office/gco-api/internal/repository"
	appErrors "github.com/gco-office/gco-api/pkg/errors"
)

type stubDashboardReader struct {
	calls int
}

func (s *stubDashboardReader) RequestStatusDistribution(_ context.Context) ([]repository.StatusCount, error) {
	return []repository.StatusCount{{Status: "Pending", Count: 4}}, nil
}

func (s *stubDashboardReader) TicketStatusDistribution(_ context.Context) ([]repository.StatusCount, error) {
	return []repository.StatusCount{{Status: "Open", Count: 2}}, nil
}

func (s *stubDashboardReader) MonthlyRequestTrend(_ context.Context, _ int) ([]repository.MonthCount, error) {
	return []repository.MonthCount{{Month: "2025-02", Count: 7}}, nil
}

func (s *stubDashboardReader) PendingRequestCount(_ context.Context) (int, error) {
	s.calls++
	return 4, nil
}

func (s *stubDashboardReader) OpenTicketCount(_ context.Context) (int, error) { return 2, nil }

func (s *stubDashboardReader) VisitorCountOn(_ context.Context, _ time.Time) (int, error) {
	return 9, nil
}

func (s *stubDashboardReader) PendingAppointmentCount(_ context.Context) (int, error) { return 1, nil }

func (s *stubDashboardReader) OverallSatisfaction(_ context.Context) (*float64, error) {
	v := 4.5
	return &v, nil
}

type memoryCache struct {
	data map[string]*DashboardOverview
}

func (c *memoryCache) Get(_ context.Context, key string, dest interface{}) error {
	if cached, ok := c.data[key]; ok {
		*dest.(*DashboardOverview) = *cached
		return nil
	}
	return appErrors.ErrCacheMiss
}

func (c *memoryCache) Set(_ context.Context, key string, value interface{}, _ time.Duration) error {
	if c.data == nil {
		c.data = map[string]*DashboardOverview{}
	}
	c.data[key] = value.(*DashboardOverview)
	return nil
}

func (c *memoryCache) DeleteByPattern(_ context.Context, _ string) error {
	c.data = nil
	return nil
}

func TestDashboardOverviewBuildsAggregates(t *testing.T) {
	reader := &stubDashboardReader{}
	svc := NewDashboardService(reader, nil, time.Minute, nil)

	overview, err := svc.Overview(context.Background())
	require.NoError(t, err)
	require.Equal(t, 4, overview.PendingRequests)
	require.Equal(t, 2, overview.OpenTickets)
	require.Equal(t, 9, overview.VisitorsToday)
	require.Equal(t, 1, overview.PendingAppointments)
	require.Equal(t, 4.5, *overview.Satisfaction)
	require.Len(t, overview.RequestTrend, 1)
}

func TestDashboardOverviewServedFromCache(t *testing.T) {
	reader := &stubDashboardReader{}
	cache := &memoryCache{}
	svc := NewDashboardService(reader, cache, time.Minute, nil)

	_, err := svc.Overview(context.Background())
	require.NoError(t, err)
	_, err = svc.Overview(context.Background())
	require.NoError(t, err)
	require.Equal(t, 1, reader.calls)

	svc.Invalidate(context.Background())
	_, err = svc.Overview(context.Background())
	require.NoError(t, err)
	require.Equal(t, 2, reader.calls)
}
