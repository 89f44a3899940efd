package service

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"

	"github.com/gco-office/gco-api/internal/repository"
	appErrors "github.com/gco-office/gco-api/pkg/errors"
)

const dashboardCacheKey = "dashboard:overview"

type dashboardReader interface {
	RequestStatusDistribution(ctx context.Context) ([]repository.StatusCount, error)
	TicketStatusDistribution(ctx context.Context) ([]repository.StatusCount, error)
	MonthlyRequestTrend(ctx context.Context, months int) ([]repository.MonthCount, error)
	PendingRequestCount(ctx context.Context) (int, error)
	OpenTicketCount(ctx context.Context) (int, error)
	VisitorCountOn(ctx context.Context, date time.Time) (int, error)
	PendingAppointmentCount(ctx context.Context) (int, error)
	OverallSatisfaction(ctx context.Context) (*float64, error)
}

type cacheStore interface {
	Get(ctx context.Context, key string, dest interface{}) error
	Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error
	DeleteByPattern(ctx context.Context, pattern string) error
}

// DashboardOverview aggregates the headline figures and charts for the
// admin dashboard.
type DashboardOverview struct {
	PendingRequests     int                      `json:"pending_requests"`
	OpenTickets         int                      `json:"open_tickets"`
	VisitorsToday       int                      `json:"visitors_today"`
	PendingAppointments int                      `json:"pending_appointments"`
	Satisfaction        *float64                 `json:"satisfaction,omitempty"`
	RequestsByStatus    []repository.StatusCount `json:"requests_by_status"`
	TicketsByStatus     []repository.StatusCount `json:"tickets_by_status"`
	RequestTrend        []repository.MonthCount  `json:"request_trend"`
	GeneratedAt         time.Time                `json:"generated_at"`
}

// DashboardService builds dashboard aggregates with a short cache in front.
type DashboardService struct {
	stats  dashboardReader
	cache  cacheStore
	ttl    time.Duration
	logger *zap.Logger
	now    func() time.Time
}

// NewDashboardService constructs the service.
func NewDashboardService(stats dashboardReader, cache cacheStore, ttl time.Duration, logger *zap.Logger) *DashboardService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if ttl <= 0 {
		ttl = time.Minute
	}
	return &DashboardService{
		stats:  stats,
		cache:  cache,
		ttl:    ttl,
		logger: logger,
		now:    func() time.Time { return time.Now().UTC() },
	}
}

// Overview returns the dashboard payload, served from cache when fresh.
func (s *DashboardService) Overview(ctx context.Context) (*DashboardOverview, error) {
	if s.cache != nil {
		var cached DashboardOverview
		err := s.cache.Get(ctx, dashboardCacheKey, &cached)
		if err == nil {
			return &cached, nil
		}
		if !errors.Is(err, appErrors.ErrCacheMiss) {
			s.logger.Warn("dashboard cache read failed", zap.Error(err))
		}
	}

	overview, err := s.build(ctx)
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, dashboardCacheKey, overview, s.ttl); err != nil {
			s.logger.Warn("dashboard cache write failed", zap.Error(err))
		}
	}
	return overview, nil
}

// Invalidate drops the cached overview. Called after writes that change the
// aggregates.
func (s *DashboardService) Invalidate(ctx context.Context) {
	if s.cache == nil {
		return
	}
	if err := s.cache.DeleteByPattern(ctx, "dashboard:*"); err != nil {
		s.logger.Warn("dashboard cache invalidation failed", zap.Error(err))
	}
}

func (s *DashboardService) build(ctx context.Context) (*DashboardOverview, error) {
	now := s.now()
	overview := &DashboardOverview{GeneratedAt: now}

	var err error
	if overview.PendingRequests, err = s.stats.PendingRequestCount(ctx); err != nil {
		return nil, err
	}
	if overview.OpenTickets, err = s.stats.OpenTicketCount(ctx); err != nil {
		return nil, err
	}
	if overview.VisitorsToday, err = s.stats.VisitorCountOn(ctx, now.Truncate(24*time.Hour)); err != nil {
		return nil, err
	}
	if overview.PendingAppointments, err = s.stats.PendingAppointmentCount(ctx); err != nil {
		return nil, err
	}
	if overview.Satisfaction, err = s.stats.OverallSatisfaction(ctx); err != nil {
		return nil, err
	}
	if overview.RequestsByStatus, err = s.stats.RequestStatusDistribution(ctx); err != nil {
		return nil, err
	}
	if overview.TicketsByStatus, err = s.stats.TicketStatusDistribution(ctx); err != nil {
		return nil, err
	}
	if overview.RequestTrend, err = s.stats.MonthlyRequestTrend(ctx, 6); err != nil {
		return nil, err
	}
	return overview, nil
}
