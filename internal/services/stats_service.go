// internal/services/stats_service.go
package services

import (
	"context"
	"net/url"
	"strconv"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/netflix100plus/admin-console/internal/cache"
	"github.com/netflix100plus/admin-console/internal/models"
	"github.com/netflix100plus/admin-console/internal/utils"
)

const (
	statsPath          = "/admin/stats"
	userGrowthPath     = "/admin/stats/user-growth"
	activityGrowthPath = "/admin/stats/activity-growth"

	dashboardStatsKey = "stats:dashboard"
	defaultGrowthDays = 30
)

type StatsService struct {
	client *APIClient
	cache  cache.Cache
	ttl    time.Duration
	log    *logrus.Entry
}

func NewStatsService(client *APIClient, c cache.Cache, ttl time.Duration, log *logrus.Entry) *StatsService {
	if log == nil {
		log = logrus.NewEntry(logrus.StandardLogger())
	}
	return &StatsService{
		client: client,
		cache:  c,
		ttl:    ttl,
		log:    log.WithField("component", "stats_service"),
	}
}

// Dashboard returns the headline counters, served from cache for ttl.
func (s *StatsService) Dashboard(ctx context.Context) (*models.DashboardStats, error) {
	var stats models.DashboardStats
	if s.cache != nil {
		ok, err := s.cache.Get(ctx, dashboardStatsKey, &stats)
		if err != nil {
			s.log.WithError(err).Warn("Stats cache read failed")
		}
		if ok {
			return &stats, nil
		}
	}

	var resp dataEnvelope[models.DashboardStats]
	if err := s.client.Get(ctx, statsPath, nil, &resp); err != nil {
		return nil, err
	}
	stats = resp.Data

	if s.cache != nil {
		if err := s.cache.Set(ctx, dashboardStatsKey, stats, s.ttl); err != nil {
			s.log.WithError(err).Warn("Stats cache write failed")
		}
	}
	return &stats, nil
}

// Invalidate drops cached counters after a mutation changed them.
func (s *StatsService) Invalidate(ctx context.Context) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Delete(ctx, dashboardStatsKey); err != nil {
		s.log.WithError(err).Warn("Stats cache invalidation failed")
	}
}

func (s *StatsService) UserGrowth(ctx context.Context, days int) ([]models.UserGrowthPoint, error) {
	if days <= 0 {
		days = defaultGrowthDays
	}
	query := url.Values{}
	query.Set("days", strconv.Itoa(days))

	var resp dataEnvelope[[]models.UserGrowthPoint]
	if err := s.client.Get(ctx, userGrowthPath, query, &resp); err != nil {
		return nil, err
	}
	if resp.Data == nil {
		resp.Data = []models.UserGrowthPoint{}
	}
	return resp.Data, nil
}

func (s *StatsService) ActivityGrowth(ctx context.Context, period models.GrowthPeriod, days int) ([]models.ActivityGrowthPoint, error) {
	if period == "" {
		period = models.GrowthPeriodDaily
	}
	if err := utils.ValidateVar(string(period), "oneof=daily weekly monthly"); err != nil {
		return nil, utils.NewValidationError("invalid growth period", err)
	}
	if days <= 0 {
		days = defaultGrowthDays
	}

	query := url.Values{}
	query.Set("type", string(period))
	query.Set("days", strconv.Itoa(days))

	var resp dataEnvelope[[]models.ActivityGrowthPoint]
	if err := s.client.Get(ctx, activityGrowthPath, query, &resp); err != nil {
		return nil, err
	}
	if resp.Data == nil {
		resp.Data = []models.ActivityGrowthPoint{}
	}
	return resp.Data, nil
}
