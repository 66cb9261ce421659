// internal/services/leaderboard_service.go
package services

import (
	"context"
	"net/url"
	"strconv"

	"github.com/netflix100plus/admin-console/internal/models"
	"github.com/netflix100plus/admin-console/internal/utils"
)

const (
	publicLeaderboardPath = "/leaderboard"
	adminLeaderboardPath  = "/admin/leaderboard"
)

type LeaderboardService struct {
	client *APIClient
}

func NewLeaderboardService(client *APIClient) *LeaderboardService {
	return &LeaderboardService{client: client}
}

// Public is the ranking shown on the leaderboard page.
func (s *LeaderboardService) Public(ctx context.Context, q models.LeaderboardQuery) (*models.LeaderboardPage, error) {
	return s.fetch(ctx, publicLeaderboardPath, q, false)
}

// Activity is the overview ranking, optionally bound to a report period.
func (s *LeaderboardService) Activity(ctx context.Context, q models.LeaderboardQuery) (*models.LeaderboardPage, error) {
	return s.fetch(ctx, adminLeaderboardPath, q, true)
}

func (s *LeaderboardService) fetch(ctx context.Context, path string, q models.LeaderboardQuery, withRange bool) (*models.LeaderboardPage, error) {
	if q.Timespan == "" {
		q.Timespan = models.TimespanAllTime
	}
	if err := utils.ValidateVar(string(q.Timespan), "oneof=alltime weekly monthly streak"); err != nil {
		return nil, utils.NewValidationError("invalid timespan", err)
	}
	if q.PageSize <= 0 {
		q.PageSize = utils.DefaultPageSize
	}

	query := url.Values{}
	query.Set("timespan", string(q.Timespan))
	query.Set("page", strconv.Itoa(utils.WirePage(q.PageIndex)))
	query.Set("limit", strconv.Itoa(q.PageSize))
	if withRange {
		if q.StartDate != "" {
			query.Set("startDate", q.StartDate)
		}
		if q.EndDate != "" {
			query.Set("endDate", q.EndDate)
		}
	}

	var page models.LeaderboardPage
	if err := s.client.Get(ctx, path, query, &page); err != nil {
		return nil, err
	}
	if err := validateRecords("leaderboard", page.Leaderboard); err != nil {
		return nil, err
	}
	if page.Leaderboard == nil {
		page.Leaderboard = []models.LeaderboardEntry{}
	}
	return &page, nil
}
