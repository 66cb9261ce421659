// internal/services/report_service.go
package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/netflix100plus/admin-console/internal/cache"
	"github.com/netflix100plus/admin-console/internal/models"
	"github.com/netflix100plus/admin-console/internal/utils"
)

const (
	weeklyWinnersPath    = "/admin/reports/weekly-winners"
	monthlyWinnersPath   = "/admin/reports/monthly-winners"
	weeklySchedulesPath  = "/admin/reports/schedules"
	monthlySchedulesPath = "/admin/reports/monthly-schedules"
	notifyWinnerPath     = "/admin/reports/notify-single-winner"
)

var ErrUnknownPeriod = errors.New("unknown report period")

type ReportService struct {
	client *APIClient
	cache  cache.Cache
	ttl    time.Duration
	log    *logrus.Entry
}

func NewReportService(client *APIClient, c cache.Cache, ttl time.Duration, log *logrus.Entry) *ReportService {
	if log == nil {
		log = logrus.NewEntry(logrus.StandardLogger())
	}
	return &ReportService{
		client: client,
		cache:  c,
		ttl:    ttl,
		log:    log.WithField("component", "report_service"),
	}
}

func (s *ReportService) WeeklyHistory(ctx context.Context) ([]models.WeeklyReport, error) {
	var resp dataEnvelope[[]models.WeeklyReport]
	if err := s.client.Get(ctx, weeklyWinnersPath, nil, &resp); err != nil {
		return nil, err
	}
	if err := validateRecords("weekly report", resp.Data); err != nil {
		return nil, err
	}
	if resp.Data == nil {
		resp.Data = []models.WeeklyReport{}
	}
	return resp.Data, nil
}

func (s *ReportService) MonthlyHistory(ctx context.Context) ([]models.MonthlyReport, error) {
	var resp dataEnvelope[[]models.MonthlyReport]
	if err := s.client.Get(ctx, monthlyWinnersPath, nil, &resp); err != nil {
		return nil, err
	}
	if err := validateRecords("monthly report", resp.Data); err != nil {
		return nil, err
	}
	if resp.Data == nil {
		resp.Data = []models.MonthlyReport{}
	}
	return resp.Data, nil
}

// Schedules lists the reporting periods of a kind. Periods rarely change, so
// the list is cached.
func (s *ReportService) Schedules(ctx context.Context, kind models.ReportKind) ([]models.ReportSchedule, error) {
	path := weeklySchedulesPath
	if kind == models.ReportKindMonthly {
		path = monthlySchedulesPath
	}
	key := "reports:schedules:" + string(kind)

	var schedules []models.ReportSchedule
	if s.cache != nil {
		ok, err := s.cache.Get(ctx, key, &schedules)
		if err != nil {
			s.log.WithError(err).Warn("Schedule cache read failed")
		}
		if ok {
			return schedules, nil
		}
	}

	var resp dataEnvelope[[]models.ReportSchedule]
	if err := s.client.Get(ctx, path, nil, &resp); err != nil {
		return nil, err
	}
	schedules = resp.Data
	if schedules == nil {
		schedules = []models.ReportSchedule{}
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, key, schedules, s.ttl); err != nil {
			s.log.WithError(err).Warn("Schedule cache write failed")
		}
	}
	return schedules, nil
}

// PeriodRange resolves a schedule id to its start and end dates.
func (s *ReportService) PeriodRange(ctx context.Context, kind models.ReportKind, periodID string) (string, string, error) {
	schedules, err := s.Schedules(ctx, kind)
	if err != nil {
		return "", "", err
	}
	for _, schedule := range schedules {
		if schedule.PeriodID.String() == periodID {
			return schedule.Start, schedule.End, nil
		}
	}
	return "", "", fmt.Errorf("%w: %s %s", ErrUnknownPeriod, kind, periodID)
}

func (s *ReportService) NotifySingleWinner(ctx context.Context, req *models.NotifySingleWinnerRequest) error {
	if err := utils.ValidateStruct(req); err != nil {
		return utils.NewValidationError("invalid winner notification", err)
	}
	if err := s.client.Post(ctx, notifyWinnerPath, req, nil); err != nil {
		return err
	}
	s.log.WithFields(logrus.Fields{
		"report_type": req.ReportType,
		"period_id":   req.PeriodID,
		"user_id":     req.UserID,
	}).Info("Winner notification requested")
	return nil
}
