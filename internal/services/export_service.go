// internal/services/export_service.go
package services

import (
	"context"

	"github.com/sirupsen/logrus"

	"github.com/netflix100plus/admin-console/internal/models"
	"github.com/netflix100plus/admin-console/internal/utils"
)

const exportPath = "/admin/export"

// ExportService starts export jobs. Completion arrives over the realtime channel.
type ExportService struct {
	client *APIClient
	log    *logrus.Entry
}

func NewExportService(client *APIClient, log *logrus.Entry) *ExportService {
	if log == nil {
		log = logrus.NewEntry(logrus.StandardLogger())
	}
	return &ExportService{client: client, log: log.WithField("component", "export_service")}
}

func (s *ExportService) Request(ctx context.Context, req *models.ExportRequest) (*models.ExportJob, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, utils.NewValidationError("invalid export request", err)
	}

	filters, err := normalizeExportFilters(req.Type, req.Filters)
	if err != nil {
		return nil, err
	}

	var job models.ExportJob
	body := models.ExportRequest{Type: req.Type, Filters: filters}
	if err := s.client.Post(ctx, exportPath, body, &job); err != nil {
		return nil, err
	}

	s.log.WithFields(logrus.Fields{
		"type":   req.Type,
		"job_id": job.JobID,
	}).Info("Export requested")
	return &job, nil
}

// normalizeExportFilters applies per-type defaults and rejects unknown values.
func normalizeExportFilters(kind models.ExportType, in map[string]string) (map[string]string, error) {
	filters := make(map[string]string, len(in))
	for k, v := range in {
		if v != "" {
			filters[k] = v
		}
	}

	check := func(field, value, rule string) error {
		if err := utils.ValidateVar(value, rule); err != nil {
			return &utils.ValidationError{
				Message: "invalid export filters",
				Fields: []utils.FieldError{{
					Field:   "filters." + field,
					Tag:     "oneof",
					Message: field + " must be one of: " + rule[len("oneof="):],
				}},
				Err: err,
			}
		}
		return nil
	}

	switch kind {
	case models.ExportParticipants:
		if _, ok := filters["isBanned"]; !ok {
			filters["isBanned"] = "false"
		}
		if err := check("isBanned", filters["isBanned"], "oneof=true false"); err != nil {
			return nil, err
		}
	case models.ExportLeaderboard:
		if _, ok := filters["timespan"]; !ok {
			filters["timespan"] = string(models.TimespanAllTime)
		}
		if err := check("timespan", filters["timespan"], "oneof=alltime weekly streak"); err != nil {
			return nil, err
		}
	case models.ExportVerifications, models.ExportSubmissions:
		if status, ok := filters["status"]; ok && status == models.StatusFilterAll {
			delete(filters, "status")
		}
	}
	return filters, nil
}
