// internal/services/verification_service.go
package services

import (
	"context"
	"net/url"

	"github.com/netflix100plus/admin-console/internal/models"
	"github.com/netflix100plus/admin-console/internal/utils"
)

const (
	verificationsPath = "/admin/purchase-verifications"
	submissionsPath   = "/admin/activity-submissions"
)

// VerificationService reviews purchase receipts.
type VerificationService struct {
	client *APIClient
}

func NewVerificationService(client *APIClient) *VerificationService {
	return &VerificationService{client: client}
}

func (s *VerificationService) List(ctx context.Context, filter models.ReviewFilter) ([]models.Verification, error) {
	var resp dataEnvelope[[]models.Verification]
	if err := s.client.Get(ctx, verificationsPath, reviewQuery(filter, true), &resp); err != nil {
		return nil, err
	}
	if err := validateRecords("verification list", resp.Data); err != nil {
		return nil, err
	}
	if resp.Data == nil {
		resp.Data = []models.Verification{}
	}
	return resp.Data, nil
}

func (s *VerificationService) Approve(ctx context.Context, id int64) error {
	return s.client.Patch(ctx, idPath(verificationsPath, id, "approve"), nil, nil)
}

func (s *VerificationService) Reject(ctx context.Context, id int64, req *models.RejectRequest) error {
	if err := utils.ValidateStruct(req); err != nil {
		return utils.NewValidationError("invalid rejection", err)
	}
	return s.client.Patch(ctx, idPath(verificationsPath, id, "reject"), req, nil)
}

// SubmissionService reviews challenge activity submissions.
type SubmissionService struct {
	client *APIClient
}

func NewSubmissionService(client *APIClient) *SubmissionService {
	return &SubmissionService{client: client}
}

func (s *SubmissionService) List(ctx context.Context, filter models.ReviewFilter) ([]models.Submission, error) {
	var resp dataEnvelope[[]models.Submission]
	if err := s.client.Get(ctx, submissionsPath, reviewQuery(filter, false), &resp); err != nil {
		return nil, err
	}
	if err := validateRecords("submission list", resp.Data); err != nil {
		return nil, err
	}
	if resp.Data == nil {
		resp.Data = []models.Submission{}
	}
	return resp.Data, nil
}

func (s *SubmissionService) Approve(ctx context.Context, id int64) error {
	return s.client.Patch(ctx, idPath(submissionsPath, id, "approve"), nil, nil)
}

func (s *SubmissionService) Reject(ctx context.Context, id int64, req *models.RejectRequest) error {
	if err := utils.ValidateStruct(req); err != nil {
		return utils.NewValidationError("invalid rejection", err)
	}
	return s.client.Patch(ctx, idPath(submissionsPath, id, "reject"), req, nil)
}

// reviewQuery drops "ALL" filters; the backend treats a missing param as no filter.
func reviewQuery(filter models.ReviewFilter, withType bool) url.Values {
	query := url.Values{}
	if filter.Status != "" && filter.Status != models.StatusFilterAll {
		query.Set("status", filter.Status)
	}
	if withType && filter.Type != "" && filter.Type != models.StatusFilterAll {
		query.Set("type", filter.Type)
	}
	if filter.NameOrEmail != "" {
		query.Set("nameOrEmail", filter.NameOrEmail)
	}
	return query
}
