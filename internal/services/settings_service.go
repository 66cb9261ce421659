// internal/services/settings_service.go
package services

import (
	"bytes"
	"context"
	"encoding/json"

	"github.com/netflix100plus/admin-console/internal/models"
	"github.com/netflix100plus/admin-console/internal/utils"
)

const (
	registrationSettingsPath = "/admin/settings/registration"
	winnerRecipientsPath     = "/admin/settings/winner-recipients"
)

type SettingsService struct {
	client *APIClient
}

func NewSettingsService(client *APIClient) *SettingsService {
	return &SettingsService{client: client}
}

func (s *SettingsService) Registration(ctx context.Context) (*models.RegistrationSettings, error) {
	var settings models.RegistrationSettings
	if err := s.client.Get(ctx, registrationSettingsPath, nil, &settings); err != nil {
		return nil, err
	}
	if err := validateRecord("registration settings", &settings); err != nil {
		return nil, err
	}
	return &settings, nil
}

func (s *SettingsService) UpdateRegistration(ctx context.Context, settings *models.RegistrationSettings) error {
	if err := utils.ValidateStruct(settings); err != nil {
		return utils.NewValidationError("invalid registration settings", err)
	}
	return s.client.Put(ctx, registrationSettingsPath, settings, nil)
}

// WinnerRecipients returns the addresses that receive winner reports.
func (s *SettingsService) WinnerRecipients(ctx context.Context) ([]string, error) {
	var raw recipientList
	if err := s.client.Get(ctx, winnerRecipientsPath, nil, &raw); err != nil {
		return nil, err
	}
	if raw == nil {
		return []string{}, nil
	}
	return []string(raw), nil
}

func (s *SettingsService) UpdateWinnerRecipients(ctx context.Context, emails []string) error {
	req := &models.WinnerRecipientsRequest{Emails: emails}
	if req.Emails == nil {
		req.Emails = []string{}
	}
	if err := utils.ValidateStruct(req); err != nil {
		return utils.NewValidationError("invalid recipient list", err)
	}
	return s.client.Put(ctx, winnerRecipientsPath, req, nil)
}

// UpdateWinnerRecipientsText accepts the comma separated form input.
func (s *SettingsService) UpdateWinnerRecipientsText(ctx context.Context, raw string) ([]string, error) {
	emails, ok := utils.ParseEmailList(raw)
	if !ok {
		return nil, &utils.ValidationError{
			Message: "invalid recipient list",
			Fields: []utils.FieldError{{
				Field:   "emails",
				Tag:     "email_list",
				Message: "Recipients must be a comma separated list of valid email addresses",
			}},
		}
	}
	return emails, s.UpdateWinnerRecipients(ctx, emails)
}

// recipientList accepts a bare array or one wrapped in "data" or "emails".
type recipientList []string

func (r *recipientList) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] == '[' {
		var list []string
		if err := json.Unmarshal(data, &list); err != nil {
			return err
		}
		*r = list
		return nil
	}

	var wrapped struct {
		Data   []string `json:"data"`
		Emails []string `json:"emails"`
	}
	if err := json.Unmarshal(data, &wrapped); err != nil {
		return err
	}
	switch {
	case wrapped.Data != nil:
		*r = wrapped.Data
	case wrapped.Emails != nil:
		*r = wrapped.Emails
	default:
		*r = []string{}
	}
	return nil
}
