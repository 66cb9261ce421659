// internal/services/user_service.go
package services

import (
	"context"
	"net/url"
	"strconv"

	"github.com/netflix100plus/admin-console/internal/models"
	"github.com/netflix100plus/admin-console/internal/utils"
)

const (
	usersPath        = "/admin/users"
	defaultUserLimit = 100
)

type UserService struct {
	client *APIClient
}

// ActivityHistoryPage is one server-side page of a user's activity.
type ActivityHistoryPage struct {
	Entries   []models.ActivityHistoryEntry `json:"entries"`
	PageCount int                           `json:"pageCount"`
	Total     int64                         `json:"total"`
	PageIndex int                           `json:"pageIndex"`
	PageSize  int                           `json:"pageSize"`
}

func NewUserService(client *APIClient) *UserService {
	return &UserService{client: client}
}

func (s *UserService) List(ctx context.Context, filter models.UserFilter) ([]models.User, error) {
	query := url.Values{}
	if filter.Name != "" {
		query.Set("name", filter.Name)
	}
	if filter.IsBanned != nil {
		query.Set("isBanned", strconv.FormatBool(*filter.IsBanned))
	}
	limit := filter.Limit
	if limit <= 0 {
		limit = defaultUserLimit
	}
	query.Set("limit", strconv.Itoa(limit))

	var resp dataEnvelope[[]models.User]
	if err := s.client.Get(ctx, usersPath, query, &resp); err != nil {
		return nil, err
	}
	if err := validateRecords("user list", resp.Data); err != nil {
		return nil, err
	}
	if resp.Data == nil {
		resp.Data = []models.User{}
	}
	return resp.Data, nil
}

func (s *UserService) Details(ctx context.Context, id int64) (*models.UserDetails, error) {
	var resp dataEnvelope[*models.UserDetails]
	if err := s.client.Get(ctx, idPath(usersPath, id, "details"), nil, &resp); err != nil {
		return nil, err
	}
	if resp.Data == nil {
		return nil, &utils.APIError{Status: 404, Message: "user not found"}
	}
	if err := validateRecord("user details", resp.Data); err != nil {
		return nil, err
	}
	return resp.Data, nil
}

// ActivityHistory fetches one page; pageIndex is zero-based.
func (s *UserService) ActivityHistory(ctx context.Context, id int64, pageIndex, pageSize int) (*ActivityHistoryPage, error) {
	if pageSize <= 0 {
		pageSize = utils.DefaultPageSize
	}
	query := url.Values{}
	query.Set("page", strconv.Itoa(utils.WirePage(pageIndex)))
	query.Set("limit", strconv.Itoa(pageSize))

	var resp pagedEnvelope[models.ActivityHistoryEntry]
	if err := s.client.Get(ctx, idPath(usersPath, id, "activity-history"), query, &resp); err != nil {
		return nil, err
	}
	if err := validateRecords("activity history", resp.Data); err != nil {
		return nil, err
	}

	page := &ActivityHistoryPage{
		Entries:   resp.Data,
		PageCount: -1,
		Total:     -1,
		PageIndex: pageIndex,
		PageSize:  pageSize,
	}
	if page.Entries == nil {
		page.Entries = []models.ActivityHistoryEntry{}
	}
	if resp.Pagination != nil {
		page.PageCount = resp.Pagination.TotalPages
		page.Total = resp.Pagination.Total
	}
	return page, nil
}

func (s *UserService) Ban(ctx context.Context, id int64, req *models.BanRequest) error {
	if err := utils.ValidateStruct(req); err != nil {
		return utils.NewValidationError("invalid ban request", err)
	}
	return s.client.Patch(ctx, idPath(usersPath, id, "ban"), req, nil)
}

func (s *UserService) Unban(ctx context.Context, id int64) error {
	return s.client.Patch(ctx, idPath(usersPath, id, "unban"), nil, nil)
}
