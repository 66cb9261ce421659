// internal/handlers/user.go
package handlers

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/netflix100plus/admin-console/internal/i18n"
	"github.com/netflix100plus/admin-console/internal/models"
	"github.com/netflix100plus/admin-console/internal/services"
	"github.com/netflix100plus/admin-console/internal/table"
	"github.com/netflix100plus/admin-console/internal/utils"
)

type UserHandler struct {
	userService  *services.UserService
	statsService *services.StatsService
}

func NewUserHandler(userService *services.UserService, statsService *services.StatsService) *UserHandler {
	return &UserHandler{
		userService:  userService,
		statsService: statsService,
	}
}

// GET /users
func (h *UserHandler) GetUsers(c *gin.Context) {
	lang := utils.GetLangFromContext(c)

	filter := models.UserFilter{Name: c.Query("name")}
	if banned := c.Query("isBanned"); banned != "" && banned != "all" {
		v, err := strconv.ParseBool(banned)
		if err != nil {
			utils.BadRequestResponse(c, i18n.T(lang, i18n.KeyValidationInvalid, "isBanned"), nil)
			return
		}
		filter.IsBanned = &v
	}

	users, err := h.userService.List(c.Request.Context(), filter)
	if err != nil {
		utils.ServiceErrorResponse(c, err)
		return
	}

	tbl := table.New(table.Options[models.User]{Data: users, Columns: userColumns()})
	tbl.Apply(table.ParseQuery(c.Request.URL.Query()))

	view := tbl.Snapshot("purchaseStatus", "isBanned")
	utils.SuccessResponseWithMeta(c, view.Rows, tableMeta(view))
}

// GET /users/:id
func (h *UserHandler) GetUser(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	details, err := h.userService.Details(c.Request.Context(), id)
	if err != nil {
		utils.ServiceErrorResponse(c, err)
		return
	}

	utils.SuccessResponse(c, details)
}

// GET /users/:id/activity-history
func (h *UserHandler) GetActivityHistory(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	params := utils.GetPaginationParams(c)

	page, err := h.userService.ActivityHistory(c.Request.Context(), id, params.PageIndex, params.PageSize)
	if err != nil {
		utils.ServiceErrorResponse(c, err)
		return
	}

	tbl := table.New(table.Options[models.ActivityHistoryEntry]{
		Data:             page.Entries,
		Columns:          activityColumns(),
		ManualPagination: true,
		PageCount:        page.PageCount,
		Pagination:       &table.PaginationState{PageIndex: params.PageIndex, PageSize: params.PageSize},
	})

	view := tbl.Snapshot()
	utils.PaginatedResponse(c, utils.PaginationResult{
		PageIndex: view.PageIndex,
		PageSize:  view.PageSize,
		Total:     page.Total,
		PageCount: view.PageCount,
		Data:      view.Rows,
	})
}

// PATCH /users/:id/ban
func (h *UserHandler) BanUser(c *gin.Context) {
	lang := utils.GetLangFromContext(c)

	id, ok := pathID(c)
	if !ok {
		return
	}

	var req models.BanRequest
	if !bindJSON(c, &req) {
		return
	}

	if err := h.userService.Ban(c.Request.Context(), id, &req); err != nil {
		utils.ServiceErrorResponse(c, err)
		return
	}
	h.statsService.Invalidate(c.Request.Context())

	utils.SuccessResponse(c, gin.H{
		"message": i18n.T(lang, i18n.KeyUserBanned),
	})
}

// PATCH /users/:id/unban
func (h *UserHandler) UnbanUser(c *gin.Context) {
	lang := utils.GetLangFromContext(c)

	id, ok := pathID(c)
	if !ok {
		return
	}

	if err := h.userService.Unban(c.Request.Context(), id); err != nil {
		utils.ServiceErrorResponse(c, err)
		return
	}
	h.statsService.Invalidate(c.Request.Context())

	utils.SuccessResponse(c, gin.H{
		"message": i18n.T(lang, i18n.KeyUserUnbanned),
	})
}
