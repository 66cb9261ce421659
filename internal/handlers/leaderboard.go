// internal/handlers/leaderboard.go
package handlers

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/netflix100plus/admin-console/internal/i18n"
	"github.com/netflix100plus/admin-console/internal/models"
	"github.com/netflix100plus/admin-console/internal/services"
	"github.com/netflix100plus/admin-console/internal/table"
	"github.com/netflix100plus/admin-console/internal/utils"
)

type LeaderboardHandler struct {
	leaderboardService *services.LeaderboardService
	reportService      *services.ReportService
}

func NewLeaderboardHandler(leaderboardService *services.LeaderboardService, reportService *services.ReportService) *LeaderboardHandler {
	return &LeaderboardHandler{
		leaderboardService: leaderboardService,
		reportService:      reportService,
	}
}

// GET /leaderboard
func (h *LeaderboardHandler) GetLeaderboard(c *gin.Context) {
	params := utils.GetPaginationParams(c)

	page, err := h.leaderboardService.Public(c.Request.Context(), models.LeaderboardQuery{
		Timespan:  models.Timespan(c.DefaultQuery("timespan", string(models.TimespanAllTime))),
		PageIndex: params.PageIndex,
		PageSize:  params.PageSize,
	})
	if err != nil {
		utils.ServiceErrorResponse(c, err)
		return
	}

	h.respond(c, page, params)
}

// GET /leaderboard/activity
// An optional period=<periodId> narrows a weekly or monthly ranking to that report period.
func (h *LeaderboardHandler) GetActivityLeaderboard(c *gin.Context) {
	lang := utils.GetLangFromContext(c)
	params := utils.GetPaginationParams(c)

	q := models.LeaderboardQuery{
		Timespan:  models.Timespan(c.DefaultQuery("timespan", string(models.TimespanWeekly))),
		PageIndex: params.PageIndex,
		PageSize:  params.PageSize,
		StartDate: c.Query("startDate"),
		EndDate:   c.Query("endDate"),
	}

	if period := c.Query("period"); period != "" && period != "current" {
		kind := models.ReportKindWeekly
		if q.Timespan == models.TimespanMonthly {
			kind = models.ReportKindMonthly
		}
		start, end, err := h.reportService.PeriodRange(c.Request.Context(), kind, period)
		if errors.Is(err, services.ErrUnknownPeriod) {
			utils.BadRequestResponse(c, i18n.T(lang, i18n.KeyValidationInvalid, "period"), nil)
			return
		}
		if err != nil {
			utils.ServiceErrorResponse(c, err)
			return
		}
		q.StartDate, q.EndDate = start, end
	}

	page, err := h.leaderboardService.Activity(c.Request.Context(), q)
	if err != nil {
		utils.ServiceErrorResponse(c, err)
		return
	}

	h.respond(c, page, params)
}

func (h *LeaderboardHandler) respond(c *gin.Context, page *models.LeaderboardPage, params utils.PaginationParams) {
	tbl := table.New(table.Options[models.LeaderboardEntry]{
		Data:             page.Leaderboard,
		Columns:          leaderboardColumns(),
		ManualPagination: true,
		PageCount:        page.Pagination.TotalPages,
		Pagination:       &table.PaginationState{PageIndex: params.PageIndex, PageSize: params.PageSize},
	})

	view := tbl.Snapshot()
	utils.PaginatedResponse(c, utils.PaginationResult{
		PageIndex: view.PageIndex,
		PageSize:  view.PageSize,
		Total:     page.Pagination.Total,
		PageCount: view.PageCount,
		Data:      view.Rows,
	})
}
