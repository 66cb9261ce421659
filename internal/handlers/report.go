// internal/handlers/report.go
package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/netflix100plus/admin-console/internal/i18n"
	"github.com/netflix100plus/admin-console/internal/models"
	"github.com/netflix100plus/admin-console/internal/services"
	"github.com/netflix100plus/admin-console/internal/utils"
)

type ReportHandler struct {
	reportService *services.ReportService
}

func NewReportHandler(reportService *services.ReportService) *ReportHandler {
	return &ReportHandler{
		reportService: reportService,
	}
}

// GET /reports/weekly-winners
func (h *ReportHandler) GetWeeklyWinners(c *gin.Context) {
	reports, err := h.reportService.WeeklyHistory(c.Request.Context())
	if err != nil {
		utils.ServiceErrorResponse(c, err)
		return
	}

	utils.SuccessResponse(c, reports)
}

// GET /reports/monthly-winners
func (h *ReportHandler) GetMonthlyWinners(c *gin.Context) {
	reports, err := h.reportService.MonthlyHistory(c.Request.Context())
	if err != nil {
		utils.ServiceErrorResponse(c, err)
		return
	}

	utils.SuccessResponse(c, reports)
}

// GET /reports/schedules
func (h *ReportHandler) GetWeeklySchedules(c *gin.Context) {
	h.schedules(c, models.ReportKindWeekly)
}

// GET /reports/monthly-schedules
func (h *ReportHandler) GetMonthlySchedules(c *gin.Context) {
	h.schedules(c, models.ReportKindMonthly)
}

func (h *ReportHandler) schedules(c *gin.Context, kind models.ReportKind) {
	schedules, err := h.reportService.Schedules(c.Request.Context(), kind)
	if err != nil {
		utils.ServiceErrorResponse(c, err)
		return
	}

	utils.SuccessResponse(c, schedules)
}

// POST /reports/notify-single-winner
func (h *ReportHandler) NotifySingleWinner(c *gin.Context) {
	lang := utils.GetLangFromContext(c)

	var req models.NotifySingleWinnerRequest
	if !bindJSON(c, &req) {
		return
	}

	if err := h.reportService.NotifySingleWinner(c.Request.Context(), &req); err != nil {
		utils.ServiceErrorResponse(c, err)
		return
	}

	utils.SuccessResponse(c, gin.H{
		"message": i18n.T(lang, i18n.KeyWinnerNotified),
	})
}
