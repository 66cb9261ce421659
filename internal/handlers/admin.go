// internal/handlers/admin.go
package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/netflix100plus/admin-console/internal/i18n"
	"github.com/netflix100plus/admin-console/internal/models"
	"github.com/netflix100plus/admin-console/internal/services"
	"github.com/netflix100plus/admin-console/internal/utils"
)

// AdminHandler serves the dashboard counters, charts and settings.
type AdminHandler struct {
	statsService    *services.StatsService
	settingsService *services.SettingsService
}

func NewAdminHandler(statsService *services.StatsService, settingsService *services.SettingsService) *AdminHandler {
	return &AdminHandler{
		statsService:    statsService,
		settingsService: settingsService,
	}
}

// GET /stats
func (h *AdminHandler) GetDashboardStats(c *gin.Context) {
	stats, err := h.statsService.Dashboard(c.Request.Context())
	if err != nil {
		utils.ServiceErrorResponse(c, err)
		return
	}

	utils.SuccessResponse(c, gin.H{
		"stats":         stats,
		"reviewedRatio": stats.ReviewedRatio(),
	})
}

// GET /stats/user-growth
func (h *AdminHandler) GetUserGrowth(c *gin.Context) {
	points, err := h.statsService.UserGrowth(c.Request.Context(), queryInt(c, "days", 30))
	if err != nil {
		utils.ServiceErrorResponse(c, err)
		return
	}

	utils.SuccessResponse(c, points)
}

// GET /stats/activity-growth
func (h *AdminHandler) GetActivityGrowth(c *gin.Context) {
	period := models.GrowthPeriod(c.DefaultQuery("type", string(models.GrowthPeriodDaily)))

	points, err := h.statsService.ActivityGrowth(c.Request.Context(), period, queryInt(c, "days", 30))
	if err != nil {
		utils.ServiceErrorResponse(c, err)
		return
	}

	utils.SuccessResponse(c, points)
}

// GET /settings/registration
func (h *AdminHandler) GetRegistrationSettings(c *gin.Context) {
	settings, err := h.settingsService.Registration(c.Request.Context())
	if err != nil {
		utils.ServiceErrorResponse(c, err)
		return
	}

	utils.SuccessResponse(c, settings)
}

// PUT /settings/registration
func (h *AdminHandler) UpdateRegistrationSettings(c *gin.Context) {
	lang := utils.GetLangFromContext(c)

	var req models.RegistrationSettings
	if !bindJSON(c, &req) {
		return
	}

	if err := h.settingsService.UpdateRegistration(c.Request.Context(), &req); err != nil {
		utils.ServiceErrorResponse(c, err)
		return
	}

	utils.SuccessResponse(c, gin.H{
		"message":  i18n.T(lang, i18n.KeySettingsUpdated),
		"settings": req,
	})
}

// GET /settings/winner-recipients
func (h *AdminHandler) GetWinnerRecipients(c *gin.Context) {
	emails, err := h.settingsService.WinnerRecipients(c.Request.Context())
	if err != nil {
		utils.ServiceErrorResponse(c, err)
		return
	}

	utils.SuccessResponse(c, gin.H{
		"emails": emails,
	})
}

type winnerRecipientsForm struct {
	Emails string `json:"emails" validate:"email_list"`
}

// PUT /settings/winner-recipients
// Accepts the form's comma separated text.
func (h *AdminHandler) UpdateWinnerRecipients(c *gin.Context) {
	lang := utils.GetLangFromContext(c)

	var req winnerRecipientsForm
	if !bindJSON(c, &req) {
		return
	}

	emails, err := h.settingsService.UpdateWinnerRecipientsText(c.Request.Context(), req.Emails)
	if err != nil {
		utils.ServiceErrorResponse(c, err)
		return
	}

	utils.SuccessResponse(c, gin.H{
		"message": i18n.T(lang, i18n.KeyRecipientsUpdated),
		"emails":  emails,
	})
}
