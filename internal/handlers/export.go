// internal/handlers/export.go
package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/netflix100plus/admin-console/internal/i18n"
	"github.com/netflix100plus/admin-console/internal/models"
	"github.com/netflix100plus/admin-console/internal/services"
	"github.com/netflix100plus/admin-console/internal/utils"
)

type ExportHandler struct {
	exportService *services.ExportService
}

func NewExportHandler(exportService *services.ExportService) *ExportHandler {
	return &ExportHandler{
		exportService: exportService,
	}
}

// POST /exports
func (h *ExportHandler) RequestExport(c *gin.Context) {
	lang := utils.GetLangFromContext(c)

	var req models.ExportRequest
	if !bindJSON(c, &req) {
		return
	}

	job, err := h.exportService.Request(c.Request.Context(), &req)
	if err != nil {
		utils.ServiceErrorResponse(c, err)
		return
	}

	utils.AcceptedResponse(c, gin.H{
		"message": i18n.T(lang, i18n.KeyExportRequested),
		"job":     job,
	})
}
