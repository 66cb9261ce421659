// internal/handlers/verification.go
package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/netflix100plus/admin-console/internal/i18n"
	"github.com/netflix100plus/admin-console/internal/models"
	"github.com/netflix100plus/admin-console/internal/services"
	"github.com/netflix100plus/admin-console/internal/table"
	"github.com/netflix100plus/admin-console/internal/utils"
)

// VerificationHandler serves both review queues: purchase verifications and
// activity submissions.
type VerificationHandler struct {
	verificationService *services.VerificationService
	submissionService   *services.SubmissionService
	statsService        *services.StatsService
}

func NewVerificationHandler(verificationService *services.VerificationService, submissionService *services.SubmissionService, statsService *services.StatsService) *VerificationHandler {
	return &VerificationHandler{
		verificationService: verificationService,
		submissionService:   submissionService,
		statsService:        statsService,
	}
}

func reviewFilter(c *gin.Context) models.ReviewFilter {
	return models.ReviewFilter{
		Status:      c.DefaultQuery("status", string(models.ReviewStatusPending)),
		Type:        c.DefaultQuery("type", models.StatusFilterAll),
		NameOrEmail: c.Query("nameOrEmail"),
	}
}

// GET /verifications
func (h *VerificationHandler) GetVerifications(c *gin.Context) {
	verifications, err := h.verificationService.List(c.Request.Context(), reviewFilter(c))
	if err != nil {
		utils.ServiceErrorResponse(c, err)
		return
	}

	tbl := table.New(table.Options[models.Verification]{Data: verifications, Columns: verificationColumns()})
	tbl.Apply(table.ParseQuery(c.Request.URL.Query()))

	view := tbl.Snapshot("status")
	utils.SuccessResponseWithMeta(c, view.Rows, tableMeta(view))
}

// PATCH /verifications/:id/approve
func (h *VerificationHandler) ApproveVerification(c *gin.Context) {
	lang := utils.GetLangFromContext(c)

	id, ok := pathID(c)
	if !ok {
		return
	}

	if err := h.verificationService.Approve(c.Request.Context(), id); err != nil {
		utils.ServiceErrorResponse(c, err)
		return
	}
	h.statsService.Invalidate(c.Request.Context())

	utils.SuccessResponse(c, gin.H{
		"message": i18n.T(lang, i18n.KeyVerificationApproved),
	})
}

// PATCH /verifications/:id/reject
func (h *VerificationHandler) RejectVerification(c *gin.Context) {
	lang := utils.GetLangFromContext(c)

	id, ok := pathID(c)
	if !ok {
		return
	}

	var req models.RejectRequest
	if !bindJSON(c, &req) {
		return
	}

	if err := h.verificationService.Reject(c.Request.Context(), id, &req); err != nil {
		utils.ServiceErrorResponse(c, err)
		return
	}
	h.statsService.Invalidate(c.Request.Context())

	utils.SuccessResponse(c, gin.H{
		"message": i18n.T(lang, i18n.KeyVerificationRejected),
	})
}

// GET /submissions
func (h *VerificationHandler) GetSubmissions(c *gin.Context) {
	submissions, err := h.submissionService.List(c.Request.Context(), reviewFilter(c))
	if err != nil {
		utils.ServiceErrorResponse(c, err)
		return
	}

	tbl := table.New(table.Options[models.Submission]{Data: submissions, Columns: submissionColumns()})
	tbl.Apply(table.ParseQuery(c.Request.URL.Query()))

	view := tbl.Snapshot("status", "eventType", "isFlagged")
	utils.SuccessResponseWithMeta(c, view.Rows, tableMeta(view))
}

// PATCH /submissions/:id/approve
func (h *VerificationHandler) ApproveSubmission(c *gin.Context) {
	lang := utils.GetLangFromContext(c)

	id, ok := pathID(c)
	if !ok {
		return
	}

	if err := h.submissionService.Approve(c.Request.Context(), id); err != nil {
		utils.ServiceErrorResponse(c, err)
		return
	}

	utils.SuccessResponse(c, gin.H{
		"message": i18n.T(lang, i18n.KeySubmissionApproved),
	})
}

// PATCH /submissions/:id/reject
func (h *VerificationHandler) RejectSubmission(c *gin.Context) {
	lang := utils.GetLangFromContext(c)

	id, ok := pathID(c)
	if !ok {
		return
	}

	var req models.RejectRequest
	if !bindJSON(c, &req) {
		return
	}

	if err := h.submissionService.Reject(c.Request.Context(), id, &req); err != nil {
		utils.ServiceErrorResponse(c, err)
		return
	}

	utils.SuccessResponse(c, gin.H{
		"message": i18n.T(lang, i18n.KeySubmissionRejected),
	})
}
