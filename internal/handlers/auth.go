// internal/handlers/auth.go
package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/netflix100plus/admin-console/internal/i18n"
	"github.com/netflix100plus/admin-console/internal/models"
	"github.com/netflix100plus/admin-console/internal/services"
	"github.com/netflix100plus/admin-console/internal/utils"
)

type AuthHandler struct {
	authService *services.AuthService
	apiClient   *services.APIClient
	realtime    *services.RealtimeChannel
}

func NewAuthHandler(authService *services.AuthService, apiClient *services.APIClient, realtime *services.RealtimeChannel) *AuthHandler {
	return &AuthHandler{
		authService: authService,
		apiClient:   apiClient,
		realtime:    realtime,
	}
}

// POST /session/login
func (h *AuthHandler) Login(c *gin.Context) {
	lang := utils.GetLangFromContext(c)

	var req models.LoginRequest
	if !bindJSON(c, &req) {
		return
	}

	admin, err := h.authService.Login(c.Request.Context(), &req)
	if err != nil {
		if utils.IsAuthError(err) {
			utils.UnauthorizedResponse(c, i18n.T(lang, i18n.KeyAuthInvalidCredentials))
			return
		}
		utils.ServiceErrorResponse(c, err)
		return
	}

	utils.SuccessResponse(c, gin.H{
		"message": i18n.T(lang, i18n.KeyAuthLoginSuccess),
		"admin":   admin,
	})
}

// POST /session/logout
func (h *AuthHandler) Logout(c *gin.Context) {
	lang := utils.GetLangFromContext(c)

	h.authService.Logout(c.Request.Context())

	utils.SuccessResponse(c, gin.H{
		"message": i18n.T(lang, i18n.KeyAuthLogoutSuccess),
	})
}

// GET /session
func (h *AuthHandler) GetSession(c *gin.Context) {
	h.authService.CheckAuth(c.Request.Context())
	state := h.authService.State()

	resp := gin.H{
		"status": state.Status,
		"admin":  state.Admin,
	}
	if state.IsAuthenticated() {
		if exp, ok := h.apiClient.AccessTokenExpiry(); ok {
			resp["accessTokenExpiresAt"] = exp
		}
	}
	if h.realtime != nil {
		resp["realtime"] = h.realtime.State()
	}

	utils.SuccessResponse(c, resp)
}
