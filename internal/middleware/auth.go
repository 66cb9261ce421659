// internal/middleware/auth.go
package middleware

import (
	"github.com/gin-gonic/gin"

	"github.com/netflix100plus/admin-console/internal/services"
	"github.com/netflix100plus/admin-console/internal/utils"
)

// SessionRequired lets a request through only while the admin session is
// authenticated. A session still loading is probed first.
func SessionRequired(auth *services.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		state := auth.State()
		if state.IsLoading() {
			auth.CheckAuth(c.Request.Context())
			state = auth.State()
		}

		if !state.IsAuthenticated() || state.Admin == nil {
			utils.UnauthorizedResponse(c, "")
			c.Abort()
			return
		}

		// Set admin info in context
		c.Set("admin_id", state.Admin.ID)
		c.Set("admin_role", string(state.Admin.Role))
		c.Next()
	}
}
