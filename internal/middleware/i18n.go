// internal/middleware/i18n.go
package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/netflix100plus/admin-console/internal/i18n"
)

func I18nMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set("lang", detectLanguage(c.GetHeader("Accept-Language")))
		c.Next()
	}
}

// detectLanguage picks the first supported language of an Accept-Language header,
// e.g. "id-ID,id;q=0.9,en;q=0.8" -> "id".
func detectLanguage(header string) string {
	for _, part := range strings.Split(header, ",") {
		tag := strings.TrimSpace(strings.Split(part, ";")[0])
		if tag == "" || tag == "*" {
			continue
		}
		base := strings.ToLower(strings.SplitN(strings.ReplaceAll(tag, "_", "-"), "-", 2)[0])
		// "in" is the legacy code for Indonesian
		if base == "in" {
			base = "id"
		}
		if i18n.IsSupported(base) {
			return base
		}
	}
	return i18n.DefaultLanguage()
}
