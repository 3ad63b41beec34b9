// internal/middleware/i18n.go
package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"
)

// I18nMiddleware resolves the response language from the Accept-Language
// header. Hindi and English are served; everything else falls back to
// English.
func I18nMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set("lang", resolveLang(c.GetHeader("Accept-Language")))
		c.Next()
	}
}

func resolveLang(header string) string {
	if header == "" {
		return "en"
	}

	// Only the first preference matters: "hi-IN,hi;q=0.9,en;q=0.8" → "hi-IN"
	first := strings.TrimSpace(strings.Split(header, ",")[0])
	first = strings.Split(first, ";")[0]

	if first == "hi" || strings.HasPrefix(first, "hi-") || strings.HasPrefix(first, "hi_") {
		return "hi"
	}
	return "en"
}
