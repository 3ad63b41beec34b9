// internal/middleware/logging.go
package middleware

import (
	"bytes"
	"encoding/json"
	"io"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/pricewise/pricewise-backend/internal/models"
	"github.com/pricewise/pricewise-backend/internal/utils"
)

// AuditLogMiddleware records every mutating request as an audit row.
// Reads and health checks are not audited; the seller lookup is a POST
// but mutates nothing, so it is skipped too.
func AuditLogMiddleware(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		audited := shouldAudit(c.Request.Method, c.Request.URL.Path)

		var requestBody []byte
		if audited && c.Request.Body != nil {
			requestBody, _ = io.ReadAll(c.Request.Body)
			c.Request.Body = io.NopCloser(bytes.NewBuffer(requestBody))
		}

		start := time.Now()
		c.Next()
		duration := time.Since(start)

		var userUUID *uuid.UUID
		if uid, ok := utils.GetUserIDFromContext(c); ok {
			if parsed, err := uuid.Parse(uid); err == nil {
				userUUID = &parsed
			}
		}

		if audited {
			var payload map[string]interface{}
			if len(requestBody) > 0 {
				json.Unmarshal(requestBody, &payload)
			}

			auditLog := &models.AuditLog{
				UserID:       userUUID,
				Action:       c.Request.Method + " " + c.Request.URL.Path,
				ResourceType: resourceTypeFromPath(c.Request.URL.Path),
				IPAddress:    c.ClientIP(),
				UserAgent:    c.Request.UserAgent(),
				NewValues:    models.JSONB(payload),
			}
			if resourceID := resourceIDFromPath(c.Request.URL.Path); resourceID != uuid.Nil {
				auditLog.ResourceID = &resourceID
			}

			// Audit writes must not add latency to the request
			go func() {
				if err := db.Create(auditLog).Error; err != nil {
					logrus.WithError(err).Error("failed to write audit log")
				}
			}()
		}

		if c.Request.URL.Path == "/health" {
			return
		}

		logrus.WithFields(logrus.Fields{
			"method":   c.Request.Method,
			"path":     c.Request.URL.Path,
			"status":   c.Writer.Status(),
			"duration": duration.Milliseconds(),
			"ip":       c.ClientIP(),
			"user_id":  userUUID,
		}).Info("request processed")
	}
}

func shouldAudit(method, path string) bool {
	if method == "GET" || path == "/health" {
		return false
	}
	return !strings.HasPrefix(path, "/v1/sellers")
}

func resourceTypeFromPath(path string) string {
	parts := strings.Split(strings.Trim(path, "/"), "/")
	if len(parts) >= 2 && parts[0] == "v1" {
		return parts[1]
	}
	if len(parts) >= 1 && parts[0] != "" {
		return parts[0]
	}
	return "unknown"
}

func resourceIDFromPath(path string) uuid.UUID {
	for _, part := range strings.Split(strings.Trim(path, "/"), "/") {
		if parsed, err := uuid.Parse(part); err == nil {
			return parsed
		}
	}
	return uuid.Nil
}

// RequestLogger silences gin's default access log; the audit middleware
// owns request logging through logrus.
func RequestLogger() gin.HandlerFunc {
	return gin.LoggerWithFormatter(func(param gin.LogFormatterParams) string {
		return ""
	})
}
