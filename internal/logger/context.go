package logger

import (
	"github.com/gofiber/fiber/v3"
	"github.com/sirupsen/logrus"
)

// WithRequest trả về log entry gắn sẵn thông tin request (request id, path, method, ip).
// Dùng trong handler/middleware để trace log theo request.
func WithRequest(c fiber.Ctx) *logrus.Entry {
	fields := logrus.Fields{
		"path":   c.Path(),
		"method": c.Method(),
		"ip":     c.IP(),
	}
	if requestID := c.Get("X-Request-ID"); requestID != "" {
		fields["request_id"] = requestID
	}
	if userID, ok := c.Locals("user_id").(string); ok && userID != "" {
		fields["user_id"] = userID
	}
	return GetAppLogger().WithFields(fields)
}
