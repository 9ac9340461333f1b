package middleware

import (
	"encoding/json"
	"log"
	"time"

	"github.com/gofiber/fiber/v2"

	"TintTrack/Models"
)

// LogConfig holds configuration for the request logging middleware.
type LogConfig struct {
	// Enable console logging
	Console bool
	// Persist request logs to the database
	Persist bool
	// Include request body in persisted logs
	IncludeBody bool
	// Skip logging for specific paths
	SkipPaths []string
}

// DefaultLogConfig returns the configuration used in production: console plus
// a persisted audit trail without request bodies.
func DefaultLogConfig() LogConfig {
	return LogConfig{
		Console:   true,
		Persist:   true,
		SkipPaths: []string{"/health"},
	}
}

// RequestLogger logs each request to the console and appends a RequestLog row
// so managers can audit who changed what.
func RequestLogger(config ...LogConfig) fiber.Handler {
	cfg := DefaultLogConfig()
	if len(config) > 0 {
		cfg = config[0]
	}

	return func(c *fiber.Ctx) error {
		start := time.Now()

		for _, skipPath := range cfg.SkipPaths {
			if c.Path() == skipPath {
				return c.Next()
			}
		}

		// Capture the body before handlers consume it.
		var requestBody []byte
		if cfg.IncludeBody && c.Method() != fiber.MethodGet {
			if body := c.Body(); json.Valid(body) {
				requestBody = append(requestBody, body...)
			}
		}

		err := c.Next()

		latency := time.Since(start)
		status := c.Response().StatusCode()

		entry := Models.RequestLog{
			Method:      c.Method(),
			Path:        c.Path(),
			Status:      status,
			LatencyMs:   latency.Milliseconds(),
			IP:          c.IP(),
			RequestBody: requestBody,
		}
		if err != nil {
			entry.Error = err.Error()
		}
		if user, ok := c.Locals("user").(Models.User); ok {
			id := user.ID
			entry.UserID = &id
			entry.Username = user.FirstName + " " + user.LastName
		}

		if cfg.Console {
			log.Println(c.Method(), c.Path(), status, latency)
		}
		if cfg.Persist && Models.DB != nil {
			if dbErr := Models.DB.Create(&entry).Error; dbErr != nil {
				log.Printf("failed to persist request log: %v", dbErr)
			}
		}

		return err
	}
}
