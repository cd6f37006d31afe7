package http

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/gofiber/fiber/v2"
)

// AccessLogMiddleware logs HTTP requests with structured slog output.
// The query string is included because the origin coordinates and radius are
// what make a matching request reproducible. Scrape and probe endpoints are
// skipped to keep the log volume proportional to real traffic.
func AccessLogMiddleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		path := c.Path()
		method := c.Method()
		query := string(c.Request().URI().QueryString())

		requestID := c.Get(fiber.HeaderXRequestID, "unknown")

		err := c.Next()

		switch path {
		case "/metrics", "/v1/health", "/v1/ready":
			return err
		}

		status := c.Response().StatusCode()
		latency := time.Since(start)
		bytesOut := len(c.Response().Body())

		attrs := []slog.Attr{
			slog.String("method", method),
			slog.String("path", path),
			slog.Int("status", status),
			slog.String("latency", latency.String()),
			slog.Int("bytes_out", bytesOut),
			slog.String("client_ip", c.IP()),
			slog.String("request_id", requestID),
		}
		if query != "" {
			attrs = append(attrs, slog.String("query", query))
		}

		level := slog.LevelInfo
		if status >= 500 {
			level = slog.LevelError
		} else if status >= 400 {
			level = slog.LevelWarn
		}

		if err != nil {
			attrs = append(attrs, slog.String("error", err.Error()))
			level = slog.LevelError
		}

		slog.LogAttrs(c.Context(), level, fmt.Sprintf("%s %s", method, path), attrs...)

		return err
	}
}
