package http

import (
	"crypto/sha256"
	"encoding/hex"
	"strings"

	"github.com/gofiber/fiber/v2"
)

// etagEligible limits conditional caching to responses that are stable
// between requests. Match responses are excluded: distances depend on live
// traffic and therapist status, so a revalidated body would lie.
func etagEligible(path string) bool {
	if strings.HasPrefix(path, "/v1/cities") {
		return true
	}
	return path == "/v1/catalog/status"
}

// ETagMiddleware computes a weak ETag over eligible response bodies and
// returns 304 Not Modified when the client already holds the current one.
func ETagMiddleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if err := c.Next(); err != nil {
			return err
		}

		if c.Method() != fiber.MethodGet || c.Response().StatusCode() != 200 {
			return nil
		}
		if !etagEligible(c.Path()) {
			return nil
		}

		body := c.Response().Body()
		if len(body) == 0 {
			return nil
		}

		h := sha256.Sum256(body)
		etag := `W/"` + hex.EncodeToString(h[:8]) + `"`

		c.Set("ETag", etag)

		// If-None-Match may carry a comma-separated candidate list.
		for _, candidate := range strings.Split(c.Get("If-None-Match"), ",") {
			if strings.TrimSpace(candidate) == etag {
				c.Status(304)
				c.Response().ResetBody()
				return nil
			}
		}

		return nil
	}
}
