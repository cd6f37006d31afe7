package http

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"
)

// PaginatedResponse wraps list results with pagination metadata.
type PaginatedResponse struct {
	Data       interface{} `json:"data"`
	Pagination Pagination  `json:"pagination"`
}

// Pagination contains offset-based pagination info.
type Pagination struct {
	Offset int `json:"offset"`
	Limit  int `json:"limit"`
	Total  int `json:"total"`
}

// SetLinkHeaders adds RFC 8288 Link headers for paginated responses. Query
// filters on the current request (region, major, tourist) are preserved in
// the generated links so a filtered listing pages within the filter.
func SetLinkHeaders(c *fiber.Ctx, p Pagination) {
	base := c.Path()

	var filters []string
	c.Context().QueryArgs().VisitAll(func(key, value []byte) {
		k := string(key)
		if k == "offset" || k == "limit" {
			return
		}
		filters = append(filters, k+"="+string(value))
	})
	suffix := ""
	if len(filters) > 0 {
		suffix = "&" + strings.Join(filters, "&")
	}

	link := func(offset int, rel string) string {
		return fmt.Sprintf(`<%s?offset=%d&limit=%d%s>; rel=%q`, base, offset, p.Limit, suffix, rel)
	}

	links := []string{link(0, "first")}

	if p.Offset > 0 {
		prev := p.Offset - p.Limit
		if prev < 0 {
			prev = 0
		}
		links = append(links, link(prev, "prev"))
	}

	if p.Offset+p.Limit < p.Total {
		links = append(links, link(p.Offset+p.Limit, "next"))
	}

	lastOffset := p.Total - p.Limit
	if lastOffset < 0 {
		lastOffset = 0
	}
	links = append(links, link(lastOffset, "last"))

	c.Set("Link", strings.Join(links, ", "))
	c.Set("X-Total-Count", strconv.Itoa(p.Total))
}
