// Package distance implements ports.DistanceMatrixService against an
// HTTP distance-matrix provider (Google Distance Matrix wire shape).
package distance

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"github.com/sentuhanid/geomatch/internal/core/domain"
	"github.com/sentuhanid/geomatch/internal/core/ports"
)

// Client calls the network distance-matrix endpoint. It is safe for
// concurrent use: the underlying http.Client and rate.Limiter both are.
type Client struct {
	session *http.Client
	baseURL string
	apiKey  string
	limiter *rate.Limiter
}

// NewClient creates a matrix client. The constructor rejects a missing API
// key; "no credentials" is handled upstream by wiring a nil service, not by
// building a client that cannot authenticate.
func NewClient(baseURL, apiKey string, requestsPerSec float64, timeout time.Duration) (*Client, error) {
	if apiKey == "" {
		return nil, errors.New("distance matrix api key is empty")
	}
	if baseURL == "" {
		return nil, errors.New("distance matrix base url is empty")
	}
	if requestsPerSec <= 0 {
		requestsPerSec = 5
	}
	if timeout <= 0 {
		timeout = 10 * time.Second
	}

	return &Client{
		session: &http.Client{Timeout: timeout},
		baseURL: baseURL,
		apiKey:  apiKey,
		limiter: rate.NewLimiter(rate.Limit(requestsPerSec), 1),
	}, nil
}

type matrixResponse struct {
	Status string `json:"status"`
	Rows   []struct {
		Elements []struct {
			Status   string `json:"status"`
			Distance struct {
				Value float64 `json:"value"` // meters
			} `json:"distance"`
			Duration struct {
				Value float64 `json:"value"` // seconds
			} `json:"duration"`
		} `json:"elements"`
	} `json:"rows"`
}

// MatrixRow fetches distances from one origin to many destinations. Elements
// come back in destination order; per-destination failures are reported as
// OK=false rather than failing the whole row.
func (c *Client) MatrixRow(ctx context.Context, origin domain.Coordinate, destinations []domain.Coordinate, mode ports.TravelMode) ([]ports.MatrixElement, error) {
	if len(destinations) == 0 {
		return nil, nil
	}
	if len(destinations) > ports.MaxMatrixDestinations {
		return nil, fmt.Errorf("batch of %d exceeds provider cap of %d", len(destinations), ports.MaxMatrixDestinations)
	}

	if err := c.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	dests := make([]string, len(destinations))
	for i, d := range destinations {
		dests[i] = fmt.Sprintf("%f,%f", d.Lat, d.Lng)
	}

	makeReq := func() (*http.Request, error) {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL, nil)
		if err != nil {
			return nil, err
		}
		q := url.Values{}
		q.Set("origins", fmt.Sprintf("%f,%f", origin.Lat, origin.Lng))
		q.Set("destinations", strings.Join(dests, "|"))
		q.Set("mode", string(mode))
		q.Set("key", c.apiKey)
		req.URL.RawQuery = q.Encode()
		req.Header.Set("Accept", "application/json")
		return req, nil
	}

	resp, err := c.doWithRetry(ctx, makeReq)
	if err != nil {
		return nil, fmt.Errorf("matrix request: %w", err)
	}
	defer resp.Body.Close()

	var mr matrixResponse
	if err := json.NewDecoder(resp.Body).Decode(&mr); err != nil {
		return nil, fmt.Errorf("decode matrix response: %w", err)
	}

	if mr.Status != "OK" {
		return nil, fmt.Errorf("matrix status %q", mr.Status)
	}
	if len(mr.Rows) != 1 {
		return nil, fmt.Errorf("expected 1 row, got %d", len(mr.Rows))
	}
	if len(mr.Rows[0].Elements) != len(destinations) {
		return nil, fmt.Errorf("expected %d elements, got %d", len(destinations), len(mr.Rows[0].Elements))
	}

	out := make([]ports.MatrixElement, len(destinations))
	for i, el := range mr.Rows[0].Elements {
		if el.Status != "OK" {
			out[i] = ports.MatrixElement{OK: false}
			continue
		}
		out[i] = ports.MatrixElement{
			OK:              true,
			DistanceMeters:  el.Distance.Value,
			DurationSeconds: el.Duration.Value,
		}
	}
	return out, nil
}
