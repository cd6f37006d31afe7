package distance_test

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/sentuhanid/geomatch/internal/adapters/distance"
	"github.com/sentuhanid/geomatch/internal/core/domain"
	"github.com/sentuhanid/geomatch/internal/core/ports"
)

var (
	testOrigin = domain.Coordinate{Lat: -6.2088, Lng: 106.8456}
	testDests  = []domain.Coordinate{
		{Lat: -6.2615, Lng: 106.8106},
		{Lat: -6.1751, Lng: 106.8650},
	}
)

func newTestClient(t *testing.T, baseURL string) *distance.Client {
	t.Helper()
	c, err := distance.NewClient(baseURL, "test-key", 100, 5*time.Second)
	if err != nil {
		t.Fatal(err)
	}
	return c
}

func okBody(elements string) string {
	return fmt.Sprintf(`{"status":"OK","rows":[{"elements":[%s]}]}`, elements)
}

func element(meters, seconds float64) string {
	return fmt.Sprintf(`{"status":"OK","distance":{"value":%g},"duration":{"value":%g}}`, meters, seconds)
}

func TestMatrixRow_ConvertsElementsInOrder(t *testing.T) {
	var gotQuery string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.RawQuery
		fmt.Fprint(w, okBody(element(8250, 1140)+","+element(3400, 600)))
	}))
	defer srv.Close()

	c := newTestClient(t, srv.URL)
	elems, err := c.MatrixRow(context.Background(), testOrigin, testDests, ports.ModeDriving)
	if err != nil {
		t.Fatal(err)
	}
	if len(elems) != 2 {
		t.Fatalf("expected 2 elements, got %d", len(elems))
	}
	if !elems[0].OK || elems[0].DistanceMeters != 8250 || elems[0].DurationSeconds != 1140 {
		t.Errorf("unexpected first element: %+v", elems[0])
	}
	if !elems[1].OK || elems[1].DistanceMeters != 3400 {
		t.Errorf("unexpected second element: %+v", elems[1])
	}

	if !strings.Contains(gotQuery, "mode=driving") {
		t.Errorf("mode missing from query: %s", gotQuery)
	}
	if !strings.Contains(gotQuery, "key=test-key") {
		t.Errorf("api key missing from query: %s", gotQuery)
	}
	// Destinations are pipe-joined in request order.
	if !strings.Contains(gotQuery, "destinations=") {
		t.Errorf("destinations missing from query: %s", gotQuery)
	}
}

func TestMatrixRow_PerElementFailureIsNotAnError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, okBody(element(1000, 120)+`,{"status":"ZERO_RESULTS"}`))
	}))
	defer srv.Close()

	c := newTestClient(t, srv.URL)
	elems, err := c.MatrixRow(context.Background(), testOrigin, testDests, ports.ModeDriving)
	if err != nil {
		t.Fatal(err)
	}
	if !elems[0].OK {
		t.Error("first element should be OK")
	}
	if elems[1].OK {
		t.Error("unroutable destination must come back OK=false, not fail the row")
	}
}

func TestMatrixRow_TopLevelStatusError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"status":"OVER_QUERY_LIMIT","rows":[]}`)
	}))
	defer srv.Close()

	c := newTestClient(t, srv.URL)
	if _, err := c.MatrixRow(context.Background(), testOrigin, testDests, ports.ModeDriving); err == nil {
		t.Fatal("expected error for non-OK provider status")
	}
}

func TestMatrixRow_ElementCountMismatchIsAnError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, okBody(element(1000, 120)))
	}))
	defer srv.Close()

	c := newTestClient(t, srv.URL)
	if _, err := c.MatrixRow(context.Background(), testOrigin, testDests, ports.ModeDriving); err == nil {
		t.Fatal("expected error when elements do not cover all destinations")
	}
}

func TestMatrixRow_BatchAboveCapNeverCallsNetwork(t *testing.T) {
	calls := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
	}))
	defer srv.Close()

	dests := make([]domain.Coordinate, ports.MaxMatrixDestinations+1)
	for i := range dests {
		dests[i] = domain.Coordinate{Lat: -6.2, Lng: 106.8}
	}

	c := newTestClient(t, srv.URL)
	if _, err := c.MatrixRow(context.Background(), testOrigin, dests, ports.ModeDriving); err == nil {
		t.Fatal("expected error for oversized batch")
	}
	if calls != 0 {
		t.Errorf("oversized batch must not reach the provider, got %d calls", calls)
	}
}

func TestMatrixRow_EmptyDestinations(t *testing.T) {
	c := newTestClient(t, "http://127.0.0.1:1")
	elems, err := c.MatrixRow(context.Background(), testOrigin, nil, ports.ModeDriving)
	if err != nil {
		t.Fatal(err)
	}
	if elems != nil {
		t.Errorf("expected nil elements, got %+v", elems)
	}
}

func TestMatrixRow_RetriesTransientFailures(t *testing.T) {
	calls := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		if calls == 1 {
			w.WriteHeader(503)
			return
		}
		fmt.Fprint(w, okBody(element(1000, 120)+","+element(2000, 240)))
	}))
	defer srv.Close()

	c := newTestClient(t, srv.URL)
	elems, err := c.MatrixRow(context.Background(), testOrigin, testDests, ports.ModeDriving)
	if err != nil {
		t.Fatal(err)
	}
	if calls != 2 {
		t.Errorf("expected 1 retry after 503, got %d calls", calls)
	}
	if !elems[0].OK {
		t.Error("expected OK elements after retry")
	}
}

func TestMatrixRow_ClientErrorsAreNotRetried(t *testing.T) {
	calls := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.WriteHeader(400)
	}))
	defer srv.Close()

	c := newTestClient(t, srv.URL)
	if _, err := c.MatrixRow(context.Background(), testOrigin, testDests, ports.ModeDriving); err == nil {
		t.Fatal("expected error for 400 response")
	}
	if calls != 1 {
		t.Errorf("4xx must not be retried, got %d calls", calls)
	}
}

func TestNewClient_RejectsMissingCredentials(t *testing.T) {
	if _, err := distance.NewClient("http://example.invalid", "", 5, time.Second); err == nil {
		t.Error("expected error for empty api key")
	}
	if _, err := distance.NewClient("", "key", 5, time.Second); err == nil {
		t.Error("expected error for empty base url")
	}
}
