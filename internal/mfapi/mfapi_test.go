package mfapi_test

import (
	"context"
	"errors"
	"math"
	"testing"

	"github.com/mfolio/mf-portfolio-tracker/internal/apperrors"
	"github.com/mfolio/mf-portfolio-tracker/internal/mfapi"
	"github.com/mfolio/mf-portfolio-tracker/internal/testutil"
)

// TestClient_LatestNAV tests fetching and parsing a scheme's latest NAV.
//
// WHY: MFAPI returns NAV values and dates as strings in DD-MM-YYYY format;
// the client must parse both into typed values and surface a sentinel when
// a scheme has no usable data.
func TestClient_LatestNAV(t *testing.T) {
	t.Run("parses the newest record", func(t *testing.T) {
		// Setup
		server := testutil.NewMFAPIMockServer(t).WithScheme("120503", "Test Index Fund", 87.6543)
		client := server.NewClient(t)

		// Execute
		nav, err := client.LatestNAV(context.Background(), "120503")

		// Assert
		if err != nil {
			t.Fatalf("LatestNAV() returned unexpected error: %v", err)
		}
		if math.Abs(nav.Value-87.6543) > 1e-9 {
			t.Errorf("Expected NAV 87.6543, got %v", nav.Value)
		}
		if nav.Date.IsZero() {
			t.Error("Expected a parsed NAV date")
		}
	})

	t.Run("unknown scheme surfaces an error", func(t *testing.T) {
		// Setup
		server := testutil.NewMFAPIMockServer(t)
		client := server.NewClient(t)

		// Execute
		_, err := client.LatestNAV(context.Background(), "999999")

		// Assert
		if err == nil {
			t.Error("Expected error for unknown scheme, got nil")
		}
	})

	t.Run("scheme without NAV data returns the sentinel", func(t *testing.T) {
		// Setup
		server := testutil.NewMFAPIMockServer(t)
		server.Schemes["120503"] = mfapi.SchemeResponse{Status: "SUCCESS"}
		client := server.NewClient(t)

		// Execute
		_, err := client.LatestNAV(context.Background(), "120503")

		// Assert
		if !errors.Is(err, apperrors.ErrNAVUnavailable) {
			t.Errorf("Expected ErrNAVUnavailable, got %v", err)
		}
	})
}

// TestClient_Cache tests the disk cache between calls.
//
// WHY: NAVs publish once a day, so repeated valuations must be served from
// the cache and a refresh must drop it. The request counter on the mock
// server makes both observable.
func TestClient_Cache(t *testing.T) {
	t.Run("second fetch is a cache hit", func(t *testing.T) {
		// Setup
		server := testutil.NewMFAPIMockServer(t).WithScheme("120503", "Test Index Fund", 55.5)
		client := server.NewClient(t)

		// Execute
		if _, err := client.LatestNAV(context.Background(), "120503"); err != nil {
			t.Fatalf("First fetch returned unexpected error: %v", err)
		}
		if _, err := client.LatestNAV(context.Background(), "120503"); err != nil {
			t.Fatalf("Second fetch returned unexpected error: %v", err)
		}

		// Assert
		if server.RequestCount != 1 {
			t.Errorf("Expected 1 upstream request, got %d", server.RequestCount)
		}
	})

	t.Run("clearing the cache forces a refetch", func(t *testing.T) {
		// Setup
		server := testutil.NewMFAPIMockServer(t).WithScheme("120503", "Test Index Fund", 55.5)
		client := server.NewClient(t)
		if _, err := client.LatestNAV(context.Background(), "120503"); err != nil {
			t.Fatalf("First fetch returned unexpected error: %v", err)
		}

		// Execute
		if err := client.ClearCache(); err != nil {
			t.Fatalf("ClearCache() returned unexpected error: %v", err)
		}
		if _, err := client.LatestNAV(context.Background(), "120503"); err != nil {
			t.Fatalf("Fetch after clear returned unexpected error: %v", err)
		}

		// Assert
		if server.RequestCount != 2 {
			t.Errorf("Expected 2 upstream requests, got %d", server.RequestCount)
		}
	})
}

// TestClient_LatestNAVs tests the batched fetch.
//
// WHY: One failing scheme must not sink a whole portfolio valuation; it is
// logged and omitted while the others come back.
func TestClient_LatestNAVs(t *testing.T) {
	t.Run("partial failures are omitted, not fatal", func(t *testing.T) {
		// Setup
		server := testutil.NewMFAPIMockServer(t).
			WithScheme("120503", "Fund A", 50).
			WithScheme("118989", "Fund B", 30)
		client := server.NewClient(t)

		// Execute: one of the three codes is unknown upstream.
		navs, err := client.LatestNAVs(context.Background(), []string{"120503", "118989", "999999"})

		// Assert
		if err != nil {
			t.Fatalf("LatestNAVs() returned unexpected error: %v", err)
		}
		if len(navs) != 2 {
			t.Fatalf("Expected 2 NAVs, got %d", len(navs))
		}
		if navs["120503"].Value != 50 || navs["118989"].Value != 30 {
			t.Errorf("Unexpected NAV values: %+v", navs)
		}
		if _, ok := navs["999999"]; ok {
			t.Error("Expected the failing scheme to be omitted")
		}
	})

	t.Run("cancelled context aborts the batch", func(t *testing.T) {
		// Setup
		server := testutil.NewMFAPIMockServer(t).WithScheme("120503", "Fund A", 50)
		client := server.NewClient(t)
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		// Execute
		_, err := client.LatestNAVs(ctx, []string{"120503"})

		// Assert
		if !errors.Is(err, context.Canceled) {
			t.Errorf("Expected context.Canceled, got %v", err)
		}
	})
}

// TestClient_SearchSchemes tests the full-listing name search.
func TestClient_SearchSchemes(t *testing.T) {
	t.Run("matches case-insensitively", func(t *testing.T) {
		// Setup
		server := testutil.NewMFAPIMockServer(t)
		server.Listing = []mfapi.SchemeSummary{
			{SchemeCode: 120503, SchemeName: "Axis Bluechip Fund"},
			{SchemeCode: 118989, SchemeName: "HDFC Index Fund"},
			{SchemeCode: 119551, SchemeName: "SBI Bluechip Fund"},
		}
		client := server.NewClient(t)

		// Execute
		matches, err := client.SearchSchemes(context.Background(), "bluechip")

		// Assert
		if err != nil {
			t.Fatalf("SearchSchemes() returned unexpected error: %v", err)
		}
		if len(matches) != 2 {
			t.Fatalf("Expected 2 matches, got %d", len(matches))
		}
	})
}
