package api_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/rs/zerolog"

	"github.com/mfolio/mf-portfolio-tracker/internal/api"
	"github.com/mfolio/mf-portfolio-tracker/internal/config"
	"github.com/mfolio/mf-portfolio-tracker/internal/model"
	"github.com/mfolio/mf-portfolio-tracker/internal/service"
	"github.com/mfolio/mf-portfolio-tracker/internal/testutil"
)

// newTestServer wires the full router against a temp-dir store and a mock
// MFAPI upstream, the same composition main uses.
func newTestServer(t *testing.T, mfapiServer *testutil.MFAPIMockServer) (*httptest.Server, *service.PortfolioService) {
	t.Helper()

	cfg, err := config.Load()
	if err != nil {
		t.Fatalf("Failed to load config: %v", err)
	}

	st := testutil.NewTestStore(t)
	navClient := mfapiServer.NewClient(t)
	svc := service.NewPortfolioService(st, navClient, service.DefaultGainsConfig(), zerolog.Nop())

	server := httptest.NewServer(api.NewRouter(svc, navClient, st, cfg, zerolog.Nop()))
	t.Cleanup(server.Close)
	return server, svc
}

// TestRouter_TransactionLifecycle tests create, list, and delete over HTTP.
//
// WHY: This is the composition main builds; the handlers, validation, and
// store must agree end to end, including the status codes clients key off.
func TestRouter_TransactionLifecycle(t *testing.T) {
	// Setup
	mfapiServer := testutil.NewMFAPIMockServer(t).WithScheme("120503", "Test Index Fund", 60)
	server, _ := newTestServer(t, mfapiServer)

	// Execute: create a transaction.
	body := `{
		"instrument_id": "120503",
		"name": "Test Index Fund",
		"asset_class": "equity",
		"date": "2023-01-15",
		"direction": "BUY",
		"quantity": 100,
		"unit_price": 50
	}`
	resp, err := http.Post(server.URL+"/api/transactions/", "application/json", strings.NewReader(body))
	if err != nil {
		t.Fatalf("POST transaction failed: %v", err)
	}
	defer resp.Body.Close()

	// Assert
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("Expected 201, got %d", resp.StatusCode)
	}
	var created model.Transaction
	if err := json.NewDecoder(resp.Body).Decode(&created); err != nil {
		t.Fatalf("Failed to decode created transaction: %v", err)
	}
	if created.Amount != 5000 {
		t.Errorf("Expected derived amount 5000, got %v", created.Amount)
	}

	// Execute: list it back.
	listResp, err := http.Get(server.URL + "/api/transactions/")
	if err != nil {
		t.Fatalf("GET transactions failed: %v", err)
	}
	defer listResp.Body.Close()

	var listed []model.Transaction
	if err := json.NewDecoder(listResp.Body).Decode(&listed); err != nil {
		t.Fatalf("Failed to decode transaction list: %v", err)
	}
	if len(listed) != 1 || listed[0].ID != created.ID {
		t.Errorf("Expected the created transaction in the list, got %+v", listed)
	}

	// Execute: delete it.
	req, _ := http.NewRequest(http.MethodDelete, server.URL+"/api/transactions/"+created.ID, nil)
	delResp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("DELETE transaction failed: %v", err)
	}
	defer delResp.Body.Close()
	if delResp.StatusCode != http.StatusNoContent {
		t.Errorf("Expected 204, got %d", delResp.StatusCode)
	}
}

// TestRouter_Validation tests request rejection paths.
func TestRouter_Validation(t *testing.T) {
	t.Run("invalid transaction returns field errors", func(t *testing.T) {
		// Setup
		server, _ := newTestServer(t, testutil.NewMFAPIMockServer(t))

		// Execute: direction and quantity are both invalid.
		body := `{"instrument_id": "120503", "date": "2023-01-15", "direction": "HOLD", "quantity": -5, "unit_price": 50}`
		resp, err := http.Post(server.URL+"/api/transactions/", "application/json", strings.NewReader(body))
		if err != nil {
			t.Fatalf("POST transaction failed: %v", err)
		}
		defer resp.Body.Close()

		// Assert
		if resp.StatusCode != http.StatusBadRequest {
			t.Errorf("Expected 400, got %d", resp.StatusCode)
		}
	})

	t.Run("deleting an unknown transaction returns 404", func(t *testing.T) {
		// Setup
		server, _ := newTestServer(t, testutil.NewMFAPIMockServer(t))

		// Execute
		req, _ := http.NewRequest(http.MethodDelete, server.URL+"/api/transactions/no-such-id", nil)
		resp, err := http.DefaultClient.Do(req)
		if err != nil {
			t.Fatalf("DELETE failed: %v", err)
		}
		defer resp.Body.Close()

		// Assert
		if resp.StatusCode != http.StatusNotFound {
			t.Errorf("Expected 404, got %d", resp.StatusCode)
		}
	})
}

// TestRouter_PortfolioViews tests the read endpoints over a seeded log.
func TestRouter_PortfolioViews(t *testing.T) {
	// Setup: a buy and a partial sale, valued at NAV 75.
	mfapiServer := testutil.NewMFAPIMockServer(t).WithScheme("120503", "Test Index Fund", 75)
	server, _ := newTestServer(t, mfapiServer)

	seed := func(body string) {
		t.Helper()
		resp, err := http.Post(server.URL+"/api/transactions/", "application/json", strings.NewReader(body))
		if err != nil {
			t.Fatalf("Seed POST failed: %v", err)
		}
		resp.Body.Close()
		if resp.StatusCode != http.StatusCreated {
			t.Fatalf("Seed POST returned %d", resp.StatusCode)
		}
	}
	seed(`{"instrument_id": "120503", "name": "Test Index Fund", "asset_class": "equity", "date": "2022-01-01", "direction": "BUY", "quantity": 100, "unit_price": 50}`)
	seed(`{"instrument_id": "120503", "date": "2023-06-01", "direction": "SELL", "quantity": 40, "unit_price": 70}`)

	t.Run("holdings reflect the remaining position", func(t *testing.T) {
		// Execute
		resp, err := http.Get(server.URL + "/api/portfolio/holdings")
		if err != nil {
			t.Fatalf("GET holdings failed: %v", err)
		}
		defer resp.Body.Close()

		// Assert
		var holdings []model.Holding
		if err := json.NewDecoder(resp.Body).Decode(&holdings); err != nil {
			t.Fatalf("Failed to decode holdings: %v", err)
		}
		if len(holdings) != 1 {
			t.Fatalf("Expected 1 holding, got %d", len(holdings))
		}
		if holdings[0].TotalQuantity != 60 {
			t.Errorf("Expected 60 units remaining, got %v", holdings[0].TotalQuantity)
		}
		if holdings[0].CurrentPrice != 75 {
			t.Errorf("Expected current price 75, got %v", holdings[0].CurrentPrice)
		}
	})

	t.Run("realized gains report the matched sale", func(t *testing.T) {
		// Execute
		resp, err := http.Get(server.URL + "/api/portfolio/gains")
		if err != nil {
			t.Fatalf("GET gains failed: %v", err)
		}
		defer resp.Body.Close()

		// Assert
		var gainsResp struct {
			Records []model.CapitalGain `json:"records"`
		}
		if err := json.NewDecoder(resp.Body).Decode(&gainsResp); err != nil {
			t.Fatalf("Failed to decode gains: %v", err)
		}
		if len(gainsResp.Records) != 1 {
			t.Fatalf("Expected 1 gain record, got %d", len(gainsResp.Records))
		}
		if gainsResp.Records[0].GainLoss != 800 {
			t.Errorf("Expected gain 800, got %v", gainsResp.Records[0].GainLoss)
		}
		if gainsResp.Records[0].Classification != model.LongTerm {
			t.Errorf("Expected long term, got %v", gainsResp.Records[0].Classification)
		}
	})

	t.Run("summary totals the portfolio", func(t *testing.T) {
		// Execute
		resp, err := http.Get(server.URL + "/api/portfolio/summary")
		if err != nil {
			t.Fatalf("GET summary failed: %v", err)
		}
		defer resp.Body.Close()

		// Assert
		var summary service.PortfolioSummary
		if err := json.NewDecoder(resp.Body).Decode(&summary); err != nil {
			t.Fatalf("Failed to decode summary: %v", err)
		}
		if summary.TotalInstruments != 1 {
			t.Errorf("Expected 1 instrument, got %d", summary.TotalInstruments)
		}
		if summary.CurrentValue != 4500 {
			t.Errorf("Expected current value 4500, got %v", summary.CurrentValue)
		}
	})
}

// TestRouter_SIP tests the standalone SIP calculator endpoint.
func TestRouter_SIP(t *testing.T) {
	t.Run("computes metrics from query parameters", func(t *testing.T) {
		// Setup
		server, _ := newTestServer(t, testutil.NewMFAPIMockServer(t))

		// Execute
		resp, err := http.Get(server.URL + "/api/returns/sip?monthly=5000&months=12&value=66000")
		if err != nil {
			t.Fatalf("GET sip failed: %v", err)
		}
		defer resp.Body.Close()

		// Assert
		if resp.StatusCode != http.StatusOK {
			t.Fatalf("Expected 200, got %d", resp.StatusCode)
		}
		var metrics struct {
			TotalInvested float64 `json:"total_invested"`
		}
		if err := json.NewDecoder(resp.Body).Decode(&metrics); err != nil {
			t.Fatalf("Failed to decode metrics: %v", err)
		}
		if metrics.TotalInvested != 60000 {
			t.Errorf("Expected invested 60000, got %v", metrics.TotalInvested)
		}
	})

	t.Run("rejects a non-positive monthly amount", func(t *testing.T) {
		// Setup
		server, _ := newTestServer(t, testutil.NewMFAPIMockServer(t))

		// Execute
		resp, err := http.Get(server.URL + "/api/returns/sip?monthly=0&months=12&value=66000")
		if err != nil {
			t.Fatalf("GET sip failed: %v", err)
		}
		defer resp.Body.Close()

		// Assert
		if resp.StatusCode != http.StatusBadRequest {
			t.Errorf("Expected 400, got %d", resp.StatusCode)
		}
	})
}

// TestRouter_Health tests the liveness endpoint.
func TestRouter_Health(t *testing.T) {
	// Setup
	server, _ := newTestServer(t, testutil.NewMFAPIMockServer(t))

	// Execute
	resp, err := http.Get(server.URL + "/api/system/health")
	if err != nil {
		t.Fatalf("GET health failed: %v", err)
	}
	defer resp.Body.Close()

	// Assert
	if resp.StatusCode != http.StatusOK {
		t.Errorf("Expected 200, got %d", resp.StatusCode)
	}
}
