package testutil

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/mfolio/mf-portfolio-tracker/internal/mfapi"
)

// MFAPIMockServer is an httptest server that mimics the MFAPI.in endpoints
// the client talks to: GET /mf for the scheme listing and GET /mf/{code}
// for per-scheme NAV history.
type MFAPIMockServer struct {
	*httptest.Server

	// Schemes maps scheme code to the response served for it.
	Schemes map[string]mfapi.SchemeResponse
	// Listing is served for GET /mf.
	Listing []mfapi.SchemeSummary
	// RequestCount tracks how many requests reached the server. Cache-hit
	// tests assert it stays flat.
	RequestCount int
}

// NewMFAPIMockServer starts a mock MFAPI server. The caller owns shutdown
// via t.Cleanup, which is registered here.
func NewMFAPIMockServer(t *testing.T) *MFAPIMockServer {
	t.Helper()

	m := &MFAPIMockServer{
		Schemes: make(map[string]mfapi.SchemeResponse),
	}

	m.Server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		m.RequestCount++

		path := strings.TrimPrefix(r.URL.Path, "/mf")
		path = strings.TrimPrefix(path, "/")
		w.Header().Set("Content-Type", "application/json")

		if path == "" {
			_ = json.NewEncoder(w).Encode(m.Listing)
			return
		}

		scheme, ok := m.Schemes[path]
		if !ok {
			w.WriteHeader(http.StatusNotFound)
			_ = json.NewEncoder(w).Encode(map[string]string{"status": "ERROR"})
			return
		}
		_ = json.NewEncoder(w).Encode(scheme)
	}))
	t.Cleanup(m.Server.Close)

	return m
}

// WithScheme registers a scheme whose latest NAV is the given value, dated
// yesterday in MFAPI's DD-MM-YYYY format.
func (m *MFAPIMockServer) WithScheme(code, name string, latestNAV float64) *MFAPIMockServer {
	yesterday := time.Now().AddDate(0, 0, -1)
	m.Schemes[code] = mfapi.SchemeResponse{
		Meta: mfapi.SchemeMeta{
			FundHouse:  "Test Fund House",
			SchemeType: "Open Ended Schemes",
			SchemeName: name,
		},
		Data: []mfapi.NAVRecord{
			{Date: yesterday.Format("02-01-2006"), NAV: formatNAV(latestNAV)},
			{Date: yesterday.AddDate(0, 0, -1).Format("02-01-2006"), NAV: formatNAV(latestNAV - 0.5)},
		},
		Status: "SUCCESS",
	}
	return m
}

// NewClient builds an mfapi client pointed at this mock server, caching in
// the test's temp directory.
func (m *MFAPIMockServer) NewClient(t *testing.T) *mfapi.Client {
	t.Helper()

	client, err := mfapi.NewClient(
		t.TempDir(),
		time.Hour,
		zerolog.Nop(),
		mfapi.WithBaseURL(m.URL),
	)
	if err != nil {
		t.Fatalf("Failed to create mfapi client: %v", err)
	}
	return client
}

// formatNAV renders a NAV the way MFAPI does: a four-decimal string.
func formatNAV(v float64) string {
	return strconv.FormatFloat(v, 'f', 4, 64)
}
