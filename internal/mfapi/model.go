package mfapi

// SchemeResponse is the raw response from the MFAPI.in scheme endpoint
// (GET /mf/{schemeCode}).
type SchemeResponse struct {
	Meta   SchemeMeta  `json:"meta"`
	Data   []NAVRecord `json:"data"`
	Status string      `json:"status"`
}

// SchemeMeta carries the scheme's static metadata.
type SchemeMeta struct {
	FundHouse      string `json:"fund_house"`
	SchemeType     string `json:"scheme_type"`
	SchemeCategory string `json:"scheme_category"`
	SchemeCode     int    `json:"scheme_code"`
	SchemeName     string `json:"scheme_name"`
}

// NAVRecord is one dated NAV entry. MFAPI returns both fields as strings;
// the date uses DD-MM-YYYY.
type NAVRecord struct {
	Date string `json:"date"`
	NAV  string `json:"nav"`
}

// SchemeSummary is one entry of the full scheme listing (GET /mf).
type SchemeSummary struct {
	SchemeCode int    `json:"schemeCode"`
	SchemeName string `json:"schemeName"`
}
