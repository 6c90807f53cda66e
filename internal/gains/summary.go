package gains

import "github.com/mfolio/mf-portfolio-tracker/internal/model"

// DefaultLongTermExemption is the long-term capital gains exemption applied
// when reporting taxable amounts (1 lakh in the reference tax regime).
const DefaultLongTermExemption = 100000

// Summary aggregates capital gain records by classification. Taxable
// amounts are a pure post-processing view: the long-term exemption is
// deducted from the long-term total and losses never produce a negative
// taxable amount.
type Summary struct {
	ShortTerm        float64 `json:"stcg"`
	LongTerm         float64 `json:"ltcg"`
	Total            float64 `json:"total_gain"`
	TaxableShortTerm float64 `json:"stcg_taxable"`
	TaxableLongTerm  float64 `json:"ltcg_taxable"`
}

// Summarize totals the given gain records and applies the long-term
// exemption to the taxable long-term amount.
func Summarize(records []model.CapitalGain, longTermExemption float64) Summary {
	var s Summary
	for _, r := range records {
		switch r.Classification {
		case model.LongTerm:
			s.LongTerm += r.GainLoss
		case model.ShortTerm:
			s.ShortTerm += r.GainLoss
		}
	}
	s.Total = s.ShortTerm + s.LongTerm
	s.TaxableShortTerm = s.ShortTerm
	s.TaxableLongTerm = max(0, s.LongTerm-longTermExemption)
	return s
}
