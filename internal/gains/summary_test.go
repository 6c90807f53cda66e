package gains_test

import (
	"testing"

	"github.com/mfolio/mf-portfolio-tracker/internal/gains"
	"github.com/mfolio/mf-portfolio-tracker/internal/model"
)

// TestSummarize tests aggregation and the long-term exemption.
//
// WHY: The summary is what tax reporting reads. The exemption applies only
// to the long-term bucket and must clamp at zero so long-term losses never
// produce a negative taxable amount.
func TestSummarize(t *testing.T) {
	tests := []struct {
		name      string
		records   []model.CapitalGain
		exemption float64
		expected  gains.Summary
	}{
		{
			name: "splits buckets and applies the exemption",
			records: []model.CapitalGain{
				{GainLoss: 150000, Classification: model.LongTerm},
				{GainLoss: 30000, Classification: model.ShortTerm},
			},
			exemption: 100000,
			expected: gains.Summary{
				ShortTerm:        30000,
				LongTerm:         150000,
				Total:            180000,
				TaxableShortTerm: 30000,
				TaxableLongTerm:  50000,
			},
		},
		{
			name: "long term under the exemption is fully exempt",
			records: []model.CapitalGain{
				{GainLoss: 80000, Classification: model.LongTerm},
			},
			exemption: 100000,
			expected: gains.Summary{
				LongTerm:        80000,
				Total:           80000,
				TaxableLongTerm: 0,
			},
		},
		{
			name: "long term loss never goes taxable-negative",
			records: []model.CapitalGain{
				{GainLoss: -50000, Classification: model.LongTerm},
				{GainLoss: 20000, Classification: model.ShortTerm},
			},
			exemption: 100000,
			expected: gains.Summary{
				ShortTerm:        20000,
				LongTerm:         -50000,
				Total:            -30000,
				TaxableShortTerm: 20000,
				TaxableLongTerm:  0,
			},
		},
		{
			name:      "no records",
			records:   nil,
			exemption: 100000,
			expected:  gains.Summary{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// Execute
			got := gains.Summarize(tt.records, tt.exemption)

			// Assert
			if got != tt.expected {
				t.Errorf("Summarize() = %+v, expected %+v", got, tt.expected)
			}
		})
	}
}
