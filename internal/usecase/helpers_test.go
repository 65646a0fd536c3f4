package usecase

import (
	"context"

	"adrec/internal/domain"
	"adrec/pkg/logger"
	"adrec/pkg/metrics"
)

// One metrics instance per test binary: promauto registers globally.
var testMetrics = metrics.New()

var testLogger = logger.New("error")

// stubEmbedder returns canned vectors. Inputs without an explicit vector all
// share the same default, which makes any two of them perfectly similar.
type stubEmbedder struct {
	vectors map[string][]float32
	err     error
	calls   int
}

func (s *stubEmbedder) Embed(_ context.Context, inputs []string) ([][]float32, error) {
	s.calls++
	if s.err != nil {
		return nil, s.err
	}
	out := make([][]float32, len(inputs))
	for i, input := range inputs {
		if vec, ok := s.vectors[input]; ok {
			out[i] = vec
		} else {
			out[i] = []float32{0, 0, 0, 1}
		}
	}
	return out, nil
}

// nurseRecords aggregates to platform A: ctr=3.0 cpc=20 and platform B:
// ctr=1.0 cpc=40 under the key "Nurse - Healthcare".
func nurseRecords() []domain.CampaignRecord {
	return []domain.CampaignRecord{
		{Role: "Nurse", Industry: "Healthcare", Platform: "A", Impressions: 10000, Clicks: 300, Spend: 6000, CampaignDays: 30},
		{Role: "Nurse", Industry: "Healthcare", Platform: "B", Impressions: 10000, Clicks: 100, Spend: 4000, CampaignDays: 30},
	}
}

// successfulSalesRecords builds n records for one role on one platform that
// all pass the cleaning filter and the success threshold.
func successfulSalesRecords(role string, n int) []domain.CampaignRecord {
	records := make([]domain.CampaignRecord, n)
	for i := range records {
		records[i] = domain.CampaignRecord{
			Role:         role,
			Platform:     "LinkedIn",
			Impressions:  1000,
			Clicks:       50,
			Spend:        1000 + float64(i)*10,
			CampaignDays: 30,
		}
	}
	return records
}
