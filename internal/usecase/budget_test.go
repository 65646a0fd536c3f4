package usecase

import (
	"testing"

	"adrec/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// evenSpendRecords builds five campaigns for one role with spends 1000..5000,
// CTR 5.0 and CPC exactly 20 on every record.
func evenSpendRecords(role string) []domain.CampaignRecord {
	spends := []float64{1000, 2000, 3000, 4000, 5000}
	records := make([]domain.CampaignRecord, len(spends))
	for i, spend := range spends {
		clicks := int64(spend / 20)
		records[i] = domain.CampaignRecord{
			Role:        role,
			Platform:    "LinkedIn",
			Impressions: clicks * 20, // CTR 5%
			Clicks:      clicks,
			Spend:       spend,
		}
	}
	return records
}

func TestQuantile(t *testing.T) {
	data := []float64{1000, 2000, 3000, 4000}

	assert.InDelta(t, 1750.0, quantile(data, 0.25), 1e-9)
	assert.InDelta(t, 2500.0, quantile(data, 0.50), 1e-9)
	assert.InDelta(t, 3250.0, quantile(data, 0.75), 1e-9)
	assert.InDelta(t, 1000.0, quantile(data, 0), 1e-9)
	assert.InDelta(t, 4000.0, quantile(data, 1), 1e-9)

	assert.Equal(t, 0.0, quantile(nil, 0.5))
	assert.Equal(t, 42.0, quantile([]float64{42}, 0.75))
}

func TestNewBudgetModel_CleaningFilter(t *testing.T) {
	base := domain.CampaignRecord{Role: "Säljare", Platform: "LinkedIn"}

	ok := base
	ok.Spend, ok.Clicks, ok.Impressions = 1000, 50, 1000

	tooCheap := base
	tooCheap.Spend, tooCheap.Clicks, tooCheap.Impressions = 100, 50, 1000

	tooExpensive := base
	tooExpensive.Spend, tooExpensive.Clicks, tooExpensive.Impressions = 100000, 50, 1000

	lowCTR := base
	lowCTR.Spend, lowCTR.Clicks, lowCTR.Impressions = 1000, 50, 10000

	fewClicks := base
	fewClicks.Spend, fewClicks.Clicks, fewClicks.Impressions = 1000, 10, 100

	model := NewBudgetModel([]domain.CampaignRecord{ok, tooCheap, tooExpensive, lowCTR, fewClicks},
		domain.RoleKey{}, testLogger)

	// Only the clean record survives; boundary values are exclusive.
	assert.Len(t, model.successful, 1)
	assert.Equal(t, 1000.0, model.successful[0].spend)
}

func TestNewBudgetModel_SuccessThresholdPerPlatform(t *testing.T) {
	// Twelve LinkedIn campaigns with CTRs 1..12: p75 of the platform keeps
	// only the top performers.
	var records []domain.CampaignRecord
	for i := 1; i <= 12; i++ {
		records = append(records, domain.CampaignRecord{
			Role:        "Säljare",
			Platform:    "LinkedIn",
			Impressions: 10000,
			Clicks:      int64(i * 100), // CTR = i percent
			Spend:       1000,
		})
	}

	model := NewBudgetModel(records, domain.RoleKey{}, testLogger)

	// p75 of [1..12] = 9.25, so CTRs 10, 11, 12 survive.
	require.Len(t, model.successful, 3)
	for _, c := range model.successful {
		assert.GreaterOrEqual(t, c.ctr, 9.25)
	}
}

func TestNewBudgetModel_FallbackThresholdOnSmallPlatform(t *testing.T) {
	// Three records only: below the per-platform minimum, so the fixed 3.0
	// CTR threshold applies.
	records := []domain.CampaignRecord{
		{Role: "Säljare", Platform: "LinkedIn", Impressions: 1000, Clicks: 50, Spend: 1000}, // CTR 5.0
		{Role: "Säljare", Platform: "LinkedIn", Impressions: 1000, Clicks: 35, Spend: 1000}, // CTR 3.5
		{Role: "Säljare", Platform: "LinkedIn", Impressions: 1000, Clicks: 20, Spend: 1000}, // CTR 2.0
	}

	model := NewBudgetModel(records, domain.RoleKey{}, testLogger)
	assert.Len(t, model.successful, 2)
}

func TestRecommend_Tiers(t *testing.T) {
	model := NewBudgetModel(evenSpendRecords("Säljare"), domain.RoleKey{}, testLogger)

	rec := model.Recommend("Säljare", "", 30)
	require.NotNil(t, rec)
	assert.Equal(t, 5, rec.DataPoints)
	assert.Empty(t, rec.Note)

	minimum := rec.BudgetTiers[TierMinimum]
	assert.Equal(t, 2000.0, minimum.Total)
	assert.Equal(t, 67.0, minimum.Daily)
	assert.Equal(t, 100, minimum.ExpectedClicks)
	assert.Equal(t, "Grundläggande synlighet", minimum.Description)
	assert.Equal(t, "60-70%", minimum.SuccessLikelihood)

	standard := rec.BudgetTiers[TierStandard]
	assert.Equal(t, 3000.0, standard.Total)
	assert.Equal(t, 100.0, standard.Daily)
	assert.Equal(t, 150, standard.ExpectedClicks)
	assert.Equal(t, "Rekommenderad nivå", standard.Description)

	premium := rec.BudgetTiers[TierPremium]
	assert.Equal(t, 4000.0, premium.Total)
	assert.Equal(t, 133.0, premium.Daily)
	assert.Equal(t, 200, premium.ExpectedClicks)
	assert.Equal(t, "Optimalt resultat", premium.Description)

	require.NotNil(t, rec.HistoricalData)
	assert.Equal(t, 5.0, rec.HistoricalData.AvgCTR)
	assert.Equal(t, 20.0, rec.HistoricalData.AvgCPC)
	assert.Equal(t, 3000.0, rec.HistoricalData.MedianBudget)
	// Every cleaned campaign for the role cleared the success threshold.
	assert.Equal(t, 100.0, rec.HistoricalData.SuccessRate)
}

func TestRecommend_TiersScaleWithCampaignLength(t *testing.T) {
	model := NewBudgetModel(evenSpendRecords("Säljare"), domain.RoleKey{}, testLogger)

	short := model.Recommend("Säljare", "", 30)
	long := model.Recommend("Säljare", "", 60)

	assert.Equal(t, 2*short.BudgetTiers[TierStandard].Total, long.BudgetTiers[TierStandard].Total)
	// Daily spend is normalized, not scaled.
	assert.Equal(t, short.BudgetTiers[TierStandard].Daily, long.BudgetTiers[TierStandard].Daily)
}

func TestRecommend_TiersAreMonotonic(t *testing.T) {
	model := NewBudgetModel(evenSpendRecords("Säljare"), domain.RoleKey{}, testLogger)

	rec := model.Recommend("Säljare", "", 45)
	assert.LessOrEqual(t, rec.BudgetTiers[TierMinimum].Total, rec.BudgetTiers[TierStandard].Total)
	assert.LessOrEqual(t, rec.BudgetTiers[TierStandard].Total, rec.BudgetTiers[TierPremium].Total)
}

func TestRecommend_ConfidenceLadder(t *testing.T) {
	cases := []struct {
		records    int
		confidence domain.Confidence
	}{
		{60, domain.ConfidenceHigh},
		{25, domain.ConfidenceMedium},
		{5, domain.ConfidenceLow},
	}

	for _, tc := range cases {
		model := NewBudgetModel(successfulSalesRecords("Säljare", tc.records), domain.RoleKey{}, testLogger)
		rec := model.Recommend("Säljare", "", 30)
		assert.Equal(t, tc.confidence, rec.Confidence, "with %d records", tc.records)
		assert.Equal(t, tc.records, rec.DataPoints)
	}
}

func TestRecommend_SuccessRate(t *testing.T) {
	// Twelve cleaned campaigns, three above the p75 threshold.
	var records []domain.CampaignRecord
	for i := 1; i <= 12; i++ {
		records = append(records, domain.CampaignRecord{
			Role:        "Säljare",
			Platform:    "LinkedIn",
			Impressions: 10000,
			Clicks:      int64(i * 100),
			Spend:       1000,
		})
	}

	model := NewBudgetModel(records, domain.RoleKey{}, testLogger)
	rec := model.Recommend("Säljare", "", 30)

	require.NotNil(t, rec.HistoricalData)
	assert.Equal(t, 3, rec.DataPoints)
	assert.Equal(t, 25.0, rec.HistoricalData.SuccessRate)
}

func TestRecommend_FirstWordFallback(t *testing.T) {
	model := NewBudgetModel(successfulSalesRecords("Säljare", 5), domain.RoleKey{}, testLogger)

	rec := model.Recommend("Säljare B2B", "", 30)
	assert.Equal(t, 5, rec.DataPoints)
	assert.NotEmpty(t, rec.BudgetTiers)
}

func TestRecommend_DatasetWideFallback(t *testing.T) {
	model := NewBudgetModel(successfulSalesRecords("Säljare", 5), domain.RoleKey{}, testLogger)

	rec := model.Recommend("Ekonom", "", 30)
	assert.Equal(t, 0, rec.DataPoints)
	assert.Equal(t, domain.ConfidenceLow, rec.Confidence)
	assert.Equal(t, "Baserat på generell data, ingen specifik data för denna roll/bransch", rec.Note)
	assert.NotEmpty(t, rec.BudgetTiers)
	// Dataset-wide tiers carry no click projection or likelihood.
	assert.Equal(t, 0, rec.BudgetTiers[TierStandard].ExpectedClicks)
	assert.Empty(t, rec.BudgetTiers[TierStandard].SuccessLikelihood)
	assert.Nil(t, rec.HistoricalData)
}

func TestRecommend_NoDataAtAll(t *testing.T) {
	model := NewBudgetModel(nil, domain.RoleKey{}, testLogger)

	rec := model.Recommend("Säljare", "", 30)
	assert.Equal(t, "Ingen historisk data tillgänglig", rec.Note)
	assert.Empty(t, rec.BudgetTiers)
	assert.Equal(t, domain.ConfidenceLow, rec.Confidence)
}

func TestRecommend_IndustryNarrowsMatch(t *testing.T) {
	retail := successfulSalesRecords("Säljare", 3)
	for i := range retail {
		retail[i].Industry = "Detaljhandel"
	}
	finance := successfulSalesRecords("Säljare", 2)
	for i := range finance {
		finance[i].Industry = "Bank & Finans"
	}

	model := NewBudgetModel(append(retail, finance...), domain.RoleIndustryKey{}, testLogger)

	rec := model.Recommend("Säljare", "Detaljhandel", 30)
	assert.Equal(t, 3, rec.DataPoints)

	// Without an industry the role match spans both.
	rec = model.Recommend("Säljare", "", 30)
	assert.Equal(t, 5, rec.DataPoints)
}

func TestRecommend_DefaultsCampaignDays(t *testing.T) {
	model := NewBudgetModel(evenSpendRecords("Säljare"), domain.RoleKey{}, testLogger)

	rec := model.Recommend("Säljare", "", 0)
	assert.Equal(t, 30, rec.CampaignDays)
	assert.Equal(t, 3000.0, rec.BudgetTiers[TierStandard].Total)
}

func TestCompare(t *testing.T) {
	records := append(evenSpendRecords("Säljare"), successfulSalesRecords("Sjuksköterska", 25)...)
	model := NewBudgetModel(records, domain.RoleKey{}, testLogger)

	comparisons := model.Compare([]string{"Säljare", "Sjuksköterska", "Okänd"}, 30)
	require.Len(t, comparisons, 3)

	assert.Equal(t, "Säljare", comparisons[0].Role)
	assert.Equal(t, 5, comparisons[0].DataPoints)
	assert.Equal(t, 3000.0, comparisons[0].StandardTotal)

	assert.Equal(t, "Sjuksköterska", comparisons[1].Role)
	assert.Equal(t, 25, comparisons[1].DataPoints)
	assert.Equal(t, domain.ConfidenceMedium, comparisons[1].Confidence)

	// Unknown role falls back to dataset-wide tiers.
	assert.Equal(t, "Okänd", comparisons[2].Role)
	assert.Equal(t, 0, comparisons[2].DataPoints)
	assert.Greater(t, comparisons[2].StandardTotal, 0.0)
}
