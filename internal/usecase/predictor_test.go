package usecase

import (
	"testing"

	"adrec/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func nurseStats() map[string]domain.PlatformStats {
	return map[string]domain.PlatformStats{
		"A": {CTR: 3.0, CPC: 20},
		"B": {CTR: 1.0, CPC: 40},
	}
}

func TestPredictOutcomes(t *testing.T) {
	mix := domain.ChannelMix{"A": 70, "B": 30}

	prediction := PredictOutcomes(nurseStats(), 10000, 30, mix)
	require.NotNil(t, prediction)

	assert.Equal(t, 10000.0, prediction.TotalBudget)
	assert.Equal(t, 30, prediction.CampaignDays)
	assert.InDelta(t, 333.333, prediction.DailyBudget, 0.001)

	a := prediction.Channels["A"]
	assert.Equal(t, 7000.0, a.Budget)
	assert.Equal(t, 350.0, a.PredictedClicks)        // 7000 / 20
	assert.Equal(t, 11667.0, a.PredictedImpressions) // 350 / 0.03
	assert.Equal(t, 3.0, a.PredictedCTR)
	assert.Equal(t, 20.0, a.PredictedCPC)

	b := prediction.Channels["B"]
	assert.Equal(t, 3000.0, b.Budget)
	assert.Equal(t, 75.0, b.PredictedClicks)
	assert.Equal(t, 7500.0, b.PredictedImpressions)

	assert.Equal(t, 425.0, prediction.TotalPredictedClicks)
	assert.Equal(t, 19167.0, prediction.TotalPredictedImpressions)
	assert.Equal(t, 2.22, prediction.OverallPredictedCTR)
}

func TestPredictOutcomes_LinearInBudget(t *testing.T) {
	mix := domain.ChannelMix{"A": 70, "B": 30}

	base := PredictOutcomes(nurseStats(), 10000, 30, mix)
	doubled := PredictOutcomes(nurseStats(), 20000, 30, mix)

	assert.Equal(t, 2*base.TotalPredictedClicks, doubled.TotalPredictedClicks)
	assert.Equal(t, 2*base.Channels["A"].Budget, doubled.Channels["A"].Budget)
	// CTR is a ratio: unchanged under scaling.
	assert.Equal(t, base.OverallPredictedCTR, doubled.OverallPredictedCTR)
}

func TestPredictOutcomes_SkipsMixPlatformsWithoutStats(t *testing.T) {
	mix := domain.ChannelMix{"A": 70, "Unknown": 30}

	prediction := PredictOutcomes(nurseStats(), 10000, 30, mix)
	require.Len(t, prediction.Channels, 1)
	assert.Equal(t, 350.0, prediction.TotalPredictedClicks)
}

func TestPredictOutcomes_Reproducible(t *testing.T) {
	stats := map[string]domain.PlatformStats{
		"A": {CTR: 2.13, CPC: 17.77},
		"B": {CTR: 1.07, CPC: 33.33},
		"C": {CTR: 0.91, CPC: 44.01},
	}
	mix := domain.ChannelMix{"A": 60, "B": 30, "C": 10}

	first := PredictOutcomes(stats, 12345, 21, mix)
	for i := 0; i < 50; i++ {
		assert.Equal(t, first, PredictOutcomes(stats, 12345, 21, mix))
	}
}
