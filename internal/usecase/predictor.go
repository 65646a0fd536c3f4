package usecase

import (
	"sort"

	"adrec/internal/domain"
)

// PredictOutcomes projects clicks and impressions for a budget split across
// the suggested mix, from historical per-platform CPC and CTR. Pure function:
// linear in budget for a fixed mix and fixed stats. The aggregator guarantees
// every platform in the stats has positive CTR and CPC, so the divisions are
// safe.
func PredictOutcomes(stats map[string]domain.PlatformStats, budget float64, campaignDays int, mix domain.ChannelMix) *domain.OutcomePrediction {
	prediction := &domain.OutcomePrediction{
		TotalBudget:  budget,
		CampaignDays: campaignDays,
		DailyBudget:  budget / float64(campaignDays),
		Channels:     make(map[string]domain.ChannelPrediction, len(mix)),
	}

	// Deterministic platform order keeps the float sums reproducible.
	platforms := make([]string, 0, len(mix))
	for platform := range mix {
		platforms = append(platforms, platform)
	}
	sort.Strings(platforms)

	var totalClicks, totalImpressions float64
	for _, platform := range platforms {
		platformStats, ok := stats[platform]
		if !ok {
			continue
		}

		platformBudget := budget * float64(mix[platform]) / 100
		predictedClicks := platformBudget / platformStats.CPC
		predictedImpressions := predictedClicks / (platformStats.CTR / 100)

		prediction.Channels[platform] = domain.ChannelPrediction{
			Budget:               round0(platformBudget),
			PredictedClicks:      round0(predictedClicks),
			PredictedImpressions: round0(predictedImpressions),
			PredictedCTR:         round2(platformStats.CTR),
			PredictedCPC:         round2(platformStats.CPC),
		}

		totalClicks += predictedClicks
		totalImpressions += predictedImpressions
	}

	prediction.TotalPredictedClicks = round0(totalClicks)
	prediction.TotalPredictedImpressions = round0(totalImpressions)
	if totalImpressions > 0 {
		prediction.OverallPredictedCTR = round2(totalClicks / totalImpressions * 100)
	}

	return prediction
}
