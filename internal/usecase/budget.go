package usecase

import (
	"sort"
	"strings"

	"adrec/internal/domain"
	"adrec/pkg/logger"
)

const (
	// Cleaning filter: campaigns outside these bounds are noise (aborted
	// campaigns, misconfigured spends) and never inform budget tiers.
	minCleanSpend  = 100.0
	maxCleanSpend  = 100000.0
	minCleanCTR    = 0.5
	minCleanClicks = 10

	// A campaign is successful when its CTR reaches the 75th percentile of
	// its platform. Platforms with too few cleaned records use the fixed
	// fallback threshold instead.
	successQuantile      = 0.75
	minPlatformRecords   = 10
	fallbackCTRThreshold = 3.0

	// Tier totals are normalized to a 30-day campaign before rescaling to the
	// requested length.
	budgetNormalizationDays = 30

	// Sample-size ladder for budget confidence.
	highConfidencePoints   = 50
	mediumConfidencePoints = 20
)

const (
	TierMinimum  = "minimum"
	TierStandard = "standard"
	TierPremium  = "premium"
)

var tierDescriptions = map[string]string{
	TierMinimum:  "Grundläggande synlighet",
	TierStandard: "Rekommenderad nivå",
	TierPremium:  "Optimalt resultat",
}

// Empirical success-rate bands per tier, only reported for tiers derived from
// role-specific data.
var tierLikelihoods = map[string]string{
	TierMinimum:  "60-70%",
	TierStandard: "70-85%",
	TierPremium:  "85-95%",
}

// budgetCampaign is one cleaned record with its derived per-campaign metrics.
type budgetCampaign struct {
	key   domain.MatchKey
	spend float64
	ctr   float64
	cpc   float64
}

// BudgetModel derives minimum/standard/premium budget tiers from the spend
// distribution of successful historical campaigns. Built once per engine
// snapshot, read-only afterwards.
type BudgetModel struct {
	strategy   domain.KeyStrategy
	clean      []budgetCampaign
	successful []budgetCampaign
	logger     *logger.Logger
}

// NewBudgetModel cleans the record set, derives per-platform success
// thresholds, and keeps the successful subset.
func NewBudgetModel(records []domain.CampaignRecord, strategy domain.KeyStrategy, log *logger.Logger) *BudgetModel {
	var clean []budgetCampaign
	platforms := make(map[string][]budgetCampaign)

	for _, rec := range records {
		if rec.Role == "" || rec.Platform == "" {
			continue
		}
		var ctr, cpc float64
		if rec.Impressions > 0 {
			ctr = float64(rec.Clicks) / float64(rec.Impressions) * 100
		}
		if rec.Clicks > 0 {
			cpc = rec.Spend / float64(rec.Clicks)
		}
		if rec.Spend <= minCleanSpend || rec.Spend >= maxCleanSpend || ctr <= minCleanCTR || rec.Clicks <= minCleanClicks {
			continue
		}
		c := budgetCampaign{
			key:   strategy.RecordKey(rec),
			spend: rec.Spend,
			ctr:   ctr,
			cpc:   cpc,
		}
		clean = append(clean, c)
		platforms[rec.Platform] = append(platforms[rec.Platform], c)
	}

	thresholds := make(map[string]float64, len(platforms))
	for platform, campaigns := range platforms {
		if len(campaigns) < minPlatformRecords {
			continue
		}
		ctrs := make([]float64, len(campaigns))
		for i, c := range campaigns {
			ctrs[i] = c.ctr
		}
		sort.Float64s(ctrs)
		thresholds[platform] = quantile(ctrs, successQuantile)
	}

	var successful []budgetCampaign
	for platform, campaigns := range platforms {
		threshold, ok := thresholds[platform]
		if !ok {
			threshold = fallbackCTRThreshold
		}
		for _, c := range campaigns {
			if c.ctr >= threshold {
				successful = append(successful, c)
			}
		}
	}

	// Map iteration above shuffles the subset; restore a stable order so
	// percentile math is reproducible.
	sort.Slice(successful, func(i, j int) bool {
		if successful[i].key != successful[j].key {
			return successful[i].key < successful[j].key
		}
		return successful[i].spend < successful[j].spend
	})

	if log != nil {
		log.WithFields(map[string]any{
			"records":    len(records),
			"clean":      len(clean),
			"successful": len(successful),
			"platforms":  len(platforms),
		}).Info("Built budget model")
	}

	return &BudgetModel{
		strategy:   strategy,
		clean:      clean,
		successful: successful,
		logger:     log,
	}
}

// Recommend derives budget tiers for a role (and optional industry).
// Matching ladder: full key subset, then role-first-word substring, then the
// whole successful dataset with low confidence and an explanatory note.
func (m *BudgetModel) Recommend(role, industry string, campaignDays int) *domain.BudgetRecommendation {
	if campaignDays <= 0 {
		campaignDays = budgetNormalizationDays
	}

	rec := &domain.BudgetRecommendation{
		Role:         role,
		Industry:     industry,
		CampaignDays: campaignDays,
		BudgetTiers:  map[string]domain.BudgetTier{},
		Confidence:   domain.ConfidenceLow,
	}

	matched := m.matchSubset(role, industry)

	if len(matched) == 0 {
		// No role-specific data at all: fall back to dataset-wide tiers.
		if len(m.successful) == 0 {
			rec.Note = "Ingen historisk data tillgänglig"
			return rec
		}
		rec.BudgetTiers = buildTiers(m.successful, campaignDays, false)
		rec.Note = "Baserat på generell data, ingen specifik data för denna roll/bransch"
		return rec
	}

	rec.DataPoints = len(matched)
	rec.BudgetTiers = buildTiers(matched, campaignDays, true)

	var ctrSum, cpcSum float64
	spends := make([]float64, len(matched))
	for i, c := range matched {
		ctrSum += c.ctr
		cpcSum += c.cpc
		spends[i] = c.spend
	}
	sort.Float64s(spends)
	rec.HistoricalData = &domain.HistoricalPerformance{
		AvgCTR:       round2(ctrSum / float64(len(matched))),
		AvgCPC:       round2(cpcSum / float64(len(matched))),
		MedianBudget: round0(quantile(spends, 0.5)),
		SuccessRate:  m.successRate(role, industry, len(matched)),
	}

	switch {
	case len(matched) >= highConfidencePoints:
		rec.Confidence = domain.ConfidenceHigh
	case len(matched) >= mediumConfidencePoints:
		rec.Confidence = domain.ConfidenceMedium
	default:
		rec.Confidence = domain.ConfidenceLow
	}

	return rec
}

// Compare returns budget tiers for several roles side by side.
func (m *BudgetModel) Compare(roles []string, campaignDays int) []domain.RoleBudgetComparison {
	comparisons := make([]domain.RoleBudgetComparison, 0, len(roles))
	for _, role := range roles {
		rec := m.Recommend(role, "", campaignDays)
		comparisons = append(comparisons, domain.RoleBudgetComparison{
			Role:          role,
			MinimumTotal:  rec.BudgetTiers[TierMinimum].Total,
			StandardTotal: rec.BudgetTiers[TierStandard].Total,
			PremiumTotal:  rec.BudgetTiers[TierPremium].Total,
			DataPoints:    rec.DataPoints,
			Confidence:    rec.Confidence,
		})
	}
	return comparisons
}

func (m *BudgetModel) matchSubset(role, industry string) []budgetCampaign {
	var matched []budgetCampaign

	if industry != "" {
		key := m.strategy.QueryKey(role, industry)
		for _, c := range m.successful {
			if c.key == key {
				matched = append(matched, c)
			}
		}
	} else {
		for _, c := range m.successful {
			if c.key.Role() == role {
				matched = append(matched, c)
			}
		}
	}
	if len(matched) > 0 {
		return matched
	}

	// Last resort: any successful campaign whose role contains the query
	// role's first word.
	fields := strings.Fields(role)
	if len(fields) == 0 {
		return nil
	}
	firstWord := strings.ToLower(fields[0])
	for _, c := range m.successful {
		if strings.Contains(strings.ToLower(c.key.Role()), firstWord) {
			matched = append(matched, c)
		}
	}
	return matched
}

// successRate relates the successful matches to every cleaned campaign under
// the same key. Fuzzy-matched subsets can exceed the strict denominator; the
// rate is capped at 100.
func (m *BudgetModel) successRate(role, industry string, matched int) float64 {
	total := 0
	if industry != "" {
		key := m.strategy.QueryKey(role, industry)
		for _, c := range m.clean {
			if c.key == key {
				total++
			}
		}
	} else {
		for _, c := range m.clean {
			if c.key.Role() == role {
				total++
			}
		}
	}
	if total == 0 {
		return 0
	}
	rate := float64(matched) / float64(total) * 100
	if rate > 100 {
		rate = 100
	}
	return round1(rate)
}

// buildTiers maps spend percentiles to tiers: minimum=p25, standard=p50,
// premium=p75. Dailies normalize to 30 days, totals rescale to the requested
// campaign length and round to the nearest 10. Click projections and success
// likelihoods are only attached for role-specific subsets.
func buildTiers(campaigns []budgetCampaign, campaignDays int, roleSpecific bool) map[string]domain.BudgetTier {
	spends := make([]float64, len(campaigns))
	var cpcSum float64
	for i, c := range campaigns {
		spends[i] = c.spend
		cpcSum += c.cpc
	}
	sort.Float64s(spends)
	meanCPC := cpcSum / float64(len(campaigns))

	tiers := make(map[string]domain.BudgetTier, 3)
	for tier, q := range map[string]float64{
		TierMinimum:  0.25,
		TierStandard: 0.50,
		TierPremium:  0.75,
	} {
		daily := quantile(spends, q) / budgetNormalizationDays
		total := daily * float64(campaignDays)

		t := domain.BudgetTier{
			Total:       roundTo10(total),
			Daily:       round0(daily),
			Description: tierDescriptions[tier],
		}
		if roleSpecific {
			t.SuccessLikelihood = tierLikelihoods[tier]
			if meanCPC > 0 {
				t.ExpectedClicks = int(total / meanCPC)
			}
		}
		tiers[tier] = t
	}
	return tiers
}

// quantile computes the q-th quantile of sorted data with linear
// interpolation between closest ranks.
func quantile(sorted []float64, q float64) float64 {
	if len(sorted) == 0 {
		return 0
	}
	if len(sorted) == 1 {
		return sorted[0]
	}
	pos := q * float64(len(sorted)-1)
	lower := int(pos)
	if lower >= len(sorted)-1 {
		return sorted[len(sorted)-1]
	}
	frac := pos - float64(lower)
	return sorted[lower] + frac*(sorted[lower+1]-sorted[lower])
}
