package domain

// MatchSource tells which fallback tier produced a match.
type MatchSource string

const (
	MatchSourceExact      MatchSource = "exact"
	MatchSourceSimilarity MatchSource = "similarity"
	MatchSourceRoleOnly   MatchSource = "role_only"
	MatchSourceNone       MatchSource = "none"
)

// Confidence is the coarse trust label shown to end users. The Swedish wire
// values are rendered verbatim by the dashboard.
type Confidence string

const (
	ConfidenceHigh   Confidence = "Hög"
	ConfidenceMedium Confidence = "Medel"
	ConfidenceLow    Confidence = "Låg"
)

// ScoredKey is a known matching key with its cosine similarity to a query.
type ScoredKey struct {
	Key   MatchKey `json:"key"`
	Score float64  `json:"score"`
}

// MatchResult is the outcome of the tiered match pipeline for one query.
type MatchResult struct {
	QueryKey        MatchKey    `json:"query_key"`
	ResolvedKey     MatchKey    `json:"resolved_key,omitempty"`
	Source          MatchSource `json:"source"`
	SimilarityScore float64     `json:"similarity_score,omitempty"`
	Confidence      Confidence  `json:"confidence,omitempty"`
	Explanation     string      `json:"explanation,omitempty"`
}

// ChannelStats is the per-platform view returned to callers.
type ChannelStats struct {
	CTR              float64 `json:"ctr"`
	CPC              float64 `json:"cpc"`
	AvgSpend         float64 `json:"avg_spend_per_campaign"`
	CampaignsRun     int     `json:"campaigns_run"`
	PerformanceScore float64 `json:"performance_score"`
}

// ChannelMix maps platform -> integer budget percentage. Percentages sum to
// 100, or the mix is empty when no statistics resolved.
type ChannelMix map[string]int

// ChannelPrediction projects spend outcome for one platform in the mix.
type ChannelPrediction struct {
	Budget               float64 `json:"budget"`
	PredictedClicks      float64 `json:"predicted_clicks"`
	PredictedImpressions float64 `json:"predicted_impressions"`
	PredictedCTR         float64 `json:"predicted_ctr"`
	PredictedCPC         float64 `json:"predicted_cpc"`
}

// OutcomePrediction aggregates per-channel projections for one budget.
type OutcomePrediction struct {
	TotalBudget               float64                      `json:"total_budget"`
	CampaignDays              int                          `json:"campaign_days"`
	DailyBudget               float64                      `json:"daily_budget"`
	Channels                  map[string]ChannelPrediction `json:"channels"`
	TotalPredictedClicks      float64                      `json:"total_predicted_clicks"`
	TotalPredictedImpressions float64                      `json:"total_predicted_impressions"`
	OverallPredictedCTR       float64                      `json:"overall_predicted_ctr"`
}

// Recommendation is the full channel recommendation for one query.
type Recommendation struct {
	QueryRole           string                  `json:"query_role"`
	QueryIndustry       string                  `json:"query_industry,omitempty"`
	DataSource          MatchSource             `json:"data_source"`
	MatchedKey          MatchKey                `json:"matched_key,omitempty"`
	SimilarityScore     float64                 `json:"similarity_score,omitempty"`
	Channels            map[string]ChannelStats `json:"channels"`
	SuggestedMix        ChannelMix              `json:"suggested_mix"`
	Confidence          Confidence              `json:"confidence,omitempty"`
	Explanation         string                  `json:"explanation,omitempty"`
	PredictedOutcomes   *OutcomePrediction      `json:"predicted_outcomes,omitempty"`
	SimilarCombinations []ScoredKey             `json:"similar_combinations"`
}

// BudgetTier is one rung of the minimum/standard/premium ladder. The success
// likelihood is only present when the tier was derived from role-specific
// data.
type BudgetTier struct {
	Total             float64 `json:"total"`
	Daily             float64 `json:"daily"`
	Description       string  `json:"description"`
	ExpectedClicks    int     `json:"expected_clicks,omitempty"`
	SuccessLikelihood string  `json:"success_likelihood,omitempty"`
}

// HistoricalPerformance summarizes the successful campaigns a budget
// recommendation was derived from.
type HistoricalPerformance struct {
	AvgCTR       float64 `json:"avg_ctr"`
	AvgCPC       float64 `json:"avg_cpc"`
	MedianBudget float64 `json:"median_budget"`
	SuccessRate  float64 `json:"success_rate"`
}

// BudgetRecommendation is the budget-tier answer for one role/industry query.
type BudgetRecommendation struct {
	Role           string                 `json:"role"`
	Industry       string                 `json:"industry,omitempty"`
	CampaignDays   int                    `json:"campaign_days"`
	BudgetTiers    map[string]BudgetTier  `json:"budget_tiers"`
	HistoricalData *HistoricalPerformance `json:"historical_data,omitempty"`
	Confidence     Confidence             `json:"confidence"`
	DataPoints     int                    `json:"data_points"`
	Note           string                 `json:"note,omitempty"`
}

// RoleBudgetComparison is one row of a multi-role budget comparison.
type RoleBudgetComparison struct {
	Role          string     `json:"role"`
	MinimumTotal  float64    `json:"minimum_total"`
	StandardTotal float64    `json:"standard_total"`
	PremiumTotal  float64    `json:"premium_total"`
	DataPoints    int        `json:"data_points"`
	Confidence    Confidence `json:"confidence"`
}

// IndustrySummary aggregates the loaded snapshot per industry.
type IndustrySummary struct {
	Industry       string   `json:"industry"`
	Roles          []string `json:"roles"`
	RoleCount      int      `json:"role_count"`
	TotalCampaigns int      `json:"total_campaigns"`
	TotalSpend     float64  `json:"total_spend"`
}
