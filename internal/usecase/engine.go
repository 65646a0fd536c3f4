package usecase

import (
	"context"
	"fmt"
	"sort"
	"time"

	"adrec/internal/domain"
	"adrec/pkg/logger"
	"adrec/pkg/metrics"
)

const defaultCampaignDays = 30

// Engine answers recommendation queries against one immutable snapshot of
// campaign records. It is never mutated after construction; a data refresh
// means building a new engine.
type Engine struct {
	strategy domain.KeyStrategy
	stats    domain.StatsTable
	keys     []domain.MatchKey
	resolver *Resolver
	budget   *BudgetModel
	records  int
	builtAt  time.Time
	logger   *logger.Logger
	metrics  *metrics.Metrics
}

// NewEngine aggregates the records, embeds every known key for similarity
// lookups, and prepares the budget model. The embedding call makes this the
// only blocking step of engine construction.
func NewEngine(ctx context.Context, records []domain.CampaignRecord, strategy domain.KeyStrategy, embedder domain.Embedder, log *logger.Logger, m *metrics.Metrics) (*Engine, error) {
	table := BuildStatsTable(records, strategy, log)
	keys := SortedKeys(table)

	resolver, err := NewResolver(ctx, embedder, keys)
	if err != nil {
		return nil, fmt.Errorf("failed to build similarity resolver: %w", err)
	}

	return &Engine{
		strategy: strategy,
		stats:    table,
		keys:     keys,
		resolver: resolver,
		budget:   NewBudgetModel(records, strategy, log),
		records:  len(records),
		builtAt:  time.Now(),
		logger:   log,
		metrics:  m,
	}, nil
}

// Records reports how many campaign records the snapshot was built from.
func (e *Engine) Records() int { return e.records }

// BuiltAt reports when the snapshot was built.
func (e *Engine) BuiltAt() time.Time { return e.builtAt }

// KnownKeys returns every matching key in the statistics table.
func (e *Engine) KnownKeys() []domain.MatchKey {
	keys := make([]domain.MatchKey, len(e.keys))
	copy(keys, e.keys)
	return keys
}

// GetRecommendations resolves the query against the statistics table and
// derives channel stats, the suggested mix, and, when a budget is given,
// predicted outcomes. A query that resolves nowhere is not an error: the
// result carries source "none" and an explanation, with empty channels.
func (e *Engine) GetRecommendations(ctx context.Context, role, industry string, budget float64, campaignDays int) (*domain.Recommendation, error) {
	if campaignDays <= 0 {
		campaignDays = defaultCampaignDays
	}

	queryKey := e.strategy.QueryKey(role, industry)
	match, similar, err := resolveMatch(ctx, e.stats, e.keys, e.resolver, queryKey)
	if err != nil {
		return nil, err
	}

	rec := &domain.Recommendation{
		QueryRole:           role,
		QueryIndustry:       industry,
		DataSource:          match.Source,
		MatchedKey:          match.ResolvedKey,
		SimilarityScore:     match.SimilarityScore,
		Channels:            map[string]domain.ChannelStats{},
		SuggestedMix:        domain.ChannelMix{},
		Confidence:          match.Confidence,
		Explanation:         match.Explanation,
		SimilarCombinations: similar,
	}

	if e.metrics != nil {
		e.metrics.RecordRecommendation(string(match.Source), string(match.Confidence))
	}

	if match.Source == domain.MatchSourceNone {
		e.logger.WithContext(ctx).WithFields(map[string]any{
			"query_key": queryKey,
		}).Info("No matching data for query")
		return rec, nil
	}

	stats := e.stats[match.ResolvedKey]
	for platform, platformStats := range stats {
		rec.Channels[platform] = domain.ChannelStats{
			CTR:              round2(platformStats.CTR),
			CPC:              round2(platformStats.CPC),
			AvgSpend:         round0(platformStats.AvgSpend),
			CampaignsRun:     platformStats.Campaigns,
			PerformanceScore: PerformanceScore(platformStats),
		}
	}

	rec.SuggestedMix = AllocateMix(stats)

	if budget > 0 {
		rec.PredictedOutcomes = PredictOutcomes(stats, budget, campaignDays, rec.SuggestedMix)
	}

	e.logger.WithContext(ctx).WithFields(map[string]any{
		"query_key":   queryKey,
		"matched_key": match.ResolvedKey,
		"source":      match.Source,
		"confidence":  match.Confidence,
		"platforms":   len(rec.Channels),
	}).Info("Recommendation served")

	return rec, nil
}

// GetBudgetRecommendation derives budget tiers for a role and optional
// industry. Purely local: no embedding call involved.
func (e *Engine) GetBudgetRecommendation(ctx context.Context, role, industry string, campaignDays int) *domain.BudgetRecommendation {
	rec := e.budget.Recommend(role, industry, campaignDays)

	if e.metrics != nil {
		e.metrics.RecordBudgetQuery(string(rec.Confidence))
	}

	e.logger.WithContext(ctx).WithFields(map[string]any{
		"role":        role,
		"industry":    industry,
		"data_points": rec.DataPoints,
		"confidence":  rec.Confidence,
	}).Info("Budget recommendation served")

	return rec
}

// CompareBudgets returns budget tiers for several roles side by side.
func (e *Engine) CompareBudgets(roles []string, campaignDays int) []domain.RoleBudgetComparison {
	return e.budget.Compare(roles, campaignDays)
}

// Industries lists every industry present in the statistics table. Empty for
// role-only keyed engines.
func (e *Engine) Industries() []string {
	seen := make(map[string]bool)
	for _, key := range e.keys {
		if industry := key.Industry(); industry != "" {
			seen[industry] = true
		}
	}
	industries := make([]string, 0, len(seen))
	for industry := range seen {
		industries = append(industries, industry)
	}
	sort.Strings(industries)
	return industries
}

// RolesForIndustry lists the roles with statistics in one industry.
func (e *Engine) RolesForIndustry(industry string) []string {
	var roles []string
	for _, key := range e.keys {
		if key.Industry() == industry {
			roles = append(roles, key.Role())
		}
	}
	sort.Strings(roles)
	return roles
}

// IndustrySummary aggregates campaign counts and spend per industry across
// the statistics table.
func (e *Engine) IndustrySummary() []domain.IndustrySummary {
	type summary struct {
		roles     map[string]bool
		campaigns int
		spend     float64
	}
	byIndustry := make(map[string]*summary)

	for key, platforms := range e.stats {
		industry := key.Industry()
		if industry == "" {
			continue
		}
		s := byIndustry[industry]
		if s == nil {
			s = &summary{roles: make(map[string]bool)}
			byIndustry[industry] = s
		}
		s.roles[key.Role()] = true
		for _, platformStats := range platforms {
			s.campaigns += platformStats.Campaigns
			s.spend += platformStats.TotalSpend
		}
	}

	summaries := make([]domain.IndustrySummary, 0, len(byIndustry))
	for industry, s := range byIndustry {
		roles := make([]string, 0, len(s.roles))
		for role := range s.roles {
			roles = append(roles, role)
		}
		sort.Strings(roles)
		summaries = append(summaries, domain.IndustrySummary{
			Industry:       industry,
			Roles:          roles,
			RoleCount:      len(roles),
			TotalCampaigns: s.campaigns,
			TotalSpend:     s.spend,
		})
	}
	sort.Slice(summaries, func(i, j int) bool {
		if summaries[i].TotalCampaigns != summaries[j].TotalCampaigns {
			return summaries[i].TotalCampaigns > summaries[j].TotalCampaigns
		}
		return summaries[i].Industry < summaries[j].Industry
	})
	return summaries
}
