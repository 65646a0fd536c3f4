package usecase

import (
	"sort"

	"adrec/internal/domain"
	"adrec/pkg/logger"
)

// BuildStatsTable reduces raw campaign records into per-(key, platform)
// aggregates. A (key, platform) group makes it into the table only when its
// summed impressions and clicks are both positive; everything derived later
// (CTR, CPC, predictions) relies on that guard. Dropped groups mean "no data",
// not "zero performance".
func BuildStatsTable(records []domain.CampaignRecord, strategy domain.KeyStrategy, log *logger.Logger) domain.StatsTable {
	type group struct {
		impressions int64
		clicks      int64
		spend       float64
		campaigns   int
	}

	groups := make(map[domain.MatchKey]map[string]*group)
	for _, rec := range records {
		if rec.Role == "" || rec.Platform == "" {
			continue
		}
		key := strategy.RecordKey(rec)
		if groups[key] == nil {
			groups[key] = make(map[string]*group)
		}
		g := groups[key][rec.Platform]
		if g == nil {
			g = &group{}
			groups[key][rec.Platform] = g
		}
		g.impressions += rec.Impressions
		g.clicks += rec.Clicks
		g.spend += rec.Spend
		g.campaigns++
	}

	table := make(domain.StatsTable, len(groups))
	dropped := 0
	for key, platforms := range groups {
		for platform, g := range platforms {
			if g.impressions <= 0 || g.clicks <= 0 {
				dropped++
				continue
			}
			if table[key] == nil {
				table[key] = make(map[string]domain.PlatformStats, len(platforms))
			}
			table[key][platform] = domain.PlatformStats{
				CTR:         float64(g.clicks) / float64(g.impressions) * 100,
				CPC:         g.spend / float64(g.clicks),
				AvgSpend:    g.spend / float64(g.campaigns),
				TotalSpend:  g.spend,
				Campaigns:   g.campaigns,
				Clicks:      g.clicks,
				Impressions: g.impressions,
			}
		}
	}

	if log != nil {
		log.WithFields(map[string]any{
			"records":        len(records),
			"keys":           len(table),
			"dropped_groups": dropped,
			"key_strategy":   strategy.Name(),
		}).Info("Built statistics table")
	}

	return table
}

// SortedKeys returns the table's matching keys in a stable order.
func SortedKeys(table domain.StatsTable) []domain.MatchKey {
	keys := make([]domain.MatchKey, 0, len(table))
	for key := range table {
		keys = append(keys, key)
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i] < keys[j] })
	return keys
}
