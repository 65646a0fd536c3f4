package usecase

import (
	"math"
	"sort"

	"adrec/internal/domain"
)

const (
	// Practical ceilings the raw metrics are normalized against: a 5% CTR or
	// a free click both count as a perfect 100.
	ctrCeiling = 5.0
	cpcCeiling = 50.0

	// CTR carries more weight than CPC: engagement is the primary signal for
	// recruitment ads, cost efficiency secondary.
	ctrWeight = 0.6
	cpcWeight = 0.4
)

// PerformanceScore folds CTR and CPC into a single 0-100 score. Fixed
// heuristic: identical inputs always produce the identical score.
func PerformanceScore(stats domain.PlatformStats) float64 {
	ctrScore := math.Min(stats.CTR/ctrCeiling*100, 100)
	cpcScore := math.Max(0, 100-stats.CPC/cpcCeiling*100)
	return round1(ctrScore*ctrWeight + cpcScore*cpcWeight)
}

// AllocateMix converts per-platform scores into the discrete budget split:
// 100, 70/30, or 60/30/10. Platforms beyond the third get nothing. The coarse
// tiers deliberately ignore small score differences between closely ranked
// platforms, which are mostly noise at these sample sizes.
func AllocateMix(stats map[string]domain.PlatformStats) domain.ChannelMix {
	if len(stats) == 0 {
		return domain.ChannelMix{}
	}

	ranked := rankPlatforms(stats)

	mix := domain.ChannelMix{}
	switch len(ranked) {
	case 1:
		mix[ranked[0]] = 100
	case 2:
		mix[ranked[0]] = 70
		mix[ranked[1]] = 30
	default:
		mix[ranked[0]] = 60
		mix[ranked[1]] = 30
		mix[ranked[2]] = 10
	}
	return mix
}

// rankPlatforms orders platforms by performance score descending, with the
// platform name as a fixed secondary key so ranking never depends on map
// iteration order.
func rankPlatforms(stats map[string]domain.PlatformStats) []string {
	platforms := make([]string, 0, len(stats))
	for platform := range stats {
		platforms = append(platforms, platform)
	}
	sort.Slice(platforms, func(i, j int) bool {
		si := PerformanceScore(stats[platforms[i]])
		sj := PerformanceScore(stats[platforms[j]])
		if si != sj {
			return si > sj
		}
		return platforms[i] < platforms[j]
	})
	return platforms
}

func round0(v float64) float64 { return math.Round(v) }

func round1(v float64) float64 { return math.Round(v*10) / 10 }

func round2(v float64) float64 { return math.Round(v*100) / 100 }

// roundTo10 rounds to the nearest 10 currency units.
func roundTo10(v float64) float64 { return math.Round(v/10) * 10 }
