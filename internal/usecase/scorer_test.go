package usecase

import (
	"testing"

	"adrec/internal/domain"

	"github.com/stretchr/testify/assert"
)

func TestPerformanceScore(t *testing.T) {
	cases := []struct {
		name  string
		stats domain.PlatformStats
		want  float64
	}{
		{"balanced", domain.PlatformStats{CTR: 3.0, CPC: 20}, 60.0},
		{"weak", domain.PlatformStats{CTR: 1.0, CPC: 40}, 20.0},
		{"ctr capped at ceiling", domain.PlatformStats{CTR: 10.0, CPC: 0}, 100.0},
		{"cpc floored at zero", domain.PlatformStats{CTR: 0, CPC: 500}, 0.0},
		{"perfect", domain.PlatformStats{CTR: 5.0, CPC: 0}, 100.0},
		{"rounded to one decimal", domain.PlatformStats{CTR: 2.37, CPC: 13.3}, 57.8},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.InDelta(t, tc.want, PerformanceScore(tc.stats), 1e-9)
		})
	}
}

func TestPerformanceScore_Deterministic(t *testing.T) {
	stats := domain.PlatformStats{CTR: 2.71828, CPC: 31.41592}
	first := PerformanceScore(stats)
	for i := 0; i < 100; i++ {
		assert.Equal(t, first, PerformanceScore(stats))
	}
}

func TestAllocateMix(t *testing.T) {
	strong := domain.PlatformStats{CTR: 4.0, CPC: 10}
	medium := domain.PlatformStats{CTR: 2.0, CPC: 25}
	weak := domain.PlatformStats{CTR: 0.5, CPC: 45}

	t.Run("empty", func(t *testing.T) {
		assert.Empty(t, AllocateMix(map[string]domain.PlatformStats{}))
	})

	t.Run("single platform gets everything", func(t *testing.T) {
		mix := AllocateMix(map[string]domain.PlatformStats{"Facebook": strong})
		assert.Equal(t, domain.ChannelMix{"Facebook": 100}, mix)
	})

	t.Run("two platforms split 70/30", func(t *testing.T) {
		mix := AllocateMix(map[string]domain.PlatformStats{
			"Facebook": medium,
			"LinkedIn": strong,
		})
		assert.Equal(t, domain.ChannelMix{"LinkedIn": 70, "Facebook": 30}, mix)
	})

	t.Run("three platforms split 60/30/10", func(t *testing.T) {
		mix := AllocateMix(map[string]domain.PlatformStats{
			"Indeed":   weak,
			"Facebook": medium,
			"LinkedIn": strong,
		})
		assert.Equal(t, domain.ChannelMix{"LinkedIn": 60, "Facebook": 30, "Indeed": 10}, mix)
	})

	t.Run("fourth platform gets nothing", func(t *testing.T) {
		mix := AllocateMix(map[string]domain.PlatformStats{
			"Indeed":    weak,
			"Facebook":  medium,
			"LinkedIn":  strong,
			"Instagram": {CTR: 0.2, CPC: 49},
		})
		assert.Len(t, mix, 3)
		_, ok := mix["Instagram"]
		assert.False(t, ok)
	})

	t.Run("mix always sums to 100", func(t *testing.T) {
		stats := map[string]domain.PlatformStats{}
		platforms := []string{"A", "B", "C", "D", "E"}
		for i, platform := range platforms {
			stats[platform] = domain.PlatformStats{CTR: float64(i + 1), CPC: float64(50 - i*10)}
			mix := AllocateMix(stats)
			total := 0
			for _, pct := range mix {
				total += pct
			}
			assert.Equal(t, 100, total, "with %d platforms", i+1)
		}
	})
}

func TestAllocateMix_TieBreaksOnName(t *testing.T) {
	same := domain.PlatformStats{CTR: 2.0, CPC: 20}
	mix := AllocateMix(map[string]domain.PlatformStats{
		"Beta":  same,
		"Alpha": same,
	})
	assert.Equal(t, domain.ChannelMix{"Alpha": 70, "Beta": 30}, mix)
}

func TestRoundingHelpers(t *testing.T) {
	assert.Equal(t, 3.0, round0(2.5))
	assert.Equal(t, 2.0, round0(2.4))
	assert.Equal(t, 2.7, round1(2.71))
	assert.Equal(t, 3.14, round2(3.14159))
	assert.Equal(t, 120.0, roundTo10(123.0))
	assert.Equal(t, 130.0, roundTo10(125.0))
}
