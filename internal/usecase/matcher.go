package usecase

import (
	"context"
	"fmt"

	"adrec/internal/domain"
)

const (
	// A similarity match is accepted only when the top candidate scores
	// strictly above this threshold.
	similarityThreshold = 0.7

	// Confidence bands for accepted similarity matches.
	similarityHighCutoff   = 0.85
	similarityMediumCutoff = 0.75

	// How many similar combinations queries report back.
	similarTopK = 5
)

// resolveMatch runs the tiered fallback: exact key, then semantic similarity,
// then role-only, then none. The ordering trades confidence for coverage
// monotonically. The ranked similar keys are returned alongside the result
// since callers surface them even on an exact match.
func resolveMatch(ctx context.Context, table domain.StatsTable, keys []domain.MatchKey, resolver *Resolver, queryKey domain.MatchKey) (domain.MatchResult, []domain.ScoredKey, error) {
	result := domain.MatchResult{
		QueryKey: queryKey,
		Source:   domain.MatchSourceNone,
	}

	similar, err := resolver.Rank(ctx, queryKey, similarTopK)
	if err != nil {
		return result, nil, err
	}

	if _, ok := table[queryKey]; ok {
		result.Source = domain.MatchSourceExact
		result.ResolvedKey = queryKey
		result.SimilarityScore = 1.0
		result.Confidence = domain.ConfidenceHigh
		return result, similar, nil
	}

	if len(similar) > 0 && similar[0].Score > similarityThreshold {
		top := similar[0]
		result.Source = domain.MatchSourceSimilarity
		result.ResolvedKey = top.Key
		result.SimilarityScore = top.Score
		result.Confidence = similarityConfidence(top.Score)
		result.Explanation = fmt.Sprintf("Baserat på: %s (%.0f%% likhet)", top.Key, top.Score*100)
		return result, similar, nil
	}

	// Same role in another industry. The role component must match exactly:
	// a prefix match would let "Chef" pick up "Chefsassistent" statistics.
	role := queryKey.Role()
	for _, key := range keys {
		if key.Role() == role {
			result.Source = domain.MatchSourceRoleOnly
			result.ResolvedKey = key
			result.Confidence = domain.ConfidenceLow
			result.Explanation = fmt.Sprintf("Baserat på %s i annan bransch", role)
			return result, similar, nil
		}
	}

	result.Explanation = "Ingen matchande data hittades"
	return result, similar, nil
}

func similarityConfidence(score float64) domain.Confidence {
	switch {
	case score > similarityHighCutoff:
		return domain.ConfidenceHigh
	case score > similarityMediumCutoff:
		return domain.ConfidenceMedium
	default:
		return domain.ConfidenceLow
	}
}
