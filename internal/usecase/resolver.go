package usecase

import (
	"context"
	"fmt"
	"math"
	"sort"

	"adrec/internal/domain"
)

// Resolver ranks known matching keys against a query by embedding cosine
// similarity. Candidate embeddings are computed once at construction; only the
// query embedding costs an external call afterwards.
type Resolver struct {
	embedder   domain.Embedder
	candidates []domain.MatchKey
	vectors    [][]float32
}

// NewResolver embeds every candidate key up front. A failing embedding call is
// a hard error: the engine cannot be built without the candidate vectors.
func NewResolver(ctx context.Context, embedder domain.Embedder, candidates []domain.MatchKey) (*Resolver, error) {
	keys := make([]domain.MatchKey, len(candidates))
	copy(keys, candidates)
	sort.Slice(keys, func(i, j int) bool { return keys[i] < keys[j] })

	inputs := make([]string, len(keys))
	for i, key := range keys {
		inputs[i] = string(key)
	}

	var vectors [][]float32
	if len(inputs) > 0 {
		var err error
		vectors, err = embedder.Embed(ctx, inputs)
		if err != nil {
			return nil, fmt.Errorf("failed to embed candidate keys: %w", err)
		}
		if len(vectors) != len(inputs) {
			return nil, fmt.Errorf("embedder returned %d vectors for %d candidates", len(vectors), len(inputs))
		}
	}

	return &Resolver{
		embedder:   embedder,
		candidates: keys,
		vectors:    vectors,
	}, nil
}

// Rank returns the top k candidates by cosine similarity to the query,
// score descending. Ties break on the key string so repeated queries always
// rank identically.
func (r *Resolver) Rank(ctx context.Context, query domain.MatchKey, k int) ([]domain.ScoredKey, error) {
	if len(r.candidates) == 0 || k <= 0 {
		return nil, nil
	}

	queryVecs, err := r.embedder.Embed(ctx, []string{string(query)})
	if err != nil {
		return nil, fmt.Errorf("failed to embed query %q: %w", query, err)
	}
	if len(queryVecs) != 1 {
		return nil, fmt.Errorf("embedder returned %d vectors for one query", len(queryVecs))
	}

	scored := make([]domain.ScoredKey, len(r.candidates))
	for i, key := range r.candidates {
		scored[i] = domain.ScoredKey{
			Key:   key,
			Score: cosineSimilarity(queryVecs[0], r.vectors[i]),
		}
	}

	sort.SliceStable(scored, func(i, j int) bool {
		if scored[i].Score != scored[j].Score {
			return scored[i].Score > scored[j].Score
		}
		return scored[i].Key < scored[j].Key
	})

	if k > len(scored) {
		k = len(scored)
	}
	return scored[:k], nil
}

func cosineSimilarity(a, b []float32) float64 {
	if len(a) == 0 || len(b) == 0 || len(a) != len(b) {
		return 0
	}
	var dot, na, nb float64
	for i := 0; i < len(a); i++ {
		x := float64(a[i])
		y := float64(b[i])
		dot += x * y
		na += x * x
		nb += y * y
	}
	if na == 0 || nb == 0 {
		return 0
	}
	return dot / (math.Sqrt(na) * math.Sqrt(nb))
}
