package domain

import "context"

// Embedder turns texts into vectors. The similarity resolver is the only
// caller; implementations live in infrastructure so tests can stub them.
// Returned vectors are ordered like the inputs.
type Embedder interface {
	Embed(ctx context.Context, inputs []string) ([][]float32, error)
}

// CampaignSource delivers the cleaned canonical campaign records produced by
// the external data-prep pipeline.
type CampaignSource interface {
	FetchCampaigns(ctx context.Context) ([]CampaignRecord, error)
}
