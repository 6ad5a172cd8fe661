package domain

// LossCurve is one asset's loss exceedance curve. PoEs, Losses, and the
// optional LossRatios are indexed coherently: the loss at index i belongs to
// the probability of exceedance at index i.
type LossCurve struct {
	Location   Location  `json:"location"`
	AssetRef   string    `json:"asset_ref"`
	PoEs       []float64 `json:"poes"`
	Losses     []float64 `json:"losses"`
	LossRatios []float64 `json:"loss_ratios,omitempty"`
}

// AggregateLossCurve is the loss exceedance curve aggregated over the whole
// exposure.
type AggregateLossCurve struct {
	PoEs   []float64 `json:"poes"`
	Losses []float64 `json:"losses"`
}

// Loss is one asset's loss value at a fixed probability of exceedance, as
// found in a loss map. Losses sharing a location are grouped under one map
// node by the writer.
type Loss struct {
	Location Location `json:"location"`
	AssetRef string   `json:"asset_ref"`
	Value    float64  `json:"value"`
}
