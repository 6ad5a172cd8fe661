package domain

import (
	"encoding/json"
	"fmt"
	"time"
)

// Result-bundle kinds. Each kind names one writer and fixes the payload shape.
const (
	KindHazardCurves       = "hazard_curves"
	KindHazardMap          = "hazard_map"
	KindGMFEventBased      = "gmf_event_based"
	KindGMFScenario        = "gmf_scenario"
	KindSES                = "ses"
	KindDisagg             = "disagg"
	KindLossCurves         = "loss_curves"
	KindAggregateLossCurve = "aggregate_loss_curve"
	KindLossMap            = "loss_map"
)

// Kinds lists every supported bundle kind.
var Kinds = []string{
	KindHazardCurves,
	KindHazardMap,
	KindGMFEventBased,
	KindGMFScenario,
	KindSES,
	KindDisagg,
	KindLossCurves,
	KindAggregateLossCurve,
	KindLossMap,
}

// BundleMetadata is the JSON form of the descriptive metadata an upstream
// calculator attaches to its results. It is the union of the fields used by
// the individual writers; which ones must be present depends on the kind.
type BundleMetadata struct {
	Statistics    string   `json:"statistics,omitempty"`
	QuantileValue *float64 `json:"quantile_value,omitempty"`
	SMLTPath      string   `json:"smlt_path,omitempty"`
	GSIMLTPath    string   `json:"gsimlt_path,omitempty"`

	IMT       string   `json:"imt,omitempty"`
	SAPeriod  *float64 `json:"sa_period,omitempty"`
	SADamping *float64 `json:"sa_damping,omitempty"`

	InvestigationTime *float64 `json:"investigation_time,omitempty"`
	PoE               *float64 `json:"poe,omitempty"`
	Lon               *float64 `json:"lon,omitempty"`
	Lat               *float64 `json:"lat,omitempty"`

	// Hazard-curve x-axis, shared by every curve in the document.
	IMLs []float64 `json:"imls,omitempty"`

	// Disaggregation axis definitions.
	MagBinEdges         []float64 `json:"mag_bin_edges,omitempty"`
	DistBinEdges        []float64 `json:"dist_bin_edges,omitempty"`
	LonBinEdges         []float64 `json:"lon_bin_edges,omitempty"`
	LatBinEdges         []float64 `json:"lat_bin_edges,omitempty"`
	EpsBinEdges         []float64 `json:"eps_bin_edges,omitempty"`
	TectonicRegionTypes []string  `json:"tectonic_region_types,omitempty"`

	// Risk-writer extras.
	Unit         string `json:"unit,omitempty"`
	Insured      bool   `json:"insured,omitempty"`
	LossCategory string `json:"loss_category,omitempty"`
}

// Bundle is the envelope an upstream calculation stage hands to the export
// layer: one result kind, its metadata, and the kind-specific payload.
type Bundle struct {
	Kind        string          `json:"kind"`
	GeneratedAt time.Time       `json:"generated_at,omitzero"`
	Metadata    BundleMetadata  `json:"metadata"`
	Payload     json.RawMessage `json:"payload"`
}

// NewBundle assembles a bundle around an already-marshaled payload, stamping
// GeneratedAt from the package clock.
func NewBundle(kind string, md BundleMetadata, payload any) (Bundle, error) {
	raw, err := json.Marshal(payload)
	if err != nil {
		return Bundle{}, fmt.Errorf("marshal %s payload: %w", kind, err)
	}
	return Bundle{
		Kind:        kind,
		GeneratedAt: clock.Now().UTC(),
		Metadata:    md,
		Payload:     raw,
	}, nil
}

// DecodeBundle parses a bundle envelope and checks that the kind is known
// and a payload is present. Payload contents are decoded later, per kind.
func DecodeBundle(data []byte) (Bundle, error) {
	var b Bundle
	if err := json.Unmarshal(data, &b); err != nil {
		return Bundle{}, fmt.Errorf("parse result bundle: %w", err)
	}
	if !knownKind(b.Kind) {
		return Bundle{}, fmt.Errorf("unknown result kind %q", b.Kind)
	}
	if len(b.Payload) == 0 {
		return Bundle{}, fmt.Errorf("result bundle %q has no payload", b.Kind)
	}
	return b, nil
}

// DecodePayload unmarshals the kind-specific payload into out.
func (b Bundle) DecodePayload(out any) error {
	if err := json.Unmarshal(b.Payload, out); err != nil {
		return fmt.Errorf("parse %s payload: %w", b.Kind, err)
	}
	return nil
}

func knownKind(kind string) bool {
	for _, k := range Kinds {
		if k == kind {
			return true
		}
	}
	return false
}
