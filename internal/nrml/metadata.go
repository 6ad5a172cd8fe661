package nrml

// Statistics vocabulary for statistical hazard results.
const (
	StatisticsMean     = "mean"
	StatisticsQuantile = "quantile"
)

// IMTSA is the spectral-acceleration intensity measure type, the one IMT
// that requires period and damping metadata.
const IMTSA = "SA"

// Metadata describes the calculation that produced a set of results. The
// shape is shared by hazard curves, hazard maps, and disaggregation
// histograms; which fields are populated depends on the result kind.
//
// String fields use "" for absent; numeric fields use nil pointers so a
// legitimate zero (e.g. poe = 0) stays distinguishable from absent.
type Metadata struct {
	Statistics    string
	QuantileValue *float64

	// SMLTPath and GSIMLTPath identify the source-model and ground-shaking
	// logic-tree branches of a single realization. They are required when
	// Statistics is absent and forbidden when it is present.
	SMLTPath   string
	GSIMLTPath string

	IMT       string
	SAPeriod  *float64
	SADamping *float64

	InvestigationTime *float64
	PoE               *float64
	Lon               *float64
	Lat               *float64
}

// Validate checks the cross-field consistency rules shared by every result
// kind carrying statistics / logic-tree-path metadata:
//
//   - statistics and logic-tree paths are mutually exclusive and jointly
//     exhaustive;
//   - statistics, when present, is "mean" or "quantile";
//   - a quantile value accompanies quantile statistics and nothing else;
//   - IMT "SA" requires both period and damping.
//
// The returned error is always a *MetadataError.
func (m Metadata) Validate() error {
	if m.Statistics != "" && (m.SMLTPath != "" || m.GSIMLTPath != "") {
		return &MetadataError{
			Kind:   InvalidCombination,
			Reason: "cannot specify both statistics and logic tree paths",
		}
	}

	if m.Statistics != "" {
		if m.Statistics != StatisticsMean && m.Statistics != StatisticsQuantile {
			return &MetadataError{
				Kind:   InvalidCombination,
				Reason: "statistics must be either \"mean\" or \"quantile\"",
			}
		}
	} else if m.SMLTPath == "" || m.GSIMLTPath == "" {
		return &MetadataError{
			Kind:   MissingField,
			Reason: "both logic tree paths are required for non-statistical results",
		}
	}

	if m.Statistics == StatisticsQuantile && m.QuantileValue == nil {
		return &MetadataError{
			Kind:   MissingField,
			Reason: "quantile statistics require a quantile value",
		}
	}
	if m.Statistics != StatisticsQuantile && m.QuantileValue != nil {
		return &MetadataError{
			Kind:   InvalidCombination,
			Reason: "quantile value is only allowed with quantile statistics",
		}
	}

	if m.IMT == IMTSA {
		if m.SAPeriod == nil {
			return &MetadataError{Kind: MissingField, Reason: "saPeriod is required for IMT \"SA\""}
		}
		if m.SADamping == nil {
			return &MetadataError{Kind: MissingField, Reason: "saDamping is required for IMT \"SA\""}
		}
	}

	return nil
}

// Float returns a pointer to v, for building optional metadata fields.
func Float(v float64) *float64 {
	return &v
}
