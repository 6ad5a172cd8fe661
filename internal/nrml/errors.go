package nrml

import "fmt"

// MetadataErrorKind classifies what went wrong with a writer's metadata.
type MetadataErrorKind string

const (
	// InvalidCombination means mutually exclusive fields were supplied
	// together, or a field carries a value outside its vocabulary.
	InvalidCombination MetadataErrorKind = "invalid combination"
	// MissingField means a conditionally required field is absent.
	MissingField MetadataErrorKind = "missing field"
)

// MetadataError reports invalid, missing, or contradictory writer metadata.
// It is raised at writer construction, before any result data is touched.
type MetadataError struct {
	Kind   MetadataErrorKind
	Reason string
}

func (e *MetadataError) Error() string {
	return fmt.Sprintf("invalid metadata (%s): %s", e.Kind, e.Reason)
}

// InvalidGeometryError reports a malformed rupture mesh: empty grids, ragged
// rows, or lon/lat/depth grids whose dimensions do not match.
type InvalidGeometryError struct {
	Reason string
}

func (e *InvalidGeometryError) Error() string {
	return "invalid rupture mesh: " + e.Reason
}

// MissingBinEdgesError reports a disaggregation result whose dimension labels
// reference an axis with no bin-edge metadata. Field is the metadata key of
// the absent bin-edge sequence, e.g. "dist_bin_edges".
type MissingBinEdgesError struct {
	Field string
}

func (e *MissingBinEdgesError) Error() string {
	return fmt.Sprintf("writer is missing %q metadata", e.Field)
}
