package hazard

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/couchcryptid/hazard-nrml-export/internal/domain"
	"github.com/couchcryptid/hazard-nrml-export/internal/nrml"
)

// DisaggMetadata extends the shared result metadata with the bin-edge
// sequences defining each possible disaggregation axis. Only the axes
// actually referenced by a result's dimension labels need to be supplied.
type DisaggMetadata struct {
	nrml.Metadata

	MagBinEdges         []float64
	DistBinEdges        []float64
	LonBinEdges         []float64
	LatBinEdges         []float64
	EpsBinEdges         []float64
	TectonicRegionTypes []string
}

// binEdgeAttr binds one axis's bin-edge metadata to its container attribute
// and to the dimension label that references it.
type binEdgeAttr struct {
	label string // dimension label, e.g. "Dist"
	field string // metadata key, e.g. "dist_bin_edges"; named in errors
	attr  string // output attribute, e.g. "distBinEdges"
	value func(DisaggMetadata) (string, bool)
}

func floatEdges(get func(DisaggMetadata) []float64) func(DisaggMetadata) (string, bool) {
	return func(md DisaggMetadata) (string, bool) {
		edges := get(md)
		if edges == nil {
			return "", false
		}
		return nrml.FormatFloats(edges, ", "), true
	}
}

// binEdgeAttrs is ordered: it fixes the attribute order on the container.
var binEdgeAttrs = []binEdgeAttr{
	{domain.DimMag, "mag_bin_edges", "magBinEdges",
		floatEdges(func(md DisaggMetadata) []float64 { return md.MagBinEdges })},
	{domain.DimDist, "dist_bin_edges", "distBinEdges",
		floatEdges(func(md DisaggMetadata) []float64 { return md.DistBinEdges })},
	{domain.DimLon, "lon_bin_edges", "lonBinEdges",
		floatEdges(func(md DisaggMetadata) []float64 { return md.LonBinEdges })},
	{domain.DimLat, "lat_bin_edges", "latBinEdges",
		floatEdges(func(md DisaggMetadata) []float64 { return md.LatBinEdges })},
	{domain.DimEps, "eps_bin_edges", "epsBinEdges",
		floatEdges(func(md DisaggMetadata) []float64 { return md.EpsBinEdges })},
	{domain.DimTRT, "tectonic_region_types", "tectonicRegionTypes",
		func(md DisaggMetadata) (string, bool) {
			if md.TectonicRegionTypes == nil {
				return "", false
			}
			return strings.Join(md.TectonicRegionTypes, ", "), true
		}},
}

// DisaggWriter serializes disaggregation histograms. The shared metadata is
// validated at construction; bin-edge completeness is checked per result at
// Serialize time, since it depends on each result's dimension labels.
type DisaggWriter struct {
	w  io.Writer
	md DisaggMetadata
}

// NewDisaggWriter validates the shared metadata and returns a writer
// targeting w.
func NewDisaggWriter(w io.Writer, md DisaggMetadata) (*DisaggWriter, error) {
	if err := md.Validate(); err != nil {
		return nil, err
	}
	return &DisaggWriter{w: w, md: md}, nil
}

// Serialize writes the disaggregation results, in input order, as one NRML
// document. A result referencing an axis with no bin-edge metadata, or
// carrying a matrix whose values do not match its shape, aborts the whole
// call.
func (dw *DisaggWriter) Serialize(results []domain.DisaggResult) error {
	root := nrml.NewRoot()

	container := root.Child("disaggMatrices")
	nrml.SetMetadataAttrs(container, dw.md.Metadata, nrml.MetadataAttrs)
	for _, edge := range binEdgeAttrs {
		if v, ok := edge.value(dw.md); ok {
			container.SetAttr(edge.attr, v)
		}
	}

	for _, result := range results {
		if err := dw.checkBinEdges(result.DimLabels); err != nil {
			return err
		}
		if err := result.Matrix.Check(); err != nil {
			return fmt.Errorf("disaggregation matrix [%s]: %w",
				strings.Join(result.DimLabels, ","), err)
		}
		if len(result.DimLabels) != len(result.Matrix.Shape) {
			return fmt.Errorf("disaggregation result has %d dimension labels for a %d-dimensional matrix",
				len(result.DimLabels), len(result.Matrix.Shape))
		}

		el := container.Child("disaggMatrix")
		el.SetAttr("type", strings.Join(result.DimLabels, ","))
		el.SetAttr("dims", nrml.FormatInts(result.Matrix.Shape, ","))
		el.SetAttr("poE", nrml.FormatFloat(result.PoE))
		el.SetAttr("iml", nrml.FormatFloat(result.IML))

		result.Matrix.Cells(func(index []int, value float64) {
			prob := el.Child("prob")
			prob.SetAttr("index", nrml.FormatInts(index, ","))
			prob.SetAttr("value", nrml.FormatFloat(value))
		})
	}

	if err := root.WriteTo(dw.w); err != nil {
		return fmt.Errorf("serialize disaggregation matrices: %w", err)
	}
	return nil
}

// checkBinEdges asserts that every dimension label maps to a bin-edge
// sequence present in the metadata.
func (dw *DisaggWriter) checkBinEdges(dimLabels []string) error {
	for _, label := range dimLabels {
		edge, ok := lookupBinEdge(label)
		if !ok {
			return fmt.Errorf("unknown dimension label %s", strconv.Quote(label))
		}
		if _, present := edge.value(dw.md); !present {
			return &nrml.MissingBinEdgesError{Field: edge.field}
		}
	}
	return nil
}

func lookupBinEdge(label string) (binEdgeAttr, bool) {
	for _, edge := range binEdgeAttrs {
		if edge.label == label {
			return edge, true
		}
	}
	return binEdgeAttr{}, false
}
