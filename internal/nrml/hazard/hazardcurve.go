package hazard

import (
	"fmt"
	"io"

	"github.com/couchcryptid/hazard-nrml-export/internal/domain"
	"github.com/couchcryptid/hazard-nrml-export/internal/nrml"
)

// HazardCurveWriter serializes a set of hazard curves sharing one
// intensity-measure-level axis.
type HazardCurveWriter struct {
	w    io.Writer
	md   nrml.Metadata
	imls []float64
}

// NewHazardCurveWriter validates the metadata and returns a writer targeting
// w. The IMLs are the x-axis values common to every curve in the document.
func NewHazardCurveWriter(w io.Writer, md nrml.Metadata, imls []float64) (*HazardCurveWriter, error) {
	if err := md.Validate(); err != nil {
		return nil, err
	}
	if len(imls) == 0 {
		return nil, &nrml.MetadataError{
			Kind:   nrml.MissingField,
			Reason: "hazard curves require intensity measure levels",
		}
	}
	return &HazardCurveWriter{w: w, md: md, imls: imls}, nil
}

// Serialize writes the curves, in input order, as one NRML document.
func (hcw *HazardCurveWriter) Serialize(curves []domain.HazardCurve) error {
	root := nrml.NewRoot()

	container := root.Child("hazardCurves")
	nrml.SetMetadataAttrs(container, hcw.md, nrml.MetadataAttrs)

	imls := container.Child("IMLs")
	imls.Text = nrml.FormatFloats(hcw.imls, " ")

	for _, curve := range curves {
		el := container.Child("hazardCurve")
		nrml.AppendLocation(el, curve.Location.Lon, curve.Location.Lat)
		poes := el.Child("poEs")
		poes.Text = nrml.FormatFloats(curve.PoEs, " ")
	}

	if err := root.WriteTo(hcw.w); err != nil {
		return fmt.Errorf("serialize hazard curves: %w", err)
	}
	return nil
}
