package risk

import (
	"fmt"
	"io"
	"strings"

	"github.com/couchcryptid/hazard-nrml-export/internal/domain"
	"github.com/couchcryptid/hazard-nrml-export/internal/nrml"
)

// LossCurveWriter serializes per-asset loss exceedance curves.
type LossCurveWriter struct {
	w       io.Writer
	md      Metadata
	insured bool
}

// NewLossCurveWriter validates the metadata and returns a writer targeting
// w. Set insured for insured-loss curves; it becomes an attribute on the
// container.
func NewLossCurveWriter(w io.Writer, md Metadata, insured bool) (*LossCurveWriter, error) {
	if err := md.validate(); err != nil {
		return nil, err
	}
	return &LossCurveWriter{w: w, md: md, insured: insured}, nil
}

// Serialize writes the loss curves, in input order, as one NRML document.
func (lw *LossCurveWriter) Serialize(curves []domain.LossCurve) error {
	if len(curves) == 0 {
		return ErrEmptyDocument
	}

	root := nrml.NewRoot()
	container := root.Child("lossCurves")
	if lw.insured {
		container.SetAttr("insured", "true")
	}
	lw.md.setContainerAttrs(container)
	if lw.md.Unit != "" {
		container.SetAttr("unit", lw.md.Unit)
	}

	for _, curve := range curves {
		el := container.Child("lossCurve")
		nrml.AppendLocation(el, curve.Location.Lon, curve.Location.Lat)
		el.SetAttr("assetRef", curve.AssetRef)

		el.Child("poEs").Text = nrml.FormatFloats(curve.PoEs, " ")
		el.Child("losses").Text = nrml.FormatFloats(curve.Losses, " ")
		if curve.LossRatios != nil {
			el.Child("lossRatios").Text = nrml.FormatFloats(curve.LossRatios, " ")
		}
	}

	if err := root.WriteTo(lw.w); err != nil {
		return fmt.Errorf("serialize loss curves: %w", err)
	}
	return nil
}

// AggregateLossCurveWriter serializes the loss exceedance curve aggregated
// over the whole exposure.
type AggregateLossCurveWriter struct {
	w  io.Writer
	md Metadata
}

// NewAggregateLossCurveWriter validates the metadata and returns a writer
// targeting w.
func NewAggregateLossCurveWriter(w io.Writer, md Metadata) (*AggregateLossCurveWriter, error) {
	if err := md.validate(); err != nil {
		return nil, err
	}
	return &AggregateLossCurveWriter{w: w, md: md}, nil
}

// Serialize writes the aggregate curve as one NRML document. Losses render
// with four decimal places; the format's consumers were built against that
// rendering.
func (aw *AggregateLossCurveWriter) Serialize(curve *domain.AggregateLossCurve) error {
	if curve == nil {
		return ErrEmptyDocument
	}

	root := nrml.NewRoot()
	el := root.Child("aggregateLossCurve")
	aw.md.setContainerAttrs(el)
	if aw.md.Unit != "" {
		el.SetAttr("unit", aw.md.Unit)
	}

	el.Child("poEs").Text = nrml.FormatFloats(curve.PoEs, " ")

	losses := make([]string, len(curve.Losses))
	for i, l := range curve.Losses {
		losses[i] = fmt.Sprintf("%.4f", l)
	}
	el.Child("losses").Text = strings.Join(losses, " ")

	if err := root.WriteTo(aw.w); err != nil {
		return fmt.Errorf("serialize aggregate loss curve: %w", err)
	}
	return nil
}
