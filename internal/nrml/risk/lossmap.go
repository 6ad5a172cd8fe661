package risk

import (
	"fmt"
	"io"

	"github.com/couchcryptid/hazard-nrml-export/internal/domain"
	"github.com/couchcryptid/hazard-nrml-export/internal/nrml"
	"github.com/couchcryptid/hazard-nrml-export/internal/xmltree"
)

// LossMapWriter serializes a loss map: per-asset losses at a fixed
// probability of exceedance, grouped by site.
type LossMapWriter struct {
	w            io.Writer
	md           Metadata
	poe          float64
	lossCategory string
}

// NewLossMapWriter validates the metadata and returns a writer targeting w.
// The poe is the exceedance probability the losses were interpolated at;
// lossCategory ("", "economic", "population", ...) is optional.
func NewLossMapWriter(w io.Writer, md Metadata, poe float64, lossCategory string) (*LossMapWriter, error) {
	if err := md.validate(); err != nil {
		return nil, err
	}
	return &LossMapWriter{w: w, md: md, poe: poe, lossCategory: lossCategory}, nil
}

// Serialize writes the losses as one NRML document. Losses sharing a
// location collapse into a single map node, in first-seen order; the losses
// under each node keep input order.
func (mw *LossMapWriter) Serialize(losses []domain.Loss) error {
	if len(losses) == 0 {
		return ErrEmptyDocument
	}

	root := nrml.NewRoot()
	container := root.Child("lossMap")
	container.SetAttr("investigationTime", nrml.FormatFloat(mw.md.InvestigationTime))
	container.SetAttr("poE", nrml.FormatFloat(mw.poe))
	mw.setOptionalAttrs(container)

	nodes := make(map[domain.Location]*xmltree.Element)
	for _, loss := range losses {
		node, ok := nodes[loss.Location]
		if !ok {
			node = container.Child("node")
			nrml.AppendLocation(node, loss.Location.Lon, loss.Location.Lat)
			nodes[loss.Location] = node
		}

		el := node.Child("loss")
		el.SetAttr("assetRef", loss.AssetRef)
		el.SetAttr("value", nrml.FormatFloat(loss.Value))
	}

	if err := root.WriteTo(mw.w); err != nil {
		return fmt.Errorf("serialize loss map: %w", err)
	}
	return nil
}

func (mw *LossMapWriter) setOptionalAttrs(el *xmltree.Element) {
	if mw.md.SMLTPath != "" {
		el.SetAttr(nrml.SourceModelTreePathAttr, mw.md.SMLTPath)
	}
	if mw.md.GSIMLTPath != "" {
		el.SetAttr(nrml.GSIMTreePathAttr, mw.md.GSIMLTPath)
	}
	if mw.md.Statistics != "" {
		el.SetAttr("statistics", mw.md.Statistics)
	}
	if mw.md.QuantileValue != nil {
		el.SetAttr("quantileValue", nrml.FormatFloat(*mw.md.QuantileValue))
	}
	if mw.lossCategory != "" {
		el.SetAttr("lossCategory", mw.lossCategory)
	}
	if mw.md.Unit != "" {
		el.SetAttr("unit", mw.md.Unit)
	}
}
