package hazard

import (
	"fmt"
	"io"

	"github.com/couchcryptid/hazard-nrml-export/internal/domain"
	"github.com/couchcryptid/hazard-nrml-export/internal/nrml"
)

// HazardMapWriter serializes a hazard map: a flat list of (lon, lat, iml)
// triples under one metadata-bearing container.
type HazardMapWriter struct {
	w  io.Writer
	md nrml.Metadata
}

// NewHazardMapWriter validates the metadata and returns a writer targeting w.
func NewHazardMapWriter(w io.Writer, md nrml.Metadata) (*HazardMapWriter, error) {
	if err := md.Validate(); err != nil {
		return nil, err
	}
	return &HazardMapWriter{w: w, md: md}, nil
}

// Serialize writes the map nodes, in input order, as one NRML document.
func (hmw *HazardMapWriter) Serialize(nodes []domain.HazardMapNode) error {
	root := nrml.NewRoot()

	container := root.Child("hazardMap")
	nrml.SetMetadataAttrs(container, hmw.md, nrml.MetadataAttrs)

	for _, n := range nodes {
		el := container.Child("node")
		el.SetAttr("lon", nrml.FormatFloat(n.Lon))
		el.SetAttr("lat", nrml.FormatFloat(n.Lat))
		el.SetAttr("iml", nrml.FormatFloat(n.IML))
	}

	if err := root.WriteTo(hmw.w); err != nil {
		return fmt.Errorf("serialize hazard map: %w", err)
	}
	return nil
}
