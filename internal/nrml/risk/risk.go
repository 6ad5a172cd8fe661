// Package risk serializes loss results to NRML XML: per-asset loss
// exceedance curves, the whole-exposure aggregate curve, and loss maps.
// Writers follow the same one-construction, one-Serialize discipline as the
// hazard writers and share their metadata validation rules.
package risk

import (
	"errors"

	"github.com/couchcryptid/hazard-nrml-export/internal/nrml"
	"github.com/couchcryptid/hazard-nrml-export/internal/xmltree"
)

// ErrEmptyDocument is returned when Serialize is given no input: the NRML
// schema does not allow empty loss documents.
var ErrEmptyDocument = errors.New("an empty document is not supported by the schema")

// Metadata describes the calculation that produced a set of loss results.
type Metadata struct {
	InvestigationTime float64

	// Statistics / logic-tree fields follow the shared hazard rules:
	// statistics xor both paths, quantile value iff quantile statistics.
	Statistics    string
	QuantileValue *float64
	SMLTPath      string
	GSIMLTPath    string

	// Unit describes how asset values were measured.
	Unit string
}

// validate applies the shared statistics / logic-tree consistency rules.
func (m Metadata) validate() error {
	md := nrml.Metadata{
		Statistics:    m.Statistics,
		QuantileValue: m.QuantileValue,
		SMLTPath:      m.SMLTPath,
		GSIMLTPath:    m.GSIMLTPath,
	}
	return md.Validate()
}

// setContainerAttrs sets the metadata attributes common to the loss-curve
// and loss-map containers.
func (m Metadata) setContainerAttrs(el *xmltree.Element) {
	el.SetAttr("investigationTime", nrml.FormatFloat(m.InvestigationTime))
	if m.SMLTPath != "" {
		el.SetAttr(nrml.SourceModelTreePathAttr, m.SMLTPath)
	}
	if m.GSIMLTPath != "" {
		el.SetAttr(nrml.GSIMTreePathAttr, m.GSIMLTPath)
	}
	if m.Statistics != "" {
		el.SetAttr("statistics", m.Statistics)
	}
	if m.QuantileValue != nil {
		el.SetAttr("quantileValue", nrml.FormatFloat(*m.QuantileValue))
	}
}
