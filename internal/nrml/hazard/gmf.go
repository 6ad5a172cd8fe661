package hazard

import (
	"fmt"
	"io"

	"github.com/couchcryptid/hazard-nrml-export/internal/domain"
	"github.com/couchcryptid/hazard-nrml-export/internal/nrml"
	"github.com/couchcryptid/hazard-nrml-export/internal/xmltree"
)

// EventBasedGMFWriter serializes ground-motion field sets produced by an
// event-based calculation, one set per investigation time window.
type EventBasedGMFWriter struct {
	w          io.Writer
	smltPath   string
	gsimltPath string
}

// NewEventBasedGMFWriter returns a writer targeting w. The two logic-tree
// paths identify the realization the fields belong to; leave both empty for
// a complete-logic-tree aggregate, which is emitted without a collection
// wrapper and is expected to hold exactly one set.
func NewEventBasedGMFWriter(w io.Writer, smltPath, gsimltPath string) *EventBasedGMFWriter {
	return &EventBasedGMFWriter{w: w, smltPath: smltPath, gsimltPath: gsimltPath}
}

// Serialize writes the GMF sets, in input order, as one NRML document.
func (gw *EventBasedGMFWriter) Serialize(sets []domain.GMFSet) error {
	root := nrml.NewRoot()
	container := wrapCollection(root, "gmfCollection", gw.smltPath, gw.gsimltPath)

	for _, set := range sets {
		setEl := container.Child("gmfSet")
		setEl.SetAttr("investigationTime", nrml.FormatFloat(set.InvestigationTime))
		for _, gmf := range set.GMFs {
			appendGMF(setEl, gmf)
		}
	}

	if err := root.WriteTo(gw.w); err != nil {
		return fmt.Errorf("serialize ground motion fields: %w", err)
	}
	return nil
}

// ScenarioGMFWriter serializes the ground-motion fields of a scenario
// calculation: a single flat gmfSet, never wrapped in a collection.
type ScenarioGMFWriter struct {
	w io.Writer
}

// NewScenarioGMFWriter returns a writer targeting w.
func NewScenarioGMFWriter(w io.Writer) *ScenarioGMFWriter {
	return &ScenarioGMFWriter{w: w}
}

// Serialize writes the fields, in input order, as one NRML document.
func (sw *ScenarioGMFWriter) Serialize(gmfs []domain.GMF) error {
	root := nrml.NewRoot()
	setEl := root.Child("gmfSet")
	for _, gmf := range gmfs {
		appendGMF(setEl, gmf)
	}

	if err := root.WriteTo(sw.w); err != nil {
		return fmt.Errorf("serialize scenario ground motion fields: %w", err)
	}
	return nil
}

// appendGMF encodes one ground-motion field and its nodes. The encoding is
// identical for event-based and scenario results.
func appendGMF(parent *xmltree.Element, gmf domain.GMF) {
	el := parent.Child("gmf")
	el.SetAttr("IMT", gmf.IMT)
	if gmf.IMT == nrml.IMTSA {
		if gmf.SAPeriod != nil {
			el.SetAttr("saPeriod", nrml.FormatFloat(*gmf.SAPeriod))
		}
		if gmf.SADamping != nil {
			el.SetAttr("saDamping", nrml.FormatFloat(*gmf.SADamping))
		}
	}

	for _, n := range gmf.Nodes {
		nodeEl := el.Child("node")
		nodeEl.SetAttr("iml", nrml.FormatFloat(n.GMV))
		nodeEl.SetAttr("lon", nrml.FormatFloat(n.Location.Lon))
		nodeEl.SetAttr("lat", nrml.FormatFloat(n.Location.Lat))
	}
}
