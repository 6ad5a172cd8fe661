// Package export drives the NRML writers: it decodes a result bundle,
// constructs the writer matching the bundle's kind, and serializes the
// payload to an output sink, recording metrics and timing along the way.
package export

import (
	"fmt"
	"io"
	"log/slog"
	"sync/atomic"

	"github.com/jonboulle/clockwork"

	"github.com/couchcryptid/hazard-nrml-export/internal/domain"
	"github.com/couchcryptid/hazard-nrml-export/internal/nrml"
	"github.com/couchcryptid/hazard-nrml-export/internal/nrml/hazard"
	"github.com/couchcryptid/hazard-nrml-export/internal/nrml/risk"
	"github.com/couchcryptid/hazard-nrml-export/internal/observability"
)

// Exporter converts result bundles into NRML documents. It is safe for
// concurrent use: all per-document state lives in the writers it constructs
// per call.
type Exporter struct {
	logger  *slog.Logger
	metrics *observability.Metrics
	clock   clockwork.Clock
	ready   atomic.Bool
}

// New creates an Exporter. A nil clock means real time.
func New(logger *slog.Logger, metrics *observability.Metrics, clock clockwork.Clock) *Exporter {
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	return &Exporter{logger: logger, metrics: metrics, clock: clock}
}

// CheckReadiness returns nil once at least one bundle has been exported.
func (e *Exporter) CheckReadiness() error {
	if !e.ready.Load() {
		return fmt.Errorf("no bundle exported yet")
	}
	return nil
}

// Export serializes one bundle to sink. On failure the sink may hold a
// partial document; there is no rollback of already-written bytes.
func (e *Exporter) Export(bundle domain.Bundle, sink io.Writer) error {
	start := e.clock.Now()

	records, err := e.serialize(bundle, sink)
	if err != nil {
		e.metrics.ExportErrors.WithLabelValues(bundle.Kind).Inc()
		return fmt.Errorf("export %s: %w", bundle.Kind, err)
	}

	e.metrics.DocumentsSerialized.WithLabelValues(bundle.Kind).Inc()
	e.metrics.RecordsSerialized.Add(float64(records))
	e.metrics.SerializeDuration.Observe(e.clock.Since(start).Seconds())
	e.ready.Store(true)

	e.logger.Info("bundle exported",
		"kind", bundle.Kind,
		"records", records,
		"duration", e.clock.Since(start),
	)
	return nil
}

// serialize dispatches on the bundle kind and returns the number of
// top-level records written.
func (e *Exporter) serialize(b domain.Bundle, sink io.Writer) (int, error) {
	md := b.Metadata

	switch b.Kind {
	case domain.KindHazardCurves:
		var curves []domain.HazardCurve
		if err := b.DecodePayload(&curves); err != nil {
			return 0, err
		}
		w, err := hazard.NewHazardCurveWriter(sink, hazardMetadata(md), md.IMLs)
		if err != nil {
			return 0, err
		}
		return len(curves), w.Serialize(curves)

	case domain.KindHazardMap:
		var nodes []domain.HazardMapNode
		if err := b.DecodePayload(&nodes); err != nil {
			return 0, err
		}
		w, err := hazard.NewHazardMapWriter(sink, hazardMetadata(md))
		if err != nil {
			return 0, err
		}
		return len(nodes), w.Serialize(nodes)

	case domain.KindGMFEventBased:
		var sets []domain.GMFSet
		if err := b.DecodePayload(&sets); err != nil {
			return 0, err
		}
		w := hazard.NewEventBasedGMFWriter(sink, md.SMLTPath, md.GSIMLTPath)
		return len(sets), w.Serialize(sets)

	case domain.KindGMFScenario:
		var gmfs []domain.GMF
		if err := b.DecodePayload(&gmfs); err != nil {
			return 0, err
		}
		w := hazard.NewScenarioGMFWriter(sink)
		return len(gmfs), w.Serialize(gmfs)

	case domain.KindSES:
		var sets []domain.StochasticEventSet
		if err := b.DecodePayload(&sets); err != nil {
			return 0, err
		}
		w := hazard.NewSESWriter(sink, md.SMLTPath, md.GSIMLTPath)
		return len(sets), w.Serialize(sets)

	case domain.KindDisagg:
		var results []domain.DisaggResult
		if err := b.DecodePayload(&results); err != nil {
			return 0, err
		}
		w, err := hazard.NewDisaggWriter(sink, disaggMetadata(md))
		if err != nil {
			return 0, err
		}
		return len(results), w.Serialize(results)

	case domain.KindLossCurves:
		var curves []domain.LossCurve
		if err := b.DecodePayload(&curves); err != nil {
			return 0, err
		}
		rmd, err := riskMetadata(md)
		if err != nil {
			return 0, err
		}
		w, err := risk.NewLossCurveWriter(sink, rmd, md.Insured)
		if err != nil {
			return 0, err
		}
		return len(curves), w.Serialize(curves)

	case domain.KindAggregateLossCurve:
		var curve domain.AggregateLossCurve
		if err := b.DecodePayload(&curve); err != nil {
			return 0, err
		}
		rmd, err := riskMetadata(md)
		if err != nil {
			return 0, err
		}
		w, err := risk.NewAggregateLossCurveWriter(sink, rmd)
		if err != nil {
			return 0, err
		}
		return 1, w.Serialize(&curve)

	case domain.KindLossMap:
		var losses []domain.Loss
		if err := b.DecodePayload(&losses); err != nil {
			return 0, err
		}
		rmd, err := riskMetadata(md)
		if err != nil {
			return 0, err
		}
		if md.PoE == nil {
			return 0, fmt.Errorf("loss map requires poe metadata")
		}
		w, err := risk.NewLossMapWriter(sink, rmd, *md.PoE, md.LossCategory)
		if err != nil {
			return 0, err
		}
		return len(losses), w.Serialize(losses)
	}

	return 0, fmt.Errorf("unknown result kind %q", b.Kind)
}

func hazardMetadata(md domain.BundleMetadata) nrml.Metadata {
	return nrml.Metadata{
		Statistics:        md.Statistics,
		QuantileValue:     md.QuantileValue,
		SMLTPath:          md.SMLTPath,
		GSIMLTPath:        md.GSIMLTPath,
		IMT:               md.IMT,
		SAPeriod:          md.SAPeriod,
		SADamping:         md.SADamping,
		InvestigationTime: md.InvestigationTime,
		PoE:               md.PoE,
		Lon:               md.Lon,
		Lat:               md.Lat,
	}
}

func disaggMetadata(md domain.BundleMetadata) hazard.DisaggMetadata {
	return hazard.DisaggMetadata{
		Metadata:            hazardMetadata(md),
		MagBinEdges:         md.MagBinEdges,
		DistBinEdges:        md.DistBinEdges,
		LonBinEdges:         md.LonBinEdges,
		LatBinEdges:         md.LatBinEdges,
		EpsBinEdges:         md.EpsBinEdges,
		TectonicRegionTypes: md.TectonicRegionTypes,
	}
}

func riskMetadata(md domain.BundleMetadata) (risk.Metadata, error) {
	if md.InvestigationTime == nil {
		return risk.Metadata{}, fmt.Errorf("loss results require investigation_time metadata")
	}
	return risk.Metadata{
		InvestigationTime: *md.InvestigationTime,
		Statistics:        md.Statistics,
		QuantileValue:     md.QuantileValue,
		SMLTPath:          md.SMLTPath,
		GSIMLTPath:        md.GSIMLTPath,
		Unit:              md.Unit,
	}, nil
}
