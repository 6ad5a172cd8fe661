package export

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/couchcryptid/hazard-nrml-export/internal/domain"
	"github.com/couchcryptid/hazard-nrml-export/internal/nrml"
	"github.com/couchcryptid/hazard-nrml-export/internal/observability"
)

func newTestExporter(t *testing.T) (*Exporter, *observability.Metrics) {
	t.Helper()
	metrics := observability.NewMetricsForTesting()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return New(logger, metrics, nil), metrics
}

func mustBundle(t *testing.T, kind string, md domain.BundleMetadata, payload any) domain.Bundle {
	t.Helper()
	b, err := domain.NewBundle(kind, md, payload)
	require.NoError(t, err)
	return b
}

func hazardCurvesBundle(t *testing.T) domain.Bundle {
	md := domain.BundleMetadata{
		IMT:               "PGA",
		SMLTPath:          "b1",
		GSIMLTPath:        "b1",
		InvestigationTime: nrml.Float(50),
		IMLs:              []float64{0.005, 0.007},
	}
	return mustBundle(t, domain.KindHazardCurves, md, []domain.HazardCurve{
		{Location: domain.Location{Lon: -122.5, Lat: 37.5}, PoEs: []float64{0.1, 0.2}},
	})
}

func lossMapBundle(t *testing.T) domain.Bundle {
	md := domain.BundleMetadata{
		InvestigationTime: nrml.Float(50),
		Statistics:        "mean",
		PoE:               nrml.Float(0.01),
		Unit:              "USD",
	}
	return mustBundle(t, domain.KindLossMap, md, []domain.Loss{
		{Location: domain.Location{Lon: 1, Lat: 2}, AssetRef: "a1", Value: 100},
	})
}

func TestExportAllKinds(t *testing.T) {
	statsMD := domain.BundleMetadata{Statistics: "mean", InvestigationTime: nrml.Float(50)}
	realizationMD := domain.BundleMetadata{SMLTPath: "b1", GSIMLTPath: "b1"}

	tests := []struct {
		name   string
		bundle domain.Bundle
		marker string
	}{
		{
			"hazard curves",
			hazardCurvesBundle(t),
			"<hazardCurves",
		},
		{
			"hazard map",
			mustBundle(t, domain.KindHazardMap, statsMD,
				[]domain.HazardMapNode{{Lon: 1, Lat: 2, IML: 0.3}}),
			"<hazardMap",
		},
		{
			"event-based gmf",
			mustBundle(t, domain.KindGMFEventBased, realizationMD,
				[]domain.GMFSet{{InvestigationTime: 50, GMFs: []domain.GMF{{
					IMT:   "PGA",
					Nodes: []domain.GMFNode{{GMV: 0.2, Location: domain.Location{Lon: 0, Lat: 0}}},
				}}}}),
			"<gmfCollection",
		},
		{
			"scenario gmf",
			mustBundle(t, domain.KindGMFScenario, domain.BundleMetadata{},
				[]domain.GMF{{IMT: "PGV", Nodes: []domain.GMFNode{{GMV: 9.4}}}}),
			"<gmfSet>",
		},
		{
			"stochastic event sets",
			mustBundle(t, domain.KindSES, realizationMD,
				[]domain.StochasticEventSet{{InvestigationTime: 50, Ruptures: []domain.Rupture{{
					Magnitude: 6, Strike: 0, Dip: 45, Rake: 90,
					TectonicRegion: "Active Shallow Crust",
					PlanarSurface:  &domain.PlanarSurface{},
				}}}}),
			"<stochasticEventSetCollection",
		},
		{
			"disaggregation",
			mustBundle(t, domain.KindDisagg, domain.BundleMetadata{
				IMT: "PGA", SMLTPath: "b1", GSIMLTPath: "b1",
				InvestigationTime: nrml.Float(50),
				Lon:               nrml.Float(1), Lat: nrml.Float(2),
				MagBinEdges: []float64{5, 6},
			}, []domain.DisaggResult{{
				DimLabels: []string{domain.DimMag},
				Matrix:    domain.Matrix{Shape: []int{1}, Values: []float64{1}},
				PoE:       0.1, IML: 0.2,
			}}),
			"<disaggMatrices",
		},
		{
			"loss curves",
			mustBundle(t, domain.KindLossCurves, domain.BundleMetadata{
				InvestigationTime: nrml.Float(50), SMLTPath: "b1", GSIMLTPath: "b1",
			}, []domain.LossCurve{{
				AssetRef: "a1", PoEs: []float64{0.1}, Losses: []float64{10},
			}}),
			"<lossCurves",
		},
		{
			"aggregate loss curve",
			mustBundle(t, domain.KindAggregateLossCurve, statsMD,
				domain.AggregateLossCurve{PoEs: []float64{0.1}, Losses: []float64{150.25}}),
			"<aggregateLossCurve",
		},
		{
			"loss map",
			lossMapBundle(t),
			"<lossMap",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			exporter, metrics := newTestExporter(t)
			var sink bytes.Buffer

			require.NoError(t, exporter.Export(tt.bundle, &sink))

			out := sink.String()
			assert.Contains(t, out, `<?xml version="1.0" encoding="UTF-8"?>`)
			assert.Contains(t, out, tt.marker)
			assert.Equal(t, 1.0,
				testutil.ToFloat64(metrics.DocumentsSerialized.WithLabelValues(tt.bundle.Kind)))
		})
	}
}

func TestExportFailures(t *testing.T) {
	t.Run("invalid metadata surfaces the writer error", func(t *testing.T) {
		exporter, metrics := newTestExporter(t)
		bundle := mustBundle(t, domain.KindHazardCurves, domain.BundleMetadata{
			Statistics: "mean", SMLTPath: "b1", GSIMLTPath: "b1",
			IMLs: []float64{0.1},
		}, []domain.HazardCurve{})

		err := exporter.Export(bundle, &bytes.Buffer{})

		require.Error(t, err)
		assert.Contains(t, err.Error(), "export hazard_curves")
		var merr *nrml.MetadataError
		assert.ErrorAs(t, err, &merr)
		assert.Equal(t, 1.0,
			testutil.ToFloat64(metrics.ExportErrors.WithLabelValues(domain.KindHazardCurves)))
	})

	t.Run("loss map without poe", func(t *testing.T) {
		exporter, _ := newTestExporter(t)
		bundle := mustBundle(t, domain.KindLossMap, domain.BundleMetadata{
			InvestigationTime: nrml.Float(50), Statistics: "mean",
		}, []domain.Loss{{AssetRef: "a", Value: 1}})

		err := exporter.Export(bundle, &bytes.Buffer{})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "poe metadata")
	})

	t.Run("loss results without investigation time", func(t *testing.T) {
		exporter, _ := newTestExporter(t)
		bundle := mustBundle(t, domain.KindLossCurves, domain.BundleMetadata{
			SMLTPath: "b1", GSIMLTPath: "b1",
		}, []domain.LossCurve{{AssetRef: "a", PoEs: []float64{0.1}, Losses: []float64{1}}})

		err := exporter.Export(bundle, &bytes.Buffer{})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "investigation_time")
	})

	t.Run("unknown kind", func(t *testing.T) {
		exporter, _ := newTestExporter(t)
		bundle := domain.Bundle{Kind: "fragility", Payload: json.RawMessage("[]")}

		err := exporter.Export(bundle, &bytes.Buffer{})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "unknown result kind")
	})
}

func TestCheckReadiness(t *testing.T) {
	exporter, _ := newTestExporter(t)

	require.Error(t, exporter.CheckReadiness())

	require.NoError(t, exporter.Export(hazardCurvesBundle(t), &bytes.Buffer{}))
	assert.NoError(t, exporter.CheckReadiness())
}

func TestExportFile(t *testing.T) {
	writeBundleFile := func(t *testing.T, dir, name string, bundle domain.Bundle) string {
		t.Helper()
		data, err := json.Marshal(bundle)
		require.NoError(t, err)
		path := filepath.Join(dir, name)
		require.NoError(t, os.WriteFile(path, data, 0o644))
		return path
	}

	t.Run("writes next to the input", func(t *testing.T) {
		exporter, _ := newTestExporter(t)
		dir := t.TempDir()
		in := writeBundleFile(t, dir, "hazard_curves.json", hazardCurvesBundle(t))

		out, err := exporter.ExportFile(in, "")
		require.NoError(t, err)
		assert.Equal(t, filepath.Join(dir, "hazard_curves.xml"), out)

		data, err := os.ReadFile(out)
		require.NoError(t, err)
		assert.Contains(t, string(data), "<hazardCurves")
	})

	t.Run("honors the output directory", func(t *testing.T) {
		exporter, _ := newTestExporter(t)
		in := writeBundleFile(t, t.TempDir(), "loss_map.json", lossMapBundle(t))
		outDir := t.TempDir()

		out, err := exporter.ExportFile(in, outDir)
		require.NoError(t, err)
		assert.Equal(t, filepath.Join(outDir, "loss_map.xml"), out)

		data, err := os.ReadFile(out)
		require.NoError(t, err)
		assert.Contains(t, string(data), "<lossMap")
	})

	t.Run("missing input file", func(t *testing.T) {
		exporter, _ := newTestExporter(t)
		_, err := exporter.ExportFile(filepath.Join(t.TempDir(), "absent.json"), "")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "read bundle")
	})

	t.Run("malformed bundle", func(t *testing.T) {
		exporter, _ := newTestExporter(t)
		dir := t.TempDir()
		path := filepath.Join(dir, "bad.json")
		require.NoError(t, os.WriteFile(path, []byte("{broken"), 0o644))

		_, err := exporter.ExportFile(path, "")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "parse result bundle")
	})
}
