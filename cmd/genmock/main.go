// Command genmock writes one sample result bundle per supported kind. The
// bundles exercise every writer (including the complete-logic-tree and SA
// variants reachable from metadata) and are used as fixtures by the export
// test suites and for manual runs of cmd/export.
//
// Usage:
//
//	go run ./cmd/genmock -out data/mock
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/jonboulle/clockwork"

	"github.com/couchcryptid/hazard-nrml-export/internal/domain"
	"github.com/couchcryptid/hazard-nrml-export/internal/nrml"
)

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	outDir := flag.String("out", "", "output directory for bundle fixtures")
	flag.Parse()

	if *outDir == "" {
		flag.Usage()
		return fmt.Errorf("missing required flag: -out")
	}
	if err := os.MkdirAll(*outDir, 0o755); err != nil {
		return err
	}

	// Freeze time for reproducible generated_at stamps.
	domain.SetClock(clockwork.NewFakeClockAt(
		time.Date(2026, time.March, 2, 9, 0, 0, 0, time.UTC),
	))
	defer domain.SetClock(nil)

	for _, gen := range bundleGenerators() {
		bundle, err := gen()
		if err != nil {
			return err
		}
		path := filepath.Join(*outDir, bundle.Kind+".json")
		if err := writeBundle(path, bundle); err != nil {
			return fmt.Errorf("writing %s: %w", path, err)
		}
		log.Printf("%s: written", path)
	}
	return nil
}

func writeBundle(path string, bundle domain.Bundle) error {
	data, err := json.MarshalIndent(bundle, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, append(data, '\n'), 0o644)
}

func bundleGenerators() []func() (domain.Bundle, error) {
	return []func() (domain.Bundle, error){
		hazardCurvesBundle,
		hazardMapBundle,
		gmfEventBasedBundle,
		gmfScenarioBundle,
		sesBundle,
		disaggBundle,
		lossCurvesBundle,
		aggregateLossCurveBundle,
		lossMapBundle,
	}
}

func hazardCurvesBundle() (domain.Bundle, error) {
	md := domain.BundleMetadata{
		IMT:               "SA",
		SAPeriod:          nrml.Float(0.025),
		SADamping:         nrml.Float(5.0),
		SMLTPath:          "b1_b2_b4",
		GSIMLTPath:        "b1_b4_b5",
		InvestigationTime: nrml.Float(50.0),
		IMLs:              []float64{0.005, 0.007, 0.0098},
	}
	curves := []domain.HazardCurve{
		{Location: domain.Location{Lon: -122.5, Lat: 37.5}, PoEs: []float64{0.1, 0.2, 0.3}},
		{Location: domain.Location{Lon: -122.4, Lat: 37.5}, PoEs: []float64{0.4, 0.5, 0.6}},
	}
	return domain.NewBundle(domain.KindHazardCurves, md, curves)
}

func hazardMapBundle() (domain.Bundle, error) {
	md := domain.BundleMetadata{
		IMT:               "PGA",
		Statistics:        "mean",
		InvestigationTime: nrml.Float(50.0),
		PoE:               nrml.Float(0.1),
	}
	nodes := []domain.HazardMapNode{
		{Lon: -122.5, Lat: 37.5, IML: 0.3260},
		{Lon: -122.4, Lat: 37.5, IML: 0.3022},
		{Lon: -122.3, Lat: 37.5, IML: 0.2998},
	}
	return domain.NewBundle(domain.KindHazardMap, md, nodes)
}

func gmfEventBasedBundle() (domain.Bundle, error) {
	md := domain.BundleMetadata{SMLTPath: "b1_b2", GSIMLTPath: "b1"}
	sets := []domain.GMFSet{{
		InvestigationTime: 50.0,
		GMFs: []domain.GMF{
			{
				IMT: "PGA",
				Nodes: []domain.GMFNode{
					{GMV: 0.2, Location: domain.Location{Lon: 0.0, Lat: 0.0}},
					{GMV: 0.3, Location: domain.Location{Lon: 0.0, Lat: 1.0}},
				},
			},
			{
				IMT:       "SA",
				SAPeriod:  nrml.Float(0.1),
				SADamping: nrml.Float(5.0),
				Nodes: []domain.GMFNode{
					{GMV: 0.1, Location: domain.Location{Lon: 1.0, Lat: 0.0}},
				},
			},
		},
	}}
	return domain.NewBundle(domain.KindGMFEventBased, md, sets)
}

func gmfScenarioBundle() (domain.Bundle, error) {
	gmfs := []domain.GMF{{
		IMT: "PGV",
		Nodes: []domain.GMFNode{
			{GMV: 9.4, Location: domain.Location{Lon: -122.1, Lat: 38.0}},
			{GMV: 12.2, Location: domain.Location{Lon: -122.0, Lat: 38.0}},
		},
	}}
	return domain.NewBundle(domain.KindGMFScenario, domain.BundleMetadata{}, gmfs)
}

func sesBundle() (domain.Bundle, error) {
	md := domain.BundleMetadata{SMLTPath: "b1_b2", GSIMLTPath: "b1"}
	sets := []domain.StochasticEventSet{{
		InvestigationTime: 50.0,
		Ruptures: []domain.Rupture{
			{
				Magnitude: 5.5, Strike: 30.0, Dip: 90.0, Rake: 0.0,
				TectonicRegion:  "Active Shallow Crust",
				FromFaultSource: true,
				Mesh: &domain.Mesh{
					Lons:   [][]float64{{-121.0, -120.9}, {-121.0, -120.9}},
					Lats:   [][]float64{{37.0, 37.0}, {37.1, 37.1}},
					Depths: [][]float64{{5.0, 5.0}, {8.0, 8.0}},
				},
			},
			{
				Magnitude: 6.2, Strike: 0.0, Dip: 45.0, Rake: 90.0,
				TectonicRegion: "Stable Continental Crust",
				PlanarSurface: &domain.PlanarSurface{
					TopLeft:     domain.Point3{Lon: -120.0, Lat: 37.0, Depth: 2.0},
					TopRight:    domain.Point3{Lon: -119.9, Lat: 37.0, Depth: 2.0},
					BottomRight: domain.Point3{Lon: -119.9, Lat: 36.9, Depth: 10.0},
					BottomLeft:  domain.Point3{Lon: -120.0, Lat: 36.9, Depth: 10.0},
				},
			},
		},
	}}
	return domain.NewBundle(domain.KindSES, md, sets)
}

func disaggBundle() (domain.Bundle, error) {
	md := domain.BundleMetadata{
		IMT:               "PGA",
		SMLTPath:          "b1",
		GSIMLTPath:        "b1",
		InvestigationTime: nrml.Float(50.0),
		Lon:               nrml.Float(-122.5),
		Lat:               nrml.Float(37.5),
		MagBinEdges:       []float64{5.0, 5.5, 6.0},
		DistBinEdges:      []float64{0.0, 20.0, 40.0},
	}
	results := []domain.DisaggResult{{
		DimLabels: []string{domain.DimMag, domain.DimDist},
		Matrix: domain.Matrix{
			Shape:  []int{2, 2},
			Values: []float64{0.1, 0.2, 0.3, 0.4},
		},
		PoE: 0.02,
		IML: 0.32,
	}}
	return domain.NewBundle(domain.KindDisagg, md, results)
}

func lossCurvesBundle() (domain.Bundle, error) {
	md := domain.BundleMetadata{
		InvestigationTime: nrml.Float(50.0),
		SMLTPath:          "b1",
		GSIMLTPath:        "b1",
		Unit:              "USD",
	}
	curves := []domain.LossCurve{
		{
			Location: domain.Location{Lon: -122.5, Lat: 37.5},
			AssetRef: "asset_1",
			PoEs:     []float64{0.1, 0.01, 0.001},
			Losses:   []float64{10.0, 100.0, 1000.0},
		},
		{
			Location:   domain.Location{Lon: -122.4, Lat: 37.5},
			AssetRef:   "asset_2",
			PoEs:       []float64{0.2, 0.02, 0.002},
			Losses:     []float64{20.0, 200.0, 2000.0},
			LossRatios: []float64{0.01, 0.1, 1.0},
		},
	}
	return domain.NewBundle(domain.KindLossCurves, md, curves)
}

func aggregateLossCurveBundle() (domain.Bundle, error) {
	md := domain.BundleMetadata{
		InvestigationTime: nrml.Float(50.0),
		Statistics:        "mean",
		Unit:              "USD",
	}
	curve := domain.AggregateLossCurve{
		PoEs:   []float64{0.1, 0.01},
		Losses: []float64{150.25, 3000.0},
	}
	return domain.NewBundle(domain.KindAggregateLossCurve, md, curve)
}

func lossMapBundle() (domain.Bundle, error) {
	md := domain.BundleMetadata{
		InvestigationTime: nrml.Float(50.0),
		Statistics:        "quantile",
		QuantileValue:     nrml.Float(0.5),
		PoE:               nrml.Float(0.01),
		LossCategory:      "buildings",
		Unit:              "USD",
	}
	losses := []domain.Loss{
		{Location: domain.Location{Lon: -122.5, Lat: 37.5}, AssetRef: "asset_1", Value: 520.5},
		{Location: domain.Location{Lon: -122.5, Lat: 37.5}, AssetRef: "asset_2", Value: 310.0},
		{Location: domain.Location{Lon: -122.4, Lat: 37.5}, AssetRef: "asset_3", Value: 88.1},
	}
	return domain.NewBundle(domain.KindLossMap, md, losses)
}
