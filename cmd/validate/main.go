// Command validate performs integrity checks on result-bundle files before
// they are handed to the exporter: envelope well-formedness, metadata
// consistency, and payload shape rules (grid dimensions, matrix shapes,
// coherent sequence lengths).
//
// Usage:
//
//	go run ./cmd/validate data/mock/*.json
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/couchcryptid/hazard-nrml-export/internal/domain"
	"github.com/couchcryptid/hazard-nrml-export/internal/nrml"
)

// phase tracks pass/fail for one validation phase of one bundle.
type phase struct {
	name   string
	errors []string
}

func (p *phase) errorf(format string, args ...any) {
	p.errors = append(p.errors, fmt.Sprintf(format, args...))
}

func (p *phase) passed() bool { return len(p.errors) == 0 }

func main() {
	flag.Parse()
	if flag.NArg() == 0 {
		fmt.Fprintln(os.Stderr, "usage: validate <bundle.json> [...]")
		os.Exit(2)
	}
	if code := run(flag.Args()); code != 0 {
		os.Exit(code)
	}
}

func run(paths []string) int {
	fmt.Println("=== Result Bundle Validation ===")
	fmt.Println()

	allPassed := true
	for _, path := range paths {
		phases := validateFile(path)

		for _, p := range phases {
			status := "\033[32mPASS\033[0m"
			if !p.passed() {
				status = fmt.Sprintf("\033[31mFAIL (%d errors)\033[0m", len(p.errors))
				allPassed = false
			}
			fmt.Printf("  %-52s %s\n", path+": "+p.name, status)
		}

		for _, p := range phases {
			if p.passed() {
				continue
			}
			fmt.Printf("\n--- %s: %s ---\n", path, p.name)
			for i, e := range p.errors {
				fmt.Printf("  [%d] %s\n", i+1, e)
			}
			fmt.Println()
		}
	}

	if allPassed {
		fmt.Println("\nAll validations passed.")
		return 0
	}
	fmt.Println("\nValidation FAILED.")
	return 1
}

func validateFile(path string) []*phase {
	envelope := &phase{name: "envelope"}

	data, err := os.ReadFile(path)
	if err != nil {
		envelope.errorf("read: %v", err)
		return []*phase{envelope}
	}
	bundle, err := domain.DecodeBundle(data)
	if err != nil {
		envelope.errorf("%v", err)
		return []*phase{envelope}
	}

	metadata := &phase{name: "metadata"}
	validateMetadata(metadata, bundle)

	payload := &phase{name: "payload"}
	validatePayload(payload, bundle)

	return []*phase{envelope, metadata, payload}
}

// validateMetadata applies the statistics / logic-tree / SA rules for the
// kinds that carry shared result metadata.
func validateMetadata(p *phase, b domain.Bundle) {
	md := nrml.Metadata{
		Statistics:        b.Metadata.Statistics,
		QuantileValue:     b.Metadata.QuantileValue,
		SMLTPath:          b.Metadata.SMLTPath,
		GSIMLTPath:        b.Metadata.GSIMLTPath,
		IMT:               b.Metadata.IMT,
		SAPeriod:          b.Metadata.SAPeriod,
		SADamping:         b.Metadata.SADamping,
		InvestigationTime: b.Metadata.InvestigationTime,
		PoE:               b.Metadata.PoE,
		Lon:               b.Metadata.Lon,
		Lat:               b.Metadata.Lat,
	}

	switch b.Kind {
	case domain.KindHazardCurves, domain.KindHazardMap, domain.KindDisagg,
		domain.KindLossCurves, domain.KindAggregateLossCurve, domain.KindLossMap:
		if err := md.Validate(); err != nil {
			p.errorf("%v", err)
		}
	}

	switch b.Kind {
	case domain.KindHazardCurves:
		if len(b.Metadata.IMLs) == 0 {
			p.errorf("hazard curves require imls metadata")
		}
	case domain.KindLossCurves, domain.KindAggregateLossCurve, domain.KindLossMap:
		if b.Metadata.InvestigationTime == nil {
			p.errorf("loss results require investigation_time metadata")
		}
		if b.Kind == domain.KindLossMap && b.Metadata.PoE == nil {
			p.errorf("loss map requires poe metadata")
		}
	}
}

func validatePayload(p *phase, b domain.Bundle) {
	switch b.Kind {
	case domain.KindHazardCurves:
		var curves []domain.HazardCurve
		if err := b.DecodePayload(&curves); err != nil {
			p.errorf("%v", err)
			return
		}
		for i, c := range curves {
			if len(c.PoEs) != len(b.Metadata.IMLs) {
				p.errorf("curve %d has %d poes for %d imls", i, len(c.PoEs), len(b.Metadata.IMLs))
			}
		}

	case domain.KindSES:
		var sets []domain.StochasticEventSet
		if err := b.DecodePayload(&sets); err != nil {
			p.errorf("%v", err)
			return
		}
		for si, set := range sets {
			for ri, rup := range set.Ruptures {
				validateRupture(p, si, ri, rup)
			}
		}

	case domain.KindDisagg:
		var results []domain.DisaggResult
		if err := b.DecodePayload(&results); err != nil {
			p.errorf("%v", err)
			return
		}
		for i, r := range results {
			if err := r.Matrix.Check(); err != nil {
				p.errorf("result %d: %v", i, err)
			}
			if len(r.DimLabels) != len(r.Matrix.Shape) {
				p.errorf("result %d: %d labels for %d matrix dimensions",
					i, len(r.DimLabels), len(r.Matrix.Shape))
			}
		}

	case domain.KindLossCurves:
		var curves []domain.LossCurve
		if err := b.DecodePayload(&curves); err != nil {
			p.errorf("%v", err)
			return
		}
		for i, c := range curves {
			if len(c.Losses) != len(c.PoEs) {
				p.errorf("loss curve %d has %d losses for %d poes", i, len(c.Losses), len(c.PoEs))
			}
			if c.LossRatios != nil && len(c.LossRatios) != len(c.PoEs) {
				p.errorf("loss curve %d has %d loss ratios for %d poes", i, len(c.LossRatios), len(c.PoEs))
			}
		}
	}
}

func validateRupture(p *phase, si, ri int, rup domain.Rupture) {
	if rup.FromFaultSource {
		if rup.Mesh == nil {
			p.errorf("set %d rupture %d: fault-source rupture has no mesh", si, ri)
			return
		}
		rows := len(rup.Mesh.Lons)
		if rows == 0 || len(rup.Mesh.Lons[0]) == 0 {
			p.errorf("set %d rupture %d: empty mesh", si, ri)
			return
		}
		if len(rup.Mesh.Lats) != rows || len(rup.Mesh.Depths) != rows {
			p.errorf("set %d rupture %d: mismatched mesh grid dimensions", si, ri)
		}
		return
	}
	if rup.PlanarSurface == nil {
		p.errorf("set %d rupture %d: non-fault rupture has no planar surface", si, ri)
	}
}
