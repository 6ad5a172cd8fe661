package hazard

import (
	"fmt"
	"io"
	"strconv"

	"github.com/couchcryptid/hazard-nrml-export/internal/domain"
	"github.com/couchcryptid/hazard-nrml-export/internal/nrml"
	"github.com/couchcryptid/hazard-nrml-export/internal/xmltree"
)

// SESWriter serializes stochastic event sets: simulated rupture catalogs
// over an investigation time window.
type SESWriter struct {
	w          io.Writer
	smltPath   string
	gsimltPath string
}

// NewSESWriter returns a writer targeting w. The logic-tree path pair
// follows the same collection-or-flatten convention as the event-based GMF
// writer.
func NewSESWriter(w io.Writer, smltPath, gsimltPath string) *SESWriter {
	return &SESWriter{w: w, smltPath: smltPath, gsimltPath: gsimltPath}
}

// Serialize writes the event sets, in input order, as one NRML document.
// A rupture with malformed mesh geometry aborts the whole call.
func (sw *SESWriter) Serialize(sets []domain.StochasticEventSet) error {
	root := nrml.NewRoot()
	container := wrapCollection(root, "stochasticEventSetCollection", sw.smltPath, sw.gsimltPath)

	for _, set := range sets {
		setEl := container.Child("stochasticEventSet")
		setEl.SetAttr("investigationTime", nrml.FormatFloat(set.InvestigationTime))

		for _, rup := range set.Ruptures {
			if err := appendRupture(setEl, rup); err != nil {
				return err
			}
		}
	}

	if err := root.WriteTo(sw.w); err != nil {
		return fmt.Errorf("serialize stochastic event sets: %w", err)
	}
	return nil
}

func appendRupture(parent *xmltree.Element, rup domain.Rupture) error {
	el := parent.Child("rupture")
	el.SetAttr("magnitude", nrml.FormatFloat(rup.Magnitude))
	el.SetAttr("strike", nrml.FormatFloat(rup.Strike))
	el.SetAttr("dip", nrml.FormatFloat(rup.Dip))
	el.SetAttr("rake", nrml.FormatFloat(rup.Rake))
	el.SetAttr("tectonicRegion", rup.TectonicRegion)

	if rup.FromFaultSource {
		if rup.Mesh == nil {
			return &nrml.InvalidGeometryError{Reason: "fault-source rupture has no mesh"}
		}
		return appendMesh(el, *rup.Mesh)
	}
	if rup.PlanarSurface == nil {
		return &nrml.InvalidGeometryError{Reason: "non-fault rupture has no planar surface"}
	}
	appendPlanarSurface(el, *rup.PlanarSurface)
	return nil
}

// appendMesh encodes a rupture mesh as one node element per grid cell in
// row-major order, recording the grid dimensions on the mesh container.
// The grids are checked upfront: an empty grid, ragged rows, or lat/depth
// grids that do not match the lon grid's dimensions are invalid.
func appendMesh(rupEl *xmltree.Element, mesh domain.Mesh) error {
	rows, cols, err := meshDims(mesh)
	if err != nil {
		return err
	}

	meshEl := rupEl.Child("mesh")
	meshEl.SetAttr("rows", strconv.Itoa(rows))
	meshEl.SetAttr("cols", strconv.Itoa(cols))

	for i := 0; i < rows; i++ {
		for j := 0; j < cols; j++ {
			nodeEl := meshEl.Child("node")
			nodeEl.SetAttr("row", strconv.Itoa(i))
			nodeEl.SetAttr("col", strconv.Itoa(j))
			nodeEl.SetAttr("lon", nrml.FormatFloat(mesh.Lons[i][j]))
			nodeEl.SetAttr("lat", nrml.FormatFloat(mesh.Lats[i][j]))
			nodeEl.SetAttr("depth", nrml.FormatFloat(mesh.Depths[i][j]))
		}
	}
	return nil
}

// meshDims validates the three coordinate grids and returns their common
// dimensions.
func meshDims(mesh domain.Mesh) (rows, cols int, err error) {
	rows = len(mesh.Lons)
	if rows == 0 || len(mesh.Lons[0]) == 0 {
		return 0, 0, &nrml.InvalidGeometryError{Reason: "empty mesh"}
	}
	cols = len(mesh.Lons[0])

	for name, grid := range map[string][][]float64{
		"lons":   mesh.Lons,
		"lats":   mesh.Lats,
		"depths": mesh.Depths,
	} {
		if len(grid) != rows {
			return 0, 0, &nrml.InvalidGeometryError{
				Reason: fmt.Sprintf("%s grid has %d rows, want %d", name, len(grid), rows),
			}
		}
		for i, row := range grid {
			if len(row) != cols {
				return 0, 0, &nrml.InvalidGeometryError{
					Reason: fmt.Sprintf("%s grid row %d has %d cols, want %d", name, i, len(row), cols),
				}
			}
		}
	}
	return rows, cols, nil
}

// appendPlanarSurface encodes the four corners of a planar rupture surface
// in fixed order. The corners are trusted as given; no planarity check.
func appendPlanarSurface(rupEl *xmltree.Element, ps domain.PlanarSurface) {
	surfEl := rupEl.Child("planarSurface")

	corners := []struct {
		tag string
		pt  domain.Point3
	}{
		{"topLeft", ps.TopLeft},
		{"topRight", ps.TopRight},
		{"bottomRight", ps.BottomRight},
		{"bottomLeft", ps.BottomLeft},
	}
	for _, c := range corners {
		el := surfEl.Child(c.tag)
		el.SetAttr("lon", nrml.FormatFloat(c.pt.Lon))
		el.SetAttr("lat", nrml.FormatFloat(c.pt.Lat))
		el.SetAttr("depth", nrml.FormatFloat(c.pt.Depth))
	}
}
