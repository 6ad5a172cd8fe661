package hazard

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/couchcryptid/hazard-nrml-export/internal/domain"
	"github.com/couchcryptid/hazard-nrml-export/internal/nrml"
)

func faultRupture(mesh *domain.Mesh) domain.Rupture {
	return domain.Rupture{
		Magnitude: 5.5, Strike: 30, Dip: 90, Rake: 0,
		TectonicRegion:  "Active Shallow Crust",
		FromFaultSource: true,
		Mesh:            mesh,
	}
}

func validMesh() *domain.Mesh {
	return &domain.Mesh{
		Lons:   [][]float64{{-121, -120.9}, {-121, -120.9}},
		Lats:   [][]float64{{37, 37}, {37.1, 37.1}},
		Depths: [][]float64{{5, 5}, {8, 8}},
	}
}

func TestSESWriter(t *testing.T) {
	t.Run("fault rupture mesh", func(t *testing.T) {
		var buf bytes.Buffer
		w := NewSESWriter(&buf, "b1_b2", "b1")
		sets := []domain.StochasticEventSet{{
			InvestigationTime: 50,
			Ruptures:          []domain.Rupture{faultRupture(validMesh())},
		}}
		require.NoError(t, w.Serialize(sets))

		out := buf.String()
		assert.Contains(t, out,
			`<stochasticEventSetCollection sourceModelTreePath="b1_b2" gsimTreePath="b1">`)
		assert.Contains(t, out, `<stochasticEventSet investigationTime="50.0">`)
		assert.Contains(t, out,
			`<rupture magnitude="5.5" strike="30.0" dip="90.0" rake="0.0" tectonicRegion="Active Shallow Crust">`)
		assert.Contains(t, out, `<mesh rows="2" cols="2">`)
		assert.Contains(t, out, `<node row="0" col="0" lon="-121.0" lat="37.0" depth="5.0"></node>`)
		assert.Contains(t, out, `<node row="1" col="1" lon="-120.9" lat="37.1" depth="8.0"></node>`)
	})

	t.Run("mesh nodes in row-major order", func(t *testing.T) {
		var buf bytes.Buffer
		w := NewSESWriter(&buf, "b1", "b1")
		sets := []domain.StochasticEventSet{{
			InvestigationTime: 50,
			Ruptures:          []domain.Rupture{faultRupture(validMesh())},
		}}
		require.NoError(t, w.Serialize(sets))

		out := buf.String()
		i00 := strings.Index(out, `row="0" col="0"`)
		i01 := strings.Index(out, `row="0" col="1"`)
		i10 := strings.Index(out, `row="1" col="0"`)
		i11 := strings.Index(out, `row="1" col="1"`)
		assert.True(t, i00 < i01 && i01 < i10 && i10 < i11)
	})

	t.Run("planar surface corners in fixed order", func(t *testing.T) {
		var buf bytes.Buffer
		w := NewSESWriter(&buf, "b1", "b1")
		sets := []domain.StochasticEventSet{{
			InvestigationTime: 50,
			Ruptures: []domain.Rupture{{
				Magnitude: 6.2, Strike: 0, Dip: 45, Rake: 90,
				TectonicRegion: "Stable Continental Crust",
				PlanarSurface: &domain.PlanarSurface{
					TopLeft:     domain.Point3{Lon: -120, Lat: 37, Depth: 2},
					TopRight:    domain.Point3{Lon: -119.9, Lat: 37, Depth: 2},
					BottomRight: domain.Point3{Lon: -119.9, Lat: 36.9, Depth: 10},
					BottomLeft:  domain.Point3{Lon: -120, Lat: 36.9, Depth: 10},
				},
			}},
		}}
		require.NoError(t, w.Serialize(sets))

		out := buf.String()
		assert.Contains(t, out, "<planarSurface>")
		assert.Contains(t, out, `<topLeft lon="-120.0" lat="37.0" depth="2.0"></topLeft>`)
		assert.Contains(t, out, `<bottomLeft lon="-120.0" lat="36.9" depth="10.0"></bottomLeft>`)

		tl := strings.Index(out, "<topLeft")
		tr := strings.Index(out, "<topRight")
		br := strings.Index(out, "<bottomRight")
		bl := strings.Index(out, "<bottomLeft")
		assert.True(t, tl < tr && tr < br && br < bl)
	})

	t.Run("complete logic tree omits the collection", func(t *testing.T) {
		var buf bytes.Buffer
		w := NewSESWriter(&buf, "", "")
		sets := []domain.StochasticEventSet{{InvestigationTime: 50}}
		require.NoError(t, w.Serialize(sets))

		assert.NotContains(t, buf.String(), "stochasticEventSetCollection")
		assert.Contains(t, buf.String(), "<stochasticEventSet")
	})

	t.Run("empty mesh rejected", func(t *testing.T) {
		var buf bytes.Buffer
		w := NewSESWriter(&buf, "b1", "b1")
		sets := []domain.StochasticEventSet{{
			Ruptures: []domain.Rupture{faultRupture(&domain.Mesh{})},
		}}
		err := w.Serialize(sets)

		var gerr *nrml.InvalidGeometryError
		require.ErrorAs(t, err, &gerr)
		assert.Contains(t, gerr.Error(), "empty mesh")
	})

	t.Run("ragged grid rejected", func(t *testing.T) {
		mesh := validMesh()
		mesh.Lats[1] = mesh.Lats[1][:1]

		var buf bytes.Buffer
		w := NewSESWriter(&buf, "b1", "b1")
		err := w.Serialize([]domain.StochasticEventSet{{
			Ruptures: []domain.Rupture{faultRupture(mesh)},
		}})

		var gerr *nrml.InvalidGeometryError
		require.ErrorAs(t, err, &gerr)
		assert.Contains(t, gerr.Error(), "lats grid row 1")
	})

	t.Run("mismatched grid row counts rejected", func(t *testing.T) {
		mesh := validMesh()
		mesh.Depths = mesh.Depths[:1]

		var buf bytes.Buffer
		w := NewSESWriter(&buf, "b1", "b1")
		err := w.Serialize([]domain.StochasticEventSet{{
			Ruptures: []domain.Rupture{faultRupture(mesh)},
		}})

		var gerr *nrml.InvalidGeometryError
		require.ErrorAs(t, err, &gerr)
		assert.Contains(t, gerr.Error(), "depths grid has 1 rows")
	})

	t.Run("fault rupture without mesh rejected", func(t *testing.T) {
		var buf bytes.Buffer
		w := NewSESWriter(&buf, "b1", "b1")
		err := w.Serialize([]domain.StochasticEventSet{{
			Ruptures: []domain.Rupture{faultRupture(nil)},
		}})

		var gerr *nrml.InvalidGeometryError
		require.ErrorAs(t, err, &gerr)
	})

	t.Run("non-fault rupture without surface rejected", func(t *testing.T) {
		var buf bytes.Buffer
		w := NewSESWriter(&buf, "b1", "b1")
		err := w.Serialize([]domain.StochasticEventSet{{
			Ruptures: []domain.Rupture{{Magnitude: 6}},
		}})

		var gerr *nrml.InvalidGeometryError
		require.ErrorAs(t, err, &gerr)
		assert.Contains(t, gerr.Error(), "planar surface")
	})
}
