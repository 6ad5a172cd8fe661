package domain

// Location is a WGS-84 longitude/latitude coordinate pair.
type Location struct {
	Lon float64 `json:"lon"`
	Lat float64 `json:"lat"`
}

// Point3 is a 3D point: longitude, latitude, depth (km).
type Point3 struct {
	Lon   float64 `json:"lon"`
	Lat   float64 `json:"lat"`
	Depth float64 `json:"depth"`
}

// HazardCurve is one probability-of-exceedance curve at a site. The
// intensity-measure levels forming the x-axis are shared across a document
// and travel in the collection metadata, not here.
type HazardCurve struct {
	Location Location  `json:"location"`
	PoEs     []float64 `json:"poes"`
}

// HazardMapNode is one (lon, lat, iml) triple of a hazard map.
type HazardMapNode struct {
	Lon float64 `json:"lon"`
	Lat float64 `json:"lat"`
	IML float64 `json:"iml"`
}

// GMFNode is one ground-motion value at a site.
type GMFNode struct {
	GMV      float64  `json:"gmv"`
	Location Location `json:"location"`
}

// GMF is one ground-motion field: a realization of shaking values over a set
// of sites for a single intensity measure type. SAPeriod and SADamping are
// only meaningful when IMT is "SA".
type GMF struct {
	IMT       string    `json:"imt"`
	SAPeriod  *float64  `json:"sa_period,omitempty"`
	SADamping *float64  `json:"sa_damping,omitempty"`
	Nodes     []GMFNode `json:"nodes"`
}

// GMFSet groups the ground-motion fields simulated over one investigation
// time window.
type GMFSet struct {
	InvestigationTime float64 `json:"investigation_time"`
	GMFs              []GMF   `json:"gmfs"`
}

// Mesh is a rupture surface sampled as parallel row-major grids of
// longitude, latitude, and depth. All three grids must have the same
// dimensions; the writer rejects empty or mismatched grids.
type Mesh struct {
	Lons   [][]float64 `json:"lons"`
	Lats   [][]float64 `json:"lats"`
	Depths [][]float64 `json:"depths"`
}

// PlanarSurface is a rupture surface given as four explicit 3D corners.
type PlanarSurface struct {
	TopLeft     Point3 `json:"top_left"`
	TopRight    Point3 `json:"top_right"`
	BottomRight Point3 `json:"bottom_right"`
	BottomLeft  Point3 `json:"bottom_left"`
}

// Rupture is one simulated earthquake rupture. Its geometry is a closed
// two-variant union keyed by FromFaultSource: ruptures from simple or
// complex fault sources carry a Mesh, ruptures from point or area sources
// carry a PlanarSurface.
type Rupture struct {
	Magnitude       float64        `json:"magnitude"`
	Strike          float64        `json:"strike"`
	Dip             float64        `json:"dip"`
	Rake            float64        `json:"rake"`
	TectonicRegion  string         `json:"tectonic_region"`
	FromFaultSource bool           `json:"from_fault_source"`
	Mesh            *Mesh          `json:"mesh,omitempty"`
	PlanarSurface   *PlanarSurface `json:"planar_surface,omitempty"`
}

// StochasticEventSet is a simulated catalog of ruptures over one
// investigation time window.
type StochasticEventSet struct {
	InvestigationTime float64   `json:"investigation_time"`
	Ruptures          []Rupture `json:"ruptures"`
}

// Disaggregation dimension labels. Each label identifies what one axis of a
// disaggregation matrix represents and which bin-edge metadata defines it.
const (
	DimMag  = "Mag"
	DimDist = "Dist"
	DimLon  = "Lon"
	DimLat  = "Lat"
	DimEps  = "Eps"
	DimTRT  = "TRT"
)

// DisaggResult is one disaggregation histogram: an N-dimensional matrix of
// probability contributions, the labels naming its axes (in matrix axis
// order), and the poe/iml pair it was computed for.
type DisaggResult struct {
	DimLabels []string `json:"dim_labels"`
	Matrix    Matrix   `json:"matrix"`
	PoE       float64  `json:"poe"`
	IML       float64  `json:"iml"`
}
