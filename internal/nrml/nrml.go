// Package nrml holds the pieces shared by every NRML writer: namespace
// constants, the result metadata record and its validation rules, the
// declarative attribute mapping tables, the canonical numeric rendering,
// and the error taxonomy.
//
// NRML (Natural hazard Risk Markup Language) is the XML interchange format
// consumed by downstream mapping and risk tools. Attribute names emitted
// here are a wire contract and must not be changed.
package nrml

import "github.com/couchcryptid/hazard-nrml-export/internal/xmltree"

// Namespace is the default NRML document namespace.
const Namespace = "http://openquake.org/xmlns/nrml/0.4"

// GMLNamespace is the OpenGIS GML namespace used for point geometry.
const GMLNamespace = "http://www.opengis.net/gml"

// Attribute names shared by several writers.
const (
	SourceModelTreePathAttr = "sourceModelTreePath"
	GSIMTreePathAttr        = "gsimTreePath"
)

// NewRoot returns an <nrml> root element with the gml and default namespace
// declarations set.
func NewRoot() *xmltree.Element {
	root := xmltree.New("nrml")
	root.SetAttr("xmlns:gml", GMLNamespace)
	root.SetAttr("xmlns", Namespace)
	return root
}

// AppendLocation appends the GML encoding of a lon/lat position to el:
// a gml:Point holding a gml:pos with "lon lat" text.
func AppendLocation(el *xmltree.Element, lon, lat float64) {
	point := el.Child("gml:Point")
	pos := point.Child("gml:pos")
	pos.Text = FormatFloat(lon) + " " + FormatFloat(lat)
}
