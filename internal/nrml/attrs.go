package nrml

import "github.com/couchcryptid/hazard-nrml-export/internal/xmltree"

// AttrMapping binds one logical metadata field to an output attribute name.
// Value returns the rendered attribute text and whether the field is present;
// absent fields emit nothing. Adding a new optional metadata field means
// adding a table entry, not another hand-written assignment.
type AttrMapping struct {
	Attr  string
	Value func(m Metadata) (string, bool)
}

func stringAttr(get func(Metadata) string) func(Metadata) (string, bool) {
	return func(m Metadata) (string, bool) {
		v := get(m)
		return v, v != ""
	}
}

func floatAttr(get func(Metadata) *float64) func(Metadata) (string, bool) {
	return func(m Metadata) (string, bool) {
		p := get(m)
		if p == nil {
			return "", false
		}
		return FormatFloat(*p), true
	}
}

// MetadataAttrs is the ordered mapping of metadata fields to attribute names
// shared by the hazard-curve, hazard-map, and disaggregation writers. Order
// only determines attribute order in the output.
var MetadataAttrs = []AttrMapping{
	{"statistics", stringAttr(func(m Metadata) string { return m.Statistics })},
	{"quantileValue", floatAttr(func(m Metadata) *float64 { return m.QuantileValue })},
	{SourceModelTreePathAttr, stringAttr(func(m Metadata) string { return m.SMLTPath })},
	{GSIMTreePathAttr, stringAttr(func(m Metadata) string { return m.GSIMLTPath })},
	{"IMT", stringAttr(func(m Metadata) string { return m.IMT })},
	{"investigationTime", floatAttr(func(m Metadata) *float64 { return m.InvestigationTime })},
	{"saPeriod", floatAttr(func(m Metadata) *float64 { return m.SAPeriod })},
	{"saDamping", floatAttr(func(m Metadata) *float64 { return m.SADamping })},
	{"poE", floatAttr(func(m Metadata) *float64 { return m.PoE })},
	{"lon", floatAttr(func(m Metadata) *float64 { return m.Lon })},
	{"lat", floatAttr(func(m Metadata) *float64 { return m.Lat })},
}

// SetMetadataAttrs walks the mapping table and sets an attribute on el for
// every metadata field that is present.
func SetMetadataAttrs(el *xmltree.Element, m Metadata, table []AttrMapping) {
	for _, entry := range table {
		if v, ok := entry.Value(m); ok {
			el.SetAttr(entry.Attr, v)
		}
	}
}
