// Package domain models computed seismic-hazard and risk analysis results.
//
// # Result shapes
//
// Six hazard result kinds and three risk result kinds flow through the
// export layer:
//
//	hazard curves     — poE sequences per site, sharing one IML axis
//	hazard map        — flat (lon, lat, iml) triples
//	event-based GMFs  — gmfSet → gmf → node hierarchy per logic-tree realization
//	scenario GMFs     — the same gmf/node shape without the set wrapper
//	event sets (SES)  — rupture catalogs with mesh or planar-surface geometry
//	disaggregation    — N-dimensional probability matrices over labeled axes
//	loss curves       — per-asset loss exceedance curves
//	aggregate curve   — one whole-exposure loss exceedance curve
//	loss map          — per-asset losses at a fixed poE, grouped by site
//
// All records are read-only inputs produced by an upstream calculation
// stage; nothing in this repository mutates them.
//
// # Bundles
//
// Upstream calculators hand results over as JSON bundles: an envelope with a
// kind tag, the descriptive metadata for the document container, and a
// kind-specific payload (see [Bundle]). The export layer decodes the bundle
// and drives the matching NRML writer.
//
// # Disaggregation matrices
//
// A disaggregation matrix is stored flat in row-major order with an explicit
// shape ([Matrix]). The dimension labels (Mag, Dist, Lon, Lat, Eps, TRT)
// give meaning to each axis and tie it to the bin-edge sequences carried in
// the collection metadata.
package domain
