// Package hazard serializes computed seismic-hazard results to NRML XML:
// hazard curves, hazard maps, event-based and scenario ground-motion fields,
// stochastic event sets, and disaggregation matrices.
//
// Each writer targets one output sink and is used for exactly one Serialize
// call: the writer validates its metadata at construction, walks the input
// records in order, builds the complete document tree, and emits it in one
// shot. Writers never mutate their inputs and retain no state after
// Serialize returns. None of them are safe for concurrent use, and none
// need to be.
package hazard
