// Package services holds the error taxonomy and context plumbing shared by
// the organization stages.
//
// Sentinel markers classify failures into the two fatal categories (bad
// input, contested lock) and the per-file transient ones; Wrap attaches
// stage and operation detail while preserving errors.Is matching. Context
// helpers carry the run identifier and stage name so log lines can be
// correlated across stages.
package services
