// Package dataset holds the tabular categorical data the harness learns
// from: an ordered set of normalized column names over rows of discrete
// string levels.
//
// A Dataset is immutable by convention once constructed: every derivation
// (column projection, row subset, resample, hold-out split, lag expansion)
// returns a new Dataset that shares the underlying row storage where safe.
// This is what lets the stability analyzer and cross-validator hand the
// same Dataset to many workers without copies or locks.
//
// The loaders mirror the batch file interfaces of the original pipeline:
// plain CSV for data, "feature,include" CSV for feature-selection files.
// A feature flagged for inclusion keeps its own column plus every lagged
// companion column ("<feature>...lag..."); flagged features absent from
// the dataset are silently skipped, since selection files legitimately
// span datasets.
package dataset
