// Package blacklist derives the forbidden directed edge set that every
// structure search over a lagged dataset must honor.
//
// Rules applied by Build, each producing directed forbidden edges:
//
//  1. Between two distinct lineup-statistic variables: both directions.
//  2. From any non-lineup variable to any lineup-statistic variable
//     (the reverse lineup -> non-lineup direction stays allowed).
//  3. Temporal ordering: an edge from a less-lagged (more current) slice
//     into a more-lagged (earlier) slice is forbidden; the past may point
//     at the present, never the other way round.
//  4. Within each lagged slice (lag_1..lag_L): both directions between any
//     two distinct variables. The current slice is exempt, so
//     contemporaneous edges among current variables remain possible.
//
// Self-pairs are skipped everywhere: self-loops are structurally
// impossible in a core.DAG, so they never need blacklisting.
//
// The result is deduplicated, immutable, and safe for concurrent readers.
package blacklist
