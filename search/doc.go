// Package search defines the contract between this harness and the
// external graph-search and fitting engines it drives.
//
// The harness never explores graph space or computes scores itself; it
// hands an Engine the data, a scoring criterion, a blacklist, an optional
// seed graph, and algorithm hyperparameters, and gets back a best-scoring
// acyclic graph. Parameter fitting and hold-out log-likelihood loss go
// through the Evaluator interface the same way.
//
// Engines must guarantee that a returned graph is acyclic and contains no
// blacklisted edge; the learn package re-checks both before trusting a
// result.
package search
