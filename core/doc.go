// Package core defines the central DAG and Edge types used throughout
// dbnstab, and provides thread-safe primitives for building, querying,
// and cloning directed acyclic graphs.
//
// Unlike a general-purpose graph, a core.DAG enforces acyclicity as a
// construction invariant: AddEdge rejects any edge that would introduce a
// cycle and leaves the graph unchanged. There are no self-loops, no
// parallel edges, no weights, and no undirected mode: the structure-
// learning harness never needs them.
//
// All mutations acquire a write lock; queries acquire a read lock, so a
// DAG may be shared read-only across goroutines once built.
//
// Errors:
//
//	ErrEmptyVertexID  - vertex ID is the empty string.
//	ErrVertexNotFound - an edge endpoint does not exist in the graph.
//	ErrLoopNotAllowed - attempt to add a self-loop.
//	ErrCycleDetected  - the edge would close a directed cycle.
package core
