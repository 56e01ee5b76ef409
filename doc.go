// Package dbnstab is a constraint-aware harness for learning the
// structure of dynamic Bayesian networks from lagged tabular data.
//
// The module prepares everything around an external structure-search and
// parameter-fit engine, and quantifies how trustworthy the learned
// structure is:
//
//	core/      — thread-safe DAG with atomic cycle-rejecting mutation
//	variables/ — lag/group classification of dataset columns
//	blacklist/ — forbidden-edge derivation from the variable partition
//	seedgraph/ — validated starting graphs from user edge lists
//	dataset/   — columnar tabular data, lag expansion, sampling, selection
//	search/    — engine contract: algorithms, criteria, hyperparameters
//	learn/     — structure-learner wrapper around a search engine
//	stability/ — resample/relearn cycles aggregating edge prevalence
//	crossval/  — parallel hold-out cross validation of configurations
//	rng/       — deterministic per-unit random streams from one run seed
//
// The search engine itself is a collaborator, not part of this module:
// anything implementing search.Engine (and search.Evaluator for cross
// validation) plugs in. All exchange with external tooling is batch
// tabular files; there is no network surface.
package dbnstab
