// Package gitgraphdb provides an in-memory implementation of gitgraph.Sink
// that accumulates the commit graph a document describes.
//
// # Model
//
// The database tracks commits by id, branches by name (each pointing at its
// head commit, or at nothing for a branch created before the first commit)
// and the currently checked out branch. It starts with the main branch
// checked out and no commits.
//
// Operations follow git's rules where they apply and fail with a wrapped
// sentinel error otherwise:
//
//   - Branch refuses to overwrite an existing branch (ErrBranchExists).
//   - Checkout refuses unknown branches (ErrBranchNotFound).
//   - Merge refuses self-merges, empty branches and identical heads (ErrInvalidMerge).
//   - CherryPick refuses unknown commits, picks onto the source branch, and
//     merge commits without an explicit parent (ErrInvalidCherryPick).
//
// # Concurrency
//
// A DB is owned by a single normalization pass and is not safe for
// concurrent use.
package gitgraphdb
