// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev
//
// Package model provides the Go representation of an already-parsed git graph
// document. Decoders (HCL, serialized AST) produce it; the gitgraph package
// consumes it and replays it against a Sink.
//
// # Core Concepts
//
//   - Graph: The root of one diagram. It carries the optional layout direction,
//     the common diagram fields (title and accessibility text) and the ordered
//     list of statements.
//
//   - Statement: A single directive inside a Graph. It is a closed set of
//     variants (Commit, Branch, Merge, Checkout, CherryPicking) identified by
//     their Kind. Decoders that meet a discriminant they do not know emit an
//     Unknown statement instead of failing, so a single malformed directive
//     never hides the rest of the document.
//
// # Optional fields
//
// Optional scalars are pointers: nil means the field was absent from the
// source document, which is not the same as an explicit zero value. Label
// lists follow the same rule with slices: nil is absent, a non-nil empty slice
// is an explicitly empty list.
//
// Values in this package are read-only once a decoder returns them. They are
// consumed by exactly one normalization pass and then discarded.
package model
