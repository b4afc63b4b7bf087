// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev

package model

// DiagramKind is the identifier the parser registry uses for git graph documents.
const DiagramKind = "gitGraph"

// Graph is the root of a parsed git graph document.
type Graph struct {
	// Direction is the layout direction (e.g. "LR", "TB", "BT"). Nil when the
	// document does not specify one.
	Direction *string

	Title    *string
	AccTitle *string
	AccDescr *string

	Statements []Statement
}

// Commit types accepted by the `type` field of commit and merge statements.
const (
	TypeNormal    = "NORMAL"
	TypeReverse   = "REVERSE"
	TypeHighlight = "HIGHLIGHT"
)

// CommitTypes lists the closed set of commit type tags in declaration order.
var CommitTypes = []string{TypeNormal, TypeReverse, TypeHighlight}

// IsCommitType reports whether tag belongs to the closed set of commit types.
func IsCommitType(tag string) bool {
	for _, t := range CommitTypes {
		if t == tag {
			return true
		}
	}
	return false
}
