// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev
//
// This file defines the statement variants of a git graph document. Each
// variant mirrors one directive of the diagram language and keeps the exact
// optionality of the source: required fields are plain values, optional ones
// are pointers or nil-able slices.

package model

// Statement kinds, as carried by the `$type` discriminant of the serialized AST.
const (
	KindCommit        = "Commit"
	KindBranch        = "Branch"
	KindMerge         = "Merge"
	KindCheckout      = "Checkout"
	KindCherryPicking = "CherryPicking"
)

// Statement is one directive of a Graph. The set of implementations is closed
// to this package.
type Statement interface {
	// Kind returns the discriminant of the statement.
	Kind() string
	statement()
}

// Commit adds a commit to the current branch.
type Commit struct {
	ID      string
	Message *string
	Type    *string
	Tags    []string
}

// Branch creates a new branch from the current head.
type Branch struct {
	Name  string
	Order *int
}

// Merge merges Branch into the current branch.
type Merge struct {
	Branch string
	ID     *string
	Type   *string
	Tags   []string
}

// Checkout switches the current branch.
type Checkout struct {
	Branch string
}

// CherryPicking copies commit ID onto the current branch. Parent selects the
// parent to follow when ID is a merge commit.
type CherryPicking struct {
	ID     string
	Tags   []string
	Parent string
}

// Unknown is a statement whose discriminant was not recognized by the decoder.
type Unknown struct {
	Type string
}

func (*Commit) Kind() string        { return KindCommit }
func (*Branch) Kind() string        { return KindBranch }
func (*Merge) Kind() string         { return KindMerge }
func (*Checkout) Kind() string      { return KindCheckout }
func (*CherryPicking) Kind() string { return KindCherryPicking }
func (u *Unknown) Kind() string {
	if u == nil {
		return ""
	}
	return u.Type
}

func (*Commit) statement()        {}
func (*Branch) statement()        {}
func (*Merge) statement()         {}
func (*Checkout) statement()      {}
func (*CherryPicking) statement() {}
func (*Unknown) statement()       {}

// String returns a pointer to s. Decoders and tests use it to fill optional
// fields.
func String(s string) *string { return &s }

// Int returns a pointer to i.
func Int(i int) *int { return &i }
