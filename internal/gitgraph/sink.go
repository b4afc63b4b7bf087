package gitgraph

import (
	"fmt"

	"github.com/vk/gitgraphgo/internal/diagram"
	"github.com/vk/gitgraphgo/internal/model"
)

// Sink is the graph database a document is replayed against. Arguments are
// positional and arrive in the order documented on each method.
type Sink interface {
	diagram.CommonSink

	SetDirection(dir string) error
	// Commit adds a commit on the current branch.
	Commit(message, id string, typ CommitType, tags []string) error
	// Branch creates a branch at the current head.
	Branch(name string, order int) error
	// Merge merges branch into the current branch. A nil typ leaves the choice
	// of commit type to the sink.
	Merge(branch, id string, typ *CommitType, tags []string) error
	Checkout(branch string) error
	// CherryPick copies commit id onto the current branch. targetID is always
	// empty when called from Populate.
	CherryPick(id, targetID string, tags []string, parent string) error
}

// CommitType is the numeric code of a commit's type.
type CommitType int

const (
	Normal CommitType = iota
	Reverse
	Highlight
	// MergeCommit and CherryPickCommit are assigned by sinks, never by documents.
	MergeCommit
	CherryPickCommit
)

var commitTypeNames = [...]string{
	Normal:           model.TypeNormal,
	Reverse:          model.TypeReverse,
	Highlight:        model.TypeHighlight,
	MergeCommit:      "MERGE",
	CherryPickCommit: "CHERRY_PICK",
}

func (t CommitType) String() string {
	if t < 0 || int(t) >= len(commitTypeNames) {
		return fmt.Sprintf("CommitType(%d)", int(t))
	}
	return commitTypeNames[t]
}

// MarshalText encodes the type by name so serialized calls and states read
// "MERGE" rather than 3.
func (t CommitType) MarshalText() ([]byte, error) {
	return []byte(t.String()), nil
}

// documentTypes maps the type tags a document may carry to their codes.
var documentTypes = map[string]CommitType{
	model.TypeNormal:    Normal,
	model.TypeReverse:   Reverse,
	model.TypeHighlight: Highlight,
}

// ParseCommitType maps a document type tag to its code.
func ParseCommitType(tag string) (CommitType, error) {
	t, ok := documentTypes[tag]
	if !ok {
		return 0, fmt.Errorf("%w: %q", ErrUnknownCommitType, tag)
	}
	return t, nil
}
