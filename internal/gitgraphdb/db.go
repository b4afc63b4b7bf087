package gitgraphdb

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/google/uuid"
	"github.com/vk/gitgraphgo/internal/diagram"
	"github.com/vk/gitgraphgo/internal/gitgraph"
)

var (
	ErrBranchExists      = errors.New("branch already exists")
	ErrBranchNotFound    = errors.New("branch not found")
	ErrDuplicateCommit   = errors.New("commit id already exists")
	ErrInvalidMerge      = errors.New("invalid merge")
	ErrInvalidCherryPick = errors.New("invalid cherry-pick")
)

var _ gitgraph.Sink = (*DB)(nil)

// DefaultMainBranch is the branch a new DB starts on.
const DefaultMainBranch = "main"

// Commit is one node of the graph.
type Commit struct {
	ID       string              `json:"id" yaml:"id"`
	Message  string              `json:"message" yaml:"message"`
	Seq      int                 `json:"seq" yaml:"seq"`
	Type     gitgraph.CommitType `json:"type" yaml:"type"`
	Tags     []string            `json:"tags" yaml:"tags"`
	Parents  []string            `json:"parents" yaml:"parents"`
	Branch   string              `json:"branch" yaml:"branch"`
	CustomID bool                `json:"customId,omitempty" yaml:"customId,omitempty"`
	// CustomType is set when a merge carried an explicit type.
	CustomType *gitgraph.CommitType `json:"customType,omitempty" yaml:"customType,omitempty"`
}

// Branch describes a branch and the commit it points at. Head is empty for a
// branch without commits.
type Branch struct {
	Name  string `json:"name" yaml:"name"`
	Order int    `json:"order" yaml:"order"`
	Head  string `json:"head,omitempty" yaml:"head,omitempty"`
}

type branchConfig struct {
	name  string
	order int
	index int
}

// Option configures a DB.
type Option func(*DB)

// WithMainBranch sets the name and order of the initial branch.
func WithMainBranch(name string, order int) Option {
	return func(db *DB) {
		db.mainBranch = name
		db.mainOrder = order
	}
}

// WithIDGenerator replaces the random suffix used for generated commit ids.
func WithIDGenerator(fn func() string) Option {
	return func(db *DB) { db.newID = fn }
}

// DB is an in-memory git graph.
type DB struct {
	diagram.CommonState

	mainBranch string
	mainOrder  int
	newID      func() string

	direction string
	seq       int
	commits   map[string]*Commit
	branches  map[string]string // name -> head commit id ("" when empty)
	configs   map[string]*branchConfig
	current   string
	head      *Commit
}

// New creates an empty DB with the main branch checked out.
func New(opts ...Option) *DB {
	db := &DB{
		mainBranch: DefaultMainBranch,
		newID:      randomID,
	}
	for _, opt := range opts {
		opt(db)
	}
	db.Clear()
	return db
}

// Clear drops all state and checks out a fresh main branch.
func (db *DB) Clear() {
	db.CommonState.Clear()
	db.direction = "LR"
	db.seq = 0
	db.commits = make(map[string]*Commit)
	db.branches = map[string]string{db.mainBranch: ""}
	db.configs = map[string]*branchConfig{
		db.mainBranch: {name: db.mainBranch, order: db.mainOrder},
	}
	db.current = db.mainBranch
	db.head = nil
}

func randomID() string {
	return strings.ReplaceAll(uuid.NewString(), "-", "")[:7]
}

func (db *DB) generatedID() string {
	return fmt.Sprintf("%d-%s", db.seq, db.newID())
}

func (db *DB) SetDirection(dir string) error {
	db.direction = dir
	return nil
}

func (db *DB) Commit(message, id string, typ gitgraph.CommitType, tags []string) error {
	customID := id != ""
	if !customID {
		id = db.generatedID()
	}
	if _, exists := db.commits[id]; exists {
		return fmt.Errorf("%w: %q", ErrDuplicateCommit, id)
	}

	c := &Commit{
		ID:       id,
		Message:  message,
		Seq:      db.seq,
		Type:     typ,
		Tags:     nonNil(tags),
		Parents:  db.headParents(),
		Branch:   db.current,
		CustomID: customID,
	}
	db.append(c)
	return nil
}

func (db *DB) Branch(name string, order int) error {
	if _, exists := db.branches[name]; exists {
		return fmt.Errorf("%w: %q (use checkout to switch to it)", ErrBranchExists, name)
	}
	head := ""
	if db.head != nil {
		head = db.head.ID
	}
	db.branches[name] = head
	db.configs[name] = &branchConfig{name: name, order: order, index: len(db.configs)}
	return db.Checkout(name)
}

func (db *DB) Checkout(branch string) error {
	head, exists := db.branches[branch]
	if !exists {
		return fmt.Errorf("%w: %q (create it with branch first)", ErrBranchNotFound, branch)
	}
	db.current = branch
	db.head = db.commits[head]
	return nil
}

func (db *DB) Merge(branch, id string, typ *gitgraph.CommitType, tags []string) error {
	current := db.commits[db.branches[db.current]]
	otherHead, otherExists := db.branches[branch]
	other := db.commits[otherHead]

	switch {
	case branch == db.current:
		return fmt.Errorf("%w: cannot merge branch %q into itself", ErrInvalidMerge, branch)
	case current == nil:
		return fmt.Errorf("%w: current branch %q has no commits", ErrInvalidMerge, db.current)
	case !otherExists:
		return fmt.Errorf("%w: branch to be merged %q does not exist", ErrInvalidMerge, branch)
	case other == nil:
		return fmt.Errorf("%w: branch to be merged %q has no commits", ErrInvalidMerge, branch)
	case current == other:
		return fmt.Errorf("%w: both branches have the same head", ErrInvalidMerge)
	}
	if id != "" {
		if _, exists := db.commits[id]; exists {
			return fmt.Errorf("%w: commit %q already exists, use a different custom id", ErrInvalidMerge, id)
		}
	}

	c := &Commit{
		ID:         id,
		Message:    fmt.Sprintf("merged branch %s into %s", branch, db.current),
		Seq:        db.seq,
		Type:       gitgraph.MergeCommit,
		Tags:       nonNil(tags),
		Parents:    []string{current.ID, other.ID},
		Branch:     db.current,
		CustomID:   id != "",
		CustomType: typ,
	}
	if !c.CustomID {
		c.ID = db.generatedID()
	}
	db.append(c)
	return nil
}

// CherryPick copies commit id onto the current branch. targetID is accepted
// for interface compatibility; a non-empty targetID naming an existing commit
// makes the call a no-op.
func (db *DB) CherryPick(id, targetID string, tags []string, parent string) error {
	source, exists := db.commits[id]
	if id == "" || !exists {
		return fmt.Errorf("%w: source commit %q must exist", ErrInvalidCherryPick, id)
	}
	if parent != "" && !contains(source.Parents, parent) {
		return fmt.Errorf("%w: %q is not an immediate parent of %q", ErrInvalidCherryPick, parent, id)
	}
	if source.Type == gitgraph.MergeCommit && parent == "" {
		return fmt.Errorf("%w: cherry-picking merge commit %q requires a parent", ErrInvalidCherryPick, id)
	}
	if _, targetExists := db.commits[targetID]; targetID != "" && targetExists {
		return nil
	}
	if source.Branch == db.current {
		return fmt.Errorf("%w: commit %q is already on branch %q", ErrInvalidCherryPick, id, db.current)
	}
	current := db.commits[db.branches[db.current]]
	if current == nil {
		return fmt.Errorf("%w: current branch %q has no commits", ErrInvalidCherryPick, db.current)
	}

	if tags == nil {
		tag := "cherry-pick:" + source.ID
		if source.Type == gitgraph.MergeCommit {
			tag += "|parent:" + parent
		}
		tags = []string{tag}
	} else {
		tags = nonEmpty(tags)
	}

	c := &Commit{
		ID:      db.generatedID(),
		Message: fmt.Sprintf("cherry-picked %s into %s", source.Message, db.current),
		Seq:     db.seq,
		Type:    gitgraph.CherryPickCommit,
		Tags:    tags,
		Parents: []string{current.ID, source.ID},
		Branch:  db.current,
	}
	db.append(c)
	return nil
}

func (db *DB) append(c *Commit) {
	db.seq++
	db.commits[c.ID] = c
	db.branches[db.current] = c.ID
	db.head = c
}

func (db *DB) headParents() []string {
	if db.head == nil {
		return []string{}
	}
	return []string{db.head.ID}
}

// Direction returns the layout direction, "LR" unless set.
func (db *DB) Direction() string { return db.direction }

// CurrentBranch returns the checked out branch.
func (db *DB) CurrentBranch() string { return db.current }

// Head returns the head commit of the current branch, or nil.
func (db *DB) Head() *Commit { return db.head }

// CommitByID returns the commit with the given id.
func (db *DB) CommitByID(id string) (*Commit, bool) {
	c, ok := db.commits[id]
	return c, ok
}

// Commits returns all commits in creation order.
func (db *DB) Commits() []*Commit {
	out := make([]*Commit, 0, len(db.commits))
	for _, c := range db.commits {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Seq < out[j].Seq })
	return out
}

// Branches returns all branches ordered by their order, then by creation.
func (db *DB) Branches() []Branch {
	configs := make([]*branchConfig, 0, len(db.configs))
	for _, c := range db.configs {
		configs = append(configs, c)
	}
	sort.Slice(configs, func(i, j int) bool {
		if configs[i].order != configs[j].order {
			return configs[i].order < configs[j].order
		}
		return configs[i].index < configs[j].index
	})

	out := make([]Branch, len(configs))
	for i, c := range configs {
		out[i] = Branch{Name: c.name, Order: c.order, Head: db.branches[c.name]}
	}
	return out
}

func nonNil(tags []string) []string {
	if tags == nil {
		return []string{}
	}
	return tags
}

func nonEmpty(tags []string) []string {
	out := make([]string, 0, len(tags))
	for _, t := range tags {
		if t != "" {
			out = append(out, t)
		}
	}
	return out
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
