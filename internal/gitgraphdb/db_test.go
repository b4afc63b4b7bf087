package gitgraphdb

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vk/gitgraphgo/internal/ctxlog"
	"github.com/vk/gitgraphgo/internal/gitgraph"
	"github.com/vk/gitgraphgo/internal/model"
)

// newTestDB returns a DB with predictable generated ids ("<seq>-id<n>").
func newTestDB(opts ...Option) *DB {
	n := 0
	gen := func() string {
		n++
		return fmt.Sprintf("id%d", n)
	}
	return New(append([]Option{WithIDGenerator(gen)}, opts...)...)
}

func typePtr(t gitgraph.CommitType) *gitgraph.CommitType { return &t }

func TestNew(t *testing.T) {
	db := newTestDB()
	assert.Equal(t, "main", db.CurrentBranch())
	assert.Equal(t, "LR", db.Direction())
	assert.Nil(t, db.Head())
	assert.Empty(t, db.Commits())
	assert.Equal(t, []Branch{{Name: "main"}}, db.Branches())

	custom := New(WithMainBranch("trunk", 2))
	assert.Equal(t, "trunk", custom.CurrentBranch())
	assert.Equal(t, []Branch{{Name: "trunk", Order: 2}}, custom.Branches())
}

func TestCommit(t *testing.T) {
	db := newTestDB()

	require.NoError(t, db.Commit("first", "", gitgraph.Normal, nil))
	require.NoError(t, db.Commit("second", "c2", gitgraph.Highlight, []string{"v1"}))

	commits := db.Commits()
	require.Len(t, commits, 2)

	assert.Equal(t, "0-id1", commits[0].ID)
	assert.False(t, commits[0].CustomID)
	assert.Equal(t, []string{}, commits[0].Parents)
	assert.Equal(t, []string{}, commits[0].Tags)

	assert.Equal(t, "c2", commits[1].ID)
	assert.True(t, commits[1].CustomID)
	assert.Equal(t, 1, commits[1].Seq)
	assert.Equal(t, gitgraph.Highlight, commits[1].Type)
	assert.Equal(t, []string{"0-id1"}, commits[1].Parents)
	assert.Equal(t, []string{"v1"}, commits[1].Tags)
	assert.Equal(t, "main", commits[1].Branch)
	assert.Same(t, commits[1], db.Head())

	err := db.Commit("again", "c2", gitgraph.Normal, nil)
	assert.ErrorIs(t, err, ErrDuplicateCommit)
}

func TestBranchAndCheckout(t *testing.T) {
	db := newTestDB()
	require.NoError(t, db.Commit("", "a", gitgraph.Normal, nil))
	require.NoError(t, db.Branch("dev", 1))

	assert.Equal(t, "dev", db.CurrentBranch(), "branch checks out the new branch")
	assert.Equal(t, "a", db.Head().ID)

	require.NoError(t, db.Commit("", "b", gitgraph.Normal, nil))
	assert.Equal(t, "dev", db.Head().Branch)

	require.NoError(t, db.Checkout("main"))
	assert.Equal(t, "a", db.Head().ID)

	assert.ErrorIs(t, db.Branch("dev", 0), ErrBranchExists)
	assert.ErrorIs(t, db.Checkout("nope"), ErrBranchNotFound)

	assert.Equal(t, []Branch{
		{Name: "main", Order: 0, Head: "a"},
		{Name: "dev", Order: 1, Head: "b"},
	}, db.Branches())
}

func TestBranches_OrderThenCreation(t *testing.T) {
	db := newTestDB()
	require.NoError(t, db.Branch("z", 0))
	require.NoError(t, db.Branch("late", 5))
	require.NoError(t, db.Branch("a", 0))

	var names []string
	for _, b := range db.Branches() {
		names = append(names, b.Name)
	}
	assert.Equal(t, []string{"main", "z", "a", "late"}, names)
}

func TestMerge(t *testing.T) {
	setup := func(t *testing.T) *DB {
		t.Helper()
		db := newTestDB()
		require.NoError(t, db.Commit("", "a", gitgraph.Normal, nil))
		require.NoError(t, db.Branch("dev", 1))
		require.NoError(t, db.Commit("", "b", gitgraph.Normal, nil))
		require.NoError(t, db.Checkout("main"))
		return db
	}

	t.Run("creates a merge commit", func(t *testing.T) {
		db := setup(t)
		require.NoError(t, db.Merge("dev", "", nil, nil))

		m := db.Head()
		assert.Equal(t, "2-id1", m.ID)
		assert.Equal(t, gitgraph.MergeCommit, m.Type)
		assert.Nil(t, m.CustomType)
		assert.Equal(t, []string{"a", "b"}, m.Parents)
		assert.Equal(t, "merged branch dev into main", m.Message)
		assert.Equal(t, "main", m.Branch)
	})

	t.Run("keeps custom id, type and tags", func(t *testing.T) {
		db := setup(t)
		require.NoError(t, db.Merge("dev", "m1", typePtr(gitgraph.Reverse), []string{"rel"}))

		m := db.Head()
		assert.Equal(t, "m1", m.ID)
		assert.True(t, m.CustomID)
		assert.Equal(t, typePtr(gitgraph.Reverse), m.CustomType)
		assert.Equal(t, []string{"rel"}, m.Tags)
	})

	testCases := []struct {
		name   string
		setup  func(t *testing.T) *DB
		branch string
		id     string
	}{
		{name: "into itself", setup: setup, branch: "main"},
		{name: "unknown branch", setup: setup, branch: "ghost"},
		{name: "duplicate custom id", setup: setup, branch: "dev", id: "a"},
		{
			name: "same head",
			setup: func(t *testing.T) *DB {
				db := setup(t)
				require.NoError(t, db.Branch("copy", 2))
				require.NoError(t, db.Checkout("main"))
				return db
			},
			branch: "copy",
		},
		{
			name: "current branch without commits",
			setup: func(t *testing.T) *DB {
				db := newTestDB()
				require.NoError(t, db.Branch("dev", 1))
				require.NoError(t, db.Commit("", "b", gitgraph.Normal, nil))
				require.NoError(t, db.Checkout("main"))
				return db
			},
			branch: "dev",
		},
		{
			name: "merged branch without commits",
			setup: func(t *testing.T) *DB {
				db := newTestDB()
				require.NoError(t, db.Branch("empty", 1))
				require.NoError(t, db.Checkout("main"))
				require.NoError(t, db.Commit("", "a", gitgraph.Normal, nil))
				return db
			},
			branch: "empty",
		},
	}
	for _, tc := range testCases {
		t.Run("rejects "+tc.name, func(t *testing.T) {
			db := tc.setup(t)
			err := db.Merge(tc.branch, tc.id, nil, nil)
			assert.ErrorIs(t, err, ErrInvalidMerge)
		})
	}
}

func TestCherryPick(t *testing.T) {
	setup := func(t *testing.T) *DB {
		t.Helper()
		db := newTestDB()
		require.NoError(t, db.Commit("base", "a", gitgraph.Normal, nil))
		require.NoError(t, db.Branch("dev", 1))
		require.NoError(t, db.Commit("fix", "b", gitgraph.Normal, nil))
		require.NoError(t, db.Checkout("main"))
		require.NoError(t, db.Commit("other", "c", gitgraph.Normal, nil))
		return db
	}

	t.Run("copies a commit with a default tag", func(t *testing.T) {
		db := setup(t)
		require.NoError(t, db.CherryPick("b", "", nil, ""))

		c := db.Head()
		assert.Equal(t, gitgraph.CherryPickCommit, c.Type)
		assert.Equal(t, []string{"c", "b"}, c.Parents)
		assert.Equal(t, []string{"cherry-pick:b"}, c.Tags)
		assert.Equal(t, "cherry-picked fix into main", c.Message)
	})

	t.Run("keeps explicit tags and drops empty ones", func(t *testing.T) {
		db := setup(t)
		require.NoError(t, db.CherryPick("b", "", []string{"hotfix", ""}, ""))
		assert.Equal(t, []string{"hotfix"}, db.Head().Tags)
	})

	t.Run("merge commits need a parent", func(t *testing.T) {
		db := setup(t)
		require.NoError(t, db.Merge("dev", "m", nil, nil))
		require.NoError(t, db.Checkout("dev"))
		require.NoError(t, db.Commit("", "d", gitgraph.Normal, nil))

		assert.ErrorIs(t, db.CherryPick("m", "", nil, ""), ErrInvalidCherryPick)
		assert.ErrorIs(t, db.CherryPick("m", "", nil, "zzz"), ErrInvalidCherryPick)

		require.NoError(t, db.CherryPick("m", "", nil, "c"))
		assert.Equal(t, []string{"cherry-pick:m|parent:c"}, db.Head().Tags)
	})

	t.Run("rejects invalid picks", func(t *testing.T) {
		db := setup(t)
		assert.ErrorIs(t, db.CherryPick("ghost", "", nil, ""), ErrInvalidCherryPick)
		assert.ErrorIs(t, db.CherryPick("", "", nil, ""), ErrInvalidCherryPick)
		assert.ErrorIs(t, db.CherryPick("c", "", nil, ""), ErrInvalidCherryPick, "already on current branch")

		// A branch created before any commit has no head to pick onto.
		fresh := newTestDB()
		require.NoError(t, fresh.Branch("orphan", 1))
		require.NoError(t, fresh.Commit("", "x", gitgraph.Normal, nil))
		require.NoError(t, fresh.Checkout("main"))
		assert.ErrorIs(t, fresh.CherryPick("x", "", nil, ""), ErrInvalidCherryPick)
	})
}

func TestPopulateIntoDB(t *testing.T) {
	ctx := ctxlog.WithLogger(context.Background(), ctxlog.Discard())
	g := &model.Graph{
		Direction: model.String("TB"),
		Title:     model.String("flow"),
		Statements: []model.Statement{
			&model.Commit{ID: "1", Message: model.String("test"), Tags: []string{"tag1", "tag2"}, Type: model.String("NORMAL")},
			&model.Branch{Name: "newBranch", Order: model.Int(1)},
			&model.Commit{ID: "2"},
			&model.Checkout{Branch: "main"},
			&model.Merge{Branch: "newBranch", ID: model.String("m")},
			&model.Checkout{Branch: "newBranch"},
			&model.Commit{ID: "3"},
			&model.Checkout{Branch: "main"},
			&model.CherryPicking{ID: "3", Parent: "2"},
		},
	}

	db := newTestDB()
	require.NoError(t, gitgraph.Populate(ctx, g, db))

	state := db.State()
	assert.Equal(t, "TB", state.Direction)
	assert.Equal(t, "flow", state.Title)
	assert.Equal(t, "main", state.CurrentBranch)
	require.Len(t, state.Commits, 5)
	assert.Equal(t, []string{"1", "2", "m", "3"}, []string{
		state.Commits[0].ID, state.Commits[1].ID, state.Commits[2].ID, state.Commits[3].ID,
	})
	assert.Equal(t, gitgraph.CherryPickCommit, state.Commits[4].Type)
	assert.Equal(t, []string{"m", "3"}, state.Commits[4].Parents)
}

func TestPopulateIntoDB_SinkErrorPropagates(t *testing.T) {
	ctx := ctxlog.WithLogger(context.Background(), ctxlog.Discard())
	g := &model.Graph{Statements: []model.Statement{&model.Checkout{Branch: "ghost"}}}

	err := gitgraph.Populate(ctx, g, newTestDB())
	assert.ErrorIs(t, err, ErrBranchNotFound)
}
