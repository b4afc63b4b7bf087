package gitgraph

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vk/gitgraphgo/internal/ctxlog"
	"github.com/vk/gitgraphgo/internal/model"
)

func typePtr(t CommitType) *CommitType { return &t }

func testContext(t *testing.T) (context.Context, *bytes.Buffer) {
	t.Helper()
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
	return ctxlog.WithLogger(context.Background(), logger), &buf
}

func TestPopulate_EndToEnd(t *testing.T) {
	ctx, _ := testContext(t)
	g := &model.Graph{
		Statements: []model.Statement{
			&model.Commit{ID: "1", Message: model.String("test"), Tags: []string{"tag1", "tag2"}, Type: model.String("NORMAL")},
			&model.Branch{Name: "newBranch", Order: model.Int(1)},
			&model.Merge{Branch: "newBranch", ID: model.String("1"), Tags: []string{"tag1", "tag2"}, Type: model.String("NORMAL")},
			&model.Checkout{Branch: "newBranch"},
			&model.CherryPicking{ID: "1", Tags: []string{"tag1", "tag2"}, Parent: "2"},
		},
	}

	rec := &Recorder{}
	require.NoError(t, Populate(ctx, g, rec))

	want := []Call{
		{Method: "commit", Args: []any{"test", "1", Normal, []string{"tag1", "tag2"}}},
		{Method: "branch", Args: []any{"newBranch", 1}},
		{Method: "merge", Args: []any{"newBranch", "1", typePtr(Normal), []string{"tag1", "tag2"}}},
		{Method: "checkout", Args: []any{"newBranch"}},
		{Method: "cherryPick", Args: []any{"1", "", []string{"tag1", "tag2"}, "2"}},
	}
	if diff := cmp.Diff(want, rec.Calls); diff != "" {
		t.Errorf("recorded calls mismatch (-want +got):\n%s", diff)
	}
}

func TestPopulate_Direction(t *testing.T) {
	ctx, _ := testContext(t)

	t.Run("absent direction makes no call", func(t *testing.T) {
		rec := &Recorder{}
		require.NoError(t, Populate(ctx, &model.Graph{}, rec))
		assert.Empty(t, rec.Calls)
	})

	t.Run("present direction makes exactly one call", func(t *testing.T) {
		rec := &Recorder{}
		require.NoError(t, Populate(ctx, &model.Graph{Direction: model.String("BT")}, rec))
		require.Len(t, rec.Calls, 1)
		assert.Equal(t, Call{Method: "setDirection", Args: []any{"BT"}}, rec.Calls[0])
	})
}

func TestPopulate_CommonFieldsComeFirst(t *testing.T) {
	ctx, _ := testContext(t)
	g := &model.Graph{
		Title:      model.String("Flow"),
		AccTitle:   model.String("a11y"),
		Direction:  model.String("LR"),
		Statements: []model.Statement{&model.Commit{ID: "a"}},
	}

	rec := &Recorder{}
	require.NoError(t, Populate(ctx, g, rec))
	assert.Equal(t, []string{"setAccTitle", "setDiagramTitle", "setDirection", "commit"}, rec.Methods())
}

func TestPopulate_Defaults(t *testing.T) {
	ctx, _ := testContext(t)
	g := &model.Graph{
		Statements: []model.Statement{
			&model.Commit{ID: "c1"},
			&model.Branch{Name: "dev"},
			&model.Merge{Branch: "dev"},
		},
	}

	rec := &Recorder{}
	require.NoError(t, Populate(ctx, g, rec))
	require.Len(t, rec.Calls, 3)

	commit := rec.Calls[0].Args
	assert.Equal(t, "", commit[0], "message defaults to empty")
	assert.Equal(t, Normal, commit[2], "commit type defaults to Normal")
	assert.True(t, commit[3] == nil, "absent tags stay absent, got %#v", commit[3])

	assert.Equal(t, []any{"dev", 0}, rec.Calls[1].Args)

	merge := rec.Calls[2].Args
	assert.Equal(t, "", merge[1], "merge id defaults to empty")
	assert.True(t, merge[2] == nil, "merge type has no implicit default, got %#v", merge[2])
	assert.True(t, merge[3] == nil, "got %#v", merge[3])
}

func TestPopulate_TypeMapping(t *testing.T) {
	ctx, _ := testContext(t)
	g := &model.Graph{
		Statements: []model.Statement{
			&model.Commit{ID: "a", Type: model.String("REVERSE")},
			&model.Commit{ID: "b", Type: model.String("HIGHLIGHT")},
			&model.Merge{Branch: "x", Type: model.String("HIGHLIGHT")},
		},
	}

	rec := &Recorder{}
	require.NoError(t, Populate(ctx, g, rec))
	assert.Equal(t, Reverse, rec.Calls[0].Args[2])
	assert.Equal(t, Highlight, rec.Calls[1].Args[2])
	assert.Equal(t, typePtr(Highlight), rec.Calls[2].Args[2])
}

func TestPopulate_Tags(t *testing.T) {
	ctx, _ := testContext(t)
	g := &model.Graph{
		Statements: []model.Statement{
			&model.Commit{ID: "a", Tags: []string{}},
			&model.CherryPicking{ID: "a", Tags: []string{}, Parent: "p"},
			&model.CherryPicking{ID: "a", Parent: "p"},
		},
	}

	rec := &Recorder{}
	require.NoError(t, Populate(ctx, g, rec))

	assert.Equal(t, []string{}, rec.Calls[0].Args[3], "commit keeps an explicitly empty list")
	assert.True(t, rec.Calls[1].Args[2] == nil, "cherry-pick collapses an empty list to absent")
	assert.True(t, rec.Calls[2].Args[2] == nil)
	assert.Equal(t, "", rec.Calls[1].Args[1], "cherry-pick target is always empty")
}

func TestPopulate_UnknownStatementIsSkipped(t *testing.T) {
	ctx, logs := testContext(t)
	g := &model.Graph{
		Statements: []model.Statement{
			&model.Commit{ID: "1"},
			&model.Unknown{Type: "Rebase"},
			nil,
			(*model.Unknown)(nil),
			&model.Checkout{Branch: "main"},
		},
	}

	var unknown []string
	rec := &Recorder{}
	err := Populate(ctx, g, rec, WithUnknownHandler(func(kind string) {
		unknown = append(unknown, kind)
	}))

	require.NoError(t, err)
	assert.Equal(t, []string{"commit", "checkout"}, rec.Methods())
	assert.Equal(t, []string{"Rebase", "<nil>", "<nil>"}, unknown)
	assert.Contains(t, logs.String(), "Unknown statement type")
	assert.Contains(t, logs.String(), "Rebase")
}

func TestPopulate_UnknownCommitType(t *testing.T) {
	ctx, _ := testContext(t)
	g := &model.Graph{
		Statements: []model.Statement{&model.Commit{ID: "1", Type: model.String("SPARKLE")}},
	}

	err := Populate(ctx, g, &Recorder{})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUnknownCommitType)
}

type failingSink struct {
	Recorder
	err error
}

func (f *failingSink) Branch(name string, order int) error {
	return f.err
}

func TestPopulate_SinkErrorStopsThePass(t *testing.T) {
	ctx, _ := testContext(t)
	sinkErr := errors.New("branch already exists")
	g := &model.Graph{
		Statements: []model.Statement{
			&model.Commit{ID: "1"},
			&model.Branch{Name: "dev"},
			&model.Checkout{Branch: "dev"},
		},
	}

	sink := &failingSink{err: sinkErr}
	err := Populate(ctx, g, sink)

	require.Error(t, err)
	assert.ErrorIs(t, err, sinkErr)
	assert.Contains(t, err.Error(), "statement 1 (Branch)")
	assert.Equal(t, []string{"commit"}, sink.Methods())
}

func TestCommitType_String(t *testing.T) {
	assert.Equal(t, "NORMAL", Normal.String())
	assert.Equal(t, "CHERRY_PICK", CherryPickCommit.String())
	assert.Equal(t, "CommitType(9)", CommitType(9).String())
}

func TestCommitType_MarshalText(t *testing.T) {
	text, err := MergeCommit.MarshalText()
	require.NoError(t, err)
	assert.Equal(t, "MERGE", string(text))
}
