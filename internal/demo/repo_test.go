package demo_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"jjdiverge.dev/jjdiverge/internal/demo"
	jjerrors "jjdiverge.dev/jjdiverge/internal/errors"
	"jjdiverge.dev/jjdiverge/internal/jj"
)

func TestSampleRepo(t *testing.T) {
	ctx := context.Background()
	r := demo.NewSampleRepo()

	ids, err := r.ListDivergentChangeIDs(ctx)
	require.NoError(t, err)
	require.Equal(t, []jj.ChangeID{"kxqpzlmw", "wlsmrkto"}, ids)

	infos, err := r.ResolveChangeIDs(ctx, ids)
	require.NoError(t, err)
	require.Len(t, infos, 4)
	assert.Equal(t, jj.ChangeID("wlsmrkto"), infos[0].ChangeID)
	assert.Equal(t, jj.ChangeID("kxqpzlmw"), infos[2].ChangeID)

	stack, err := r.Stack(ctx)
	require.NoError(t, err)
	assert.Contains(t, stack, "kxqpzlmw??")
	assert.Contains(t, stack, "Wire retry into sync")
}

func TestResolveChangeIDsSkipsDescendants(t *testing.T) {
	ctx := context.Background()
	r := demo.NewRepo()
	base := r.Add(demo.Commit{ChangeID: "aaa"})
	r.Add(demo.Commit{ChangeID: "aaa", Parents: []jj.CommitID{base}})
	other := r.Add(demo.Commit{ChangeID: "aaa"})

	infos, err := r.ResolveChangeIDs(ctx, []jj.ChangeID{"aaa"})
	require.NoError(t, err)
	require.Len(t, infos, 2)
	assert.Equal(t, other, infos[0].CommitID)
	assert.Equal(t, base, infos[1].CommitID)
}

func TestRebase(t *testing.T) {
	ctx := context.Background()

	t.Run("moves children and rewrites their ids", func(t *testing.T) {
		r := demo.NewRepo()
		left := r.Add(demo.Commit{ChangeID: "aaa"})
		right := r.Add(demo.Commit{ChangeID: "aaa"})
		child := r.Add(demo.Commit{ChangeID: "bbb", Parents: []jj.CommitID{left}})
		grandchild := r.Add(demo.Commit{ChangeID: "ccc", Parents: []jj.CommitID{child}})

		_, err := r.Rebase(ctx, left, right)
		require.NoError(t, err)

		_, ok := r.Commit(child)
		assert.False(t, ok, "child should have been rewritten")
		_, ok = r.Commit(grandchild)
		assert.False(t, ok, "grandchild should have been rewritten")

		var moved demo.Commit
		for _, c := range r.Visible() {
			if c.ChangeID == "bbb" {
				moved = c
			}
		}
		require.Equal(t, []jj.CommitID{right}, moved.Parents)
		assert.Equal(t, []string{"rebase -s " + string(left) + "+ -d " + string(right)}, r.Operations())
	})

	t.Run("reports an empty revision set without children", func(t *testing.T) {
		r := demo.NewRepo()
		left := r.Add(demo.Commit{ChangeID: "aaa"})
		right := r.Add(demo.Commit{ChangeID: "aaa"})

		_, err := r.Rebase(ctx, left, right)
		require.ErrorIs(t, err, jjerrors.ErrEmptyRevisionSet)
		assert.Empty(t, r.Operations())
	})
}

func TestAbandonReparentsChildren(t *testing.T) {
	ctx := context.Background()
	r := demo.NewRepo()
	trunk := r.Add(demo.Commit{ChangeID: "ttt"})
	left := r.Add(demo.Commit{ChangeID: "aaa", Parents: []jj.CommitID{trunk}})
	r.Add(demo.Commit{ChangeID: "bbb", Parents: []jj.CommitID{left}})

	_, err := r.Abandon(ctx, left)
	require.NoError(t, err)

	_, ok := r.Commit(left)
	assert.False(t, ok)
	for _, c := range r.Visible() {
		if c.ChangeID == "bbb" {
			assert.Equal(t, []jj.CommitID{trunk}, c.Parents)
		}
	}

	_, err = r.Abandon(ctx, left)
	require.Error(t, err)
}

func TestSquashKeepsDestinationDescription(t *testing.T) {
	ctx := context.Background()
	r := demo.NewRepo()
	left := r.Add(demo.Commit{ChangeID: "aaa", Description: "left", Files: map[string]string{"a": "1\n"}})
	right := r.Add(demo.Commit{ChangeID: "aaa", Description: "right", Files: map[string]string{"b": "2\n"}})

	_, err := r.Squash(ctx, left, right)
	require.NoError(t, err)

	visible := r.Visible()
	require.Len(t, visible, 1)
	assert.Equal(t, "right", visible[0].Description)
	assert.Equal(t, map[string]string{"a": "1\n", "b": "2\n"}, visible[0].Files)

	ids, err := r.ListDivergentChangeIDs(ctx)
	require.NoError(t, err)
	assert.Empty(t, ids)
}

func TestInterdiff(t *testing.T) {
	ctx := context.Background()
	r := demo.NewRepo()
	same := map[string]string{"f": "x\n"}
	a := r.Add(demo.Commit{ChangeID: "aaa", Files: same})
	b := r.Add(demo.Commit{ChangeID: "aaa", Files: same})
	c := r.Add(demo.Commit{ChangeID: "aaa", Files: map[string]string{"f": "y\n"}})

	out, err := r.Interdiff(ctx, a, b, true)
	require.NoError(t, err)
	assert.Empty(t, out)

	out, err = r.Interdiff(ctx, a, c, true)
	require.NoError(t, err)
	assert.Contains(t, out, "diff --git a/f b/f")
	assert.Contains(t, out, "-x")
	assert.Contains(t, out, "+y")

	out, err = r.Interdiff(ctx, a, c, false)
	require.NoError(t, err)
	assert.Contains(t, out, "Modified regular file f:")
}

func TestFailNextAndCalls(t *testing.T) {
	ctx := context.Background()
	r := demo.NewRepo()
	rev := r.Add(demo.Commit{ChangeID: "aaa"})
	boom := errors.New("boom")

	r.FailNext("Abandon", boom)
	_, err := r.Abandon(ctx, rev)
	require.ErrorIs(t, err, boom)

	_, err = r.Abandon(ctx, rev)
	require.NoError(t, err)
	assert.Equal(t, 2, r.Calls("Abandon"))
}

func TestOnResolveRunsBeforeResolution(t *testing.T) {
	ctx := context.Background()
	r := demo.NewRepo()
	left := r.Add(demo.Commit{ChangeID: "aaa"})
	r.Add(demo.Commit{ChangeID: "aaa"})

	r.OnResolve = func([]jj.ChangeID) {
		_, _ = r.Abandon(ctx, left)
	}

	infos, err := r.ResolveChangeIDs(ctx, []jj.ChangeID{"aaa"})
	require.NoError(t, err)
	assert.Len(t, infos, 1)
}
