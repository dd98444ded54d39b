package cst_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/kotlint/pkg/cst"
)

func TestInsertAndAppend(t *testing.T) {
	t.Parallel()

	s := buildSample(t)
	rev := s.tree.Revision()

	require.NoError(t, s.tree.InsertBefore(s.x, s.tree.NewLeaf(cst.KindWhitespace, " ")))
	require.NoError(t, s.tree.InsertAfter(s.x, s.tree.NewLeaf(cst.KindComma, ",")))
	require.NoError(t, s.tree.AppendChild(s.tree.Root(), s.tree.NewLeaf(cst.KindEOLComment, "// end")))
	require.NoError(t, s.tree.PrependChild(s.tree.Root(), s.tree.NewLeaf(cst.KindKDoc, "/** a */")))

	assert.Equal(t, "/** a */val a = f( x,)\n// end", s.tree.Text())
	assert.Greater(t, s.tree.Revision(), rev)
}

func TestRemoveMakesSubtreeStale(t *testing.T) {
	t.Parallel()

	s := buildSample(t)
	arg := s.x.Parent()

	require.NoError(t, s.tree.Remove(arg))

	assert.Equal(t, "val a = f()\n", s.tree.Text())
	assert.True(t, arg.Stale())
	assert.True(t, s.x.Stale(), "descendants become stale with their ancestor")
	assert.False(t, s.x.Attached())
	assert.Equal(t, -1, s.x.Offset())

	err := s.tree.ReplaceText(s.x, "y")
	require.Error(t, err)
	assert.True(t, cst.IsStale(err))

	var stale *cst.StaleNodeError
	require.ErrorAs(t, err, &stale)
	assert.Equal(t, "ReplaceText", stale.Op)
}

func TestReplace(t *testing.T) {
	t.Parallel()

	s := buildSample(t)
	replacement := s.tree.NewLeaf(cst.KindNumber, "42")

	require.NoError(t, s.tree.Replace(s.call, replacement))

	assert.Equal(t, "val a = 42\n", s.tree.Text())
	assert.True(t, s.call.Stale())
	assert.True(t, replacement.Attached())
}

func TestReplaceTextKeepsHandle(t *testing.T) {
	t.Parallel()

	s := buildSample(t)
	require.NoError(t, s.tree.ReplaceText(s.x, "value"))

	assert.True(t, s.x.Valid())
	assert.Equal(t, "val a = f(value)\n", s.tree.Text())

	err := s.tree.ReplaceText(s.call, "g()")
	assert.ErrorIs(t, err, cst.ErrNotLeaf)
}

func TestSplitAndMergeWhitespace(t *testing.T) {
	t.Parallel()

	tree := cst.NewTree()
	ws := tree.NewLeaf(cst.KindWhitespace, "\n\n    ")
	root := tree.NewComposite(cst.KindFile, tree.NewLeaf(cst.KindIdentifier, "a"), ws)
	require.NoError(t, tree.SetRoot(root))

	first, second, err := tree.SplitWhitespace(ws, 1)
	require.NoError(t, err)
	assert.Equal(t, ws, first)
	assert.Equal(t, "\n", first.Text())
	assert.Equal(t, "\n    ", second.Text())
	assert.Equal(t, 3, root.ChildCount())

	merged, err := tree.MergeWhitespace(first, second)
	require.NoError(t, err)
	assert.Equal(t, "\n\n    ", merged.Text())
	assert.True(t, second.Stale())
	assert.Equal(t, "a\n\n    ", tree.Text())

	_, _, err = tree.SplitWhitespace(ws, 0)
	require.ErrorIs(t, err, cst.ErrInvalidOffset)
	_, _, err = tree.SplitWhitespace(root.FirstChild(), 1)
	require.ErrorIs(t, err, cst.ErrNotWhitespace)
}

func TestMutationErrors(t *testing.T) {
	t.Parallel()

	s := buildSample(t)
	other := cst.NewTree()

	tests := []struct {
		name string
		run  func() error
		want error
	}{
		{
			name: "absent anchor",
			run:  func() error { return s.tree.InsertBefore(cst.Node{}, s.tree.NewLeaf(cst.KindComma, ",")) },
			want: cst.ErrAbsentNode,
		},
		{
			name: "foreign node",
			run:  func() error { return s.tree.InsertAfter(s.x, other.NewLeaf(cst.KindComma, ",")) },
			want: cst.ErrForeignNode,
		},
		{
			name: "already attached",
			run:  func() error { return s.tree.AppendChild(s.tree.Root(), s.x) },
			want: cst.ErrAlreadyInTree,
		},
		{
			name: "append to leaf",
			run:  func() error { return s.tree.AppendChild(s.x, s.tree.NewLeaf(cst.KindComma, ",")) },
			want: cst.ErrNotComposite,
		},
		{
			name: "remove root",
			run:  func() error { return s.tree.Remove(s.tree.Root()) },
			want: cst.ErrNoParent,
		},
		{
			name: "merge non-adjacent",
			run: func() error {
				ws := s.prop.Children()
				_, err := s.tree.MergeWhitespace(ws[1], ws[3])
				return err
			},
			want: cst.ErrNotAdjacent,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.run()
			require.Error(t, err)
			assert.True(t, errors.Is(err, tt.want), "got %v", err)
		})
	}
}

func TestCyclicMutation(t *testing.T) {
	t.Parallel()

	tree := cst.NewTree()
	inner := tree.NewComposite(cst.KindExpression)
	outer := tree.NewComposite(cst.KindExpression, inner)

	// outer is detached, so only the ancestor check can reject this.
	err := tree.AppendChild(inner, outer)
	require.ErrorIs(t, err, cst.ErrCyclicMutation)
}
