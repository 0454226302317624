package treebuilder

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/comalice/microstepc/internal/tree"
)

func TestBuilderTrafficLight(t *testing.T) {
	b := New(tree.BindingLate)
	b.State("green").OnEvent(1, nil, "yellow")
	b.State("yellow").OnEvent(1, nil, "red")
	b.State("red").OnEvent(1, nil, "green")

	sc, err := b.Build()
	require.NoError(t, err)
	assert.Equal(t, tree.BindingLate, sc.Binding)
	assert.Len(t, sc.Children, 3)

	green, ok := sc.Children[0].(*tree.State)
	require.True(t, ok)
	require.NotNil(t, green.ID)
	assert.Equal(t, "green", *green.ID)
	require.Len(t, green.Children, 1)
	transition, ok := green.Children[0].(*tree.Transition)
	require.True(t, ok)
	assert.Equal(t, []string{"yellow"}, transition.Targets)
}

func TestBuilderAutoCreatesDottedParents(t *testing.T) {
	b := New(tree.BindingLate)
	b.State("on.idle")
	b.State("on.busy")
	b.State("off")

	sc, err := b.Build()
	require.NoError(t, err)
	require.Len(t, sc.Children, 2)

	on, ok := sc.Children[0].(*tree.State)
	require.True(t, ok)
	assert.Equal(t, "on", *on.ID)
	assert.Len(t, on.Children, 2)
}

func TestBuilderParallelAndHistory(t *testing.T) {
	b := New(tree.BindingLate)
	b.State("regions").Parallel()
	b.State("regions.a")
	b.State("regions.b")
	b.State("regions.a.hist").History(tree.HistoryShallow)

	sc, err := b.Build()
	require.NoError(t, err)
	regions, ok := sc.Children[0].(*tree.Parallel)
	require.True(t, ok)
	assert.Len(t, regions.Children, 2)

	a, ok := regions.Children[0].(*tree.State)
	require.True(t, ok)
	require.Len(t, a.Children, 1)
	hist, ok := a.Children[0].(*tree.History)
	require.True(t, ok)
	assert.Equal(t, tree.HistoryShallow, hist.HKind)
}

func TestBuilderEntryExitInitAndInvoke(t *testing.T) {
	b := New(tree.BindingEarly)
	b.State("s").OnEntry(1, 2).OnExit(3).OnInit(4).Invoke(5)

	sc, err := b.Build()
	require.NoError(t, err)
	s, ok := sc.Children[0].(*tree.State)
	require.True(t, ok)
	require.Len(t, s.Children, 4)

	entry, ok := s.Children[0].(*tree.OnEntry)
	require.True(t, ok)
	assert.Equal(t, []tree.ExecutableID{1, 2}, entry.Executable)

	exit, ok := s.Children[1].(*tree.OnExit)
	require.True(t, ok)
	assert.Equal(t, []tree.ExecutableID{3}, exit.Executable)

	init, ok := s.Children[2].(*tree.OnInit)
	require.True(t, ok)
	assert.Equal(t, []tree.ExecutableID{4}, init.Executable)

	invoke, ok := s.Children[3].(*tree.Invoke)
	require.True(t, ok)
	assert.Equal(t, tree.InvocationID(5), invoke.Invocation)
}
