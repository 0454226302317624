package normalize_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/comalice/microstepc/internal/core"
	"github.com/comalice/microstepc/internal/normalize"
	"github.com/comalice/microstepc/internal/tree"
	"github.com/comalice/microstepc/internal/treebuilder"
)

func TestNormalizeTrafficLight(t *testing.T) {
	b := treebuilder.New(tree.BindingLate)
	b.State("green").OnEvent(1, nil, "yellow")
	b.State("yellow").OnEvent(1, nil, "red")
	b.State("red").OnEvent(1, nil, "green")
	sc, err := b.Build()
	require.NoError(t, err)

	g, errs := normalize.Normalize(sc)
	require.Empty(t, errs)
	require.NotNil(t, g)

	assert.Equal(t, core.Compound, g.Root().Kind)
	assert.Len(t, g.States, 4) // root + 3 atomic
	assert.Len(t, g.Transitions, 3)

	green := g.States[1]
	assert.Equal(t, core.Atomic, green.Kind)
	require.Len(t, green.Transitions, 1)

	transition := g.Transitions[green.Transitions[0]]
	assert.Equal(t, core.External, transition.Kind)
	require.Len(t, transition.Targets, 1)
	assert.Equal(t, "yellow", *g.States[transition.Targets[0]].ID)
}

func TestNormalizeDuplicateID(t *testing.T) {
	input := `{"type": "statechart", "children": [
		{"type": "state", "id": "a"},
		{"type": "state", "id": "a"}
	]}`
	sc, err := tree.Parse([]byte(input))
	require.NoError(t, err)

	g, errs := normalize.Normalize(sc)
	assert.Nil(t, g)
	require.Len(t, errs, 1)
	assert.Equal(t, normalize.SourceDuplicateID, errs[0].Source)
	assert.Equal(t, `Duplicate target: "a"`, errs[0].Message)
}

func TestNormalizeMissingTarget(t *testing.T) {
	input := `{"type": "statechart", "children": [
		{"type": "state", "id": "a", "children": [
			{"type": "transition", "targets": ["ghost"]}
		]}
	]}`
	sc, err := tree.Parse([]byte(input))
	require.NoError(t, err)

	g, errs := normalize.Normalize(sc)
	assert.Nil(t, g)
	require.Len(t, errs, 1)
	assert.Equal(t, normalize.SourceMissingTarget, errs[0].Source)
	assert.Equal(t, `Missing target: "ghost"`, errs[0].Message)
}

func TestNormalizeCompoundPromotedToAtomicWithoutChildren(t *testing.T) {
	input := `{"type": "statechart", "children": [
		{"type": "state", "id": "leaf"}
	]}`
	sc, err := tree.Parse([]byte(input))
	require.NoError(t, err)

	g, errs := normalize.Normalize(sc)
	require.Empty(t, errs)
	assert.Equal(t, core.Atomic, g.States[1].Kind)
}

func TestNormalizeParallelInitialIsAllChildren(t *testing.T) {
	b := treebuilder.New(tree.BindingLate)
	b.State("regions").Parallel()
	b.State("regions.a")
	b.State("regions.b")
	sc, err := b.Build()
	require.NoError(t, err)

	g, errs := normalize.Normalize(sc)
	require.Empty(t, errs)

	regions := g.States[1]
	assert.Equal(t, core.Parallel, regions.Kind)
	assert.ElementsMatch(t, regions.Children, regions.Initial)
}

func TestNormalizeDescendantsAreInDocumentOrder(t *testing.T) {
	b := treebuilder.New(tree.BindingLate)
	b.State("s1").OnEvent(1, nil, "s2")
	b.State("s1.s1a")
	b.State("s2")
	sc, err := b.Build()
	require.NoError(t, err)

	g, errs := normalize.Normalize(sc)
	require.Empty(t, errs)

	root := g.Root()
	assert.Equal(t, []core.StateID{1, 2, 3}, root.Descendants)

	s1 := g.States[1]
	require.Len(t, s1.Transitions, 1)
	transition := g.Transitions[s1.Transitions[0]]
	assert.Equal(t, []core.StateID{1, 2}, transition.Exits)
}

func TestNormalizeConflictingSiblingTransitionsShareSource(t *testing.T) {
	input := `{"type": "statechart", "children": [
		{"type": "state", "id": "a", "children": [
			{"type": "transition", "event": 1, "targets": ["b"]},
			{"type": "transition", "event": 2, "targets": ["c"]}
		]},
		{"type": "state", "id": "b"},
		{"type": "state", "id": "c"}
	]}`
	sc, err := tree.Parse([]byte(input))
	require.NoError(t, err)

	g, errs := normalize.Normalize(sc)
	require.Empty(t, errs)

	t0 := g.Transitions[0]
	t1 := g.Transitions[1]
	assert.Contains(t, t0.Conflicts, t1.Idx)
	assert.Contains(t, t1.Conflicts, t0.Idx)
}
