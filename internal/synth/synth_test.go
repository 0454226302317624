package synth_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/comalice/microstepc/internal/microstep"
	"github.com/comalice/microstepc/internal/normalize"
	"github.com/comalice/microstepc/internal/synth"
	"github.com/comalice/microstepc/internal/tree"
	"github.com/comalice/microstepc/internal/treebuilder"
)

func buildGraph(t *testing.T) *microstep.Program {
	t.Helper()
	b := treebuilder.New(tree.BindingLate)
	b.State("green").OnEvent(1, nil, "yellow")
	b.State("yellow").OnEvent(1, nil, "red")
	b.State("red").OnEvent(1, nil, "green")
	sc, err := b.Build()
	require.NoError(t, err)

	g, errs := normalize.Normalize(sc)
	require.Empty(t, errs)

	return synth.Synthesize(g)
}

func TestSynthesizeConfigurationSizeMatchesStateCount(t *testing.T) {
	program := buildGraph(t)
	assert.Equal(t, 4, program.ConfigurationSize) // root + 3 atomic states
}

func TestSynthesizeInitDeclaresOneBooleanPerRoleAndState(t *testing.T) {
	program := buildGraph(t)
	n := program.ConfigurationSize

	declared := 0
	for _, stmt := range program.Init.Body {
		if _, ok := stmt.(microstep.VariableDeclaration); ok {
			declared++
		}
	}
	// c, i, h, e declared per state, plus t per transition, plus x per state.
	assert.GreaterOrEqual(t, declared, n*5)
}

func TestSynthesizeInitEndsWithReturn(t *testing.T) {
	program := buildGraph(t)
	last := program.Init.Body[len(program.Init.Body)-1]
	ret, ok := last.(microstep.ReturnStatement)
	require.True(t, ok)
	assert.Nil(t, ret.Guard)

	result, ok := ret.Argument.(microstep.MicrostepResult)
	require.True(t, ok)
	assert.NotNil(t, result.Configuration)
}

func TestSynthesizeNextDestructuresConfigurationFirst(t *testing.T) {
	program := buildGraph(t)
	first := program.Next.Body[0]
	destructure, ok := first.(microstep.ConfigurationDestructureDeclaration)
	require.True(t, ok)
	assert.Equal(t, "c", destructure.Right.(microstep.Identifier).Name)
}

func TestSynthesizeNextTakesFourParams(t *testing.T) {
	program := buildGraph(t)
	require.Len(t, program.Next.Params, 4)
	names := make([]string, len(program.Next.Params))
	for i, p := range program.Next.Params {
		names[i] = p.Name
	}
	assert.Equal(t, []string{"c", "i", "h", "has_event"}, names)
}

func TestSynthesizeIsDeterministic(t *testing.T) {
	first := buildGraph(t)
	second := buildGraph(t)
	if diff := cmp.Diff(first, second); diff != "" {
		t.Fatalf("repeated synthesis of the same graph diverged (-first +second):\n%s", diff)
	}
}
