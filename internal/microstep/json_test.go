package microstep_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/comalice/microstepc/internal/microstep"
)

func TestExpressionTagsOnType(t *testing.T) {
	cases := []struct {
		name string
		expr microstep.Expression
		typ  string
	}{
		{"identifier", microstep.Identifier{Name: "c0"}, "Identifier"},
		{"null", microstep.NullLiteral{}, "NullLiteral"},
		{"string", microstep.StringLiteral{Value: "x"}, "StringLiteral"},
		{"boolean", microstep.BooleanLiteral{Value: true}, "BooleanLiteral"},
		{"integer", microstep.IntegerLiteral{Value: 3}, "IntegerLiteral"},
		{"logical", microstep.LogicalExpression{Operator: microstep.AND, Arguments: []microstep.Expression{microstep.BooleanLiteral{Value: true}}}, "LogicalExpression"},
		{"config-create", microstep.ConfigurationCreateExpression{Values: []microstep.Expression{microstep.BooleanLiteral{Value: false}}}, "ConfigurationCreateExpression"},
		{"condition", microstep.ConditionExpression{ID: 7}, "ConditionExpression"},
		{"event", microstep.EventExpression{ID: 9}, "EventExpression"},
		{"microstep-result", microstep.MicrostepResult{
			Configuration: microstep.Identifier{Name: "c"},
			Initialized:   microstep.Identifier{Name: "i"},
			History:       microstep.Identifier{Name: "h"},
			IsStable:      microstep.BooleanLiteral{Value: true},
		}, "MicrostepResult"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			data, err := json.Marshal(tc.expr)
			require.NoError(t, err)
			var decoded map[string]any
			require.NoError(t, json.Unmarshal(data, &decoded))
			assert.Equal(t, tc.typ, decoded["type"])
		})
	}
}

func TestStatementTagsOnType(t *testing.T) {
	guard := microstep.Expression(microstep.BooleanLiteral{Value: true})
	cases := []struct {
		name string
		stmt microstep.Statement
		typ  string
	}{
		{"var-decl", microstep.VariableDeclaration{ID: microstep.Identifier{Name: "c0"}, Init: microstep.BooleanLiteral{Value: false}}, "VariableDeclaration"},
		{"assign", microstep.AssignmentStatement{Left: microstep.Identifier{Name: "c0"}, Right: microstep.BooleanLiteral{Value: true}}, "AssignmentStatement"},
		{"destructure", microstep.ConfigurationDestructureDeclaration{Left: []microstep.Identifier{{Name: "c0"}}, Right: microstep.Identifier{Name: "c"}}, "ConfigurationDestructureDeclaration"},
		{"return", microstep.ReturnStatement{Argument: microstep.Identifier{Name: "c"}, Guard: &guard}, "ReturnStatement"},
		{"execute", microstep.ExecuteStatement{ID: 4, Guard: &guard}, "ExecuteStatement"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			data, err := json.Marshal(tc.stmt)
			require.NoError(t, err)
			var decoded map[string]any
			require.NoError(t, json.Unmarshal(data, &decoded))
			assert.Equal(t, tc.typ, decoded["type"])
		})
	}
}

func TestProgramMarshalsFunctionsAndConfigurationSize(t *testing.T) {
	program := microstep.Program{
		ConfigurationSize: 2,
		Init: microstep.Function{
			Body: []microstep.Statement{
				microstep.VariableDeclaration{ID: microstep.Identifier{Name: "c0"}, Init: microstep.BooleanLiteral{Value: false}},
			},
		},
		Next: microstep.Function{
			Params: []microstep.Identifier{{Name: "c"}},
			Body:   []microstep.Statement{},
		},
	}

	data, err := json.Marshal(program)
	require.NoError(t, err)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.EqualValues(t, 2, decoded["configuration_size"])
	assert.Contains(t, decoded, "init")
	assert.Contains(t, decoded, "next")
}
