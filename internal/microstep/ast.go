// Package microstep defines the Microstep Program output AST: the small
// typed expression/statement language the synthesizer emits (spec §3.3).
// The AST is pure data — produced once per compilation, owned by the caller,
// safe to clone and serialize — and is never evaluated here.
package microstep

import "github.com/comalice/microstepc/internal/core"

// Location is shared with the Core Graph and Statechart Tree.
type Location = core.Location

// LogicalOperator is one of the four boolean connectives the synthesizer uses.
type LogicalOperator string

const (
	AND LogicalOperator = "AND"
	OR  LogicalOperator = "OR"
	NOT LogicalOperator = "NOT"
	XOR LogicalOperator = "XOR"
)

// Expression is any node of the expression grammar.
type Expression interface {
	exprType() string
}

// SimpleExpression is the subset of Expression usable as a MicrostepResult
// field: identifiers, literals, logical expressions, configuration-create,
// and condition/event references — never another MicrostepResult.
type SimpleExpression = Expression

// Identifier references a declared variable (c3, i0, t7, g12, ...).
type Identifier struct {
	Name string `json:"name"`
}

func (Identifier) exprType() string { return "Identifier" }

// NullLiteral is the zero-value expression.
type NullLiteral struct{}

func (NullLiteral) exprType() string { return "NullLiteral" }

// StringLiteral is a literal string value.
type StringLiteral struct {
	Value string `json:"value"`
}

func (StringLiteral) exprType() string { return "StringLiteral" }

// BooleanLiteral is a literal boolean value.
type BooleanLiteral struct {
	Value bool `json:"value"`
}

func (BooleanLiteral) exprType() string { return "BooleanLiteral" }

// IntegerLiteral is a literal integer value.
type IntegerLiteral struct {
	Value int64 `json:"value"`
}

func (IntegerLiteral) exprType() string { return "IntegerLiteral" }

// LogicalExpression applies operator to an ordered argument list.
type LogicalExpression struct {
	Operator  LogicalOperator `json:"operator"`
	Arguments []Expression    `json:"arguments"`
}

func (LogicalExpression) exprType() string { return "LogicalExpression" }

// ConfigurationCreateExpression packs N booleans into a single configuration
// value (used to build the entry/initialized/history fields of a MicrostepResult).
type ConfigurationCreateExpression struct {
	Values []Expression `json:"values"`
}

func (ConfigurationCreateExpression) exprType() string { return "ConfigurationCreateExpression" }

// ConditionExpression references an opaque, externally-resolved condition id.
type ConditionExpression struct {
	ID uint64 `json:"id"`
}

func (ConditionExpression) exprType() string { return "ConditionExpression" }

// EventExpression references an opaque, externally-resolved event id.
type EventExpression struct {
	ID uint64 `json:"id"`
}

func (EventExpression) exprType() string { return "EventExpression" }

// MicrostepResult is the record returned from every `next` return path.
type MicrostepResult struct {
	Configuration SimpleExpression `json:"configuration"`
	Initialized   SimpleExpression `json:"initialized"`
	History       SimpleExpression `json:"history"`
	IsStable      SimpleExpression `json:"is_stable"`
}

func (MicrostepResult) exprType() string { return "MicrostepResult" }

// Statement is any node of the statement grammar.
type Statement interface {
	stmtType() string
}

// VariableDeclaration introduces a new identifier with an initial value.
type VariableDeclaration struct {
	ID   Identifier `json:"id"`
	Init Expression `json:"init"`
}

func (VariableDeclaration) stmtType() string { return "VariableDeclaration" }

// AssignmentStatement assigns a new value to an already-declared identifier.
type AssignmentStatement struct {
	Left  Identifier `json:"left"`
	Right Expression `json:"right"`
}

func (AssignmentStatement) stmtType() string { return "AssignmentStatement" }

// ConfigurationDestructureDeclaration binds several identifiers at once from
// a packed configuration value (c -> c0..c_{N-1}, etc.).
type ConfigurationDestructureDeclaration struct {
	Left  []Identifier `json:"left"`
	Right Expression   `json:"right"`
}

func (ConfigurationDestructureDeclaration) stmtType() string {
	return "ConfigurationDestructureDeclaration"
}

// ReturnStatement returns Argument, optionally gated by Guard (a guarded
// early return; Guard is nil for the unconditional final return).
type ReturnStatement struct {
	Argument Expression  `json:"argument"`
	Guard    *Expression `json:"guard,omitempty"`
}

func (ReturnStatement) stmtType() string { return "ReturnStatement" }

// ExecuteStatement invokes an opaque executable id, optionally gated by Guard.
type ExecuteStatement struct {
	ID    uint64      `json:"id"`
	Guard *Expression `json:"guard,omitempty"`
}

func (ExecuteStatement) stmtType() string { return "ExecuteStatement" }

// Function is an ordered parameter list and an ordered statement body.
type Function struct {
	Params []Identifier `json:"params"`
	Body   []Statement  `json:"body"`
	Loc    Location     `json:"loc"`
}

// Program is the Microstep Program: the synthesizer's full output.
type Program struct {
	ConfigurationSize int      `json:"configuration_size"`
	Init              Function `json:"init"`
	Next              Function `json:"next"`
	Loc               Location `json:"loc"`
}
