// Package synth implements the microstep synthesizer: the code-generator-at-
// the-AST-level that lowers a Core Graph into a Microstep Program (spec §4.2).
package synth

import (
	"fmt"

	"github.com/comalice/microstepc/internal/microstep"
)

// Naming scheme (spec §4.2 table): one boolean per state/transition per role.
func cName(k int) string { return fmt.Sprintf("c%d", k) }
func iName(k int) string { return fmt.Sprintf("i%d", k) }
func hName(k int) string { return fmt.Sprintf("h%d", k) }
func eName(k int) string { return fmt.Sprintf("e%d", k) }
func xName(k int) string { return fmt.Sprintf("x%d", k) }
func tName(k int) string { return fmt.Sprintf("t%d", k) }
func aName(k int) string { return fmt.Sprintf("a%d", k) }
func gName(k int) string { return fmt.Sprintf("g%d", k) }

func ident(name string) microstep.Identifier { return microstep.Identifier{Name: name} }

func identExpr(name string) microstep.Expression { return ident(name) }

func boolLit(v bool) microstep.Expression { return microstep.BooleanLiteral{Value: v} }

func logical(op microstep.LogicalOperator, args ...microstep.Expression) microstep.Expression {
	return microstep.LogicalExpression{Operator: op, Arguments: args}
}

func not(e microstep.Expression) microstep.Expression { return logical(microstep.NOT, e) }
func and(args ...microstep.Expression) microstep.Expression {
	return logical(microstep.AND, args...)
}
func or(args ...microstep.Expression) microstep.Expression {
	return logical(microstep.OR, args...)
}
