package synth

import "github.com/comalice/microstepc/internal/microstep"

// emitter accumulates the ordered statement body of one Function.
type emitter struct {
	body []microstep.Statement
}

func (e *emitter) declare(name string, init microstep.Expression) {
	e.body = append(e.body, microstep.VariableDeclaration{ID: ident(name), Init: init})
}

func (e *emitter) assign(name string, value microstep.Expression) {
	e.body = append(e.body, microstep.AssignmentStatement{Left: ident(name), Right: value})
}

func (e *emitter) destructure(names []string, right microstep.Expression) {
	lefts := make([]microstep.Identifier, len(names))
	for i, n := range names {
		lefts[i] = ident(n)
	}
	e.body = append(e.body, microstep.ConfigurationDestructureDeclaration{Left: lefts, Right: right})
}

func (e *emitter) execute(id uint64, guard microstep.Expression) {
	g := guard
	e.body = append(e.body, microstep.ExecuteStatement{ID: id, Guard: &g})
}

func (e *emitter) ret(arg microstep.Expression, guard microstep.Expression) {
	var g *microstep.Expression
	if guard != nil {
		g = &guard
	}
	e.body = append(e.body, microstep.ReturnStatement{Argument: arg, Guard: g})
}
