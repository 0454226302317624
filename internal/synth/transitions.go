package synth

import (
	"github.com/comalice/microstepc/internal/core"
	"github.com/comalice/microstepc/internal/microstep"
)

// transitionSelect emits the sequence that decides, for one microstep, which
// transitions fire (spec §4.2.4). Transitions of kind History or Initial are
// skipped here; establishEntrySet sets the transitions attached to an Initial
// pseudo-state from that state's entry flag.
func transitionSelect(e *emitter, g *core.Graph) {
	for tid := range g.Transitions {
		t := &g.Transitions[tid]
		if t.Kind == core.HistoryT || t.Kind == core.InitialT {
			continue
		}

		available := identExpr(aName(tid))

		var active microstep.Expression
		if t.Kind == core.Spontaneous {
			targetArgs := make([]microstep.Expression, len(t.Targets))
			for i, target := range t.Targets {
				targetArgs[i] = identExpr(cName(int(target)))
			}
			active = and(identExpr(cName(int(t.Source))), not(and(targetArgs...)))
		} else {
			active = identExpr(cName(int(t.Source)))
		}

		var applicable microstep.Expression
		if t.Event != nil {
			applicable = and(identExpr("has_event"), microstep.EventExpression{ID: *t.Event})
		} else {
			applicable = not(identExpr("has_event"))
		}

		args := []microstep.Expression{available, active, applicable}
		if t.Condition != nil {
			args = append(args, microstep.ConditionExpression{ID: *t.Condition})
		}
		e.declare(tName(tid), and(args...))

		for _, k := range t.Targets {
			e.assign(eName(int(k)), or(identExpr(eName(int(k))), identExpr(tName(tid))))
		}
		for _, k := range t.Exits {
			e.assign(xName(int(k)), or(identExpr(xName(int(k))), identExpr(tName(tid))))
		}
		for _, k := range t.Conflicts {
			e.assign(aName(int(k)), and(identExpr(aName(int(k))), not(identExpr(tName(tid)))))
		}
		e.assign("is_stable", and(identExpr("is_stable"), not(identExpr(tName(tid)))))
	}
}
