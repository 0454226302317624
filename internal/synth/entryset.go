package synth

import (
	"github.com/comalice/microstepc/internal/core"
	"github.com/comalice/microstepc/internal/microstep"
)

// establishEntrySet emits the sequence shared by init's tail and next's tail
// (spec §4.2.3): entry-ancestors upward, entry-descendants downward,
// exit-states, take-transitions, enter-states, and the final return.
func establishEntrySet(e *emitter, g *core.Graph) {
	n := g.N()

	// (a) Entry ancestors, bottom-up.
	for k := n - 1; k >= 0; k-- {
		s := &g.States[k]
		switch {
		case len(s.Descendants) == n-1:
			e.assign(eName(k), boolLit(true))
		case len(s.Descendants) == 0:
			// leaf state: no contribution
		default:
			args := make([]microstep.Expression, len(s.Children))
			for i, c := range s.Children {
				args[i] = identExpr(eName(int(c)))
			}
			e.assign(eName(k), or(args...))
		}
	}

	// (b) Entry descendants, top-down.
	for k := 0; k < n; k++ {
		s := &g.States[k]
		switch s.Kind {
		case core.Parallel:
			for _, child := range s.Initial {
				e.assign(eName(int(child)), or(identExpr(eName(int(child))), identExpr(eName(k))))
			}
		case core.InitialKind:
			for _, tid := range s.Transitions {
				e.assign(tName(int(tid)), identExpr(eName(k)))
			}
			for _, tid := range s.Transitions {
				t := &g.Transitions[tid]
				for _, target := range t.Targets {
					e.assign(eName(int(target)), or(identExpr(eName(int(target))), identExpr(eName(k))))
					for _, anc := range g.States[target].Ancestors {
						e.assign(eName(int(anc)), or(identExpr(eName(int(anc))), identExpr(eName(k))))
					}
				}
			}
			e.assign(eName(k), boolLit(false))
		case core.Compound:
			for _, child := range s.Initial {
				guard := and(identExpr(eName(k)), not(identExpr(cName(k))))
				e.assign(eName(int(child)), or(identExpr(eName(int(child))), guard))
			}
			for _, child := range s.Children {
				e.assign(eName(int(child)), or(identExpr(eName(int(child))), and(identExpr(cName(int(child))), not(identExpr(xName(int(child)))))))
			}
		}
	}

	// (c) Exit states, reverse order.
	for k := n - 1; k >= 0; k-- {
		s := &g.States[k]
		for _, xid := range s.OnExit {
			e.execute(xid, and(identExpr(cName(k)), identExpr(xName(k))))
		}
	}

	// (d) Take transitions, in order.
	for tid := range g.Transitions {
		t := &g.Transitions[tid]
		for _, xid := range t.OnTransition {
			e.execute(xid, identExpr(tName(tid)))
		}
	}

	// (e) Enter states, in order.
	for k := 0; k < n; k++ {
		s := &g.States[k]
		hasEntry := len(s.OnInit)+len(s.OnEnter) > 0
		if hasEntry {
			e.declare(gName(k), and(identExpr(eName(k)), not(identExpr(cName(k)))))
		}
		for _, xid := range s.OnInit {
			e.execute(xid, and(identExpr(gName(k)), not(identExpr(iName(k)))))
		}
		e.assign(iName(k), or(identExpr(iName(k)), identExpr(eName(k))))
		for _, xid := range s.OnEnter {
			e.execute(xid, identExpr(gName(k)))
		}
	}

	// (f) Return.
	e.ret(microstep.MicrostepResult{
		Configuration: packConfiguration(n, eName),
		Initialized:   packConfiguration(n, iName),
		History:       packConfiguration(n, hName),
		IsStable:      boolLit(false),
	}, nil)
}

func packConfiguration(n int, name func(int) string) microstep.Expression {
	values := make([]microstep.Expression, n)
	for k := 0; k < n; k++ {
		values[k] = identExpr(name(k))
	}
	return microstep.ConfigurationCreateExpression{Values: values}
}
