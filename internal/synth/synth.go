package synth

import (
	"github.com/comalice/microstepc/internal/core"
	"github.com/comalice/microstepc/internal/microstep"
)

// Synthesize lowers a validated Core Graph into a Microstep Program. It is
// pure: no I/O, no shared mutable state, safe to call concurrently with
// disjoint graphs (spec §4.2, §5).
func Synthesize(g *core.Graph) *microstep.Program {
	return &microstep.Program{
		ConfigurationSize: g.N(),
		Init:              buildInit(g),
		Next:              buildNext(g),
		Loc:               g.Loc,
	}
}

func buildInit(g *core.Graph) microstep.Function {
	e := &emitter{}
	n := g.N()
	m := len(g.Transitions)

	for k := 0; k < n; k++ {
		e.declare(cName(k), boolLit(false))
	}
	for k := 0; k < n; k++ {
		e.declare(iName(k), boolLit(false))
	}
	for k := 0; k < n; k++ {
		e.declare(hName(k), boolLit(false))
	}
	for k := 0; k < n; k++ {
		e.declare(eName(k), boolLit(false))
	}
	for k := 0; k < m; k++ {
		e.declare(tName(k), boolLit(false))
	}
	for k := 0; k < n; k++ {
		e.declare(xName(k), boolLit(false))
	}

	establishEntrySet(e, g)

	return microstep.Function{Params: nil, Body: e.body, Loc: g.Loc}
}

func buildNext(g *core.Graph) microstep.Function {
	e := &emitter{}
	n := g.N()
	m := len(g.Transitions)

	e.destructure(namesFor(n, cName), identExpr("c"))
	e.destructure(namesFor(n, iName), identExpr("i"))
	e.destructure(namesFor(n, hName), identExpr("h"))

	for k := 0; k < n; k++ {
		e.declare(eName(k), boolLit(false))
	}
	for k := 0; k < n; k++ {
		e.declare(xName(k), boolLit(false))
	}
	for k := 0; k < m; k++ {
		e.declare(aName(k), boolLit(true))
	}

	e.declare("is_stable", boolLit(true))

	transitionSelect(e, g)

	emitInvocationEffects(e, g)

	e.ret(microstep.MicrostepResult{
		Configuration: identExpr("c"),
		Initialized:   identExpr("i"),
		History:       identExpr("h"),
		IsStable:      identExpr("is_stable"),
	}, identExpr("is_stable"))

	establishEntrySet(e, g)

	params := []microstep.Identifier{ident("c"), ident("i"), ident("h"), ident("has_event")}
	return microstep.Function{Params: params, Body: e.body, Loc: g.Loc}
}

func namesFor(n int, name func(int) string) []string {
	out := make([]string, n)
	for k := 0; k < n; k++ {
		out[k] = name(k)
	}
	return out
}

// emitInvocationEffects is the guarded, is_stable-gated placeholder spec §9
// documents: the Core Graph carries each state's invocations, but emitting
// their start/stop effects needs a lowering for InvocationId that this
// compiler does not own. Left as a no-op seam, source-compatible with a
// future fill-in that would append ExecuteStatement-shaped effects here,
// gated on is_stable, before the early return below.
func emitInvocationEffects(_ *emitter, _ *core.Graph) {}
