package normalize

import (
	"sort"

	"github.com/comalice/microstepc/internal/core"
)

// resolveSource returns the state whose configuration the transition actually
// reasons about: an Initial pseudo-state's parent stands in for it.
func resolveSource(g *core.Graph, t *core.Transition) core.StateID {
	if g.States[t.Source].Kind == core.InitialKind {
		return g.States[t.Source].Parent
	}
	return t.Source
}

func isScopeKind(k core.StateKind) bool {
	return k == core.Atomic || k == core.Compound || k == core.Parallel
}

func containsID(ids []core.StateID, id core.StateID) bool {
	for _, x := range ids {
		if x == id {
			return true
		}
	}
	return false
}

func containsAll(haystack, needles []core.StateID) bool {
	for _, n := range needles {
		if !containsID(haystack, n) {
			return false
		}
	}
	return true
}

// domain computes the LCCA (or the internal-transition source shortcut) per
// spec §4.1 "Exit-set computation".
func domain(g *core.Graph, t *core.Transition) core.StateID {
	source := resolveSource(g, t)

	if t.Kind == core.Internal && g.States[source].Kind == core.Compound {
		allDescendants := true
		for _, target := range t.Targets {
			if !containsID(g.States[source].Descendants, target) {
				allDescendants = false
				break
			}
		}
		if allDescendants {
			return source
		}
	}

	for i := len(g.States[source].Ancestors) - 1; i >= 0; i-- {
		a := g.States[source].Ancestors[i]
		if !isScopeKind(g.States[a].Kind) {
			continue
		}
		desc := g.States[a].Descendants
		if containsAll(desc, t.Targets) && containsID(desc, source) {
			return a
		}
	}
	return source
}

func exitSetFor(g *core.Graph, t *core.Transition) []core.StateID {
	dom := domain(g, t)
	var exits []core.StateID
	for _, d := range g.States[dom].Descendants {
		k := g.States[d].Kind
		if k != core.Atomic && k != core.Compound && k != core.Parallel && k != core.Final {
			continue
		}
		if containsID(t.Targets, d) {
			continue
		}
		if containsAll(g.States[d].Descendants, t.Targets) {
			continue
		}
		exits = append(exits, d)
	}
	return exits
}

func (w *walker) computeExits() {
	g := &w.g
	for i := range g.Transitions {
		exits := exitSetFor(g, &g.Transitions[i])
		sort.Slice(exits, func(i, j int) bool { return exits[i] < exits[j] })
		g.Transitions[i].Exits = exits
	}
}

func exitsIntersect(a, b []core.StateID) bool {
	for _, x := range a {
		if containsID(b, x) {
			return true
		}
	}
	return false
}

func conflicts(g *core.Graph, t1, t2 *core.Transition) bool {
	if t1.Source == t2.Source {
		return true
	}
	if exitsIntersect(t1.Exits, t2.Exits) {
		return true
	}
	if containsID(g.States[t2.Source].Descendants, t1.Source) {
		return true
	}
	if containsID(g.States[t1.Source].Descendants, t2.Source) {
		return true
	}
	return false
}

func (w *walker) computeConflicts() {
	g := &w.g
	n := len(g.Transitions)
	for i := 0; i < n; i++ {
		var cs []core.TransitionID
		for j := 0; j < n; j++ {
			if i == j {
				continue
			}
			if conflicts(g, &g.Transitions[i], &g.Transitions[j]) {
				cs = append(cs, core.TransitionID(j))
			}
		}
		g.Transitions[i].Conflicts = cs
	}
}
