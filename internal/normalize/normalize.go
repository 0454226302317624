// Package normalize implements the single depth-first tree walk that turns a
// Statechart Tree into a Core Graph: documented-order state/transition
// indexing, ancestor/descendant/initial computation, target resolution, and
// exit-set/conflict-set computation (spec §4.1).
package normalize

import (
	"sort"

	"github.com/comalice/microstepc/internal/core"
	"github.com/comalice/microstepc/internal/tree"
)

// HistoryInitialFilter computes the `initial` set of a history pseudo-state
// from its children and descendants. The default is the spec's deliberate
// simplification (children for shallow, descendants for deep); a faithful
// SCXML implementation would filter these through the enclosing state's
// history-default transition targets instead. Swap this variable to plug in
// that behavior without touching the walk itself.
var HistoryInitialFilter = func(kind core.StateKind, children, descendants []core.StateID) []core.StateID {
	if kind == core.HistoryDeep {
		return cloneIDs(descendants)
	}
	return cloneIDs(children)
}

type walker struct {
	g              core.Graph
	stack          []core.StateID
	binding        tree.Binding
	stateIDs       map[string]core.StateID
	pendingTargets map[core.TransitionID][]string
	errs           []ConversionError
}

// Normalize runs the walk and target/exit/conflict resolution described in
// spec §4.1. On success it returns a Core Graph honoring every §3.2
// invariant and a nil error slice; on any duplicate-id or missing-target
// condition it returns a nil graph and the full accumulated error list.
func Normalize(root *tree.Statechart) (*core.Graph, []ConversionError) {
	w := &walker{
		binding:        tree.BindingLate,
		stateIDs:       make(map[string]core.StateID),
		pendingTargets: make(map[core.TransitionID][]string),
	}
	w.visitStatechart(root)
	w.resolveTargets()
	if len(w.errs) > 0 {
		return nil, w.errs
	}
	w.computeExits()
	w.computeConflicts()
	return &w.g, nil
}

func (w *walker) top() core.StateID { return w.stack[len(w.stack)-1] }

func (w *walker) enterScope(loc core.Location, id *string, kind core.StateKind) core.StateID {
	idx := core.StateID(len(w.g.States))
	var parent core.StateID
	var ancestors []core.StateID
	if len(w.stack) > 0 {
		parent = w.top()
		ancestors = cloneIDs(w.stack)
	}
	w.g.States = append(w.g.States, core.State{
		Idx:       idx,
		ID:        id,
		Kind:      kind,
		Parent:    parent,
		Ancestors: ancestors,
		Loc:       loc,
	})
	w.stack = append(w.stack, idx)
	return idx
}

func (w *walker) exitScope() {
	idx := w.stack[len(w.stack)-1]
	w.stack = w.stack[:len(w.stack)-1]
	s := &w.g.States[idx]

	// Descendants were appended in post-order as each one exited, not
	// document order. StateID is assigned at enter and only increases, so
	// sorting ascending restores document order. s.Descendants is already
	// final here: every descendant of idx exits before idx does.
	sort.Slice(s.Descendants, func(i, j int) bool { return s.Descendants[i] < s.Descendants[j] })

	for _, a := range s.Ancestors {
		w.g.States[a].Descendants = append(w.g.States[a].Descendants, idx)
	}
	if idx != 0 {
		w.g.States[s.Parent].Children = append(w.g.States[s.Parent].Children, idx)
	}

	if s.Kind == core.Compound && len(s.Children) == 0 {
		s.Kind = core.Atomic
	}

	w.computeInitial(idx)

	if s.ID != nil {
		if _, exists := w.stateIDs[*s.ID]; exists {
			w.errs = append(w.errs, duplicateIDError(*s.ID, s.Loc))
		} else {
			w.stateIDs[*s.ID] = idx
		}
	}
}

func (w *walker) computeInitial(idx core.StateID) {
	s := &w.g.States[idx]
	switch s.Kind {
	case core.Parallel:
		s.Initial = cloneIDs(s.Children)
	case core.Compound:
		if len(s.Children) > 0 {
			s.Initial = []core.StateID{s.Children[0]}
		}
	case core.HistoryShallow, core.HistoryDeep:
		s.Initial = HistoryInitialFilter(s.Kind, s.Children, s.Descendants)
	}
}

func (w *walker) visitStatechart(n *tree.Statechart) {
	w.binding = n.Binding
	if w.binding == "" {
		w.binding = tree.BindingLate
	}
	w.enterScope(n.Loc, nil, core.Compound)
	w.visitChildren(n.Children)
	w.exitScope()
}

func (w *walker) visitChildren(children tree.NodeList) {
	for _, c := range children {
		w.visit(c)
	}
}

func (w *walker) visit(n tree.Node) {
	switch v := n.(type) {
	case *tree.State:
		w.enterScope(v.Loc, v.ID, core.Compound)
		w.visitChildren(v.Children)
		w.exitScope()
	case *tree.Parallel:
		w.enterScope(v.Loc, v.ID, core.Parallel)
		w.visitChildren(v.Children)
		w.exitScope()
	case *tree.Initial:
		w.enterScope(v.Loc, nil, core.InitialKind)
		w.visitChildren(v.Children)
		w.exitScope()
	case *tree.Final:
		w.enterScope(v.Loc, v.ID, core.Final)
		w.visitChildren(v.Children)
		w.exitScope()
	case *tree.History:
		kind := core.HistoryShallow
		if v.HKind == tree.HistoryDeep {
			kind = core.HistoryDeep
		}
		w.enterScope(v.Loc, v.ID, kind)
		w.visitChildren(v.Children)
		w.exitScope()
	case *tree.Transition:
		w.addTransition(core.External, v.Event, v.Condition, v.Targets, v.Executable, v.Loc)
	case *tree.OnEvent:
		w.addTransition(core.OnEventT, v.Event, v.Condition, nil, v.Executable, v.Loc)
	case *tree.OnInit:
		idx := w.top()
		if w.binding == tree.BindingEarly {
			idx = 0
		}
		w.g.States[idx].OnInit = append(w.g.States[idx].OnInit, toU64(v.Executable)...)
	case *tree.OnEntry:
		idx := w.top()
		w.g.States[idx].OnEnter = append(w.g.States[idx].OnEnter, toU64(v.Executable)...)
	case *tree.OnExit:
		idx := w.top()
		w.g.States[idx].OnExit = append(w.g.States[idx].OnExit, toU64(v.Executable)...)
	case *tree.Invoke:
		idx := w.top()
		w.g.States[idx].Invocations = append(w.g.States[idx].Invocations, uint64(v.Invocation))
	}
}

func (w *walker) addTransition(kind core.TransitionKind, event *tree.EventID, condition *tree.ConditionID, targets []string, executable []tree.ExecutableID, loc core.Location) {
	idx := core.TransitionID(len(w.g.Transitions))
	source := w.top()

	var ev, cond *uint64
	if event != nil {
		v := uint64(*event)
		ev = &v
	}
	if condition != nil {
		v := uint64(*condition)
		cond = &v
	}

	w.g.Transitions = append(w.g.Transitions, core.Transition{
		Idx:          idx,
		Kind:         kind,
		Source:       source,
		Event:        ev,
		Condition:    cond,
		OnTransition: toU64(executable),
		Loc:          loc,
	})
	w.g.States[source].Transitions = append(w.g.States[source].Transitions, idx)

	if len(targets) > 0 {
		w.pendingTargets[idx] = targets
	}
}

func (w *walker) resolveTargets() {
	for idx := range w.g.Transitions {
		names, ok := w.pendingTargets[core.TransitionID(idx)]
		if !ok {
			continue
		}
		resolved := make([]core.StateID, 0, len(names))
		for _, name := range names {
			sid, ok := w.stateIDs[name]
			if !ok {
				w.errs = append(w.errs, missingTargetError(name, w.g.Transitions[idx].Loc))
				continue
			}
			resolved = append(resolved, sid)
		}
		w.g.Transitions[idx].Targets = resolved
	}
}

func toU64(ids []tree.ExecutableID) []uint64 {
	if ids == nil {
		return nil
	}
	out := make([]uint64, len(ids))
	for i, id := range ids {
		out[i] = uint64(id)
	}
	return out
}

func cloneIDs(ids []core.StateID) []core.StateID {
	if len(ids) == 0 {
		return nil
	}
	out := make([]core.StateID, len(ids))
	copy(out, ids)
	return out
}
