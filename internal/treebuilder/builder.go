// Package treebuilder provides a fluent Go API for constructing Statechart
// Tree values directly, without hand-writing JSON literals. It adapts the
// teacher's builder.go MachineBuilder/StateBuilder: dotted names
// ("parent.child") auto-create missing ancestors as plain compound states,
// and a StateBuilder configures one named node at a time.
package treebuilder

import (
	"fmt"
	"strings"

	"github.com/comalice/microstepc/internal/tree"
)

type nodeSpec struct {
	name       string
	parallel   bool
	final      bool
	history    *tree.HistoryKind
	extraNodes []tree.Node // Transition/OnEvent/OnInit/OnEntry/OnExit/Invoke, in declared order
	children   []string    // nested state-like children, in declared order
}

// Builder accumulates named nodes and assembles them into a Statechart on Build.
type Builder struct {
	binding tree.Binding
	order   []string
	specs   map[string]*nodeSpec
}

// New starts a builder with the given root binding.
func New(binding tree.Binding) *Builder {
	return &Builder{binding: binding, specs: make(map[string]*nodeSpec)}
}

func splitPath(name string) (parent, leaf string) {
	idx := strings.LastIndex(name, ".")
	if idx == -1 {
		return "", name
	}
	return name[:idx], name[idx+1:]
}

func (b *Builder) ensure(name string) *nodeSpec {
	if s, ok := b.specs[name]; ok {
		return s
	}
	s := &nodeSpec{name: name}
	b.specs[name] = s
	b.order = append(b.order, name)

	parent, _ := splitPath(name)
	if name != "" {
		ps := b.ensure(parent)
		ps.children = append(ps.children, name)
	}
	return s
}

// State returns a StateBuilder for name, auto-creating any missing dotted
// ancestors as plain compound states. name == "" refers to the root.
func (b *Builder) State(name string) *StateBuilder {
	return &StateBuilder{b: b, spec: b.ensure(name)}
}

// StateBuilder configures one named node.
type StateBuilder struct {
	b    *Builder
	spec *nodeSpec
}

// Parallel marks this node as a parallel region container.
func (sb *StateBuilder) Parallel() *StateBuilder {
	sb.spec.parallel = true
	return sb
}

// Final marks this node as a final state.
func (sb *StateBuilder) Final() *StateBuilder {
	sb.spec.final = true
	return sb
}

// History marks this node as a history pseudo-state of the given kind.
func (sb *StateBuilder) History(kind tree.HistoryKind) *StateBuilder {
	sb.spec.history = &kind
	return sb
}

// OnEvent attaches a transition from this state to target on event, with an
// optional condition and ordered executable ids.
func (sb *StateBuilder) OnEvent(event tree.EventID, condition *tree.ConditionID, target string, executables ...tree.ExecutableID) *StateBuilder {
	ev := event
	sb.spec.extraNodes = append(sb.spec.extraNodes, &tree.Transition{
		Event: &ev, Condition: condition, Targets: []string{target}, Executable: executables, Loc: tree.DefaultLocation(),
	})
	return sb
}

// OnEventless attaches an eventless (spontaneous/guard-only) transition.
func (sb *StateBuilder) OnEventless(condition *tree.ConditionID, target string, executables ...tree.ExecutableID) *StateBuilder {
	sb.spec.extraNodes = append(sb.spec.extraNodes, &tree.Transition{
		Condition: condition, Targets: []string{target}, Executable: executables, Loc: tree.DefaultLocation(),
	})
	return sb
}

// OnEntry attaches executables that run every entry.
func (sb *StateBuilder) OnEntry(executables ...tree.ExecutableID) *StateBuilder {
	sb.spec.extraNodes = append(sb.spec.extraNodes, &tree.OnEntry{Executable: executables, Loc: tree.DefaultLocation()})
	return sb
}

// OnExit attaches executables that run every exit.
func (sb *StateBuilder) OnExit(executables ...tree.ExecutableID) *StateBuilder {
	sb.spec.extraNodes = append(sb.spec.extraNodes, &tree.OnExit{Executable: executables, Loc: tree.DefaultLocation()})
	return sb
}

// OnInit attaches executables that run once, gated by binding.
func (sb *StateBuilder) OnInit(executables ...tree.ExecutableID) *StateBuilder {
	sb.spec.extraNodes = append(sb.spec.extraNodes, &tree.OnInit{Executable: executables, Loc: tree.DefaultLocation()})
	return sb
}

// Invoke attaches an invocation id.
func (sb *StateBuilder) Invoke(invocation tree.InvocationID) *StateBuilder {
	sb.spec.extraNodes = append(sb.spec.extraNodes, &tree.Invoke{Invocation: invocation, Loc: tree.DefaultLocation()})
	return sb
}

// Build assembles the accumulated specs into a Statechart Tree rooted at "".
func (b *Builder) Build() (*tree.Statechart, error) {
	root, err := b.buildNode("")
	if err != nil {
		return nil, err
	}
	sc, ok := root.(*Statechart)
	_ = sc
	_ = ok
	return b.rootNode(), nil
}

func (b *Builder) rootNode() *tree.Statechart {
	spec := b.specs[""]
	children := b.buildChildren(spec)
	return &tree.Statechart{Binding: b.binding, Children: children, Loc: tree.DefaultLocation()}
}

// Statechart is a local alias used only to satisfy buildNode's uniform
// return type during assembly; Build() always returns *tree.Statechart.
type Statechart = tree.Statechart

func (b *Builder) buildChildren(spec *nodeSpec) tree.NodeList {
	var out tree.NodeList
	for _, childName := range spec.children {
		childSpec := b.specs[childName]
		_, leaf := splitPath(childName)
		node := b.buildStateLike(childSpec, leaf)
		out = append(out, node)
	}
	out = append(out, spec.extraNodes...)
	return out
}

func (b *Builder) buildStateLike(spec *nodeSpec, leafName string) tree.Node {
	id := leafName
	children := b.buildChildren(spec)
	switch {
	case spec.parallel:
		return &tree.Parallel{ID: &id, Children: children, Loc: tree.DefaultLocation()}
	case spec.final:
		return &tree.Final{ID: &id, Children: children, Loc: tree.DefaultLocation()}
	case spec.history != nil:
		return &tree.History{ID: &id, HKind: *spec.history, Children: children, Loc: tree.DefaultLocation()}
	default:
		return &tree.State{ID: &id, Children: children, Loc: tree.DefaultLocation()}
	}
}

func (b *Builder) buildNode(name string) (tree.Node, error) {
	spec, ok := b.specs[name]
	if !ok {
		return nil, fmt.Errorf("treebuilder: unknown node %q", name)
	}
	if name == "" {
		return b.rootNode(), nil
	}
	_, leaf := splitPath(name)
	return b.buildStateLike(spec, leaf), nil
}
