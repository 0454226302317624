package tree

// NodeKind discriminates the Statechart Tree node variants on the wire "type" tag.
type NodeKind string

const (
	KindStatechart NodeKind = "statechart"
	KindState      NodeKind = "state"
	KindParallel   NodeKind = "parallel"
	KindTransition NodeKind = "transition"
	KindOnEvent    NodeKind = "on_event"
	KindInitial    NodeKind = "initial"
	KindFinal      NodeKind = "final"
	KindOnInit     NodeKind = "on_init"
	KindOnEntry    NodeKind = "on_entry"
	KindOnExit     NodeKind = "on_exit"
	KindHistory    NodeKind = "history"
	KindInvoke     NodeKind = "invoke"
)

// Binding governs when on_init executables attach: Early to the root, Late to
// the enclosing state. Default is Late.
type Binding string

const (
	BindingEarly Binding = "Early"
	BindingLate  Binding = "Late"
)

// HistoryKind selects shallow vs deep history semantics.
type HistoryKind string

const (
	HistoryShallow HistoryKind = "Shallow"
	HistoryDeep    HistoryKind = "Deep"
)

// EventID, ConditionID, ExecutableID and InvocationID are opaque handles into
// a registry maintained outside this compiler; they are never interpreted here.
type (
	EventID      uint64
	ConditionID  uint64
	ExecutableID uint64
	InvocationID uint64
)

// Node is any Statechart Tree node. Only the scope-introducing variants
// (Statechart, State, Parallel, Initial, Final, History) carry Node children;
// Transition, OnEvent, Invoke and the three On* blocks never do.
type Node interface {
	Kind() NodeKind
	Location() Location
}

// NodeList is an ordered sequence of Nodes with strict, tagged-union JSON
// decoding (see decode.go).
type NodeList []Node

// Statechart is the tree root. It is always the first node entered.
type Statechart struct {
	Binding  Binding
	Children NodeList
	Loc      Location
}

func (n *Statechart) Kind() NodeKind     { return KindStatechart }
func (n *Statechart) Location() Location { return n.Loc }

// State is a compound-or-atomic state; promoted to Atomic at exit if it ends
// up with no scope-introducing children.
type State struct {
	ID       *string
	Children NodeList
	Loc      Location
}

func (n *State) Kind() NodeKind     { return KindState }
func (n *State) Location() Location { return n.Loc }

// Parallel holds concurrently-active regions.
type Parallel struct {
	ID       *string
	Children NodeList
	Loc      Location
}

func (n *Parallel) Kind() NodeKind     { return KindParallel }
func (n *Parallel) Location() Location { return n.Loc }

// Initial is the pseudo-state naming a compound state's default child.
type Initial struct {
	Children NodeList
	Loc      Location
}

func (n *Initial) Kind() NodeKind     { return KindInitial }
func (n *Initial) Location() Location { return n.Loc }

// Final marks a terminal state of its enclosing region.
type Final struct {
	ID       *string
	Children NodeList
	Loc      Location
}

func (n *Final) Kind() NodeKind     { return KindFinal }
func (n *Final) Location() Location { return n.Loc }

// History is a shallow or deep history pseudo-state.
type History struct {
	ID       *string
	HKind    HistoryKind
	Children NodeList
	Loc      Location
}

func (n *History) Kind() NodeKind     { return KindHistory }
func (n *History) Location() Location { return n.Loc }

// Transition is an outgoing edge attached to its enclosing scope at parse time.
type Transition struct {
	Event      *EventID
	Condition  *ConditionID
	Targets    []string
	Executable []ExecutableID
	Loc        Location
}

func (n *Transition) Kind() NodeKind     { return KindTransition }
func (n *Transition) Location() Location { return n.Loc }

// OnEvent is shaped like Transition but targetless (internal/self transition).
type OnEvent struct {
	Event      *EventID
	Condition  *ConditionID
	Executable []ExecutableID
	Loc        Location
}

func (n *OnEvent) Kind() NodeKind     { return KindOnEvent }
func (n *OnEvent) Location() Location { return n.Loc }

// OnInit holds executables that run once, on first entry, gated by Binding.
type OnInit struct {
	Executable []ExecutableID
	Loc        Location
}

func (n *OnInit) Kind() NodeKind     { return KindOnInit }
func (n *OnInit) Location() Location { return n.Loc }

// OnEntry holds executables that run every time the enclosing state enters.
type OnEntry struct {
	Executable []ExecutableID
	Loc        Location
}

func (n *OnEntry) Kind() NodeKind     { return KindOnEntry }
func (n *OnEntry) Location() Location { return n.Loc }

// OnExit holds executables that run every time the enclosing state exits.
type OnExit struct {
	Executable []ExecutableID
	Loc        Location
}

func (n *OnExit) Kind() NodeKind     { return KindOnExit }
func (n *OnExit) Location() Location { return n.Loc }

// Invoke attaches an opaque invocation to its enclosing state.
type Invoke struct {
	Invocation InvocationID
	Loc        Location
}

func (n *Invoke) Kind() NodeKind     { return KindInvoke }
func (n *Invoke) Location() Location { return n.Loc }
