// Package core defines the Core Graph: the normalized, cross-referenced,
// index-addressed representation the microstep synthesizer consumes. States
// and transitions are dense ordered sequences; every cross-reference is a
// plain integer index into one of those sequences (arena-by-position, no
// aliasing, safe to clone and serialize).
package core

import "github.com/comalice/microstepc/internal/tree"

// Location is the same span type the Statechart Tree carries; the normalizer
// copies it through verbatim rather than recomputing it.
type Location = tree.Location

// StateID and TransitionID are positions into Graph.States / Graph.Transitions.
type (
	StateID      int
	TransitionID int
)

// StateKind classifies a normalized state.
type StateKind string

const (
	Atomic         StateKind = "atomic"
	Compound       StateKind = "compound"
	Parallel       StateKind = "parallel"
	HistoryShallow StateKind = "history_shallow"
	HistoryDeep    StateKind = "history_deep"
	InitialKind    StateKind = "initial"
	Final          StateKind = "final"
)

// TransitionKind classifies a normalized transition.
type TransitionKind string

const (
	External    TransitionKind = "external"
	Targetless  TransitionKind = "targetless" // defined by the grammar, never produced by the normalizer
	Internal    TransitionKind = "internal"
	Spontaneous TransitionKind = "spontaneous"
	HistoryT    TransitionKind = "history"
	InitialT    TransitionKind = "initial"
	OnEventT    TransitionKind = "on_event"
)

// State is one node of the Core Graph, addressed by its index in Graph.States.
type State struct {
	Idx         StateID        `json:"idx"`
	ID          *string        `json:"id,omitempty"`
	Kind        StateKind      `json:"kind"`
	Parent      StateID        `json:"parent"`
	Ancestors   []StateID      `json:"ancestors"`
	Descendants []StateID      `json:"descendants"`
	Children    []StateID      `json:"children"`
	Initial     []StateID      `json:"initial"`
	Transitions []TransitionID `json:"transitions"`
	OnInit      []uint64       `json:"on_init"`
	OnEnter     []uint64       `json:"on_enter"`
	OnExit      []uint64       `json:"on_exit"`
	Invocations []uint64       `json:"invocations"`
	Loc         Location       `json:"loc"`
}

// Transition is one edge of the Core Graph, addressed by its index in Graph.Transitions.
type Transition struct {
	Idx          TransitionID   `json:"idx"`
	Kind         TransitionKind `json:"kind"`
	Source       StateID        `json:"source"`
	Event        *uint64        `json:"event,omitempty"`
	Condition    *uint64        `json:"condition,omitempty"`
	OnTransition []uint64       `json:"on_transition"`
	Targets      []StateID      `json:"targets"`
	Exits        []StateID      `json:"exits"`
	Conflicts    []TransitionID `json:"conflicts"`
	Loc          Location       `json:"loc"`
}

// Graph is the full normalized output: dense ordered states and transitions.
type Graph struct {
	States      []State      `json:"states"`
	Transitions []Transition `json:"transitions"`
	Loc         Location     `json:"loc"`
}

// Root returns the always-present state 0 (the Statechart root).
func (g *Graph) Root() *State { return &g.States[0] }

// N returns the number of states (the microstep program's configuration_size).
func (g *Graph) N() int { return len(g.States) }
