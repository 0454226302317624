package tree

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// strictDecode decodes raw into v, rejecting unknown fields per spec.md §6
// ("Unknown fields are rejected (deny_unknown_fields)").
func strictDecode(raw json.RawMessage, v any) error {
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		return err
	}
	return nil
}

func normalizeLoc(loc *wireLocation) Location {
	if loc == nil {
		return DefaultLocation()
	}
	return Location{Start: loc.Start, End: loc.End, Source: loc.Source}
}

type wireLocation struct {
	Start  Position `json:"start"`
	End    Position `json:"end"`
	Source *string  `json:"source,omitempty"`
}

// UnmarshalJSON decodes a JSON array of tagged-union Nodes, in order.
func (nl *NodeList) UnmarshalJSON(data []byte) error {
	var raws []json.RawMessage
	if err := json.Unmarshal(data, &raws); err != nil {
		return err
	}
	out := make(NodeList, 0, len(raws))
	for _, raw := range raws {
		n, err := decodeNode(raw)
		if err != nil {
			return err
		}
		out = append(out, n)
	}
	*nl = out
	return nil
}

// MarshalJSON re-emits the tagged-union list in document order.
func (nl NodeList) MarshalJSON() ([]byte, error) {
	if nl == nil {
		return []byte("[]"), nil
	}
	raws := make([]json.RawMessage, 0, len(nl))
	for _, n := range nl {
		raw, err := marshalNode(n)
		if err != nil {
			return nil, err
		}
		raws = append(raws, raw)
	}
	return json.Marshal(raws)
}

func decodeNode(raw json.RawMessage) (Node, error) {
	var head struct {
		Type string `json:"type"`
	}
	if err := json.Unmarshal(raw, &head); err != nil {
		return nil, err
	}
	switch NodeKind(head.Type) {
	case KindStatechart:
		var w struct {
			Type     string        `json:"type"`
			Binding  Binding       `json:"binding,omitempty"`
			Children NodeList      `json:"children,omitempty"`
			Loc      *wireLocation `json:"loc,omitempty"`
		}
		w.Binding = BindingLate
		if err := strictDecode(raw, &w); err != nil {
			return nil, err
		}
		return &Statechart{Binding: w.Binding, Children: w.Children, Loc: normalizeLoc(w.Loc)}, nil
	case KindState:
		var w struct {
			Type     string        `json:"type"`
			ID       *string       `json:"id,omitempty"`
			Children NodeList      `json:"children,omitempty"`
			Loc      *wireLocation `json:"loc,omitempty"`
		}
		if err := strictDecode(raw, &w); err != nil {
			return nil, err
		}
		return &State{ID: w.ID, Children: w.Children, Loc: normalizeLoc(w.Loc)}, nil
	case KindParallel:
		var w struct {
			Type     string        `json:"type"`
			ID       *string       `json:"id,omitempty"`
			Children NodeList      `json:"children,omitempty"`
			Loc      *wireLocation `json:"loc,omitempty"`
		}
		if err := strictDecode(raw, &w); err != nil {
			return nil, err
		}
		return &Parallel{ID: w.ID, Children: w.Children, Loc: normalizeLoc(w.Loc)}, nil
	case KindInitial:
		var w struct {
			Type     string        `json:"type"`
			Children NodeList      `json:"children,omitempty"`
			Loc      *wireLocation `json:"loc,omitempty"`
		}
		if err := strictDecode(raw, &w); err != nil {
			return nil, err
		}
		return &Initial{Children: w.Children, Loc: normalizeLoc(w.Loc)}, nil
	case KindFinal:
		var w struct {
			Type     string        `json:"type"`
			ID       *string       `json:"id,omitempty"`
			Children NodeList      `json:"children,omitempty"`
			Loc      *wireLocation `json:"loc,omitempty"`
		}
		if err := strictDecode(raw, &w); err != nil {
			return nil, err
		}
		return &Final{ID: w.ID, Children: w.Children, Loc: normalizeLoc(w.Loc)}, nil
	case KindHistory:
		var w struct {
			Type     string        `json:"type"`
			ID       *string       `json:"id,omitempty"`
			HKind    HistoryKind   `json:"kind"`
			Children NodeList      `json:"children,omitempty"`
			Loc      *wireLocation `json:"loc,omitempty"`
		}
		w.HKind = HistoryShallow
		if err := strictDecode(raw, &w); err != nil {
			return nil, err
		}
		return &History{ID: w.ID, HKind: w.HKind, Children: w.Children, Loc: normalizeLoc(w.Loc)}, nil
	case KindTransition:
		var w struct {
			Type       string        `json:"type"`
			Event      *EventID      `json:"event,omitempty"`
			Condition  *ConditionID  `json:"condition,omitempty"`
			Targets    []string      `json:"targets,omitempty"`
			Executable []ExecutableID `json:"children,omitempty"`
			Loc        *wireLocation `json:"loc,omitempty"`
		}
		if err := strictDecode(raw, &w); err != nil {
			return nil, err
		}
		return &Transition{Event: w.Event, Condition: w.Condition, Targets: w.Targets, Executable: w.Executable, Loc: normalizeLoc(w.Loc)}, nil
	case KindOnEvent:
		var w struct {
			Type       string         `json:"type"`
			Event      *EventID       `json:"event,omitempty"`
			Condition  *ConditionID   `json:"condition,omitempty"`
			Executable []ExecutableID `json:"children,omitempty"`
			Loc        *wireLocation  `json:"loc,omitempty"`
		}
		if err := strictDecode(raw, &w); err != nil {
			return nil, err
		}
		return &OnEvent{Event: w.Event, Condition: w.Condition, Executable: w.Executable, Loc: normalizeLoc(w.Loc)}, nil
	case KindOnInit:
		var w struct {
			Type       string         `json:"type"`
			Executable []ExecutableID `json:"children,omitempty"`
			Loc        *wireLocation  `json:"loc,omitempty"`
		}
		if err := strictDecode(raw, &w); err != nil {
			return nil, err
		}
		return &OnInit{Executable: w.Executable, Loc: normalizeLoc(w.Loc)}, nil
	case KindOnEntry:
		var w struct {
			Type       string         `json:"type"`
			Executable []ExecutableID `json:"children,omitempty"`
			Loc        *wireLocation  `json:"loc,omitempty"`
		}
		if err := strictDecode(raw, &w); err != nil {
			return nil, err
		}
		return &OnEntry{Executable: w.Executable, Loc: normalizeLoc(w.Loc)}, nil
	case KindOnExit:
		var w struct {
			Type       string         `json:"type"`
			Executable []ExecutableID `json:"children,omitempty"`
			Loc        *wireLocation  `json:"loc,omitempty"`
		}
		if err := strictDecode(raw, &w); err != nil {
			return nil, err
		}
		return &OnExit{Executable: w.Executable, Loc: normalizeLoc(w.Loc)}, nil
	case KindInvoke:
		var w struct {
			Type       string        `json:"type"`
			Invocation InvocationID  `json:"invocation"`
			Loc        *wireLocation `json:"loc,omitempty"`
		}
		if err := strictDecode(raw, &w); err != nil {
			return nil, err
		}
		return &Invoke{Invocation: w.Invocation, Loc: normalizeLoc(w.Loc)}, nil
	default:
		return nil, fmt.Errorf("tree: unknown node type %q", head.Type)
	}
}

func marshalNode(n Node) (json.RawMessage, error) {
	switch v := n.(type) {
	case *Statechart:
		return json.Marshal(struct {
			Type     NodeKind `json:"type"`
			Binding  Binding  `json:"binding,omitempty"`
			Children NodeList `json:"children,omitempty"`
			Loc      Location `json:"loc"`
		}{KindStatechart, v.Binding, v.Children, v.Loc})
	case *State:
		return json.Marshal(struct {
			Type     NodeKind `json:"type"`
			ID       *string  `json:"id,omitempty"`
			Children NodeList `json:"children,omitempty"`
			Loc      Location `json:"loc"`
		}{KindState, v.ID, v.Children, v.Loc})
	case *Parallel:
		return json.Marshal(struct {
			Type     NodeKind `json:"type"`
			ID       *string  `json:"id,omitempty"`
			Children NodeList `json:"children,omitempty"`
			Loc      Location `json:"loc"`
		}{KindParallel, v.ID, v.Children, v.Loc})
	case *Initial:
		return json.Marshal(struct {
			Type     NodeKind `json:"type"`
			Children NodeList `json:"children,omitempty"`
			Loc      Location `json:"loc"`
		}{KindInitial, v.Children, v.Loc})
	case *Final:
		return json.Marshal(struct {
			Type     NodeKind `json:"type"`
			ID       *string  `json:"id,omitempty"`
			Children NodeList `json:"children,omitempty"`
			Loc      Location `json:"loc"`
		}{KindFinal, v.ID, v.Children, v.Loc})
	case *History:
		return json.Marshal(struct {
			Type     NodeKind    `json:"type"`
			ID       *string     `json:"id,omitempty"`
			HKind    HistoryKind `json:"kind"`
			Children NodeList    `json:"children,omitempty"`
			Loc      Location    `json:"loc"`
		}{KindHistory, v.ID, v.HKind, v.Children, v.Loc})
	case *Transition:
		return json.Marshal(struct {
			Type       NodeKind       `json:"type"`
			Event      *EventID       `json:"event,omitempty"`
			Condition  *ConditionID   `json:"condition,omitempty"`
			Targets    []string       `json:"targets,omitempty"`
			Executable []ExecutableID `json:"children,omitempty"`
			Loc        Location       `json:"loc"`
		}{KindTransition, v.Event, v.Condition, v.Targets, v.Executable, v.Loc})
	case *OnEvent:
		return json.Marshal(struct {
			Type       NodeKind       `json:"type"`
			Event      *EventID       `json:"event,omitempty"`
			Condition  *ConditionID   `json:"condition,omitempty"`
			Executable []ExecutableID `json:"children,omitempty"`
			Loc        Location       `json:"loc"`
		}{KindOnEvent, v.Event, v.Condition, v.Executable, v.Loc})
	case *OnInit:
		return json.Marshal(struct {
			Type       NodeKind       `json:"type"`
			Executable []ExecutableID `json:"children,omitempty"`
			Loc        Location       `json:"loc"`
		}{KindOnInit, v.Executable, v.Loc})
	case *OnEntry:
		return json.Marshal(struct {
			Type       NodeKind       `json:"type"`
			Executable []ExecutableID `json:"children,omitempty"`
			Loc        Location       `json:"loc"`
		}{KindOnEntry, v.Executable, v.Loc})
	case *OnExit:
		return json.Marshal(struct {
			Type       NodeKind       `json:"type"`
			Executable []ExecutableID `json:"children,omitempty"`
			Loc        Location       `json:"loc"`
		}{KindOnExit, v.Executable, v.Loc})
	case *Invoke:
		return json.Marshal(struct {
			Type       NodeKind     `json:"type"`
			Invocation InvocationID `json:"invocation"`
			Loc        Location     `json:"loc"`
		}{KindInvoke, v.Invocation, v.Loc})
	default:
		return nil, fmt.Errorf("tree: unknown node implementation %T", n)
	}
}

// Parse decodes a full Statechart Tree from JSON bytes (the CLI's INPUT file
// contents). The root must be a "statechart" node.
func Parse(data []byte) (*Statechart, error) {
	n, err := decodeNode(json.RawMessage(data))
	if err != nil {
		return nil, err
	}
	sc, ok := n.(*Statechart)
	if !ok {
		return nil, fmt.Errorf("tree: root node must be %q, got %q", KindStatechart, n.Kind())
	}
	return sc, nil
}

// Marshal re-serializes a Statechart Tree, e.g. for round-trip tests or for
// treebuilder-constructed fixtures.
func Marshal(sc *Statechart) ([]byte, error) {
	return marshalNode(sc)
}
