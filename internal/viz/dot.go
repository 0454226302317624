// Package viz renders a Core Graph for debug inspection (-d/--debug CLI
// flag): a Graphviz DOT cluster diagram and a YAML dump. Adapted from the
// teacher's internal/production/visualizer.go, which rendered a string-keyed
// MachineConfig; here it walks the Core Graph's index-based ancestors/
// children instead and colors by StateKind rather than by an active-path
// membership test (the Core Graph has no runtime configuration to highlight).
package viz

import (
	"bytes"
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/comalice/microstepc/internal/core"
)

// ExportDOT generates Graphviz DOT source for the Core Graph.
func ExportDOT(g *core.Graph) string {
	var buf bytes.Buffer
	buf.WriteString("digraph CoreGraph {\n  rankdir=LR;\n  node [shape=box, fontsize=10, style=rounded];\n  edge [fontsize=9];\n")

	renderState(&buf, g, 0)

	for i := range g.Transitions {
		t := &g.Transitions[i]
		for _, target := range t.Targets {
			buf.WriteString(fmt.Sprintf("  %s -> %s [label=%q];\n", nodeName(int(t.Source)), nodeName(int(target)), string(t.Kind)))
		}
	}

	buf.WriteString("}\n")
	return buf.String()
}

func nodeName(idx int) string {
	return fmt.Sprintf("s%d", idx)
}

func renderState(buf *bytes.Buffer, g *core.Graph, idx int) {
	s := &g.States[idx]
	label := nodeName(idx)
	if s.ID != nil {
		label = fmt.Sprintf("%s (%s)", *s.ID, s.Kind)
	} else {
		label = fmt.Sprintf("%s (%s)", label, s.Kind)
	}

	if len(s.Children) > 0 {
		fmt.Fprintf(buf, "  subgraph cluster_%d {\n    label=%q;\n", idx, label)
		if s.Kind == core.Parallel {
			buf.WriteString("    style=filled; fillcolor=lightblue;\n")
		}
		fmt.Fprintf(buf, "    %s [label=%q shape=ellipse];\n", nodeName(idx), label)
		for _, c := range s.Children {
			renderState(buf, g, int(c))
		}
		buf.WriteString("  }\n")
		return
	}

	style := ""
	switch s.Kind {
	case core.Final:
		style = " style=filled fillcolor=lightgrey"
	case core.HistoryShallow, core.HistoryDeep:
		style = " style=filled fillcolor=lightyellow"
	}
	fmt.Fprintf(buf, "  %s [label=%q%s];\n", nodeName(idx), label, style)
}

// ExportYAML dumps the Core Graph as YAML, using the same library
// (gopkg.in/yaml.v3) the teacher's config types are tagged for.
func ExportYAML(g *core.Graph) ([]byte, error) {
	return yaml.Marshal(g)
}
