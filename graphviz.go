package stackfsm

import "github.com/enetx/g"

// ToDOT generates a DOT language string representation of the stack for visualization.
// States are drawn top to bottom, the active state first.
func (s *Stack[S]) ToDOT() g.String {
	b := g.NewBuilder()

	b.WriteString("digraph Stack {\n")
	b.WriteString("  rankdir=TB;\n")
	b.WriteString(
		"  node [shape=box, style=filled, fillcolor=\"#f8f8f8\", color=\"#444444\", fontname=\"Helvetica\"];\n",
	)
	b.WriteString("  edge [fontname=\"Helvetica\", fontsize=10, arrowhead=none];\n\n")

	if s.Empty() {
		b.WriteString("  empty [label=\"(stopped)\", shape=plaintext, style=\"\"];\n")
		b.WriteString("}\n")

		return b.String()
	}

	top := len(s.states) - 1

	for i := top; i >= 0; i-- {
		var attrs g.Slice[g.String]
		attrs.Push(g.Format("label=\"{}\"", s.states[i]))

		switch {
		case i == top:
			attrs.Push("fillcolor=\"#90ee90\"", "penwidth=2")
		case i == 0:
			attrs.Push("fillcolor=\"#d3d3d3\"")
		}

		b.WriteString(g.Format("  s{} [{}];\n", i, attrs.Join(", ")))
	}

	b.WriteByte('\n')

	for i := top; i > 0; i-- {
		b.WriteString(g.Format("  s{} -> s{};\n", i, i-1))
	}

	b.WriteString("}\n")

	return b.String()
}
