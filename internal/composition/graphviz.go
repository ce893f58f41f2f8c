package composition

import (
	"fmt"
	"io"
)

// DumpGraphviz writes the composition graph in Graphviz's `dot` format,
// walking from every instance's actions since they are the graph's roots
// — `Composer::dump_graphviz`, backing the `--composition` CLI flag.
func (cp *Composer) DumpGraphviz(w io.Writer) error {
	seen := make(map[Node]bool)
	var order []Node

	var collect func(n Node)
	collect = func(n Node) {
		if seen[n] {
			return
		}
		seen[n] = true
		order = append(order, n)
		for _, m := range n.Edges() {
			collect(m)
		}
	}
	for _, inst := range cp.instances[1:] {
		for _, a := range inst.Actions {
			collect(a)
		}
	}

	if _, err := fmt.Fprintln(w, "digraph {"); err != nil {
		return err
	}
	for _, n := range order {
		if _, err := fmt.Fprintf(w, "  %q -> {", n.Name()); err != nil {
			return err
		}
		for _, m := range n.Edges() {
			if _, err := fmt.Fprintf(w, " %q", m.Name()); err != nil {
				return err
			}
		}
		if _, err := fmt.Fprintln(w, "}"); err != nil {
			return err
		}
	}
	_, err := fmt.Fprintln(w, "}")
	return err
}
