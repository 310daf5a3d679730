package kiln

import (
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
)

type GraphInfo struct {
	Capabilities []CapabilityInfo
}

type CapabilityInfo struct {
	Capability   string
	Scope        string
	Recipes      int
	Dependencies []string
	Deferrable   bool
	Cached       bool
}

// Graph reports every capability visible from this engine: its owning
// scope, recipe count, declared dependencies and cache state. Ancestor
// catalogs are included; capabilities shadowed by a nearer scope appear
// once, under the nearest owner.
func (e *Engine) Graph() GraphInfo {
	seen := make(map[string]bool)
	var caps []CapabilityInfo

	for eng := e.internal; eng != nil; eng = eng.Parent() {
		cached := make(map[string]bool)
		for _, info := range eng.Entries() {
			if info.Complete {
				cached[info.Capability] = true
			}
		}

		for _, id := range eng.Catalog().IDs() {
			if seen[id.Name()] {
				continue
			}
			seen[id.Name()] = true

			recipes, _ := eng.Catalog().Recipes(id)

			depSet := make(map[string]bool)
			deferrable := len(recipes) > 0
			for _, r := range recipes {
				if r.IsValue() || !r.Deferrable() {
					deferrable = false
				}
				for _, d := range r.Deps() {
					depSet[d.ID().Name()] = true
				}
			}

			deps := make([]string, 0, len(depSet))
			for dep := range depSet {
				deps = append(deps, dep)
			}
			sort.Strings(deps)

			caps = append(caps, CapabilityInfo{
				Capability:   id.Name(),
				Scope:        eng.Label(),
				Recipes:      len(recipes),
				Dependencies: deps,
				Deferrable:   deferrable,
				Cached:       cached[id.Name()],
			})
		}
	}

	sort.Slice(caps, func(i, j int) bool {
		return caps[i].Capability < caps[j].Capability
	})

	return GraphInfo{Capabilities: caps}
}

func (e *Engine) PrintGraph() {
	e.FprintGraph(os.Stdout)
}

func (e *Engine) FprintGraph(w io.Writer) {
	info := e.Graph()

	if len(info.Capabilities) == 0 {
		_, _ = fmt.Fprintln(w, "(empty catalog)")
		return
	}

	for _, c := range info.Capabilities {
		status := "○"
		if c.Cached {
			status = "●"
		}

		if len(c.Dependencies) == 0 {
			_, _ = fmt.Fprintf(w, "%s %s\n", status, c.Capability)
		} else {
			_, _ = fmt.Fprintf(w, "%s %s ← %s\n", status, c.Capability, strings.Join(c.Dependencies, ", "))
		}
	}
}

func (e *Engine) SprintGraph() string {
	var sb strings.Builder
	e.FprintGraph(&sb)
	return sb.String()
}

func (e *Engine) PrintGraphDOT() {
	e.FprintGraphDOT(os.Stdout)
}

func (e *Engine) FprintGraphDOT(w io.Writer) {
	info := e.Graph()

	_, _ = fmt.Fprintln(w, "digraph capabilities {")
	_, _ = fmt.Fprintln(w, "  rankdir=LR;")
	_, _ = fmt.Fprintln(w, "  node [shape=box];")

	for _, c := range info.Capabilities {
		style := ""
		if c.Cached {
			style = ", style=filled, fillcolor=lightblue"
		}
		_, _ = fmt.Fprintf(w, "  %q [label=%q%s];\n", c.Capability, c.Capability, style)
	}

	_, _ = fmt.Fprintln(w)

	for _, c := range info.Capabilities {
		for _, dep := range c.Dependencies {
			_, _ = fmt.Fprintf(w, "  %q -> %q;\n", c.Capability, dep)
		}
	}

	_, _ = fmt.Fprintln(w, "}")
}

func (e *Engine) SprintGraphDOT() string {
	var sb strings.Builder
	e.FprintGraphDOT(&sb)
	return sb.String()
}

// FprintTable renders the capability graph as a table, one row per
// capability.
func (e *Engine) FprintTable(w io.Writer) {
	info := e.Graph()

	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetStyle(table.StyleLight)
	t.AppendHeader(table.Row{"Capability", "Scope", "Recipes", "Dependencies", "Cached"})

	for _, c := range info.Capabilities {
		cached := ""
		if c.Cached {
			cached = "yes"
		}
		t.AppendRow(table.Row{
			c.Capability,
			c.Scope,
			c.Recipes,
			strings.Join(c.Dependencies, ", "),
			cached,
		})
	}

	t.Render()
}
