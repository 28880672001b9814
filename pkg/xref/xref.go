// Package xref builds the cross-reference graph of a documentation set.
//
// Every documented entry is a node. An edge A -> B means the signature of A
// links to B, so the graph shows which declarations a type or function is
// built from. The graph is exported as Graphviz DOT and can be rendered to SVG
// with [RenderSVG].
package xref

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"github.com/goccy/go-graphviz"

	"github.com/matzehuels/sigdoc/pkg/docs"
	"github.com/matzehuels/sigdoc/pkg/sink"
)

// Node is a documented entry.
type Node struct {
	ID     string
	Module string
	Name   string
	Kind   docs.Kind
}

// Edge is a reference from one entry's signature to another entry.
type Edge struct {
	From string
	To   string
}

// Graph is the reference graph. Nodes and edges keep documentation order.
type Graph struct {
	Nodes []Node
	Edges []Edge
}

// NodeID returns the node identifier of an entry.
func NodeID(module, name string) string {
	return module + "." + name
}

// Build collects the references of every entry in pages. Links that do not
// resolve to an entry of the same module are ignored. Self references (a
// recursive union, for instance) are kept.
func Build(pages []sink.Page) Graph {
	var g Graph
	for _, p := range pages {
		names := make(map[string]bool, len(p.Entries))
		for _, e := range p.Entries {
			names[e.Name] = true
			g.Nodes = append(g.Nodes, Node{
				ID:     NodeID(p.Module, e.Name),
				Module: p.Module,
				Name:   e.Name,
				Kind:   e.Kind,
			})
		}

		for _, e := range p.Entries {
			seen := make(map[string]bool)
			for _, target := range e.Signature.Links() {
				name := strings.TrimPrefix(target, "#")
				if !names[name] || seen[name] {
					continue
				}
				seen[name] = true
				g.Edges = append(g.Edges, Edge{
					From: NodeID(p.Module, e.Name),
					To:   NodeID(p.Module, name),
				})
			}
		}
	}
	return g
}

// Referrers returns the IDs of nodes whose signatures reference id.
func (g Graph) Referrers(id string) []string {
	var out []string
	for _, e := range g.Edges {
		if e.To == id {
			out = append(out, e.From)
		}
	}
	return out
}

var kindShapes = map[docs.Kind]string{
	docs.KindAlias: "note",
	docs.KindUnion: "box",
	docs.KindValue: "ellipse",
	docs.KindBinop: "diamond",
}

// ToDOT returns the graph in Graphviz DOT format, one cluster per module.
func (g Graph) ToDOT() string {
	var buf bytes.Buffer
	buf.WriteString("digraph References {\n")
	buf.WriteString("  rankdir=LR;\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [fontname=\"SF Mono, Menlo, monospace\", fontsize=12, style=filled, fillcolor=white];\n")
	buf.WriteString("  edge [color=\"#888888\"];\n\n")

	var modules []string
	byModule := make(map[string][]Node)
	for _, n := range g.Nodes {
		if _, ok := byModule[n.Module]; !ok {
			modules = append(modules, n.Module)
		}
		byModule[n.Module] = append(byModule[n.Module], n)
	}

	for i, m := range modules {
		fmt.Fprintf(&buf, "  subgraph cluster_%d {\n", i)
		fmt.Fprintf(&buf, "    label=%s;\n", quote(m))
		for _, n := range byModule[m] {
			fmt.Fprintf(&buf, "    %s [label=%s, shape=%s];\n", quote(n.ID), quote(n.Name), kindShapes[n.Kind])
		}
		buf.WriteString("  }\n")
	}
	if len(g.Edges) > 0 {
		buf.WriteString("\n")
	}
	for _, e := range g.Edges {
		fmt.Fprintf(&buf, "  %s -> %s;\n", quote(e.From), quote(e.To))
	}

	buf.WriteString("}\n")
	return buf.String()
}

var dotEscaper = strings.NewReplacer(`\`, `\\`, `"`, `\"`)

// quote returns s as a DOT double-quoted string. Only quotes and
// backslashes are escaped; other runes are written as is.
func quote(s string) string {
	return `"` + dotEscaper.Replace(s) + `"`
}

// RenderSVG renders DOT source to SVG with Graphviz.
func RenderSVG(ctx context.Context, dot string) ([]byte, error) {
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, fmt.Errorf("parse DOT: %w", err)
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, graphviz.SVG, &buf); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	return buf.Bytes(), nil
}
