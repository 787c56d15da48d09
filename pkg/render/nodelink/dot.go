package nodelink

import (
	"bytes"
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/goccy/go-graphviz"

	"github.com/anchorsmith/anchorsmith/pkg/flow"
)

// Options configures node-link diagram rendering.
type Options struct {
	// Detailed includes the node kind and port counts in node labels.
	// When false, only the node name is shown.
	Detailed bool
}

// ToDOT converts a graph snapshot to Graphviz DOT for node-link
// visualization. The resulting DOT string can be rendered with
// [RenderSVG].
//
// Account nodes are drawn as grey cylinders, behavioral nodes as
// rounded boxes. Connections with unresolvable endpoints are drawn
// dashed so a preview surfaces dangling edges instead of hiding them.
func ToDOT(g flow.Graph, opts Options) string {
	idx := flow.NodeIndex(g.Nodes)

	var buf bytes.Buffer
	buf.WriteString("digraph G {\n")
	buf.WriteString("  rankdir=TB;\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [shape=box, style=\"rounded,filled\", fillcolor=white, fontsize=24, margin=\"0.2,0.1\"];\n")
	buf.WriteString("  ranksep=0.5;\n")
	buf.WriteString("  nodesep=0.3;\n")
	buf.WriteString("\n")

	for _, n := range g.Nodes {
		label := fmtLabel(n, opts.Detailed)
		attrs := fmtAttrs(n, label)
		fmt.Fprintf(&buf, "  %q [%s];\n", n.ID, strings.Join(attrs, ", "))
	}

	buf.WriteString("\n")
	for _, c := range g.Connections {
		if _, _, srcPort, _, ok := flow.ResolveEndpoints(idx, c); ok {
			fmt.Fprintf(&buf, "  %q -> %q [label=%q];\n", c.SourceNodeID, c.TargetNodeID, srcPort.Type)
			continue
		}
		fmt.Fprintf(&buf, "  %q -> %q [style=dashed, color=grey];\n", c.SourceNodeID, c.TargetNodeID)
	}

	buf.WriteString("}\n")
	return buf.String()
}

func fmtLabel(n flow.Node, detailed bool) string {
	name := n.Name
	if name == "" {
		name = n.ID
	}
	if !detailed {
		return name
	}

	parts := []string{fmt.Sprintf("kind: %s", n.Kind)}
	if len(n.Inputs) > 0 {
		parts = append(parts, fmt.Sprintf("in: %d", len(n.Inputs)))
	}
	if len(n.Outputs) > 0 {
		parts = append(parts, fmt.Sprintf("out: %d", len(n.Outputs)))
	}

	return name + "\n" + strings.Join(parts, "\n")
}

func fmtAttrs(n flow.Node, label string) []string {
	attrs := []string{fmt.Sprintf("label=%q", label)}
	if n.IsAccount() {
		attrs = append(attrs, "shape=cylinder", "style=filled", "fillcolor=lightgrey")
	}
	return attrs
}

// RenderSVG renders a DOT graph to SVG using Graphviz.
func RenderSVG(dot string) ([]byte, error) {
	ctx := context.Background()
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
	return normalizeViewBox(buf.Bytes()), nil
}

var (
	svgTagRe  = regexp.MustCompile(`<svg[^>]*>`)
	viewBoxRe = regexp.MustCompile(`viewBox="([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)"`)
)

// normalizeViewBox rewrites the root svg tag so the viewBox starts at
// the origin and width/height match it, which keeps browser scaling
// consistent across graphviz versions.
func normalizeViewBox(svg []byte) []byte {
	match := viewBoxRe.FindSubmatch(svg)
	if match == nil {
		return svg
	}

	w, _ := strconv.ParseFloat(string(match[3]), 64)
	h, _ := strconv.ParseFloat(string(match[4]), 64)
	if w == 0 || h == 0 {
		return svg
	}

	newSvg := fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.2f %.2f" width="%.0f" height="%.0f">`,
		w, h, w, h)

	return svgTagRe.ReplaceAll(svg, []byte(newSvg))
}
