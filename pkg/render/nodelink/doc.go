// Package nodelink renders module graphs as node-link diagrams.
//
// It produces Graphviz DOT source from a graph snapshot, with account
// nodes drawn as cylinders and behavioral nodes as rounded boxes, and
// can render the DOT to SVG in-process via
// [github.com/goccy/go-graphviz]:
//
//	dot := nodelink.ToDOT(g, nodelink.Options{Detailed: true})
//	svg, err := nodelink.RenderSVG(dot)
//
// Edges carry the source port type as a label so a preview shows which
// kind of value flows along each connection.
package nodelink
