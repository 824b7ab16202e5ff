// Package render provides visualization of AAS object graphs.
//
// # Overview
//
// The [nodelink] subpackage turns the objects of a store into a Graphviz
// diagram: containment edges from every namespace to its children, and
// optionally dashed edges for the AAS references between objects.
//
//	dot := nodelink.ToDOT(s, nodelink.Options{References: true})
//	svg, err := nodelink.RenderSVG(dot)
//
// # Format Conversion
//
// The [ToPDF] and [ToPNG] functions convert any SVG to other formats using
// the external rsvg-convert tool (from librsvg).
//
//	pdf, err := render.ToPDF(svg)
//	png, err := render.ToPNG(svg, 2.0)  // 2x scale
//
// [nodelink]: github.com/matzehuels/aasgraph/pkg/render/nodelink
package render
