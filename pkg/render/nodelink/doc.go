// Package nodelink renders AAS object graphs as node-link diagrams.
//
// # Overview
//
// Every identifiable in a store becomes the root of a containment tree:
// shells point at their views and concept dictionaries, submodels at their
// elements, collections and entities at their members. Identifiables are
// drawn with a blue fill.
//
// # Usage
//
//	dot := nodelink.ToDOT(s, nodelink.Options{References: true})
//	svg, err := nodelink.RenderSVG(dot)
//
// For PDF or PNG output:
//
//	pdf, err := nodelink.RenderPDF(dot)
//	png, err := nodelink.RenderPNG(dot, 2.0)  // 2x scale
//
// # Options
//
//   - Detailed: labels include the kind, the identifier and the value
//   - References: dashed edges for the AAS references held by shells,
//     assets, views, dictionaries, relationships, events and entities;
//     references that do not resolve end in a grey placeholder
//
// # Dependencies
//
// This package uses [github.com/goccy/go-graphviz] for in-process SVG
// rendering. PDF and PNG conversion requires librsvg (rsvg-convert).
package nodelink
