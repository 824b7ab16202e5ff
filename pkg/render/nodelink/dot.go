package nodelink

import (
	"bytes"
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/goccy/go-graphviz"

	"github.com/matzehuels/aasgraph/pkg/errors"
	"github.com/matzehuels/aasgraph/pkg/model"
	"github.com/matzehuels/aasgraph/pkg/render"
	"github.com/matzehuels/aasgraph/pkg/store"
)

// Options configures node-link diagram rendering.
type Options struct {
	// Detailed adds the kind and value of each object to its label.
	// When false, only the id_short (or identifier) is shown.
	Detailed bool
	// References draws a dashed edge for every AAS reference held by an
	// object. References that do not resolve in the store point at a
	// grey placeholder node.
	References bool
}

// ToDOT converts the objects of a store to Graphviz DOT format. Every
// identifiable is the root of a containment tree; namespaces point at
// their children. The resulting DOT string can be rendered using
// [RenderSVG], [RenderPDF], or [RenderPNG].
func ToDOT(s store.ObjectStore, opts Options) string {
	b := &builder{ids: make(map[model.Referable]string), opts: opts}
	for _, obj := range s.Items() {
		b.visit(obj, obj.Identification().String())
	}

	var buf bytes.Buffer
	buf.WriteString("digraph G {\n")
	buf.WriteString("  rankdir=TB;\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [shape=box, style=\"rounded,filled\", fillcolor=white, fontsize=24, margin=\"0.2,0.1\"];\n")
	buf.WriteString("  ranksep=0.5;\n")
	buf.WriteString("  nodesep=0.3;\n")
	buf.WriteString("\n")

	for _, r := range b.order {
		fmt.Fprintf(&buf, "  %q [%s];\n", b.ids[r], strings.Join(fmtAttrs(r, fmtLabel(r, opts.Detailed)), ", "))
	}

	buf.WriteString("\n")
	for _, e := range b.edges {
		fmt.Fprintf(&buf, "  %q -> %q;\n", e[0], e[1])
	}

	if opts.References {
		placeholders := make(map[string]bool)
		for _, r := range b.order {
			for _, ref := range references(r) {
				to, ok := b.target(ref, s)
				if !ok {
					to = "ref:" + ref.String()
					if !placeholders[to] {
						placeholders[to] = true
						fmt.Fprintf(&buf, "  %q [label=%q, style=\"rounded,filled,dashed\", fillcolor=lightgrey, fontcolor=black];\n", to, ref.String())
					}
				}
				fmt.Fprintf(&buf, "  %q -> %q [style=dashed, color=grey40];\n", b.ids[r], to)
			}
		}
	}

	buf.WriteString("}\n")
	return buf.String()
}

type builder struct {
	opts  Options
	ids   map[model.Referable]string
	order []model.Referable
	edges [][2]string
}

func (b *builder) visit(r model.Referable, id string) {
	b.ids[r] = id
	b.order = append(b.order, r)
	ns, ok := r.(model.Namespace)
	if !ok {
		return
	}
	for _, child := range ns.Children() {
		childID := id + "/" + child.IDShort()
		b.edges = append(b.edges, [2]string{id, childID})
		b.visit(child, childID)
	}
}

func (b *builder) target(ref model.AASReference, s store.ObjectStore) (string, bool) {
	obj, err := ref.Resolve(s)
	if err != nil {
		var ute *errors.UnexpectedTypeError
		if !errors.As(err, &ute) {
			return "", false
		}
		obj, _ = ute.Found.(model.Referable)
	}
	id, ok := b.ids[obj]
	return id, ok
}

// references returns the AAS references held by r.
func references(r model.Referable) []model.AASReference {
	var refs []model.AASReference
	add := func(ref *model.AASReference) {
		if ref != nil {
			refs = append(refs, *ref)
		}
	}
	switch x := r.(type) {
	case *model.AssetAdministrationShell:
		refs = append(refs, x.Asset)
		add(x.DerivedFrom)
		refs = append(refs, x.Submodels...)
	case *model.Asset:
		add(x.AssetIdentificationModel)
		add(x.BillOfMaterial)
	case *model.View:
		refs = append(refs, x.ContainedElements...)
	case *model.ConceptDictionary:
		refs = append(refs, x.ConceptDescriptions...)
	case *model.RelationshipElement:
		refs = append(refs, x.First, x.Second)
	case *model.AnnotatedRelationshipElement:
		refs = append(refs, x.First, x.Second)
	case *model.BasicEvent:
		refs = append(refs, x.Observed)
	case *model.Entity:
		add(x.Asset())
	}
	return refs
}

func fmtLabel(r model.Referable, detailed bool) string {
	name := r.IDShort()
	id, isRoot := r.(model.Identifiable)
	if name == "" && isRoot {
		name = id.Identification().ID
	}
	if !detailed {
		return name
	}

	parts := []string{r.Kind().String()}
	if isRoot {
		parts = append(parts, id.Identification().String())
	}
	if v := value(r); v != "" {
		parts = append(parts, v)
	}
	return name + "\n" + strings.Join(parts, "\n")
}

func value(r model.Referable) string {
	switch x := r.(type) {
	case *model.Property:
		if v := x.Value(); v != nil {
			return fmt.Sprintf("%s = %s", x.ValueType(), v)
		}
	case *model.Range:
		lo, hi := "", ""
		if x.Min() != nil {
			lo = x.Min().String()
		}
		if x.Max() != nil {
			hi = x.Max().String()
		}
		return fmt.Sprintf("%s [%s, %s]", x.ValueType(), lo, hi)
	case *model.MultiLanguageProperty:
		if langs := x.Value().Languages(); len(langs) > 0 {
			return strings.Join(langs, ", ")
		}
	case *model.File:
		return x.Value
	}
	return ""
}

func fmtAttrs(r model.Referable, label string) []string {
	attrs := []string{fmt.Sprintf("label=%q", label)}
	if _, ok := r.(model.Identifiable); ok {
		attrs = append(attrs, "fillcolor=\"#dbe9f6\"", "penwidth=2")
	}
	return attrs
}

// RenderSVG renders a DOT graph to SVG using Graphviz.
// Returns the SVG bytes ready for display or further conversion with [render.ToPDF] or [render.ToPNG].
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

// RenderPDF draws a DOT graph as PDF. It needs rsvg-convert, see [render.ToPDF].
func RenderPDF(dot string) ([]byte, error) {
	svg, err := RenderSVG(dot)
	if err != nil {
		return nil, err
	}
	return render.ToPDF(svg)
}

// RenderPNG draws a DOT graph as PNG at the given scale. It needs
// rsvg-convert, see [render.ToPNG].
func RenderPNG(dot string, scale float64) ([]byte, error) {
	svg, err := RenderSVG(dot)
	if err != nil {
		return nil, err
	}
	return render.ToPNG(svg, scale)
}
