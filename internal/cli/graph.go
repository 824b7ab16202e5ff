package cli

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/aasgraph/pkg/cache"
	"github.com/matzehuels/aasgraph/pkg/errors"
	"github.com/matzehuels/aasgraph/pkg/render/nodelink"
)

// Graph output formats.
const (
	graphDOT = "dot"
	graphSVG = "svg"
	graphPDF = "pdf"
	graphPNG = "png"
)

type graphOpts struct {
	format     string
	output     string
	references bool
	detailed   bool
	scale      float64
	strict     bool
	noCache    bool
}

// graphCommand creates the graph command.
func (c *CLI) graphCommand() *cobra.Command {
	var opts graphOpts

	cmd := &cobra.Command{
		Use:   "graph <file>",
		Short: "Draw the object graph of an AAS document",
		Long: `Draw the containment tree of every identifiable in a document.

With --references the model references between objects are added as dashed
edges; references that cannot be resolved point at grey placeholders.
DOT is written as is; SVG is rendered with Graphviz; PDF and PNG
additionally need rsvg-convert.`,
		Example: `  aasgraph graph plant.json > plant.dot
  aasgraph graph plant.json --references -o plant.svg
  aasgraph graph plant.json --detailed -f png --scale 3 -o plant.png`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.strict = boolSetting(cmd.Flags().Changed("strict"), opts.strict, c.cfg.Strict)
			if !cmd.Flags().Changed("format") && opts.output != "" {
				if ext := strings.TrimPrefix(filepath.Ext(opts.output), "."); ext != "" {
					opts.format = strings.ToLower(ext)
				}
			}
			ch := c.newCache(opts.noCache)
			defer ch.Close()
			return runGraph(cmd.Context(), args[0], opts, ch, newKeyer())
		},
	}

	cmd.Flags().StringVarP(&opts.format, "format", "f", graphDOT, "output format (dot, svg, pdf, png)")
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (default stdout)")
	cmd.Flags().BoolVar(&opts.references, "references", false, "draw reference edges")
	cmd.Flags().BoolVar(&opts.detailed, "detailed", false, "show kinds, identifiers and values in labels")
	cmd.Flags().Float64Var(&opts.scale, "scale", 2, "PNG scale factor")
	cmd.Flags().BoolVar(&opts.strict, "strict", false, "fail on the first decode problem")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "disable the result cache")

	return cmd
}

func runGraph(ctx context.Context, path string, opts graphOpts, ch cache.Cache, keyer cache.Keyer) error {
	logger := loggerFromContext(ctx)
	prog := newProgress(logger)

	switch opts.format {
	case graphDOT, graphSVG, graphPDF, graphPNG:
	default:
		return errors.New(errors.ErrCodeInvalidInput, "unknown graph format %q (want dot, svg, pdf or png)", opts.format)
	}

	doc, err := readDocument(path, "")
	if err != nil {
		return err
	}
	key := keyer.RenderKey(doc.hash, cache.RenderKeyOpts{
		Format:     opts.format,
		References: opts.references,
		Detailed:   opts.detailed,
	})
	if opts.format == graphPNG {
		key += fmt.Sprintf(":%g", opts.scale)
	}
	if data, ok, err := ch.Get(ctx, key); err == nil && ok {
		logger.Debug("render cache hit", "file", path, "format", opts.format)
		return finishGraph(opts.output, data, prog)
	}

	res, err := doc.decode(ctx, opts.strict)
	if err != nil {
		return err
	}
	dot := nodelink.ToDOT(res.Store, nodelink.Options{
		Detailed:   opts.detailed,
		References: opts.references,
	})

	data, err := renderGraph(ctx, dot, opts)
	if err != nil {
		return err
	}
	if len(res.Issues) == 0 {
		if err := ch.Set(ctx, key, data, 0); err != nil {
			logger.Debug("cannot cache graph", "file", path, "err", err)
		}
	}
	return finishGraph(opts.output, data, prog)
}

func renderGraph(ctx context.Context, dot string, opts graphOpts) ([]byte, error) {
	if opts.format == graphDOT {
		return []byte(dot), nil
	}

	spinner := newSpinnerWithContext(ctx, "Rendering "+opts.format+"...")
	spinner.Start()
	defer spinner.Stop()

	switch opts.format {
	case graphSVG:
		return nodelink.RenderSVG(dot)
	case graphPDF:
		return nodelink.RenderPDF(dot)
	default:
		return nodelink.RenderPNG(dot, opts.scale)
	}
}

func finishGraph(output string, data []byte, prog *progress) error {
	if err := writeOutput(output, data); err != nil {
		return err
	}
	if output != "" && output != "-" {
		prog.done("Rendered graph")
		printFile(output)
	}
	return nil
}
