package cli

import (
	"bytes"
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/aasgraph/pkg/cache"
	"github.com/matzehuels/aasgraph/pkg/codec"
)

type convertOpts struct {
	from     string
	to       string
	output   string
	stripped bool
	strict   bool
	noCache  bool
}

// convertCommand creates the convert command.
func (c *CLI) convertCommand() *cobra.Command {
	var opts convertOpts

	cmd := &cobra.Command{
		Use:   "convert <file>",
		Short: "Convert an AAS document between JSON, CBOR and YAML",
		Long: `Decode an AAS document and write it in another format.

The target format is taken from --to, else from the extension of --output,
else JSON. With --stripped child containers and qualifiers are omitted.
Objects the failsafe decoder had to drop are logged and left out.`,
		Example: `  aasgraph convert plant.json --to yaml
  aasgraph convert plant.yaml -o plant.cbor
  aasgraph convert - --from cbor < plant.cbor`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.stripped = boolSetting(cmd.Flags().Changed("stripped"), opts.stripped, c.cfg.Stripped)
			opts.strict = boolSetting(cmd.Flags().Changed("strict"), opts.strict, c.cfg.Strict)
			ch := c.newCache(opts.noCache)
			defer ch.Close()
			return runConvert(cmd.Context(), args[0], opts, ch, newKeyer())
		},
	}

	cmd.Flags().StringVar(&opts.from, "from", "", "input format (json, cbor, yaml); default from extension")
	cmd.Flags().StringVarP(&opts.to, "to", "t", "", "output format (json, cbor, yaml)")
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (default stdout)")
	cmd.Flags().BoolVar(&opts.stripped, "stripped", false, "omit child containers and qualifiers")
	cmd.Flags().BoolVar(&opts.strict, "strict", false, "fail on the first problem")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "disable the result cache")

	return cmd
}

func targetFormat(to, output string) (codec.Format, error) {
	if to != "" {
		return codec.ParseFormat(to)
	}
	if output != "" && output != "-" {
		return codec.FormatFromPath(output), nil
	}
	return codec.FormatJSON, nil
}

func runConvert(ctx context.Context, path string, opts convertOpts, ch cache.Cache, keyer cache.Keyer) error {
	logger := loggerFromContext(ctx)
	prog := newProgress(logger)

	to, err := targetFormat(opts.to, opts.output)
	if err != nil {
		return err
	}
	doc, err := readDocument(path, opts.from)
	if err != nil {
		return err
	}

	key := keyer.ConversionKey(doc.hash, cache.ConversionKeyOpts{
		From:     string(doc.format),
		To:       string(to),
		Stripped: opts.stripped,
	})
	if data, ok, err := ch.Get(ctx, key); err == nil && ok {
		logger.Debug("conversion cache hit", "file", path)
		return finishConvert(opts.output, data, prog)
	}

	res, err := doc.decode(ctx, opts.strict)
	if err != nil {
		return err
	}
	var buf bytes.Buffer
	enc := codec.NewEncoder(codec.EncodeOptions{Stripped: opts.stripped})
	if err := enc.Encode(ctx, &buf, res.Store, to); err != nil {
		return err
	}

	// A lossy result must log its issues again on the next run.
	if len(res.Issues) == 0 {
		if err := ch.Set(ctx, key, buf.Bytes(), 0); err != nil {
			logger.Debug("cannot cache conversion", "file", path, "err", err)
		}
	}
	return finishConvert(opts.output, buf.Bytes(), prog)
}

func finishConvert(output string, data []byte, prog *progress) error {
	if err := writeOutput(output, data); err != nil {
		return err
	}
	if output != "" && output != "-" {
		prog.done(fmt.Sprintf("Wrote %s", output))
	}
	return nil
}
