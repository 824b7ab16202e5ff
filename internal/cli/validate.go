package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"runtime"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/matzehuels/aasgraph/pkg/cache"
	"github.com/matzehuels/aasgraph/pkg/errors"
	"github.com/matzehuels/aasgraph/pkg/model"
	"github.com/matzehuels/aasgraph/pkg/store"
)

// report is the outcome of validating one document. It is what the
// validation cache stores.
type report struct {
	Path   string   `json:"path"`
	Counts counts   `json:"counts"`
	Issues []string `json:"issues,omitempty"`
	Error  string   `json:"error,omitempty"`

	cached bool
}

type counts struct {
	Shells              int `json:"shells"`
	Submodels           int `json:"submodels"`
	Assets              int `json:"assets"`
	ConceptDescriptions int `json:"concept_descriptions"`
}

func countObjects(s store.ObjectStore) counts {
	return counts{
		Shells:              len(store.Filter[*model.AssetAdministrationShell](s)),
		Submodels:           len(store.Filter[*model.Submodel](s)),
		Assets:              len(store.Filter[*model.Asset](s)),
		ConceptDescriptions: len(store.Filter[*model.ConceptDescription](s)),
	}
}

func (r *report) ok() bool { return r.Error == "" && len(r.Issues) == 0 }

// validateCommand creates the validate command.
func (c *CLI) validateCommand() *cobra.Command {
	var (
		strict  bool
		noCache bool
		asJSON  bool
		format  string
	)

	cmd := &cobra.Command{
		Use:   "validate <file>...",
		Short: "Decode AAS documents and report problems",
		Long: `Decode one or more AAS documents and report every problem found.

In failsafe mode (the default) each malformed object is dropped and listed
with its location, and decoding continues. With --strict the first problem
fails the document. Documents are checked concurrently; results are cached
by content hash.`,
		Example: `  aasgraph validate plant.json
  aasgraph validate --strict shells/*.json`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			strict = boolSetting(cmd.Flags().Changed("strict"), strict, c.cfg.Strict)
			ch := c.newCache(noCache)
			defer ch.Close()

			reports, err := validateAll(cmd.Context(), args, format, strict, ch, newKeyer())
			if err != nil {
				return err
			}
			if asJSON {
				enc := json.NewEncoder(os.Stdout)
				enc.SetIndent("", "  ")
				if err := enc.Encode(reports); err != nil {
					return err
				}
			} else {
				printReports(reports)
			}

			failed := 0
			for _, r := range reports {
				if !r.ok() {
					failed++
				}
			}
			if failed > 0 {
				return errors.New(errors.ErrCodeDecodeFailure, "%d of %d documents have problems", failed, len(reports))
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&strict, "strict", false, "fail a document on its first problem")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable the result cache")
	cmd.Flags().BoolVar(&asJSON, "json", false, "print the reports as JSON")
	cmd.Flags().StringVarP(&format, "format", "f", "", "input format (json, cbor, yaml); default from extension")

	return cmd
}

// validateAll checks every path concurrently. Problems with single
// documents end up in their reports; only cancellation aborts the run.
func validateAll(ctx context.Context, paths []string, format string, strict bool, ch cache.Cache, keyer cache.Keyer) ([]*report, error) {
	prog := newProgress(loggerFromContext(ctx))
	reports := make([]*report, len(paths))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.GOMAXPROCS(0))
	for i, path := range paths {
		g.Go(func() error {
			reports[i] = validateOne(ctx, path, format, strict, ch, keyer)
			return ctx.Err()
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	prog.done(fmt.Sprintf("Checked %d documents", len(paths)))
	return reports, nil
}

func validateOne(ctx context.Context, path, format string, strict bool, ch cache.Cache, keyer cache.Keyer) *report {
	logger := loggerFromContext(ctx)
	doc, err := readDocument(path, format)
	if err != nil {
		return &report{Path: path, Error: errors.UserMessage(err)}
	}

	key := keyer.ValidationKey(doc.hash, cache.ValidationKeyOpts{Strict: strict})
	if data, ok, err := ch.Get(ctx, key); err == nil && ok {
		var r report
		if err := json.Unmarshal(data, &r); err == nil {
			logger.Debug("validation cache hit", "file", path)
			r.Path = path
			r.cached = true
			return &r
		}
	}

	r := &report{Path: path}
	res, err := doc.decode(ctx, strict)
	if err != nil {
		r.Error = err.Error()
	} else {
		r.Counts = countObjects(res.Store)
		for _, issue := range res.Issues {
			r.Issues = append(r.Issues, issue.String())
		}
	}

	if data, err := json.Marshal(r); err == nil {
		if err := ch.Set(ctx, key, data, 0); err != nil {
			logger.Debug("cannot cache validation report", "file", path, "err", err)
		}
	}
	return r
}

func printReports(reports []*report) {
	for _, r := range reports {
		switch {
		case r.Error != "":
			printError("%s", r.Path)
			printDetail("%s", r.Error)
			continue
		case len(r.Issues) > 0:
			printWarning("%s: %d problems", r.Path, len(r.Issues))
			for _, issue := range r.Issues {
				printDetail("%s", issue)
			}
		default:
			printSuccess("%s", r.Path)
		}
		printStats(r.Counts, r.cached)
	}
}
