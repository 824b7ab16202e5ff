package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"slices"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/aasgraph/pkg/codec"
	"github.com/matzehuels/aasgraph/pkg/errors"
	"github.com/matzehuels/aasgraph/pkg/model"
	"github.com/matzehuels/aasgraph/pkg/store/filestore"
)

// storeCommand creates the store management command.
func (c *CLI) storeCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "store",
		Short: "Manage the local object store",
		Long: `Manage the local object store: a directory holding one JSON file per
identifiable. The directory defaults to $XDG_DATA_HOME/aasgraph/objects
and can be set with --dir or store_dir in the config file.`,
	}

	cmd.PersistentFlags().StringVar(&c.storeDir, "dir", "", "store directory")

	cmd.AddCommand(c.storeAddCommand())
	cmd.AddCommand(c.storeGetCommand())
	cmd.AddCommand(c.storeListCommand())
	cmd.AddCommand(c.storeSetCommand())
	cmd.AddCommand(c.storeRemoveCommand())

	return cmd
}

// openStore opens the file store named by --dir or the config.
func (c *CLI) openStore(ctx context.Context) (*filestore.Store, error) {
	dir := c.storeDir
	if dir == "" {
		var err error
		if dir, err = c.cfg.storeDir(); err != nil {
			return nil, err
		}
	}
	return filestore.Open(dir, filestore.Options{
		IdentityCacheSize: c.cfg.IdentityCacheSize,
		Logger:            loggerFromContext(ctx),
	})
}

func (c *CLI) storeAddCommand() *cobra.Command {
	var replace, strict bool

	cmd := &cobra.Command{
		Use:   "add <file>...",
		Short: "Add the identifiables of documents to the store",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			strict = boolSetting(cmd.Flags().Changed("strict"), strict, c.cfg.Strict)
			fs, err := c.openStore(ctx)
			if err != nil {
				return err
			}

			spinner := newSpinnerWithContext(ctx, "Adding objects...")
			spinner.Start()
			added, skipped, err := addDocuments(ctx, fs, args, strict, replace, spinner)
			spinner.Stop()
			if err != nil {
				return err
			}

			printSuccess("Added %d objects", added)
			if skipped > 0 {
				printWarning("Skipped %d objects already stored (use --replace)", skipped)
			}
			printDetail("Directory: %s", fs.Dir())
			printNextStep("List them", "aasgraph store list")
			return nil
		},
	}

	cmd.Flags().BoolVar(&replace, "replace", false, "overwrite objects that are already stored")
	cmd.Flags().BoolVar(&strict, "strict", false, "fail on the first decode problem")
	return cmd
}

func addDocuments(ctx context.Context, fs *filestore.Store, paths []string, strict, replace bool, spinner *Spinner) (added, skipped int, err error) {
	logger := loggerFromContext(ctx)
	for i, path := range paths {
		spinner.Update("Adding %s (%d/%d)", path, i+1, len(paths))
		doc, err := readDocument(path, "")
		if err != nil {
			return added, skipped, err
		}
		res, err := doc.decode(ctx, strict)
		if err != nil {
			return added, skipped, err
		}
		for _, obj := range res.Store.Items() {
			err := fs.Add(obj)
			if errors.Is(err, errors.ErrCodeDuplicate) {
				if !replace {
					logger.Debug("already stored", "id", obj.Identification())
					skipped++
					continue
				}
				if err = fs.Discard(obj); err == nil {
					err = fs.Add(obj)
				}
			}
			if err != nil {
				return added, skipped, err
			}
			added++
		}
	}
	return added, skipped, nil
}

func (c *CLI) storeGetCommand() *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "get <id>",
		Short: "Show a stored identifiable",
		Example: `  aasgraph store get urn:example:sm:1
  aasgraph store get IRDI:0173-1#02-AAO677#002 --json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			fs, err := c.openStore(cmd.Context())
			if err != nil {
				return err
			}
			obj, err := fs.GetIdentifiable(parseIdentifier(args[0]))
			if err != nil {
				return err
			}
			if asJSON {
				data, err := json.MarshalIndent(codec.NewEncoder(codec.EncodeOptions{}).EncodeIdentifiable(obj), "", "  ")
				if err != nil {
					return err
				}
				fmt.Fprintln(os.Stdout, string(data))
				return nil
			}
			printObject(obj)
			printKeyValue("source", obj.Source())
			if ns, ok := obj.(model.Namespace); ok {
				for _, child := range ns.Children() {
					printDetail("%s %s", child.Kind(), child.IDShort())
				}
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "print the object as JSON")
	return cmd
}

func (c *CLI) storeListCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List the stored identifiables",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			fs, err := c.openStore(cmd.Context())
			if err != nil {
				return err
			}
			items := fs.Items()
			if len(items) == 0 {
				printInfo("Store is empty")
				return nil
			}
			slices.SortFunc(items, func(a, b model.Identifiable) int {
				return strings.Compare(a.Identification().String(), b.Identification().String())
			})
			for _, obj := range items {
				printKeyValue(obj.Kind().String(), obj.Identification().String()+"  "+StyleDim.Render(obj.IDShort()))
			}
			return nil
		},
	}
}

func (c *CLI) storeSetCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "set <id> <path> <value>",
		Short: "Set the value of a stored property",
		Long: `Set the value of a property below a stored identifiable and write the
change back. The path lists idShorts separated by "/". The write fails
if the file was changed by someone else since it was read.`,
		Example: `  aasgraph store set urn:example:sm:1 Status running
  aasgraph store set urn:example:sm:1 Motor/Speed 1500`,
		Args: cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			fs, err := c.openStore(ctx)
			if err != nil {
				return err
			}
			root, err := fs.GetIdentifiable(parseIdentifier(args[0]))
			if err != nil {
				return err
			}
			target, err := descendPath(root, args[1])
			if err != nil {
				return err
			}
			prop, ok := target.(*model.Property)
			if !ok {
				return errors.New(errors.ErrCodeInvalidInput, "%s is a %s, not a Property", args[1], target.Kind())
			}
			if err := prop.ParseValue(args[2]); err != nil {
				return err
			}
			if err := model.Commit(ctx, prop); err != nil {
				return err
			}
			printSuccess("%s = %s", args[1], prop.Value())
			return nil
		},
	}
}

func (c *CLI) storeRemoveCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "rm <id>...",
		Short: "Remove identifiables from the store",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			fs, err := c.openStore(cmd.Context())
			if err != nil {
				return err
			}
			for _, arg := range args {
				obj, err := fs.GetIdentifiable(parseIdentifier(arg))
				if err != nil {
					return err
				}
				if err := fs.Discard(obj); err != nil {
					return err
				}
				printSuccess("Removed %s", obj.Identification())
			}
			return nil
		},
	}
}

// parseIdentifier reads "TYPE:id" with TYPE one of IRDI, IRI, Custom. Any
// other text is taken as an IRI.
func parseIdentifier(s string) model.Identifier {
	if prefix, rest, ok := strings.Cut(s, ":"); ok {
		if t, err := model.ParseIdentifierType(prefix); err == nil {
			return model.Identifier{ID: rest, IDType: t}
		}
	}
	return model.Identifier{ID: s, IDType: model.IRI}
}

// descendPath follows a "/"-separated idShort path below root.
func descendPath(root model.Referable, path string) (model.Referable, error) {
	cur := root
	for _, name := range strings.Split(strings.Trim(path, "/"), "/") {
		ns, ok := cur.(model.Namespace)
		if !ok {
			return nil, errors.New(errors.ErrCodeNotANamespace, "%s %q has no children", cur.Kind(), cur.IDShort())
		}
		next, err := ns.GetReferable(name)
		if err != nil {
			return nil, err
		}
		cur = next
	}
	return cur, nil
}
