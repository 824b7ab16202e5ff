package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/aasgraph/pkg/codec"
	"github.com/matzehuels/aasgraph/pkg/errors"
	"github.com/matzehuels/aasgraph/pkg/model"
	"github.com/matzehuels/aasgraph/pkg/store"
)

// resolveCommand creates the resolve command.
func (c *CLI) resolveCommand() *cobra.Command {
	var (
		keys      []string
		target    string
		withStore bool
		asJSON    bool
		strict    bool
	)

	cmd := &cobra.Command{
		Use:   "resolve <file>",
		Short: "Follow a reference through an AAS document",
		Long: `Build a reference from --key flags and resolve it against the objects of a
document. Each key is written TYPE:IDTYPE:VALUE, e.g.

  Submodel:IRI:urn:example:sm:1
  Property:IdShort:Temperature

The first key names an identifiable, every further key descends by idShort.
The expected kind defaults to the type of the last key. With --store the
file store is consulted for identifiables the document does not contain.`,
		Example: `  aasgraph resolve plant.json --key Submodel:IRI:urn:x:sm --key Property:IdShort:Temp`,
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			strict = boolSetting(cmd.Flags().Changed("strict"), strict, c.cfg.Strict)

			ref, err := parseReference(keys, target)
			if err != nil {
				return err
			}
			doc, err := readDocument(args[0], "")
			if err != nil {
				return err
			}
			res, err := doc.decode(ctx, strict)
			if err != nil {
				return err
			}

			providers := []model.ObjectProvider{res.Store}
			if withStore {
				fs, err := c.openStore(ctx)
				if err != nil {
					return err
				}
				providers = append(providers, fs)
			}

			obj, err := ref.Resolve(store.NewMultiplexer(providers...))
			var mismatch *errors.UnexpectedTypeError
			if errors.As(err, &mismatch) {
				if found, ok := mismatch.Found.(model.Referable); ok {
					printWarning("%s", errors.UserMessage(err))
					obj, err = found, nil
				}
			}
			if err != nil {
				return err
			}

			if asJSON {
				data, err := json.MarshalIndent(codec.NewEncoder(codec.EncodeOptions{}).EncodeReferable(obj), "", "  ")
				if err != nil {
					return err
				}
				fmt.Fprintln(os.Stdout, string(data))
				return nil
			}
			printObject(obj)
			return nil
		},
	}

	cmd.Flags().StringArrayVarP(&keys, "key", "k", nil, "reference key TYPE:IDTYPE:VALUE (repeatable)")
	cmd.Flags().StringVar(&target, "target", "", "expected kind (default: type of the last key)")
	cmd.Flags().BoolVar(&withStore, "store", false, "also look up identifiables in the file store")
	cmd.Flags().BoolVar(&asJSON, "json", false, "print the resolved object as JSON")
	cmd.Flags().BoolVar(&strict, "strict", false, "fail on the first decode problem")
	_ = cmd.MarkFlagRequired("key")

	return cmd
}

// parseKey parses TYPE:IDTYPE:VALUE. The value may itself contain colons.
func parseKey(s string) (model.Key, error) {
	parts := strings.SplitN(s, ":", 3)
	if len(parts) != 3 || parts[2] == "" {
		return model.Key{}, errors.New(errors.ErrCodeInvalidInput, "key %q is not TYPE:IDTYPE:VALUE", s)
	}
	elem, ok := model.ParseKeyElement(parts[0])
	if !ok {
		return model.Key{}, errors.New(errors.ErrCodeInvalidInput, "key %q: unknown type %q", s, parts[0])
	}
	idType, err := model.ParseKeyIDType(parts[1])
	if err != nil {
		return model.Key{}, errors.Wrap(errors.ErrCodeInvalidInput, err, "key %q", s)
	}
	return model.Key{Type: elem, Local: true, Value: parts[2], IDType: idType}, nil
}

// parseReference builds a reference from key specs. An empty target uses
// the kind named by the last key.
func parseReference(specs []string, target string) (model.AASReference, error) {
	if len(specs) == 0 {
		return model.AASReference{}, errors.New(errors.ErrCodeEmptyReference, "at least one --key is required")
	}
	keys := make([]model.Key, len(specs))
	for i, s := range specs {
		k, err := parseKey(s)
		if err != nil {
			return model.AASReference{}, err
		}
		keys[i] = k
	}

	kind := keys[len(keys)-1].Type.Kind()
	if target != "" {
		var ok bool
		if kind, ok = model.KindByName(target); !ok {
			return model.AASReference{}, errors.New(errors.ErrCodeInvalidInput, "unknown kind %q", target)
		}
	}
	if kind == model.KindInvalid {
		kind = model.KindReferable
	}
	return model.NewAASReference(kind, keys...)
}

// printObject prints the identity of a resolved object.
func printObject(obj model.Referable) {
	name := obj.IDShort()
	if id, ok := obj.(model.Identifiable); ok {
		name = id.Identification().String()
	}
	printSuccess("%s %s", StyleKind.Render(obj.Kind().String()), StyleHighlight.Render(name))
	if ref, err := model.ReferenceTo(obj); err == nil {
		printKeyValue("reference", ref.String())
	}
	switch x := obj.(type) {
	case *model.Property:
		printKeyValue("type", x.ValueType().String())
		if x.Value() != nil {
			printKeyValue("value", x.Value().String())
		}
	case *model.Range:
		printKeyValue("type", x.ValueType().String())
		if x.Min() != nil {
			printKeyValue("min", x.Min().String())
		}
		if x.Max() != nil {
			printKeyValue("max", x.Max().String())
		}
	case *model.File:
		printKeyValue("mime", x.MIMEType())
		printKeyValue("value", x.Value)
	}
	if obj.Category() != "" {
		printKeyValue("category", obj.Category())
	}
	for _, lang := range obj.Description().Languages() {
		printKeyValue("desc@"+lang, obj.Description()[lang])
	}
}
