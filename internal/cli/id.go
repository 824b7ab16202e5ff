package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/aasgraph/pkg/errors"
	"github.com/matzehuels/aasgraph/pkg/model"
)

// idCommand creates the id command.
func (c *CLI) idCommand() *cobra.Command {
	var count int

	cmd := &cobra.Command{
		Use:   "id",
		Short: "Generate fresh urn:uuid identifiers",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if count < 1 {
				return errors.New(errors.ErrCodeInvalidInput, "--count must be at least 1")
			}
			for range count {
				fmt.Println(model.NewIdentifier().ID)
			}
			return nil
		},
	}

	cmd.Flags().IntVarP(&count, "count", "n", 1, "number of identifiers")
	return cmd
}
