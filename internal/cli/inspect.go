package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/AnatoleLucet/sift/internal/catalog"
	"github.com/AnatoleLucet/sift/internal/logging"
)

func newInspectCommand() *cobra.Command {
	var in inputFlags

	cmd := &cobra.Command{
		Use:   "inspect",
		Short: "Print the filter tree with the state of every filter",
		Long: `Print the loaded filter tree. Each line is one filter or item, prefixed
with + when it lets everything through and - when it narrows the data.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := in.validate(); err != nil {
				return err
			}

			ctx := cmd.Context()

			c, err := catalog.Load(ctx, in.data, in.filters)
			if err != nil {
				return err
			}

			tree, err := c.Build(logging.WithTree(logging.FromContext(ctx), c.Schema.Title))
			if err != nil {
				return err
			}

			root, err := tree.Load(ctx)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if err := catalog.Describe(out, root); err != nil {
				return err
			}

			_, err = fmt.Fprintf(out, "\n%d of %d records match\n", len(tree.Filtered()), len(c.Records))
			return err
		},
	}

	in.register(cmd)

	return cmd
}
