package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/AnatoleLucet/sift/internal/catalog"
	"github.com/AnatoleLucet/sift/internal/config"
	"github.com/AnatoleLucet/sift/internal/logging"
	"github.com/AnatoleLucet/sift/internal/watch"
)

func newApplyCommand() *cobra.Command {
	var (
		in       inputFlags
		watching bool
		debounce time.Duration
	)

	cmd := &cobra.Command{
		Use:   "apply",
		Short: "Print the records passing every filter",
		Example: `  sift apply -d services.yaml -f filters.yaml
  sift apply -d services.yaml -f filters.yaml -o json --watch`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := in.validate(); err != nil {
				return err
			}

			ctx := cmd.Context()
			cfg := config.FromContext(ctx)
			logger := logging.FromContext(ctx)

			run := func(ctx context.Context) (watch.Result, error) {
				c, records, err := apply(ctx, in, logger)
				if err != nil {
					return watch.Result{}, err
				}

				if err := writeRecords(cmd.OutOrStdout(), cfg.Output, records); err != nil {
					return watch.Result{}, err
				}

				return watch.Result{Matched: len(records), Total: len(c.Records)}, nil
			}

			if !watching {
				_, err := run(ctx)
				return err
			}

			opts := watch.DefaultOptions()
			opts.Files = []string{in.data, in.filters}
			opts.Debounce = debounce
			opts.Logger = logger
			opts.Out = cmd.ErrOrStderr()

			return watch.Run(ctx, opts, run)
		},
	}

	in.register(cmd)
	cmd.Flags().BoolVarP(&watching, "watch", "w", false, "rerun whenever the data or filter file changes")
	cmd.Flags().DurationVar(&debounce, "debounce", watch.DefaultOptions().Debounce, "quiet period before a rerun")

	return cmd
}

// apply loads both files, builds the tree and returns the matching records.
func apply(ctx context.Context, in inputFlags, logger *slog.Logger) (*catalog.Catalog, []catalog.Record, error) {
	c, err := catalog.Load(ctx, in.data, in.filters)
	if err != nil {
		return nil, nil, err
	}

	logger = logging.WithTree(logger, c.Schema.Title)

	tree, err := c.Build(logger)
	if err != nil {
		return nil, nil, err
	}

	if _, err := tree.Load(ctx); err != nil {
		return nil, nil, err
	}

	records := tree.Filtered()
	logger.Info("filters applied", slog.Int("matched", len(records)), slog.Int("total", len(c.Records)))

	return c, records, nil
}

func writeRecords(w io.Writer, format string, records []catalog.Record) error {
	if records == nil {
		records = []catalog.Record{}
	}

	switch format {
	case config.OutputJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")

		if err := enc.Encode(records); err != nil {
			return fmt.Errorf("encoding json: %w", err)
		}

		return nil
	default:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)

		if err := enc.Encode(records); err != nil {
			return fmt.Errorf("encoding yaml: %w", err)
		}

		return enc.Close()
	}
}
