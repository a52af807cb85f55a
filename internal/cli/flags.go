package cli

import (
	"errors"

	"github.com/spf13/cobra"
)

// inputFlags are the dataset and filter files shared by apply and inspect.
type inputFlags struct {
	data    string
	filters string
}

func (f *inputFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&f.data, "data", "d", "", "dataset file: a YAML or JSON list of records")
	cmd.Flags().StringVarP(&f.filters, "filters", "f", "", "filter schema file")
}

func (f *inputFlags) validate() error {
	if f.data == "" {
		return usageError(errors.New("--data is required"))
	}
	if f.filters == "" {
		return usageError(errors.New("--filters is required"))
	}

	return nil
}
