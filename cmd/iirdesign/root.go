package main

import (
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func newRootCmd() *cobra.Command {
	var verbose bool

	root := &cobra.Command{
		Use:           "iirdesign",
		Short:         "Design impulse-invariant IIR lowpass filters",
		Long:          `iirdesign selects the minimum Butterworth or Chebyshev type I order for a lowpass specification, maps the analog prototype to discrete time by impulse invariance and quantizes coefficients to fixed point.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			// Every run sets the logger so an earlier --verbose run in the
			// same process does not carry over.
			if !verbose {
				setLogger(nop)
				return nil
			}

			l, err := zap.NewDevelopment()
			if err != nil {
				return err
			}

			setLogger(l)

			return nil
		},
	}

	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "log design steps to stderr")

	root.AddCommand(newDesignCmd(), newQuantizeCmd())

	return root
}
