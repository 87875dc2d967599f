package main

import (
	"fmt"
	"io"
	"strconv"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/cwbudde/algo-filterdesign/dsp/filter/quant"
)

func newQuantizeCmd() *cobra.Command {
	var (
		bits int
		q15  bool
	)

	cmd := &cobra.Command{
		Use:   "quantize [flags] coefficient ...",
		Short: "Quantize coefficients to signed fixed point",
		Long: `Rounds the given coefficients to a fixed-point format. By default the integer
bits are chosen from the largest magnitude and the rest of the word holds the
fraction; --q15 uses the Q0.15 format instead.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			coeffs, err := parseCoeffs(args)
			if err != nil {
				return err
			}

			var res quant.Result
			if q15 {
				res, err = quant.QuantizeFormat(coeffs, quant.Q15)
			} else {
				res, err = quant.Quantize(coeffs, bits)
			}

			if err != nil {
				return err
			}

			logger().Info("quantized", zap.Stringer("format", res.Format), zap.Int("count", len(coeffs)))

			return printQuantized(cmd.OutOrStdout(), coeffs, res)
		},
	}

	cmd.Flags().IntVarP(&bits, "bits", "b", 16, "total word size including the sign bit")
	cmd.Flags().BoolVar(&q15, "q15", false, "use the Q0.15 format")
	cmd.MarkFlagsMutuallyExclusive("bits", "q15")
	// Coefficients may be negative; stop flag parsing at the first one.
	cmd.Flags().SetInterspersed(false)

	return cmd
}

func parseCoeffs(args []string) ([]float64, error) {
	out := make([]float64, len(args))
	for i, a := range args {
		v, err := strconv.ParseFloat(a, 64)
		if err != nil {
			return nil, fmt.Errorf("coefficient %d: %w", i, err)
		}

		out[i] = v
	}

	return out, nil
}

func printQuantized(w io.Writer, coeffs []float64, res quant.Result) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)

	if _, err := fmt.Fprintf(tw, "format\t%s (L=%d, B=%d)\n", res.Format, res.Format.IntegerBits, res.Format.FractionalBits); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}

	if _, err := fmt.Fprintf(tw, "index\tvalue\tquantized\tmantissa\terror\n"); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}

	for i, x := range coeffs {
		if _, err := fmt.Fprintf(tw, "%d\t%.10g\t%.10g\t%d\t%.3g\n",
			i, x, res.Values[i], res.Mantissas[i], res.Values[i]-x); err != nil {
			return fmt.Errorf("failed to write output: %w", err)
		}
	}

	return tw.Flush()
}
