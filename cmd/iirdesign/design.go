package main

import (
	"fmt"
	"io"
	"math"
	"math/cmplx"
	"slices"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/cwbudde/algo-filterdesign/dsp/core"
	"github.com/cwbudde/algo-filterdesign/dsp/filter/biquad"
	"github.com/cwbudde/algo-filterdesign/dsp/filter/design/analog"
	"github.com/cwbudde/algo-filterdesign/dsp/filter/lti"
	"github.com/cwbudde/algo-filterdesign/dsp/filter/quant"
	"github.com/cwbudde/algo-filterdesign/dsp/filter/response"
	"github.com/cwbudde/algo-filterdesign/dsp/filter/sos"
	"github.com/cwbudde/algo-filterdesign/dsp/filter/transform"
)

// designResult is everything the design command reports.
type designResult struct {
	design   analog.Design
	digital  lti.TransferFunction
	T        float64
	spec     analog.Spec
	passDB   float64 // discrete response at wp*T relative to the peak
	stopDB   float64 // discrete response at ws*T relative to the peak
	sections []biquad.Coefficients
	quantB   *quant.Result
	quantA   *quant.Result
	quantSOS *quant.SOSResult
	radius   float64 // largest pole magnitude of the sections
	qRadius  float64 // largest pole magnitude after quantization
	irDev    float64 // largest impulse response error of the sections
	qIRDev   float64 // largest impulse response error after quantization
	qPassDB  float64 // quantized cascade at wp*T relative to its peak
	qStopDB  float64 // quantized cascade at ws*T relative to its peak
	showSOS  bool
}

// impulseLength is the number of impulse response samples compared between
// a cascade and the transfer function it realizes.
const impulseLength = 256

func newDesignCmd() *cobra.Command {
	var (
		configPath string
		showSOS    bool
	)

	flagged := defaultDesignConfig()

	cmd := &cobra.Command{
		Use:   "design",
		Short: "Design a lowpass filter and map it to discrete time",
		Long: `Selects the minimum order for the specification, builds the analog prototype,
applies impulse invariance and prints both transfer functions together with the
attenuation reached at the band edges.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := flagged
			if configPath != "" {
				fileCfg, err := loadDesignConfig(configPath)
				if err != nil {
					return err
				}

				overrideFromFlags(cmd, &fileCfg, flagged)
				cfg = fileCfg
			}

			res, err := runDesign(cfg, showSOS)
			if err != nil {
				return err
			}

			return printDesign(cmd.OutOrStdout(), res)
		},
	}

	bindDesignFlags(cmd, &flagged)
	cmd.Flags().StringVarP(&configPath, "config", "c", "", "YAML design file (flags override its values)")
	cmd.Flags().BoolVar(&showSOS, "sos", false, "also print second-order sections")

	return cmd
}

func runDesign(cfg designConfig, showSOS bool) (designResult, error) {
	family, err := analog.ParseFamily(cfg.Family)
	if err != nil {
		return designResult{}, err
	}

	spec := cfg.spec()

	d, err := analog.DesignFamily(family, spec)
	if err != nil {
		return designResult{}, err
	}

	logger().Info("analog design",
		zap.Stringer("family", d.Family),
		zap.Int("order", d.Order),
		zap.Float64("cutoff", d.Cutoff),
	)

	hz, err := transform.ImpulseInvariance(d.TF, cfg.SamplingInterval)
	if err != nil {
		return designResult{}, err
	}

	resp, err := response.Discrete(hz)
	if err != nil {
		return designResult{}, err
	}

	peak := 0.0
	for _, m := range resp.Magnitude {
		peak = math.Max(peak, m)
	}

	res := designResult{
		design:  d,
		digital: hz,
		T:       cfg.SamplingInterval,
		spec:    spec,
		passDB:  edgeDB(hz, spec.Wp*cfg.SamplingInterval, peak),
		stopDB:  edgeDB(hz, spec.Ws*cfg.SamplingInterval, peak),
		showSOS: showSOS,
	}

	if showSOS {
		res.sections, err = sos.FromTransferFunction(hz)
		if err != nil {
			return designResult{}, err
		}

		chain := biquad.NewChain(res.sections)
		res.radius = chain.PoleRadius()

		res.irDev, err = impulseDeviation(chain, hz)
		if err != nil {
			return designResult{}, err
		}
	}

	if cfg.Bits > 0 {
		if err := quantizeDesign(&res, cfg.Bits); err != nil {
			return designResult{}, err
		}
	}

	return res, nil
}

func quantizeDesign(res *designResult, bits int) error {
	qb, err := quant.Quantize(res.digital.Num(), bits)
	if err != nil {
		return fmt.Errorf("numerator: %w", err)
	}

	qa, err := quant.Quantize(res.digital.Den(), bits)
	if err != nil {
		return fmt.Errorf("denominator: %w", err)
	}

	res.quantB, res.quantA = &qb, &qa

	logger().Info("quantized",
		zap.Int("bits", bits),
		zap.Stringer("numerator_format", qb.Format),
		zap.Stringer("denominator_format", qa.Format),
	)

	if res.sections != nil {
		qs, err := quant.QuantizeSOS(res.sections, bits)
		if err != nil {
			return err
		}

		res.quantSOS = &qs

		chain := biquad.NewChain(qs.Sections)
		res.qRadius = chain.PoleRadius()

		res.qIRDev, err = impulseDeviation(chain, res.digital)
		if err != nil {
			return err
		}

		resp, err := response.DiscreteSOS(qs.Sections, 1)
		if err != nil {
			return err
		}

		peakDB := core.LinearToDB(slices.Max(resp.Magnitude))
		res.qPassDB = chainEdgeDB(chain, res.spec.Wp*res.T, peakDB)
		res.qStopDB = chainEdgeDB(chain, res.spec.Ws*res.T, peakDB)

		logger().Info("quantized sections",
			zap.Stringer("format", qs.Format),
			zap.Bool("stable", chain.IsStable()),
			zap.Float64("pole_radius", res.qRadius),
			zap.Float64("impulse_deviation", res.qIRDev),
		)
	}

	return nil
}

// impulseDeviation returns the largest difference between the impulse
// responses of chain and h over impulseLength samples.
func impulseDeviation(chain *biquad.Chain, h lti.TransferFunction) (float64, error) {
	want, err := h.ImpulseResponse(impulseLength)
	if err != nil {
		return 0, err
	}

	dev := 0.0
	for i, v := range chain.ImpulseResponse(impulseLength) {
		dev = math.Max(dev, math.Abs(v-want[i]))
	}

	return dev, nil
}

// chainEdgeDB is edgeDB for a cascade.
func chainEdgeDB(chain *biquad.Chain, w, peakDB float64) float64 {
	if w > math.Pi {
		return math.Inf(-1)
	}

	return chain.MagnitudeDB(w) - peakDB
}

// edgeDB returns 20*log10(|H(e^jw)|/peak), or -Inf past Nyquist.
func edgeDB(h lti.TransferFunction, w, peak float64) float64 {
	if w > math.Pi || peak == 0 {
		return math.Inf(-1)
	}

	return core.LinearToDB(cmplx.Abs(h.EvalFrequency(w)) / peak)
}

func printDesign(w io.Writer, r designResult) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)

	rows := [][2]string{
		{"family", r.design.Family.String()},
		{"order", fmt.Sprint(r.design.Order)},
		{"cutoff", fmt.Sprintf("%.6g rad/s", r.design.Cutoff)},
		{"sampling interval", fmt.Sprintf("%g s", r.T)},
		{"analog b", formatCoeffs(r.design.TF.Num())},
		{"analog a", formatCoeffs(r.design.TF.Den())},
		{"digital b", formatCoeffs(r.digital.Num())},
		{"digital a", formatCoeffs(r.digital.Den())},
		{"at wp", fmt.Sprintf("%.4f dB (w = %.4f rad/sample, want >= %.4g dB)", r.passDB, r.spec.Wp*r.T, -r.spec.Rp)},
		{"at ws", fmt.Sprintf("%.4f dB (w = %.4f rad/sample, want <= %.4g dB)", r.stopDB, r.spec.Ws*r.T, -r.spec.As)},
	}

	if r.quantB != nil {
		rows = append(rows,
			[2]string{fmt.Sprintf("digital b %s", r.quantB.Format), formatCoeffs(r.quantB.Values)},
			[2]string{fmt.Sprintf("digital a %s", r.quantA.Format), formatCoeffs(r.quantA.Values)},
		)
	}

	for _, row := range rows {
		if _, err := fmt.Fprintf(tw, "%s\t%s\n", row[0], row[1]); err != nil {
			return fmt.Errorf("failed to write output: %w", err)
		}
	}

	if r.showSOS {
		for i, row := range sos.Rows(r.sections) {
			if _, err := fmt.Fprintf(tw, "section %d\t%s\n", i, formatCoeffs(row[:])); err != nil {
				return fmt.Errorf("failed to write output: %w", err)
			}
		}

		if _, err := fmt.Fprintf(tw, "pole radius\t%.8g\n", r.radius); err != nil {
			return fmt.Errorf("failed to write output: %w", err)
		}

		if _, err := fmt.Fprintf(tw, "impulse deviation\t%.3g\n", r.irDev); err != nil {
			return fmt.Errorf("failed to write output: %w", err)
		}

		if r.quantSOS != nil {
			for i, row := range sos.Rows(r.quantSOS.Sections) {
				if _, err := fmt.Fprintf(tw, "section %d %s\t%s\n", i, r.quantSOS.Format, formatCoeffs(row[:])); err != nil {
					return fmt.Errorf("failed to write output: %w", err)
				}
			}

			q := r.quantSOS.Format
			qrows := [][2]string{
				{fmt.Sprintf("pole radius %s", q), fmt.Sprintf("%.8g", r.qRadius)},
				{fmt.Sprintf("impulse deviation %s", q), fmt.Sprintf("%.3g", r.qIRDev)},
				{fmt.Sprintf("at wp %s", q), fmt.Sprintf("%.4f dB", r.qPassDB)},
				{fmt.Sprintf("at ws %s", q), fmt.Sprintf("%.4f dB", r.qStopDB)},
			}

			for _, row := range qrows {
				if _, err := fmt.Fprintf(tw, "%s\t%s\n", row[0], row[1]); err != nil {
					return fmt.Errorf("failed to write output: %w", err)
				}
			}
		}
	}

	return tw.Flush()
}

func formatCoeffs(c []float64) string {
	parts := make([]string, len(c))
	for i, v := range c {
		parts[i] = fmt.Sprintf("%.8g", v)
	}

	return "[" + strings.Join(parts, " ") + "]"
}
