package main

import (
	"fmt"
	"os"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	mpb "github.com/vbauerster/mpb/v7"
	"github.com/vbauerster/mpb/v7/decor"
	"golang.org/x/exp/rand"

	"github.com/bcdannyboy/optstruct/config"
	"github.com/bcdannyboy/optstruct/models"
	"github.com/bcdannyboy/optstruct/positions"
	"github.com/bcdannyboy/optstruct/pricing"
	"github.com/bcdannyboy/optstruct/probability"
	"github.com/bcdannyboy/optstruct/report"
	"github.com/bcdannyboy/optstruct/volatility"
)

// marketFlags are shared by every subcommand.
type marketFlags struct {
	model      string
	underlying float64
	expiry     float64
	expiryDate string
	rate       float64
	vol        float64
	dividend   float64
	output     string
	volFrom    string
	volMethod  string
	volWindow  int
}

func (f *marketFlags) register(cmd *cobra.Command, cfg config.Config) {
	flags := cmd.PersistentFlags()
	flags.StringVarP(&f.model, "model", "m", "bs", "Pricing model: bs (spot, Black-Scholes) or b76 (forward, Black-76).")
	flags.Float64VarP(&f.underlying, "underlying", "u", 0, "Spot price (bs) or forward price (b76). This flag is required.")
	flags.Float64VarP(&f.expiry, "expiry", "t", 0, "Time to expiry in years, e.g. 0.0833 for one month.")
	flags.StringVar(&f.expiryDate, "expiry-date", "", "Expiration date as YYYY-MM-DD; used when --expiry is not set.")
	flags.Float64VarP(&f.rate, "rate", "r", cfg.RiskFreeRate, "Annual risk-free rate, 0.05 is 5%.")
	flags.Float64VarP(&f.vol, "vol", "v", 0, "Annual volatility, 0.2 is 20%. Required unless --vol-from is set.")
	flags.Float64VarP(&f.dividend, "dividend", "q", cfg.DividendYield, "Annual dividend yield (bs only).")
	flags.StringVarP(&f.output, "output", "o", cfg.Output, "Output format: table or json.")
	flags.StringVar(&f.volFrom, "vol-from", "", "CSV of daily OHLC bars (date,open,high,low,close) to estimate --vol from.")
	flags.StringVar(&f.volMethod, "vol-method", volatility.YangZhang.String(), "Historical volatility estimator used with --vol-from.")
	flags.IntVar(&f.volWindow, "vol-window", 21, "Number of most recent bars used with --vol-from.")
	cmd.MarkPersistentFlagRequired("underlying")
}

// estimateVol fills in sigma from historical bars.
func (f *marketFlags) estimateVol() error {
	method, err := volatility.ParseMethod(f.volMethod)
	if err != nil {
		return err
	}
	file, err := os.Open(f.volFrom)
	if err != nil {
		return fmt.Errorf("open bars: %w", err)
	}
	defer file.Close()

	bars, err := volatility.ReadBars(file)
	if err != nil {
		return err
	}
	window, err := volatility.Window(bars, f.volWindow)
	if err != nil {
		return err
	}
	if f.vol, err = volatility.Estimate(method, window); err != nil {
		return err
	}
	log.WithFields(logrus.Fields{
		"method": method,
		"bars":   len(window),
		"vol":    f.vol,
		"term":   volatility.Term(method, bars),
	}).Info("estimated historical volatility")
	return nil
}

// resolve parses the model and settles the time to expiry.
func (f *marketFlags) resolve(now time.Time) (models.Model, float64, error) {
	model, err := models.ParseModel(f.model)
	if err != nil {
		return 0, 0, err
	}
	if f.vol == 0 && f.volFrom != "" {
		if err := f.estimateVol(); err != nil {
			return 0, 0, err
		}
	}
	T := f.expiry
	if T == 0 && f.expiryDate != "" {
		if T, err = positions.TimeToMaturity(f.expiryDate, now); err != nil {
			return 0, 0, err
		}
	}
	if model == models.Black76 && f.dividend != 0 {
		log.WithField("dividend", f.dividend).Warn("ignoring dividend yield for black-76, carry is in the forward")
	}
	return model, T, nil
}

func (f *marketFlags) legs(model models.Model, T float64) positions.LegFactory {
	if model == models.Black76 {
		return positions.Black76Legs(f.underlying, T, f.rate, f.vol)
	}
	return positions.BlackScholesLegs(f.underlying, T, f.rate, f.vol, f.dividend)
}

func (f *marketFlags) dynamics(model models.Model, T float64) probability.Dynamics {
	if model == models.Black76 {
		return probability.Black76Dynamics(f.underlying, T, f.rate, f.vol)
	}
	return probability.BlackScholesDynamics(f.underlying, T, f.rate, f.dividend, f.vol)
}

func newRootCmd(cfg config.Config) *cobra.Command {
	market := &marketFlags{}
	rootCmd := &cobra.Command{
		Use:   "optstruct",
		Short: "Closed-form European option and multi-leg structure pricing",
		Long: `Prices European calls and puts under Black-Scholes (spot with dividend yield)
or Black-76 (forward) and combines them into structures such as butterflies,
vertical credit spreads and straddles.`,
		SilenceUsage: true,
	}
	market.register(rootCmd, cfg)
	rootCmd.AddCommand(newPriceCmd(market), newStructureCmd(market), newSimulateCmd(market, cfg))
	return rootCmd
}

func newPriceCmd(market *marketFlags) *cobra.Command {
	var kind string
	var strike float64
	cmd := &cobra.Command{
		Use:   "price",
		Short: "Price a single call or put and its greeks",
		RunE: func(cmd *cobra.Command, args []string) error {
			model, T, err := market.resolve(time.Now())
			if err != nil {
				return err
			}
			k, err := models.ParseOptionKind(kind)
			if err != nil {
				return err
			}
			c, err := market.legs(model, T).Leg(k, strike)
			if err != nil {
				return err
			}
			log.WithFields(logrus.Fields{
				"model":  model,
				"kind":   k,
				"strike": strike,
				"T":      T,
			}).Debug("priced contract")

			r := report.FromContract(model, c)
			if bs, ok := c.(pricing.DividendSensitive); ok {
				log.WithField("epsilon", bs.Epsilon()).Debug("dividend sensitivity")
			}
			return report.Write(cmd.OutOrStdout(), market.output, r)
		},
	}
	cmd.Flags().StringVarP(&kind, "kind", "k", "call", "Option kind: call or put.")
	cmd.Flags().Float64VarP(&strike, "strike", "K", 0, "Strike price. This flag is required.")
	cmd.MarkFlagRequired("strike")
	return cmd
}

type structureFlags struct {
	shape   string
	strikes []float64
}

func (f *structureFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&f.shape, "shape", "s", positions.ShapeButterflyLong, fmt.Sprintf("Structure shape, one of %v.", positions.Shapes()))
	cmd.Flags().Float64SliceVarP(&f.strikes, "strikes", "k", nil, "Comma-separated ascending strikes, e.g. 90,100,110. This flag is required.")
	cmd.MarkFlagRequired("strikes")
}

func (f *structureFlags) build(market *marketFlags) (models.Model, float64, *positions.Structure, error) {
	model, T, err := market.resolve(time.Now())
	if err != nil {
		return 0, 0, nil, err
	}
	s, err := positions.Build(f.shape, market.legs(model, T), f.strikes)
	if err != nil {
		return 0, 0, nil, err
	}
	log.WithFields(logrus.Fields{
		"model":   model,
		"shape":   s.Kind(),
		"strikes": s.Strikes(),
		"weights": s.Weights(),
	}).Debug("built structure")
	return model, T, s, nil
}

func newStructureCmd(market *marketFlags) *cobra.Command {
	sf := &structureFlags{}
	cmd := &cobra.Command{
		Use:   "structure",
		Short: "Price a multi-leg structure and its greeks",
		RunE: func(cmd *cobra.Command, args []string) error {
			model, _, s, err := sf.build(market)
			if err != nil {
				return err
			}
			if ror, err := positions.ReturnOnRisk(s); err == nil {
				log.WithField("return_on_risk", ror).Info("credit spread")
			}
			return report.Write(cmd.OutOrStdout(), market.output, report.FromStructure(model, s))
		},
	}
	sf.register(cmd)
	return cmd
}

func newSimulateCmd(market *marketFlags, cfg config.Config) *cobra.Command {
	sf := &structureFlags{}
	var paths int
	var seed uint64
	var progress bool
	cmd := &cobra.Command{
		Use:   "simulate",
		Short: "Price a structure and analyse it held to expiry by Monte Carlo",
		RunE: func(cmd *cobra.Command, args []string) error {
			model, T, s, err := sf.build(market)
			if err != nil {
				return err
			}

			var onProgress func(int)
			var p *mpb.Progress
			var bar *mpb.Bar
			if progress {
				p = mpb.New(mpb.WithWidth(64), mpb.WithOutput(os.Stderr))
				bar = p.AddBar(int64(paths),
					mpb.PrependDecorators(
						decor.Name("Simulating"),
						decor.Percentage(decor.WCSyncSpace),
					),
					mpb.AppendDecorators(
						decor.CountersNoUnit("(%d / %d)", decor.WCSyncSpace),
					),
				)
				onProgress = func(done int) { bar.SetCurrent(int64(done)) }
			}

			start := time.Now()
			d := market.dynamics(model, T)
			terminals, err := probability.SimulateTerminalPrices(d, paths, rand.New(rand.NewSource(seed)), onProgress)
			if p != nil {
				if err != nil {
					bar.Abort(false)
				}
				p.Wait()
			}
			if err != nil {
				return err
			}
			res, err := probability.Analyze(s, terminals, s.Price(), d)
			if err != nil {
				return err
			}
			log.WithFields(logrus.Fields{
				"paths":   paths,
				"seed":    seed,
				"elapsed": time.Since(start),
			}).Info("simulation complete")

			r := report.FromStructure(model, s)
			r.Simulation = &res
			return report.Write(cmd.OutOrStdout(), market.output, r)
		},
	}
	sf.register(cmd)
	cmd.Flags().IntVarP(&paths, "paths", "n", cfg.SimPaths, "Number of Monte Carlo paths.")
	cmd.Flags().Uint64Var(&seed, "seed", cfg.SimSeed, "Random seed.")
	cmd.Flags().BoolVar(&progress, "progress", false, "Show a progress bar on stderr.")
	return cmd
}
