package cmd

import (
	"encoding/json"

	"github.com/rustyeddy/fibjournal/fib"
	"github.com/spf13/cobra"
)

var calcCmd = &cobra.Command{
	Use:   "calc",
	Short: "Calculate Fibonacci levels for a price range",
	Long: `Calculate retracement and extension levels for a swing high and low,
with the trading zone for each level and the recommendation blocks.

Examples:
  fibjournal calc --high 70000 --low 65000
  fibjournal calc --high 1.0875 --low 1.0850 --trend down
  fibjournal calc --high 120 --low 100 --json`,
	Args: cobra.NoArgs,
	RunE: runCalc,
}

var (
	calcHigh  float64
	calcLow   float64
	calcTrend string
	calcJSON  bool
)

func init() {
	rootCmd.AddCommand(calcCmd)

	calcCmd.Flags().Float64Var(&calcHigh, "high", 0, "swing high price (required)")
	calcCmd.Flags().Float64Var(&calcLow, "low", 0, "swing low price (required)")
	calcCmd.Flags().StringVar(&calcTrend, "trend", "", "up or down (default from config)")
	calcCmd.Flags().BoolVar(&calcJSON, "json", false, "print the analysis as JSON")
	calcCmd.MarkFlagRequired("high")
	calcCmd.MarkFlagRequired("low")
}

func runCalc(cmd *cobra.Command, args []string) error {
	rt, err := loadApp()
	if err != nil {
		return err
	}
	defer rt.Close()

	trend, err := trendFlag(calcTrend, rt)
	if err != nil {
		return err
	}

	a, err := fib.Analyze(fib.DefaultRatios(), calcHigh, calcLow, trend)
	if err != nil {
		return err
	}
	rt.log.WithComponent("calc").WithField("trend", trend.String()).Debug("levels calculated")

	if calcJSON {
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(a)
	}
	return rt.printer(cmd).Analysis(a)
}

// trendFlag parses an explicit --trend value, falling back to the
// configured default.
func trendFlag(v string, rt *app) (fib.Trend, error) {
	if v == "" {
		return rt.cfg.Trend(), nil
	}
	return fib.ParseTrend(v)
}
