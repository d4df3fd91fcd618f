package main

import (
	"fmt"
	"os"
	"runtime/debug"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	easy "github.com/t-tomalak/logrus-easy-formatter"

	"github.com/halewood/loansim/internal/breakeven"
	"github.com/halewood/loansim/internal/calculation"
	"github.com/halewood/loansim/internal/compare"
	"github.com/halewood/loansim/internal/config"
	"github.com/halewood/loansim/internal/domain"
	"github.com/halewood/loansim/internal/output"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

// logrusAdapter backs calculation.Logger with the shared logrus instance.
type logrusAdapter struct{}

func (logrusAdapter) Debugf(format string, args ...any) { logrus.Debugf(format, args...) }
func (logrusAdapter) Infof(format string, args ...any)  { logrus.Infof(format, args...) }
func (logrusAdapter) Warnf(format string, args ...any)  { logrus.Warnf(format, args...) }
func (logrusAdapter) Errorf(format string, args ...any) { logrus.Errorf(format, args...) }

func setupLogging(debugMode bool) {
	logrus.SetFormatter(&easy.Formatter{
		TimestampFormat: "2006-01-02 15:04:05",
		LogFormat:       "[%time%] [%lvl%] %msg%\n",
	})
	if debugMode {
		logrus.SetLevel(logrus.DebugLevel)
	} else {
		logrus.SetLevel(logrus.WarnLevel)
	}
}

func newEngine(cmd *cobra.Command) *calculation.Engine {
	engine := calculation.NewEngine()
	debugMode, _ := cmd.Flags().GetBool("debug")
	setupLogging(debugMode)
	engine.SetLogger(logrusAdapter{})
	engine.Debug = debugMode
	return engine
}

func loadScenario(path string) (*config.ScenarioConfig, error) {
	parser := config.NewInputParser()
	cfg, err := parser.LoadFromFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to load scenario: %w", err)
	}
	return cfg, nil
}

var rootCmd = &cobra.Command{
	Use:   "loansim",
	Short: "Income-contingent student loan simulator",
	Long:  "Simulates month-by-month amortization of an income-contingent student loan until repayment or write-off",
}

var simulateCmd = &cobra.Command{
	Use:   "simulate [scenario-file]",
	Short: "Run a repayment simulation",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadScenario(args[0])
		if err != nil {
			return err
		}

		plan := domain.RepaymentPlan{}
		if planName, _ := cmd.Flags().GetString("plan"); planName != "" {
			if plan, err = cfg.FindPlan(planName); err != nil {
				return err
			}
		}

		engine := newEngine(cmd)
		result, err := engine.Simulate(cmd.Context(), cfg.ToLoanParameters(), plan)
		if err != nil {
			return err
		}

		format, _ := cmd.Flags().GetString("format")
		report, err := output.GenerateReport(result, calculation.Summarize(result, plan), format)
		if err != nil {
			return err
		}
		fmt.Fprintln(os.Stdout, report)

		if withChart, _ := cmd.Flags().GetBool("chart"); withChart {
			fmt.Fprintln(os.Stdout, output.RenderBalanceChart(result))
			fmt.Fprintln(os.Stdout)
			fmt.Fprintln(os.Stdout, output.RenderSalaryChart(result))
		}
		return nil
	},
}

var validateCmd = &cobra.Command{
	Use:   "validate [scenario-file]",
	Short: "Validate a scenario file and print its digest",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadScenario(args[0])
		if err != nil {
			return err
		}

		params := cfg.ToLoanParameters()
		fmt.Fprintf(os.Stdout, "Scenario %s is valid.\n\n", args[0])
		fmt.Fprintf(os.Stdout, "Principal:            %s\n", output.FormatCurrency(params.Principal))
		fmt.Fprintf(os.Stdout, "Initial salary:       %s\n", output.FormatCurrency(params.InitialSalary))
		fmt.Fprintf(os.Stdout, "Repayment threshold:  %s\n", output.FormatCurrency(params.RepaymentThreshold))
		fmt.Fprintf(os.Stdout, "Repayment rate:       %s\n", output.FormatPercentage(params.RepaymentRate))
		fmt.Fprintf(os.Stdout, "Interest rate:        %s\n", output.FormatPercentage(params.AnnualInterestRate))
		fmt.Fprintf(os.Stdout, "Start date:           %s\n", params.StartDate.Format(config.DateFormat))
		fmt.Fprintf(os.Stdout, "Write-off date:       %s\n", params.WriteOffDate.Format(config.DateFormat))
		fmt.Fprintf(os.Stdout, "Plans:                %d\n", len(cfg.Plans))
		return nil
	},
}

var compareCmd = &cobra.Command{
	Use:   "compare [scenario-file]",
	Short: "Compare every configured plan against the baseline",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadScenario(args[0])
		if err != nil {
			return err
		}
		if len(cfg.Plans) == 0 {
			return fmt.Errorf("scenario %s defines no plans to compare", args[0])
		}

		engine := compare.NewCompareEngine(newEngine(cmd))
		set, err := engine.ComparePlans(cmd.Context(), cfg.ToLoanParameters(), cfg.Plans)
		if err != nil {
			return err
		}

		format, _ := cmd.Flags().GetString("format")
		out, err := compare.FormatComparison(set, format)
		if err != nil {
			return err
		}
		fmt.Fprintln(os.Stdout, out)
		return nil
	},
}

var breakEvenCmd = &cobra.Command{
	Use:   "break-even [scenario-file]",
	Short: "Solve the minimum fixed monthly payment that clears the loan",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadScenario(args[0])
		if err != nil {
			return err
		}

		basePlan := domain.RepaymentPlan{}
		if planName, _ := cmd.Flags().GetString("plan"); planName != "" {
			if basePlan, err = cfg.FindPlan(planName); err != nil {
				return err
			}
		}

		options := breakeven.DefaultSolverOptions()
		if tolerance, _ := cmd.Flags().GetFloat64("tolerance"); tolerance > 0 {
			options.Tolerance = decimal.NewFromFloat(tolerance)
		}
		targetMonths, _ := cmd.Flags().GetInt("target-months")

		solver := breakeven.NewSolver(newEngine(cmd), options)
		result, err := solver.SolveMonthlyFixed(cmd.Context(), cfg.ToLoanParameters(), basePlan, targetMonths)
		if err != nil {
			return err
		}

		target := "the write-off date"
		if targetMonths > 0 {
			target = fmt.Sprintf("%d months (%s)", targetMonths, output.FormatMonths(targetMonths))
		}
		fmt.Fprintf(os.Stdout, "Minimum fixed monthly payment to repay by %s: %s\n",
			target, output.FormatCurrency(result.MonthlyFixed))
		fmt.Fprintf(os.Stdout, "Repays in:    %s\n", output.FormatMonths(result.MonthsElapsed))
		fmt.Fprintf(os.Stdout, "Total repaid: %s\n", output.FormatCurrency(result.TotalRepaid))
		fmt.Fprintf(os.Stdout, "Iterations:   %d\n", result.Iterations)
		return nil
	},
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(os.Stdout, "loansim %s (commit %s, built %s)\n", version, commit, date)
		if bi, ok := debug.ReadBuildInfo(); ok {
			fmt.Fprintf(os.Stdout, "go: %s\n", bi.GoVersion)
		}
	},
}

func init() {
	rootCmd.PersistentFlags().Bool("debug", false, "Enable debug logging")

	simulateCmd.Flags().String("plan", "", "Named repayment plan to apply")
	simulateCmd.Flags().String("format", "console", "Output format (console, csv, json, yaml)")
	simulateCmd.Flags().Bool("chart", false, "Render ASCII charts after the report")

	compareCmd.Flags().String("format", "table", "Output format (table, csv, json)")

	breakEvenCmd.Flags().String("plan", "", "Base plan whose upfront payment is kept")
	breakEvenCmd.Flags().Int("target-months", 0, "Repayment deadline in months (0 = by write-off date)")
	breakEvenCmd.Flags().Float64("tolerance", 0, "Payment convergence tolerance in pounds")

	rootCmd.AddCommand(simulateCmd, validateCmd, compareCmd, breakEvenCmd, versionCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
