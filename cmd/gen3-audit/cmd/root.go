package cmd

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/Bearbbcjtc/gen3-tools/internal/config"
)

// Version information (set via ldflags at build time)
var (
	Version = "0.0.1-dev"
	Commit  = "unknown"
)

// CLI flags that override config file values
var (
	cfgFile      string
	logLevel     string
	logFormat    string
	criticalData string
	dataDir      string
	threshold    float64
	outputDir    string
	details      bool
)

var rootCmd = &cobra.Command{
	Use:   "gen3-audit",
	Short: "Feature coverage auditor for delimited data submissions",
	Long: `gen3-audit checks a directory of tab-separated data files against a
reference table of critical features and reports which features exist,
where, and how completely they are populated.

The audit runs in four stages:
  1. Extract critical feature names from the reference CSV
  2. Scan the data directory and catalog every file's columns
  3. Match each critical feature against the cataloged columns
  4. Compute per-column non-missing coverage across all files

Results land as six CSV reports in the output directory and a summary
on stdout. Read failures are logged and degrade the result instead of
aborting the run.

Example:
  gen3-audit --critical-data critical_data_v2.csv --data-dir data --threshold 0.8`,
	Version: Version,
	RunE:    runAudit,
}

// Execute runs the root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	// Config file flag
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "gen3-audit.yaml",
		"Path to configuration file")

	// Logging overrides
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "",
		"Override log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().StringVar(&logFormat, "log-format", "",
		"Override log format (json, text)")

	// Audit parameters
	rootCmd.Flags().StringVar(&criticalData, "critical-data", "critical_data_v2.csv",
		"Path to the critical features reference CSV")
	rootCmd.Flags().StringVarP(&dataDir, "data-dir", "d", "data",
		"Directory containing the .tsv data files")
	rootCmd.Flags().Float64VarP(&threshold, "threshold", "t", 0.8,
		"Coverage threshold between 0 and 1")
	rootCmd.Flags().StringVarP(&outputDir, "output-dir", "o", ".",
		"Directory for the generated reports")
	rootCmd.Flags().BoolVar(&details, "details", false,
		"Print per-feature coverage details after the summary")
}

// GetConfigFile returns the config file path
func GetConfigFile() string {
	return cfgFile
}

// gatherOverrides collects the flag values the user actually set, so flags
// left at their defaults never clobber config file values.
func gatherOverrides(cmd *cobra.Command) config.Overrides {
	flags := cmd.Flags()
	return config.Overrides{
		CriticalData:    criticalData,
		CriticalDataSet: flags.Changed("critical-data"),
		DataDir:         dataDir,
		DataDirSet:      flags.Changed("data-dir"),
		Threshold:       threshold,
		ThresholdSet:    flags.Changed("threshold"),
		OutputDir:       outputDir,
		OutputDirSet:    flags.Changed("output-dir"),
		Details:         details,
		DetailsSet:      flags.Changed("details"),
		LogLevel:        logLevel,
		LogFormat:       logFormat,
	}
}
