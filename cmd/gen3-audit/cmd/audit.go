package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Bearbbcjtc/gen3-tools/internal/audit"
	"github.com/Bearbbcjtc/gen3-tools/internal/config"
	"github.com/Bearbbcjtc/gen3-tools/internal/logger"
	"github.com/Bearbbcjtc/gen3-tools/internal/report"
)

func runAudit(cmd *cobra.Command, args []string) error {
	configFile := GetConfigFile()

	// Load configuration. The default config file is optional; a path given
	// explicitly with --config must exist.
	var cfg *config.Config
	var err error
	if cmd.Flags().Changed("config") {
		cfg, err = config.Load(configFile)
	} else {
		cfg, err = config.LoadIfPresent(configFile)
	}
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	// Apply CLI overrides
	cfg.Apply(gatherOverrides(cmd))

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	// Initialize logger
	log, err := logger.New(&cfg.Logging)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}

	log.Infow("Starting audit",
		"critical_data", cfg.Audit.CriticalData,
		"data_dir", cfg.Audit.DataDir,
		"config", configFile,
	)

	analyzer, err := audit.NewAnalyzer(cfg, log)
	if err != nil {
		return fmt.Errorf("failed to create analyzer: %w", err)
	}

	// Run the audit. Read failures are already folded into the result, so
	// the run itself cannot fail here.
	result := analyzer.Run()

	writer := report.NewWriter(cfg.Report.OutputDir, log)
	if err := writer.WriteAll(result); err != nil {
		log.Errorw("Report generation incomplete", "error", err)
	}

	report.PrintSummary(cmd.OutOrStdout(), result)
	if cfg.Report.Details {
		report.PrintDetails(cmd.OutOrStdout(), result)
	}

	return nil
}
