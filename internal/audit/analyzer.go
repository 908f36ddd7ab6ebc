// Package audit provides the feature-coverage audit pipeline for gen3-audit.
package audit

import (
	"fmt"
	"time"

	"github.com/Bearbbcjtc/gen3-tools/internal/config"
	"github.com/Bearbbcjtc/gen3-tools/internal/logger"
	"github.com/Bearbbcjtc/gen3-tools/internal/tabular"
)

// Result contains everything one audit run produced.
type Result struct {
	Features    *FeatureSet
	Catalog     *Catalog
	Existence   *ExistenceReport
	Coverage    *CoverageReport
	Threshold   float64
	StartedAt   time.Time
	CompletedAt time.Time
	Duration    time.Duration
	Errors      []error
	Success     bool
}

// SummaryStats are the headline numbers of an audit run.
type SummaryStats struct {
	RawCritical     int
	MappedCritical  int
	DistinctColumns int
	MissingCritical int
	PresentCritical int
	AboveThreshold  int
	Threshold       float64
}

// Summary computes the headline numbers from the run's reports.
func (r *Result) Summary() SummaryStats {
	return SummaryStats{
		RawCritical:     len(r.Features.Raw),
		MappedCritical:  len(r.Features.Mapped),
		DistinctColumns: r.Catalog.DistinctColumns(),
		MissingCritical: len(r.Existence.Missing),
		PresentCritical: len(r.Existence.Existing),
		AboveThreshold:  r.Coverage.CountAboveThreshold(r.Threshold),
		Threshold:       r.Threshold,
	}
}

// Analyzer coordinates the audit stages: extract the critical features,
// scan the data directory, match existence, and compute coverage.
type Analyzer struct {
	cfg     *config.Config
	missing *tabular.MissingValues
	logger  *logger.Logger
}

// NewAnalyzer creates an Analyzer from configuration.
func NewAnalyzer(cfg *config.Config, log *logger.Logger) (*Analyzer, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config is nil")
	}
	if log == nil {
		log = logger.NewDefault()
	}

	return &Analyzer{
		cfg:     cfg,
		missing: tabular.NewMissingValues(cfg.Audit.MissingValues...),
		logger:  log,
	}, nil
}

// Run executes the audit. A failed stage is logged, recorded in the result,
// and replaced with an empty value so the remaining stages still run; the
// run itself never aborts.
func (a *Analyzer) Run() *Result {
	result := &Result{
		Threshold: a.cfg.Audit.Threshold,
		StartedAt: time.Now(),
		Errors:    make([]error, 0),
	}

	a.logger.Infow("Starting coverage audit",
		"critical_data", a.cfg.Audit.CriticalData,
		"data_dir", a.cfg.Audit.DataDir,
		"threshold", a.cfg.Audit.Threshold,
	)

	extractor := NewExtractor(a.cfg.Audit.CriticalData, a.missing, a.logger)
	features, err := extractor.Extract()
	if err != nil {
		a.logger.Errorw("Failed to extract critical features", "error", err)
		result.Errors = append(result.Errors, err)
		features = NewFeatureSet()
	}
	result.Features = features

	scanner := NewScanner(a.cfg.Audit.DataDir, a.logger)
	catalog, err := scanner.Scan()
	if err != nil {
		a.logger.Errorw("Failed to scan data directory", "error", err)
		result.Errors = append(result.Errors, err)
		catalog = NewCatalog()
	}
	result.Catalog = catalog

	result.Existence = MatchExistence(features, catalog)
	a.logger.Infow("Feature existence analyzed",
		"present", len(result.Existence.Existing),
		"missing", len(result.Existence.Missing),
	)

	calculator := NewCalculator(a.cfg.Audit.DataDir, a.missing, a.logger)
	result.Coverage = calculator.Calculate(features, catalog)

	result.Success = len(result.Errors) == 0
	result.CompletedAt = time.Now()
	result.Duration = result.CompletedAt.Sub(result.StartedAt)

	a.logger.Infow("Coverage audit completed",
		"duration", result.Duration,
		"success", result.Success,
	)

	return result
}
