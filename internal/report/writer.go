// Package report serializes audit results into flat CSV reports and the
// console summary.
package report

import (
	"encoding/csv"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/Bearbbcjtc/gen3-tools/internal/audit"
	"github.com/Bearbbcjtc/gen3-tools/internal/logger"
)

// Report file names, fixed so downstream tooling can find them.
const (
	CriticalFeaturesFile         = "critical_features.csv"
	NodesFeaturesFile            = "nodes_features.csv"
	FeatureExistenceFile         = "feature_existence.csv"
	FeatureCoverageFile          = "feature_coverage.csv"
	MissingCriticalFeaturesFile  = "missing_critical_features.csv"
	CriticalFeaturesCoverageFile = "critical_features_coverage.csv"
)

// Writer writes audit reports into an output directory.
type Writer struct {
	outputDir string
	logger    *logger.Logger
}

// NewWriter creates a Writer that places reports in outputDir.
func NewWriter(outputDir string, log *logger.Logger) *Writer {
	if log == nil {
		log = logger.NewDefault()
	}
	return &Writer{outputDir: outputDir, logger: log}
}

// WriteAll writes the six report files. A report that fails to write is
// logged and the remaining reports are still attempted; the combined error
// is returned.
func (w *Writer) WriteAll(result *audit.Result) error {
	if result == nil {
		return fmt.Errorf("result is nil")
	}
	if err := os.MkdirAll(w.outputDir, 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	w.logger.Infow("Generating analysis reports", "dir", w.outputDir)

	reports := []struct {
		name string
		fn   func(*audit.Result) error
	}{
		{CriticalFeaturesFile, w.writeCriticalFeatures},
		{NodesFeaturesFile, w.writeNodesFeatures},
		{FeatureExistenceFile, w.writeFeatureExistence},
		{FeatureCoverageFile, w.writeFeatureCoverage},
		{MissingCriticalFeaturesFile, w.writeMissingCritical},
		{CriticalFeaturesCoverageFile, w.writeCriticalCoverage},
	}

	var errs []error
	for _, report := range reports {
		if err := report.fn(result); err != nil {
			w.logger.Errorw("Failed to write report", "file", report.name, "error", err)
			errs = append(errs, err)
		}
	}
	if len(errs) > 0 {
		return errors.Join(errs...)
	}

	w.logger.Infow("Analysis reports generated", "dir", w.outputDir)
	return nil
}

// writeCSV writes one report file with UTF-8 content and LF line endings.
func (w *Writer) writeCSV(name string, rows [][]string) error {
	f, err := os.Create(filepath.Join(w.outputDir, name))
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", name, err)
	}
	defer f.Close()

	cw := csv.NewWriter(f)
	if err := cw.WriteAll(rows); err != nil {
		return fmt.Errorf("failed to write %s: %w", name, err)
	}
	return nil
}

func (w *Writer) writeCriticalFeatures(result *audit.Result) error {
	rows := [][]string{{"Original Feature Name", "Mapped Feature Name"}}
	for el := result.Features.Mapping.Front(); el != nil; el = el.Next() {
		rows = append(rows, []string{el.Key, el.Value})
	}
	return w.writeCSV(CriticalFeaturesFile, rows)
}

func (w *Writer) writeNodesFeatures(result *audit.Result) error {
	rows := [][]string{{"File Name", "Feature Name"}}
	for _, file := range result.Catalog.Files() {
		columns, _ := result.Catalog.Columns(file)
		for _, column := range columns {
			rows = append(rows, []string{file, column})
		}
	}
	return w.writeCSV(NodesFeaturesFile, rows)
}

func (w *Writer) writeFeatureExistence(result *audit.Result) error {
	rows := [][]string{{"Feature Name", "Exists", "Files"}}
	for _, record := range result.Existence.Records {
		exists := "n"
		if record.Exists {
			exists = "y"
		}
		rows = append(rows, []string{record.Feature, exists, strings.Join(record.Files, ", ")})
	}
	return w.writeCSV(FeatureExistenceFile, rows)
}

func (w *Writer) writeFeatureCoverage(result *audit.Result) error {
	rows := [][]string{{"Feature Name", "File Name", "Coverage", "Is Critical Feature"}}
	for _, feature := range result.Coverage.Features() {
		for _, entry := range result.Coverage.Entries(feature) {
			critical := "No"
			if entry.Critical {
				critical = "Yes"
			}
			rows = append(rows, []string{feature, entry.File, formatPercent(entry.Ratio), critical})
		}
	}
	return w.writeCSV(FeatureCoverageFile, rows)
}

func (w *Writer) writeMissingCritical(result *audit.Result) error {
	rows := [][]string{{"Missing Critical Feature"}}
	for _, feature := range result.Existence.Missing {
		rows = append(rows, []string{feature})
	}
	return w.writeCSV(MissingCriticalFeaturesFile, rows)
}

func (w *Writer) writeCriticalCoverage(result *audit.Result) error {
	rows := [][]string{{"Critical Feature", "File Name", "Coverage", "Non-Null Count", "Total Count"}}
	for _, feature := range result.Coverage.CriticalFeatures() {
		for _, entry := range result.Coverage.CriticalEntries(feature) {
			rows = append(rows, []string{
				feature,
				entry.File,
				formatPercent(entry.Ratio),
				strconv.Itoa(entry.NonMissing),
				strconv.Itoa(entry.Total),
			})
		}
	}
	return w.writeCSV(CriticalFeaturesCoverageFile, rows)
}

// formatPercent renders a ratio the way the reports expect, e.g. 0.5 as "50.00%".
func formatPercent(ratio float64) string {
	return fmt.Sprintf("%.2f%%", ratio*100)
}
