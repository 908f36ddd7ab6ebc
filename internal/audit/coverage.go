package audit

import (
	"path/filepath"

	"github.com/Bearbbcjtc/gen3-tools/internal/logger"
	"github.com/Bearbbcjtc/gen3-tools/internal/tabular"
)

// Calculator computes per-column coverage over the full contents of each
// cataloged file.
type Calculator struct {
	dataDir string
	missing *tabular.MissingValues
	logger  *logger.Logger
}

// NewCalculator creates a Calculator reading files from dataDir.
func NewCalculator(dataDir string, missing *tabular.MissingValues, log *logger.Logger) *Calculator {
	if missing == nil {
		missing = tabular.DefaultMissingValues()
	}
	if log == nil {
		log = logger.NewDefault()
	}
	return &Calculator{dataDir: dataDir, missing: missing, logger: log}
}

// Calculate loads every cataloged file in full and computes the fraction of
// non-missing cells for each cataloged column that exists in the loaded
// table. A file that fails to load is logged and skipped. Critical features
// additionally land in the narrower critical-coverage report with their raw
// counts.
func (c *Calculator) Calculate(features *FeatureSet, catalog *Catalog) *CoverageReport {
	c.logger.Info("Calculating feature coverage")

	report := NewCoverageReport()
	for _, file := range catalog.Files() {
		columns, _ := catalog.Columns(file)
		fileLog := c.logger.WithFile(file)

		table, err := tabular.LoadTable(filepath.Join(c.dataDir, file), '\t')
		if err != nil {
			fileLog.Errorw("Failed to load data file", "error", err)
			continue
		}

		rows := table.NumRows()
		seen := make(map[string]struct{}, len(columns))
		for _, column := range columns {
			// A duplicated header name resolves to the same table column,
			// so compute it once.
			if _, dup := seen[column]; dup {
				continue
			}
			seen[column] = struct{}{}

			idx, ok := table.ColumnIndex(column)
			if !ok {
				continue
			}

			nonMissing := 0
			for row := 0; row < rows; row++ {
				if !c.missing.IsMissing(table.Value(row, idx)) {
					nonMissing++
				}
			}
			ratio := 0.0
			if rows > 0 {
				ratio = float64(nonMissing) / float64(rows)
			}

			critical := features.ContainsMapped(column)
			report.Add(column, file, ratio, critical)
			if critical {
				report.AddCritical(column, file, ratio, nonMissing, rows)
			}
		}
	}

	c.logger.Info("Feature coverage calculation completed")
	return report
}
