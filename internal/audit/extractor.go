package audit

import (
	"fmt"

	"github.com/Bearbbcjtc/gen3-tools/internal/logger"
	"github.com/Bearbbcjtc/gen3-tools/internal/tabular"
)

// Reference table layout. Columns are addressed by position, matching the
// fixed export format of the critical data sheet.
const (
	rawNameColumn        = 0
	classificationColumn = 3
	propertyColumn       = 10
	minReferenceColumns  = propertyColumn + 1

	// criticalLabel marks reference rows whose feature must be present in the data.
	criticalLabel = "Critical"
)

// Extractor reads the reference table and derives the critical feature set.
type Extractor struct {
	path    string
	missing *tabular.MissingValues
	logger  *logger.Logger
}

// NewExtractor creates an Extractor for the reference table at path.
func NewExtractor(path string, missing *tabular.MissingValues, log *logger.Logger) *Extractor {
	if missing == nil {
		missing = tabular.DefaultMissingValues()
	}
	if log == nil {
		log = logger.NewDefault()
	}
	return &Extractor{path: path, missing: missing, logger: log}
}

// Extract reads the reference table and collects the features on rows
// classified Critical. The classification match is exact; a cell with
// different casing or surrounding whitespace does not count. Rows without
// a usable raw name are dropped, and a row without a canonical-name
// override maps the raw name to itself.
func (e *Extractor) Extract() (*FeatureSet, error) {
	e.logger.Infow("Extracting critical features", "path", e.path)

	table, err := tabular.LoadTable(e.path, ',')
	if err != nil {
		return nil, fmt.Errorf("failed to load reference table: %w", err)
	}
	if len(table.Columns) < minReferenceColumns {
		return nil, fmt.Errorf("reference table %s has %d columns, need at least %d",
			table.Name, len(table.Columns), minReferenceColumns)
	}

	set := NewFeatureSet()
	for row := 0; row < table.NumRows(); row++ {
		if table.Value(row, classificationColumn) != criticalLabel {
			continue
		}

		raw := table.Value(row, rawNameColumn)
		if e.missing.IsMissing(raw) {
			continue
		}

		canonical := table.Value(row, propertyColumn)
		if e.missing.IsMissing(canonical) {
			canonical = raw
		}
		set.Add(raw, canonical)
	}
	set.dedupeMapped()

	e.logger.Infow("Critical features extracted",
		"raw", len(set.Raw),
		"mapped", len(set.Mapped),
	)

	return set, nil
}
