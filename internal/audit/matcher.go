package audit

// MatchExistence checks every canonical critical feature against the catalog
// and partitions the features into present and missing. A feature counts as
// present when at least one file's header contains it, and every containing
// file is recorded in scan order.
func MatchExistence(features *FeatureSet, catalog *Catalog) *ExistenceReport {
	report := &ExistenceReport{}

	for _, feature := range features.Mapped {
		record := &Existence{Feature: feature}

		for _, file := range catalog.Files() {
			columns, _ := catalog.Columns(file)
			for _, column := range columns {
				if column == feature {
					record.Exists = true
					record.Files = append(record.Files, file)
					break
				}
			}
		}

		report.Records = append(report.Records, record)
		if record.Exists {
			report.Existing = append(report.Existing, feature)
		} else {
			report.Missing = append(report.Missing, feature)
		}
	}

	return report
}
