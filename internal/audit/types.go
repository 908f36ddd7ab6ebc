package audit

import (
	orderedmap "github.com/elliotchance/orderedmap/v2"
)

// FeatureSet holds the critical features extracted from the reference table.
type FeatureSet struct {
	// Raw lists the original feature names in row order, duplicates included.
	Raw []string
	// Mapping relates each raw name to its canonical name. A raw name that
	// appears on several rows keeps its first position and its last value.
	Mapping *orderedmap.OrderedMap[string, string]
	// Mapped lists the canonical names, deduplicated in first-seen order.
	Mapped []string

	mappedSet map[string]struct{}
}

// NewFeatureSet returns an empty FeatureSet.
func NewFeatureSet() *FeatureSet {
	return &FeatureSet{
		Mapping:   orderedmap.NewOrderedMap[string, string](),
		mappedSet: make(map[string]struct{}),
	}
}

// Add records one reference row.
func (s *FeatureSet) Add(raw, canonical string) {
	s.Raw = append(s.Raw, raw)
	s.Mapping.Set(raw, canonical)
}

// dedupeMapped rebuilds the canonical name list from the mapping values.
// Must run after the last Add so lookups see the final mapping.
func (s *FeatureSet) dedupeMapped() {
	s.Mapped = nil
	s.mappedSet = make(map[string]struct{}, s.Mapping.Len())
	for el := s.Mapping.Front(); el != nil; el = el.Next() {
		if _, ok := s.mappedSet[el.Value]; ok {
			continue
		}
		s.mappedSet[el.Value] = struct{}{}
		s.Mapped = append(s.Mapped, el.Value)
	}
}

// ContainsMapped reports whether name is one of the canonical critical features.
func (s *FeatureSet) ContainsMapped(name string) bool {
	_, ok := s.mappedSet[name]
	return ok
}

// Catalog maps each scanned file to the column names from its header row.
// Files keep the order they were scanned in.
type Catalog struct {
	files *orderedmap.OrderedMap[string, []string]
}

// NewCatalog returns an empty Catalog.
func NewCatalog() *Catalog {
	return &Catalog{files: orderedmap.NewOrderedMap[string, []string]()}
}

// Add records the column names of one file.
func (c *Catalog) Add(file string, columns []string) {
	c.files.Set(file, columns)
}

// Columns returns the column names recorded for a file.
func (c *Catalog) Columns(file string) ([]string, bool) {
	return c.files.Get(file)
}

// Files returns the file names in scan order.
func (c *Catalog) Files() []string {
	return c.files.Keys()
}

// Len returns the number of cataloged files.
func (c *Catalog) Len() int {
	return c.files.Len()
}

// DistinctColumns counts the unique column names across all files.
func (c *Catalog) DistinctColumns() int {
	distinct := make(map[string]struct{})
	for el := c.files.Front(); el != nil; el = el.Next() {
		for _, column := range el.Value {
			distinct[column] = struct{}{}
		}
	}
	return len(distinct)
}

// Existence records where one canonical critical feature was found.
type Existence struct {
	Feature string
	Exists  bool
	Files   []string
}

// ExistenceReport partitions the canonical critical features into those
// present in at least one scanned file and those absent from all of them.
type ExistenceReport struct {
	Records  []*Existence // one per canonical feature, in canonical order
	Existing []string
	Missing  []string
}

// CoverageEntry is the coverage of one column within one file.
type CoverageEntry struct {
	File     string
	Ratio    float64
	Critical bool
}

// CriticalEntry carries the raw counts behind a critical feature's coverage.
type CriticalEntry struct {
	File       string
	Ratio      float64
	NonMissing int
	Total      int
}

// CoverageReport holds per-column coverage across all loaded files. Columns
// and files keep their scan order so reports come out identical run to run.
type CoverageReport struct {
	features *orderedmap.OrderedMap[string, []CoverageEntry]
	critical *orderedmap.OrderedMap[string, []CriticalEntry]
}

// NewCoverageReport returns an empty CoverageReport.
func NewCoverageReport() *CoverageReport {
	return &CoverageReport{
		features: orderedmap.NewOrderedMap[string, []CoverageEntry](),
		critical: orderedmap.NewOrderedMap[string, []CriticalEntry](),
	}
}

// Add records the coverage of one column in one file.
func (r *CoverageReport) Add(feature, file string, ratio float64, critical bool) {
	entries, _ := r.features.Get(feature)
	r.features.Set(feature, append(entries, CoverageEntry{
		File:     file,
		Ratio:    ratio,
		Critical: critical,
	}))
}

// AddCritical records the coverage of a critical feature with its raw counts.
func (r *CoverageReport) AddCritical(feature, file string, ratio float64, nonMissing, total int) {
	entries, _ := r.critical.Get(feature)
	r.critical.Set(feature, append(entries, CriticalEntry{
		File:       file,
		Ratio:      ratio,
		NonMissing: nonMissing,
		Total:      total,
	}))
}

// Features returns the covered column names in first-seen order.
func (r *CoverageReport) Features() []string {
	return r.features.Keys()
}

// Entries returns the per-file coverage of one column.
func (r *CoverageReport) Entries(feature string) []CoverageEntry {
	entries, _ := r.features.Get(feature)
	return entries
}

// CriticalFeatures returns the covered critical features in first-seen order.
func (r *CoverageReport) CriticalFeatures() []string {
	return r.critical.Keys()
}

// CriticalEntries returns the per-file coverage of one critical feature.
func (r *CoverageReport) CriticalEntries(feature string) []CriticalEntry {
	entries, _ := r.critical.Get(feature)
	return entries
}

// AverageCritical returns a critical feature's mean coverage across the
// files that contain it, or 0 when no file does.
func (r *CoverageReport) AverageCritical(feature string) float64 {
	entries, ok := r.critical.Get(feature)
	if !ok || len(entries) == 0 {
		return 0
	}
	var total float64
	for _, e := range entries {
		total += e.Ratio
	}
	return total / float64(len(entries))
}

// CountAboveThreshold counts the critical features whose average coverage
// meets or exceeds the threshold.
func (r *CoverageReport) CountAboveThreshold(threshold float64) int {
	count := 0
	for el := r.critical.Front(); el != nil; el = el.Next() {
		if r.AverageCritical(el.Key) >= threshold {
			count++
		}
	}
	return count
}
