package tabular

import "strings"

// defaultSentinels are the cell values treated as absent data in addition to
// empty cells. They match the NA spellings commonly produced by spreadsheet
// and dataframe exports.
var defaultSentinels = []string{
	"NA",
	"N/A",
	"n/a",
	"NaN",
	"nan",
	"NULL",
	"null",
	"None",
}

// MissingValues decides whether a cell counts as missing data.
type MissingValues struct {
	sentinels map[string]struct{}
}

// DefaultMissingValues returns the built-in sentinel set.
func DefaultMissingValues() *MissingValues {
	return NewMissingValues()
}

// NewMissingValues returns the built-in sentinel set extended with extra
// values. Extra values are matched after whitespace trimming, like the
// defaults.
func NewMissingValues(extra ...string) *MissingValues {
	m := &MissingValues{sentinels: make(map[string]struct{}, len(defaultSentinels)+len(extra))}
	for _, s := range defaultSentinels {
		m.sentinels[s] = struct{}{}
	}
	for _, s := range extra {
		m.sentinels[strings.TrimSpace(s)] = struct{}{}
	}
	return m
}

// IsMissing reports whether a cell holds no usable value. Cells are
// whitespace-trimmed first, so a cell of spaces counts as missing.
func (m *MissingValues) IsMissing(cell string) bool {
	trimmed := strings.TrimSpace(cell)
	if trimmed == "" {
		return true
	}
	_, ok := m.sentinels[trimmed]
	return ok
}
