package audit

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/Bearbbcjtc/gen3-tools/internal/logger"
	"github.com/Bearbbcjtc/gen3-tools/internal/tabular"
)

// tsvExtension selects the node export files inside the data directory.
const tsvExtension = ".tsv"

// Scanner harvests column names from the header row of every tab-separated
// file in a directory.
type Scanner struct {
	dir    string
	logger *logger.Logger
}

// NewScanner creates a Scanner for the given data directory.
func NewScanner(dir string, log *logger.Logger) *Scanner {
	if log == nil {
		log = logger.NewDefault()
	}
	return &Scanner{dir: dir, logger: log}
}

// Scan reads the header of every .tsv file in the directory, in name order.
// A file whose header cannot be read is logged and skipped; the rest of the
// directory is still scanned.
func (s *Scanner) Scan() (*Catalog, error) {
	s.logger.Infow("Scanning data files", "dir", s.dir)

	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read data directory: %w", err)
	}

	catalog := NewCatalog()
	for _, entry := range entries {
		name := entry.Name()
		if !strings.HasSuffix(name, tsvExtension) {
			continue
		}
		s.logger.Infow("Processing file", "file", name)

		header, err := tabular.ReadHeader(filepath.Join(s.dir, name), '\t')
		if err != nil {
			s.logger.Errorw("Failed to read file header", "file", name, "error", err)
			continue
		}
		catalog.Add(name, header)
	}

	s.logger.Infow("Data files scanned", "files", catalog.Len())
	return catalog, nil
}
