package audit

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Bearbbcjtc/gen3-tools/internal/config"
	"github.com/Bearbbcjtc/gen3-tools/internal/logger"
)

// auditFixture lays out a reference CSV and a data directory with two node
// files. Three features are critical: age_at_enrollment (half covered in
// participant.tsv), sex (fully covered in both files), and ghost_feature
// (in no file at all).
func auditFixture(t *testing.T) *config.Config {
	t.Helper()
	root := t.TempDir()

	refPath := filepath.Join(root, "critical_data_v2.csv")
	refContent := "name,c1,c2,classification,c4,c5,c6,c7,c8,c9,property\n" +
		"age,,,Critical,,,,,,,age_at_enrollment\n" +
		"sex,,,Critical,,,,,,,\n" +
		"ghost,,,Critical,,,,,,,ghost_feature\n" +
		"notes,,,Optional,,,,,,,free_text\n"
	require.NoError(t, os.WriteFile(refPath, []byte(refContent), 0644))

	dataDir := filepath.Join(root, "data")
	require.NoError(t, os.Mkdir(dataDir, 0755))
	require.NoError(t, os.WriteFile(filepath.Join(dataDir, "participant.tsv"),
		[]byte("subject_id\tage_at_enrollment\tsex\nS1\t34\tF\nS2\t\tM\n"), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(dataDir, "sample.tsv"),
		[]byte("sample_id\tsex\nX1\tF\n"), 0644))

	cfg := config.DefaultConfig()
	cfg.Audit.CriticalData = refPath
	cfg.Audit.DataDir = dataDir
	return cfg
}

func TestNewAnalyzer_NilConfig(t *testing.T) {
	_, err := NewAnalyzer(nil, logger.NewDefault())
	assert.Error(t, err)
}

func TestNewAnalyzer_NilLogger(t *testing.T) {
	analyzer, err := NewAnalyzer(config.DefaultConfig(), nil)

	require.NoError(t, err)
	require.NotNil(t, analyzer)
	assert.NotNil(t, analyzer.logger) // Should create default logger
}

func TestRun_EndToEnd(t *testing.T) {
	cfg := auditFixture(t)
	analyzer, err := NewAnalyzer(cfg, logger.NewDefault())
	require.NoError(t, err)

	result := analyzer.Run()

	require.NotNil(t, result)
	assert.True(t, result.Success)
	assert.Empty(t, result.Errors)
	assert.GreaterOrEqual(t, result.Duration.Nanoseconds(), int64(0))

	assert.Equal(t, []string{"age", "sex", "ghost"}, result.Features.Raw)
	assert.Equal(t, []string{"age_at_enrollment", "sex", "ghost_feature"}, result.Features.Mapped)
	assert.Equal(t, []string{"participant.tsv", "sample.tsv"}, result.Catalog.Files())

	assert.Equal(t, []string{"age_at_enrollment", "sex"}, result.Existence.Existing)
	assert.Equal(t, []string{"ghost_feature"}, result.Existence.Missing)

	age := result.Coverage.CriticalEntries("age_at_enrollment")
	require.Len(t, age, 1)
	assert.InDelta(t, 0.5, age[0].Ratio, 1e-9)

	sex := result.Coverage.CriticalEntries("sex")
	require.Len(t, sex, 2)
	assert.Equal(t, 1.0, sex[0].Ratio)
	assert.Equal(t, 1.0, sex[1].Ratio)
}

func TestRun_SummaryStats(t *testing.T) {
	cfg := auditFixture(t)
	analyzer, err := NewAnalyzer(cfg, logger.NewDefault())
	require.NoError(t, err)

	stats := analyzer.Run().Summary()

	assert.Equal(t, 3, stats.RawCritical)
	assert.Equal(t, 3, stats.MappedCritical)
	// subject_id, age_at_enrollment, sex, sample_id
	assert.Equal(t, 4, stats.DistinctColumns)
	assert.Equal(t, 1, stats.MissingCritical)
	assert.Equal(t, 2, stats.PresentCritical)
	// sex averages 1.0, age_at_enrollment averages 0.5
	assert.Equal(t, 1, stats.AboveThreshold)
	assert.Equal(t, 0.8, stats.Threshold)
}

func TestRun_MissingReferenceDegrades(t *testing.T) {
	cfg := auditFixture(t)
	cfg.Audit.CriticalData = "/nonexistent/critical_data_v2.csv"

	analyzer, err := NewAnalyzer(cfg, logger.NewDefault())
	require.NoError(t, err)

	result := analyzer.Run()

	require.NotNil(t, result)
	assert.False(t, result.Success)
	require.Len(t, result.Errors, 1)

	// Extraction is empty but the rest of the run still happened
	assert.Empty(t, result.Features.Raw)
	assert.Empty(t, result.Existence.Records)
	assert.Equal(t, 2, result.Catalog.Len())
	assert.NotEmpty(t, result.Coverage.Features())
	assert.Empty(t, result.Coverage.CriticalFeatures())
}

func TestRun_MissingDataDirDegrades(t *testing.T) {
	cfg := auditFixture(t)
	cfg.Audit.DataDir = "/nonexistent/data"

	analyzer, err := NewAnalyzer(cfg, logger.NewDefault())
	require.NoError(t, err)

	result := analyzer.Run()

	require.NotNil(t, result)
	assert.False(t, result.Success)
	require.Len(t, result.Errors, 1)

	assert.Equal(t, 0, result.Catalog.Len())
	// With no files every critical feature is missing
	assert.Empty(t, result.Existence.Existing)
	assert.Equal(t, []string{"age_at_enrollment", "sex", "ghost_feature"}, result.Existence.Missing)
	assert.Empty(t, result.Coverage.Features())
}

func TestRun_CustomMissingValues(t *testing.T) {
	cfg := auditFixture(t)
	cfg.Audit.MissingValues = []string{"F"}

	analyzer, err := NewAnalyzer(cfg, logger.NewDefault())
	require.NoError(t, err)

	result := analyzer.Run()

	// With F declared missing, sex coverage drops in both files
	sex := result.Coverage.CriticalEntries("sex")
	require.Len(t, sex, 2)
	assert.InDelta(t, 0.5, sex[0].Ratio, 1e-9)
	assert.Equal(t, 0.0, sex[1].Ratio)
}

func TestRun_Deterministic(t *testing.T) {
	cfg := auditFixture(t)
	analyzer, err := NewAnalyzer(cfg, logger.NewDefault())
	require.NoError(t, err)

	first := analyzer.Run()
	second := analyzer.Run()

	assert.Equal(t, first.Features.Raw, second.Features.Raw)
	assert.Equal(t, first.Features.Mapped, second.Features.Mapped)
	assert.Equal(t, first.Catalog.Files(), second.Catalog.Files())
	assert.Equal(t, first.Existence.Existing, second.Existence.Existing)
	assert.Equal(t, first.Existence.Missing, second.Existence.Missing)
	assert.Equal(t, first.Coverage.Features(), second.Coverage.Features())
	assert.Equal(t, first.Coverage.CriticalFeatures(), second.Coverage.CriticalFeatures())
}

func TestRun_PartitionHolds(t *testing.T) {
	cfg := auditFixture(t)
	analyzer, err := NewAnalyzer(cfg, logger.NewDefault())
	require.NoError(t, err)

	result := analyzer.Run()

	total := len(result.Existence.Existing) + len(result.Existence.Missing)
	assert.Equal(t, len(result.Features.Mapped), total)
	for _, feature := range result.Existence.Existing {
		assert.NotContains(t, result.Existence.Missing, feature)
	}
}
