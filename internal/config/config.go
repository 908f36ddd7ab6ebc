// Package config provides configuration structures and loading for gen3-tools.
package config

// Config represents the complete gen3-audit configuration.
type Config struct {
	Audit   AuditConfig   `yaml:"audit" mapstructure:"audit"`
	Report  ReportConfig  `yaml:"report" mapstructure:"report"`
	Logging LoggingConfig `yaml:"logging" mapstructure:"logging"`
}

// AuditConfig represents the inputs of a coverage audit run.
type AuditConfig struct {
	CriticalData  string   `yaml:"critical_data" mapstructure:"critical_data"`   // reference CSV path
	DataDir       string   `yaml:"data_dir" mapstructure:"data_dir"`             // directory of node TSV exports
	Threshold     float64  `yaml:"threshold" mapstructure:"threshold"`           // sufficient-coverage threshold in [0,1]
	MissingValues []string `yaml:"missing_values" mapstructure:"missing_values"` // extra NA sentinels on top of the defaults
}

// ReportConfig represents report output settings.
type ReportConfig struct {
	OutputDir string `yaml:"output_dir" mapstructure:"output_dir"`
	Details   bool   `yaml:"details" mapstructure:"details"` // print per-feature coverage table after the summary
}

// LoggingConfig represents logging settings.
type LoggingConfig struct {
	Level  string `yaml:"level" mapstructure:"level"`   // debug, info, warn, error
	Format string `yaml:"format" mapstructure:"format"` // json or text
	Output string `yaml:"output" mapstructure:"output"` // stdout, stderr, or file path
}

// DefaultConfig returns a Config with the built-in default values.
// The audit defaults match the historical CLI surface of the tool.
func DefaultConfig() *Config {
	return &Config{
		Audit: AuditConfig{
			CriticalData: "critical_data_v2.csv",
			DataDir:      "data",
			Threshold:    0.8,
		},
		Report: ReportConfig{
			OutputDir: ".",
			Details:   false,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "text",
			// stdout carries the audit summary; logs stay on stderr
			Output: "stderr",
		},
	}
}

// Overrides contains CLI flag values that take precedence over config file
// settings. Threshold and Details carry explicit Set markers because their
// zero values (0 and false) are meaningful settings in their own right.
type Overrides struct {
	CriticalData    string
	CriticalDataSet bool
	DataDir         string
	DataDirSet      bool
	Threshold       float64
	ThresholdSet    bool
	OutputDir       string
	OutputDirSet    bool
	Details         bool
	DetailsSet      bool
	LogLevel        string
	LogFormat       string
}

// Apply applies CLI flag overrides to the configuration. Only values whose
// flag was actually set on the command line are applied.
func (c *Config) Apply(ov Overrides) {
	if ov.CriticalDataSet {
		c.Audit.CriticalData = ov.CriticalData
	}
	if ov.DataDirSet {
		c.Audit.DataDir = ov.DataDir
	}
	if ov.ThresholdSet {
		c.Audit.Threshold = ov.Threshold
	}
	if ov.OutputDirSet {
		c.Report.OutputDir = ov.OutputDir
	}
	if ov.DetailsSet {
		c.Report.Details = ov.Details
	}
	if ov.LogLevel != "" {
		c.Logging.Level = ov.LogLevel
	}
	if ov.LogFormat != "" {
		c.Logging.Format = ov.LogFormat
	}
}
