package model

import "time"

// Flags represents the command line flags.
type Flags struct {
	Region         string
	LogFileName    string
	StartDate      string
	EndDate        string
	Profiles       string
	DryRun         bool
	Help           bool
	Version        bool
	ConfigFile     string
	SettingsPath   string
	Scanner        string
	WorkDir        string
	Timeout        time.Duration
	CredentialMode string
	VerifyIdentity bool
	SkipEmpty      bool
	MaxParallel    int
	Output         string
	Store          bool
	DBPath         string
	FailOnError    bool
	LogLevel       string
	LogFormat      string
	NoBanner       bool

	// Changed records which flags were set explicitly on the command line,
	// keyed by long flag name. Settings files only fill flags absent here.
	Changed map[string]bool
}

// IsSet reports whether the named flag was given on the command line.
func (f Flags) IsSet(name string) bool {
	return f.Changed[name]
}

// ScanParameters returns the shared per-account scan parameters.
func (f Flags) ScanParameters() ScanParameters {
	return ScanParameters{
		Region:      f.Region,
		OutputLabel: f.LogFileName,
		StartDate:   f.StartDate,
		EndDate:     f.EndDate,
	}
}
