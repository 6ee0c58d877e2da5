package settings

import "github.com/thirukguru/docdb-multiscan/model"

// EnvPrefix prefixes every environment override, e.g. DOCDB_MULTISCAN_REGION.
const EnvPrefix = "DOCDB_MULTISCAN_"

// Settings holds defaults read from a settings file or the environment.
// Zero values and nil pointers mean "not configured".
type Settings struct {
	Region         string   `yaml:"region" toml:"region" json:"region"`
	LogFileName    string   `yaml:"log_file_name" toml:"log_file_name" json:"log_file_name"`
	StartDate      string   `yaml:"start_date" toml:"start_date" json:"start_date"`
	EndDate        string   `yaml:"end_date" toml:"end_date" json:"end_date"`
	Profiles       []string `yaml:"profiles" toml:"profiles" json:"profiles"`
	ConfigFile     string   `yaml:"config_file" toml:"config_file" json:"config_file"`
	Scanner        string   `yaml:"scanner" toml:"scanner" json:"scanner"`
	WorkDir        string   `yaml:"work_dir" toml:"work_dir" json:"work_dir"`
	Timeout        string   `yaml:"timeout" toml:"timeout" json:"timeout"`
	CredentialMode string   `yaml:"credential_mode" toml:"credential_mode" json:"credential_mode"`
	VerifyIdentity *bool    `yaml:"verify_identity" toml:"verify_identity" json:"verify_identity"`
	SkipEmpty      *bool    `yaml:"skip_empty" toml:"skip_empty" json:"skip_empty"`
	MaxParallel    *int     `yaml:"max_parallel" toml:"max_parallel" json:"max_parallel"`
	Output         string   `yaml:"output" toml:"output" json:"output"`
	Store          *bool    `yaml:"store" toml:"store" json:"store"`
	DBPath         string   `yaml:"db_path" toml:"db_path" json:"db_path"`
	FailOnError    *bool    `yaml:"fail_on_error" toml:"fail_on_error" json:"fail_on_error"`
	LogLevel       string   `yaml:"log_level" toml:"log_level" json:"log_level"`
	LogFormat      string   `yaml:"log_format" toml:"log_format" json:"log_format"`
	NoBanner       *bool    `yaml:"no_banner" toml:"no_banner" json:"no_banner"`
}

type service struct {
	lookupEnv func(string) (string, bool)
}

// Service is the interface for the settings layer.
type Service interface {
	// LoadFile reads a settings file, choosing the parser by extension.
	LoadFile(path string) (Settings, error)
	// FromEnv reads DOCDB_MULTISCAN_* overrides.
	FromEnv() (Settings, error)
	// Apply fills every flag not given on the command line from the settings
	// file (--settings or DOCDB_MULTISCAN_SETTINGS), then from the environment.
	Apply(flags model.Flags) (model.Flags, error)
}
