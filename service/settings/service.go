// Package settings layers a defaults file and environment overrides beneath
// the command line.
package settings

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/pelletier/go-toml"
	"github.com/thirukguru/docdb-multiscan/model"
	"gopkg.in/yaml.v3"
)

// NewService creates a settings service reading the process environment.
func NewService() Service {
	return &service{lookupEnv: os.LookupEnv}
}

func (s *service) LoadFile(path string) (Settings, error) {
	var st Settings

	info, err := os.Stat(path)
	if err != nil {
		return st, fmt.Errorf("%w: error accessing settings file: %w", model.ErrConfiguration, err)
	}
	if info.IsDir() {
		return st, fmt.Errorf("%w: %s is a directory, not a file", model.ErrConfiguration, path)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return st, fmt.Errorf("%w: error reading settings file: %w", model.ErrConfiguration, err)
	}

	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".toml":
		if err := toml.Unmarshal(data, &st); err != nil {
			return st, fmt.Errorf("%w: error parsing TOML file: %w", model.ErrConfiguration, err)
		}
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &st); err != nil {
			return st, fmt.Errorf("%w: error parsing YAML file: %w", model.ErrConfiguration, err)
		}
	case ".json":
		if err := json.Unmarshal(data, &st); err != nil {
			return st, fmt.Errorf("%w: error parsing JSON file: %w", model.ErrConfiguration, err)
		}
	default:
		return st, fmt.Errorf("%w: unsupported settings file format: %q", model.ErrConfiguration, ext)
	}

	return st, nil
}

func (s *service) FromEnv() (Settings, error) {
	var st Settings
	str := func(name string, dst *string) {
		if v, ok := s.lookupEnv(EnvPrefix + name); ok && v != "" {
			*dst = v
		}
	}
	boolean := func(name string, dst **bool) error {
		v, ok := s.lookupEnv(EnvPrefix + name)
		if !ok || v == "" {
			return nil
		}
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("%w: %s%s=%q is not a boolean", model.ErrConfiguration, EnvPrefix, name, v)
		}
		*dst = &b
		return nil
	}

	str("REGION", &st.Region)
	str("LOG_FILE_NAME", &st.LogFileName)
	str("START_DATE", &st.StartDate)
	str("END_DATE", &st.EndDate)
	str("CONFIG_FILE", &st.ConfigFile)
	str("SCANNER", &st.Scanner)
	str("WORK_DIR", &st.WorkDir)
	str("TIMEOUT", &st.Timeout)
	str("CREDENTIAL_MODE", &st.CredentialMode)
	str("OUTPUT", &st.Output)
	str("DB_PATH", &st.DBPath)
	str("LOG_LEVEL", &st.LogLevel)
	str("LOG_FORMAT", &st.LogFormat)

	var profiles string
	str("PROFILES", &profiles)
	if profiles != "" {
		st.Profiles = strings.Split(profiles, ",")
	}

	for name, dst := range map[string]**bool{
		"VERIFY_IDENTITY": &st.VerifyIdentity,
		"SKIP_EMPTY":      &st.SkipEmpty,
		"STORE":           &st.Store,
		"FAIL_ON_ERROR":   &st.FailOnError,
		"NO_BANNER":       &st.NoBanner,
	} {
		if err := boolean(name, dst); err != nil {
			return st, err
		}
	}

	if v, ok := s.lookupEnv(EnvPrefix + "MAX_PARALLEL"); ok && v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return st, fmt.Errorf("%w: %sMAX_PARALLEL=%q is not a number", model.ErrConfiguration, EnvPrefix, v)
		}
		st.MaxParallel = &n
	}

	return st, nil
}

func (s *service) Apply(flags model.Flags) (model.Flags, error) {
	st, err := s.FromEnv()
	if err != nil {
		return flags, err
	}

	path := flags.SettingsPath
	if path == "" {
		path, _ = s.lookupEnv(EnvPrefix + "SETTINGS")
	}
	if path != "" {
		file, err := s.LoadFile(path)
		if err != nil {
			return flags, err
		}
		st = merge(st, file)
	}

	return st.applyTo(flags)
}

// merge returns base with every configured field of top laid over it.
func merge(base, top Settings) Settings {
	str := func(dst *string, v string) {
		if v != "" {
			*dst = v
		}
	}
	str(&base.Region, top.Region)
	str(&base.LogFileName, top.LogFileName)
	str(&base.StartDate, top.StartDate)
	str(&base.EndDate, top.EndDate)
	str(&base.ConfigFile, top.ConfigFile)
	str(&base.Scanner, top.Scanner)
	str(&base.WorkDir, top.WorkDir)
	str(&base.Timeout, top.Timeout)
	str(&base.CredentialMode, top.CredentialMode)
	str(&base.Output, top.Output)
	str(&base.DBPath, top.DBPath)
	str(&base.LogLevel, top.LogLevel)
	str(&base.LogFormat, top.LogFormat)
	if len(top.Profiles) > 0 {
		base.Profiles = top.Profiles
	}
	if top.VerifyIdentity != nil {
		base.VerifyIdentity = top.VerifyIdentity
	}
	if top.SkipEmpty != nil {
		base.SkipEmpty = top.SkipEmpty
	}
	if top.MaxParallel != nil {
		base.MaxParallel = top.MaxParallel
	}
	if top.Store != nil {
		base.Store = top.Store
	}
	if top.FailOnError != nil {
		base.FailOnError = top.FailOnError
	}
	if top.NoBanner != nil {
		base.NoBanner = top.NoBanner
	}
	return base
}

func (st Settings) applyTo(flags model.Flags) (model.Flags, error) {
	str := func(name string, dst *string, v string) {
		if v != "" && !flags.IsSet(name) {
			*dst = v
		}
	}
	boolean := func(name string, dst *bool, v *bool) {
		if v != nil && !flags.IsSet(name) {
			*dst = *v
		}
	}

	str("region", &flags.Region, st.Region)
	str("log-file-name", &flags.LogFileName, st.LogFileName)
	str("start-date", &flags.StartDate, st.StartDate)
	str("end-date", &flags.EndDate, st.EndDate)
	str("profiles", &flags.Profiles, strings.Join(st.Profiles, ","))
	str("config-file", &flags.ConfigFile, st.ConfigFile)
	str("scanner", &flags.Scanner, st.Scanner)
	str("work-dir", &flags.WorkDir, st.WorkDir)
	str("credential-mode", &flags.CredentialMode, st.CredentialMode)
	str("output", &flags.Output, st.Output)
	str("db-path", &flags.DBPath, st.DBPath)
	str("log-level", &flags.LogLevel, st.LogLevel)
	str("log-format", &flags.LogFormat, st.LogFormat)
	boolean("verify-identity", &flags.VerifyIdentity, st.VerifyIdentity)
	boolean("skip-empty", &flags.SkipEmpty, st.SkipEmpty)
	boolean("store", &flags.Store, st.Store)
	boolean("fail-on-error", &flags.FailOnError, st.FailOnError)
	boolean("no-banner", &flags.NoBanner, st.NoBanner)

	if st.MaxParallel != nil && !flags.IsSet("max-parallel") {
		flags.MaxParallel = *st.MaxParallel
	}
	if st.Timeout != "" && !flags.IsSet("timeout") {
		d, err := time.ParseDuration(st.Timeout)
		if err != nil {
			return flags, fmt.Errorf("%w: invalid timeout %q: %w", model.ErrConfiguration, st.Timeout, err)
		}
		flags.Timeout = d
	}

	return flags, nil
}
