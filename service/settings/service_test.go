package settings

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/thirukguru/docdb-multiscan/model"
)

func newTestService(env map[string]string) *service {
	return &service{lookupEnv: func(k string) (string, bool) {
		v, ok := env[k]
		return v, ok
	}}
}

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(p, []byte(content), 0o600))
	return p
}

func TestLoadFileFormats(t *testing.T) {
	tests := []struct {
		name    string
		file    string
		content string
	}{
		{"yaml", "settings.yaml", "region: us-east-1\nlog_file_name: docdb\nprofiles: [dev, prod]\nskip_empty: true\nmax_parallel: 2\ntimeout: 90s\n"},
		{"yml", "settings.yml", "region: us-east-1\nlog_file_name: docdb\nprofiles:\n  - dev\n  - prod\nskip_empty: true\nmax_parallel: 2\ntimeout: 90s\n"},
		{"toml", "settings.toml", "region = \"us-east-1\"\nlog_file_name = \"docdb\"\nprofiles = [\"dev\", \"prod\"]\nskip_empty = true\nmax_parallel = 2\ntimeout = \"90s\"\n"},
		{"json", "settings.json", `{"region":"us-east-1","log_file_name":"docdb","profiles":["dev","prod"],"skip_empty":true,"max_parallel":2,"timeout":"90s"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			st, err := newTestService(nil).LoadFile(writeFile(t, tt.file, tt.content))
			require.NoError(t, err)

			assert.Equal(t, "us-east-1", st.Region)
			assert.Equal(t, "docdb", st.LogFileName)
			assert.Equal(t, []string{"dev", "prod"}, st.Profiles)
			require.NotNil(t, st.SkipEmpty)
			assert.True(t, *st.SkipEmpty)
			require.NotNil(t, st.MaxParallel)
			assert.Equal(t, 2, *st.MaxParallel)
			assert.Equal(t, "90s", st.Timeout)
			assert.Nil(t, st.Store)
		})
	}
}

func TestLoadFileErrors(t *testing.T) {
	svc := newTestService(nil)

	_, err := svc.LoadFile(filepath.Join(t.TempDir(), "missing.yaml"))
	require.ErrorIs(t, err, model.ErrConfiguration)

	_, err = svc.LoadFile(writeFile(t, "settings.ini", "region=us-east-1"))
	require.ErrorIs(t, err, model.ErrConfiguration)

	_, err = svc.LoadFile(writeFile(t, "settings.json", "{not json"))
	require.ErrorIs(t, err, model.ErrConfiguration)

	_, err = svc.LoadFile(t.TempDir())
	require.ErrorIs(t, err, model.ErrConfiguration)
}

func TestFromEnv(t *testing.T) {
	svc := newTestService(map[string]string{
		"DOCDB_MULTISCAN_REGION":       "eu-west-1",
		"DOCDB_MULTISCAN_PROFILES":     "a,b",
		"DOCDB_MULTISCAN_STORE":        "true",
		"DOCDB_MULTISCAN_MAX_PARALLEL": "3",
	})

	st, err := svc.FromEnv()
	require.NoError(t, err)
	assert.Equal(t, "eu-west-1", st.Region)
	assert.Equal(t, []string{"a", "b"}, st.Profiles)
	require.NotNil(t, st.Store)
	assert.True(t, *st.Store)
	require.NotNil(t, st.MaxParallel)
	assert.Equal(t, 3, *st.MaxParallel)
}

func TestFromEnvRejectsBadValues(t *testing.T) {
	_, err := newTestService(map[string]string{"DOCDB_MULTISCAN_STORE": "maybe"}).FromEnv()
	require.ErrorIs(t, err, model.ErrConfiguration)

	_, err = newTestService(map[string]string{"DOCDB_MULTISCAN_MAX_PARALLEL": "lots"}).FromEnv()
	require.ErrorIs(t, err, model.ErrConfiguration)
}

func TestApplyPrecedence(t *testing.T) {
	path := writeFile(t, "settings.yaml", "region: us-west-2\nlog_file_name: from_file\noutput: json\ntimeout: 2m\n")
	svc := newTestService(map[string]string{
		"DOCDB_MULTISCAN_REGION":        "eu-west-1",
		"DOCDB_MULTISCAN_LOG_FILE_NAME": "from_env",
		"DOCDB_MULTISCAN_LOG_LEVEL":     "debug",
	})

	flags := model.Flags{
		Region:       "ap-south-1",
		Output:       "table",
		LogLevel:     "info",
		Timeout:      5 * time.Minute,
		SettingsPath: path,
		Changed:      map[string]bool{"region": true, "settings": true},
	}

	got, err := svc.Apply(flags)
	require.NoError(t, err)

	assert.Equal(t, "ap-south-1", got.Region, "command line wins")
	assert.Equal(t, "from_file", got.LogFileName, "file beats environment")
	assert.Equal(t, "json", got.Output)
	assert.Equal(t, 2*time.Minute, got.Timeout)
	assert.Equal(t, "debug", got.LogLevel, "environment beats defaults")
}

func TestApplySettingsPathFromEnv(t *testing.T) {
	path := writeFile(t, "settings.toml", "log_file_name = \"toml_label\"\n")
	svc := newTestService(map[string]string{"DOCDB_MULTISCAN_SETTINGS": path})

	got, err := svc.Apply(model.Flags{})
	require.NoError(t, err)
	assert.Equal(t, "toml_label", got.LogFileName)
}

func TestApplyInvalidTimeout(t *testing.T) {
	svc := newTestService(map[string]string{"DOCDB_MULTISCAN_TIMEOUT": "soon"})

	_, err := svc.Apply(model.Flags{})
	require.ErrorIs(t, err, model.ErrConfiguration)
}

func TestApplyKeepsExplicitBooleans(t *testing.T) {
	svc := newTestService(map[string]string{"DOCDB_MULTISCAN_STORE": "true"})

	got, err := svc.Apply(model.Flags{Store: false, Changed: map[string]bool{"store": true}})
	require.NoError(t, err)
	assert.False(t, got.Store)

	got, err = svc.Apply(model.Flags{})
	require.NoError(t, err)
	assert.True(t, got.Store)
}
