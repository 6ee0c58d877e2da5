// Package profile resolves which AWS profiles a run should scan.
package profile

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/go-ini/ini"
	"github.com/thirukguru/docdb-multiscan/model"
)

// DefaultProfile is the section name of the unnamed AWS profile.
const DefaultProfile = "default"

// sections in ~/.aws/config that never name a profile.
var nonProfilePrefixes = []string{"sso-session ", "services "}

// NewService creates a resolver reading storePath, or the SDK default
// location when storePath is empty.
func NewService(storePath string) Service {
	if strings.TrimSpace(storePath) == "" {
		storePath = DefaultStorePath()
	}
	return &service{storePath: storePath}
}

// DefaultStorePath honours AWS_CONFIG_FILE and falls back to ~/.aws/config.
func DefaultStorePath() string {
	if p := strings.TrimSpace(os.Getenv("AWS_CONFIG_FILE")); p != "" {
		return p
	}
	return config.DefaultSharedConfigFilename()
}

func (s *service) StorePath() string {
	return s.storePath
}

func (s *service) Resolve(explicit string) ([]string, error) {
	if strings.TrimSpace(explicit) != "" {
		profiles := ParseList(explicit)
		if len(profiles) == 0 {
			return nil, fmt.Errorf("%w: --profiles %q names no profile", model.ErrNoAccountsFound, explicit)
		}
		return profiles, nil
	}

	content, err := os.ReadFile(s.storePath)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("%w: AWS config file not found at %s", model.ErrConfiguration, s.storePath)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: error reading AWS config file: %w", model.ErrConfiguration, err)
	}

	profiles, err := Discover(content)
	if err != nil {
		return nil, fmt.Errorf("%w: error reading AWS config file %s: %w", model.ErrConfiguration, s.storePath, err)
	}
	if len(profiles) == 0 {
		return nil, fmt.Errorf("%w in %s", model.ErrNoAccountsFound, s.storePath)
	}
	return profiles, nil
}

// ParseList splits a comma-separated profile list, trimming blanks and
// dropping duplicates while keeping first-seen order.
func ParseList(raw string) []string {
	out := []string{}
	seen := map[string]bool{}
	for _, p := range strings.Split(raw, ",") {
		p = strings.TrimSpace(p)
		if p == "" || seen[p] {
			continue
		}
		seen[p] = true
		out = append(out, p)
	}
	return out
}

// Discover lists the profiles defined in AWS shared config content.
// Named profiles come first in document order; the default profile, when
// present, is appended once at the end.
func Discover(content []byte) ([]string, error) {
	// Values such as ca_bundle = C:\certs\ end in a backslash; like the SDK,
	// never join them with the next line.
	f, err := ini.LoadSources(ini.LoadOptions{
		AllowNestedValues:       true,
		IgnoreContinuation:      true,
		SkipUnrecognizableLines: true,
	}, content)
	if err != nil {
		return nil, err
	}

	out := []string{}
	seen := map[string]bool{}
	hasDefault := false
	for _, name := range f.SectionStrings() {
		if name == ini.DefaultSection {
			continue
		}
		p, ok := profileName(name)
		if !ok {
			continue
		}
		if p == DefaultProfile {
			hasDefault = true
			continue
		}
		if !seen[p] {
			seen[p] = true
			out = append(out, p)
		}
	}
	if hasDefault {
		out = append(out, DefaultProfile)
	}
	return out, nil
}

func profileName(section string) (string, bool) {
	section = strings.TrimSpace(section)
	for _, prefix := range nonProfilePrefixes {
		if strings.HasPrefix(section, prefix) {
			return "", false
		}
	}
	if fields := strings.Fields(section); len(fields) > 1 && fields[0] == "profile" {
		section = strings.TrimSpace(strings.TrimPrefix(section, "profile"))
	}
	return section, section != ""
}
