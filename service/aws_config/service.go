// Package awsconfig loads AWS configuration and scopes credentials to a
// single profile for each scan job.
package awsconfig

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials/stscreds"
	"github.com/aws/aws-sdk-go-v2/service/sts"
	"github.com/thirukguru/docdb-multiscan/model"
)

// loadSharedConfigProfile is a variable to allow mocking in tests.
var loadSharedConfigProfile = config.LoadSharedConfigProfile

// NewService creates a new AWS configuration service. configFile, when set,
// is passed to both the SDK and the child processes as AWS_CONFIG_FILE.
func NewService(mode, configFile string) (Service, error) {
	switch mode {
	case "":
		mode = ModeProfile
	case ModeProfile, ModeExplicit:
	default:
		return nil, fmt.Errorf("%w: unsupported --credential-mode %q (want %s or %s)", model.ErrConfiguration, mode, ModeProfile, ModeExplicit)
	}
	s := &service{mode: mode, configFile: configFile, environ: os.Environ}
	s.loadCfg = s.GetAWSCfg
	return s, nil
}

func (s *service) Mode() string {
	return s.mode
}

func (s *service) Environment(ctx context.Context, region, profile string) ([]string, error) {
	env := scrubEnv(s.environ())
	if s.configFile != "" {
		env = setEnv(env, "AWS_CONFIG_FILE", s.configFile)
	}

	if s.mode == ModeProfile {
		return append(env, "AWS_PROFILE="+profile), nil
	}

	cfg, err := s.loadCfg(ctx, region, profile)
	if err != nil {
		return nil, fmt.Errorf("profile %s: %w", profile, err)
	}
	if cfg.Credentials == nil {
		return nil, fmt.Errorf("profile %s: no credentials provider configured", profile)
	}
	creds, err := cfg.Credentials.Retrieve(ctx)
	if err != nil {
		return nil, fmt.Errorf("profile %s: failed to retrieve credentials: %w", profile, err)
	}
	env = append(env,
		"AWS_ACCESS_KEY_ID="+creds.AccessKeyID,
		"AWS_SECRET_ACCESS_KEY="+creds.SecretAccessKey,
	)
	if creds.SessionToken != "" {
		env = append(env, "AWS_SESSION_TOKEN="+creds.SessionToken)
	}
	return env, nil
}

func scrubEnv(env []string) []string {
	out := make([]string, 0, len(env))
	for _, kv := range env {
		key, _, _ := strings.Cut(kv, "=")
		if isAmbientCredentialVar(key) {
			continue
		}
		out = append(out, kv)
	}
	return out
}

func isAmbientCredentialVar(key string) bool {
	for _, v := range ambientCredentialVars {
		if strings.EqualFold(key, v) {
			return true
		}
	}
	return false
}

func setEnv(env []string, key, value string) []string {
	out := env[:0:0]
	for _, kv := range env {
		if k, _, _ := strings.Cut(kv, "="); k == key {
			continue
		}
		out = append(out, kv)
	}
	return append(out, key+"="+value)
}

func (s *service) GetAWSCfg(ctx context.Context, region, profile string) (aws.Config, error) {
	// Profiles that assume a role with MFA are handled manually; LoadDefaultConfig
	// otherwise returns a config that fails later with SignatureDoesNotMatch.
	if profile != "" {
		sharedCfg, err := loadSharedConfigProfile(ctx, profile, s.sharedConfigFiles()...)
		if err == nil && sharedCfg.RoleARN != "" && sharedCfg.MFASerial != "" {
			return s.loadConfigWithManualMFA(ctx, region, profile)
		}
	}

	opts := s.baseOptions()
	if region != "" {
		opts = append(opts, config.WithRegion(region))
	}
	if profile != "" {
		opts = append(opts, config.WithSharedConfigProfile(profile))
	}
	opts = append(opts, config.WithAssumeRoleCredentialOptions(func(options *stscreds.AssumeRoleOptions) {
		options.TokenProvider = stscreds.StdinTokenProvider
	}))

	cfg, err := config.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return aws.Config{}, fmt.Errorf("unable to load AWS config: %w", err)
	}

	// Surface MFA prompts and expired SSO sessions here rather than mid-scan.
	if cfg.Credentials != nil {
		if _, err := cfg.Credentials.Retrieve(ctx); err != nil {
			return aws.Config{}, fmt.Errorf("failed to retrieve credentials: %w", err)
		}
	}

	return cfg, nil
}

func (s *service) sharedConfigFiles() []func(*config.LoadSharedConfigOptions) {
	if s.configFile == "" {
		return nil
	}
	return []func(*config.LoadSharedConfigOptions){
		func(o *config.LoadSharedConfigOptions) {
			o.ConfigFiles = []string{s.configFile}
		},
	}
}

func (s *service) baseOptions() []func(*config.LoadOptions) error {
	if s.configFile == "" {
		return nil
	}
	return []func(*config.LoadOptions) error{
		config.WithSharedConfigFiles([]string{s.configFile}),
	}
}

// loadConfigWithManualMFA builds the assume-role chain for an MFA profile by hand.
func (s *service) loadConfigWithManualMFA(ctx context.Context, region, profile string) (aws.Config, error) {
	sharedCfg, err := loadSharedConfigProfile(ctx, profile, s.sharedConfigFiles()...)
	if err != nil {
		return aws.Config{}, fmt.Errorf("failed to load shared config profile: %w", err)
	}
	if sharedCfg.RoleARN == "" || sharedCfg.MFASerial == "" {
		return aws.Config{}, fmt.Errorf("profile %s missing role_arn or mfa_serial", profile)
	}

	sourceProfile := sharedCfg.SourceProfileName
	if sourceProfile == "" {
		sourceProfile = "default"
	}

	// STS needs a region to resolve the AssumeRole endpoint.
	stsRegion := region
	if stsRegion == "" {
		stsRegion = sharedCfg.Region
	}
	if stsRegion == "" {
		stsRegion = "us-east-1"
	}

	baseOpts := append(s.baseOptions(),
		config.WithSharedConfigProfile(sourceProfile),
		config.WithRegion(stsRegion),
	)
	baseCfg, err := config.LoadDefaultConfig(ctx, baseOpts...)
	if err != nil {
		return aws.Config{}, fmt.Errorf("failed to load source profile config: %w", err)
	}

	provider := stscreds.NewAssumeRoleProvider(sts.NewFromConfig(baseCfg), sharedCfg.RoleARN, func(o *stscreds.AssumeRoleOptions) {
		o.SerialNumber = aws.String(sharedCfg.MFASerial)
		o.TokenProvider = stscreds.StdinTokenProvider
	})

	finalOpts := append(s.baseOptions(), config.WithCredentialsProvider(aws.NewCredentialsCache(provider)))
	if region != "" {
		finalOpts = append(finalOpts, config.WithRegion(region))
	} else if sharedCfg.Region != "" {
		finalOpts = append(finalOpts, config.WithRegion(sharedCfg.Region))
	}

	finalCfg, err := config.LoadDefaultConfig(ctx, finalOpts...)
	if err != nil {
		return aws.Config{}, fmt.Errorf("failed to load final config with mfa: %w", err)
	}
	if finalCfg.Credentials != nil {
		if _, err := finalCfg.Credentials.Retrieve(ctx); err != nil {
			return aws.Config{}, fmt.Errorf("failed to retrieve credentials (MFA might have failed): %w", err)
		}
	}
	return finalCfg, nil
}
