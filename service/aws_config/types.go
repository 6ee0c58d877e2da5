package awsconfig

import (
	"context"

	"github.com/aws/aws-sdk-go-v2/aws"
)

// Credential modes for child scan processes.
const (
	// ModeProfile selects the account by AWS_PROFILE and lets the scan job
	// resolve credentials itself.
	ModeProfile = "profile"
	// ModeExplicit resolves credentials in-process and hands the child static
	// keys, so no profile lookup happens in the child.
	ModeExplicit = "explicit"
)

// ambientCredentialVars are stripped from every child environment so the
// parent's own credentials never reach a scan for another account.
var ambientCredentialVars = []string{
	"AWS_PROFILE",
	"AWS_DEFAULT_PROFILE",
	"AWS_ACCESS_KEY_ID",
	"AWS_SECRET_ACCESS_KEY",
	"AWS_SESSION_TOKEN",
	"AWS_SECURITY_TOKEN",
	"AWS_CREDENTIAL_EXPIRATION",
}

type service struct {
	mode       string
	configFile string
	environ    func() []string
	loadCfg    func(ctx context.Context, region, profile string) (aws.Config, error)
}

// Service is the interface for AWS configuration service.
type Service interface {
	GetAWSCfg(ctx context.Context, region string, profile string) (aws.Config, error)
	// Environment builds the complete environment for one account's scan job.
	Environment(ctx context.Context, region, profile string) ([]string, error)
	Mode() string
}
