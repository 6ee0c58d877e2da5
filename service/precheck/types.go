package precheck

import (
	"context"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/thirukguru/docdb-multiscan/service/clusters"
	awssts "github.com/thirukguru/docdb-multiscan/service/sts"
)

// ConfigLoader loads the AWS config for one profile.
type ConfigLoader interface {
	GetAWSCfg(ctx context.Context, region string, profile string) (aws.Config, error)
}

// Options selects which checks run.
type Options struct {
	VerifyIdentity bool
	CountClusters  bool
}

// Result is what the checks learned about one profile.
type Result struct {
	AccountID    string
	ClusterCount *int
}

// Empty reports whether the cluster check ran and found nothing to scan.
func (r Result) Empty() bool {
	return r.ClusterCount != nil && *r.ClusterCount == 0
}

type service struct {
	opts        Options
	loader      ConfigLoader
	newSTS      func(aws.Config) awssts.Service
	newClusters func(aws.Config) clusters.Service
}

// Service runs the optional per-profile checks before a scan job starts.
type Service interface {
	Enabled() bool
	Check(ctx context.Context, region, profile string) (Result, error)
}
