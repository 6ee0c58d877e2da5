// Package precheck verifies a profile's identity and DocumentDB footprint
// before its scan job is started.
package precheck

import (
	"context"
	"fmt"

	"github.com/thirukguru/docdb-multiscan/service/clusters"
	awssts "github.com/thirukguru/docdb-multiscan/service/sts"
)

// NewService creates a pre-check service. With no option enabled, Check is a no-op.
func NewService(loader ConfigLoader, opts Options) Service {
	return &service{
		opts:        opts,
		loader:      loader,
		newSTS:      awssts.NewService,
		newClusters: clusters.NewService,
	}
}

func (s *service) Enabled() bool {
	return s.opts.VerifyIdentity || s.opts.CountClusters
}

func (s *service) Check(ctx context.Context, region, profile string) (Result, error) {
	var res Result
	if !s.Enabled() {
		return res, nil
	}

	cfg, err := s.loader.GetAWSCfg(ctx, region, profile)
	if err != nil {
		return res, fmt.Errorf("load AWS config: %w", err)
	}

	if s.opts.VerifyIdentity {
		id, err := s.newSTS(cfg).AccountID(ctx)
		if err != nil {
			return res, err
		}
		res.AccountID = id
	}

	if s.opts.CountClusters {
		n, err := s.newClusters(cfg).CountDocDBClusters(ctx)
		if err != nil {
			return res, err
		}
		res.ClusterCount = &n
	}

	return res, nil
}
