package clusters

import (
	"context"

	"github.com/aws/aws-sdk-go-v2/service/rds"
)

// RDSClientAPI is the subset of the RDS client used to list DocumentDB clusters.
type RDSClientAPI interface {
	DescribeDBClusters(ctx context.Context, params *rds.DescribeDBClustersInput, optFns ...func(*rds.Options)) (*rds.DescribeDBClustersOutput, error)
}

type service struct {
	client RDSClientAPI
}

// Service counts DocumentDB clusters in the configured region.
type Service interface {
	CountDocDBClusters(ctx context.Context) (int, error)
}
