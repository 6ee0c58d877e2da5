package awssts

import (
	"context"

	"github.com/aws/aws-sdk-go-v2/service/sts"
)

// STSClientAPI is the interface for the AWS STS client methods used by the service.
type STSClientAPI interface {
	GetCallerIdentity(ctx context.Context, params *sts.GetCallerIdentityInput, optFns ...func(*sts.Options)) (*sts.GetCallerIdentityOutput, error)
}

type service struct {
	client STSClientAPI
}

// Service is the interface for AWS STS service.
type Service interface {
	// AccountID returns the 12-digit account the loaded credentials belong to.
	AccountID(ctx context.Context) (string, error)
}
