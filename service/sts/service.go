// Package awssts resolves which AWS account a profile's credentials belong to.
package awssts

import (
	"context"
	"errors"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/sts"
)

// NewService creates a new STS service.
func NewService(awsconfig aws.Config) Service {
	return newWithClient(sts.NewFromConfig(awsconfig))
}

func newWithClient(client STSClientAPI) Service {
	return &service{client: client}
}

func (s *service) AccountID(ctx context.Context) (string, error) {
	out, err := s.client.GetCallerIdentity(ctx, &sts.GetCallerIdentityInput{})
	if err != nil {
		return "", fmt.Errorf("get caller identity: %w", err)
	}
	if out.Account == nil || *out.Account == "" {
		return "", errors.New("unable to resolve account ID")
	}
	return *out.Account, nil
}
