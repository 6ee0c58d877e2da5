package precheck

import (
	"context"
	"errors"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/thirukguru/docdb-multiscan/service/clusters"
	awssts "github.com/thirukguru/docdb-multiscan/service/sts"
)

type fakeLoader struct {
	profiles []string
	err      error
}

func (f *fakeLoader) GetAWSCfg(_ context.Context, region, profile string) (aws.Config, error) {
	f.profiles = append(f.profiles, profile)
	return aws.Config{Region: region}, f.err
}

type fakeSTS struct {
	id  string
	err error
}

func (f fakeSTS) AccountID(context.Context) (string, error) { return f.id, f.err }

type fakeClusters struct {
	n   int
	err error
}

func (f fakeClusters) CountDocDBClusters(context.Context) (int, error) { return f.n, f.err }

func newTestService(loader ConfigLoader, opts Options, st awssts.Service, cl clusters.Service) *service {
	s := NewService(loader, opts).(*service)
	s.newSTS = func(aws.Config) awssts.Service { return st }
	s.newClusters = func(aws.Config) clusters.Service { return cl }
	return s
}

func TestCheckDisabledDoesNotLoadConfig(t *testing.T) {
	loader := &fakeLoader{}
	s := newTestService(loader, Options{}, nil, nil)

	res, err := s.Check(context.Background(), "us-east-1", "dev")
	require.NoError(t, err)
	assert.False(t, s.Enabled())
	assert.Empty(t, loader.profiles)
	assert.Equal(t, Result{}, res)
}

func TestCheckRunsEnabledChecks(t *testing.T) {
	loader := &fakeLoader{}
	s := newTestService(loader, Options{VerifyIdentity: true, CountClusters: true}, fakeSTS{id: "123456789012"}, fakeClusters{n: 0})

	res, err := s.Check(context.Background(), "us-east-1", "dev")
	require.NoError(t, err)
	assert.Equal(t, []string{"dev"}, loader.profiles)
	assert.Equal(t, "123456789012", res.AccountID)
	require.NotNil(t, res.ClusterCount)
	assert.True(t, res.Empty())
}

func TestCheckIdentityOnlyLeavesClusterCountUnset(t *testing.T) {
	s := newTestService(&fakeLoader{}, Options{VerifyIdentity: true}, fakeSTS{id: "123456789012"}, fakeClusters{n: 4})

	res, err := s.Check(context.Background(), "us-east-1", "dev")
	require.NoError(t, err)
	assert.Nil(t, res.ClusterCount)
	assert.False(t, res.Empty())
}

func TestCheckErrors(t *testing.T) {
	_, err := newTestService(&fakeLoader{err: errors.New("no credentials")}, Options{VerifyIdentity: true}, fakeSTS{}, nil).
		Check(context.Background(), "us-east-1", "dev")
	require.ErrorContains(t, err, "no credentials")

	_, err = newTestService(&fakeLoader{}, Options{CountClusters: true}, nil, fakeClusters{err: errors.New("AccessDenied")}).
		Check(context.Background(), "us-east-1", "dev")
	require.ErrorContains(t, err, "AccessDenied")
}
