package minio

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/lifecycle"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/sboesen2/Drug-Interaction-Dashboard/internal/config"
	"github.com/sboesen2/Drug-Interaction-Dashboard/internal/infrastructure/monitoring/logging"
	pkgerrors "github.com/sboesen2/Drug-Interaction-Dashboard/pkg/errors"
)

type ClientTestSuite struct {
	suite.Suite
	api    *MockAPI
	client *Client
}

func (s *ClientTestSuite) SetupTest() {
	s.api = new(MockAPI)
	s.client = NewClientWithAPI(s.api, config.MinIOConfig{Bucket: "networks-test"}, logging.NewNopLogger())
}

func (s *ClientTestSuite) TearDownTest() {
	s.api.AssertExpectations(s.T())
}

func (s *ClientTestSuite) TestApplyDefaults() {
	cfg := config.MinIOConfig{}
	applyDefaults(&cfg)

	s.Equal(config.DefaultMinIORegion, cfg.Region)
	s.Equal(config.DefaultMinIOBucket, cfg.Bucket)
	s.Equal(time.Hour, cfg.PresignExpiry)
	s.Equal(30, cfg.RetentionDays)
}

func (s *ClientTestSuite) TestEnsureBucket_Exists() {
	s.api.On("BucketExists", mock.Anything, "networks-test").Return(true, nil).Once()
	s.NoError(s.client.EnsureBucket(context.Background()))
	s.api.AssertNotCalled(s.T(), "MakeBucket", mock.Anything, mock.Anything, mock.Anything)
}

func (s *ClientTestSuite) TestEnsureBucket_Creates() {
	s.api.On("BucketExists", mock.Anything, "networks-test").Return(false, nil).Once()
	s.api.On("MakeBucket", mock.Anything, "networks-test", minio.MakeBucketOptions{Region: "us-east-1"}).Return(nil).Once()
	s.NoError(s.client.EnsureBucket(context.Background()))
}

func (s *ClientTestSuite) TestEnsureBucket_CheckFails() {
	s.api.On("BucketExists", mock.Anything, "networks-test").Return(false, errors.New("dial tcp")).Once()
	err := s.client.EnsureBucket(context.Background())
	s.True(pkgerrors.IsCode(err, pkgerrors.ErrCodeStorageError))
}

func (s *ClientTestSuite) TestSetupRetention_RuleShape() {
	s.api.On("SetBucketLifecycle", mock.Anything, "networks-test", mock.MatchedBy(func(lc *lifecycle.Configuration) bool {
		return len(lc.Rules) == 1 &&
			lc.Rules[0].RuleFilter.Prefix == ExportPrefix &&
			lc.Rules[0].Expiration.Days == 30
	})).Return(nil).Once()

	s.client.SetupRetention(context.Background())
}

func (s *ClientTestSuite) TestSetupRetention_FailureIsLogged() {
	s.api.On("SetBucketLifecycle", mock.Anything, "networks-test", mock.Anything).Return(errors.New("NotImplemented")).Once()
	s.NotPanics(func() { s.client.SetupRetention(context.Background()) })
}

func (s *ClientTestSuite) TestHealthCheck() {
	s.api.On("BucketExists", mock.Anything, "networks-test").Return(true, nil).Once()
	s.NoError(s.client.HealthCheck(context.Background()))

	s.api.On("BucketExists", mock.Anything, "networks-test").Return(false, nil).Once()
	s.Error(s.client.HealthCheck(context.Background()))
	s.Equal("minio", s.client.Name())
}

func (s *ClientTestSuite) TestPresignedGetURL_DefaultExpiry() {
	s.api.On("PresignedGetObject", mock.Anything, "networks-test", "networks/aspirin/x.html", time.Hour, mock.Anything).
		Return(makeURL("http://minio:9000/networks-test/networks/aspirin/x.html?X-Amz-Signature=abc"), nil).Once()

	u, err := s.client.PresignedGetURL(context.Background(), "networks/aspirin/x.html", 0)
	s.NoError(err)
	s.Contains(u, "X-Amz-Signature=abc")
}

func (s *ClientTestSuite) TestClosed() {
	s.NoError(s.client.Close())
	_, err := s.client.PresignedGetURL(context.Background(), "k", time.Minute)
	s.ErrorIs(err, ErrClientClosed)
	s.ErrorIs(s.client.HealthCheck(context.Background()), ErrClientClosed)
}

func TestClientSuite(t *testing.T) {
	suite.Run(t, new(ClientTestSuite))
}

func TestNewClient_InvalidEndpoint(t *testing.T) {
	_, err := NewClient(config.MinIOConfig{Endpoint: "http://bad endpoint"}, logging.NewNopLogger())
	assert.Error(t, err)
}

//Personal.AI order the ending
