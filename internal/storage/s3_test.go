package storage

import (
	"context"
	"net/url"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	cfg "github.com/midwaife/backend/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewWithoutBucket(t *testing.T) {
	s, err := New(context.Background(), &cfg.Config{})
	require.NoError(t, err)
	assert.Nil(t, s)
}

func TestPresignedURL(t *testing.T) {
	client := s3.New(s3.Options{
		Region:       "us-east-1",
		Credentials:  credentials.NewStaticCredentialsProvider("key", "secret", ""),
		BaseEndpoint: aws.String("http://localhost:9000"),
		UsePathStyle: true,
	})
	s := &S3Storage{
		client:        client,
		presignClient: s3.NewPresignClient(client),
		bucket:        "exports",
		presignExpiry: 15 * time.Minute,
	}

	raw, err := s.PresignedURL(context.Background(), "exports/u1/abc.json")
	require.NoError(t, err)

	u, err := url.Parse(raw)
	require.NoError(t, err)
	assert.Equal(t, "localhost:9000", u.Host)
	assert.Equal(t, "/exports/exports/u1/abc.json", u.Path)
	assert.Equal(t, "900", u.Query().Get("X-Amz-Expires"))
}
