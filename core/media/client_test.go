package media

import (
	"context"
	"errors"
	"testing"

	"collection-manager/core/media/mocks"

	"github.com/minio/minio-go/v7"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestNewClient(t *testing.T) {
	t.Run("Strips Scheme", func(t *testing.T) {
		client, err := NewClient(Config{
			Endpoint:  "http://localhost:9000",
			AccessKey: "key",
			SecretKey: "secret",
		})
		require.NoError(t, err)
		assert.NotNil(t, client)
	})

	t.Run("Invalid Endpoint", func(t *testing.T) {
		_, err := NewClient(Config{Endpoint: "http://bad endpoint"})
		assert.Error(t, err)
	})
}

func TestEnsureBucket(t *testing.T) {
	ctx := context.Background()

	t.Run("Already Exists", func(t *testing.T) {
		client := new(mocks.Client)
		client.On("BucketExists", mock.Anything, "media").Return(true, nil)

		err := EnsureBucket(ctx, client, "media", "")
		assert.NoError(t, err)
		client.AssertNotCalled(t, "MakeBucket")
	})

	t.Run("Creates When Missing", func(t *testing.T) {
		client := new(mocks.Client)
		client.On("BucketExists", mock.Anything, "media").Return(false, nil)
		client.On("MakeBucket", mock.Anything, "media", minio.MakeBucketOptions{}).Return(nil)

		err := EnsureBucket(ctx, client, "media", "")
		assert.NoError(t, err)
		client.AssertExpectations(t)
	})

	t.Run("Check Failure", func(t *testing.T) {
		client := new(mocks.Client)
		client.On("BucketExists", mock.Anything, "media").Return(false, errors.New("unreachable"))

		err := EnsureBucket(ctx, client, "media", "")
		assert.ErrorContains(t, err, "unreachable")
	})
}
