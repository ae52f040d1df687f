package storage

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPresignImageUpload(t *testing.T) {
	s := NewS3Storage("sa-east-1", "santafonte-test", "AKIDTEST", "secret", "https://cdn.example.com/")

	resp, err := s.PresignImageUpload(context.Background(), FolderProducts, "Terço.JPG", "image/jpeg", 1024)
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(resp.Key, "products/"))
	assert.True(t, strings.HasSuffix(resp.Key, ".jpg"))
	assert.Equal(t, "https://cdn.example.com/"+resp.Key, resp.FileURL)
	assert.Contains(t, resp.UploadURL, "santafonte-test")
	assert.Contains(t, resp.UploadURL, "X-Amz-Signature")
}

func TestPresignImageUpload_Rejections(t *testing.T) {
	s := NewS3Storage("sa-east-1", "santafonte-test", "AKIDTEST", "secret", "")
	ctx := context.Background()

	_, err := s.PresignImageUpload(ctx, "secrets", "a.png", "image/png", 10)
	assert.ErrorIs(t, err, ErrFolderInvalid)

	_, err = s.PresignImageUpload(ctx, FolderOptions, "a.pdf", "application/pdf", 10)
	assert.ErrorIs(t, err, ErrContentTypeInvalid)

	_, err = s.PresignImageUpload(ctx, FolderOptions, "a.png", "image/png", MaxImageSize+1)
	assert.ErrorIs(t, err, ErrFileTooLarge)
}

func TestFileURL_DirectS3(t *testing.T) {
	s := NewS3Storage("sa-east-1", "bucket", "AKIDTEST", "secret", "")
	assert.Equal(t, "https://bucket.s3.sa-east-1.amazonaws.com/options/x.png", s.FileURL("options/x.png"))
}
