package storage

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"
	"github.com/minhasantafonte/santafonte-backend/pkg/logger"
)

// Upload folders, one per image owner.
const (
	FolderProducts = "products"
	FolderOptions  = "options"
	FolderArticles = "articles"
)

const (
	presignExpiry = 15 * time.Minute
	MaxImageSize  = 10 * 1024 * 1024
)

var AllowedImageTypes = []string{"image/jpeg", "image/png", "image/webp", "image/gif"}

var (
	ErrFileTooLarge       = errors.New("file too large")
	ErrContentTypeInvalid = errors.New("content type not allowed")
	ErrFolderInvalid      = errors.New("unknown upload folder")
)

// ImageStorage hands out direct-upload URLs for catalog images.
type ImageStorage interface {
	PresignImageUpload(ctx context.Context, folder, filename, contentType string, size int64) (*PresignedURLResponse, error)
}

type S3Storage struct {
	client  *s3.Client
	bucket  string
	baseURL string
}

type PresignedURLResponse struct {
	UploadURL string    `json:"upload_url"`
	FileURL   string    `json:"file_url"`
	Key       string    `json:"key"`
	ExpiresAt time.Time `json:"expires_at"`
}

func NewS3Storage(region, bucket, accessKeyID, secretAccessKey, baseURL string) *S3Storage {
	var cfg aws.Config
	var err error

	// Static keys win; otherwise fall back to the default credential chain
	if accessKeyID != "" && secretAccessKey != "" {
		cfg = aws.Config{
			Region: region,
			Credentials: credentials.NewStaticCredentialsProvider(
				accessKeyID,
				secretAccessKey,
				"",
			),
		}
	} else {
		cfg, err = config.LoadDefaultConfig(context.Background(),
			config.WithRegion(region),
		)
		if err != nil {
			logger.Warn("Failed to load AWS default config, using region only", map[string]interface{}{
				"error": err.Error(),
			})
			cfg = aws.Config{
				Region: region,
			}
		}
	}

	return &S3Storage{
		client:  s3.NewFromConfig(cfg),
		bucket:  bucket,
		baseURL: strings.TrimRight(baseURL, "/"),
	}
}

// PresignImageUpload validates the upload and returns a PUT URL valid for
// fifteen minutes plus the public URL the image will be served from.
func (s *S3Storage) PresignImageUpload(ctx context.Context, folder, filename, contentType string, size int64) (*PresignedURLResponse, error) {
	if !IsKnownFolder(folder) {
		return nil, ErrFolderInvalid
	}
	if err := ValidateContentType(contentType, AllowedImageTypes); err != nil {
		return nil, err
	}
	if err := ValidateFileSize(size, MaxImageSize); err != nil {
		return nil, err
	}

	key := ObjectKey(folder, filename)
	presignClient := s3.NewPresignClient(s.client)

	presignedReq, err := presignClient.PresignPutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(key),
		ContentType: aws.String(contentType),
	}, s3.WithPresignExpires(presignExpiry))
	if err != nil {
		logger.Error("Failed to presign image upload", err, map[string]interface{}{
			"folder": folder,
			"key":    key,
		})
		return nil, fmt.Errorf("failed to generate presigned URL: %w", err)
	}

	logger.Debug("Image upload presigned", map[string]interface{}{
		"folder": folder,
		"key":    key,
	})

	return &PresignedURLResponse{
		UploadURL: presignedReq.URL,
		FileURL:   s.FileURL(key),
		Key:       key,
		ExpiresAt: time.Now().Add(presignExpiry),
	}, nil
}

// FileURL is the public URL of key, through the CDN when one is configured.
func (s *S3Storage) FileURL(key string) string {
	if s.baseURL != "" {
		return fmt.Sprintf("%s/%s", s.baseURL, key)
	}
	return fmt.Sprintf("https://%s.s3.%s.amazonaws.com/%s", s.bucket, s.client.Options().Region, key)
}

// ObjectKey builds "<folder>/<uuid><ext>" keeping the lower-cased extension.
func ObjectKey(folder, filename string) string {
	ext := strings.ToLower(filepath.Ext(filename))
	return fmt.Sprintf("%s/%s%s", folder, uuid.New().String(), ext)
}

func IsKnownFolder(folder string) bool {
	switch folder {
	case FolderProducts, FolderOptions, FolderArticles:
		return true
	}
	return false
}

func ValidateFileSize(size int64, maxSize int64) error {
	if size > maxSize {
		return fmt.Errorf("%w: max %d bytes", ErrFileTooLarge, maxSize)
	}
	return nil
}

func ValidateContentType(contentType string, allowedTypes []string) error {
	for _, allowed := range allowedTypes {
		if contentType == allowed {
			return nil
		}
	}
	return fmt.Errorf("%w: %s", ErrContentTypeInvalid, contentType)
}
