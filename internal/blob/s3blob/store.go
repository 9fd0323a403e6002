package s3blob

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"time"

	"github.com/aanandhisonduri/BigBrain/internal/domain/model"
	"github.com/aanandhisonduri/BigBrain/pkg/logging"
	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/google/uuid"
)

// Store is the S3 (or MinIO) implementation of the blob boundary.
type Store struct {
	client       *s3.Client
	presign      *s3.PresignClient
	bucket       string
	uploadExpiry time.Duration
	logger       *logging.Logger
}

type Config struct {
	Bucket       string
	Region       string
	Endpoint     string
	AccessKey    string
	SecretKey    string
	UploadExpiry time.Duration
}

func NewStore(ctx context.Context, cfg Config) (*Store, error) {
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx,
		awsconfig.WithRegion(cfg.Region),
		awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			cfg.AccessKey,
			cfg.SecretKey,
			"",
		)))
	if err != nil {
		return nil, fmt.Errorf("loading aws config: %w", err)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
			o.UsePathStyle = true
		}
	})

	expiry := cfg.UploadExpiry
	if expiry == 0 {
		expiry = 15 * time.Minute
	}

	return &Store{
		client:       client,
		presign:      s3.NewPresignClient(client),
		bucket:       cfg.Bucket,
		uploadExpiry: expiry,
		logger:       logging.NewLogger("S3Blob"),
	}, nil
}

func (s *Store) Get(ctx context.Context, fileId string) ([]byte, error) {
	out, err := s.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: &s.bucket,
		Key:    &fileId,
	})
	if err != nil {
		var noKey *types.NoSuchKey
		if errors.As(err, &noKey) {
			return nil, model.ErrFileNotFound
		}
		return nil, fmt.Errorf("fetching file %s: %w", fileId, err)
	}
	defer out.Body.Close()

	data, err := io.ReadAll(out.Body)
	if err != nil {
		return nil, fmt.Errorf("reading file %s: %w", fileId, err)
	}
	return data, nil
}

func (s *Store) Delete(ctx context.Context, fileId string) error {
	_, err := s.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: &s.bucket,
		Key:    &fileId,
	})
	if err != nil {
		return fmt.Errorf("deleting file %s: %w", fileId, err)
	}
	return nil
}

func (s *Store) GenerateUploadURL(ctx context.Context, filename string) (string, string, error) {
	key := storageKey(filename)
	req, err := s.presign.PresignPutObject(ctx, &s3.PutObjectInput{
		Bucket: &s.bucket,
		Key:    &key,
	}, s3.WithPresignExpires(s.uploadExpiry))
	if err != nil {
		return "", "", fmt.Errorf("presigning upload: %w", err)
	}
	s.logger.Debug("Generated upload URL", "fileId", key)
	return key, req.URL, nil
}

func (s *Store) GenerateDownloadURL(ctx context.Context, fileId string) (string, error) {
	req, err := s.presign.PresignGetObject(ctx, &s3.GetObjectInput{
		Bucket: &s.bucket,
		Key:    &fileId,
	}, s3.WithPresignExpires(s.uploadExpiry))
	if err != nil {
		return "", fmt.Errorf("presigning download: %w", err)
	}
	return req.URL, nil
}

// storageKey keeps the original extension so text extraction can pick
// the right parser later.
func storageKey(filename string) string {
	return fmt.Sprintf("uploads/%s%s", uuid.New(), filepath.Ext(filename))
}
