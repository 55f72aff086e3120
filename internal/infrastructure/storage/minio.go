package storage

import (
	"bytes"
	"context"
	"fmt"
	"net/url"
	"path"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/johnquangdev/lecture-notes/errors"
	"github.com/johnquangdev/lecture-notes/internal/usecase/media"
	"github.com/johnquangdev/lecture-notes/pkg/config"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"go.uber.org/zap"
)

// MinIOArchive stores rendered notes documents in a MinIO bucket
type MinIOArchive struct {
	client    *minio.Client
	bucket    string
	publicURL string // e.g. https://minio.example.com when MinIO sits behind a proxy
	expiry    time.Duration
	logger    *zap.Logger
}

// NewMinIOArchive creates a MinIO client and makes sure the bucket exists
func NewMinIOArchive(ctx context.Context, cfg config.StorageConfig, logger *zap.Logger) (*MinIOArchive, error) {
	minioClient, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKeyID, cfg.SecretAccessKey, ""),
		Secure: cfg.UseSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create MinIO client: %w", err)
	}

	archive := &MinIOArchive{
		client:    minioClient,
		bucket:    cfg.BucketName,
		publicURL: strings.TrimRight(cfg.PublicURL, "/"),
		expiry:    cfg.URLExpiry,
		logger:    logger,
	}
	if archive.expiry <= 0 {
		archive.expiry = 24 * time.Hour
	}

	if err := archive.ensureBucket(ctx); err != nil {
		return nil, fmt.Errorf("failed to initialize bucket: %w", err)
	}

	return archive, nil
}

// ensureBucket creates the bucket when missing. Objects stay private and are
// shared through presigned URLs.
func (m *MinIOArchive) ensureBucket(ctx context.Context) error {
	exists, err := m.client.BucketExists(ctx, m.bucket)
	if err != nil {
		return fmt.Errorf("failed to check bucket existence: %w", err)
	}
	if exists {
		return nil
	}

	if err := m.client.MakeBucket(ctx, m.bucket, minio.MakeBucketOptions{}); err != nil {
		return fmt.Errorf("failed to create bucket: %w", err)
	}
	m.logger.Info("🪣 Created notes bucket", zap.String("bucket", m.bucket))
	return nil
}

// Archive uploads data under objectName and returns a presigned download URL
func (m *MinIOArchive) Archive(ctx context.Context, objectName string, data []byte, contentType string) (string, error) {
	_, err := m.client.PutObject(ctx, m.bucket, objectName, bytes.NewReader(data), int64(len(data)), minio.PutObjectOptions{
		ContentType: contentType,
	})
	if err != nil {
		return "", errors.ErrStorageFailed("upload", err)
	}

	presigned, err := m.client.PresignedGetObject(ctx, m.bucket, objectName, m.expiry, nil)
	if err != nil {
		return "", errors.ErrStorageFailed("presign", err)
	}

	m.logger.Info("📦 Notes archived",
		zap.String("object", objectName),
		zap.Int("bytes", len(data)),
	)
	return rewriteHost(presigned, m.publicURL), nil
}

// rewriteHost swaps the internal endpoint of a presigned URL for the public
// one, keeping path and signature query intact
func rewriteHost(presigned *url.URL, publicURL string) string {
	if publicURL == "" {
		return presigned.String()
	}

	public, err := url.Parse(publicURL)
	if err != nil || public.Host == "" {
		return presigned.String()
	}

	out := *presigned
	out.Scheme = public.Scheme
	out.Host = public.Host
	out.Path = strings.TrimRight(public.Path, "/") + presigned.Path
	if presigned.RawPath != "" {
		out.RawPath = strings.TrimRight(public.EscapedPath(), "/") + presigned.RawPath
	}
	return out.String()
}

// ObjectName builds notes/<yyyy>/<mm>/<dd>/<unixms>_<short-uuid>_<name>.<ext>
func ObjectName(originalFilename, ext string, now time.Time) string {
	base := strings.TrimSuffix(originalFilename, path.Ext(originalFilename))
	base = media.SanitizeFilename(base)
	if base == "" {
		base = "notes"
	}
	ext = strings.TrimPrefix(ext, ".")

	return fmt.Sprintf("notes/%s/%d_%s_%s.%s",
		now.UTC().Format("2006/01/02"),
		now.UnixMilli(),
		uuid.NewString()[:8],
		base,
		ext,
	)
}
