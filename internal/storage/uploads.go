package storage

import (
	"context"
	"fmt"
	"net/url"
	"path"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"github.com/brookfield-academy/site-server-go/internal/config"
	"github.com/brookfield-academy/site-server-go/internal/model"
)

var imageExtensions = map[string]string{
	"image/jpeg": ".jpg",
	"image/png":  ".png",
	"image/webp": ".webp",
	"image/gif":  ".gif",
}

// ExtensionForContentType returns the file extension stored for an
// accepted image type, or false when uploads of that type are refused.
func ExtensionForContentType(contentType string) (string, bool) {
	ext, ok := imageExtensions[strings.ToLower(strings.TrimSpace(contentType))]
	return ext, ok
}

// UploadSigner issues presigned PUT URLs against an S3-compatible bucket.
type UploadSigner struct {
	client        *minio.Client
	bucket        string
	publicBaseURL string
	lifetime      time.Duration
	now           func() time.Time
}

func NewUploadSigner(cfg config.StorageConfig) (*UploadSigner, error) {
	client, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
		Region: cfg.Region,
	})
	if err != nil {
		return nil, fmt.Errorf("create storage client: %w", err)
	}

	publicBaseURL := strings.TrimRight(cfg.PublicBaseURL, "/")
	if publicBaseURL == "" {
		scheme := "http"
		if cfg.UseSSL {
			scheme = "https"
		}
		publicBaseURL = fmt.Sprintf("%s://%s/%s", scheme, cfg.Endpoint, cfg.Bucket)
	}

	return &UploadSigner{
		client:        client,
		bucket:        cfg.Bucket,
		publicBaseURL: publicBaseURL,
		lifetime:      config.UploadURLLifetime,
		now:           time.Now,
	}, nil
}

func (s *UploadSigner) SignUpload(ctx context.Context, contentType string) (*model.UploadHandle, error) {
	ext, ok := ExtensionForContentType(contentType)
	if !ok {
		return nil, fmt.Errorf("unsupported content type %q", contentType)
	}

	now := s.now()
	objectKey := path.Join("gallery", now.UTC().Format("2006/01"), uuid.NewString()+ext)

	u, err := s.client.PresignedPutObject(ctx, s.bucket, objectKey, s.lifetime)
	if err != nil {
		return nil, fmt.Errorf("presign upload: %w", err)
	}

	return &model.UploadHandle{
		UploadURL: u.String(),
		PublicURL: s.publicBaseURL + "/" + (&url.URL{Path: objectKey}).EscapedPath(),
		ObjectKey: objectKey,
		ExpiresAt: now.Add(s.lifetime),
	}, nil
}
