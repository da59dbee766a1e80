package upload

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/gabriel-vasile/mimetype"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/sosiol/sosiol/internal/domain"
	"github.com/sosiol/sosiol/internal/logger"
)

const (
	PROVIDER_LOCAL      = "local"
	PROVIDER_CLOUDFLARE = "cloudflare"

	DEFAULT_MAX_SIZE = 5 << 20
)

// Storage persists an uploaded object and returns its public URL
//
//go:generate mockgen -source=upload.go -destination=../mocks/upload_storage.go -package=mocks -mock_names=Storage=MockUploadStorage
type Storage interface {
	// Save stores data under name and returns the URL it is served from
	Save(ctx context.Context, name string, contentType string, data []byte) (string, error)

	// Name returns the storage provider name
	Name() string
}

// Uploader validates uploaded images before handing them to a Storage
type Uploader struct {
	storage Storage
	maxSize int64
}

// NewUploader creates an uploader that accepts images up to maxSize bytes
func NewUploader(storage Storage, maxSize int64) *Uploader {
	if maxSize <= 0 {
		maxSize = DEFAULT_MAX_SIZE
	}
	return &Uploader{storage: storage, maxSize: maxSize}
}

// MaxSize returns the largest accepted upload in bytes
func (u *Uploader) MaxSize() int64 {
	return u.maxSize
}

// UploadImage reads the image, checks its size and sniffed content type and stores it
// under a random name. Returns domain.ErrFileTooLarge or domain.ErrUnsupportedMediaType
// when the content is rejected.
func (u *Uploader) UploadImage(ctx context.Context, r io.Reader) (string, error) {
	// One byte past the limit marks the file as oversized
	data, err := io.ReadAll(io.LimitReader(r, u.maxSize+1))
	if err != nil {
		return "", fmt.Errorf("failed to read upload: %w", err)
	}
	if int64(len(data)) > u.maxSize {
		return "", domain.ErrFileTooLarge
	}
	if len(data) == 0 {
		return "", domain.ErrUnsupportedMediaType
	}

	mtype := mimetype.Detect(data)
	if !strings.HasPrefix(mtype.String(), "image/") {
		logger.WarnCtx(ctx, "Rejected upload with non-image content", zap.String("mimeType", mtype.String()))
		return "", domain.ErrUnsupportedMediaType
	}

	name := uuid.New().String() + mtype.Extension()
	url, err := u.storage.Save(ctx, name, mtype.String(), data)
	if err != nil {
		return "", fmt.Errorf("failed to save upload to %s: %w", u.storage.Name(), err)
	}

	logger.InfoCtx(ctx, "Stored uploaded image",
		zap.String("provider", u.storage.Name()),
		zap.String("name", name),
		zap.String("mimeType", mtype.String()),
		zap.Int("size", len(data)),
	)

	return url, nil
}
