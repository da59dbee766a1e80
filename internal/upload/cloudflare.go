package upload

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"path"

	"github.com/cloudflare/cloudflare-go"

	"github.com/sosiol/sosiol/internal/adapter"
)

const CLOUDFLARE_PUBLIC_VARIANT = "public"

// CloudflareStorage uploads images to Cloudflare Images
type CloudflareStorage struct {
	cfClient adapter.CloudflareClient
	rc       *cloudflare.ResourceContainer
}

// NewCloudflareStorage creates a Cloudflare Images storage for the account
func NewCloudflareStorage(cfClient adapter.CloudflareClient, accountID string) *CloudflareStorage {
	return &CloudflareStorage{
		cfClient: cfClient,
		rc: &cloudflare.ResourceContainer{
			Level:      cloudflare.AccountRouteLevel,
			Identifier: accountID,
		},
	}
}

func (s *CloudflareStorage) Save(ctx context.Context, name string, contentType string, data []byte) (string, error) {
	params := cloudflare.UploadImageParams{
		File: io.NopCloser(bytes.NewReader(data)),
		Name: name,
		Metadata: map[string]interface{}{
			"content_type": contentType,
			"purpose":      "avatar",
		},
	}

	image, err := s.cfClient.UploadImage(ctx, s.rc, params)
	if err != nil {
		return "", fmt.Errorf("failed to upload image: %w", err)
	}

	return pickVariant(image.Variants, image.ID)
}

func (s *CloudflareStorage) Name() string {
	return PROVIDER_CLOUDFLARE
}

// pickVariant prefers the public variant and falls back to the first one
// Variant URL format: https://imagedelivery.net/{account_hash}/{image_id}/{variant_name}
func pickVariant(variants []string, imageID string) (string, error) {
	for _, v := range variants {
		if path.Base(v) == CLOUDFLARE_PUBLIC_VARIANT {
			return v, nil
		}
	}
	if len(variants) > 0 {
		return variants[0], nil
	}
	return "", fmt.Errorf("image %s has no delivery variants", imageID)
}
