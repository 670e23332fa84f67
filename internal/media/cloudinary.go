package media

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path"
	"strings"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
	"github.com/mark3labs/listr/internal/config"
	"github.com/mark3labs/listr/internal/logger"
)

// CloudinaryStorage uploads images to Cloudinary. Paths are public IDs.
type CloudinaryStorage struct {
	cld    *cloudinary.Cloudinary
	folder string
}

// NewCloudinaryStorage creates a Cloudinary client from config.
func NewCloudinaryStorage(cfg config.CloudinaryConfig) (*CloudinaryStorage, error) {
	if cfg.CloudName == "" || cfg.APIKey == "" || cfg.APISecret == "" {
		return nil, errors.New("cloudinary credentials not set in configuration")
	}
	cld, err := cloudinary.NewFromParams(cfg.CloudName, cfg.APIKey, cfg.APISecret)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize cloudinary: %w", err)
	}
	cld.Config.URL.Secure = true
	return &CloudinaryStorage{cld: cld, folder: cfg.Folder}, nil
}

// Put uploads the reader. The public ID is the object name without its
// extension, placed under the configured folder.
func (s *CloudinaryStorage) Put(ctx context.Context, name string, r io.Reader) (string, error) {
	publicID := strings.TrimSuffix(name, path.Ext(name))
	result, err := s.cld.Upload.Upload(ctx, r, uploader.UploadParams{
		Folder:   s.folder,
		PublicID: publicID,
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload %s: %w", name, err)
	}
	if result.Error.Message != "" {
		return "", fmt.Errorf("failed to upload %s: %s", name, result.Error.Message)
	}
	if result.PublicID == "" {
		return "", errors.New("cloudinary returned no public id")
	}
	logger.Debug("Uploaded %s to cloudinary as %s", name, result.PublicID)
	return result.PublicID, nil
}

// Delete destroys the asset.
func (s *CloudinaryStorage) Delete(ctx context.Context, publicID string) error {
	result, err := s.cld.Upload.Destroy(ctx, uploader.DestroyParams{PublicID: publicID})
	if err != nil {
		return fmt.Errorf("failed to delete %s: %w", publicID, err)
	}
	if result.Error.Message != "" {
		return fmt.Errorf("failed to delete %s: %s", publicID, result.Error.Message)
	}
	return nil
}

// URL builds the delivery URL for a public ID.
func (s *CloudinaryStorage) URL(publicID string) (string, error) {
	img, err := s.cld.Image(publicID)
	if err != nil {
		return "", fmt.Errorf("failed to build asset for %s: %w", publicID, err)
	}
	return img.String()
}
