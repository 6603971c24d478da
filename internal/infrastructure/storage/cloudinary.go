package storage

import (
	"bytes"
	"context"
	"fmt"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
	"github.com/stunite/backend/internal/config"
)

// Uploader stores an avatar blob and returns its public URL.
type Uploader interface {
	UploadBytes(ctx context.Context, filename string, b []byte) (string, error)
}

type CloudinaryUploader struct {
	cld    *cloudinary.Cloudinary
	folder string
}

func NewCloudinaryUploader(cfg *config.StorageConfig) (*CloudinaryUploader, error) {
	if cfg.CloudinaryURL == "" {
		return nil, fmt.Errorf("cloudinary URL is missing")
	}
	cld, err := cloudinary.NewFromURL(cfg.CloudinaryURL)
	if err != nil {
		return nil, fmt.Errorf("failed to create cloudinary client: %w", err)
	}
	return &CloudinaryUploader{cld: cld, folder: cfg.AvatarFolder}, nil
}

func (u *CloudinaryUploader) UploadBytes(ctx context.Context, filename string, b []byte) (string, error) {
	res, err := u.cld.Upload.Upload(ctx, bytes.NewReader(b), uploader.UploadParams{
		Folder:       u.folder,
		PublicID:     filename,
		ResourceType: "image",
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload avatar: %w", err)
	}
	return res.SecureURL, nil
}
