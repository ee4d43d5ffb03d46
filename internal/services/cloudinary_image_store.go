package services

import (
	"context"
	"fmt"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
)

// CloudinaryImageStore uploads images to Cloudinary and returns the secure
// delivery URL. An alternative to the Firebase bucket for deployments that
// already serve media through Cloudinary's CDN.
type CloudinaryImageStore struct {
	cld    *cloudinary.Cloudinary
	folder string
}

// NewCloudinaryImageStore creates a new CloudinaryImageStore
func NewCloudinaryImageStore(cloudName, apiKey, apiSecret string) (*CloudinaryImageStore, error) {
	cld, err := cloudinary.NewFromParams(cloudName, apiKey, apiSecret)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize Cloudinary: %w", err)
	}
	return &CloudinaryImageStore{cld: cld, folder: "memory_images"}, nil
}

// Medium identifies the storage medium
func (s *CloudinaryImageStore) Medium() string { return "cloudinary" }

// StoreImage uploads the image bytes to the memory_images folder.
func (s *CloudinaryImageStore) StoreImage(ctx context.Context, data []byte, mimeType, filename string) (string, error) {
	result, err := s.cld.Upload.Upload(ctx, data, uploader.UploadParams{
		Folder:       s.folder,
		ResourceType: "image",
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload to Cloudinary: %w", err)
	}
	return result.SecureURL, nil
}
