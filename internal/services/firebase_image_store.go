package services

import (
	"context"
	"fmt"
	"time"

	gcs "cloud.google.com/go/storage"
)

// FirebaseImageStore uploads images to the app's Firebase Storage bucket and
// returns a public download URL, mirroring how the wall's web client stored
// photos.
type FirebaseImageStore struct {
	bucket *gcs.BucketHandle
}

// NewFirebaseImageStore creates a new FirebaseImageStore
func NewFirebaseImageStore(bucket *gcs.BucketHandle) *FirebaseImageStore {
	return &FirebaseImageStore{bucket: bucket}
}

// Medium identifies the storage medium
func (s *FirebaseImageStore) Medium() string { return "firebase" }

// StoreImage writes the image under memory_images/ with a timestamped name
// and makes it publicly readable.
func (s *FirebaseImageStore) StoreImage(ctx context.Context, data []byte, mimeType, filename string) (string, error) {
	object := s.bucket.Object(fmt.Sprintf("memory_images/%d_%s", time.Now().UnixMilli(), filename))

	w := object.NewWriter(ctx)
	w.ContentType = mimeType
	if _, err := w.Write(data); err != nil {
		w.Close()
		return "", fmt.Errorf("failed to upload image: %w", err)
	}
	if err := w.Close(); err != nil {
		return "", fmt.Errorf("failed to upload image: %w", err)
	}

	if err := object.ACL().Set(ctx, gcs.AllUsers, gcs.RoleReader); err != nil {
		return "", fmt.Errorf("failed to publish image: %w", err)
	}

	return fmt.Sprintf("https://storage.googleapis.com/%s/%s", object.BucketName(), object.ObjectName()), nil
}
