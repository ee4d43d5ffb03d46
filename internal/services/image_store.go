package services

import (
	"context"
	"encoding/base64"
	"fmt"
	"log"
)

// ImageStore persists a normalized image and returns a reference the memory
// record can carry: either a remote-fetchable URL or an inline encoded
// payload, depending on the configured medium.
type ImageStore interface {
	StoreImage(ctx context.Context, data []byte, mimeType, filename string) (string, error)
	Medium() string
}

// InlineImageStore keeps images inside the memory document itself as a
// self-describing data URI. The document store caps record size, so images
// that encode past the ceiling get one extra shrink pass; the outcome of
// that pass is advisory, not a guarantee.
type InlineImageStore struct {
	normalizer *ImageNormalizer
}

// NewInlineImageStore creates a new InlineImageStore
func NewInlineImageStore(normalizer *ImageNormalizer) *InlineImageStore {
	return &InlineImageStore{normalizer: normalizer}
}

// Medium identifies the storage medium
func (s *InlineImageStore) Medium() string { return "inline" }

// StoreImage encodes the image as a data URI, shrinking it once more if the
// encoded form would exceed the per-record ceiling.
func (s *InlineImageStore) StoreImage(ctx context.Context, data []byte, mimeType, filename string) (string, error) {
	encoded := base64.StdEncoding.EncodeToString(data)
	if len(encoded) > InlineCeilingChars {
		log.Printf("Inline image %q exceeds the record ceiling, applying shrink pass", filename)
		data = s.normalizer.ReduceToFit(data, InlineCeilingChars)
		mimeType = "image/jpeg"
		encoded = base64.StdEncoding.EncodeToString(data)
		if len(encoded) > InlineCeilingChars {
			log.Printf("Inline image %q still exceeds the ceiling after shrinking; storing anyway", filename)
		}
	}
	return fmt.Sprintf("data:%s;base64,%s", mimeType, encoded), nil
}
