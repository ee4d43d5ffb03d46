package services

import (
	"context"
	"log"

	"github.com/be2025/memory-wall/backend/internal/models"
	"github.com/be2025/memory-wall/backend/internal/repositories"
)

// AckPolicy decides when the submitter gets their answer relative to the
// network work, the same trade-off the web client made about closing the
// submit dialog.
type AckPolicy string

const (
	// AckOnComplete answers only after the write finished. The default.
	AckOnComplete AckPolicy = "complete"
	// AckImmediate answers right away and finishes in the background;
	// the outcome arrives through the notification stream.
	AckImmediate AckPolicy = "immediate"
)

// ParseAckPolicy maps a config value onto a policy, defaulting to complete.
func ParseAckPolicy(s string) AckPolicy {
	if AckPolicy(s) == AckImmediate {
		return AckImmediate
	}
	return AckOnComplete
}

// SubmittedImage is the raw photo attached to a submission.
type SubmittedImage struct {
	Data     []byte
	MIME     string
	Filename string
}

// SubmissionService orchestrates one memory submission: normalize the photo
// if there is one, store it, then persist the entry. An image problem never
// loses the submitter's text: the workflow continues without the photo.
type SubmissionService struct {
	memories   repositories.MemoryRepository
	normalizer *ImageNormalizer
	images     ImageStore
	cache      *FeedCache
	notifier   Notifier
	policy     AckPolicy
}

// NewSubmissionService creates a new SubmissionService
func NewSubmissionService(
	memories repositories.MemoryRepository,
	normalizer *ImageNormalizer,
	images ImageStore,
	cache *FeedCache,
	notifier Notifier,
	policy AckPolicy,
) *SubmissionService {
	return &SubmissionService{
		memories:   memories,
		normalizer: normalizer,
		images:     images,
		cache:      cache,
		notifier:   notifier,
		policy:     policy,
	}
}

// Policy returns the configured acknowledgement policy.
func (s *SubmissionService) Policy() AckPolicy { return s.policy }

// Submit runs the full submission workflow. Field validation already
// happened at the edge; nothing here contacts the remote store on invalid
// input.
func (s *SubmissionService) Submit(ctx context.Context, req models.CreateMemoryRequest, img *SubmittedImage) (*models.Memory, error) {
	var imageURL string
	if img != nil {
		normalized := s.normalizer.Normalize(img.Data, img.MIME)
		url, err := s.images.StoreImage(ctx, normalized.Data, normalized.MIME, img.Filename)
		if err != nil {
			// Non-fatal: keep the memory, drop the photo.
			log.Printf("Image upload failed, saving memory without it: %v", err)
			s.notifier.Publish(Notification{
				Level:   "error",
				Event:   "image.upload_failed",
				Message: "We couldn't upload your image, but we can still save your memory without it.",
			})
		} else {
			imageURL = url
		}
	}

	memory := &models.Memory{
		Title:     req.Title,
		Content:   req.Content,
		Author:    req.Author,
		ImageURL:  imageURL,
		Featured:  models.ComputeFeatured(imageURL != "", req.Title, req.Content),
		Reactions: models.NewReactionCounts(),
	}

	if _, err := s.memories.CreateMemory(ctx, memory); err != nil {
		s.notifier.Publish(Notification{
			Level:   "error",
			Event:   "memory.save_failed",
			Message: "There was a problem saving your memory. Please try again.",
		})
		return nil, err
	}

	s.cache.Invalidate(ctx, FirstPageCacheKey)
	s.notifier.Publish(Notification{
		Level:   "success",
		Event:   "memory.saved",
		Message: "Your memory has been saved",
	})
	return memory, nil
}
