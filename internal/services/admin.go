package services

import (
	"context"
	"fmt"
	"log"

	"github.com/be2025/memory-wall/backend/internal/models"
	"github.com/be2025/memory-wall/backend/internal/repositories"
)

// AdminService holds the destructive maintenance operations. Nothing here is
// reachable from the normal page flow.
type AdminService struct {
	memories repositories.MemoryRepository
	cache    *FeedCache
}

// NewAdminService creates a new AdminService
func NewAdminService(memories repositories.MemoryRepository, cache *FeedCache) *AdminService {
	return &AdminService{memories: memories, cache: cache}
}

// ResetResult reports what a reset did.
type ResetResult struct {
	Deleted    int64  `json:"deleted"`
	ReseededID string `json:"reseeded_id"`
}

// Reset bulk-deletes every memory in the collection and inserts one
// replacement entry. Irreversible; intended as a one-time data-reset tool.
func (s *AdminService) Reset(ctx context.Context) (*ResetResult, error) {
	deleted, err := s.memories.DeleteAllMemories(ctx)
	if err != nil {
		return nil, fmt.Errorf("clear collection: %w", err)
	}
	log.Printf("Admin reset deleted %d memories", deleted)

	replacement := FallbackMemory()
	seed := &models.Memory{
		Title:     replacement.Title,
		Content:   replacement.Content,
		Author:    replacement.Author,
		ImageURL:  replacement.ImageURL,
		Featured:  replacement.Featured,
		Reactions: models.NewReactionCounts(),
	}
	id, err := s.memories.CreateMemory(ctx, seed)
	if err != nil {
		return nil, fmt.Errorf("reseed collection: %w", err)
	}

	s.cache.Invalidate(ctx, FirstPageCacheKey)
	return &ResetResult{Deleted: deleted, ReseededID: id}, nil
}
