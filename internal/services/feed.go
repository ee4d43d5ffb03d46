package services

import (
	"context"
	"log"
	"sort"

	"github.com/be2025/memory-wall/backend/internal/models"
	"github.com/be2025/memory-wall/backend/internal/repositories"
)

// StoriesLimit caps the story sequence at the most recent image-carrying
// entries.
const StoriesLimit = 8

// storiesMaxPages bounds how deep the story scan pages into the feed.
const storiesMaxPages = 5

// FeedPage is one page of the wall plus the cursor for the next one. An
// empty cursor means the feed is exhausted.
type FeedPage struct {
	Entries    []models.Memory `json:"entries"`
	NextCursor string          `json:"next_cursor,omitempty"`
}

// FeedService drives the paginated wall and the story sequence over the same
// remote collection.
type FeedService struct {
	memories repositories.MemoryRepository
	cache    *FeedCache
}

// NewFeedService creates a new FeedService
func NewFeedService(memories repositories.MemoryRepository, cache *FeedCache) *FeedService {
	return &FeedService{memories: memories, cache: cache}
}

// LoadInitial fetches the first feed page. A read failure or an empty
// collection degrades to the fixed fallback entry instead of an error or a
// blank wall.
func (f *FeedService) LoadInitial(ctx context.Context) (FeedPage, error) {
	var page FeedPage
	if f.cache.Get(ctx, FirstPageCacheKey, &page) {
		return page, nil
	}

	entries, nextCursor, err := f.memories.ListMemories(ctx, "", repositories.MemoriesPerPage)
	if err != nil {
		log.Printf("First feed page unavailable, serving fallback entry: %v", err)
		return FeedPage{Entries: []models.Memory{FallbackMemory()}}, nil
	}
	if len(entries) == 0 {
		return FeedPage{Entries: []models.Memory{FallbackMemory()}}, nil
	}

	page = FeedPage{Entries: DisplayOrder(entries), NextCursor: nextCursor}
	f.cache.Set(ctx, FirstPageCacheKey, page)
	return page, nil
}

// LoadMore fetches the page after cursor. With no cursor the feed end was
// already reached and an empty page comes back. Unlike the first page, a
// failure here surfaces so already-loaded entries stay intact client-side.
func (f *FeedService) LoadMore(ctx context.Context, cursor string) (FeedPage, error) {
	if cursor == "" {
		return FeedPage{Entries: []models.Memory{}}, nil
	}
	entries, nextCursor, err := f.memories.ListMemories(ctx, cursor, repositories.MemoriesPerPage)
	if err != nil {
		return FeedPage{}, err
	}
	return FeedPage{Entries: DisplayOrder(entries), NextCursor: nextCursor}, nil
}

// Stories returns the story sequence: only entries carrying an image, capped
// at the StoriesLimit most recent, newest first.
func (f *FeedService) Stories(ctx context.Context) ([]models.Memory, error) {
	stories := make([]models.Memory, 0, StoriesLimit)
	cursor := ""
	for page := 0; page < storiesMaxPages; page++ {
		entries, nextCursor, err := f.memories.ListMemories(ctx, cursor, repositories.MemoriesPerPage)
		if err != nil {
			return nil, err
		}
		for _, m := range entries {
			if m.ImageURL == "" {
				continue
			}
			stories = append(stories, m)
			if len(stories) == StoriesLimit {
				return stories, nil
			}
		}
		if nextCursor == "" {
			break
		}
		cursor = nextCursor
	}
	return stories, nil
}

// DisplayOrder sorts entries for rendering: featured entries first, then by
// recency. The sort is stable, so entries with equal keys keep their
// storage order.
func DisplayOrder(entries []models.Memory) []models.Memory {
	out := make([]models.Memory, len(entries))
	copy(out, entries)
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Featured != out[j].Featured {
			return out[i].Featured
		}
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out
}
