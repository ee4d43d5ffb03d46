package repositories

import (
	"context"

	"github.com/be2025/memory-wall/backend/internal/models"
)

// MemoriesPerPage is the fixed page size for listing memories.
const MemoriesPerPage = 8

// MemoryRepository defines the interface for memory data operations. The
// cursor returned by ListMemories is opaque; an empty next cursor means the
// feed is exhausted.
type MemoryRepository interface {
	// CreateMemory writes one new record, assigns its id and creation time,
	// and returns the id. Two calls with identical fields produce two
	// distinct records.
	CreateMemory(ctx context.Context, memory *models.Memory) (string, error)

	// GetMemoryByID retrieves a single memory.
	GetMemoryByID(ctx context.Context, id string) (*models.Memory, error)

	// ListMemories returns up to limit memories ordered by createdAt
	// descending, starting after the given cursor ("" for the first page).
	// The next cursor is "" when the page came back short or empty.
	ListMemories(ctx context.Context, cursor string, limit int) ([]models.Memory, string, error)

	// ApplyReaction atomically adjusts reaction counts on one memory:
	// inc is incremented by 1 and dec decremented by 1, floored at zero.
	// Either kind may be empty to skip that half of the adjustment.
	ApplyReaction(ctx context.Context, memoryID string, inc, dec models.ReactionKind) error

	// DeleteAllMemories removes every record in the collection and returns
	// how many were deleted. Admin reset only.
	DeleteAllMemories(ctx context.Context) (int64, error)
}
