package repositories

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/be2025/memory-wall/backend/internal/models"
)

// ReactionRecordStore holds each client's one active reaction per memory. It
// is injected rather than reached through a singleton so tests can swap in a
// double.
type ReactionRecordStore interface {
	// GetReaction returns the client's current reaction kind on a memory,
	// or "" when the client has none.
	GetReaction(ctx context.Context, clientID, memoryID string) (models.ReactionKind, error)
	// SetReaction records kind as the client's active reaction, replacing
	// any previous one.
	SetReaction(ctx context.Context, clientID, memoryID string, kind models.ReactionKind) error
	// ClearReaction removes the client's active reaction, if any.
	ClearReaction(ctx context.Context, clientID, memoryID string) error
}

// PostgresReactionRecordRepository implements ReactionRecordStore for PostgreSQL
type PostgresReactionRecordRepository struct {
	db *gorm.DB
}

// NewPostgresReactionRecordRepository creates a new PostgresReactionRecordRepository
func NewPostgresReactionRecordRepository(db *gorm.DB) *PostgresReactionRecordRepository {
	return &PostgresReactionRecordRepository{db: db}
}

// GetReaction retrieves the client's active reaction on a memory
func (r *PostgresReactionRecordRepository) GetReaction(ctx context.Context, clientID, memoryID string) (models.ReactionKind, error) {
	var record models.ReactionRecord
	err := r.db.WithContext(ctx).
		Where("client_id = ? AND memory_id = ?", clientID, memoryID).
		First(&record).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", nil
		}
		return "", err
	}
	return models.ReactionKind(record.Kind), nil
}

// SetReaction upserts the client's active reaction on a memory
func (r *PostgresReactionRecordRepository) SetReaction(ctx context.Context, clientID, memoryID string, kind models.ReactionKind) error {
	record := models.ReactionRecord{
		ClientID: clientID,
		MemoryID: memoryID,
		Kind:     string(kind),
	}
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "client_id"}, {Name: "memory_id"}},
			DoUpdates: clause.AssignmentColumns([]string{"kind", "updated_at"}),
		}).
		Create(&record).Error
}

// ClearReaction deletes the client's active reaction on a memory
func (r *PostgresReactionRecordRepository) ClearReaction(ctx context.Context, clientID, memoryID string) error {
	return r.db.WithContext(ctx).
		Where("client_id = ? AND memory_id = ?", clientID, memoryID).
		Delete(&models.ReactionRecord{}).Error
}
