package services

import (
	"context"
	"fmt"

	"github.com/be2025/memory-wall/backend/internal/models"
	"github.com/be2025/memory-wall/backend/internal/repositories"
)

// ReactionLedger enforces the one-active-reaction-per-client rule over a
// memory's counts. Remote counts move inside the repository's atomic
// mutation; the client's record is only persisted after the remote write
// succeeds, so a failed attempt leaves both sides untouched.
type ReactionLedger struct {
	memories repositories.MemoryRepository
	records  repositories.ReactionRecordStore
	notifier Notifier
}

// NewReactionLedger creates a new ReactionLedger
func NewReactionLedger(memories repositories.MemoryRepository, records repositories.ReactionRecordStore, notifier Notifier) *ReactionLedger {
	return &ReactionLedger{memories: memories, records: records, notifier: notifier}
}

// React applies one reaction action for a client on a memory and returns the
// client's resulting reaction ("" after a toggle-off):
//   - no current reaction: the kind's count goes up by one.
//   - same kind as current: toggle off, the count goes back down.
//   - different kind: the old count goes down, the new one up, in one
//     atomic remote mutation.
func (l *ReactionLedger) React(ctx context.Context, clientID, memoryID string, kind models.ReactionKind) (models.ReactionKind, error) {
	if !kind.Valid() {
		return "", fmt.Errorf("unknown reaction kind %q", kind)
	}

	current, err := l.records.GetReaction(ctx, clientID, memoryID)
	if err != nil {
		return "", fmt.Errorf("load reaction record: %w", err)
	}

	var inc, dec models.ReactionKind
	var next models.ReactionKind
	switch current {
	case "":
		inc, next = kind, kind
	case kind:
		dec, next = kind, ""
	default:
		inc, dec, next = kind, current, kind
	}

	if err := l.memories.ApplyReaction(ctx, memoryID, inc, dec); err != nil {
		l.notifier.Publish(Notification{
			Level:   "error",
			Event:   "reaction.failed",
			Message: "Failed to add reaction. Please try again.",
		})
		return current, err
	}

	if next == "" {
		err = l.records.ClearReaction(ctx, clientID, memoryID)
	} else {
		err = l.records.SetReaction(ctx, clientID, memoryID, next)
	}
	if err != nil {
		// The remote counts already moved; report but do not undo.
		return next, fmt.Errorf("persist reaction record: %w", err)
	}

	return next, nil
}

// CurrentReaction returns the client's active reaction on a memory, or ""
// when there is none.
func (l *ReactionLedger) CurrentReaction(ctx context.Context, clientID, memoryID string) (models.ReactionKind, error) {
	return l.records.GetReaction(ctx, clientID, memoryID)
}
