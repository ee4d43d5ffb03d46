package models

import "gorm.io/gorm"

// ReactionKind is one of the fixed set of reactions a memory can receive
type ReactionKind string

const (
	ReactionLike  ReactionKind = "like"
	ReactionLove  ReactionKind = "love"
	ReactionLaugh ReactionKind = "laugh"
	ReactionWow   ReactionKind = "wow"
	ReactionSad   ReactionKind = "sad"
)

// ReactionKinds returns every valid kind, in display order.
func ReactionKinds() []ReactionKind {
	return []ReactionKind{ReactionLike, ReactionLove, ReactionLaugh, ReactionWow, ReactionSad}
}

// Valid reports whether k is one of the five known kinds.
func (k ReactionKind) Valid() bool {
	switch k {
	case ReactionLike, ReactionLove, ReactionLaugh, ReactionWow, ReactionSad:
		return true
	}
	return false
}

// ReactionCounts maps each reaction kind to its count. All five keys are
// always present and counts never go below zero.
type ReactionCounts map[string]int64

// NewReactionCounts returns an all-zero counts map with every kind present.
func NewReactionCounts() ReactionCounts {
	counts := make(ReactionCounts, len(ReactionKinds()))
	for _, k := range ReactionKinds() {
		counts[string(k)] = 0
	}
	return counts
}

// Normalize fills in missing kinds and clamps negative counts to zero so a
// record read back from storage always satisfies the counts invariant.
func (c ReactionCounts) Normalize() ReactionCounts {
	out := NewReactionCounts()
	for _, k := range ReactionKinds() {
		if v, ok := c[string(k)]; ok && v > 0 {
			out[string(k)] = v
		}
	}
	return out
}

// ReactionRecord stores the one active reaction a client holds on a memory.
// There is at most one row per (client, memory) pair.
type ReactionRecord struct {
	gorm.Model
	ClientID string `json:"client_id" gorm:"index:idx_client_memory,unique"`
	MemoryID string `json:"memory_id" gorm:"index:idx_client_memory,unique"`
	Kind     string `json:"kind"`
}

// ReactRequest defines the request body for reacting to a memory
type ReactRequest struct {
	Kind string `json:"kind" validate:"required,oneof=like love laugh wow sad"`
}
