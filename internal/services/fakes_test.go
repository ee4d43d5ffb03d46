package services

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/be2025/memory-wall/backend/internal/models"
	"github.com/be2025/memory-wall/backend/internal/repositories"
)

var fakeEpoch = time.Date(2025, 5, 1, 12, 0, 0, 0, time.UTC)

// fakeMemoryRepo is an in-memory MemoryRepository with the same cursor and
// ordering semantics as the real backends.
type fakeMemoryRepo struct {
	mu       sync.Mutex
	memories []models.Memory
	seq      int

	createErr error
	listErr   error
	reactErr  error
}

func (f *fakeMemoryRepo) CreateMemory(ctx context.Context, memory *models.Memory) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.createErr != nil {
		return "", &repositories.WriteError{Err: f.createErr}
	}
	f.seq++
	memory.ID = fmt.Sprintf("mem-%03d", f.seq)
	memory.CreatedAt = fakeEpoch.Add(time.Duration(f.seq) * time.Minute)
	memory.Reactions = memory.Reactions.Normalize()
	f.memories = append(f.memories, *memory)
	return memory.ID, nil
}

func (f *fakeMemoryRepo) GetMemoryByID(ctx context.Context, id string) (*models.Memory, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, m := range f.memories {
		if m.ID == id {
			out := m
			return &out, nil
		}
	}
	return nil, repositories.ErrMemoryNotFound
}

func (f *fakeMemoryRepo) ListMemories(ctx context.Context, cursor string, limit int) ([]models.Memory, string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.listErr != nil {
		return nil, "", &repositories.ReadError{Err: f.listErr}
	}

	sorted := make([]models.Memory, len(f.memories))
	copy(sorted, f.memories)
	sort.Slice(sorted, func(i, j int) bool {
		if !sorted[i].CreatedAt.Equal(sorted[j].CreatedAt) {
			return sorted[i].CreatedAt.After(sorted[j].CreatedAt)
		}
		return sorted[i].ID > sorted[j].ID
	})

	start := 0
	if cursor != "" {
		createdAt, id, err := repositories.DecodeCursor(cursor)
		if err != nil {
			return nil, "", &repositories.ReadError{Err: err}
		}
		for i, m := range sorted {
			if m.CreatedAt.Equal(createdAt) && m.ID == id {
				start = i + 1
				break
			}
		}
	}

	end := start + limit
	if end > len(sorted) {
		end = len(sorted)
	}
	page := sorted[start:end]

	nextCursor := ""
	if len(page) == limit {
		last := page[len(page)-1]
		nextCursor = repositories.EncodeCursor(last.CreatedAt, last.ID)
	}
	return page, nextCursor, nil
}

func (f *fakeMemoryRepo) ApplyReaction(ctx context.Context, memoryID string, inc, dec models.ReactionKind) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.reactErr != nil {
		return &repositories.ReactionError{Err: f.reactErr}
	}
	for i := range f.memories {
		if f.memories[i].ID != memoryID {
			continue
		}
		counts := f.memories[i].Reactions.Normalize()
		if dec != "" && counts[string(dec)] > 0 {
			counts[string(dec)]--
		}
		if inc != "" {
			counts[string(inc)]++
		}
		f.memories[i].Reactions = counts
		return nil
	}
	return repositories.ErrMemoryNotFound
}

func (f *fakeMemoryRepo) DeleteAllMemories(ctx context.Context) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	n := int64(len(f.memories))
	f.memories = nil
	return n, nil
}

func (f *fakeMemoryRepo) counts(id string) models.ReactionCounts {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, m := range f.memories {
		if m.ID == id {
			return m.Reactions.Normalize()
		}
	}
	return nil
}

// fakeRecordStore is an in-memory ReactionRecordStore.
type fakeRecordStore struct {
	mu      sync.Mutex
	records map[string]models.ReactionKind
	err     error
}

func newFakeRecordStore() *fakeRecordStore {
	return &fakeRecordStore{records: make(map[string]models.ReactionKind)}
}

func recordKey(clientID, memoryID string) string { return clientID + "/" + memoryID }

func (f *fakeRecordStore) GetReaction(ctx context.Context, clientID, memoryID string) (models.ReactionKind, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return "", f.err
	}
	return f.records[recordKey(clientID, memoryID)], nil
}

func (f *fakeRecordStore) SetReaction(ctx context.Context, clientID, memoryID string, kind models.ReactionKind) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return f.err
	}
	f.records[recordKey(clientID, memoryID)] = kind
	return nil
}

func (f *fakeRecordStore) ClearReaction(ctx context.Context, clientID, memoryID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return f.err
	}
	delete(f.records, recordKey(clientID, memoryID))
	return nil
}

// fakeImageStore returns a canned URL or error.
type fakeImageStore struct {
	url string
	err error
}

func (f *fakeImageStore) StoreImage(ctx context.Context, data []byte, mimeType, filename string) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	if f.url != "" {
		return f.url, nil
	}
	return "https://img.example.com/" + filename, nil
}

func (f *fakeImageStore) Medium() string { return "fake" }

// recordingNotifier captures published notifications for assertions.
type recordingNotifier struct {
	mu     sync.Mutex
	events []Notification
}

func (r *recordingNotifier) Publish(n Notification) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, n)
}

func (r *recordingNotifier) byEvent(event string) []Notification {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []Notification
	for _, n := range r.events {
		if n.Event == event {
			out = append(out, n)
		}
	}
	return out
}

var errRemoteDown = errors.New("remote store unavailable")
