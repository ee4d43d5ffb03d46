package repositories

import (
	"context"
	"fmt"
	"time"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/be2025/memory-wall/backend/internal/models"
)

// FirestoreMemoryRepository implements MemoryRepository on Cloud Firestore,
// the store the memory wall was originally built against.
type FirestoreMemoryRepository struct {
	client     *firestore.Client
	collection string
}

// NewFirestoreMemoryRepository creates a new FirestoreMemoryRepository
func NewFirestoreMemoryRepository(client *firestore.Client) *FirestoreMemoryRepository {
	return &FirestoreMemoryRepository{client: client, collection: "memories"}
}

// memoryDoc mirrors a memory record as stored in Firestore.
type memoryDoc struct {
	Title     string           `firestore:"title"`
	Content   string           `firestore:"content"`
	Author    string           `firestore:"author"`
	ImageURL  string           `firestore:"imageUrl"`
	CreatedAt time.Time        `firestore:"createdAt"`
	Featured  bool             `firestore:"featured"`
	Reactions map[string]int64 `firestore:"reactions"`
}

func (d *memoryDoc) toModel(id string) models.Memory {
	return models.Memory{
		ID:        id,
		Title:     d.Title,
		Content:   d.Content,
		Author:    d.Author,
		ImageURL:  d.ImageURL,
		CreatedAt: d.CreatedAt,
		Featured:  d.Featured,
		Reactions: models.ReactionCounts(d.Reactions).Normalize(),
	}
}

// CreateMemory writes a new memory document. The creation timestamp is
// assigned by Firestore's server clock so feed ordering stays monotonic
// regardless of client clock skew. The image field is omitted entirely when
// no image was supplied.
func (r *FirestoreMemoryRepository) CreateMemory(ctx context.Context, memory *models.Memory) (string, error) {
	data := map[string]interface{}{
		"title":     memory.Title,
		"content":   memory.Content,
		"author":    memory.Author,
		"createdAt": firestore.ServerTimestamp,
		"featured":  memory.Featured,
		"reactions": memory.Reactions.Normalize(),
	}
	if memory.ImageURL != "" {
		data["imageUrl"] = memory.ImageURL
	}

	ref := r.client.Collection(r.collection).NewDoc()
	if _, err := ref.Create(ctx, data); err != nil {
		return "", &WriteError{Err: err}
	}

	// Read the document back so the caller sees the server-assigned timestamp.
	snap, err := ref.Get(ctx)
	if err == nil {
		var doc memoryDoc
		if err := snap.DataTo(&doc); err == nil {
			memory.CreatedAt = doc.CreatedAt
		}
	}
	memory.ID = ref.ID
	return ref.ID, nil
}

// GetMemoryByID retrieves a memory document by id
func (r *FirestoreMemoryRepository) GetMemoryByID(ctx context.Context, id string) (*models.Memory, error) {
	snap, err := r.client.Collection(r.collection).Doc(id).Get(ctx)
	if err != nil {
		// Only a NotFound status means the document is absent; any other
		// error (deadline, transport, permissions) leaves snap nil.
		if status.Code(err) == codes.NotFound {
			return nil, ErrMemoryNotFound
		}
		return nil, &ReadError{Err: err}
	}
	var doc memoryDoc
	if err := snap.DataTo(&doc); err != nil {
		return nil, &ReadError{Err: err}
	}
	memory := doc.toModel(snap.Ref.ID)
	return &memory, nil
}

// ListMemories pages through the collection newest-first. The document id is
// a secondary sort key so the cursor is unambiguous for equal timestamps.
func (r *FirestoreMemoryRepository) ListMemories(ctx context.Context, cursor string, limit int) ([]models.Memory, string, error) {
	q := r.client.Collection(r.collection).
		OrderBy("createdAt", firestore.Desc).
		OrderBy(firestore.DocumentID, firestore.Desc).
		Limit(limit)

	if cursor != "" {
		createdAt, id, err := DecodeCursor(cursor)
		if err != nil {
			return nil, "", &ReadError{Err: err}
		}
		q = q.StartAfter(createdAt, id)
	}

	memories := make([]models.Memory, 0, limit)
	it := q.Documents(ctx)
	defer it.Stop()
	for {
		snap, err := it.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, "", &ReadError{Err: err}
		}
		var doc memoryDoc
		if err := snap.DataTo(&doc); err != nil {
			return nil, "", &ReadError{Err: err}
		}
		memories = append(memories, doc.toModel(snap.Ref.ID))
	}

	// A short page means there is nothing further to fetch.
	nextCursor := ""
	if len(memories) == limit {
		last := memories[len(memories)-1]
		nextCursor = EncodeCursor(last.CreatedAt, last.ID)
	}
	return memories, nextCursor, nil
}

// ApplyReaction adjusts reaction counts inside a Firestore transaction so
// concurrent reactors on the same memory cannot lose updates. Decrements are
// floored at zero; that floor is the only guard against a stale client record
// double-decrementing a count.
func (r *FirestoreMemoryRepository) ApplyReaction(ctx context.Context, memoryID string, inc, dec models.ReactionKind) error {
	ref := r.client.Collection(r.collection).Doc(memoryID)
	err := r.client.RunTransaction(ctx, func(ctx context.Context, tx *firestore.Transaction) error {
		snap, err := tx.Get(ref)
		if err != nil {
			if status.Code(err) == codes.NotFound {
				return ErrMemoryNotFound
			}
			return err
		}
		var doc memoryDoc
		if err := snap.DataTo(&doc); err != nil {
			return err
		}
		counts := models.ReactionCounts(doc.Reactions).Normalize()
		if dec != "" && counts[string(dec)] > 0 {
			counts[string(dec)]--
		}
		if inc != "" {
			counts[string(inc)]++
		}
		return tx.Update(ref, []firestore.Update{{Path: "reactions", Value: counts}})
	})
	if err == nil {
		return nil
	}
	if err == ErrMemoryNotFound {
		return ErrMemoryNotFound
	}
	return &ReactionError{Err: err}
}

// DeleteAllMemories wipes the collection with a bulk writer. Destructive,
// used only by the admin reset path.
func (r *FirestoreMemoryRepository) DeleteAllMemories(ctx context.Context) (int64, error) {
	bw := r.client.BulkWriter(ctx)
	var deleted int64

	it := r.client.Collection(r.collection).Documents(ctx)
	defer it.Stop()
	for {
		snap, err := it.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			bw.End()
			return deleted, &WriteError{Err: err}
		}
		if _, err := bw.Delete(snap.Ref); err != nil {
			bw.End()
			return deleted, &WriteError{Err: fmt.Errorf("queue delete for %s: %w", snap.Ref.ID, err)}
		}
		deleted++
	}
	bw.End()
	return deleted, nil
}
