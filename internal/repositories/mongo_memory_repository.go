package repositories

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/be2025/memory-wall/backend/internal/models"
)

// MongoMemoryRepository implements MemoryRepository for MongoDB, as an
// alternative to the Firestore backend.
type MongoMemoryRepository struct {
	collection *mongo.Collection
}

// NewMongoMemoryRepository creates a new MongoMemoryRepository
func NewMongoMemoryRepository(db *mongo.Database) *MongoMemoryRepository {
	return &MongoMemoryRepository{collection: db.Collection("memories")}
}

// CreateMemory creates a new memory in MongoDB. MongoDB has no server-assigned
// document timestamp, so creation time comes from this process's clock.
func (r *MongoMemoryRepository) CreateMemory(ctx context.Context, memory *models.Memory) (string, error) {
	memory.ID = primitive.NewObjectID().Hex()
	memory.CreatedAt = time.Now().UTC()
	memory.Reactions = memory.Reactions.Normalize()

	if _, err := r.collection.InsertOne(ctx, memory); err != nil {
		return "", &WriteError{Err: err}
	}
	return memory.ID, nil
}

// GetMemoryByID retrieves a memory by id from MongoDB
func (r *MongoMemoryRepository) GetMemoryByID(ctx context.Context, id string) (*models.Memory, error) {
	var memory models.Memory
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&memory)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrMemoryNotFound
		}
		return nil, &ReadError{Err: err}
	}
	memory.Reactions = memory.Reactions.Normalize()
	return &memory, nil
}

// ListMemories retrieves one page of memories ordered by created_at descending,
// with _id as the tie-breaker so the cursor is unambiguous.
func (r *MongoMemoryRepository) ListMemories(ctx context.Context, cursor string, limit int) ([]models.Memory, string, error) {
	filter := bson.M{}
	if cursor != "" {
		createdAt, id, err := DecodeCursor(cursor)
		if err != nil {
			return nil, "", &ReadError{Err: err}
		}
		filter = bson.M{"$or": bson.A{
			bson.M{"created_at": bson.M{"$lt": createdAt}},
			bson.M{"created_at": createdAt, "_id": bson.M{"$lt": id}},
		}}
	}

	findOptions := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}, {Key: "_id", Value: -1}}).
		SetLimit(int64(limit))
	cur, err := r.collection.Find(ctx, filter, findOptions)
	if err != nil {
		return nil, "", &ReadError{Err: err}
	}
	defer cur.Close(ctx)

	memories := make([]models.Memory, 0, limit)
	if err = cur.All(ctx, &memories); err != nil {
		return nil, "", &ReadError{Err: err}
	}
	for i := range memories {
		memories[i].Reactions = memories[i].Reactions.Normalize()
	}

	nextCursor := ""
	if len(memories) == limit {
		last := memories[len(memories)-1]
		nextCursor = EncodeCursor(last.CreatedAt, last.ID)
	}
	return memories, nextCursor, nil
}

// ApplyReaction adjusts reaction counts with conditional $inc updates. A
// single-document update is atomic in MongoDB, and the filter on the
// decremented count enforces the floor at zero: when the count is already
// zero the decrement half is dropped and only the increment is applied.
func (r *MongoMemoryRepository) ApplyReaction(ctx context.Context, memoryID string, inc, dec models.ReactionKind) error {
	if inc == "" && dec == "" {
		return nil
	}

	if dec != "" {
		filter := bson.M{"_id": memoryID, "reactions." + string(dec): bson.M{"$gt": 0}}
		update := bson.M{"reactions." + string(dec): -1}
		if inc != "" {
			update["reactions."+string(inc)] = 1
		}
		res, err := r.collection.UpdateOne(ctx, filter, bson.M{"$inc": update})
		if err != nil {
			return &ReactionError{Err: err}
		}
		if res.MatchedCount > 0 {
			return nil
		}
		// The decremented count was already at zero; fall through and apply
		// the increment alone.
		if inc == "" {
			return r.ensureExists(ctx, memoryID)
		}
	}

	res, err := r.collection.UpdateOne(ctx,
		bson.M{"_id": memoryID},
		bson.M{"$inc": bson.M{"reactions." + string(inc): 1}})
	if err != nil {
		return &ReactionError{Err: err}
	}
	if res.MatchedCount == 0 {
		return ErrMemoryNotFound
	}
	return nil
}

func (r *MongoMemoryRepository) ensureExists(ctx context.Context, memoryID string) error {
	count, err := r.collection.CountDocuments(ctx, bson.M{"_id": memoryID})
	if err != nil {
		return &ReactionError{Err: err}
	}
	if count == 0 {
		return ErrMemoryNotFound
	}
	return nil
}

// DeleteAllMemories removes every memory document. Admin reset only.
func (r *MongoMemoryRepository) DeleteAllMemories(ctx context.Context) (int64, error) {
	res, err := r.collection.DeleteMany(ctx, bson.D{})
	if err != nil {
		return 0, &WriteError{Err: fmt.Errorf("bulk delete: %w", err)}
	}
	return res.DeletedCount, nil
}
