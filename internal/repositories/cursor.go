package repositories

import (
	"encoding/base64"
	"encoding/json"
	"fmt"
	"time"
)

// pageCursor marks the position after the last entry of a page under the
// createdAt-descending order. The id breaks ties between equal timestamps.
type pageCursor struct {
	CreatedAt time.Time `json:"created_at"`
	ID        string    `json:"id"`
}

// EncodeCursor packs a page boundary into an opaque token handed to clients.
func EncodeCursor(createdAt time.Time, id string) string {
	raw, _ := json.Marshal(pageCursor{CreatedAt: createdAt, ID: id})
	return base64.RawURLEncoding.EncodeToString(raw)
}

// DecodeCursor unpacks a token produced by EncodeCursor.
func DecodeCursor(token string) (time.Time, string, error) {
	raw, err := base64.RawURLEncoding.DecodeString(token)
	if err != nil {
		return time.Time{}, "", fmt.Errorf("invalid page cursor: %w", err)
	}
	var c pageCursor
	if err := json.Unmarshal(raw, &c); err != nil {
		return time.Time{}, "", fmt.Errorf("invalid page cursor: %w", err)
	}
	return c.CreatedAt, c.ID, nil
}
