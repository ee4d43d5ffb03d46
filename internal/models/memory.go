package models

import (
	"time"
	"unicode/utf8"
)

// Field length limits for a memory, counted in runes to match what the form enforces
const (
	MaxTitleLen   = 100
	MaxContentLen = 1000
	MaxAuthorLen  = 50
)

// Thresholds for the featured heuristic
const (
	featuredMinTitleLen   = 15
	featuredMinContentLen = 80
)

// Memory represents a single shared memory on the wall
type Memory struct {
	ID        string         `json:"id" bson:"_id,omitempty" firestore:"-"`
	Title     string         `json:"title" bson:"title" firestore:"title"`
	Content   string         `json:"content" bson:"content" firestore:"content"`
	Author    string         `json:"author" bson:"author" firestore:"author"`
	ImageURL  string         `json:"image_url,omitempty" bson:"image_url,omitempty" firestore:"imageUrl,omitempty"`
	CreatedAt time.Time      `json:"created_at" bson:"created_at" firestore:"createdAt"`
	Featured  bool           `json:"featured" bson:"featured" firestore:"featured"`
	Reactions ReactionCounts `json:"reactions" bson:"reactions" firestore:"reactions"`
}

// CreateMemoryRequest defines the submission form fields. The optional photo
// arrives as a separate multipart file part, not as a field here.
type CreateMemoryRequest struct {
	Title   string `json:"title" form:"title" validate:"required,max=100"`
	Content string `json:"content" form:"content" validate:"required,max=1000"`
	Author  string `json:"author" form:"author" validate:"required,max=50"`
}

// ComputeFeatured decides at creation time whether a memory is featured:
// it carries an image, its content runs past 80 characters and its title
// past 15. The flag is never recomputed afterward.
func ComputeFeatured(hasImage bool, title, content string) bool {
	return hasImage &&
		utf8.RuneCountInString(content) > featuredMinContentLen &&
		utf8.RuneCountInString(title) > featuredMinTitleLen
}
