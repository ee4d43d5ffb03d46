package services

import (
	_ "embed"
	"encoding/base64"
	"time"

	"github.com/be2025/memory-wall/backend/internal/models"
)

// FallbackMemoryID identifies the well-known entry shown when the remote
// collection cannot be read or is empty.
const FallbackMemoryID = "traditional-day-memory"

//go:embed assets/traditional_day.svg
var traditionalDayImage []byte

// FallbackMemory builds the fixed seed entry that keeps the wall from ever
// rendering blank on first load. Its image comes from a bundled asset rather
// than a remote reference, so it works even when every external store is down.
func FallbackMemory() models.Memory {
	return models.Memory{
		ID:     FallbackMemoryID,
		Title:  "Traditional Day Celebrations",
		Author: "BE 2025 Batch",
		Content: "Everyone showed up in their finest traditional wear for one last celebration " +
			"together. The courtyard was full of colour, music and group photos that went on " +
			"until the sun went down. A day none of us will forget.",
		ImageURL:  "data:image/svg+xml;base64," + base64.StdEncoding.EncodeToString(traditionalDayImage),
		CreatedAt: time.Now(),
		Featured:  true,
		Reactions: models.NewReactionCounts(),
	}
}
