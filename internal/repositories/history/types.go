package history

import "github.com/KirkDiggler/podplay/internal/models"

// AddPlayRecordInput contains parameters for adding a play record
type AddPlayRecordInput struct {
	Record *models.PlayRecord
}

// GetRecentPlaysInput contains parameters for retrieving recent plays
type GetRecentPlaysInput struct {
	GuildID string

	// Limit caps the number of records returned; zero means everything kept
	Limit int
}

// GetRecentPlaysOutput contains the recent plays, newest first
type GetRecentPlaysOutput struct {
	Records []*models.PlayRecord
}

// ClearHistoryInput contains parameters for clearing a guild's history
type ClearHistoryInput struct {
	GuildID string
}
