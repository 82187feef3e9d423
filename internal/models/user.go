package models

import "time"

// UserStats — usage counters shown by /stats.
type UserStats struct {
	UserID        int64     `json:"user_id"`
	Joined        time.Time `json:"joined"`
	Queries       int       `json:"queries"`
	FavoritePairs []string  `json:"favorite_pairs,omitempty"`
}

// ChatMessage — one turn of a user conversation, kept for AI context.
type ChatMessage struct {
	Role    string `json:"role"` // "user" / "assistant"
	Content string `json:"content"`
}
