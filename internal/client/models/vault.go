package models

import "time"

type ArchiveRequest struct {
	Title   string   `json:"title,omitempty"`
	Entries []string `json:"entries"`
}

type ArchiveResponse struct {
	ID         string    `json:"id"`
	ArchivedAt time.Time `json:"archived_at"`
}

// VaultSession is one archived session in the user's history.
type VaultSession struct {
	ID        string     `json:"id"`
	Title     string     `json:"title"`
	Summary   string     `json:"summary,omitempty"`
	Mood      string     `json:"mood,omitempty"`
	CreatedAt time.Time  `json:"created_at"`
	Vibration *Vibration `json:"vibration,omitempty"`
}

type VaultResponse struct {
	Sessions []VaultSession `json:"sessions"`
}

type Insights struct {
	TotalSessions int            `json:"total_sessions"`
	DominantMood  string         `json:"dominant_mood,omitempty"`
	MoodCounts    map[string]int `json:"mood_counts"`
	Categories    map[string]int `json:"categories"`
	Streak        int            `json:"streak_days,omitempty"`
}
