package models

import (
	"io"
	"time"
)

// AudioClip is a recorded utterance uploaded as a multipart file part.
type AudioClip struct {
	Filename string
	Data     io.Reader
}

type TextMessage struct {
	Text string `json:"text"`
}

type MorningRequest struct {
	LocalTime string `json:"local_time"`
}

// Vibration is the mood snapshot and image derived from an interaction.
type Vibration struct {
	ID        string    `json:"id"`
	Mood      string    `json:"mood"`
	Category  string    `json:"category,omitempty"`
	ImageURL  string    `json:"image_url,omitempty"`
	Caption   string    `json:"caption,omitempty"`
	Author    string    `json:"author,omitempty"`
	Reactions int       `json:"reactions,omitempty"`
	CreatedAt time.Time `json:"created_at,omitempty"`
}

type ChatResponse struct {
	AudioURL   string     `json:"audio_url"`
	Transcript string     `json:"transcript,omitempty"`
	Reply      string     `json:"reply,omitempty"`
	Vibration  *Vibration `json:"vibration,omitempty"`
}
