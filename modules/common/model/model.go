package model

import (
	"encoding/json"
	"time"
)

// Character - characters 테이블 구조
type Character struct {
	ID              string    `json:"id"`
	Name            string    `json:"name"`
	Description     *string   `json:"description"`
	StylePrompt     string    `json:"style_prompt"`
	ReferenceImages []string  `json:"reference_images"`
	GeneratedImage  *string   `json:"generated_image"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

// Track - tracks 테이블 구조
type Track struct {
	ID              string    `json:"id"`
	Title           string    `json:"title"`
	Genre           *string   `json:"genre"`
	Lyrics          *string   `json:"lyrics"`
	Prompt          *string   `json:"prompt"`
	AudioURL        *string   `json:"audio_url"`
	DurationSeconds *float64  `json:"duration_seconds"`
	BPM             *int      `json:"bpm"`
	CharacterID     *string   `json:"character_id"`
	ProjectID       *string   `json:"project_id"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

// Video - videos 테이블 구조
type Video struct {
	ID              string          `json:"id"`
	Title           string          `json:"title"`
	TrackID         *string         `json:"track_id"`
	CharacterID     *string         `json:"character_id"`
	ProjectID       *string         `json:"project_id"`
	Storyboard      json.RawMessage `json:"storyboard"`
	Clips           json.RawMessage `json:"clips"`
	FinalURL        *string         `json:"final_url"`
	ThumbnailURL    *string         `json:"thumbnail_url"`
	Status          string          `json:"status"`
	DurationSeconds *float64        `json:"duration_seconds"`
	Resolution      string          `json:"resolution"`
	CreatedAt       time.Time       `json:"created_at"`
	UpdatedAt       time.Time       `json:"updated_at"`
}

// Project - projects 테이블 구조 (그루핑 컨테이너)
type Project struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description *string   `json:"description"`
	CharacterID *string   `json:"character_id"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// Generation - generations 테이블 구조
type Generation struct {
	ID           string          `json:"id"`
	Type         string          `json:"type"` // image / video / audio / lipsync
	Model        string          `json:"model"`
	Prompt       *string         `json:"prompt"`
	InputParams  json.RawMessage `json:"input_params"`
	OutputURL    *string         `json:"output_url"`
	ReplicateID  *string         `json:"replicate_id"`
	Status       string          `json:"status"`
	ErrorMessage *string         `json:"error_message"`
	VideoID      *string         `json:"video_id"`
	CreatedAt    time.Time       `json:"created_at"`
	CompletedAt  *time.Time      `json:"completed_at"`
}

// Video 상태
const (
	VideoStatusDraft      = "draft"
	VideoStatusProcessing = "processing"
	VideoStatusCompleted  = "completed"
	VideoStatusFailed     = "failed"
)

// Generation 상태
const (
	StatusPending    = "pending"
	StatusProcessing = "processing"
	StatusCompleted  = "completed"
	StatusFailed     = "failed"
)

// Generation 타입
const (
	GenerationTypeImage   = "image"
	GenerationTypeVideo   = "video"
	GenerationTypeAudio   = "audio"
	GenerationTypeLipsync = "lipsync"
)
