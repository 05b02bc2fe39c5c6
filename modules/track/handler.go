package track

import (
	"encoding/json"
	"log"
	"net/http"
	"strings"

	"github.com/gorilla/mux"

	"vibeforge-server/modules/common/apperr"
	"vibeforge-server/modules/common/database"
	"vibeforge-server/modules/common/httpx"
	"vibeforge-server/modules/draft"
)

// Handler - 트랙 CRUD + 드래프트 생성 핸들러
type Handler struct {
	db *database.Client
}

// NewHandler - 트랙 핸들러 생성
func NewHandler(db *database.Client) *Handler {
	return &Handler{db: db}
}

// CreateRequest - POST /tracks 요청 바디
type CreateRequest struct {
	Title       string   `json:"title"`
	Genre       *string  `json:"genre"`
	Lyrics      *string  `json:"lyrics"`
	Prompt      *string  `json:"prompt"`
	AudioURL    *string  `json:"audio_url"`
	BPM         *int     `json:"bpm"`
	CharacterID *string  `json:"character_id"`
	ProjectID   *string  `json:"project_id"`
}

// UpdateRequest - PUT /tracks/{id} 요청 바디 (제공된 필드만 반영)
type UpdateRequest struct {
	Title           *string  `json:"title"`
	Genre           *string  `json:"genre"`
	Lyrics          *string  `json:"lyrics"`
	Prompt          *string  `json:"prompt"`
	AudioURL        *string  `json:"audio_url"`
	DurationSeconds *float64 `json:"duration_seconds"`
	BPM             *int     `json:"bpm"`
	CharacterID     *string  `json:"character_id"`
	ProjectID       *string  `json:"project_id"`
}

// GenerateRequest - POST /tracks/generate 요청 바디
type GenerateRequest struct {
	Prompt string `json:"prompt"`
}

// HandleList - GET /tracks
func (h *Handler) HandleList(w http.ResponseWriter, r *http.Request) {
	tracks, err := h.db.ListTracks()
	if err != nil {
		log.Printf("❌ [Track] 목록 조회 실패: %v", err)
		httpx.WriteError(w, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, tracks)
}

// HandleGet - GET /tracks/{id}
func (h *Handler) HandleGet(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	track, err := h.db.GetTrack(id)
	if err != nil {
		httpx.WriteError(w, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, track)
}

// HandleCreate - POST /tracks
func (h *Handler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	var req CreateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.WriteError(w, apperr.NewValidation("Invalid request body"))
		return
	}

	if strings.TrimSpace(req.Title) == "" {
		httpx.WriteError(w, apperr.NewValidation("title is required"))
		return
	}

	insert := map[string]interface{}{"title": req.Title}
	if req.Genre != nil {
		insert["genre"] = *req.Genre
	}
	if req.Lyrics != nil {
		insert["lyrics"] = *req.Lyrics
	}
	if req.Prompt != nil {
		insert["prompt"] = *req.Prompt
	}
	if req.AudioURL != nil {
		insert["audio_url"] = *req.AudioURL
	}
	if req.BPM != nil {
		insert["bpm"] = *req.BPM
	}
	if req.CharacterID != nil {
		insert["character_id"] = *req.CharacterID
	}
	if req.ProjectID != nil {
		insert["project_id"] = *req.ProjectID
	}

	track, err := h.db.CreateTrack(insert)
	if err != nil {
		log.Printf("❌ [Track] 생성 실패: %v", err)
		httpx.WriteError(w, err)
		return
	}

	log.Printf("✅ [Track] 생성 완료: %s (%s)", track.Title, track.ID)
	httpx.WriteJSON(w, http.StatusCreated, track)
}

// HandleUpdate - PUT /tracks/{id} (제공된 필드만 병합)
func (h *Handler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	var req UpdateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.WriteError(w, apperr.NewValidation("Invalid request body"))
		return
	}

	if req.Title != nil && strings.TrimSpace(*req.Title) == "" {
		httpx.WriteError(w, apperr.NewValidation("title is required"))
		return
	}

	patch := map[string]interface{}{"updated_at": "now()"}
	if req.Title != nil {
		patch["title"] = *req.Title
	}
	if req.Genre != nil {
		patch["genre"] = *req.Genre
	}
	if req.Lyrics != nil {
		patch["lyrics"] = *req.Lyrics
	}
	if req.Prompt != nil {
		patch["prompt"] = *req.Prompt
	}
	if req.AudioURL != nil {
		patch["audio_url"] = *req.AudioURL
	}
	if req.DurationSeconds != nil {
		patch["duration_seconds"] = *req.DurationSeconds
	}
	if req.BPM != nil {
		patch["bpm"] = *req.BPM
	}
	if req.CharacterID != nil {
		patch["character_id"] = *req.CharacterID
	}
	if req.ProjectID != nil {
		patch["project_id"] = *req.ProjectID
	}

	track, err := h.db.UpdateTrack(id, patch)
	if err != nil {
		httpx.WriteError(w, err)
		return
	}

	log.Printf("✅ [Track] 수정 완료: %s", id)
	httpx.WriteJSON(w, http.StatusOK, track)
}

// HandleDelete - DELETE /tracks/{id}
func (h *Handler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	if err := h.db.DeleteTrack(id); err != nil {
		httpx.WriteError(w, err)
		return
	}

	log.Printf("🗑️ [Track] 삭제 완료: %s", id)
	httpx.WriteJSON(w, http.StatusOK, map[string]bool{"success": true})
}

// HandleGenerate - POST /tracks/generate (규칙 기반 드래프트)
func (h *Handler) HandleGenerate(w http.ResponseWriter, r *http.Request) {
	var req GenerateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.WriteError(w, apperr.NewValidation("Invalid request body"))
		return
	}

	if strings.TrimSpace(req.Prompt) == "" {
		httpx.WriteError(w, apperr.NewValidation("prompt is required"))
		return
	}

	result := draft.GenerateTrackDraft(req.Prompt)
	httpx.WriteJSON(w, http.StatusOK, result)
}
