package video

import (
	"encoding/json"
	"log"
	"net/http"
	"strings"

	"github.com/gorilla/mux"

	"vibeforge-server/modules/common/apperr"
	"vibeforge-server/modules/common/database"
	"vibeforge-server/modules/common/httpx"
	"vibeforge-server/modules/common/model"
	"vibeforge-server/modules/draft"
)

// Handler - 비디오 CRUD + 드래프트 생성 핸들러
type Handler struct {
	db *database.Client
}

// NewHandler - 비디오 핸들러 생성
func NewHandler(db *database.Client) *Handler {
	return &Handler{db: db}
}

// CreateRequest - POST /videos 요청 바디
type CreateRequest struct {
	Title       string          `json:"title"`
	TrackID     *string         `json:"track_id"`
	CharacterID *string         `json:"character_id"`
	ProjectID   *string         `json:"project_id"`
	Storyboard  json.RawMessage `json:"storyboard"`
	Clips       json.RawMessage `json:"clips"`
	Resolution  *string         `json:"resolution"`
}

// UpdateRequest - PUT /videos/{id} 요청 바디 (제공된 필드만 반영)
type UpdateRequest struct {
	Title        *string         `json:"title"`
	TrackID      *string         `json:"track_id"`
	CharacterID  *string         `json:"character_id"`
	ProjectID    *string         `json:"project_id"`
	Storyboard   json.RawMessage `json:"storyboard"`
	Clips        json.RawMessage `json:"clips"`
	FinalURL     *string         `json:"final_url"`
	ThumbnailURL *string         `json:"thumbnail_url"`
	Status       *string         `json:"status"`
	Resolution   *string         `json:"resolution"`
}

// GenerateRequest - POST /videos/generate 요청 바디
type GenerateRequest struct {
	Prompt string `json:"prompt"`
}

// HandleList - GET /videos
func (h *Handler) HandleList(w http.ResponseWriter, r *http.Request) {
	videos, err := h.db.ListVideos()
	if err != nil {
		log.Printf("❌ [Video] 목록 조회 실패: %v", err)
		httpx.WriteError(w, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, videos)
}

// HandleGet - GET /videos/{id}
func (h *Handler) HandleGet(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	video, err := h.db.GetVideo(id)
	if err != nil {
		httpx.WriteError(w, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, video)
}

// HandleCreate - POST /videos (status=draft, resolution 기본 1080p)
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

	insert := map[string]interface{}{
		"title":      req.Title,
		"status":     model.VideoStatusDraft,
		"resolution": "1080p",
		"storyboard": json.RawMessage("[]"),
		"clips":      json.RawMessage("[]"),
	}
	if req.Resolution != nil {
		insert["resolution"] = *req.Resolution
	}
	if len(req.Storyboard) > 0 {
		insert["storyboard"] = req.Storyboard
	}
	if len(req.Clips) > 0 {
		insert["clips"] = req.Clips
	}
	if req.TrackID != nil {
		insert["track_id"] = *req.TrackID
	}
	if req.CharacterID != nil {
		insert["character_id"] = *req.CharacterID
	}
	if req.ProjectID != nil {
		insert["project_id"] = *req.ProjectID
	}

	video, err := h.db.CreateVideo(insert)
	if err != nil {
		log.Printf("❌ [Video] 생성 실패: %v", err)
		httpx.WriteError(w, err)
		return
	}

	log.Printf("✅ [Video] 생성 완료: %s (%s)", video.Title, video.ID)
	httpx.WriteJSON(w, http.StatusCreated, video)
}

// HandleUpdate - PUT /videos/{id}
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
	if req.TrackID != nil {
		patch["track_id"] = *req.TrackID
	}
	if req.CharacterID != nil {
		patch["character_id"] = *req.CharacterID
	}
	if req.ProjectID != nil {
		patch["project_id"] = *req.ProjectID
	}
	if len(req.Storyboard) > 0 {
		patch["storyboard"] = req.Storyboard
	}
	if len(req.Clips) > 0 {
		patch["clips"] = req.Clips
	}
	if req.FinalURL != nil {
		patch["final_url"] = *req.FinalURL
	}
	if req.ThumbnailURL != nil {
		patch["thumbnail_url"] = *req.ThumbnailURL
	}
	if req.Status != nil {
		patch["status"] = *req.Status
	}
	if req.Resolution != nil {
		patch["resolution"] = *req.Resolution
	}

	video, err := h.db.UpdateVideo(id, patch)
	if err != nil {
		httpx.WriteError(w, err)
		return
	}

	log.Printf("✅ [Video] 수정 완료: %s", id)
	httpx.WriteJSON(w, http.StatusOK, video)
}

// HandleDelete - DELETE /videos/{id}
func (h *Handler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	if err := h.db.DeleteVideo(id); err != nil {
		httpx.WriteError(w, err)
		return
	}

	log.Printf("🗑️ [Video] 삭제 완료: %s", id)
	httpx.WriteJSON(w, http.StatusOK, map[string]bool{"success": true})
}

// HandleGenerate - POST /videos/generate (규칙 기반 드래프트)
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

	result := draft.GenerateVideoDraft(req.Prompt)
	httpx.WriteJSON(w, http.StatusOK, result)
}
