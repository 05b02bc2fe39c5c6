package generation

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/gorilla/mux"
	goredis "github.com/redis/go-redis/v9"

	"vibeforge-server/modules/common/apperr"
	"vibeforge-server/modules/common/database"
	"vibeforge-server/modules/common/httpx"
	"vibeforge-server/modules/common/model"
	"vibeforge-server/modules/common/redis"
)

// Handler - 생성 작업 큐 핸들러
type Handler struct {
	db  *database.Client
	rdb *goredis.Client
}

// NewHandler - 생성 작업 핸들러 생성
func NewHandler(db *database.Client, rdb *goredis.Client) *Handler {
	return &Handler{db: db, rdb: rdb}
}

// EnqueueRequest - POST /generations 요청 바디
type EnqueueRequest struct {
	Type        string          `json:"type"`
	Model       string          `json:"model"`
	Prompt      *string         `json:"prompt"`
	InputParams json.RawMessage `json:"input_params"`
	VideoID     *string         `json:"video_id"`
}

// validTypes - 허용되는 생성 타입
var validTypes = map[string]bool{
	model.GenerationTypeImage:   true,
	model.GenerationTypeVideo:   true,
	model.GenerationTypeAudio:   true,
	model.GenerationTypeLipsync: true,
}

// HandleList - GET /generations
func (h *Handler) HandleList(w http.ResponseWriter, r *http.Request) {
	generations, err := h.db.ListGenerations()
	if err != nil {
		log.Printf("❌ [Generation] 목록 조회 실패: %v", err)
		httpx.WriteError(w, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, generations)
}

// HandleGet - GET /generations/{id}
func (h *Handler) HandleGet(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	generation, err := h.db.GetGeneration(id)
	if err != nil {
		httpx.WriteError(w, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, generation)
}

// HandleEnqueue - POST /generations (pending 행 생성 후 큐 적재)
func (h *Handler) HandleEnqueue(w http.ResponseWriter, r *http.Request) {
	var req EnqueueRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.WriteError(w, apperr.NewValidation("Invalid request body"))
		return
	}

	if !validTypes[req.Type] {
		httpx.WriteError(w, apperr.NewValidation("type must be one of image/video/audio/lipsync"))
		return
	}
	if strings.TrimSpace(req.Model) == "" {
		httpx.WriteError(w, apperr.NewValidation("model is required"))
		return
	}
	if len(req.InputParams) == 0 && (req.Prompt == nil || strings.TrimSpace(*req.Prompt) == "") {
		httpx.WriteError(w, apperr.NewValidation("prompt or input_params is required"))
		return
	}

	insert := map[string]interface{}{
		"type":   req.Type,
		"model":  req.Model,
		"status": model.StatusPending,
	}
	if req.Prompt != nil {
		insert["prompt"] = *req.Prompt
	}
	if len(req.InputParams) > 0 {
		insert["input_params"] = req.InputParams
	}
	if req.VideoID != nil {
		insert["video_id"] = *req.VideoID
	}

	generation, err := h.db.CreateGeneration(insert)
	if err != nil {
		log.Printf("❌ [Generation] 작업 생성 실패: %v", err)
		httpx.WriteError(w, err)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	if err := h.rdb.LPush(ctx, redis.GenerationQueue, generation.ID).Err(); err != nil {
		log.Printf("❌ [Generation] 큐 적재 실패: %v", err)
		// 큐 적재 실패 시 행을 failed로 마킹
		if _, markErr := h.db.UpdateGeneration(generation.ID, map[string]interface{}{
			"status":        model.StatusFailed,
			"error_message": "queue unavailable",
		}); markErr != nil {
			log.Printf("❌ [Generation] 실패 상태 저장 실패: %s (%v)", generation.ID, markErr)
		}
		httpx.WriteErrorWithDetails(w, http.StatusInternalServerError, "Failed to enqueue generation", err.Error())
		return
	}

	log.Printf("📦 [Generation] 작업 적재 완료: %s (type=%s, model=%s)", generation.ID, req.Type, req.Model)
	httpx.WriteJSON(w, http.StatusAccepted, generation)
}
