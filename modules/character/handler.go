package character

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

// Handler - 캐릭터 CRUD + 드래프트 생성 핸들러
type Handler struct {
	db *database.Client
}

// NewHandler - 캐릭터 핸들러 생성
func NewHandler(db *database.Client) *Handler {
	return &Handler{db: db}
}

// CreateRequest - POST /characters 요청 바디
type CreateRequest struct {
	Name            string   `json:"name"`
	Description     *string  `json:"description"`
	StylePrompt     string   `json:"style_prompt"`
	ReferenceImages []string `json:"reference_images"`
}

// UpdateRequest - PUT /characters/{id} 요청 바디 (제공된 필드만 반영)
type UpdateRequest struct {
	Name            *string   `json:"name"`
	Description     *string   `json:"description"`
	StylePrompt     *string   `json:"style_prompt"`
	ReferenceImages *[]string `json:"reference_images"`
	GeneratedImage  *string   `json:"generated_image"`
}

// GenerateRequest - POST /characters/generate 요청 바디
type GenerateRequest struct {
	Prompt string `json:"prompt"`
}

// HandleList - GET /characters
func (h *Handler) HandleList(w http.ResponseWriter, r *http.Request) {
	characters, err := h.db.ListCharacters()
	if err != nil {
		log.Printf("❌ [Character] 목록 조회 실패: %v", err)
		httpx.WriteError(w, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, characters)
}

// HandleGet - GET /characters/{id}
func (h *Handler) HandleGet(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	character, err := h.db.GetCharacter(id)
	if err != nil {
		httpx.WriteError(w, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, character)
}

// HandleCreate - POST /characters
func (h *Handler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	var req CreateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.WriteError(w, apperr.NewValidation("Invalid request body"))
		return
	}

	if strings.TrimSpace(req.Name) == "" || strings.TrimSpace(req.StylePrompt) == "" {
		httpx.WriteError(w, apperr.NewValidation("name and style_prompt are required"))
		return
	}

	insert := map[string]interface{}{
		"name":         req.Name,
		"style_prompt": req.StylePrompt,
	}
	if req.Description != nil {
		insert["description"] = *req.Description
	}
	if req.ReferenceImages != nil {
		insert["reference_images"] = req.ReferenceImages
	}

	character, err := h.db.CreateCharacter(insert)
	if err != nil {
		log.Printf("❌ [Character] 생성 실패: %v", err)
		httpx.WriteError(w, err)
		return
	}

	log.Printf("✅ [Character] 생성 완료: %s (%s)", character.Name, character.ID)
	httpx.WriteJSON(w, http.StatusCreated, character)
}

// HandleUpdate - PUT /characters/{id}
func (h *Handler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	var req UpdateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.WriteError(w, apperr.NewValidation("Invalid request body"))
		return
	}

	if (req.Name != nil && strings.TrimSpace(*req.Name) == "") ||
		(req.StylePrompt != nil && strings.TrimSpace(*req.StylePrompt) == "") {
		httpx.WriteError(w, apperr.NewValidation("name and style_prompt are required"))
		return
	}

	patch := map[string]interface{}{"updated_at": "now()"}
	if req.Name != nil {
		patch["name"] = *req.Name
	}
	if req.Description != nil {
		patch["description"] = *req.Description
	}
	if req.StylePrompt != nil {
		patch["style_prompt"] = *req.StylePrompt
	}
	if req.ReferenceImages != nil {
		patch["reference_images"] = *req.ReferenceImages
	}
	if req.GeneratedImage != nil {
		patch["generated_image"] = *req.GeneratedImage
	}

	character, err := h.db.UpdateCharacter(id, patch)
	if err != nil {
		httpx.WriteError(w, err)
		return
	}

	log.Printf("✅ [Character] 수정 완료: %s", id)
	httpx.WriteJSON(w, http.StatusOK, character)
}

// HandleDelete - DELETE /characters/{id}
func (h *Handler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	if err := h.db.DeleteCharacter(id); err != nil {
		httpx.WriteError(w, err)
		return
	}

	log.Printf("🗑️ [Character] 삭제 완료: %s", id)
	httpx.WriteJSON(w, http.StatusOK, map[string]bool{"success": true})
}

// HandleGenerate - POST /characters/generate (규칙 기반 드래프트)
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

	result := draft.GenerateCharacterDraft(req.Prompt)
	httpx.WriteJSON(w, http.StatusOK, result)
}
