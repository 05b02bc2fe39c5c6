package project

import (
	"encoding/json"
	"log"
	"net/http"
	"strings"

	"github.com/gorilla/mux"

	"vibeforge-server/modules/common/apperr"
	"vibeforge-server/modules/common/database"
	"vibeforge-server/modules/common/httpx"
)

// Handler - 프로젝트 CRUD 핸들러
type Handler struct {
	db *database.Client
}

// NewHandler - 프로젝트 핸들러 생성
func NewHandler(db *database.Client) *Handler {
	return &Handler{db: db}
}

// CreateRequest - POST /projects 요청 바디
type CreateRequest struct {
	Name        string  `json:"name"`
	Description *string `json:"description"`
	CharacterID *string `json:"character_id"`
}

// UpdateRequest - PUT /projects/{id} 요청 바디 (제공된 필드만 반영)
type UpdateRequest struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
	CharacterID *string `json:"character_id"`
}

// HandleList - GET /projects
func (h *Handler) HandleList(w http.ResponseWriter, r *http.Request) {
	projects, err := h.db.ListProjects()
	if err != nil {
		log.Printf("❌ [Project] 목록 조회 실패: %v", err)
		httpx.WriteError(w, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, projects)
}

// HandleGet - GET /projects/{id}
func (h *Handler) HandleGet(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	project, err := h.db.GetProject(id)
	if err != nil {
		httpx.WriteError(w, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, project)
}

// HandleCreate - POST /projects
func (h *Handler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	var req CreateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.WriteError(w, apperr.NewValidation("Invalid request body"))
		return
	}

	if strings.TrimSpace(req.Name) == "" {
		httpx.WriteError(w, apperr.NewValidation("name is required"))
		return
	}

	insert := map[string]interface{}{"name": req.Name}
	if req.Description != nil {
		insert["description"] = *req.Description
	}
	if req.CharacterID != nil {
		insert["character_id"] = *req.CharacterID
	}

	project, err := h.db.CreateProject(insert)
	if err != nil {
		log.Printf("❌ [Project] 생성 실패: %v", err)
		httpx.WriteError(w, err)
		return
	}

	log.Printf("✅ [Project] 생성 완료: %s (%s)", project.Name, project.ID)
	httpx.WriteJSON(w, http.StatusCreated, project)
}

// HandleUpdate - PUT /projects/{id}
func (h *Handler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	var req UpdateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.WriteError(w, apperr.NewValidation("Invalid request body"))
		return
	}

	if req.Name != nil && strings.TrimSpace(*req.Name) == "" {
		httpx.WriteError(w, apperr.NewValidation("name is required"))
		return
	}

	patch := map[string]interface{}{"updated_at": "now()"}
	if req.Name != nil {
		patch["name"] = *req.Name
	}
	if req.Description != nil {
		patch["description"] = *req.Description
	}
	if req.CharacterID != nil {
		patch["character_id"] = *req.CharacterID
	}

	project, err := h.db.UpdateProject(id, patch)
	if err != nil {
		httpx.WriteError(w, err)
		return
	}

	log.Printf("✅ [Project] 수정 완료: %s", id)
	httpx.WriteJSON(w, http.StatusOK, project)
}

// HandleDelete - DELETE /projects/{id}
func (h *Handler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	if err := h.db.DeleteProject(id); err != nil {
		httpx.WriteError(w, err)
		return
	}

	log.Printf("🗑️ [Project] 삭제 완료: %s", id)
	httpx.WriteJSON(w, http.StatusOK, map[string]bool{"success": true})
}
