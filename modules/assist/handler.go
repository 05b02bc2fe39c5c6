package assist

import (
	"encoding/json"
	"log"
	"net/http"

	"vibeforge-server/modules/common/httpx"
)

// Handler - AI 어시스트 핸들러
type Handler struct {
	service *Service
}

// NewHandler - 어시스트 핸들러 생성
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// HandleAssist - POST /ai-assist 처리
func (h *Handler) HandleAssist(w http.ResponseWriter, r *http.Request) {
	var req AssistRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.WriteErrorWithDetails(w, http.StatusBadRequest, "Invalid request body", err.Error())
		return
	}

	log.Printf("🤖 [Assist] 요청 수신: type=%s", req.Type)

	result, err := h.service.Assist(r.Context(), req.Type, req.Prompt)
	if err != nil {
		log.Printf("❌ [Assist] 처리 실패: %v", err)
		httpx.WriteError(w, err)
		return
	}

	log.Printf("✅ [Assist] 응답 생성 완료: type=%s", req.Type)
	httpx.WriteJSON(w, http.StatusOK, result)
}
