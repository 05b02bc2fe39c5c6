package generateimage

import (
	"encoding/json"
	"log"
	"net/http"
	"strings"

	"vibeforge-server/modules/common/apperr"
	"vibeforge-server/modules/common/database"
	"vibeforge-server/modules/common/httpx"
	"vibeforge-server/modules/replicate"
)

// Handler - 캐릭터 이미지 생성 핸들러
type Handler struct {
	db        *database.Client
	replicate *replicate.Client
}

// NewHandler - 이미지 생성 핸들러 생성
func NewHandler(db *database.Client, rep *replicate.Client) *Handler {
	return &Handler{db: db, replicate: rep}
}

// GenerateRequest - POST /generate-image 요청 바디
type GenerateRequest struct {
	Prompt      string `json:"prompt"`
	CharacterID string `json:"characterId"`
}

// GenerateResponse - 생성 결과
type GenerateResponse struct {
	ImageURL    string `json:"imageUrl"`
	CharacterID string `json:"characterId,omitempty"`
}

// HandleGenerate - POST /generate-image (flux 실행 후 캐릭터 레코드 갱신)
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

	log.Printf("🎨 [GenerateImage] 이미지 생성 시작: characterId=%s", req.CharacterID)

	imageURL, err := h.replicate.Run(r.Context(), replicate.ModelFlux, replicate.FluxInput(req.Prompt))
	if err != nil {
		log.Printf("❌ [GenerateImage] 생성 실패: %v", err)
		httpx.WriteErrorWithDetails(w, http.StatusInternalServerError, "Image generation failed", err.Error())
		return
	}

	if req.CharacterID != "" {
		patch := map[string]interface{}{
			"generated_image": imageURL,
			"updated_at":      "now()",
		}
		if _, err := h.db.UpdateCharacter(req.CharacterID, patch); err != nil {
			log.Printf("❌ [GenerateImage] 캐릭터 이미지 저장 실패: %v", err)
			httpx.WriteErrorWithDetails(w, http.StatusInternalServerError, "Image generation failed", err.Error())
			return
		}
		log.Printf("💾 [GenerateImage] 캐릭터 이미지 저장 완료: %s", req.CharacterID)
	}

	log.Printf("✅ [GenerateImage] 이미지 생성 완료: %s", imageURL)
	httpx.WriteJSON(w, http.StatusOK, GenerateResponse{
		ImageURL:    imageURL,
		CharacterID: req.CharacterID,
	})
}
