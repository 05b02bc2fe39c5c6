package replicate

import (
	"encoding/json"
	"log"
	"net/http"

	"vibeforge-server/modules/common/httpx"
)

type Handler struct {
	client *Client
}

func NewHandler(client *Client) *Handler {
	return &Handler{client: client}
}

// proxyRequest - 패스스루 요청 바디
type proxyRequest struct {
	Model string                 `json:"model"`
	Input map[string]interface{} `json:"input"`
}

// HandleCreate - POST /replicate
// 업스트림 Job 생성 응답을 상태 코드 그대로 전달
func (h *Handler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	if !h.client.IsConfigured() {
		httpx.WriteJSON(w, http.StatusInternalServerError, map[string]string{
			"error": "REPLICATE_API_TOKEN not configured",
		})
		return
	}

	var req proxyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.WriteJSON(w, http.StatusBadRequest, map[string]string{"error": "Invalid request format"})
		return
	}

	if req.Model == "" || req.Input == nil {
		httpx.WriteJSON(w, http.StatusBadRequest, map[string]string{"error": "model and input are required"})
		return
	}

	status, body, err := h.client.CreatePredictionRaw(r.Context(), req.Model, req.Input)
	if err != nil {
		log.Printf("❌ [Replicate] Proxy create error: %v", err)
		httpx.WriteJSON(w, http.StatusInternalServerError, map[string]string{"error": "Internal server error"})
		return
	}

	forwardUpstream(w, status, body)
}

// HandleGet - GET /replicate?id=
// 업스트림 Job 상태 응답을 상태 코드 그대로 전달
func (h *Handler) HandleGet(w http.ResponseWriter, r *http.Request) {
	if !h.client.IsConfigured() {
		httpx.WriteJSON(w, http.StatusInternalServerError, map[string]string{
			"error": "REPLICATE_API_TOKEN not configured",
		})
		return
	}

	id := r.URL.Query().Get("id")
	if id == "" {
		httpx.WriteJSON(w, http.StatusBadRequest, map[string]string{"error": "prediction id is required"})
		return
	}

	status, body, err := h.client.GetPredictionRaw(r.Context(), id)
	if err != nil {
		log.Printf("❌ [Replicate] Proxy get error: %v", err)
		httpx.WriteJSON(w, http.StatusInternalServerError, map[string]string{"error": "Internal server error"})
		return
	}

	forwardUpstream(w, status, body)
}

// forwardUpstream - 업스트림 응답 전달 (에러 시 detail을 error 필드로 변환)
func forwardUpstream(w http.ResponseWriter, status int, body []byte) {
	if status >= 200 && status < 300 {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		w.Write(body)
		return
	}

	var pred Prediction
	message := "Replicate API error"
	if err := json.Unmarshal(body, &pred); err == nil && pred.Detail != "" {
		message = pred.Detail
	}

	httpx.WriteJSON(w, status, map[string]string{"error": message})
}
