package httpx

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"vibeforge-server/modules/common/apperr"
)

// WriteJSON - JSON 응답 작성
func WriteJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		log.Printf("❌ Failed to encode response: %v", err)
	}
}

// WriteError - 에러 타입별 HTTP 상태 매핑
// ValidationError→400, NotFoundError→404, SubmissionError→업스트림 코드,
// 나머지(GenerationError/UnexpectedResponseError/일반)→500
func WriteError(w http.ResponseWriter, err error) {
	var validationErr *apperr.ValidationError
	var notFoundErr *apperr.NotFoundError
	var submissionErr *apperr.SubmissionError

	switch {
	case errors.As(err, &validationErr):
		WriteJSON(w, http.StatusBadRequest, map[string]string{"error": validationErr.Message})
	case errors.As(err, &notFoundErr):
		WriteJSON(w, http.StatusNotFound, map[string]string{"error": notFoundErr.Error()})
	case errors.As(err, &submissionErr):
		status := submissionErr.StatusCode
		if status == 0 {
			status = http.StatusInternalServerError
		}
		WriteJSON(w, status, map[string]string{"error": submissionErr.Message})
	default:
		WriteJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
	}
}

// WriteErrorWithDetails - error + details 형태 응답 (이미지/replicate 라우트용)
func WriteErrorWithDetails(w http.ResponseWriter, status int, message, details string) {
	WriteJSON(w, status, map[string]string{
		"error":   message,
		"details": details,
	})
}
