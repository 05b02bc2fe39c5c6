package generateimage

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestHandleGenerateMissingPrompt(t *testing.T) {
	// 검증은 외부 호출 전에 수행되므로 실제 클라이언트 불필요
	h := NewHandler(nil, nil)

	req := httptest.NewRequest("POST", "/generate-image", strings.NewReader(`{"prompt":"  "}`))
	rec := httptest.NewRecorder()
	h.HandleGenerate(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, 기대값 400", rec.Code)
	}

	var body map[string]string
	json.Unmarshal(rec.Body.Bytes(), &body)
	if body["error"] != "prompt is required" {
		t.Errorf("error = %s", body["error"])
	}
}

func TestHandleGenerateInvalidBody(t *testing.T) {
	h := NewHandler(nil, nil)

	req := httptest.NewRequest("POST", "/generate-image", strings.NewReader(`not json`))
	rec := httptest.NewRecorder()
	h.HandleGenerate(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, 기대값 400", rec.Code)
	}
}
