package video

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestHandleCreateMissingTitle(t *testing.T) {
	// 검증은 스토어 접근 전에 수행되므로 실제 DB 불필요
	h := NewHandler(nil)

	req := httptest.NewRequest("POST", "/videos", strings.NewReader(`{"resolution":"720p"}`))
	rec := httptest.NewRecorder()
	h.HandleCreate(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, 기대값 400", rec.Code)
	}

	var body map[string]string
	json.Unmarshal(rec.Body.Bytes(), &body)
	if body["error"] != "title is required" {
		t.Errorf("error = %s", body["error"])
	}
}

func TestHandleUpdateEmptyTitle(t *testing.T) {
	h := NewHandler(nil)

	// 제공된 필수 필드가 공백이면 스토어 접근 전에 400
	req := httptest.NewRequest("PUT", "/videos/abc", strings.NewReader(`{"title":""}`))
	rec := httptest.NewRecorder()
	h.HandleUpdate(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, 기대값 400", rec.Code)
	}

	var body map[string]string
	json.Unmarshal(rec.Body.Bytes(), &body)
	if body["error"] != "title is required" {
		t.Errorf("error = %s", body["error"])
	}
}
