package assist

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func doAssistRequest(t *testing.T, h *Handler, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest("POST", "/ai-assist", strings.NewReader(body))
	rec := httptest.NewRecorder()
	h.HandleAssist(rec, req)
	return rec
}

func TestHandleAssistValidation(t *testing.T) {
	// 업스트림에 도달하면 안 되므로 연결 불가능한 주소 사용
	h := NewHandler(newTestService("http://invalid.invalid"))

	t.Run("프롬프트 누락은 400", func(t *testing.T) {
		rec := doAssistRequest(t, h, `{"type":"track","prompt":""}`)
		if rec.Code != http.StatusBadRequest {
			t.Fatalf("status = %d, 기대값 400", rec.Code)
		}

		var body map[string]string
		json.Unmarshal(rec.Body.Bytes(), &body)
		if body["error"] != "Prompt is required" {
			t.Errorf("error = %s", body["error"])
		}
	})

	t.Run("잘못된 타입은 400", func(t *testing.T) {
		rec := doAssistRequest(t, h, `{"type":"album","prompt":"여름 앨범"}`)
		if rec.Code != http.StatusBadRequest {
			t.Fatalf("status = %d, 기대값 400", rec.Code)
		}

		var body map[string]string
		json.Unmarshal(rec.Body.Bytes(), &body)
		if body["error"] != "Valid type (track/character/video) is required" {
			t.Errorf("error = %s", body["error"])
		}
	})

	t.Run("잘못된 JSON 바디는 400", func(t *testing.T) {
		rec := doAssistRequest(t, h, `{not json`)
		if rec.Code != http.StatusBadRequest {
			t.Fatalf("status = %d, 기대값 400", rec.Code)
		}
	})
}

func TestHandleAssistSuccess(t *testing.T) {
	server := fakeAnthropicServer(t, `{"title":"Neon Highway","genre":"synthwave"}`, http.StatusOK)
	defer server.Close()

	h := NewHandler(newTestService(server.URL))

	rec := doAssistRequest(t, h, `{"type":"track","prompt":"밤 드라이브"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, 기대값 200 (body: %s)", rec.Code, rec.Body.String())
	}

	var body map[string]string
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("응답 파싱 실패: %v", err)
	}
	if body["title"] != "Neon Highway" {
		t.Errorf("title = %s", body["title"])
	}
}
