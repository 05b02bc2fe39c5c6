package generation

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"vibeforge-server/modules/common/database"
)

func doEnqueue(t *testing.T, body string) *httptest.ResponseRecorder {
	t.Helper()
	// 검증은 스토어/큐 접근 전에 수행되므로 실제 의존성 불필요
	h := NewHandler(nil, nil)
	req := httptest.NewRequest("POST", "/generations", strings.NewReader(body))
	rec := httptest.NewRecorder()
	h.HandleEnqueue(rec, req)
	return rec
}

func TestHandleEnqueueValidation(t *testing.T) {
	t.Run("잘못된 타입은 400", func(t *testing.T) {
		rec := doEnqueue(t, `{"type":"hologram","model":"black-forest-labs/flux-schnell","prompt":"x"}`)
		if rec.Code != http.StatusBadRequest {
			t.Fatalf("status = %d, 기대값 400", rec.Code)
		}

		var body map[string]string
		json.Unmarshal(rec.Body.Bytes(), &body)
		if body["error"] != "type must be one of image/video/audio/lipsync" {
			t.Errorf("error = %s", body["error"])
		}
	})

	t.Run("모델 누락은 400", func(t *testing.T) {
		rec := doEnqueue(t, `{"type":"image","prompt":"네온 시티"}`)
		if rec.Code != http.StatusBadRequest {
			t.Fatalf("status = %d, 기대값 400", rec.Code)
		}
	})

	t.Run("프롬프트와 입력 파라미터 모두 누락은 400", func(t *testing.T) {
		rec := doEnqueue(t, `{"type":"image","model":"black-forest-labs/flux-schnell"}`)
		if rec.Code != http.StatusBadRequest {
			t.Fatalf("status = %d, 기대값 400", rec.Code)
		}

		var body map[string]string
		json.Unmarshal(rec.Body.Bytes(), &body)
		if body["error"] != "prompt or input_params is required" {
			t.Errorf("error = %s", body["error"])
		}
	})
}

func TestHandleEnqueueQueueUnavailable(t *testing.T) {
	// 생성된 행이 큐 적재 실패 시 failed로 마킹되는지 검증
	var patched map[string]interface{}
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Header().Set("Content-Range", "0-0/1")
		switch r.Method {
		case "POST":
			w.Write([]byte(`[{"id":"g1","type":"image","model":"black-forest-labs/flux-schnell","status":"pending","created_at":"2026-01-01T00:00:00Z"}]`))
		case "PATCH":
			json.NewDecoder(r.Body).Decode(&patched)
			w.Write([]byte(`[{"id":"g1","type":"image","model":"black-forest-labs/flux-schnell","status":"failed","created_at":"2026-01-01T00:00:00Z"}]`))
		default:
			t.Errorf("예상치 못한 메서드: %s", r.Method)
		}
	}))
	defer server.Close()

	db, err := database.NewClientWithURL(server.URL, "test-key")
	if err != nil {
		t.Fatalf("DB 클라이언트 생성 실패: %v", err)
	}

	// 연결 불가능한 주소로 즉시 실패 유도
	rdb := goredis.NewClient(&goredis.Options{Addr: "127.0.0.1:1", DialTimeout: time.Second})
	h := NewHandler(db, rdb)

	req := httptest.NewRequest("POST", "/generations", strings.NewReader(`{"type":"image","model":"black-forest-labs/flux-schnell","prompt":"네온 시티"}`))
	rec := httptest.NewRecorder()
	h.HandleEnqueue(rec, req)

	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d, 기대값 500 (body: %s)", rec.Code, rec.Body.String())
	}

	var body map[string]string
	json.Unmarshal(rec.Body.Bytes(), &body)
	if body["error"] != "Failed to enqueue generation" {
		t.Errorf("error = %s", body["error"])
	}

	if patched["status"] != "failed" {
		t.Errorf("status 패치 = %v, 기대값 failed", patched["status"])
	}
	if patched["error_message"] != "queue unavailable" {
		t.Errorf("error_message 패치 = %v", patched["error_message"])
	}
}
