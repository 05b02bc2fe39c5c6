package replicate

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"vibeforge-server/modules/common/apperr"
)

// fakePredictionServer - 상태 시퀀스를 순서대로 돌려주는 가짜 Replicate 서버
type fakePredictionServer struct {
	mu        sync.Mutex
	statuses  []string // 폴링마다 하나씩 소비
	output    interface{}
	errField  string
	pollCount int
}

func (f *fakePredictionServer) handler() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("POST /predictions", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]interface{}{
			"id":     "pred-1",
			"status": "starting",
		})
	})

	mux.HandleFunc("GET /predictions/pred-1", func(w http.ResponseWriter, r *http.Request) {
		f.mu.Lock()
		defer f.mu.Unlock()

		status := f.statuses[0]
		if len(f.statuses) > 1 {
			f.statuses = f.statuses[1:]
		}
		f.pollCount++

		resp := map[string]interface{}{
			"id":     "pred-1",
			"status": status,
		}
		if status == "succeeded" {
			resp["output"] = f.output
		}
		if status == "failed" {
			resp["error"] = f.errField
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(resp)
	})

	return mux
}

func newTestClient(srv *httptest.Server) *Client {
	return &Client{
		BaseURL:      srv.URL,
		Token:        "test-token",
		HTTPClient:   srv.Client(),
		PollInterval: 5 * time.Millisecond,
		MaxAttempts:  10,
	}
}

func TestClientRun(t *testing.T) {
	t.Run("성공 시퀀스 - 정확히 2번 폴링 후 첫 출력 반환", func(t *testing.T) {
		fake := &fakePredictionServer{
			statuses: []string{"processing", "succeeded"},
			output:   []string{"https://x/img.webp", "https://x/img2.webp"},
		}
		srv := httptest.NewServer(fake.handler())
		defer srv.Close()

		client := newTestClient(srv)
		url, err := client.Run(context.Background(), ModelFlux, FluxInput("test"))
		if err != nil {
			t.Fatalf("예상치 못한 에러: %v", err)
		}

		if url != "https://x/img.webp" {
			t.Errorf("출력 URL 기대값 'https://x/img.webp', 실제 %q", url)
		}
		if fake.pollCount != 2 {
			t.Errorf("폴링 횟수 기대값 2, 실제 %d", fake.pollCount)
		}
	})

	t.Run("단일 문자열 출력도 그대로 반환", func(t *testing.T) {
		fake := &fakePredictionServer{
			statuses: []string{"succeeded"},
			output:   "https://x/video.mp4",
		}
		srv := httptest.NewServer(fake.handler())
		defer srv.Close()

		url, err := newTestClient(srv).Run(context.Background(), ModelMinimax, map[string]interface{}{"prompt": "p"})
		if err != nil {
			t.Fatalf("예상치 못한 에러: %v", err)
		}
		if url != "https://x/video.mp4" {
			t.Errorf("출력 URL 기대값 'https://x/video.mp4', 실제 %q", url)
		}
	})

	t.Run("터미널 failed - GenerationError에 업스트림 메시지 유지", func(t *testing.T) {
		fake := &fakePredictionServer{
			statuses: []string{"processing", "failed"},
			errField: "NSFW content detected",
		}
		srv := httptest.NewServer(fake.handler())
		defer srv.Close()

		_, err := newTestClient(srv).Run(context.Background(), ModelFlux, FluxInput("test"))

		var genErr *apperr.GenerationError
		if !errors.As(err, &genErr) {
			t.Fatalf("GenerationError 기대, 실제 %T: %v", err, err)
		}
		if genErr.Message != "NSFW content detected" {
			t.Errorf("에러 메시지 기대값 'NSFW content detected', 실제 %q", genErr.Message)
		}
	})

	t.Run("제출 거절 - SubmissionError에 업스트림 상태 코드 유지", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusUnprocessableEntity)
			fmt.Fprint(w, `{"detail": "Invalid version"}`)
		}))
		defer srv.Close()

		_, err := newTestClient(srv).Run(context.Background(), "bad/model", FluxInput("test"))

		var subErr *apperr.SubmissionError
		if !errors.As(err, &subErr) {
			t.Fatalf("SubmissionError 기대, 실제 %T: %v", err, err)
		}
		if subErr.Message != "Invalid version" {
			t.Errorf("에러 메시지 기대값 'Invalid version', 실제 %q", subErr.Message)
		}
		if subErr.StatusCode != http.StatusUnprocessableEntity {
			t.Errorf("상태 코드 기대값 422, 실제 %d", subErr.StatusCode)
		}
	})

	t.Run("최대 시도 횟수 초과 시 GenerationError", func(t *testing.T) {
		fake := &fakePredictionServer{
			statuses: []string{"processing"},
		}
		srv := httptest.NewServer(fake.handler())
		defer srv.Close()

		client := newTestClient(srv)
		client.MaxAttempts = 3

		_, err := client.Run(context.Background(), ModelFlux, FluxInput("test"))

		var genErr *apperr.GenerationError
		if !errors.As(err, &genErr) {
			t.Fatalf("GenerationError 기대, 실제 %T: %v", err, err)
		}
	})

	t.Run("컨텍스트 취소 시 폴링 중단", func(t *testing.T) {
		fake := &fakePredictionServer{
			statuses: []string{"processing"},
		}
		srv := httptest.NewServer(fake.handler())
		defer srv.Close()

		ctx, cancel := context.WithCancel(context.Background())

		client := newTestClient(srv)
		client.PollInterval = 50 * time.Millisecond

		go func() {
			time.Sleep(10 * time.Millisecond)
			cancel()
		}()

		_, err := client.Run(ctx, ModelFlux, FluxInput("test"))
		if !errors.Is(err, context.Canceled) {
			t.Errorf("context.Canceled 기대, 실제 %v", err)
		}
	})

	t.Run("토큰 미설정 시 즉시 에러", func(t *testing.T) {
		client := &Client{BaseURL: "http://unused", Token: ""}
		if _, err := client.Run(context.Background(), ModelFlux, FluxInput("test")); err == nil {
			t.Error("토큰 미설정 에러 기대")
		}
	})
}

func TestPresets(t *testing.T) {
	t.Run("FluxInput 기본 필드", func(t *testing.T) {
		input := FluxInput("a cat")
		if input["prompt"] != "a cat" {
			t.Errorf("prompt 기대값 'a cat', 실제 %v", input["prompt"])
		}
		if input["num_outputs"] != 1 || input["aspect_ratio"] != "1:1" {
			t.Errorf("flux 기본값 오류: %v", input)
		}
		if input["output_format"] != "webp" || input["output_quality"] != 90 {
			t.Errorf("flux 출력 형식 오류: %v", input)
		}
	})

	t.Run("SizedInput 기본값 보정", func(t *testing.T) {
		input := SizedInput("p", 0, 0, 0)
		if input["width"] != 1024 || input["height"] != 1024 || input["num_outputs"] != 1 {
			t.Errorf("크기 기본값 오류: %v", input)
		}
	})

	t.Run("스타일 프리셋 - 품질 문구와 네거티브 프롬프트 부착", func(t *testing.T) {
		anime := AnimeStyleInput("a singer")
		if anime["prompt"] != "a singer"+styleQualitySuffix {
			t.Errorf("품질 문구 부착 오류: %v", anime["prompt"])
		}
		if anime["negative_prompt"] != styleNegativePrompt {
			t.Error("네거티브 프롬프트 누락")
		}

		illustrious := IllustriousInput("a singer")
		if illustrious["width"] != 1024 || illustrious["height"] != 1536 {
			t.Errorf("illustrious 크기 기본값 오류: %v", illustrious)
		}
		// 두 프리셋의 스텝/guidance 기본값이 서로 달라야 함
		if anime["num_inference_steps"] == illustrious["num_inference_steps"] {
			t.Error("프리셋 간 steps 기본값이 달라야 함")
		}
	})
}
