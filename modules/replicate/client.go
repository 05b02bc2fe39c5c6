package replicate

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"time"

	"vibeforge-server/modules/common/apperr"
	"vibeforge-server/modules/common/config"
)

// Client - Replicate 예측 API 클라이언트
// 핸들러/워커에 주입해서 사용 (전역 싱글톤 없음)
type Client struct {
	BaseURL      string
	Token        string
	HTTPClient   *http.Client
	PollInterval time.Duration
	MaxAttempts  int
}

// NewClient - 설정 기반 클라이언트 생성
func NewClient() *Client {
	cfg := config.GetConfig()

	return &Client{
		BaseURL:      cfg.ReplicateAPIBaseURL,
		Token:        cfg.ReplicateAPIToken,
		HTTPClient:   &http.Client{Timeout: 120 * time.Second},
		PollInterval: 1 * time.Second,
		MaxAttempts:  cfg.ReplicatePollMaxAttempts,
	}
}

// IsConfigured - API 토큰 설정 여부
func (c *Client) IsConfigured() bool {
	return c.Token != ""
}

// doRequest - 인증 헤더 포함 요청 실행, 상태 코드와 바디 반환
func (c *Client) doRequest(ctx context.Context, method, url string, body []byte) (int, []byte, error) {
	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}

	req, err := http.NewRequestWithContext(ctx, method, url, reader)
	if err != nil {
		return 0, nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Authorization", "Bearer "+c.Token)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return 0, nil, fmt.Errorf("replicate API request failed: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return 0, nil, fmt.Errorf("failed to read response: %w", err)
	}

	return resp.StatusCode, respBody, nil
}

// CreatePredictionRaw - Job 생성 (업스트림 상태 코드/바디 그대로 반환, 패스스루 라우트용)
func (c *Client) CreatePredictionRaw(ctx context.Context, model string, input map[string]interface{}) (int, []byte, error) {
	reqBody, err := json.Marshal(createPredictionRequest{Version: model, Input: input})
	if err != nil {
		return 0, nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	return c.doRequest(ctx, "POST", c.BaseURL+"/predictions", reqBody)
}

// GetPredictionRaw - Job 상태 조회 (업스트림 상태 코드/바디 그대로 반환)
func (c *Client) GetPredictionRaw(ctx context.Context, id string) (int, []byte, error) {
	return c.doRequest(ctx, "GET", c.BaseURL+"/predictions/"+id, nil)
}

// CreatePrediction - Job 생성, 거절 시 SubmissionError
func (c *Client) CreatePrediction(ctx context.Context, model string, input map[string]interface{}) (*Prediction, error) {
	status, body, err := c.CreatePredictionRaw(ctx, model, input)
	if err != nil {
		return nil, err
	}

	var pred Prediction
	if err := json.Unmarshal(body, &pred); err != nil {
		return nil, fmt.Errorf("failed to parse prediction response: %w", err)
	}

	if status < 200 || status >= 300 {
		message := pred.Detail
		if message == "" {
			message = "Replicate API error"
		}
		return nil, &apperr.SubmissionError{Message: message, StatusCode: status}
	}

	if pred.Error != "" {
		return nil, &apperr.SubmissionError{Message: pred.Error, StatusCode: status}
	}

	log.Printf("🚀 [Replicate] Prediction created: %s (model: %s)", pred.ID, model)
	return &pred, nil
}

// GetPrediction - Job 상태 조회
func (c *Client) GetPrediction(ctx context.Context, id string) (*Prediction, error) {
	status, body, err := c.GetPredictionRaw(ctx, id)
	if err != nil {
		return nil, err
	}

	var pred Prediction
	if err := json.Unmarshal(body, &pred); err != nil {
		return nil, fmt.Errorf("failed to parse prediction response: %w", err)
	}

	if status < 200 || status >= 300 {
		message := pred.Detail
		if message == "" {
			message = "Replicate API error"
		}
		return nil, fmt.Errorf("prediction status check failed (%d): %s", status, message)
	}

	return &pred, nil
}

// Run - Job 생성 후 터미널 상태까지 1초 간격 폴링, 결과 에셋 URL 반환
// 컨텍스트 취소와 최대 시도 횟수를 준수함
func (c *Client) Run(ctx context.Context, model string, input map[string]interface{}) (string, error) {
	if !c.IsConfigured() {
		return "", fmt.Errorf("REPLICATE_API_TOKEN not configured")
	}

	pred, err := c.CreatePrediction(ctx, model, input)
	if err != nil {
		return "", err
	}

	attempts := 0
	for !pred.IsTerminal() {
		if attempts >= c.MaxAttempts {
			return "", apperr.NewGeneration("generation timed out after %d polls", attempts)
		}

		select {
		case <-ctx.Done():
			return "", ctx.Err()
		case <-time.After(c.PollInterval):
		}

		pred, err = c.GetPrediction(ctx, pred.ID)
		if err != nil {
			return "", err
		}
		attempts++
	}

	if pred.Status == StatusFailed {
		message := pred.Error
		if message == "" {
			message = "Generation failed"
		}
		log.Printf("❌ [Replicate] Prediction %s failed: %s", pred.ID, message)
		return "", &apperr.GenerationError{Message: message}
	}

	output, err := extractOutput(pred.Output)
	if err != nil {
		return "", err
	}

	log.Printf("✅ [Replicate] Prediction %s succeeded after %d polls", pred.ID, attempts)
	return output, nil
}

// extractOutput - output 필드가 배열이면 첫 요소, 아니면 단일 값
func extractOutput(raw json.RawMessage) (string, error) {
	if len(raw) == 0 || string(raw) == "null" {
		return "", apperr.NewGeneration("prediction succeeded with empty output")
	}

	var list []string
	if err := json.Unmarshal(raw, &list); err == nil {
		if len(list) == 0 {
			return "", apperr.NewGeneration("prediction succeeded with empty output list")
		}
		return list[0], nil
	}

	var single string
	if err := json.Unmarshal(raw, &single); err == nil {
		return single, nil
	}

	return "", &apperr.UnexpectedResponseError{Message: "unexpected prediction output shape"}
}
