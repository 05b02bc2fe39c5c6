package assist

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"

	"vibeforge-server/modules/common/apperr"
	"vibeforge-server/modules/common/config"
)

const anthropicVersion = "2023-06-01"

// Service - AI 어시스트 서비스 (Anthropic 우선, Gemini 폴백)
type Service struct {
	httpClient       *http.Client
	anthropicBaseURL string
	anthropicKey     string
	anthropicModel   string
	geminiKey        string
	geminiModel      string
}

// NewService - 어시스트 서비스 생성
func NewService() *Service {
	cfg := config.GetConfig()
	return &Service{
		httpClient:       &http.Client{Timeout: 120 * time.Second},
		anthropicBaseURL: "https://api.anthropic.com",
		anthropicKey:     cfg.AnthropicAPIKey,
		anthropicModel:   cfg.AnthropicModel,
		geminiKey:        cfg.GeminiAPIKey,
		geminiModel:      cfg.GeminiModel,
	}
}

// IsConfigured - 사용 가능한 AI 제공자가 있는지 확인
func (s *Service) IsConfigured() bool {
	return s.anthropicKey != "" || s.geminiKey != ""
}

// Assist - 크리에이티브 어시스트 실행, 구조화된 JSON 반환
func (s *Service) Assist(ctx context.Context, assistType, prompt string) (json.RawMessage, error) {
	if strings.TrimSpace(prompt) == "" {
		return nil, apperr.NewValidation("Prompt is required")
	}
	if !IsValidType(assistType) {
		return nil, apperr.NewValidation("Valid type (track/character/video) is required")
	}

	systemPrompt := GetSystemPrompt(assistType)

	if s.anthropicKey != "" {
		return s.callAnthropic(ctx, systemPrompt, prompt)
	}
	if s.geminiKey != "" {
		log.Printf("⚠️ [Assist] ANTHROPIC_API_KEY 미설정, Gemini 폴백 사용")
		return s.callGemini(ctx, systemPrompt, prompt)
	}
	return nil, fmt.Errorf("no AI provider configured (ANTHROPIC_API_KEY or GEMINI_API_KEY required)")
}

// callAnthropic - Anthropic Messages API 호출
func (s *Service) callAnthropic(ctx context.Context, systemPrompt, prompt string) (json.RawMessage, error) {
	reqBody := anthropicRequest{
		Model:     s.anthropicModel,
		MaxTokens: 2048,
		System:    systemPrompt,
		Messages: []anthropicMessage{
			{Role: "user", Content: prompt},
		},
	}

	payload, err := json.Marshal(reqBody)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal anthropic request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, "POST", s.anthropicBaseURL+"/v1/messages", bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("failed to create anthropic request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-api-key", s.anthropicKey)
	req.Header.Set("anthropic-version", anthropicVersion)

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("anthropic request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read anthropic response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		log.Printf("❌ [Assist] Anthropic API 오류 (status %d): %s", resp.StatusCode, string(body))
		return nil, apperr.NewGeneration("AI generation failed")
	}

	var parsed anthropicResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return nil, fmt.Errorf("failed to parse anthropic response: %w", err)
	}

	if len(parsed.Content) == 0 || parsed.Content[0].Type != "text" {
		return nil, &apperr.UnexpectedResponseError{Message: "unexpected response type from Anthropic"}
	}

	return extractJSON(parsed.Content[0].Text)
}

// callGemini - Gemini 폴백 호출
func (s *Service) callGemini(ctx context.Context, systemPrompt, prompt string) (json.RawMessage, error) {
	client, err := genai.NewClient(ctx, option.WithAPIKey(s.geminiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create gemini client: %w", err)
	}
	defer client.Close()

	model := client.GenerativeModel(s.geminiModel)
	model.SystemInstruction = &genai.Content{
		Parts: []genai.Part{genai.Text(systemPrompt)},
	}

	resp, err := model.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		log.Printf("❌ [Assist] Gemini API 오류: %v", err)
		return nil, apperr.NewGeneration("AI generation failed")
	}

	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil || len(resp.Candidates[0].Content.Parts) == 0 {
		return nil, &apperr.UnexpectedResponseError{Message: "empty response from Gemini"}
	}

	text, ok := resp.Candidates[0].Content.Parts[0].(genai.Text)
	if !ok {
		return nil, &apperr.UnexpectedResponseError{Message: "unexpected response type from Gemini"}
	}

	return extractJSON(string(text))
}

// extractJSON - 모델 출력에서 JSON 추출 (마크다운 펜스 제거 포함)
func extractJSON(text string) (json.RawMessage, error) {
	cleaned := strings.TrimSpace(text)
	cleaned = strings.TrimPrefix(cleaned, "```json")
	cleaned = strings.TrimPrefix(cleaned, "```")
	cleaned = strings.TrimSuffix(cleaned, "```")
	cleaned = strings.TrimSpace(cleaned)

	if !json.Valid([]byte(cleaned)) {
		log.Printf("❌ [Assist] 모델 출력이 유효한 JSON이 아님: %.200s", cleaned)
		return nil, apperr.NewGeneration("AI generation failed")
	}
	return json.RawMessage(cleaned), nil
}
