package replicate

import "encoding/json"

// 작업별 모델 식별자
const (
	// 이미지 생성
	ModelFlux = "black-forest-labs/flux-schnell"
	ModelSDXL = "stability-ai/sdxl"

	// 비디오 생성
	ModelWan     = "wan-video/wan-2.1-i2v-480p"
	ModelMinimax = "minimax/video-01"

	// 립싱크
	ModelSadTalker = "cjwbw/sadtalker"
	ModelWav2Lip   = "devxpy/wav2lip"

	// 오디오
	ModelMusicGen = "meta/musicgen"
)

// 터미널 상태
const (
	StatusSucceeded = "succeeded"
	StatusFailed    = "failed"
)

// Prediction - Replicate 예측 Job 응답 구조체
type Prediction struct {
	ID      string                 `json:"id"`
	Version string                 `json:"version"`
	Status  string                 `json:"status"`
	Input   map[string]interface{} `json:"input"`
	Output  json.RawMessage        `json:"output"`
	Error   string                 `json:"error"`
	Detail  string                 `json:"detail"`
	URLs    struct {
		Get    string `json:"get"`
		Cancel string `json:"cancel"`
	} `json:"urls"`
}

// IsTerminal - 폴링 종료 상태 여부
func (p *Prediction) IsTerminal() bool {
	return p.Status == StatusSucceeded || p.Status == StatusFailed
}

// createPredictionRequest - Job 생성 요청 바디
type createPredictionRequest struct {
	Version string                 `json:"version"`
	Input   map[string]interface{} `json:"input"`
}
