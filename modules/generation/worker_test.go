package generation

import (
	"encoding/json"
	"testing"

	"vibeforge-server/modules/common/model"
)

func strPtr(s string) *string { return &s }

func TestBuildInput(t *testing.T) {
	w := &Worker{}

	t.Run("저장된 input_params 우선", func(t *testing.T) {
		gen := &model.Generation{
			ID:          "g1",
			Type:        model.GenerationTypeImage,
			Prompt:      strPtr("네온 시티"),
			InputParams: json.RawMessage(`{"prompt":"custom","num_inference_steps":28}`),
		}

		input := w.buildInput(gen)
		if input["prompt"] != "custom" {
			t.Errorf("prompt = %v, 기대값 custom", input["prompt"])
		}
	})

	t.Run("빈 객체는 프롬프트 폴백", func(t *testing.T) {
		gen := &model.Generation{
			ID:          "g2",
			Type:        model.GenerationTypeImage,
			Prompt:      strPtr("네온 시티"),
			InputParams: json.RawMessage(`{}`),
		}

		input := w.buildInput(gen)
		if input["prompt"] != "네온 시티" {
			t.Errorf("prompt = %v, 기대값 네온 시티", input["prompt"])
		}
		// 이미지 타입은 flux 기본 입력 사용
		if input["output_format"] != "webp" {
			t.Errorf("output_format = %v, flux 기본값 기대", input["output_format"])
		}
	})

	t.Run("파싱 불가 시 프롬프트 폴백", func(t *testing.T) {
		gen := &model.Generation{
			ID:          "g3",
			Type:        model.GenerationTypeAudio,
			Prompt:      strPtr("city pop instrumental"),
			InputParams: json.RawMessage(`not json`),
		}

		input := w.buildInput(gen)
		if input["prompt"] != "city pop instrumental" {
			t.Errorf("prompt = %v", input["prompt"])
		}
		// 이미지 외 타입은 prompt 단일 키
		if len(input) != 1 {
			t.Errorf("입력 키 수 = %d, 기대값 1", len(input))
		}
	})
}
