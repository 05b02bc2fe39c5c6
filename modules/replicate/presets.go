package replicate

// 스타일 보강 프리셋에서 프롬프트 뒤에 붙는 품질/스타일 고정 문구
const styleQualitySuffix = ", masterpiece, best quality, highly detailed, anime style, vibrant colors, sharp focus"

// 스타일 보강 프리셋 공용 네거티브 프롬프트
const styleNegativePrompt = "lowres, bad anatomy, bad hands, text, error, missing fingers, extra digit, fewer digits, cropped, worst quality, low quality, jpeg artifacts, signature, watermark, username, blurry"

// FluxInput - 빠른 저비용 이미지 생성 입력 (prompt 단일 스텝)
func FluxInput(prompt string) map[string]interface{} {
	return map[string]interface{}{
		"prompt":         prompt,
		"num_outputs":    1,
		"aspect_ratio":   "1:1",
		"output_format":  "webp",
		"output_quality": 90,
	}
}

// SizedInput - 범용 모델 입력 (크기/출력 개수 명시)
func SizedInput(prompt string, width, height, numOutputs int) map[string]interface{} {
	if width <= 0 {
		width = 1024
	}
	if height <= 0 {
		height = 1024
	}
	if numOutputs <= 0 {
		numOutputs = 1
	}

	return map[string]interface{}{
		"prompt":      prompt,
		"width":       width,
		"height":      height,
		"num_outputs": numOutputs,
	}
}

// AnimeStyleInput - 애니메 스타일 보강 프리셋
// 원본 프롬프트에 고정 품질 문구를 붙이고 고정 네거티브 프롬프트를 짝지음
func AnimeStyleInput(prompt string) map[string]interface{} {
	return map[string]interface{}{
		"prompt":              prompt + styleQualitySuffix,
		"negative_prompt":     styleNegativePrompt,
		"width":               768,
		"height":              1024,
		"guidance_scale":      7.0,
		"num_inference_steps": 28,
	}
}

// IllustriousInput - 고해상도 illustrious 프리셋 (크기/guidance/steps 기본값이 다름)
func IllustriousInput(prompt string) map[string]interface{} {
	return map[string]interface{}{
		"prompt":              prompt + styleQualitySuffix,
		"negative_prompt":     styleNegativePrompt,
		"width":               1024,
		"height":              1536,
		"guidance_scale":      5.5,
		"num_inference_steps": 30,
	}
}
