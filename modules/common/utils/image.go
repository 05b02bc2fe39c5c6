package utils

import (
	"bytes"
	"fmt"
	"image"
	_ "image/jpeg" // JPEG 디코더 등록
	_ "image/png"  // PNG 디코더 등록
	"log"

	_ "github.com/kolesa-team/go-webp/decoder" // WebP 디코더 등록
	"github.com/kolesa-team/go-webp/encoder"
	"github.com/kolesa-team/go-webp/webp"
)

// MakeWebPThumbnail - 생성 이미지에서 WebP 썸네일 생성
// maxWidth보다 작은 원본은 크기를 유지한 채 재인코딩만 수행
func MakeWebPThumbnail(data []byte, maxWidth int, quality float32) ([]byte, error) {
	img, format, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to decode image: %w", err)
	}

	bounds := img.Bounds()
	log.Printf("🔍 [Image] Decoded %s image: %dx%d", format, bounds.Dx(), bounds.Dy())

	if bounds.Dx() > maxWidth {
		img = scaleDown(img, maxWidth)
	}

	options, err := encoder.NewLossyEncoderOptions(encoder.PresetDefault, quality)
	if err != nil {
		return nil, fmt.Errorf("failed to create WebP encoder options: %w", err)
	}

	var webpBuffer bytes.Buffer
	if err := webp.Encode(&webpBuffer, img, options); err != nil {
		return nil, fmt.Errorf("failed to encode WebP: %w", err)
	}

	webpData := webpBuffer.Bytes()
	log.Printf("✅ [Image] Thumbnail encoded: %d bytes → %d bytes", len(data), len(webpData))

	return webpData, nil
}

// scaleDown - 최근접 샘플링으로 가로폭 기준 축소
func scaleDown(src image.Image, targetWidth int) image.Image {
	srcBounds := src.Bounds()
	srcW := srcBounds.Dx()
	srcH := srcBounds.Dy()

	targetHeight := srcH * targetWidth / srcW
	if targetHeight < 1 {
		targetHeight = 1
	}

	dst := image.NewRGBA(image.Rect(0, 0, targetWidth, targetHeight))
	for y := 0; y < targetHeight; y++ {
		srcY := y * srcH / targetHeight
		for x := 0; x < targetWidth; x++ {
			srcX := x * srcW / targetWidth
			dst.Set(x, y, src.At(srcBounds.Min.X+srcX, srcBounds.Min.Y+srcY))
		}
	}

	log.Printf("🔄 [Image] Scaled %dx%d → %dx%d", srcW, srcH, targetWidth, targetHeight)
	return dst
}
