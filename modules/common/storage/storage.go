package storage

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log"
	"net/http"
	"time"

	"github.com/google/uuid"

	"vibeforge-server/modules/common/config"
)

type Client struct {
	httpClient *http.Client
}

// NewClient - Storage 클라이언트 생성
func NewClient() *Client {
	return &Client{
		httpClient: &http.Client{Timeout: 120 * time.Second},
	}
}

// DownloadAsset - 생성 결과 URL에서 에셋 다운로드
func (c *Client) DownloadAsset(ctx context.Context, assetURL string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, "GET", assetURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create download request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to download asset: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("failed to download asset: status %d", resp.StatusCode)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read asset data: %w", err)
	}

	log.Printf("📦 [Storage] Downloaded asset: %d bytes", len(data))
	return data, nil
}

// UploadThumbnail - 썸네일을 Supabase Storage에 업로드하고 공개 URL 반환
func (c *Client) UploadThumbnail(ctx context.Context, data []byte, contentType string) (string, error) {
	cfg := config.GetConfig()

	fileName := fmt.Sprintf("thumb_%s.webp", uuid.New().String())
	filePath := fmt.Sprintf("thumbnails/%s", fileName)

	uploadURL := fmt.Sprintf("%s/storage/v1/object/media/%s", cfg.SupabaseURL, filePath)
	log.Printf("📤 [Storage] Uploading thumbnail: media/%s", filePath)

	req, err := http.NewRequestWithContext(ctx, "POST", uploadURL, bytes.NewReader(data))
	if err != nil {
		return "", fmt.Errorf("failed to create upload request: %w", err)
	}

	req.Header.Set("Authorization", "Bearer "+cfg.SupabaseServiceKey)
	req.Header.Set("Content-Type", contentType)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to upload thumbnail: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		body, _ := io.ReadAll(resp.Body)
		return "", fmt.Errorf("upload failed with status %d: %s", resp.StatusCode, string(body))
	}

	publicURL := c.publicURL(filePath)
	log.Printf("✅ [Storage] Thumbnail uploaded: %s", publicURL)
	return publicURL, nil
}

// publicURL - 업로드된 파일의 공개 URL 생성
func (c *Client) publicURL(filePath string) string {
	cfg := config.GetConfig()

	if cfg.SupabaseStorageBaseURL != "" {
		return cfg.SupabaseStorageBaseURL + filePath
	}
	return fmt.Sprintf("%s/storage/v1/object/public/media/%s", cfg.SupabaseURL, filePath)
}
