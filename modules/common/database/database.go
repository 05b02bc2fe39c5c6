package database

import (
	"encoding/json"
	"fmt"
	"log"

	"github.com/supabase-community/postgrest-go"
	"github.com/supabase-community/supabase-go"

	"vibeforge-server/modules/common/apperr"
	"vibeforge-server/modules/common/config"
	"vibeforge-server/modules/common/model"
)

type Client struct {
	supabase *supabase.Client
}

// NewClient - Database 클라이언트 생성
func NewClient() (*Client, error) {
	cfg := config.GetConfig()
	return NewClientWithURL(cfg.SupabaseURL, cfg.SupabaseServiceKey)
}

// NewClientWithURL - 명시적 URL/키로 클라이언트 생성
func NewClientWithURL(url, serviceKey string) (*Client, error) {
	supabaseClient, err := supabase.NewClient(url, serviceKey, &supabase.ClientOptions{})
	if err != nil {
		return nil, fmt.Errorf("failed to create Supabase client: %w", err)
	}

	return &Client{
		supabase: supabaseClient,
	}, nil
}

// listRows - 테이블 전체 조회 (created_at 최신순)
func listRows[T any](c *Client, table string) ([]T, error) {
	data, _, err := c.supabase.From(table).
		Select("*", "exact", false).
		Order("created_at", &postgrest.OrderOpts{Ascending: false}).
		Execute()

	if err != nil {
		return nil, fmt.Errorf("failed to query %s: %w", table, err)
	}

	rows := []T{}
	if err := json.Unmarshal(data, &rows); err != nil {
		return nil, fmt.Errorf("failed to parse %s response: %w", table, err)
	}

	return rows, nil
}

// getRow - ID로 단건 조회
func getRow[T any](c *Client, table, resource, id string) (*T, error) {
	var rows []T

	data, _, err := c.supabase.From(table).
		Select("*", "exact", false).
		Eq("id", id).
		Execute()

	if err != nil {
		return nil, fmt.Errorf("failed to query %s: %w", table, err)
	}

	if err := json.Unmarshal(data, &rows); err != nil {
		return nil, fmt.Errorf("failed to parse %s response: %w", table, err)
	}

	if len(rows) == 0 {
		return nil, apperr.NewNotFound(resource, id)
	}

	return &rows[0], nil
}

// insertRow - 레코드 생성 (서버에서 id/timestamp 할당)
func insertRow[T any](c *Client, table string, insert map[string]interface{}) (*T, error) {
	data, _, err := c.supabase.From(table).
		Insert(insert, false, "", "", "").
		Execute()

	if err != nil {
		return nil, fmt.Errorf("failed to insert into %s: %w", table, err)
	}

	var rows []T
	if err := json.Unmarshal(data, &rows); err != nil {
		return nil, fmt.Errorf("failed to parse %s insert response: %w", table, err)
	}

	if len(rows) == 0 {
		return nil, fmt.Errorf("no %s record returned after insert", table)
	}

	log.Printf("💾 [DB] Inserted into %s", table)
	return &rows[0], nil
}

// updateRow - 전달된 필드만 부분 병합 업데이트
// updated_at 갱신은 호출자가 patch에 포함 (generations 테이블에는 해당 컬럼 없음)
func updateRow[T any](c *Client, table, resource, id string, patch map[string]interface{}) (*T, error) {
	data, _, err := c.supabase.From(table).
		Update(patch, "", "").
		Eq("id", id).
		Execute()

	if err != nil {
		return nil, fmt.Errorf("failed to update %s: %w", table, err)
	}

	var rows []T
	if err := json.Unmarshal(data, &rows); err != nil {
		return nil, fmt.Errorf("failed to parse %s update response: %w", table, err)
	}

	if len(rows) == 0 {
		return nil, apperr.NewNotFound(resource, id)
	}

	log.Printf("📝 [DB] Updated %s %s", resource, id)
	return &rows[0], nil
}

// deleteRow - ID로 삭제
func deleteRow(c *Client, table, resource, id string) error {
	data, _, err := c.supabase.From(table).
		Delete("", "").
		Eq("id", id).
		Execute()

	if err != nil {
		return fmt.Errorf("failed to delete from %s: %w", table, err)
	}

	var rows []json.RawMessage
	if err := json.Unmarshal(data, &rows); err != nil {
		return fmt.Errorf("failed to parse %s delete response: %w", table, err)
	}

	if len(rows) == 0 {
		return apperr.NewNotFound(resource, id)
	}

	log.Printf("🗑️  [DB] Deleted %s %s", resource, id)
	return nil
}

// --- Characters ---

func (c *Client) ListCharacters() ([]model.Character, error) {
	return listRows[model.Character](c, "characters")
}

func (c *Client) GetCharacter(id string) (*model.Character, error) {
	return getRow[model.Character](c, "characters", "character", id)
}

func (c *Client) CreateCharacter(insert map[string]interface{}) (*model.Character, error) {
	return insertRow[model.Character](c, "characters", insert)
}

func (c *Client) UpdateCharacter(id string, patch map[string]interface{}) (*model.Character, error) {
	return updateRow[model.Character](c, "characters", "character", id, patch)
}

func (c *Client) DeleteCharacter(id string) error {
	return deleteRow(c, "characters", "character", id)
}

// --- Tracks ---

func (c *Client) ListTracks() ([]model.Track, error) {
	return listRows[model.Track](c, "tracks")
}

func (c *Client) GetTrack(id string) (*model.Track, error) {
	return getRow[model.Track](c, "tracks", "track", id)
}

func (c *Client) CreateTrack(insert map[string]interface{}) (*model.Track, error) {
	return insertRow[model.Track](c, "tracks", insert)
}

func (c *Client) UpdateTrack(id string, patch map[string]interface{}) (*model.Track, error) {
	return updateRow[model.Track](c, "tracks", "track", id, patch)
}

func (c *Client) DeleteTrack(id string) error {
	return deleteRow(c, "tracks", "track", id)
}

// --- Videos ---

func (c *Client) ListVideos() ([]model.Video, error) {
	return listRows[model.Video](c, "videos")
}

func (c *Client) GetVideo(id string) (*model.Video, error) {
	return getRow[model.Video](c, "videos", "video", id)
}

func (c *Client) CreateVideo(insert map[string]interface{}) (*model.Video, error) {
	return insertRow[model.Video](c, "videos", insert)
}

func (c *Client) UpdateVideo(id string, patch map[string]interface{}) (*model.Video, error) {
	return updateRow[model.Video](c, "videos", "video", id, patch)
}

func (c *Client) DeleteVideo(id string) error {
	return deleteRow(c, "videos", "video", id)
}

// --- Projects ---

func (c *Client) ListProjects() ([]model.Project, error) {
	return listRows[model.Project](c, "projects")
}

func (c *Client) GetProject(id string) (*model.Project, error) {
	return getRow[model.Project](c, "projects", "project", id)
}

func (c *Client) CreateProject(insert map[string]interface{}) (*model.Project, error) {
	return insertRow[model.Project](c, "projects", insert)
}

func (c *Client) UpdateProject(id string, patch map[string]interface{}) (*model.Project, error) {
	return updateRow[model.Project](c, "projects", "project", id, patch)
}

func (c *Client) DeleteProject(id string) error {
	return deleteRow(c, "projects", "project", id)
}

// --- Generations ---

func (c *Client) ListGenerations() ([]model.Generation, error) {
	return listRows[model.Generation](c, "generations")
}

func (c *Client) GetGeneration(id string) (*model.Generation, error) {
	return getRow[model.Generation](c, "generations", "generation", id)
}

func (c *Client) CreateGeneration(insert map[string]interface{}) (*model.Generation, error) {
	return insertRow[model.Generation](c, "generations", insert)
}

func (c *Client) UpdateGeneration(id string, patch map[string]interface{}) (*model.Generation, error) {
	return updateRow[model.Generation](c, "generations", "generation", id, patch)
}
