package generation

import (
	"context"
	"encoding/json"
	"log"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"vibeforge-server/modules/common/database"
	"vibeforge-server/modules/common/model"
	"vibeforge-server/modules/common/redis"
	"vibeforge-server/modules/common/storage"
	"vibeforge-server/modules/common/utils"
	"vibeforge-server/modules/progress"
	"vibeforge-server/modules/replicate"
)

const (
	brpopTimeout     = 5 * time.Second
	thumbnailWidth   = 512
	thumbnailQuality = 80
)

// Worker - 생성 작업 큐 소비 워커
type Worker struct {
	db        *database.Client
	rdb       *goredis.Client
	replicate *replicate.Client
	storage   *storage.Client
	hub       *progress.Hub
}

// NewWorker - 워커 생성
func NewWorker(db *database.Client, rdb *goredis.Client, rep *replicate.Client, store *storage.Client, hub *progress.Hub) *Worker {
	return &Worker{
		db:        db,
		rdb:       rdb,
		replicate: rep,
		storage:   store,
		hub:       hub,
	}
}

// statusEvent - 웹소켓 브로드캐스트 페이로드
type statusEvent struct {
	GenerationID string `json:"generationId"`
	Status       string `json:"status"`
	OutputURL    string `json:"outputUrl,omitempty"`
	ThumbnailURL string `json:"thumbnailUrl,omitempty"`
	Error        string `json:"error,omitempty"`
}

// Run - BRPOP 루프 시작 (ctx 취소 시 종료)
func (w *Worker) Run(ctx context.Context) {
	log.Printf("🔄 [Worker] 생성 작업 워커 시작: queue=%s", redis.GenerationQueue)

	for {
		select {
		case <-ctx.Done():
			log.Println("⚠️ [Worker] 워커 종료")
			return
		default:
		}

		result, err := w.rdb.BRPop(ctx, brpopTimeout, redis.GenerationQueue).Result()
		if err != nil {
			if err == goredis.Nil {
				continue
			}
			if ctx.Err() != nil {
				return
			}
			log.Printf("❌ [Worker] BRPOP 실패: %v", err)
			time.Sleep(time.Second)
			continue
		}

		// result[0]=키, result[1]=값
		if len(result) < 2 {
			continue
		}
		generationID := result[1]

		go w.processJob(ctx, generationID)
	}
}

// processJob - 단일 생성 작업 처리
func (w *Worker) processJob(ctx context.Context, generationID string) {
	log.Printf("🎬 [Worker] 작업 시작: %s", generationID)

	gen, err := w.db.GetGeneration(generationID)
	if err != nil {
		log.Printf("❌ [Worker] 작업 조회 실패: %s (%v)", generationID, err)
		return
	}

	w.markStatus(gen, model.StatusProcessing, "", "", "")

	input := w.buildInput(gen)
	outputURL, err := w.replicate.Run(ctx, gen.Model, input)
	if err != nil {
		log.Printf("❌ [Worker] 생성 실패: %s (%v)", generationID, err)
		w.markFailed(gen, err.Error())
		return
	}

	thumbnailURL := ""
	if gen.Type == model.GenerationTypeImage {
		thumbnailURL = w.makeThumbnail(ctx, outputURL)
	}

	patch := map[string]interface{}{
		"status":       model.StatusCompleted,
		"output_url":   outputURL,
		"completed_at": "now()",
	}
	if _, err := w.db.UpdateGeneration(gen.ID, patch); err != nil {
		log.Printf("❌ [Worker] 완료 상태 저장 실패: %s (%v)", gen.ID, err)
	}

	if gen.VideoID != nil {
		videoPatch := map[string]interface{}{
			"status":     model.VideoStatusCompleted,
			"final_url":  outputURL,
			"updated_at": "now()",
		}
		if thumbnailURL != "" {
			videoPatch["thumbnail_url"] = thumbnailURL
		}
		if _, err := w.db.UpdateVideo(*gen.VideoID, videoPatch); err != nil {
			log.Printf("❌ [Worker] 비디오 갱신 실패: %s (%v)", *gen.VideoID, err)
		}
	}

	w.hub.Broadcast(gen.ID, statusEvent{
		GenerationID: gen.ID,
		Status:       model.StatusCompleted,
		OutputURL:    outputURL,
		ThumbnailURL: thumbnailURL,
	})

	log.Printf("✅ [Worker] 작업 완료: %s → %s", gen.ID, outputURL)
}

// buildInput - 저장된 input_params 우선, 없으면 프롬프트 기반 기본 입력
func (w *Worker) buildInput(gen *model.Generation) map[string]interface{} {
	if len(gen.InputParams) > 0 {
		var input map[string]interface{}
		if err := json.Unmarshal(gen.InputParams, &input); err != nil {
			log.Printf("⚠️ [Worker] input_params 파싱 실패, 프롬프트로 폴백: %s (%v)", gen.ID, err)
		} else if len(input) == 0 {
			log.Printf("⚠️ [Worker] input_params 비어 있음, 프롬프트로 폴백: %s", gen.ID)
		} else {
			return input
		}
	}

	prompt := ""
	if gen.Prompt != nil {
		prompt = *gen.Prompt
	}
	if gen.Type == model.GenerationTypeImage {
		return replicate.FluxInput(prompt)
	}
	return map[string]interface{}{"prompt": prompt}
}

// makeThumbnail - 결과 이미지 다운로드 후 webp 썸네일 업로드 (실패해도 작업은 계속)
func (w *Worker) makeThumbnail(ctx context.Context, assetURL string) string {
	data, err := w.storage.DownloadAsset(ctx, assetURL)
	if err != nil {
		log.Printf("⚠️ [Worker] 썸네일용 이미지 다운로드 실패: %v", err)
		return ""
	}

	thumb, err := utils.MakeWebPThumbnail(data, thumbnailWidth, thumbnailQuality)
	if err != nil {
		log.Printf("⚠️ [Worker] webp 썸네일 인코딩 실패: %v", err)
		return ""
	}

	publicURL, err := w.storage.UploadThumbnail(ctx, thumb, "image/webp")
	if err != nil {
		log.Printf("⚠️ [Worker] 썸네일 업로드 실패: %v", err)
		return ""
	}

	log.Printf("💾 [Worker] 썸네일 업로드 완료: %s", publicURL)
	return publicURL
}

// markStatus - 상태 갱신 + 브로드캐스트
func (w *Worker) markStatus(gen *model.Generation, status, outputURL, thumbnailURL, errMsg string) {
	patch := map[string]interface{}{"status": status}
	if _, err := w.db.UpdateGeneration(gen.ID, patch); err != nil {
		log.Printf("❌ [Worker] 상태 저장 실패: %s (%v)", gen.ID, err)
	}

	w.hub.Broadcast(gen.ID, statusEvent{
		GenerationID: gen.ID,
		Status:       status,
		OutputURL:    outputURL,
		ThumbnailURL: thumbnailURL,
		Error:        errMsg,
	})
}

// markFailed - 실패 상태 기록 + 연결된 비디오 실패 처리
func (w *Worker) markFailed(gen *model.Generation, errMsg string) {
	patch := map[string]interface{}{
		"status":        model.StatusFailed,
		"error_message": errMsg,
		"completed_at":  "now()",
	}
	if _, err := w.db.UpdateGeneration(gen.ID, patch); err != nil {
		log.Printf("❌ [Worker] 실패 상태 저장 실패: %s (%v)", gen.ID, err)
	}

	if gen.VideoID != nil {
		videoPatch := map[string]interface{}{
			"status":     model.VideoStatusFailed,
			"updated_at": "now()",
		}
		if _, err := w.db.UpdateVideo(*gen.VideoID, videoPatch); err != nil {
			log.Printf("❌ [Worker] 비디오 실패 상태 저장 실패: %s (%v)", *gen.VideoID, err)
		}
	}

	w.hub.Broadcast(gen.ID, statusEvent{
		GenerationID: gen.ID,
		Status:       model.StatusFailed,
		Error:        errMsg,
	})
}
