package main

import (
	"context"
	"encoding/json"
	"log"
	"net/http"

	"github.com/gorilla/mux"

	"vibeforge-server/modules/assist"
	"vibeforge-server/modules/character"
	"vibeforge-server/modules/common/config"
	"vibeforge-server/modules/common/database"
	"vibeforge-server/modules/common/redis"
	"vibeforge-server/modules/common/storage"
	"vibeforge-server/modules/generateimage"
	"vibeforge-server/modules/generation"
	"vibeforge-server/modules/progress"
	"vibeforge-server/modules/project"
	"vibeforge-server/modules/replicate"
	"vibeforge-server/modules/track"
	"vibeforge-server/modules/video"
)

// CORS 헤더 추가
func enableCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// 헬스 체크 엔드포인트
func healthCheck(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(map[string]string{
		"status":  "healthy",
		"service": "vibeforge-server",
	})
}

func main() {
	// 환경변수 로드
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("❌ Failed to load config: %v", err)
	}

	// Supabase 연결
	db, err := database.NewClient()
	if err != nil {
		log.Fatalf("❌ Failed to connect to Supabase: %v", err)
	}

	// Redis 연결
	rdb := redis.Connect(cfg)
	if rdb == nil {
		log.Fatalf("❌ Failed to connect to Redis")
	}

	// 공용 클라이언트
	replicateClient := replicate.NewClient()
	storageClient := storage.NewClient()
	assistService := assist.NewService()

	// 진행상황 웹소켓 허브
	hub := progress.NewHub()

	// 생성 작업 큐 워커 시작 (백그라운드)
	worker := generation.NewWorker(db, rdb, replicateClient, storageClient, hub)
	go worker.Run(context.Background())

	// 핸들러
	assistHandler := assist.NewHandler(assistService)
	characterHandler := character.NewHandler(db)
	trackHandler := track.NewHandler(db)
	videoHandler := video.NewHandler(db)
	projectHandler := project.NewHandler(db)
	generateImageHandler := generateimage.NewHandler(db, replicateClient)
	replicateHandler := replicate.NewHandler(replicateClient)
	generationHandler := generation.NewHandler(db, rdb)

	// 라우터 설정
	r := mux.NewRouter()

	// CORS 미들웨어 적용
	r.Use(enableCORS)

	// 헬스 체크
	r.HandleFunc("/", healthCheck).Methods("GET")
	r.HandleFunc("/health", healthCheck).Methods("GET")

	// AI 어시스트
	r.HandleFunc("/ai-assist", assistHandler.HandleAssist).Methods("POST")

	// 캐릭터
	r.HandleFunc("/characters", characterHandler.HandleList).Methods("GET")
	r.HandleFunc("/characters", characterHandler.HandleCreate).Methods("POST")
	r.HandleFunc("/characters/generate", characterHandler.HandleGenerate).Methods("POST")
	r.HandleFunc("/characters/{id}", characterHandler.HandleGet).Methods("GET")
	r.HandleFunc("/characters/{id}", characterHandler.HandleUpdate).Methods("PUT")
	r.HandleFunc("/characters/{id}", characterHandler.HandleDelete).Methods("DELETE")

	// 트랙
	r.HandleFunc("/tracks", trackHandler.HandleList).Methods("GET")
	r.HandleFunc("/tracks", trackHandler.HandleCreate).Methods("POST")
	r.HandleFunc("/tracks/generate", trackHandler.HandleGenerate).Methods("POST")
	r.HandleFunc("/tracks/{id}", trackHandler.HandleGet).Methods("GET")
	r.HandleFunc("/tracks/{id}", trackHandler.HandleUpdate).Methods("PUT")
	r.HandleFunc("/tracks/{id}", trackHandler.HandleDelete).Methods("DELETE")

	// 비디오
	r.HandleFunc("/videos", videoHandler.HandleList).Methods("GET")
	r.HandleFunc("/videos", videoHandler.HandleCreate).Methods("POST")
	r.HandleFunc("/videos/generate", videoHandler.HandleGenerate).Methods("POST")
	r.HandleFunc("/videos/{id}", videoHandler.HandleGet).Methods("GET")
	r.HandleFunc("/videos/{id}", videoHandler.HandleUpdate).Methods("PUT")
	r.HandleFunc("/videos/{id}", videoHandler.HandleDelete).Methods("DELETE")

	// 프로젝트
	r.HandleFunc("/projects", projectHandler.HandleList).Methods("GET")
	r.HandleFunc("/projects", projectHandler.HandleCreate).Methods("POST")
	r.HandleFunc("/projects/{id}", projectHandler.HandleGet).Methods("GET")
	r.HandleFunc("/projects/{id}", projectHandler.HandleUpdate).Methods("PUT")
	r.HandleFunc("/projects/{id}", projectHandler.HandleDelete).Methods("DELETE")

	// 이미지 생성 / Replicate 프록시
	r.HandleFunc("/generate-image", generateImageHandler.HandleGenerate).Methods("POST")
	r.HandleFunc("/replicate", replicateHandler.HandleCreate).Methods("POST")
	r.HandleFunc("/replicate", replicateHandler.HandleGet).Methods("GET")

	// 생성 작업 큐
	r.HandleFunc("/generations", generationHandler.HandleList).Methods("GET")
	r.HandleFunc("/generations", generationHandler.HandleEnqueue).Methods("POST")
	r.HandleFunc("/generations/{id}", generationHandler.HandleGet).Methods("GET")

	// 진행상황 웹소켓
	r.HandleFunc("/ws/generations", hub.HandleWebSocket)

	log.Printf("🚀 VibeForge Server starting on port %s", cfg.Port)
	log.Printf("📡 WebSocket endpoint: ws://localhost:%s/ws/generations", cfg.Port)
	log.Printf("❤️  Health check: http://localhost:%s/health", cfg.Port)

	// 서버 시작
	if err := http.ListenAndServe(":"+cfg.Port, r); err != nil {
		log.Fatalf("Server failed to start: %v", err)
	}
}
