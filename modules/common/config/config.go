package config

import (
	"fmt"
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Config 구조체 - 모든 환경변수를 담음
type Config struct {
	// Supabase
	SupabaseURL            string
	SupabaseServiceKey     string
	SupabaseStorageBaseURL string

	// Anthropic API (ai-assist 기본 프로바이더)
	AnthropicAPIKey string
	AnthropicModel  string

	// Gemini API (ai-assist 폴백 프로바이더)
	GeminiAPIKey string
	GeminiModel  string

	// Replicate API
	ReplicateAPIToken       string
	ReplicateAPIBaseURL     string
	ReplicatePollMaxAttempts int

	// Redis
	RedisHost     string
	RedisPort     string
	RedisUsername string
	RedisPassword string
	RedisUseTLS   bool

	// Server
	Port string
}

var globalConfig *Config

// LoadConfig - 환경변수 로드
func LoadConfig() (*Config, error) {
	// .env 파일 로드 (있으면)
	if err := godotenv.Load(); err != nil {
		log.Println("⚠️  .env file not found, using environment variables")
	}

	// Redis UseTLS 파싱
	useTLS := true // 기본값
	if tlsStr := os.Getenv("REDIS_USE_TLS"); tlsStr != "" {
		if parsed, err := strconv.ParseBool(tlsStr); err == nil {
			useTLS = parsed
		}
	}

	// 폴링 최대 시도 횟수 파싱 (1초 간격, 기본 300회 = 약 5분)
	pollMaxAttempts := 300
	if attemptsStr := os.Getenv("REPLICATE_POLL_MAX_ATTEMPTS"); attemptsStr != "" {
		if parsed, err := strconv.Atoi(attemptsStr); err == nil && parsed > 0 {
			pollMaxAttempts = parsed
		}
	}

	globalConfig = &Config{
		// Supabase
		SupabaseURL:            getEnv("SUPABASE_URL", ""),
		SupabaseServiceKey:     getEnv("SUPABASE_SERVICE_KEY", ""),
		SupabaseStorageBaseURL: getEnv("SUPABASE_STORAGE_BASE_URL", ""),

		// Anthropic
		AnthropicAPIKey: getEnv("ANTHROPIC_API_KEY", ""),
		AnthropicModel:  getEnv("ANTHROPIC_MODEL", "claude-sonnet-4-20250514"),

		// Gemini
		GeminiAPIKey: getEnv("GEMINI_API_KEY", ""),
		GeminiModel:  getEnv("GEMINI_MODEL", "gemini-1.5-flash"),

		// Replicate
		ReplicateAPIToken:        getEnv("REPLICATE_API_TOKEN", ""),
		ReplicateAPIBaseURL:      getEnv("REPLICATE_API_BASE_URL", "https://api.replicate.com/v1"),
		ReplicatePollMaxAttempts: pollMaxAttempts,

		// Redis
		RedisHost:     getEnv("REDIS_HOST", "localhost"),
		RedisPort:     getEnv("REDIS_PORT", "6379"),
		RedisUsername: getEnv("REDIS_USERNAME", ""),
		RedisPassword: getEnv("REDIS_PASSWORD", ""),
		RedisUseTLS:   useTLS,

		// Server
		Port: getEnv("PORT", "8080"),
	}

	// 필수 환경변수 검증
	// API 키(Anthropic/Gemini/Replicate)는 부팅 시 필수가 아님 -
	// 미설정 시 해당 라우트 첫 사용에서 500으로 응답
	if err := globalConfig.validate(); err != nil {
		return nil, err
	}

	log.Println("✅ Configuration loaded successfully")
	log.Printf("   Supabase: %s", globalConfig.SupabaseURL)
	log.Printf("   Redis: %s (TLS: %v)", globalConfig.GetRedisAddr(), globalConfig.RedisUseTLS)
	log.Printf("   Anthropic: %s (configured: %v)", globalConfig.AnthropicModel, globalConfig.AnthropicAPIKey != "")
	log.Printf("   Gemini: %s (configured: %v)", globalConfig.GeminiModel, globalConfig.GeminiAPIKey != "")
	log.Printf("   Replicate poll limit: %d attempts", globalConfig.ReplicatePollMaxAttempts)

	return globalConfig, nil
}

// GetConfig - 로드된 설정 가져오기
func GetConfig() *Config {
	if globalConfig == nil {
		log.Fatal("❌ Config not loaded. Call LoadConfig() first.")
	}
	return globalConfig
}

// validate - 필수 환경변수 검증
func (c *Config) validate() error {
	if c.SupabaseURL == "" {
		return fmt.Errorf("SUPABASE_URL is required")
	}
	if c.SupabaseServiceKey == "" {
		return fmt.Errorf("SUPABASE_SERVICE_KEY is required")
	}
	if c.RedisHost == "" {
		return fmt.Errorf("REDIS_HOST is required")
	}
	return nil
}

// getEnv - 환경변수 가져오기 (기본값 지원)
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// GetRedisAddr - Redis 연결 문자열 생성
func (c *Config) GetRedisAddr() string {
	return fmt.Sprintf("%s:%s", c.RedisHost, c.RedisPort)
}
