package config

import (
	"os"
	"time"
)

const (
	IsProd = false

	TraceIdKey  = "traceId"
	IdentityKey = "callerIdentity"

	RateLimitPerSecond      = 2
	BurstRateLimitPerSecond = 5

	//entity validation
	NoteTextMinLen = 1
	NoteTextMaxLen = 5000

	//embedding model
	EmbeddingModel     = "sentence-transformers/all-MiniLM-L6-v2"
	EmbeddingDimension = 384

	//chat model
	ChatProviderGroq    = "groq"
	ChatProviderGemini  = "gemini"
	GroqChatModel       = "llama-3.3-70b-versatile"
	GeminiChatModel     = "gemini-2.5-flash"
	DescriptionQuestion = "Please generate a one sentence description for this document."
	NoAnswerFallback    = "Could not generate a response"

	//worker pool
	RequestsPerNewWorkerCount int64 = 10
	MaxWorkerCount            int64 = 10
	MinWorkerCount            int64 = 1
	IdleWorkerTimeout               = 1 * time.Minute
	TaskBufferLimit                 = 100
	MaxTaskAttempts                 = 3
	TaskRetryDelay                  = 5 * time.Second
	TaskTimeout                     = 60 * time.Second

	//timeouts on remote model/storage calls
	RemoteCallTimeout = 30 * time.Second

	//serverTimeouts
	ReadTimeout            = 5 * time.Second
	WriteTimeout           = 60 * time.Second
	IdleTimeout            = 120 * time.Second
	ShutdownContextTimeout = 10 * time.Second

	ServerListenAddr = ":3000"

	//redis has 16 DBs we can use
	RedisEntityDB = 0
	RedisChatDB   = 1

	UploadURLExpiry = 15 * time.Minute
)

func RedisAddr() string {
	return envOr("REDIS_ADDR", "127.0.0.1:6379")
}

func HuggingFaceBaseURL() string {
	return envOr("HF_BASE_URL", "https://router.huggingface.co/hf-inference/pipeline/feature-extraction")
}

func HuggingFaceAPIKey() string {
	return os.Getenv("HF_API_KEY")
}

func ChatProvider() string {
	return envOr("CHAT_PROVIDER", ChatProviderGroq)
}

func GroqBaseURL() string {
	return envOr("GROQ_BASE_URL", "https://api.groq.com/openai/v1")
}

func GroqAPIKey() string {
	return os.Getenv("GROQ_API_KEY")
}

func GeminiAPIKey() string {
	return os.Getenv("GEMINI_API_KEY")
}

func S3Bucket() string {
	return os.Getenv("S3_BUCKET")
}

func S3Region() string {
	return envOr("S3_REGION", "us-east-1")
}

func S3Endpoint() string {
	return os.Getenv("S3_ENDPOINT")
}

func S3AccessKey() string {
	return os.Getenv("S3_ACCESS_KEY")
}

func S3SecretKey() string {
	return os.Getenv("S3_SECRET_KEY")
}

func envOr(key string, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
