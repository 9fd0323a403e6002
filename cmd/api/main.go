package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/aanandhisonduri/BigBrain/internal/auth"
	"github.com/aanandhisonduri/BigBrain/internal/blob"
	"github.com/aanandhisonduri/BigBrain/internal/blob/memblob"
	"github.com/aanandhisonduri/BigBrain/internal/blob/s3blob"
	"github.com/aanandhisonduri/BigBrain/internal/chat"
	"github.com/aanandhisonduri/BigBrain/internal/config"
	"github.com/aanandhisonduri/BigBrain/internal/data/redisstore"
	"github.com/aanandhisonduri/BigBrain/internal/data/store"
	"github.com/aanandhisonduri/BigBrain/internal/embedding/huggingface"
	"github.com/aanandhisonduri/BigBrain/internal/handlers"
	"github.com/aanandhisonduri/BigBrain/internal/llm"
	"github.com/aanandhisonduri/BigBrain/internal/llm/gemini"
	"github.com/aanandhisonduri/BigBrain/internal/llm/groq"
	"github.com/aanandhisonduri/BigBrain/internal/pipeline"
	"github.com/aanandhisonduri/BigBrain/internal/search"
	"github.com/aanandhisonduri/BigBrain/internal/server"
	"github.com/aanandhisonduri/BigBrain/internal/worker"
	"github.com/aanandhisonduri/BigBrain/pkg/logging"
)

var (
	listenAddr        string
	stopWorkerChannel chan bool
	workerWaitGroup   sync.WaitGroup
)

func main() {

	logging.Init(config.IsProd)
	var logger = logging.NewLogger("main")

	flag.StringVar(&listenAddr, "listen-addr", config.ServerListenAddr, "server listen address")
	flag.Parse()

	serviceContext, closeExternalServices := context.WithCancel(context.Background())
	defer closeExternalServices()

	//stores; redis first, in-memory when offline
	var notes store.NoteStore
	var documents store.DocumentStore
	var chats store.ChatStore

	entityDB := redisstore.Connect(serviceContext, config.RedisEntityDB)
	chatDB := redisstore.Connect(serviceContext, config.RedisChatDB)
	if entityDB == nil || chatDB == nil {
		logger.Error("Redis is offline, falling back to in-memory stores")
		notes = store.NewInMemoryNoteStore()
		documents = store.NewInMemoryDocumentStore()
		chats = store.NewInMemoryChatStore()
	} else {
		notes = store.NewRedisNoteStore(entityDB)
		documents = store.NewRedisDocumentStore(entityDB)
		chats = store.NewRedisChatStore(chatDB)
	}

	//blob storage; S3 when a bucket is configured
	var files blob.FileStore
	if config.S3Bucket() != "" {
		s3Store, err := s3blob.NewStore(serviceContext, s3blob.Config{
			Bucket:       config.S3Bucket(),
			Region:       config.S3Region(),
			Endpoint:     config.S3Endpoint(),
			AccessKey:    config.S3AccessKey(),
			SecretKey:    config.S3SecretKey(),
			UploadExpiry: config.UploadURLExpiry,
		})
		if err != nil {
			logger.Error("Could not initialize S3 storage", "error", err)
			return
		}
		files = s3Store
	} else {
		logger.Warn("No S3 bucket configured, files are held in memory")
		files = memblob.NewStore()
	}

	embedder := huggingface.NewClient(huggingface.Config{
		BaseURL:   config.HuggingFaceBaseURL(),
		APIKey:    config.HuggingFaceAPIKey(),
		Model:     config.EmbeddingModel,
		Dimension: config.EmbeddingDimension,
		Timeout:   config.RemoteCallTimeout,
	})

	var provider llm.Provider
	if config.ChatProvider() == config.ChatProviderGemini {
		geminiClient, err := gemini.NewClient(serviceContext, config.GeminiAPIKey(), config.GeminiChatModel)
		if err != nil {
			logger.Error("Could not initialize the Gemini client", "error", err)
			return
		}
		provider = geminiClient
	} else {
		provider = groq.NewClient(config.GroqAPIKey(), config.GroqBaseURL(), config.GroqChatModel)
	}

	gate := auth.NewGate(notes, documents)
	embeddings := pipeline.New(embedder, notes, documents)
	descriptions := pipeline.NewDescriptionGenerator(documents, files, provider, embeddings)
	searchEngine := search.NewEngine(embedder, notes, documents)
	orchestrator := chat.NewOrchestrator(gate, files, provider, chats)

	//worker pool
	stopWorkerChannel = make(chan bool, 1)
	queue := worker.NewQueue(config.TaskBufferLimit)
	pool := worker.NewPool(queue, embeddings, descriptions, stopWorkerChannel, &workerWaitGroup)
	pool.Start()

	handler := handlers.NewHandler(handlers.Config{
		Notes:     notes,
		Documents: documents,
		Chats:     chats,
		Files:     files,
		Scheduler: queue,
		Search:    searchEngine,
		Chat:      orchestrator,
		Gate:      gate,
	})

	//server handling
	gracefulShutdown := make(chan os.Signal, 1)
	signal.Notify(gracefulShutdown, syscall.SIGINT, syscall.SIGTERM)
	stopExecution := make(chan bool, 1)

	shutdownParams := server.ShutdownParams{
		GracefulShutdown: gracefulShutdown,
		StopExecution:    stopExecution,
		WorkerStop:       stopWorkerChannel,
		Group:            &workerWaitGroup,
		CloseServices:    closeExternalServices,
	}
	go server.ShutDownHandler(shutdownParams)
	go server.CreateServer(listenAddr, handler)

	<-stopExecution
	logger.Info("Server stopped")
}
