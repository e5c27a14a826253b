package main

import (
	"context"
	"database/sql"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	_ "github.com/mattn/go-sqlite3"

	"github.com/exam-vault/internal/config"
	"github.com/exam-vault/internal/database"
	"github.com/exam-vault/internal/extraction"
	"github.com/exam-vault/internal/jobs"
	"github.com/exam-vault/internal/logger"
	"github.com/exam-vault/internal/ocr"
	"github.com/exam-vault/internal/pdf"
	"github.com/exam-vault/internal/queue"
	"github.com/exam-vault/internal/server"
	"github.com/exam-vault/internal/server/middleware"
	"github.com/exam-vault/internal/worker"
)

var configPath = flag.String("config", "", "Path to config file (YAML)")

func main() {
	flag.Parse()

	// .env is optional; real deployments use the environment directly
	_ = godotenv.Load()

	cfg, err := config.LoadConfig(*configPath)
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	if _, err := logger.Init(cfg.LogFile); err != nil {
		log.Fatalf("failed to initialize logger: %v", err)
	}

	if err := os.MkdirAll(cfg.UploadsDir, 0755); err != nil {
		logger.Fatalf("failed to create uploads directory: %v", err)
	}

	db, err := sql.Open("sqlite3", cfg.DBPath)
	if err != nil {
		logger.Fatalf("failed to open sqlite database: %v", err)
	}
	defer db.Close()

	store, err := database.NewPaperStore(db)
	if err != nil {
		logger.Fatalf("failed to initialize paper store: %v", err)
	}
	events, err := database.NewEventLogger(db)
	if err != nil {
		logger.Fatalf("failed to initialize event logger: %v", err)
	}

	rasterizer := pdf.NewRasterizer(cfg.UploadsDir)
	recognizer := ocr.NewTesseractRecognizer()
	accumulator := extraction.NewAccumulator(rasterizer, recognizer, cfg.OCRLanguage)
	segmenter := extraction.NewSegmenter(cfg.Institution)
	pipeline := extraction.NewPipeline(accumulator, segmenter, store)

	// Redis job queue is optional; without it uploads run synchronously only.
	ctx := context.Background()
	var jobQueue queue.Queue
	var workerCancel context.CancelFunc

	redisClient, err := config.NewRedisClient(ctx, cfg)
	if err != nil {
		logger.Warnf("failed to connect to Redis: %v, async uploads will not be available", err)
	} else {
		queueKey := os.Getenv("JOB_QUEUE_KEY")
		jobQueue, err = queue.NewRedisQueue(redisClient, queueKey)
		if err != nil {
			logger.Fatalf("failed to create job queue: %v", err)
		}

		workerCtx, cancel := context.WithCancel(ctx)
		workerCancel = cancel

		extractHandler := jobs.NewExtractHandler(pipeline, events)
		handler := func(ctx context.Context, job queue.Job) error {
			switch job.Type {
			case jobs.JobTypeExtractPaper:
				return extractHandler(ctx, job)
			default:
				logger.Warnf("unknown job type: %s", job.Type)
				return nil
			}
		}

		go func() {
			logger.Printf("Starting %d background workers", cfg.WorkerCount)
			if err := worker.StartWorkers(workerCtx, jobQueue, handler, cfg.WorkerCount); err != nil {
				logger.Errorf("worker error: %v", err)
			}
		}()
	}

	httpServer := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.HTTPPort),
		Handler: routes(pipeline, store, events, jobQueue, cfg.UploadsDir),
	}

	go func() {
		logger.Printf("HTTP server listening on %d", cfg.HTTPPort)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatalf("HTTP server error: %v", err)
		}
	}()

	waitForShutdown(httpServer, workerCancel)
}

func routes(pipeline *extraction.Pipeline, store *database.PaperStore, events *database.EventLogger, jobQueue queue.Queue, uploadsDir string) http.Handler {
	mux := http.NewServeMux()

	uploadHandler := server.NewUploadHandler(pipeline, events, jobQueue, uploadsDir)
	papersHandler := server.NewPapersHandler(store)
	eventsHandler := server.NewEventsHandler(events)

	mux.HandleFunc("/api/v1/health", server.HandleHealth)
	mux.HandleFunc("/api/v1/events", eventsHandler.HandleRecent)
	mux.HandleFunc("/api/v1/papers/upload", uploadHandler.HandleUpload)
	mux.HandleFunc("/api/v1/papers/export", papersHandler.HandleExport)
	mux.HandleFunc("/api/v1/papers", papersHandler.HandleList)
	mux.HandleFunc("/api/v1/papers/", papersHandler.HandleQuestions)
	mux.HandleFunc("/ws/logs", server.HandleLogStream)

	return middleware.TrafficLogger(mux)
}

func waitForShutdown(httpServer *http.Server, workerCancel context.CancelFunc) {
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	logger.Printf("Shutting down server...")

	if workerCancel != nil {
		workerCancel()
	}

	if err := httpServer.Shutdown(ctx); err != nil {
		logger.Errorf("HTTP shutdown error: %v", err)
	}
}
