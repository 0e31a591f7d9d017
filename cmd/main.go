package main

import (
	"context"
	"log"
	"net/http"
	"time"

	"github.com/Vovarama1992/go-utils/logger"

	"github.com/Vovarama1992/voice_translator/internal/ai"
	"github.com/Vovarama1992/voice_translator/internal/config"
	"github.com/Vovarama1992/voice_translator/internal/delivery"
	"github.com/Vovarama1992/voice_translator/internal/error_notificator"
	"github.com/Vovarama1992/voice_translator/internal/languages"
	"github.com/Vovarama1992/voice_translator/internal/pipeline"
	"github.com/Vovarama1992/voice_translator/internal/session"
	"github.com/Vovarama1992/voice_translator/internal/speech"
	"github.com/Vovarama1992/voice_translator/internal/storage"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"go.uber.org/zap"
)

func main() {

	// =========================================================================
	// ENV / LOGGER
	// =========================================================================

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	baseLogger, _ := zap.NewProduction()
	defer baseLogger.Sync()
	sugar := baseLogger.Sugar()
	zl := logger.NewZapLogger(sugar)

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	// =========================================================================
	// ERROR NOTIFICATION
	// =========================================================================

	var errInfra error_notificator.Notificator = error_notificator.LogInfra{}
	if cfg.TelegramBotToken != "" {
		tg, err := error_notificator.NewTelegramInfra(cfg.TelegramBotToken, cfg.AdminChatID)
		if err != nil {
			log.Fatalf("failed to init telegram notifier: %v", err)
		}
		errInfra = tg
	}
	errService := error_notificator.NewService(errInfra)

	// =========================================================================
	// CLIENTS (STT / CHAT / TTS)
	// =========================================================================

	openAIClient := ai.NewOpenAIClient(cfg.OpenAIAPIKey, cfg.STTModel)

	var ttsClient speech.TTSClient
	switch cfg.TTSBackend {
	case "elevenlabs":
		ttsClient = speech.NewElevenLabsClient(cfg.ElevenLabsAPIKey, cfg.ElevenLabsVoiceID)
	default:
		google, err := speech.NewGoogleTTSClient(ctx, cfg.GoogleCredentials)
		if err != nil {
			log.Fatalf("failed to init google tts: %v", err)
		}
		defer google.Close()
		ttsClient = google
	}

	tokens, err := ai.NewTiktokenCounter(cfg.ChatModel)
	if err != nil {
		sugar.Warnw("history token accounting disabled", "error", err)
		tokens = nil
	}

	// =========================================================================
	// AUDIO SINK
	// =========================================================================

	var sink storage.Sink = storage.MemorySink{}
	switch cfg.AudioSink {
	case "file":
		sink = storage.NewFileStore(cfg.AudioDir)
	case "s3":
		s3Client, err := storage.NewS3Client(ctx, storage.S3Config{
			Endpoint:  cfg.S3Endpoint,
			AccessKey: cfg.S3AccessKey,
			SecretKey: cfg.S3SecretKey,
			Bucket:    cfg.S3Bucket,
			Region:    cfg.S3Region,
		})
		if err != nil {
			log.Fatalf("failed to init s3: %v", err)
		}
		sink = storage.NewS3Store(s3Client)
	}

	// =========================================================================
	// DOMAIN SERVICES
	// =========================================================================

	catalog := languages.NewDefaultCatalog()

	speechService := speech.NewService(
		openAIClient, // Whisper
		ttsClient,
		sugar.Named("speech"),
		speech.Options{STTTimeout: cfg.STTTimeout, TTSTimeout: cfg.TTSTimeout},
	)

	translator := ai.NewTranslationService(
		openAIClient,
		tokens,
		sugar.Named("translation"),
		ai.TranslatorOptions{
			Model:     cfg.ChatModel,
			Timeout:   cfg.ChatTimeout,
			TokenWarn: cfg.HistoryTokenWarn,
		},
	)

	orchestrator := pipeline.NewOrchestrator(
		catalog,
		speechService,
		translator,
		speechService,
		sink,
		errService,
		sugar.Named("pipeline"),
	)

	sessions := session.NewStore()

	// =========================================================================
	// HTTP ROUTER
	// =========================================================================

	r := chi.NewRouter()
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type", "X-Session-ID"},
		ExposedHeaders: []string{"X-Session-ID"},
	}))

	delivery.RegisterRoutes(
		r,
		delivery.NewTranslateHandler(orchestrator, sessions, zl),
		delivery.NewLanguageHandler(catalog),
		cfg.RateLimitPerMin,
	)

	// =========================================================================
	// START SERVER
	// =========================================================================

	addr := ":" + cfg.Port
	zl.Log(logger.LogEntry{
		Level:   "info",
		Message: "listening at " + addr,
		Service: "voice_translator",
	})

	srv := &http.Server{
		Addr:              addr,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}
	if err := srv.ListenAndServe(); err != nil {
		log.Fatalf("server error: %v", err)
	}
}
