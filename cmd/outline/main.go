package main

import (
	"context"
	"database/sql"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
	"github.com/xxxsen/common/logger"
	"github.com/xxxsen/common/logutil"
	"github.com/xxxsen/common/webapi"
	"go.uber.org/zap"

	"github.com/outlinedev/outline/internal/ai"
	"github.com/outlinedev/outline/internal/config"
	"github.com/outlinedev/outline/internal/filestore"
	"github.com/outlinedev/outline/internal/handler"
	"github.com/outlinedev/outline/internal/job"
	"github.com/outlinedev/outline/internal/middleware"
	"github.com/outlinedev/outline/internal/repo"
	"github.com/outlinedev/outline/internal/schedule"
	"github.com/outlinedev/outline/internal/service"
)

func main() {
	var configPath string

	rootCmd := &cobra.Command{
		Use:   "outline",
		Short: "outline thesis editor backend",
	}

	runCmd := &cobra.Command{
		Use:   "run",
		Short: "run outline server",
		RunE: func(cmd *cobra.Command, args []string) error {
			if configPath == "" {
				return fmt.Errorf("--config is required")
			}
			cfg, err := config.Load(configPath)
			if err != nil {
				return err
			}
			logger.Init(
				cfg.LogConfig.File,
				cfg.LogConfig.Level,
				int(cfg.LogConfig.FileCount),
				int(cfg.LogConfig.FileSize),
				int(cfg.LogConfig.KeepDays),
				cfg.LogConfig.Console,
			)
			logutil.GetLogger(context.Background()).Info("config loaded", zap.String("config", configPath))

			db, err := repo.Open(cfg.DBPath)
			if err != nil {
				return fmt.Errorf("open db: %w", err)
			}
			if err := repo.ApplyMigrations(db); err != nil {
				return fmt.Errorf("migrations: %w", err)
			}
			return runServer(cfg, db)
		},
	}

	runCmd.Flags().StringVar(&configPath, "config", "", "path to config.json")
	rootCmd.AddCommand(runCmd)

	if err := rootCmd.Execute(); err != nil {
		logutil.GetLogger(context.Background()).Fatal("startup error", zap.Error(err))
	}
}

func runServer(cfg *config.Config, db *sql.DB) error {
	logutil.GetLogger(context.Background()).Info(
		"starting server",
		zap.Int("port", cfg.Port),
		zap.String("db_path", cfg.DBPath),
		zap.String("file_store", cfg.FileStore.Type),
		zap.String("ai_provider", cfg.AI.Provider),
	)

	userRepo := repo.NewUserRepo(db)
	docRepo := repo.NewDocumentRepo(db)
	assistRepo := repo.NewAssistResultRepo(db)

	store, err := filestore.New(cfg.FileStore)
	if err != nil {
		return fmt.Errorf("init file store: %w", err)
	}
	aiProvider, err := ai.NewProvider(cfg.AI.Provider, cfg.AI.Data)
	if err != nil {
		return fmt.Errorf("init ai provider: %w", err)
	}
	detector := ai.NewDetector(ai.DetectorConfig{
		APIKey:  cfg.Detector.APIKey,
		BaseURL: cfg.Detector.BaseURL,
		Timeout: cfg.Detector.TimeoutSecs,
	})
	speech := ai.NewSpeech(ai.SpeechConfig{
		APIKey:  cfg.Speech.APIKey,
		BaseURL: cfg.Speech.BaseURL,
		Timeout: cfg.Speech.TimeoutSecs,
	})

	sessions := service.NewSessionRegistry(time.Duration(cfg.Session.TTLMinutes) * time.Minute)
	authService := service.NewAuthService(userRepo, []byte(cfg.JWTSecret), time.Hour*time.Duration(cfg.JWTTTLHours))
	documentService := service.NewDocumentService(docRepo, assistRepo, sessions)
	importService := service.NewImportService(documentService, store, cfg.Parser.BaseURL,
		time.Duration(cfg.Parser.TimeoutSecs)*time.Second, cfg.Parser.MaxUploadMB)
	assistService := service.NewAssistService(documentService, userRepo, assistRepo,
		aiProvider, cfg.AI.Model, cfg.AI.MaxInputChars,
		detector, speech, store, cfg.Speech.DefaultVoice)
	generatorService := service.NewGeneratorService(aiProvider, cfg.AI.Model)
	exportService := service.NewExportService(documentService)

	deps := handler.RouterDeps{
		Auth:         handler.NewAuthHandler(authService),
		Documents:    handler.NewDocumentHandler(documentService),
		Editor:       handler.NewEditorHandler(documentService),
		Import:       handler.NewImportHandler(importService),
		Assist:       handler.NewAssistHandler(assistService),
		Generator:    handler.NewGeneratorHandler(generatorService, documentService),
		Export:       handler.NewExportHandler(exportService),
		Files:        handler.NewFileHandler(store),
		JWTSecret:    []byte(cfg.JWTSecret),
		AssistWindow: 2 * time.Second,
	}

	engine, err := webapi.NewEngine(
		"/api/v1",
		fmt.Sprintf("0.0.0.0:%d", cfg.Port),
		webapi.WithRegister(func(group *gin.RouterGroup) {
			handler.RegisterRoutes(group, deps)
		}),
		webapi.WithExtraMiddlewares(
			middleware.RequestID(),
			middleware.CORS(cfg.CORSOrigins),
			gzip.Gzip(gzip.DefaultCompression),
		),
	)
	if err != nil {
		return fmt.Errorf("init web engine: %w", err)
	}
	logutil.GetLogger(context.Background()).Info("http server listening", zap.String("addr", fmt.Sprintf("0.0.0.0:%d", cfg.Port)))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	scheduler := schedule.NewCronScheduler()
	if err := scheduler.AddJob(job.NewSessionCleanupJob(documentService), "*/10 * * * *"); err != nil {
		return fmt.Errorf("schedule session cleanup: %w", err)
	}
	if err := scheduler.AddJob(job.NewAssistCleanupJob(docRepo, assistRepo), "0 3 * * *"); err != nil {
		return fmt.Errorf("schedule assist cleanup: %w", err)
	}
	scheduler.Start(ctx)
	defer scheduler.Stop()

	go func() {
		if err := engine.Run(); err != nil && err != http.ErrServerClosed {
			logutil.GetLogger(context.Background()).Error("server error", zap.Error(err))
		}
	}()

	<-ctx.Done()
	logutil.GetLogger(context.Background()).Info("server stopping...")
	if err := documentService.CloseAllSessions(context.Background()); err != nil {
		logutil.GetLogger(context.Background()).Error("final session flush failed", zap.Error(err))
	}
	return nil
}
