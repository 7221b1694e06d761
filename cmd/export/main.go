package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/PhunsokNorboo/End-to-End-E-Commerce-Business-Intelligence-Analysis/internal/analytics/repository"
	"github.com/PhunsokNorboo/End-to-End-E-Commerce-Business-Intelligence-Analysis/internal/analytics/service"
	"github.com/PhunsokNorboo/End-to-End-E-Commerce-Business-Intelligence-Analysis/internal/config"
	"github.com/PhunsokNorboo/End-to-End-E-Commerce-Business-Intelligence-Analysis/internal/export"
	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var (
	Version   = "dev"
	BuildTime = "unknown"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	zapLogger, err := initLogger(cfg.Log)
	if err != nil {
		log.Fatalf("Failed to init logger: %v", err)
	}
	defer zapLogger.Sync()

	zapLogger.Info("Starting export",
		zap.String("version", Version),
		zap.String("build_time", BuildTime),
		zap.String("driver", cfg.Database.Driver),
		zap.String("output_dir", cfg.Export.OutputDir),
		zap.String("format", cfg.Export.Format),
	)

	db, err := initDatabase(cfg.Database)
	if err != nil {
		zapLogger.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer func() {
		if sqlDB, err := db.DB(); err == nil {
			sqlDB.Close()
		}
	}()

	var analysisDate *time.Time
	if cfg.Export.AnalysisDate != "" {
		d, err := time.Parse("2006-01-02", cfg.Export.AnalysisDate)
		if err != nil {
			zapLogger.Fatal("Invalid analysis date", zap.Error(err))
		}
		analysisDate = &d
	}

	repos := repository.NewRepositories(db)
	services := service.NewServices(repos, analysisDate)
	runID := uuid.New().String()

	var sink export.Sink
	switch cfg.Export.Format {
	case "xlsx":
		sink = export.NewExcelSink(cfg.Export.OutputDir)
	default:
		sink = export.NewCSVSink(cfg.Export.OutputDir)
	}

	if cfg.MinIO.Enabled {
		client, err := minio.New(cfg.MinIO.Endpoint, &minio.Options{
			Creds:  credentials.NewStaticV4(cfg.MinIO.AccessKey, cfg.MinIO.SecretKey, ""),
			Secure: cfg.MinIO.UseSSL,
		})
		if err != nil {
			zapLogger.Fatal("Failed to init MinIO client", zap.Error(err))
		}
		sink = export.NewMinIOSink(sink, client, cfg.MinIO.Bucket, runID)
	}

	pipeline := service.NewPipeline(services, sink, zapLogger, runID)

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if err := pipeline.Run(ctx); err != nil {
		zapLogger.Fatal("Export run failed", zap.Error(err))
	}
}

func initLogger(cfg config.LogConfig) (*zap.Logger, error) {
	var zapCfg zap.Config

	if cfg.Format == "json" {
		zapCfg = zap.NewProductionConfig()
	} else {
		zapCfg = zap.NewDevelopmentConfig()
	}

	switch cfg.Level {
	case "debug":
		zapCfg.Level = zap.NewAtomicLevelAt(zap.DebugLevel)
	case "info":
		zapCfg.Level = zap.NewAtomicLevelAt(zap.InfoLevel)
	case "warn":
		zapCfg.Level = zap.NewAtomicLevelAt(zap.WarnLevel)
	case "error":
		zapCfg.Level = zap.NewAtomicLevelAt(zap.ErrorLevel)
	}

	return zapCfg.Build()
}

func initDatabase(cfg config.DatabaseConfig) (*gorm.DB, error) {
	gormConfig := &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	}

	var dialector gorm.Dialector
	switch cfg.Driver {
	case "postgres":
		dsn := fmt.Sprintf(
			"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
			cfg.Host, cfg.Port, cfg.User, cfg.Password, cfg.DBName, cfg.SSLMode,
		)
		dialector = postgres.Open(dsn)
	default:
		dialector = sqlite.Open(cfg.Path)
	}

	db, err := gorm.Open(dialector, gormConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database instance: %w", err)
	}

	sqlDB.SetMaxOpenConns(cfg.MaxOpenConns)
	sqlDB.SetMaxIdleConns(cfg.MaxIdleConns)
	sqlDB.SetConnMaxLifetime(cfg.ConnMaxLifetime)

	return db, nil
}
