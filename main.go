package main

import (
	"os"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"receiptbook/pkg/interpret"
	"receiptbook/pkg/ocr"
)

var logger zerolog.Logger

func main() {
	cfg := loadConfig()
	logger = newLogger(cfg.LogLevel)

	// Lightweight migrate command: `./receiptbook migrate` runs AutoMigrate
	// and seeding then exits. Useful for CI or manual DB setup.
	if len(os.Args) > 1 && os.Args[1] == "migrate" {
		initDB(cfg)
		logger.Info().Msg("migration and seeding completed")
		return
	}

	db := initDB(cfg)

	var engine ocr.Engine
	if cfg.OCREnabled {
		engine = ocr.NewTesseract(cfg.OCRLanguage)
	} else {
		logger.Warn().Msg("OCR disabled; receipts will be saved without extracted text")
	}

	srv := &server{
		db:     db,
		cfg:    cfg,
		interp: interpret.New(engine, cfg.OCRTimeout),
	}

	r := gin.Default()
	setupRoutes(r, srv)

	if err := r.Run(cfg.Addr); err != nil {
		logger.Fatal().Err(err).Msg("server exited")
	}
}

func newLogger(level string) zerolog.Logger {
	lvl, err := zerolog.ParseLevel(level)
	if err != nil || lvl == zerolog.NoLevel {
		lvl = zerolog.InfoLevel
	}
	return zerolog.New(zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.RFC3339}).
		Level(lvl).
		With().
		Timestamp().
		Logger()
}
