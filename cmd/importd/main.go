// Command importd bulk-imports receipt images from a drop directory:
// every image without a Receipt row is interpreted and materialized (an
// expense Entry is auto-created when an amount is detected). With -watch
// it keeps running and picks up newly dropped files via fsnotify.
package main

import (
	"context"
	"flag"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"receiptbook/models"
	"receiptbook/pkg/interpret"
	"receiptbook/pkg/ledger"
	"receiptbook/pkg/ocr"
)

var logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339}).
	With().Timestamp().Logger()

var imageExts = map[string]bool{".png": true, ".jpg": true, ".jpeg": true}

func main() {
	dirFlag := flag.String("dir", "uploads", "directory to scan for receipt images")
	watch := flag.Bool("watch", false, "watch the directory for new files")
	workers := flag.Int("workers", 4, "worker pool size")
	dryRun := flag.Bool("dry-run", false, "interpret only; skip all DB writes")
	flag.Parse()
	// at least one worker, or nothing ever drains jobs
	poolSize := clampWorkers(*workers)

	_ = godotenv.Load()

	var engine ocr.Engine
	if !isFalse(os.Getenv("OCR_ENABLED")) {
		engine = ocr.NewTesseract(os.Getenv("OCR_LANGUAGE"))
	}
	timeout := 30 * time.Second
	if v := os.Getenv("OCR_TIMEOUT"); v != "" {
		if d, err := time.ParseDuration(v); err == nil && d > 0 {
			timeout = d
		}
	}
	interp := interpret.New(engine, timeout)

	var db *gorm.DB
	if !*dryRun {
		db = mustOpenDB()
	}

	files, err := listImageFiles(*dirFlag)
	if err != nil {
		logger.Fatal().Err(err).Str("dir", *dirFlag).Msg("scan failed")
	}
	logger.Info().Int("files", len(files)).Str("dir", *dirFlag).Msg("scanning for receipt images")

	jobs := make(chan string)
	var wg sync.WaitGroup
	for i := 0; i < poolSize; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for name := range jobs {
				processFile(db, interp, *dirFlag, name, *dryRun)
			}
		}()
	}
	for _, f := range files {
		jobs <- f
	}

	if *watch {
		watchDir(*dirFlag, jobs) // blocks until the watcher dies
	}
	close(jobs)
	wg.Wait()
}

func mustOpenDB() *gorm.DB {
	dsn := os.Getenv("DB_DSN")
	if dsn == "" {
		logger.Fatal().Msg("DB_DSN must be set in environment to run this tool")
	}
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to connect to database")
	}
	return db
}

func listImageFiles(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}
	var out []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		if imageExts[strings.ToLower(filepath.Ext(e.Name()))] {
			out = append(out, e.Name())
		}
	}
	sort.Strings(out)
	return out, nil
}

// processFile interprets one image and persists the result, skipping
// files that already have a Receipt row.
func processFile(db *gorm.DB, interp *interpret.Interpreter, dir, name string, dryRun bool) {
	if db != nil {
		var count int64
		db.Model(&models.Receipt{}).Where("filename = ?", name).Count(&count)
		if count > 0 {
			return
		}
	}
	res := interp.Interpret(context.Background(), filepath.Join(dir, name))
	if dryRun {
		evt := logger.Info().Str("file", name).Str("date", res.Date)
		if res.Amount != nil {
			evt = evt.Str("amount", res.Amount.String())
		}
		if res.OCRError != "" {
			evt = evt.Str("ocr_error", res.OCRError)
		}
		evt.Msg("dry-run")
		return
	}
	receipt, err := ledger.MaterializeReceipt(db, name, res)
	if err != nil {
		logger.Error().Err(err).Str("file", name).Msg("materialize failed")
		return
	}
	logger.Info().
		Str("file", name).
		Uint("receipt_id", receipt.ID).
		Bool("amount_detected", res.Amount != nil).
		Msg("imported")
}

// watchDir feeds newly created image files into jobs until the watcher
// channel closes.
func watchDir(dir string, jobs chan<- string) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		logger.Fatal().Err(err).Msg("fsnotify watcher")
	}
	defer watcher.Close()
	if err := watcher.Add(dir); err != nil {
		logger.Fatal().Err(err).Str("dir", dir).Msg("watch dir")
	}
	logger.Info().Str("dir", dir).Msg("watching for new receipt images")
	for {
		select {
		case ev, ok := <-watcher.Events:
			if !ok {
				return
			}
			if ev.Op&(fsnotify.Create|fsnotify.Write) == 0 {
				continue
			}
			name := filepath.Base(ev.Name)
			if !imageExts[strings.ToLower(filepath.Ext(name))] {
				continue
			}
			// give the writer a moment to finish the file
			time.Sleep(500 * time.Millisecond)
			jobs <- name
		case err, ok := <-watcher.Errors:
			if !ok {
				return
			}
			logger.Warn().Err(err).Msg("watch error")
		}
	}
}

func clampWorkers(n int) int {
	if n < 1 {
		return 1
	}
	return n
}

func isFalse(v string) bool {
	switch strings.ToLower(v) {
	case "false", "0", "no":
		return true
	}
	return false
}
