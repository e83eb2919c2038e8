package main

import (
	"fmt"
	"net/http"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"receiptbook/models"
	"receiptbook/pkg/extract"
	"receiptbook/pkg/interpret"
	"receiptbook/pkg/ledger"
)

type server struct {
	db     *gorm.DB
	cfg    Config
	interp *interpret.Interpreter
}

const maxUploadBytes = 5 * 1024 * 1024

var allowedImageExts = map[string]bool{".png": true, ".jpg": true, ".jpeg": true}

func setupRoutes(r *gin.Engine, s *server) {
	r.POST("/register", s.registerHandler)
	r.POST("/login", s.loginHandler)
	authGroup := r.Group("")
	authGroup.Use(jwtAuthMiddleware([]byte(s.cfg.JWTSecret)))
	authGroup.POST("/entries", s.createEntryHandler)
	authGroup.GET("/entries", s.listEntriesHandler)
	authGroup.POST("/receipts", s.uploadReceiptHandler)
	authGroup.GET("/receipts", s.listReceiptsHandler)
	authGroup.GET("/receipts/:id", s.getReceiptHandler)
	authGroup.GET("/summary", s.yearlySummaryHandler)
	authGroup.Static("/uploads", s.cfg.UploadDir)
}

func (s *server) registerHandler(c *gin.Context) {
	var req struct {
		Username string `json:"username" binding:"required"`
		Password string `json:"password" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := registerUser(s.db, req.Username, req.Password); err != nil {
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "user registered successfully"})
}

func (s *server) loginHandler(c *gin.Context) {
	var req struct {
		Username string `json:"username" binding:"required"`
		Password string `json:"password" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	user, err := authenticate(s.db, req.Username, req.Password)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
		return
	}
	token, err := issueToken([]byte(s.cfg.JWTSecret), user.Username)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to generate token"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "login successful", "token": token})
}

// createEntryHandler records a manual ledger entry. Invalid input is
// rejected before any write.
func (s *server) createEntryHandler(c *gin.Context) {
	var req struct {
		EntryType string           `json:"entry_type" binding:"required"`
		Amount    *decimal.Decimal `json:"amount" binding:"required"`
		Category  string           `json:"category"`
		Note      string           `json:"note"`
		EntryDate string           `json:"entry_date"` // optional, any accepted date shape
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if !models.ValidEntryType(req.EntryType) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "entry_type must be income or expense"})
		return
	}
	if req.Amount.IsNegative() {
		c.JSON(http.StatusBadRequest, gin.H{"error": "amount must be non-negative"})
		return
	}
	entryDate := time.Now().Format(extract.CanonicalDateLayout)
	if req.EntryDate != "" {
		normalized, err := extract.NormalizeDate(req.EntryDate)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "entry_date not recognized"})
			return
		}
		entryDate = normalized
	}
	entry := models.Entry{
		EntryType: req.EntryType,
		Amount:    *req.Amount,
		Category:  req.Category,
		Note:      req.Note,
		EntryDate: entryDate,
	}
	if err := s.db.Create(&entry).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "create failed"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"id": entry.ID})
}

func (s *server) listEntriesHandler(c *gin.Context) {
	limit := 200
	if v := c.Query("limit"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 && n <= 1000 {
			limit = n
		}
	}
	var entries []models.Entry
	if err := s.db.Order("entry_date desc, created_at desc").Limit(limit).Find(&entries).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "query failed"})
		return
	}
	c.JSON(http.StatusOK, entries)
}

// uploadReceiptHandler stores the uploaded image, interprets it and
// materializes the result. OCR problems and an undetected amount are
// warnings in the response, never failures.
func (s *server) uploadReceiptHandler(c *gin.Context) {
	file, err := c.FormFile("receipt")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "receipt image missing"})
		return
	}
	if file.Size > maxUploadBytes {
		c.JSON(http.StatusBadRequest, gin.H{"error": "file too large (max 5MB)"})
		return
	}
	if !allowedImageExts[strings.ToLower(filepath.Ext(file.Filename))] {
		c.JSON(http.StatusBadRequest, gin.H{"error": "upload a PNG or JPG image"})
		return
	}
	filename := fmt.Sprintf("%d_%s", time.Now().UnixNano(), sanitizeFilename(file.Filename))
	fullPath := filepath.Join(s.cfg.UploadDir, filename)
	if err := c.SaveUploadedFile(file, fullPath); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "save failed"})
		return
	}

	res := s.interp.Interpret(c.Request.Context(), fullPath)
	receipt, err := ledger.MaterializeReceipt(s.db, filename, res)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "db save failed"})
		return
	}

	var warnings []string
	if res.Amount == nil {
		warnings = append(warnings, "amount was not detected")
	}
	if res.OCRError != "" {
		warnings = append(warnings, res.OCRError)
	}
	logger.Info().
		Uint("receipt_id", receipt.ID).
		Str("file", filename).
		Bool("amount_detected", res.Amount != nil).
		Str("detected_date", res.Date).
		Msg("receipt processed")
	c.JSON(http.StatusOK, gin.H{
		"id":              receipt.ID,
		"filename":        filename,
		"entry_id":        receipt.EntryID,
		"detected_amount": res.Amount,
		"detected_date":   res.Date,
		"warnings":        warnings,
	})
}

func (s *server) listReceiptsHandler(c *gin.Context) {
	var receipts []models.Receipt
	if err := s.db.Preload("Entry").Order("created_at desc").Limit(100).Find(&receipts).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "query failed"})
		return
	}
	c.JSON(http.StatusOK, receipts)
}

func (s *server) getReceiptHandler(c *gin.Context) {
	var receipt models.Receipt
	if err := s.db.Preload("Entry").First(&receipt, c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
		return
	}
	c.JSON(http.StatusOK, receipt)
}

// yearlySummaryHandler reports income/expense totals for a year, broken
// down by month, plus expense totals by category. EntryDate is the
// canonical YYYY-MM-DD string, so year and month are substrings.
func (s *server) yearlySummaryHandler(c *gin.Context) {
	year := c.Query("year")
	if year == "" {
		year = strconv.Itoa(time.Now().Year())
	}

	var totals struct {
		TotalIncome  decimal.Decimal
		TotalExpense decimal.Decimal
	}
	if err := s.db.Model(&models.Entry{}).
		Select(`coalesce(sum(case when entry_type = 'income' then amount else 0 end), 0) as total_income,
			coalesce(sum(case when entry_type = 'expense' then amount else 0 end), 0) as total_expense`).
		Where("substr(entry_date, 1, 4) = ?", year).
		Scan(&totals).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "query failed"})
		return
	}

	type monthRow struct {
		Month   string          `json:"month"`
		Income  decimal.Decimal `json:"income"`
		Expense decimal.Decimal `json:"expense"`
	}
	var monthly []monthRow
	if err := s.db.Model(&models.Entry{}).
		Select(`substr(entry_date, 6, 2) as month,
			coalesce(sum(case when entry_type = 'income' then amount else 0 end), 0) as income,
			coalesce(sum(case when entry_type = 'expense' then amount else 0 end), 0) as expense`).
		Where("substr(entry_date, 1, 4) = ?", year).
		Group("month").Order("month").
		Scan(&monthly).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "query failed"})
		return
	}

	type categoryRow struct {
		Category string          `json:"category"`
		Total    decimal.Decimal `json:"total"`
	}
	var categories []categoryRow
	if err := s.db.Model(&models.Entry{}).
		Select("category, sum(amount) as total").
		Where("entry_type = ? AND substr(entry_date, 1, 4) = ?", models.EntryTypeExpense, year).
		Group("category").Order("total desc").
		Scan(&categories).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "query failed"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"year":          year,
		"total_income":  totals.TotalIncome,
		"total_expense": totals.TotalExpense,
		"net":           totals.TotalIncome.Sub(totals.TotalExpense),
		"monthly":       monthly,
		"categories":    categories,
	})
}

var unsafeFilenameChars = regexp.MustCompile(`[^a-zA-Z0-9._-]+`)

// sanitizeFilename strips path components and characters outside
// [a-zA-Z0-9._-] so phone-generated names are safe to store on disk.
func sanitizeFilename(name string) string {
	base := filepath.Base(name)
	ext := strings.ToLower(filepath.Ext(base))
	stem := strings.TrimSuffix(base, filepath.Ext(base))
	stem = unsafeFilenameChars.ReplaceAllString(stem, "")
	if len(stem) > 64 {
		stem = stem[:64]
	}
	if stem == "" {
		stem = "receipt"
	}
	return stem + ext
}
