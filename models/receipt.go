package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Receipt is the evidence record for an uploaded receipt image. EntryID is
// set if and only if an amount was detected at creation time and an Entry
// was auto-created; the reference is weak (the Receipt does not own the
// Entry's lifecycle).
type Receipt struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	Filename  string    `gorm:"size:255;not null" json:"filename"`
	// OCRText is nil when the OCR collaborator was unavailable or failed.
	OCRText        *string             `gorm:"column:ocr_text" json:"ocr_text"`
	DetectedAmount decimal.NullDecimal `gorm:"type:numeric(12,2)" json:"detected_amount"`
	// DetectedDate always holds a canonical date: the extracted one or the
	// processing-day fallback.
	DetectedDate string `gorm:"size:10;not null" json:"detected_date"`
	EntryID      *uint  `gorm:"index" json:"entry_id"`
	Entry        *Entry `gorm:"foreignKey:EntryID" json:"entry,omitempty"`
}
