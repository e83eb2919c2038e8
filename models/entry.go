package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Entry types accepted by the ledger.
const (
	EntryTypeIncome  = "income"
	EntryTypeExpense = "expense"
)

// Entry represents a single income or expense ledger line. Amounts are
// currency-agnostic magnitudes; EntryDate is always the canonical
// YYYY-MM-DD form once persisted.
type Entry struct {
	ID        uint            `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time       `json:"created_at"`
	EntryType string          `gorm:"size:16;not null;index" json:"entry_type"`
	Amount    decimal.Decimal `gorm:"type:numeric(12,2);not null" json:"amount"`
	Category  string          `gorm:"size:255" json:"category"`
	Note      string          `gorm:"size:512" json:"note"`
	EntryDate string          `gorm:"size:10;not null;index" json:"entry_date"`
}

// ValidEntryType reports whether t is one of the accepted entry types.
func ValidEntryType(t string) bool {
	return t == EntryTypeIncome || t == EntryTypeExpense
}
