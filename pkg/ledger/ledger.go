// Package ledger persists interpretation results as durable ledger state.
package ledger

import (
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"receiptbook/models"
	"receiptbook/pkg/interpret"
)

// Labels applied to entries auto-created from receipts.
const (
	ReceiptCategory = "Receipt"
	ReceiptNote     = "Auto-imported from receipt"
)

// MaterializeReceipt is the only place extraction results become durable
// state. When an amount was detected it creates an expense Entry and a
// Receipt referencing it; otherwise just a Receipt with no linked entry.
// Both writes run in one transaction, so a persisted Receipt can never
// reference a missing Entry id.
func MaterializeReceipt(db *gorm.DB, filename string, res interpret.Result) (models.Receipt, error) {
	var receipt models.Receipt
	err := db.Transaction(func(tx *gorm.DB) error {
		var entryID *uint
		if res.Amount != nil {
			entry := models.Entry{
				EntryType: models.EntryTypeExpense,
				Amount:    *res.Amount,
				Category:  ReceiptCategory,
				Note:      ReceiptNote,
				EntryDate: res.Date,
			}
			if err := tx.Create(&entry).Error; err != nil {
				return err
			}
			entryID = &entry.ID
		}
		receipt = models.Receipt{
			Filename:     filename,
			OCRText:      res.RawText,
			DetectedDate: res.Date,
			EntryID:      entryID,
		}
		if res.Amount != nil {
			receipt.DetectedAmount = decimal.NullDecimal{Decimal: *res.Amount, Valid: true}
		}
		return tx.Create(&receipt).Error
	})
	return receipt, err
}
