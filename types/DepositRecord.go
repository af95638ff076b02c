package types

import (
	"time"

	"github.com/shopspring/decimal"
)

// DepositRecord is the local ledger entry written when an admin confirms a
// deposit. The authoritative flag still lives in the transaction metadata on
// the marketplace side; this table exists for reporting.
type DepositRecord struct {
	ID            uint            `gorm:"primaryKey" json:"id"`
	TransactionID string          `gorm:"index;not null" json:"transactionId"`
	Amount        decimal.Decimal `gorm:"type:decimal(12,2)" json:"amount"`
	Currency      string          `gorm:"size:3;default:USD" json:"currency"`
	ConfirmedBy   string          `json:"confirmedBy"`
	CreatedAt     time.Time       `gorm:"autoCreateTime" json:"createdAt"`
}

func (DepositRecord) TableName() string {
	return "deposit_records"
}
