package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// EntryKind represents the direction of a ledger entry.
type EntryKind string

const (
	EntryKindDeposit    EntryKind = "deposit"
	EntryKindWithdrawal EntryKind = "withdrawal"
)

// LedgerEntry is one immutable deposit or withdrawal record. Each row carries
// the account balance immediately after the entry, so the row with the
// greatest ID holds the current balance. Entries are never updated or deleted.
type LedgerEntry struct {
	ID        uint            `json:"id" gorm:"primaryKey"`
	UserID    uint            `json:"user_id" gorm:"not null;index"`
	Kind      EntryKind       `json:"type" gorm:"column:type;type:varchar(20);not null"`
	Amount    decimal.Decimal `json:"amount" gorm:"type:decimal(20,2);not null"`
	Balance   decimal.Decimal `json:"balance" gorm:"type:decimal(20,2);not null"`
	Reference uuid.UUID       `json:"reference" gorm:"type:char(36);not null"`
	CreatedAt time.Time       `json:"created_at"`

	// Relations
	User User `json:"-" gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
}

// TableName maps ledger entries onto the accounts table.
func (LedgerEntry) TableName() string {
	return "accounts"
}

// BeforeCreate sets the transaction reference before creating the record.
func (e *LedgerEntry) BeforeCreate(tx *gorm.DB) error {
	if e.Reference == uuid.Nil {
		e.Reference = uuid.New()
	}
	return nil
}
