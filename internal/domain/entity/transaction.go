package entity

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/wekesa/tillpoint-api/internal/domain/enum"
	"gorm.io/gorm"
)

// Transaction represents a row in the financial transaction log. Sale
// transactions are recorded best-effort after a checkout completes.
type Transaction struct {
	ID              uuid.UUID            `gorm:"type:uuid;primary_key" json:"id"`
	DocumentID      *uuid.UUID           `gorm:"type:uuid;index" json:"document_id,omitempty"`
	Type            enum.TransactionType `gorm:"size:50;not null" json:"type"`
	Amount          int64                `gorm:"default:0" json:"-"` // Stored in cents, excluded from JSON
	Category        string               `gorm:"size:100" json:"category"`
	Description     string               `gorm:"size:255" json:"description"`
	TransactionDate time.Time            `gorm:"type:date;not null" json:"transaction_date"`
	CreatedAt       time.Time            `json:"created_at"`
	UpdatedAt       time.Time            `json:"updated_at"`
	DeletedAt       gorm.DeletedAt       `gorm:"index" json:"-"`
}

// MarshalJSON custom marshaler to convert cents to decimal for API responses
func (t Transaction) MarshalJSON() ([]byte, error) {
	type Alias Transaction
	return json.Marshal(&struct {
		Alias
		Amount float64 `json:"amount"`
	}{
		Alias:  Alias(t),
		Amount: float64(t.Amount) / 100,
	})
}

// BeforeCreate generates a UUID before creating a new transaction
func (t *Transaction) BeforeCreate(tx *gorm.DB) error {
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the Transaction model
func (Transaction) TableName() string {
	return "transactions"
}
