package entity

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/wekesa/tillpoint-api/internal/domain/enum"
	"github.com/wekesa/tillpoint-api/pkg/utils"
	"gorm.io/gorm"
)

// Document represents a persisted sale record (receipt or invoice)
type Document struct {
	ID            uuid.UUID           `gorm:"type:uuid;primary_key" json:"id"`
	CustomerID    *uuid.UUID          `gorm:"type:uuid;index" json:"customer_id,omitempty"`
	DocumentNo    string              `gorm:"size:100;unique;not null" json:"document_no"`
	Type          enum.DocumentType   `gorm:"size:50;default:'receipt'" json:"type"`
	Status        enum.DocumentStatus `gorm:"size:50;default:'draft'" json:"status"`
	DocumentDate  time.Time           `gorm:"type:date;not null" json:"document_date"`
	Currency      string              `gorm:"size:10;default:'KES'" json:"currency"`
	SubTotal      int64               `gorm:"default:0" json:"-"` // Stored in cents, excluded from JSON
	TaxAmount     int64               `gorm:"default:0" json:"-"` // Stored in cents, excluded from JSON
	Total         int64               `gorm:"default:0" json:"-"` // Stored in cents, excluded from JSON
	PaymentMethod enum.PaymentMethod  `gorm:"size:50" json:"payment_method"`
	SoldBy        string              `gorm:"size:255" json:"sold_by"` // Employee display name, may be blank
	CreatedAt     time.Time           `json:"created_at"`
	UpdatedAt     time.Time           `json:"updated_at"`
	DeletedAt     gorm.DeletedAt      `gorm:"index" json:"-"`

	// Display-only annotations attached after the document is persisted.
	// They exist purely for receipt rendering and are never stored.
	DiscountAmount float64           `gorm:"-" json:"discount_amount,omitempty"`
	DiscountType   enum.DiscountType `gorm:"-" json:"discount_type,omitempty"`
	AmountReceived float64           `gorm:"-" json:"amount_received,omitempty"`
	ChangeAmount   float64           `gorm:"-" json:"change_amount,omitempty"`

	// Relationships
	Customer *Customer      `gorm:"foreignKey:CustomerID" json:"customer,omitempty"`
	Items    []DocumentItem `gorm:"foreignKey:DocumentID" json:"items,omitempty"`
}

// MarshalJSON custom marshaler to convert cents to decimal for API responses
func (d Document) MarshalJSON() ([]byte, error) {
	type Alias Document
	return json.Marshal(&struct {
		Alias
		SubTotal  float64 `json:"sub_total"`
		TaxAmount float64 `json:"tax_amount"`
		Total     float64 `json:"total"`
	}{
		Alias:     Alias(d),
		SubTotal:  float64(d.SubTotal) / 100,
		TaxAmount: float64(d.TaxAmount) / 100,
		Total:     float64(d.Total) / 100,
	})
}

// BeforeCreate generates a UUID and document number before creating a new document
func (d *Document) BeforeCreate(tx *gorm.DB) error {
	if d.ID == uuid.Nil {
		d.ID = uuid.New()
	}
	if d.DocumentNo == "" {
		d.DocumentNo = utils.GenerateDocumentNo("RCT")
	}
	return nil
}

// TableName returns the table name for the Document model
func (Document) TableName() string {
	return "documents"
}

// GetTotalDecimal returns the total as a decimal
func (d *Document) GetTotalDecimal() float64 {
	return float64(d.Total) / 100
}

// GetSubTotalDecimal returns the subtotal as a decimal
func (d *Document) GetSubTotalDecimal() float64 {
	return float64(d.SubTotal) / 100
}

// DocumentItem represents a line item in a sale document
type DocumentItem struct {
	ID          uuid.UUID      `gorm:"type:uuid;primary_key" json:"id"`
	DocumentID  uuid.UUID      `gorm:"type:uuid;not null;index" json:"document_id"`
	ProductID   uuid.UUID      `gorm:"type:uuid;not null;index" json:"product_id"`
	Description string         `gorm:"size:255;not null" json:"description"`
	Quantity    int            `gorm:"not null" json:"quantity"`
	UnitPrice   int64          `gorm:"not null" json:"-"` // Stored in cents, excluded from JSON
	LineTotal   int64          `gorm:"not null" json:"-"` // Stored in cents, excluded from JSON
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`

	// Relationships
	Document Document `gorm:"foreignKey:DocumentID" json:"-"`
	Product  Product  `gorm:"foreignKey:ProductID" json:"product,omitempty"`
}

// MarshalJSON custom marshaler to convert cents to decimal for API responses
func (di DocumentItem) MarshalJSON() ([]byte, error) {
	type Alias DocumentItem
	return json.Marshal(&struct {
		Alias
		UnitPrice float64 `json:"unit_price"`
		LineTotal float64 `json:"line_total"`
	}{
		Alias:     Alias(di),
		UnitPrice: float64(di.UnitPrice) / 100,
		LineTotal: float64(di.LineTotal) / 100,
	})
}

// BeforeCreate generates a UUID before creating a new document item
func (di *DocumentItem) BeforeCreate(tx *gorm.DB) error {
	if di.ID == uuid.Nil {
		di.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the DocumentItem model
func (DocumentItem) TableName() string {
	return "document_items"
}
