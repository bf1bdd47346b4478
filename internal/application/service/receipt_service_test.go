package service

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/wekesa/tillpoint-api/internal/domain/entity"
	"github.com/wekesa/tillpoint-api/internal/domain/enum"
)

func TestRenderReceiptText(t *testing.T) {
	receipt := &entity.Receipt{
		Header:        entity.ReceiptHeader{StoreName: "Test Store", Phone: "0700 000000"},
		DocumentNo:    "RCT-ABC12345",
		Date:          "2026-08-29 14:30",
		Cashier:       "Jane",
		Customer:      "Walk-in",
		Currency:      "KES",
		PaymentMethod: enum.PaymentCash,
		Items: []entity.ReceiptItem{
			{Description: "Soda", Quantity: 2, UnitPrice: 10.00, LineTotal: 20.00},
			{Description: "Bread", Quantity: 1, UnitPrice: 2.50, LineTotal: 2.50},
		},
		SubTotal:       22.50,
		DiscountAmount: 2.50,
		Total:          20.00,
		AmountReceived: 50.00,
		ChangeAmount:   30.00,
	}

	text := RenderReceiptText(receipt)

	assert.Contains(t, text, "Test Store")
	assert.Contains(t, text, "Receipt: RCT-ABC12345")
	assert.Contains(t, text, "Cashier: Jane")
	assert.Contains(t, text, "Customer: Walk-in")
	assert.Contains(t, text, "2x Soda  20.00")
	assert.Contains(t, text, "Discount: -2.50")
	assert.Contains(t, text, "TOTAL: KES 20.00")
	assert.Contains(t, text, "Cash: 50.00")
	assert.Contains(t, text, "Change: 30.00")
}

func TestRenderReceiptTextOmitsCashLinesForCard(t *testing.T) {
	receipt := &entity.Receipt{
		Header:        entity.ReceiptHeader{StoreName: "Test Store"},
		DocumentNo:    "RCT-ABC12345",
		Date:          "2026-08-29 14:30",
		Currency:      "KES",
		PaymentMethod: enum.PaymentCard,
		Items: []entity.ReceiptItem{
			{Description: "Soda", Quantity: 1, UnitPrice: 10.00, LineTotal: 10.00},
		},
		SubTotal: 10.00,
		Total:    10.00,
	}

	text := RenderReceiptText(receipt)

	assert.NotContains(t, text, "Cash:")
	assert.NotContains(t, text, "Change:")
	assert.NotContains(t, text, "Discount:")
	assert.Contains(t, text, "Payment: card")
}

func TestFormatReceiptProducesEscPos(t *testing.T) {
	receipt := &entity.Receipt{
		Header:        entity.ReceiptHeader{StoreName: "Test Store"},
		DocumentNo:    "RCT-ABC12345",
		Date:          "2026-08-29 14:30",
		Currency:      "KES",
		PaymentMethod: enum.PaymentCash,
		Items: []entity.ReceiptItem{
			{Description: "Soda", Quantity: 1, UnitPrice: 10.00, LineTotal: 10.00},
		},
		SubTotal:       10.00,
		Total:          10.00,
		AmountReceived: 10.00,
	}

	data := FormatReceipt(receipt)

	assert.NotEmpty(t, data)
	// ESC @ initialize sequence leads the document
	assert.Equal(t, byte(0x1B), data[0])
	assert.True(t, strings.Contains(string(data), "Test Store"))
	assert.True(t, strings.Contains(string(data), "RCT-ABC12345"))
}

func TestFormatReceiptDrawerKick(t *testing.T) {
	kick := string([]byte{0x1B, 'p', 0x00, 0x19, 0xFA})

	base := entity.Receipt{
		Header:     entity.ReceiptHeader{StoreName: "Test Store"},
		DocumentNo: "RCT-ABC12345",
		Currency:   "KES",
		Items: []entity.ReceiptItem{
			{Description: "Soda", Quantity: 1, UnitPrice: 10.00, LineTotal: 10.00},
		},
		SubTotal: 10.00,
		Total:    10.00,
	}

	t.Run("cash sale pops the drawer", func(t *testing.T) {
		receipt := base
		receipt.PaymentMethod = enum.PaymentCash
		receipt.AmountReceived = 10.00

		assert.Contains(t, string(FormatReceipt(&receipt)), kick)
	})

	t.Run("card sale leaves the drawer shut", func(t *testing.T) {
		receipt := base
		receipt.PaymentMethod = enum.PaymentCard

		assert.NotContains(t, string(FormatReceipt(&receipt)), kick)
	})

	t.Run("cash reprint without a tendered amount leaves the drawer shut", func(t *testing.T) {
		receipt := base
		receipt.PaymentMethod = enum.PaymentCash

		assert.NotContains(t, string(FormatReceipt(&receipt)), kick)
	})
}
