package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/guildforge/guildforge/internal/core/domain"
)

// TradeCurrencyRequest defines a two-party currency transfer.
type TradeCurrencyRequest struct {
	SenderCharacterID   string          `json:"senderCharacterID" binding:"required"`
	ReceiverCharacterID string          `json:"receiverCharacterID" binding:"required"`
	UnitName            string          `json:"unitName" binding:"required,unitname"`
	Amount              decimal.Decimal `json:"amount" binding:"required"`
}

// TradeItemRequest defines a two-party item transfer.
type TradeItemRequest struct {
	SenderCharacterID   string `json:"senderCharacterID" binding:"required"`
	ReceiverCharacterID string `json:"receiverCharacterID" binding:"required"`
	ItemName            string `json:"itemName" binding:"required"`
	Quantity            int64  `json:"quantity" binding:"required,gt=0"`
}

// TradeResponse defines the data returned after a trade, including both
// updated balance views for confirmation display.
type TradeResponse struct {
	TradeID          string           `json:"tradeID"`
	Kind             string           `json:"kind"`
	Status           string           `json:"status"`
	UnitName         string           `json:"unitName"`
	Amount           *decimal.Decimal `json:"amount,omitempty"`
	Quantity         int64            `json:"quantity,omitempty"`
	SenderBalances   map[string]int64 `json:"senderBalances"`
	ReceiverBalances map[string]int64 `json:"receiverBalances"`
	ExecutedAt       time.Time        `json:"executedAt"`
}

// TradeRecordResponse defines one entry of the trade audit log.
type TradeRecordResponse struct {
	TradeID             string          `json:"tradeID"`
	SenderCharacterID   string          `json:"senderCharacterID"`
	ReceiverCharacterID string          `json:"receiverCharacterID"`
	Kind                string          `json:"kind"`
	UnitName            string          `json:"unitName"`
	Amount              decimal.Decimal `json:"amount"`
	Quantity            int64           `json:"quantity"`
	Status              string          `json:"status"`
	CreatedAt           time.Time       `json:"createdAt"`
}

// ToTradeRecordResponse converts a domain.TradeRecord to its response DTO
func ToTradeRecordResponse(rec domain.TradeRecord) TradeRecordResponse {
	return TradeRecordResponse{
		TradeID:             rec.TradeID,
		SenderCharacterID:   rec.SenderCharacterID,
		ReceiverCharacterID: rec.ReceiverCharacterID,
		Kind:                string(rec.Kind),
		UnitName:            rec.UnitName,
		Amount:              rec.Amount,
		Quantity:            rec.Quantity,
		Status:              string(rec.Status),
		CreatedAt:           rec.CreatedAt,
	}
}
