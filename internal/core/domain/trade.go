package domain

import "github.com/shopspring/decimal"

// TradeKind distinguishes currency transfers from item transfers.
type TradeKind string

const (
	TradeCurrency TradeKind = "CURRENCY"
	TradeItem     TradeKind = "ITEM"
)

// TradeStatus records how far a two-wallet trade got.
type TradeStatus string

const (
	// TradeCompleted means both legs were persisted.
	TradeCompleted TradeStatus = "COMPLETED"
	// TradePartial means the debit leg was persisted but the credit leg was
	// not. Partial trades require manual reconciliation.
	TradePartial TradeStatus = "PARTIAL"
)

// TradeRecord is the persisted audit entry for a two-party transfer.
type TradeRecord struct {
	TradeID             string          `json:"tradeID"` // Primary Key (e.g., UUID)
	GuildID             string          `json:"guildID"`
	SenderCharacterID   string          `json:"senderCharacterID"`
	ReceiverCharacterID string          `json:"receiverCharacterID"`
	Kind                TradeKind       `json:"kind"`
	UnitName            string          `json:"unitName"` // currency unit or item name
	Amount              decimal.Decimal `json:"amount"`   // currency trades
	Quantity            int64           `json:"quantity"` // item trades
	Status              TradeStatus     `json:"status"`
	AuditFields
}
