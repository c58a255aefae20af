package services

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/guildforge/guildforge/internal/core/domain"
	"github.com/guildforge/guildforge/internal/dto"
)

// TradeEngineSvc is the pure two-party transfer engine. Total value is
// conserved across both returned wallets/inventories; neither input is mutated.
type TradeEngineSvc interface {
	// TradeCurrency debits the sender and credits the receiver with the same
	// amount of the named unit, returning both new wallets.
	TradeCurrency(def domain.CurrencyDefinition, unitName string, amount decimal.Decimal, sender, receiver domain.Wallet) (domain.Wallet, domain.Wallet, error)

	// TradeItems moves a quantity of an item between two inventories,
	// normalizing the item name to title case for storage.
	TradeItems(itemName string, quantity int64, sender, receiver domain.Inventory) (domain.Inventory, domain.Inventory, error)
}

// TradeReaderSvc defines read operations against the trade audit log
type TradeReaderSvc interface {
	// ListTrades retrieves recent trade records for a guild, optionally
	// filtered by status (e.g. PARTIAL for reconciliation review).
	ListTrades(ctx context.Context, guildID string, status *domain.TradeStatus, limit int) ([]domain.TradeRecord, error)
}

// TradeWriterSvc defines the persisted trade surface. Both legs are persisted
// saga-style: sender first, then receiver; a failed receiver write yields a
// PARTIAL trade record and apperrors.ErrPartialTrade.
type TradeWriterSvc interface {
	// ExecuteCurrencyTrade performs and persists a two-party currency transfer.
	ExecuteCurrencyTrade(ctx context.Context, guildID string, req dto.TradeCurrencyRequest, actorUserID string) (*dto.TradeResponse, error)

	// ExecuteItemTrade performs and persists a two-party item transfer.
	ExecuteItemTrade(ctx context.Context, guildID string, req dto.TradeItemRequest, actorUserID string) (*dto.TradeResponse, error)
}

// TradeSvcFacade combines the pure trade engine with the persisted surface
type TradeSvcFacade interface {
	TradeEngineSvc
	TradeReaderSvc
	TradeWriterSvc
}
