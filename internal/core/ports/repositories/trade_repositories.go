package repositories

import (
	"context"

	"github.com/guildforge/guildforge/internal/core/domain"
)

// TradeRecordReader defines read operations for the trade audit log
type TradeRecordReader interface {
	// ListTradeRecords retrieves the most recent trades in a guild,
	// optionally filtered by status.
	ListTradeRecords(ctx context.Context, guildID string, status *domain.TradeStatus, limit int) ([]domain.TradeRecord, error)
}

// TradeRecordWriter defines write operations for the trade audit log
type TradeRecordWriter interface {
	// SaveTradeRecord persists a trade audit entry.
	SaveTradeRecord(ctx context.Context, record domain.TradeRecord) error
}

// TradeRecordRepositoryFacade combines all trade-record repository interfaces
type TradeRecordRepositoryFacade interface {
	TradeRecordReader
	TradeRecordWriter
}
