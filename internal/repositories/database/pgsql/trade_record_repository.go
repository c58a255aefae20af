package pgsql

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/guildforge/guildforge/internal/core/domain"
	portsrepo "github.com/guildforge/guildforge/internal/core/ports/repositories"
)

// PgxTradeRecordRepository stores the trade audit log.
type PgxTradeRecordRepository struct {
	BaseRepository
}

// NewTradeRecordRepository creates a new repository for trade records.
func NewTradeRecordRepository(pool *pgxpool.Pool) portsrepo.TradeRecordRepositoryFacade {
	return &PgxTradeRecordRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

var _ portsrepo.TradeRecordRepositoryFacade = (*PgxTradeRecordRepository)(nil)

// SaveTradeRecord persists a trade audit entry.
func (r *PgxTradeRecordRepository) SaveTradeRecord(ctx context.Context, record domain.TradeRecord) error {
	query := `
		INSERT INTO trade_records (trade_id, guild_id, sender_character_id, receiver_character_id, kind, unit_name, amount, quantity, status, created_at, created_by, last_updated_at, last_updated_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13);
	`

	_, err := r.Pool.Exec(ctx, query,
		record.TradeID,
		record.GuildID,
		record.SenderCharacterID,
		record.ReceiverCharacterID,
		string(record.Kind),
		record.UnitName,
		record.Amount,
		record.Quantity,
		string(record.Status),
		record.CreatedAt,
		record.CreatedBy,
		record.LastUpdatedAt,
		record.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to save trade record %s: %w", record.TradeID, err)
	}
	return nil
}

// ListTradeRecords retrieves the most recent trades in a guild, optionally
// filtered by status.
func (r *PgxTradeRecordRepository) ListTradeRecords(ctx context.Context, guildID string, status *domain.TradeStatus, limit int) ([]domain.TradeRecord, error) {
	query := `
		SELECT trade_id, guild_id, sender_character_id, receiver_character_id, kind, unit_name, amount, quantity, status, created_at, created_by, last_updated_at, last_updated_by
		FROM trade_records
		WHERE guild_id = $1 AND ($2::text IS NULL OR status = $2)
		ORDER BY created_at DESC
		LIMIT $3;
	`

	var statusArg *string
	if status != nil {
		s := string(*status)
		statusArg = &s
	}

	rows, err := r.Pool.Query(ctx, query, guildID, statusArg, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query trade records: %w", err)
	}
	defer rows.Close()

	records, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (domain.TradeRecord, error) {
		var rec domain.TradeRecord
		var kind, recStatus string
		err := row.Scan(
			&rec.TradeID,
			&rec.GuildID,
			&rec.SenderCharacterID,
			&rec.ReceiverCharacterID,
			&kind,
			&rec.UnitName,
			&rec.Amount,
			&rec.Quantity,
			&recStatus,
			&rec.CreatedAt,
			&rec.CreatedBy,
			&rec.LastUpdatedAt,
			&rec.LastUpdatedBy,
		)
		rec.Kind = domain.TradeKind(kind)
		rec.Status = domain.TradeStatus(recStatus)
		return rec, err
	})
	if err != nil {
		return nil, fmt.Errorf("failed to scan trade records: %w", err)
	}
	return records, nil
}
