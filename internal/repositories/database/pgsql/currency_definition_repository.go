package pgsql

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/guildforge/guildforge/internal/apperrors"
	"github.com/guildforge/guildforge/internal/core/domain"
	portsrepo "github.com/guildforge/guildforge/internal/core/ports/repositories"
)

// PgxCurrencyDefinitionRepository stores one currency definition document per
// guild, with the currency families serialized as JSONB.
type PgxCurrencyDefinitionRepository struct {
	BaseRepository
}

// NewCurrencyDefinitionRepository creates a new repository for guild currency configuration.
func NewCurrencyDefinitionRepository(pool *pgxpool.Pool) portsrepo.CurrencyDefinitionRepositoryFacade {
	return &PgxCurrencyDefinitionRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

var _ portsrepo.CurrencyDefinitionRepositoryFacade = (*PgxCurrencyDefinitionRepository)(nil)

// SaveDefinition upserts the currency definition document for a guild.
func (r *PgxCurrencyDefinitionRepository) SaveDefinition(ctx context.Context, definition domain.CurrencyDefinition) error {
	currenciesJSON, err := json.Marshal(definition.Currencies)
	if err != nil {
		return fmt.Errorf("failed to marshal currencies for guild %s: %w", definition.GuildID, err)
	}

	query := `
		INSERT INTO guild_currency_definitions (guild_id, currencies, created_at, created_by, last_updated_at, last_updated_by)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (guild_id) DO UPDATE SET
			currencies = EXCLUDED.currencies,
			last_updated_at = EXCLUDED.last_updated_at,
			last_updated_by = EXCLUDED.last_updated_by;
	`

	_, err = r.Pool.Exec(ctx, query,
		definition.GuildID,
		currenciesJSON,
		definition.CreatedAt,
		definition.CreatedBy,
		definition.LastUpdatedAt,
		definition.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to save currency definition for guild %s: %w", definition.GuildID, err)
	}
	return nil
}

// FindDefinitionByGuild retrieves the currency definition document for a guild.
func (r *PgxCurrencyDefinitionRepository) FindDefinitionByGuild(ctx context.Context, guildID string) (*domain.CurrencyDefinition, error) {
	query := `
		SELECT guild_id, currencies, created_at, created_by, last_updated_at, last_updated_by
		FROM guild_currency_definitions
		WHERE guild_id = $1;
	`

	var def domain.CurrencyDefinition
	var currenciesJSON []byte
	err := r.Pool.QueryRow(ctx, query, guildID).Scan(
		&def.GuildID,
		&currenciesJSON,
		&def.CreatedAt,
		&def.CreatedBy,
		&def.LastUpdatedAt,
		&def.LastUpdatedBy,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find currency definition for guild %s: %w", guildID, err)
	}

	if err := json.Unmarshal(currenciesJSON, &def.Currencies); err != nil {
		return nil, fmt.Errorf("failed to unmarshal currencies for guild %s: %w", guildID, err)
	}
	return &def, nil
}
