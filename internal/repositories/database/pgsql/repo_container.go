package pgsql

import (
	"github.com/jackc/pgx/v5/pgxpool"

	portsrepo "github.com/guildforge/guildforge/internal/core/ports/repositories"
)

// NewRepositoryProvider builds the full set of pgx-backed repositories.
func NewRepositoryProvider(pool *pgxpool.Pool) *portsrepo.RepositoryProvider {
	return &portsrepo.RepositoryProvider{
		CurrencyRepo:  NewCurrencyDefinitionRepository(pool),
		CharacterRepo: NewCharacterRepository(pool),
		TradeRepo:     NewTradeRecordRepository(pool),
	}
}
