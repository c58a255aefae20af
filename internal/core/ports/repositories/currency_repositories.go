package repositories

import (
	"context"

	"github.com/guildforge/guildforge/internal/core/domain"
)

// CurrencyDefinitionReader defines read operations for guild currency configuration
type CurrencyDefinitionReader interface {
	// FindDefinitionByGuild retrieves the currency definition document for a guild.
	FindDefinitionByGuild(ctx context.Context, guildID string) (*domain.CurrencyDefinition, error)
}

// CurrencyDefinitionWriter defines write operations for guild currency configuration
type CurrencyDefinitionWriter interface {
	// SaveDefinition upserts the currency definition document for a guild.
	SaveDefinition(ctx context.Context, definition domain.CurrencyDefinition) error
}

// CurrencyDefinitionRepositoryFacade combines all currency-definition repository interfaces
type CurrencyDefinitionRepositoryFacade interface {
	CurrencyDefinitionReader
	CurrencyDefinitionWriter
}
