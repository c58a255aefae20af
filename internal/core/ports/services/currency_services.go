package services

import (
	"context"

	"github.com/guildforge/guildforge/internal/core/domain"
	"github.com/guildforge/guildforge/internal/dto"
)

// CurrencyReaderSvc defines read operations for guild currency configuration
type CurrencyReaderSvc interface {
	// GetDefinition retrieves the validated currency definition for a guild.
	GetDefinition(ctx context.Context, guildID string) (*domain.CurrencyDefinition, error)

	// ListCurrencies retrieves all currency families configured for a guild.
	ListCurrencies(ctx context.Context, guildID string) ([]domain.Currency, error)

	// ResolveUnit resolves a free-form name against the guild's currencies
	// and denominations, case-insensitively.
	ResolveUnit(ctx context.Context, guildID, name string) (dto.ResolveUnitResponse, error)
}

// CurrencyWriterSvc defines write operations for guild currency configuration
type CurrencyWriterSvc interface {
	// CreateCurrency defines a new base currency for a guild.
	CreateCurrency(ctx context.Context, guildID string, req dto.CreateCurrencyRequest, creatorUserID string) (*domain.Currency, error)

	// AddDenomination attaches a denomination to an existing currency.
	AddDenomination(ctx context.Context, guildID, currencyName string, req dto.AddDenominationRequest, creatorUserID string) (*domain.Currency, error)
}

// CurrencySvcFacade combines all currency-configuration service interfaces
type CurrencySvcFacade interface {
	CurrencyReaderSvc
	CurrencyWriterSvc
}
