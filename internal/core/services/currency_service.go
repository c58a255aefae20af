package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/guildforge/guildforge/internal/apperrors"
	"github.com/guildforge/guildforge/internal/core/domain"
	portsrepo "github.com/guildforge/guildforge/internal/core/ports/repositories"
	portssvc "github.com/guildforge/guildforge/internal/core/ports/services"
	"github.com/guildforge/guildforge/internal/dto"
	"github.com/guildforge/guildforge/internal/middleware"
)

// currencyService manages each guild's currency definition document.
type currencyService struct {
	currencyRepo portsrepo.CurrencyDefinitionRepositoryFacade
}

// NewCurrencyService creates a new CurrencyService.
func NewCurrencyService(currencyRepo portsrepo.CurrencyDefinitionRepositoryFacade) portssvc.CurrencySvcFacade {
	return &currencyService{currencyRepo: currencyRepo}
}

var _ portssvc.CurrencySvcFacade = (*currencyService)(nil)

// GetDefinition retrieves and validates the guild's currency definition.
// A missing document maps to ErrNoCurrencyConfig so callers can tell the
// invoking GM to configure a currency first.
func (s *currencyService) GetDefinition(ctx context.Context, guildID string) (*domain.CurrencyDefinition, error) {
	def, err := s.currencyRepo.FindDefinitionByGuild(ctx, guildID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("%w: guild %s", apperrors.ErrNoCurrencyConfig, guildID)
		}
		return nil, fmt.Errorf("failed to load currency definition: %w", err)
	}
	if err := def.Validate(); err != nil {
		// A malformed document is a configuration problem, not a user error.
		return nil, fmt.Errorf("%w: stored definition for guild %s is invalid: %v", apperrors.ErrNoCurrencyConfig, guildID, err)
	}
	return def, nil
}

// ListCurrencies retrieves all currency families configured for a guild.
func (s *currencyService) ListCurrencies(ctx context.Context, guildID string) ([]domain.Currency, error) {
	def, err := s.GetDefinition(ctx, guildID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNoCurrencyConfig) {
			return []domain.Currency{}, nil
		}
		return nil, err
	}
	return def.Currencies, nil
}

// ResolveUnit resolves a free-form unit name case-insensitively.
func (s *currencyService) ResolveUnit(ctx context.Context, guildID, name string) (dto.ResolveUnitResponse, error) {
	def, err := s.GetDefinition(ctx, guildID)
	if err != nil {
		return dto.ResolveUnitResponse{}, err
	}
	known, base := def.Resolve(name)
	return dto.ResolveUnitResponse{Name: name, Known: known, BaseCurrency: base}, nil
}

// CreateCurrency defines a new base currency for a guild, creating the
// definition document if this is the guild's first currency.
func (s *currencyService) CreateCurrency(ctx context.Context, guildID string, req dto.CreateCurrencyRequest, creatorUserID string) (*domain.Currency, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	def, err := s.currencyRepo.FindDefinitionByGuild(ctx, guildID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("failed to load currency definition: %w", err)
		}
		def = domain.NewCurrencyDefinition(guildID)
	}

	currency := domain.Currency{
		Name:     strings.TrimSpace(req.Name),
		IsDouble: req.IsDouble,
	}
	for _, den := range req.Denominations {
		currency.Denominations = append(currency.Denominations, domain.Denomination{
			Name:  strings.TrimSpace(den.Name),
			Value: den.Value,
		})
	}

	if err := def.AddCurrency(currency); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	if def.CreatedAt.IsZero() {
		def.CreatedAt = now
		def.CreatedBy = creatorUserID
	}
	def.LastUpdatedAt = now
	def.LastUpdatedBy = creatorUserID

	if err := s.currencyRepo.SaveDefinition(ctx, *def); err != nil {
		logger.Error("Failed to save currency definition", slog.String("guild_id", guildID), slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to save currency definition: %w", err)
	}

	logger.Info("Currency created", slog.String("guild_id", guildID), slog.String("currency", currency.Name))
	return &currency, nil
}

// AddDenomination attaches a denomination to an existing currency family.
// Duplicate names (server-wide, case-insensitive) and duplicate values
// (within the family) are rejected before anything reaches the ledger.
func (s *currencyService) AddDenomination(ctx context.Context, guildID, currencyName string, req dto.AddDenominationRequest, creatorUserID string) (*domain.Currency, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	def, err := s.GetDefinition(ctx, guildID)
	if err != nil {
		return nil, err
	}

	den := domain.Denomination{Name: strings.TrimSpace(req.Name), Value: req.Value}
	if err := def.AddDenomination(currencyName, den); err != nil {
		return nil, err
	}

	def.LastUpdatedAt = time.Now().UTC()
	def.LastUpdatedBy = creatorUserID

	if err := s.currencyRepo.SaveDefinition(ctx, *def); err != nil {
		logger.Error("Failed to save currency definition", slog.String("guild_id", guildID), slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to save currency definition: %w", err)
	}

	updated, err := def.CurrencyFor(currencyName)
	if err != nil {
		return nil, err
	}
	logger.Info("Denomination added", slog.String("guild_id", guildID), slog.String("currency", updated.Name), slog.String("denomination", den.Name))
	return updated, nil
}
