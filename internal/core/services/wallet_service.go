package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/shopspring/decimal"

	"github.com/guildforge/guildforge/internal/apperrors"
	"github.com/guildforge/guildforge/internal/core/domain"
	portsrepo "github.com/guildforge/guildforge/internal/core/ports/repositories"
	portssvc "github.com/guildforge/guildforge/internal/core/ports/services"
	"github.com/guildforge/guildforge/internal/dto"
	"github.com/guildforge/guildforge/internal/middleware"
	"github.com/guildforge/guildforge/internal/utils/coinage"
)

// walletService is the wallet ledger: pure signed-delta application over
// wallets plus the persisted credit/debit/reward surface on top of it.
type walletService struct {
	characterRepo portsrepo.CharacterRepositoryFacade
	currencySvc   portssvc.CurrencyReaderSvc
}

// NewWalletService creates a new WalletService.
func NewWalletService(characterRepo portsrepo.CharacterRepositoryFacade, currencySvc portssvc.CurrencyReaderSvc) portssvc.WalletSvcFacade {
	return &walletService{
		characterRepo: characterRepo,
		currencySvc:   currencySvc,
	}
}

var _ portssvc.WalletSvcFacade = (*walletService)(nil)

// ApplyDelta applies a signed amount of the named unit to a wallet.
//
// The wallet's current holdings of the affected currency family are summed
// into a base-unit total, the delta is added, and the new total is
// re-consolidated greedily into denomination counts that replace the family's
// prior entries. Re-consolidating through the total means change is always
// available regardless of which denominations are currently held; the ledger
// has no concept of denomination scarcity. Holdings of other currency
// families are untouched. The input wallet is never mutated.
func (s *walletService) ApplyDelta(def domain.CurrencyDefinition, wallet domain.Wallet, unitName string, delta decimal.Decimal) (domain.Wallet, error) {
	newTotal, denomMap, err := s.projectedTotal(def, wallet, unitName, delta)
	if err != nil {
		return nil, err
	}
	if newTotal.IsNegative() {
		return nil, fmt.Errorf("%w: not enough %s: short by %s %s", apperrors.ErrInsufficientFunds, unitName, newTotal.Neg().String(), baseNameOf(def, unitName))
	}

	counts := coinage.Consolidate(newTotal, denomMap)

	out := wallet.Clone()
	for name := range denomMap {
		out.SetCount(name, 0)
	}
	for name, count := range counts {
		out.SetCount(name, count)
	}
	return out, nil
}

// CheckSufficientFunds reports whether the wallet can cover a debit of the
// given amount. Read-only; returns a human-readable shortfall message when
// the balance is insufficient.
func (s *walletService) CheckSufficientFunds(def domain.CurrencyDefinition, wallet domain.Wallet, unitName string, amount decimal.Decimal) (bool, string, error) {
	newTotal, _, err := s.projectedTotal(def, wallet, unitName, amount.Neg())
	if err != nil {
		return false, "", err
	}
	if newTotal.IsNegative() {
		return false, fmt.Sprintf("not enough %s: short by %s %s", unitName, newTotal.Neg().String(), baseNameOf(def, unitName)), nil
	}
	return true, "", nil
}

// MakeChange previews the denomination counts that would remain after
// debiting the given amount, for UIs that want to show which denominations
// the payout breaks into. Nothing is mutated.
func (s *walletService) MakeChange(def domain.CurrencyDefinition, wallet domain.Wallet, unitName string, amount decimal.Decimal) (map[string]int64, error) {
	if !amount.IsPositive() {
		return nil, fmt.Errorf("%w: got %s", apperrors.ErrInvalidAmount, amount.String())
	}
	newTotal, denomMap, err := s.projectedTotal(def, wallet, unitName, amount.Neg())
	if err != nil {
		return nil, err
	}
	if newTotal.IsNegative() {
		return nil, fmt.Errorf("%w: not enough %s: short by %s %s", apperrors.ErrInsufficientFunds, unitName, newTotal.Neg().String(), baseNameOf(def, unitName))
	}
	return coinage.Consolidate(newTotal, denomMap), nil
}

// projectedTotal resolves the unit, builds its family's denomination map and
// returns the wallet's base-unit total after applying the signed delta.
func (s *walletService) projectedTotal(def domain.CurrencyDefinition, wallet domain.Wallet, unitName string, delta decimal.Decimal) (decimal.Decimal, map[string]decimal.Decimal, error) {
	currency, err := def.CurrencyFor(unitName)
	if err != nil {
		return decimal.Zero, nil, err
	}
	denomMap := currency.DenominationMap()
	current := coinage.WalletTotal(wallet, denomMap)
	deltaBase, err := coinage.ToBaseUnits(delta, unitName, denomMap)
	if err != nil {
		return decimal.Zero, nil, err
	}
	return current.Add(deltaBase), denomMap, nil
}

func baseNameOf(def domain.CurrencyDefinition, unitName string) string {
	if _, base := def.Resolve(unitName); base != "" {
		return base
	}
	return unitName
}

// GetWallet retrieves a character's wallet.
func (s *walletService) GetWallet(ctx context.Context, guildID, characterID string) (dto.WalletResponse, error) {
	character, err := s.characterRepo.FindCharacterByID(ctx, guildID, characterID)
	if err != nil {
		return dto.WalletResponse{}, fmt.Errorf("failed to load character %s: %w", characterID, err)
	}
	return dto.ToWalletResponse(character), nil
}

// CreditWallet adds an amount of the named unit to a character's wallet.
// The amount must be strictly positive; the sign of the operation is carried
// by the endpoint, never by the request.
func (s *walletService) CreditWallet(ctx context.Context, guildID, characterID string, req dto.WalletMutationRequest, actorUserID string) (*domain.Character, error) {
	if !req.Amount.IsPositive() {
		return nil, fmt.Errorf("%w: got %s", apperrors.ErrInvalidAmount, req.Amount.String())
	}
	return s.mutateWallet(ctx, guildID, characterID, req.UnitName, req.Amount, actorUserID)
}

// DebitWallet removes an amount of the named unit from a character's wallet.
// The amount must be strictly positive. No partial mutation is committed when
// the balance is insufficient.
func (s *walletService) DebitWallet(ctx context.Context, guildID, characterID string, req dto.WalletMutationRequest, actorUserID string) (*domain.Character, error) {
	if !req.Amount.IsPositive() {
		return nil, fmt.Errorf("%w: got %s", apperrors.ErrInvalidAmount, req.Amount.String())
	}
	return s.mutateWallet(ctx, guildID, characterID, req.UnitName, req.Amount.Neg(), actorUserID)
}

func (s *walletService) mutateWallet(ctx context.Context, guildID, characterID, unitName string, delta decimal.Decimal, actorUserID string) (*domain.Character, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	def, err := s.currencySvc.GetDefinition(ctx, guildID)
	if err != nil {
		return nil, err
	}
	character, err := s.characterRepo.FindCharacterByID(ctx, guildID, characterID)
	if err != nil {
		return nil, fmt.Errorf("failed to load character %s: %w", characterID, err)
	}

	newWallet, err := s.ApplyDelta(*def, character.Wallet, unitName, delta)
	if err != nil {
		return nil, err
	}

	character.Wallet = newWallet
	character.LastUpdatedAt = time.Now().UTC()
	character.LastUpdatedBy = actorUserID

	if err := s.characterRepo.UpdateBalances(ctx, *character); err != nil {
		logger.Error("Failed to persist wallet update", slog.String("character_id", characterID), slog.String("error", err.Error()))
		return nil, err
	}
	character.Version++

	logger.Info("Wallet updated",
		slog.String("character_id", characterID),
		slog.String("unit", unitName),
		slog.String("delta", delta.String()),
	)
	return character, nil
}

// GrantReward applies a quest reward (experience, currency lines, item lines)
// to a character in one balance update. Currency lines of different families
// never interfere with each other.
func (s *walletService) GrantReward(ctx context.Context, guildID, characterID string, req dto.GrantRewardRequest, actorUserID string) (*domain.Character, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	character, err := s.characterRepo.FindCharacterByID(ctx, guildID, characterID)
	if err != nil {
		return nil, fmt.Errorf("failed to load character %s: %w", characterID, err)
	}

	wallet := character.Wallet
	if len(req.Currency) > 0 {
		def, err := s.currencySvc.GetDefinition(ctx, guildID)
		if err != nil {
			return nil, err
		}
		for _, award := range req.Currency {
			if !award.Amount.IsPositive() {
				return nil, fmt.Errorf("%w: reward of %s %s", apperrors.ErrInvalidAmount, award.Amount.String(), award.UnitName)
			}
			wallet, err = s.ApplyDelta(*def, wallet, award.UnitName, award.Amount)
			if err != nil {
				return nil, err
			}
		}
	}

	inventory := character.Inventory.Clone()
	for _, item := range req.Items {
		if item.Quantity <= 0 {
			return nil, fmt.Errorf("%w: reward of %d %s", apperrors.ErrInvalidAmount, item.Quantity, item.Name)
		}
		inventory.SetQuantity(item.Name, inventory.Quantity(item.Name)+item.Quantity)
	}

	character.Wallet = wallet
	character.Inventory = inventory
	character.Experience += req.Experience
	character.LastUpdatedAt = time.Now().UTC()
	character.LastUpdatedBy = actorUserID

	if err := s.characterRepo.UpdateBalances(ctx, *character); err != nil {
		logger.Error("Failed to persist reward grant", slog.String("character_id", characterID), slog.String("error", err.Error()))
		return nil, err
	}
	character.Version++

	logger.Info("Reward granted",
		slog.String("character_id", characterID),
		slog.Int64("experience", req.Experience),
		slog.Int("currency_lines", len(req.Currency)),
		slog.Int("item_lines", len(req.Items)),
	)
	return character, nil
}
