package services

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/guildforge/guildforge/internal/core/domain"
	"github.com/guildforge/guildforge/internal/dto"
)

// WalletEngineSvc is the pure ledger engine: single-shot, stateless
// transforms from (current balances, requested delta) to (new balances).
// No method performs I/O; callers load and persist state around these calls.
type WalletEngineSvc interface {
	// ApplyDelta applies a signed amount of the named unit to a wallet and
	// returns a new wallet; the input wallet is never mutated. Holdings of
	// the affected currency family are normalized through a base-unit total
	// and re-consolidated; other families are untouched.
	ApplyDelta(def domain.CurrencyDefinition, wallet domain.Wallet, unitName string, delta decimal.Decimal) (domain.Wallet, error)

	// CheckSufficientFunds reports whether the wallet can cover a debit of
	// the given amount, with a human-readable shortfall message when not.
	CheckSufficientFunds(def domain.CurrencyDefinition, wallet domain.Wallet, unitName string, amount decimal.Decimal) (bool, string, error)

	// MakeChange previews the consolidated denomination counts that would
	// remain after debiting the given amount, without mutating anything.
	// Change is always available: the engine models no denomination scarcity.
	MakeChange(def domain.CurrencyDefinition, wallet domain.Wallet, unitName string, amount decimal.Decimal) (map[string]int64, error)
}

// WalletReaderSvc defines read operations against persisted wallets
type WalletReaderSvc interface {
	// GetWallet retrieves a character's wallet.
	GetWallet(ctx context.Context, guildID, characterID string) (dto.WalletResponse, error)
}

// WalletWriterSvc defines persisted mutations of a single character's balances
type WalletWriterSvc interface {
	// CreditWallet adds an amount of the named unit to a character's wallet.
	CreditWallet(ctx context.Context, guildID, characterID string, req dto.WalletMutationRequest, actorUserID string) (*domain.Character, error)

	// DebitWallet removes an amount of the named unit from a character's wallet.
	DebitWallet(ctx context.Context, guildID, characterID string, req dto.WalletMutationRequest, actorUserID string) (*domain.Character, error)

	// GrantReward applies a quest reward (experience, currency lines, item
	// lines) to a character in one balance update.
	GrantReward(ctx context.Context, guildID, characterID string, req dto.GrantRewardRequest, actorUserID string) (*domain.Character, error)
}

// WalletSvcFacade combines the pure engine with the persisted wallet surface
type WalletSvcFacade interface {
	WalletEngineSvc
	WalletReaderSvc
	WalletWriterSvc
}
