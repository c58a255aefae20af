package dto

import (
	"github.com/shopspring/decimal"

	"github.com/guildforge/guildforge/internal/core/domain"
)

// WalletMutationRequest defines a single credit or debit against a wallet.
// The amount is expressed in the named unit, e.g. 15 "silver".
type WalletMutationRequest struct {
	UnitName string          `json:"unitName" binding:"required,unitname"`
	Amount   decimal.Decimal `json:"amount" binding:"required"`
}

// CurrencyAward is one currency line of a quest reward.
type CurrencyAward struct {
	UnitName string          `json:"unitName" binding:"required,unitname"`
	Amount   decimal.Decimal `json:"amount" binding:"required"`
}

// ItemAward is one item line of a quest reward.
type ItemAward struct {
	Name     string `json:"name" binding:"required"`
	Quantity int64  `json:"quantity" binding:"required,gt=0"`
}

// GrantRewardRequest defines a quest-completion reward: experience plus any
// number of currency and item lines, applied in one update.
type GrantRewardRequest struct {
	Experience int64           `json:"experience" binding:"gte=0"`
	Currency   []CurrencyAward `json:"currency" binding:"dive"`
	Items      []ItemAward     `json:"items" binding:"dive"`
}

// WalletResponse defines the data returned for a character's wallet.
type WalletResponse struct {
	CharacterID string           `json:"characterID"`
	Balances    map[string]int64 `json:"balances"`
}

// ToWalletResponse converts a character's wallet to a WalletResponse DTO
func ToWalletResponse(ch *domain.Character) WalletResponse {
	return WalletResponse{
		CharacterID: ch.CharacterID,
		Balances:    ch.Wallet,
	}
}
