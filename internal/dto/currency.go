package dto

import (
	"github.com/shopspring/decimal"

	"github.com/guildforge/guildforge/internal/core/domain"
)

// DenominationRequest defines one denomination inside a currency creation request.
type DenominationRequest struct {
	Name  string          `json:"name" binding:"required,unitname"`
	Value decimal.Decimal `json:"value" binding:"required"`
}

// CreateCurrencyRequest defines the data needed to define a new base currency
// for a guild.
type CreateCurrencyRequest struct {
	Name          string                `json:"name" binding:"required,unitname"`
	IsDouble      bool                  `json:"isDouble"`
	Denominations []DenominationRequest `json:"denominations" binding:"dive"`
}

// AddDenominationRequest defines the data needed to attach a denomination to
// an existing currency.
type AddDenominationRequest struct {
	Name  string          `json:"name" binding:"required,unitname"`
	Value decimal.Decimal `json:"value" binding:"required"`
}

// DenominationResponse defines the data returned for one denomination.
type DenominationResponse struct {
	Name  string          `json:"name"`
	Value decimal.Decimal `json:"value"`
}

// CurrencyResponse defines the data returned for one currency family.
type CurrencyResponse struct {
	Name          string                 `json:"name"`
	IsDouble      bool                   `json:"isDouble"`
	Denominations []DenominationResponse `json:"denominations"`
}

// ResolveUnitResponse reports how a free-form unit name resolved.
type ResolveUnitResponse struct {
	Name         string `json:"name"`
	Known        bool   `json:"known"`
	BaseCurrency string `json:"baseCurrency,omitempty"`
}

// ToCurrencyResponse converts a domain.Currency to CurrencyResponse DTO
func ToCurrencyResponse(cur domain.Currency) CurrencyResponse {
	denoms := make([]DenominationResponse, len(cur.Denominations))
	for i, den := range cur.Denominations {
		denoms[i] = DenominationResponse{Name: den.Name, Value: den.Value}
	}
	return CurrencyResponse{
		Name:          cur.Name,
		IsDouble:      cur.IsDouble,
		Denominations: denoms,
	}
}

// ToListCurrencyResponse converts a slice of domain.Currency to response DTOs
func ToListCurrencyResponse(currencies []domain.Currency) []CurrencyResponse {
	res := make([]CurrencyResponse, len(currencies))
	for i, cur := range currencies {
		res[i] = ToCurrencyResponse(cur)
	}
	return res
}
