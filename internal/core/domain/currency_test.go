package domain_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/guildforge/guildforge/internal/apperrors"
	"github.com/guildforge/guildforge/internal/core/domain"
)

func testDefinition(t *testing.T) *domain.CurrencyDefinition {
	t.Helper()
	def := domain.NewCurrencyDefinition("guild-1")
	require.NoError(t, def.AddCurrency(domain.Currency{
		Name: "Gold",
		Denominations: []domain.Denomination{
			{Name: "Silver", Value: decimal.RequireFromString("0.1")},
			{Name: "Copper", Value: decimal.RequireFromString("0.01")},
		},
	}))
	return def
}

func TestResolveIsCaseInsensitive(t *testing.T) {
	def := testDefinition(t)

	for _, name := range []string{"gold", "Gold", "GOLD", " gOlD "} {
		known, base := def.Resolve(name)
		assert.True(t, known, "expected %q to resolve", name)
		assert.Equal(t, "Gold", base)
	}

	known, base := def.Resolve("SILVER")
	assert.True(t, known)
	assert.Equal(t, "Gold", base)

	known, _ = def.Resolve("platinum")
	assert.False(t, known)

	known, _ = def.Resolve("")
	assert.False(t, known)
}

func TestCurrencyFor(t *testing.T) {
	def := testDefinition(t)

	cur, err := def.CurrencyFor("copper")
	require.NoError(t, err)
	assert.Equal(t, "Gold", cur.Name)

	_, err = def.CurrencyFor("platinum")
	assert.ErrorIs(t, err, apperrors.ErrUnknownCurrency)
}

func TestDenominationMap(t *testing.T) {
	def := testDefinition(t)
	cur, err := def.CurrencyFor("gold")
	require.NoError(t, err)

	m := cur.DenominationMap()
	require.Len(t, m, 3)
	assert.True(t, m["gold"].Equal(decimal.NewFromInt(1)))
	assert.True(t, m["silver"].Equal(decimal.RequireFromString("0.1")))
	assert.True(t, m["copper"].Equal(decimal.RequireFromString("0.01")))
}

func TestAddCurrencyRejectsDuplicates(t *testing.T) {
	def := testDefinition(t)

	// Currency name clashing with an existing denomination, case-insensitively.
	err := def.AddCurrency(domain.Currency{Name: "silver"})
	assert.ErrorIs(t, err, apperrors.ErrDuplicate)

	err = def.AddCurrency(domain.Currency{Name: "GOLD"})
	assert.ErrorIs(t, err, apperrors.ErrDuplicate)

	// New currency whose denomination clashes with an existing name.
	err = def.AddCurrency(domain.Currency{
		Name:          "Gem",
		Denominations: []domain.Denomination{{Name: "Copper", Value: decimal.RequireFromString("0.5")}},
	})
	assert.ErrorIs(t, err, apperrors.ErrDuplicate)

	err = def.AddCurrency(domain.Currency{Name: "  "})
	assert.ErrorIs(t, err, apperrors.ErrValidation)

	// A clean second family is fine.
	require.NoError(t, def.AddCurrency(domain.Currency{
		Name:          "Gem",
		Denominations: []domain.Denomination{{Name: "Shard", Value: decimal.RequireFromString("0.5")}},
	}))
}

func TestAddDenomination(t *testing.T) {
	def := testDefinition(t)

	require.NoError(t, def.AddDenomination("gold", domain.Denomination{
		Name: "Platinum", Value: decimal.NewFromInt(10),
	}))

	// Duplicate name anywhere in the guild is rejected.
	err := def.AddDenomination("gold", domain.Denomination{Name: "silver", Value: decimal.RequireFromString("0.2")})
	assert.ErrorIs(t, err, apperrors.ErrDuplicate)

	// Duplicate value within the family is rejected.
	err = def.AddDenomination("gold", domain.Denomination{Name: "Shilling", Value: decimal.RequireFromString("0.1")})
	assert.ErrorIs(t, err, apperrors.ErrDuplicate)

	// Value 1 is the base unit itself.
	err = def.AddDenomination("gold", domain.Denomination{Name: "Sovereign", Value: decimal.NewFromInt(1)})
	assert.ErrorIs(t, err, apperrors.ErrDuplicate)

	err = def.AddDenomination("gold", domain.Denomination{Name: "Mite", Value: decimal.NewFromInt(-1)})
	assert.ErrorIs(t, err, apperrors.ErrValidation)

	err = def.AddDenomination("platinum2", domain.Denomination{Name: "Bit", Value: decimal.RequireFromString("0.3")})
	assert.ErrorIs(t, err, apperrors.ErrUnknownCurrency)
}

func TestValidateRejectsMalformedDocuments(t *testing.T) {
	assert.NoError(t, testDefinition(t).Validate())

	bad := domain.CurrencyDefinition{
		GuildID: "guild-1",
		Currencies: []domain.Currency{
			{Name: "Gold"},
			{Name: "gold"},
		},
	}
	assert.ErrorIs(t, bad.Validate(), apperrors.ErrValidation)

	bad = domain.CurrencyDefinition{
		GuildID: "guild-1",
		Currencies: []domain.Currency{
			{Name: "Gold", Denominations: []domain.Denomination{{Name: "Silver", Value: decimal.Zero}}},
		},
	}
	assert.ErrorIs(t, bad.Validate(), apperrors.ErrValidation)
}
