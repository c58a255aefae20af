package services_test

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/guildforge/guildforge/internal/core/domain"
)

// --- Mock CurrencyDefinitionRepository ---
type MockCurrencyDefinitionRepository struct {
	mock.Mock
}

func (m *MockCurrencyDefinitionRepository) FindDefinitionByGuild(ctx context.Context, guildID string) (*domain.CurrencyDefinition, error) {
	args := m.Called(ctx, guildID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.CurrencyDefinition), args.Error(1)
}

func (m *MockCurrencyDefinitionRepository) SaveDefinition(ctx context.Context, definition domain.CurrencyDefinition) error {
	args := m.Called(ctx, definition)
	return args.Error(0)
}

// --- Mock CharacterRepository ---
type MockCharacterRepository struct {
	mock.Mock
}

func (m *MockCharacterRepository) FindCharacterByID(ctx context.Context, guildID, characterID string) (*domain.Character, error) {
	args := m.Called(ctx, guildID, characterID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Character), args.Error(1)
}

func (m *MockCharacterRepository) FindActiveCharacter(ctx context.Context, guildID, playerID string) (*domain.Character, error) {
	args := m.Called(ctx, guildID, playerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Character), args.Error(1)
}

func (m *MockCharacterRepository) ListCharactersByPlayer(ctx context.Context, guildID, playerID string) ([]domain.Character, error) {
	args := m.Called(ctx, guildID, playerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Character), args.Error(1)
}

func (m *MockCharacterRepository) SaveCharacter(ctx context.Context, character domain.Character) error {
	args := m.Called(ctx, character)
	return args.Error(0)
}

func (m *MockCharacterRepository) UpdateBalances(ctx context.Context, character domain.Character) error {
	args := m.Called(ctx, character)
	return args.Error(0)
}

func (m *MockCharacterRepository) SetActiveCharacter(ctx context.Context, guildID, playerID, characterID string) error {
	args := m.Called(ctx, guildID, playerID, characterID)
	return args.Error(0)
}

// --- Mock TradeRecordRepository ---
type MockTradeRecordRepository struct {
	mock.Mock
}

func (m *MockTradeRecordRepository) SaveTradeRecord(ctx context.Context, record domain.TradeRecord) error {
	args := m.Called(ctx, record)
	return args.Error(0)
}

func (m *MockTradeRecordRepository) ListTradeRecords(ctx context.Context, guildID string, status *domain.TradeStatus, limit int) ([]domain.TradeRecord, error) {
	args := m.Called(ctx, guildID, status, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.TradeRecord), args.Error(1)
}

// goldDefinition builds the fixture used across the service suites:
// Gold with Silver (0.1) and Copper (0.01).
func goldDefinition(t *testing.T, guildID string) *domain.CurrencyDefinition {
	t.Helper()
	def := domain.NewCurrencyDefinition(guildID)
	require.NoError(t, def.AddCurrency(domain.Currency{
		Name: "Gold",
		Denominations: []domain.Denomination{
			{Name: "Silver", Value: decimal.RequireFromString("0.1")},
			{Name: "Copper", Value: decimal.RequireFromString("0.01")},
		},
	}))
	return def
}
