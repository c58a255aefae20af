package services_test

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/guildforge/guildforge/internal/apperrors"
	"github.com/guildforge/guildforge/internal/core/domain"
	portssvc "github.com/guildforge/guildforge/internal/core/ports/services"
	"github.com/guildforge/guildforge/internal/core/services"
	"github.com/guildforge/guildforge/internal/dto"
	"github.com/guildforge/guildforge/internal/utils/coinage"
)

// --- Test Suite ---
type TradeServiceTestSuite struct {
	suite.Suite
	mockCharRepo     *MockCharacterRepository
	mockTradeRepo    *MockTradeRecordRepository
	mockCurrencyRepo *MockCurrencyDefinitionRepository
	service          portssvc.TradeSvcFacade
	def              *domain.CurrencyDefinition
}

func (suite *TradeServiceTestSuite) SetupTest() {
	suite.mockCharRepo = new(MockCharacterRepository)
	suite.mockTradeRepo = new(MockTradeRecordRepository)
	suite.mockCurrencyRepo = new(MockCurrencyDefinitionRepository)
	currencySvc := services.NewCurrencyService(suite.mockCurrencyRepo)
	walletSvc := services.NewWalletService(suite.mockCharRepo, currencySvc)
	suite.service = services.NewTradeService(suite.mockCharRepo, suite.mockTradeRepo, currencySvc, walletSvc)
	suite.def = goldDefinition(suite.T(), "guild-1")
}

// --- Pure engine ---

func (suite *TradeServiceTestSuite) TestTradeCurrency_ConservesTotalValue() {
	sender := domain.Wallet{"Gold": 2}
	receiver := domain.Wallet{"Silver": 3}

	newSender, newReceiver, err := suite.service.TradeCurrency(*suite.def, "silver", decimal.NewFromInt(15), sender, receiver)

	suite.Require().NoError(err)
	suite.Equal(domain.Wallet{"Silver": 5}, newSender)
	suite.Equal(domain.Wallet{"Gold": 1, "Silver": 8}, newReceiver)

	family, err := suite.def.CurrencyFor("gold")
	suite.Require().NoError(err)
	m := family.DenominationMap()
	before := coinage.WalletTotal(sender, m).Add(coinage.WalletTotal(receiver, m))
	after := coinage.WalletTotal(newSender, m).Add(coinage.WalletTotal(newReceiver, m))
	suite.True(before.Equal(after), "total value must be conserved: %s vs %s", before, after)

	// Inputs are untouched.
	suite.Equal(domain.Wallet{"Gold": 2}, sender)
	suite.Equal(domain.Wallet{"Silver": 3}, receiver)
}

func (suite *TradeServiceTestSuite) TestTradeCurrency_InsufficientFunds() {
	sender := domain.Wallet{"Copper": 10}

	_, _, err := suite.service.TradeCurrency(*suite.def, "gold", decimal.NewFromInt(1), sender, domain.Wallet{})

	suite.ErrorIs(err, apperrors.ErrInsufficientFunds)
}

func (suite *TradeServiceTestSuite) TestTradeCurrency_InvalidInputs() {
	_, _, err := suite.service.TradeCurrency(*suite.def, "gold", decimal.Zero, domain.Wallet{}, domain.Wallet{})
	suite.ErrorIs(err, apperrors.ErrInvalidAmount)

	_, _, err = suite.service.TradeCurrency(*suite.def, "gold", decimal.NewFromInt(-2), domain.Wallet{}, domain.Wallet{})
	suite.ErrorIs(err, apperrors.ErrInvalidAmount)

	_, _, err = suite.service.TradeCurrency(*suite.def, "platinum", decimal.NewFromInt(1), domain.Wallet{}, domain.Wallet{})
	suite.ErrorIs(err, apperrors.ErrUnknownCurrency)
}

func (suite *TradeServiceTestSuite) TestTradeItems_MovesQuantityWithCanonicalNames() {
	sender := domain.Inventory{"Healing Potion": 3}
	receiver := domain.Inventory{}

	newSender, newReceiver, err := suite.service.TradeItems("HEALING POTION", 2, sender, receiver)

	suite.Require().NoError(err)
	suite.Equal(domain.Inventory{"Healing Potion": 1}, newSender)
	suite.Equal(domain.Inventory{"Healing Potion": 2}, newReceiver)
	suite.Equal(domain.Inventory{"Healing Potion": 3}, sender)
}

func (suite *TradeServiceTestSuite) TestTradeItems_FullQuantityRemovesEntry() {
	sender := domain.Inventory{"Rope": 2}

	newSender, newReceiver, err := suite.service.TradeItems("rope", 2, sender, domain.Inventory{})

	suite.Require().NoError(err)
	suite.Empty(newSender)
	suite.Equal(domain.Inventory{"Rope": 2}, newReceiver)
}

func (suite *TradeServiceTestSuite) TestTradeItems_InsufficientItems() {
	sender := domain.Inventory{"Rope": 1}

	_, _, err := suite.service.TradeItems("rope", 2, sender, domain.Inventory{})
	suite.ErrorIs(err, apperrors.ErrInsufficientItems)

	_, _, err = suite.service.TradeItems("rope", 0, sender, domain.Inventory{})
	suite.ErrorIs(err, apperrors.ErrInvalidAmount)
}

// --- Persisted surface ---

func (suite *TradeServiceTestSuite) tradeParties() (*domain.Character, *domain.Character) {
	sender := &domain.Character{
		CharacterID: "sender-1",
		GuildID:     "guild-1",
		Wallet:      domain.Wallet{"Gold": 2},
		Inventory:   domain.Inventory{"Rope": 2},
		Version:     1,
	}
	receiver := &domain.Character{
		CharacterID: "receiver-1",
		GuildID:     "guild-1",
		Wallet:      domain.Wallet{},
		Inventory:   domain.Inventory{},
		Version:     1,
	}
	return sender, receiver
}

func (suite *TradeServiceTestSuite) TestExecuteCurrencyTrade_Success() {
	ctx := context.Background()
	sender, receiver := suite.tradeParties()

	suite.mockCurrencyRepo.On("FindDefinitionByGuild", ctx, "guild-1").Return(suite.def, nil).Once()
	suite.mockCharRepo.On("FindCharacterByID", ctx, "guild-1", "sender-1").Return(sender, nil).Once()
	suite.mockCharRepo.On("FindCharacterByID", ctx, "guild-1", "receiver-1").Return(receiver, nil).Once()
	suite.mockCharRepo.On("UpdateBalances", ctx, mock.MatchedBy(func(c domain.Character) bool {
		return c.CharacterID == "sender-1" && c.Wallet["Silver"] == 5
	})).Return(nil).Once()
	suite.mockCharRepo.On("UpdateBalances", ctx, mock.MatchedBy(func(c domain.Character) bool {
		return c.CharacterID == "receiver-1" && c.Wallet["Gold"] == 1 && c.Wallet["Silver"] == 5
	})).Return(nil).Once()
	suite.mockTradeRepo.On("SaveTradeRecord", ctx, mock.MatchedBy(func(rec domain.TradeRecord) bool {
		return rec.Status == domain.TradeCompleted &&
			rec.Kind == domain.TradeCurrency &&
			rec.UnitName == "Silver" &&
			rec.GuildID == "guild-1"
	})).Return(nil).Once()

	resp, err := suite.service.ExecuteCurrencyTrade(ctx, "guild-1", dto.TradeCurrencyRequest{
		SenderCharacterID:   "sender-1",
		ReceiverCharacterID: "receiver-1",
		UnitName:            "silver",
		Amount:              decimal.NewFromInt(15),
	}, "player-1")

	suite.Require().NoError(err)
	suite.Equal(string(domain.TradeCompleted), resp.Status)
	suite.Require().NotNil(resp.Amount)
	suite.True(resp.Amount.Equal(decimal.NewFromInt(15)))
	suite.Equal(map[string]int64{"Silver": 5}, resp.SenderBalances)
	suite.Equal(map[string]int64{"Gold": 1, "Silver": 5}, resp.ReceiverBalances)
	suite.mockCharRepo.AssertExpectations(suite.T())
	suite.mockTradeRepo.AssertExpectations(suite.T())
}

func (suite *TradeServiceTestSuite) TestExecuteCurrencyTrade_ReceiverFailureRecordsPartial() {
	ctx := context.Background()
	sender, receiver := suite.tradeParties()

	suite.mockCurrencyRepo.On("FindDefinitionByGuild", ctx, "guild-1").Return(suite.def, nil).Once()
	suite.mockCharRepo.On("FindCharacterByID", ctx, "guild-1", "sender-1").Return(sender, nil).Once()
	suite.mockCharRepo.On("FindCharacterByID", ctx, "guild-1", "receiver-1").Return(receiver, nil).Once()
	suite.mockCharRepo.On("UpdateBalances", ctx, mock.MatchedBy(func(c domain.Character) bool {
		return c.CharacterID == "sender-1"
	})).Return(nil).Once()
	suite.mockCharRepo.On("UpdateBalances", ctx, mock.MatchedBy(func(c domain.Character) bool {
		return c.CharacterID == "receiver-1"
	})).Return(assert.AnError).Once()
	suite.mockTradeRepo.On("SaveTradeRecord", ctx, mock.MatchedBy(func(rec domain.TradeRecord) bool {
		return rec.Status == domain.TradePartial
	})).Return(nil).Once()

	_, err := suite.service.ExecuteCurrencyTrade(ctx, "guild-1", dto.TradeCurrencyRequest{
		SenderCharacterID:   "sender-1",
		ReceiverCharacterID: "receiver-1",
		UnitName:            "gold",
		Amount:              decimal.NewFromInt(1),
	}, "player-1")

	suite.ErrorIs(err, apperrors.ErrPartialTrade)
	suite.mockCharRepo.AssertExpectations(suite.T())
	suite.mockTradeRepo.AssertExpectations(suite.T())
}

func (suite *TradeServiceTestSuite) TestExecuteCurrencyTrade_SenderFailureAborts() {
	ctx := context.Background()
	sender, receiver := suite.tradeParties()

	suite.mockCurrencyRepo.On("FindDefinitionByGuild", ctx, "guild-1").Return(suite.def, nil).Once()
	suite.mockCharRepo.On("FindCharacterByID", ctx, "guild-1", "sender-1").Return(sender, nil).Once()
	suite.mockCharRepo.On("FindCharacterByID", ctx, "guild-1", "receiver-1").Return(receiver, nil).Once()
	suite.mockCharRepo.On("UpdateBalances", ctx, mock.MatchedBy(func(c domain.Character) bool {
		return c.CharacterID == "sender-1"
	})).Return(apperrors.ErrVersionConflict).Once()

	_, err := suite.service.ExecuteCurrencyTrade(ctx, "guild-1", dto.TradeCurrencyRequest{
		SenderCharacterID:   "sender-1",
		ReceiverCharacterID: "receiver-1",
		UnitName:            "gold",
		Amount:              decimal.NewFromInt(1),
	}, "player-1")

	suite.ErrorIs(err, apperrors.ErrVersionConflict)
	// A clean abort writes no audit record.
	suite.mockTradeRepo.AssertNotCalled(suite.T(), "SaveTradeRecord", mock.Anything, mock.Anything)
}

func (suite *TradeServiceTestSuite) TestExecuteCurrencyTrade_SelfTradeRejected() {
	ctx := context.Background()

	suite.mockCurrencyRepo.On("FindDefinitionByGuild", ctx, "guild-1").Return(suite.def, nil).Once()

	_, err := suite.service.ExecuteCurrencyTrade(ctx, "guild-1", dto.TradeCurrencyRequest{
		SenderCharacterID:   "char-1",
		ReceiverCharacterID: "char-1",
		UnitName:            "gold",
		Amount:              decimal.NewFromInt(1),
	}, "player-1")

	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockCharRepo.AssertNotCalled(suite.T(), "FindCharacterByID", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *TradeServiceTestSuite) TestExecuteItemTrade_Success() {
	ctx := context.Background()
	sender, receiver := suite.tradeParties()

	suite.mockCharRepo.On("FindCharacterByID", ctx, "guild-1", "sender-1").Return(sender, nil).Once()
	suite.mockCharRepo.On("FindCharacterByID", ctx, "guild-1", "receiver-1").Return(receiver, nil).Once()
	suite.mockCharRepo.On("UpdateBalances", ctx, mock.MatchedBy(func(c domain.Character) bool {
		return c.CharacterID == "sender-1" && c.Inventory["Rope"] == 1
	})).Return(nil).Once()
	suite.mockCharRepo.On("UpdateBalances", ctx, mock.MatchedBy(func(c domain.Character) bool {
		return c.CharacterID == "receiver-1" && c.Inventory["Rope"] == 1
	})).Return(nil).Once()
	suite.mockTradeRepo.On("SaveTradeRecord", ctx, mock.MatchedBy(func(rec domain.TradeRecord) bool {
		return rec.Status == domain.TradeCompleted &&
			rec.Kind == domain.TradeItem &&
			rec.UnitName == "Rope" &&
			rec.Quantity == 1
	})).Return(nil).Once()

	resp, err := suite.service.ExecuteItemTrade(ctx, "guild-1", dto.TradeItemRequest{
		SenderCharacterID:   "sender-1",
		ReceiverCharacterID: "receiver-1",
		ItemName:            "ROPE",
		Quantity:            1,
	}, "player-1")

	suite.Require().NoError(err)
	suite.Equal("Rope", resp.UnitName)
	suite.Nil(resp.Amount, "item trades carry a quantity, not a currency amount")
	suite.Equal(map[string]int64{"Rope": 1}, resp.SenderBalances)
	suite.Equal(map[string]int64{"Rope": 1}, resp.ReceiverBalances)
	suite.mockCharRepo.AssertExpectations(suite.T())
	suite.mockTradeRepo.AssertExpectations(suite.T())
}

func (suite *TradeServiceTestSuite) TestExecuteItemTrade_AuditFailureDoesNotFailTrade() {
	ctx := context.Background()
	sender, receiver := suite.tradeParties()

	suite.mockCharRepo.On("FindCharacterByID", ctx, "guild-1", "sender-1").Return(sender, nil).Once()
	suite.mockCharRepo.On("FindCharacterByID", ctx, "guild-1", "receiver-1").Return(receiver, nil).Once()
	suite.mockCharRepo.On("UpdateBalances", ctx, mock.AnythingOfType("domain.Character")).Return(nil).Twice()
	suite.mockTradeRepo.On("SaveTradeRecord", ctx, mock.AnythingOfType("domain.TradeRecord")).Return(assert.AnError).Once()

	resp, err := suite.service.ExecuteItemTrade(ctx, "guild-1", dto.TradeItemRequest{
		SenderCharacterID:   "sender-1",
		ReceiverCharacterID: "receiver-1",
		ItemName:            "rope",
		Quantity:            1,
	}, "player-1")

	suite.Require().NoError(err)
	suite.Equal(string(domain.TradeCompleted), resp.Status)
	suite.mockTradeRepo.AssertExpectations(suite.T())
}

func (suite *TradeServiceTestSuite) TestListTrades() {
	ctx := context.Background()
	records := []domain.TradeRecord{{TradeID: "t-1"}, {TradeID: "t-2"}}

	suite.mockTradeRepo.On("ListTradeRecords", ctx, "guild-1", (*domain.TradeStatus)(nil), 50).Return(records, nil).Once()

	got, err := suite.service.ListTrades(ctx, "guild-1", nil, 0)

	suite.Require().NoError(err)
	suite.Equal(records, got)
	suite.mockTradeRepo.AssertExpectations(suite.T())
}

func (suite *TradeServiceTestSuite) TestListTrades_StatusFilterAndLimitCap() {
	ctx := context.Background()
	status := domain.TradePartial

	suite.mockTradeRepo.On("ListTradeRecords", ctx, "guild-1", &status, 50).Return([]domain.TradeRecord{}, nil).Once()

	got, err := suite.service.ListTrades(ctx, "guild-1", &status, 500)

	suite.Require().NoError(err)
	suite.NotNil(got)
	suite.Empty(got)
	suite.mockTradeRepo.AssertExpectations(suite.T())
}

// --- Run Suite ---
func TestTradeService(t *testing.T) {
	suite.Run(t, new(TradeServiceTestSuite))
}
