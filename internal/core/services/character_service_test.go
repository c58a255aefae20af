package services_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/guildforge/guildforge/internal/apperrors"
	"github.com/guildforge/guildforge/internal/core/domain"
	portssvc "github.com/guildforge/guildforge/internal/core/ports/services"
	"github.com/guildforge/guildforge/internal/core/services"
	"github.com/guildforge/guildforge/internal/dto"
)

// --- Test Suite ---
type CharacterServiceTestSuite struct {
	suite.Suite
	mockRepo *MockCharacterRepository
	service  portssvc.CharacterSvcFacade
}

func (suite *CharacterServiceTestSuite) SetupTest() {
	suite.mockRepo = new(MockCharacterRepository)
	suite.service = services.NewCharacterService(suite.mockRepo)
}

// --- Test Cases ---

func (suite *CharacterServiceTestSuite) TestRegisterCharacter_FirstBecomesActive() {
	ctx := context.Background()
	req := dto.RegisterCharacterRequest{PlayerID: "player-1", Name: "Thorin"}

	suite.mockRepo.On("FindActiveCharacter", ctx, "guild-1", "player-1").Return(nil, apperrors.ErrNotFound).Once()
	suite.mockRepo.On("SaveCharacter", ctx, mock.MatchedBy(func(c domain.Character) bool {
		return c.GuildID == "guild-1" &&
			c.PlayerID == "player-1" &&
			c.Name == "Thorin" &&
			c.IsActive &&
			len(c.Wallet) == 0 && len(c.Inventory) == 0 &&
			c.CreatedBy == "player-1"
	})).Return(nil).Once()

	character, err := suite.service.RegisterCharacter(ctx, "guild-1", req, "player-1")

	suite.Require().NoError(err)
	suite.NotEmpty(character.CharacterID)
	suite.True(character.IsActive)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *CharacterServiceTestSuite) TestRegisterCharacter_SecondStaysInactive() {
	ctx := context.Background()
	existing := &domain.Character{CharacterID: "char-1", IsActive: true}
	req := dto.RegisterCharacterRequest{PlayerID: "player-1", Name: "Balin"}

	suite.mockRepo.On("FindActiveCharacter", ctx, "guild-1", "player-1").Return(existing, nil).Once()
	suite.mockRepo.On("SaveCharacter", ctx, mock.MatchedBy(func(c domain.Character) bool {
		return !c.IsActive
	})).Return(nil).Once()

	character, err := suite.service.RegisterCharacter(ctx, "guild-1", req, "player-1")

	suite.Require().NoError(err)
	suite.False(character.IsActive)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *CharacterServiceTestSuite) TestRegisterCharacter_SaveError() {
	ctx := context.Background()
	expectedErr := assert.AnError

	suite.mockRepo.On("FindActiveCharacter", ctx, "guild-1", "player-1").Return(nil, apperrors.ErrNotFound).Once()
	suite.mockRepo.On("SaveCharacter", ctx, mock.AnythingOfType("domain.Character")).Return(expectedErr).Once()

	_, err := suite.service.RegisterCharacter(ctx, "guild-1", dto.RegisterCharacterRequest{PlayerID: "player-1", Name: "Thorin"}, "player-1")

	suite.ErrorIs(err, expectedErr)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *CharacterServiceTestSuite) TestGetCharacter() {
	ctx := context.Background()
	expected := &domain.Character{CharacterID: "char-1", GuildID: "guild-1"}

	suite.mockRepo.On("FindCharacterByID", ctx, "guild-1", "char-1").Return(expected, nil).Once()

	character, err := suite.service.GetCharacter(ctx, "guild-1", "char-1")

	suite.Require().NoError(err)
	suite.Equal(expected, character)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *CharacterServiceTestSuite) TestGetCharacter_NotFound() {
	ctx := context.Background()

	suite.mockRepo.On("FindCharacterByID", ctx, "guild-1", "missing").Return(nil, apperrors.ErrNotFound).Once()

	_, err := suite.service.GetCharacter(ctx, "guild-1", "missing")

	suite.ErrorIs(err, apperrors.ErrNotFound)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *CharacterServiceTestSuite) TestGetActiveCharacter() {
	ctx := context.Background()
	expected := &domain.Character{CharacterID: "char-1", PlayerID: "player-1", IsActive: true}

	suite.mockRepo.On("FindActiveCharacter", ctx, "guild-1", "player-1").Return(expected, nil).Once()

	character, err := suite.service.GetActiveCharacter(ctx, "guild-1", "player-1")

	suite.Require().NoError(err)
	suite.Equal(expected, character)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *CharacterServiceTestSuite) TestListCharacters() {
	ctx := context.Background()
	expected := []domain.Character{{CharacterID: "char-1"}, {CharacterID: "char-2"}}

	suite.mockRepo.On("ListCharactersByPlayer", ctx, "guild-1", "player-1").Return(expected, nil).Once()

	characters, err := suite.service.ListCharacters(ctx, "guild-1", "player-1")

	suite.Require().NoError(err)
	suite.Equal(expected, characters)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *CharacterServiceTestSuite) TestListCharacters_EmptyIsNotNil() {
	ctx := context.Background()

	suite.mockRepo.On("ListCharactersByPlayer", ctx, "guild-1", "player-1").Return([]domain.Character(nil), nil).Once()

	characters, err := suite.service.ListCharacters(ctx, "guild-1", "player-1")

	suite.Require().NoError(err)
	suite.NotNil(characters)
	suite.Empty(characters)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *CharacterServiceTestSuite) TestActivateCharacter_Success() {
	ctx := context.Background()
	character := &domain.Character{CharacterID: "char-2", GuildID: "guild-1", PlayerID: "player-1"}

	suite.mockRepo.On("FindCharacterByID", ctx, "guild-1", "char-2").Return(character, nil).Once()
	suite.mockRepo.On("SetActiveCharacter", ctx, "guild-1", "player-1", "char-2").Return(nil).Once()

	activated, err := suite.service.ActivateCharacter(ctx, "guild-1", "char-2", "player-1")

	suite.Require().NoError(err)
	suite.True(activated.IsActive)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *CharacterServiceTestSuite) TestActivateCharacter_AlreadyActiveIsNoOp() {
	ctx := context.Background()
	character := &domain.Character{CharacterID: "char-1", GuildID: "guild-1", PlayerID: "player-1", IsActive: true}

	suite.mockRepo.On("FindCharacterByID", ctx, "guild-1", "char-1").Return(character, nil).Once()

	activated, err := suite.service.ActivateCharacter(ctx, "guild-1", "char-1", "player-1")

	suite.Require().NoError(err)
	suite.True(activated.IsActive)
	suite.mockRepo.AssertNotCalled(suite.T(), "SetActiveCharacter", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *CharacterServiceTestSuite) TestActivateCharacter_NotFound() {
	ctx := context.Background()

	suite.mockRepo.On("FindCharacterByID", ctx, "guild-1", "missing").Return(nil, apperrors.ErrNotFound).Once()

	_, err := suite.service.ActivateCharacter(ctx, "guild-1", "missing", "player-1")

	suite.ErrorIs(err, apperrors.ErrNotFound)
	suite.mockRepo.AssertExpectations(suite.T())
}

// --- Run Suite ---
func TestCharacterService(t *testing.T) {
	suite.Run(t, new(CharacterServiceTestSuite))
}
