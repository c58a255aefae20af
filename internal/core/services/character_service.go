package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/guildforge/guildforge/internal/apperrors"
	"github.com/guildforge/guildforge/internal/core/domain"
	portsrepo "github.com/guildforge/guildforge/internal/core/ports/repositories"
	portssvc "github.com/guildforge/guildforge/internal/core/ports/services"
	"github.com/guildforge/guildforge/internal/dto"
	"github.com/guildforge/guildforge/internal/middleware"
)

// characterService manages character lifecycle. The currency engine never
// deletes characters; that is a player-management concern handled elsewhere.
type characterService struct {
	characterRepo portsrepo.CharacterRepositoryFacade
}

// NewCharacterService creates a new CharacterService.
func NewCharacterService(characterRepo portsrepo.CharacterRepositoryFacade) portssvc.CharacterSvcFacade {
	return &characterService{characterRepo: characterRepo}
}

var _ portssvc.CharacterSvcFacade = (*characterService)(nil)

// GetCharacter retrieves a character by ID within a guild.
func (s *characterService) GetCharacter(ctx context.Context, guildID, characterID string) (*domain.Character, error) {
	character, err := s.characterRepo.FindCharacterByID(ctx, guildID, characterID)
	if err != nil {
		return nil, fmt.Errorf("failed to get character %s: %w", characterID, err)
	}
	return character, nil
}

// GetActiveCharacter retrieves a player's active character in a guild.
func (s *characterService) GetActiveCharacter(ctx context.Context, guildID, playerID string) (*domain.Character, error) {
	character, err := s.characterRepo.FindActiveCharacter(ctx, guildID, playerID)
	if err != nil {
		return nil, fmt.Errorf("failed to get active character for player %s: %w", playerID, err)
	}
	return character, nil
}

// ListCharacters retrieves every character a player owns in a guild.
func (s *characterService) ListCharacters(ctx context.Context, guildID, playerID string) ([]domain.Character, error) {
	characters, err := s.characterRepo.ListCharactersByPlayer(ctx, guildID, playerID)
	if err != nil {
		return nil, fmt.Errorf("failed to list characters for player %s: %w", playerID, err)
	}
	if characters == nil {
		return []domain.Character{}, nil
	}
	return characters, nil
}

// RegisterCharacter creates a character with an empty wallet and inventory.
// A player may own many characters; the first one registered becomes active.
func (s *characterService) RegisterCharacter(ctx context.Context, guildID string, req dto.RegisterCharacterRequest, creatorUserID string) (*domain.Character, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	isFirst := false
	if _, err := s.characterRepo.FindActiveCharacter(ctx, guildID, req.PlayerID); err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("failed to check active character: %w", err)
		}
		isFirst = true
	}

	now := time.Now().UTC()
	character := domain.Character{
		CharacterID: uuid.NewString(),
		GuildID:     guildID,
		PlayerID:    req.PlayerID,
		Name:        req.Name,
		Wallet:      domain.Wallet{},
		Inventory:   domain.Inventory{},
		IsActive:    isFirst,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorUserID,
		},
	}

	if err := s.characterRepo.SaveCharacter(ctx, character); err != nil {
		logger.Error("Failed to save character", slog.String("guild_id", guildID), slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to register character: %w", err)
	}

	logger.Info("Character registered",
		slog.String("character_id", character.CharacterID),
		slog.String("player_id", req.PlayerID),
		slog.Bool("active", isFirst),
	)
	return &character, nil
}

// ActivateCharacter makes the given character the player's active one,
// clearing the previous active character in the same transaction.
func (s *characterService) ActivateCharacter(ctx context.Context, guildID, characterID, actorUserID string) (*domain.Character, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	character, err := s.characterRepo.FindCharacterByID(ctx, guildID, characterID)
	if err != nil {
		return nil, fmt.Errorf("failed to get character %s: %w", characterID, err)
	}
	if character.IsActive {
		return character, nil
	}

	if err := s.characterRepo.SetActiveCharacter(ctx, guildID, character.PlayerID, characterID); err != nil {
		logger.Error("Failed to activate character", slog.String("character_id", characterID), slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to activate character: %w", err)
	}
	character.IsActive = true

	logger.Info("Character activated", slog.String("character_id", characterID), slog.String("player_id", character.PlayerID))
	return character, nil
}
