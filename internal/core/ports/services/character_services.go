package services

import (
	"context"

	"github.com/guildforge/guildforge/internal/core/domain"
	"github.com/guildforge/guildforge/internal/dto"
)

// CharacterReaderSvc defines read operations for characters
type CharacterReaderSvc interface {
	// GetCharacter retrieves a character by ID within a guild.
	GetCharacter(ctx context.Context, guildID, characterID string) (*domain.Character, error)

	// GetActiveCharacter retrieves a player's active character in a guild.
	GetActiveCharacter(ctx context.Context, guildID, playerID string) (*domain.Character, error)

	// ListCharacters retrieves every character a player owns in a guild.
	ListCharacters(ctx context.Context, guildID, playerID string) ([]domain.Character, error)
}

// CharacterWriterSvc defines write operations for characters
type CharacterWriterSvc interface {
	// RegisterCharacter creates a character with an empty wallet and
	// inventory. The first character a player registers becomes active.
	RegisterCharacter(ctx context.Context, guildID string, req dto.RegisterCharacterRequest, creatorUserID string) (*domain.Character, error)

	// ActivateCharacter makes the given character the player's active one.
	ActivateCharacter(ctx context.Context, guildID, characterID, actorUserID string) (*domain.Character, error)
}

// CharacterSvcFacade combines all character-related service interfaces
type CharacterSvcFacade interface {
	CharacterReaderSvc
	CharacterWriterSvc
}
