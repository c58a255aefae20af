package repositories

import (
	"context"

	"github.com/guildforge/guildforge/internal/core/domain"
)

// CharacterReader defines read operations for character data
type CharacterReader interface {
	// FindCharacterByID retrieves a character by ID within a guild.
	FindCharacterByID(ctx context.Context, guildID, characterID string) (*domain.Character, error)

	// FindActiveCharacter retrieves a player's active character in a guild.
	FindActiveCharacter(ctx context.Context, guildID, playerID string) (*domain.Character, error)

	// ListCharactersByPlayer retrieves every character a player owns in a guild.
	ListCharactersByPlayer(ctx context.Context, guildID, playerID string) ([]domain.Character, error)
}

// CharacterWriter defines write operations for character data
type CharacterWriter interface {
	// SaveCharacter persists a newly registered character.
	SaveCharacter(ctx context.Context, character domain.Character) error

	// UpdateBalances persists a character's wallet, inventory and experience
	// as a single-row update guarded by the character's version field.
	// Returns apperrors.ErrVersionConflict when the row changed underneath.
	UpdateBalances(ctx context.Context, character domain.Character) error

	// SetActiveCharacter marks one character active for a player, clearing
	// the previous active character in the same transaction.
	SetActiveCharacter(ctx context.Context, guildID, playerID, characterID string) error
}

// CharacterRepositoryFacade combines all character-related repository interfaces
type CharacterRepositoryFacade interface {
	CharacterReader
	CharacterWriter
}
