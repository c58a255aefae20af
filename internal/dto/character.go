package dto

import (
	"time"

	"github.com/guildforge/guildforge/internal/core/domain"
)

// RegisterCharacterRequest defines the data needed to register a character.
type RegisterCharacterRequest struct {
	PlayerID string `json:"playerID" binding:"required"`
	Name     string `json:"name" binding:"required,max=64"`
}

// CharacterResponse defines the data returned for a character.
type CharacterResponse struct {
	CharacterID string           `json:"characterID"`
	GuildID     string           `json:"guildID"`
	PlayerID    string           `json:"playerID"`
	Name        string           `json:"name"`
	Experience  int64            `json:"experience"`
	Wallet      map[string]int64 `json:"wallet"`
	Inventory   map[string]int64 `json:"inventory"`
	IsActive    bool             `json:"isActive"`
	CreatedAt   time.Time        `json:"createdAt"`
}

// ToCharacterResponse converts a domain.Character to CharacterResponse DTO
func ToCharacterResponse(ch *domain.Character) CharacterResponse {
	return CharacterResponse{
		CharacterID: ch.CharacterID,
		GuildID:     ch.GuildID,
		PlayerID:    ch.PlayerID,
		Name:        ch.Name,
		Experience:  ch.Experience,
		Wallet:      ch.Wallet,
		Inventory:   ch.Inventory,
		IsActive:    ch.IsActive,
		CreatedAt:   ch.CreatedAt,
	}
}
