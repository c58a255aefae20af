package pgsql

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/guildforge/guildforge/internal/apperrors"
	"github.com/guildforge/guildforge/internal/core/domain"
	portsrepo "github.com/guildforge/guildforge/internal/core/ports/repositories"
)

// PgxCharacterRepository stores characters with wallet and inventory
// serialized as JSONB. Every balance write is a single-row update guarded by
// the version column, so concurrent mutations of the same character surface
// as ErrVersionConflict instead of lost updates.
type PgxCharacterRepository struct {
	BaseRepository
}

// NewCharacterRepository creates a new repository for character data.
func NewCharacterRepository(pool *pgxpool.Pool) portsrepo.CharacterRepositoryFacade {
	return &PgxCharacterRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

var _ portsrepo.CharacterRepositoryFacade = (*PgxCharacterRepository)(nil)

const characterColumns = `character_id, guild_id, player_id, name, experience, wallet, inventory, is_active, version, created_at, created_by, last_updated_at, last_updated_by`

// SaveCharacter persists a newly registered character.
func (r *PgxCharacterRepository) SaveCharacter(ctx context.Context, character domain.Character) error {
	walletJSON, inventoryJSON, err := marshalBalances(character)
	if err != nil {
		return err
	}

	query := `
		INSERT INTO characters (` + characterColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13);
	`

	_, err = r.Pool.Exec(ctx, query,
		character.CharacterID,
		character.GuildID,
		character.PlayerID,
		character.Name,
		character.Experience,
		walletJSON,
		inventoryJSON,
		character.IsActive,
		character.Version,
		character.CreatedAt,
		character.CreatedBy,
		character.LastUpdatedAt,
		character.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to save character %s: %w", character.CharacterID, err)
	}
	return nil
}

// FindCharacterByID retrieves a character by ID within a guild.
func (r *PgxCharacterRepository) FindCharacterByID(ctx context.Context, guildID, characterID string) (*domain.Character, error) {
	query := `
		SELECT ` + characterColumns + `
		FROM characters
		WHERE guild_id = $1 AND character_id = $2;
	`
	return r.scanCharacter(r.Pool.QueryRow(ctx, query, guildID, characterID), characterID)
}

// FindActiveCharacter retrieves a player's active character in a guild.
func (r *PgxCharacterRepository) FindActiveCharacter(ctx context.Context, guildID, playerID string) (*domain.Character, error) {
	query := `
		SELECT ` + characterColumns + `
		FROM characters
		WHERE guild_id = $1 AND player_id = $2 AND is_active;
	`
	return r.scanCharacter(r.Pool.QueryRow(ctx, query, guildID, playerID), playerID)
}

// ListCharactersByPlayer retrieves every character a player owns in a guild.
func (r *PgxCharacterRepository) ListCharactersByPlayer(ctx context.Context, guildID, playerID string) ([]domain.Character, error) {
	query := `
		SELECT ` + characterColumns + `
		FROM characters
		WHERE guild_id = $1 AND player_id = $2
		ORDER BY created_at;
	`
	rows, err := r.Pool.Query(ctx, query, guildID, playerID)
	if err != nil {
		return nil, fmt.Errorf("failed to query characters: %w", err)
	}
	defer rows.Close()

	var characters []domain.Character
	for rows.Next() {
		ch, err := scanCharacterRow(rows)
		if err != nil {
			return nil, err
		}
		characters = append(characters, *ch)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to scan characters: %w", err)
	}
	return characters, nil
}

// UpdateBalances persists wallet, inventory and experience with an
// optimistic version check.
func (r *PgxCharacterRepository) UpdateBalances(ctx context.Context, character domain.Character) error {
	walletJSON, inventoryJSON, err := marshalBalances(character)
	if err != nil {
		return err
	}

	query := `
		UPDATE characters
		SET experience = $1,
			wallet = $2,
			inventory = $3,
			version = version + 1,
			last_updated_at = $4,
			last_updated_by = $5
		WHERE guild_id = $6 AND character_id = $7 AND version = $8;
	`

	tag, err := r.Pool.Exec(ctx, query,
		character.Experience,
		walletJSON,
		inventoryJSON,
		character.LastUpdatedAt,
		character.LastUpdatedBy,
		character.GuildID,
		character.CharacterID,
		character.Version,
	)
	if err != nil {
		return fmt.Errorf("failed to update balances for character %s: %w", character.CharacterID, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: character %s", apperrors.ErrVersionConflict, character.CharacterID)
	}
	return nil
}

// SetActiveCharacter marks one character active for a player, clearing the
// previous active character in the same transaction.
func (r *PgxCharacterRepository) SetActiveCharacter(ctx context.Context, guildID, playerID, characterID string) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = r.Rollback(ctx, tx) }()

	if _, err := tx.Exec(ctx,
		`UPDATE characters SET is_active = false WHERE guild_id = $1 AND player_id = $2 AND is_active;`,
		guildID, playerID,
	); err != nil {
		return fmt.Errorf("failed to clear active character for player %s: %w", playerID, err)
	}

	tag, err := tx.Exec(ctx,
		`UPDATE characters SET is_active = true WHERE guild_id = $1 AND player_id = $2 AND character_id = $3;`,
		guildID, playerID, characterID,
	)
	if err != nil {
		return fmt.Errorf("failed to set active character %s: %w", characterID, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: character %s", apperrors.ErrNotFound, characterID)
	}

	return r.Commit(ctx, tx)
}

func (r *PgxCharacterRepository) scanCharacter(row pgx.Row, key string) (*domain.Character, error) {
	ch, err := scanCharacterRow(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find character %s: %w", key, err)
	}
	return ch, nil
}

func scanCharacterRow(row pgx.Row) (*domain.Character, error) {
	var ch domain.Character
	var walletJSON, inventoryJSON []byte
	err := row.Scan(
		&ch.CharacterID,
		&ch.GuildID,
		&ch.PlayerID,
		&ch.Name,
		&ch.Experience,
		&walletJSON,
		&inventoryJSON,
		&ch.IsActive,
		&ch.Version,
		&ch.CreatedAt,
		&ch.CreatedBy,
		&ch.LastUpdatedAt,
		&ch.LastUpdatedBy,
	)
	if err != nil {
		return nil, err
	}
	if err := json.Unmarshal(walletJSON, &ch.Wallet); err != nil {
		return nil, fmt.Errorf("failed to unmarshal wallet for character %s: %w", ch.CharacterID, err)
	}
	if err := json.Unmarshal(inventoryJSON, &ch.Inventory); err != nil {
		return nil, fmt.Errorf("failed to unmarshal inventory for character %s: %w", ch.CharacterID, err)
	}
	return &ch, nil
}

func marshalBalances(character domain.Character) ([]byte, []byte, error) {
	walletJSON, err := json.Marshal(character.Wallet)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to marshal wallet for character %s: %w", character.CharacterID, err)
	}
	inventoryJSON, err := json.Marshal(character.Inventory)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to marshal inventory for character %s: %w", character.CharacterID, err)
	}
	return walletJSON, inventoryJSON, nil
}
