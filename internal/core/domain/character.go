package domain

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

var titleCaser = cases.Title(language.Und)

// CanonicalName is the casing used for wallet and inventory keys in storage.
// Lookups are case-insensitive; writes always use this form.
func CanonicalName(name string) string {
	return titleCaser.String(strings.ToLower(strings.TrimSpace(name)))
}

// Wallet maps currency/denomination names to non-negative held counts.
// Keys are stored in canonical casing and matched case-insensitively.
// Entries with count zero are removed, not retained.
type Wallet map[string]int64

// Count returns the held count for a unit name, matching case-insensitively.
func (w Wallet) Count(name string) int64 {
	return w[CanonicalName(name)]
}

// SetCount stores a count under the canonical key, deleting zero entries.
func (w Wallet) SetCount(name string, count int64) {
	key := CanonicalName(name)
	if count == 0 {
		delete(w, key)
		return
	}
	w[key] = count
}

// Clone returns an independent copy of the wallet.
func (w Wallet) Clone() Wallet {
	out := make(Wallet, len(w))
	for k, v := range w {
		out[k] = v
	}
	return out
}

// Inventory maps item names to held quantities. Item names are stored in
// title case and matched case-insensitively.
type Inventory map[string]int64

// Quantity returns the held quantity for an item, matching case-insensitively.
func (inv Inventory) Quantity(name string) int64 {
	return inv[CanonicalName(name)]
}

// SetQuantity stores a quantity under the canonical key, deleting zero entries.
func (inv Inventory) SetQuantity(name string, qty int64) {
	key := CanonicalName(name)
	if qty == 0 {
		delete(inv, key)
		return
	}
	inv[key] = qty
}

// Clone returns an independent copy of the inventory.
func (inv Inventory) Clone() Inventory {
	out := make(Inventory, len(inv))
	for k, v := range inv {
		out[k] = v
	}
	return out
}

// Character is a player's persona within one guild. A player may own many
// characters but has at most one active character per guild. The character
// exclusively owns its wallet and inventory.
type Character struct {
	CharacterID string    `json:"characterID"` // Primary Key (e.g., UUID)
	GuildID     string    `json:"guildID"`     // Discord guild the character lives in
	PlayerID    string    `json:"playerID"`    // Discord user ID of the owner
	Name        string    `json:"name"`
	Experience  int64     `json:"experience"`
	Wallet      Wallet    `json:"wallet"`
	Inventory   Inventory `json:"inventory"`
	IsActive    bool      `json:"isActive"`
	Version     int64     `json:"version"` // optimistic lock, bumped on every balance update
	AuditFields
}
