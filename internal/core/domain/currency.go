package domain

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/guildforge/guildforge/internal/apperrors"
)

// Denomination is a named sub/super-unit of a base currency with a fixed
// value relative to the base unit (e.g. silver = 0.1 gold).
type Denomination struct {
	Name  string          `json:"name"`
	Value decimal.Decimal `json:"value"` // relative to the parent base unit, strictly positive
}

// Currency is a base unit with an implicit value of 1 in its own family.
type Currency struct {
	Name          string         `json:"name"`
	IsDouble      bool           `json:"isDouble"` // display hint only: decimal vs integer rendering
	Denominations []Denomination `json:"denominations"`
}

// DenominationMap returns the unit system for this currency family:
// lowercase unit name -> value in base units. The base currency itself is
// always present at value 1. Denominations of different currencies are never
// mixed into one map.
func (c Currency) DenominationMap() map[string]decimal.Decimal {
	m := make(map[string]decimal.Decimal, len(c.Denominations)+1)
	m[strings.ToLower(c.Name)] = decimal.NewFromInt(1)
	for _, d := range c.Denominations {
		m[strings.ToLower(d.Name)] = d.Value
	}
	return m
}

// CurrencyDefinition is the per-guild currency configuration document.
// Invariant: the union of all currency names and all denomination names in
// one guild contains no case-insensitive duplicates.
type CurrencyDefinition struct {
	GuildID    string     `json:"guildID"`
	Currencies []Currency `json:"currencies"`
	AuditFields
}

// NewCurrencyDefinition builds an empty definition for a guild.
func NewCurrencyDefinition(guildID string) *CurrencyDefinition {
	return &CurrencyDefinition{GuildID: guildID}
}

// Resolve matches name case-insensitively against every currency and
// denomination name in the definition. It reports whether the name is known
// and, if so, the name of the base currency it belongs to.
func (d CurrencyDefinition) Resolve(name string) (bool, string) {
	needle := strings.ToLower(strings.TrimSpace(name))
	if needle == "" {
		return false, ""
	}
	for _, cur := range d.Currencies {
		if strings.ToLower(cur.Name) == needle {
			return true, cur.Name
		}
		for _, den := range cur.Denominations {
			if strings.ToLower(den.Name) == needle {
				return true, cur.Name
			}
		}
	}
	return false, ""
}

// CurrencyFor returns the currency family that owns the given unit name
// (either the base currency itself or one of its denominations).
func (d CurrencyDefinition) CurrencyFor(name string) (*Currency, error) {
	known, base := d.Resolve(name)
	if !known {
		return nil, fmt.Errorf("%w: %q", apperrors.ErrUnknownCurrency, name)
	}
	for i := range d.Currencies {
		if strings.EqualFold(d.Currencies[i].Name, base) {
			return &d.Currencies[i], nil
		}
	}
	// Unreachable while Resolve and Currencies agree.
	return nil, fmt.Errorf("%w: %q", apperrors.ErrUnknownCurrency, name)
}

// AddCurrency appends a new currency family after validating it against the
// server-wide uniqueness invariant.
func (d *CurrencyDefinition) AddCurrency(c Currency) error {
	if strings.TrimSpace(c.Name) == "" {
		return fmt.Errorf("%w: currency name is required", apperrors.ErrValidation)
	}
	if known, _ := d.Resolve(c.Name); known {
		return fmt.Errorf("%w: name %q is already in use", apperrors.ErrDuplicate, c.Name)
	}
	if err := validateDenominations(c); err != nil {
		return err
	}
	for _, den := range c.Denominations {
		if known, _ := d.Resolve(den.Name); known {
			return fmt.Errorf("%w: name %q is already in use", apperrors.ErrDuplicate, den.Name)
		}
	}
	d.Currencies = append(d.Currencies, c)
	return nil
}

// AddDenomination attaches a new denomination to an existing currency family,
// rejecting duplicate names (server-wide) and duplicate values (within the
// family) before anything reaches the ledger.
func (d *CurrencyDefinition) AddDenomination(currencyName string, den Denomination) error {
	if strings.TrimSpace(den.Name) == "" {
		return fmt.Errorf("%w: denomination name is required", apperrors.ErrValidation)
	}
	if !den.Value.IsPositive() {
		return fmt.Errorf("%w: denomination value must be positive", apperrors.ErrValidation)
	}
	if known, _ := d.Resolve(den.Name); known {
		return fmt.Errorf("%w: name %q is already in use", apperrors.ErrDuplicate, den.Name)
	}
	for i := range d.Currencies {
		if !strings.EqualFold(d.Currencies[i].Name, currencyName) {
			continue
		}
		if den.Value.Equal(decimal.NewFromInt(1)) {
			return fmt.Errorf("%w: value 1 is reserved for the base unit %q", apperrors.ErrDuplicate, d.Currencies[i].Name)
		}
		for _, existing := range d.Currencies[i].Denominations {
			if existing.Value.Equal(den.Value) {
				return fmt.Errorf("%w: denomination %q already has value %s", apperrors.ErrDuplicate, existing.Name, den.Value.String())
			}
		}
		d.Currencies[i].Denominations = append(d.Currencies[i].Denominations, den)
		return nil
	}
	return fmt.Errorf("%w: %q", apperrors.ErrUnknownCurrency, currencyName)
}

// Validate checks a definition loaded from the store against the data-model
// invariants, rejecting malformed documents at load time rather than trusting
// their shape at every call site.
func (d CurrencyDefinition) Validate() error {
	seen := make(map[string]struct{})
	for _, cur := range d.Currencies {
		if strings.TrimSpace(cur.Name) == "" {
			return fmt.Errorf("%w: currency with empty name", apperrors.ErrValidation)
		}
		lower := strings.ToLower(cur.Name)
		if _, dup := seen[lower]; dup {
			return fmt.Errorf("%w: duplicate name %q", apperrors.ErrValidation, cur.Name)
		}
		seen[lower] = struct{}{}
		if err := validateDenominations(cur); err != nil {
			return err
		}
		for _, den := range cur.Denominations {
			lower := strings.ToLower(den.Name)
			if _, dup := seen[lower]; dup {
				return fmt.Errorf("%w: duplicate name %q", apperrors.ErrValidation, den.Name)
			}
			seen[lower] = struct{}{}
		}
	}
	return nil
}

func validateDenominations(c Currency) error {
	names := make(map[string]struct{}, len(c.Denominations))
	values := make(map[string]struct{}, len(c.Denominations))
	names[strings.ToLower(c.Name)] = struct{}{}
	one := decimal.NewFromInt(1)
	for _, den := range c.Denominations {
		if strings.TrimSpace(den.Name) == "" {
			return fmt.Errorf("%w: denomination name is required", apperrors.ErrValidation)
		}
		if !den.Value.IsPositive() {
			return fmt.Errorf("%w: denomination %q must have a positive value", apperrors.ErrValidation, den.Name)
		}
		if den.Value.Equal(one) {
			return fmt.Errorf("%w: value 1 is reserved for the base unit %q", apperrors.ErrValidation, c.Name)
		}
		lower := strings.ToLower(den.Name)
		if _, dup := names[lower]; dup {
			return fmt.Errorf("%w: duplicate name %q", apperrors.ErrValidation, den.Name)
		}
		names[lower] = struct{}{}
		key := den.Value.String()
		if _, dup := values[key]; dup {
			return fmt.Errorf("%w: duplicate denomination value %s", apperrors.ErrValidation, key)
		}
		values[key] = struct{}{}
	}
	return nil
}
