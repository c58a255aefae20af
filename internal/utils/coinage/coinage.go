// Package coinage holds the pure value-conversion helpers shared by the
// wallet and trade services: unit-to-base conversion and the greedy
// consolidation of a base-unit total into denomination counts.
package coinage

import (
	"fmt"
	"sort"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/guildforge/guildforge/internal/apperrors"
	"github.com/guildforge/guildforge/internal/core/domain"
)

// ToBaseUnits converts an amount of the named unit into base units using the
// family's denomination map (lowercase unit name -> value in base units).
func ToBaseUnits(amount decimal.Decimal, unitName string, denomMap map[string]decimal.Decimal) (decimal.Decimal, error) {
	value, ok := denomMap[strings.ToLower(strings.TrimSpace(unitName))]
	if !ok {
		return decimal.Zero, fmt.Errorf("%w: %q", apperrors.ErrUnknownCurrency, unitName)
	}
	return amount.Mul(value), nil
}

// WalletTotal sums the wallet's holdings of every unit belonging to one
// currency family into a single base-unit total. Entries for other currency
// families are ignored.
func WalletTotal(wallet domain.Wallet, denomMap map[string]decimal.Decimal) decimal.Decimal {
	total := decimal.Zero
	for name, value := range denomMap {
		count := wallet.Count(name)
		if count == 0 {
			continue
		}
		total = total.Add(value.Mul(decimal.NewFromInt(count)))
	}
	return total
}

// Consolidate decomposes a base-unit total into denomination counts, largest
// denomination first. Any remainder below the smallest denomination's value
// is truncated; that fractional dust is accepted lossy behavior, not an
// error. A zero or negative total yields an empty map (callers validate
// non-negativity before calling). Keys of the result are canonical names;
// zero counts are omitted.
//
// The output is deterministic: denomination values are distinct within a
// family by construction, so the descending order admits no ties.
func Consolidate(total decimal.Decimal, denomMap map[string]decimal.Decimal) map[string]int64 {
	counts := make(map[string]int64)
	if !total.IsPositive() {
		return counts
	}

	type unit struct {
		name  string
		value decimal.Decimal
	}
	units := make([]unit, 0, len(denomMap))
	for name, value := range denomMap {
		units = append(units, unit{name: name, value: value})
	}
	sort.Slice(units, func(i, j int) bool {
		return units[i].value.GreaterThan(units[j].value)
	})

	remaining := total
	for _, u := range units {
		count := remaining.Div(u.value).Floor()
		if count.IsPositive() {
			counts[domain.CanonicalName(u.name)] = count.IntPart()
			remaining = remaining.Sub(count.Mul(u.value))
		}
	}
	return counts
}

// CountsTotal converts a consolidated denomination-count mapping back into a
// base-unit total. Unknown names in the mapping contribute nothing.
func CountsTotal(counts map[string]int64, denomMap map[string]decimal.Decimal) decimal.Decimal {
	total := decimal.Zero
	for name, count := range counts {
		value, ok := denomMap[strings.ToLower(name)]
		if !ok {
			continue
		}
		total = total.Add(value.Mul(decimal.NewFromInt(count)))
	}
	return total
}
