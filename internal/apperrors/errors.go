package apperrors

import "errors"

// ErrNotFound indicates that a requested resource could not be found.
var ErrNotFound = errors.New("resource not found")

// ErrValidation indicates that input data failed validation checks.
var ErrValidation = errors.New("validation error")

// ErrDuplicate indicates that an attempt was made to create a resource that already exists.
var ErrDuplicate = errors.New("resource already exists")

// ErrNoCurrencyConfig indicates that a guild has no currency definition yet.
// Surfaced to the invoking GM as "configure a currency first".
var ErrNoCurrencyConfig = errors.New("no currency is configured for this server")

// ErrUnknownCurrency indicates that a user-supplied unit name does not resolve
// to any configured currency or denomination on the server.
var ErrUnknownCurrency = errors.New("no currency with that name exists on this server")

// ErrInvalidAmount indicates a non-positive amount on an operation that
// requires a positive one. Never silently clamped.
var ErrInvalidAmount = errors.New("amount must be positive")

// ErrInsufficientFunds indicates a wallet mutation that would leave a
// negative balance.
var ErrInsufficientFunds = errors.New("insufficient funds")

// ErrInsufficientItems indicates an item transfer exceeding the sender's held quantity.
var ErrInsufficientItems = errors.New("insufficient items")

// ErrPartialTrade indicates the credit leg of a two-wallet trade could not be
// persisted after the debit leg succeeded. The trade is recorded as PARTIAL
// for manual reconciliation; there is no automatic rollback.
var ErrPartialTrade = errors.New("trade partially applied, flagged for reconciliation")

// ErrVersionConflict indicates an optimistic-lock failure on a character
// update. Callers may retry with a freshly loaded character.
var ErrVersionConflict = errors.New("character was modified concurrently")
