package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/guildforge/guildforge/internal/apperrors"
	"github.com/guildforge/guildforge/internal/core/domain"
	portsrepo "github.com/guildforge/guildforge/internal/core/ports/repositories"
	portssvc "github.com/guildforge/guildforge/internal/core/ports/services"
	"github.com/guildforge/guildforge/internal/dto"
	"github.com/guildforge/guildforge/internal/middleware"
)

// tradeService coordinates two-party transfers on top of the wallet ledger.
type tradeService struct {
	characterRepo portsrepo.CharacterRepositoryFacade
	tradeRepo     portsrepo.TradeRecordRepositoryFacade
	currencySvc   portssvc.CurrencyReaderSvc
	walletSvc     portssvc.WalletEngineSvc
}

// NewTradeService creates a new TradeService.
func NewTradeService(
	characterRepo portsrepo.CharacterRepositoryFacade,
	tradeRepo portsrepo.TradeRecordRepositoryFacade,
	currencySvc portssvc.CurrencyReaderSvc,
	walletSvc portssvc.WalletEngineSvc,
) portssvc.TradeSvcFacade {
	return &tradeService{
		characterRepo: characterRepo,
		tradeRepo:     tradeRepo,
		currencySvc:   currencySvc,
		walletSvc:     walletSvc,
	}
}

var _ portssvc.TradeSvcFacade = (*tradeService)(nil)

// TradeCurrency debits the sender and credits the receiver with the same
// amount of the named unit. Total base-unit value across both wallets is
// conserved. Neither input wallet is mutated.
func (s *tradeService) TradeCurrency(def domain.CurrencyDefinition, unitName string, amount decimal.Decimal, sender, receiver domain.Wallet) (domain.Wallet, domain.Wallet, error) {
	if !amount.IsPositive() {
		return nil, nil, fmt.Errorf("%w: got %s", apperrors.ErrInvalidAmount, amount.String())
	}
	if known, _ := def.Resolve(unitName); !known {
		return nil, nil, fmt.Errorf("%w: %q", apperrors.ErrUnknownCurrency, unitName)
	}

	ok, shortfall, err := s.walletSvc.CheckSufficientFunds(def, sender, unitName, amount)
	if err != nil {
		return nil, nil, err
	}
	if !ok {
		return nil, nil, fmt.Errorf("%w: %s", apperrors.ErrInsufficientFunds, shortfall)
	}

	newSender, err := s.walletSvc.ApplyDelta(def, sender, unitName, amount.Neg())
	if err != nil {
		return nil, nil, err
	}
	newReceiver, err := s.walletSvc.ApplyDelta(def, receiver, unitName, amount)
	if err != nil {
		return nil, nil, err
	}
	return newSender, newReceiver, nil
}

// TradeItems moves a quantity of an item between two inventories. The item
// name is normalized to title case for storage.
func (s *tradeService) TradeItems(itemName string, quantity int64, sender, receiver domain.Inventory) (domain.Inventory, domain.Inventory, error) {
	if quantity <= 0 {
		return nil, nil, fmt.Errorf("%w: got %d", apperrors.ErrInvalidAmount, quantity)
	}
	held := sender.Quantity(itemName)
	if held < quantity {
		return nil, nil, fmt.Errorf("%w: have %d %s, need %d", apperrors.ErrInsufficientItems, held, domain.CanonicalName(itemName), quantity)
	}

	newSender := sender.Clone()
	newSender.SetQuantity(itemName, held-quantity)
	newReceiver := receiver.Clone()
	newReceiver.SetQuantity(itemName, newReceiver.Quantity(itemName)+quantity)
	return newSender, newReceiver, nil
}

// ListTrades retrieves recent trade records for a guild.
func (s *tradeService) ListTrades(ctx context.Context, guildID string, status *domain.TradeStatus, limit int) ([]domain.TradeRecord, error) {
	if limit <= 0 || limit > 100 {
		limit = 50
	}
	records, err := s.tradeRepo.ListTradeRecords(ctx, guildID, status, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list trade records: %w", err)
	}
	if records == nil {
		return []domain.TradeRecord{}, nil
	}
	return records, nil
}

// ExecuteCurrencyTrade performs and persists a two-party currency transfer.
//
// The two wallet writes are not wrapped in a single transaction: the sender
// leg is persisted first, then the receiver leg. If the receiver write fails
// after the sender write succeeded, the trade is recorded as PARTIAL and
// ErrPartialTrade is returned for manual reconciliation; there is no
// automatic rollback.
func (s *tradeService) ExecuteCurrencyTrade(ctx context.Context, guildID string, req dto.TradeCurrencyRequest, actorUserID string) (*dto.TradeResponse, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	def, err := s.currencySvc.GetDefinition(ctx, guildID)
	if err != nil {
		return nil, err
	}
	sender, receiver, err := s.loadParties(ctx, guildID, req.SenderCharacterID, req.ReceiverCharacterID)
	if err != nil {
		return nil, err
	}

	newSenderWallet, newReceiverWallet, err := s.TradeCurrency(*def, req.UnitName, req.Amount, sender.Wallet, receiver.Wallet)
	if err != nil {
		return nil, err
	}

	record := domain.TradeRecord{
		TradeID:             uuid.NewString(),
		GuildID:             guildID,
		SenderCharacterID:   sender.CharacterID,
		ReceiverCharacterID: receiver.CharacterID,
		Kind:                domain.TradeCurrency,
		UnitName:            domain.CanonicalName(req.UnitName),
		Amount:              req.Amount,
	}

	sender.Wallet = newSenderWallet
	receiver.Wallet = newReceiverWallet
	if err := s.settle(ctx, sender, receiver, &record, actorUserID); err != nil {
		return nil, err
	}

	logger.Info("Currency trade completed",
		slog.String("trade_id", record.TradeID),
		slog.String("unit", record.UnitName),
		slog.String("amount", req.Amount.String()),
	)
	return &dto.TradeResponse{
		TradeID:          record.TradeID,
		Kind:             string(record.Kind),
		Status:           string(record.Status),
		UnitName:         record.UnitName,
		Amount:           &record.Amount,
		SenderBalances:   sender.Wallet,
		ReceiverBalances: receiver.Wallet,
		ExecutedAt:       record.CreatedAt,
	}, nil
}

// ExecuteItemTrade performs and persists a two-party item transfer with the
// same saga semantics as ExecuteCurrencyTrade.
func (s *tradeService) ExecuteItemTrade(ctx context.Context, guildID string, req dto.TradeItemRequest, actorUserID string) (*dto.TradeResponse, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	sender, receiver, err := s.loadParties(ctx, guildID, req.SenderCharacterID, req.ReceiverCharacterID)
	if err != nil {
		return nil, err
	}

	newSenderInv, newReceiverInv, err := s.TradeItems(req.ItemName, req.Quantity, sender.Inventory, receiver.Inventory)
	if err != nil {
		return nil, err
	}

	record := domain.TradeRecord{
		TradeID:             uuid.NewString(),
		GuildID:             guildID,
		SenderCharacterID:   sender.CharacterID,
		ReceiverCharacterID: receiver.CharacterID,
		Kind:                domain.TradeItem,
		UnitName:            domain.CanonicalName(req.ItemName),
		Quantity:            req.Quantity,
	}

	sender.Inventory = newSenderInv
	receiver.Inventory = newReceiverInv
	if err := s.settle(ctx, sender, receiver, &record, actorUserID); err != nil {
		return nil, err
	}

	logger.Info("Item trade completed",
		slog.String("trade_id", record.TradeID),
		slog.String("item", record.UnitName),
		slog.Int64("quantity", req.Quantity),
	)
	return &dto.TradeResponse{
		TradeID:          record.TradeID,
		Kind:             string(record.Kind),
		Status:           string(record.Status),
		UnitName:         record.UnitName,
		Quantity:         record.Quantity,
		SenderBalances:   sender.Inventory,
		ReceiverBalances: receiver.Inventory,
		ExecutedAt:       record.CreatedAt,
	}, nil
}

func (s *tradeService) loadParties(ctx context.Context, guildID, senderID, receiverID string) (*domain.Character, *domain.Character, error) {
	if senderID == receiverID {
		return nil, nil, fmt.Errorf("%w: cannot trade with the same character", apperrors.ErrValidation)
	}
	sender, err := s.characterRepo.FindCharacterByID(ctx, guildID, senderID)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load sender %s: %w", senderID, err)
	}
	receiver, err := s.characterRepo.FindCharacterByID(ctx, guildID, receiverID)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load receiver %s: %w", receiverID, err)
	}
	return sender, receiver, nil
}

// settle persists the two legs saga-style and writes the trade record.
func (s *tradeService) settle(ctx context.Context, sender, receiver *domain.Character, record *domain.TradeRecord, actorUserID string) error {
	logger := middleware.GetLoggerFromCtx(ctx)
	now := time.Now().UTC()

	sender.LastUpdatedAt = now
	sender.LastUpdatedBy = actorUserID
	if err := s.characterRepo.UpdateBalances(ctx, *sender); err != nil {
		// Nothing has been persisted yet, the trade simply failed.
		if errors.Is(err, apperrors.ErrVersionConflict) {
			return err
		}
		return fmt.Errorf("failed to persist sender leg: %w", err)
	}
	sender.Version++

	receiver.LastUpdatedAt = now
	receiver.LastUpdatedBy = actorUserID
	if err := s.characterRepo.UpdateBalances(ctx, *receiver); err != nil {
		// Sender leg is already committed. Flag the trade for manual
		// reconciliation; no automatic rollback is attempted.
		logger.Error("Receiver leg failed after sender leg was persisted",
			slog.String("trade_id", record.TradeID),
			slog.String("sender_id", sender.CharacterID),
			slog.String("receiver_id", receiver.CharacterID),
			slog.String("error", err.Error()),
		)
		record.Status = domain.TradePartial
		s.saveRecord(ctx, record, actorUserID, now)
		return fmt.Errorf("%w: trade %s", apperrors.ErrPartialTrade, record.TradeID)
	}
	receiver.Version++

	record.Status = domain.TradeCompleted
	s.saveRecord(ctx, record, actorUserID, now)
	return nil
}

// saveRecord writes the audit entry. A failed audit write never fails the
// trade itself; it is logged instead.
func (s *tradeService) saveRecord(ctx context.Context, record *domain.TradeRecord, actorUserID string, now time.Time) {
	record.CreatedAt = now
	record.CreatedBy = actorUserID
	record.LastUpdatedAt = now
	record.LastUpdatedBy = actorUserID
	if err := s.tradeRepo.SaveTradeRecord(ctx, *record); err != nil {
		middleware.GetLoggerFromCtx(ctx).Error("Failed to save trade record",
			slog.String("trade_id", record.TradeID),
			slog.String("status", string(record.Status)),
			slog.String("error", err.Error()),
		)
	}
}
