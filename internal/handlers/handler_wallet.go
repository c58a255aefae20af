package handlers

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/guildforge/guildforge/internal/core/domain"
	portssvc "github.com/guildforge/guildforge/internal/core/ports/services"
	"github.com/guildforge/guildforge/internal/dto"
	"github.com/guildforge/guildforge/internal/middleware"
)

// walletHandler handles HTTP requests against character wallets.
type walletHandler struct {
	walletService portssvc.WalletSvcFacade
}

func newWalletHandler(ws portssvc.WalletSvcFacade) *walletHandler {
	return &walletHandler{walletService: ws}
}

// registerWalletRoutes registers wallet and reward routes.
func registerWalletRoutes(rg *gin.RouterGroup, walletService portssvc.WalletSvcFacade) {
	h := newWalletHandler(walletService)

	wallet := rg.Group("/characters/:characterID")
	{
		wallet.GET("/wallet", h.getWallet)
		wallet.POST("/wallet/credit", h.creditWallet)
		wallet.POST("/wallet/debit", h.debitWallet)
		wallet.POST("/rewards", h.grantReward)
	}
}

func (h *walletHandler) getWallet(c *gin.Context) {
	guildID := c.Param("guildID")
	characterID := c.Param("characterID")

	wallet, err := h.walletService.GetWallet(c.Request.Context(), guildID, characterID)
	if err != nil {
		respondServiceError(c, err, "Failed to retrieve wallet")
		return
	}
	c.JSON(http.StatusOK, wallet)
}

func (h *walletHandler) creditWallet(c *gin.Context) {
	h.mutateWallet(c, "credit", h.walletService.CreditWallet)
}

func (h *walletHandler) debitWallet(c *gin.Context) {
	h.mutateWallet(c, "debit", h.walletService.DebitWallet)
}

// mutateWallet is the shared credit/debit flow; the two endpoints differ only
// in the service method they invoke.
func (h *walletHandler) mutateWallet(c *gin.Context, op string, apply func(ctx context.Context, guildID, characterID string, req dto.WalletMutationRequest, actorUserID string) (*domain.Character, error)) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	guildID := c.Param("guildID")
	characterID := c.Param("characterID")

	var req dto.WalletMutationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for wallet mutation", slog.String("op", op), slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	actor := actorOrAbort(c)
	if actor == "" {
		return
	}

	character, err := apply(c.Request.Context(), guildID, characterID, req, actor)
	if err != nil {
		respondServiceError(c, err, "Failed to "+op+" wallet")
		return
	}

	logger.Info("Wallet updated",
		slog.String("op", op),
		slog.String("character_id", character.CharacterID),
		slog.String("unit", req.UnitName),
		slog.String("amount", req.Amount.String()))
	c.JSON(http.StatusOK, dto.ToWalletResponse(character))
}

func (h *walletHandler) grantReward(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	guildID := c.Param("guildID")
	characterID := c.Param("characterID")

	var req dto.GrantRewardRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for grantReward", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	actor := actorOrAbort(c)
	if actor == "" {
		return
	}

	character, err := h.walletService.GrantReward(c.Request.Context(), guildID, characterID, req, actor)
	if err != nil {
		respondServiceError(c, err, "Failed to grant reward")
		return
	}

	logger.Info("Reward granted",
		slog.String("character_id", character.CharacterID),
		slog.Int64("experience", req.Experience),
		slog.Int("currency_lines", len(req.Currency)),
		slog.Int("item_lines", len(req.Items)))
	c.JSON(http.StatusOK, dto.ToCharacterResponse(character))
}
