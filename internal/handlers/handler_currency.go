package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/guildforge/guildforge/internal/apperrors"
	portssvc "github.com/guildforge/guildforge/internal/core/ports/services"
	"github.com/guildforge/guildforge/internal/dto"
	"github.com/guildforge/guildforge/internal/middleware"
)

// currencyHandler handles HTTP requests related to guild currency configuration.
type currencyHandler struct {
	currencyService portssvc.CurrencySvcFacade
}

func newCurrencyHandler(cs portssvc.CurrencySvcFacade) *currencyHandler {
	return &currencyHandler{currencyService: cs}
}

// registerCurrencyRoutes registers routes related to currency configuration.
func registerCurrencyRoutes(rg *gin.RouterGroup, currencyService portssvc.CurrencySvcFacade) {
	h := newCurrencyHandler(currencyService)

	currencies := rg.Group("/currencies")
	{
		currencies.POST("", h.createCurrency)
		currencies.GET("", h.listCurrencies)
		currencies.POST("/:currency/denominations", h.addDenomination)
		currencies.GET("/resolve/:name", h.resolveUnit)
	}
}

func (h *currencyHandler) createCurrency(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	guildID := c.Param("guildID")

	var req dto.CreateCurrencyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for createCurrency", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	actor := actorOrAbort(c)
	if actor == "" {
		return
	}

	created, err := h.currencyService.CreateCurrency(c.Request.Context(), guildID, req, actor)
	if err != nil {
		respondServiceError(c, err, "Failed to create currency")
		return
	}

	logger.Info("Currency created", slog.String("guild_id", guildID), slog.String("currency", created.Name))
	c.JSON(http.StatusCreated, dto.ToCurrencyResponse(*created))
}

func (h *currencyHandler) listCurrencies(c *gin.Context) {
	guildID := c.Param("guildID")

	currencies, err := h.currencyService.ListCurrencies(c.Request.Context(), guildID)
	if err != nil {
		respondServiceError(c, err, "Failed to list currencies")
		return
	}
	c.JSON(http.StatusOK, dto.ToListCurrencyResponse(currencies))
}

func (h *currencyHandler) addDenomination(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	guildID := c.Param("guildID")
	currencyName := c.Param("currency")

	var req dto.AddDenominationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for addDenomination", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	actor := actorOrAbort(c)
	if actor == "" {
		return
	}

	updated, err := h.currencyService.AddDenomination(c.Request.Context(), guildID, currencyName, req, actor)
	if err != nil {
		respondServiceError(c, err, "Failed to add denomination")
		return
	}

	logger.Info("Denomination added", slog.String("guild_id", guildID), slog.String("currency", updated.Name))
	c.JSON(http.StatusCreated, dto.ToCurrencyResponse(*updated))
}

func (h *currencyHandler) resolveUnit(c *gin.Context) {
	guildID := c.Param("guildID")
	name := c.Param("name")

	resolved, err := h.currencyService.ResolveUnit(c.Request.Context(), guildID, name)
	if err != nil {
		respondServiceError(c, err, "Failed to resolve unit name")
		return
	}
	c.JSON(http.StatusOK, resolved)
}

// actorOrAbort returns the authenticated caller identity or writes a 401.
func actorOrAbort(c *gin.Context) string {
	actor, ok := middleware.GetActorFromCtx(c.Request.Context())
	if !ok {
		middleware.GetLoggerFromCtx(c.Request.Context()).Error("Actor not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return ""
	}
	return actor
}

// respondServiceError maps the service error taxonomy onto HTTP statuses.
func respondServiceError(c *gin.Context, err error, fallback string) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	switch {
	case errors.Is(err, apperrors.ErrNotFound),
		errors.Is(err, apperrors.ErrNoCurrencyConfig),
		errors.Is(err, apperrors.ErrUnknownCurrency):
		logger.Warn("Resource not found", slog.String("error", err.Error()))
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, apperrors.ErrDuplicate):
		logger.Warn("Duplicate resource", slog.String("error", err.Error()))
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.Is(err, apperrors.ErrValidation),
		errors.Is(err, apperrors.ErrInvalidAmount):
		logger.Warn("Validation error", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, apperrors.ErrInsufficientFunds),
		errors.Is(err, apperrors.ErrInsufficientItems):
		logger.Warn("Insufficient balance", slog.String("error", err.Error()))
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
	case errors.Is(err, apperrors.ErrVersionConflict):
		logger.Warn("Concurrent modification", slog.String("error", err.Error()))
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.Is(err, apperrors.ErrPartialTrade):
		// The debit leg is committed; the caller must not retry blindly.
		logger.Error("Partial trade", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	default:
		logger.Error(fallback, slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": fallback})
	}
}
