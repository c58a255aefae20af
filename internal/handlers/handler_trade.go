package handlers

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/guildforge/guildforge/internal/core/domain"
	portssvc "github.com/guildforge/guildforge/internal/core/ports/services"
	"github.com/guildforge/guildforge/internal/dto"
	"github.com/guildforge/guildforge/internal/middleware"
)

// tradeHandler handles HTTP requests for two-party trades.
type tradeHandler struct {
	tradeService portssvc.TradeSvcFacade
}

func newTradeHandler(ts portssvc.TradeSvcFacade) *tradeHandler {
	return &tradeHandler{tradeService: ts}
}

// registerTradeRoutes registers trade execution and audit-log routes.
func registerTradeRoutes(rg *gin.RouterGroup, tradeService portssvc.TradeSvcFacade) {
	h := newTradeHandler(tradeService)

	trades := rg.Group("/trades")
	{
		trades.POST("/currency", h.tradeCurrency)
		trades.POST("/items", h.tradeItems)
		trades.GET("", h.listTrades)
	}
}

func (h *tradeHandler) tradeCurrency(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	guildID := c.Param("guildID")

	var req dto.TradeCurrencyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for tradeCurrency", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	actor := actorOrAbort(c)
	if actor == "" {
		return
	}

	resp, err := h.tradeService.ExecuteCurrencyTrade(c.Request.Context(), guildID, req, actor)
	if err != nil {
		respondServiceError(c, err, "Failed to execute currency trade")
		return
	}

	logger.Info("Currency trade executed",
		slog.String("trade_id", resp.TradeID),
		slog.String("unit", resp.UnitName),
		slog.String("amount", resp.Amount.String()))
	c.JSON(http.StatusOK, resp)
}

func (h *tradeHandler) tradeItems(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	guildID := c.Param("guildID")

	var req dto.TradeItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for tradeItems", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	actor := actorOrAbort(c)
	if actor == "" {
		return
	}

	resp, err := h.tradeService.ExecuteItemTrade(c.Request.Context(), guildID, req, actor)
	if err != nil {
		respondServiceError(c, err, "Failed to execute item trade")
		return
	}

	logger.Info("Item trade executed",
		slog.String("trade_id", resp.TradeID),
		slog.String("item", resp.UnitName),
		slog.Int64("quantity", resp.Quantity))
	c.JSON(http.StatusOK, resp)
}

func (h *tradeHandler) listTrades(c *gin.Context) {
	guildID := c.Param("guildID")

	var status *domain.TradeStatus
	if raw := c.Query("status"); raw != "" {
		s := domain.TradeStatus(raw)
		if s != domain.TradeCompleted && s != domain.TradePartial {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid status filter: " + raw})
			return
		}
		status = &s
	}

	limit := 0
	if raw := c.Query("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid limit: " + raw})
			return
		}
		limit = parsed
	}

	records, err := h.tradeService.ListTrades(c.Request.Context(), guildID, status, limit)
	if err != nil {
		respondServiceError(c, err, "Failed to list trades")
		return
	}

	out := make([]dto.TradeRecordResponse, 0, len(records))
	for _, rec := range records {
		out = append(out, dto.ToTradeRecordResponse(rec))
	}
	c.JSON(http.StatusOK, out)
}
