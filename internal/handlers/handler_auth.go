package handlers

import (
	"crypto/subtle"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"

	"github.com/guildforge/guildforge/internal/dto"
	"github.com/guildforge/guildforge/internal/middleware"
	"github.com/guildforge/guildforge/pkg/config"
)

// authHandler exchanges the shared bot service key for a short-lived JWT.
type authHandler struct {
	cfg *config.Config
}

func newAuthHandler(cfg *config.Config) *authHandler {
	return &authHandler{cfg: cfg}
}

// registerAuthRoutes registers the public token-exchange route.
func registerAuthRoutes(r *gin.Engine, cfg *config.Config) {
	h := newAuthHandler(cfg)
	auth := r.Group("/auth")
	{
		auth.POST("/token", h.issueToken)
	}
}

// issueToken validates the configured service key and returns a bearer token
// the Discord-facing process uses on every API call.
func (h *authHandler) issueToken(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.TokenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for token request", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	if subtle.ConstantTimeCompare([]byte(req.ServiceKey), []byte(h.cfg.BotServiceKey)) != 1 {
		logger.Warn("Service key rejected")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid service key"})
		return
	}

	now := time.Now().UTC()
	claims := jwt.RegisteredClaims{
		Subject:   "discord-bot",
		Issuer:    h.cfg.JWTIssuer,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(h.cfg.JWTExpiryDuration)),
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(h.cfg.JWTSecret))
	if err != nil {
		logger.Error("Failed to sign token", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to issue token"})
		return
	}

	logger.Info("Service token issued")
	c.JSON(http.StatusOK, dto.TokenResponse{
		Token:     token,
		TokenType: "Bearer",
		ExpiresIn: int64(h.cfg.JWTExpiryDuration.Seconds()),
	})
}
