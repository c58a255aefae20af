package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	portssvc "github.com/guildforge/guildforge/internal/core/ports/services"
	"github.com/guildforge/guildforge/internal/dto"
	"github.com/guildforge/guildforge/internal/middleware"
)

// characterHandler handles HTTP requests related to characters.
type characterHandler struct {
	characterService portssvc.CharacterSvcFacade
}

func newCharacterHandler(cs portssvc.CharacterSvcFacade) *characterHandler {
	return &characterHandler{characterService: cs}
}

// registerCharacterRoutes registers routes related to characters.
func registerCharacterRoutes(rg *gin.RouterGroup, characterService portssvc.CharacterSvcFacade) {
	h := newCharacterHandler(characterService)

	characters := rg.Group("/characters")
	{
		characters.POST("", h.registerCharacter)
		characters.GET("/:characterID", h.getCharacter)
		characters.POST("/:characterID/activate", h.activateCharacter)
	}
	players := rg.Group("/players/:playerID")
	{
		players.GET("/characters", h.listCharacters)
		players.GET("/active-character", h.getActiveCharacter)
	}
}

func (h *characterHandler) registerCharacter(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	guildID := c.Param("guildID")

	var req dto.RegisterCharacterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for registerCharacter", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	actor := actorOrAbort(c)
	if actor == "" {
		return
	}

	character, err := h.characterService.RegisterCharacter(c.Request.Context(), guildID, req, actor)
	if err != nil {
		respondServiceError(c, err, "Failed to register character")
		return
	}

	logger.Info("Character registered", slog.String("character_id", character.CharacterID))
	c.JSON(http.StatusCreated, dto.ToCharacterResponse(character))
}

func (h *characterHandler) getCharacter(c *gin.Context) {
	guildID := c.Param("guildID")
	characterID := c.Param("characterID")

	character, err := h.characterService.GetCharacter(c.Request.Context(), guildID, characterID)
	if err != nil {
		respondServiceError(c, err, "Failed to retrieve character")
		return
	}
	c.JSON(http.StatusOK, dto.ToCharacterResponse(character))
}

func (h *characterHandler) listCharacters(c *gin.Context) {
	guildID := c.Param("guildID")
	playerID := c.Param("playerID")

	characters, err := h.characterService.ListCharacters(c.Request.Context(), guildID, playerID)
	if err != nil {
		respondServiceError(c, err, "Failed to list characters")
		return
	}

	out := make([]dto.CharacterResponse, 0, len(characters))
	for i := range characters {
		out = append(out, dto.ToCharacterResponse(&characters[i]))
	}
	c.JSON(http.StatusOK, out)
}

func (h *characterHandler) getActiveCharacter(c *gin.Context) {
	guildID := c.Param("guildID")
	playerID := c.Param("playerID")

	character, err := h.characterService.GetActiveCharacter(c.Request.Context(), guildID, playerID)
	if err != nil {
		respondServiceError(c, err, "Failed to retrieve active character")
		return
	}
	c.JSON(http.StatusOK, dto.ToCharacterResponse(character))
}

func (h *characterHandler) activateCharacter(c *gin.Context) {
	guildID := c.Param("guildID")
	characterID := c.Param("characterID")

	actor := actorOrAbort(c)
	if actor == "" {
		return
	}

	character, err := h.characterService.ActivateCharacter(c.Request.Context(), guildID, characterID, actor)
	if err != nil {
		respondServiceError(c, err, "Failed to activate character")
		return
	}
	c.JSON(http.StatusOK, dto.ToCharacterResponse(character))
}
