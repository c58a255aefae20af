package handlers

import (
	"regexp"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/ulule/limiter/v3"

	portssvc "github.com/guildforge/guildforge/internal/core/ports/services"
	"github.com/guildforge/guildforge/internal/middleware"
	"github.com/guildforge/guildforge/pkg/config"
)

// unitNameRegexp restricts currency, denomination and item names to what the
// Discord UI lets players type: letters, digits, spaces and apostrophes.
var unitNameRegexp = regexp.MustCompile(`^[\p{L}\p{N}' ]{1,32}$`)

// RegisterRoutes sets up all application routes, injecting dependencies using interfaces
func RegisterRoutes(
	r *gin.Engine,
	cfg *config.Config,
	services *portssvc.ServiceContainer,
	limiterInstance *limiter.Limiter,
) {
	registerValidations()

	r.Use(cors.Default())

	// Add health check route
	r.GET("/health", getHealth)

	// Public token exchange for the Discord-facing process
	registerAuthRoutes(r, cfg)

	// Setup API v1 routes with Auth Middleware, passing service interfaces
	setupAPIV1Routes(r, cfg, services, limiterInstance)
}

// registerValidations installs custom binding rules on gin's validator engine.
func registerValidations() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		_ = v.RegisterValidation("unitname", func(fl validator.FieldLevel) bool {
			return unitNameRegexp.MatchString(fl.Field().String())
		})
	}
}

// setupAPIV1Routes configures the /api/v1 group and delegates to specific entity route registrations
func setupAPIV1Routes(
	r *gin.Engine,
	cfg *config.Config,
	services *portssvc.ServiceContainer,
	limiterInstance *limiter.Limiter,
) {
	v1 := r.Group("/api/v1", middleware.RateLimit(limiterInstance), middleware.AuthMiddleware(cfg.JWTSecret))

	guilds := v1.Group("/guilds/:guildID")
	registerCurrencyRoutes(guilds, services.Currency)
	registerCharacterRoutes(guilds, services.Character)
	registerWalletRoutes(guilds, services.Wallet)
	registerTradeRoutes(guilds, services.Trade)
}
