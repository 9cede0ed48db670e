package handlers

import (
	"github.com/gin-contrib/cors"
	portssvc "github.com/selimgur/kiraci/internal/core/ports/services"
	"github.com/selimgur/kiraci/internal/middleware"
	"github.com/selimgur/kiraci/pkg/config"
	"github.com/gin-gonic/gin"
	"github.com/ulule/limiter/v3"
	"github.com/ulule/limiter/v3/drivers/store/memory"
)

// RegisterRoutes sets up all application routes, injecting dependencies
// using interfaces.
func RegisterRoutes(
	r *gin.Engine,
	cfg *config.Config,
	services *portssvc.ServiceContainer,
) error {
	// Health check route
	r.GET("/health", func(c *gin.Context) {
		c.String(200, "OK")
	})

	// The web UI runs on a different local port, so the API needs CORS.
	corsConfig := cors.DefaultConfig()
	corsConfig.AllowOrigins = []string{cfg.CORSAllowedOrigin}
	r.Use(cors.New(corsConfig))

	rateLimit, err := limiter.NewRateFromFormatted(cfg.RateLimit)
	if err != nil {
		return err
	}
	limiterInstance := limiter.New(memory.NewStore(), rateLimit)

	setupAPIV1Routes(r, limiterInstance, services)
	return nil
}

// setupAPIV1Routes configures the /api/v1 group and delegates to specific
// entity route registrations.
func setupAPIV1Routes(
	r *gin.Engine,
	limiterInstance *limiter.Limiter,
	services *portssvc.ServiceContainer,
) {
	v1 := r.Group("/api/v1", middleware.RateLimit(limiterInstance))

	RegisterAgreementRoutes(v1, services.Agreement)
	registerExchangeRateRoutes(v1, services.ExchangeRate)
	registerInflationRoutes(v1, services.Inflation)
	registerPaymentRoutes(v1, services.Payment)
}
