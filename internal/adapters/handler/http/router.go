package http

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/jmoiron/sqlx"
	"github.com/redis/go-redis/v9"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/comitanigiacomo/kanso-routine-engine/docs"
	"github.com/comitanigiacomo/kanso-routine-engine/internal/adapters/cache"
	"github.com/comitanigiacomo/kanso-routine-engine/internal/adapters/handler/http/middleware"
)

type RouterDependencies struct {
	AuthHandler    *AuthHandler
	MeHandler      *MeHandler
	RoutineHandler *RoutineHandler
	RecordHandler  *RecordHandler
	CatalogHandler *CatalogHandler
	StatsHandler   *StatsHandler
	TokenService   middleware.TokenValidator
	// DB is nil when running on the in-memory store.
	DB             *sqlx.DB
	Redis          *redis.Client
	RateLimit      int
	AllowedOrigins []string
	StartTime      time.Time
}

func NewRouter(deps RouterDependencies) *gin.Engine {
	router := gin.Default()

	router.Use(cors.New(corsConfig(deps.AllowedOrigins)))

	if deps.Redis != nil && deps.RateLimit > 0 {
		router.Use(middleware.RateLimiterMiddleware(deps.Redis, deps.RateLimit, 1*time.Minute))
	}

	router.GET("/health", func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
		defer cancel()

		dbStatus := cache.StatusDisabled
		if deps.DB != nil {
			dbStatus = cache.StatusConnected
			if err := deps.DB.PingContext(ctx); err != nil {
				dbStatus = cache.StatusUnreachable
			}
		}

		redisStatus := cache.Status(ctx, deps.Redis)

		statusCode := http.StatusOK
		if dbStatus == cache.StatusUnreachable || redisStatus == cache.StatusUnreachable {
			statusCode = http.StatusServiceUnavailable
		}

		c.JSON(statusCode, gin.H{
			"status":   "ok",
			"database": dbStatus,
			"redis":    redisStatus,
			"uptime":   time.Since(deps.StartTime).String(),
		})
	})

	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler,
		ginSwagger.InstanceName(docs.SwaggerInfo.InstanceName())))

	apiV1 := router.Group("/api/v1")

	deps.AuthHandler.RegisterRoutes(apiV1)

	protected := apiV1.Group("")
	protected.Use(middleware.AuthMiddleware(deps.TokenService))
	{
		deps.MeHandler.RegisterRoutes(protected)
		deps.RoutineHandler.RegisterRoutes(protected)
		deps.RecordHandler.RegisterRoutes(protected)
		deps.CatalogHandler.RegisterRoutes(protected)
		deps.StatsHandler.RegisterRoutes(protected)
	}

	return router
}

func corsConfig(origins []string) cors.Config {
	cfg := cors.Config{
		AllowMethods:  []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:  []string{"Origin", "Content-Type", "Content-Length", "Accept-Encoding", "Authorization"},
		ExposeHeaders: []string{"X-RateLimit-Limit", "X-RateLimit-Remaining", "X-RateLimit-Reset", "Retry-After"},
		MaxAge:        12 * time.Hour,
	}
	if len(origins) == 0 || (len(origins) == 1 && origins[0] == "*") {
		cfg.AllowAllOrigins = true
		return cfg
	}
	cfg.AllowOrigins = origins
	return cfg
}
