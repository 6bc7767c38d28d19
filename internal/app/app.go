// Package app assembles the stores, services and workers selected by the
// configuration. The API server and the admin CLI share it.
package app

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jmoiron/sqlx"
	"github.com/redis/go-redis/v9"

	"github.com/comitanigiacomo/kanso-routine-engine/internal/adapters/cache"
	"github.com/comitanigiacomo/kanso-routine-engine/internal/adapters/catalog"
	adapterHTTP "github.com/comitanigiacomo/kanso-routine-engine/internal/adapters/handler/http"
	"github.com/comitanigiacomo/kanso-routine-engine/internal/adapters/repository"
	"github.com/comitanigiacomo/kanso-routine-engine/internal/config"
	"github.com/comitanigiacomo/kanso-routine-engine/internal/core/domain"
	"github.com/comitanigiacomo/kanso-routine-engine/internal/core/services"
	"github.com/comitanigiacomo/kanso-routine-engine/internal/core/workers"
)

type App struct {
	Config *config.Config
	DB     *sqlx.DB
	Redis  *redis.Client

	Users   domain.UserRepository
	States  domain.UserStateRepository
	Catalog domain.ExerciseCatalog
	// Exercises is set only on Postgres, where the catalog lives in a table.
	Exercises *repository.PostgresCatalogRepository

	Auth     *services.AuthService
	Tokens   *services.TokenService
	Routines *services.RoutineService
	Records  *services.RecordService
	Stats    *services.StatsService
	Search   *services.CatalogService

	Streaks *workers.StreakWorker
}

// New connects the configured backends. Redis is optional: when it cannot be
// reached the app runs without cache and rate limiting.
func New(ctx context.Context, cfg *config.Config) (*App, error) {
	a := &App{Config: cfg}

	if err := a.openStorage(ctx); err != nil {
		return nil, err
	}

	if cfg.RedisEnabled() {
		rdb, err := cache.NewRedisClient(cfg.RedisHost, cfg.RedisPort, cfg.RedisPassword, cfg.RedisDB)
		if err != nil {
			log.Printf("[CACHE] Redis unavailable, running without cache: %v", err)
		} else {
			a.Redis = rdb
			a.States = repository.NewCachedStateRepository(a.States, rdb)
		}
	}

	if err := a.loadCatalog(ctx); err != nil {
		a.Close()
		return nil, err
	}

	a.Streaks = workers.NewStreakWorker(a.Users, a.States)

	store := services.NewStateStore(a.States)
	a.Auth = services.NewAuthService(a.Users)
	a.Tokens = services.NewTokenService(cfg.JWTSecret, cfg.JWTIssuer, cfg.JWTTTL, a.Users)
	a.Routines = services.NewRoutineService(store, a.Catalog)
	a.Records = services.NewRecordService(store, a.Catalog, a.Streaks)
	a.Stats = services.NewStatsService(store, a.Users)
	a.Search = services.NewCatalogService(a.Catalog)

	return a, nil
}

func (a *App) openStorage(ctx context.Context) error {
	driver, dsn := a.Config.DatabaseDriver()
	if driver == "" {
		log.Println("Using in-memory storage; data is lost on restart.")
		a.Users = repository.NewInMemoryUserRepository()
		a.States = repository.NewInMemoryStateRepository()
		return nil
	}

	log.Printf("Connecting to %s database...", driver)
	db, err := repository.Open(ctx, driver, dsn)
	if err != nil {
		return err
	}

	if a.Config.AutoMigrate {
		if err := repository.Migrate(ctx, db); err != nil {
			db.Close()
			return fmt.Errorf("app: migrate: %w", err)
		}
	}

	a.DB = db
	a.Users = repository.NewSQLUserRepository(db)
	a.States = repository.NewSQLStateRepository(db)
	return nil
}

// loadCatalog prefers an explicit file, then the exercises table, then the
// embedded default. An empty table is seeded from the default on startup.
func (a *App) loadCatalog(ctx context.Context) error {
	if a.Config.CatalogFile != "" {
		static, err := catalog.Load(a.Config.CatalogFile)
		if err != nil {
			return err
		}
		a.Catalog = static
		return nil
	}

	if a.DB == nil || a.Config.StorageDriver != config.StoragePostgres {
		a.Catalog = catalog.Default()
		return nil
	}

	a.Exercises = repository.NewPostgresCatalogRepository(a.DB)
	a.Catalog = a.Exercises

	if !a.Config.AutoMigrate {
		return nil
	}
	existing, err := a.Exercises.ListExercises(ctx)
	if err != nil {
		return err
	}
	if len(existing) > 0 {
		return nil
	}
	defaults, _ := catalog.Default().ListExercises(ctx)
	if err := a.Exercises.Upsert(ctx, defaults); err != nil {
		return fmt.Errorf("app: seed catalog: %w", err)
	}
	log.Printf("Seeded exercise catalog with %d entries.", len(defaults))
	return nil
}

func (a *App) Router(startTime time.Time) *gin.Engine {
	return adapterHTTP.NewRouter(adapterHTTP.RouterDependencies{
		AuthHandler:    adapterHTTP.NewAuthHandler(a.Auth, a.Tokens),
		MeHandler:      adapterHTTP.NewMeHandler(a.Auth, a.Routines),
		RoutineHandler: adapterHTTP.NewRoutineHandler(a.Routines),
		RecordHandler:  adapterHTTP.NewRecordHandler(a.Records),
		CatalogHandler: adapterHTTP.NewCatalogHandler(a.Search),
		StatsHandler:   adapterHTTP.NewStatsHandler(a.Stats),
		TokenService:   a.Tokens,
		DB:             a.DB,
		Redis:          a.Redis,
		RateLimit:      a.Config.RateLimit,
		AllowedOrigins: a.Config.AllowedOrigins,
		StartTime:      startTime,
	})
}

func (a *App) Close() {
	if a.Redis != nil {
		if err := a.Redis.Close(); err != nil {
			log.Printf("[CACHE] Redis close error: %v", err)
		}
	}
	if a.DB != nil {
		if err := a.DB.Close(); err != nil {
			log.Printf("Database close error: %v", err)
		}
	}
}
