package bootstrap

import (
	"context"
	"fmt"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	appControllers "github.com/oakkaya/degreeplan/internal/app/controllers"
	appRepos "github.com/oakkaya/degreeplan/internal/app/repositories"
	appRoutes "github.com/oakkaya/degreeplan/internal/app/routes"
	appServices "github.com/oakkaya/degreeplan/internal/app/services"
	"github.com/oakkaya/degreeplan/internal/config"
	"github.com/oakkaya/degreeplan/internal/db"
	appMiddleware "github.com/oakkaya/degreeplan/internal/middleware"
	pkgAuth "github.com/oakkaya/degreeplan/internal/pkg/auth"
	"github.com/oakkaya/degreeplan/internal/pkg/catalog"
	"github.com/oakkaya/degreeplan/internal/pkg/logger"
)

// Dependencies holds all the application dependencies
type Dependencies struct {
	OfferingStore   appRepos.OfferingStore
	OfferingService *appServices.OfferingService
	PlannerService  *appServices.PlannerService
	PlanController  *appControllers.PlanController
	AuthMiddleware  *appMiddleware.AuthMiddleware
	JWTService      *pkgAuth.JWTService
	Logger          zerolog.Logger
}

// LoadConfigAndSetupLogger loads configuration and initializes the logger.
func LoadConfigAndSetupLogger() (*config.Config, zerolog.Logger, error) {
	configPath := filepath.Join("configs", "config.yaml")
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		logger.Error().Err(err).Msg("Failed to load configuration")
		return nil, zerolog.Logger{}, err
	}

	logger.Configure(logger.Config{
		Level:  strings.ToLower(cfg.Logging.Level),
		Pretty: strings.ToLower(cfg.Logging.Format) == "text",
	})

	lgr := log.Logger
	lgr.Info().Str("logLevel", cfg.Logging.Level).Str("logFormat", cfg.Logging.Format).Msg("Logger configured")
	return cfg, lgr, nil
}

// SetupStore creates the offering cache store selected by configuration.
// The returned pool is non-nil only for the postgres store.
func SetupStore(ctx context.Context, cfg *config.Config, lgr zerolog.Logger) (appRepos.OfferingStore, *pgxpool.Pool, error) {
	switch cfg.Cache.Store {
	case config.StoreFile:
		lgr.Info().Str("path", cfg.Cache.Path).Msg("Using file offering cache store")
		return appRepos.NewFileOfferingStore(cfg.Cache.Path, lgr), nil, nil

	case config.StorePostgres:
		pool, err := db.NewPool(ctx, cfg)
		if err != nil {
			lgr.Error().Err(err).Msg("Failed to connect to database")
			return nil, nil, err
		}
		store, err := appRepos.NewPostgresOfferingStore(ctx, pool, lgr)
		if err != nil {
			pool.Close()
			lgr.Error().Err(err).Msg("Failed to prepare offering cache table")
			return nil, nil, err
		}
		lgr.Info().Msg("Using postgres offering cache store")
		return store, pool, nil

	case config.StoreMemory:
		lgr.Info().Msg("Using in-memory offering cache store")
		return appRepos.NewMemoryOfferingStore(), nil, nil

	default:
		return nil, nil, fmt.Errorf("unknown cache store %q", cfg.Cache.Store)
	}
}

// BuildDependencies initializes application services and controllers.
func BuildDependencies(cfg *config.Config, store appRepos.OfferingStore, lgr zerolog.Logger) (*Dependencies, error) {
	deps := &Dependencies{Logger: lgr, OfferingStore: store}

	catalogClient := catalog.NewClient(cfg.Catalog.BaseURL, cfg.CatalogTimeout(), lgr)

	deps.OfferingService = appServices.NewOfferingService(catalogClient, store, lgr)
	deps.PlannerService = appServices.NewPlannerService(deps.OfferingService, cfg.Planner.HorizonTerms, lgr)

	if cfg.Auth.Enabled {
		deps.JWTService = pkgAuth.NewJWTService(pkgAuth.JWTConfig{
			SecretKey:   cfg.Auth.Secret,
			TokenExp:    cfg.TokenExpiration(),
			TokenIssuer: cfg.Auth.Issuer,
		})
		deps.AuthMiddleware = appMiddleware.NewAuthMiddleware(deps.JWTService)
	}

	deps.PlanController = appControllers.NewPlanController(
		deps.PlannerService,
		deps.OfferingService,
		cfg.Planner.TermLoads,
		lgr,
	)

	return deps, nil
}

// SetupRouter configures the Gin engine with middleware and routes.
func SetupRouter(cfg *config.Config, deps *Dependencies, lgr zerolog.Logger) *gin.Engine {
	if strings.ToLower(cfg.Server.Mode) == "production" {
		gin.SetMode(gin.ReleaseMode)
		lgr.Info().Msg("Setting Gin mode to release")
	} else {
		gin.SetMode(gin.DebugMode)
		lgr.Info().Msg("Setting Gin mode to debug")
	}

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(appMiddleware.RequestLogger(lgr))

	appRoutes.SetupRouter(router, deps.PlanController, deps.AuthMiddleware)

	// Health endpoint
	router.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong", "status": "success"})
	})

	return router
}
