package bootstrap

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	appControllers "github.com/yigit/prereqplanner/internal/app/controllers"
	appMigrations "github.com/yigit/prereqplanner/internal/app/migrations"
	appRepos "github.com/yigit/prereqplanner/internal/app/repositories"
	appRoutes "github.com/yigit/prereqplanner/internal/app/routes"
	appServices "github.com/yigit/prereqplanner/internal/app/services"
	"github.com/yigit/prereqplanner/internal/config"
	"github.com/yigit/prereqplanner/internal/db"
	appMiddleware "github.com/yigit/prereqplanner/internal/middleware"
	pkgAuth "github.com/yigit/prereqplanner/internal/pkg/auth"
	"github.com/yigit/prereqplanner/internal/pkg/catalog"
	"github.com/yigit/prereqplanner/internal/pkg/helpers"
	"github.com/yigit/prereqplanner/internal/pkg/logger"
)

// Dependencies holds all the application dependencies
type Dependencies struct {
	Store             *catalog.Store
	Watcher           *catalog.Watcher
	Services          *appServices.Services
	CatalogController *appControllers.CatalogController
	PlanController    *appControllers.PlanController
	HealthController  *appControllers.HealthController
	AuthMiddleware    *appMiddleware.AuthMiddleware
	JWTService        *pkgAuth.JWTService
	Logger            zerolog.Logger

	closers []func()
}

// Close stops the watcher and releases database handles in reverse order of
// acquisition.
func (d *Dependencies) Close() {
	if d.Watcher != nil {
		d.Watcher.Stop()
	}
	for i := len(d.closers) - 1; i >= 0; i-- {
		d.closers[i]()
	}
	d.closers = nil
}

// LoadConfigAndSetupLogger loads configuration and initializes the logger.
func LoadConfigAndSetupLogger(configPath string) (*config.Config, zerolog.Logger, error) {
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		logger.Error().Err(err).Str("path", configPath).Msg("Failed to load configuration")
		return nil, zerolog.Logger{}, err
	}

	logLevel := logger.LogLevel(strings.ToLower(cfg.Logging.Level))
	format := strings.ToLower(cfg.Logging.Format)

	logger.Configure(logger.Config{
		Level:  logLevel,
		Pretty: format == "pretty" || format == "console",
	})

	lgr := log.Logger
	lgr.Info().Str("logLevel", string(logLevel)).Str("logFormat", cfg.Logging.Format).Msg("Logger configured")
	return cfg, lgr, nil
}

// SetupSource opens the configured catalog backend. The returned closer
// releases whatever connection the source holds and is never nil.
func SetupSource(ctx context.Context, cfg *config.Config, lgr zerolog.Logger) (catalog.Source, func(), error) {
	switch cfg.Catalog.Source {
	case config.SourcePostgres:
		lgr.Info().Msg("Establishing database connection...")
		pg, err := db.NewPostgresDB(ctx, cfg)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to connect to database: %w", err)
		}

		lgr.Info().Str("dir", cfg.Database.MigrationsDir).Msg("Running database migrations...")
		migrator := appMigrations.NewMigrator(pg.Pool, lgr)
		if err := migrator.MigrateFromDirectory(ctx, cfg.Database.MigrationsDir); err != nil {
			pg.Close()
			return nil, nil, fmt.Errorf("database migrations failed: %w", err)
		}
		return appRepos.NewCourseRepository(pg.Pool), pg.Close, nil

	case config.SourceSQLite:
		sdb, err := db.NewSQLiteDB(ctx, cfg.Database.SQLitePath)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to open sqlite database: %w", err)
		}
		lgr.Info().Str("path", cfg.Database.SQLitePath).Msg("SQLite catalog opened")
		closeFn := func() {
			if err := sdb.Close(); err != nil {
				lgr.Warn().Err(err).Msg("Failed to close sqlite database")
			}
		}
		return appRepos.NewSQLCourseRepository(sdb.DB), closeFn, nil

	case config.SourceFile:
		lgr.Info().Str("path", cfg.Catalog.Path).Msg("Using catalog file")
		return appRepos.NewFileCourseRepository(cfg.Catalog.Path), func() {}, nil
	}
	return nil, nil, fmt.Errorf("unknown catalog source %q", cfg.Catalog.Source)
}

// BuildDependencies creates the catalog store and every layer above it. A
// failed initial load is logged and the server starts without a catalog; an
// admin reload or a file change can still bring one in.
func BuildDependencies(ctx context.Context, cfg *config.Config, lgr zerolog.Logger) (*Dependencies, error) {
	source, closeSource, err := SetupSource(ctx, cfg, lgr)
	if err != nil {
		return nil, err
	}
	deps := &Dependencies{Logger: lgr, closers: []func(){closeSource}}

	deps.Store = catalog.NewStore(source, lgr)
	if snap, err := deps.Store.Reload(ctx); err != nil {
		lgr.Error().Err(err).Msg("Initial catalog load failed")
	} else {
		lgr.Info().Int("courses", snap.Len()).Str("version", snap.Version).Msg("Catalog loaded")
	}

	if cfg.Catalog.Watch {
		watcher, err := catalog.NewWatcher(cfg.Catalog.Path, deps.Store, cfg.Catalog.Debounce, lgr)
		if err != nil {
			deps.Close()
			return nil, fmt.Errorf("failed to create catalog watcher: %w", err)
		}
		if err := watcher.Start(ctx); err != nil {
			watcher.Stop()
			deps.Close()
			return nil, fmt.Errorf("failed to start catalog watcher: %w", err)
		}
		deps.Watcher = watcher
	}

	deps.JWTService = pkgAuth.NewJWTService(pkgAuth.JWTConfig{
		SecretKey:      cfg.JWT.Secret,
		AccessTokenExp: helpers.ParseDuration(cfg.JWT.AccessTokenExpiration, time.Hour),
		TokenIssuer:    cfg.JWT.Issuer,
	})
	deps.AuthMiddleware = appMiddleware.NewAuthMiddleware(deps.JWTService)

	deps.Services = appServices.NewServices(deps.Store, lgr)
	deps.CatalogController = appControllers.NewCatalogController(deps.Services.CatalogService)
	deps.PlanController = appControllers.NewPlanController(deps.Services.PlanService)
	deps.HealthController = appControllers.NewHealthController(deps.Services.CatalogService)

	lgr.Info().Msg("Dependencies initialized successfully.")
	return deps, nil
}

// SetupRouter initializes the Gin router and registers the API routes.
func SetupRouter(cfg *config.Config, deps *Dependencies) (*gin.Engine, error) {
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	} else {
		gin.SetMode(gin.DebugMode)
	}

	router := gin.New()
	router.Use(gin.Recovery(), appMiddleware.RequestID(), appMiddleware.RequestLogger(deps.Logger))

	if err := router.SetTrustedProxies(cfg.Server.TrustedProxies); err != nil {
		return nil, fmt.Errorf("invalid trusted proxies: %w", err)
	}

	router.GET("/ping", func(c *gin.Context) {
		c.String(http.StatusOK, "pong")
	})

	if err := appRoutes.SetupRouter(router, deps.CatalogController, deps.PlanController, deps.HealthController, deps.AuthMiddleware); err != nil {
		return nil, fmt.Errorf("failed to register routes: %w", err)
	}

	deps.Logger.Info().Msg("Router setup complete.")
	return router, nil
}
