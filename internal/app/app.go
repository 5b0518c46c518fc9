package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/Blacksatth/Pagina-Web/config"
	"github.com/Blacksatth/Pagina-Web/internal/controller"
	circuitbreaker "github.com/Blacksatth/Pagina-Web/internal/infrastructure/circuit-breaker"
	"github.com/Blacksatth/Pagina-Web/internal/infrastructure/message-queue/kafka"
	"github.com/Blacksatth/Pagina-Web/internal/infrastructure/tracing"
	localmiddleware "github.com/Blacksatth/Pagina-Web/internal/middleware"
	"github.com/Blacksatth/Pagina-Web/internal/repository"
	"github.com/Blacksatth/Pagina-Web/internal/service"
	"github.com/Blacksatth/Pagina-Web/pkg/response"
	"github.com/go-co-op/gocron/v2"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo-contrib/session"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/rs/zerolog/log"
	kafkago "github.com/segmentio/kafka-go"
	bolt "go.etcd.io/bbolt"
	"go.mongodb.org/mongo-driver/mongo"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
)

const serviceName = "storefront-service"

type App struct {
	DB        *sqlx.DB
	MongoDB   *mongo.Database
	CartDB    *bolt.DB
	KafkaConn *kafkago.Conn
	Config    *config.Config
	Server    *echo.Echo

	scheduler     gocron.Scheduler
	traceProvider *sdktrace.TracerProvider
	metrics       *echo.Echo
}

func (app *App) catalogRepository() (repository.CatalogRepository, repository.ProductWriter, error) {
	switch app.Config.CatalogBackend {
	case config.CatalogBackendMongoDB:
		if app.MongoDB == nil {
			return nil, nil, errors.New("mongodb catalog backend selected but no database connected")
		}
		repo := repository.CreateNewMongoDBRepository(app.MongoDB)
		return repo, repo, nil
	case config.CatalogBackendPostgres:
		if app.DB == nil {
			return nil, nil, errors.New("postgres catalog backend selected but no database connected")
		}
		repo := repository.CreateNewPostgresRepository(app.DB)
		return repo, repo, nil
	case config.CatalogBackendHTTP:
		if app.Config.CatalogURL == "" {
			return nil, nil, errors.New("http catalog backend selected but CATALOG_URL is empty")
		}
		return repository.CreateNewHTTPCatalogRepository(app.Config.CatalogURL, circuitbreaker.CreateCircuitBreaker("catalog")), nil, nil
	default:
		return nil, nil, fmt.Errorf("unknown catalog backend %q", app.Config.CatalogBackend)
	}
}

func (app *App) cartStorage() (repository.CartStorage, error) {
	if app.CartDB == nil {
		log.Warn().Str("component", "cartStorage").Msg("no cart database, carts are kept in memory")
		return repository.CreateNewMemoryCartStorage(), nil
	}

	return repository.CreateNewBoltCartStorage(app.CartDB)
}

func (app *App) eventPublisher() service.EventPublisher {
	if app.KafkaConn == nil {
		return kafka.NopPublisher{}
	}

	return kafka.NewPublisher(app.KafkaConn)
}

func (app *App) useTracing(e *echo.Echo) {
	if app.Config.TracingConfig.CollectorHost == "" {
		return
	}

	traceProvider, err := tracing.InitTracing(app.Config.TracingConfig.CollectorHost, serviceName)
	if err != nil {
		log.Error().Err(err).Msg("Failed to initialize tracing")
		return
	}
	app.traceProvider = traceProvider

	tracer := traceProvider.Tracer(serviceName)

	e.Use(func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			// span creation and naming
			ctx, span := tracer.Start(c.Request().Context(), fmt.Sprintf("[%s] %s", c.Request().Method, c.Path()))
			defer span.End()

			req := c.Request()
			c.SetRequest(req.WithContext(ctx))

			return next(c)
		}
	})
}

func (app *App) useMetrics(e *echo.Echo) {
	if app.Config.MetricsPort == "" {
		return
	}

	// Used empty string so that metrics are not prefixed with the service name making it easier to aggregate across services
	e.Use(echoprometheus.NewMiddleware(""))

	app.metrics = echo.New()
	app.metrics.HideBanner = true
	app.metrics.GET("/metrics", echoprometheus.NewHandler())

	go func() {
		if err := app.metrics.Start(fmt.Sprintf(":%s", app.Config.MetricsPort)); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("Failed to start metrics server")
		}
	}()
}

func (app *App) schedulePurge(cartSvc service.CartService) error {
	s, err := gocron.NewScheduler()
	if err != nil {
		return err
	}

	_, err = s.NewJob(
		gocron.DurationJob(
			app.Config.CartConfig.PurgeInterval,
		),
		gocron.NewTask(func() {
			purged, err := cartSvc.PurgeIdleCarts(context.Background())
			if err != nil {
				log.Error().Err(err).Str("component", "PurgeIdleCarts").Msg("")
				return
			}
			if purged > 0 {
				log.Info().Str("component", "PurgeIdleCarts").Int("purged", purged).Msg("idle carts removed")
			}
		}),
	)
	if err != nil {
		return err
	}

	s.Start()
	app.scheduler = s

	return nil
}

// Build wires every route on a new echo instance. It does not listen.
func (app *App) Build() error {
	e := echo.New()
	e.HideBanner = true

	app.useTracing(e)
	app.useMetrics(e)
	e.Use(localmiddleware.Logger)
	e.Use(middleware.Recover())

	sessionSecret := app.Config.SessionSecret
	if sessionSecret == "" {
		log.Warn().Msg("SESSION_SECRET is empty, cart cookies will not survive a restart")
		sessionSecret = uuid.New().String()
	}
	e.Use(session.Middleware(localmiddleware.NewSessionStore(sessionSecret)))

	g := e.Group("/api/v1")

	g.GET("/ping", func(c echo.Context) error {
		return response.WriteSuccessResponse(c, "Hello, World!", nil)
	})

	catalogRepo, productWriter, err := app.catalogRepository()
	if err != nil {
		return err
	}

	storage, err := app.cartStorage()
	if err != nil {
		return err
	}

	catalogSvc := service.CreateCatalogService(catalogRepo, app.Config.ImageConfig)
	controller.CreateCatalogController(g, catalogSvc)

	cartSvc := service.CreateCartService(catalogRepo, storage, app.Config.CartConfig.TTL)
	controller.CreateCartController(g, cartSvc, localmiddleware.CartSession)

	if app.DB != nil {
		isLoggedIn := localmiddleware.IsLoggedIn(app.Config.JWTSecret)

		userSvc := service.CreateUserService(repository.CreateNewUserRepository(app.DB), app.Config.JWTSecret)
		controller.CreateUserController(g, userSvc, isLoggedIn)

		if productWriter != nil {
			productSvc := service.CreateProductService(productWriter, app.eventPublisher())
			controller.CreateAdminController(g, productSvc, isLoggedIn, localmiddleware.RequireAdmin(userSvc))
		}
	} else {
		log.Warn().Msg("no postgres database, user and admin routes are disabled")
	}

	if err := app.schedulePurge(cartSvc); err != nil {
		return err
	}

	app.Server = e

	return nil
}

func (app *App) Start() {
	if err := app.Build(); err != nil {
		log.Fatal().Err(err).Msg("Failed to build server")
	}

	if err := app.Server.Start(fmt.Sprintf(":%s", app.Config.ServicePort)); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Fatal().Err(err).Msg("Failed to start server")
	}
}

func (app *App) StopServer() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if app.scheduler != nil {
		if err := app.scheduler.Shutdown(); err != nil {
			log.Error().Err(err).Msg("Failed to stop scheduler")
		}
	}

	if app.metrics != nil {
		app.metrics.Shutdown(ctx)
	}

	if app.traceProvider != nil {
		if err := app.traceProvider.Shutdown(ctx); err != nil {
			log.Error().Err(err).Msg("Failed to shutdown tracing")
		}
	}

	if app.Server == nil {
		return nil
	}

	return app.Server.Shutdown(ctx)
}
