package app

import (
	"context"
	"cyberlearn_backend/internal/catalog"
	"cyberlearn_backend/internal/config"
	"cyberlearn_backend/internal/controller"
	"cyberlearn_backend/internal/event"
	"cyberlearn_backend/internal/generation"
	"cyberlearn_backend/internal/repository"
	"cyberlearn_backend/internal/service"
	"cyberlearn_backend/internal/store"
	"cyberlearn_backend/internal/util"
	"cyberlearn_backend/pkg/configwatcher"
	"cyberlearn_backend/pkg/database"
	"cyberlearn_backend/pkg/logger"
	"cyberlearn_backend/pkg/monitoring"
	"cyberlearn_backend/pkg/security"
	"cyberlearn_backend/pkg/tracing"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.uber.org/zap"
)

const Version = "1.0.0"

// Deps are the external collaborators the application is assembled from.
// Redis and Events may be nil.
type Deps struct {
	Store     store.Store
	Redis     *redis.Client
	Generator generation.ContentGenerator
	Events    event.Publisher
	Catalog   *catalog.Catalog
}

type App struct {
	Config    *config.Config
	Router    *gin.Engine
	Store     store.Store
	Redis     *redis.Client
	Events    event.Publisher
	Generator generation.ContentGenerator
	Catalog   *catalog.Catalog

	services        *services
	tracer          *sdktrace.TracerProvider
	configCallbacks []configwatcher.Reloader
}

type repositories struct {
	assessment *repository.AssessmentRepository
	plan       *repository.LearningPlanRepository
	session    *repository.SessionRepository
	chat       *repository.ChatRepository
	progress   *repository.ProgressRepository
}

type services struct {
	storage    *service.StorageService
	progress   *service.ProgressService
	assessment *service.AssessmentService
	plan       *service.LearningPlanService
	session    *service.SessionService
	chat       *service.ChatService
	chatHub    *service.ChatHub
}

type controllers struct {
	catalog     *controller.CatalogController
	assessment  *controller.AssessmentController
	plan        *controller.LearningPlanController
	session     *controller.SessionController
	chat        *controller.ChatController
	achievement *controller.AchievementController
	profile     *controller.ProfileController
	health      *controller.HealthController
}

func (a *App) RegisterConfigCallback(callback configwatcher.Reloader) {
	a.configCallbacks = append(a.configCallbacks, callback)
}

func (a *App) initRepositories() *repositories {
	return &repositories{
		assessment: repository.NewAssessmentRepository(a.Store),
		plan:       repository.NewLearningPlanRepository(a.Store),
		session:    repository.NewSessionRepository(a.Store),
		chat:       repository.NewChatRepository(a.Store, a.Redis),
		progress:   repository.NewProgressRepository(a.Store),
	}
}

func (a *App) initServices(repos *repositories) *services {
	s := &services{}

	s.storage = service.NewStorageService(&a.Config.Storage)
	s.progress = service.NewProgressService(repos.progress, a.Catalog, a.Events)
	s.assessment = service.NewAssessmentService(repos.assessment, s.progress, a.Catalog, a.Events)
	s.plan = service.NewLearningPlanService(repos.plan, repos.assessment, s.progress, a.Generator, s.storage, a.Catalog, a.Events)
	s.session = service.NewSessionService(repos.session, repos.plan, s.progress, a.Events)
	s.chat = service.NewChatService(repos.chat, repos.session, repos.plan, s.progress, a.Generator, a.Catalog)
	s.chatHub = service.NewChatHub(s.chat)

	return s
}

func (a *App) initControllers(s *services) *controllers {
	return &controllers{
		catalog:     controller.NewCatalogController(a.Catalog, Version),
		assessment:  controller.NewAssessmentController(s.assessment),
		plan:        controller.NewLearningPlanController(s.plan),
		session:     controller.NewSessionController(s.session),
		chat:        controller.NewChatController(s.chat, s.chatHub),
		achievement: controller.NewAchievementController(s.progress),
		profile:     controller.NewProfileController(),
		health:      controller.NewHealthController(a.Store, a.Generator, a.Config.MockMode()),
	}
}

func (a *App) setupMiddlewares(router *gin.Engine) {
	cfg := a.Config
	router.Use(security.CORS(cfg.CORS.AllowedOrigins))
	router.Use(security.Secure())
	router.Use(security.RateLimiter(cfg.RateLimit.MaxRequests, time.Duration(cfg.RateLimit.WindowMinutes)*time.Minute))

	if cfg.Tracing.Enabled {
		router.Use(tracing.GinMiddleware())
	}

	router.Use(monitoring.MetricsMiddleware())
}

// Build assembles repositories, services, controllers and routes over deps.
func Build(cfg *config.Config, deps Deps) *App {
	if deps.Events == nil {
		deps.Events = event.NopPublisher{}
	}
	if deps.Catalog == nil {
		deps.Catalog = catalog.Default()
	}

	app := &App{
		Config:    cfg,
		Store:     deps.Store,
		Redis:     deps.Redis,
		Events:    deps.Events,
		Generator: deps.Generator,
		Catalog:   deps.Catalog,
	}

	repos := app.initRepositories()
	app.services = app.initServices(repos)
	controllers := app.initControllers(app.services)

	monitoring.Init()

	if cfg.Server.Mode == gin.ReleaseMode {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(gin.Recovery())
	app.Router = router

	app.setupMiddlewares(router)
	app.registerRoutes(router, controllers)

	if cfg.Storage.Type == util.StorageLocal {
		router.Static("/uploads", cfg.Storage.LocalPath)
	}

	app.RegisterConfigCallback(func(newCfg *config.Config) {
		logger.SetLevel(newCfg)
		logger.Log.Info("Log level applied", zap.String("level", logger.Level().String()))
	})

	return app
}

// NewApp connects to every configured backend and builds the application.
func NewApp(ctx context.Context, cfg *config.Config) (*App, error) {
	logger.InitLogger(cfg)
	logger.Log.Info("Logger initialized successfully")

	c, err := catalog.Load(cfg.Catalog.File)
	if err != nil {
		return nil, fmt.Errorf("load catalog: %w", err)
	}

	st, err := database.InitStore(ctx, cfg)
	if err != nil {
		return nil, err
	}

	rdb, err := database.InitRedis(ctx, &cfg.Redis)
	if err != nil {
		logger.Log.Warn("Redis unavailable, chat history cache disabled", zap.Error(err))
		rdb = nil
	}

	gen, err := generation.New(cfg.Generation)
	if err != nil {
		return nil, fmt.Errorf("init generator: %w", err)
	}
	logger.Log.Info("Content generator ready",
		zap.String("provider", gen.Name()),
		zap.String("model", gen.Model()),
		zap.Bool("mockMode", cfg.MockMode()),
	)

	app := Build(cfg, Deps{
		Store:     st,
		Redis:     rdb,
		Generator: gen,
		Events:    event.New(cfg.Events.AMQPURL, cfg.Events.Exchange),
		Catalog:   c,
	})

	if cfg.Tracing.Enabled {
		tp, err := tracing.InitTracer(cfg.Tracing.ServiceName, cfg.Tracing.CollectorEndpoint)
		if err != nil {
			logger.Log.Error("Failed to initialize tracing", zap.Error(err))
		} else {
			app.tracer = tp
		}
	}

	return app, nil
}

// Close releases every backend connection.
func (a *App) Close(ctx context.Context) {
	if a.services != nil && a.services.chatHub != nil {
		a.services.chatHub.Stop()
	}
	if a.Events != nil {
		if err := a.Events.Close(); err != nil {
			logger.Log.Error("Failed to close event publisher", zap.Error(err))
		}
	}
	if a.Redis != nil {
		a.Redis.Close()
	}
	if a.Store != nil {
		if err := a.Store.Close(ctx); err != nil {
			logger.Log.Error("Failed to close record store", zap.Error(err))
		}
	}
	if a.tracer != nil {
		if err := a.tracer.Shutdown(ctx); err != nil {
			logger.Log.Error("Failed to shutdown tracer provider", zap.Error(err))
		}
	}
}

// Run serves HTTP until SIGINT or SIGTERM, then shuts down gracefully.
func (a *App) Run() error {
	srv := &http.Server{
		Addr:    ":" + a.Config.Server.Port,
		Handler: a.Router,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if a.Config.Path != "" {
		go func() {
			if err := configwatcher.Watch(ctx, a.Config.Path, configwatcher.DefaultDebounce, a.configCallbacks...); err != nil {
				logger.Log.Error("Config watcher stopped", zap.Error(err))
			}
		}()
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Log.Info("Server running", zap.String("port", a.Config.Server.Port))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("listen: %w", err)
		}
	case <-ctx.Done():
	}
	logger.Log.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	a.Close(shutdownCtx)
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server forced to shutdown: %w", err)
	}

	logger.Log.Info("Server exiting")
	return nil
}
