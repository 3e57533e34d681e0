package app

import (
	"context"
	"errors"
	"net/http"
	"time"

	"learnai_backend/internal/config"
	"learnai_backend/internal/controller"
	"learnai_backend/internal/repository"
	"learnai_backend/internal/service"
	"learnai_backend/pkg/configwatcher"
	"learnai_backend/pkg/logger"
	"learnai_backend/pkg/monitoring"
	"learnai_backend/pkg/security"
	"learnai_backend/pkg/storage"
	"learnai_backend/pkg/tracing"

	"github.com/gin-gonic/gin"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

const shutdownTimeout = 5 * time.Second

type App struct {
	Config          *config.Config
	Router          *gin.Engine
	Store           *storage.Store
	services        *services
	tracer          *sdktrace.TracerProvider
	configCallbacks []func(*config.Config)
}

type repositories struct {
	user     *repository.UserRepository
	session  *repository.SessionRepository
	course   *repository.CourseRepository
	activity *repository.ActivityRepository
}

type services struct {
	auth           *service.AuthService
	course         *service.CourseService
	tracking       *service.TrackingService
	recommendation *service.RecommendationService
	feedback       *service.FeedbackService
	profile        *service.ProfileService
}

type controllers struct {
	auth           *controller.AuthController
	course         *controller.CourseController
	activity       *controller.ActivityController
	recommendation *controller.RecommendationController
	profile        *controller.ProfileController
	health         *controller.HealthController
}

func (a *App) RegisterConfigCallback(callback func(*config.Config)) {
	a.configCallbacks = append(a.configCallbacks, callback)
}

func (a *App) initRepositories(store *storage.Store) *repositories {
	return &repositories{
		user:     repository.NewUserRepository(store),
		session:  repository.NewSessionRepository(store),
		course:   repository.NewCourseRepository(store),
		activity: repository.NewActivityRepository(store),
	}
}

func (a *App) initServices(repos *repositories, store *storage.Store, cfg *config.Config) *services {
	return &services{
		auth:           service.NewAuthService(store, repos.user, repos.session, service.NewBcryptHasher(0), cfg),
		course:         service.NewCourseService(store, repos.course, cfg),
		tracking:       service.NewTrackingService(store, repos.activity, repos.user, repos.course, cfg),
		recommendation: service.NewRecommendationService(store, repos.user, repos.course, cfg),
		feedback:       service.NewFeedbackService(store, repos.user, repos.activity, cfg),
		profile:        service.NewProfileService(store, repos.user, repos.activity, repos.course),
	}
}

func (a *App) initControllers(s *services, store *storage.Store) *controllers {
	return &controllers{
		auth:           controller.NewAuthController(s.auth),
		course:         controller.NewCourseController(s.course, s.tracking),
		activity:       controller.NewActivityController(s.tracking),
		recommendation: controller.NewRecommendationController(s.recommendation, s.feedback),
		profile:        controller.NewProfileController(s.profile),
		health:         controller.NewHealthController(store),
	}
}

func (a *App) setupMiddlewares(ctx context.Context, router *gin.Engine, cfg *config.Config) {
	router.Use(gin.Recovery())
	if cfg.Server.Mode == gin.DebugMode {
		router.Use(gin.Logger())
	}
	router.Use(security.CORS(cfg.CORS.AllowedOrigins))
	router.Use(security.Secure())
	router.Use(security.RateLimiter(ctx, cfg.RateLimit.MaxRequests, time.Duration(cfg.RateLimit.WindowMinutes)*time.Minute))

	if cfg.Tracing.Enabled {
		router.Use(tracing.GinMiddleware())
	}

	router.Use(monitoring.MetricsMiddleware())
}

// NewApp 按配置创建存储后端并组装应用
func NewApp(ctx context.Context, cfg *config.Config) (*App, error) {
	provider, err := storage.NewProvider(ctx, cfg)
	if err != nil {
		return nil, err
	}
	logger.Log.Info("Storage initialized", zap.String("type", provider.Name()))

	return NewAppWithStore(ctx, cfg, storage.NewStore(provider, cfg.Storage.Namespace))
}

// NewAppWithStore 使用给定的存储组装应用，测试中配合内存存储使用
func NewAppWithStore(ctx context.Context, cfg *config.Config, store *storage.Store) (*App, error) {
	app := &App{
		Config: cfg,
		Store:  store,
	}

	if cfg.Tracing.Enabled {
		tp, err := tracing.InitTracer(cfg.Tracing)
		if err != nil {
			return nil, err
		}
		app.tracer = tp
	}

	repos := app.initRepositories(store)
	app.services = app.initServices(repos, store, cfg)
	if err := app.services.course.Seed(ctx); err != nil {
		return nil, err
	}
	ctrls := app.initControllers(app.services, store)

	monitoring.Init()

	gin.SetMode(cfg.Server.Mode)
	router := gin.New()
	app.Router = router
	app.setupMiddlewares(ctx, router, cfg)
	app.registerRoutes(router, ctrls)

	app.RegisterConfigCallback(func(newCfg *config.Config) {
		logger.SetMode(newCfg.Server.Mode)
	})

	return app, nil
}

// Run 启动 HTTP 服务和配置监听，ctx 结束后优雅退出
func (a *App) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:              ":" + a.Config.Server.Port,
		Handler:           a.Router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		logger.Log.Info("Server running", zap.String("port", a.Config.Server.Port))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		logger.Log.Info("Shutting down server...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	if a.Config.ConfigFile != "" {
		g.Go(func() error {
			return configwatcher.WatchConfig(gctx, a.Config.ConfigFile, func(newCfg *config.Config) {
				for _, cb := range a.configCallbacks {
					cb(newCfg)
				}
			})
		})
	}

	err := g.Wait()

	if a.tracer != nil {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if terr := a.tracer.Shutdown(shutdownCtx); terr != nil {
			logger.Log.Error("Failed to shutdown tracer provider", zap.Error(terr))
		}
	}

	logger.Log.Info("Server exiting")
	return err
}
