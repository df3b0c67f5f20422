package main

import (
	"context"
	"log"
	"time"

	"github.com/valyala/fasthttp"
	"go.uber.org/zap"

	apiHandler "github.com/taskdeck/backend/api/handler"
	"github.com/taskdeck/backend/api/view"
	"github.com/taskdeck/backend/internal/config"
	"github.com/taskdeck/backend/internal/infrastructure/identity"
	"github.com/taskdeck/backend/internal/infrastructure/monitor"
	pgInfra "github.com/taskdeck/backend/internal/infrastructure/postgres"
	redisInfra "github.com/taskdeck/backend/internal/infrastructure/redis"
	"github.com/taskdeck/backend/internal/infrastructure/statestore"
	"github.com/taskdeck/backend/internal/middleware"
	"github.com/taskdeck/backend/internal/router"
	"github.com/taskdeck/backend/internal/services"
	"github.com/taskdeck/backend/internal/services/lifecycle"
	"github.com/taskdeck/backend/pkg/httpcontext"
	"github.com/taskdeck/backend/pkg/logger"
	"github.com/taskdeck/backend/repository/postgres"
	redisRepo "github.com/taskdeck/backend/repository/redis"
	"github.com/taskdeck/backend/usecase"
	authUC "github.com/taskdeck/backend/usecase/auth"
	directoryUC "github.com/taskdeck/backend/usecase/directory"
	taskUC "github.com/taskdeck/backend/usecase/task"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config error: %v", err)
	}

	zapLogger, err := logger.New(logger.Config{
		Level:    cfg.Logger.Level,
		Encoding: cfg.Logger.Encoding,
	})
	if err != nil {
		log.Fatalf("logger error: %v", err)
	}
	defer zapLogger.Sync()

	appCtx, cancel := context.WithCancel(context.Background())
	defer cancel()

	manager := lifecycle.New(cfg.Context.ShutdownTimeout, zapLogger)
	manager.Listen(cancel)

	if err := pgInfra.RunMigrations(cfg, zapLogger); err != nil {
		zapLogger.Fatal("migrations failed", zap.Error(err))
	}

	pool, err := pgInfra.NewPool(appCtx, cfg.Database, zapLogger)
	if err != nil {
		zapLogger.Fatal("postgres connection failed", zap.Error(err))
	}
	manager.Register("postgres", func(ctx context.Context) error {
		pool.Close()
		return nil
	})

	redisClient, err := redisInfra.NewClient(cfg.Redis)
	if err != nil {
		zapLogger.Fatal("redis connection failed", zap.Error(err))
	}
	manager.Register("redis", func(ctx context.Context) error {
		return redisClient.Close()
	})

	states, err := statestore.Open(cfg.States.Path, "oauth_states")
	if err != nil {
		zapLogger.Fatal("failed to open state store", zap.Error(err))
	}
	manager.Register("state_store", func(ctx context.Context) error {
		return states.Close()
	})

	mon := monitor.New(pool, redisClient, states, 10*time.Second, zapLogger)
	mon.Start()
	manager.Register("monitor", func(ctx context.Context) error {
		mon.Stop()
		return nil
	})

	janitor := services.NewJanitor(states, cfg.States.CleanupEvery, zapLogger)
	if err := janitor.Start(); err != nil {
		zapLogger.Fatal("janitor schedule invalid", zap.Error(err))
	}
	manager.Register("janitor", func(ctx context.Context) error {
		janitor.Stop(ctx)
		return nil
	})

	userRepo := postgres.NewUserRepository(pool)
	taskRepo := postgres.NewTaskRepository(pool)
	sessionRepo := redisRepo.NewSessionRepository(redisClient, cfg.Session.TTL)

	var providers []usecase.IdentityProvider
	if cfg.GitHub.Enabled {
		providers = append(providers, identity.NewGitHub(identity.GitHubConfig{
			ClientID:     cfg.GitHub.ClientID,
			ClientSecret: cfg.GitHub.ClientSecret,
			CallbackURL:  cfg.CallbackURL("github"),
		}))
	}

	authUseCase := authUC.New(userRepo, sessionRepo, providers, states, authUC.Config{
		JWTSecret:  cfg.Session.JWTSecret,
		JWTIssuer:  cfg.Session.JWTIssuer,
		SessionTTL: cfg.Session.TTL,
		StateTTL:   cfg.States.TTL,
	}, zapLogger)
	taskUseCase := taskUC.New(taskRepo, zapLogger)
	directoryUseCase := directoryUC.New(userRepo, zapLogger)

	renderer, err := view.New()
	if err != nil {
		zapLogger.Fatal("template parsing failed", zap.Error(err))
	}

	ctxAdapter := httpcontext.NewAdapter(cfg.Context.RequestTimeout)

	cookie := apiHandler.CookieConfig{
		Name:   cfg.Session.CookieName,
		Secure: cfg.Session.CookieSecure,
	}

	handlers := router.Handlers{
		Auth:      apiHandler.NewAuthHandler(authUseCase, cookie, cfg.GitHub.Enabled, ctxAdapter, renderer, zapLogger),
		Dashboard: apiHandler.NewDashboardHandler(taskUseCase, ctxAdapter, renderer, zapLogger),
		Users:     apiHandler.NewUsersHandler(directoryUseCase, ctxAdapter, renderer, zapLogger),
		Health:    apiHandler.NewHealthHandler(mon, ctxAdapter, renderer, zapLogger),
	}

	guard := middleware.NewGuard(cfg.Session.JWTSecret, cfg.Session.CookieName, authUseCase, zapLogger)
	r := router.New(handlers, guard, "./assets/static")

	server := &fasthttp.Server{
		Handler:      r.Handler,
		ReadTimeout:  cfg.HTTP.ReadTimeout,
		WriteTimeout: cfg.HTTP.WriteTimeout,
		IdleTimeout:  cfg.HTTP.IdleTimeout,
		Name:         cfg.AppName,
	}

	go func() {
		zapLogger.Info("server started", zap.String("address", cfg.Address()))
		if err := server.ListenAndServe(cfg.Address()); err != nil {
			zapLogger.Fatal("server crashed", zap.Error(err))
		}
	}()

	manager.Register("http_server", func(ctx context.Context) error {
		return server.Shutdown()
	})

	<-appCtx.Done()

	if err := manager.Shutdown(context.Background()); err != nil {
		zapLogger.Error("graceful shutdown error", zap.Error(err))
	}
}
