package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/Shama-Anpat/darukaa.earth/internal/application/auth"
	"github.com/Shama-Anpat/darukaa.earth/internal/application/ports"
	"github.com/Shama-Anpat/darukaa.earth/internal/application/project"
	"github.com/Shama-Anpat/darukaa.earth/internal/application/site"
	"github.com/Shama-Anpat/darukaa.earth/internal/config"
	infraauth "github.com/Shama-Anpat/darukaa.earth/internal/infrastructure/auth"
	httprouter "github.com/Shama-Anpat/darukaa.earth/internal/infrastructure/http"
	"github.com/Shama-Anpat/darukaa.earth/internal/infrastructure/http/handlers"
	"github.com/Shama-Anpat/darukaa.earth/internal/infrastructure/http/middleware"
	"github.com/Shama-Anpat/darukaa.earth/internal/infrastructure/lockout"
	"github.com/Shama-Anpat/darukaa.earth/internal/infrastructure/persistence/memory"
	"github.com/Shama-Anpat/darukaa.earth/internal/infrastructure/persistence/postgres"
	"github.com/Shama-Anpat/darukaa.earth/internal/infrastructure/revocation"
	"github.com/Shama-Anpat/darukaa.earth/internal/infrastructure/security"
)

func main() {
	// A missing .env is fine; the environment may already be populated.
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		zerolog.New(os.Stderr).Fatal().Err(err).Msg("load config")
	}
	log := newLogger(cfg.Log)

	ctx := context.Background()

	var (
		uow    ports.UnitOfWork
		pinger handlers.Pinger
	)
	if cfg.UseMemoryStore() {
		log.Warn().Msg("DATABASE_URL not set; using in-memory store, data is lost on restart")
		uow = memory.NewStore()
	} else {
		pool, sqlDB, err := postgres.Open(ctx, cfg.Database.URL, cfg.Database.MaxConns)
		if err != nil {
			log.Fatal().Err(err).Msg("connect to database")
		}
		defer pool.Close()
		defer sqlDB.Close()
		if err := postgres.Migrate(ctx, sqlDB); err != nil {
			log.Fatal().Err(err).Msg("run migrations")
		}
		uow = postgres.NewStore(sqlDB)
		pinger = pool
	}

	var redisClient *redis.Client
	if cfg.Redis.URL != "" {
		opt, err := redis.ParseURL(cfg.Redis.URL)
		if err != nil {
			log.Fatal().Err(err).Msg("parse REDIS_URL")
		}
		redisClient = redis.NewClient(opt)
		defer redisClient.Close()
		if err := redisClient.Ping(ctx).Err(); err != nil {
			log.Warn().Err(err).Msg("redis ping failed; continuing without redis")
			redisClient = nil
		}
	}

	var revocations ports.RevocationStore
	if redisClient != nil {
		revocations = revocation.NewRedisStore(redisClient)
	} else {
		revocations = revocation.NewMemoryStore()
	}

	hasher, err := security.NewHasher(cfg.Password.Hasher, cfg.Password.BcryptCost, security.Argon2Params{
		Memory:      cfg.Password.Argon2.Memory,
		Iterations:  cfg.Password.Argon2.Iterations,
		Parallelism: cfg.Password.Argon2.Parallelism,
		SaltLength:  16,
		KeyLength:   32,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("create password hasher")
	}
	issuer, err := infraauth.NewTokenIssuer([]byte(cfg.JWT.Secret), cfg.JWT.TTL)
	if err != nil {
		log.Fatal().Err(err).Msg("create token issuer")
	}
	loginLockout := lockout.NewMemoryStore(cfg.Lockout.MaxAttempts, cfg.Lockout.Cooldown)

	registerUC := auth.NewRegisterUser(uow, hasher, issuer)
	loginUC := auth.NewLogin(uow, hasher, issuer, loginLockout)
	logoutUC := auth.NewLogout(revocations)
	authenticateUC := auth.NewAuthenticate(uow, issuer, revocations)
	listUsersUC := auth.NewListUsers(uow)
	updateRoleUC := auth.NewUpdateUserRole(uow)

	authHandler := handlers.NewAuthHandler(registerUC, loginUC, logoutUC, log)
	usersHandler := handlers.NewUsersHandler(listUsersUC, updateRoleUC, log)
	projectsHandler := handlers.NewProjectsHandler(
		project.NewCreateProject(uow),
		project.NewListProjects(uow),
		project.NewUpdateProject(uow),
		project.NewDeleteProject(uow),
		log,
	)
	sitesHandler := handlers.NewSitesHandler(
		site.NewCreateSite(uow),
		site.NewListSites(uow),
		site.NewUpdateSite(uow),
		site.NewDeleteSite(uow),
		log,
	)
	healthHandler := handlers.NewHealthHandler(pinger, redisClient)

	ipLimit, err := middleware.NewIPRateLimiter(cfg.RateLimit.PerIP)
	if err != nil {
		log.Fatal().Err(err).Msg("create IP rate limiter")
	}
	userLimit, err := middleware.NewUserRateLimiter(cfg.RateLimit.PerUser)
	if err != nil {
		log.Fatal().Err(err).Msg("create user rate limiter")
	}
	secureMiddleware := middleware.NewSecure(middleware.SecureOptions(cfg.Secure.IsDevelopment))

	if cfg.SitesRequireAdmin {
		log.Info().Msg("site writes restricted to admins")
	} else {
		log.Info().Msg("site writes open to any authenticated user")
	}

	router := httprouter.NewRouter(httprouter.RouterConfig{
		AuthHandler:       authHandler,
		HealthHandler:     healthHandler,
		UsersHandler:      usersHandler,
		ProjectsHandler:   projectsHandler,
		SitesHandler:      sitesHandler,
		RequireJWT:        middleware.NewAuthValidator(authenticateUC, log).Handler,
		SitesRequireAdmin: cfg.SitesRequireAdmin,
		Log:               log,
		APIVersion:        cfg.Server.APIVersion,
		CORSOrigins:       cfg.Server.CORSOrigins,
		Secure:            secureMiddleware,
		IPRateLimit:       ipLimit,
		UserRateLimit:     userLimit,
		Metrics:           true,
	})

	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	go func() {
		log.Info().Str("port", cfg.Server.Port).Msg("server starting")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("server")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info().Msg("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownPeriod)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("server shutdown")
	}
	log.Info().Msg("server stopped")
}

func newLogger(cfg config.LogConfig) zerolog.Logger {
	level, err := zerolog.ParseLevel(cfg.Level)
	if err != nil || cfg.Level == "" {
		level = zerolog.InfoLevel
	}
	var log zerolog.Logger
	if cfg.Format == "json" {
		log = zerolog.New(os.Stderr)
	} else {
		log = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})
	}
	return log.Level(level).With().Timestamp().Logger()
}
