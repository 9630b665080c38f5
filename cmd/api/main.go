package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/srgjo27/shutterbook/internal/adapter/cache"
	"github.com/srgjo27/shutterbook/internal/adapter/handler"
	"github.com/srgjo27/shutterbook/internal/adapter/handler/middleware"
	"github.com/srgjo27/shutterbook/internal/adapter/repository/postgres"
	"github.com/srgjo27/shutterbook/internal/core/domain"
	"github.com/srgjo27/shutterbook/internal/core/services"
	"github.com/srgjo27/shutterbook/internal/platform/config"
	"github.com/srgjo27/shutterbook/internal/platform/database"
	"github.com/srgjo27/shutterbook/internal/platform/logger"
)

const serviceName = "shutterbook-api"

func main() {
	if err := rootCmd().ExecuteContext(context.Background()); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func rootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:           "shutterbook-api",
		Short:         "Photographer booking marketplace API",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return serve(cmd.Context())
		},
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API and the completion sweep worker",
		RunE: func(cmd *cobra.Command, args []string) error {
			return serve(cmd.Context())
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "sweep",
		Short: "Complete every confirmed booking whose session is over, then exit",
		RunE: func(cmd *cobra.Command, args []string) error {
			return sweepOnce(cmd.Context())
		},
	})

	cmd.AddCommand(tokenCmd())

	return cmd
}

func tokenCmd() *cobra.Command {
	var (
		userID string
		email  string
		name   string
		role   string
		ttl    time.Duration
	)

	cmd := &cobra.Command{
		Use:   "token",
		Short: "Mint a signed bearer token for local development",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}

			id, err := uuid.Parse(userID)
			if err != nil {
				return fmt.Errorf("invalid --user-id: %w", err)
			}
			parsedRole, ok := domain.ParseRole(role)
			if !ok {
				return fmt.Errorf("invalid --role %q", role)
			}

			token, err := middleware.NewAuthenticator(cfg.Auth.JWTSecret).SignToken(domain.Identity{
				UserID: id,
				Email:  email,
				Name:   name,
				Role:   parsedRole,
			}, ttl)
			if err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), token)
			return nil
		},
	}

	cmd.Flags().StringVar(&userID, "user-id", "", "User id placed in the token subject")
	cmd.Flags().StringVar(&email, "email", "", "Email claim")
	cmd.Flags().StringVar(&name, "name", "", "Display name claim")
	cmd.Flags().StringVar(&role, "role", string(domain.RoleClient), "Role claim (client, photographer, admin)")
	cmd.Flags().DurationVar(&ttl, "ttl", 24*time.Hour, "Token lifetime")
	_ = cmd.MarkFlagRequired("user-id")

	return cmd
}

func loadConfig() (*config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	logger.Init(serviceName, cfg.Env, cfg.LogLevel)
	return cfg, nil
}

func connectRedis(ctx context.Context, cfg config.RedisConfig) (*redis.Client, error) {
	log.Info().Str("addr", cfg.Addr()).Msg("connecting to redis")

	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr(),
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}

	log.Info().Msg("redis connected")
	return client, nil
}

func sweepOnce(ctx context.Context) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	db, err := database.NewPostgresDB(ctx, cfg.Database)
	if err != nil {
		return err
	}
	defer db.Close()

	bookingService := services.NewBookingService(postgres.NewBookingRepository(db), postgres.NewPhotographerRepository(db))
	done := bookingService.ProcessFinishedSessions(ctx)

	log.Info().Int("completed", done).Msg("sweep finished")
	return nil
}

func serve(parent context.Context) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(parent, os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := database.NewPostgresDB(ctx, cfg.Database)
	if err != nil {
		return err
	}
	defer db.Close()

	redisClient, err := connectRedis(ctx, cfg.Redis)
	if err != nil {
		return err
	}
	defer redisClient.Close()

	application := buildApp(db, redisClient, cfg)

	go application.bookings.RunCompletionSweep(ctx, cfg.Worker.CompletionSweepInterval)
	go application.limiter.RunCleanup(ctx, time.Minute, 10*time.Minute)

	server := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:           application.handler,
		ReadTimeout:       5 * time.Second,
		ReadHeaderTimeout: 2 * time.Second,
		WriteTimeout:      10 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info().Int("port", cfg.Server.Port).Msg("server starting")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("server startup failed: %w", err)
		}
	case <-ctx.Done():
	}

	log.Info().Msg("shutting down server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server forced to shutdown: %w", err)
	}

	log.Info().Msg("server exiting")
	return nil
}

type app struct {
	handler  http.Handler
	bookings *services.BookingService
	limiter  *middleware.RateLimiter
}

func buildApp(db *sql.DB, redisClient *redis.Client, cfg *config.Config) *app {
	userRepo := postgres.NewUserRepository(db)
	photographerRepo := postgres.NewPhotographerRepository(db)
	bookingRepo := postgres.NewBookingRepository(db)
	reviewRepo := postgres.NewReviewRepository(db)
	messageRepo := postgres.NewMessageRepository(db)

	catalogCache := cache.NewCatalogCache(redisClient, cfg.Catalog.CacheTTL)

	searchService := services.NewSearchService(photographerRepo, reviewRepo, catalogCache)
	profileService := services.NewProfileService(photographerRepo, searchService)
	bookingService := services.NewBookingService(bookingRepo, photographerRepo)
	reviewService := services.NewReviewService(reviewRepo, bookingRepo, photographerRepo, searchService)
	messageService := services.NewMessageService(messageRepo, userRepo)
	statsService := services.NewStatsService(searchService, bookingRepo, reviewRepo, userRepo)

	limiter := middleware.NewRateLimiter(cfg.RateLimit.RPS, cfg.RateLimit.Burst)

	h := handler.NewRouter(handler.Handlers{
		Photographers: handler.NewPhotographerHandler(searchService, profileService),
		Bookings:      handler.NewBookingHandler(bookingService, reviewService),
		Messages:      handler.NewMessageHandler(messageService),
		Admin:         handler.NewAdminHandler(statsService),
	}, handler.RouterConfig{
		Auth:           middleware.NewAuthenticator(cfg.Auth.JWTSecret),
		Limiter:        limiter,
		Metrics:        middleware.NewMetrics(),
		AllowedOrigins: cfg.Server.CORSAllowedOrigins,
	})

	return &app{handler: h, bookings: bookingService, limiter: limiter}
}
