package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"folio-gate/ai"
	"folio-gate/auth"
	"folio-gate/infrastructure/github"
	grpcserver "folio-gate/infrastructure/grpc/server"
	httpserver "folio-gate/infrastructure/http/server"
	"folio-gate/infrastructure/instagram"
	"folio-gate/internal"
	"folio-gate/moderation"
	"folio-gate/observability"
	"folio-gate/repositories"
	"folio-gate/services"

	"github.com/dgraph-io/badger/v4"
	"github.com/mama165/sdk-go/database"
	"github.com/mama165/sdk-go/logs"
)

// Exit codes to provide meaningful status to the operating system or service manager (e.g., systemd).
const (
	exitOK      = 0
	exitRuntime = 1
	exitConfig  = 2
)

const censoredChar = '*'

func main() {
	code, err := run()
	if err != nil {
		fmt.Fprintf(os.Stderr, "folio-gate terminated with error: %v\n", err)
	}
	os.Exit(code)
}

// run wires every component, serves until a signal or a server failure, then shuts down in order.
// Returning instead of exiting lets every deferred cleanup run.
func run() (int, error) {
	// 1. Configuration & Logger
	config, err := internal.Load()
	if err != nil {
		return exitConfig, err
	}
	logger := logs.GetLoggerFromString(config.LogLevel)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// 2. Feedback store (BadgerDB)
	db, err := badger.Open(buildBadgerOpts(config, logger, ctx))
	if err != nil {
		return exitRuntime, fmt.Errorf("database opening failed: %w", err)
	}
	defer func() {
		logger.Info("Closing BadgerDB...")
		_ = db.Close()
	}()

	if logger.Enabled(ctx, slog.LevelDebug) {
		debugPort := config.Port + 1
		endpoint := "/inspect"
		logger.Info("Debug Badger inspector available", "url", fmt.Sprintf("http://localhost:%d%s", debugPort, endpoint))
		database.StartDebugServer(db, debugPort, endpoint, FeedbackMapper)
	}

	// 3. Rate-limit table
	rateLimitRepository, closeStore, err := buildRateLimitRepository(ctx, config)
	if err != nil {
		return exitConfig, err
	}
	defer closeStore()

	limiter, err := services.NewRateLimiter(rateLimitRepository, services.RateLimitConfig{
		MaxRequests: config.MaxRequestsPerHour,
		Window:      config.RateLimitWindow,
	}, time.Now)
	if err != nil {
		return exitConfig, err
	}

	// 4. Filters
	denylist, err := moderation.NewModerator(config.BlockedKeywords(), censoredChar, logger)
	if err != nil {
		return exitConfig, fmt.Errorf("building denylist: %w", err)
	}
	allowlist, err := moderation.NewModerator(config.AllowedTopics(), censoredChar, logger)
	if err != nil {
		return exitConfig, fmt.Errorf("building allowlist: %w", err)
	}
	logger.Info("Filters loaded", "denylist", denylist.Size(), "allowlist", allowlist.Size())
	if config.OpenAIAPIKey == "" {
		logger.Warn("OPENAI_API_KEY is not set, chat requests will answer 503")
	}

	// 5. Services
	monitor := observability.NewMonitor(logger)
	completer := ai.NewOpenAIClient(config.OpenAIBaseURL, config.OpenAIAPIKey, &http.Client{})
	chatService := services.NewChatService(logger, limiter, denylist, allowlist, completer, monitor, services.ChatConfig{
		MaxPromptLength:  config.MaxPromptLength,
		SystemPrompt:     config.SystemPromptOrDefault(),
		OffTopicNote:     config.OffTopicNoteOrDefault(),
		Model:            config.Model,
		MaxOutputTokens:  config.MaxOutputTokens,
		Temperature:      config.Temperature,
		PresencePenalty:  config.PresencePenalty,
		FrequencyPenalty: config.FrequencyPenalty,
		UpstreamTimeout:  config.UpstreamTimeout,
	})
	feedbackService := services.NewFeedbackService(logger, repositories.NewFeedbackRepository(db, logger, nil), time.Now)

	proxyClient := &http.Client{Timeout: config.ProxyTimeout}
	profileService, err := services.NewProfileService(logger,
		github.NewClient(config.GitHubGraphQLURL, config.GitHubToken, config.GitHubLogin, proxyClient, time.Now),
		instagram.NewClient(config.InstagramGraphURL, config.InstagramToken, config.InstagramUserID, proxyClient),
		config.CacheTTL)
	if err != nil {
		return exitRuntime, err
	}
	defer profileService.Close()

	authService, err := buildAuthService(config, logger)
	if err != nil {
		return exitConfig, err
	}

	// 6. Servers
	errChan := make(chan error, 2)
	handler := httpserver.NewServer(logger, chatService, feedbackService, profileService, authService, monitor,
		httpserver.NewClientKeyer(config.TrustProxyHeaders, config.ClientKeySalt)).Routes()
	httpSrv := &http.Server{
		Addr:              config.Address(),
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
		BaseContext:       func(net.Listener) context.Context { return ctx },
	}

	listener, err := net.Listen("tcp", config.Address())
	if err != nil {
		return exitRuntime, fmt.Errorf("failed to listen on %s: %w", config.Address(), err)
	}
	go func() {
		logger.Info("Starting HTTP server", "address", config.Address(), "at", time.Now().UTC())
		if err := httpSrv.Serve(listener); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errChan <- fmt.Errorf("HTTP server error: %w", err)
		}
	}()

	var health *grpcserver.HealthServer
	if config.HealthPort > 0 {
		healthAddress := fmt.Sprintf("%s:%d", config.Host, config.HealthPort)
		healthListener, err := net.Listen("tcp", healthAddress)
		if err != nil {
			return exitRuntime, fmt.Errorf("failed to listen on %s: %w", healthAddress, err)
		}
		health = grpcserver.NewHealthServer(logger)
		go func() {
			if err := health.Serve(healthListener); err != nil {
				errChan <- fmt.Errorf("gRPC health server error: %w", err)
			}
		}()
		health.SetServing(true)
	}

	// 7. Wait for Stop or Error
	select {
	case <-ctx.Done():
		logger.Info("Shutdown signal received")
	case err := <-errChan:
		return exitRuntime, err
	}

	// 8. Graceful shutdown: stop advertising first, then drain in-flight requests.
	logger.Info("Shutting down gracefully...")
	if health != nil {
		health.SetServing(false)
	}
	shutdownCtx, cancel := context.WithTimeout(context.Background(), config.ShutdownTimeout)
	defer cancel()
	if err := httpSrv.Shutdown(shutdownCtx); err != nil {
		logger.Error("HTTP server did not drain in time", "error", err)
	}
	if health != nil {
		health.Stop()
	}
	logger.Info("Program stopped cleanly")

	return exitOK, nil
}

func buildBadgerOpts(config internal.Config, logger *slog.Logger, ctx context.Context) badger.Options {
	options := badger.DefaultOptions(config.BadgerFilepath)

	if logger.Enabled(ctx, slog.LevelDebug) {
		options = options.WithLoggingLevel(badger.DEBUG).
			WithBypassLockGuard(true)
	} else {
		options = options.WithLoggingLevel(badger.WARNING)
	}

	return options
}

func buildRateLimitRepository(ctx context.Context, config internal.Config) (repositories.IRateLimitRepository, func(), error) {
	switch config.RateLimitStore {
	case "redis":
		repo, err := repositories.NewRedisRateLimitRepository(ctx, config.RedisAddr, config.RedisPassword, config.RedisDB)
		if err != nil {
			return nil, nil, fmt.Errorf("connecting to redis at %s: %w", config.RedisAddr, err)
		}
		return repo, func() { _ = repo.Close() }, nil
	default:
		return repositories.NewMemoryRateLimitRepository(time.Now), func() {}, nil
	}
}

func buildAuthService(config internal.Config, logger *slog.Logger) (*services.AuthService, error) {
	if config.AdminJWTSecret == "" {
		logger.Warn("ADMIN_JWT_SECRET is not set, operator routes are closed")
		return services.NewAuthService(auth.Tokens{}, false), nil
	}
	tokens, err := auth.NewTokens(config.AdminJWTSecret, config.AuthTokenDuration, time.Now)
	if err != nil {
		return nil, fmt.Errorf("admin tokens: %w", err)
	}
	return services.NewAuthService(tokens, true), nil
}

// FeedbackMapper renders feedback records in the debug inspector.
func FeedbackMapper(key string, val []byte) database.InspectRow {
	row := database.DefaultMapper(key, val)

	feedback, err := repositories.ToFeedback(val)
	if err != nil {
		row.Detail = "Error: unmarshal failed"
		return row
	}
	row.Type = "FEEDBACK"
	row.Namespace = repositories.FeedbackPrefix
	row.EntityID = feedback.ID.String()
	row.Timestamp = feedback.Date.Format(time.RFC3339)
	row.Detail = fmt.Sprintf("%s: %s", feedback.Name, feedback.Content)
	return row
}
