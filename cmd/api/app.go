package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/healthassistant/hub/internal/api/handlers"
	"github.com/healthassistant/hub/internal/api/middleware"
	"github.com/healthassistant/hub/internal/config"
	"github.com/healthassistant/hub/internal/observability"
	"github.com/healthassistant/hub/internal/openai"
	"github.com/healthassistant/hub/internal/repository"
	"github.com/healthassistant/hub/internal/retrieval"
	"github.com/healthassistant/hub/internal/service"
	"github.com/healthassistant/hub/internal/session"
)

// App holds all server dependencies and coordinates startup and shutdown.
type App struct {
	cfg    *config.Config
	db     *pgxpool.Pool
	server *http.Server
}

// NewApp builds and wires all components. It does not start the HTTP server;
// call Run to start and block until shutdown or failure.
func NewApp(cfg *config.Config, db *pgxpool.Pool) (*App, error) {
	// Install the request-context handler so request_id appears in logs.
	defaultHandler := slog.Default().Handler()
	slog.SetDefault(slog.New(observability.NewRequestContextHandler(defaultHandler)))

	aiClient := openai.NewClient(cfg.OpenAIAPIKey,
		openai.WithChatModel(cfg.ChatModel),
		openai.WithEmbeddingModel(cfg.EmbeddingModel),
		openai.WithDimensions(cfg.EmbeddingDimensions),
		openai.WithRateLimit(float64(cfg.OpenAIRateLimit)),
	)

	usersRepo := repository.NewUsersRepository(db)
	profilesRepo := repository.NewProfilesRepository(db)
	feedbackRepo := repository.NewFeedbackRepository(db)
	documentsRepo := repository.NewDocumentsRepository(db)

	queryCache, err := lru.New[string, []float32](cfg.QueryCacheSize)
	if err != nil {
		return nil, fmt.Errorf("create query cache: %w", err)
	}

	retriever := retrieval.NewRetriever(retrieval.RetrieverParams{
		EmbeddingClient: aiClient,
		Documents:       documentsRepo,
		QueryCache:      queryCache,
		Logger:          slog.Default(),
	})

	sessions := session.NewStore(cfg.SessionMax, cfg.SessionTTL)

	authService := service.NewAuthService(service.AuthServiceParams{
		Users:    usersRepo,
		Profiles: profilesRepo,
		Sessions: sessions,
		Logger:   slog.Default(),
	})

	chatService := service.NewChatService(service.ChatServiceParams{
		Retriever: retriever,
		Generator: aiClient,
		Profiles:  profilesRepo,
		Users:     usersRepo,
		Logger:    slog.Default(),
	})

	questionsService := service.NewSmartQuestionsService(service.SmartQuestionsServiceParams{
		Generator: aiClient,
		Profiles:  profilesRepo,
		Users:     usersRepo,
		Logger:    slog.Default(),
	})

	feedbackService := service.NewFeedbackService(feedbackRepo)

	authHandler := handlers.NewAuthHandler(authService)
	chatHandler := handlers.NewChatHandler(chatService, questionsService)
	feedbackHandler := handlers.NewFeedbackHandler(feedbackService)
	healthHandler := handlers.NewHealthHandler()

	server := newHTTPServer(cfg, sessions, healthHandler, authHandler, chatHandler, feedbackHandler)

	return &App{
		cfg:    cfg,
		db:     db,
		server: server,
	}, nil
}

// newHTTPServer builds the HTTP server and muxes (no auth on /health and
// login; session auth on the rest of /v1/).
// Handler chain: RequestID -> CORS -> MaxBody -> Logging(mux).
func newHTTPServer(
	cfg *config.Config,
	sessions *session.Store,
	health *handlers.HealthHandler,
	auth *handlers.AuthHandler,
	chat *handlers.ChatHandler,
	feedback *handlers.FeedbackHandler,
) *http.Server {
	public := http.NewServeMux()
	public.HandleFunc("GET /health", health.Check)
	public.HandleFunc("POST /v1/auth/login", auth.Login)

	protected := http.NewServeMux()
	protected.HandleFunc("POST /v1/auth/logout", auth.Logout)
	protected.HandleFunc("POST /v1/chat", chat.Chat)
	protected.HandleFunc("GET /v1/smart-questions", chat.SmartQuestions)
	protected.HandleFunc("POST /v1/feedback", feedback.Submit)
	protected.HandleFunc("GET /v1/feedback/summary", feedback.Summary)
	protected.HandleFunc("GET /v1/feedback/records", feedback.Records)

	protectedWithAuth := middleware.Auth(sessions)(protected)
	mux := http.NewServeMux()
	mux.Handle("POST /v1/auth/login", public)
	mux.Handle("/v1/", protectedWithAuth)
	mux.Handle("/", public)

	handler := middleware.Logging(mux)
	handler = middleware.MaxBody(cfg.MaxRequestBodyBytes, nil)(handler)
	// CORS wraps Auth so OPTIONS preflight requests bypass authentication.
	handler = middleware.CORS(cfg.CORSAllowedOrigin)(handler)
	handler = middleware.RequestID(handler)

	const (
		readTimeout  = 15 * time.Second
		writeTimeout = 60 * time.Second
		idleTimeout  = 60 * time.Second
	)

	return &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      handler,
		ReadTimeout:  readTimeout,
		WriteTimeout: writeTimeout,
		IdleTimeout:  idleTimeout,
	}
}

// Run starts the HTTP server, then blocks until ctx is cancelled (e.g. signal)
// or the server fails. Caller should then call Shutdown.
func (a *App) Run(ctx context.Context) error {
	runErr := make(chan error, 1)

	go func() {
		slog.Info("Starting server", "port", a.cfg.Port)

		if err := a.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			select {
			case runErr <- fmt.Errorf("server: %w", err):
			default:
			}
		}
	}()

	select {
	case err := <-runErr:
		return err
	case <-ctx.Done():
		return nil
	}
}

// Shutdown stops the HTTP server. Call after Run returns.
func (a *App) Shutdown(ctx context.Context) error {
	if err := a.server.Shutdown(ctx); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("server shutdown: %w", err)
	}

	return nil
}
