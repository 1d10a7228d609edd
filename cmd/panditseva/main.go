package main

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"

	"github.com/sevahub/panditseva/internal/config"
	dbRedis "github.com/sevahub/panditseva/internal/db/redis"
	logpkg "github.com/sevahub/panditseva/internal/logger"
	"github.com/sevahub/panditseva/internal/metrics"
	cacherepo "github.com/sevahub/panditseva/internal/repository/cache"
	panditrepo "github.com/sevahub/panditseva/internal/repository/pandit"
	profilerepo "github.com/sevahub/panditseva/internal/repository/profile"
	"github.com/sevahub/panditseva/internal/scheduler"
	chiTransport "github.com/sevahub/panditseva/internal/transport/chi"
	healthuc "github.com/sevahub/panditseva/internal/usecase/health"
	indexeruc "github.com/sevahub/panditseva/internal/usecase/indexer"
	muhuratuc "github.com/sevahub/panditseva/internal/usecase/muhurat"
	searchuc "github.com/sevahub/panditseva/internal/usecase/search"
	"github.com/sevahub/panditseva/internal/version"
)

func main() {
	// Load configuration based on ENV
	env := config.GetEnv()

	cfg, err := config.Load(env)
	if err != nil {
		panic("failed to load config: " + err.Error())
	}

	logger, err := logpkg.NewLogger(env, cfg.Logging.Level)
	if err != nil {
		panic("failed to create logger: " + err.Error())
	}
	defer func() { _ = logger.Sync() }()

	logger.Info("Starting panditseva API server",
		zap.String("version", version.Version),
		zap.String("commit", version.Commit),
		zap.String("env", env),
		zap.Int("http_port", cfg.HTTP.Port),
		zap.Strings("db_addrs", cfg.Database.Addrs),
	)

	store, err := dbRedis.NewStore(dbRedis.Config{
		Addrs:    cfg.Database.Addrs,
		Username: cfg.Database.Username,
		Password: cfg.Database.Password,
		DB:       cfg.Database.DB,
	})
	if err != nil {
		logger.Fatal("Failed to create search store", zap.Error(err))
	}
	defer store.Close()

	ctx := context.Background()
	if err := store.WaitForReady(ctx, time.Duration(cfg.Database.ReadinessTimeout)*time.Second); err != nil {
		logger.Fatal("Search store not ready", zap.Error(err))
	}
	logger.Info("Connected to search store")

	mongoCtx, cancelMongo := context.WithTimeout(ctx, 10*time.Second)
	mongoClient, err := mongo.Connect(mongoCtx, options.Client().ApplyURI(cfg.Profiles.URI))
	cancelMongo()
	if err != nil {
		logger.Fatal("Failed to connect to profile store", zap.Error(err))
	}
	defer func() { _ = mongoClient.Disconnect(context.Background()) }()
	mongoDB := mongoClient.Database(cfg.Profiles.Database)
	logger.Info("Connected to profile store", zap.String("database", cfg.Profiles.Database))

	metrics.RegisterDomainMetrics()

	// Repositories
	panditRepo := panditrepo.NewRepository(store)
	profileRepo := profilerepo.NewRepository(mongoDB)
	payloadCache := cacherepo.New(store, cacherepo.NewMongoAudit(mongoDB), logger)

	if err := panditRepo.EnsureIndex(ctx); err != nil {
		logger.Fatal("Failed to ensure pandit index", zap.Error(err))
	}

	// Use case services
	searchSvc := searchuc.New(panditRepo, cfg.Search.DefaultPageSize, cfg.Search.MaxPageSize)
	muhuratSvc := muhuratuc.New(payloadCache)
	indexerSvc := indexeruc.New(profileRepo, panditRepo,
		time.Duration(cfg.Resync.RecordDelayMs)*time.Millisecond)
	healthSvc := healthuc.New(store, profileRepo)

	// Nightly resync worker
	schedCtx, stopScheduler := context.WithCancel(ctx)
	defer stopScheduler()
	if !cfg.Resync.DisableOnStart {
		resync := scheduler.NewResync(indexerSvc, cfg.Resync.HourUTC, logger)
		go resync.Run(schedCtx)
	}

	server := chiTransport.NewServer(searchSvc, muhuratSvc, indexerSvc, healthSvc, logger)

	r := chi.NewRouter()
	r.Use(jsonRecoverer(logger))
	r.Use(chiMiddleware.RequestID)
	r.Use(wideEventMiddleware(logger))
	r.Use(chiTransport.IdentityMiddleware(cfg.Auth.JWTSecret))
	r.Use(metrics.Middleware())
	server.Routes(r)

	addr := fmt.Sprintf(":%d", cfg.HTTP.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  time.Duration(cfg.HTTP.ReadTimeoutSec) * time.Second,
		WriteTimeout: time.Duration(cfg.HTTP.WriteTimeoutSec) * time.Second,
	}

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)

	go func() {
		logger.Info("Starting HTTP server", zap.String("addr", addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("HTTP server error", zap.Error(err))
		}
	}()

	<-quit
	logger.Info("Received shutdown signal")
	stopScheduler()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.HTTP.ShutdownSec)*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("Error during shutdown", zap.Error(err))
	}

	logger.Info("Server stopped gracefully")
}

// jsonRecoverer is a recovery middleware that returns JSON instead of a plain text stacktrace.
func jsonRecoverer(logger *zap.Logger) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if rvr := recover(); rvr != nil {
					logger.Error("panic recovered",
						zap.Any("panic", rvr),
						zap.Stack("stacktrace"),
					)
					w.Header().Set("Content-Type", "application/json")
					w.WriteHeader(http.StatusInternalServerError)
					_ = json.NewEncoder(w).Encode(map[string]string{
						"code":    "internal_error",
						"message": "internal error",
					})
				}
			}()
			next.ServeHTTP(w, r)
		})
	}
}

// wideEventMiddleware emits a canonical log line per request and propagates X-Request-ID.
func wideEventMiddleware(logger *zap.Logger) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()

			// chi.middleware.RequestID already placed request_id in context
			requestID := chiMiddleware.GetReqID(r.Context())

			if requestID != "" {
				w.Header().Set("X-Request-ID", requestID)
			}

			// Per-request logger with request_id
			reqLogger := logger.With(zap.String("request_id", requestID))
			ctx := logpkg.ContextWithLogger(r.Context(), reqLogger)

			ww := chiMiddleware.NewWrapResponseWriter(w, r.ProtoMajor)
			next.ServeHTTP(ww, r.WithContext(ctx))

			// One canonical log line per request.
			reqLogger.Info("http_request",
				zap.String("method", r.Method),
				zap.String("path", r.URL.Path),
				zap.Int("status", ww.Status()),
				zap.Duration("latency", time.Since(start)),
				zap.String("ip", r.RemoteAddr),
				zap.Int64("content_length", r.ContentLength),
				zap.String("user_agent", r.UserAgent()),
				zap.Int("response_bytes", ww.BytesWritten()),
			)
		})
	}
}
