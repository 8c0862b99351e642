// Package main is the entrypoint for the Builder Stack app server.
package main

import (
	"context"
	"log/slog"
	"net/http"
	"net/url"
	"os"
	"regexp"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"github.com/builderstack/appserver/internal/cache"
	"github.com/builderstack/appserver/internal/config"
	"github.com/builderstack/appserver/internal/handler"
	"github.com/builderstack/appserver/internal/lakebase"
	"github.com/builderstack/appserver/internal/metrics"
	"github.com/builderstack/appserver/internal/middleware"
	"github.com/builderstack/appserver/internal/server"
	"github.com/builderstack/appserver/internal/service"
	"github.com/builderstack/appserver/internal/workspace"
)

// startupTimeout bounds connecting to optional dependencies.
const startupTimeout = 15 * time.Second

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger := initLogger(cfg)

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	recorder := metrics.NewPrometheus(registry)

	ctx, cancel := context.WithTimeout(context.Background(), startupTimeout)
	deps, err := connectDependencies(ctx, cfg, logger)
	cancel()
	if err != nil {
		os.Exit(1)
	}

	serviceOpts := []service.InstanceServiceOption{service.WithRecorder(recorder)}
	if deps.cache != nil && cfg.CacheEnabled() {
		serviceOpts = append(serviceOpts, service.WithCache(deps.cache, cfg.InstanceCacheTTL))
	}
	instanceService := service.NewInstanceService(workspace.NewClient(), cfg.InstanceListLimit, logger, serviceOpts...)

	staticHandler, err := handler.NewStaticHandler(cfg.StaticDir, logger)
	if err != nil {
		logger.Error("failed to prepare static directory", "error", err, "dir", cfg.StaticDir)
		deps.close()
		os.Exit(1)
	}

	r := setupRouter(routes{
		api:       handler.New(logger),
		health:    handler.NewHealthHandler(deps.lakebaseChecker(), deps.cacheChecker()),
		instances: handler.NewInstanceHandler(instanceService),
		static:    staticHandler,
		metrics:   handler.NewMetricsHandler(registry),
	}, cfg, recorder, logger)

	srv := server.New(r, server.Options{
		Port:            cfg.AppPort,
		ReadTimeout:     cfg.ReadTimeout,
		WriteTimeout:    cfg.WriteTimeout,
		ShutdownTimeout: cfg.ShutdownTimeout,
	}, logger)
	deps.registerShutdown(srv)

	logger.Info("starting server",
		"port", cfg.AppPort,
		"env", cfg.AppEnv,
		"static_dir", cfg.StaticDir,
		"instance_list_limit", cfg.InstanceListLimit,
		"instance_cache_ttl", cfg.InstanceCacheTTL,
	)

	if err := srv.Run(context.Background()); err != nil {
		logger.Error("server error", "error", err)
		os.Exit(1)
	}
}

// dependencies holds the optional backing services.
type dependencies struct {
	cache    *cache.Cache
	lakebase *lakebase.DB
}

// lakebaseChecker avoids handing a typed nil to the health handler.
func (d dependencies) lakebaseChecker() handler.HealthChecker {
	if d.lakebase == nil {
		return nil
	}
	return d.lakebase
}

func (d dependencies) cacheChecker() handler.HealthChecker {
	if d.cache == nil {
		return nil
	}
	return d.cache
}

// registerShutdown closes the dependencies after the HTTP server stops.
func (d dependencies) registerShutdown(srv *server.Server) {
	if d.cache != nil {
		srv.OnShutdown("redis", func(context.Context) error { return d.cache.Close() })
	}
	if d.lakebase != nil {
		srv.OnShutdown("lakebase", func(context.Context) error {
			d.lakebase.Close()
			return nil
		})
	}
}

func (d dependencies) close() {
	if d.lakebase != nil {
		d.lakebase.Close()
	}
	if d.cache != nil {
		_ = d.cache.Close()
	}
}

// connectDependencies connects to the optional Redis and Lakebase services.
// Errors are logged before returning and nothing is left open on failure.
func connectDependencies(ctx context.Context, cfg *config.Config, logger *slog.Logger) (dependencies, error) {
	var deps dependencies

	if cfg.RedisURL != "" {
		c, err := cache.New(ctx, cfg.RedisURL)
		if err != nil {
			logger.Error(
				"failed to connect to Redis",
				slog.String("error", sanitizeError(err, cfg.RedisURL)),
				slog.String("redis_url", redactURL(cfg.RedisURL)),
			)
			return dependencies{}, err
		}
		deps.cache = c
		logger.Info("connected to Redis")
	}

	if cfg.LakebaseDatabaseURL != "" {
		db, err := lakebase.New(ctx, cfg.LakebaseDatabaseURL)
		if err != nil {
			logger.Error(
				"failed to connect to Lakebase",
				slog.String("error", sanitizeError(err, cfg.LakebaseDatabaseURL)),
				slog.String("database_url", redactURL(cfg.LakebaseDatabaseURL)),
			)
			deps.close()
			return dependencies{}, err
		}
		deps.lakebase = db

		version, err := db.ServerVersion(ctx)
		if err != nil {
			logger.Warn("failed to read Lakebase server version", slog.String("error", err.Error()))
		}
		logger.Info("connected to Lakebase", slog.String("server_version", version))
	}

	return deps, nil
}

// initLogger initializes the slog logger based on configuration.
func initLogger(cfg *config.Config) *slog.Logger {
	var h slog.Handler

	opts := &slog.HandlerOptions{
		Level: parseLogLevel(cfg.LogLevel),
	}

	if cfg.LogFormat == "json" {
		h = slog.NewJSONHandler(os.Stdout, opts)
	} else {
		h = slog.NewTextHandler(os.Stdout, opts)
	}

	logger := slog.New(h)
	slog.SetDefault(logger)

	return logger
}

// parseLogLevel converts string log level to slog.Level.
func parseLogLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// routes groups the handlers mounted by setupRouter.
type routes struct {
	api       *handler.Handler
	health    *handler.HealthHandler
	instances *handler.InstanceHandler
	static    http.Handler
	metrics   http.Handler
}

// setupRouter configures the chi router with all routes and middleware.
// API routes take precedence; everything else goes to the static handler.
func setupRouter(h routes, cfg *config.Config, recorder metrics.Recorder, logger *slog.Logger) *chi.Mux {
	r := chi.NewRouter()

	// Global middleware
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.RequestID)
	r.Use(middleware.Logger(logger))
	r.Use(middleware.Recoverer(logger))
	r.Use(middleware.Metrics(recorder))
	r.Use(middleware.Security(middleware.SecurityConfig{
		IsDevelopment: cfg.IsDevelopment(),
		APIPrefix:     "/api/",
	}))
	r.Use(middleware.CORS(cfg.GetCORSAllowedOrigins()))

	r.Route("/api", func(r chi.Router) {
		r.Get("/user-info", h.api.UserInfo)
		r.Get("/hello", h.api.Hello)
		r.Get("/health", h.health.Health)
		r.Get("/ready", h.health.Ready)
		r.Get("/code-sample", h.api.CodeSample)
		r.Get("/lakebase-instance-info", h.instances.List)

		// Unknown API paths fall through to the frontend like any other path.
		r.Method(http.MethodGet, "/*", h.static)
		r.Method(http.MethodHead, "/*", h.static)
	})

	r.Handle("/metrics", h.metrics)

	// Frontend assets and client-side routes (lowest priority)
	r.Method(http.MethodGet, "/*", h.static)
	r.Method(http.MethodHead, "/*", h.static)

	r.NotFound(h.api.NotFound)
	r.MethodNotAllowed(h.api.MethodNotAllowed)

	return r
}

var passwordPattern = regexp.MustCompile(`(?i)password=[^\s]+`)

func redactURL(raw string) string {
	if raw == "" {
		return ""
	}

	parsed, err := url.Parse(raw)
	if err != nil {
		return "[redacted]"
	}

	if parsed.User != nil {
		username := parsed.User.Username()
		if username == "" {
			parsed.User = url.User("redacted")
		} else {
			parsed.User = url.User(username)
		}
	}

	q := parsed.Query()
	if q.Has("password") {
		q.Set("password", "redacted")
		parsed.RawQuery = q.Encode()
	}

	return parsed.String()
}

func sanitizeError(err error, secrets ...string) string {
	if err == nil {
		return ""
	}

	msg := err.Error()
	for _, secret := range secrets {
		if secret == "" {
			continue
		}
		redacted := redactURL(secret)
		if redacted == "" {
			redacted = "[redacted]"
		}
		msg = strings.ReplaceAll(msg, secret, redacted)
	}

	return passwordPattern.ReplaceAllString(msg, "password=redacted")
}
