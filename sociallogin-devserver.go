package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	jwt "github.com/golang-jwt/jwt/v5"
	"github.com/ilyakaznacheev/cleanenv"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"
	socialhttp "github.com/open-rails/sociallogin/adapters/http"
	"github.com/open-rails/sociallogin/core"
	"github.com/open-rails/sociallogin/logger"
	oidckit "github.com/open-rails/sociallogin/oidc"
	memorystore "github.com/open-rails/sociallogin/storage/memory"
	pgstore "github.com/open-rails/sociallogin/storage/postgres"
	redisstore "github.com/open-rails/sociallogin/storage/redis"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

type config struct {
	ListenAddr   string `env:"SOCIALLOGIN_LISTEN_ADDR" env-default:":8080"`
	Store        string `env:"SOCIALLOGIN_STORE" env-default:"memory"`
	Namespace    string `env:"SOCIALLOGIN_NAMESPACE" env-default:"sociallogin"`
	BasePath     string `env:"SOCIALLOGIN_BASE_PATH" env-default:"/apps/sociallogin"`
	RedisURL     string `env:"REDIS_URL"`
	DBURL        string `env:"DB_URL"`
	JWTSecret    string `env:"SOCIALLOGIN_JWT_SECRET"`
	JWKSURL      string `env:"SOCIALLOGIN_JWKS_URL"`
	Issuer       string `env:"SOCIALLOGIN_ISSUER"`
	Audience     string `env:"SOCIALLOGIN_AUDIENCE" env-default:"sociallogin"`
	RequestToken string `env:"SOCIALLOGIN_REQUEST_TOKEN_SECRET"`
	DevMode      bool   `env:"SOCIALLOGIN_DEV_MODE" env-default:"false"`
	LogEnv       string `env:"LOG_ENV" env-default:"dev"`
	LogLevel     string `env:"LOG_LEVEL" env-default:"info"`
}

func main() {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		fmt.Fprintln(os.Stderr, "load .env:", err)
	}
	var cfg config
	if err := cleanenv.ReadEnv(&cfg); err != nil {
		fatal(fmt.Errorf("read config: %w", err))
	}
	if err := cfg.validate(); err != nil {
		fatal(err)
	}
	logger.Init(logger.Config{Env: cfg.LogEnv, Level: cfg.LogLevel, ServiceName: "sociallogin-devserver"})
	defer func() { _ = logger.Sync() }()

	cmd := "serve"
	if len(os.Args) > 1 && strings.TrimSpace(os.Args[1]) != "" {
		cmd = strings.TrimSpace(os.Args[1])
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	switch cmd {
	case "serve":
		fatal(runServe(ctx, cfg))
	case "migrate":
		fatal(runMigrate(ctx, cfg))
	default:
		fatal(fmt.Errorf("unknown command %q (supported: serve, migrate)", cmd))
	}
}

func (c config) validate() error {
	switch c.Store {
	case "memory":
	case "redis":
		if c.RedisURL == "" {
			return errors.New("REDIS_URL is required when SOCIALLOGIN_STORE=redis")
		}
	case "postgres":
		if c.DBURL == "" {
			return errors.New("DB_URL is required when SOCIALLOGIN_STORE=postgres")
		}
	default:
		return fmt.Errorf("unknown SOCIALLOGIN_STORE %q (supported: memory, redis, postgres)", c.Store)
	}
	if c.JWTSecret == "" && c.JWKSURL == "" {
		return errors.New("one of SOCIALLOGIN_JWT_SECRET or SOCIALLOGIN_JWKS_URL is required")
	}
	if c.DevMode && c.JWTSecret == "" {
		return errors.New("SOCIALLOGIN_DEV_MODE needs SOCIALLOGIN_JWT_SECRET to mint tokens")
	}
	return nil
}

type stores struct {
	settings core.SettingsStore
	conns    core.ConnectionStore
	ephem    core.EphemeralStore
	mode     core.EphemeralMode
	close    func()
}

func openStores(ctx context.Context, cfg config) (*stores, error) {
	switch cfg.Store {
	case "redis":
		opts, err := redis.ParseURL(cfg.RedisURL)
		if err != nil {
			return nil, fmt.Errorf("parse REDIS_URL: %w", err)
		}
		rdb := redis.NewClient(opts)
		if err := rdb.Ping(ctx).Err(); err != nil {
			return nil, fmt.Errorf("connect redis: %w", err)
		}
		return &stores{
			settings: redisstore.NewSettings(rdb),
			conns:    redisstore.NewConnections(rdb),
			ephem:    redisstore.NewKV(rdb),
			mode:     core.EphemeralRedis,
			close:    func() { _ = rdb.Close() },
		}, nil
	case "postgres":
		pg, err := pgxpool.New(ctx, cfg.DBURL)
		if err != nil {
			return nil, fmt.Errorf("connect postgres: %w", err)
		}
		if err := pgstore.Migrate(ctx, pg); err != nil {
			pg.Close()
			return nil, err
		}
		return &stores{
			settings: pgstore.NewSettings(pg),
			conns:    pgstore.NewConnections(pg),
			ephem:    memorystore.NewKV(),
			mode:     core.EphemeralMemory,
			close:    pg.Close,
		}, nil
	}
	return &stores{
		settings: memorystore.NewSettings(),
		conns:    memorystore.NewConnections(),
		ephem:    memorystore.NewKV(),
		mode:     core.EphemeralMemory,
		close:    func() {},
	}, nil
}

func runServe(ctx context.Context, cfg config) error {
	log := logger.Named("devserver")

	st, err := openStores(ctx, cfg)
	if err != nil {
		return err
	}
	defer st.close()

	svc, err := core.NewService(core.Config{
		Namespace:          cfg.Namespace,
		BasePath:           cfg.BasePath,
		RequestTokenSecret: []byte(cfg.RequestToken),
	}, st.settings, st.conns)
	if err != nil {
		return err
	}
	svc.WithEphemeralStore(st.ephem, st.mode).WithEventLogger(core.NewLogEventLogger())

	if mgr, err := oidckit.Load(ctx, svc); err != nil {
		log.Warn("load custom oidc providers", logger.Err(err))
	} else {
		log.Info("custom oidc providers", zap.Strings("titles", mgr.Titles()))
	}

	accept := socialhttp.AcceptConfig{Issuer: cfg.Issuer, Audience: cfg.Audience}
	var verifier socialhttp.Verifier
	if cfg.JWKSURL != "" {
		if verifier, err = socialhttp.NewJWKSVerifier(ctx, cfg.JWKSURL, accept); err != nil {
			return err
		}
	} else {
		verifier = socialhttp.NewHMACVerifier([]byte(cfg.JWTSecret), accept)
	}

	metrics, err := socialhttp.NewMetrics(prometheus.DefaultRegisterer)
	if err != nil {
		return err
	}
	hs := socialhttp.NewService(svc, verifier).WithMetrics(metrics)

	mux := http.NewServeMux()
	mux.HandleFunc("GET /healthz", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]any{"status": "ok", "store": cfg.Store})
	})
	mux.Handle("GET /metrics", promhttp.Handler())
	mux.Handle(svc.Config().BasePath+"/", hs.Handler())
	if cfg.DevMode {
		mux.Handle("POST /dev/mint", devMintHandler(cfg))
	}

	server := &http.Server{
		Addr:              cfg.ListenAddr,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		_ = server.Shutdown(shutdownCtx)
	}()
	log.Info("listening",
		zap.String("addr", cfg.ListenAddr),
		zap.String("store", cfg.Store),
		zap.String("spent_tokens", string(svc.EphemeralMode())))
	return server.ListenAndServe()
}

func runMigrate(ctx context.Context, cfg config) error {
	if cfg.DBURL == "" {
		return errors.New("DB_URL is required for migrate")
	}
	pg, err := pgxpool.New(ctx, cfg.DBURL)
	if err != nil {
		return fmt.Errorf("connect postgres: %w", err)
	}
	defer pg.Close()
	return pgstore.Migrate(ctx, pg)
}

type mintRequest struct {
	Sub              string   `json:"sub"`
	Roles            []string `json:"roles"`
	ExpiresInSeconds int64    `json:"expires_in_seconds"`
}

// devMintHandler signs HS256 access tokens the configured verifier accepts,
// for driving the settings pages by hand.
func devMintHandler(cfg config) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req mintRequest
		dec := json.NewDecoder(r.Body)
		dec.DisallowUnknownFields()
		if err := dec.Decode(&req); err != nil || strings.TrimSpace(req.Sub) == "" {
			writeJSON(w, http.StatusBadRequest, map[string]any{"error": "invalid_request"})
			return
		}
		if req.ExpiresInSeconds <= 0 {
			req.ExpiresInSeconds = 3600
		}
		now := time.Now()
		claims := jwt.MapClaims{
			"sub":   strings.TrimSpace(req.Sub),
			"iat":   now.Unix(),
			"exp":   now.Add(time.Duration(req.ExpiresInSeconds) * time.Second).Unix(),
			"roles": req.Roles,
		}
		if cfg.Issuer != "" {
			claims["iss"] = cfg.Issuer
		}
		if cfg.Audience != "" {
			claims["aud"] = cfg.Audience
		}
		tok, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(cfg.JWTSecret))
		if err != nil {
			writeJSON(w, http.StatusInternalServerError, map[string]any{"error": "failed to sign token"})
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"token": tok, "token_type": "Bearer"})
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func fatal(err error) {
	if err == nil || errors.Is(err, http.ErrServerClosed) {
		os.Exit(0)
	}
	logger.L().Error("sociallogin-devserver", logger.Err(err))
	fmt.Fprintln(os.Stderr, err.Error())
	os.Exit(1)
}
