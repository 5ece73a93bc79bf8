package main

import (
	"context"
	"errors"
	"flag"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"sync/atomic"
	"syscall"
	"time"

	"github.com/nguyenkhoi/auth-service/internal/cache"
	"github.com/nguyenkhoi/auth-service/internal/config"
	"github.com/nguyenkhoi/auth-service/internal/keys"
	"github.com/nguyenkhoi/auth-service/internal/oauth"
	"github.com/nguyenkhoi/auth-service/internal/pkg/crypt"
	"github.com/nguyenkhoi/auth-service/internal/service"
	"github.com/nguyenkhoi/auth-service/internal/storage/postgres"
	transport "github.com/nguyenkhoi/auth-service/internal/transport/http"
)

// Константы для определения окружения.
const (
	envLocal = "local"
	envDev   = "dev"
	envProd  = "prod"
)

const janitorPeriod = 30 * time.Minute

func main() {
	var configPath string
	flag.StringVar(&configPath, "config", "", "path to config file")
	flag.Parse()

	cfg := config.MustLoad(configPath)

	log := setupLogger(cfg.Env)
	slog.SetDefault(log)
	log.Info("starting application", "env", cfg.Env)

	// Корневой контекст по сигналам.
	rootCtx, rootCancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)

	// Подключение к БД c таймаутом.
	dbCtx, dbCancel := context.WithTimeout(rootCtx, 10*time.Second)
	str, err := postgres.New(dbCtx, cfg.DB.DatabaseURL)
	dbCancel()
	if err != nil {
		log.Error("postgres_connect_failed", slog.String("err", err.Error()))
		rootCancel()
		os.Exit(1)
	}
	log.Info("postgres_connected")

	// Expiring-store для state/PKCE внешнего логина.
	states, err := cache.NewRedisStore(cfg.Redis.RedisURL, "")
	if err != nil {
		log.Error("redis_connect_failed", slog.String("err", err.Error()))
		rootCancel()
		str.Close()
		os.Exit(1)
	}
	log.Info("redis_connected")

	// Ключевой материал подписи.
	keyPair, err := keys.Load(cfg.Auth.PrivateKeyFile, cfg.Auth.KeyID)
	if err != nil {
		log.Error("keys_load_failed", slog.String("err", err.Error()))
		rootCancel()
		_ = states.Close()
		str.Close()
		os.Exit(1)
	}
	log.Info("keys_loaded", slog.String("kid", keyPair.KeyID))

	// Шифрование токенов провайдера на привязках (опционально).
	var cipher *crypt.Encryptor
	if cfg.OAuth.TokenCipherKey != "" {
		cipher, err = crypt.NewFromBase64(cfg.OAuth.TokenCipherKey)
		if err != nil {
			log.Error("token_cipher_init_failed", slog.String("err", err.Error()))
			rootCancel()
			_ = states.Close()
			str.Close()
			os.Exit(1)
		}
		log.Info("token_cipher_initialized")
	}

	// Сервис.
	provider := oauth.NewGoogleClient(cfg.OAuth)
	srvc := service.New(str, states, keyPair, provider, cipher, cfg.Auth, cfg.OAuth)
	log.Info("service_initialized")

	var ready int32 // 0 — not ready; 1 — ready

	mux := http.NewServeMux()
	mux.HandleFunc("/livez", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	mux.HandleFunc("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		if atomic.LoadInt32(&ready) == 1 {
			w.WriteHeader(http.StatusOK)
			_, _ = w.Write([]byte("ok"))
			return
		}
		http.Error(w, "not ready", http.StatusServiceUnavailable)
	})

	mux.Handle("/", transport.NewRouter(srvc, transport.Options{
		Logger:  log,
		Timeout: cfg.Timeouts.Service,
	}))

	httpAddr := cfg.HTTP.Addr()
	httpSrv := &http.Server{
		Addr:              httpAddr,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}

	// Фоновые джаниторы: просроченные refresh-токены, неактивные сессии,
	// истёкшие записи журнала отзыва.
	startJanitors(rootCtx, srvc, log, janitorPeriod)

	serveErrCh := make(chan error, 1)
	go func() {
		log.Info("http_listen_start", "addr", httpAddr)
		if err := httpSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErrCh <- err
		}
		close(serveErrCh)
	}()

	atomic.StoreInt32(&ready, 1)

	// Ожидание сигнала завершения или фатальной ошибки сервера.
	select {
	case <-rootCtx.Done():
		log.Info("shutdown_requested")
	case err := <-serveErrCh:
		if err != nil {
			log.Error("http_serve_failed", slog.String("err", err.Error()))
		}
	}

	atomic.StoreInt32(&ready, 0)

	// Graceful stop с таймаутом.
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	if err := httpSrv.Shutdown(shutdownCtx); err != nil {
		log.Warn("http_force_stop", slog.String("err", err.Error()))
	}

	// Явная очистка перед выходом.
	shutdownCancel()
	rootCancel()
	_ = states.Close()
	str.Close()

	log.Info("service_stopped")
	os.Exit(0)
}

// setupLogger настраивает slog по окружению.
func setupLogger(env string) *slog.Logger {
	var log *slog.Logger

	switch env {
	case envLocal:
		log = slog.New(
			slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}),
		)
	case envDev:
		log = slog.New(
			slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}),
		)
	case envProd:
		log = slog.New(
			slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}),
		)
	default:
		log = slog.New(
			slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}),
		)
	}

	return log
}

// startJanitors запускает фоновые задачи периодической очистки:
// удаление просроченных refresh-токенов, отзыв неактивных сессий
// и чистку истёкших записей журнала отзыва.
func startJanitors(ctx context.Context, svc *service.Service, log *slog.Logger, period time.Duration) {
	if period <= 0 {
		return
	}

	go func() {
		t := time.NewTicker(period)
		defer t.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-t.C:
				now := time.Now().UTC()

				if n, err := svc.SweepExpiredTokens(ctx, now); err != nil {
					log.Error("token_janitor_failed", slog.String("err", err.Error()))
				} else if n > 0 {
					log.Info("token_janitor_done", slog.Int64("deleted", n))
				}

				if n, err := svc.SweepInactiveSessions(ctx, now); err != nil {
					log.Error("session_janitor_failed", slog.String("err", err.Error()))
				} else if n > 0 {
					log.Info("session_janitor_done", slog.Int64("revoked", n))
				}

				if n, err := svc.SweepRevokedTokens(ctx, now); err != nil {
					log.Error("revocation_janitor_failed", slog.String("err", err.Error()))
				} else if n > 0 {
					log.Info("revocation_janitor_done", slog.Int64("deleted", n))
				}
			}
		}
	}()
}
