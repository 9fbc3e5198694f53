package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	httpctx "github.com/dtroode/vidtube-server/internal/api/http/context"
	"github.com/dtroode/vidtube-server/internal/api/http/handler"
	"github.com/dtroode/vidtube-server/internal/api/http/middleware"
	"github.com/dtroode/vidtube-server/internal/api/http/router"
	httpServer "github.com/dtroode/vidtube-server/internal/api/http/server"
	"github.com/dtroode/vidtube-server/internal/config"
	"github.com/dtroode/vidtube-server/internal/logger"
	"github.com/dtroode/vidtube-server/internal/metrics"
	"github.com/dtroode/vidtube-server/internal/model"
	"github.com/dtroode/vidtube-server/internal/repository/mongodb"
	"github.com/dtroode/vidtube-server/internal/repository/postgres"
	"github.com/dtroode/vidtube-server/internal/server"
	"github.com/dtroode/vidtube-server/internal/service"
	storage "github.com/dtroode/vidtube-server/internal/storage/minio"
	"github.com/dtroode/vidtube-server/internal/token"
)

var (
	buildVersion = "N/A" // set by ldflags
	buildDate    = "N/A" // set by ldflags
	buildCommit  = "N/A" // set by ldflags
)

// stores bundles the persistence backend selected by DATABASE_DRIVER.
type stores struct {
	users         model.UserStore
	subscriptions model.SubscriptionStore
	videos        model.VideoStore
	pinger        model.Pinger
	close         func() error
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT, os.Interrupt)
	defer stop()

	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		log.Printf("failed to load .env file: %v", err)
	}

	cfg, err := config.NewConfig()
	if err != nil {
		log.Fatalf("failed to parse config: %v", err)
	}
	logger := logger.New(cfg.LogLevel, cfg.LogFormat)

	if cfg.JWT.AccessSecret == "" || cfg.JWT.RefreshSecret == "" {
		logger.Warn("JWT secrets are not configured, token issuance will fail")
	}

	st, err := openStores(ctx, cfg.Database)
	if err != nil {
		logger.Fatal("failed to initialize storage", "driver", cfg.Database.Driver, "error", err)
	}
	defer func() {
		if err := st.close(); err != nil {
			logger.Error("failed to close storage", "error", err)
		}
	}()

	minioClient, err := minio.New(cfg.Storage.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.Storage.AccessKey, cfg.Storage.SecretKey, ""),
		Secure: cfg.Storage.UseSSL,
	})
	if err != nil {
		logger.Fatal("failed to create minio client", "error", err)
	}
	storageClient, err := storage.NewClient(ctx, minioClient, cfg.Storage.Bucket, cfg.Storage.PublicURL)
	if err != nil {
		logger.Fatal("failed to initialize storage client", "error", err)
	}

	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	collector := metrics.NewCollector(registry)

	tokenManager := token.NewJWT(token.Params{
		AccessSecret:  cfg.JWT.AccessSecret,
		AccessTTL:     cfg.JWT.AccessTTL,
		RefreshSecret: cfg.JWT.RefreshSecret,
		RefreshTTL:    cfg.JWT.RefreshTTL,
	})
	tokenService := service.NewTokenService(tokenManager, st.users, cfg.JWT.VerifyTimeout, logger)
	media := service.NewMedia(storageClient, service.MediaParams{
		Timeout:      cfg.Upload.Timeout,
		MaxDimension: cfg.Upload.ImageMaxDimension,
	}, collector, logger)

	authService := service.NewAuth(st.users, service.NewPasswordHasher(cfg.BcryptCost), tokenService, media, collector, logger)
	accountService := service.NewAccount(st.users, media, logger)
	profileService := service.NewProfile(st.users, st.subscriptions, st.videos, logger)

	rateLimiter := middleware.NewRateLimiter(middleware.PerMinute(cfg.RateLimit.AuthPerMinute, cfg.RateLimit.Burst), logger)
	defer rateLimiter.Stop()

	ctxMgr := httpctx.NewManager()
	stager := handler.NewFileStager(cfg.Upload.TempDir, cfg.Upload.MaxSize)

	r := router.New(
		handler.NewAuth(authService, ctxMgr, stager, handler.NewCookies(cfg.Cookie.Secure, cfg.Cookie.MaxAge), cfg.HTTP.JSONBodyLimit, logger),
		handler.NewUser(accountService, profileService, ctxMgr, stager, cfg.HTTP.JSONBodyLimit, logger),
		handler.NewHealth(st.pinger, logger),
		middleware.NewAuthenticate(tokenService, ctxMgr, logger),
		rateLimiter,
		collector,
		metrics.Handler(registry),
		cfg.HTTP.CORSOrigin,
		logger,
	)

	srv := httpServer.NewHTTPServer(r.Register(), fmt.Sprintf(":%s", cfg.HTTP.Port))

	var sl model.SecurityLayer
	if cfg.HTTP.EnableHTTPS {
		sl = server.NewTLSListener(cfg.HTTP.CertFileName, cfg.HTTP.PrivateKeyFileName)
	} else {
		sl = server.NewPlainListener()
	}

	var wg sync.WaitGroup
	wg.Add(1)
	go func(s model.Server) {
		defer wg.Done()
		logger.Info("Starting server on", "address", s.Address(), "https", cfg.HTTP.EnableHTTPS)
		if err := s.Start(sl); err != nil {
			logger.Error("failed to start server", "error", err)
			stop()
		}
	}(srv)

	logAppVersion()

	<-ctx.Done()
	logger.Info("received interruption signal, shutting down")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := srv.Stop(shutdownCtx); err != nil {
		logger.Error("error during server shutdown", "error", err, "address", srv.Address())
	}

	wg.Wait()
	logger.Info("shutdown complete")
}

func openStores(ctx context.Context, cfg config.Database) (stores, error) {
	switch cfg.Driver {
	case "mongo":
		conn, err := mongodb.NewConnection(ctx, cfg.DSN, cfg.Name)
		if err != nil {
			return stores{}, err
		}
		return stores{
			users:         mongodb.NewUserRepository(conn),
			subscriptions: mongodb.NewSubscriptionRepository(conn),
			videos:        mongodb.NewVideoRepository(conn),
			pinger:        conn,
			close:         conn.Close,
		}, nil
	case "postgres":
		conn, err := postgres.NewConnection(ctx, cfg.DSN)
		if err != nil {
			return stores{}, err
		}
		return stores{
			users:         postgres.NewUserRepository(conn),
			subscriptions: postgres.NewSubscriptionRepository(conn),
			videos:        postgres.NewVideoRepository(conn),
			pinger:        conn,
			close:         conn.Close,
		}, nil
	default:
		return stores{}, fmt.Errorf("%w: unknown database driver %q", model.ErrConfig, cfg.Driver)
	}
}

func logAppVersion() {
	tmpl := `
Build version: %s
Build date: %s
Build commit: %s
`

	fmt.Printf(tmpl, buildVersion, buildDate, buildCommit)
}
