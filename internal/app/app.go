package app

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/jwhur/startpage/internal/config"
	"github.com/jwhur/startpage/internal/httpserver"
	"github.com/jwhur/startpage/internal/httpserver/deps"
	"github.com/jwhur/startpage/internal/logger"
	"github.com/jwhur/startpage/internal/redis"
	"github.com/jwhur/startpage/internal/scheduler"
	"github.com/jwhur/startpage/internal/store"
	"github.com/jwhur/startpage/internal/store/redisclicks"
	"github.com/jwhur/startpage/internal/version"
)

type App struct {
	cfg         *config.Config
	logger      logger.Logger
	server      *httpserver.Server
	redisClient *goredis.Client
	links       *store.LinkStore
	clicks      *redisclicks.Store
	reloader    *scheduler.RCReloader
	janitor     *scheduler.BackupJanitor
}

func New() (*App, error) {
	cfg := config.Load()

	loggerClient := logger.New(cfg.LogLevel, cfg.PrettyLog)

	if err := os.MkdirAll(cfg.DataDir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create data dir: %w", err)
	}

	// Redis is optional: without an address, click counters live only
	// in memory and reset on every file reload.
	var redisClient *goredis.Client
	var clicks *redisclicks.Store
	if cfg.RedisAddr != "" {
		loggerClient.Infof("Connecting to Redis at %s", cfg.RedisAddr)
		client, err := redis.New(redis.ConnectOptions{
			Addr:           cfg.RedisAddr,
			User:           cfg.RedisUser,
			Password:       cfg.RedisPassword,
			DB:             cfg.RedisDB,
			DialTimeout:    cfg.RedisDT,
			ReadTimeout:    cfg.RedisRT,
			WriteTimeout:   cfg.RedisWT,
			PoolSize:       cfg.RedisPoolSize,
			ConnectTimeout: cfg.RedisConnectTimeout,
			RetryInterval:  cfg.RedisRetryInterval,
			MaxWait:        cfg.RedisMaxWait,
			PingTimeout:    cfg.RedisPingTimeout,
			WarnThreshold:  cfg.RedisWarnThreshold,
		}, loggerClient)
		if err != nil {
			return nil, fmt.Errorf("failed to connect to redis: %w", err)
		}
		redisClient = client
		clicks = redisclicks.NewStore(client)
		loggerClient.Info("Redis initialized successfully")
	} else {
		loggerClient.Info("Redis not configured, click counters are memory-only")
	}

	links := store.NewLinkStore()
	rcFile := store.NewRCFile(cfg.RCFile)

	memos, err := store.OpenMemoStore(filepath.Join(cfg.DataDir, "memos.json"))
	if err != nil {
		return nil, fmt.Errorf("failed to open memo store: %w", err)
	}
	readLater, err := store.OpenReadLaterStore(filepath.Join(cfg.DataDir, "readlater.json"))
	if err != nil {
		return nil, fmt.Errorf("failed to open read-later store: %w", err)
	}

	reloadTrigger := make(chan struct{}, 1)

	reloader := scheduler.NewRCReloader(
		rcFile,
		links,
		loggerClient,
		cfg.ReloadInterval,
		cfg.WatchRCFile,
		reloadTrigger,
	)

	janitor := scheduler.NewBackupJanitor(
		rcFile,
		loggerClient,
		cfg.BackupSweepInterval,
		cfg.BackupRetention,
	)

	d := deps.Deps{
		Logger:             loggerClient,
		StartTime:          time.Now(),
		Version:            version.Version,
		Commit:             version.Commit,
		BuildDate:          version.BuildDate,
		GoVersion:          version.GoVersion,
		TimeNow:            time.Now,
		Links:              links,
		RCFile:             rcFile,
		Memos:              memos,
		ReadLater:          readLater,
		Clicks:             clicks,
		KeepSpecialFolders: cfg.KeepSpecialFolders,
		MaxImportBytes:     cfg.MaxImportBytes,
		ReloadTrigger:      reloadTrigger,
	}

	server := httpserver.New(cfg, loggerClient, d)

	return &App{
		cfg:         cfg,
		logger:      loggerClient,
		server:      server,
		redisClient: redisClient,
		links:       links,
		clicks:      clicks,
		reloader:    reloader,
		janitor:     janitor,
	}, nil
}

func (a *App) Run() error {
	a.logger.Infof("Starting startpage v%s on %s", version.Version, a.cfg.ListenPort)
	a.logger.Infof("startpage %s (commit=%s, built=%s, go=%s)",
		version.Version, version.Commit, version.BuildDate, version.GoVersion)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Load the link file and start the periodic refresh. A failure
	// here is fatal: an unreadable file means nothing to serve.
	if err := a.reloader.Start(ctx); err != nil {
		return fmt.Errorf("failed to start rc reloader: %w", err)
	}
	a.logger.Info("rc reloader started",
		logger.Duration("interval", a.cfg.ReloadInterval),
		logger.Bool("watch", a.cfg.WatchRCFile))

	a.hydrateClicks(ctx)

	if err := a.janitor.Start(ctx); err != nil {
		return fmt.Errorf("failed to start backup janitor: %w", err)
	}
	a.logger.Info("backup janitor started",
		logger.Duration("interval", a.cfg.BackupSweepInterval))

	errCh := make(chan error, 1)
	go func() {
		if err := a.server.Start(); err != nil {
			errCh <- fmt.Errorf("http server error: %w", err)
		}
	}()

	select {
	case <-ctx.Done():
		a.logger.Info("Shutting down gracefully...")
	case err := <-errCh:
		return err
	}

	a.reloader.Stop()
	a.janitor.Stop()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), a.cfg.ShutdownTimeout)
	defer cancel()
	if err := a.server.Stop(shutdownCtx); err != nil {
		return fmt.Errorf("failed to stop server: %w", err)
	}

	if a.redisClient != nil {
		if err := a.redisClient.Close(); err != nil {
			a.logger.Warnf("failed to close redis: %v", err)
		} else {
			a.logger.Info("Redis closed cleanly")
		}
	}

	a.logger.Info("startpage stopped cleanly")
	return nil
}

// hydrateClicks restores click counters from Redis; link ids change on
// every reload, so the counters are keyed by url.
func (a *App) hydrateClicks(ctx context.Context) {
	if a.clicks == nil {
		return
	}

	all := a.links.All()
	urls := make([]string, len(all))
	for i, link := range all {
		urls[i] = strings.ToLower(link.URL)
	}

	readCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	counts, err := a.clicks.Counts(readCtx, urls)
	if err != nil {
		a.logger.Warn("failed to restore click counters from redis",
			logger.Error(err))
		return
	}
	a.links.HydrateClicks(counts)
	a.logger.Info("click counters restored from redis",
		logger.Int("links", len(urls)))
}
