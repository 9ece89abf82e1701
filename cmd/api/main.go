package main

import (
	"context"
	"net/http"

	"github.com/sirupsen/logrus"
	"github.com/vfg2006/adsync-api/infrastructure/database/postgres"
	"github.com/vfg2006/adsync-api/infrastructure/integrator/googleads"
	"github.com/vfg2006/adsync-api/infrastructure/integrator/googleads/adsclient"
	"github.com/vfg2006/adsync-api/infrastructure/lock"
	"github.com/vfg2006/adsync-api/infrastructure/migration"
	"github.com/vfg2006/adsync-api/infrastructure/repository"
	"github.com/vfg2006/adsync-api/internal/api"
	"github.com/vfg2006/adsync-api/internal/config"
	"github.com/vfg2006/adsync-api/internal/scheduler"
	"github.com/vfg2006/adsync-api/internal/usecases/auditing"
	"github.com/vfg2006/adsync-api/internal/usecases/authenticating"
	"github.com/vfg2006/adsync-api/internal/usecases/caching"
	"github.com/vfg2006/adsync-api/internal/usecases/credentialing"
	"github.com/vfg2006/adsync-api/internal/usecases/integration"
	"github.com/vfg2006/adsync-api/internal/usecases/ownership"
	"github.com/vfg2006/adsync-api/internal/usecases/snapshotting"
	"github.com/vfg2006/adsync-api/pkg/crypto"
	"github.com/vfg2006/adsync-api/pkg/log"
)

func main() {
	cfg, err := config.NewConfig()
	if err != nil {
		logrus.Fatal(err)
	}

	level := log.Configure(cfg.App.LogLevel, cfg.App.Env)
	logrus.WithField("level", level.String()).Info("main: log level configured")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	pgConn := pgconn(ctx, cfg.Database)
	defer pgConn.Close()

	if cfg.Database.RunMigrations {
		if err := pgConn.RunMigrations(migration.Scripts, migration.Dir); err != nil {
			logrus.WithError(err).Fatal("main: failed to run migrations")
		}
	}

	var cipher *crypto.TokenCipher
	if cfg.App.TokenEncryptionKey != "" {
		cipher, err = crypto.NewTokenCipher(cfg.App.TokenEncryptionKey)
		if err != nil {
			logrus.WithError(err).Fatal("main: invalid token encryption key")
		}
	} else {
		logrus.Warn("main: TOKEN_ENCRYPTION_KEY not set, tokens stored in plain text")
	}

	connRepo := repository.NewConnectionRepository(pgConn, cipher)
	cacheRepo := repository.NewCacheRepository(pgConn)
	snapshotRepo := repository.NewSnapshotRepository(pgConn)
	auditRepo := repository.NewAuditRepository(pgConn)

	locker := refreshLocker(ctx, cfg.Redis)

	credentials := credentialing.NewService(cfg, googleads.NewOAuthProvider(cfg), connRepo, locker)
	guard := ownership.NewService(connRepo)
	cache := caching.NewService(cfg, cacheRepo)
	snapshots := snapshotting.NewService(cfg, snapshotRepo)
	audit := auditing.NewService(cfg, auditRepo)

	adsClient := adsclient.NewClient(cfg, &http.Client{Timeout: cfg.GoogleAds.RequestTimeout})
	ads := googleads.New(adsClient)

	integrator := integration.NewService(credentials, guard, cache, snapshots, audit, ads, connRepo)
	authenticator := authenticating.NewService(cfg)

	maintenance := scheduler.NewMaintenanceService(cfg, cache, snapshots, audit)
	if err := maintenance.Start(ctx); err != nil {
		logrus.WithError(err).Error("main: failed to start maintenance scheduler")
	}

	server, err := api.New(cfg, integrator, authenticator, maintenance)
	if err != nil {
		logrus.Fatal(err)
	}

	if err := server.Run(ctx); err != nil {
		logrus.Error(err)
	}
}

func pgconn(ctx context.Context, dbConfig config.Database) *postgres.Connection {
	conn, err := postgres.NewConnection(ctx, dbConfig)
	if err != nil {
		logrus.WithError(err).Fatal("main: failed to connect to PostgreSQL")
	}

	if err := conn.Ping(ctx); err != nil {
		logrus.WithError(err).Fatal("main: failed to ping PostgreSQL")
	}

	logrus.Info("main: PostgreSQL connection established")
	return conn
}

// refreshLocker devolve nil sem Redis; o refresh segue sem serialização entre instâncias
func refreshLocker(ctx context.Context, redisConfig config.Redis) credentialing.Locker {
	if redisConfig.URL == "" {
		logrus.Info("main: REDIS_URL not set, token refresh lock disabled")
		return nil
	}

	client, err := lock.Connect(ctx, redisConfig.URL)
	if err != nil {
		logrus.WithError(err).Warn("main: redis unavailable, token refresh lock disabled")
		return nil
	}

	return lock.NewRedisLocker(client, redisConfig.LockTimeout)
}
