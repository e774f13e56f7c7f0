package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"example.com/property-listing/app/internal/config"
	"example.com/property-listing/app/internal/infra/cache"
	"example.com/property-listing/app/internal/infra/notify"
	"example.com/property-listing/app/internal/infra/persistence/sqldb"
	"example.com/property-listing/app/internal/infra/security"
	apihttp "example.com/property-listing/app/internal/interface/http"
	"example.com/property-listing/app/internal/logger"
	authuc "example.com/property-listing/app/internal/usecase/auth"
	messageuc "example.com/property-listing/app/internal/usecase/message"
	profileuc "example.com/property-listing/app/internal/usecase/profile"
	propertyuc "example.com/property-listing/app/internal/usecase/property"
	useruc "example.com/property-listing/app/internal/usecase/user"
	"example.com/property-listing/app/migrations"
)

func main() {
	cfg, err := config.Load(config.Options{})
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		os.Exit(1)
	}

	log, err := logger.New(cfg.Log.Level, cfg.Log.Format)
	if err != nil {
		fmt.Fprintf(os.Stderr, "logger: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = log.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, log); err != nil {
		log.Fatal("server stopped", zap.Error(err))
	}
}

func run(ctx context.Context, cfg *config.Config, log *zap.Logger) error {
	dialect, err := sqldb.ParseDialect(cfg.Database.Driver)
	if err != nil {
		return err
	}

	if cfg.Database.AutoMigrate {
		if err := sqldb.Migrate(ctx, dialect, cfg.Database.DSN, migrations.FS, string(dialect)); err != nil {
			return fmt.Errorf("migrate: %w", err)
		}
		log.Info("migrations applied", zap.String("driver", string(dialect)))
	}

	db, err := sqldb.Open(ctx, dialect, cfg.Database.DSN, sqldb.PoolConfig{
		MaxOpenConns:    cfg.Database.MaxOpenConns,
		MaxIdleConns:    cfg.Database.MaxIdleConns,
		ConnMaxLifetime: cfg.Database.ConnMaxLifetime,
	})
	if err != nil {
		return fmt.Errorf("database: %w", err)
	}
	defer db.Close()

	userRepo := sqldb.NewUserRepository(db, dialect)
	propertyRepo := sqldb.NewPropertyRepository(db, dialect)
	profileRepo := sqldb.NewProfileRepository(db, dialect)
	messageRepo := sqldb.NewMessageRepository(db, dialect)

	propertyOpts := []propertyuc.Option{propertyuc.WithLogger(log)}
	var revoker authuc.TokenRevoker = cache.NewMemoryRevoker()
	if cfg.Redis.Enabled {
		rdb, err := cache.NewRedis(ctx, cache.RedisConfig{
			Address:  cfg.Redis.Address,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err != nil {
			return fmt.Errorf("redis: %w", err)
		}
		defer rdb.Close()

		propertyOpts = append(propertyOpts, propertyuc.WithCache(cache.NewListingCache(rdb, cfg.Redis.ListingTTL)))
		revoker = cache.NewRedisRevoker(rdb)
	} else {
		log.Warn("redis disabled; token revocation is process-local and listings are not cached")
	}

	messageOpts := []messageuc.Option{messageuc.WithLogger(log)}
	if cfg.SMTP.Enabled {
		messageOpts = append(messageOpts, messageuc.WithNotifier(notify.NewSMTPNotifier(notify.SMTPConfig{
			Host:     cfg.SMTP.Host,
			Port:     cfg.SMTP.Port,
			Username: cfg.SMTP.Username,
			Password: cfg.SMTP.Password,
			From:     cfg.SMTP.From,
			Timeout:  cfg.SMTP.Timeout,
		})))
	}

	passwords := security.NewBcryptService(cfg.Auth.BcryptCost)
	tokens := security.NewJWTService(cfg.Auth.JWTSecret, cfg.Auth.Issuer, cfg.Auth.TokenTTL)

	api := apihttp.NewAPI(apihttp.Dependencies{
		AuthService:     authuc.NewService(userRepo, passwords, tokens, revoker),
		UserService:     useruc.NewService(userRepo, passwords),
		PropertyService: propertyuc.NewService(propertyRepo, propertyOpts...),
		ProfileService:  profileuc.NewService(profileRepo),
		MessageService:  messageuc.NewService(messageRepo, propertyRepo, userRepo, messageOpts...),
		Logger:          log,
		Metrics:         apihttp.NewMetrics(),
		CORSOrigins:     cfg.CORS.AllowedOrigins,
		Limits: apihttp.ListingLimits{
			Default: cfg.Listing.DefaultLimit,
			Max:     cfg.Listing.MaxLimit,
		},
	})

	srv := &http.Server{
		Addr:              ":" + cfg.App.Port,
		Handler:           api.Router(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info("listening", zap.String("addr", srv.Addr), zap.String("env", cfg.App.Env))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	log.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.App.ShutdownTimeout)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
