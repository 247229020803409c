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

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/espacoviv/agendamento/internal/audit"
	"github.com/espacoviv/agendamento/internal/auth"
	"github.com/espacoviv/agendamento/internal/config"
	dbpkg "github.com/espacoviv/agendamento/internal/db"
	"github.com/espacoviv/agendamento/internal/domain/account"
	"github.com/espacoviv/agendamento/internal/domain/availability"
	"github.com/espacoviv/agendamento/internal/domain/booking"
	"github.com/espacoviv/agendamento/internal/domain/catalog"
	infraRepo "github.com/espacoviv/agendamento/internal/infra/repository"
	"github.com/espacoviv/agendamento/internal/infra/mailer"
	"github.com/espacoviv/agendamento/internal/infra/memory"
	"github.com/espacoviv/agendamento/internal/infra/slotlock"
	"github.com/espacoviv/agendamento/internal/infra/storage"
	"github.com/espacoviv/agendamento/internal/jobs"
	"github.com/espacoviv/agendamento/internal/logging"
	"github.com/espacoviv/agendamento/internal/routes"
	"github.com/espacoviv/agendamento/internal/seed"
	ucBooking "github.com/espacoviv/agendamento/internal/usecase/booking"
	"github.com/espacoviv/agendamento/internal/validators"
)

const shutdownTimeout = 10 * time.Second

// stores groups the repositories of the selected backend.
type stores struct {
	bookings  booking.Repository
	overrides availability.Repository
	accounts  account.Repository
	catalog   catalog.Repository
	audit     audit.Store
	close     func() error
}

func openStores(ctx context.Context, cfg *config.Config, log *zap.Logger) (*stores, error) {
	if cfg.Store == config.StoreMemory {
		log.Warn("using in-memory store; data is lost on restart")
		m := memory.New()
		return &stores{
			bookings:  m,
			overrides: m,
			accounts:  m,
			catalog:   m,
			audit:     m,
			close:     func() error { return nil },
		}, nil
	}

	db, err := dbpkg.NewDB(cfg)
	if err != nil {
		return nil, err
	}
	if err := dbpkg.Migrate(ctx, db, log); err != nil {
		_ = dbpkg.Close(db)
		return nil, err
	}
	return gormStores(db), nil
}

func gormStores(db *gorm.DB) *stores {
	return &stores{
		bookings:  infraRepo.NewBookingGormRepository(db),
		overrides: infraRepo.NewAvailabilityGormRepository(db),
		accounts:  infraRepo.NewAccountGormRepository(db),
		catalog:   infraRepo.NewCatalogGormRepository(db),
		audit:     infraRepo.NewAuditGormRepository(db),
		close:     func() error { return dbpkg.Close(db) },
	}
}

func setup() (*config.Config, *zap.Logger, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, fmt.Errorf("load config: %w", err)
	}
	log, err := logging.New(cfg.Env)
	if err != nil {
		return nil, nil, fmt.Errorf("init logger: %w", err)
	}
	return cfg, log, nil
}

// ======================================================
// serve
// ======================================================

func runServer() error {
	cfg, log, err := setup()
	if err != nil {
		return err
	}
	defer func() { _ = log.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	st, err := openStores(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer func() {
		if err := st.close(); err != nil {
			log.Warn("close store", zap.Error(err))
		}
	}()

	if _, err := seed.Run(ctx, st.catalog, st.accounts, cfg.SeedDemo, log); err != nil {
		return fmt.Errorf("seed: %w", err)
	}

	// 🔒 Slot lock
	var locker slotlock.Locker = slotlock.NewLocal()
	if cfg.RedisURL != "" {
		rl, err := slotlock.NewRedis(cfg.RedisURL, cfg.SlotLockTTL, log)
		if err != nil {
			return fmt.Errorf("redis slot lock: %w", err)
		}
		defer rl.Close()
		locker = rl
	}

	// ✉️ Mailer
	var mail mailer.Mailer = mailer.NewLog(log)
	if cfg.SMTPHost != "" {
		mail = mailer.NewSMTP(mailer.SMTPConfig{
			Host:    cfg.SMTPHost,
			Port:    cfg.SMTPPort,
			User:    cfg.SMTPUser,
			Pass:    cfg.SMTPPass,
			From:    cfg.SMTPFrom,
			Timeout: cfg.EmailTimeout,
		}, log)
	}

	// 🖼️ Avatars
	var avatars storage.AvatarStore
	if cfg.S3Bucket != "" {
		avatars = storage.NewS3AvatarStore(storage.S3Config{
			Bucket:        cfg.S3Bucket,
			Region:        cfg.S3Region,
			Endpoint:      cfg.S3Endpoint,
			AccessKey:     cfg.S3AccessKey,
			SecretKey:     cfg.S3SecretKey,
			PublicBaseURL: cfg.S3PublicBaseURL,
		})
	} else {
		log.Info("S3_BUCKET not set; avatar upload disabled")
	}

	dispatcher := audit.NewDispatcher(st.audit, log)
	defer dispatcher.Close()

	deps := routes.Deps{
		Config:    cfg,
		Log:       log,
		Bookings:  st.bookings,
		Overrides: st.overrides,
		Accounts:  st.accounts,
		Catalog:   st.catalog,
		Audit:     dispatcher,
		AuditLogs: st.audit,
		Locker:    locker,
		Mailer:    mail,
		Avatars:   avatars,
		Tokens:    auth.NewTokenIssuer(cfg.JWTSecret, cfg.JWTTTL),
		StoreKind: cfg.Store,
		Now:       time.Now,
	}
	if cfg.EmailDomainCheck {
		deps.DomainCheck = validators.NewEmailDomain(nil, 0).Valid
	}

	// ⏰ Pending expiry
	scheduler := jobs.NewScheduler(log)
	if cfg.PendingTTL > 0 {
		expire := ucBooking.NewExpirePending(st.bookings, dispatcher, cfg.PendingTTL, time.Now, log)
		if err := scheduler.Add("expire_pending", cfg.PendingSweepSchedule, expire); err != nil {
			return fmt.Errorf("schedule pending expiry: %w", err)
		}
	}
	scheduler.Start()

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()
	routes.RegisterRoutes(r, deps)

	srv := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info("server running", zap.String("addr", cfg.Addr()), zap.String("store", cfg.Store))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("listen: %w", err)
		}
	case <-ctx.Done():
		log.Info("shutting down")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("server shutdown", zap.Error(err))
	}
	scheduler.Stop(shutdownCtx)
	return nil
}

// ======================================================
// migrate / seed
// ======================================================

func runMigrate(ctx context.Context) error {
	cfg, log, err := setup()
	if err != nil {
		return err
	}
	defer func() { _ = log.Sync() }()

	if cfg.Store != config.StorePostgres {
		return errors.New("migrate requires STORE=postgres")
	}

	db, err := dbpkg.NewDB(cfg)
	if err != nil {
		return err
	}
	defer dbpkg.Close(db)

	return dbpkg.Migrate(ctx, db, log)
}

func runSeed(ctx context.Context, demo bool) error {
	cfg, log, err := setup()
	if err != nil {
		return err
	}
	defer func() { _ = log.Sync() }()

	if cfg.Store != config.StorePostgres {
		return errors.New("seed requires STORE=postgres")
	}

	st, err := openStores(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer st.close()

	res, err := seed.Run(ctx, st.catalog, st.accounts, demo || cfg.SeedDemo, log)
	if err != nil {
		return err
	}
	fmt.Fprintf(os.Stdout, "units: %d, services: %d, therapists: %d\n", res.Units, res.Services, res.Therapists)
	return nil
}
