package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	_ "stayos/docs"
	"stayos/internal/config"
	"stayos/internal/email/noop"
	"stayos/internal/email/ses"
	"stayos/internal/handler"
	"stayos/internal/lock"
	"stayos/internal/logger"
	"stayos/internal/metrics"
	"stayos/internal/port"
	"stayos/internal/repository/postgres"
	"stayos/internal/router"
	"stayos/internal/service"
	s3storage "stayos/internal/storage/s3"
)

// @title StayOS API
// @version 1.0
// @description Property management API: leads, residents, studio occupancy, invoices and documents.
// @BasePath /api/v1
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	lg, err := logger.New(cfg.Log.Level, cfg.Log.Format, "stayos-api")
	if err != nil {
		return fmt.Errorf("failed to build logger: %w", err)
	}
	defer func() { _ = lg.Sync() }()
	zap.ReplaceGlobals(lg)

	db, err := postgres.NewDB(&cfg.DB)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer db.Close()

	// Initialize repositories
	tenantRepo := postgres.NewTenantRepo(db)
	userRepo := postgres.NewUserRepo(db)
	leadRepo := postgres.NewLeadRepo(db)
	residentRepo := postgres.NewResidentRepo(db)
	studioRepo := postgres.NewStudioRepo(db)
	invoiceRepo := postgres.NewInvoiceRepo(db)
	planRepo := postgres.NewPaymentPlanRepo(db)
	docRepo := postgres.NewResidentDocumentRepo(db)

	// Initialize storage
	documents, err := s3storage.NewDocumentStore(context.Background(), &cfg.S3)
	if err != nil {
		return fmt.Errorf("failed to initialize document storage: %w", err)
	}

	emailSender, err := newEmailSender(cfg.Email, lg)
	if err != nil {
		return fmt.Errorf("failed to initialize email sender: %w", err)
	}

	checks := map[string]handler.HealthCheck{"database": db.PingContext}
	conversionLock := lock.NewNoopLock()
	if cfg.Redis.Addr != "" {
		rdb := lock.NewRedisClient(&cfg.Redis)
		defer func() { _ = rdb.Close() }()
		conversionLock = lock.NewRedisLock(rdb, cfg.Redis.LockTTL, lg.Named("lock"))
		checks["redis"] = func(ctx context.Context) error { return rdb.Ping(ctx).Err() }
	} else {
		lg.Warn("redis address not set; lead conversions run without a lock")
	}

	recorder := metrics.NewRecorder()

	// Initialize services
	authSvc := service.NewAuthService(userRepo, tenantRepo, cfg.JWT)
	invoiceSvc := service.NewInvoiceService(invoiceRepo, residentRepo, emailSender, cfg.Billing, lg.Named("invoice"))
	reconciler := service.NewReconciler(residentRepo, studioRepo, leadRepo, planRepo, invoiceSvc, conversionLock, recorder, lg.Named("reconciler"))
	leadSvc := service.NewLeadService(leadRepo, reconciler, lg.Named("lead"))
	residentSvc := service.NewResidentService(residentRepo, studioRepo, planRepo, reconciler, lg.Named("resident"))
	studioSvc := service.NewStudioService(studioRepo, residentRepo, lg.Named("studio"))
	planSvc := service.NewPaymentPlanService(planRepo)
	docSvc := service.NewDocumentService(docRepo, residentRepo, documents, &cfg.S3, lg.Named("document"))

	r := router.Setup(router.Deps{
		Tokens:         authSvc,
		Tenants:        tenantRepo,
		Metrics:        recorder,
		Logger:         lg,
		AllowedOrigins: cfg.CORS.AllowedOrigins,
		EnableSwagger:  cfg.Server.Environment != "production",
	}, router.Handlers{
		Auth:        handler.NewAuthHandler(authSvc),
		Lead:        handler.NewLeadHandler(leadSvc),
		Resident:    handler.NewResidentHandler(residentSvc),
		Document:    handler.NewDocumentHandler(docSvc),
		Studio:      handler.NewStudioHandler(studioSvc),
		Invoice:     handler.NewInvoiceHandler(invoiceSvc, cfg.Billing.Currency),
		PaymentPlan: handler.NewPaymentPlanHandler(planSvc),
		Health:      handler.NewHealthHandler(checks),
	})

	srv := &http.Server{
		Addr:         cfg.Server.Port,
		Handler:      r,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		lg.Info("server starting", zap.String("addr", srv.Addr), zap.String("environment", cfg.Server.Environment))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("server failed: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	lg.Info("shutting down", zap.Duration("timeout", cfg.Server.ShutdownTimeout))
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("graceful shutdown failed: %w", err)
	}
	return nil
}

func newEmailSender(cfg config.EmailConfig, lg *zap.Logger) (port.EmailSender, error) {
	switch cfg.Provider {
	case "ses":
		return ses.NewSESSender(context.Background(), cfg)
	case "", "noop":
		return noop.NewNoopSender(lg.Named("email")), nil
	default:
		return nil, fmt.Errorf("unknown email provider %q", cfg.Provider)
	}
}
