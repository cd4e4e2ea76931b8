package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"salesops-platform/internal/audit"
	"salesops-platform/internal/auth"
	"salesops-platform/internal/callrecords"
	"salesops-platform/internal/config"
	"salesops-platform/internal/crm"
	"salesops-platform/internal/dialer"
	"salesops-platform/internal/geocode"
	"salesops-platform/internal/httpapi"
	"salesops-platform/internal/reporting"
	"salesops-platform/internal/telephony"
	"salesops-platform/pkg/logger"
	"salesops-platform/pkg/utils"

	"github.com/gin-gonic/gin"
	_ "github.com/jackc/pgx/v5/stdlib"
)

func main() {
	// Root context that cancels on shutdown
	rootCtx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("config load failed", "err", err)
		os.Exit(1)
	}

	log := logger.New(cfg.App.Env)
	slog.SetDefault(log)

	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	authManager, err := auth.NewManager(cfg.Auth)
	if err != nil {
		log.Error("auth init failed", "err", err)
		os.Exit(1)
	}

	db, err := utils.OpenPostgres(rootCtx, "pgx", cfg.PostgresDSN(), utils.PostgresPoolConfig{})
	if err != nil {
		log.Error("postgres init failed", "err", err)
		os.Exit(1)
	}
	defer db.Close()

	rdb, err := utils.OpenRedis(rootCtx, utils.RedisConfig{Addr: cfg.RedisAddr()})
	if err != nil {
		log.Error("redis init failed", "err", err)
		os.Exit(1)
	}
	defer rdb.Close()

	// Storage
	prospects := crm.NewPostgresProspectRepo(db)
	fieldReps := crm.NewPostgresFieldRepRepo(db)
	records := callrecords.NewPostgresStore(db)

	// Dialer
	dialerSvc := dialer.NewService(prospects, fieldReps).
		WithCache(dialer.NewRedisListCache(rdb), cfg.Dialer.ListTTL)

	// Telephony
	provider := telephony.NewTwilioProvider(cfg.Twilio.AccountSID, cfg.Twilio.AuthToken, cfg.Twilio.StatusCallbackURL)
	caps := telephony.NewRedisCapAcquirer(rdb, cfg.Dialer.MaxActiveCalls, 2*time.Hour)
	starter := &telephony.CallStarter{
		Provider:  provider,
		Records:   records,
		Prospects: prospects,
		Caps:      caps,
		From:      cfg.Twilio.CallerNumber,
	}

	// Correlation and outcomes
	auditSvc := audit.NewService(audit.NewMemoryRepo())
	correlator := callrecords.NewCorrelator(records)
	outcomes := callrecords.NewOutcomeRecorder(records, prospects).
		WithObserver(audit.NewOutcomeAuditor(auditSvc, log))

	// Reporting and geocoding
	reports := reporting.NewService(records)
	backfiller := &geocode.Backfiller{
		Geocoder: &geocode.NominatimGeocoder{
			BaseURL:   cfg.Geocode.BaseURL,
			UserAgent: cfg.Geocode.UserAgent,
		},
		Prospects: prospects,
	}

	handlers := httpapi.Handlers{
		Auth:     authManager,
		Dialer:   dialerSvc,
		Calls:    starter,
		Outcomes: outcomes,
		Records:  records,
		Reports:  reports,
		Geo:      backfiller,
		Audit:    auditSvc,
	}

	webhooks := telephony.TwilioWebhookHandler{
		Correlator: correlator,
		ReleaseCallSlot: func(c *gin.Context, callerID string) {
			if err := caps.Release(c.Request.Context(), callerID); err != nil {
				logger.FromGin(c).Warn("call slot release failed", "caller_id", callerID, "err", err)
			}
		},
	}

	// Gin router
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(logger.Middleware(log))

	registerRoutes(r, auth.RequireAccessToken(authManager), handlers, webhooks, db)

	srv := &http.Server{
		Addr:              cfg.HTTPAddr(),
		Handler:           r,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		log.Info("api listening", "addr", srv.Addr, "env", cfg.App.Env)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("http server failed", "err", err)
			stop()
		}
	}()

	<-rootCtx.Done()
	log.Info("shutdown initiated")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 20*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("http shutdown failed", "err", err)
	}

	_ = logger.ShutdownFlush(shutdownCtx, 2*time.Second)
}
