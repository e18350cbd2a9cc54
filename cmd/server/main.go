package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"time"

	"github.com/redis/go-redis/v9"

	"rosterd/internal/audit"
	audithandler "rosterd/internal/audit/handler"
	auditmemory "rosterd/internal/audit/store/memory"
	auditpostgres "rosterd/internal/audit/store/postgres"
	authhandler "rosterd/internal/auth/handler"
	authservice "rosterd/internal/auth/service"
	"rosterd/internal/auth/store/revocation"
	userstore "rosterd/internal/auth/store/user"
	"rosterd/internal/jwttoken"
	"rosterd/internal/platform/config"
	"rosterd/internal/platform/database"
	"rosterd/internal/platform/httpserver"
	"rosterd/internal/platform/logger"
	"rosterd/internal/platform/metrics"
	"rosterd/internal/platform/middleware"
	rosterhandler "rosterd/internal/roster/handler"
	rosterservice "rosterd/internal/roster/service"
	recordstore "rosterd/internal/roster/store/record"
	httptransport "rosterd/internal/transport/http"
	id "rosterd/pkg/domain"
)

// main wires dependencies and keeps the server lifecycle small. Business
// logic lives in the internal service packages.
func main() {
	cfg := config.FromEnv()
	log := logger.New()
	m := metrics.New()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	// Storage: postgres when configured, in-memory otherwise (dev mode).
	var (
		users   authservice.UserStore
		records rosterservice.RecordStore
		logsink audit.Store
	)
	if cfg.DatabaseURL != "" {
		db, err := database.Open(ctx, cfg.DatabaseURL)
		if err != nil {
			log.Error("failed to open database", "error", err)
			os.Exit(1)
		}
		defer db.Close()
		if err := database.EnsureSchema(ctx, db); err != nil {
			log.Error("failed to ensure schema", "error", err)
			os.Exit(1)
		}
		users = userstore.NewPostgres(db)
		records = recordstore.NewPostgres(db)
		logsink = auditpostgres.New(db)
	} else {
		log.Warn("DATABASE_URL not set, using in-memory stores")
		memUsers := userstore.New()
		users = memUsers
		records = recordstore.New()
		logsink = auditmemory.NewInMemoryStore(audit.DirectoryFunc(
			func(ctx context.Context, userID id.UserID) (string, string, error) {
				u, err := memUsers.FindByID(ctx, userID)
				if err != nil {
					return "", "", err
				}
				return u.Login, u.Contact, nil
			},
		))
	}

	// Optional redis-backed token denylist for forced logout.
	var denylist middleware.TokenDenylist
	if cfg.RedisAddr != "" {
		client := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
		if err := client.Ping(ctx).Err(); err != nil {
			log.Error("failed to connect to redis", "error", err)
			os.Exit(1)
		}
		defer client.Close()
		denylist = revocation.NewRedisDenylist(client)
	}

	jwtService := jwttoken.NewJWTService(cfg.JWTSigningKey, cfg.JWTIssuer, cfg.JWTAudience)

	authSvc := authservice.NewService(users, jwtService, cfg.TokenTTL, log, m)
	if err := authSvc.SeedDefaultAdmin(ctx); err != nil {
		log.Error("failed to seed admin user", "error", err)
		os.Exit(1)
	}

	// Audit pipeline: mutations enqueue, the worker persists. Best-effort by
	// design - a full queue or failed append never fails the mutation.
	recorder := audit.NewRecorder(cfg.AuditQueueSize, log, m)
	worker := audit.NewWorker(logsink, recorder.Inbox(), log, m)
	workerDone := make(chan struct{})
	go func() {
		defer close(workerDone)
		if err := worker.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
			log.Error("audit worker stopped", "error", err)
		}
	}()

	rosterSvc := rosterservice.NewService(records, recorder, cfg.DeletePolicy, log, m)

	router := httptransport.NewRouter(httptransport.Deps{
		Auth:      authhandler.New(authSvc, log),
		Roster:    rosterhandler.New(rosterSvc, log),
		AuditLog:  audithandler.New(logsink, log),
		Validator: jwttoken.NewJWTServiceAdapter(jwtService),
		Denylist:  denylist,
		Logger:    log,
	})

	srv := httpserver.New(cfg.Addr, router)
	log.Info("starting rosterd", "addr", cfg.Addr, "delete_policy", cfg.DeletePolicy)

	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("server error", "error", err)
			stop()
		}
	}()

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("graceful shutdown failed", "error", err)
	}
	<-workerDone
}
