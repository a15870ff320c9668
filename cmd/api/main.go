package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/hrms-app/hrms-backend-go/internal/config"
	appHTTP "github.com/hrms-app/hrms-backend-go/internal/handler/http"
	"github.com/hrms-app/hrms-backend-go/internal/pkg/cache"
	"github.com/hrms-app/hrms-backend-go/internal/pkg/cron"
	"github.com/hrms-app/hrms-backend-go/internal/pkg/database"
	"github.com/hrms-app/hrms-backend-go/internal/pkg/jwt"
	"github.com/hrms-app/hrms-backend-go/internal/repository/postgresql"
	serviceAuth "github.com/hrms-app/hrms-backend-go/internal/service/auth"
	certificateService "github.com/hrms-app/hrms-backend-go/internal/service/certificate"
	departmentService "github.com/hrms-app/hrms-backend-go/internal/service/department"
	financialService "github.com/hrms-app/hrms-backend-go/internal/service/financial"
	jobService "github.com/hrms-app/hrms-backend-go/internal/service/job"
	"github.com/hrms-app/hrms-backend-go/internal/service/leave"
	userService "github.com/hrms-app/hrms-backend-go/internal/service/user"
	"golang.org/x/sync/errgroup"
)

const shutdownTimeout = 15 * time.Second

func main() {
	if err := run(); err != nil {
		slog.Error("Server exited with error", "error", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: cfg.SlogLevel()})))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := database.NewPostgreSQLDB(ctx, cfg.DatabaseURL())
	if err != nil {
		return fmt.Errorf("connect database: %w", err)
	}
	defer db.Close()

	var store cache.Store = cache.NoopStore{}
	if cfg.Redis.URL != "" {
		rdb, err := cache.NewRedisClient(ctx, cfg.Redis.URL)
		if err != nil {
			return fmt.Errorf("connect redis: %w", err)
		}
		defer rdb.Close()
		store = cache.NewRedisStore(rdb)
	} else {
		slog.Warn("REDIS_URL not set, caching disabled")
	}
	loader := cache.NewLoader(store)

	userRepo := postgresql.NewUserRepository(db)
	departmentRepo := postgresql.NewDepartmentRepository(db)
	jobRepo := postgresql.NewJobRepository(db)
	financialRepo := postgresql.NewFinancialRepository(db)
	certificateRepo := postgresql.NewCertificateRepository(db)
	balanceRepo := postgresql.NewLeaveBalanceRepository(db)
	applicationRepo := postgresql.NewApplicationRepository(db)
	transactor := postgresql.NewTransactor(db)

	JWTService, err := jwt.NewJWTService(cfg.JWT.Secret, cfg.JWT.AccessExpiration)
	if err != nil {
		return fmt.Errorf("init jwt: %w", err)
	}

	authService := serviceAuth.NewAuthService(userRepo, JWTService)
	userSvc := userService.NewUserService(userRepo, loader)
	departmentSvc := departmentService.NewDepartmentService(departmentRepo, loader)
	jobSvc := jobService.NewJobService(jobRepo, loader)
	financialSvc := financialService.NewFinancialService(financialRepo)
	certificateSvc := certificateService.NewCertificateService(certificateRepo)
	balanceService := leave.NewBalanceService(balanceRepo, userRepo, transactor, cfg.Leave)
	applicationService := leave.NewApplicationService(applicationRepo, balanceService, userRepo, jobRepo, transactor)

	router := appHTTP.NewRouter(
		cfg.App,
		JWTService,
		appHTTP.NewAuthHandler(authService),
		appHTTP.NewUserHandler(userSvc),
		appHTTP.NewDepartmentHandler(departmentSvc),
		appHTTP.NewJobHandler(jobSvc),
		appHTTP.NewFinancialHandler(financialSvc),
		appHTTP.NewCertificateHandler(certificateSvc),
		appHTTP.NewLeaveHandler(applicationService, balanceService),
	)

	scheduler := cron.NewScheduler(time.Local)
	if err := cron.NewLeaveJobs(balanceService, cfg.Leave).RegisterJobs(scheduler); err != nil {
		return fmt.Errorf("register cron jobs: %w", err)
	}

	server := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.App.Port),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	g, gCtx := errgroup.WithContext(ctx)

	g.Go(func() error {
		slog.Info("Server running", "addr", server.Addr, "env", cfg.App.Env)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		scheduler.Start()
		<-gCtx.Done()
		scheduler.Stop()
		return nil
	})

	g.Go(func() error {
		<-gCtx.Done()
		slog.Info("Shutting down server")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return server.Shutdown(shutdownCtx)
	})

	return g.Wait()
}
