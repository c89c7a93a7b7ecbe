package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	adaptercompetitor "grynvault-backend/internal/adapter/competitor"
	httpadp "grynvault-backend/internal/adapter/http"
	appmw "grynvault-backend/internal/adapter/middleware"
	"grynvault-backend/internal/adapter/notifier"
	"grynvault-backend/internal/adapter/repository/mysql"
	"grynvault-backend/internal/config"
	"grynvault-backend/internal/domain/notification"
	"grynvault-backend/internal/infrastructure/cache"
	"grynvault-backend/internal/infrastructure/db"
	"grynvault-backend/internal/infrastructure/logger"
	"grynvault-backend/internal/infrastructure/metrics"
	"grynvault-backend/internal/usecase/loan"
	"grynvault-backend/internal/usecase/orderbook"
)

const serviceName = "grynvault-api"

func main() {
	cfg := config.Load()

	log, err := logger.New(cfg.LogLevel, serviceName)
	if err != nil {
		panic(err)
	}
	defer func() { _ = log.Sync() }()

	if err := cfg.Validate(); err != nil {
		log.Fatal("invalid config", zap.Error(err))
	}

	gdb, err := db.OpenGorm(cfg.MySQLDSN(), log)
	if err != nil {
		log.Fatal("open mysql", zap.Error(err))
	}
	repo := mysql.NewOrderRepository(gdb)
	if err := repo.Migrate(context.Background()); err != nil {
		log.Fatal("migrate", zap.Error(err))
	}

	rdb, err := cache.OpenRedis(context.Background(), cache.RedisOptions{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPass,
		DB:       cfg.RedisDB,
	})
	if err != nil {
		log.Fatal("open redis", zap.Error(err))
	}
	defer func() { _ = rdb.Close() }()

	m := metrics.New()
	competitors := adaptercompetitor.NewDefault()
	store := orderbook.NewStore()
	loans := loan.NewUsecase(repo, store, competitors, log, m)
	book := orderbook.NewUsecase(repo, store, newNotifier(cfg, log), cfg.EmailJSTemplateID, log, m)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go book.TrackSize(ctx)
	if _, err := book.Refresh(ctx); err != nil {
		// the API still serves previews and submissions; the book fills on the next refresh
		log.Warn("initial orderbook load failed", zap.Error(err))
	}

	e := echo.New()
	e.HideBanner = true
	e.Validator = httpadp.NewValidator()
	e.Use(middleware.Logger(), middleware.Recover(), appmw.RequestCounter(m))

	// routes
	e.GET("/metrics", echo.WrapHandler(promhttp.HandlerFor(m.Registry, promhttp.HandlerOpts{})))
	httpadp.Register(e, httpadp.Handlers{
		Health:      httpadp.NewHandler(serviceName, func() int { return len(store.Snapshot()) }),
		Loans:       httpadp.NewLoanHandler(loans),
		Orderbook:   httpadp.NewOrderbookHandler(book),
		Competitors: httpadp.NewCompetitorHandler(competitors),
	}, appmw.Idempotency(rdb, time.Duration(cfg.IdempTTLSecs)*time.Second, log))

	addr := ":" + cfg.AppPort
	go func() {
		log.Info("listening", zap.String("addr", addr))
		if err := e.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("server", zap.Error(err))
		}
	}()

	<-ctx.Done()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error("shutdown", zap.Error(err))
	}
}

func newNotifier(cfg *config.Config, log *zap.Logger) notification.Notifier {
	if cfg.Notifier == "emailjs" {
		return notifier.NewEmailJS(notifier.EmailJSConfig{
			BaseURL:    cfg.EmailJSBaseURL,
			ServiceID:  cfg.EmailJSServiceID,
			PublicKey:  cfg.EmailJSPublicKey,
			PrivateKey: cfg.EmailJSPrivateKey,
			Timeout:    time.Duration(cfg.NotifyTimeoutSecs) * time.Second,
			PerMinute:  cfg.NotifyPerMinute,
		})
	}
	return notifier.NewLog(log.Named("notifier"))
}
