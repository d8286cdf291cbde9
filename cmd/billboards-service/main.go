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

	"github.com/nurpe/billboards/internal/appstate"
	"github.com/nurpe/billboards/internal/auth"
	"github.com/nurpe/billboards/internal/config"
	"github.com/nurpe/billboards/internal/db"
	"github.com/nurpe/billboards/internal/excel"
	httphandler "github.com/nurpe/billboards/internal/http"
	"github.com/nurpe/billboards/internal/http/middleware"
	"github.com/nurpe/billboards/internal/lock"
	"github.com/nurpe/billboards/internal/logger"
	"github.com/nurpe/billboards/internal/pdf"
	"github.com/nurpe/billboards/internal/render"
	"github.com/nurpe/billboards/internal/repository"
	"github.com/nurpe/billboards/internal/service"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	log := logger.New(cfg.Environment)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	database, err := db.New(cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect database")
	}

	billboardRepo := repository.NewBillboardRepository(database)
	contractRepo := repository.NewContractRepository(database)
	customerRepo := repository.NewCustomerRepository(database)
	paymentRepo := repository.NewPaymentRepository(database)
	pricingRepo := repository.NewPricingRepository(database)
	optionRepo := repository.NewOptionRepository(database)

	redisClient, err := lock.Connect(ctx, cfg.Redis)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect redis")
	}
	var locker service.Locker = lock.NewLocalLocker()
	if redisClient != nil {
		defer redisClient.Close()
		locker = lock.NewRedisLocker(redisClient)
	} else {
		log.Warn().Msg("REDIS_ADDR not set, cleanup lock is process local")
	}

	renderer, err := render.NewRenderer()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to init document templates")
	}
	pdfGenerator, err := pdf.NewGenerator(cfg.Documents.PDFFont)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to init pdf generator")
	}

	options := appstate.NewOptions(optionRepo)
	if _, err := options.Refresh(ctx); err != nil {
		log.Warn().Err(err).Msg("failed to load form options, will retry on first request")
	}

	pricingService := service.NewPricingService(pricingRepo)
	contractService := service.NewContractService(contractRepo, billboardRepo, customerRepo, pricingService, cfg.Contracts)
	paymentService := service.NewPaymentService(paymentRepo, contractRepo, customerRepo)
	documentService := service.NewDocumentService(service.DocumentDeps{
		Contracts:  contractRepo,
		Billboards: billboardRepo,
		Customers:  customerRepo,
		Payments:   paymentRepo,
		Prices:     pricingService,
		HTML:       renderer,
		PDF:        pdfGenerator,
		Excel:      excel.NewGenerator(),
	}, render.Company{Name: cfg.Documents.CompanyName, Currency: cfg.Documents.Currency}, cfg.Contracts.NearExpiryDays)
	cleanupService := service.NewCleanupService(billboardRepo, contractRepo, locker, log)
	cleanupService.Start(ctx, cfg.Cleanup.Interval)

	tokenParser := auth.NewParser(cfg.Auth.AccessSecret)
	handler := httphandler.NewHandler(httphandler.Services{
		Options:    service.NewOptionsService(options),
		Pricing:    pricingService,
		Billboards: service.NewBillboardService(billboardRepo),
		Contracts:  contractService,
		Payments:   paymentService,
		Documents:  documentService,
		Customers:  service.NewCustomerService(customerRepo, cfg.Customers.SimilarityThreshold),
		Cleanup:    cleanupService,
	}, log)
	authMiddleware := middleware.Auth(tokenParser)
	router := httphandler.NewRouter(handler, authMiddleware, httphandler.RouterConfig{
		Environment:    cfg.Environment,
		AllowedOrigins: cfg.HTTP.AllowedOrigins,
	}, log)

	addr := fmt.Sprintf("%s:%d", cfg.HTTP.Host, cfg.HTTP.Port)
	srv := &http.Server{Addr: addr, Handler: router}
	serverErr := make(chan error, 1)
	go func() {
		serverErr <- srv.ListenAndServe()
	}()
	log.Info().Str("addr", addr).Msg("starting billboards service")

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			log.Error().Err(err).Msg("shutdown failed")
		}
	case err := <-serverErr:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error().Err(err).Msg("server stopped")
			os.Exit(1)
		}
	}
}
