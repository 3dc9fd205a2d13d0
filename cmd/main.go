package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/lib/pq"
	"golang.org/x/sync/errgroup"

	"github.com/m04kA/SMC-TurfBookingService/internal/api"
	cancelReservationHandler "github.com/m04kA/SMC-TurfBookingService/internal/api/handlers/cancel_reservation"
	getBookingHandler "github.com/m04kA/SMC-TurfBookingService/internal/api/handlers/get_booking"
	getCustomerHandler "github.com/m04kA/SMC-TurfBookingService/internal/api/handlers/get_customer"
	getFreeSlotsHandler "github.com/m04kA/SMC-TurfBookingService/internal/api/handlers/get_free_slots"
	getTurfHandler "github.com/m04kA/SMC-TurfBookingService/internal/api/handlers/get_turf"
	getTurfBookingsHandler "github.com/m04kA/SMC-TurfBookingService/internal/api/handlers/get_turf_bookings"
	listTurfsHandler "github.com/m04kA/SMC-TurfBookingService/internal/api/handlers/list_turfs"
	paymentStatusHandler "github.com/m04kA/SMC-TurfBookingService/internal/api/handlers/payment_status"
	reserveSlotsHandler "github.com/m04kA/SMC-TurfBookingService/internal/api/handlers/reserve_slots"
	updateTurfScheduleHandler "github.com/m04kA/SMC-TurfBookingService/internal/api/handlers/update_turf_schedule"
	"github.com/m04kA/SMC-TurfBookingService/internal/config"
	"github.com/m04kA/SMC-TurfBookingService/internal/infra/cache"
	bookingRepo "github.com/m04kA/SMC-TurfBookingService/internal/infra/storage/booking"
	customerRepo "github.com/m04kA/SMC-TurfBookingService/internal/infra/storage/customer"
	"github.com/m04kA/SMC-TurfBookingService/internal/infra/storage/memory"
	paymentRepo "github.com/m04kA/SMC-TurfBookingService/internal/infra/storage/payment"
	turfRepo "github.com/m04kA/SMC-TurfBookingService/internal/infra/storage/turf"
	"github.com/m04kA/SMC-TurfBookingService/internal/integrations/paymentevents"
	"github.com/m04kA/SMC-TurfBookingService/internal/integrations/paymentgateway"
	bookingsService "github.com/m04kA/SMC-TurfBookingService/internal/service/bookings"
	paymentsService "github.com/m04kA/SMC-TurfBookingService/internal/service/payments"
	turfsService "github.com/m04kA/SMC-TurfBookingService/internal/service/turfs"
	cancelReservationUC "github.com/m04kA/SMC-TurfBookingService/internal/usecase/cancel_reservation"
	getFreeSlotsUC "github.com/m04kA/SMC-TurfBookingService/internal/usecase/get_free_slots"
	reserveSlotsUC "github.com/m04kA/SMC-TurfBookingService/internal/usecase/reserve_slots"
	"github.com/m04kA/SMC-TurfBookingService/pkg/dbmetrics"
	"github.com/m04kA/SMC-TurfBookingService/pkg/logger"
	"github.com/m04kA/SMC-TurfBookingService/pkg/metrics"
	"github.com/m04kA/SMC-TurfBookingService/pkg/simpletxmanager"
	"github.com/m04kA/SMC-TurfBookingService/pkg/txmanager"
)

// BookingStore is everything the service needs from the booking ledger
type BookingStore interface {
	reserveSlotsUC.BookingLedger
	getFreeSlotsUC.BookingLedger
	cancelReservationUC.BookingLedger
	bookingsService.BookingRepository
}

type repositories struct {
	turfs     turfsService.TurfRepository
	customers bookingsService.CustomerRepository
	bookings  BookingStore
	payments  paymentsService.PaymentRepository
	close     func()
}

func main() {
	// Load configuration
	cfg, err := config.Load("config.toml")
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}

	// Logger
	log, err := logger.New(cfg.Logs.File, cfg.Logs.Level)
	if err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Close()

	log.Info("Starting SMC-TurfBookingService...")
	log.Info("Configuration loaded (storage=%s, timezone=%s)", cfg.Storage.Driver, cfg.Booking.Timezone)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Metrics (optional)
	var metricsCollector *metrics.Metrics
	if cfg.Metrics.Enabled {
		metricsCollector = metrics.New(cfg.Metrics.ServiceName)
		log.Info("Metrics enabled at %s", cfg.Metrics.Path)
	}

	// Storage
	stopMetricsCh := make(chan struct{})
	var repos *repositories
	switch cfg.Storage.Driver {
	case config.StorageDriverMemory:
		repos, err = openMemory(cfg, log)
	default:
		repos, err = openPostgres(ctx, cfg, metricsCollector, stopMetricsCh, log)
	}
	if err != nil {
		log.Fatal("Failed to open %s storage: %v", cfg.Storage.Driver, err)
	}
	defer repos.close()

	// Catalog cache
	var turfCache turfsService.Cache = cache.Nop{}
	if cfg.Cache.Enabled {
		client, err := cache.Connect(ctx, cfg.Cache.Addr, cfg.Cache.Password, cfg.Cache.DB)
		if err != nil {
			log.Fatal("Failed to connect to redis at %s: %v", cfg.Cache.Addr, err)
		}
		defer client.Close()
		turfCache = cache.NewRedisCache(client, cfg.Metrics.ServiceName, log)
		log.Info("Turf catalog cache enabled (redis=%s, ttl=%ds)", cfg.Cache.Addr, cfg.Cache.TTL)
	}

	// Payment gateway (optional)
	var gateway paymentsService.GatewayClient
	if cfg.Payments.GatewayURL != "" {
		gateway = paymentgateway.NewClient(
			cfg.Payments.GatewayURL,
			time.Duration(cfg.Payments.GatewayTimeout)*time.Second,
			log,
		)
		log.Info("Payment gateway client initialized (url=%s, timeout=%ds)", cfg.Payments.GatewayURL, cfg.Payments.GatewayTimeout)
	}

	loc, err := cfg.Booking.Location()
	if err != nil {
		log.Fatal("Invalid booking timezone: %v", err)
	}

	// Services
	turfSvc := turfsService.NewService(repos.turfs, turfCache, time.Duration(cfg.Cache.TTL)*time.Second, metricsCollector, log)
	paymentSvc := paymentsService.NewService(repos.payments, repos.bookings, gateway, metricsCollector, log)
	bookingSvc := bookingsService.NewService(repos.bookings, repos.customers, turfSvc, paymentSvc, log)

	// Use cases
	reserveSlotsUseCase := reserveSlotsUC.NewUseCase(
		turfSvc,
		repos.customers,
		repos.bookings,
		paymentSvc,
		reserveSlotsUC.Config{
			Location:       loc,
			MaxAdvanceDays: cfg.Booking.MaxAdvanceDays,
			MaxTeamSize:    cfg.Booking.MaxTeamSize,
		},
		metricsCollector,
		log,
	)
	getFreeSlotsUseCase := getFreeSlotsUC.NewUseCase(turfSvc, repos.bookings, log)
	cancelReservationUseCase := cancelReservationUC.NewUseCase(repos.bookings, log)

	// Router
	router := api.NewRouter(api.Handlers{
		ListTurfs:          listTurfsHandler.NewHandler(turfSvc, log),
		GetTurf:            getTurfHandler.NewHandler(turfSvc, log),
		GetFreeSlots:       getFreeSlotsHandler.NewHandler(getFreeSlotsUseCase, log),
		GetBooking:         getBookingHandler.NewHandler(bookingSvc, log),
		ReserveSlots:       reserveSlotsHandler.NewHandler(reserveSlotsUseCase, log),
		CancelReservation:  cancelReservationHandler.NewHandler(cancelReservationUseCase, log),
		GetTurfBookings:    getTurfBookingsHandler.NewHandler(bookingSvc, log),
		GetCustomer:        getCustomerHandler.NewHandler(bookingSvc, log),
		UpdateTurfSchedule: updateTurfScheduleHandler.NewHandler(turfSvc, log),
		PaymentStatus:      paymentStatusHandler.NewHandler(paymentSvc, log),
	}, api.RouterOptions{
		Metrics:     metricsCollector,
		MetricsPath: cfg.Metrics.Path,
		Logger:      log,
	})

	addr := fmt.Sprintf(":%d", cfg.Server.HTTPPort)
	srv := &http.Server{
		Addr:         addr,
		Handler:      router,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
		IdleTimeout:  time.Duration(cfg.Server.IdleTimeout) * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		log.Info("Starting server on %s", addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	})

	// Payment events (optional)
	if cfg.Payments.Events.Enabled {
		consumer := paymentevents.NewConsumer(paymentevents.Config{
			URL:      cfg.Payments.Events.AMQPURL,
			Exchange: cfg.Payments.Events.Exchange,
			Queue:    cfg.Payments.Events.Queue,
			Prefetch: cfg.Payments.Events.Prefetch,
			Tag:      cfg.Metrics.ServiceName,
		}, paymentSvc, metricsCollector, log)

		if err := consumer.Connect(); err != nil {
			log.Fatal("Failed to connect to payment events broker: %v", err)
		}
		defer consumer.Close()

		g.Go(func() error {
			return consumer.Run(gctx)
		})
	}

	g.Go(func() error {
		<-gctx.Done()
		log.Info("Shutting down server...")

		shutdownCtx, cancel := context.WithTimeout(
			context.Background(),
			time.Duration(cfg.Server.ShutdownTimeout)*time.Second,
		)
		defer cancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("server forced to shutdown: %w", err)
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		log.Error("Service stopped with error: %v", err)
	}

	if cfg.Metrics.Enabled {
		close(stopMetricsCh)
		log.Info("Metrics collection stopped")
	}

	log.Info("Server stopped gracefully")
}

func openMemory(cfg *config.Config, log *logger.Logger) (*repositories, error) {
	store := memory.NewStore()

	if cfg.Storage.SeedFile != "" {
		seed, err := memory.LoadSeed(cfg.Storage.SeedFile)
		if err != nil {
			return nil, err
		}
		if err := store.Apply(seed); err != nil {
			return nil, err
		}
		log.Info("Memory storage seeded from %s (turfs=%d, customers=%d)", cfg.Storage.SeedFile, len(seed.Turfs), len(seed.Customers))
	} else {
		log.Warn("Memory storage started without a seed file, the catalog is empty")
	}

	return &repositories{
		turfs:     store.Turfs(),
		customers: store.Customers(),
		bookings:  store.Bookings(),
		payments:  store.Payments(),
		close:     func() {},
	}, nil
}

func openPostgres(
	ctx context.Context,
	cfg *config.Config,
	metricsCollector *metrics.Metrics,
	stopMetricsCh <-chan struct{},
	log *logger.Logger,
) (*repositories, error) {
	db, err := sql.Open("postgres", cfg.Database.DSN())
	if err != nil {
		return nil, fmt.Errorf("open: %w", err)
	}

	db.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	db.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	db.SetConnMaxLifetime(time.Duration(cfg.Database.ConnMaxLifetime) * time.Second)

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping: %w", err)
	}
	log.Info("Successfully connected to database (host=%s, port=%d, db=%s)",
		cfg.Database.Host, cfg.Database.Port, cfg.Database.DBName)

	repos := &repositories{close: func() { _ = db.Close() }}

	if metricsCollector != nil {
		wrappedDB := dbmetrics.WrapWithDefault(db, metricsCollector, cfg.Metrics.ServiceName, stopMetricsCh)
		txMgr := txmanager.NewTransactionManager(wrappedDB)
		log.Info("Database metrics collection started")

		repos.turfs = turfRepo.NewRepository(wrappedDB)
		repos.customers = customerRepo.NewRepository(wrappedDB)
		repos.bookings = bookingRepo.NewRepository(wrappedDB, txMgr)
		repos.payments = paymentRepo.NewRepository(wrappedDB, txMgr)
		return repos, nil
	}

	txMgr := simpletxmanager.NewTransactionManager(db)
	repos.turfs = turfRepo.NewRepository(db)
	repos.customers = customerRepo.NewRepository(db)
	repos.bookings = bookingRepo.NewRepository(db, txMgr)
	repos.payments = paymentRepo.NewRepository(db, txMgr)
	return repos, nil
}
