package main

import (
	"context"
	"database/sql"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	_ "github.com/lib/pq"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	createAppointmentHandler "github.com/TruongDHiep/Booking-Service-System/internal/api/handlers/create_appointment"
	createSaleOrderHandler "github.com/TruongDHiep/Booking-Service-System/internal/api/handlers/create_sale_order"
	getAppointmentHandler "github.com/TruongDHiep/Booking-Service-System/internal/api/handlers/get_appointment"
	getAvailableSlotsHandler "github.com/TruongDHiep/Booking-Service-System/internal/api/handlers/get_available_slots"
	getServiceHandler "github.com/TruongDHiep/Booking-Service-System/internal/api/handlers/get_service"
	rescheduleAppointmentHandler "github.com/TruongDHiep/Booking-Service-System/internal/api/handlers/reschedule_appointment"
	runNotificationsHandler "github.com/TruongDHiep/Booking-Service-System/internal/api/handlers/run_notifications"
	transitionAppointmentHandler "github.com/TruongDHiep/Booking-Service-System/internal/api/handlers/transition_appointment"
	"github.com/TruongDHiep/Booking-Service-System/internal/api/middleware"
	"github.com/TruongDHiep/Booking-Service-System/internal/config"
	appointmentRepo "github.com/TruongDHiep/Booking-Service-System/internal/infra/storage/appointment"
	catalogRepo "github.com/TruongDHiep/Booking-Service-System/internal/infra/storage/catalog"
	customerRepo "github.com/TruongDHiep/Booking-Service-System/internal/infra/storage/customer"
	timelineRepo "github.com/TruongDHiep/Booking-Service-System/internal/infra/storage/timeline"
	"github.com/TruongDHiep/Booking-Service-System/internal/integrations/eventbus"
	"github.com/TruongDHiep/Booking-Service-System/internal/integrations/mailer"
	"github.com/TruongDHiep/Booking-Service-System/internal/integrations/salesservice"
	"github.com/TruongDHiep/Booking-Service-System/internal/service/appointments"
	"github.com/TruongDHiep/Booking-Service-System/internal/service/availability"
	catalogService "github.com/TruongDHiep/Booking-Service-System/internal/service/catalog"
	"github.com/TruongDHiep/Booking-Service-System/internal/service/notifications"
	createAppointmentUC "github.com/TruongDHiep/Booking-Service-System/internal/usecase/create_appointment"
	createSaleOrderUC "github.com/TruongDHiep/Booking-Service-System/internal/usecase/create_sale_order"
	getAvailableSlotsUC "github.com/TruongDHiep/Booking-Service-System/internal/usecase/get_available_slots"
	rescheduleAppointmentUC "github.com/TruongDHiep/Booking-Service-System/internal/usecase/reschedule_appointment"
	"github.com/TruongDHiep/Booking-Service-System/pkg/dbmetrics"
	"github.com/TruongDHiep/Booking-Service-System/pkg/logger"
	"github.com/TruongDHiep/Booking-Service-System/pkg/metrics"
	"github.com/TruongDHiep/Booking-Service-System/pkg/txmanager"
)

func main() {
	configPath := "config.toml"
	if p := os.Getenv("CONFIG_PATH"); p != "" {
		configPath = p
	}

	// Загружаем конфигурацию
	cfg, err := config.Load(configPath)
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}

	// Инициализируем логгер
	log, err := logger.New(cfg.Logs.File, cfg.Logs.Level)
	if err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Close()

	log.Info("Starting Booking-Service-System...")
	log.Info("Configuration loaded from %s", configPath)

	// Инициализируем метрики (если включены)
	var (
		metricsCollector *metrics.Metrics
		dbObserver       dbmetrics.Observer
	)
	stopMetricsCh := make(chan struct{})

	if cfg.Metrics.Enabled {
		metricsCollector = metrics.New(cfg.Metrics.ServiceName, prometheus.DefaultRegisterer)
		dbObserver = metricsCollector
		log.Info("Metrics enabled at %s", cfg.Metrics.Path)
	}

	// Подключаемся к базе данных
	db, err := sql.Open("postgres", cfg.Database.DSN())
	if err != nil {
		log.Fatal("Failed to connect to database: %v", err)
	}
	defer db.Close()

	// Настраиваем connection pool
	db.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	db.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	db.SetConnMaxLifetime(time.Duration(cfg.Database.ConnMaxLifetime) * time.Second)

	// Проверяем соединение
	if err := db.Ping(); err != nil {
		log.Fatal("Failed to ping database: %v", err)
	}
	log.Info("Successfully connected to database (host=%s, port=%d, db=%s)",
		cfg.Database.Host, cfg.Database.Port, cfg.Database.DBName)

	wrappedDB := dbmetrics.WrapWithDefault(db, dbObserver, stopMetricsCh)
	txMgr := txmanager.NewTransactionManager(wrappedDB, cfg.Database.SerializableRetries)

	// Репозитории
	appointmentRepository := appointmentRepo.NewRepository(wrappedDB)
	catalogRepository := catalogRepo.NewRepository(wrappedDB)
	customerRepository := customerRepo.NewRepository(wrappedDB)
	timelineRepository := timelineRepo.NewRepository(wrappedDB)

	// Интеграции
	templates, err := mailer.LoadTemplates(cfg.Templates.Dir)
	if err != nil {
		log.Fatal("Failed to load e-mail templates from %s: %v", cfg.Templates.Dir, err)
	}
	mail := mailer.New(
		mailer.NewSMTPSender(cfg.SMTP.Host, cfg.SMTP.Port, cfg.SMTP.Username, cfg.SMTP.Password, cfg.SMTP.From),
		templates,
		cfg.SMTP.PortalURL,
		log,
	)
	salesClient := salesservice.NewClient(
		cfg.SalesService.URL,
		time.Duration(cfg.SalesService.Timeout)*time.Second,
		log,
	)
	log.Info("Integrations initialized (SMTP=%s:%d, SalesService=%s timeout=%ds)",
		cfg.SMTP.Host, cfg.SMTP.Port, cfg.SalesService.URL, cfg.SalesService.Timeout)

	// Сервисы
	checker := availability.NewChecker(catalogRepository, appointmentRepository, metricsCollector)

	scheduler := notifications.NewScheduler(
		appointmentRepository,
		mail,
		txMgr,
		metricsCollector,
		log,
		notifications.Config{
			ReminderWindow:    cfg.Notifications.ReminderWindow(),
			CompletionWindow:  cfg.Notifications.CompletionWindow(),
			MaxPerPass:        cfg.Notifications.MaxPerPass,
			PassTimeout:       cfg.Notifications.PassTimeout(),
			SendRatePerSecond: cfg.Notifications.SendRatePerSecond,
			SendBurst:         cfg.Notifications.SendBurst,
		},
	)

	appointmentSvc := appointments.NewService(
		appointmentRepository,
		timelineRepository,
		txMgr,
		scheduler,
		metricsCollector,
		log,
		appointments.WithStrictTransitions(cfg.Lifecycle.StrictTransitions),
		appointments.WithCustomerCancelNotice(time.Duration(cfg.Lifecycle.CustomerCancelNoticeHours)*time.Hour),
	)
	adminSvc := appointments.NewAdminService(
		appointmentRepository,
		timelineRepository,
		txMgr,
		metricsCollector,
		log,
	)
	catalogSvc := catalogService.NewService(catalogRepository, log)

	// Use cases
	createAppointmentUseCase := createAppointmentUC.NewUseCase(
		customerRepository,
		catalogRepository,
		appointmentRepository,
		checker,
		timelineRepository,
		mail,
		txMgr,
		log,
		createAppointmentUC.Config{
			DefaultTimezone: cfg.Booking.DefaultTimezone,
			ReferencePrefix: cfg.Booking.ReferencePrefix,
		},
	)
	getAvailableSlotsUseCase := getAvailableSlotsUC.NewUseCase(
		catalogRepository,
		appointmentRepository,
		log,
		getAvailableSlotsUC.Config{
			DefaultTimezone: cfg.Booking.DefaultTimezone,
			OpenHour:        cfg.Booking.OpenHour,
			CloseHour:       cfg.Booking.CloseHour,
			SlotStepMinutes: cfg.Booking.SlotStepMinutes,
		},
	)
	rescheduleAppointmentUseCase := rescheduleAppointmentUC.NewUseCase(
		appointmentRepository,
		catalogRepository,
		checker,
		timelineRepository,
		txMgr,
		log,
		cfg.Booking.DefaultTimezone,
	)
	createSaleOrderUseCase := createSaleOrderUC.NewUseCase(
		appointmentRepository,
		catalogRepository,
		salesClient,
		timelineRepository,
		txMgr,
		log,
	)

	// Handlers
	createAppointment := createAppointmentHandler.NewHandler(createAppointmentUseCase, log)
	getAvailableSlots := getAvailableSlotsHandler.NewHandler(getAvailableSlotsUseCase, log)
	getService := getServiceHandler.NewHandler(catalogSvc, log)
	getAppointment := getAppointmentHandler.NewHandler(appointmentSvc, log)
	rescheduleAppointment := rescheduleAppointmentHandler.NewHandler(rescheduleAppointmentUseCase, log)
	createSaleOrder := createSaleOrderHandler.NewHandler(createSaleOrderUseCase, log)
	customerCancel := transitionAppointmentHandler.NewCustomerCancelHandler(appointmentSvc, log)
	resetAppointment := transitionAppointmentHandler.NewResetHandler(adminSvc, log)
	runReminders := runNotificationsHandler.NewRemindersHandler(scheduler, log)
	runCompletions := runNotificationsHandler.NewCompletionsHandler(scheduler, log)

	// Настраиваем роутер
	r := mux.NewRouter()
	r.Use(middleware.RequestID)

	if cfg.Metrics.Enabled {
		r.Use(middleware.MetricsMiddleware(metricsCollector))
		r.Handle(cfg.Metrics.Path, promhttp.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	api := r.PathPrefix("/api/v1").Subrouter()

	// ============================================================
	// PUBLIC ROUTES (без аутентификации)
	// ============================================================

	api.HandleFunc("/services/{serviceId}", getService.Handle).Methods(http.MethodGet)
	api.HandleFunc("/services/{serviceId}/available-slots", getAvailableSlots.Handle).Methods(http.MethodGet)

	// Запись с портала: клиент идентифицируется по e-mail
	api.HandleFunc("/appointments", createAppointment.Handle).Methods(http.MethodPost)

	// ============================================================
	// PROTECTED ROUTES (требуют X-User-ID header)
	// ============================================================

	protected := api.PathPrefix("").Subrouter()
	protected.Use(middleware.Auth)

	protected.HandleFunc("/appointments/{appointmentId}", getAppointment.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/appointments/{appointmentId}/schedule", rescheduleAppointment.Handle).Methods(http.MethodPut)
	protected.HandleFunc("/appointments/{appointmentId}/sale-order", createSaleOrder.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/appointments/{appointmentId}/cancel", customerCancel.Handle).Methods(http.MethodPatch)

	// ============================================================
	// ADMIN ROUTES (требуют X-Admin-Token header)
	// ============================================================

	admin := api.PathPrefix("/admin").Subrouter()
	admin.Use(middleware.AdminAuth(cfg.Admin.Token))

	// Операторские переходы: без проверки срока отмены
	for _, action := range []string{
		transitionAppointmentHandler.ActionConfirm,
		transitionAppointmentHandler.ActionComplete,
		transitionAppointmentHandler.ActionCancel,
	} {
		h, err := transitionAppointmentHandler.NewHandler(appointmentSvc, action, log)
		if err != nil {
			log.Fatal("Failed to create %s handler: %v", action, err)
		}
		admin.HandleFunc("/appointments/{appointmentId}/"+action, h.Handle).Methods(http.MethodPatch)
	}
	admin.HandleFunc("/appointments/{appointmentId}/reset-to-draft", resetAppointment.Handle).Methods(http.MethodPost)
	admin.HandleFunc("/notifications/reminders", runReminders.Handle).Methods(http.MethodPost)
	admin.HandleFunc("/notifications/completions", runCompletions.Handle).Methods(http.MethodPost)

	// Фоновые задачи
	bgCtx, stopBackground := context.WithCancel(context.Background())
	var wg sync.WaitGroup

	if cfg.Notifications.RunnerEnabled {
		runner := notifications.NewRunner(scheduler, cfg.Notifications.Interval(), log)
		wg.Add(1)
		go func() {
			defer wg.Done()
			runner.Run(bgCtx)
		}()
		log.Info("Notification runner started (interval=%s)", cfg.Notifications.Interval())
	}

	if cfg.Kafka.Enabled {
		busCfg := eventbus.Config{
			Brokers:   cfg.Kafka.Brokers,
			Topic:     cfg.Kafka.Topic,
			PollEvery: time.Duration(cfg.Kafka.PollIntervalSeconds) * time.Second,
			BatchSize: cfg.Kafka.BatchSize,
		}
		publisher := eventbus.NewPublisher(timelineRepository, txMgr, eventbus.NewKafkaWriter(busCfg), log, busCfg)
		wg.Add(1)
		go func() {
			defer wg.Done()
			publisher.Run(bgCtx)
		}()
		log.Info("Outbox publisher started (topic=%s, brokers=%v)", cfg.Kafka.Topic, cfg.Kafka.Brokers)
	}

	// Создаем HTTP сервер
	addr := fmt.Sprintf(":%d", cfg.Server.HTTPPort)
	srv := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
		IdleTimeout:  time.Duration(cfg.Server.IdleTimeout) * time.Second,
	}

	// Graceful shutdown
	go func() {
		log.Info("Starting server on %s", addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Server failed to start: %v", err)
		}
	}()

	// Ожидаем сигнал завершения
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(
		context.Background(),
		time.Duration(cfg.Server.ShutdownTimeout)*time.Second,
	)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("Server forced to shutdown: %v", err)
	}

	// Останавливаем фоновые задачи и сбор метрик connection pool
	stopBackground()
	wg.Wait()
	close(stopMetricsCh)

	log.Info("Server stopped gracefully")
}
