package main

import (
	"context"
	"database/sql"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/robfig/cron/v3"

	getDashboardHandler "github.com/m04kA/SMC-SpaceAnalytics/internal/api/handlers/get_dashboard"
	getSpaceMetricsHandler "github.com/m04kA/SMC-SpaceAnalytics/internal/api/handlers/get_space_metrics"
	"github.com/m04kA/SMC-SpaceAnalytics/internal/api/middleware"
	"github.com/m04kA/SMC-SpaceAnalytics/internal/config"
	"github.com/m04kA/SMC-SpaceAnalytics/internal/domain"
	"github.com/m04kA/SMC-SpaceAnalytics/internal/infra/storage/snapshot"
	libcalClient "github.com/m04kA/SMC-SpaceAnalytics/internal/integrations/libcal"
	"github.com/m04kA/SMC-SpaceAnalytics/internal/report"
	"github.com/m04kA/SMC-SpaceAnalytics/internal/report/dashboard"
	analysisService "github.com/m04kA/SMC-SpaceAnalytics/internal/service/analysis"
	"github.com/m04kA/SMC-SpaceAnalytics/internal/service/hourscache"
	analyzeSpaceUC "github.com/m04kA/SMC-SpaceAnalytics/internal/usecase/analyze_space"
	"github.com/m04kA/SMC-SpaceAnalytics/pkg/logger"
	"github.com/m04kA/SMC-SpaceAnalytics/pkg/metrics"
)

const leadTimesTopN = 10

func main() {
	var (
		configPath = flag.String("config", "config.toml", "путь к TOML-конфигурации")
		inputFile  = flag.String("input", "", "CSV со списком пространств (переопределяет конфиг)")
		outputDir  = flag.String("output", "", "каталог для CSV-результатов (переопределяет конфиг)")
		windowWk   = flag.Int("window", 0, "горизонт анализа в неделях (переопределяет конфиг)")
		durationMn = flag.Int("duration", 0, "длительность слота в минутах (переопределяет конфиг)")
		serveMode  = flag.Bool("serve", false, "запустить HTTP-сервер с расписанием вместо разового прогона")
	)
	flag.Parse()

	// Секреты LibCal из .env (файл опционален)
	_ = godotenv.Load()

	// Загружаем конфигурацию
	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}
	applyOverrides(cfg, *inputFile, *outputDir, *windowWk, *durationMn)

	// Инициализируем логгер
	log, err := logger.New(cfg.Logs.File, cfg.Logs.Level)
	if err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Close()

	log.Info("Starting SMC-SpaceAnalytics...")
	log.Info("Configuration loaded from %s", *configPath)

	// Таймзона анализа: все wall-clock времена интерпретируются в ней
	tz, err := time.LoadLocation(cfg.Analysis.Timezone)
	if err != nil {
		log.Fatal("Failed to load analysis timezone %q: %v", cfg.Analysis.Timezone, err)
	}

	// Инициализируем метрики (если включены)
	var metricsCollector *metrics.Metrics
	if cfg.Metrics.Enabled {
		metricsCollector = metrics.New(cfg.Metrics.ServiceName)
		log.Info("Metrics enabled at %s", cfg.Metrics.Path)
	}

	// Клиент LibCal: учетные данные только из окружения
	clientID := os.Getenv("LIBCAL_CLIENT_ID")
	clientSecret := os.Getenv("LIBCAL_CLIENT_SECRET")
	libcal := libcalClient.NewClient(
		cfg.LibCal.BaseURL,
		clientID,
		clientSecret,
		time.Duration(cfg.LibCal.Timeout)*time.Second,
		tz,
		log,
	)
	log.Info("LibCal client initialized (base_url=%s timeout=%ds)", cfg.LibCal.BaseURL, cfg.LibCal.Timeout)

	// Подключаемся к базе данных (опционально: история запусков и HTTP API метрик)
	var snapshotRepo *snapshot.Repository
	if cfg.Database.Enabled {
		db, err := sql.Open("postgres", cfg.Database.DSN())
		if err != nil {
			log.Fatal("Failed to connect to database: %v", err)
		}
		defer db.Close()

		db.SetMaxOpenConns(cfg.Database.MaxOpenConns)
		db.SetMaxIdleConns(cfg.Database.MaxIdleConns)
		db.SetConnMaxLifetime(time.Duration(cfg.Database.ConnMaxLifetime) * time.Second)

		if err := db.Ping(); err != nil {
			log.Fatal("Failed to ping database: %v", err)
		}
		log.Info("Successfully connected to database (host=%s, port=%d, db=%s)",
			cfg.Database.Host, cfg.Database.Port, cfg.Database.DBName)

		snapshotRepo = snapshot.NewRepository(db)
	} else {
		log.Info("Database disabled: run history and metrics API are off")
	}

	app := &application{
		cfg:     cfg,
		log:     log,
		tz:      tz,
		libcal:  libcal,
		store:   snapshotRepo,
		metrics: metricsCollector,
	}

	if !*serveMode {
		if err := app.runOnce(context.Background()); err != nil {
			log.Fatal("Analysis run failed: %v", err)
		}
		log.Info("Analysis run completed")
		return
	}

	app.serve()
}

// application собранные зависимости сервиса
type application struct {
	cfg     *config.Config
	log     *logger.Logger
	tz      *time.Location
	libcal  *libcalClient.Client
	store   *snapshot.Repository
	metrics *metrics.Metrics
}

// runOnce один полный прогон анализа: загрузка пространств, анализ,
// CSV-отчет, консольные сводки, дашборд и (при включенной БД) снапшот
func (a *application) runOnce(ctx context.Context) error {
	spaces, err := report.LoadSpaces(a.cfg.Analysis.InputFile)
	if err != nil {
		return fmt.Errorf("failed to load spaces: %w", err)
	}
	a.log.Info("Loaded %d spaces from %s", len(spaces), a.cfg.Analysis.InputFile)

	// Кэш часов живет один прогон: не больше одного запроса на локацию
	hoursCache := hourscache.New(a.libcal, a.log)
	analyzer := analyzeSpaceUC.NewUseCase(hoursCache, a.libcal, a.log)

	var store analysisService.SnapshotStore
	if a.store != nil {
		store = a.store
	}
	runner := analysisService.NewService(analyzer, store, a.metrics, a.log)

	now := time.Now().In(a.tz)
	analysisStart := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, a.tz)

	runReport, err := runner.Run(ctx, analysisService.Params{
		Spaces:        spaces,
		AnalysisStart: analysisStart,
		WindowWeeks:   a.cfg.Analysis.WindowWeeks,
		SlotDuration:  time.Duration(a.cfg.Analysis.SlotDurationMinutes) * time.Minute,
		Buffer:        time.Duration(a.cfg.Analysis.BufferMinutes) * time.Minute,
		Workers:       a.cfg.Analysis.Workers,
	})
	if err != nil {
		return err
	}
	a.log.Info("Hours cache: %d fetches for %d spaces", hoursCache.Fetches(), len(spaces))

	// CSV-результаты
	outPath := filepath.Join(a.cfg.Analysis.OutputDir,
		fmt.Sprintf("space_booking_analysis_%s.csv", analysisStart.Format("20060102")))
	if err := report.WriteResults(outPath, runReport.Results); err != nil {
		return fmt.Errorf("failed to write results: %w", err)
	}
	a.log.Info("Results written to %s", outPath)

	// Консольные сводки
	report.WriteSummaryByLocation(os.Stdout, runReport.Results)
	report.WriteLongestLeadTimes(os.Stdout, runReport.Results, leadTimesTopN)

	// Дашборд
	var series dashboard.SeriesSource
	if a.store != nil {
		series = a.store
	}
	gen := dashboard.NewGenerator(series, a.log)
	if _, err := gen.WriteFile(ctx, a.cfg.Analysis.DocsDir, runReport.Results, now); err != nil {
		return fmt.Errorf("failed to write dashboard: %w", err)
	}

	return nil
}

// serve HTTP-сервер с ежедневным пере-анализом по расписанию
func (a *application) serve() {
	cfg := a.cfg
	log := a.log

	// Первый прогон сразу при старте, чтобы дашборд был актуален
	go func() {
		if err := a.runOnce(context.Background()); err != nil {
			log.Error("Initial analysis run failed: %v", err)
		}
	}()

	// Планировщик пере-анализа
	var scheduler *cron.Cron
	if cfg.Schedule.Enabled {
		scheduler = cron.New(cron.WithLocation(a.tz))
		_, err := scheduler.AddFunc(cfg.Schedule.Cron, func() {
			if err := a.runOnce(context.Background()); err != nil {
				log.Error("Scheduled analysis run failed: %v", err)
			}
		})
		if err != nil {
			log.Fatal("Failed to register schedule %q: %v", cfg.Schedule.Cron, err)
		}
		scheduler.Start()
		log.Info("Scheduled re-analysis enabled: cron=%q tz=%s", cfg.Schedule.Cron, a.tz)
	}

	// Настраиваем роутер
	r := mux.NewRouter()

	if cfg.Metrics.Enabled {
		r.Use(middleware.Metrics(a.metrics))
		r.Handle(cfg.Metrics.Path, promhttp.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	r.HandleFunc("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	}).Methods(http.MethodGet)

	// Дашборд
	getDashboard := getDashboardHandler.NewHandler(cfg.Analysis.DocsDir, log)
	r.HandleFunc("/", getDashboard.Handle).Methods(http.MethodGet)
	r.HandleFunc("/dashboard", getDashboard.Handle).Methods(http.MethodGet)

	// API prefix
	api := r.PathPrefix("/api/v1").Subrouter()

	// Метрики пространства из последнего запуска (требует БД)
	if a.store != nil {
		getSpaceMetrics := getSpaceMetricsHandler.NewHandler(a.store, log)
		api.HandleFunc("/spaces/{spaceId}/metrics", getSpaceMetrics.Handle).Methods(http.MethodGet)
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

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down server...")

	if scheduler != nil {
		scheduler.Stop()
		log.Info("Scheduler stopped")
	}

	shutdownCtx, cancel := context.WithTimeout(
		context.Background(),
		time.Duration(cfg.Server.ShutdownTimeout)*time.Second,
	)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("Server forced to shutdown: %v", err)
	}

	log.Info("Server stopped gracefully")
}

func applyOverrides(cfg *config.Config, inputFile, outputDir string, windowWeeks, durationMinutes int) {
	if inputFile != "" {
		cfg.Analysis.InputFile = inputFile
	}
	if outputDir != "" {
		cfg.Analysis.OutputDir = outputDir
	}
	if windowWeeks > 0 {
		cfg.Analysis.WindowWeeks = windowWeeks
	}
	if durationMinutes > 0 {
		cfg.Analysis.SlotDurationMinutes = durationMinutes
	}

	if cfg.Analysis.WindowWeeks == 0 {
		cfg.Analysis.WindowWeeks = domain.DefaultAnalysisWindowWeeks
	}
	if cfg.Analysis.SlotDurationMinutes == 0 {
		cfg.Analysis.SlotDurationMinutes = domain.DefaultSlotDurationMinutes
	}
	if cfg.Analysis.Timezone == "" {
		cfg.Analysis.Timezone = domain.DefaultTimezone
	}
	if cfg.Analysis.BufferMinutes == 0 {
		cfg.Analysis.BufferMinutes = domain.DefaultBufferMinutes
	}
}
