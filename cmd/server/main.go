package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/annel0/skyblob/internal/api"
	"github.com/annel0/skyblob/internal/auth"
	"github.com/annel0/skyblob/internal/config"
	"github.com/annel0/skyblob/internal/eventbus"
	"github.com/annel0/skyblob/internal/logging"
	"github.com/annel0/skyblob/internal/metrics"
	"github.com/annel0/skyblob/internal/observability"
	"github.com/annel0/skyblob/internal/session"
	"github.com/annel0/skyblob/internal/storage"
	"github.com/annel0/skyblob/internal/tracking"
	"github.com/annel0/skyblob/internal/world"
)

func main() {
	var (
		configPath = flag.String("config", "", "путь к YAML конфигурации (иначе $SKYBLOB_CONFIG)")
		bots       = flag.Int("bots", 0, "число синтетических игроков вместо трекера")
		replayPath = flag.String("replay", "", "проиграть запись трекинга (.jsonl.zst)")
		recordPath = flag.String("record", "", "записывать кадры трекинга в файл")
	)
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("❌ Ошибка загрузки конфигурации: %v", err)
	}

	level := logging.ParseLevel(cfg.Logging.Level)
	if err := logging.InitDefaultLogger("server", logging.Options{
		Dir:          cfg.Logging.Dir,
		Console:      os.Stdout,
		ConsoleLevel: level,
		FileLevel:    logging.DEBUG,
	}); err != nil {
		log.Fatalf("❌ Ошибка инициализации логирования: %v", err)
	}
	defer logging.CloseDefaultLogger()
	defer logging.GetLoggerManager().CloseAll()

	if err := run(cfg, *bots, *replayPath, *recordPath); err != nil {
		logging.Error("❌ %v", err)
		os.Exit(1)
	}
	logging.Info("👋 Сервер успешно остановлен")
}

func run(cfg *config.Config, bots int, replayPath, recordPath string) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	logging.Info("🎮 Запуск skyblob: мир %.0fx%.0f, %d слотов", cfg.World.Width, cfg.World.Height, cfg.World.MaxPlayers)

	// === ТЕЛЕМЕТРИЯ ===
	shutdownTelemetry, err := observability.InitTelemetry(ctx, cfg.Telemetry)
	if err != nil {
		return fmt.Errorf("telemetry: %w", err)
	}
	defer func() { _ = shutdownTelemetry(context.Background()) }()

	// === ХРАНИЛИЩЕ РЕКОРДА ===
	store, err := storage.Open(ctx, cfg.Storage)
	if err != nil {
		return fmt.Errorf("storage: %w", err)
	}
	defer store.Close()
	persistence := storage.NewBridge(store, cfg.Storage.Timeout)

	// === ШИНА СОБЫТИЙ ===
	bus, err := eventbus.Open(cfg.EventBus)
	if err != nil {
		return fmt.Errorf("eventbus: %w", err)
	}
	defer bus.Close()
	if _, err := eventbus.StartLoggingListener(ctx, bus, logging.GetComponentLogger("eventbus")); err != nil {
		return fmt.Errorf("eventbus listener: %w", err)
	}

	// === МЕТРИКИ ===
	reg := prometheus.NewRegistry()
	serverMetrics := metrics.NewServerMetrics()
	reg.MustRegister(
		collectors.NewGoCollector(),
		metrics.NewProcessCollector(serverMetrics),
	)
	gameMetrics := metrics.NewGameMetrics(reg)
	busExporter := eventbus.NewMetricsExporter(bus, reg)
	busExporter.Start()
	defer busExporter.Stop()

	// === ТРЕКИНГ ===
	feed := tracking.NewFeed(tracking.DefaultStaleAfter)
	source, closeSource, err := buildSource(cfg, feed, bots, replayPath, recordPath)
	if err != nil {
		return err
	}
	defer closeSource()

	// === СЕССИЯ ===
	sessionID := uuid.NewString()
	publisher := eventbus.NewGamePublisher(bus, sessionID, cfg.EventBus.Capacity)
	pubCtx, stopPublisher := context.WithCancel(context.Background())
	pubDone := make(chan struct{})
	go func() {
		publisher.Run(pubCtx)
		close(pubDone)
	}()
	defer func() {
		stopPublisher()
		<-pubDone
	}()

	game := session.New(cfg, session.Deps{
		ID:          sessionID,
		Source:      source,
		Persistence: persistence,
		Observers:   []world.Observer{gameMetrics, publisher},
		Metrics:     gameMetrics,
	})

	// === HTTP ===
	adminAuth, err := auth.NewAdminAuth(cfg.Auth)
	if err != nil {
		return fmt.Errorf("auth: %w", err)
	}
	rest := api.NewRestServer(api.Config{
		Port:     cfg.Server.GetRESTPort(),
		Game:     game,
		Auth:     adminAuth,
		Registry: reg,
		Metrics:  serverMetrics,
	})

	trackMux := http.NewServeMux()
	trackMux.Handle("/track", tracking.NewWSHandler(feed, cfg.World.Width, cfg.World.Height))
	trackServer := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Server.GetTrackingPort()),
		Handler:           trackMux,
		ReadHeaderTimeout: 5 * time.Second,
	}

	metricsMux := http.NewServeMux()
	metricsMux.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))
	metricsServer := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Server.GetMetricsPort()),
		Handler:           metricsMux,
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 3)
	go func() { errCh <- rest.Start() }()
	go func() { errCh <- listen(trackServer) }()
	go func() { errCh <- listen(metricsServer) }()

	gameDone := make(chan error, 1)
	go func() { gameDone <- game.Run(ctx) }()

	logging.Info("✅ Все сервисы запущены")
	logging.Info("   🌐 REST API: http://localhost:%d", cfg.Server.GetRESTPort())
	logging.Info("   📡 Трекер: ws://localhost:%d/track", cfg.Server.GetTrackingPort())
	logging.Info("   📊 Метрики: http://localhost:%d/metrics", cfg.Server.GetMetricsPort())

	var runErr error
	select {
	case <-ctx.Done():
		logging.Info("📡 Получен сигнал, завершение работы...")
	case runErr = <-errCh:
		stop()
	}
	if err := <-gameDone; !errors.Is(err, context.Canceled) && runErr == nil {
		runErr = err
	}

	// === GRACEFUL SHUTDOWN ===
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	for _, srv := range []interface{ Shutdown(context.Context) error }{trackServer, metricsServer} {
		if err := srv.Shutdown(shutdownCtx); err != nil {
			logging.Warn("⚠️ Остановка HTTP: %v", err)
		}
	}
	if err := rest.Stop(shutdownCtx); err != nil {
		logging.Warn("⚠️ Остановка REST API: %v", err)
	}

	// Цикл остановлен: последний тик применяет End и записывает итоговый рекорд
	if err := game.End(); err == nil {
		game.Step()
	}
	return runErr
}

// buildSource выбирает источник blob'ов: запись, боты или websocket-трекер
func buildSource(cfg *config.Config, feed *tracking.Feed, bots int, replayPath, recordPath string) (tracking.Source, func(), error) {
	var source tracking.Source = feed
	switch {
	case replayPath != "":
		replay, err := tracking.OpenReplay(replayPath, true)
		if err != nil {
			return nil, nil, fmt.Errorf("replay: %w", err)
		}
		logging.Info("📼 Проигрывание записи %s (%d кадров)", replayPath, replay.Len())
		source = replay
	case bots > 0:
		logging.Info("🤖 %d синтетических игроков", bots)
		source = tracking.NewBots(bots, cfg.World.Width, cfg.World.Height, cfg.World.Seed)
	}

	if recordPath == "" {
		return source, func() {}, nil
	}
	rec, err := tracking.CreateRecorder(source, recordPath)
	if err != nil {
		return nil, nil, fmt.Errorf("record: %w", err)
	}
	logging.Info("⏺️ Запись трекинга в %s", recordPath)
	return rec, func() {
		if err := rec.Close(); err != nil {
			logging.Warn("⚠️ Запись трекинга: %v", err)
		}
	}, nil
}

func listen(srv *http.Server) error {
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
