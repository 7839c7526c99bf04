package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/gdamore/tcell/v2"

	"github.com/annel0/skyblob/internal/audio"
	"github.com/annel0/skyblob/internal/config"
	"github.com/annel0/skyblob/internal/logging"
	"github.com/annel0/skyblob/internal/render"
	"github.com/annel0/skyblob/internal/session"
	"github.com/annel0/skyblob/internal/storage"
	"github.com/annel0/skyblob/internal/world"
)

func main() {
	configPath := flag.String("config", "", "путь к YAML конфигурации (иначе $SKYBLOB_CONFIG)")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("❌ Ошибка загрузки конфигурации: %v", err)
	}

	// Терминал занят экраном, логи пишутся только в файл
	dir := cfg.Logging.Dir
	if dir == "" {
		dir = "logs"
	}
	if err := logging.InitDefaultLogger("terminal", logging.Options{Dir: dir, FileLevel: logging.DEBUG}); err != nil {
		log.Fatalf("❌ Ошибка инициализации логирования: %v", err)
	}
	defer logging.CloseDefaultLogger()
	defer logging.GetLoggerManager().CloseAll()

	if err := run(cfg); err != nil {
		fmt.Fprintf(os.Stderr, "❌ %v\n", err)
		os.Exit(1)
	}
}

func run(cfg *config.Config) error {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	store, err := storage.Open(ctx, cfg.Storage)
	if err != nil {
		return fmt.Errorf("storage: %w", err)
	}
	defer store.Close()

	screen, err := tcell.NewScreen()
	if err != nil {
		return err
	}
	if err := screen.Init(); err != nil {
		return err
	}
	defer screen.Fini()
	screen.EnableMouse()
	screen.HideCursor()

	canvas := render.NewTerminal(screen, cfg.World.Width, cfg.World.Height, cfg.World.Seed)
	input := render.NewInput(screen, cfg.World.Width, cfg.World.Height)

	observers := []world.Observer{}
	if cfg.Audio.Enabled {
		speaker := audio.NewSpeakerPlayer()
		if err := speaker.Init(); err != nil {
			logging.Warn("⚠️ Звук недоступен: %v", err)
		} else {
			defer speaker.Close()
			observers = append(observers, audio.NewCues(speaker, 0.6))
		}
	}

	game := session.New(cfg, session.Deps{
		Source:      input,
		Canvas:      canvas,
		Persistence: storage.NewBridge(store, cfg.Storage.Timeout),
		Observers:   observers,
	})

	go func() {
		for {
			ev := screen.PollEvent()
			if ev == nil {
				return
			}
			if !input.HandleEvent(ev) {
				cancel()
				return
			}
			if input.TakeRestart() {
				game.Restart()
			}
		}
	}()

	logging.Info("🕹️ Терминальный клиент запущен")
	_ = game.Run(ctx)

	// Итоговый рекорд записывается при завершении игры
	if err := game.End(); err == nil {
		game.Step()
	}
	logging.Info("👋 Терминальный клиент остановлен")
	return nil
}
