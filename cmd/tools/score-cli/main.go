package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"strconv"
	"time"

	"github.com/annel0/skyblob/internal/auth"
	"github.com/annel0/skyblob/internal/config"
	"github.com/annel0/skyblob/internal/storage"
	"github.com/annel0/skyblob/internal/world"
)

const usage = `score-cli — рекорд skyblob

Использование:
  score-cli [-config path] get
  score-cli [-config path] set N
  score-cli [-config path] reset
  score-cli hash-password PASSWORD
  score-cli gen-secret`

func main() {
	configPath := flag.String("config", "", "путь к YAML конфигурации (иначе $SKYBLOB_CONFIG)")
	flag.Usage = func() { fmt.Fprintln(os.Stderr, usage) }
	flag.Parse()

	args := flag.Args()
	if len(args) == 0 {
		flag.Usage()
		os.Exit(2)
	}

	if err := run(*configPath, args); err != nil {
		log.Fatalf("❌ %v", err)
	}
}

func run(configPath string, args []string) error {
	switch args[0] {
	case "hash-password":
		if len(args) != 2 {
			return fmt.Errorf("hash-password: нужен пароль")
		}
		hash, err := auth.HashPassword(args[1])
		if err != nil {
			return err
		}
		fmt.Println(hash)
		return nil
	case "gen-secret":
		secret, err := auth.GenerateSecureSecret()
		if err != nil {
			return err
		}
		fmt.Println(secret)
		return nil
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Storage.Timeout+5*time.Second)
	defer cancel()

	store, err := storage.Open(ctx, cfg.Storage)
	if err != nil {
		return err
	}
	defer store.Close()

	switch args[0] {
	case "get":
		v, ok, err := store.Get(ctx, world.BestScoreKey)
		if err != nil {
			return err
		}
		if !ok {
			fmt.Println("рекорд не сохранён")
			return nil
		}
		fmt.Println(v)
	case "set":
		if len(args) != 2 {
			return fmt.Errorf("set: нужно значение")
		}
		v, err := strconv.ParseInt(args[1], 10, 64)
		if err != nil || v < 0 {
			return fmt.Errorf("set: некорректное значение %q", args[1])
		}
		if err := store.Set(ctx, world.BestScoreKey, v); err != nil {
			return err
		}
		fmt.Printf("✅ Рекорд: %d\n", v)
	case "reset":
		if err := store.Delete(ctx, world.BestScoreKey); err != nil {
			return err
		}
		fmt.Println("✅ Рекорд сброшен")
	default:
		return fmt.Errorf("неизвестная команда %q\n\n%s", args[0], usage)
	}
	return nil
}
