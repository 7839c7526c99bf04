package storage

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"sync"

	"github.com/dgraph-io/badger/v3"
)

const badgerKeyPrefix = "score:"

// BadgerScoreStore хранит счётчики во встроенной BadgerDB
type BadgerScoreStore struct {
	db     *badger.DB
	mu     sync.RWMutex
	closed bool
}

// NewBadgerScoreStore открывает (или создаёт) базу в каталоге dataPath/scores
func NewBadgerScoreStore(dataPath string) (*BadgerScoreStore, error) {
	opts := badger.DefaultOptions(filepath.Join(dataPath, "scores"))
	opts.Logger = nil // Отключаем логирование BadgerDB
	return openBadger(opts)
}

// NewInMemoryBadgerScoreStore создаёт базу без файлов на диске
func NewInMemoryBadgerScoreStore() (*BadgerScoreStore, error) {
	opts := badger.DefaultOptions("").WithInMemory(true)
	opts.Logger = nil
	return openBadger(opts)
}

func openBadger(opts badger.Options) (*BadgerScoreStore, error) {
	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("не удалось открыть BadgerDB: %w", err)
	}
	return &BadgerScoreStore{db: db}, nil
}

// Get implements ScoreStore
func (s *BadgerScoreStore) Get(_ context.Context, key string) (int64, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.closed {
		return 0, false, ErrClosed
	}

	var value int64
	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(badgerKeyPrefix + key))
		if err != nil {
			return err
		}
		return item.Value(func(val []byte) error {
			v, err := decodeScore(val)
			value = v
			return err
		})
	})

	if errors.Is(err, badger.ErrKeyNotFound) {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, fmt.Errorf("ошибка чтения %s: %w", key, err)
	}
	return value, true, nil
}

// Set implements ScoreStore
func (s *BadgerScoreStore) Set(_ context.Context, key string, value int64) error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.closed {
		return ErrClosed
	}

	err := s.db.Update(func(txn *badger.Txn) error {
		return txn.Set([]byte(badgerKeyPrefix+key), encodeScore(value))
	})
	if err != nil {
		return fmt.Errorf("ошибка записи %s: %w", key, err)
	}
	return nil
}

// Delete implements ScoreStore
func (s *BadgerScoreStore) Delete(_ context.Context, key string) error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.closed {
		return ErrClosed
	}

	err := s.db.Update(func(txn *badger.Txn) error {
		return txn.Delete([]byte(badgerKeyPrefix + key))
	})
	if err != nil {
		return fmt.Errorf("ошибка удаления %s: %w", key, err)
	}
	return nil
}

// Close закрывает базу
func (s *BadgerScoreStore) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return nil
	}
	s.closed = true
	return s.db.Close()
}
