package storage

import (
	"context"
	"errors"
	"strconv"
)

// ErrClosed возвращается при обращении к закрытому хранилищу
var ErrClosed = errors.New("storage: хранилище закрыто")

// ScoreStore определяет интерфейс постоянного хранения игровых счётчиков.
// Игре нужен один ключ — рекорд за всё время, но хранилище ключ не ограничивает.
type ScoreStore interface {
	// Get возвращает значение ключа. found == false, если ключ ещё не записан.
	Get(ctx context.Context, key string) (value int64, found bool, err error)

	// Set записывает значение ключа, перезаписывая прежнее.
	Set(ctx context.Context, key string, value int64) error

	// Delete удаляет ключ (сброс рекорда). Отсутствующий ключ не ошибка.
	Delete(ctx context.Context, key string) error

	// Close освобождает ресурсы хранилища.
	Close() error
}

func encodeScore(v int64) []byte {
	return strconv.AppendInt(nil, v, 10)
}

func decodeScore(b []byte) (int64, error) {
	return strconv.ParseInt(string(b), 10, 64)
}
