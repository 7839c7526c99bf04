package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	_ "github.com/go-sql-driver/mysql"
)

// MariaScoreStore реализует ScoreStore для базы данных MariaDB/MySQL.
// Использует таблицу game_scores.
type MariaScoreStore struct {
	db *sql.DB
}

// NewMariaScoreStore создает новое хранилище для MariaDB.
// Автоматически создает таблицу, если она не существует.
//
// Параметры:
//
//	dsn - строка подключения к базе данных (user:pass@tcp(host:port)/dbname)
func NewMariaScoreStore(ctx context.Context, dsn string) (*MariaScoreStore, error) {
	db, err := sql.Open("mysql", dsn)
	if err != nil {
		return nil, fmt.Errorf("не удалось подключиться к MariaDB: %w", err)
	}

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("не удалось проверить соединение с MariaDB: %w", err)
	}

	s := &MariaScoreStore{db: db}
	if err := s.createTable(ctx); err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}

func (s *MariaScoreStore) createTable(ctx context.Context) error {
	query := `
		CREATE TABLE IF NOT EXISTS game_scores (
			score_key  VARCHAR(64) PRIMARY KEY,
			value      BIGINT      NOT NULL,
			updated_at TIMESTAMP   DEFAULT CURRENT_TIMESTAMP
			           ON UPDATE   CURRENT_TIMESTAMP
		) ENGINE=InnoDB
	`
	if _, err := s.db.ExecContext(ctx, query); err != nil {
		return fmt.Errorf("ошибка создания таблицы game_scores: %w", err)
	}
	return nil
}

// Get implements ScoreStore
func (s *MariaScoreStore) Get(ctx context.Context, key string) (int64, bool, error) {
	var value int64
	err := s.db.QueryRowContext(ctx, `SELECT value FROM game_scores WHERE score_key = ?`, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, fmt.Errorf("ошибка чтения %s: %w", key, err)
	}
	return value, true, nil
}

// Set сохраняет значение через INSERT ... ON DUPLICATE KEY UPDATE
func (s *MariaScoreStore) Set(ctx context.Context, key string, value int64) error {
	query := `
		INSERT INTO game_scores (score_key, value)
		VALUES (?, ?)
		ON DUPLICATE KEY UPDATE
			value = VALUES(value),
			updated_at = CURRENT_TIMESTAMP
	`
	if _, err := s.db.ExecContext(ctx, query, key, value); err != nil {
		return fmt.Errorf("ошибка сохранения %s: %w", key, err)
	}
	return nil
}

// Delete implements ScoreStore
func (s *MariaScoreStore) Delete(ctx context.Context, key string) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM game_scores WHERE score_key = ?`, key); err != nil {
		return fmt.Errorf("ошибка удаления %s: %w", key, err)
	}
	return nil
}

// Close закрывает соединение с базой данных
func (s *MariaScoreStore) Close() error {
	return s.db.Close()
}
