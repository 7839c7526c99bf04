package logging

import (
	"errors"
	"fmt"
	"sync"
)

// LoggerManager хранит по одному логгеру на компонент (world, session, storage, ...)
type LoggerManager struct {
	mu      sync.Mutex
	loggers map[string]*Logger
}

var manager = &LoggerManager{loggers: make(map[string]*Logger)}

// GetLoggerManager возвращает общий менеджер логгеров
func GetLoggerManager() *LoggerManager { return manager }

// Get возвращает логгер компонента, создавая его при первом обращении.
// До Init логгеры немые и не кешируются, чтобы после Init компонент получил настоящий.
func (lm *LoggerManager) Get(component string) *Logger {
	lm.mu.Lock()
	defer lm.mu.Unlock()

	if l, ok := lm.loggers[component]; ok {
		return l
	}

	l, err := NewLogger(component)
	if err != nil {
		// файл не открылся: пишем только в консоль
		fallback := discardLogger(component)
		fallback.consoleLogger = defaultLogger.consoleLogger
		fallback.minConsoleLevel = INFO
		Warn("⚠️ Логгер %s без файла: %v", component, err)
		return fallback
	}

	optsMu.RLock()
	ready := initialized
	optsMu.RUnlock()
	if ready {
		lm.loggers[component] = l
	}
	return l
}

// CloseAll закрывает файлы всех компонентных логгеров
func (lm *LoggerManager) CloseAll() error {
	lm.mu.Lock()
	defer lm.mu.Unlock()

	var errs []error
	for component, l := range lm.loggers {
		if err := l.Close(); err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", component, err))
		}
	}
	lm.loggers = make(map[string]*Logger)
	return errors.Join(errs...)
}

func GetComponentLogger(component string) *Logger { return manager.Get(component) }

func GetWorldLogger() *Logger { return GetComponentLogger("world") }

func GetSessionLogger() *Logger { return GetComponentLogger("session") }

func GetStorageLogger() *Logger { return GetComponentLogger("storage") }

func GetTrackingLogger() *Logger { return GetComponentLogger("tracking") }

func GetAPILogger() *Logger { return GetComponentLogger("api") }
