package logging

import (
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"sync"
	"time"
)

// LogLevel определяет уровни логирования
type LogLevel int

const (
	TRACE LogLevel = iota
	DEBUG
	INFO
	WARN
	ERROR
)

// String возвращает строковое представление уровня логирования
func (l LogLevel) String() string {
	switch l {
	case TRACE:
		return "TRACE"
	case DEBUG:
		return "DEBUG"
	case INFO:
		return "INFO"
	case WARN:
		return "WARN"
	case ERROR:
		return "ERROR"
	default:
		return "UNKNOWN"
	}
}

// ParseLevel разбирает имя уровня из конфигурации. Неизвестное имя даёт INFO.
func ParseLevel(name string) LogLevel {
	switch name {
	case "trace", "TRACE":
		return TRACE
	case "debug", "DEBUG":
		return DEBUG
	case "warn", "WARN":
		return WARN
	case "error", "ERROR":
		return ERROR
	default:
		return INFO
	}
}

// Options задаёт, куда и с какими уровнями пишут логгеры.
type Options struct {
	Dir          string    // каталог для файлов логов; пусто — без файлов
	Console      io.Writer // nil — консоль отключена (например, в терминальном клиенте)
	ConsoleLevel LogLevel
	FileLevel    LogLevel
}

// Logger представляет логгер одного компонента
type Logger struct {
	component       string
	consoleLogger   *log.Logger
	fileLogger      *log.Logger
	file            *os.File
	minConsoleLevel LogLevel
	minFileLevel    LogLevel
}

var (
	optsMu      sync.RWMutex
	opts        Options
	initialized bool

	defaultLogger = discardLogger("app")
)

func discardLogger(component string) *Logger {
	return &Logger{
		component:       component,
		minConsoleLevel: ERROR + 1,
		minFileLevel:    ERROR + 1,
	}
}

// Init задаёт параметры для всех логгеров, создаваемых после вызова.
func Init(o Options) {
	optsMu.Lock()
	opts = o
	initialized = true
	optsMu.Unlock()
}

// InitDefaultLogger инициализирует логгер по умолчанию для указанного компонента
func InitDefaultLogger(component string, o Options) error {
	Init(o)
	logger, err := NewLogger(component)
	if err != nil {
		return err
	}
	defaultLogger = logger
	return nil
}

// CloseDefaultLogger закрывает логгер по умолчанию
func CloseDefaultLogger() {
	_ = defaultLogger.Close()
}

// NewLogger создаёт логгер компонента согласно текущим Options.
// До вызова Init возвращается логгер, который ничего не пишет.
func NewLogger(component string) (*Logger, error) {
	optsMu.RLock()
	o, ok := opts, initialized
	optsMu.RUnlock()

	if !ok {
		return discardLogger(component), nil
	}

	l := &Logger{
		component:       component,
		minConsoleLevel: o.ConsoleLevel,
		minFileLevel:    o.FileLevel,
	}

	if o.Console != nil {
		l.consoleLogger = log.New(o.Console, "", log.LstdFlags)
	}

	if o.Dir != "" {
		if err := os.MkdirAll(o.Dir, 0755); err != nil {
			return nil, fmt.Errorf("ошибка создания директории логов: %w", err)
		}

		timestamp := time.Now().Format("2006-01-02_15-04-05")
		filename := filepath.Join(o.Dir, fmt.Sprintf("%s_%s.log", component, timestamp))

		file, err := os.OpenFile(filename, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0666)
		if err != nil {
			return nil, fmt.Errorf("ошибка создания файла логов: %w", err)
		}
		l.file = file
		l.fileLogger = log.New(file, "", log.LstdFlags|log.Lmicroseconds)
	}

	return l, nil
}

// Close закрывает файл логгера
func (l *Logger) Close() error {
	if l == nil || l.file == nil {
		return nil
	}
	err := l.file.Close()
	l.file = nil
	l.fileLogger = nil
	return err
}

// Component возвращает имя компонента
func (l *Logger) Component() string { return l.component }

func (l *Logger) Trace(format string, args ...interface{}) { l.log(TRACE, format, args...) }
func (l *Logger) Debug(format string, args ...interface{}) { l.log(DEBUG, format, args...) }
func (l *Logger) Info(format string, args ...interface{})  { l.log(INFO, format, args...) }
func (l *Logger) Warn(format string, args ...interface{})  { l.log(WARN, format, args...) }
func (l *Logger) Error(format string, args ...interface{}) { l.log(ERROR, format, args...) }

func (l *Logger) log(level LogLevel, format string, args ...interface{}) {
	if l == nil {
		return
	}
	toFile := l.fileLogger != nil && level >= l.minFileLevel
	toConsole := l.consoleLogger != nil && level >= l.minConsoleLevel
	if !toFile && !toConsole {
		return
	}

	message := fmt.Sprintf("[%s] [%s] %s", level.String(), l.component, fmt.Sprintf(format, args...))
	if toFile {
		l.fileLogger.Println(message)
	}
	if toConsole {
		l.consoleLogger.Println(message)
	}
}

// Trace логирует сообщение уровня TRACE в логгер по умолчанию
func Trace(format string, args ...interface{}) { defaultLogger.Trace(format, args...) }

// Debug логирует сообщение уровня DEBUG в логгер по умолчанию
func Debug(format string, args ...interface{}) { defaultLogger.Debug(format, args...) }

// Info логирует сообщение уровня INFO в логгер по умолчанию
func Info(format string, args ...interface{}) { defaultLogger.Info(format, args...) }

// Warn логирует сообщение уровня WARN в логгер по умолчанию
func Warn(format string, args ...interface{}) { defaultLogger.Warn(format, args...) }

// Error логирует сообщение уровня ERROR в логгер по умолчанию
func Error(format string, args ...interface{}) { defaultLogger.Error(format, args...) }
