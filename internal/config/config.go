package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

// Config корневая структура конфигурации приложения.
type Config struct {
	World     WorldConfig     `yaml:"world"`
	Player    PlayerConfig    `yaml:"player"`
	Enemies   EnemiesConfig   `yaml:"enemies"`
	Bullet    BulletConfig    `yaml:"bullet"`
	PowerUps  PowerUpsConfig  `yaml:"powerups"`
	Explosion ExplosionConfig `yaml:"explosion"`
	Session   SessionConfig   `yaml:"session"`
	Storage   StorageConfig   `yaml:"storage"`
	EventBus  EventBusConfig  `yaml:"eventbus"`
	Server    ServerConfig    `yaml:"server"`
	Auth      AuthConfig      `yaml:"auth"`
	Telemetry TelemetryConfig `yaml:"telemetry"`
	Audio     AudioConfig     `yaml:"audio"`
	Logging   LoggingConfig   `yaml:"logging"`
}

type WorldConfig struct {
	Width             float64 `yaml:"width"`
	Height            float64 `yaml:"height"`
	MaxPlayers        int     `yaml:"max_players"`
	EnemyLowWater     int     `yaml:"enemy_low_water"`
	EnemyBatchMin     int     `yaml:"enemy_batch_min"`
	EnemyBatchMax     int     `yaml:"enemy_batch_max"`
	PlayerRespawnTime float64 `yaml:"player_respawn_time"`
	BackgroundSpeed   float64 `yaml:"background_speed"`
	BackgroundLayers  int     `yaml:"background_layers"`
	Seed              int64   `yaml:"seed"` // 0 — сид от текущего времени
}

type PlayerConfig struct {
	Width             float64 `yaml:"width"`
	Height            float64 `yaml:"height"`
	InterShootTime    float64 `yaml:"inter_shoot_time"`
	Lives             int     `yaml:"lives"`
	DisconnectionTime float64 `yaml:"disconnection_time"`
	AnimFrameTime     float64 `yaml:"anim_frame_time"`
	InvertX           bool    `yaml:"invert_x"`
	InvertY           bool    `yaml:"invert_y"`
}

// EnemyConfig описывает один тип вражеского самолёта.
// Отрицательный InterShootTime означает, что самолёт не стреляет.
type EnemyConfig struct {
	Velocity       float64 `yaml:"velocity"`
	InterShootTime float64 `yaml:"inter_shoot_time"`
	Lives          int     `yaml:"lives"`
	Points         int64   `yaml:"points"`
	Probability    float64 `yaml:"probability"`
}

type EnemiesConfig struct {
	Width    float64     `yaml:"width"`
	Height   float64     `yaml:"height"`
	Basic    EnemyConfig `yaml:"basic"`
	Hard     EnemyConfig `yaml:"hard"`
	Kamikaze EnemyConfig `yaml:"kamikaze"`
}

type BulletConfig struct {
	Speed  float64 `yaml:"speed"`
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
}

type PowerUpsConfig struct {
	TimeBetween         float64 `yaml:"time_between"`
	Lifetime            float64 `yaml:"lifetime"`
	Width               float64 `yaml:"width"`
	Height              float64 `yaml:"height"`
	ScoreGiven          int64   `yaml:"score_given"`
	RapidFireMultiplier float64 `yaml:"rapid_fire_multiplier"`
	RapidFireDuration   float64 `yaml:"rapid_fire_duration"`
	TripleFireDuration  float64 `yaml:"triple_fire_duration"`
}

type ExplosionConfig struct {
	Width        float64 `yaml:"width"`
	Height       float64 `yaml:"height"`
	TimePerFrame float64 `yaml:"time_per_frame"`
	Frames       int     `yaml:"frames"`
}

type SessionConfig struct {
	FrameRate float64 `yaml:"frame_rate"`
}

type StorageConfig struct {
	Backend   string        `yaml:"backend"` // memory | badger | redis | maria | mongo
	Path      string        `yaml:"path"`
	RedisAddr string        `yaml:"redis_addr"`
	RedisDB   int           `yaml:"redis_db"`
	MariaDSN  string        `yaml:"maria_dsn"`
	MongoURI  string        `yaml:"mongo_uri"`
	MongoDB   string        `yaml:"mongo_db"`
	Timeout   time.Duration `yaml:"timeout"`
}

type EventBusConfig struct {
	Backend   string `yaml:"backend"` // memory | nats
	URL       string `yaml:"url"`
	Stream    string `yaml:"stream"`
	Retention int    `yaml:"retention_hours"`
	Capacity  int    `yaml:"capacity"`
}

type ServerConfig struct {
	RESTPort     int `yaml:"rest_port"`
	MetricsPort  int `yaml:"metrics_port"`
	TrackingPort int `yaml:"tracking_port"`
}

type AuthConfig struct {
	AdminPasswordHash string `yaml:"admin_password_hash"`
	JWTSecret         string `yaml:"jwt_secret"` // base64, минимум 32 байта
}

type TelemetryConfig struct {
	Enabled     bool   `yaml:"enabled"`
	ServiceName string `yaml:"service_name"`
}

type AudioConfig struct {
	Enabled bool `yaml:"enabled"`
}

type LoggingConfig struct {
	Dir   string `yaml:"dir"`
	Level string `yaml:"level"`
}

// Default возвращает полный набор настроек по умолчанию.
func Default() *Config {
	return &Config{
		World: WorldConfig{
			Width:             192,
			Height:            157,
			MaxPlayers:        2,
			EnemyLowWater:     2,
			EnemyBatchMin:     2,
			EnemyBatchMax:     4,
			PlayerRespawnTime: 3,
			BackgroundSpeed:   10,
			BackgroundLayers:  2,
		},
		Player: PlayerConfig{
			Width:             18,
			Height:            18,
			InterShootTime:    0.6,
			Lives:             10,
			DisconnectionTime: 20,
			AnimFrameTime:     0.5,
		},
		Enemies: EnemiesConfig{
			Width:    18,
			Height:   18,
			Basic:    EnemyConfig{Velocity: 12, InterShootTime: 2.5, Lives: 2, Points: 10, Probability: 50},
			Hard:     EnemyConfig{Velocity: 18, InterShootTime: 1.5, Lives: 5, Points: 100, Probability: 30},
			Kamikaze: EnemyConfig{Velocity: 45, InterShootTime: -1, Lives: 1, Points: 50, Probability: 20},
		},
		Bullet: BulletConfig{Speed: 80, Width: 8, Height: 8},
		PowerUps: PowerUpsConfig{
			TimeBetween:         10,
			Lifetime:            8,
			Width:               8,
			Height:              8,
			ScoreGiven:          50,
			RapidFireMultiplier: 0.3,
			RapidFireDuration:   10,
			TripleFireDuration:  10,
		},
		Explosion: ExplosionConfig{Width: 18, Height: 18, TimePerFrame: 0.1, Frames: 5},
		Session:   SessionConfig{FrameRate: 30},
		Storage: StorageConfig{
			Backend:   "badger",
			Path:      "data",
			RedisAddr: "localhost:6379",
			MongoURI:  "mongodb://localhost:27017",
			MongoDB:   "skyblob",
			Timeout:   2 * time.Second,
		},
		EventBus: EventBusConfig{
			Backend:   "memory",
			URL:       "nats://127.0.0.1:4222",
			Stream:    "SKYBLOB",
			Retention: 24,
			Capacity:  1024,
		},
		Telemetry: TelemetryConfig{ServiceName: "skyblob"},
		Logging:   LoggingConfig{Dir: "logs", Level: "info"},
	}
}

// GetRESTPort возвращает REST API порт с поддержкой fallback значений
func (s *ServerConfig) GetRESTPort() int {
	return getPortWithEnvFallback(s.RESTPort, "SKYBLOB_REST_PORT", 8088)
}

// GetMetricsPort возвращает Prometheus метрики порт с поддержкой fallback значений
func (s *ServerConfig) GetMetricsPort() int {
	return getPortWithEnvFallback(s.MetricsPort, "SKYBLOB_METRICS_PORT", 2112)
}

// GetTrackingPort возвращает порт websocket-трекера с поддержкой fallback значений
func (s *ServerConfig) GetTrackingPort() int {
	return getPortWithEnvFallback(s.TrackingPort, "SKYBLOB_TRACKING_PORT", 7777)
}

// getPortWithEnvFallback возвращает порт с приоритетом: config -> env -> default
func getPortWithEnvFallback(configPort int, envVar string, defaultPort int) int {
	if configPort > 0 {
		return configPort
	}

	if envVal := os.Getenv(envVar); envVal != "" {
		if port, err := strconv.Atoi(envVal); err == nil && port > 0 {
			return port
		}
	}

	return defaultPort
}

// Load читает YAML файл конфигурации поверх Default().
// Если path == "", пытается прочитать из ENV SKYBLOB_CONFIG, иначе возвращает дефолты.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path == "" {
		path = os.Getenv("SKYBLOB_CONFIG")
		if path == "" {
			return cfg, nil
		}
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("чтение конфигурации %s: %w", path, err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("разбор конфигурации %s: %w", path, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate отклоняет заведомо невозможные настройки.
func (c *Config) Validate() error {
	var errs []error

	if c.World.Width <= 0 || c.World.Height <= 0 {
		errs = append(errs, fmt.Errorf("world: размер должен быть положительным (%vx%v)", c.World.Width, c.World.Height))
	}
	if c.World.MaxPlayers <= 0 {
		errs = append(errs, fmt.Errorf("world: max_players должен быть > 0"))
	}
	if c.World.EnemyBatchMin < 0 || c.World.EnemyBatchMin > c.World.EnemyBatchMax {
		errs = append(errs, fmt.Errorf("world: enemy_batch_min=%d > enemy_batch_max=%d", c.World.EnemyBatchMin, c.World.EnemyBatchMax))
	}
	if c.Player.Lives <= 0 {
		errs = append(errs, fmt.Errorf("player: lives должен быть > 0"))
	}
	if p := c.Enemies.Hard.Probability + c.Enemies.Kamikaze.Probability; p > 100 {
		errs = append(errs, fmt.Errorf("enemies: сумма вероятностей hard+kamikaze %.1f > 100", p))
	}
	for name, e := range map[string]EnemyConfig{"basic": c.Enemies.Basic, "hard": c.Enemies.Hard, "kamikaze": c.Enemies.Kamikaze} {
		if e.Lives <= 0 {
			errs = append(errs, fmt.Errorf("enemies.%s: lives должен быть > 0", name))
		}
	}
	if c.Explosion.Frames <= 0 {
		errs = append(errs, fmt.Errorf("explosion: frames должен быть > 0"))
	}
	if c.Session.FrameRate < 0 {
		errs = append(errs, fmt.Errorf("session: frame_rate не может быть отрицательным"))
	}

	return errors.Join(errs...)
}
