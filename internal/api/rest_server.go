package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	"github.com/annel0/skyblob/internal/auth"
	"github.com/annel0/skyblob/internal/logging"
	"github.com/annel0/skyblob/internal/metrics"
	"github.com/annel0/skyblob/internal/middleware"
	"github.com/annel0/skyblob/internal/session"
)

// Game — управляемая игровая сессия
type Game interface {
	Snapshot() session.Snapshot
	End() error
	Restart()
}

// Authenticator выдаёт и проверяет токены администратора
type Authenticator interface {
	Login(password string) (string, error)
	ValidateJWT(token string) (*auth.Claims, error)
}

// RestServer представляет REST API сервер
type RestServer struct {
	router     *gin.Engine
	game       Game
	auth       Authenticator
	metrics    *metrics.ServerMetrics
	httpServer *http.Server
	log        *logging.Logger
}

// Config содержит конфигурацию для REST сервера
type Config struct {
	Port     int                  // порт для запуска сервера
	Game     Game                 // игровая сессия
	Auth     Authenticator        // вход администратора
	Registry *prometheus.Registry // метрики для /metrics; nil — собственный реестр
	Metrics  *metrics.ServerMetrics
}

// NewRestServer создает новый REST API сервер
func NewRestServer(cfg Config) *RestServer {
	if cfg.Port == 0 {
		cfg.Port = 8088
	}
	if cfg.Registry == nil {
		cfg.Registry = prometheus.NewRegistry()
	}
	if cfg.Metrics == nil {
		cfg.Metrics = metrics.NewServerMetrics()
	}

	gin.SetMode(gin.ReleaseMode)

	router := gin.New()        // без стандартного logger/recovery
	router.Use(gin.Recovery()) // добавим только recovery

	// === Observability middleware ===
	router.Use(otelgin.Middleware("rest_api"))
	router.Use(middleware.NewRequestLogger().Handler())

	promMw := middleware.NewPrometheusMiddleware("rest_api", cfg.Registry)
	router.Use(promMw.Handler())
	promMw.RegisterMetricsEndpoint(router, cfg.Registry)

	rs := &RestServer{
		router:  router,
		game:    cfg.Game,
		auth:    cfg.Auth,
		metrics: cfg.Metrics,
		log:     logging.GetAPILogger(),
	}
	rs.httpServer = &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Port),
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
	}

	rs.setupRoutes()
	return rs
}

// setupRoutes настраивает маршруты REST API
func (rs *RestServer) setupRoutes() {
	rs.router.Use(func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", "*")
		c.Header("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Origin, Content-Type, Accept, Authorization")

		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}
		c.Next()
	})

	api := rs.router.Group("/api")
	api.GET("/scores", rs.handleScores)
	api.GET("/world", rs.handleWorld)
	api.GET("/server", rs.handleServerInfo)
	api.POST("/auth/login", rs.handleLogin)

	// Административные эндпоинты (JWT администратора)
	admin := api.Group("/admin")
	admin.Use(rs.jwtMiddleware(), rs.adminMiddleware())
	{
		admin.POST("/session/end", rs.handleSessionEnd)
		admin.POST("/session/restart", rs.handleSessionRestart)
	}

	rs.router.GET("/health", rs.handleHealth)
}

// Handler возвращает http.Handler сервера (для тестов и встраивания)
func (rs *RestServer) Handler() http.Handler { return rs.router }

// Start запускает REST сервер и блокируется до Stop
func (rs *RestServer) Start() error {
	rs.log.Info("🌐 REST API слушает %s", rs.httpServer.Addr)
	if err := rs.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Stop останавливает сервер, дожидаясь текущих запросов
func (rs *RestServer) Stop(ctx context.Context) error {
	return rs.httpServer.Shutdown(ctx)
}

// GenericResponse представляет общий ответ API
type GenericResponse struct {
	Success bool        `json:"success"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

// LoginRequest представляет запрос на вход
type LoginRequest struct {
	Password string `json:"password" binding:"required"`
}

// LoginResponse представляет ответ на вход
type LoginResponse struct {
	Success bool   `json:"success"`
	Token   string `json:"token,omitempty"`
	Message string `json:"message"`
}

// SlotScore — очки одного слота
type SlotScore struct {
	Slot    int   `json:"slot"`
	Present bool  `json:"present"`
	Offline bool  `json:"offline"`
	Score   int64 `json:"score"`
	Best    int64 `json:"best"`
	Lives   int   `json:"lives"`
}

// ScoresResponse — ответ /api/scores
type ScoresResponse struct {
	BestEver int64       `json:"best_ever"`
	Ended    bool        `json:"ended"`
	Slots    []SlotScore `json:"slots"`
}

// WorldResponse — ответ /api/world
type WorldResponse struct {
	SessionID  string    `json:"session_id"`
	StartedAt  time.Time `json:"started_at"`
	Tick       uint64    `json:"tick"`
	Ended      bool      `json:"ended"`
	FrameRate  float64   `json:"frame_rate"`
	Restarts   int       `json:"restarts"`
	Players    int       `json:"players"`
	Enemies    int       `json:"enemies"`
	Bullets    int       `json:"bullets"`
	PowerUps   int       `json:"powerups"`
	Explosions int       `json:"explosions"`
}

func (rs *RestServer) handleLogin(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, LoginResponse{Message: "Неверный формат запроса"})
		return
	}

	token, err := rs.auth.Login(req.Password)
	switch {
	case errors.Is(err, auth.ErrInvalidCredentials):
		rs.log.Warn("🔐 Неудачная попытка входа с %s", c.ClientIP())
		c.JSON(http.StatusUnauthorized, LoginResponse{Message: "Неверный пароль"})
		return
	case errors.Is(err, auth.ErrLoginDisabled):
		c.JSON(http.StatusForbidden, LoginResponse{Message: "Вход администратора отключён"})
		return
	case err != nil:
		rs.log.Error("❌ Ошибка входа: %v", err)
		c.JSON(http.StatusInternalServerError, LoginResponse{Message: "Внутренняя ошибка сервера"})
		return
	}

	rs.log.Info("🔑 Администратор вошёл с %s", c.ClientIP())
	c.JSON(http.StatusOK, LoginResponse{Success: true, Token: token, Message: "Успешный вход"})
}

func (rs *RestServer) handleScores(c *gin.Context) {
	snap := rs.game.Snapshot()
	resp := ScoresResponse{
		BestEver: snap.World.BestEver,
		Ended:    snap.World.Ended,
		Slots:    make([]SlotScore, len(snap.World.Slots)),
	}
	for i, s := range snap.World.Slots {
		resp.Slots[i] = SlotScore{
			Slot:    s.Slot,
			Present: s.Present,
			Offline: s.Offline,
			Score:   s.Score,
			Best:    s.Best,
			Lives:   s.Lives,
		}
	}
	c.JSON(http.StatusOK, resp)
}

func (rs *RestServer) handleWorld(c *gin.Context) {
	snap := rs.game.Snapshot()
	players := 0
	for _, s := range snap.World.Slots {
		if s.Present {
			players++
		}
	}
	c.JSON(http.StatusOK, WorldResponse{
		SessionID:  snap.SessionID,
		StartedAt:  snap.StartedAt,
		Tick:       snap.World.Tick,
		Ended:      snap.World.Ended,
		FrameRate:  snap.FrameRate,
		Restarts:   snap.Restarts,
		Players:    players,
		Enemies:    snap.World.Enemies,
		Bullets:    snap.World.Bullets,
		PowerUps:   snap.World.PowerUps,
		Explosions: snap.World.Explosions,
	})
}

func (rs *RestServer) handleServerInfo(c *gin.Context) {
	info := map[string]interface{}{
		"name":   "skyblob",
		"status": "running",
		"uptime": rs.metrics.GetUptime(),
		"memory": rs.metrics.GetDetailedMemoryStats(),
	}
	if cpu, err := rs.metrics.GetCPUUsage(); err == nil {
		info["cpu_percent"] = fmt.Sprintf("%.1f", cpu)
	}
	if rss, err := rs.metrics.GetRSS(); err == nil {
		info["rss_mb"] = fmt.Sprintf("%.1f", rss)
	}

	c.JSON(http.StatusOK, GenericResponse{
		Success: true,
		Message: "Информация о сервере",
		Data:    info,
	})
}

func (rs *RestServer) handleSessionEnd(c *gin.Context) {
	if err := rs.game.End(); err != nil {
		if errors.Is(err, session.ErrEnded) {
			c.JSON(http.StatusConflict, GenericResponse{Message: "Игра уже завершена"})
			return
		}
		if errors.Is(err, session.ErrBusy) {
			c.JSON(http.StatusServiceUnavailable, GenericResponse{Message: err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, GenericResponse{Message: err.Error()})
		return
	}
	rs.log.Info("🏁 Завершение игры по запросу администратора")
	c.JSON(http.StatusAccepted, GenericResponse{Success: true, Message: "Игра будет завершена"})
}

func (rs *RestServer) handleSessionRestart(c *gin.Context) {
	rs.game.Restart()
	rs.log.Info("🔄 Перезапуск игры по запросу администратора")
	c.JSON(http.StatusAccepted, GenericResponse{Success: true, Message: "Игра будет перезапущена"})
}

func (rs *RestServer) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": "ok",
		"time":   time.Now().Unix(),
	})
}
