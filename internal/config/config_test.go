package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault_IsValid(t *testing.T) {
	cfg := Default()
	require.NoError(t, cfg.Validate())
	assert.Equal(t, 2, cfg.World.MaxPlayers)
	assert.Equal(t, 2, cfg.World.EnemyLowWater)
	assert.Less(t, cfg.Enemies.Kamikaze.InterShootTime, 0.0, "камикадзе не стреляет")
}

func TestLoad_OverridesDefaults(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "skyblob.yaml")
	data := []byte(`
world:
  max_players: 4
enemies:
  hard:
    probability: 10
storage:
  backend: memory
  timeout: 500ms
`)
	require.NoError(t, os.WriteFile(path, data, 0644))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 4, cfg.World.MaxPlayers)
	assert.Equal(t, 10.0, cfg.Enemies.Hard.Probability)
	assert.Equal(t, "memory", cfg.Storage.Backend)
	assert.Equal(t, 500*time.Millisecond, cfg.Storage.Timeout)
	// Не заданные в файле значения остаются дефолтными
	assert.Equal(t, 192.0, cfg.World.Width)
	assert.Equal(t, 20.0, cfg.Enemies.Kamikaze.Probability)
}

func TestLoad_EmptyPathUsesEnvOrDefaults(t *testing.T) {
	t.Setenv("SKYBLOB_CONFIG", "")
	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestValidate_RejectsImpossibleTuning(t *testing.T) {
	cfg := Default()
	cfg.World.MaxPlayers = 0
	cfg.Enemies.Hard.Probability = 90
	cfg.World.EnemyBatchMin = 5

	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "max_players")
	assert.Contains(t, err.Error(), "hard+kamikaze")
	assert.Contains(t, err.Error(), "enemy_batch_min")
}

func TestServerConfig_PortFallbacks(t *testing.T) {
	s := ServerConfig{RESTPort: 9000}
	assert.Equal(t, 9000, s.GetRESTPort())

	t.Setenv("SKYBLOB_METRICS_PORT", "9100")
	assert.Equal(t, 9100, s.GetMetricsPort())

	t.Setenv("SKYBLOB_TRACKING_PORT", "not-a-port")
	assert.Equal(t, 7777, s.GetTrackingPort())
}
