package audio

import (
	"testing"
	"time"

	"github.com/gopxl/beep"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/annel0/skyblob/internal/world"
	"github.com/annel0/skyblob/internal/world/entity"
)

type recordingPlayer struct {
	played []beep.Streamer
}

func (p *recordingPlayer) Play(s beep.Streamer) { p.played = append(p.played, s) }

// drain читает поток до конца и возвращает число сэмплов
func drain(s beep.Streamer) int {
	buf := make([][2]float64, 512)
	total := 0
	for {
		n, ok := s.Stream(buf)
		total += n
		if !ok || n == 0 {
			return total
		}
	}
}

func TestOscillator_Length(t *testing.T) {
	rate := beep.SampleRate(1000)
	s := NewOscillator(100, 0, 100*time.Millisecond, WaveSine, rate)
	assert.Equal(t, 100, drain(s))
}

func TestDecay_FadesToSilence(t *testing.T) {
	rate := beep.SampleRate(1000)
	d := 50 * time.Millisecond
	s := NewDecay(NewOscillator(0, 0, d, WaveSquare, rate), d, rate)

	buf := make([][2]float64, 50)
	n, ok := s.Stream(buf)
	require.True(t, ok)
	require.Equal(t, 50, n)
	assert.Equal(t, 1.0, buf[0][0])
	assert.InDelta(t, 0.02, buf[49][0], 1e-9)
}

func TestCueFor(t *testing.T) {
	tests := []struct {
		name string
		ev   world.Event
		want Cue
	}{
		{"player shot", world.Event{Type: world.EventShotFired, Plane: entity.KindPlayer}, CueShot},
		{"enemy shot", world.Event{Type: world.EventShotFired, Plane: entity.KindHard}, CueNone},
		{"enemy destroyed", world.Event{Type: world.EventEnemyDestroyed}, CueExplosion},
		{"powerup", world.Event{Type: world.EventPowerUpCollected}, CuePowerUp},
		{"death", world.Event{Type: world.EventPlayerDied}, CueDeath},
		{"left", world.Event{Type: world.EventPlayerLeft}, CueNone},
		{"best", world.Event{Type: world.EventNewBestScore}, CueBestScore},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CueFor(tt.ev))
		})
	}
}

func TestCues_PlaysFiniteSounds(t *testing.T) {
	p := &recordingPlayer{}
	c := NewCues(p, 0.5)

	c.OnEvent(world.Event{Type: world.EventEnemyDestroyed})
	c.OnEvent(world.Event{Type: world.EventPlayerOffline})
	c.OnEvent(world.Event{Type: world.EventNewBestScore})
	require.Len(t, p.played, 2)

	for _, s := range p.played {
		n := drain(s)
		assert.Positive(t, n)
		assert.Less(t, n, sampleRate.N(2*time.Second))
	}
}

func TestSpeakerPlayer_SilentBeforeInit(t *testing.T) {
	sp := NewSpeakerPlayer()
	sp.Play(NewOscillator(440, 0, time.Millisecond, WaveSine, sampleRate))
	sp.Close()
}
