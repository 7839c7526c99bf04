// Package audio озвучивает игровые события короткими синтезированными звуками.
package audio

import (
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"

	"github.com/annel0/skyblob/internal/world"
	"github.com/annel0/skyblob/internal/world/entity"
)

const sampleRate = beep.SampleRate(44100)

// Cue — звуковой сигнал
type Cue int

const (
	CueNone Cue = iota
	CueShot
	CueExplosion
	CuePowerUp
	CueDeath
	CueBestScore
)

// Player воспроизводит поток
type Player interface {
	Play(beep.Streamer)
}

// Cues — наблюдатель мира, проигрывающий звук на события
type Cues struct {
	player Player
	volume float64
}

// NewCues создаёт озвучку поверх player
func NewCues(player Player, volume float64) *Cues {
	return &Cues{player: player, volume: volume}
}

// CueFor выбирает звук для события. Выстрелы врагов не озвучиваются.
func CueFor(e world.Event) Cue {
	switch e.Type {
	case world.EventShotFired:
		if e.Plane == entity.KindPlayer {
			return CueShot
		}
	case world.EventEnemyDestroyed:
		return CueExplosion
	case world.EventPowerUpCollected:
		return CuePowerUp
	case world.EventPlayerDied:
		return CueDeath
	case world.EventNewBestScore:
		return CueBestScore
	}
	return CueNone
}

// OnEvent implements world.Observer
func (c *Cues) OnEvent(e world.Event) {
	if s := c.Sound(CueFor(e)); s != nil {
		c.player.Play(s)
	}
}

// Sound синтезирует поток для сигнала; nil для CueNone
func (c *Cues) Sound(cue Cue) beep.Streamer {
	var s beep.Streamer
	switch cue {
	case CueShot:
		d := 60 * time.Millisecond
		s = NewDecay(NewOscillator(880, -4000, d, WaveSquare, sampleRate), d, sampleRate)
		s = volume(s, 0.3)
	case CueExplosion:
		d := 300 * time.Millisecond
		s = NewDecay(NewOscillator(0, 0, d, WaveNoise, sampleRate), d, sampleRate)
	case CueDeath:
		d := 700 * time.Millisecond
		s = beep.Mix(
			NewDecay(NewOscillator(0, 0, d, WaveNoise, sampleRate), d, sampleRate),
			volume(NewDecay(NewOscillator(220, -200, d, WaveSaw, sampleRate), d, sampleRate), 0.5),
		)
	case CuePowerUp:
		d := 250 * time.Millisecond
		s = NewDecay(NewOscillator(660, 1600, d, WaveSine, sampleRate), d, sampleRate)
	case CueBestScore:
		d := 150 * time.Millisecond
		s = beep.Seq(
			NewDecay(NewOscillator(1046.5, 0, d, WaveSine, sampleRate), d, sampleRate),
			NewDecay(NewOscillator(1568, 0, 2*d, WaveSine, sampleRate), 2*d, sampleRate),
		)
	default:
		return nil
	}
	return volume(s, c.volume)
}

// SpeakerPlayer — вывод на звуковое устройство через общий микшер
type SpeakerPlayer struct {
	mu          sync.Mutex
	mixer       *beep.Mixer
	initialized bool
}

// NewSpeakerPlayer создаёт проигрыватель; устройство открывается в Init
func NewSpeakerPlayer() *SpeakerPlayer {
	return &SpeakerPlayer{mixer: &beep.Mixer{}}
}

// Init открывает звуковое устройство
func (sp *SpeakerPlayer) Init() error {
	sp.mu.Lock()
	defer sp.mu.Unlock()
	if sp.initialized {
		return nil
	}
	if err := speaker.Init(sampleRate, sampleRate.N(50*time.Millisecond)); err != nil {
		return err
	}
	speaker.Play(sp.mixer)
	sp.initialized = true
	return nil
}

// Play добавляет поток в микшер; до Init звук пропускается
func (sp *SpeakerPlayer) Play(s beep.Streamer) {
	sp.mu.Lock()
	defer sp.mu.Unlock()
	if !sp.initialized {
		return
	}
	speaker.Lock()
	sp.mixer.Add(s)
	speaker.Unlock()
}

// Close останавливает все звуки
func (sp *SpeakerPlayer) Close() {
	sp.mu.Lock()
	defer sp.mu.Unlock()
	if !sp.initialized {
		return
	}
	speaker.Clear()
	speaker.Close()
	sp.initialized = false
}
