package audio

import (
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"

	"github.com/vovakirdan/striker-ball/internal/config"
	"github.com/vovakirdan/striker-ball/internal/play"
)

// Speaker plays sound intents on the system audio device. Until Init
// succeeds it only tracks what it would play.
type Speaker struct {
	mu          sync.Mutex
	cfg         config.Sounds
	mixer       *beep.Mixer
	music       *beep.Ctrl
	initialized bool
	log         *log.Logger
}

// NewSpeaker creates a speaker for the configured volumes.
func NewSpeaker(cfg config.Sounds, logger *log.Logger) *Speaker {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Speaker{
		cfg:   cfg,
		mixer: &beep.Mixer{},
		log:   logger,
	}
}

// Init opens the audio device and starts the mixer.
func (s *Speaker) Init() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.initialized {
		return nil
	}
	if err := speaker.Init(sampleRate, sampleRate.N(50*time.Millisecond)); err != nil {
		return fmt.Errorf("audio: init speaker: %w", err)
	}
	speaker.Play(s.mixer)
	s.initialized = true
	return nil
}

// Play implements session.SoundSink.
func (s *Speaker) Play(events []play.SoundEvent) {
	if !s.cfg.Enabled {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.initialized {
		speaker.Lock()
		defer speaker.Unlock()
	}
	for _, e := range events {
		s.play(e)
	}
}

func (s *Speaker) play(e play.SoundEvent) {
	switch e.Sound {
	case play.SoundMusic:
		s.stopMusic()
		s.music = &beep.Ctrl{Streamer: withVolume(&music{}, e.Volume)}
		s.mixer.Add(s.music)
	case play.SoundMusicStop:
		s.stopMusic()
	default:
		if v := Voice(e.Sound, e.Volume); v != nil {
			s.mixer.Add(v)
		} else {
			s.log.Debug("unknown sound", "sound", e.Sound)
		}
	}
}

// stopMusic retires the current track. A Ctrl without a streamer reports
// itself drained, so the mixer drops it on its next pull; a paused one would
// stay in the mixer forever.
func (s *Speaker) stopMusic() {
	if s.music == nil {
		return
	}
	s.music.Streamer = nil
	s.music = nil
}

// Playing returns the number of streamers in the mixer.
func (s *Speaker) Playing() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.initialized {
		speaker.Lock()
		defer speaker.Unlock()
	}
	return s.mixer.Len()
}

// MusicPlaying reports whether the match music is on.
func (s *Speaker) MusicPlaying() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.music != nil && !s.music.Paused
}

// Close silences everything.
func (s *Speaker) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.initialized {
		speaker.Lock()
		defer speaker.Unlock()
	}
	s.stopMusic()
	s.mixer.Clear()
}

// Discard drops every intent. Used when audio is disabled or the device
// cannot be opened.
type Discard struct{}

// Play implements session.SoundSink.
func (Discard) Play([]play.SoundEvent) {}
