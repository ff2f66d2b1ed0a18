// Package audio plays the simulation's sound intents through a beep mixer.
// Every sound is synthesized, so no assets are needed.
package audio

import (
	"math"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"

	"github.com/vovakirdan/striker-ball/internal/play"
)

const sampleRate = beep.SampleRate(44100)

// Wave is an oscillator shape.
type Wave int

const (
	WaveSine Wave = iota
	WaveSquare
	WaveSaw
	WaveNoise
)

// oscillator streams a wave for a fixed number of samples, optionally
// sliding its frequency from freq to end.
type oscillator struct {
	freq, end float64
	wave      Wave
	phase     float64
	pos, n    int
	rate      beep.SampleRate
	seed      uint32
}

// NewOscillator returns a streamer of d of the given wave.
func NewOscillator(freq float64, d time.Duration, wave Wave, rate beep.SampleRate) beep.Streamer {
	return NewSweep(freq, freq, d, wave, rate)
}

// NewSweep returns an oscillator gliding linearly from one frequency to
// another.
func NewSweep(from, to float64, d time.Duration, wave Wave, rate beep.SampleRate) beep.Streamer {
	return &oscillator{freq: from, end: to, wave: wave, n: rate.N(d), rate: rate, seed: 0x2545f491}
}

func (o *oscillator) Stream(samples [][2]float64) (int, bool) {
	for i := range samples {
		if o.pos >= o.n {
			return i, i > 0
		}

		var v float64
		switch o.wave {
		case WaveSine:
			v = math.Sin(2 * math.Pi * o.phase)
		case WaveSquare:
			v = 1
			if o.phase >= 0.5 {
				v = -1
			}
		case WaveSaw:
			v = 2 * (o.phase - 0.5)
		case WaveNoise:
			// xorshift keeps noise reproducible per voice
			o.seed ^= o.seed << 13
			o.seed ^= o.seed >> 17
			o.seed ^= o.seed << 5
			v = float64(o.seed)/math.MaxUint32*2 - 1
		}
		samples[i][0] = v
		samples[i][1] = v

		freq := o.freq + (o.end-o.freq)*float64(o.pos)/float64(o.n)
		o.phase += freq / float64(o.rate)
		o.phase -= math.Floor(o.phase)
		o.pos++
	}
	return len(samples), true
}

func (o *oscillator) Err() error { return nil }

// envelope fades a streamer in over attack and out over release.
type envelope struct {
	s       beep.Streamer
	pos     int
	attack  int
	release int
	total   int
}

// NewEnvelope shapes s, which is expected to last d.
func NewEnvelope(s beep.Streamer, d, attack, release time.Duration, rate beep.SampleRate) beep.Streamer {
	return &envelope{s: s, attack: rate.N(attack), release: rate.N(release), total: rate.N(d)}
}

func (e *envelope) Stream(samples [][2]float64) (int, bool) {
	n, ok := e.s.Stream(samples)
	for i := 0; i < n; i++ {
		vol := 1.0
		if e.attack > 0 && e.pos < e.attack {
			vol = float64(e.pos) / float64(e.attack)
		}
		if left := e.total - e.pos; e.release > 0 && left < e.release {
			vol = math.Max(0, float64(left)/float64(e.release))
		}
		samples[i][0] *= vol
		samples[i][1] *= vol
		e.pos++
	}
	return n, ok
}

func (e *envelope) Err() error { return e.s.Err() }

// withVolume scales s linearly; 0 silences it.
func withVolume(s beep.Streamer, vol float64) beep.Streamer {
	if vol <= 0 {
		return &effects.Volume{Streamer: s, Base: 2, Silent: true}
	}
	return &effects.Volume{Streamer: s, Base: 2, Volume: math.Log2(vol)}
}

func tone(freq float64, d time.Duration, wave Wave) beep.Streamer {
	return NewEnvelope(NewOscillator(freq, d, wave, sampleRate), d, 5*time.Millisecond, d/2, sampleRate)
}

func sweep(from, to float64, d time.Duration, wave Wave) beep.Streamer {
	return NewEnvelope(NewSweep(from, to, d, wave, sampleRate), d, 2*time.Millisecond, d/2, sampleRate)
}

// Voice returns the streamer of a one-shot sound at vol. It returns nil for
// intents that are not one-shots (music control).
func Voice(s play.Sound, vol float64) beep.Streamer {
	var v beep.Streamer
	switch s {
	case play.SoundCountdownTick:
		v = tone(660, 120*time.Millisecond, WaveSquare)
	case play.SoundCountdownFinal:
		v = beep.Mix(
			tone(1320, 400*time.Millisecond, WaveSquare),
			withVolume(tone(660, 400*time.Millisecond, WaveSine), 0.5),
		)
	case play.SoundWinner:
		v = beep.Seq(
			tone(523.25, 150*time.Millisecond, WaveSquare),
			tone(659.25, 150*time.Millisecond, WaveSquare),
			tone(783.99, 150*time.Millisecond, WaveSquare),
			tone(1046.5, 450*time.Millisecond, WaveSquare),
		)
	case play.SoundPinExplosion:
		v = beep.Mix(
			tone(0, 350*time.Millisecond, WaveNoise),
			sweep(180, 40, 350*time.Millisecond, WaveSine),
		)
	case play.SoundBallSpin:
		v = sweep(300, 380, 60*time.Millisecond, WaveSaw)
	case play.SoundBallBounce:
		v = tone(220, 80*time.Millisecond, WaveSquare)
	case play.SoundBallKick:
		v = beep.Mix(
			withVolume(tone(0, 90*time.Millisecond, WaveNoise), 0.6),
			sweep(160, 90, 90*time.Millisecond, WaveSine),
		)
	case play.SoundPlayerTackle:
		v = sweep(200, 500, 150*time.Millisecond, WaveSaw)
	case play.SoundPlayerTackled:
		v = sweep(300, 90, 200*time.Millisecond, WaveSquare)
	default:
		return nil
	}
	return withVolume(v, vol)
}

// music is an endless bass line for the match.
type music struct {
	pos int
}

var bassLine = [...]float64{110, 110, 146.83, 130.81, 110, 110, 164.81, 146.83}

func (m *music) Stream(samples [][2]float64) (int, bool) {
	beat := sampleRate.N(250 * time.Millisecond)
	for i := range samples {
		step := m.pos / beat
		within := m.pos % beat
		t := float64(m.pos) / float64(sampleRate)
		freq := bassLine[step%len(bassLine)]

		env := math.Exp(-float64(within) / float64(beat) * 4)
		v := 0.3 * env * math.Sin(2*math.Pi*freq*t)
		if step%2 == 0 && within < beat/5 {
			v += 0.2 * (1 - float64(within)/float64(beat/5)) * math.Sin(2*math.Pi*55*t)
		}
		samples[i][0] = v
		samples[i][1] = v
		m.pos++
	}
	return len(samples), true
}

func (m *music) Err() error { return nil }
