package play

// Sound names a sound intent.
type Sound uint8

const (
	SoundCountdownTick Sound = iota
	SoundCountdownFinal
	SoundWinner
	SoundPinExplosion
	SoundBallSpin
	SoundBallBounce
	SoundBallKick
	SoundPlayerTackle
	SoundPlayerTackled
	// SoundMusic starts the match music; SoundMusicStop ends it.
	SoundMusic
	SoundMusicStop
)

var soundNames = [...]string{
	SoundCountdownTick:  "countdown_tick",
	SoundCountdownFinal: "countdown_final",
	SoundWinner:         "winner",
	SoundPinExplosion:   "pin_explosion",
	SoundBallSpin:       "ball_spin",
	SoundBallBounce:     "ball_bounce",
	SoundBallKick:       "ball_kick",
	SoundPlayerTackle:   "player_tackle",
	SoundPlayerTackled:  "player_tackled",
	SoundMusic:          "music",
	SoundMusicStop:      "music_stop",
}

func (s Sound) String() string {
	if int(s) < len(soundNames) {
		return soundNames[s]
	}
	return "unknown"
}

// SoundEvent asks the audio collaborator to play a sound.
type SoundEvent struct {
	Sound  Sound
	Volume float64
}

func (w *World) volume(s Sound) float64 {
	v := w.cfg.Sounds
	var vol float64
	switch s {
	case SoundCountdownTick:
		vol = v.CountdownTick
	case SoundCountdownFinal:
		vol = v.CountdownFinal
	case SoundWinner:
		vol = v.Winner
	case SoundPinExplosion:
		vol = v.PinExplosion
	case SoundBallSpin:
		vol = v.BallSpin
	case SoundBallBounce:
		vol = v.BallBounce
	case SoundBallKick:
		vol = v.BallKick
	case SoundPlayerTackle:
		vol = v.PlayerTackle
	case SoundPlayerTackled:
		vol = v.PlayerTackled
	case SoundMusic, SoundMusicStop:
		vol = 1
	}
	return vol * v.Master
}

func (w *World) emit(s Sound) {
	w.sounds = append(w.sounds, SoundEvent{Sound: s, Volume: w.volume(s)})
}
