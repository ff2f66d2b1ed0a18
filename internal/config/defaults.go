package config

import (
	_ "embed"
)

//go:embed defaults/game.yaml
var defaultGameYAML []byte

// DefaultGame returns the default configuration.
func DefaultGame() Game {
	return Game{
		Constants: Constants{
			Court:        Size{X: 320, Y: 180},
			BallBounds:   Size{X: 150, Y: 82},
			PlayerBounds: Size{X: 140, Y: 80},
			PinCount:     7,
			PinPadding:   Size{X: 8, Y: 20},
			PinRadius:    4,

			PlayerRadius:   8,
			RunSpeed:       1.6,
			DribbleSpeed:   1.2,
			TackleSpeed:    3.5,
			TackleFriction: 0.1,
			KickPower:      5,

			KickFrames:    30,
			TackleFrames:  30,
			TackledFrames: 30,
			PassFrames:    30,
			RecieveFrames: 30,
			TurnFrames:    8,

			DribbleSmoothing:          4,
			DribbleSmoothingThreshold: 0.5,

			BallRadius:      4,
			BallFriction:    0.98,
			BallETransfer:   0.8,
			BallBorderSlide: 0.3,
		},
		Flow: Flow{
			ScoreTarget:    7,
			Countdown:      4,
			CountdownSpeed: 1.2,
			ScoreDisplay:   3.65,
			FadeOut:        3,
			FadeWait:       0.15,
			FadeIn:         1,
			Podium:         3,
			NumberIcon:     3,
		},
		Sounds: Sounds{
			Enabled:        true,
			Master:         0.6,
			BallSpinBuffer: 1,
			CountdownTick:  0.5,
			CountdownFinal: 0.6,
			Winner:         0.7,
			PinExplosion:   0.8,
			BallSpin:       0.2,
			BallBounce:     0.4,
			BallKick:       0.5,
			PlayerTackle:   0.5,
			PlayerTackled:  0.5,
		},
		Input: Input{
			Stroke:       0.5,
			DeadZone:     0.1,
			KeyHoldTicks: 8,
		},
		Runner: Runner{
			TickRate:   60,
			MaxPasses:  16,
			MaxCatchUp: 0,
		},
	}
}

// DefaultYAML returns the embedded default configuration file.
func DefaultYAML() []byte {
	return defaultGameYAML
}
