// Package config provides YAML/TOML-based configuration loading for a
// Striker Ball round and the score target presets.
package config

import "github.com/vovakirdan/striker-ball/internal/core"

// Game is the configuration bundle injected into a round at creation.
type Game struct {
	Constants Constants `yaml:"constants" toml:"constants"`
	Flow      Flow      `yaml:"flow" toml:"flow"`
	Sounds    Sounds    `yaml:"sounds" toml:"sounds"`
	Input     Input     `yaml:"input" toml:"input"`
	Runner    Runner    `yaml:"runner" toml:"runner"`
}

// Size is a 2D extent in court units.
type Size struct {
	X float64 `yaml:"x" toml:"x"`
	Y float64 `yaml:"y" toml:"y"`
}

// Vec2 converts the size to a vector.
func (s Size) Vec2() core.Vec2 {
	return core.V(s.X, s.Y)
}

// Constants defines the court layout and gameplay physics.
type Constants struct {
	Court        Size    `yaml:"court" toml:"court"`                 // full court size
	BallBounds   Size    `yaml:"ball_bounds" toml:"ball_bounds"`     // half extents
	PlayerBounds Size    `yaml:"player_bounds" toml:"player_bounds"` // half extents
	PinCount     int     `yaml:"pin_count" toml:"pin_count"`
	PinPadding   Size    `yaml:"pin_padding" toml:"pin_padding"`
	PinRadius    float64 `yaml:"pin_radius" toml:"pin_radius"`

	PlayerRadius   float64 `yaml:"player_radius" toml:"player_radius"`
	RunSpeed       float64 `yaml:"run_speed" toml:"run_speed"`
	DribbleSpeed   float64 `yaml:"dribble_speed" toml:"dribble_speed"`
	TackleSpeed    float64 `yaml:"tackle_speed" toml:"tackle_speed"`
	TackleFriction float64 `yaml:"tackle_friction" toml:"tackle_friction"`
	KickPower      float64 `yaml:"kick_power" toml:"kick_power"`

	KickFrames    uint64 `yaml:"kick_frames" toml:"kick_frames"`
	TackleFrames  uint64 `yaml:"tackle_frames" toml:"tackle_frames"`
	TackledFrames uint64 `yaml:"tackled_frames" toml:"tackled_frames"`
	PassFrames    uint64 `yaml:"pass_frames" toml:"pass_frames"`
	RecieveFrames uint64 `yaml:"recieve_frames" toml:"recieve_frames"`
	TurnFrames    uint64 `yaml:"turn_frames" toml:"turn_frames"`

	DribbleSmoothing          float64 `yaml:"dribble_smoothing" toml:"dribble_smoothing"`
	DribbleSmoothingThreshold float64 `yaml:"dribble_smoothing_threshold" toml:"dribble_smoothing_threshold"`

	BallRadius      float64 `yaml:"ball_radius" toml:"ball_radius"`
	BallFriction    float64 `yaml:"ball_friction" toml:"ball_friction"`
	BallETransfer   float64 `yaml:"ball_etransfer" toml:"ball_etransfer"`
	BallBorderSlide float64 `yaml:"ball_border_slide" toml:"ball_border_slide"`
}

// Flow defines the round and match timers, in seconds.
type Flow struct {
	ScoreTarget    uint8   `yaml:"score_target" toml:"score_target"`
	Countdown      float64 `yaml:"countdown" toml:"countdown"`
	CountdownSpeed float64 `yaml:"countdown_speed" toml:"countdown_speed"`
	ScoreDisplay   float64 `yaml:"score_display" toml:"score_display"`
	FadeOut        float64 `yaml:"fade_out" toml:"fade_out"`
	FadeWait       float64 `yaml:"fade_wait" toml:"fade_wait"`
	FadeIn         float64 `yaml:"fade_in" toml:"fade_in"`
	Podium         float64 `yaml:"podium" toml:"podium"`
	NumberIcon     float64 `yaml:"number_icon" toml:"number_icon"` // lifetime of the P1..P4 markers
}

// Sounds defines the volume of every sound intent.
type Sounds struct {
	Enabled        bool    `yaml:"enabled" toml:"enabled"`
	Master         float64 `yaml:"master" toml:"master"`
	BallSpinBuffer float64 `yaml:"ball_spin_buffer" toml:"ball_spin_buffer"`

	CountdownTick  float64 `yaml:"countdown_tick" toml:"countdown_tick"`
	CountdownFinal float64 `yaml:"countdown_final" toml:"countdown_final"`
	Winner         float64 `yaml:"winner" toml:"winner"`
	PinExplosion   float64 `yaml:"pin_explosion" toml:"pin_explosion"`
	BallSpin       float64 `yaml:"ball_spin" toml:"ball_spin"`
	BallBounce     float64 `yaml:"ball_bounce" toml:"ball_bounce"`
	BallKick       float64 `yaml:"ball_kick" toml:"ball_kick"`
	PlayerTackle   float64 `yaml:"player_tackle" toml:"player_tackle"`
	PlayerTackled  float64 `yaml:"player_tackled" toml:"player_tackled"`
}

// Input defines device thresholds.
type Input struct {
	Stroke   float64 `yaml:"stroke" toml:"stroke"`
	DeadZone float64 `yaml:"dead_zone" toml:"dead_zone"`
	// KeyHoldTicks is how long a terminal key press stays down, since
	// terminals report no key release.
	KeyHoldTicks int `yaml:"key_hold_ticks" toml:"key_hold_ticks"`
}

// Runner defines the fixed timestep loop.
type Runner struct {
	TickRate  int `yaml:"tick_rate" toml:"tick_rate"`
	MaxPasses int `yaml:"max_passes" toml:"max_passes"`
	// MaxCatchUp caps ticks run per poll; 0 means unbounded.
	MaxCatchUp int `yaml:"max_catch_up" toml:"max_catch_up"`
}
