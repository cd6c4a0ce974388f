package config

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Iteration bounds for the inner simulation loop.
const (
	MinIterations = 1
	MaxIterations = 128
)

// Known strategy names.
const (
	NarrowPhaseReducedSAT  = "reduced_sat"
	ResolverGroundCoupling = "ground_coupling"
	ResolverImpulse        = "impulse"
)

var (
	ErrIterationsOutOfRange = errors.New("iterations out of range")
	ErrInvalidGravity       = errors.New("gravity direction must be non-zero")
	ErrUnknownStrategy      = errors.New("unknown strategy")
)

// RangeError reports a configuration value outside its allowed range.
type RangeError struct {
	Field    string
	Value    int
	Min, Max int
}

func (e *RangeError) Error() string {
	return fmt.Sprintf("%s = %d, must be in [%d, %d]", e.Field, e.Value, e.Min, e.Max)
}

func (e *RangeError) Unwrap() error {
	return ErrIterationsOutOfRange
}

// Simulation holds the stepping configuration, persisted as YAML.
type Simulation struct {
	Iterations     int        `yaml:"iterations"`
	Gravity        [3]float32 `yaml:"gravity"`
	AmountOfFrames int        `yaml:"amount_of_frames"`
	StartPaused    bool       `yaml:"start_paused"`
	NarrowPhase    string     `yaml:"narrow_phase"`
	Resolver       string     `yaml:"resolver"`
}

// Default returns one iteration per tick, gravity straight down.
func Default() Simulation {
	return Simulation{
		Iterations:     1,
		Gravity:        [3]float32{0, -1, 0},
		AmountOfFrames: 1,
		NarrowPhase:    NarrowPhaseReducedSAT,
		Resolver:       ResolverGroundCoupling,
	}
}

// SetIterations assigns the sub-iteration count. Out-of-range values are
// rejected and the current value is kept.
func (s *Simulation) SetIterations(n int) error {
	if err := checkIterations(n); err != nil {
		return err
	}
	s.Iterations = n
	return nil
}

func checkIterations(n int) error {
	if n < MinIterations || n > MaxIterations {
		return &RangeError{Field: "iterations", Value: n, Min: MinIterations, Max: MaxIterations}
	}
	return nil
}

// Validate checks every field and normalizes the gravity direction.
func (s *Simulation) Validate() error {
	if err := checkIterations(s.Iterations); err != nil {
		return err
	}
	g := s.Gravity
	lenSq := g[0]*g[0] + g[1]*g[1] + g[2]*g[2]
	if lenSq == 0 {
		return ErrInvalidGravity
	}
	s.Gravity = normalize(g)
	if s.AmountOfFrames < 0 {
		return fmt.Errorf("amount_of_frames = %d, must not be negative", s.AmountOfFrames)
	}
	switch s.NarrowPhase {
	case "", NarrowPhaseReducedSAT:
	default:
		return fmt.Errorf("narrow_phase %q: %w", s.NarrowPhase, ErrUnknownStrategy)
	}
	switch s.Resolver {
	case "", ResolverGroundCoupling, ResolverImpulse:
	default:
		return fmt.Errorf("resolver %q: %w", s.Resolver, ErrUnknownStrategy)
	}
	return nil
}

// Load reads a YAML file over Default(). A missing file yields Default()
// together with an error wrapping fs.ErrNotExist.
func Load(path string) (Simulation, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("reading simulation config %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Default(), fmt.Errorf("parsing simulation config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return Default(), fmt.Errorf("simulation config %s: %w", path, err)
	}
	return cfg, nil
}

// Save writes the configuration as YAML.
func Save(path string, cfg Simulation) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}
