package actuator

import (
	"context"
	"fmt"
	"sync"
)

// SimConfig configures a simulated motor.
type SimConfig struct {
	Name string

	// Step is how far a position seek advances per encoder read at the
	// default speed. Zero means 10.
	Step int

	// Limits are the mechanical end stops in raw degrees. A zero-width
	// range means no end stops.
	MinLimit, MaxLimit int

	// PowerStep is how far open-loop drive advances per read at 100%.
	// Zero means 10.
	PowerStep int
}

// Command is one call recorded by the simulator.
type Command struct {
	Op    string
	Value int
	Aux   int
}

func (c Command) String() string {
	return fmt.Sprintf("%s(%d,%d)", c.Op, c.Value, c.Aux)
}

// Sim is a deterministic motor model. It advances on every encoder read
// rather than in real time, so tests do not depend on wall-clock speed.
type Sim struct {
	cfg SimConfig

	mu       sync.Mutex
	raw      int // position in raw motor degrees
	zero     int // raw position reading as 0
	target   int // raw target
	seeking  bool
	power    int
	dps      int
	jammed   bool
	commands []Command
}

var _ Interface = (*Sim)(nil)

// NewSim creates a simulated motor at raw position 0.
func NewSim(cfg SimConfig) *Sim {
	if cfg.Step <= 0 {
		cfg.Step = 10
	}
	if cfg.PowerStep <= 0 {
		cfg.PowerStep = 10
	}
	return &Sim{cfg: cfg}
}

// Name returns the configured name.
func (s *Sim) Name() string {
	return s.cfg.Name
}

// SetPower drives the motor open-loop until the next position target.
func (s *Sim) SetPower(ctx context.Context, pct int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.record("power", pct, 0)
	s.power = pct
	s.seeking = false
	return nil
}

// SetPositionTarget starts a seek.
func (s *Sim) SetPositionTarget(ctx context.Context, pos int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.record("target", pos, 0)
	s.target = pos + s.zero
	s.seeking = true
	s.power = 0
	return nil
}

// SetSpeedLimit records the limit; faster limits seek in larger steps.
func (s *Sim) SetSpeedLimit(ctx context.Context, power, dps int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.record("limit", power, dps)
	s.dps = dps
	return nil
}

// EncoderPosition advances the model one tick and returns the position.
func (s *Sim) EncoderPosition(ctx context.Context) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tick()
	return s.raw - s.zero, nil
}

// OffsetEncoderZero moves the zero point.
func (s *Sim) OffsetEncoderZero(ctx context.Context, delta int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.record("offset", delta, 0)
	s.zero += delta
	return nil
}

// Disable stops any seek or open-loop drive.
func (s *Sim) Disable(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.record("disable", 0, 0)
	s.seeking = false
	s.power = 0
	return nil
}

// Jam stops or restarts all motion, to simulate a stalled mechanism.
func (s *Sim) Jam(jammed bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.jammed = jammed
}

// Place sets the raw position, as if the motor were moved by hand.
func (s *Sim) Place(raw int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.raw = s.clamp(raw)
}

// Raw returns the raw position without advancing the model.
func (s *Sim) Raw() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.raw
}

// Commands returns a copy of every recorded call.
func (s *Sim) Commands() []Command {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]Command(nil), s.commands...)
}

// Targets returns the position targets set so far, in order.
func (s *Sim) Targets() []int {
	s.mu.Lock()
	defer s.mu.Unlock()
	var targets []int
	for _, c := range s.commands {
		if c.Op == "target" {
			targets = append(targets, c.Value)
		}
	}
	return targets
}

func (s *Sim) record(op string, value, aux int) {
	s.commands = append(s.commands, Command{Op: op, Value: value, Aux: aux})
}

func (s *Sim) tick() {
	if s.jammed {
		return
	}
	switch {
	case s.seeking:
		step := s.cfg.Step
		if s.dps > 0 {
			// dps/100 is the travel in one 10 ms poll.
			step = max(1, s.dps/100)
		}
		diff := s.target - s.raw
		if diff > step {
			diff = step
		} else if diff < -step {
			diff = -step
		}
		s.raw = s.clamp(s.raw + diff)
	case s.power != 0:
		s.raw = s.clamp(s.raw + s.power*s.cfg.PowerStep/100)
	}
}

func (s *Sim) clamp(raw int) int {
	if s.cfg.MinLimit == s.cfg.MaxLimit {
		return raw
	}
	return min(max(raw, s.cfg.MinLimit), s.cfg.MaxLimit)
}
