package actuator

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/hipsterbrown/feetech-servo/feetech"
	"go.bug.st/serial"
)

// STS servos report 4096 steps per revolution.
const stepsPerRev = 4096

// BusConfig configures the serial bus shared by the robot's servos.
type BusConfig struct {
	Port     string
	BaudRate int
	Timeout  time.Duration
}

// Bus is an open servo bus.
type Bus struct {
	bus   *feetech.Bus
	found map[int]feetech.FoundServo
}

// OpenBus opens the serial port and scans for servos with IDs in [minID, maxID].
func OpenBus(ctx context.Context, cfg BusConfig, minID, maxID int) (*Bus, error) {
	if cfg.BaudRate == 0 {
		cfg.BaudRate = 1_000_000
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = 100 * time.Millisecond
	}

	bus, err := feetech.NewBus(feetech.BusConfig{
		Port:     cfg.Port,
		BaudRate: cfg.BaudRate,
		Protocol: feetech.ProtocolSTS,
		Timeout:  cfg.Timeout,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open bus %s: %w", cfg.Port, err)
	}

	servos, err := bus.Scan(ctx, minID, maxID)
	if err != nil {
		bus.Close()
		return nil, fmt.Errorf("failed to scan bus %s: %w", cfg.Port, err)
	}

	found := make(map[int]feetech.FoundServo, len(servos))
	for _, s := range servos {
		found[s.ID] = s
	}
	return &Bus{bus: bus, found: found}, nil
}

// Close closes the serial port.
func (b *Bus) Close() error {
	return b.bus.Close()
}

// Servo returns an actuator for the servo with the given ID.
func (b *Bus) Servo(ctx context.Context, name string, id int) (*Servo, error) {
	s, ok := b.found[id]
	if !ok {
		return nil, fmt.Errorf("servo %d (%s) not found on bus", id, name)
	}

	servo := feetech.NewServo(b.bus, s.ID, s.Model)
	if err := servo.Enable(ctx); err != nil {
		return nil, fmt.Errorf("failed to enable servo %d: %w", id, err)
	}
	return &Servo{name: name, servo: servo, dps: 360}, nil
}

// Servo adapts a Feetech STS bus servo to Interface. Positions are in
// degrees; the zero offset is kept in software. Open-loop power is emulated
// by a slow seek one revolution away, which stalls against an end stop the
// same way a powered motor would.
type Servo struct {
	name  string
	servo *feetech.Servo

	mu   sync.Mutex
	zero int // degrees reading as 0
	dps  int
}

var _ Interface = (*Servo)(nil)

// Name returns the servo's role name.
func (s *Servo) Name() string {
	return s.name
}

// SetPower starts a slow seek in the direction of pct, or holds position at 0.
func (s *Servo) SetPower(ctx context.Context, pct int) error {
	raw, err := s.servo.Position(ctx)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", s.name, err)
	}
	if pct == 0 {
		return s.servo.SetPosition(ctx, raw)
	}

	dir := 1
	if pct < 0 {
		dir, pct = -1, -pct
	}
	// One revolution at pct percent of 360 dps.
	ms := int(time.Second/time.Millisecond) * 100 / max(1, pct)
	return s.servo.SetPositionWithTime(ctx, raw+dir*stepsPerRev, ms)
}

// SetPositionTarget seeks to pos degrees at the current speed limit.
func (s *Servo) SetPositionTarget(ctx context.Context, pos int) error {
	s.mu.Lock()
	goal := toSteps(pos + s.zero)
	dps := s.dps
	s.mu.Unlock()

	raw, err := s.servo.Position(ctx)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", s.name, err)
	}
	dist := abs(fromSteps(goal - raw))
	ms := dist * 1000 / max(1, dps)
	return s.servo.SetPositionWithTime(ctx, goal, ms)
}

// SetSpeedLimit sets the speed used by later seeks. Power is ignored; the
// servo's own torque limit applies.
func (s *Servo) SetSpeedLimit(ctx context.Context, power, dps int) error {
	if dps <= 0 {
		return nil
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.dps = dps
	return nil
}

// EncoderPosition returns the position in degrees.
func (s *Servo) EncoderPosition(ctx context.Context) (int, error) {
	raw, err := s.servo.Position(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to read %s: %w", s.name, err)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return fromSteps(raw) - s.zero, nil
}

// OffsetEncoderZero shifts the software zero.
func (s *Servo) OffsetEncoderZero(ctx context.Context, delta int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.zero += delta
	return nil
}

// Disable releases servo torque.
func (s *Servo) Disable(ctx context.Context) error {
	return s.servo.Disable(ctx)
}

func toSteps(deg int) int {
	return deg * stepsPerRev / 360
}

func fromSteps(steps int) int {
	return steps * 360 / stepsPerRev
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

// ListPorts returns the serial ports present on this machine, sorted.
func ListPorts() ([]string, error) {
	ports, err := serial.GetPortsList()
	if err != nil {
		return nil, fmt.Errorf("failed to list serial ports: %w", err)
	}
	sort.Strings(ports)
	return ports, nil
}
