// Package actuator abstracts a single motor with position control and an
// encoder, and provides a simulated motor and a serial bus servo backend.
package actuator

import "context"

// Interface is one motor as seen by the motion layer. Positions are in
// encoder degrees relative to the current zero.
type Interface interface {
	// Name identifies the motor in logs and errors.
	Name() string

	// SetPower drives the motor open-loop at pct percent (-100..100).
	// Zero stops the motor.
	SetPower(ctx context.Context, pct int) error

	// SetPositionTarget starts a closed-loop seek to pos.
	SetPositionTarget(ctx context.Context, pos int) error

	// SetSpeedLimit bounds power (percent, 0 = unchanged) and speed
	// (degrees per second) of subsequent position seeks.
	SetSpeedLimit(ctx context.Context, power, dps int) error

	// EncoderPosition reads the current position.
	EncoderPosition(ctx context.Context) (int, error)

	// OffsetEncoderZero shifts the zero point by delta, so a motor at
	// delta subsequently reads 0.
	OffsetEncoderZero(ctx context.Context, delta int) error

	// Disable removes drive so the motor can be moved by hand.
	Disable(ctx context.Context) error
}
