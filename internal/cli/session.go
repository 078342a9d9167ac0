package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/sirupsen/logrus"

	"github.com/SeamusWaldron/cubebot"
	"github.com/SeamusWaldron/cubebot/internal/actuator"
	"github.com/SeamusWaldron/cubebot/internal/cube"
	"github.com/SeamusWaldron/cubebot/internal/journal"
	"github.com/SeamusWaldron/cubebot/internal/logging"
	"github.com/SeamusWaldron/cubebot/internal/motion"
	"github.com/SeamusWaldron/cubebot/internal/profile"
)

// robotSession is a robot built from the global flags, plus whatever must be
// closed when the command finishes.
type robotSession struct {
	robot   *cubebot.Robot
	profile profile.Profile
	log     *logrus.Logger
	virtual *cube.Cube // Set with --virtual
	journal *journal.Session
	closers []func() error
}

func loadProfile() (profile.Profile, error) {
	p, err := profile.Lookup(profileName)
	if err != nil {
		return p, err
	}
	if profileFile != "" {
		return profile.LoadFile(profileFile, p)
	}
	return p, nil
}

// openRobot builds the mechanism selected by the flags and wraps it in a
// robot. Extra options are applied after the defaults.
func openRobot(ctx context.Context, opts ...cubebot.Option) (*robotSession, error) {
	s := &robotSession{log: logging.New(verbose, os.Stderr)}

	p, err := loadProfile()
	if err != nil {
		return nil, err
	}
	s.profile = p

	mech, err := s.openMechanism(ctx)
	if err != nil {
		s.Close()
		return nil, err
	}

	robotOpts := []cubebot.Option{cubebot.WithLogger(s.log)}
	if dbPath != "" {
		db, err := journal.Open(dbPath)
		if err != nil {
			s.Close()
			return nil, err
		}
		s.closers = append(s.closers, db.Close)
		s.journal = journal.NewSession(db, s.log)
		robotOpts = append(robotOpts, cubebot.WithObserver(s.journal.Observe))
	}

	s.robot = cubebot.NewRobot(mech, append(robotOpts, opts...)...)
	return s, nil
}

func (s *robotSession) openMechanism(ctx context.Context) (cubebot.Mechanism, error) {
	switch {
	case useVirtual:
		s.virtual = cube.New()
		s.log.Info("Using virtual cube")
		return s.virtual, nil

	case useSim:
		grip := actuator.NewSim(actuator.SimConfig{Name: "grip", MinLimit: -300, MaxLimit: 60, PowerStep: 100})
		turn := actuator.NewSim(actuator.SimConfig{Name: "turn"})
		s.log.WithField("profile", s.profile.Name).Info("Using simulated motors")
		return s.openRig(ctx, grip, turn)
	}

	busPort := port
	if busPort == "" {
		ports, err := actuator.ListPorts()
		if err != nil {
			return nil, err
		}
		if len(ports) == 0 {
			return nil, fmt.Errorf("no serial ports found; pass --port, --sim or --virtual")
		}
		busPort = ports[0]
	}

	bus, err := actuator.OpenBus(ctx, actuator.BusConfig{Port: busPort, BaudRate: baudRate}, min(gripID, turnID), max(gripID, turnID))
	if err != nil {
		return nil, err
	}
	s.closers = append(s.closers, bus.Close)

	grip, err := bus.Servo(ctx, "grip", gripID)
	if err != nil {
		return nil, err
	}
	turn, err := bus.Servo(ctx, "turn", turnID)
	if err != nil {
		return nil, err
	}
	s.log.WithFields(logrus.Fields{"port": busPort, "profile": s.profile.Name}).Info("Servo bus open")
	return s.openRig(ctx, grip, turn)
}

// openRig builds the rig and releases both motors when the session closes.
func (s *robotSession) openRig(ctx context.Context, grip, turn actuator.Interface) (cubebot.Mechanism, error) {
	rig, err := motion.NewRig(ctx, s.profile, grip, turn, s.log)
	if err != nil {
		return nil, err
	}
	s.closers = append(s.closers, func() error {
		return rig.Disable(context.Background())
	})
	return rig, nil
}

// begin opens a journal run when journaling is on.
func (s *robotSession) begin(kind, sequence string) error {
	if s.journal == nil {
		return nil
	}
	id, err := s.journal.Start(kind, s.profile.Name, sequence)
	if err != nil {
		return err
	}
	s.log.WithField("run", id).Debug("Journal run started")
	return nil
}

// finish closes the journal run with opErr and returns opErr.
func (s *robotSession) finish(opErr error) error {
	if s.journal == nil || s.journal.RunID() == "" {
		return opErr
	}
	if err := s.journal.End(opErr); err != nil {
		s.log.WithError(err).Warn("Failed to close journal run")
	}
	return opErr
}

// Close releases the bus and journal.
func (s *robotSession) Close() {
	for i := len(s.closers) - 1; i >= 0; i-- {
		if err := s.closers[i](); err != nil && s.log != nil {
			s.log.WithError(err).Warn("Close failed")
		}
	}
	s.closers = nil
}
