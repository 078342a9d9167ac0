package cubebot

import (
	"io"

	"github.com/sirupsen/logrus"
)

// Option configures Robot behavior.
type Option func(*config)

type config struct {
	logger      logrus.FieldLogger
	observers   []func(Step)
	orientation Orientation
}

func defaultConfig() *config {
	discard := logrus.New()
	discard.SetOutput(io.Discard)
	return &config{
		logger:      discard,
		orientation: DefaultOrientation,
	}
}

// WithLogger sets the logger used for dispatch and scan progress.
// By default nothing is logged.
func WithLogger(l logrus.FieldLogger) Option {
	return func(c *config) {
		if l != nil {
			c.logger = l
		}
	}
}

// WithObserver registers a callback that receives every executed step.
// Observers run synchronously inside the dispatch, in registration order.
func WithObserver(fn func(Step)) Option {
	return func(c *config) {
		c.observers = append(c.observers, fn)
	}
}

// WithOrientation sets the orientation assumed at construction and after
// every Home. Invalid orientations are ignored.
func WithOrientation(o Orientation) Option {
	return func(c *config) {
		if o.Valid() {
			c.orientation = o
		}
	}
}
