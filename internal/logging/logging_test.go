package logging

import (
	"bytes"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
)

func TestNewLevels(t *testing.T) {
	var buf bytes.Buffer

	quiet := New(false, &buf)
	assert.Equal(t, logrus.InfoLevel, quiet.GetLevel())
	quiet.Debug("hidden")
	assert.Empty(t, buf.String())

	loud := New(true, &buf)
	loud.WithField("move", "R").Debug("spin")
	assert.Contains(t, buf.String(), "move=R")
	assert.Contains(t, buf.String(), "spin")
}

func TestDiscard(t *testing.T) {
	l := Discard()
	l.Info("nothing")
	assert.Equal(t, logrus.InfoLevel, l.GetLevel())
}
