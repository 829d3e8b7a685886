package logger

import (
	"bytes"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
)

func TestGetStegoLoggerIsShared(t *testing.T) {
	assert.NotNil(t, GetStegoLogger())
	assert.Same(t, GetStegoLogger(), GetStegoLogger())
}

func TestSetLevel(t *testing.T) {
	l := GetStegoLogger()
	restore := l.GetLevel()
	defer l.Logger.SetLevel(restore)

	assert.NoError(t, SetLevel("debug"))
	assert.Equal(t, logrus.DebugLevel, l.GetLevel())

	assert.Error(t, SetLevel("loud"))
}

func TestEntryFields(t *testing.T) {
	l := GetStegoLogger()
	restoreLevel, restoreOut := l.GetLevel(), l.Out
	defer func() {
		l.Logger.SetLevel(restoreLevel)
		l.SetOutput(restoreOut)
	}()

	var buf bytes.Buffer
	l.SetOutput(&buf)
	l.Logger.SetLevel(logrus.DebugLevel)

	l.WithFields(Fields{"frame_bytes": 6}).WithField("capacity", 125).Debug("Embedded")
	assert.Contains(t, buf.String(), "frame_bytes=6")
	assert.Contains(t, buf.String(), "capacity=125")
}
