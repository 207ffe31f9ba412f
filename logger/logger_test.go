package logger

import (
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
)

func TestInitSetsLevel(t *testing.T) {
	defer func() { globalLogger = nil }()

	assert.NoError(t, Init("warn"))
	assert.Equal(t, logrus.WarnLevel, Get().GetLevel())
}

func TestInitRejectsUnknownLevel(t *testing.T) {
	defer func() { globalLogger = nil }()

	assert.Error(t, Init("loud"))
	assert.Same(t, logrus.StandardLogger(), Get())
}
