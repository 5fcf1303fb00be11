package main

import (
	"testing"

	"github.com/jamesrr39/goutil/logpkg"
	"github.com/stretchr/testify/assert"
)

func TestLogLevelForVerbose(t *testing.T) {
	assert.Equal(t, logpkg.LogLevelInfo, logLevelForVerbose(false))
	assert.Equal(t, logpkg.LogLevelDebug, logLevelForVerbose(true))
}
