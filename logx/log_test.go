package logx_test

import (
	"testing"

	"github.com/latchbio-nfcore/rnadnavar/logx"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
)

func TestConfigureLogLevel(t *testing.T) {
	defer logx.Configure("info")

	logx.Configure("all")
	assert.Equal(t, zerolog.TraceLevel, zerolog.GlobalLevel())

	logx.Configure("WARNING")
	assert.Equal(t, zerolog.WarnLevel, zerolog.GlobalLevel())

	logx.Configure("none")
	assert.Equal(t, zerolog.Disabled, zerolog.GlobalLevel())

	logx.Configure("bogus")
	assert.Equal(t, zerolog.InfoLevel, zerolog.GlobalLevel())
}

func TestSetDebugOnlyLowersLevel(t *testing.T) {
	defer logx.Configure("info")

	logx.Configure("info")
	logx.SetDebug(true)
	assert.Equal(t, zerolog.DebugLevel, zerolog.GlobalLevel())

	logx.Configure("trace")
	logx.SetDebug(true)
	assert.Equal(t, zerolog.TraceLevel, zerolog.GlobalLevel())

	logx.Configure("warn")
	logx.SetDebug(false)
	assert.Equal(t, zerolog.WarnLevel, zerolog.GlobalLevel())
}
