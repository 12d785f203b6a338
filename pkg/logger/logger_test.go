package logger

import (
	"testing"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/stretchr/testify/assert"
)

func TestInitLevelFromEnv(t *testing.T) {
	tests := []struct {
		name  string
		env   string
		level zerolog.Level
	}{
		{name: "debug", env: "debug", level: zerolog.DebugLevel},
		{name: "info", env: "INFO", level: zerolog.InfoLevel},
		{name: "error", env: "error", level: zerolog.ErrorLevel},
		{name: "unset defaults to warn", env: "", level: zerolog.WarnLevel},
		{name: "garbage defaults to warn", env: "chatty", level: zerolog.WarnLevel},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("PVE_TOOL_LOG", tt.env)
			Init()
			assert.Equal(t, tt.level, log.Logger.GetLevel())
		})
	}
}
