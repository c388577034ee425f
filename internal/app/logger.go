package app

import (
	"strings"

	"github.com/workoutdiary/workoutdiary/pkg/logger"
)

// ConfigureLogging initialises the global logger from the server settings, defaulting to
// info level json output.
func ConfigureLogging(cfg ServerConfig) error {
	level := strings.TrimSpace(cfg.LogLevel)
	if level == "" {
		level = "info"
	}
	return logger.InitWithOptions(logger.Options{Level: level, Encoding: cfg.LogFormat})
}
