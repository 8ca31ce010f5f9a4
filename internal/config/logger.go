package config

import "go.uber.org/zap"

// NewLogger builds the process logger. LOG_DEVELOPMENT switches to zap's
// human-readable development encoder.
func (c *Config) NewLogger() (*zap.Logger, error) {
	if c.LogDevelopment {
		return zap.NewDevelopment()
	}
	return zap.NewProduction()
}
