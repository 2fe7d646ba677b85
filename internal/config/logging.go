package config

import (
	"fmt" // Error wrapping

	"github.com/sirupsen/logrus" // Structured logging
)

// ConfigureLogger sets the global logrus formatter and level: JSON in production,
// timestamped text otherwise.
func ConfigureLogger(cfg *Config) error {
	if cfg.IsProd {
		logrus.SetFormatter(&logrus.JSONFormatter{})
	} else {
		logrus.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	}
	level, err := logrus.ParseLevel(cfg.LogLevel)
	if err != nil {
		return fmt.Errorf("LOG_LEVEL: %w", err)
	}
	logrus.SetLevel(level)
	return nil
}
