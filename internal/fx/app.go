// Package fx assembles the application object graph: configuration, logging
// and the resolution module.
package fx

import (
	"go.uber.org/fx"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"fairdivisiondss/internal/config"
	"fairdivisiondss/internal/module/resolution"
)

// App wires everything a binary needs.
var App = fx.Options(
	fx.Provide(
		config.Load,
		NewLogger,
	),
	resolution.Module,
)

// NewLogger builds the application logger from configuration.
func NewLogger(cfg *config.Config) (*zap.Logger, error) {
	var zapCfg zap.Config
	if cfg.Logging.Format == "json" {
		zapCfg = zap.NewProductionConfig()
	} else {
		zapCfg = zap.NewDevelopmentConfig()
	}

	level, err := zapcore.ParseLevel(cfg.Logging.Level)
	if err != nil {
		level = zapcore.InfoLevel
	}
	zapCfg.Level = zap.NewAtomicLevelAt(level)

	return zapCfg.Build()
}
