// Package logmod provides a ready-made logger module for the modra
// registry. It builds a zerolog logger during its init hook from the
// configured level and format, honoring a MODRA_LOG_LEVEL environment
// override looked up through the injected host services.
package logmod

import (
	"context"
	"fmt"
	"os"

	"github.com/rs/zerolog"

	"github.com/tverad/modra/host"
	"github.com/tverad/modra/module"
)

// Settings is the logger module's configuration payload.
type Settings struct {
	// Level is the minimum level (trace, debug, info, warn, error)
	Level string

	// Format selects console or json output
	Format string
}

// Module is a logger unit satisfying the core registry contract.
type Module struct {
	*module.Module

	// svc resolves environment overrides
	svc host.Services

	// logger is built during init, Nop before that and after stop
	logger zerolog.Logger
}

// New creates the logger module. The logger is not usable until the
// init phase ran.
func New(svc host.Services, settings Settings) *Module {
	m := &Module{
		Module: module.New("logger", settings),
		svc:    svc,
		logger: zerolog.Nop(),
	}
	m.OnInit(m.build)
	m.OnStop(m.quiesce)
	return m
}

// Logger returns the module's logger.
func (m *Module) Logger() zerolog.Logger {
	return m.logger
}

// build constructs the logger from settings and environment.
func (m *Module) build(ctx context.Context) error {
	settings := m.Config().(Settings)

	level := settings.Level
	if v, ok := m.svc.Env("MODRA_LOG_LEVEL"); ok {
		level = v
	}
	lvl, err := zerolog.ParseLevel(level)
	if err != nil {
		return fmt.Errorf("invalid log level %q: %w", level, err)
	}

	var logger zerolog.Logger
	switch settings.Format {
	case "console":
		logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr})
	case "json", "":
		logger = zerolog.New(os.Stderr)
	default:
		return fmt.Errorf("invalid log format %q", settings.Format)
	}

	m.logger = logger.Level(lvl).With().Timestamp().Logger()
	return nil
}

// quiesce drops the logger back to a no-op sink.
func (m *Module) quiesce(ctx context.Context) error {
	m.logger = zerolog.Nop()
	return nil
}
