// Package log builds the zap logger used across the ingestion pipeline.
// Unlike a package-level singleton, the *zap.SugaredLogger it constructs is
// an ordinary value: cmd/findfire builds one from the --verbose flag and
// passes it down through pipeline.Run into each stage that needs it, the
// same way _examples/chrissnell-remoteweather/internal/managers threads a
// context.Context and *sync.WaitGroup through its long-running components
// rather than reaching for package globals.
package log

import (
	"fmt"

	"go.uber.org/zap"
)

// New builds a SugaredLogger. verbose selects zap's development encoder
// (human-readable, caller-annotated); otherwise the production JSON
// encoder is used, matching findfire's --verbose/-v flag.
func New(verbose bool) (*zap.SugaredLogger, error) {
	var zapLogger *zap.Logger
	var err error

	if verbose {
		zapLogger, err = zap.NewDevelopment()
	} else {
		zapLogger, err = zap.NewProduction()
	}
	if err != nil {
		return nil, fmt.Errorf("can't initialize zap logger: %v", err)
	}

	return zapLogger.Sugar(), nil
}

// Nop returns a logger that discards everything, for callers (tests, the
// loader/writer stages run outside of cmd/findfire) that don't want to
// thread a real one through.
func Nop() *zap.SugaredLogger {
	return zap.NewNop().Sugar()
}
