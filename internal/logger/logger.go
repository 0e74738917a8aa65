// Package logger contains utility functions for logging. It wraps
// go.uber.org/zap with a package-level default so command code does not
// pass logger handles around.
package logger

import (
	"go.uber.org/zap"
)

var defaultLogger *zap.SugaredLogger

// Initialize sets up the default logger. Verbose selects the development
// configuration with debug-level output; otherwise the production
// configuration is used. The standard library's log output is redirected
// to the same destination.
func Initialize(verbose bool) *zap.SugaredLogger {
	var (
		logger *zap.Logger
		err    error
	)
	if verbose {
		logger, err = zap.NewDevelopment()
	} else {
		config := zap.NewProductionConfig()
		config.Level = zap.NewAtomicLevelAt(zap.WarnLevel)
		logger, err = config.Build()
	}
	if err != nil {
		panic(err)
	}

	zap.RedirectStdLog(logger)
	defaultLogger = logger.Sugar()
	return defaultLogger
}

// Default returns the default logger, initializing it quietly if
// Initialize was never called.
func Default() *zap.SugaredLogger {
	if defaultLogger == nil {
		Initialize(false)
	}
	return defaultLogger
}
