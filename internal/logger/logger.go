// Package logger builds the service's zap loggers.
package logger

import (
	"go.uber.org/zap"
)

// NewNamed creates a named zap logger. Development environments get the
// human-readable console encoder; everything else logs JSON.
func NewNamed(appEnv, name string) (*zap.Logger, error) {
	var (
		log *zap.Logger
		err error
	)
	if appEnv == "production" {
		log, err = zap.NewProduction()
	} else {
		log, err = zap.NewDevelopment()
	}
	if err != nil {
		return nil, err
	}
	return log.Named(name), nil
}
