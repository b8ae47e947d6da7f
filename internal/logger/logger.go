// Package logger builds the zap logger shared by the server and the consumer.
package logger

import (
	"go.uber.org/zap"
)

// New returns a sugared logger suited to env.  "dev" and "test" get the
// human-readable development encoder; anything else gets production JSON.
func New(env string) (*zap.SugaredLogger, error) {
	var (
		base *zap.Logger
		err  error
	)
	switch env {
	case "dev", "test", "":
		base, err = zap.NewDevelopment()
	default:
		base, err = zap.NewProduction()
	}
	if err != nil {
		return nil, err
	}
	return base.Sugar().With("env", env), nil
}
