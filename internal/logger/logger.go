// Package logger constructs the process-wide zap logger.
package logger

import "go.uber.org/zap"

// New returns a production logger for production environments and a
// human-readable development logger otherwise.
func New(environment string) (*zap.Logger, error) {
	if environment == "production" {
		return zap.NewProduction()
	}
	return zap.NewDevelopment()
}
