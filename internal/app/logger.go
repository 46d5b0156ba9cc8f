package app

import (
	"os"

	"delivery-coordinator/internal/config"
	"delivery-coordinator/internal/logx"
)

// NewLogger builds the process logger from LOG_FORMAT and LOG_LEVEL.
func NewLogger(cfg *config.Config) logx.Logger {
	return logx.New(cfg.Log.Format, cfg.Log.Level, os.Stdout)
}
