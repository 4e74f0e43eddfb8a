// Package logger builds the process logger. The terminal belongs to the
// interactive session, so records go to a rotating file or nowhere.
package logger

import (
	"fmt"
	"io"

	"github.com/apex/log"
	"github.com/apex/log/handlers/discard"
	"github.com/apex/log/handlers/json"
	"github.com/apex/log/handlers/text"
	"gopkg.in/natefinch/lumberjack.v2"

	"vision-cli/api/internal/config"
)

type nopCloser struct{}

func (nopCloser) Close() error { return nil }

func New(cfg config.LogConfig) (*log.Logger, io.Closer, error) {
	level, err := log.ParseLevel(cfg.Level)
	if err != nil {
		return nil, nil, fmt.Errorf("log level: %w", err)
	}
	if cfg.File == "" {
		return &log.Logger{Handler: discard.New(), Level: level}, nopCloser{}, nil
	}

	w := &lumberjack.Logger{
		Filename:   cfg.File,
		MaxSize:    cfg.MaxSizeMB,
		MaxBackups: cfg.MaxBackups,
	}
	var h log.Handler
	switch cfg.Format {
	case "json":
		h = json.New(w)
	case "text", "":
		h = text.New(w)
	default:
		return nil, nil, fmt.Errorf("unknown log format %q", cfg.Format)
	}
	return &log.Logger{Handler: h, Level: level}, w, nil
}
