package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"vision-cli/api/internal/config"
	"vision-cli/api/internal/console"
	"vision-cli/api/internal/logger"
	"vision-cli/api/internal/session"
	"vision-cli/api/internal/terminal"
	"vision-cli/api/internal/vision"
	"vision-cli/api/internal/vision/azure"
	"vision-cli/api/internal/vision/gemini"
	"vision-cli/api/internal/vision/googlevision"
	"vision-cli/api/internal/vision/openai"
	"vision-cli/api/internal/vision/stub"
)

// exitError carries a process exit status out of run.
type exitError struct {
	code int
	err  error
}

func (e *exitError) Error() string {
	if e.err == nil {
		return fmt.Sprintf("exit status %d", e.code)
	}
	return e.err.Error()
}

func (e *exitError) Unwrap() error { return e.err }

func main() {
	if err := run(); err != nil {
		code := 1
		var ee *exitError
		if errors.As(err, &ee) {
			code = ee.code
			err = ee.err
		}
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
		}
		os.Exit(code)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	lg, closer, err := logger.New(cfg.Log)
	if err != nil {
		return err
	}
	defer closer.Close()

	engines := vision.NewEngines(
		azure.New(cfg.Azure.APIVersion, cfg.Azure.Language, cfg.HTTPTimeout),
		gemini.New(cfg.Gemini.Model, cfg.HTTPTimeout),
		googlevision.New(),
		openai.New(cfg.OpenAI.Model, cfg.HTTPTimeout),
		stub.New(),
	)
	auth, err := engines.GetEngine(cfg.Backend)
	if err != nil {
		return err
	}

	ui := console.New(os.Stdin, os.Stdout)
	lg.WithField("backend", auth.Name()).Info("session started")

	err = session.NewLoop(ui, session.NewAnalyzer(auth, ui, lg)).Run(context.Background())
	switch {
	case err == nil:
		lg.Info("session ended")
		return nil
	case errors.Is(err, terminal.ErrInterrupted):
		lg.Info("interrupted")
		return &exitError{code: 130}
	default:
		lg.WithError(err).Error("terminal failure")
		return &exitError{code: 1, err: fmt.Errorf("terminal: %w", err)}
	}
}
