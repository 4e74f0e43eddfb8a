// Package session drives the interactive program: the main menu loop and the
// one-shot image analysis it launches.
package session

import (
	"context"

	"vision-cli/api/internal/console"
)

// UI is the display surface the session talks to. *console.Console
// implements it.
type UI interface {
	SelectOne(title string, options []string) (string, error)
	PromptLine(title string) (string, error)
	PromptMasked(prompt string) (string, error)
	ShowTable(headers []string, rows [][]string)
	ShowStatus(ctx context.Context, message string, work func(context.Context) error) error
	Println(tone console.Tone, text string)
	Styled(tone console.Tone, fn func() error) error
	Clear()
}

var _ UI = (*console.Console)(nil)
