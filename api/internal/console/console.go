// Package console is the interactive display surface: menus, line prompts,
// masked prompts, tables, status spinners and styled text.
package console

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/AlecAivazis/survey/v2"
	surveyterm "github.com/AlecAivazis/survey/v2/terminal"
	"github.com/briandowns/spinner"
	"github.com/gookit/color"
	"github.com/olekukonko/tablewriter"

	"vision-cli/api/internal/terminal"
)

type Tone int

const (
	TonePlain Tone = iota
	ToneHeading
	ToneSuccess
	ToneError
)

var styles = map[Tone]color.Style{
	ToneHeading: color.New(color.FgBlue, color.OpBold),
	ToneSuccess: color.New(color.FgGreen),
	ToneError:   color.New(color.FgRed),
}

const clearScreen = "\x1b[H\x1b[2J\x1b[3J"

type Console struct {
	in   *os.File
	outF *os.File
	out  io.Writer
	term *terminal.Terminal
}

func New(in, out *os.File) *Console {
	return &Console{
		in:   in,
		outF: out,
		out:  out,
		term: terminal.New(in, out),
	}
}

func (c *Console) stdio() survey.AskOpt {
	return survey.WithStdio(c.in, c.outF, c.outF)
}

// SelectOne shows a single-choice menu and returns the chosen option.
func (c *Console) SelectOne(title string, options []string) (string, error) {
	var answer string
	prompt := &survey.Select{Message: title, Options: options}
	if err := survey.AskOne(prompt, &answer, c.stdio()); err != nil {
		return "", translate(err)
	}
	return answer, nil
}

// PromptLine asks for a non-empty line of visible text.
func (c *Console) PromptLine(title string) (string, error) {
	var answer string
	prompt := &survey.Input{Message: title}
	if err := survey.AskOne(prompt, &answer, c.stdio(), survey.WithValidator(survey.Required)); err != nil {
		return "", translate(err)
	}
	return strings.TrimSpace(answer), nil
}

// PromptMasked reads a secret, echoing one mask glyph per character.
func (c *Console) PromptMasked(prompt string) (string, error) {
	return c.term.ReadMasked(prompt)
}

func translate(err error) error {
	if errors.Is(err, surveyterm.InterruptErr) {
		return terminal.ErrInterrupted
	}
	return err
}

// ShowTable renders a bordered table with centered columns.
func (c *Console) ShowTable(headers []string, rows [][]string) {
	t := tablewriter.NewWriter(c.out)
	t.SetHeader(headers)
	t.SetAutoFormatHeaders(false)
	t.SetAutoWrapText(false)
	t.SetHeaderAlignment(tablewriter.ALIGN_CENTER)
	t.SetAlignment(tablewriter.ALIGN_CENTER)
	if color.Enable {
		hc := make([]tablewriter.Colors, len(headers))
		for i := range hc {
			hc[i] = tablewriter.Colors{tablewriter.Bold, tablewriter.FgGreenColor}
		}
		t.SetHeaderColor(hc...)
	}
	t.AppendBulk(rows)
	t.Render()
}

// ShowStatus animates a spinner with message while work runs and returns
// work's error. A panic inside work is returned as an error.
func (c *Console) ShowStatus(ctx context.Context, message string, work func(context.Context) error) error {
	opt := spinner.WithWriter(c.out)
	if c.outF != nil {
		opt = spinner.WithWriterFile(c.outF)
	}
	s := spinner.New(spinner.CharSets[14], 100*time.Millisecond, opt)
	s.Suffix = message
	_ = s.Color("green")
	s.Start()
	defer s.Stop()
	return runGuarded(ctx, work)
}

func runGuarded(ctx context.Context, work func(context.Context) error) error {
	done := make(chan error, 1)
	go func() {
		defer func() {
			if r := recover(); r != nil {
				done <- fmt.Errorf("unexpected failure: %v", r)
			}
		}()
		done <- work(ctx)
	}()
	return <-done
}

func (c *Console) Println(tone Tone, text string) {
	if st, ok := styles[tone]; ok {
		text = st.Sprint(text)
	}
	fmt.Fprintln(c.out, text)
}

// Styled runs fn with the tone's color set on the output and restores the
// default color on every exit path, panics included.
func (c *Console) Styled(tone Tone, fn func() error) error {
	st, ok := styles[tone]
	if ok && color.Enable {
		fmt.Fprintf(c.out, color.SettingTpl, st.Code())
		defer io.WriteString(c.out, color.ResetSet)
	}
	return fn()
}

func (c *Console) Clear() {
	io.WriteString(c.out, clearScreen)
}
