package session

import (
	"context"

	"vision-cli/api/internal/console"
)

const (
	menuTitle     = " What do you want to do? Select an option:"
	optionAnalyze = "Start Image Analysis"
	optionClear   = "Clear Console"
	optionExit    = "Exit"

	exitTitle = " Are you sure you want to exit?"
	optionYes = "Yes"
	optionNo  = "No"

	bannerTitle = " WELCOME TO VISION CLI!"
	bannerRule  = "---------------------------------------------------------------"
	bannerText  = " Analyze images with a cloud vision service "
	clearedText = " Console cleared! Ready for your next command."
	farewell    = " Thank you for using Vision CLI! Goodbye!"
)

var (
	menuOptions = []string{optionAnalyze, optionClear, optionExit}
	exitOptions = []string{optionYes, optionNo}
)

// Loop is the main menu. It runs until the user confirms Exit or the
// terminal fails.
type Loop struct {
	ui      UI
	analyze func(context.Context) error
}

func NewLoop(ui UI, a *Analyzer) *Loop {
	return &Loop{ui: ui, analyze: a.Run}
}

// Run returns nil after Exit is confirmed. A non-nil error means the
// terminal became unusable; failed analyses are reported and never end
// the loop.
func (l *Loop) Run(ctx context.Context) error {
	l.banner()
	for {
		choice, err := l.ui.SelectOne(menuTitle, menuOptions)
		if err != nil {
			return err
		}
		switch choice {
		case optionAnalyze:
			if err := l.analyze(ctx); err != nil {
				return err
			}
		case optionClear:
			l.ui.Clear()
			l.ui.Println(console.ToneSuccess, clearedText)
		case optionExit:
			answer, err := l.ui.SelectOne(exitTitle, exitOptions)
			if err != nil {
				return err
			}
			if answer == optionYes {
				l.ui.Println(console.ToneSuccess, farewell)
				return nil
			}
		}
	}
}

func (l *Loop) banner() {
	l.ui.Println(console.TonePlain, "")
	l.ui.Println(console.ToneHeading, bannerTitle)
	l.ui.Println(console.TonePlain, "")
	l.ui.Println(console.ToneSuccess, bannerRule)
	l.ui.Println(console.ToneSuccess, bannerText)
	l.ui.Println(console.TonePlain, "")
}
