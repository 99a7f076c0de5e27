package journal

import (
	"context"
	"fmt"
	"io"
	"strings"

	"go.uber.org/zap"
)

const (
	choiceFreeEntry = "1"
	choiceUnwind    = "2"
)

var banner = strings.Repeat("=", 60)

// App is the interactive menu around free entries and guided sessions.
type App struct {
	Console *Console
	Out     io.Writer
	Session *Session
	Log     *zap.SugaredLogger
}

// Run shows the menu until the user declines to continue, input ends, or ctx is cancelled.
// Action failures other than the user leaving are printed and the loop continues.
func (a *App) Run(ctx context.Context) {
	defer a.farewell()
	for {
		a.showMenu()

		choice, err := a.Console.ReadLine(ctx, "Enter your choice (1 or 2): ")
		if err != nil {
			if a.handle(err) {
				return
			}
			continue
		}

		switch strings.TrimSpace(choice) {
		case choiceFreeEntry:
			err = a.runAction(ctx, func(ctx context.Context) error {
				return runFreeEntry(ctx, a.Console, a.Out)
			})
		case choiceUnwind:
			err = a.runAction(ctx, func(ctx context.Context) error {
				_, err := a.Session.Run(ctx)
				return err
			})
		default:
			fmt.Fprintln(a.Out, "\nInvalid choice. Please enter 1 or 2.")
			continue
		}
		if err != nil {
			if a.handle(err) {
				return
			}
			continue
		}

		fmt.Fprintln(a.Out, "\n"+banner)
		another, err := a.Console.ReadLine(ctx, "Would you like to do something else? (y/n): ")
		if err != nil {
			if a.handle(err) {
				return
			}
			continue
		}
		if !IsAffirmative(another) {
			return
		}
	}
}

// IsAffirmative reports whether an answer to a yes/no prompt means yes.
func IsAffirmative(answer string) bool {
	switch strings.ToLower(strings.TrimSpace(answer)) {
	case "y", "yes":
		return true
	default:
		return false
	}
}

// handle reports an action error and returns true when the loop should stop.
func (a *App) handle(err error) bool {
	if IsStop(err) {
		fmt.Fprintln(a.Out, "\n\nGoodbye! Take care of yourself.")
		return true
	}
	a.logger().Errorw("menu action failed", "error", err.Error())
	fmt.Fprintf(a.Out, "\nAn error occurred: %v\n", err)
	fmt.Fprintln(a.Out, "Please try again.")
	return false
}

func (a *App) runAction(ctx context.Context, fn func(context.Context) error) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%v", r)
		}
	}()
	return fn(ctx)
}

func (a *App) showMenu() {
	fmt.Fprintln(a.Out, banner)
	fmt.Fprintln(a.Out, "EMPATHETIC JOURNALING APP")
	fmt.Fprintln(a.Out, banner)
	fmt.Fprintln(a.Out)
	fmt.Fprintln(a.Out, "What would you like to do today?")
	fmt.Fprintln(a.Out)
	fmt.Fprintln(a.Out, "1. Make your own entry")
	fmt.Fprintln(a.Out, "2. Unwind")
	fmt.Fprintln(a.Out)
	fmt.Fprintln(a.Out, banner)
}

func (a *App) farewell() {
	fmt.Fprintln(a.Out, "\nThank you for using the Empathetic Journaling App!")
	fmt.Fprintln(a.Out, "Take care of yourself!")
}

func (a *App) logger() *zap.SugaredLogger {
	if a.Log == nil {
		return zap.NewNop().Sugar()
	}
	return a.Log
}
