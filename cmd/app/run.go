package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"

	tea "github.com/charmbracelet/bubbletea"
	"golang.org/x/term"

	"github.com/akyairhashvil/stoplicht/internal/config"
	"github.com/akyairhashvil/stoplicht/internal/logger"
	"github.com/akyairhashvil/stoplicht/internal/tui"
)

var errNoTerminal = errors.New("stdout is not a terminal; use the board or simulate command")

// RunCmd starts the terminal front end.
type RunCmd struct {
	ExportDir string `name:"export-dir" help:"Directory for PDF task sheets (default: the documents folder)" type:"path"`
}

func (r *RunCmd) Run(root *CLI) error {
	if !term.IsTerminal(int(os.Stdout.Fd())) {
		return errNoTerminal
	}
	settings, loader, err := root.load()
	if err != nil {
		return err
	}
	// stdout belongs to the program.
	log, closeLog, err := logger.File(settings.Log.Level, settings.Log.File)
	if err != nil {
		return err
	}
	defer func() { _ = closeLog() }()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	j, err := openJournal(ctx, settings, log)
	if err != nil {
		return err
	}
	defer func() {
		if err := j.Close(); err != nil {
			log.Warnw("journal_close_failed", "err", err)
		}
	}()

	model, err := tui.New(tui.Options{
		Settings: settings,
		Player:   newPlayer(settings),
		Listener: j.Listener(),
		Log:      log,
		Export:   exporter(settings, j, reportsDir(r.ExportDir)),
	})
	if err != nil {
		return err
	}

	p := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx))
	loader.Watch(func(s config.Settings, err error) {
		p.Send(tui.SettingsMsg{Settings: s, Err: err})
	})
	log.Infow("tui_started", "config", loader.File())
	if _, err := p.Run(); err != nil && !errors.Is(err, tea.ErrProgramKilled) {
		return err
	}
	return nil
}
