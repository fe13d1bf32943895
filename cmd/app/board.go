package main

import (
	"context"
	"net/url"
	"os"
	"os/signal"
	"syscall"

	prom "github.com/prometheus/client_golang/prometheus"

	"github.com/akyairhashvil/stoplicht/internal/board"
	"github.com/akyairhashvil/stoplicht/internal/clock"
	"github.com/akyairhashvil/stoplicht/internal/config"
	"github.com/akyairhashvil/stoplicht/internal/display"
	"github.com/akyairhashvil/stoplicht/internal/logger"
	"github.com/akyairhashvil/stoplicht/internal/metrics"
	"github.com/akyairhashvil/stoplicht/internal/taskpanel"
	"github.com/akyairhashvil/stoplicht/internal/timer"
)

const loopBuffer = 64

// BoardCmd serves the classroom page.
type BoardCmd struct {
	Addr string `help:"Listen address (overrides board.addr)"`
}

// assetBase is where the board serves the asset directory.
var assetBase = &url.URL{Path: "/assets/"}

func boardBase(s config.Settings) (*url.URL, error) {
	base, err := taskpanel.BaseFromScript(s.Assets.BaseURL)
	if err != nil || base != nil {
		return base, err
	}
	return assetBase, nil
}

func (b *BoardCmd) Run(root *CLI) error {
	settings, loader, err := root.load()
	if err != nil {
		return err
	}
	log := logger.Stdout(settings.Log.Level)
	defer func() { _ = log.Sync() }()

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

	base, err := boardBase(settings)
	if err != nil {
		return err
	}
	tasks, err := taskpanel.New(taskpanel.SlotsFromSettings(settings.Tasks), base)
	if err != nil {
		return err
	}

	reg := prom.NewRegistry()
	recorder := metrics.NewPrometheusRecorder(reg)

	loop := timer.NewLoop(loopBuffer)
	clk := clock.NewReal(nil, loop.Dispatch)
	panel := display.NewPanel(newPlayer(settings), clk.Now)
	ctrl := timer.New(clk, display.Multi{panel, display.Logging{Log: log}},
		timer.WithMaxMinutes(settings.Timer.MaxMinutes),
		timer.WithMessages(settings.Timer.IdleMessage, settings.Timer.WorkingMessage),
		timer.WithInvalidMessage(settings.Timer.InvalidMessage),
		timer.WithGracePeriod(settings.Timer.GracePeriod),
		timer.WithLogger(log),
		timer.WithListener(timer.Listeners{metrics.Listener{Recorder: recorder}, j.Listener()}),
	)
	// The loop is not running yet, so this is the only goroutine touching ctrl.
	ctrl.Init()

	loader.Watch(func(s config.Settings, err error) {
		if err != nil {
			log.Warnw("config_reload_failed", "err", err)
			return
		}
		loop.Post(func() {
			if err := tasks.Reconfigure(taskpanel.SlotsFromSettings(s.Tasks)); err != nil {
				log.Warnw("config_reload_failed", "err", err)
				return
			}
			ctrl.SetMessages(s.Timer.IdleMessage, s.Timer.WorkingMessage)
			log.Infow("config_reloaded", "file", loader.File())
		})
	})

	loopDone := make(chan struct{})
	go func() {
		defer close(loopDone)
		_ = loop.Run(ctx)
	}()

	h := board.NewHandler(board.Deps{
		Controller: ctrl,
		Loop:       loop,
		Display:    panel,
		Tasks:      tasks,
		Registry:   reg,
		AssetDir:   settings.Assets.Dir,
		Log:        log,
	})
	addr := b.Addr
	if addr == "" {
		addr = settings.Board.Addr
	}
	log.Infow("board_listening", "addr", addr)
	srv := &board.Server{}
	err = srv.Run(ctx, addr, h.InitRoutes())
	stop()
	<-loopDone
	return err
}
