package main

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/akyairhashvil/stoplicht/internal/logger"
	"github.com/akyairhashvil/stoplicht/internal/taskpanel"
)

// ReportCmd writes a task sheet without starting a front end.
type ReportCmd struct {
	Out   string         `short:"o" help:"Output directory (default: the documents folder)" type:"path"`
	Task  map[int]string `help:"Asset per slot, e.g. --task 1='werkboeken/Werkboekje 1.jpg'"`
	Note  map[int]string `help:"Notes per slot"`
	Pages map[int]string `help:"Page range per slot, e.g. --pages 2=3-7"`
}

// parsePages reads "from-to", "from-" or "-to".
func parsePages(s string) (taskpanel.Annotation, error) {
	var a taskpanel.Annotation
	from, to, found := strings.Cut(s, "-")
	if !found {
		to = from
	}
	var err error
	if from = strings.TrimSpace(from); from != "" {
		if a.PageFrom, err = strconv.Atoi(from); err != nil {
			return a, fmt.Errorf("pages %q: %w", s, err)
		}
	}
	if to = strings.TrimSpace(to); to != "" {
		if a.PageTo, err = strconv.Atoi(to); err != nil {
			return a, fmt.Errorf("pages %q: %w", s, err)
		}
	}
	return a, nil
}

func (r *ReportCmd) views(tasks *taskpanel.Panel) ([]taskpanel.View, error) {
	for slot, asset := range r.Task {
		if err := tasks.SelectionChanged(slot, asset); err != nil {
			return nil, err
		}
		a := taskpanel.Annotation{Text: r.Note[slot]}
		if p, ok := r.Pages[slot]; ok {
			pages, err := parsePages(p)
			if err != nil {
				return nil, err
			}
			a.PageFrom, a.PageTo = pages.PageFrom, pages.PageTo
		}
		if err := tasks.AnnotationChanged(slot, a); err != nil {
			return nil, err
		}
	}
	return tasks.Visible(), nil
}

func (r *ReportCmd) Run(root *CLI) error {
	settings, _, err := root.load()
	if err != nil {
		return err
	}
	log := logger.New(settings.Log.Level, root.stdout())
	ctx := context.Background()

	base, err := taskpanel.BaseFromScript(settings.Assets.BaseURL)
	if err != nil {
		return err
	}
	tasks, err := taskpanel.New(taskpanel.SlotsFromSettings(settings.Tasks), base)
	if err != nil {
		return err
	}
	views, err := r.views(tasks)
	if err != nil {
		return err
	}

	j, err := openJournal(ctx, settings, log)
	if err != nil {
		return err
	}
	defer func() { _ = j.Close() }()

	path, err := exporter(settings, j, reportsDir(r.Out))(ctx, views)
	if err != nil {
		return err
	}
	log.Infow("report_written", "path", path, "tasks", len(views), "date", time.Now().Format("2006-01-02"))
	return nil
}
