// Package report prints the day's task sheet as a PDF.
package report

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/go-pdf/fpdf"

	"github.com/akyairhashvil/stoplicht/internal/config"
	"github.com/akyairhashvil/stoplicht/internal/models"
	"github.com/akyairhashvil/stoplicht/internal/taskpanel"
)

const imageWidth = 90.0

// Input is everything printed on the sheet.
type Input struct {
	Date     time.Time
	Tasks    []taskpanel.View
	AssetDir string
	Sessions []models.Session
}

// Filename is the default file name for the sheet of date.
func Filename(date time.Time) string {
	return fmt.Sprintf("taken_%s.pdf", date.Format("2006-01-02"))
}

// Generate writes the sheet to out. Tasks whose image is missing locally
// are printed without it.
func Generate(ctx context.Context, out io.Writer, in Input) error {
	pdf := fpdf.New("P", "mm", "A4", "")
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.SetCreator(config.AppName, true)
	pdf.SetTitle(tr(fmt.Sprintf("Taken %s", in.Date.Format("02-01-2006"))), false)
	pdf.SetCreationDate(in.Date)
	pdf.SetModificationDate(in.Date)
	pdf.AddPage()

	pdf.SetFont("Arial", "B", 16)
	pdf.Cell(0, 10, tr(fmt.Sprintf("Taken voor %s", in.Date.Format("02-01-2006"))))
	pdf.Ln(14)

	visible := 0
	for _, v := range in.Tasks {
		if err := ctx.Err(); err != nil {
			return err
		}
		if !v.Visible {
			continue
		}
		visible++
		pdf.SetFont("Arial", "B", 14)
		pdf.Cell(0, 10, tr(fmt.Sprintf("%d. %s", v.Number, assetTitle(v))))
		pdf.Ln(10)

		if img := localImage(in.AssetDir, v.Asset); img != "" {
			pdf.ImageOptions(img, pdf.GetX(), pdf.GetY(), imageWidth, 0, true, fpdf.ImageOptions{ReadDpi: true}, 0, "")
			pdf.Ln(2)
		}
		if note := noteLine(v); note != "" {
			pdf.SetFont("Arial", "", 12)
			pdf.MultiCell(0, 7, tr(note), "", "", false)
		}
		pdf.Ln(6)
	}
	if visible == 0 {
		pdf.SetFont("Arial", "", 12)
		pdf.Cell(0, 8, tr("Geen taken gekozen."))
		pdf.Ln(10)
	}

	if len(in.Sessions) > 0 {
		pdf.Ln(4)
		pdf.SetFont("Arial", "B", 14)
		pdf.Cell(0, 10, "Timers")
		pdf.Ln(8)
		pdf.SetFont("Arial", "", 12)
		for _, s := range in.Sessions {
			pdf.Cell(0, 7, tr(SessionLine(s)))
			pdf.Ln(6)
		}
	}

	if err := pdf.Error(); err != nil {
		return fmt.Errorf("render report: %w", err)
	}
	if err := pdf.Output(out); err != nil {
		return fmt.Errorf("write report: %w", err)
	}
	return nil
}

// WriteFile generates the sheet into dir and returns its path.
func WriteFile(ctx context.Context, dir string, in Input) (string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create report dir: %w", err)
	}
	path := filepath.Join(dir, Filename(in.Date))
	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("create report: %w", err)
	}
	if err := Generate(ctx, f, in); err != nil {
		_ = f.Close()
		_ = os.Remove(path)
		return "", err
	}
	if err := f.Close(); err != nil {
		return "", fmt.Errorf("close report: %w", err)
	}
	return path, nil
}

// SessionLine renders one journal entry, e.g. "09:15  10 min  afgelopen".
func SessionLine(s models.Session) string {
	var outcome string
	switch s.Outcome {
	case models.OutcomeFinished:
		outcome = "afgelopen"
	case models.OutcomeStopped:
		left := time.Duration(s.RemainingSeconds) * time.Second
		outcome = fmt.Sprintf("gestopt, %s over", formatLeft(left))
	default:
		outcome = "loopt"
	}
	return fmt.Sprintf("%s  %d min  %s", s.StartedAt.Format("15:04"), s.RequestedMinutes, outcome)
}

func formatLeft(d time.Duration) string {
	m := int(d / time.Minute)
	s := int((d % time.Minute) / time.Second)
	return fmt.Sprintf("%d:%02d", m, s)
}

func assetTitle(v taskpanel.View) string {
	name := filepath.Base(v.Asset)
	return strings.TrimSuffix(name, filepath.Ext(name))
}

func noteLine(v taskpanel.View) string {
	if v.PageRange != "" {
		return v.PageRange
	}
	return strings.TrimSpace(v.Annotation.Text)
}

func localImage(dir, asset string) string {
	if dir == "" || asset == "" {
		return ""
	}
	path := filepath.Join(dir, filepath.FromSlash(asset))
	info, err := os.Stat(path)
	if err != nil || info.IsDir() {
		return ""
	}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".jpg", ".jpeg", ".png", ".gif":
		return path
	}
	return ""
}
