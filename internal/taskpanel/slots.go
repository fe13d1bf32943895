// Package taskpanel keeps the up to four task slots shown next to the
// traffic light: which worksheet is picked and what was noted next to it.
package taskpanel

import (
	"errors"
	"fmt"
	"path"
	"strings"

	"github.com/akyairhashvil/stoplicht/internal/config"
)

var (
	ErrUnknownSlot  = errors.New("unknown task slot")
	ErrUnknownAsset = errors.New("unknown task asset")
	ErrTooManySlots = errors.New("too many task slots")
)

// AnnotationKind decides which input a slot offers next to its picture.
type AnnotationKind string

const (
	AnnotationNone  AnnotationKind = config.AnnotationNone
	AnnotationText  AnnotationKind = config.AnnotationText
	AnnotationPages AnnotationKind = config.AnnotationPages
)

// SlotConfig is the static catalogue of one slot.
type SlotConfig struct {
	Folder     string
	Label      string
	Annotation AnnotationKind
	Files      []string
}

// Option is one entry of a slot's dropdown.
type Option struct {
	Value string `json:"value"`
	Label string `json:"label"`
}

// SlotsFromSettings converts configured slots; an empty annotation means text.
func SlotsFromSettings(in []config.SlotSettings) []SlotConfig {
	out := make([]SlotConfig, 0, len(in))
	for _, s := range in {
		kind := AnnotationKind(s.Annotation)
		if kind == "" {
			kind = AnnotationText
		}
		files := make([]string, len(s.Files))
		copy(files, s.Files)
		out = append(out, SlotConfig{Folder: s.Folder, Label: s.Label, Annotation: kind, Files: files})
	}
	return out
}

func (c SlotConfig) options() []Option {
	opts := make([]Option, 0, len(c.Files))
	for _, f := range c.Files {
		opts = append(opts, Option{Value: c.Folder + "/" + f, Label: displayName(f)})
	}
	return opts
}

func (c SlotConfig) has(asset string) bool {
	for _, f := range c.Files {
		if c.Folder+"/"+f == asset {
			return true
		}
	}
	return false
}

// displayName drops the extension: "Werkboekje 1.jpg" -> "Werkboekje 1".
func displayName(file string) string {
	return strings.TrimSuffix(file, path.Ext(file))
}

func validate(slots []SlotConfig) error {
	if len(slots) > config.MaxTaskSlots {
		return fmt.Errorf("%w: %d configured, at most %d", ErrTooManySlots, len(slots), config.MaxTaskSlots)
	}
	return nil
}
