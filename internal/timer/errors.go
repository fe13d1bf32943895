package timer

import (
	"errors"
	"fmt"
)

// ErrInvalidInput matches every rejected minutes value.
var ErrInvalidInput = errors.New("invalid minutes")

// InvalidInputError describes a minutes value outside the accepted range.
// Max is 0 when no upper bound is configured.
type InvalidInputError struct {
	Input string
	Min   int
	Max   int
	// Message is the user-facing notification text.
	Message string
}

func (e *InvalidInputError) Error() string {
	if e == nil {
		return ""
	}
	if e.Max > 0 {
		return fmt.Sprintf("%v %q: want %d-%d", ErrInvalidInput, e.Input, e.Min, e.Max)
	}
	return fmt.Sprintf("%v %q: want at least %d", ErrInvalidInput, e.Input, e.Min)
}

func (e *InvalidInputError) Is(target error) bool { return target == ErrInvalidInput }

// Notice returns the text shown in the blocking alert.
func (e *InvalidInputError) Notice() string {
	if e.Message != "" {
		return e.Message
	}
	if e.Max > 0 {
		return fmt.Sprintf("Voer een tijd in van %d tot %d minuten!", e.Min, e.Max)
	}
	return fmt.Sprintf("Voer een tijd in van minimaal %d minuut!", e.Min)
}
