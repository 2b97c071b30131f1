// Package prompt gathers validated answers from the terminal.
package prompt

import (
	"errors"
	"fmt"

	"github.com/manifoldco/promptui"
)

// ErrAborted is returned when the operator interrupts a prompt
var ErrAborted = errors.New("aborted by user")

// Prompter asks the operator for input
type Prompter interface {
	// Text asks for free text until validate accepts it
	Text(label string, validate func(string) error) (string, error)
	// Select asks for one of items
	Select(label string, items []string) (string, error)
}

// Terminal is a Prompter backed by promptui
type Terminal struct{}

// NewTerminal returns the interactive terminal prompter
func NewTerminal() *Terminal {
	return &Terminal{}
}

// Text implements Prompter
func (t *Terminal) Text(label string, validate func(string) error) (string, error) {
	p := promptui.Prompt{
		Label: label,
	}
	if validate != nil {
		p.Validate = promptui.ValidateFunc(validate)
	}

	result, err := p.Run()
	if err != nil {
		return "", translate(err)
	}
	return result, nil
}

// Select implements Prompter
func (t *Terminal) Select(label string, items []string) (string, error) {
	s := promptui.Select{
		Label: label,
		Items: items,
		Size:  len(items),
	}

	_, result, err := s.Run()
	if err != nil {
		return "", translate(err)
	}
	return result, nil
}

func translate(err error) error {
	if errors.Is(err, promptui.ErrInterrupt) || errors.Is(err, promptui.ErrEOF) || errors.Is(err, promptui.ErrAbort) {
		return ErrAborted
	}
	return fmt.Errorf("prompt failed: %w", err)
}
