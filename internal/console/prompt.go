package console

import "github.com/pterm/pterm"

// Prompter asks whoever is at the keyboard.
type Prompter interface {
	Select(prompt string, options []string) (int, error)
	Confirm(prompt string) (bool, error)
}

// Terminal prompts with pterm's interactive widgets.
type Terminal struct{}

func (Terminal) Select(prompt string, options []string) (int, error) {
	choice, err := pterm.DefaultInteractiveSelect.
		WithDefaultText(prompt).
		WithOptions(options).
		WithMaxHeight(len(options)).
		Show()
	if err != nil {
		return -1, err
	}
	return indexOf(options, choice), nil
}

func (Terminal) Confirm(prompt string) (bool, error) {
	return pterm.DefaultInteractiveConfirm.
		WithDefaultText(prompt).
		WithDefaultValue(false).
		Show()
}

// indexOf returns the first match. Duplicate options, like two copies of
// a role in hand, are interchangeable.
func indexOf(options []string, choice string) int {
	for i, o := range options {
		if o == choice {
			return i
		}
	}
	return -1
}
