package cli

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/alexanderramin/trax/internal/cli/formatter"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
)

const maxDescriptionLen = 200

func traxHuhTheme() *huh.Theme {
	t := huh.ThemeBase()

	// Focused state: orange accent
	t.Focused.Title = lipgloss.NewStyle().Foreground(formatter.ColorHeader).Bold(true)
	t.Focused.TextInput.Cursor = lipgloss.NewStyle().Foreground(formatter.ColorHeader)
	t.Focused.TextInput.Prompt = lipgloss.NewStyle().Foreground(formatter.ColorHeader)
	t.Focused.TextInput.Text = lipgloss.NewStyle().Foreground(formatter.ColorFg)
	t.Focused.TextInput.Placeholder = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Focused.Description = lipgloss.NewStyle().Foreground(formatter.ColorDim)

	// Blurred state: dimmed
	t.Blurred.Title = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.TextInput.Prompt = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.TextInput.Text = lipgloss.NewStyle().Foreground(formatter.ColorDim)

	return t
}

// descriptionInput returns a huh.Input for the free-text row description.
func descriptionInput(value *string) *huh.Input {
	return huh.NewInput().
		Title("What did you work on?").
		Description("Leave blank to record the interval without a description").
		Placeholder("Reviewing pull requests").
		CharLimit(maxDescriptionLen).
		Value(value).
		Validate(validateDescription)
}

func descriptionForm(value *string) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(descriptionInput(value)),
	).WithTheme(traxHuhTheme()).WithShowHelp(false)
}

// PromptDescription runs the description form on the terminal.
func PromptDescription(ctx context.Context) (string, error) {
	var desc string
	if err := descriptionForm(&desc).RunWithContext(ctx); err != nil {
		return "", err
	}
	return strings.TrimSpace(desc), nil
}

// validateDescription rejects line breaks, which would split a stored row,
// and descriptions longer than the prompt accepts.
func validateDescription(s string) error {
	if strings.ContainsAny(s, "\r\n") {
		return errors.New("description must be a single line")
	}
	if utf8.RuneCountInString(s) > maxDescriptionLen {
		return fmt.Errorf("description must be at most %d characters", maxDescriptionLen)
	}
	return nil
}
