package cmd

import (
	"errors"
	"fmt"
	"strings"

	"github.com/manifoldco/promptui"

	"github.com/doniai/doniai-cli/internal/validate"
)

// Prompter asks the user for values on the terminal.
type Prompter interface {
	Ask(label string, secret bool, check func(string) error) (string, error)
	Confirm(label string) (bool, error)
}

// TerminalPrompter asks through promptui.
type TerminalPrompter struct{}

func (TerminalPrompter) Ask(label string, secret bool, check func(string) error) (string, error) {
	p := promptui.Prompt{Label: label, Validate: check}
	if secret {
		p.Mask = '*'
	}
	value, err := p.Run()
	if err != nil {
		return "", fmt.Errorf("%s: %w", strings.ToLower(label), err)
	}
	return value, nil
}

func (TerminalPrompter) Confirm(label string) (bool, error) {
	p := promptui.Prompt{Label: label, IsConfirm: true}
	_, err := p.Run()
	if errors.Is(err, promptui.ErrAbort) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

// fieldCheck turns one field of a form check into a prompt validator.
func fieldCheck(field string, run func(string) validate.Errors) func(string) error {
	return func(s string) error {
		if msg := run(s).Get(field); msg != "" {
			return errors.New(msg)
		}
		return nil
	}
}

func requireEmail(s string) error {
	return fieldCheck("email", validate.ForgotPassword)(s)
}

func requireValue(what string) func(string) error {
	return func(s string) error {
		if strings.TrimSpace(s) == "" {
			return fmt.Errorf("%s is required", what)
		}
		return nil
	}
}
