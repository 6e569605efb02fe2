package cmd

import (
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/doniai/doniai-cli/internal/api"
	"github.com/doniai/doniai-cli/internal/config"
	"github.com/doniai/doniai-cli/internal/validate"
)

// RunRegister prompts for a new account and submits it.
func RunRegister(cfg *config.Config, p Prompter, out io.Writer) error {
	username, err := p.Ask("Username", false, func(s string) error {
		if !validate.Username(s) {
			return errors.New("at least 3 characters: letters, digits and underscores only")
		}
		return nil
	})
	if err != nil {
		return err
	}
	email, err := p.Ask("Email", false, requireEmail)
	if err != nil {
		return err
	}
	password, err := p.Ask("Password", true, func(s string) error {
		if !validate.Password(s) {
			return errors.New("password must be at least 6 characters")
		}
		return nil
	})
	if err != nil {
		return err
	}
	confirm, err := p.Ask("Confirm password", true, nil)
	if err != nil {
		return err
	}
	agree, err := p.Confirm("Accept the terms of service")
	if err != nil {
		return err
	}

	if errs := validate.Register(username, email, password, confirm, agree); len(errs) > 0 {
		return errs
	}

	fmt.Fprintf(out, "password strength: %s\n", validate.StrengthLabel(validate.PasswordStrength(password)))
	msg, err := cfg.Client().Register(api.Registration{
		Username:        username,
		Email:           email,
		Password:        password,
		ConfirmPassword: confirm,
		AgreeTerms:      agree,
	})
	if err != nil {
		return fmt.Errorf("registration failed: %s", describe(err))
	}
	fmt.Fprintln(out, nonEmpty(msg, "account created"))
	fmt.Fprintln(out, "run 'doniai login' to sign in")
	return nil
}

// RegisterCmd returns the `doniai register` command.
func RegisterCmd(p Prompter) *cobra.Command {
	return &cobra.Command{
		Use:   "register",
		Short: "Create a forum account",
		RunE: func(c *cobra.Command, _ []string) error {
			cfg, err := config.LoadOrDefault()
			if err != nil {
				return err
			}
			return RunRegister(cfg, p, c.OutOrStdout())
		},
	}
}

// ForgotPasswordCmd returns the `doniai forgot-password` command.
func ForgotPasswordCmd(p Prompter) *cobra.Command {
	return &cobra.Command{
		Use:   "forgot-password [email]",
		Short: "Request a password reset email",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(c *cobra.Command, args []string) error {
			cfg, err := config.LoadOrDefault()
			if err != nil {
				return err
			}
			var email string
			if len(args) == 1 {
				email = args[0]
			} else if email, err = p.Ask("Email", false, requireEmail); err != nil {
				return err
			}
			if errs := validate.ForgotPassword(email); len(errs) > 0 {
				return errs
			}
			msg, err := cfg.Client().ForgotPassword(email)
			if err != nil {
				return fmt.Errorf("reset request failed: %s", describe(err))
			}
			fmt.Fprintln(c.OutOrStdout(), nonEmpty(msg, "check your inbox for a reset link"))
			return nil
		},
	}
}
