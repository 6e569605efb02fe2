package cmd

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/doniai/doniai-cli/internal/api"
	"github.com/doniai/doniai-cli/internal/config"
	"github.com/doniai/doniai-cli/internal/validate"
)

// RunLogin prompts for credentials, signs in, and persists the session.
func RunLogin(cfg *config.Config, p Prompter, out io.Writer, email string, remember bool) error {
	var err error
	if email == "" {
		email, err = p.Ask("Email", false, requireValue("email"))
		if err != nil {
			return err
		}
	}
	password, err := p.Ask("Password", true, requireValue("password"))
	if err != nil {
		return err
	}
	if errs := validate.Login(email, password); len(errs) > 0 {
		return errs
	}

	client := cfg.Client()
	sess, err := client.Login(email, password, remember)
	if err != nil {
		return fmt.Errorf("login failed: %s", describe(err))
	}

	cfg.Session = sess.Cookie
	cfg.Username = sess.Name
	cfg.Email = sess.Email
	cfg.UserID = sess.UserID
	if err := cfg.Save(); err != nil {
		return fmt.Errorf("save config: %w", err)
	}

	fmt.Fprintf(out, "logged in as %s\n", nonEmpty(sess.Name, sess.Email))
	fmt.Fprintf(out, "config saved to %s\n", config.Path())
	return nil
}

// LoginCmd returns the `doniai login` command.
func LoginCmd(p Prompter) *cobra.Command {
	var email string
	var noRemember bool
	cmd := &cobra.Command{
		Use:   "login",
		Short: "Sign in to the forum",
		RunE: func(c *cobra.Command, _ []string) error {
			cfg, err := config.LoadOrDefault()
			if err != nil {
				return err
			}
			return RunLogin(cfg, p, c.OutOrStdout(), email, !noRemember)
		},
	}
	cmd.Flags().StringVarP(&email, "email", "e", "", "account email (prompted when empty)")
	cmd.Flags().BoolVar(&noRemember, "no-remember", false, "ask the server for a short-lived session")
	return cmd
}

// LogoutCmd returns the `doniai logout` command.
func LogoutCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Sign out and forget the stored session",
		RunE: func(c *cobra.Command, _ []string) error {
			cfg, err := config.LoadOrDefault()
			if err != nil {
				return err
			}
			if !cfg.LoggedIn() {
				fmt.Fprintln(c.OutOrStdout(), "not logged in")
				return nil
			}
			if err := cfg.Client().Logout(); err != nil {
				fmt.Fprintf(c.ErrOrStderr(), "warning: server logout failed: %s\n", describe(err))
			}
			cfg.Session = ""
			cfg.Username = ""
			cfg.Email = ""
			cfg.UserID = 0
			if err := cfg.Save(); err != nil {
				return fmt.Errorf("save config: %w", err)
			}
			fmt.Fprintln(c.OutOrStdout(), "logged out")
			return nil
		},
	}
}

func describe(err error) string {
	if msg, ok := api.ServerMessage(err); ok {
		return msg
	}
	return err.Error()
}

func nonEmpty(s, fallback string) string {
	if s == "" {
		return fallback
	}
	return s
}
