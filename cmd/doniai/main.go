package main

import (
	"fmt"
	"io"
	"log"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/doniai/doniai-cli/internal/cmd"
	"github.com/doniai/doniai-cli/internal/config"
	"github.com/doniai/doniai-cli/internal/markdown"
	"github.com/doniai/doniai-cli/internal/store"
	"github.com/doniai/doniai-cli/internal/ui"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "doniai",
		Short: "Doniai - terminal client for the Doniai forum",
		Long:  "Doniai CLI: browse the feed, read and discuss posts, and write Markdown posts with live preview.",
		RunE: func(_ *cobra.Command, _ []string) error {
			return runTUI()
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	prompter := cmd.TerminalPrompter{}
	root.AddCommand(cmd.LoginCmd(prompter))
	root.AddCommand(cmd.RegisterCmd(prompter))
	root.AddCommand(cmd.ForgotPasswordCmd(prompter))
	root.AddCommand(cmd.LogoutCmd())
	root.AddCommand(cmd.PublishCmd())
	root.AddCommand(cmd.DraftsCmd())
	root.AddCommand(cmd.ThemeCmd())
	root.AddCommand(cmd.OnlineCmd())
	return root
}

func init() {
	// Force truecolor so hex colors render correctly
	// Must be set before any lipgloss style initialization
	os.Setenv("COLORTERM", "truecolor")
}

func runTUI() error {
	if !isInteractiveTerminal(os.Stdin) || !isInteractiveTerminal(os.Stdout) {
		return fmt.Errorf("the interactive client needs a terminal; see 'doniai --help' for scriptable commands")
	}

	if os.Getenv("DONIAI_DEBUG") != "" {
		f, err := tea.LogToFile(config.LogPath(), "doniai")
		if err != nil {
			return fmt.Errorf("open debug log: %w", err)
		}
		defer f.Close()
	} else {
		log.SetOutput(io.Discard)
	}

	cfg, err := config.LoadOrDefault()
	if err != nil {
		return err
	}

	st, err := store.Open(config.StorePath())
	if err != nil {
		return fmt.Errorf("open local store: %w", err)
	}
	defer st.Close()

	client := cfg.Client()
	app := ui.NewApp(client, cfg, st, markdown.New())

	p := tea.NewProgram(app, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("tui error: %w", err)
	}
	return nil
}

func isInteractiveTerminal(file *os.File) bool {
	if file == nil {
		return false
	}
	return isatty.IsTerminal(file.Fd()) || isatty.IsCygwinTerminal(file.Fd())
}
