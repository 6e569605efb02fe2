package cmd

import (
	"fmt"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/doniai/doniai-cli/internal/config"
	"github.com/doniai/doniai-cli/internal/store"
)

// ThemeCmd returns the `doniai theme` command.
func ThemeCmd() *cobra.Command {
	return &cobra.Command{
		Use:       "theme [dark|light|toggle]",
		Short:     "Show or change the UI theme",
		Args:      cobra.MaximumNArgs(1),
		ValidArgs: []string{store.ThemeDark, store.ThemeLight, "toggle"},
		RunE: func(c *cobra.Command, args []string) error {
			st, err := store.Open(config.StorePath())
			if err != nil {
				return err
			}
			defer st.Close()

			theme := st.Theme()
			switch {
			case len(args) == 0:
			case args[0] == "toggle":
				if theme, err = st.ToggleTheme(); err != nil {
					return err
				}
			case args[0] == store.ThemeDark || args[0] == store.ThemeLight:
				if err := st.SetPref(store.KeyTheme, args[0]); err != nil {
					return err
				}
				theme = args[0]
			default:
				return fmt.Errorf("unknown theme %q (want dark or light)", args[0])
			}
			fmt.Fprintln(c.OutOrStdout(), theme)
			return nil
		},
	}
}

// DraftsCmd returns the `doniai drafts` command.
func DraftsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "drafts",
		Short: "List composer drafts",
		RunE: func(c *cobra.Command, _ []string) error {
			st, err := store.Open(config.StorePath())
			if err != nil {
				return err
			}
			defer st.Close()

			drafts, err := st.Drafts()
			if err != nil {
				return err
			}
			if len(drafts) == 0 {
				fmt.Fprintln(c.OutOrStdout(), "no drafts")
				return nil
			}
			w := tabwriter.NewWriter(c.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tTITLE\tUPDATED")
			for _, d := range drafts {
				fmt.Fprintf(w, "%s\t%s\t%s\n", d.ID, nonEmpty(d.Title, "(untitled)"), d.UpdatedAt.Local().Format(time.DateTime))
			}
			return w.Flush()
		},
	}
	cmd.AddCommand(&cobra.Command{
		Use:   "rm ID",
		Short: "Delete a draft",
		Args:  cobra.ExactArgs(1),
		RunE: func(c *cobra.Command, args []string) error {
			st, err := store.Open(config.StorePath())
			if err != nil {
				return err
			}
			defer st.Close()
			if err := st.DeleteDraft(args[0]); err != nil {
				return err
			}
			fmt.Fprintln(c.OutOrStdout(), "draft deleted")
			return nil
		},
	})
	return cmd
}

// OnlineCmd returns the `doniai online` command.
func OnlineCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "online",
		Short: "Show how many users are online",
		RunE: func(c *cobra.Command, _ []string) error {
			cfg, err := config.LoadOrDefault()
			if err != nil {
				return err
			}
			n, err := cfg.Client().OnlineCount()
			if err != nil {
				return fmt.Errorf("online count: %s", describe(err))
			}
			fmt.Fprintf(c.OutOrStdout(), "%d online\n", n)
			return nil
		},
	}
}
