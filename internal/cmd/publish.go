package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/doniai/doniai-cli/internal/api"
	"github.com/doniai/doniai-cli/internal/composer"
	"github.com/doniai/doniai-cli/internal/config"
	"github.com/doniai/doniai-cli/internal/markdown"
	"github.com/doniai/doniai-cli/internal/store"
)

// PublishOptions are the flags of `doniai publish`.
type PublishOptions struct {
	Title     string
	Tags      []string
	Category  int
	ReadLimit int
	Draft     string
	DryRun    bool
}

// RunPublish builds a post from source and sends it through the same
// submitter the composer uses.
func RunPublish(poster composer.Poster, baseURL string, source string, opts PublishOptions, out io.Writer) error {
	tags := composer.NewTagCollector()
	for _, tag := range opts.Tags {
		tags.Add(tag)
	}
	form := composer.Form{
		Title:      opts.Title,
		Tags:       tags,
		Buffer:     composer.NewBuffer(source),
		CategoryID: opts.Category,
		ReadLimit:  opts.ReadLimit,
	}

	sub := composer.NewSubmitter(poster, markdown.New())
	if opts.DryRun {
		req, errs := sub.Build(form)
		if len(errs) > 0 {
			return errs
		}
		fmt.Fprintf(out, "title:      %s\n", req.Title)
		fmt.Fprintf(out, "tags:       %s\n", req.Tags)
		fmt.Fprintf(out, "category:   %d\n", req.CategoryID)
		fmt.Fprintf(out, "read limit: %s\n\n", api.ReadLimitLabel(req.ReadLimit))
		fmt.Fprintln(out, req.Content)
		return nil
	}

	res := sub.Submit(form)
	if res.Outcome != composer.Published {
		if res.Err != nil && res.Outcome == composer.NetworkFailure {
			return fmt.Errorf("%s: %w", res.Notice, res.Err)
		}
		if len(res.Errors) > 0 {
			return fmt.Errorf("%s: %w", res.Notice, res.Errors)
		}
		return fmt.Errorf("%s", res.Notice)
	}
	fmt.Fprintln(out, res.Notice)
	if res.Post != nil {
		fmt.Fprintf(out, "%s/post-%d-1\n", baseURL, res.Post.ID)
	}
	return nil
}

// PublishCmd returns the `doniai publish` command.
func PublishCmd() *cobra.Command {
	var opts PublishOptions
	cmd := &cobra.Command{
		Use:   "publish [FILE]",
		Short: "Publish a Markdown file, stdin or a saved draft",
		Long:  "Publish renders Markdown to HTML the same way the composer preview does and posts it. FILE may be '-' for stdin.",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(c *cobra.Command, args []string) error {
			cfg, err := config.LoadOrDefault()
			if err != nil {
				return err
			}
			if !cfg.LoggedIn() && !opts.DryRun {
				return fmt.Errorf("not logged in: run 'doniai login' first")
			}

			source, err := publishSource(c, args, &opts)
			if err != nil {
				return err
			}
			client := cfg.Client()
			if err := RunPublish(client, client.BaseURL(), source, opts, c.OutOrStdout()); err != nil {
				return err
			}
			if opts.Draft != "" && !opts.DryRun {
				return deleteDraft(opts.Draft)
			}
			return nil
		},
	}
	cmd.Flags().StringVarP(&opts.Title, "title", "t", "", "post title")
	cmd.Flags().StringSliceVar(&opts.Tags, "tag", nil, "tag (repeatable)")
	cmd.Flags().IntVarP(&opts.Category, "category", "c", 0, "category id")
	cmd.Flags().IntVar(&opts.ReadLimit, "read-limit", api.ReadPublic, "1 public, 2 logged-in, 3 followers, 4 private")
	cmd.Flags().StringVar(&opts.Draft, "draft", "", "publish a saved draft by id, or 'latest'")
	cmd.Flags().BoolVar(&opts.DryRun, "dry-run", false, "print the rendered request instead of sending it")
	return cmd
}

// publishSource reads the body from FILE, stdin or a draft. Draft fields
// fill in any flag left unset.
func publishSource(c *cobra.Command, args []string, opts *PublishOptions) (string, error) {
	if opts.Draft != "" {
		st, err := store.Open(config.StorePath())
		if err != nil {
			return "", err
		}
		defer st.Close()

		var d *store.Draft
		if opts.Draft == "latest" {
			d, err = st.LatestDraft()
		} else {
			d, err = st.Draft(opts.Draft)
		}
		if err != nil {
			return "", fmt.Errorf("load draft: %w", err)
		}
		opts.Draft = d.ID
		if opts.Title == "" {
			opts.Title = d.Title
		}
		if len(opts.Tags) == 0 {
			opts.Tags = composer.ParseTags(d.Tags)
		}
		if opts.Category == 0 {
			opts.Category = d.CategoryID
		}
		if !c.Flags().Changed("read-limit") && d.ReadLimit != 0 {
			opts.ReadLimit = d.ReadLimit
		}
		return d.Body, nil
	}

	if len(args) == 0 {
		return "", fmt.Errorf("FILE or --draft is required")
	}
	var data []byte
	var err error
	if args[0] == "-" {
		data, err = io.ReadAll(c.InOrStdin())
	} else {
		data, err = os.ReadFile(args[0])
	}
	if err != nil {
		return "", fmt.Errorf("read %s: %w", args[0], err)
	}
	return string(data), nil
}

func deleteDraft(id string) error {
	st, err := store.Open(config.StorePath())
	if err != nil {
		return err
	}
	defer st.Close()
	return st.DeleteDraft(id)
}
