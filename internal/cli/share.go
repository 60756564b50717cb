package cli

import (
	"fmt"
	"net/url"

	"github.com/spf13/cobra"

	"github.com/dna-group/puzzled/pkg/bookmark"
	"github.com/dna-group/puzzled/pkg/config"
	"github.com/dna-group/puzzled/pkg/state"
)

func newShareCmd() *cobra.Command {
	var (
		title string
		list  bool
	)

	cmd := &cobra.Command{
		Use:   "share",
		Short: "Create a shareable bookmark for the current lattice",
		Long: `Share builds the shareable URL for the current session state and saves it
as a named bookmark. The URL carries the full state in its fragment; opening
it restores the exact edges and viewport. Use --list to show saved bookmarks.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			logger := loggerFromContext(ctx)

			cfg, err := config.Load(configPath(cmd))
			if err != nil {
				return err
			}

			if list {
				return listBookmarks(cmd, cfg)
			}

			_, st, err := loadStoredState(ctx, cfg, logger)
			if err != nil {
				return err
			}

			base, err := url.Parse(cfg.Share.BaseURL)
			if err != nil {
				return fmt.Errorf("parse share base URL: %w", err)
			}
			shareURL, err := state.BuildShareURL(base, *st)
			if err != nil {
				return fmt.Errorf("build share URL: %w", err)
			}

			store, err := bookmark.Open(ctx, storeOptions(cfg))
			if err != nil {
				return fmt.Errorf("open bookmark store: %w", err)
			}
			defer store.Close()

			entry := bookmark.NewEntry(title, shareURL)
			if err := store.Put(ctx, entry); err != nil {
				return fmt.Errorf("save bookmark: %w", err)
			}

			printSuccess("bookmark saved")
			printKeyValue("id", entry.ID)
			printKeyValue("title", entry.Title)
			printFile(entry.URL)
			return nil
		},
	}

	cmd.Flags().StringVar(&title, "title", "shared lattice", "bookmark title")
	cmd.Flags().BoolVar(&list, "list", false, "list saved bookmarks instead of creating one")
	return cmd
}

func listBookmarks(cmd *cobra.Command, cfg config.Config) error {
	ctx := cmd.Context()

	store, err := bookmark.Open(ctx, storeOptions(cfg))
	if err != nil {
		return fmt.Errorf("open bookmark store: %w", err)
	}
	defer store.Close()

	entries, err := store.List(ctx)
	if err != nil {
		return fmt.Errorf("list bookmarks: %w", err)
	}
	if len(entries) == 0 {
		printInfo("no bookmarks saved yet")
		return nil
	}

	for _, e := range entries {
		printKeyValue(e.Title, e.ID)
		printFile(e.URL)
	}
	return nil
}

func storeOptions(cfg config.Config) bookmark.Options {
	return bookmark.Options{
		Backend:   cfg.Store.Backend,
		Path:      cfg.Store.Path,
		RedisAddr: cfg.Store.RedisAddr,
		MongoURI:  cfg.Store.MongoURI,
		MongoDB:   cfg.Store.MongoDB,
	}
}
