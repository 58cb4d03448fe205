package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pepaslabs/phosphor-uikit/pkg/config"
	"github.com/pepaslabs/phosphor-uikit/pkg/icons"
)

// newCacheCmd creates the cache management command.
func newCacheCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cache",
		Short: "Manage the icon source cache",
	}

	cmd.AddCommand(newCacheClearCmd())
	cmd.AddCommand(newCachePathCmd())

	return cmd
}

// cacheStore opens the icon store at the configured cache root.
// Settings resolve the root the same way the root command does.
func cacheStore() (*icons.Store, error) {
	path, err := config.DefaultSettingsPath()
	if err != nil {
		path = ""
	}
	settings, err := config.LoadSettings(path)
	if err != nil {
		return nil, err
	}
	return icons.NewStore(settings.CacheDir, settings.BaseURL)
}

// newCacheClearCmd creates the "cache clear" subcommand.
func newCacheClearCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Remove all cached icon files",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := cacheStore()
			if err != nil {
				return fmt.Errorf("open cache: %w", err)
			}

			count, err := store.Clear()
			if err != nil {
				return err
			}
			if count == 0 {
				printInfo("Cache is empty")
			} else {
				printSuccess("Cleared %d cached icon(s)", count)
			}
			printDetail("Directory: %s", store.Dir())
			return nil
		},
	}
}

// newCachePathCmd creates the "cache path" subcommand.
func newCachePathCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "path",
		Short: "Print the icon cache directory path",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := cacheStore()
			if err != nil {
				return fmt.Errorf("open cache: %w", err)
			}
			fmt.Println(store.Dir())
			return nil
		},
	}
}
