package cli

import (
	"context"
	"os"

	charmlog "github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/pepaslabs/phosphor-uikit/pkg/buildinfo"
	"github.com/pepaslabs/phosphor-uikit/pkg/raster"
)

// Execute runs the phosphor-uikit CLI and returns an error if any command fails.
// This is the main entry point for the CLI application.
//
// The root command processes each configuration file argument in order and
// exits non-zero if any document fails. Subcommands manage the icon cache
// and generate shell completions.
//
// Logging:
//   - Default: info level (logs to stderr)
//   - With --verbose (-v): debug level
//
// The logger is attached to the context and accessible to all commands via
// loggerFromContext.
func Execute(ctx context.Context) error {
	var (
		verbose bool
		opts    generateOpts
	)

	root := &cobra.Command{
		Use:   "phosphor-uikit [flags] config.json [config.json ...]",
		Short: "Rasterize Phosphor icons into Xcode asset catalogs",
		Long: `phosphor-uikit converts small JSON configuration files into Xcode asset
catalogs. Icons are fetched from the Phosphor repository into a persistent
local cache, rasterized at 1x/2x/3x, and written as .xcassets directories
next to each config file.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
		Args:         cobra.MinimumNArgs(1),
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			level := charmlog.InfoLevel
			if verbose {
				level = charmlog.DebugLevel
			}
			ctx := withLogger(cmd.Context(), newLogger(os.Stderr, level))
			cmd.SetContext(ctx)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runGenerate(cmd.Context(), &opts, args)
		},
	}

	root.SetVersionTemplate(buildinfo.Template())
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose logging")

	root.Flags().BoolVar(&opts.dryRun, "dry-run", false, "report intended actions without fetching or writing")
	root.Flags().BoolVar(&opts.refresh, "refresh", false, "bypass the icon cache and re-fetch every icon")
	root.Flags().StringVar(&opts.renderer, "renderer", "", "rasterizer backend: "+raster.RendererRSVG+" (default), "+raster.RendererInkscape+", "+raster.RendererNative)
	root.Flags().StringVar(&opts.cacheDir, "cache-dir", "", "icon cache root (default ~/.cache/"+appName+")")
	root.Flags().StringVar(&opts.baseURL, "base-url", "", "icon source base URL")

	root.AddCommand(newCacheCmd())
	root.AddCommand(newCompletionCmd())

	return root.ExecuteContext(ctx)
}
