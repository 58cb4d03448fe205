// Package cli implements the phosphor-uikit command-line interface.
//
// The root command converts JSON configuration files into Xcode asset
// catalogs: it fetches Phosphor SVG icons into a persistent cache,
// rasterizes each at 1x/2x/3x, and writes the .xcassets directory and
// manifest layout. Additional commands manage the icon cache and generate
// shell completions.
//
// # Logging
//
// All commands support --verbose (-v) for debug-level logging. Loggers are
// passed through context.Context to allow structured progress tracking.
//
// # Example
//
//	import "github.com/pepaslabs/phosphor-uikit/internal/cli"
//
//	func main() {
//	    if err := cli.Execute(ctx); err != nil {
//	        os.Exit(1)
//	    }
//	}
package cli

// appName is the application name used for directories and display.
const appName = "phosphor-uikit"
