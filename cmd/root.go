package cmd

import (
	"fmt"
	"os"
	"runtime"

	"github.com/spf13/cobra"
)

var (
	version    = "0.1.0"
	verbose    bool
	configPath string
)

var rootCmd = &cobra.Command{
	Use:   "bg3icon",
	Short: "Batch-format PNG art into Baldur's Gate 3 icon tiers",
	Long: `bg3icon turns a folder of PNG art into the three icon sizes the game
expects (144x144, 380x380, 64x64), one subfolder per size.

The 380x380 tier gets a vertical alpha fade towards the bottom. Output
files are named <prefix><original name> and are overwritten on rerun.`,
	Version:      version,
	SilenceUsage: true,
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "bg3icon.yaml", "config file with default settings")
	rootCmd.SetVersionTemplate(fmt.Sprintf(
		"bg3icon %s (%s/%s, %s)\n",
		version, runtime.GOOS, runtime.GOARCH, runtime.Version(),
	))
}

// logVerbose prints a message only when --verbose is set.
func logVerbose(format string, args ...any) {
	if verbose {
		fmt.Fprintf(os.Stderr, "[bg3icon] "+format+"\n", args...)
	}
}
