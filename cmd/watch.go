package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/AnyUserName/bg3icon-cli/internal/watcher"
	"github.com/spf13/cobra"
)

var watchCmd = &cobra.Command{
	Use:   "watch [input_dir]",
	Short: "Build once, then rebuild whenever a PNG in the folder changes",
	Long: `Runs the same batch as build, then keeps watching input_dir and
reruns it after PNG files are added or rewritten. Reruns overwrite their
previous output. Stop with Ctrl-C.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runWatch,
}

func init() {
	addBatchFlags(watchCmd)
	rootCmd.AddCommand(watchCmd)
}

func runWatch(c *cobra.Command, args []string) error {
	opts, err := resolveOptions(c, args)
	if err != nil {
		return err
	}

	if _, err := runBatch(opts); err != nil {
		return err
	}

	// Only the first run may open the file browser.
	rerun := opts
	rerun.open = false

	w, err := watcher.New(opts.input, watcher.DefaultDebounce, func() {
		logVerbose("change detected, rebuilding")
		if _, err := runBatch(rerun); err != nil {
			fmt.Fprintf(os.Stderr, "[bg3icon] error: %v\n", err)
		}
	})
	if err != nil {
		return err
	}
	if err := w.Start(); err != nil {
		w.Close()
		return err
	}
	defer w.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	<-ctx.Done()

	logVerbose("stopping watcher")
	return nil
}
